package server

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"image"
	"image/png"
	"net/http"
	"time"

	"github.com/df07/skirt/pkg/renderer"
)

// StartInfo is sent once before the first tile
type StartInfo struct {
	Width      int `json:"width"`
	Height     int `json:"height"`
	Samples    int `json:"samples"`
	TotalTiles int `json:"totalTiles"`
}

// TileUpdate represents a single tile update sent via SSE
type TileUpdate struct {
	X          int    `json:"x"`
	Y          int    `json:"y"`
	Width      int    `json:"width"`
	Height     int    `json:"height"`
	ImageData  string `json:"imageData"`  // Base64 encoded PNG of just this tile
	TileNumber int    `json:"tileNumber"` // Completion order (1-based)
	TotalTiles int    `json:"totalTiles"` // Total number of tiles in the image
}

// Stats represents render statistics
type Stats struct {
	TotalPixels    int     `json:"totalPixels"`
	TotalSamples   int     `json:"totalSamples"`
	AverageSamples float64 `json:"averageSamples"`
	Tiles          int     `json:"tiles"`
	Workers        int     `json:"workers"`
	Luminance      float64 `json:"luminance"`
	ElapsedMs      int64   `json:"elapsedMs"`
}

// SSEEvent represents a unified SSE event for thread-safe writing
type SSEEvent struct {
	Type string `json:"type"` // "start", "console", "tile", "error", "complete"
	Data string `json:"data"` // JSON-encoded data
}

// handleRender renders a whole frame and streams every tile via SSE as it
// finishes
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	req, err := parseRenderRequest(r.URL.Query())
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	sc, err := s.createScene(req)
	if err != nil {
		writeError(w, sceneStatus(err), err)
		return
	}

	s.setSSEHeaders(w)
	w.WriteHeader(http.StatusOK)

	ctx := r.Context()

	// Single SSE writer goroutine
	sseEventChan := make(chan SSEEvent, 100)
	written := make(chan struct{})
	go func() {
		defer close(written)
		s.writeSSEEvents(w, sseEventChan)
	}()

	consoleChan := make(chan ConsoleMessage, 50)
	forwarded := make(chan struct{})
	go func() {
		defer close(forwarded)
		s.streamConsoleMessages(consoleChan, sseEventChan)
	}()

	renderID := fmt.Sprintf("render-%d", time.Now().UnixNano())
	console := NewWebLogger(renderID, consoleChan)
	rt := renderer.NewRaytracer(sc, renderer.RenderConfig{
		TileSize: req.TileSize,
		Seed:     req.Seed,
	}, console)

	cfg := sc.SamplingConfig
	totalTiles := len(renderer.NewTileGrid(cfg.Width, cfg.Height, req.TileSize))
	sendEvent(sseEventChan, "start", StartInfo{
		Width:      cfg.Width,
		Height:     cfg.Height,
		Samples:    cfg.SamplesPerPixel,
		TotalTiles: totalTiles,
	})

	tileNumber := 0
	film, stats, err := rt.RenderTiles(ctx, func(result renderer.TileResult) {
		tileNumber++
		s.handleTileUpdate(sseEventChan, result, tileNumber, totalTiles)
	})

	close(consoleChan)
	<-forwarded
	if n := console.Dropped(); n > 0 {
		logger.Warningf("[%s] dropped %d console lines", renderID, n)
	}

	switch {
	case errors.Is(err, context.Canceled):
		logger.Infof("[%s] client disconnected after %d tiles", renderID, stats.Tiles)
	case err != nil:
		sendEvent(sseEventChan, "error", map[string]string{"error": err.Error()})
	default:
		sendEvent(sseEventChan, "complete", newStats(stats, film))
	}

	close(sseEventChan)
	<-written
}

// setSSEHeaders sets the required headers for Server-Sent Events
func (s *Server) setSSEHeaders(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("Access-Control-Allow-Origin", "*")
}

// writeSSEEvents writes events until the channel is closed. After a failed
// write the remaining events are drained so senders never block.
func (s *Server) writeSSEEvents(w http.ResponseWriter, sseEventChan <-chan SSEEvent) {
	flusher, _ := w.(http.Flusher)
	failed := false
	for event := range sseEventChan {
		if failed {
			continue
		}
		if _, err := fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event.Type, event.Data); err != nil {
			failed = true
			continue
		}
		if flusher != nil {
			flusher.Flush()
		}
	}
}

// streamConsoleMessages forwards console messages until consoleChan closes
func (s *Server) streamConsoleMessages(consoleChan <-chan ConsoleMessage, sseEventChan chan<- SSEEvent) {
	for msg := range consoleChan {
		sendEvent(sseEventChan, "console", msg)
	}
}

// handleTileUpdate encodes a finished tile and queues it
func (s *Server) handleTileUpdate(sseEventChan chan<- SSEEvent, result renderer.TileResult, tileNumber, totalTiles int) {
	imageData, err := imageToBase64PNG(result.Film.RGBA())
	if err != nil {
		logger.Warningf("failed to encode tile %d: %v", result.Tile.ID, err)
		return
	}

	bounds := result.Film.Bounds
	sendEvent(sseEventChan, "tile", TileUpdate{
		X:          bounds.Min.X,
		Y:          bounds.Min.Y,
		Width:      bounds.Dx(),
		Height:     bounds.Dy(),
		ImageData:  imageData,
		TileNumber: tileNumber,
		TotalTiles: totalTiles,
	})
}

func sendEvent(sseEventChan chan<- SSEEvent, eventType string, body interface{}) {
	data, err := json.Marshal(body)
	if err != nil {
		logger.Warningf("failed to marshal %s event: %v", eventType, err)
		return
	}
	sseEventChan <- SSEEvent{Type: eventType, Data: string(data)}
}

func newStats(stats renderer.RenderStats, film *renderer.Film) Stats {
	return Stats{
		TotalPixels:    stats.TotalPixels,
		TotalSamples:   stats.TotalSamples,
		AverageSamples: stats.AverageSamples(),
		Tiles:          stats.Tiles,
		Workers:        stats.Workers,
		Luminance:      renderer.CalculateAverageLuminance(film.Image()),
		ElapsedMs:      stats.Duration.Milliseconds(),
	}
}

// imageToBase64PNG converts an image to base64-encoded PNG
func imageToBase64PNG(img image.Image) (string, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}
