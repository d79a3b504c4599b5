package server

import (
	"bytes"
	"errors"
	"image/png"
	"net/http"
	"strconv"

	"github.com/df07/skirt/pkg/log"
	"github.com/df07/skirt/pkg/renderer"
)

// handleTile renders one rectangle of a scene and returns it as a PNG.
// Query parameters x and y give the top-left pixel; w and h default to the
// tile size.
func (s *Server) handleTile(w http.ResponseWriter, r *http.Request) {
	values := r.URL.Query()
	req, err := parseRenderRequest(values)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	x, err := requireIntParam(values, "x", 0, maxResolution-1)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	y, err := requireIntParam(values, "y", 0, maxResolution-1)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	tw, err := parseIntParam(values, "w", req.TileSize, 1, maxTileSize)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	th, err := parseIntParam(values, "h", req.TileSize, 1, maxTileSize)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	sc, err := s.createScene(req)
	if err != nil {
		writeError(w, sceneStatus(err), err)
		return
	}

	rt := renderer.NewRaytracer(sc, renderer.RenderConfig{Seed: req.Seed}, log.AsCoreLogger(logger))
	tile := rt.RenderTile(x, y, tw, th, sc.SamplingConfig.SamplesPerPixel)
	if tile == nil {
		writeError(w, http.StatusBadRequest, errors.New("tile lies outside the image"))
		return
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, tile.RGBA()); err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	bounds := tile.Bounds
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("X-Tile-Bounds", bounds.String())
	w.Header().Set("X-Tile-Samples", strconv.Itoa(tile.TotalSamples()))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(buf.Bytes()); err != nil {
		logger.Warningf("failed to write tile: %v", err)
	}
}
