package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/df07/skirt/pkg/loaders"
	"github.com/df07/skirt/pkg/log"
	"github.com/df07/skirt/pkg/renderer"
	"github.com/df07/skirt/pkg/scene"
)

var logger = log.New("server")

// Parameter limits shared by all endpoints
const (
	maxResolution = 2000
	maxSamples    = 10000
	maxDepth      = 1000
	maxTileSize   = 256
)

// errSceneNotFound marks requests for scenes that do not exist
var errSceneNotFound = errors.New("scene not found")

// Server serves tiles and progressive renders of the built-in scenes and
// the scene descriptions in scenesDir
type Server struct {
	port      int
	scenesDir string
	mux       *http.ServeMux
}

// NewServer creates a new web server
func NewServer(port int, scenesDir string) *Server {
	s := &Server{port: port, scenesDir: scenesDir, mux: http.NewServeMux()}

	// Serve static files
	s.mux.Handle("/", http.FileServer(http.Dir("static/")))

	// API endpoints
	s.mux.HandleFunc("/api/health", s.handleHealth)
	s.mux.HandleFunc("/api/scenes", s.handleScenes)
	s.mux.HandleFunc("/api/tile", s.handleTile)
	s.mux.HandleFunc("/api/render", s.handleRender)
	s.mux.HandleFunc("/api/inspect", s.handleInspect)
	return s
}

// Handler returns the request router
func (s *Server) Handler() http.Handler {
	return s.mux
}

// Start starts the web server
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.port)
	logger.Noticef("starting web server on http://localhost%s", addr)
	return http.ListenAndServe(addr, s.mux)
}

// RenderRequest holds the scene parameters common to all render endpoints.
// Zero values keep the scene's own settings.
type RenderRequest struct {
	Scene    string `json:"scene"`    // Built-in scene name or "file:<name>"
	Width    int    `json:"width"`    // Image width
	Height   int    `json:"height"`   // Image height
	Samples  int    `json:"samples"`  // Samples per pixel
	MaxDepth int    `json:"maxDepth"` // Maximum bounces
	TileSize int    `json:"tileSize"` // Tile edge length for streamed renders
	Seed     int64  `json:"seed"`     // Render seed
}

// handleHealth provides a simple health check endpoint
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleScenes lists the built-in scenes and scene descriptions
func (s *Server) handleScenes(w http.ResponseWriter, r *http.Request) {
	response, err := scene.ListAllScenes(s.scenesDir)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, response)
}

// parseRenderRequest parses the common scene parameters
func parseRenderRequest(values url.Values) (*RenderRequest, error) {
	req := &RenderRequest{Scene: values.Get("scene")}
	if req.Scene == "" {
		req.Scene = "default"
	}

	var err error
	if req.Width, err = parseIntParam(values, "width", 0, 1, maxResolution); err != nil {
		return nil, err
	}
	if req.Height, err = parseIntParam(values, "height", 0, 1, maxResolution); err != nil {
		return nil, err
	}
	if req.Samples, err = parseIntParam(values, "spp", 0, 1, maxSamples); err != nil {
		return nil, err
	}
	if req.MaxDepth, err = parseIntParam(values, "depth", 0, 1, maxDepth); err != nil {
		return nil, err
	}
	if req.TileSize, err = parseIntParam(values, "tile", renderer.DefaultTileSize, 1, maxTileSize); err != nil {
		return nil, err
	}
	req.Seed = parseSeed(values.Get("seed"))

	return req, nil
}

// parseIntParam parses an integer parameter from URL query with validation
func parseIntParam(values url.Values, key string, defaultValue, min, max int) (int, error) {
	if value := values.Get(key); value != "" {
		parsed, err := strconv.Atoi(value)
		if err != nil {
			return 0, fmt.Errorf("invalid %s: %s", key, value)
		}
		if parsed < min || parsed > max {
			return 0, fmt.Errorf("%s must be between %d and %d, got: %d", key, min, max, parsed)
		}
		return parsed, nil
	}
	return defaultValue, nil
}

// requireIntParam is parseIntParam for parameters without a default
func requireIntParam(values url.Values, key string, min, max int) (int, error) {
	if values.Get(key) == "" {
		return 0, fmt.Errorf("missing %s", key)
	}
	return parseIntParam(values, key, 0, min, max)
}

// parseSeed accepts an integer or any other string, which is hashed
func parseSeed(value string) int64 {
	if value == "" {
		return 0
	}
	if seed, err := strconv.ParseInt(value, 10, 64); err == nil {
		return seed
	}
	return scene.Seed(value)
}

// createScene builds and preprocesses the requested scene with the request
// overrides applied
func (s *Server) createScene(req *RenderRequest) (*scene.Scene, error) {
	if name, ok := strings.CutPrefix(req.Scene, "file:"); ok {
		path, err := s.descriptionPath(name)
		if err != nil {
			return nil, err
		}
		desc, err := loaders.LoadDescription(path)
		if err != nil {
			return nil, err
		}
		desc.Width = override(desc.Width, req.Width)
		desc.Height = override(desc.Height, req.Height)
		desc.SamplesPerPixel = override(desc.SamplesPerPixel, req.Samples)
		desc.MaxDepth = override(desc.MaxDepth, req.MaxDepth)
		return desc.Scene(), nil
	}

	defaults := scene.DefaultSamplingConfig()
	sampling := scene.SamplingConfig{
		Width:           override(defaults.Width, req.Width),
		Height:          override(defaults.Height, req.Height),
		SamplesPerPixel: override(defaults.SamplesPerPixel, req.Samples),
		MaxDepth:        override(defaults.MaxDepth, req.MaxDepth),
	}
	sc, err := scene.New(req.Scene, sampling, req.Seed)
	if errors.Is(err, scene.ErrUnknownScene) {
		return nil, fmt.Errorf("%w: %s", errSceneNotFound, req.Scene)
	}
	return sc, err
}

// descriptionPath finds the description called name in the scenes directory
func (s *Server) descriptionPath(name string) (string, error) {
	if name == "" || name != filepath.Base(name) {
		return "", fmt.Errorf("%w: invalid description name %q", errSceneNotFound, name)
	}
	for _, ext := range []string{".yaml", ".yml"} {
		path := filepath.Join(s.scenesDir, name+ext)
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}
	return "", fmt.Errorf("%w: file:%s", errSceneNotFound, name)
}

func override(value, requested int) int {
	if requested > 0 {
		return requested
	}
	return value
}

// sceneStatus maps a scene creation error to an HTTP status
func sceneStatus(err error) int {
	if errors.Is(err, errSceneNotFound) {
		return http.StatusNotFound
	}
	return http.StatusBadRequest
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logger.Warningf("failed to write response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}
