// Package server exposes progressive rendering over HTTP with
// Server-Sent Events for live preview.
package server

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"image"
	"image/png"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/tlerebours/pathtracer/pkg/geometry"
	"github.com/tlerebours/pathtracer/pkg/renderer"
	"github.com/tlerebours/pathtracer/pkg/scene"
)

// Server handles web requests for the path tracer
type Server struct {
	port int
}

// NewServer creates a new web server
func NewServer(port int) *Server {
	return &Server{port: port}
}

// RenderRequest represents a render request parsed from query params
type RenderRequest struct {
	Scene      string // Scene name
	Width      int    // Image width
	MaxSamples int    // Maximum samples per pixel
	MaxPasses  int    // Number of progressive passes
	Workers    int    // Worker count (0 = CPU count)
	Seed       int64  // Base sampler seed
}

// ProgressUpdate is a single progressive update sent via SSE
type ProgressUpdate struct {
	PassNumber int    `json:"passNumber"`
	ImageData  string `json:"imageData"` // Base64 encoded PNG
	Stats      Stats  `json:"stats"`
	IsComplete bool   `json:"isComplete"`
	ElapsedMs  int64  `json:"elapsedMs"`
}

// Stats represents render statistics for the client
type Stats struct {
	TotalPixels    int     `json:"totalPixels"`
	TotalSamples   int     `json:"totalSamples"`
	AverageSamples float64 `json:"averageSamples"`
	MinSamples     int     `json:"minSamples"`
	MaxSamplesUsed int     `json:"maxSamplesUsed"`
}

// Start starts the web server
func (s *Server) Start() error {
	http.Handle("/", http.FileServer(http.Dir("static/")))

	http.HandleFunc("/api/render", s.handleRender)
	http.HandleFunc("/api/scenes", s.handleScenes)
	http.HandleFunc("/api/health", s.handleHealth)

	addr := fmt.Sprintf(":%d", s.port)
	log.Printf("Starting web server on http://localhost%s", addr)
	return http.ListenAndServe(addr, nil)
}

// handleHealth provides a simple health check endpoint
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

// handleScenes lists the scenes the server can render
func (s *Server) handleScenes(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string][]string{
		"scenes": {"default", "cornell", "mirror", "spheregrid"},
	})
}

// handleRender streams a progressive render over SSE. A client
// disconnect cancels the render through the request context.
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("Access-Control-Allow-Origin", "*")

	req, err := s.parseRenderRequest(r.URL.Query())
	if err != nil {
		s.sendSSEError(w, fmt.Sprintf("Invalid request: %v", err))
		return
	}

	sceneInstance, err := buildScene(req)
	if err != nil {
		s.sendSSEError(w, err.Error())
		return
	}
	sceneInstance.SamplingConfig.SamplesPerPixel = req.MaxSamples

	rend, err := renderer.NewRenderer(sceneInstance, renderer.Config{
		TileSize:       64,
		InitialSamples: 1,
		MaxPasses:      req.MaxPasses,
		NumWorkers:     req.Workers,
		Seed:           req.Seed,
	}, serverLogger{})
	if err != nil {
		s.sendSSEError(w, err.Error())
		return
	}

	ctx := r.Context()
	startTime := time.Now()
	passChan, errChan := rend.RenderProgressive(ctx)

	// A failed write means the client stopped listening: stop sending
	// but keep draining so the render itself is only ever cancelled by
	// the request context
	clientGone := false
	for pass := range passChan {
		if clientGone {
			continue
		}
		update, err := s.buildProgressUpdate(pass, startTime)
		if err != nil {
			log.Printf("Error encoding pass %d: %v", pass.PassNumber, err)
			continue
		}
		if err := s.sendSSEUpdate(w, update); err != nil {
			clientGone = true
		}
	}

	if err := <-errChan; err != nil {
		log.Printf("Render ended with error: %v", err)
	}
}

// parseRenderRequest validates query parameters with defaults
func (s *Server) parseRenderRequest(query url.Values) (RenderRequest, error) {
	req := RenderRequest{
		Scene:      "default",
		Width:      400,
		MaxSamples: 50,
		MaxPasses:  5,
		Workers:    0,
		Seed:       42,
	}

	if v := query.Get("scene"); v != "" {
		req.Scene = v
	}

	var err error
	if req.Width, err = parseIntParam(query, "width", req.Width, 16, 4096); err != nil {
		return req, err
	}
	if req.MaxSamples, err = parseIntParam(query, "maxSamples", req.MaxSamples, 1, 10000); err != nil {
		return req, err
	}
	if req.MaxPasses, err = parseIntParam(query, "maxPasses", req.MaxPasses, 1, 100); err != nil {
		return req, err
	}
	if req.Workers, err = parseIntParam(query, "workers", req.Workers, 0, 256); err != nil {
		return req, err
	}
	if v := query.Get("seed"); v != "" {
		seed, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return req, fmt.Errorf("invalid seed %q", v)
		}
		req.Seed = seed
	}

	return req, nil
}

// parseIntParam parses an integer query parameter with range checking
func parseIntParam(query url.Values, name string, defaultValue, minValue, maxValue int) (int, error) {
	v := query.Get(name)
	if v == "" {
		return defaultValue, nil
	}
	parsed, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q", name, v)
	}
	if parsed < minValue || parsed > maxValue {
		return 0, fmt.Errorf("%s must be between %d and %d, got %d", name, minValue, maxValue, parsed)
	}
	return parsed, nil
}

// buildScene constructs the requested scene with the requested width
func buildScene(req RenderRequest) (*scene.Scene, error) {
	overrides := geometry.CameraConfig{Width: req.Width}

	switch req.Scene {
	case "default":
		return scene.NewDefaultScene(overrides), nil
	case "cornell":
		return scene.NewCornellScene(overrides), nil
	case "mirror":
		return scene.NewMirrorScene(overrides), nil
	case "spheregrid":
		return scene.NewSphereGridScene(overrides), nil
	default:
		return nil, fmt.Errorf("unknown scene %q", req.Scene)
	}
}

// buildProgressUpdate encodes a pass image as base64 PNG for SSE
func (s *Server) buildProgressUpdate(pass renderer.PassResult, startTime time.Time) (ProgressUpdate, error) {
	imageData, err := encodeImageBase64(pass.Image)
	if err != nil {
		return ProgressUpdate{}, err
	}

	return ProgressUpdate{
		PassNumber: pass.PassNumber,
		ImageData:  imageData,
		Stats: Stats{
			TotalPixels:    pass.Stats.TotalPixels,
			TotalSamples:   pass.Stats.TotalSamples,
			AverageSamples: pass.Stats.AverageSamples,
			MinSamples:     pass.Stats.MinSamples,
			MaxSamplesUsed: pass.Stats.MaxSamplesUsed,
		},
		IsComplete: pass.IsLast,
		ElapsedMs:  time.Since(startTime).Milliseconds(),
	}, nil
}

// encodeImageBase64 encodes an image as a base64 PNG string
func encodeImageBase64(img image.Image) (string, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

// sendSSEUpdate writes a progress update as an SSE event
func (s *Server) sendSSEUpdate(w http.ResponseWriter, update ProgressUpdate) error {
	data, err := json.Marshal(update)
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "event: progress\ndata: %s\n\n", data); err != nil {
		return err
	}
	if flusher, ok := w.(http.Flusher); ok {
		flusher.Flush()
	}
	return nil
}

// sendSSEError writes an error event to the client
func (s *Server) sendSSEError(w http.ResponseWriter, message string) {
	data, _ := json.Marshal(map[string]string{"error": message})
	fmt.Fprintf(w, "event: error\ndata: %s\n\n", data)
	if flusher, ok := w.(http.Flusher); ok {
		flusher.Flush()
	}
}

// serverLogger routes renderer logging to the server log
type serverLogger struct{}

func (serverLogger) Printf(format string, args ...interface{}) {
	log.Printf(format, args...)
}
