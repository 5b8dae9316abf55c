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
	"sync/atomic"
	"time"

	"github.com/df07/go-weekend-raytracer/pkg/renderer"
	"github.com/df07/go-weekend-raytracer/pkg/scene"
)

// Server handles web requests for the raytracer
type Server struct {
	port      int
	scenesDir string
	renders   atomic.Int64 // Counter used to tag render logs
}

// NewServer creates a new web server serving built-in scenes and files from scenesDir
func NewServer(port int, scenesDir string) *Server {
	return &Server{port: port, scenesDir: scenesDir}
}

// RenderRequest represents a render request from the client
type RenderRequest struct {
	Scene           string  `json:"scene"`           // Built-in name or scene file ID
	Width           int     `json:"width"`           // Image width
	AspectRatio     float64 `json:"aspectRatio"`     // Width / height
	SamplesPerPixel int     `json:"samplesPerPixel"` // Rays per pixel
	MaxDepth        int     `json:"maxDepth"`        // Maximum bounce depth
	Seed            int64   `json:"seed"`            // Base random seed
}

// Height returns the image height implied by width and aspect ratio
func (r *RenderRequest) Height() int {
	return int(float64(r.Width) / r.AspectRatio)
}

// RenderResult is the payload of the final "complete" event
type RenderResult struct {
	ImageData   string  `json:"imageData"` // Base64 encoded PNG
	Width       int     `json:"width"`
	Height      int     `json:"height"`
	Stats       Stats   `json:"stats"`
	Luminance   float64 `json:"luminance"`
	ElapsedMs   int64   `json:"elapsedMs"`
	SphereCount int     `json:"sphereCount"`
}

// Stats represents render statistics
type Stats struct {
	TotalPixels    int     `json:"totalPixels"`
	TotalSamples   int     `json:"totalSamples"`
	AverageSamples float64 `json:"averageSamples"`
	Workers        int     `json:"workers"`
}

// Handler returns the HTTP handler with all API routes
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/health", s.handleHealth)
	mux.HandleFunc("/api/scenes", s.handleScenes)
	mux.HandleFunc("/api/render", s.handleRender)
	mux.HandleFunc("/api/inspect", s.handleInspect)
	return mux
}

// Start starts the web server
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.port)
	log.Printf("Starting web server on http://localhost%s", addr)
	return http.ListenAndServe(addr, s.Handler())
}

// handleHealth provides a simple health check endpoint
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleScenes lists built-in and discovered scenes
func (s *Server) handleScenes(w http.ResponseWriter, r *http.Request) {
	scenes, err := scene.ListAllScenes(s.scenesDir, renderer.NewDefaultLogger())
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, scenes)
}

// handleRender renders a scene while streaming console output via SSE
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	// Set SSE headers
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("Access-Control-Allow-Origin", "*")

	req, err := s.parseRenderRequest(r.URL.Query())
	if err != nil {
		s.sendSSEError(w, fmt.Sprintf("Invalid request: %v", err))
		return
	}

	sceneObj, err := s.createScene(req.Scene, req.AspectRatio)
	if err != nil {
		s.sendSSEError(w, err.Error())
		return
	}

	renderID := fmt.Sprintf("render-%d", s.renders.Add(1))
	consoleChan := make(chan ConsoleMessage, 100)

	raytracer := renderer.NewRaytracer(sceneObj, req.Width, req.Height())
	raytracer.SetSamplingConfig(renderer.SamplingConfig{
		SamplesPerPixel: req.SamplesPerPixel,
		MaxDepth:        req.MaxDepth,
	})
	raytracer.SetLogger(NewWebLogger(renderID, consoleChan))

	type renderOutcome struct {
		img   *image.RGBA
		stats renderer.RenderStats
		err   error
	}

	// Use request context to detect client disconnection
	ctx := r.Context()
	startTime := time.Now()
	done := make(chan renderOutcome, 1)
	go func() {
		img, stats, err := raytracer.Render(ctx, renderer.RenderOptions{Seed: req.Seed})
		done <- renderOutcome{img: img, stats: stats, err: err}
	}()

	// Only this goroutine writes to w
	for {
		select {
		case msg := <-consoleChan:
			s.sendConsoleMessage(w, msg)
		case outcome := <-done:
			// Flush console output queued before the render finished
			for drained := false; !drained; {
				select {
				case msg := <-consoleChan:
					s.sendConsoleMessage(w, msg)
				default:
					drained = true
				}
			}

			if outcome.err != nil {
				s.sendSSEError(w, fmt.Sprintf("Render error: %v", outcome.err))
				return
			}

			imageData, err := imageToBase64PNG(outcome.img)
			if err != nil {
				s.sendSSEError(w, fmt.Sprintf("Failed to encode image: %v", err))
				return
			}

			result := RenderResult{
				ImageData: imageData,
				Width:     req.Width,
				Height:    req.Height(),
				Stats: Stats{
					TotalPixels:    outcome.stats.TotalPixels,
					TotalSamples:   outcome.stats.TotalSamples,
					AverageSamples: outcome.stats.AverageSamples,
					Workers:        outcome.stats.Workers,
				},
				Luminance:   renderer.CalculateAverageLuminance(outcome.img),
				ElapsedMs:   time.Since(startTime).Milliseconds(),
				SphereCount: sceneObj.GetPrimitiveCount(),
			}
			data, err := json.Marshal(result)
			if err != nil {
				s.sendSSEError(w, fmt.Sprintf("Failed to encode result: %v", err))
				return
			}
			s.sendSSEEvent(w, "complete", string(data))
			return
		}
	}
}

// parseRenderRequest parses request parameters
func (s *Server) parseRenderRequest(values url.Values) (*RenderRequest, error) {
	req := &RenderRequest{Scene: "default"}
	if name := values.Get("scene"); name != "" {
		req.Scene = name
	}

	// Parse and validate all parameters using helper functions
	var err error
	if req.Width, err = parseIntParam(values, "width", 400, 16, 2000); err != nil {
		return nil, err
	}
	if req.AspectRatio, err = parseFloatParam(values, "aspectRatio", 16.0/9.0, 0.1, 10); err != nil {
		return nil, err
	}
	if req.SamplesPerPixel, err = parseIntParam(values, "samples", 20, 1, 10000); err != nil {
		return nil, err
	}
	if req.MaxDepth, err = parseIntParam(values, "depth", 10, 0, 1000); err != nil {
		return nil, err
	}
	seed, err := parseIntParam(values, "seed", 42, 0, 1<<31-1)
	if err != nil {
		return nil, err
	}
	req.Seed = int64(seed)

	if req.Height() < 1 {
		return nil, fmt.Errorf("width %d with aspect ratio %g leaves no rows", req.Width, req.AspectRatio)
	}

	// Performance warning
	if req.Width*req.Height() > 800*600 && req.SamplesPerPixel > 100 {
		log.Printf("Render warning: Large image with high samples may render slowly")
	}

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

// parseFloatParam parses a float parameter from URL query with validation
func parseFloatParam(values url.Values, key string, defaultValue, min, max float64) (float64, error) {
	if value := values.Get(key); value != "" {
		parsed, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return 0, fmt.Errorf("invalid %s: %s", key, value)
		}
		if parsed < min || parsed > max {
			return 0, fmt.Errorf("%s must be between %f and %f, got: %f", key, min, max, parsed)
		}
		return parsed, nil
	}
	return defaultValue, nil
}

// createScene resolves a built-in scene or a discovered scene file
func (s *Server) createScene(sceneName string, aspectRatio float64) (*scene.Scene, error) {
	if sceneObj, err := scene.NewBuiltinScene(sceneName, aspectRatio); err == nil {
		return sceneObj, nil
	}
	if info, ok := scene.FindScene(s.scenesDir, sceneName, renderer.NewDefaultLogger()); ok {
		return scene.LoadSceneFile(info.FilePath, aspectRatio)
	}
	return nil, fmt.Errorf("unknown scene: %s", sceneName)
}

// imageToBase64PNG converts an image to base64-encoded PNG
func imageToBase64PNG(img image.Image) (string, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

// sendConsoleMessage forwards a render log line as a "console" event
func (s *Server) sendConsoleMessage(w http.ResponseWriter, msg ConsoleMessage) {
	data, err := json.Marshal(msg)
	if err != nil {
		return
	}
	s.sendSSEEvent(w, "console", string(data))
}

// sendSSEError sends an error via SSE
func (s *Server) sendSSEError(w http.ResponseWriter, message string) error {
	return s.sendSSEEvent(w, "error", message)
}

// sendSSEEvent sends a generic SSE event
func (s *Server) sendSSEEvent(w http.ResponseWriter, event, data string) error {
	if flusher, ok := w.(http.Flusher); ok {
		fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event, data)
		flusher.Flush()
		return nil
	}
	return fmt.Errorf("streaming not supported")
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
