package server

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"image/png"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/golang/glog"

	"github.com/df07/go-tile-pathtracer/pkg/core"
	"github.com/df07/go-tile-pathtracer/pkg/loaders"
	"github.com/df07/go-tile-pathtracer/pkg/renderer"
)

// displayGamma is applied when encoding rendered images
const displayGamma = 2.0

// RenderRequest represents a render request from the client
type RenderRequest struct {
	Scene           string // Scene ID as listed by /api/scenes
	Width           int    // Image width
	Height          int    // Image height
	SamplesPerPixel int    // Samples per pixel
	MaxDepth        int    // Path length cutoff
	TileSize        int    // Tile edge length
	Workers         int    // Concurrent tiles (0 = CPU count)
	Seed            *int64 // Base seed, nil for a non-deterministic render
}

// ProgressUpdate reports the fraction of finished tiles
type ProgressUpdate struct {
	Percent float64 `json:"percent"`
}

// ImageUpdate carries the finished image
type ImageUpdate struct {
	ImageData string `json:"imageData"` // Base64 encoded PNG
	Stats     Stats  `json:"stats"`
	ElapsedMs int64  `json:"elapsedMs"`
}

// Stats represents render statistics
type Stats struct {
	TotalPixels      int     `json:"totalPixels"`
	TotalSamples     int     `json:"totalSamples"`
	Tiles            int     `json:"tiles"`
	Workers          int     `json:"workers"`
	SamplesPerSecond float64 `json:"samplesPerSecond"`
	MeanLuminance    float64 `json:"meanLuminance"`
}

// SSEEvent represents a unified SSE event for thread-safe writing
type SSEEvent struct {
	Type string // "console", "progress", "image", "error", "complete"
	Data string // JSON-encoded data
}

// parseRenderRequest parses and validates request parameters
func parseRenderRequest(values url.Values) (RenderRequest, error) {
	req := RenderRequest{Scene: values.Get("scene")}
	if req.Scene == "" {
		req.Scene = "cornell"
	}

	var err error
	if req.Width, err = parseIntParam(values, "width", 400, 1, 2000); err != nil {
		return req, err
	}
	if req.Height, err = parseIntParam(values, "height", 400, 1, 2000); err != nil {
		return req, err
	}
	if req.SamplesPerPixel, err = parseIntParam(values, "spp", 10, 1, 10000); err != nil {
		return req, err
	}
	if req.MaxDepth, err = parseIntParam(values, "maxDepth", 100, 1, 1000); err != nil {
		return req, err
	}
	if req.TileSize, err = parseIntParam(values, "tileSize", renderer.DefaultTileSize, 1, 512); err != nil {
		return req, err
	}
	if req.Workers, err = parseIntParam(values, "workers", 0, 0, 256); err != nil {
		return req, err
	}
	if value := values.Get("seed"); value != "" {
		seed, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return req, fmt.Errorf("invalid seed: %s", value)
		}
		req.Seed = &seed
	}

	if req.Width*req.Height > 800*600 && req.SamplesPerPixel > 100 {
		glog.Warningf("Render warning: Large image with high samples may render slowly")
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

// render opens the requested scene and renders it with the request's options
func (s *Server) render(ctx context.Context, req RenderRequest, logger core.Logger, progress func(float64)) (*renderer.Image, renderer.RenderStats, error) {
	sc, err := loaders.OpenScene(req.Scene, s.scenesDir, s.bvhOpts)
	if err != nil {
		return nil, renderer.RenderStats{}, err
	}
	logger.Printf("Scene %q: %d primitives, BVH depth %d\n", sc.Title, sc.Stats().Primitives, sc.Stats().MaxDepth)

	opts := renderer.RenderOptions{
		Width:           req.Width,
		Height:          req.Height,
		SamplesPerPixel: req.SamplesPerPixel,
		TileSize:        req.TileSize,
		NumWorkers:      req.Workers,
		MaxDepth:        req.MaxDepth,
		Progress:        progress,
		Logger:          logger,
	}
	if req.Seed != nil {
		base := *req.Seed
		opts.SeedFunc = func(tileIndex int) int64 { return base + int64(tileIndex) }
	}

	camera := renderer.NewCamera(renderer.CameraConfigFromView(sc.View, req.Width, req.Height))
	return renderer.Render(ctx, sc, camera, opts)
}

// handleRenderPNG renders synchronously and responds with the PNG image
func (s *Server) handleRenderPNG(w http.ResponseWriter, r *http.Request) {
	req, err := parseRenderRequest(r.URL.Query())
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("Invalid request: %v", err))
		return
	}

	img, stats, err := s.render(r.Context(), req, core.NewDefaultLogger(), nil)
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("Render error: %v", err))
		return
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img.ToRGBA(displayGamma)); err != nil {
		writeError(w, http.StatusInternalServerError, fmt.Sprintf("Failed to encode image: %v", err))
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("X-Render-Samples", strconv.Itoa(stats.TotalSamples))
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}

// handleRender renders while streaming console output and progress via SSE,
// then sends the finished image
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		writeError(w, http.StatusInternalServerError, "streaming not supported")
		return
	}
	setSSEHeaders(w)

	// A single goroutine owns the response writer
	events := make(chan SSEEvent, 100)
	written := make(chan struct{})
	go func() {
		defer close(written)
		writeSSEEvents(w, flusher, events)
	}()
	defer func() {
		close(events)
		<-written
	}()

	req, err := parseRenderRequest(r.URL.Query())
	if err != nil {
		events <- SSEEvent{Type: "error", Data: fmt.Sprintf("Invalid request: %v", err)}
		return
	}

	consoleChan := make(chan ConsoleMessage, 100)
	forwarded := make(chan struct{})
	go func() {
		defer close(forwarded)
		for msg := range consoleChan {
			events <- jsonEvent("console", msg)
		}
	}()

	renderID := fmt.Sprintf("render-%d", time.Now().UnixNano())
	startTime := time.Now()
	img, stats, err := s.render(r.Context(), req, NewWebLogger(renderID, consoleChan), progressSender(events))
	close(consoleChan)
	<-forwarded

	if err != nil {
		events <- SSEEvent{Type: "error", Data: fmt.Sprintf("Render error: %v", err)}
		return
	}

	imageData, err := imageToBase64PNG(img)
	if err != nil {
		events <- SSEEvent{Type: "error", Data: fmt.Sprintf("Failed to encode image: %v", err)}
		return
	}
	mean, _ := img.LuminanceSummary()
	events <- jsonEvent("image", ImageUpdate{
		ImageData: imageData,
		Stats: Stats{
			TotalPixels:      stats.TotalPixels,
			TotalSamples:     stats.TotalSamples,
			Tiles:            stats.Tiles,
			Workers:          stats.Workers,
			SamplesPerSecond: stats.SamplesPerSecond(),
			MeanLuminance:    mean,
		},
		ElapsedMs: time.Since(startTime).Milliseconds(),
	})
	events <- SSEEvent{Type: "complete", Data: "Rendering completed"}
}

func setSSEHeaders(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("Access-Control-Allow-Origin", "*")
}

// writeSSEEvents writes events until the channel is closed
// progressSender queues progress events without stalling render goroutines on a
// slow client. Intermediate updates are dropped when the queue is full, but the
// final 100% is always delivered since the writer drains events until close.
func progressSender(events chan<- SSEEvent) func(percent float64) {
	return func(percent float64) {
		event := jsonEvent("progress", ProgressUpdate{Percent: percent})
		if percent >= 100 {
			events <- event
			return
		}
		select {
		case events <- event:
		default:
		}
	}
}

func writeSSEEvents(w http.ResponseWriter, flusher http.Flusher, events <-chan SSEEvent) {
	for event := range events {
		fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event.Type, event.Data)
		flusher.Flush()
	}
}

func jsonEvent(eventType string, v interface{}) SSEEvent {
	data, err := json.Marshal(v)
	if err != nil {
		return SSEEvent{Type: "error", Data: fmt.Sprintf("Failed to encode %s event: %v", eventType, err)}
	}
	return SSEEvent{Type: eventType, Data: string(data)}
}

// imageToBase64PNG converts an image to base64-encoded PNG
func imageToBase64PNG(img *renderer.Image) (string, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img.ToRGBA(displayGamma)); err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}
