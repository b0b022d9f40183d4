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
	"time"

	"github.com/df07/luminara/pkg/core"
	"github.com/df07/luminara/pkg/renderer"
)

// RenderUpdate carries the finished image sent via SSE
type RenderUpdate struct {
	ImageData string `json:"imageData"` // Base64 encoded PNG
	Width     int    `json:"width"`
	Height    int    `json:"height"`
	Stats     Stats  `json:"stats"`
	ElapsedMs int64  `json:"elapsedMs"`
}

// Stats represents render statistics
type Stats struct {
	TotalPixels      int     `json:"totalPixels"`
	TotalSamples     int64   `json:"totalSamples"`
	AverageSamples   float64 `json:"averageSamples"`
	Rows             int     `json:"rows"`
	Workers          int     `json:"workers"`
	AverageLuminance float64 `json:"averageLuminance"`
}

// renderOutcome is the result of a background render
type renderOutcome struct {
	img   *image.RGBA
	stats renderer.RenderStats
	err   error
}

// handleRender renders a scene and streams console output followed by the
// finished image via SSE. Only this goroutine writes to the response.
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	s.setSSEHeaders(w)
	ctx := r.Context()

	// Parse and validate request
	req, err := s.parseRenderRequest(r)
	if err != nil {
		s.sendSSEError(w, fmt.Sprintf("Invalid request: %v", err))
		return
	}

	consoleChan, webLogger := s.setupConsoleLogging()

	sceneObj, err := s.createScene(req, webLogger)
	if err != nil {
		s.drainConsole(w, consoleChan)
		s.sendSSEError(w, err.Error())
		return
	}

	config := renderer.Config{
		Width:      req.Width,
		Height:     req.Height,
		NumWorkers: 0, // Auto-detect
		Seed:       req.Seed,
	}
	raytracer := renderer.NewRaytracer(sceneObj, config, webLogger)

	startTime := time.Now()
	done := make(chan renderOutcome, 1)
	go func() {
		img, stats, err := raytracer.Render(ctx)
		done <- renderOutcome{img: img, stats: stats, err: err}
	}()

	for {
		select {
		case msg := <-consoleChan:
			s.sendConsoleMessage(w, msg)

		case outcome := <-done:
			s.drainConsole(w, consoleChan)
			if outcome.err != nil {
				s.sendSSEError(w, fmt.Sprintf("Render error: %v", outcome.err))
				return
			}
			if err := s.sendRenderUpdate(w, outcome, startTime); err != nil {
				s.sendSSEError(w, err.Error())
				return
			}
			s.sendSSEEvent(w, "complete", "Rendering completed")
			return
		}
	}
}

// setSSEHeaders sets the required headers for Server-Sent Events
func (s *Server) setSSEHeaders(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("Access-Control-Allow-Origin", "*")
}

// setupConsoleLogging creates console channel and web logger for a render
func (s *Server) setupConsoleLogging() (chan ConsoleMessage, core.Logger) {
	consoleChan := make(chan ConsoleMessage, 50)
	renderID := fmt.Sprintf("render-%d", time.Now().UnixNano())
	webLogger := NewWebLogger(renderID, consoleChan)
	return consoleChan, webLogger
}

// drainConsole forwards console messages that are already queued
func (s *Server) drainConsole(w http.ResponseWriter, consoleChan chan ConsoleMessage) {
	for {
		select {
		case msg := <-consoleChan:
			s.sendConsoleMessage(w, msg)
		default:
			return
		}
	}
}

// sendConsoleMessage sends one console message as an SSE event
func (s *Server) sendConsoleMessage(w http.ResponseWriter, msg ConsoleMessage) {
	data, err := json.Marshal(msg)
	if err != nil {
		log.Printf("Error marshaling console message: %v", err)
		return
	}
	s.sendSSEEvent(w, "console", string(data))
}

// sendRenderUpdate encodes the finished image and statistics
func (s *Server) sendRenderUpdate(w http.ResponseWriter, outcome renderOutcome, startTime time.Time) error {
	imageData, err := s.imageToBase64PNG(renderer.FlipVertical(outcome.img))
	if err != nil {
		return fmt.Errorf("failed to encode image: %w", err)
	}

	bounds := outcome.img.Bounds()
	update := RenderUpdate{
		ImageData: imageData,
		Width:     bounds.Dx(),
		Height:    bounds.Dy(),
		Stats: Stats{
			TotalPixels:      outcome.stats.TotalPixels,
			TotalSamples:     int64(outcome.stats.TotalSamples),
			AverageSamples:   outcome.stats.AverageSamples,
			Rows:             outcome.stats.Rows,
			Workers:          outcome.stats.NumWorkers,
			AverageLuminance: renderer.CalculateAverageLuminance(outcome.img),
		},
		ElapsedMs: time.Since(startTime).Milliseconds(),
	}

	data, err := json.Marshal(update)
	if err != nil {
		return err
	}
	return s.sendSSEEvent(w, "result", string(data))
}

// imageToBase64PNG converts an image to base64-encoded PNG
func (s *Server) imageToBase64PNG(img image.Image) (string, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

// sendSSEError sends an error via SSE
func (s *Server) sendSSEError(w http.ResponseWriter, message string) error {
	return s.sendSSEEvent(w, "error", message)
}

// sendSSEEvent sends a generic SSE event
func (s *Server) sendSSEEvent(w http.ResponseWriter, event, data string) error {
	if _, err := fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event, data); err != nil {
		return err
	}
	if flusher, ok := w.(http.Flusher); ok {
		flusher.Flush()
	}
	return nil
}
