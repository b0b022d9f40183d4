package server

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"image/png"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func doRequest(t *testing.T, target string) *httptest.ResponseRecorder {
	t.Helper()
	server := NewServer(0)
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	server.Handler().ServeHTTP(rec, req)
	return rec
}

// sseData returns the data of the first SSE event with the given name
func sseData(body, event string) (string, bool) {
	for _, block := range strings.Split(body, "\n\n") {
		lines := strings.SplitN(block, "\n", 2)
		if len(lines) == 2 && lines[0] == "event: "+event {
			return strings.TrimPrefix(lines[1], "data: "), true
		}
	}
	return "", false
}

func TestHandleHealth(t *testing.T) {
	rec := doRequest(t, "/api/health")
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}

	var body map[string]string
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("Failed to decode body: %v", err)
	}
	if body["status"] != "ok" {
		t.Errorf("Expected status ok, got %v", body)
	}
}

func TestHandleScenes(t *testing.T) {
	rec := doRequest(t, "/api/scenes")

	var body map[string][]string
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("Failed to decode body: %v", err)
	}
	if strings.Join(body["scenes"], ",") != "book-cover,mesh,simple" {
		t.Errorf("Unexpected scenes: %v", body["scenes"])
	}
}

func TestHandleSceneConfig(t *testing.T) {
	tests := []struct {
		name       string
		target     string
		statusCode int
	}{
		{"simple", "/api/scene-config?scene=simple", http.StatusOK},
		{"default scene", "/api/scene-config", http.StatusOK},
		{"unknown scene", "/api/scene-config?scene=cornell", http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doRequest(t, tt.target)
			if rec.Code != tt.statusCode {
				t.Errorf("Expected %d, got %d: %s", tt.statusCode, rec.Code, rec.Body.String())
			}
		})
	}
}

func TestHandleRender(t *testing.T) {
	rec := doRequest(t, "/api/render?scene=simple&width=16&height=16&samples=1&depth=3&seed=7")
	body := rec.Body.String()

	if ct := rec.Header().Get("Content-Type"); ct != "text/event-stream" {
		t.Errorf("Expected SSE content type, got %q", ct)
	}
	if _, ok := sseData(body, "error"); ok {
		t.Fatalf("Unexpected error event: %s", body)
	}
	if _, ok := sseData(body, "complete"); !ok {
		t.Errorf("Expected complete event in %s", body)
	}
	if _, ok := sseData(body, "console"); !ok {
		t.Errorf("Expected console events in %s", body)
	}

	data, ok := sseData(body, "result")
	if !ok {
		t.Fatalf("Expected result event in %s", body)
	}

	var update RenderUpdate
	if err := json.Unmarshal([]byte(data), &update); err != nil {
		t.Fatalf("Failed to decode result: %v", err)
	}
	if update.Stats.TotalPixels != 256 || update.Stats.TotalSamples != 256 || update.Stats.Rows != 16 {
		t.Errorf("Unexpected stats: %+v", update.Stats)
	}

	raw, err := base64.StdEncoding.DecodeString(update.ImageData)
	if err != nil {
		t.Fatalf("Failed to decode base64 image: %v", err)
	}
	img, err := png.Decode(bytes.NewReader(raw))
	if err != nil {
		t.Fatalf("Failed to decode PNG: %v", err)
	}
	if img.Bounds().Dx() != 16 || img.Bounds().Dy() != 16 {
		t.Errorf("Expected 16x16 image, got %v", img.Bounds())
	}
}

func TestHandleRender_InvalidRequest(t *testing.T) {
	tests := []struct {
		name   string
		target string
	}{
		{"width too small", "/api/render?width=5"},
		{"samples not a number", "/api/render?samples=many"},
		{"bad seed", "/api/render?seed=x"},
		{"unknown scene", "/api/render?scene=cornell&width=16&height=16"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doRequest(t, tt.target)
			if _, ok := sseData(rec.Body.String(), "error"); !ok {
				t.Errorf("Expected error event, got %s", rec.Body.String())
			}
		})
	}
}

func TestHandleInspect(t *testing.T) {
	t.Run("center hits blue sphere", func(t *testing.T) {
		rec := doRequest(t, "/api/inspect?scene=simple&width=32&height=32&x=16&y=16")
		if rec.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d: %s", rec.Code, rec.Body.String())
		}

		var response InspectResponse
		if err := json.NewDecoder(rec.Body).Decode(&response); err != nil {
			t.Fatalf("Failed to decode response: %v", err)
		}
		if !response.Hit || response.GeometryType != "sphere" || response.MaterialType != "lambertian" {
			t.Errorf("Expected lambertian sphere hit, got %+v", response)
		}
		if !response.FrontFace {
			t.Error("Expected camera ray to hit the front face")
		}
	})

	t.Run("corner sees the sky", func(t *testing.T) {
		rec := doRequest(t, "/api/inspect?scene=simple&width=32&height=32&x=0&y=0")

		var response InspectResponse
		if err := json.NewDecoder(rec.Body).Decode(&response); err != nil {
			t.Fatalf("Failed to decode response: %v", err)
		}
		if response.Hit {
			t.Errorf("Expected miss at the top corner, got %+v", response)
		}
	})

	t.Run("out of bounds", func(t *testing.T) {
		rec := doRequest(t, "/api/inspect?scene=simple&width=32&height=32&x=40&y=0")
		if rec.Code != http.StatusBadRequest {
			t.Errorf("Expected 400, got %d", rec.Code)
		}
	})

	t.Run("missing coordinate", func(t *testing.T) {
		rec := doRequest(t, "/api/inspect?scene=simple&x=1")
		if rec.Code != http.StatusBadRequest {
			t.Errorf("Expected 400, got %d", rec.Code)
		}
	})
}

func TestParseIntParam(t *testing.T) {
	values := map[string][]string{"width": {"300"}, "bad": {"abc"}, "big": {"99999"}}

	tests := []struct {
		name     string
		key      string
		expected int
		wantErr  bool
	}{
		{"present", "width", 300, false},
		{"missing uses default", "height", 225, false},
		{"not a number", "bad", 0, true},
		{"out of range", "big", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseIntParam(values, tt.key, 225, 16, 2000)
			if (err != nil) != tt.wantErr {
				t.Fatalf("parseIntParam() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.expected {
				t.Errorf("Expected %d, got %d", tt.expected, got)
			}
		})
	}
}
