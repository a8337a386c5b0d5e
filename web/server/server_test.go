package server

import (
	"bytes"
	"encoding/json"
	"image/png"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/labstack/gommon/log"
	"github.com/sixarne/raytracer/pkg/config"
	"github.com/sixarne/raytracer/pkg/renderer"
	"golang.org/x/image/bmp"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()

	cfg := config.DefaultConfig()
	cfg.Render.Scene = "single-sphere"
	cfg.Render.Width = 32
	cfg.Render.Height = 24
	cfg.Server.MaxWidth = 200
	cfg.Server.MaxHeight = 200

	logger := log.New("test")
	logger.SetOutput(io.Discard)

	srv, err := NewServer(cfg, logger)
	if err != nil {
		t.Fatalf("NewServer failed: %v", err)
	}
	return srv
}

func doRequest(t *testing.T, srv *Server, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	return rec
}

func decodeSettings(t *testing.T, rec *httptest.ResponseRecorder) SettingsResponse {
	t.Helper()

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var resp SettingsResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Invalid settings JSON: %v", err)
	}
	return resp
}

func TestHealth(t *testing.T) {
	rec := doRequest(t, newTestServer(t), http.MethodGet, "/api/health", "")
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), `"ok"`) {
		t.Errorf("Unexpected health response %d: %s", rec.Code, rec.Body.String())
	}
}

func TestScenes(t *testing.T) {
	rec := doRequest(t, newTestServer(t), http.MethodGet, "/api/scenes", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}

	var scenes []struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &scenes); err != nil {
		t.Fatalf("Invalid JSON: %v", err)
	}
	ids := map[string]bool{}
	for _, s := range scenes {
		ids[s.ID] = true
	}
	for _, want := range []string{"solid", "spheres", "materials", "reference", "mesh", "single-sphere"} {
		if !ids[want] {
			t.Errorf("Expected scene %q in list", want)
		}
	}
}

func TestSettingsControls(t *testing.T) {
	srv := newTestServer(t)

	initial := decodeSettings(t, doRequest(t, srv, http.MethodGet, "/api/settings", ""))
	if diff := cmp.Diff(renderer.DefaultSettings(), initial.Settings); diff != "" {
		t.Errorf("Unexpected initial settings (-want +got):\n%s", diff)
	}

	cycled := decodeSettings(t, doRequest(t, srv, http.MethodPost, "/api/lighting-mode/cycle", ""))
	if cycled.Settings.LightingMode != renderer.ObservedArea {
		t.Errorf("Expected observed-area after cycling, got %s", cycled.Settings.LightingMode)
	}

	set := decodeSettings(t, doRequest(t, srv, http.MethodPost, "/api/lighting-mode", `{"lightingMode":"brdf"}`))
	if set.Settings.LightingMode != renderer.BRDF {
		t.Errorf("Expected brdf, got %s", set.Settings.LightingMode)
	}

	rec := doRequest(t, srv, http.MethodPost, "/api/lighting-mode", `{"lightingMode":"moonlight"}`)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 for unknown mode, got %d", rec.Code)
	}

	toggled := decodeSettings(t, doRequest(t, srv, http.MethodPost, "/api/shadows/toggle", ""))
	if toggled.Settings.ShadowsEnabled {
		t.Error("Expected shadows disabled after toggle")
	}

	found := false
	for _, msg := range srv.console.Messages() {
		if strings.Contains(msg.Message, "Lighting mode: observed-area") {
			found = true
		}
	}
	if !found {
		t.Error("Expected the mode change in the console log")
	}
}

func TestCamera(t *testing.T) {
	srv := newTestServer(t)

	resp := decodeSettings(t, doRequest(t, srv, http.MethodPost, "/api/camera",
		`{"pose":{"origin":[1,2,3],"yaw":90,"pitch":80,"fov":60}}`))
	want := &CameraPose{Origin: [3]float64{1, 2, 3}, Yaw: 90, Pitch: 30, FOV: 60}
	if diff := cmp.Diff(want, resp.Camera); diff != "" {
		t.Errorf("Unexpected pose (-want +got):\n%s", diff)
	}

	// Yaw 90 pitched up 30 degrees: one second forward at speed 10 adds 10*cos(30deg) to X
	resp = decodeSettings(t, doRequest(t, srv, http.MethodPost, "/api/camera",
		`{"input":{"forward":true},"deltaSeconds":1}`))
	if resp.Camera == nil || resp.Camera.Origin[0] < 9.6 || resp.Camera.Origin[1] < 6.9 {
		t.Errorf("Expected camera to move along +X, got %+v", resp.Camera)
	}

	resp = decodeSettings(t, doRequest(t, srv, http.MethodPost, "/api/camera", `{"reset":true}`))
	if resp.Camera != nil {
		t.Errorf("Expected camera reset, got %+v", resp.Camera)
	}

	if rec := doRequest(t, srv, http.MethodPost, "/api/camera", `{}`); rec.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 for empty camera request, got %d", rec.Code)
	}
}

func TestRender(t *testing.T) {
	srv := newTestServer(t)

	tests := []struct {
		name        string
		query       string
		contentType string
		width       int
		height      int
	}{
		{"defaults", "", "image/png", 32, 24},
		{"png", "?scene=single-sphere&width=40&height=30&format=png", "image/png", 40, 30},
		{"bmp", "?scene=single-sphere&width=20&height=10&format=bmp", "image/bmp", 20, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doRequest(t, srv, http.MethodGet, "/api/render"+tt.query, "")
			if rec.Code != http.StatusOK {
				t.Fatalf("Expected 200, got %d: %s", rec.Code, rec.Body.String())
			}
			if got := rec.Header().Get("Content-Type"); got != tt.contentType {
				t.Errorf("Expected %s, got %s", tt.contentType, got)
			}
			if rec.Header().Get("X-Render-Hit-Pixels") == "" {
				t.Error("Expected render statistics headers")
			}

			body := bytes.NewReader(rec.Body.Bytes())
			var width, height int
			if tt.contentType == "image/bmp" {
				img, err := bmp.Decode(body)
				if err != nil {
					t.Fatalf("Invalid bitmap: %v", err)
				}
				width, height = img.Bounds().Dx(), img.Bounds().Dy()
			} else {
				img, err := png.Decode(body)
				if err != nil {
					t.Fatalf("Invalid PNG: %v", err)
				}
				width, height = img.Bounds().Dx(), img.Bounds().Dy()
			}
			if width != tt.width || height != tt.height {
				t.Errorf("Expected %dx%d, got %dx%d", tt.width, tt.height, width, height)
			}
		})
	}
}

func TestRender_BadRequests(t *testing.T) {
	srv := newTestServer(t)

	tests := []struct {
		name  string
		query string
	}{
		{"unknown scene", "?scene=nope"},
		{"width too large", "?width=5000"},
		{"width not a number", "?width=wide"},
		{"unknown format", "?format=gif"},
		{"negative time", "?time=-1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doRequest(t, srv, http.MethodGet, "/api/render"+tt.query, "")
			if rec.Code != http.StatusBadRequest {
				t.Errorf("Expected 400, got %d: %s", rec.Code, rec.Body.String())
			}
		})
	}
}

func TestInspect(t *testing.T) {
	srv := newTestServer(t)

	rec := doRequest(t, srv, http.MethodGet, "/api/inspect?scene=single-sphere&width=100&height=100&x=50&y=50", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var hit InspectResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &hit); err != nil {
		t.Fatalf("Invalid JSON: %v", err)
	}
	if !hit.Hit || hit.GeometryType != "sphere" || hit.MaterialType != "lambert" {
		t.Errorf("Expected a lambert sphere at the center, got %+v", hit)
	}
	if hit.Distance < 3.9 || hit.Distance > 4.1 {
		t.Errorf("Expected distance near 4, got %f", hit.Distance)
	}

	rec = doRequest(t, srv, http.MethodGet, "/api/inspect?scene=single-sphere&width=100&height=100&x=0&y=0", "")
	var miss InspectResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &miss); err != nil {
		t.Fatalf("Invalid JSON: %v", err)
	}
	if miss.Hit || miss.Color != "#ffffff" {
		t.Errorf("Expected background miss at the corner, got %+v", miss)
	}

	rec = doRequest(t, srv, http.MethodGet, "/api/inspect?width=100&height=100&x=100&y=0", "")
	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 for out of bounds pixel, got %d", rec.Code)
	}
}

func TestConsoleEndpoint(t *testing.T) {
	srv := newTestServer(t)
	doRequest(t, srv, http.MethodGet, "/api/render", "")

	rec := doRequest(t, srv, http.MethodGet, "/api/console", "")
	var messages []ConsoleMessage
	if err := json.Unmarshal(rec.Body.Bytes(), &messages); err != nil {
		t.Fatalf("Invalid JSON: %v", err)
	}
	if len(messages) == 0 || !strings.Contains(messages[len(messages)-1].Message, "Rendered single-sphere") {
		t.Errorf("Expected a render message, got %+v", messages)
	}
}
