package renderer

import (
	"fmt"
	"math"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/sixarne/raytracer/pkg/core"
	"github.com/sixarne/raytracer/pkg/material"
	"github.com/sixarne/raytracer/pkg/scene"
)

type recordingLogger struct {
	lines []string
}

func (l *recordingLogger) Printf(format string, args ...interface{}) {
	l.lines = append(l.lines, fmt.Sprintf(format, args...))
}

func TestRender_SingleSphere(t *testing.T) {
	s := scene.NewSingleSphereScene()
	fb := NewFramebuffer(100, 100)
	r := NewRenderer(DefaultSettings(), nil)

	stats, err := r.Render(s, fb)
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	if stats.TotalPixels != 100*100 {
		t.Errorf("Expected 10000 pixels, got %d", stats.TotalPixels)
	}
	if stats.HitPixels == 0 || stats.HitPixels == stats.TotalPixels {
		t.Errorf("Expected the sphere to cover part of the frame, got %d hits", stats.HitPixels)
	}

	center := fb.At(50, 50)
	if center == 0xFFFFFF {
		t.Errorf("Expected center pixel to show the sphere, got background")
	}
	if center == 0 {
		t.Errorf("Expected lit center pixel, got black")
	}
	if corner := fb.At(0, 0); corner != 0xFFFFFF {
		t.Errorf("Expected corner pixel to be background 0xFFFFFF, got %#08x", corner)
	}
}

func TestRender_BRDFModeShowsLambertAlbedo(t *testing.T) {
	s := scene.NewSingleSphereScene()
	fb := NewFramebuffer(100, 100)
	settings := DefaultSettings()
	settings.LightingMode = BRDF
	r := NewRenderer(settings, nil)

	if _, err := r.Render(s, fb); err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	// White Lambert with kd=1 reflects 1/pi, which is 81 in 8 bits
	if got := fb.At(50, 50); got != 0x00515151 {
		t.Errorf("Expected 0x00515151, got %#08x", got)
	}
}

func TestRender_WorkerCountDoesNotChangeImage(t *testing.T) {
	var frames [][]uint32
	for _, workers := range []int{1, 4} {
		settings := DefaultSettings()
		settings.NumWorkers = workers
		fb := NewFramebuffer(64, 48)

		stats, err := NewRenderer(settings, nil).Render(scene.NewMaterialsScene(), fb)
		if err != nil {
			t.Fatalf("Render with %d workers failed: %v", workers, err)
		}
		if stats.Workers != workers {
			t.Errorf("Expected %d workers, got %d", workers, stats.Workers)
		}
		frames = append(frames, fb.Pixels)
	}

	if diff := cmp.Diff(frames[0], frames[1]); diff != "" {
		t.Errorf("Image differs between worker counts (-1 worker +4 workers):\n%s", diff)
	}
}

func TestRender_InvalidMaterialFallsBack(t *testing.T) {
	s := scene.NewScene("invalid-material")
	s.AddSphere(core.NewVec3(0, 0, 5), 1, 42)
	s.AddPointLight(core.NewVec3(0, 0, 0), 1000, core.White)

	logger := &recordingLogger{}
	fb := NewFramebuffer(20, 20)
	stats, err := NewRenderer(DefaultSettings(), logger).Render(s, fb)
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	if stats.InvalidMaterialHits == 0 || stats.InvalidMaterialHits != stats.HitPixels {
		t.Errorf("Expected every hit to fall back, got %d of %d", stats.InvalidMaterialHits, stats.HitPixels)
	}
	// Material 0 is a red solid color
	if got := fb.At(10, 10); got != 0x00FF0000 {
		t.Errorf("Expected fallback red, got %#08x", got)
	}

	warnings := 0
	for _, line := range logger.lines {
		if strings.Contains(line, "invalid material") {
			warnings++
		}
	}
	if warnings != 1 {
		t.Errorf("Expected exactly one warning per render, got %d", warnings)
	}
}

func TestRender_RejectsBadFramebuffer(t *testing.T) {
	r := NewRenderer(DefaultSettings(), nil)
	fb := &Framebuffer{Width: 10, Height: 10, Pixels: make([]uint32, 5)}
	if _, err := r.Render(scene.NewSingleSphereScene(), fb); err == nil {
		t.Error("Expected an error for a mismatched pixel buffer")
	}
}

// newShadowScene places a sphere between a white floor and a point light
func newShadowScene(lightY float64) *scene.Scene {
	s := scene.NewScene("shadow")
	floor := s.AddMaterial(material.NewLambert(core.White, 1))
	s.AddPlane(core.NewVec3(0, 0, 0), core.NewVec3(0, 1, 0), floor)
	s.AddSphere(core.NewVec3(0, 2, 0), 1, floor)
	s.AddPointLight(core.NewVec3(0, lightY, 0), 50, core.White)
	return s
}

func TestTraceRay_Shadows(t *testing.T) {
	// Hits the floor at the origin, directly below the sphere
	ray := core.NewRay(core.NewVec3(0, 0.5, -5), core.NewVec3(0, -0.5, 5))
	unshadowed := 50.0 / 25 / math.Pi

	tests := []struct {
		name     string
		lightY   float64
		shadows  bool
		factor   float64
		expected float64
	}{
		{"shadows disabled", 5, false, 0, unshadowed},
		{"hard shadow", 5, true, 0, 0},
		{"half shadow", 5, true, 0.5, unshadowed / 2},
		{"light below occluder", 0.5, true, 0, 50 / 0.25 / math.Pi},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			settings := DefaultSettings()
			settings.ShadowsEnabled = tt.shadows
			settings.ShadowFactor = tt.factor
			r := NewRenderer(settings, nil)

			got := r.TraceRay(newShadowScene(tt.lightY), ray)
			want := core.NewVec3(tt.expected, tt.expected, tt.expected)
			if diff := cmp.Diff(want, got, cmpopts.EquateApprox(0, 1e-6)); diff != "" {
				t.Errorf("Unexpected color (-want +got):\n%s", diff)
			}
		})
	}
}

func TestTraceRay_LightingModes(t *testing.T) {
	s := newShadowScene(5)
	ray := core.NewRay(core.NewVec3(0, 0.5, -5), core.NewVec3(0, -0.5, 5))

	tests := []struct {
		mode     LightingMode
		expected float64
	}{
		{ObservedArea, 1},
		{Radiance, 2},
		{BRDF, 1 / math.Pi},
		{Combined, 2 / math.Pi},
	}

	for _, tt := range tests {
		t.Run(tt.mode.String(), func(t *testing.T) {
			settings := DefaultSettings()
			settings.ShadowsEnabled = false
			settings.LightingMode = tt.mode

			got := NewRenderer(settings, nil).TraceRay(s, ray)
			if math.Abs(got.X-tt.expected) > 1e-9 || got.X != got.Y || got.Y != got.Z {
				t.Errorf("Expected gray %f, got %v", tt.expected, got)
			}
		})
	}
}

func TestTraceRay_LightBehindSurfaceIsSkipped(t *testing.T) {
	s := scene.NewScene("below")
	floor := s.AddMaterial(material.NewLambert(core.White, 1))
	s.AddPlane(core.NewVec3(0, 0, 0), core.NewVec3(0, 1, 0), floor)
	s.AddPointLight(core.NewVec3(0, -5, 0), 100, core.White)

	ray := core.NewRay(core.NewVec3(0, 1, -1), core.NewVec3(0, -1, 1))
	for _, mode := range []LightingMode{ObservedArea, Radiance, BRDF, Combined} {
		settings := DefaultSettings()
		settings.LightingMode = mode
		if got := NewRenderer(settings, nil).TraceRay(s, ray); got != core.Black {
			t.Errorf("%s: expected no contribution from a light below the surface, got %v", mode, got)
		}
	}
}

func TestTraceRay_MissReturnsBackground(t *testing.T) {
	settings := DefaultSettings()
	settings.Background = core.NewVec3(0.1, 0.2, 0.3)
	r := NewRenderer(settings, nil)

	got := r.TraceRay(scene.NewScene("empty"), core.NewRay(core.NewVec3(0, 0, 0), core.UnitZ))
	if got != settings.Background {
		t.Errorf("Expected background %v, got %v", settings.Background, got)
	}
}

func TestRenderer_SettingsControls(t *testing.T) {
	logger := &recordingLogger{}
	r := NewRenderer(DefaultSettings(), logger)

	if mode := r.CycleLightingMode(); mode != ObservedArea {
		t.Errorf("Expected Combined to cycle to ObservedArea, got %s", mode)
	}
	if len(logger.lines) != 1 || !strings.Contains(logger.lines[0], "observed-area") {
		t.Errorf("Expected a log line naming the new mode, got %q", logger.lines)
	}

	r.SetLightingMode(BRDF)
	if r.Settings().LightingMode != BRDF {
		t.Errorf("Expected BRDF, got %s", r.Settings().LightingMode)
	}

	if r.ToggleShadows() {
		t.Error("Expected shadows to turn off")
	}
	r.SetShadows(true)
	if !r.Settings().ShadowsEnabled {
		t.Error("Expected shadows to be enabled")
	}
}
