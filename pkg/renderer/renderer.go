package renderer

import (
	"fmt"
	"sync"
	"time"

	"github.com/sixarne/raytracer/pkg/core"
	"github.com/sixarne/raytracer/pkg/scene"
)

// ShadowBias offsets shadow ray origins along the surface normal and is the
// lower bound of their parametric interval
const ShadowBias = 0.001

// Settings controls how a frame is shaded
type Settings struct {
	LightingMode   LightingMode `json:"lightingMode"`
	ShadowsEnabled bool         `json:"shadowsEnabled"`
	ShadowFactor   float64      `json:"shadowFactor"` // Fraction of light kept when occluded; 0 is a hard shadow
	Background     core.Vec3    `json:"background"`
	NumWorkers     int          `json:"numWorkers"` // 0 selects DefaultWorkerCount
}

// DefaultSettings returns combined lighting with hard shadows on a white background
func DefaultSettings() Settings {
	return Settings{
		LightingMode:   Combined,
		ShadowsEnabled: true,
		ShadowFactor:   0,
		Background:     core.White,
	}
}

// Renderer shades frames of a scene. Settings may be changed from other
// goroutines between frames.
type Renderer struct {
	mu       sync.RWMutex
	settings Settings
	logger   core.Logger
}

// NewRenderer creates a renderer; a nil logger discards output
func NewRenderer(settings Settings, logger core.Logger) *Renderer {
	if logger == nil {
		logger = core.NopLogger{}
	}
	return &Renderer{settings: settings, logger: logger}
}

// Settings returns a copy of the current settings
func (r *Renderer) Settings() Settings {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.settings
}

// CycleLightingMode advances to the next lighting mode and returns it
func (r *Renderer) CycleLightingMode() LightingMode {
	r.mu.Lock()
	r.settings.LightingMode = r.settings.LightingMode.Cycle()
	mode := r.settings.LightingMode
	r.mu.Unlock()

	r.logger.Printf("Lighting mode: %s\n", mode)
	return mode
}

// SetLightingMode selects a lighting mode
func (r *Renderer) SetLightingMode(mode LightingMode) {
	r.mu.Lock()
	r.settings.LightingMode = mode
	r.mu.Unlock()

	r.logger.Printf("Lighting mode: %s\n", mode)
}

// ToggleShadows flips shadow casting and returns the new state
func (r *Renderer) ToggleShadows() bool {
	r.mu.Lock()
	r.settings.ShadowsEnabled = !r.settings.ShadowsEnabled
	enabled := r.settings.ShadowsEnabled
	r.mu.Unlock()

	r.logger.Printf("Shadows enabled: %t\n", enabled)
	return enabled
}

// SetShadows enables or disables shadow casting
func (r *Renderer) SetShadows(enabled bool) {
	r.mu.Lock()
	r.settings.ShadowsEnabled = enabled
	r.mu.Unlock()
}

// Render shades every pixel of fb from the scene's camera. The scene must not
// be modified until Render returns.
func (r *Renderer) Render(s *scene.Scene, fb *Framebuffer) (RenderStats, error) {
	if fb == nil || fb.Width <= 0 || fb.Height <= 0 || len(fb.Pixels) != fb.Width*fb.Height {
		return RenderStats{}, fmt.Errorf("invalid framebuffer")
	}
	if err := s.Prepare(); err != nil {
		return RenderStats{}, fmt.Errorf("failed to prepare scene %q: %w", s.Name, err)
	}

	settings := r.Settings()
	start := time.Now()

	renderRow := func(y int) RenderStats {
		var stats RenderStats
		for x := 0; x < fb.Width; x++ {
			ray := s.Camera.GetRay(x, y, fb.Width, fb.Height)
			color, result := trace(s, ray, settings)
			fb.Set(x, y, color)

			stats.TotalPixels++
			if result.hit {
				stats.HitPixels++
			}
			if result.invalidMaterial {
				stats.InvalidMaterialHits++
			}
		}
		return stats
	}

	pool := NewWorkerPool(renderRow, fb.Height, settings.NumWorkers)
	pool.Start()
	for y := 0; y < fb.Height; y++ {
		pool.SubmitTask(RowTask{Y: y, TaskID: y})
	}

	stats := RenderStats{Workers: pool.GetNumWorkers()}
	for i := 0; i < fb.Height; i++ {
		result, _ := pool.GetResult()
		stats.Merge(result.Stats)
	}
	pool.Stop()
	stats.Duration = time.Since(start)

	if stats.InvalidMaterialHits > 0 {
		r.logger.Printf("Scene %q: %d hits used an invalid material index, shaded with material 0\n",
			s.Name, stats.InvalidMaterialHits)
	}

	return stats, nil
}

// TraceRay returns the unmapped color seen along ray with the current settings
func (r *Renderer) TraceRay(s *scene.Scene, ray core.Ray) core.Vec3 {
	color, _ := trace(s, ray, r.Settings())
	return color
}

type traceResult struct {
	hit             bool
	invalidMaterial bool
}

func trace(s *scene.Scene, ray core.Ray, settings Settings) (core.Vec3, traceResult) {
	hit := s.GetClosestHit(ray)
	if !hit.DidHit {
		return settings.Background, traceResult{}
	}

	result := traceResult{hit: true}
	m, ok := s.Material(hit.MaterialIndex)
	if !ok {
		result.invalidMaterial = true
	}

	viewDir := ray.Direction.Negate().Normalize()
	shadowOrigin := hit.Point.Add(hit.Normal.Multiply(ShadowBias))

	color := core.Black
	for _, light := range s.Lights {
		sample := light.Sample(hit.Point)
		cosine := hit.Normal.Dot(sample.Direction)
		if cosine <= 0 {
			continue
		}

		visibility := 1.0
		if settings.ShadowsEnabled {
			shadowRay := core.NewRayInterval(shadowOrigin, sample.Direction, ShadowBias, sample.Distance)
			if s.DoesHit(shadowRay) {
				if settings.ShadowFactor <= 0 {
					continue
				}
				visibility = settings.ShadowFactor
			}
		}

		var contribution core.Vec3
		switch settings.LightingMode {
		case ObservedArea:
			contribution = core.White.Multiply(cosine)
		case Radiance:
			contribution = sample.Emission
		case BRDF:
			contribution = m.Shade(hit, sample.Direction, viewDir)
		default:
			contribution = sample.Emission.MultiplyVec(m.Shade(hit, sample.Direction, viewDir)).Multiply(cosine)
		}
		color = color.Add(contribution.Multiply(visibility))
	}

	return color, result
}
