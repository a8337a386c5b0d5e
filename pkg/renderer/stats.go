package renderer

import (
	"fmt"
	"time"
)

// RenderStats contains statistics about a rendered frame
type RenderStats struct {
	TotalPixels         int           `json:"totalPixels"`         // Pixels written
	HitPixels           int           `json:"hitPixels"`           // Pixels whose primary ray hit geometry
	InvalidMaterialHits int           `json:"invalidMaterialHits"` // Hits that fell back to material 0
	Duration            time.Duration `json:"duration"`
	Workers             int           `json:"workers"`
}

// Merge adds the per-pixel counters of other into s
func (s *RenderStats) Merge(other RenderStats) {
	s.TotalPixels += other.TotalPixels
	s.HitPixels += other.HitPixels
	s.InvalidMaterialHits += other.InvalidMaterialHits
}

// HitRatio returns the fraction of pixels that hit geometry
func (s RenderStats) HitRatio() float64 {
	if s.TotalPixels == 0 {
		return 0
	}
	return float64(s.HitPixels) / float64(s.TotalPixels)
}

func (s RenderStats) String() string {
	return fmt.Sprintf("%d pixels, %.1f%% hit, %d workers, %v",
		s.TotalPixels, 100*s.HitRatio(), s.Workers, s.Duration.Round(time.Microsecond))
}
