package material

import (
	"github.com/sixarne/raytracer/pkg/core"
	"github.com/sixarne/raytracer/pkg/geometry"
)

// SolidColor ignores lighting and always returns its color
type SolidColor struct {
	Color core.Vec3
}

// NewSolidColor creates a flat colored material
func NewSolidColor(color core.Vec3) *SolidColor {
	return &SolidColor{Color: color}
}

// Shade implements Material
func (s *SolidColor) Shade(hit geometry.HitRecord, lightDir, viewDir core.Vec3) core.Vec3 {
	return s.Color
}
