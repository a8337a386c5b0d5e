package geometry

import (
	"math"

	"github.com/sixarne/raytracer/pkg/core"
)

// Plane represents an infinite plane defined by a point and normal
type Plane struct {
	Point         core.Vec3 // A point on the plane
	Normal        core.Vec3 // Unit normal vector
	MaterialIndex uint8
}

// NewPlane creates a new plane
func NewPlane(point, normal core.Vec3, materialIndex uint8) *Plane {
	return &Plane{
		Point:         point,
		Normal:        normal.Normalize(),
		MaterialIndex: materialIndex,
	}
}

// intersect returns the ray parameter of the plane crossing. A ray parallel to
// the plane divides by zero; the resulting NaN or Inf is treated as a miss.
func (p *Plane) intersect(ray core.Ray) (float64, bool) {
	t := p.Point.Subtract(ray.Origin).Dot(p.Normal) / ray.Direction.Dot(p.Normal)
	if math.IsNaN(t) || math.IsInf(t, 0) {
		return 0, false
	}
	return t, ray.InRange(t)
}

// HitClosest tests if a ray intersects with the plane
func (p *Plane) HitClosest(ray core.Ray) HitRecord {
	t, ok := p.intersect(ray)
	if !ok {
		return NoHit()
	}

	return HitRecord{
		DidHit:        true,
		Point:         ray.At(t),
		Normal:        p.Normal,
		T:             t,
		MaterialIndex: p.MaterialIndex,
	}
}

// HitAny reports whether the ray crosses the plane
func (p *Plane) HitAny(ray core.Ray) bool {
	_, ok := p.intersect(ray)
	return ok
}
