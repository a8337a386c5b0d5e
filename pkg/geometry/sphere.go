package geometry

import (
	"math"

	"github.com/sixarne/raytracer/pkg/core"
)

// Sphere represents a sphere shape
type Sphere struct {
	Center        core.Vec3
	Radius        float64
	MaterialIndex uint8
}

// NewSphere creates a new sphere
func NewSphere(center core.Vec3, radius float64, materialIndex uint8) *Sphere {
	return &Sphere{
		Center:        center,
		Radius:        radius,
		MaterialIndex: materialIndex,
	}
}

// intersect projects the sphere center onto the ray and returns the near root.
// The ray direction must be unit length.
func (s *Sphere) intersect(ray core.Ray) (float64, bool) {
	// Vector from ray origin to sphere center (hypotenuse)
	toCenter := s.Center.Subtract(ray.Origin)

	// Length of the center projected onto the ray
	projected := toCenter.Dot(ray.Direction)

	// Squared distance from the center to the ray
	distanceSquared := toCenter.LengthSquared() - projected*projected
	radiusSquared := s.Radius * s.Radius
	if distanceSquared > radiusSquared {
		return 0, false
	}

	t := projected - math.Sqrt(radiusSquared-distanceSquared)
	if !ray.InRange(t) {
		return 0, false
	}
	return t, true
}

// HitClosest tests if a ray intersects with the sphere
func (s *Sphere) HitClosest(ray core.Ray) HitRecord {
	t, ok := s.intersect(ray)
	if !ok {
		return NoHit()
	}

	point := ray.At(t)
	return HitRecord{
		DidHit:        true,
		Point:         point,
		Normal:        point.Subtract(s.Center).Normalize(),
		T:             t,
		MaterialIndex: s.MaterialIndex,
	}
}

// HitAny reports whether the ray intersects the sphere
func (s *Sphere) HitAny(ray core.Ray) bool {
	_, ok := s.intersect(ray)
	return ok
}

// BoundingBox returns the axis-aligned bounding box for this sphere
func (s *Sphere) BoundingBox() core.AABB {
	radius := core.NewVec3(s.Radius, s.Radius, s.Radius)
	return core.NewAABB(
		s.Center.Subtract(radius),
		s.Center.Add(radius),
	)
}
