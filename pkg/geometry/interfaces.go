package geometry

import (
	"math"

	"github.com/sixarne/raytracer/pkg/core"
)

// HitRecord contains information about a ray-object intersection
type HitRecord struct {
	DidHit        bool      // Whether anything was hit
	Point         core.Vec3 // Point of intersection
	Normal        core.Vec3 // Unit surface normal at intersection
	T             float64   // Parameter t along the ray
	MaterialIndex uint8     // Index into the scene's material list
}

// NoHit returns an empty record whose T is larger than any valid hit
func NoHit() HitRecord {
	return HitRecord{T: math.Inf(1)}
}

// Closer reports whether h is a valid hit strictly closer than other.
// Ties keep the record that was found first.
func (h HitRecord) Closer(other HitRecord) bool {
	return h.DidHit && h.T < other.T
}

// Shape is implemented by every primitive the scene can intersect
type Shape interface {
	// HitClosest returns the nearest intersection inside the ray interval
	HitClosest(ray core.Ray) HitRecord
	// HitAny reports whether any intersection exists inside the ray interval
	HitAny(ray core.Ray) bool
}

var (
	_ Shape = (*Sphere)(nil)
	_ Shape = (*Plane)(nil)
	_ Shape = (*Triangle)(nil)
	_ Shape = (*TriangleMesh)(nil)
)
