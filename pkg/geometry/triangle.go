package geometry

import (
	"fmt"

	"github.com/sixarne/raytracer/pkg/core"
)

// CullMode selects which side of a triangle is invisible to rays
type CullMode int

const (
	NoCulling        CullMode = iota // Both sides are hit
	FrontFaceCulling                 // Faces whose normal points toward the ray origin are skipped
	BackFaceCulling                  // Faces whose normal points away from the ray origin are skipped
)

// String returns the name of the cull mode
func (c CullMode) String() string {
	switch c {
	case NoCulling:
		return "none"
	case FrontFaceCulling:
		return "front"
	case BackFaceCulling:
		return "back"
	default:
		return fmt.Sprintf("CullMode(%d)", int(c))
	}
}

// triangleEpsilon bounds the Moller-Trumbore determinant and the smallest accepted t
const triangleEpsilon = 1e-6

// Triangle represents a single triangle defined by three vertices
type Triangle struct {
	V0, V1, V2    core.Vec3 // The three vertices
	Normal        core.Vec3 // Unit face normal, (V1-V0)x(V2-V0) unless supplied
	Cull          CullMode
	MaterialIndex uint8
}

// NewTriangle creates a new triangle from three vertices
func NewTriangle(v0, v1, v2 core.Vec3, cull CullMode, materialIndex uint8) Triangle {
	return Triangle{
		V0:            v0,
		V1:            v1,
		V2:            v2,
		Normal:        FaceNormal(v0, v1, v2),
		Cull:          cull,
		MaterialIndex: materialIndex,
	}
}

// NewTriangleWithNormal creates a new triangle from three vertices with a custom normal
func NewTriangleWithNormal(v0, v1, v2, normal core.Vec3, cull CullMode, materialIndex uint8) Triangle {
	return Triangle{
		V0:            v0,
		V1:            v1,
		V2:            v2,
		Normal:        normal.Normalize(),
		Cull:          cull,
		MaterialIndex: materialIndex,
	}
}

// FaceNormal returns the unit normal of the counter-clockwise winding v0, v1, v2
func FaceNormal(v0, v1, v2 core.Vec3) core.Vec3 {
	return v1.Subtract(v0).Cross(v2.Subtract(v0)).Normalize()
}

// culled applies the cull policy to the cosine between the face normal and the ray
func (t *Triangle) culled(ray core.Ray) bool {
	normalView := t.Normal.Dot(ray.Direction)
	switch {
	case normalView == 0:
		return true
	case t.Cull == FrontFaceCulling && normalView < 0:
		return true
	case t.Cull == BackFaceCulling && normalView > 0:
		return true
	}
	return false
}

// intersect runs the Moller-Trumbore test and returns the ray parameter
func (t *Triangle) intersect(ray core.Ray) (float64, bool) {
	if t.culled(ray) {
		return 0, false
	}

	// Calculate two edge vectors
	edge1 := t.V1.Subtract(t.V0)
	edge2 := t.V2.Subtract(t.V0)

	// Calculate determinant
	h := ray.Direction.Cross(edge2)
	a := edge1.Dot(h)

	// If determinant is near zero, ray lies in plane of triangle
	if a > -triangleEpsilon && a < triangleEpsilon {
		return 0, false
	}

	f := 1.0 / a
	s := ray.Origin.Subtract(t.V0)
	u := f * s.Dot(h)

	// Check if intersection is outside triangle
	if u < 0.0 || u > 1.0 {
		return 0, false
	}

	q := s.Cross(edge1)
	v := f * ray.Direction.Dot(q)

	// Check if intersection is outside triangle
	if v < 0.0 || u+v > 1.0 {
		return 0, false
	}

	tParam := f * edge2.Dot(q)
	if tParam <= triangleEpsilon || !ray.InRange(tParam) {
		return 0, false
	}
	return tParam, true
}

// HitClosest tests if a ray intersects with the triangle
func (t *Triangle) HitClosest(ray core.Ray) HitRecord {
	tParam, ok := t.intersect(ray)
	if !ok {
		return NoHit()
	}

	return HitRecord{
		DidHit:        true,
		Point:         ray.At(tParam),
		Normal:        t.Normal,
		T:             tParam,
		MaterialIndex: t.MaterialIndex,
	}
}

// HitAny reports whether the ray intersects the triangle
func (t *Triangle) HitAny(ray core.Ray) bool {
	_, ok := t.intersect(ray)
	return ok
}

// BoundingBox returns the axis-aligned bounding box for this triangle
func (t *Triangle) BoundingBox() core.AABB {
	return core.NewAABBFromPoints(t.V0, t.V1, t.V2)
}
