package geometry

import (
	"math"
	"testing"

	"github.com/sixarne/raytracer/pkg/core"
)

func TestTriangle_HitClosest(t *testing.T) {
	// Create a triangle in the XY plane
	v0 := core.NewVec3(0, 0, 0)
	v1 := core.NewVec3(1, 0, 0)
	v2 := core.NewVec3(0, 1, 0)
	triangle := NewTriangle(v0, v1, v2, NoCulling, 2)

	tests := []struct {
		name      string
		ray       core.Ray
		shouldHit bool
		expectedT float64
	}{
		{
			name:      "Ray hits triangle center",
			ray:       core.NewRay(core.NewVec3(0.25, 0.25, -1), core.NewVec3(0, 0, 1)),
			shouldHit: true,
			expectedT: 1.0,
		},
		{
			name:      "Ray hits triangle edge",
			ray:       core.NewRay(core.NewVec3(0.5, 0, -1), core.NewVec3(0, 0, 1)),
			shouldHit: true,
			expectedT: 1.0,
		},
		{
			name:      "Ray misses triangle",
			ray:       core.NewRay(core.NewVec3(1, 1, -1), core.NewVec3(0, 0, 1)),
			shouldHit: false,
		},
		{
			name:      "Ray parallel to triangle",
			ray:       core.NewRay(core.NewVec3(0.25, 0.25, 0), core.NewVec3(1, 0, 0)),
			shouldHit: false,
		},
		{
			name:      "Ray hits from behind",
			ray:       core.NewRay(core.NewVec3(0.25, 0.25, 1), core.NewVec3(0, 0, -1)),
			shouldHit: true,
			expectedT: 1.0,
		},
		{
			name:      "Triangle behind the origin",
			ray:       core.NewRay(core.NewVec3(0.25, 0.25, 1), core.NewVec3(0, 0, 1)),
			shouldHit: false,
		},
		{
			name:      "Interval ends before triangle",
			ray:       core.NewRayInterval(core.NewVec3(0.25, 0.25, -1), core.NewVec3(0, 0, 1), 0.001, 0.5),
			shouldHit: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hit := triangle.HitClosest(tt.ray)

			if hit.DidHit != tt.shouldHit {
				t.Fatalf("Expected hit=%v, got hit=%v", tt.shouldHit, hit.DidHit)
			}
			if triangle.HitAny(tt.ray) != tt.shouldHit {
				t.Errorf("HitAny disagrees with HitClosest")
			}

			if tt.shouldHit {
				if math.Abs(hit.T-tt.expectedT) > 1e-6 {
					t.Errorf("Expected t=%f, got t=%f", tt.expectedT, hit.T)
				}

				expectedPoint := tt.ray.At(hit.T)
				if expectedPoint.Subtract(hit.Point).Length() > 1e-6 {
					t.Errorf("Hit point mismatch: expected %v, got %v", expectedPoint, hit.Point)
				}
				if hit.Normal != core.NewVec3(0, 0, 1) {
					t.Errorf("Expected face normal (0,0,1), got %v", hit.Normal)
				}
				if hit.MaterialIndex != 2 {
					t.Errorf("Expected material index 2, got %d", hit.MaterialIndex)
				}
			}
		})
	}
}

func TestTriangle_CullModes(t *testing.T) {
	// Counter-clockwise seen from -Z: face normal is +Z, so a ray travelling
	// along +Z sees n.d > 0
	ccw := [3]core.Vec3{core.NewVec3(0, 0, 0), core.NewVec3(1, 0, 0), core.NewVec3(0, 1, 0)}
	// Same triangle with reversed winding: face normal is -Z
	cw := [3]core.Vec3{ccw[0], ccw[2], ccw[1]}

	ray := core.NewRay(core.NewVec3(0.25, 0.25, -1), core.NewVec3(0, 0, 1))

	tests := []struct {
		name     string
		vertices [3]core.Vec3
		cull     CullMode
		expected bool
	}{
		{"ccw no culling", ccw, NoCulling, true},
		{"ccw front face culling", ccw, FrontFaceCulling, true},
		{"ccw back face culling", ccw, BackFaceCulling, false},
		{"cw no culling", cw, NoCulling, true},
		{"cw front face culling", cw, FrontFaceCulling, false},
		{"cw back face culling", cw, BackFaceCulling, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			triangle := NewTriangle(tt.vertices[0], tt.vertices[1], tt.vertices[2], tt.cull, 0)
			if got := triangle.HitClosest(ray).DidHit; got != tt.expected {
				t.Errorf("HitClosest: expected %t, got %t", tt.expected, got)
			}
			if got := triangle.HitAny(ray); got != tt.expected {
				t.Errorf("HitAny: expected %t, got %t", tt.expected, got)
			}
		})
	}
}

func TestTriangle_ReversedWindingFlipsCulledSide(t *testing.T) {
	ray := core.NewRay(core.NewVec3(0.2, 0.2, 3), core.NewVec3(0, 0, -1))
	a, b, c := core.NewVec3(0, 0, 0), core.NewVec3(1, 0, 0), core.NewVec3(0, 1, 0)

	for _, cull := range []CullMode{FrontFaceCulling, BackFaceCulling} {
		forward := NewTriangle(a, b, c, cull, 0)
		reversed := NewTriangle(a, c, b, cull, 0)
		if forward.HitAny(ray) == reversed.HitAny(ray) {
			t.Errorf("%s culling: reversing the winding should change the outcome", cull)
		}
	}
}

func TestTriangle_BoundingBox(t *testing.T) {
	v0 := core.NewVec3(0, 0, 0)
	v1 := core.NewVec3(2, 0, 0)
	v2 := core.NewVec3(1, 3, 0)
	triangle := NewTriangle(v0, v1, v2, NoCulling, 0)

	bbox := triangle.BoundingBox()

	expectedMin := core.NewVec3(0, 0, 0)
	expectedMax := core.NewVec3(2, 3, 0)

	const tolerance = 1e-9
	if bbox.Min.Subtract(expectedMin).Length() > tolerance {
		t.Errorf("Expected min %v, got %v", expectedMin, bbox.Min)
	}
	if bbox.Max.Subtract(expectedMax).Length() > tolerance {
		t.Errorf("Expected max %v, got %v", expectedMax, bbox.Max)
	}
}

func TestCullMode_String(t *testing.T) {
	if NoCulling.String() != "none" || FrontFaceCulling.String() != "front" || BackFaceCulling.String() != "back" {
		t.Error("Unexpected cull mode names")
	}
	if CullMode(9).String() != "CullMode(9)" {
		t.Errorf("Unexpected name for unknown mode: %s", CullMode(9))
	}
}
