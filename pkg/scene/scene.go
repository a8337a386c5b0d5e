package scene

import (
	"fmt"

	"github.com/sixarne/raytracer/pkg/core"
	"github.com/sixarne/raytracer/pkg/geometry"
	"github.com/sixarne/raytracer/pkg/lights"
	"github.com/sixarne/raytracer/pkg/material"
)

// AnimateFunc advances scene animation given frame and total elapsed seconds
type AnimateFunc func(s *Scene, deltaSeconds, totalSeconds float64)

// Scene contains all the elements needed for rendering. Material 0 is always
// present and is used for any hit whose material index is out of range.
type Scene struct {
	Name      string
	Camera    *geometry.Camera
	Spheres   []geometry.Sphere
	Planes    []geometry.Plane
	Meshes    []*geometry.TriangleMesh
	Materials []material.Material
	Lights    []lights.Light

	animate AnimateFunc
}

// DefaultMaterial is the material every scene starts with
func DefaultMaterial() material.Material {
	return material.NewSolidColor(core.Red)
}

// NewScene creates an empty scene with the default material and a camera at the origin
func NewScene(name string) *Scene {
	return &Scene{
		Name:      name,
		Camera:    geometry.NewCamera(core.NewVec3(0, 0, 0), 90),
		Materials: []material.Material{DefaultMaterial()},
	}
}

// AddSphere adds a sphere
func (s *Scene) AddSphere(center core.Vec3, radius float64, materialIndex uint8) {
	s.Spheres = append(s.Spheres, *geometry.NewSphere(center, radius, materialIndex))
}

// AddPlane adds an infinite plane; normal is normalized
func (s *Scene) AddPlane(point, normal core.Vec3, materialIndex uint8) {
	s.Planes = append(s.Planes, *geometry.NewPlane(point, normal, materialIndex))
}

// AddTriangleMesh adds an empty mesh and returns it for population
func (s *Scene) AddTriangleMesh(cull geometry.CullMode, materialIndex uint8) *geometry.TriangleMesh {
	mesh := geometry.NewTriangleMesh(cull, materialIndex)
	s.Meshes = append(s.Meshes, mesh)
	return mesh
}

// AddPointLight adds a point light
func (s *Scene) AddPointLight(origin core.Vec3, intensity float64, color core.Vec3) {
	s.Lights = append(s.Lights, lights.NewPointLight(origin, intensity, color))
}

// AddDirectionalLight adds a directional light
func (s *Scene) AddDirectionalLight(direction core.Vec3, intensity float64, color core.Vec3) {
	s.Lights = append(s.Lights, lights.NewDirectionalLight(direction, intensity, color))
}

// AddMaterial appends a material and returns its index. Indices are a byte wide,
// so at most 256 materials fit.
func (s *Scene) AddMaterial(m material.Material) uint8 {
	if len(s.Materials) >= 256 {
		panic("scene material table is full")
	}
	s.Materials = append(s.Materials, m)
	return uint8(len(s.Materials) - 1)
}

// Material returns the material at index and whether the index was valid.
// Invalid indices return material 0.
func (s *Scene) Material(index uint8) (material.Material, bool) {
	if int(index) < len(s.Materials) {
		return s.Materials[index], true
	}
	return s.Materials[0], false
}

// SetAnimation installs the per-frame animation callback
func (s *Scene) SetAnimation(animate AnimateFunc) {
	s.animate = animate
}

// GetClosestHit returns the nearest hit across spheres, planes and meshes, in
// that order. A later primitive only replaces the current hit when strictly closer.
func (s *Scene) GetClosestHit(ray core.Ray) geometry.HitRecord {
	closest := geometry.NoHit()

	for i := range s.Spheres {
		if hit := s.Spheres[i].HitClosest(ray); hit.Closer(closest) {
			closest = hit
		}
	}
	for i := range s.Planes {
		if hit := s.Planes[i].HitClosest(ray); hit.Closer(closest) {
			closest = hit
		}
	}
	for _, mesh := range s.Meshes {
		if hit := mesh.HitClosest(ray); hit.Closer(closest) {
			closest = hit
		}
	}

	return closest
}

// DoesHit reports whether anything intersects the ray inside its interval
func (s *Scene) DoesHit(ray core.Ray) bool {
	for i := range s.Spheres {
		if s.Spheres[i].HitAny(ray) {
			return true
		}
	}
	for i := range s.Planes {
		if s.Planes[i].HitAny(ray) {
			return true
		}
	}
	for _, mesh := range s.Meshes {
		if mesh.HitAny(ray) {
			return true
		}
	}
	return false
}

// Prepare validates the scene and refreshes every stale cache so it is ready to render
func (s *Scene) Prepare() error {
	if s.Camera == nil {
		return fmt.Errorf("scene %q has no camera", s.Name)
	}
	if len(s.Materials) == 0 {
		return fmt.Errorf("scene %q has no materials", s.Name)
	}

	for i, mesh := range s.Meshes {
		if err := mesh.Validate(); err != nil {
			return fmt.Errorf("scene %q mesh %d: %w", s.Name, i, err)
		}
		if mesh.Dirty() {
			mesh.UpdateTransforms()
		}
	}

	s.Camera.CalculateCameraToWorld()
	return nil
}

// Update advances animations by one frame
func (s *Scene) Update(deltaSeconds, totalSeconds float64) {
	if s.animate != nil {
		s.animate(s, deltaSeconds, totalSeconds)
	}
}

// GetPrimitiveCount returns the total number of primitive objects in the scene
func (s *Scene) GetPrimitiveCount() int {
	count := len(s.Spheres) + len(s.Planes)
	for _, mesh := range s.Meshes {
		count += mesh.TriangleCount()
	}
	return count
}
