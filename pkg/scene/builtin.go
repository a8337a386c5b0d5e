package scene

import (
	"fmt"
	"math"

	"github.com/sixarne/raytracer/pkg/core"
	"github.com/sixarne/raytracer/pkg/geometry"
	"github.com/sixarne/raytracer/pkg/loaders"
	"github.com/sixarne/raytracer/pkg/material"
)

// DefaultMeshPath is the OBJ asset loaded by the mesh scene when none is given
const DefaultMeshPath = "resources/icosahedron.obj"

var (
	metalAlbedo   = core.NewVec3(0.972, 0.960, 0.915)
	plasticAlbedo = core.NewVec3(0.75, 0.75, 0.75)
	grayBlue      = core.NewVec3(0.49, 0.57, 0.57)
)

// addRoom surrounds the origin with five planes: two walls, floor, ceiling and back
func addRoom(s *Scene, walls, floor, back uint8) {
	s.AddPlane(core.NewVec3(-5, 0, 0), core.NewVec3(1, 0, 0), walls)
	s.AddPlane(core.NewVec3(5, 0, 0), core.NewVec3(-1, 0, 0), walls)
	s.AddPlane(core.NewVec3(0, 0, 0), core.NewVec3(0, 1, 0), floor)
	s.AddPlane(core.NewVec3(0, 10, 0), core.NewVec3(0, -1, 0), floor)
	s.AddPlane(core.NewVec3(0, 0, 10), core.NewVec3(0, 0, -1), back)
}

// addWarmCoolLights adds the three-light rig shared by the material scenes
func addWarmCoolLights(s *Scene) {
	s.AddPointLight(core.NewVec3(0, 5, 5), 50, core.NewVec3(1, 0.61, 0.45))
	s.AddPointLight(core.NewVec3(-2.5, 5, -5), 70, core.NewVec3(1, 0.8, 0.45))
	s.AddPointLight(core.NewVec3(2.5, 2.5, -5), 50, core.NewVec3(0.34, 0.47, 0.68))
}

// addCookTorranceSpheres adds a row of metals at y=1 and a row of plastics at y=3,
// each going rough, medium, smooth from left to right
func addCookTorranceSpheres(s *Scene) {
	roughness := []float64{1, 0.6, 0.1}
	xs := []float64{-1.75, 0, 1.75}

	for i, r := range roughness {
		metal := s.AddMaterial(material.NewCookTorrance(metalAlbedo, 1, r))
		s.AddSphere(core.NewVec3(xs[i], 1, 0), 0.75, metal)
	}
	for i, r := range roughness {
		plastic := s.AddMaterial(material.NewCookTorrance(plasticAlbedo, 0, r))
		s.AddSphere(core.NewVec3(xs[i], 3, 0), 0.75, plastic)
	}
}

// NewSolidColorScene creates two large flat-colored spheres inside a box of flat-colored planes
func NewSolidColorScene() *Scene {
	s := NewScene("solid")

	const red = 0 // default material
	blue := s.AddMaterial(material.NewSolidColor(core.Blue))
	yellow := s.AddMaterial(material.NewSolidColor(core.Yellow))
	green := s.AddMaterial(material.NewSolidColor(core.Green))
	magenta := s.AddMaterial(material.NewSolidColor(core.Magenta))

	s.AddSphere(core.NewVec3(25, 0, 100), 50, blue)
	s.AddSphere(core.NewVec3(-25, 0, 100), 50, red)

	s.AddPlane(core.NewVec3(-75, 0, 0), core.NewVec3(1, 0, 0), green)
	s.AddPlane(core.NewVec3(75, 0, 0), core.NewVec3(-1, 0, 0), green)
	s.AddPlane(core.NewVec3(0, -75, 0), core.NewVec3(0, 1, 0), yellow)
	s.AddPlane(core.NewVec3(0, 75, 0), core.NewVec3(0, -1, 0), yellow)
	s.AddPlane(core.NewVec3(0, 0, 125), core.NewVec3(0, 0, -1), magenta)

	return s
}

// NewSpheresScene creates a 3x2 grid of flat-colored spheres lit by one point light
func NewSpheresScene() *Scene {
	s := NewScene("spheres")
	s.Camera = geometry.NewCamera(core.NewVec3(0, 3, -9), 45)

	const red = 0
	blue := s.AddMaterial(material.NewSolidColor(core.Blue))
	yellow := s.AddMaterial(material.NewSolidColor(core.Yellow))
	green := s.AddMaterial(material.NewSolidColor(core.Green))
	magenta := s.AddMaterial(material.NewSolidColor(core.Magenta))

	addRoom(s, green, yellow, magenta)

	s.AddSphere(core.NewVec3(-1.75, 1, 0), 0.75, red)
	s.AddSphere(core.NewVec3(0, 1, 0), 0.75, blue)
	s.AddSphere(core.NewVec3(1.75, 1, 0), 0.75, red)
	s.AddSphere(core.NewVec3(-1.75, 3, 0), 0.75, blue)
	s.AddSphere(core.NewVec3(0, 3, 0), 0.75, red)
	s.AddSphere(core.NewVec3(1.75, 3, 0), 0.75, blue)

	s.AddPointLight(core.NewVec3(0, 5, -5), 70, core.White)

	return s
}

// NewMaterialsScene compares Cook-Torrance metals and plastics with Lambert-Phong spheres
func NewMaterialsScene() *Scene {
	s := NewScene("materials")
	s.Camera = geometry.NewCamera(core.NewVec3(0, 3, -9), 45)

	addCookTorranceSpheres(s)

	walls := s.AddMaterial(material.NewLambert(grayBlue, 1))
	redPhong := s.AddMaterial(material.NewLambertPhong(core.Red, 0.5, 0.5, 50))
	bluePhong := s.AddMaterial(material.NewLambertPhong(core.Blue, 0.5, 0.5, 50))
	yellowPhong := s.AddMaterial(material.NewLambertPhong(core.Yellow, 0.5, 0.5, 50))

	addRoom(s, walls, walls, walls)

	s.AddSphere(core.NewVec3(-1.75, 5, 0), 0.75, yellowPhong)
	s.AddSphere(core.NewVec3(0, 5, 0), 0.75, redPhong)
	s.AddSphere(core.NewVec3(1.75, 5, 0), 0.75, bluePhong)

	addWarmCoolLights(s)

	return s
}

// NewReferenceScene shows the Cook-Torrance spheres below three copies of a
// clockwise triangle, one per cull mode, swinging about the Y axis
func NewReferenceScene() *Scene {
	s := NewScene("reference")
	s.Camera = geometry.NewCamera(core.NewVec3(0, 3, -9), 45)

	addCookTorranceSpheres(s)

	walls := s.AddMaterial(material.NewLambert(grayBlue, 1))
	white := s.AddMaterial(material.NewLambert(core.White, 1))

	addRoom(s, walls, walls, walls)

	// Clockwise when seen from the camera
	base := geometry.NewTriangle(
		core.NewVec3(-0.75, 1.5, 0),
		core.NewVec3(0.75, 0, 0),
		core.NewVec3(-0.75, 0, 0),
		geometry.NoCulling, white,
	)

	placements := []struct {
		cull   geometry.CullMode
		offset core.Vec3
	}{
		{geometry.BackFaceCulling, core.NewVec3(-1.75, 4.5, 0)},
		{geometry.FrontFaceCulling, core.NewVec3(0, 4.5, 0)},
		{geometry.NoCulling, core.NewVec3(1.75, 4.5, 0)},
	}

	meshes := make([]*geometry.TriangleMesh, 0, len(placements))
	for _, p := range placements {
		mesh := s.AddTriangleMesh(p.cull, white)
		mesh.AppendTriangle(base, true)
		mesh.Translate(p.offset)
		mesh.UpdateTransforms()
		meshes = append(meshes, mesh)
	}

	addWarmCoolLights(s)

	s.SetAnimation(func(s *Scene, deltaSeconds, totalSeconds float64) {
		yaw := math.Cos(totalSeconds+1) / 2 * math.Pi / 2
		for _, mesh := range meshes {
			mesh.RotateY(yaw)
			mesh.UpdateTransforms()
		}
	})

	return s
}

// NewMeshScene loads an OBJ model into a gray-blue room and spins it about Y
func NewMeshScene(objPath string) (*Scene, error) {
	if objPath == "" {
		objPath = DefaultMeshPath
	}

	data, err := loaders.LoadOBJ(objPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load mesh scene: %w", err)
	}

	s := NewScene("mesh")
	s.Camera = geometry.NewCamera(core.NewVec3(0, 1, -5), 45)

	walls := s.AddMaterial(material.NewLambert(grayBlue, 1))
	white := s.AddMaterial(material.NewLambert(core.White, 1))

	addRoom(s, walls, walls, walls)

	mesh := s.AddTriangleMesh(geometry.BackFaceCulling, white)
	mesh.Positions = data.Positions
	mesh.Indices = data.Indices
	mesh.Normals = data.Normals
	mesh.Translate(core.NewVec3(0, 1, 0))
	mesh.UpdateTransforms()

	addWarmCoolLights(s)

	s.SetAnimation(func(s *Scene, deltaSeconds, totalSeconds float64) {
		mesh.RotateY(math.Pi / 2 * totalSeconds)
		mesh.UpdateTransforms()
	})

	return s, nil
}

// NewSingleSphereScene is one diffuse sphere in front of the camera with one point light
func NewSingleSphereScene() *Scene {
	s := NewScene("single-sphere")

	white := s.AddMaterial(material.NewLambert(core.White, 1))
	s.AddSphere(core.NewVec3(0, 0, 5), 1, white)
	s.AddPointLight(core.NewVec3(0, 5, -5), 70, core.White)

	return s
}
