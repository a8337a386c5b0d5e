package geometry

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/sixarne/raytracer/pkg/core"
)

// Pitch limits in degrees
const (
	MinPitch = -60.0
	MaxPitch = 30.0
)

// Camera is a pinhole camera looking down its local +Z axis
type Camera struct {
	Origin   core.Vec3
	FOVAngle float64 // Vertical field of view in degrees
	Yaw      float64 // Degrees about world Y
	Pitch    float64 // Degrees, positive looks up

	MoveSpeed float64 // World units per second

	Forward core.Vec3
	Right   core.Vec3
	Up      core.Vec3

	CameraToWorld mgl64.Mat4
}

// CameraInput is one frame of movement and look input
type CameraInput struct {
	Forward, Back bool
	Left, Right   bool
	Up, Down      bool
	DeltaYaw      float64 // Degrees
	DeltaPitch    float64 // Degrees
}

// NewCamera creates a camera at origin looking down +Z
func NewCamera(origin core.Vec3, fovAngle float64) *Camera {
	c := &Camera{
		Origin:    origin,
		FOVAngle:  fovAngle,
		MoveSpeed: 10,
	}
	c.CalculateCameraToWorld()
	return c
}

// FOV returns the image plane half-height at unit distance
func (c *Camera) FOV() float64 {
	return math.Tan(mgl64.DegToRad(c.FOVAngle) / 2)
}

// CalculateCameraToWorld rebuilds the orthonormal basis from yaw and pitch
func (c *Camera) CalculateCameraToWorld() mgl64.Mat4 {
	rotation := mgl64.HomogRotate3DY(mgl64.DegToRad(c.Yaw)).Mul4(mgl64.HomogRotate3DX(mgl64.DegToRad(-c.Pitch)))

	c.Forward = core.TransformVector(rotation, core.UnitZ).Normalize()
	c.Right = core.UnitY.Cross(c.Forward).Normalize()
	c.Up = c.Forward.Cross(c.Right).Normalize()

	c.CameraToWorld = core.NewBasis(c.Right, c.Up, c.Forward, c.Origin)
	return c.CameraToWorld
}

// Update moves and turns the camera by one frame of input and refreshes CameraToWorld
func (c *Camera) Update(input CameraInput, deltaSeconds float64) {
	step := c.MoveSpeed * deltaSeconds

	if input.Forward {
		c.Origin = c.Origin.Add(c.Forward.Multiply(step))
	}
	if input.Back {
		c.Origin = c.Origin.Subtract(c.Forward.Multiply(step))
	}
	if input.Right {
		c.Origin = c.Origin.Add(c.Right.Multiply(step))
	}
	if input.Left {
		c.Origin = c.Origin.Subtract(c.Right.Multiply(step))
	}
	if input.Up {
		c.Origin = c.Origin.Add(c.Up.Multiply(step))
	}
	if input.Down {
		c.Origin = c.Origin.Subtract(c.Up.Multiply(step))
	}

	c.Yaw += input.DeltaYaw
	c.Pitch = mgl64.Clamp(c.Pitch+input.DeltaPitch, MinPitch, MaxPitch)

	c.CalculateCameraToWorld()
}

// GetRay generates the primary ray through the center of pixel (px, py).
// Pixel (0, 0) is the top-left corner of the image.
func (c *Camera) GetRay(px, py, width, height int) core.Ray {
	fov := c.FOV()
	aspectRatio := float64(width) / float64(height)

	cx := (2*(float64(px)+0.5)/float64(width) - 1) * aspectRatio * fov
	cy := (1 - 2*(float64(py)+0.5)/float64(height)) * fov

	direction := core.TransformVector(c.CameraToWorld, core.NewVec3(cx, cy, 1))
	return core.NewRay(c.Origin, direction)
}
