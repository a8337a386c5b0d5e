package server

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/sixarne/raytracer/pkg/core"
	"github.com/sixarne/raytracer/pkg/geometry"
)

// CameraPose is a camera placement shared by every render
type CameraPose struct {
	Origin [3]float64 `json:"origin"`
	Yaw    float64    `json:"yaw"`
	Pitch  float64    `json:"pitch"`
	FOV    float64    `json:"fov"`
}

// Apply moves camera to the pose; pitch is clamped to the camera limits
func (p CameraPose) Apply(camera *geometry.Camera) {
	camera.Origin = core.NewVec3(p.Origin[0], p.Origin[1], p.Origin[2])
	camera.Yaw = p.Yaw
	camera.Pitch = max(geometry.MinPitch, min(geometry.MaxPitch, p.Pitch))
	if p.FOV > 0 && p.FOV < 180 {
		camera.FOVAngle = p.FOV
	}
	camera.CalculateCameraToWorld()
}

func poseOf(camera *geometry.Camera) CameraPose {
	return CameraPose{
		Origin: [3]float64{camera.Origin.X, camera.Origin.Y, camera.Origin.Z},
		Yaw:    camera.Yaw,
		Pitch:  camera.Pitch,
		FOV:    camera.FOVAngle,
	}
}

// CameraRequest either places the camera, moves it with keyboard-style input
// for DeltaSeconds, or resets it to each scene's default
type CameraRequest struct {
	Pose         *CameraPose           `json:"pose,omitempty"`
	Input        *geometry.CameraInput `json:"input,omitempty"`
	DeltaSeconds float64               `json:"deltaSeconds"`
	Reset        bool                  `json:"reset"`
}

func (s *Server) handleCamera(c echo.Context) error {
	var req CameraRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid camera request: "+err.Error())
	}

	s.mu.Lock()
	switch {
	case req.Reset:
		s.camera = nil
	case req.Pose != nil:
		camera := geometry.NewCamera(core.NewVec3(0, 0, 0), 90)
		req.Pose.Apply(camera)
		pose := poseOf(camera)
		s.camera = &pose
	case req.Input != nil:
		camera := geometry.NewCamera(core.NewVec3(0, 0, 0), 90)
		if s.camera != nil {
			s.camera.Apply(camera)
		}
		camera.Update(*req.Input, req.DeltaSeconds)
		pose := poseOf(camera)
		s.camera = &pose
	default:
		s.mu.Unlock()
		return echo.NewHTTPError(http.StatusBadRequest, "Camera request needs pose, input or reset")
	}
	s.mu.Unlock()

	return c.JSON(http.StatusOK, s.settingsResponse())
}
