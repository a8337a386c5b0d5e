package server

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/sixarne/raytracer/pkg/core"
	"github.com/sixarne/raytracer/pkg/geometry"
	"github.com/sixarne/raytracer/pkg/material"
	"github.com/sixarne/raytracer/pkg/renderer"
	"github.com/sixarne/raytracer/pkg/scene"
)

// InspectResponse represents the JSON response for object inspection
type InspectResponse struct {
	Hit           bool                   `json:"hit"`
	MaterialType  string                 `json:"materialType,omitempty"`
	MaterialIndex uint8                  `json:"materialIndex"`
	GeometryType  string                 `json:"geometryType,omitempty"`
	Point         [3]float64             `json:"point"`
	Normal        [3]float64             `json:"normal"`
	Distance      float64                `json:"distance"`
	Color         string                 `json:"color"` // Displayed pixel color
	Properties    map[string]interface{} `json:"properties,omitempty"`
}

func vec(v core.Vec3) [3]float64 {
	return [3]float64{v.X, v.Y, v.Z}
}

func hexColor(c core.Vec3) string {
	return fmt.Sprintf("#%06x", renderer.PackColor(renderer.ToneMap(c)))
}

// extractMaterialInfo extracts detailed material information with type assertions
func extractMaterialInfo(mat material.Material) (string, map[string]interface{}) {
	properties := make(map[string]interface{})

	switch m := mat.(type) {
	case *material.SolidColor:
		properties["color"] = hexColor(m.Color)
		return "solid_color", properties

	case *material.Lambert:
		properties["color"] = hexColor(m.DiffuseColor)
		properties["diffuseReflectance"] = m.DiffuseReflectance
		return "lambert", properties

	case *material.LambertPhong:
		properties["color"] = hexColor(m.DiffuseColor)
		properties["diffuseReflectance"] = m.DiffuseReflectance
		properties["specularReflectance"] = m.SpecularReflectance
		properties["phongExponent"] = m.PhongExponent
		return "lambert_phong", properties

	case *material.CookTorrance:
		properties["albedo"] = vec(m.Albedo)
		properties["metalness"] = m.Metalness
		properties["roughness"] = m.Roughness
		properties["metal"] = m.IsMetal()
		properties["f0"] = vec(m.F0())
		return "cook_torrance", properties

	default:
		return "unknown", properties
	}
}

// inspectHit finds the primitive that produced the closest hit by repeating
// the scene traversal per collection
func inspectHit(s *scene.Scene, ray core.Ray) (geometry.HitRecord, string, map[string]interface{}) {
	closest := s.GetClosestHit(ray)
	if !closest.DidHit {
		return closest, "", nil
	}

	properties := make(map[string]interface{})
	for _, sphere := range s.Spheres {
		if hit := sphere.HitClosest(ray); hit.DidHit && hit.T == closest.T {
			properties["center"] = vec(sphere.Center)
			properties["radius"] = sphere.Radius
			return closest, "sphere", properties
		}
	}
	for _, plane := range s.Planes {
		if hit := plane.HitClosest(ray); hit.DidHit && hit.T == closest.T {
			properties["point"] = vec(plane.Point)
			properties["normal"] = vec(plane.Normal)
			return closest, "plane", properties
		}
	}
	for _, mesh := range s.Meshes {
		if hit := mesh.HitClosest(ray); hit.DidHit && hit.T == closest.T {
			bbox := mesh.BoundingBox()
			properties["triangleCount"] = mesh.TriangleCount()
			properties["cullMode"] = mesh.Cull.String()
			properties["boundingBox"] = map[string]interface{}{
				"min": vec(bbox.Min),
				"max": vec(bbox.Max),
			}
			return closest, "triangle_mesh", properties
		}
	}
	return closest, "unknown", properties
}

// handleInspect casts the primary ray through one pixel and describes what it hits
func (s *Server) handleInspect(c echo.Context) error {
	req, err := s.parseRenderRequest(c.QueryParams())
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid scene parameters: "+err.Error())
	}

	pixelX, err := strconv.Atoi(c.QueryParam("x"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid x coordinate")
	}
	pixelY, err := strconv.Atoi(c.QueryParam("y"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid y coordinate")
	}
	if pixelX < 0 || pixelX >= req.Width || pixelY < 0 || pixelY >= req.Height {
		return echo.NewHTTPError(http.StatusBadRequest, "Pixel coordinates out of bounds")
	}

	sceneObj, err := s.createScene(req.Scene, req.Time)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := sceneObj.Prepare(); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	ray := sceneObj.Camera.GetRay(pixelX, pixelY, req.Width, req.Height)
	color := s.renderer.TraceRay(sceneObj, ray)
	hit, geometryType, geometryProps := inspectHit(sceneObj, ray)
	if !hit.DidHit {
		return c.JSON(http.StatusOK, InspectResponse{Hit: false, Color: hexColor(color)})
	}

	mat, _ := sceneObj.Material(hit.MaterialIndex)
	materialType, materialProps := extractMaterialInfo(mat)

	return c.JSON(http.StatusOK, InspectResponse{
		Hit:           true,
		MaterialType:  materialType,
		MaterialIndex: hit.MaterialIndex,
		GeometryType:  geometryType,
		Point:         vec(hit.Point),
		Normal:        vec(hit.Normal),
		Distance:      hit.T,
		Color:         hexColor(color),
		Properties: map[string]interface{}{
			"material": materialProps,
			"geometry": geometryProps,
		},
	})
}
