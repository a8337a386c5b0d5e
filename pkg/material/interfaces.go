package material

import (
	"github.com/sixarne/raytracer/pkg/core"
	"github.com/sixarne/raytracer/pkg/geometry"
)

// Material evaluates how much light a surface reflects from a light direction
// toward a viewer. lightDir points from the hit point toward the light and
// viewDir points from the hit point toward the eye; both are unit vectors.
type Material interface {
	Shade(hit geometry.HitRecord, lightDir, viewDir core.Vec3) core.Vec3
}
