package material

import (
	"math"

	"github.com/sixarne/raytracer/pkg/core"
	"github.com/sixarne/raytracer/pkg/geometry"
	"github.com/sixarne/raytracer/pkg/material/brdf"
)

// DefaultBaseReflectivity is the normal-incidence reflectance of common dielectrics
var DefaultBaseReflectivity = core.NewVec3(0.04, 0.04, 0.04)

// CookTorrance is a microfacet material. Metalness above one half is treated as
// a conductor whose reflectance is tinted by Albedo.
type CookTorrance struct {
	Albedo           core.Vec3
	Metalness        float64
	Roughness        float64
	BaseReflectivity core.Vec3 // f0 for dielectrics
}

// NewCookTorrance creates a microfacet material with the default dielectric reflectivity
func NewCookTorrance(albedo core.Vec3, metalness, roughness float64) *CookTorrance {
	return &CookTorrance{
		Albedo:           albedo,
		Metalness:        metalness,
		Roughness:        roughness,
		BaseReflectivity: DefaultBaseReflectivity,
	}
}

// IsMetal reports whether the material is shaded as a conductor
func (c *CookTorrance) IsMetal() bool {
	return c.Metalness > 0.5
}

// F0 returns the reflectance at normal incidence
func (c *CookTorrance) F0() core.Vec3 {
	if c.IsMetal() {
		return c.Albedo
	}
	return c.BaseReflectivity
}

// Shade implements Material
func (c *CookTorrance) Shade(hit geometry.HitRecord, lightDir, viewDir core.Vec3) core.Vec3 {
	n := hit.Normal
	halfVector := viewDir.Add(lightDir).Normalize()

	fresnel := brdf.FresnelSchlick(halfVector, viewDir, c.F0())
	distribution := brdf.NormalDistributionGGX(n, halfVector, c.Roughness)
	geometryTerm := brdf.GeometrySmith(n, viewDir, lightDir, c.Roughness)

	var specular core.Vec3
	denominator := 4 * math.Max(0, n.Dot(viewDir)) * math.Max(0, n.Dot(lightDir))
	if denominator >= brdf.DenominatorEpsilon {
		specular = fresnel.Multiply(distribution * geometryTerm / denominator)
	}

	if c.IsMetal() {
		return specular
	}

	// Energy not reflected at the surface enters the diffuse lobe
	kd := core.White.Subtract(fresnel)
	diffuse := kd.MultiplyVec(brdf.Lambert(1, c.Albedo))
	return diffuse.Add(specular)
}
