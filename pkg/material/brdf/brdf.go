// Package brdf holds the reflectance terms shared by the shading models.
package brdf

import (
	"math"

	"github.com/sixarne/raytracer/pkg/core"
)

// DenominatorEpsilon is the smallest specular denominator that still produces a value
const DenominatorEpsilon = 1e-6

// Lambert returns the diffuse reflectance cd*kd/pi
func Lambert(kd float64, cd core.Vec3) core.Vec3 {
	return cd.Multiply(kd / math.Pi)
}

// LambertColor is Lambert with a per-channel coefficient; only the red channel of kd is used
func LambertColor(kd, cd core.Vec3) core.Vec3 {
	return Lambert(kd.X, cd)
}

// Phong returns a grayscale specular lobe ks*max(0, r.v)^exp where r mirrors the
// light direction l about n
func Phong(ks, exp float64, l, v, n core.Vec3) core.Vec3 {
	reflected := l.Negate().Reflect(n)
	cosAlpha := math.Max(0, reflected.Dot(v))
	reflection := ks * math.Pow(cosAlpha, exp)
	return core.NewVec3(reflection, reflection, reflection)
}

// FresnelSchlick approximates Fresnel reflectance: f0 + (1-f0)(1-h.v)^5
func FresnelSchlick(h, v, f0 core.Vec3) core.Vec3 {
	cosTheta := max(0, min(1, h.Dot(v)))
	weight := math.Pow(1-cosTheta, 5)
	return f0.Add(core.White.Subtract(f0).Multiply(weight))
}

// NormalDistributionGGX is the Trowbridge-Reitz GGX distribution with alpha = roughness^2
func NormalDistributionGGX(n, h core.Vec3, roughness float64) float64 {
	alpha := roughness * roughness
	alphaSquared := alpha * alpha

	nh := math.Max(0, n.Dot(h))
	d := nh*nh*(alphaSquared-1) + 1
	denominator := math.Pi * d * d
	if denominator < DenominatorEpsilon*DenominatorEpsilon {
		return 0
	}
	return alphaSquared / denominator
}

// GeometrySchlickGGX is the Schlick-GGX masking term for direct lighting
func GeometrySchlickGGX(n, v core.Vec3, roughness float64) float64 {
	alpha := roughness * roughness
	k := (alpha + 1) * (alpha + 1) / 8

	nv := math.Max(0, n.Dot(v))
	return nv / (nv*(1-k) + k)
}

// GeometrySmith combines masking from the view and shadowing from the light
func GeometrySmith(n, v, l core.Vec3, roughness float64) float64 {
	return GeometrySchlickGGX(n, v, roughness) * GeometrySchlickGGX(n, l, roughness)
}
