package material

import (
	"github.com/sixarne/raytracer/pkg/core"
	"github.com/sixarne/raytracer/pkg/geometry"
	"github.com/sixarne/raytracer/pkg/material/brdf"
)

// Lambert represents a perfectly diffuse material
type Lambert struct {
	DiffuseColor       core.Vec3
	DiffuseReflectance float64 // kd
}

// NewLambert creates a new lambertian material
func NewLambert(diffuseColor core.Vec3, diffuseReflectance float64) *Lambert {
	return &Lambert{DiffuseColor: diffuseColor, DiffuseReflectance: diffuseReflectance}
}

// Shade implements Material. The diffuse BRDF does not depend on direction.
func (l *Lambert) Shade(hit geometry.HitRecord, lightDir, viewDir core.Vec3) core.Vec3 {
	return brdf.Lambert(l.DiffuseReflectance, l.DiffuseColor)
}

// LambertPhong adds a Phong specular highlight on top of a lambertian base
type LambertPhong struct {
	DiffuseColor        core.Vec3
	DiffuseReflectance  float64 // kd
	SpecularReflectance float64 // ks
	PhongExponent       float64
}

// NewLambertPhong creates a new lambert-phong material
func NewLambertPhong(diffuseColor core.Vec3, kd, ks, exponent float64) *LambertPhong {
	return &LambertPhong{
		DiffuseColor:        diffuseColor,
		DiffuseReflectance:  kd,
		SpecularReflectance: ks,
		PhongExponent:       exponent,
	}
}

// Shade implements Material
func (p *LambertPhong) Shade(hit geometry.HitRecord, lightDir, viewDir core.Vec3) core.Vec3 {
	diffuse := brdf.Lambert(p.DiffuseReflectance, p.DiffuseColor)
	specular := brdf.Phong(p.SpecularReflectance, p.PhongExponent, lightDir, viewDir, hit.Normal)
	return diffuse.Add(specular)
}
