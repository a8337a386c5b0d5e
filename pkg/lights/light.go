package lights

import (
	"math"

	"github.com/sixarne/raytracer/pkg/core"
)

type LightType string

const (
	LightTypePoint       LightType = "point"
	LightTypeDirectional LightType = "directional"
)

// Light is a delta light source: either a point with inverse-square falloff or
// a direction with constant irradiance
type Light struct {
	Type      LightType
	Origin    core.Vec3 // Position of a point light
	Direction core.Vec3 // Unit direction light travels, for directional lights
	Intensity float64
	Color     core.Vec3
}

// LightSample describes the light arriving at a shading point
type LightSample struct {
	Direction core.Vec3 // Unit direction from shading point to light
	Distance  float64   // Distance to light, MaxFloat64 for directional lights
	Emission  core.Vec3 // Incident radiance
}

// NewPointLight creates a point light
func NewPointLight(origin core.Vec3, intensity float64, color core.Vec3) Light {
	return Light{
		Type:      LightTypePoint,
		Origin:    origin,
		Intensity: intensity,
		Color:     color,
	}
}

// NewDirectionalLight creates a light infinitely far away shining along direction
func NewDirectionalLight(direction core.Vec3, intensity float64, color core.Vec3) Light {
	return Light{
		Type:      LightTypeDirectional,
		Direction: direction.Normalize(),
		Intensity: intensity,
		Color:     color,
	}
}

// DirectionToLight returns the unnormalized vector from target to the light
func (l Light) DirectionToLight(target core.Vec3) core.Vec3 {
	if l.Type == LightTypeDirectional {
		return l.Direction.Negate()
	}
	return l.Origin.Subtract(target)
}

// Radiance returns the light arriving at target, ignoring occlusion
func (l Light) Radiance(target core.Vec3) core.Vec3 {
	if l.Type == LightTypeDirectional {
		return l.Color.Multiply(l.Intensity)
	}

	distanceSquared := l.Origin.Subtract(target).LengthSquared()
	if distanceSquared == 0 {
		return core.Black
	}
	return l.Color.Multiply(l.Intensity / distanceSquared)
}

// Sample returns direction, distance and radiance toward the light from point
func (l Light) Sample(point core.Vec3) LightSample {
	toLight := l.DirectionToLight(point)

	distance := math.MaxFloat64
	if l.Type != LightTypeDirectional {
		distance = toLight.Length()
	}

	return LightSample{
		Direction: toLight.Normalize(),
		Distance:  distance,
		Emission:  l.Radiance(point),
	}
}
