package lights

import (
	"math"
	"testing"

	"github.com/sixarne/raytracer/pkg/core"
)

func TestPointLight_Sample(t *testing.T) {
	light := NewPointLight(core.NewVec3(0, 5, -5), 70, core.White)
	point := core.NewVec3(0, 5, 0)

	sample := light.Sample(point)

	if sample.Direction.Subtract(core.NewVec3(0, 0, -1)).Length() > 1e-12 {
		t.Errorf("Expected direction toward -Z, got %v", sample.Direction)
	}
	if math.Abs(sample.Distance-5) > 1e-12 {
		t.Errorf("Expected distance 5, got %f", sample.Distance)
	}
	expected := core.White.Multiply(70.0 / 25.0)
	if sample.Emission.Subtract(expected).Length() > 1e-12 {
		t.Errorf("Expected inverse-square radiance %v, got %v", expected, sample.Emission)
	}
}

func TestPointLight_InverseSquareFalloff(t *testing.T) {
	light := NewPointLight(core.NewVec3(0, 0, 0), 10, core.NewVec3(1, 0.5, 0.25))

	near := light.Radiance(core.NewVec3(1, 0, 0))
	far := light.Radiance(core.NewVec3(2, 0, 0))

	if math.Abs(near.X/far.X-4) > 1e-12 {
		t.Errorf("Expected radiance to fall off by 4 at twice the distance, got ratio %f", near.X/far.X)
	}
	if math.Abs(near.Y/near.X-0.5) > 1e-12 {
		t.Errorf("Expected color ratio preserved, got %v", near)
	}
}

func TestPointLight_AtLightPosition(t *testing.T) {
	light := NewPointLight(core.NewVec3(1, 2, 3), 10, core.White)
	if got := light.Radiance(core.NewVec3(1, 2, 3)); got != core.Black {
		t.Errorf("Expected no radiance at the light position, got %v", got)
	}
}

func TestDirectionalLight_Sample(t *testing.T) {
	light := NewDirectionalLight(core.NewVec3(0, -2, 0), 3, core.NewVec3(1, 0.8, 0.5))

	for _, point := range []core.Vec3{core.NewVec3(0, 0, 0), core.NewVec3(100, -50, 7)} {
		sample := light.Sample(point)
		if sample.Direction != core.UnitY {
			t.Errorf("Expected direction toward the light to be +Y, got %v", sample.Direction)
		}
		if sample.Distance != math.MaxFloat64 {
			t.Errorf("Expected unbounded distance, got %f", sample.Distance)
		}
		if sample.Emission.Subtract(core.NewVec3(3, 2.4, 1.5)).Length() > 1e-12 {
			t.Errorf("Expected constant radiance, got %v", sample.Emission)
		}
	}
}

func TestLight_Types(t *testing.T) {
	if NewPointLight(core.Vec3{}, 1, core.White).Type != LightTypePoint {
		t.Error("Expected point light type")
	}
	if NewDirectionalLight(core.UnitY, 1, core.White).Type != LightTypeDirectional {
		t.Error("Expected directional light type")
	}
}
