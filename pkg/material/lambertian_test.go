package material

import (
	"math/rand"
	"testing"

	"github.com/df07/luminara/pkg/core"
)

func TestLambertian_AlwaysScatters(t *testing.T) {
	albedo := core.NewVec3(0.1, 0.5, 0.1)
	lambertian := NewLambertian(albedo)
	sampler := core.NewRandomSampler(rand.New(rand.NewSource(42)))

	rayIn := core.NewRay(core.NewVec3(0, 1, 0), core.NewVec3(0, -1, 0))
	hit := core.HitRecord{
		T:      1,
		Point:  core.NewVec3(0, 0, 0),
		Normal: core.NewVec3(0, 1, 0),
	}

	for i := 0; i < 1000; i++ {
		scatter, didScatter := lambertian.Scatter(rayIn, hit, sampler)
		if !didScatter {
			t.Fatal("Lambertian should always scatter")
		}
		if !scatter.Attenuation.Equals(albedo) {
			t.Fatalf("Expected attenuation %v, got %v", albedo, scatter.Attenuation)
		}
		if !scatter.Scattered.Origin.Equals(hit.Point) {
			t.Fatalf("Scattered ray should start at hit point, got %v", scatter.Scattered.Origin)
		}
		// Direction is normal plus a point in the unit ball
		offset := scatter.Scattered.Direction.Subtract(hit.Normal)
		if offset.LengthSquared() >= 1 {
			t.Fatalf("Scatter direction %v is not within unit ball around the normal", scatter.Scattered.Direction)
		}
	}
}

func TestLambertian_DirectionFromSampler(t *testing.T) {
	lambertian := NewLambertian(core.NewVec3(0.5, 0.5, 0.5))
	// 0.5 maps to the origin of the unit ball, so the direction equals the normal
	sampler := &constantSampler{value: 0.5}

	hit := core.HitRecord{
		Point:  core.NewVec3(1, 2, 3),
		Normal: core.NewVec3(0, 0, 1),
	}
	scatter, _ := lambertian.Scatter(core.NewRay(core.NewVec3(1, 2, 5), core.NewVec3(0, 0, -1)), hit, sampler)

	if !scatter.Scattered.Direction.Equals(hit.Normal) {
		t.Errorf("Expected direction %v, got %v", hit.Normal, scatter.Scattered.Direction)
	}
}
