package material

import (
	"math"
	"math/rand"
	"testing"

	"github.com/df07/luminara/pkg/core"
)

func TestDielectric_AlwaysScattersClear(t *testing.T) {
	glass := NewDielectric(1.5)
	sampler := core.NewRandomSampler(rand.New(rand.NewSource(42)))
	white := core.NewVec3(1, 1, 1)

	rayIn := core.NewRay(core.NewVec3(0, 1, 0), core.NewVec3(0.3, -1, 0.2))
	hit := core.HitRecord{
		Point:  core.NewVec3(0, 0, 0),
		Normal: core.NewVec3(0, 1, 0),
	}

	for i := 0; i < 500; i++ {
		scatter, didScatter := glass.Scatter(rayIn, hit, sampler)
		if !didScatter {
			t.Fatal("Dielectric should always scatter")
		}
		if !scatter.Attenuation.Equals(white) {
			t.Fatalf("Expected attenuation %v, got %v", white, scatter.Attenuation)
		}
	}
}

func TestDielectric_ReflectOrRefract(t *testing.T) {
	glass := NewDielectric(1.5)
	// Normal incidence entering glass: reflect probability is 0.04
	rayIn := core.NewRay(core.NewVec3(0, 1, 0), core.NewVec3(0, -1, 0))
	hit := core.HitRecord{
		Point:  core.NewVec3(0, 0, 0),
		Normal: core.NewVec3(0, 1, 0),
	}

	tests := []struct {
		name     string
		sample   float64
		expected core.Vec3
	}{
		{"refracts above reflect probability", 0.5, core.NewVec3(0, -1, 0)},
		{"reflects below reflect probability", 0.01, core.NewVec3(0, 1, 0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			scatter, _ := glass.Scatter(rayIn, hit, &constantSampler{value: tt.sample})
			actual := scatter.Scattered.Direction.Normalize()
			if actual.Subtract(tt.expected).Length() > 1e-9 {
				t.Errorf("Expected direction %v, got %v", tt.expected, actual)
			}
		})
	}
}

func TestDielectric_TotalInternalReflection(t *testing.T) {
	glass := NewDielectric(1.5)

	// Exiting glass at a grazing angle: the ray travels along the outward normal side
	rayIn := core.NewRay(core.NewVec3(-1, -0.1, 0), core.NewVec3(1, 0.1, 0))
	hit := core.HitRecord{
		Point:  core.NewVec3(0, 0, 0),
		Normal: core.NewVec3(0, 1, 0),
	}

	// Even the largest sample must reflect
	scatter, _ := glass.Scatter(rayIn, hit, &constantSampler{value: 0.999})
	expected := core.NewVec3(1, -0.1, 0)
	if scatter.Scattered.Direction.Subtract(expected).Length() > 1e-9 {
		t.Errorf("Expected total internal reflection %v, got %v", expected, scatter.Scattered.Direction)
	}
}

func TestDielectric_ExitingRefraction(t *testing.T) {
	glass := NewDielectric(1.5)

	// Leaving glass at a shallow angle bends away from the normal
	incoming := core.NewVec3(0.2, 1, 0).Normalize()
	rayIn := core.NewRay(core.NewVec3(0, -1, 0), incoming)
	hit := core.HitRecord{
		Point:  core.NewVec3(0, 0, 0),
		Normal: core.NewVec3(0, 1, 0),
	}

	scatter, _ := glass.Scatter(rayIn, hit, &constantSampler{value: 0.999})
	out := scatter.Scattered.Direction.Normalize()
	if out.Y <= 0 {
		t.Fatalf("Expected transmitted ray to continue outward, got %v", out)
	}
	sinIn := math.Abs(incoming.X)
	sinOut := math.Abs(out.X)
	if math.Abs(sinOut-1.5*sinIn) > 1e-9 {
		t.Errorf("Expected sin(out)=%f, got %f", 1.5*sinIn, sinOut)
	}
}
