package geometry

import (
	"math"
	"testing"

	"github.com/df07/luminara/pkg/core"
)

func TestHittableList_ClosestHitIndependentOfOrder(t *testing.T) {
	near := NewSphere(core.NewVec3(0, 0, -3), 1.0, 1)
	far := NewSphere(core.NewVec3(0, 0, -3.5), 1.0, 2)
	ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1))

	tests := []struct {
		name   string
		shapes []Shape
	}{
		{"near first", []Shape{near, far}},
		{"far first", []Shape{far, near}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			list := NewHittableList(tt.shapes...)
			hit, isHit := list.Hit(ray, 0.001, math.Inf(1))
			if !isHit {
				t.Fatal("Expected hit")
			}
			if math.Abs(hit.T-2.0) > 1e-9 {
				t.Errorf("Expected closest t=2, got %f", hit.T)
			}
			if hit.Material != 1 {
				t.Errorf("Expected material of the nearer sphere, got %d", hit.Material)
			}
		})
	}
}

func TestHittableList_MixedShapes(t *testing.T) {
	list := NewHittableList()
	list.Add(NewSphere(core.NewVec3(0, 0, -10), 1.0, 1))
	list.Add(NewFlatTriangle(
		core.NewVec3(-1, -1, -5),
		core.NewVec3(1, -1, -5),
		core.NewVec3(0, 1, -5),
		2,
		false,
	))

	if list.Len() != 2 {
		t.Fatalf("Expected 2 objects, got %d", list.Len())
	}

	ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1))
	hit, isHit := list.Hit(ray, 0.001, math.Inf(1))
	if !isHit {
		t.Fatal("Expected hit")
	}
	if hit.Material != 2 || math.Abs(hit.T-5) > 1e-9 {
		t.Errorf("Expected triangle hit at t=5, got material %d at t=%f", hit.Material, hit.T)
	}
}

func TestHittableList_Empty(t *testing.T) {
	list := NewHittableList()
	ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1))
	if hit, isHit := list.Hit(ray, 0.001, math.Inf(1)); isHit || hit != nil {
		t.Errorf("Expected no hit from empty list, got %v", hit)
	}
}

func TestHittableList_RespectsTMax(t *testing.T) {
	list := NewHittableList(NewSphere(core.NewVec3(0, 0, -3), 1.0, 1))
	ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1))
	if _, isHit := list.Hit(ray, 0.001, 1.5); isHit {
		t.Error("Expected miss when sphere lies beyond tMax")
	}
}
