package geometry

import (
	"math"
	"math/rand"
	"testing"

	"github.com/df07/go-weekend-raytracer/pkg/core"
)

type stubMaterial struct{ id int }

func (stubMaterial) Scatter(rayIn core.Ray, hit core.HitRecord, random *rand.Rand) (core.ScatterResult, bool) {
	return core.ScatterResult{}, false
}

func TestHittableList_Empty(t *testing.T) {
	list := NewHittableList()
	if _, isHit := list.Hit(core.NewRay(core.Vec3{}, core.NewVec3(0, 0, -1)), 0.001, math.Inf(1)); isHit {
		t.Error("Empty list should never report a hit")
	}
	if list.Len() != 0 {
		t.Errorf("Expected length 0, got %d", list.Len())
	}
}

func TestHittableList_ReturnsNearestHit(t *testing.T) {
	near := &stubMaterial{id: 1}
	far := &stubMaterial{id: 2}

	tests := []struct {
		name   string
		shapes []core.Shape
	}{
		{"near first", []core.Shape{
			NewSphere(core.NewVec3(0, 0, -2), 0.5, near),
			NewSphere(core.NewVec3(0, 0, -5), 0.5, far),
		}},
		{"far first", []core.Shape{
			NewSphere(core.NewVec3(0, 0, -5), 0.5, far),
			NewSphere(core.NewVec3(0, 0, -2), 0.5, near),
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			list := NewHittableList(tt.shapes...)
			hit, isHit := list.Hit(core.NewRay(core.Vec3{}, core.NewVec3(0, 0, -1)), 0.001, math.Inf(1))
			if !isHit {
				t.Fatal("Expected hit")
			}
			if math.Abs(hit.T-1.5) > 1e-9 {
				t.Errorf("Expected nearest t=1.5, got %f", hit.T)
			}
			if hit.Material != near {
				t.Error("Expected the nearer sphere's material")
			}
		})
	}
}

func TestHittableList_RespectsTMax(t *testing.T) {
	list := NewHittableList(NewSphere(core.NewVec3(0, 0, -5), 0.5, nil))
	if _, isHit := list.Hit(core.NewRay(core.Vec3{}, core.NewVec3(0, 0, -1)), 0.001, 4.0); isHit {
		t.Error("Expected miss beyond tMax")
	}
}

func TestHittableList_NestsAsShape(t *testing.T) {
	inner := NewHittableList(NewSphere(core.NewVec3(0, 0, -3), 1, nil))
	outer := NewHittableList(inner, NewSphere(core.NewVec3(0, 0, -10), 1, nil))

	hit, isHit := outer.Hit(core.NewRay(core.Vec3{}, core.NewVec3(0, 0, -1)), 0.001, math.Inf(1))
	if !isHit || math.Abs(hit.T-2) > 1e-9 {
		t.Errorf("Expected nested list hit at t=2, got hit=%t", isHit)
	}
	if outer.Len() != 2 || len(outer.Objects()) != 2 {
		t.Errorf("Expected 2 objects, got %d", outer.Len())
	}
}
