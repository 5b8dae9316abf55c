package material

import (
	"math"
	"math/rand"
	"testing"

	"github.com/df07/go-weekend-raytracer/pkg/core"
)

func TestDielectricBasicBehavior(t *testing.T) {
	glass := NewDielectric(1.5)

	rayDirection := core.NewVec3(1, -1, 0).Normalize() // 45-degree angle
	ray := core.Ray{Origin: core.NewVec3(0, 1, 0), Direction: rayDirection}

	hit := core.HitRecord{
		Point:     core.NewVec3(0, 0, 0),
		Normal:    core.NewVec3(0, 1, 0),
		T:         1.0,
		FrontFace: true,
		Material:  glass,
	}

	random := rand.New(rand.NewSource(42))
	result, scattered := glass.Scatter(ray, hit, random)
	if !scattered {
		t.Error("Dielectric should always scatter")
	}
	if result.Attenuation != DefaultGlassAttenuation {
		t.Errorf("Expected attenuation %v, got %v", DefaultGlassAttenuation, result.Attenuation)
	}

	hasReflection := false
	hasRefraction := false
	for seed := int64(0); seed < 2000 && (!hasReflection || !hasRefraction); seed++ {
		result, _ := glass.Scatter(ray, hit, rand.New(rand.NewSource(seed)))
		if result.Scattered.Direction.Y > 0 {
			hasReflection = true
		} else {
			hasRefraction = true
		}
	}

	if !hasRefraction {
		t.Error("Expected to see refraction in at least some cases")
	}
	// At 45° air->glass, Schlick gives ~5% reflection
	if !hasReflection {
		t.Error("Expected to see Fresnel reflection in at least some cases")
	}
}

func TestDielectricTotalInternalReflection(t *testing.T) {
	glass := NewDielectric(1.5)

	rayDirection := core.NewVec3(1, -0.1, 0).Normalize() // Very shallow angle
	ray := core.Ray{Origin: core.NewVec3(0, 0, 0), Direction: rayDirection}

	hit := core.HitRecord{
		Point:     core.NewVec3(0, 0, 0),
		Normal:    core.NewVec3(0, 1, 0),
		T:         1.0,
		FrontFace: false, // Exiting the material
		Material:  glass,
	}

	cosTheta := -rayDirection.Dot(hit.Normal)
	sinTheta := math.Sqrt(1.0 - cosTheta*cosTheta)
	if 1.5*sinTheta <= 1.0 {
		t.Fatalf("Test setup error: this angle should cause total internal reflection")
	}

	for i := 0; i < 10; i++ {
		result, scattered := glass.Scatter(ray, hit, rand.New(rand.NewSource(int64(i))))
		if !scattered {
			t.Error("Dielectric should always scatter")
		}

		if result.Scattered.Direction.Y <= 0 {
			t.Errorf("Expected total internal reflection (ray going up), got %+v", result.Scattered.Direction)
		}
		if math.Abs(result.Scattered.Direction.X-rayDirection.X) > 1e-10 {
			t.Errorf("Expected X component %.6f, got %.6f", rayDirection.X, result.Scattered.Direction.X)
		}
	}
}

func TestDielectric_UnitIndexPassesThrough(t *testing.T) {
	air := NewDielectric(1.0)
	normal := core.NewVec3(0, 1, 0)

	for _, front := range []bool{true, false} {
		for _, angle := range []float64{0, 15, 45, 75, 89} {
			rad := angle * math.Pi / 180
			direction := core.NewVec3(math.Sin(rad), -math.Cos(rad), 0).Multiply(3)
			ray := core.NewRay(core.NewVec3(0, 1, 0), direction)
			hit := core.HitRecord{Point: core.Vec3{}, Normal: normal, FrontFace: front}

			for seed := int64(0); seed < 20; seed++ {
				result, scattered := air.Scatter(ray, hit, rand.New(rand.NewSource(seed)))
				if !scattered {
					t.Fatal("Dielectric should always scatter")
				}
				out := result.Scattered.Direction.Normalize()
				if out.Cross(direction.Normalize()).Length() > 1e-6 || out.Dot(direction) <= 0 {
					t.Fatalf("front=%t angle=%.0f: expected undeviated ray, got %v", front, angle, out)
				}
			}
		}
	}
}

func TestDielectric_TintedAttenuation(t *testing.T) {
	tint := core.NewVec3(1, 0.5, 0.25)
	glass := NewTintedDielectric(1.3, tint)

	hit := core.HitRecord{Normal: core.NewVec3(0, 1, 0), FrontFace: true}
	result, _ := glass.Scatter(core.NewRay(core.NewVec3(0, 1, 0), core.NewVec3(0, -1, 0)), hit, rand.New(rand.NewSource(1)))
	if result.Attenuation != tint {
		t.Errorf("Expected attenuation %v, got %v", tint, result.Attenuation)
	}
}

func TestReflectanceFunction(t *testing.T) {
	// Normal incidence (0°) - should be low for air->glass
	r0 := Reflectance(1.0, 1.5)
	if math.Abs(r0-0.04) > 1e-9 {
		t.Errorf("Normal incidence reflectance = %.4f, expected 0.04", r0)
	}

	// R0 is symmetric in the index and its reciprocal
	if math.Abs(Reflectance(0.6, 1.5)-Reflectance(0.6, 1.0/1.5)) > 1e-12 {
		t.Error("Reflectance should not depend on which side of the interface is passed")
	}

	// Grazing incidence (90°) - should be close to 1
	r90 := Reflectance(0.0, 1.5)
	if math.Abs(r90-1.0) > 1e-9 {
		t.Errorf("Grazing incidence reflectance = %.3f, expected 1.0", r90)
	}

	r45 := Reflectance(math.Cos(math.Pi/4), 1.5)
	if r45 <= r0 || r90 <= r45 {
		t.Errorf("Reflectance should increase with angle: R(0°)=%.3f, R(45°)=%.3f, R(90°)=%.3f", r0, r45, r90)
	}

	if Reflectance(0.0, 1.0) != 0 {
		t.Error("Matched indices should never reflect")
	}
}
