package core

import (
	"math"
	"testing"
)

const tolerance = 1e-9

func vecClose(a, b Vec3, tol float64) bool {
	return a.Subtract(b).Length() <= tol
}

func TestVec3_Arithmetic(t *testing.T) {
	a := NewVec3(1, 2, 3)
	b := NewVec3(4, -5, 6)

	tests := []struct {
		name     string
		result   Vec3
		expected Vec3
	}{
		{"Add", a.Add(b), NewVec3(5, -3, 9)},
		{"Subtract", a.Subtract(b), NewVec3(-3, 7, -3)},
		{"Multiply", a.Multiply(2), NewVec3(2, 4, 6)},
		{"Divide", b.Divide(2), NewVec3(2, -2.5, 3)},
		{"MultiplyVec", a.MultiplyVec(b), NewVec3(4, -10, 18)},
		{"Negate", a.Negate(), NewVec3(-1, -2, -3)},
		{"Cross", NewVec3(1, 0, 0).Cross(NewVec3(0, 1, 0)), NewVec3(0, 0, 1)},
		{"Clamp", NewVec3(-0.5, 0.5, 1.5).Clamp(0, 1), NewVec3(0, 0.5, 1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !vecClose(tt.result, tt.expected, tolerance) {
				t.Errorf("Expected %v, got %v", tt.expected, tt.result)
			}
		})
	}

	if d := a.Dot(b); d != 12 {
		t.Errorf("Expected dot 12, got %f", d)
	}
	if l := NewVec3(3, 4, 0).Length(); l != 5 {
		t.Errorf("Expected length 5, got %f", l)
	}
}

func TestVec3_Normalize(t *testing.T) {
	n := NewVec3(0, 3, 4).Normalize()
	if math.Abs(n.Length()-1) > tolerance {
		t.Errorf("Expected unit length, got %f", n.Length())
	}
	if !vecClose(n, NewVec3(0, 0.6, 0.8), tolerance) {
		t.Errorf("Expected (0, 0.6, 0.8), got %v", n)
	}

	if z := (Vec3{}).Normalize(); !z.IsZero() {
		t.Errorf("Expected zero vector to stay zero, got %v", z)
	}
}

func TestLerp(t *testing.T) {
	white := NewVec3(1, 1, 1)
	blue := NewVec3(0.5, 0.7, 1.0)

	if got := Lerp(white, blue, 0); got != white {
		t.Errorf("Lerp at 0 should be start, got %v", got)
	}
	if got := Lerp(white, blue, 1); got != blue {
		t.Errorf("Lerp at 1 should be end, got %v", got)
	}
	if got := Lerp(white, blue, 0.5); !vecClose(got, NewVec3(0.75, 0.85, 1.0), tolerance) {
		t.Errorf("Lerp at 0.5 got %v", got)
	}
}

func TestVec3_NearZero(t *testing.T) {
	if !NewVec3(1e-9, -1e-9, 0).NearZero() {
		t.Error("Expected tiny vector to be near zero")
	}
	if NewVec3(1e-9, 1e-3, 0).NearZero() {
		t.Error("Expected vector with a large component not to be near zero")
	}
}

func TestVec3_GammaCorrect(t *testing.T) {
	got := NewVec3(0.25, 1, 0).GammaCorrect(2.0)
	if !vecClose(got, NewVec3(0.5, 1, 0), tolerance) {
		t.Errorf("Expected sqrt per channel, got %v", got)
	}
}

func TestReflect(t *testing.T) {
	normal := NewVec3(0, 1, 0)
	incoming := NewVec3(1, -1, 0).Normalize()

	reflected := Reflect(incoming, normal)
	expected := NewVec3(1, 1, 0).Normalize()
	if !vecClose(reflected, expected, tolerance) {
		t.Errorf("Expected %v, got %v", expected, reflected)
	}
}

func TestReflect_DoubleReflectionIsIdentity(t *testing.T) {
	tests := []struct {
		name   string
		v      Vec3
		normal Vec3
	}{
		{"axis aligned", NewVec3(0, -1, 0), NewVec3(0, 1, 0)},
		{"45 degrees", NewVec3(1, -1, 0).Normalize(), NewVec3(0, 1, 0)},
		{"oblique normal", NewVec3(0.3, -0.5, 0.8).Normalize(), NewVec3(1, 2, 3).Normalize()},
		{"grazing", NewVec3(1, -0.001, 0).Normalize(), NewVec3(0, 1, 0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			twice := Reflect(Reflect(tt.v, tt.normal), tt.normal)
			if !vecClose(twice, tt.v, 1e-12) {
				t.Errorf("Expected %v after double reflection, got %v", tt.v, twice)
			}
		})
	}
}

func TestRefract_UnitRatioIsUndeviated(t *testing.T) {
	normal := NewVec3(0, 1, 0)
	for _, angle := range []float64{0, 10, 30, 45, 60, 80, 89.9} {
		rad := angle * math.Pi / 180
		incoming := NewVec3(math.Sin(rad), -math.Cos(rad), 0)

		refracted := Refract(incoming, normal, 1.0)
		if !vecClose(refracted, incoming, 1e-6) {
			t.Errorf("angle %.1f: expected %v, got %v", angle, incoming, refracted)
		}
	}
}

func TestRefract_SnellsLaw(t *testing.T) {
	normal := NewVec3(0, 1, 0)
	incoming := NewVec3(1, -1, 0).Normalize()
	ratio := 1.0 / 1.5

	refracted := Refract(incoming, normal, ratio)

	sinIn := incoming.Cross(normal.Negate()).Length()
	sinOut := refracted.Normalize().Cross(normal.Negate()).Length()
	if math.Abs(sinOut-ratio*sinIn) > 1e-9 {
		t.Errorf("Snell's law violated: sinOut=%f, expected %f", sinOut, ratio*sinIn)
	}
	if math.Abs(refracted.Length()-1) > 1e-9 {
		t.Errorf("Expected unit refracted direction, got length %f", refracted.Length())
	}
}

func TestRay_At(t *testing.T) {
	ray := NewRay(NewVec3(1, 1, 1), NewVec3(0, 0, -2))
	if got := ray.At(0.5); got != NewVec3(1, 1, 0) {
		t.Errorf("Expected (1,1,0), got %v", got)
	}
}

func TestNewHitRecord_FaceOrientation(t *testing.T) {
	outward := NewVec3(0, 0, 1)

	front := NewHitRecord(NewRay(NewVec3(0, 0, 2), NewVec3(0, 0, -1)), 1, Vec3{}, outward, nil)
	if !front.FrontFace || front.Normal != outward {
		t.Errorf("Expected front face with outward normal, got front=%t normal=%v", front.FrontFace, front.Normal)
	}

	back := NewHitRecord(NewRay(Vec3{}, NewVec3(0, 0, 1)), 1, Vec3{}, outward, nil)
	if back.FrontFace || back.Normal != outward.Negate() {
		t.Errorf("Expected back face with flipped normal, got front=%t normal=%v", back.FrontFace, back.Normal)
	}
}
