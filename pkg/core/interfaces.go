package core

import "math/rand"

// Logger interface for raytracer logging
type Logger interface {
	Printf(format string, args ...interface{})
}

// Shape interface for objects that can be hit by rays.
// Aggregates of shapes implement it too, so an acceleration structure
// can stand in for a plain list without changing callers.
type Shape interface {
	Hit(ray Ray, tMin, tMax float64) (*HitRecord, bool)
}

// Material interface for objects that can scatter rays.
// Returning false means the ray was absorbed.
type Material interface {
	Scatter(rayIn Ray, hit HitRecord, random *rand.Rand) (ScatterResult, bool)
}

// ScatterResult contains the result of material scattering
type ScatterResult struct {
	Scattered   Ray  // The scattered ray
	Attenuation Vec3 // Color attenuation
}

// HitRecord contains information about a ray-object intersection
type HitRecord struct {
	Point     Vec3     // Point of intersection
	Normal    Vec3     // Surface normal, always facing against the incoming ray
	T         float64  // Parameter t along the ray
	FrontFace bool     // Whether the ray origin is outside the surface
	Material  Material // Material of the hit object, shared with the scene
}

// NewHitRecord builds a hit record from the geometric outward normal,
// orienting the stored normal against the ray.
func NewHitRecord(ray Ray, t float64, point, outwardNormal Vec3, material Material) *HitRecord {
	hit := &HitRecord{
		Point:    point,
		T:        t,
		Material: material,
	}
	hit.setFaceNormal(ray, outwardNormal)
	return hit
}

// setFaceNormal sets the normal vector and determines front/back face
func (h *HitRecord) setFaceNormal(ray Ray, outwardNormal Vec3) {
	h.FrontFace = ray.Direction.Dot(outwardNormal) < 0
	if h.FrontFace {
		h.Normal = outwardNormal
	} else {
		h.Normal = outwardNormal.Negate()
	}
}
