package material

import (
	"math"
	"math/rand"

	"github.com/df07/go-weekend-raytracer/pkg/core"
)

// DefaultGlassAttenuation is the slightly blue near-white tint of clear glass
var DefaultGlassAttenuation = core.NewVec3(0.9, 0.9, 1.0)

// Dielectric represents a transparent material like glass that can both reflect and refract
type Dielectric struct {
	RefractiveIndex float64   // Index of refraction (e.g., 1.5 for glass)
	Attenuation     core.Vec3 // Per-channel transmission
}

// NewDielectric creates a new dielectric material with the default glass tint
func NewDielectric(refractiveIndex float64) *Dielectric {
	return NewTintedDielectric(refractiveIndex, DefaultGlassAttenuation)
}

// NewTintedDielectric creates a dielectric with a custom attenuation
func NewTintedDielectric(refractiveIndex float64, attenuation core.Vec3) *Dielectric {
	return &Dielectric{RefractiveIndex: refractiveIndex, Attenuation: attenuation}
}

// Scatter implements the Material interface for dielectric scattering
func (d *Dielectric) Scatter(rayIn core.Ray, hit core.HitRecord, random *rand.Rand) (core.ScatterResult, bool) {
	// Determine if we're entering or exiting the material
	refractionRatio := d.RefractiveIndex
	if hit.FrontFace {
		refractionRatio = 1.0 / d.RefractiveIndex
	}

	unitDirection := rayIn.Direction.Normalize()

	cosTheta := math.Min(unitDirection.Negate().Dot(hit.Normal), 1.0)
	sinTheta := math.Sqrt(1.0 - cosTheta*cosTheta)

	// Check for total internal reflection
	cannotRefract := refractionRatio*sinTheta > 1.0

	var direction core.Vec3
	if cannotRefract || Reflectance(cosTheta, d.RefractiveIndex) > random.Float64() {
		direction = core.Reflect(unitDirection, hit.Normal)
	} else {
		direction = core.Refract(unitDirection, hit.Normal, refractionRatio)
	}

	return core.ScatterResult{
		Scattered:   core.NewRay(hit.Point, direction),
		Attenuation: d.Attenuation,
	}, true
}

// Reflectance calculates the Fresnel reflectance using Schlick's approximation.
// R0 is the same for an index and its reciprocal, so either side of the interface may be passed.
func Reflectance(cosine, refractiveIndex float64) float64 {
	r0 := (1 - refractiveIndex) / (1 + refractiveIndex)
	r0 = r0 * r0

	// Matched indices form no interface and reflect nothing
	if r0 == 0 {
		return 0
	}
	return r0 + (1-r0)*math.Pow(1-cosine, 5)
}
