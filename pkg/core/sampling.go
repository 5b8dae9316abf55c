package core

import "math/rand"

// RandomVec3 returns a vector with each component uniform in [min, max)
func RandomVec3(random *rand.Rand, minVal, maxVal float64) Vec3 {
	span := maxVal - minVal
	return Vec3{
		X: minVal + span*random.Float64(),
		Y: minVal + span*random.Float64(),
		Z: minVal + span*random.Float64(),
	}
}

// RandomInUnitSphere generates a random point strictly inside a unit sphere
func RandomInUnitSphere(random *rand.Rand) Vec3 {
	for {
		// Generate random point in [-1,1]³ cube
		p := RandomVec3(random, -1, 1)
		// Accept if inside unit sphere
		if p.LengthSquared() < 1.0 {
			return p
		}
	}
}

// RandomUnitVector generates a uniformly distributed direction on the unit sphere
func RandomUnitVector(random *rand.Rand) Vec3 {
	for {
		p := RandomInUnitSphere(random)
		// Points too close to the origin lose precision when normalized
		if p.LengthSquared() > 1e-160 {
			return p.Normalize()
		}
	}
}

// RandomInHemisphere generates a random point in the unit sphere on the same side as normal
func RandomInHemisphere(normal Vec3, random *rand.Rand) Vec3 {
	p := RandomInUnitSphere(random)
	if p.Dot(normal) > 0 {
		return p
	}
	return p.Negate()
}
