package core

import (
	"math/rand"
)

// Sampler provides uniform random numbers for rendering algorithms.
// Can be swapped out for deterministic testing.
type Sampler interface {
	// Get1D returns a float64 in [0, 1)
	Get1D() float64
}

// RandomSampler wraps a standard Go random generator
type RandomSampler struct {
	random *rand.Rand
}

// NewRandomSampler creates a sampler from a Go random generator
func NewRandomSampler(random *rand.Rand) *RandomSampler {
	return &RandomSampler{random: random}
}

// NewSeededSampler creates a sampler for one unit of work (a row, a tile)
// derived from a global seed and the unit's index, so concurrent units never
// share generator state and renders stay reproducible.
func NewSeededSampler(seed int64, unit int) *RandomSampler {
	return NewRandomSampler(rand.New(rand.NewSource(seed + int64(unit))))
}

// Get1D returns a random float64 in [0, 1)
func (r *RandomSampler) Get1D() float64 {
	return r.random.Float64()
}

// RandomInRange returns a uniform value in [lo, hi)
func RandomInRange(lo, hi float64, sampler Sampler) float64 {
	return lo + (hi-lo)*sampler.Get1D()
}

// RandomVec3 returns a vector with each component uniform in [lo, hi)
func RandomVec3(lo, hi float64, sampler Sampler) Vec3 {
	x := RandomInRange(lo, hi, sampler)
	y := RandomInRange(lo, hi, sampler)
	z := RandomInRange(lo, hi, sampler)
	return NewVec3(x, y, z)
}

// RandomInUnitSquare returns a point in [-0.5, 0.5)² on the z=0 plane
func RandomInUnitSquare(sampler Sampler) Vec3 {
	p := RandomVec3(-0.5, 0.5, sampler)
	p.Z = 0
	return p
}

// RandomInUnitDisk rejection-samples a point strictly inside the unit disk (z=0).
// The loop has no iteration cap; it terminates almost surely.
func RandomInUnitDisk(sampler Sampler) Vec3 {
	for {
		p := RandomVec3(-1, 1, sampler)
		p.Z = 0
		if p.LengthSquared() < 1 {
			return p
		}
	}
}

// RandomInUnitSphere rejection-samples a point strictly inside the unit ball
func RandomInUnitSphere(sampler Sampler) Vec3 {
	for {
		p := RandomVec3(-1, 1, sampler)
		if p.LengthSquared() < 1 {
			return p
		}
	}
}

// RandomUnitVector returns a random direction on the unit sphere
func RandomUnitVector(sampler Sampler) Vec3 {
	return RandomInUnitSphere(sampler).Normalize()
}

// RandomInHemisphere returns a random unit direction on the same side as normal
func RandomInHemisphere(normal Vec3, sampler Sampler) Vec3 {
	dir := RandomUnitVector(sampler)
	if dir.Dot(normal) > 0 {
		return dir
	}
	return dir.Negate()
}
