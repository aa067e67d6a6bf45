package core

import (
	"math"
	"math/rand/v2"
)

// Sampler provides random sampling for rendering algorithms
// Can be swapped out for deterministic testing or different sampling patterns
type Sampler interface {
	Get1D() float64
	Get2D() Vec2
}

// RandomSampler wraps a standard Go random generator
type RandomSampler struct {
	random *rand.Rand
}

// NewSeededSampler creates a sampler whose stream is fully determined by seed and stream.
// The renderer keys stream by pixel and subsample so renders are reproducible.
func NewSeededSampler(seed, stream uint64) *RandomSampler {
	return &RandomSampler{random: rand.New(rand.NewPCG(seed, stream))}
}

// Get1D returns a random float64 in [0, 1)
func (r *RandomSampler) Get1D() float64 {
	return r.random.Float64()
}

// Get2D returns two random float64 values in [0, 1)
func (r *RandomSampler) Get2D() Vec2 {
	return NewVec2(r.random.Float64(), r.random.Float64())
}

// OrthonormalBasis returns two unit vectors perpendicular to the unit vector w and to each other
func OrthonormalBasis(w Vec3) (u, v Vec3) {
	// Find a vector perpendicular to w
	var nt Vec3
	if math.Abs(w.X) > 0.1 {
		nt = NewVec3(0, 1, 0)
	} else {
		nt = NewVec3(1, 0, 0)
	}
	u = nt.Cross(w).Normalize()
	v = w.Cross(u)
	return u, v
}

// PerturbNormal tilts a unit normal by a random offset of up to spread in a random
// direction around it. A spread of zero returns the normal unchanged.
func PerturbNormal(normal Vec3, spread float64, sample Vec2) Vec3 {
	if spread <= 0 {
		return normal
	}
	tangent, bitangent := OrthonormalBasis(normal)

	phi := 2.0 * math.Pi * sample.X
	magnitude := spread * sample.Y

	offset := tangent.Multiply(math.Cos(phi)).Add(bitangent.Multiply(math.Sin(phi))).Multiply(magnitude)
	return normal.Add(offset).Normalize()
}
