package testkit

import (
	"math/rand"
)

// Deterministic sample generators for tests. Every generator takes an
// explicit seed so test data is reproducible across runs.

// NormalSample draws n values from N(mu, sigma^2)
func NormalSample(n int, mu, sigma float64, seed int64) []float64 {
	rng := rand.New(rand.NewSource(seed))
	data := make([]float64, n)
	for i := range data {
		data[i] = mu + sigma*rng.NormFloat64()
	}
	return data
}

// UniformSample draws n values uniformly from [lo, hi)
func UniformSample(n int, lo, hi float64, seed int64) []float64 {
	rng := rand.New(rand.NewSource(seed))
	data := make([]float64, n)
	for i := range data {
		data[i] = lo + (hi-lo)*rng.Float64()
	}
	return data
}

// ConstantSample returns n copies of v
func ConstantSample(n int, v float64) []float64 {
	data := make([]float64, n)
	for i := range data {
		data[i] = v
	}
	return data
}
