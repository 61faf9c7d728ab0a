// Package simrand provides thin draw helpers over an explicitly passed
// math/rand source. All simulation randomness goes through these so the
// draw sequence is easy to audit and reproduce.
package simrand

import "math/rand"

// Uniform draws from [lo, hi).
func Uniform(rng *rand.Rand, lo, hi float64) float64 {
	return lo + rng.Float64()*(hi-lo)
}

// Bernoulli draws true with probability p.
func Bernoulli(rng *rand.Rand, p float64) bool {
	return rng.Float64() < p
}

// IntBetween draws an integer from [lo, hi] inclusive.
func IntBetween(rng *rand.Rand, lo, hi int) int {
	return lo + rng.Intn(hi-lo+1)
}

// Normal draws from a Gaussian with the given mean and standard deviation.
func Normal(rng *rand.Rand, mean, stdev float64) float64 {
	return mean + rng.NormFloat64()*stdev
}
