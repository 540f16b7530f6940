package catalog

import (
	"math"
	"math/rand/v2"
)

const (
	// MinMultiplier is the smallest GDP multiplier a country can draw
	MinMultiplier = 1000
	// MaxMultiplier is the largest GDP multiplier a country can draw
	MaxMultiplier = 2000
)

// Estimator draws the per-country GDP multiplier. The multiplier stands in
// for an unmodeled economic factor, so estimates are not reproducible
// between runs.
type Estimator struct {
	intN func(n int) int
}

// NewEstimator uses the runtime's shared random source, safe for concurrent use.
func NewEstimator() *Estimator {
	return &Estimator{intN: rand.IntN}
}

// NewEstimatorWithSource draws with intN, which must return a value in [0, n)
// and be safe for concurrent use.
func NewEstimatorWithSource(intN func(n int) int) *Estimator {
	return &Estimator{intN: intN}
}

// Multiplier draws uniformly from [MinMultiplier, MaxMultiplier].
func (e *Estimator) Multiplier() int {
	return MinMultiplier + e.intN(MaxMultiplier-MinMultiplier+1)
}

// Estimate computes the GDP estimate with a fresh multiplier.
func (e *Estimator) Estimate(population int64, rate *float64) float64 {
	return EstimateGDP(population, rate, e.Multiplier())
}

// EstimateGDP is population * multiplier / rate. Without a usable rate the
// estimate is 0; there is no population-only fallback. A rate so small that
// the quotient overflows also yields 0, so the estimate is always finite.
func EstimateGDP(population int64, rate *float64, multiplier int) float64 {
	if rate == nil || !validRate(*rate) {
		return 0
	}
	gdp := float64(population) * float64(multiplier) / *rate
	if math.IsInf(gdp, 0) || math.IsNaN(gdp) {
		return 0
	}
	return gdp
}
