package sim

import (
	"fmt"
	"math/rand"

	"github.com/shopspring/decimal"
	"gonum.org/v1/gonum/stat/distuv"
)

// MaxRejections bounds the number of out-of-range draws SampleBoundedNormal
// discards before giving up with ErrSamplingExhausted.
const MaxRejections = 10_000

// Sampler generates decimal samples from a distribution.
type Sampler interface {
	// Sample returns one value drawn with rng.
	Sample(rng *rand.Rand) (decimal.Decimal, error)
}

// BoundedNormal is a normal distribution truncated to [Lower, Upper].
type BoundedNormal struct {
	Mean, Std    decimal.Decimal
	Lower, Upper decimal.Decimal
}

func (b BoundedNormal) Sample(rng *rand.Rand) (decimal.Decimal, error) {
	return SampleBoundedNormal(rng, b.Mean, b.Std, b.Lower, b.Upper)
}

// AcceptanceProbability is the probability mass of the untruncated normal
// that falls inside [Lower, Upper].
func (b BoundedNormal) AcceptanceProbability() float64 {
	return AcceptanceProbability(b.Mean, b.Std, b.Lower, b.Upper)
}

// Constant always samples the same value.
type Constant struct {
	Value decimal.Decimal
}

func (c Constant) Sample(_ *rand.Rand) (decimal.Decimal, error) {
	return c.Value, nil
}

// SampleBoundedNormal draws one value from a normal distribution with the
// given mean and standard deviation, restricted to the closed interval
// [lower, upper]. Out-of-range draws are rejected and redrawn, never clamped.
//
// A zero standard deviation is a point mass: mean is returned when it lies in
// the interval, otherwise the request is unsatisfiable. After MaxRejections
// consecutive rejections the call fails with ErrSamplingExhausted.
func SampleBoundedNormal(rng *rand.Rand, mean, std, lower, upper decimal.Decimal) (decimal.Decimal, error) {
	if std.IsNegative() {
		return decimal.Zero, fmt.Errorf("%w: standard deviation must be non-negative, got %s", ErrSampling, std)
	}
	if lower.GreaterThan(upper) {
		return decimal.Zero, fmt.Errorf("%w: lower bound %s exceeds upper bound %s", ErrSampling, lower, upper)
	}
	if std.IsZero() {
		if inClosed(mean, lower, upper) {
			return mean, nil
		}
		return decimal.Zero, fmt.Errorf("%w: degenerate distribution at %s lies outside [%s, %s]", ErrSampling, mean, lower, upper)
	}
	if rng == nil {
		return decimal.Zero, fmt.Errorf("%w: nil random source", ErrSampling)
	}

	// Only the standard normal deviate is a float; scaling and shifting stay
	// in decimal so neither digits of mean nor the range of std are lost.
	for i := 0; i < MaxRejections; i++ {
		candidate := mean.Add(std.Mul(decimal.NewFromFloat(rng.NormFloat64())))
		if inClosed(candidate, lower, upper) {
			return candidate, nil
		}
	}
	return decimal.Zero, fmt.Errorf("%w: no draw of N(%s, %s) fell inside [%s, %s] after %d attempts",
		ErrSamplingExhausted, mean, std, lower, upper, MaxRejections)
}

// AcceptanceProbability returns P(lower <= X <= upper) for X ~ N(mean, std).
// Rejection sampling needs roughly 1/p draws per accepted value.
func AcceptanceProbability(mean, std, lower, upper decimal.Decimal) float64 {
	if lower.GreaterThan(upper) || std.IsNegative() {
		return 0
	}
	if std.IsZero() {
		if inClosed(mean, lower, upper) {
			return 1
		}
		return 0
	}
	n := distuv.Normal{Mu: mean.InexactFloat64(), Sigma: std.InexactFloat64()}
	return n.CDF(upper.InexactFloat64()) - n.CDF(lower.InexactFloat64())
}

func inClosed(v, lower, upper decimal.Decimal) bool {
	return v.GreaterThanOrEqual(lower) && v.LessThanOrEqual(upper)
}
