package sim

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestSampleBoundedNormal_StaysInsideClosedInterval(t *testing.T) {
	tests := []struct {
		name                     string
		mean, std, lower, upper string
	}{
		{"symmetric", "3", "1", "1", "10"},
		{"wide std narrow bounds", "512", "1000", "100", "900"},
		{"mean at lower bound", "0", "0.1", "0", "0.5"},
		{"mean at upper bound", "5", "2", "0", "5"},
		{"fractional", "0.1", "0.1", "0", "0.5"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rng := rand.New(rand.NewSource(42))
			lower, upper := d(tt.lower), d(tt.upper)
			for i := 0; i < 10000; i++ {
				v, err := SampleBoundedNormal(rng, d(tt.mean), d(tt.std), lower, upper)
				require.NoError(t, err)
				if v.LessThan(lower) || v.GreaterThan(upper) {
					t.Fatalf("sample %d: %s outside [%s, %s]", i, v, lower, upper)
				}
			}
		})
	}
}

func TestSampleBoundedNormal_RejectsInsteadOfClamping(t *testing.T) {
	// With bounds one std away on both sides, clamping would pile ~32% of the
	// mass exactly on the bounds; rejection never returns them in practice.
	rng := rand.New(rand.NewSource(1))
	lower, upper := d("-1"), d("1")
	atBound := 0
	for i := 0; i < 10000; i++ {
		v, err := SampleBoundedNormal(rng, decimal.Zero, decimal.NewFromInt(1), lower, upper)
		require.NoError(t, err)
		if v.Equal(lower) || v.Equal(upper) {
			atBound++
		}
	}
	assert.Zero(t, atBound, "samples landed exactly on a bound")
}

func TestSampleBoundedNormal_KeepsDecimalPrecision(t *testing.T) {
	// A mean with 21 significant digits has no exact float64 form; the draws
	// must still spread across the interval instead of collapsing onto a bound.
	rng := rand.New(rand.NewSource(7))
	mean := d("100000000000000000000.5")
	lower, upper := d("100000000000000000000"), d("100000000000000000001")
	distinct := make(map[string]struct{})
	for i := 0; i < 1000; i++ {
		v, err := SampleBoundedNormal(rng, mean, d("0.1"), lower, upper)
		require.NoError(t, err)
		require.True(t, v.GreaterThan(lower) && v.LessThan(upper), "draw %d = %s", i, v)
		distinct[v.String()] = struct{}{}
	}
	assert.Greater(t, len(distinct), 900)
}

func TestSampleBoundedNormal_StdBeyondFloatRange(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	lower, upper := d("-1e500"), d("1e500")
	for i := 0; i < 100; i++ {
		var v decimal.Decimal
		var err error
		require.NotPanics(t, func() {
			v, err = SampleBoundedNormal(rng, decimal.Zero, d("1e400"), lower, upper)
		})
		require.NoError(t, err)
		assert.True(t, v.GreaterThanOrEqual(lower) && v.LessThanOrEqual(upper), "draw %d = %s", i, v)
	}
}

func TestSampleBoundedNormal_MeanMatchesParam(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	n := 10000
	sum := decimal.Zero
	for i := 0; i < n; i++ {
		v, err := SampleBoundedNormal(rng, d("500"), d("50"), d("0"), d("1000"))
		require.NoError(t, err)
		sum = sum.Add(v)
	}
	mean := sum.Div(decimal.NewFromInt(int64(n))).InexactFloat64()
	assert.InDelta(t, 500, mean, 5, "bounds 10 std away must not bias the mean")
}

func TestSampleBoundedNormal_ZeroStd(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	v, err := SampleBoundedNormal(rng, d("7.25"), decimal.Zero, d("0"), d("10"))
	require.NoError(t, err)
	assert.True(t, v.Equal(d("7.25")), "got %s, want 7.25", v)

	v, err = SampleBoundedNormal(rng, d("10"), decimal.Zero, d("0"), d("10"))
	require.NoError(t, err, "mean on the closed upper bound is satisfiable")
	assert.True(t, v.Equal(d("10")))

	_, err = SampleBoundedNormal(rng, d("11"), decimal.Zero, d("0"), d("10"))
	assert.ErrorIs(t, err, ErrSampling)
	assert.False(t, errors.Is(err, ErrSamplingExhausted), "degenerate case is not exhaustion")
}

func TestSampleBoundedNormal_InvalidParameters(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	tests := []struct {
		name                     string
		mean, std, lower, upper string
	}{
		{"negative std", "0", "-1", "-1", "1"},
		{"inverted bounds", "0", "1", "1", "-1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := SampleBoundedNormal(rng, d(tt.mean), d(tt.std), d(tt.lower), d(tt.upper))
			assert.ErrorIs(t, err, ErrSampling)
		})
	}
}

func TestSampleBoundedNormal_Exhaustion(t *testing.T) {
	// Bounds 100 std above the mean are never hit.
	rng := rand.New(rand.NewSource(42))
	_, err := SampleBoundedNormal(rng, d("0"), d("1"), d("100"), d("101"))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrSamplingExhausted)
	assert.ErrorIs(t, err, ErrSampling, "exhaustion is a sampling error")
}

func TestSampleBoundedNormal_Deterministic(t *testing.T) {
	a := rand.New(rand.NewSource(99))
	b := rand.New(rand.NewSource(99))
	for i := 0; i < 100; i++ {
		va, errA := SampleBoundedNormal(a, d("2"), d("1"), d("0"), d("5"))
		vb, errB := SampleBoundedNormal(b, d("2"), d("1"), d("0"), d("5"))
		require.NoError(t, errA)
		require.NoError(t, errB)
		if !va.Equal(vb) {
			t.Fatalf("draw %d: %s != %s with the same seed", i, va, vb)
		}
	}
}

func TestAcceptanceProbability(t *testing.T) {
	assert.InDelta(t, 0.6827, AcceptanceProbability(d("0"), d("1"), d("-1"), d("1")), 1e-4)
	assert.InDelta(t, 1.0, AcceptanceProbability(d("0"), d("1"), d("-50"), d("50")), 1e-9)
	assert.Equal(t, 1.0, AcceptanceProbability(d("3"), decimal.Zero, d("0"), d("5")))
	assert.Equal(t, 0.0, AcceptanceProbability(d("6"), decimal.Zero, d("0"), d("5")))
	assert.Equal(t, 0.0, AcceptanceProbability(d("0"), d("1"), d("5"), d("0")))
}

func TestConstant_Sample(t *testing.T) {
	v, err := Constant{Value: d("4.5")}.Sample(nil)
	require.NoError(t, err)
	assert.True(t, v.Equal(d("4.5")))
}
