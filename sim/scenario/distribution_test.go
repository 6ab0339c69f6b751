package scenario

import (
	"math/rand"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inference-sim/supplychain-sim/sim"
)

func params(kv ...string) map[string]decimal.Decimal {
	out := make(map[string]decimal.Decimal, len(kv)/2)
	for i := 0; i+1 < len(kv); i += 2 {
		out[kv[i]] = decimal.RequireFromString(kv[i+1])
	}
	return out
}

func TestNewSampler_Normal(t *testing.T) {
	s, err := NewSampler(DistSpec{Type: "normal", Params: params("mean", "2", "std", "1", "lower", "0", "upper", "5")})
	require.NoError(t, err)
	bn, ok := s.(sim.BoundedNormal)
	require.True(t, ok, "got %T", s)
	assert.True(t, bn.Upper.Equal(decimal.NewFromInt(5)))

	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 1000; i++ {
		v, err := s.Sample(rng)
		require.NoError(t, err)
		if v.IsNegative() || v.GreaterThan(decimal.NewFromInt(5)) {
			t.Fatalf("sample %d: %s outside [0, 5]", i, v)
		}
	}
}

func TestNewSampler_Constant(t *testing.T) {
	s, err := NewSampler(DistSpec{Type: "constant", Params: params("value", "100")})
	require.NoError(t, err)
	v, err := s.Sample(nil)
	require.NoError(t, err)
	assert.True(t, v.Equal(decimal.NewFromInt(100)))
}

func TestNewSampler_Errors(t *testing.T) {
	tests := []struct {
		name string
		spec DistSpec
		want string
	}{
		{"unknown type", DistSpec{Type: "weibull"}, "unknown distribution type"},
		{"missing param", DistSpec{Type: "normal", Params: params("mean", "1", "std", "1", "lower", "0")}, `"upper"`},
		{"extra param", DistSpec{Type: "constant", Params: params("value", "1", "std", "2")}, `"std"`},
		{"negative std", DistSpec{Type: "normal", Params: params("mean", "1", "std", "-1", "lower", "0", "upper", "2")}, "non-negative"},
		{"inverted bounds", DistSpec{Type: "normal", Params: params("mean", "1", "std", "1", "lower", "3", "upper", "2")}, "exceeds"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewSampler(tt.spec)
			require.ErrorIs(t, err, ErrInvalidDistribution)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}
