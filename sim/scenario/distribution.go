package scenario

import (
	"errors"
	"fmt"
	"slices"
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/inference-sim/supplychain-sim/sim"
)

// DistSpec parameterizes the distribution of one sampled quantity.
//
//	type: normal    params: mean, std, lower, upper
//	type: constant  params: value
type DistSpec struct {
	Type   string                     `yaml:"type"`
	Params map[string]decimal.Decimal `yaml:"params,omitempty"`
}

// ErrInvalidDistribution marks a DistSpec that cannot be turned into a sampler.
var ErrInvalidDistribution = errors.New("invalid distribution")

var requiredParams = map[string][]string{
	"normal":   {"mean", "std", "lower", "upper"},
	"constant": {"value"},
}

// requireParam checks that all required keys exist in a params map.
func requireParam(params map[string]decimal.Decimal, keys ...string) error {
	for _, k := range keys {
		if _, ok := params[k]; !ok {
			return fmt.Errorf("%w: requires parameter %q", ErrInvalidDistribution, k)
		}
	}
	return nil
}

func validTypes() string {
	names := make([]string, 0, len(requiredParams))
	for name := range requiredParams {
		names = append(names, name)
	}
	sort.Strings(names)
	return strings.Join(names, ", ")
}

// NewSampler creates a sim.Sampler from a DistSpec.
func NewSampler(spec DistSpec) (sim.Sampler, error) {
	keys, ok := requiredParams[spec.Type]
	if !ok {
		return nil, fmt.Errorf("%w: unknown distribution type %q; valid: %s", ErrInvalidDistribution, spec.Type, validTypes())
	}
	if err := requireParam(spec.Params, keys...); err != nil {
		return nil, err
	}
	for name := range spec.Params {
		if !slices.Contains(keys, name) {
			return nil, fmt.Errorf("%w: %s does not take parameter %q", ErrInvalidDistribution, spec.Type, name)
		}
	}

	switch spec.Type {
	case "normal":
		bn := sim.BoundedNormal{
			Mean:  spec.Params["mean"],
			Std:   spec.Params["std"],
			Lower: spec.Params["lower"],
			Upper: spec.Params["upper"],
		}
		if bn.Std.IsNegative() {
			return nil, fmt.Errorf("%w: std must be non-negative, got %s", ErrInvalidDistribution, bn.Std)
		}
		if bn.Lower.GreaterThan(bn.Upper) {
			return nil, fmt.Errorf("%w: lower %s exceeds upper %s", ErrInvalidDistribution, bn.Lower, bn.Upper)
		}
		return bn, nil
	default:
		return sim.Constant{Value: spec.Params["value"]}, nil
	}
}
