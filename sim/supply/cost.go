// Package supply holds the plain records a trial builds and reads: named
// costs, cost-bearing centers and products.
//
// Derived figures (totals, optimum inventory level) are recomputed on every
// call because trial bodies re-sample and mutate costs freely.
package supply

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/inference-sim/supplychain-sim/sim"
)

// Cost is one named contributor to a cost total.
type Cost struct {
	Name  string
	Value decimal.Decimal
}

// NewCost returns a Cost after checking that it is named and non-negative.
func NewCost(name string, value decimal.Decimal) (Cost, error) {
	if name == "" {
		return Cost{}, fmt.Errorf("%w: cost name must not be empty", sim.ErrDomain)
	}
	if value.IsNegative() {
		return Cost{}, fmt.Errorf("%w: cost %q can not be negative, got %s", sim.ErrDomain, name, value)
	}
	return Cost{Name: name, Value: value}, nil
}

func (c Cost) String() string {
	return fmt.Sprintf("%s=%s", c.Name, c.Value)
}

// Costs is an ordered collection of costs keyed by name.
// Adding a cost whose name is already present replaces it in place.
type Costs struct {
	items []Cost
}

// NewCosts builds a collection from cs, in order.
func NewCosts(cs ...Cost) Costs {
	var out Costs
	for _, c := range cs {
		out.Add(c)
	}
	return out
}

// Add appends c, or replaces the cost with the same name.
func (cs *Costs) Add(c Cost) {
	for i := range cs.items {
		if cs.items[i].Name == c.Name {
			cs.items[i] = c
			return
		}
	}
	cs.items = append(cs.items, c)
}

// Get returns the cost called name. A missing cost reads as zero.
func (cs Costs) Get(name string) (Cost, bool) {
	for _, c := range cs.items {
		if c.Name == name {
			return c, true
		}
	}
	return Cost{Name: name, Value: decimal.Zero}, false
}

// Len returns the number of costs.
func (cs Costs) Len() int { return len(cs.items) }

// All returns a copy of the costs in insertion order.
func (cs Costs) All() []Cost {
	out := make([]Cost, len(cs.items))
	copy(out, cs.items)
	return out
}

// Total is the sum of all values; zero for an empty collection.
func (cs Costs) Total() decimal.Decimal {
	total := decimal.Zero
	for _, c := range cs.items {
		total = total.Add(c.Value)
	}
	return total
}
