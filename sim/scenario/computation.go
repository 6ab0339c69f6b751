package scenario

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/inference-sim/supplychain-sim/sim"
	"github.com/inference-sim/supplychain-sim/sim/supply"
)

// namedSampler pairs a cost name with the distribution of its value.
type namedSampler struct {
	name    string
	sampler sim.Sampler
}

func newNamedSamplers(costs []CostSpec) ([]namedSampler, error) {
	out := make([]namedSampler, 0, len(costs))
	for _, c := range costs {
		s, err := NewSampler(c.Distribution)
		if err != nil {
			return nil, fmt.Errorf("cost %q: %w", c.Name, err)
		}
		out = append(out, namedSampler{name: c.Name, sampler: s})
	}
	return out, nil
}

// sampleCosts draws a fresh value for every cost, in declaration order.
func sampleCosts(h *sim.Harness, samplers []namedSampler) (supply.Costs, error) {
	var costs supply.Costs
	for _, ns := range samplers {
		v, err := h.Sample(ns.sampler)
		if err != nil {
			return supply.Costs{}, fmt.Errorf("sampling %q: %w", ns.name, err)
		}
		c, err := supply.NewCost(ns.name, v)
		if err != nil {
			return supply.Costs{}, err
		}
		costs.Add(c)
	}
	return costs, nil
}

// Computation builds the trial body for e. Distributions are parsed once;
// every invocation re-creates the center or product and re-samples all of
// its costs through h.
func (e *ExperimentSpec) Computation(h *sim.Harness) (sim.Computation, error) {
	switch e.Metric {
	case MetricSample:
		if e.Distribution == nil {
			return nil, fmt.Errorf("experiment %q: missing distribution", e.Title)
		}
		s, err := NewSampler(*e.Distribution)
		if err != nil {
			return nil, fmt.Errorf("experiment %q: %w", e.Title, err)
		}
		return func() (decimal.Decimal, error) {
			return h.Sample(s)
		}, nil

	case MetricTotalFixedCost:
		if e.Center == nil {
			return nil, fmt.Errorf("experiment %q: missing center", e.Title)
		}
		return e.Center.computation(h)

	case MetricTotalVariableCost, MetricTotalStorageCost, MetricOptimumInventoryLevel:
		if e.Product == nil {
			return nil, fmt.Errorf("experiment %q: missing product", e.Title)
		}
		build, err := e.Product.builder(h)
		if err != nil {
			return nil, fmt.Errorf("experiment %q: %w", e.Title, err)
		}
		metric := e.Metric
		return func() (decimal.Decimal, error) {
			p, err := build()
			if err != nil {
				return decimal.Zero, err
			}
			switch metric {
			case MetricTotalVariableCost:
				return p.TotalVariableCost(), nil
			case MetricTotalStorageCost:
				return p.TotalStorageCost(), nil
			default:
				return p.OptimumInventoryLevel()
			}
		}, nil

	default:
		return nil, fmt.Errorf("experiment %q: unknown metric %q", e.Title, e.Metric)
	}
}

func (c *CenterSpec) computation(h *sim.Harness) (sim.Computation, error) {
	samplers, err := newNamedSamplers(c.Costs)
	if err != nil {
		return nil, fmt.Errorf("center %q: %w", c.Name, err)
	}
	name, address := c.Name, c.Address
	return func() (decimal.Decimal, error) {
		costs, err := sampleCosts(h, samplers)
		if err != nil {
			return decimal.Zero, err
		}
		center := &supply.Center{Name: name, Address: address, Costs: costs}
		return center.TotalFixedCost(), nil
	}, nil
}

// builder returns a constructor that creates a freshly sampled product.
func (p *ProductSpec) builder(h *sim.Harness) (func() (supply.Product, error), error) {
	var demand sim.Sampler = sim.Constant{Value: decimal.Zero}
	if p.Demand != nil {
		s, err := NewSampler(*p.Demand)
		if err != nil {
			return nil, fmt.Errorf("product %q demand: %w", p.Name, err)
		}
		demand = s
	}
	variableSpecs := p.PurchaseCosts
	if p.Kind == KindProduced {
		variableSpecs = p.ProductionCosts
	}
	variable, err := newNamedSamplers(variableSpecs)
	if err != nil {
		return nil, fmt.Errorf("product %q: %w", p.Name, err)
	}
	storage, err := newNamedSamplers(p.StorageCosts)
	if err != nil {
		return nil, fmt.Errorf("product %q: %w", p.Name, err)
	}

	kind := p.Kind
	base := supply.ProductSpec{Name: p.Name, Price: p.Price, Inventory: p.Inventory, LeadTime: p.LeadTime}
	return func() (supply.Product, error) {
		spec := base
		d, err := h.Sample(demand)
		if err != nil {
			return nil, fmt.Errorf("sampling demand of %q: %w", spec.Name, err)
		}
		spec.Demand = d

		variableCosts, err := sampleCosts(h, variable)
		if err != nil {
			return nil, err
		}
		storageCosts, err := sampleCosts(h, storage)
		if err != nil {
			return nil, err
		}

		if kind == KindProduced {
			prod, err := supply.NewProducedProduct(spec)
			if err != nil {
				return nil, err
			}
			prod.ProductionCosts = variableCosts
			prod.StorageCosts = storageCosts
			return prod, nil
		}
		purch, err := supply.NewPurchasedProduct(spec)
		if err != nil {
			return nil, err
		}
		purch.PurchaseCosts = variableCosts
		purch.StorageCosts = storageCosts
		return purch, nil
	}, nil
}
