// Package scenario describes Monte Carlo cost experiments in YAML and turns
// them into computations for sim.Harness.
package scenario

import (
	"bytes"
	"fmt"
	"os"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// Metric names the figure an experiment forecasts.
const (
	MetricTotalFixedCost        = "total_fixed_cost"
	MetricTotalVariableCost     = "total_variable_cost"
	MetricTotalStorageCost      = "total_storage_cost"
	MetricOptimumInventoryLevel = "optimum_inventory_level"
	MetricSample                = "sample"
)

// Product kinds.
const (
	KindPurchased = "purchased"
	KindProduced  = "produced"
)

// Scenario is the top-level experiment file.
// Loaded from YAML via LoadScenario(path).
type Scenario struct {
	Version     string           `yaml:"version"`
	Seed        *int64           `yaml:"seed,omitempty"` // nil draws a fresh seed per run
	Experiments []ExperimentSpec `yaml:"experiments"`
}

// ExperimentSpec is one harness session: a title, a trial count and the
// figure to compute on every trial.
type ExperimentSpec struct {
	Title        string       `yaml:"title"`
	Times        int          `yaml:"times"`
	Metric       string       `yaml:"metric"`
	Center       *CenterSpec  `yaml:"center,omitempty"`
	Product      *ProductSpec `yaml:"product,omitempty"`
	Distribution *DistSpec    `yaml:"distribution,omitempty"` // metric "sample" only
}

// CostSpec is a named cost whose value is drawn from Distribution.
type CostSpec struct {
	Name         string   `yaml:"name"`
	Distribution DistSpec `yaml:"distribution"`
}

// CenterSpec describes a fixed-cost-bearing facility.
type CenterSpec struct {
	Name    string     `yaml:"name"`
	Address string     `yaml:"address,omitempty"`
	Costs   []CostSpec `yaml:"costs"`
}

// ProductSpec describes a purchased or produced product.
type ProductSpec struct {
	Kind            string          `yaml:"kind"`
	Name            string          `yaml:"name"`
	Price           decimal.Decimal `yaml:"price,omitempty"`
	Inventory       decimal.Decimal `yaml:"inventory,omitempty"`
	LeadTime        decimal.Decimal `yaml:"lead_time,omitempty"`
	Demand          *DistSpec       `yaml:"demand,omitempty"` // absent = zero demand
	PurchaseCosts   []CostSpec      `yaml:"purchase_costs,omitempty"`
	ProductionCosts []CostSpec      `yaml:"production_costs,omitempty"`
	StorageCosts    []CostSpec      `yaml:"storage_costs,omitempty"`
}

// Valid value registries.
var (
	validMetrics = map[string]bool{
		MetricTotalFixedCost: true, MetricTotalVariableCost: true, MetricTotalStorageCost: true,
		MetricOptimumInventoryLevel: true, MetricSample: true,
	}
	validKinds = map[string]bool{
		KindPurchased: true, KindProduced: true,
	}
	validVersions = map[string]bool{
		"": true, "1": true,
	}
)

// LoadScenario reads and parses a YAML scenario file.
// Uses strict parsing: unrecognized keys (typos) are rejected.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading scenario: %w", err)
	}
	return ParseScenario(data)
}

// ParseScenario parses YAML scenario data with strict field checking.
func ParseScenario(data []byte) (*Scenario, error) {
	var s Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&s); err != nil {
		return nil, fmt.Errorf("parsing scenario: %w", err)
	}
	if s.Version == "" {
		s.Version = "1"
	}
	return &s, nil
}

// Validate checks that every experiment is complete and consistent.
func (s *Scenario) Validate() error {
	if !validVersions[s.Version] {
		return fmt.Errorf("unsupported scenario version %q", s.Version)
	}
	if len(s.Experiments) == 0 {
		return fmt.Errorf("at least one experiment required")
	}
	for i := range s.Experiments {
		if err := s.Experiments[i].validate(fmt.Sprintf("experiments[%d]", i)); err != nil {
			return err
		}
	}
	return nil
}

// OverrideTimes sets the trial count of every experiment. Non-positive
// values leave the scenario unchanged.
func (s *Scenario) OverrideTimes(times int) {
	if times <= 0 {
		return
	}
	for i := range s.Experiments {
		s.Experiments[i].Times = times
	}
}

func (e *ExperimentSpec) validate(prefix string) error {
	if e.Title == "" {
		return fmt.Errorf("%s: title must not be empty", prefix)
	}
	if e.Times <= 0 {
		return fmt.Errorf("%s: times must be positive, got %d", prefix, e.Times)
	}
	if !validMetrics[e.Metric] {
		return fmt.Errorf("%s: unknown metric %q; valid: %s, %s, %s, %s, %s", prefix, e.Metric,
			MetricTotalFixedCost, MetricTotalVariableCost, MetricTotalStorageCost,
			MetricOptimumInventoryLevel, MetricSample)
	}

	switch e.Metric {
	case MetricTotalFixedCost:
		if e.Center == nil {
			return fmt.Errorf("%s: metric %s requires a center", prefix, e.Metric)
		}
		return e.Center.validate(prefix + ".center")
	case MetricSample:
		if e.Distribution == nil {
			return fmt.Errorf("%s: metric %s requires a distribution", prefix, e.Metric)
		}
		return validateDist(prefix+".distribution", *e.Distribution)
	default:
		if e.Product == nil {
			return fmt.Errorf("%s: metric %s requires a product", prefix, e.Metric)
		}
		return e.Product.validate(prefix + ".product")
	}
}

func (c *CenterSpec) validate(prefix string) error {
	if c.Name == "" {
		return fmt.Errorf("%s: name must not be empty", prefix)
	}
	return validateCosts(prefix+".costs", c.Costs)
}

func (p *ProductSpec) validate(prefix string) error {
	if !validKinds[p.Kind] {
		return fmt.Errorf("%s: unknown kind %q; valid: %s, %s", prefix, p.Kind, KindPurchased, KindProduced)
	}
	if p.Name == "" {
		return fmt.Errorf("%s: name must not be empty", prefix)
	}
	if p.Kind == KindPurchased && len(p.ProductionCosts) > 0 {
		return fmt.Errorf("%s: a purchased product has purchase_costs, not production_costs", prefix)
	}
	if p.Kind == KindProduced && len(p.PurchaseCosts) > 0 {
		return fmt.Errorf("%s: a produced product has production_costs, not purchase_costs", prefix)
	}
	for name, v := range map[string]decimal.Decimal{"price": p.Price, "inventory": p.Inventory, "lead_time": p.LeadTime} {
		if v.IsNegative() {
			return fmt.Errorf("%s.%s must be non-negative, got %s", prefix, name, v)
		}
	}
	if p.Demand != nil {
		if err := validateDist(prefix+".demand", *p.Demand); err != nil {
			return err
		}
	}
	for _, group := range []struct {
		name  string
		costs []CostSpec
	}{
		{"purchase_costs", p.PurchaseCosts},
		{"production_costs", p.ProductionCosts},
		{"storage_costs", p.StorageCosts},
	} {
		if err := validateCosts(prefix+"."+group.name, group.costs); err != nil {
			return err
		}
	}
	return nil
}

func validateCosts(prefix string, costs []CostSpec) error {
	seen := make(map[string]bool, len(costs))
	for i, c := range costs {
		p := fmt.Sprintf("%s[%d]", prefix, i)
		if c.Name == "" {
			return fmt.Errorf("%s: name must not be empty", p)
		}
		if seen[c.Name] {
			return fmt.Errorf("%s: duplicate cost name %q", p, c.Name)
		}
		seen[c.Name] = true
		if err := validateDist(p+".distribution", c.Distribution); err != nil {
			return err
		}
	}
	return nil
}

func validateDist(prefix string, d DistSpec) error {
	if _, err := NewSampler(d); err != nil {
		return fmt.Errorf("%s: %w", prefix, err)
	}
	return nil
}
