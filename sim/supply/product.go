package supply

import (
	"fmt"
	"math"

	"github.com/shopspring/decimal"

	"github.com/inference-sim/supplychain-sim/sim"
)

// sqrtPlaces is the number of fractional digits kept by OptimumInventoryLevel.
const sqrtPlaces = 16

// Product is the capability set shared by purchased and produced products.
type Product interface {
	Base() *ProductBase
	TotalVariableCost() decimal.Decimal
	TotalStorageCost() decimal.Decimal
	OptimumInventoryLevel() (decimal.Decimal, error)
}

// ProductSpec carries the fields common to every product variant.
// Demand and Inventory are annual unit counts; LeadTime is in days.
type ProductSpec struct {
	Name      string
	Price     decimal.Decimal
	Demand    decimal.Decimal
	LeadTime  decimal.Decimal
	Inventory decimal.Decimal
}

// Validate checks that the product is named and every quantity is non-negative.
func (s ProductSpec) Validate() error {
	if s.Name == "" {
		return fmt.Errorf("%w: product name must not be empty", sim.ErrDomain)
	}
	for _, f := range []struct {
		field string
		value decimal.Decimal
	}{
		{"price", s.Price},
		{"demand", s.Demand},
		{"lead time", s.LeadTime},
		{"inventory", s.Inventory},
	} {
		if f.value.IsNegative() {
			return fmt.Errorf("%w: product %q %s can not be negative, got %s", sim.ErrDomain, s.Name, f.field, f.value)
		}
	}
	return nil
}

// ProductBase holds the fields and storage costs shared by both variants.
type ProductBase struct {
	ProductSpec
	StorageCosts Costs
}

func (p *ProductBase) Base() *ProductBase { return p }

func (p *ProductBase) String() string {
	return fmt.Sprintf("<Product: %s - %s>", p.Name, p.Inventory)
}

// TotalStorageCost is the annual holding cost per unit.
func (p *ProductBase) TotalStorageCost() decimal.Decimal {
	return p.StorageCosts.Total()
}

// PurchasedProduct is bought from an external supplier.
type PurchasedProduct struct {
	ProductBase
	PurchaseCosts Costs
}

// NewPurchasedProduct validates spec and returns a product with no costs yet.
func NewPurchasedProduct(spec ProductSpec) (*PurchasedProduct, error) {
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	return &PurchasedProduct{ProductBase: ProductBase{ProductSpec: spec}}, nil
}

// TotalVariableCost is the cost of acquiring one unit.
func (p *PurchasedProduct) TotalVariableCost() decimal.Decimal {
	return p.PurchaseCosts.Total()
}

func (p *PurchasedProduct) OptimumInventoryLevel() (decimal.Decimal, error) {
	return optimumInventoryLevel(p.Name, p.Demand, p.TotalVariableCost(), p.TotalStorageCost())
}

// ProducedProduct is manufactured in one of the company's plants.
type ProducedProduct struct {
	ProductBase
	ProductionCosts Costs
}

// NewProducedProduct validates spec and returns a product with no costs yet.
func NewProducedProduct(spec ProductSpec) (*ProducedProduct, error) {
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	return &ProducedProduct{ProductBase: ProductBase{ProductSpec: spec}}, nil
}

// TotalVariableCost is the cost of manufacturing one unit.
func (p *ProducedProduct) TotalVariableCost() decimal.Decimal {
	return p.ProductionCosts.Total()
}

func (p *ProducedProduct) OptimumInventoryLevel() (decimal.Decimal, error) {
	return optimumInventoryLevel(p.Name, p.Demand, p.TotalVariableCost(), p.TotalStorageCost())
}

// optimumInventoryLevel is the economic order quantity sqrt(2*D*V/S), where
// V plays the role of the ordering cost and S the holding cost per unit.
func optimumInventoryLevel(name string, demand, variable, storage decimal.Decimal) (decimal.Decimal, error) {
	if !storage.IsPositive() {
		return decimal.Zero, fmt.Errorf("%w: optimum inventory level of %q needs a positive total storage cost, got %s",
			sim.ErrDomain, name, storage)
	}
	if demand.IsNegative() || variable.IsNegative() {
		return decimal.Zero, fmt.Errorf("%w: optimum inventory level of %q needs non-negative demand and variable cost",
			sim.ErrDomain, name)
	}
	q := decimal.NewFromInt(2).Mul(demand).Mul(variable).DivRound(storage, 2*sqrtPlaces)
	return sqrt(q, sqrtPlaces), nil
}

// sqrt computes the square root of a non-negative x by Newton's method,
// rounded to places fractional digits.
func sqrt(x decimal.Decimal, places int32) decimal.Decimal {
	if !x.IsPositive() {
		return decimal.Zero
	}
	guess := decimal.NewFromInt(1)
	if f := math.Sqrt(x.InexactFloat64()); f > 0 && !math.IsInf(f, 0) {
		guess = decimal.NewFromFloat(f)
	}
	two := decimal.NewFromInt(2)
	work := places + 4
	for i := 0; i < 100; i++ {
		next := guess.Add(x.DivRound(guess, work)).DivRound(two, work)
		if next.Equal(guess) {
			break
		}
		guess = next
	}
	return guess.Round(places)
}
