package supply

import "github.com/shopspring/decimal"

// Center is a facility (plant, warehouse, office) that bears fixed costs.
type Center struct {
	Name    string
	Address string
	Costs   Costs
}

func (c *Center) String() string {
	return "<Center: " + c.Name + " - " + c.Address + ">"
}

// TotalFixedCost is the sum of the center's costs.
func (c *Center) TotalFixedCost() decimal.Decimal {
	return c.Costs.Total()
}
