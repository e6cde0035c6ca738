// Package costing holds the per-event cost inputs applied when profit is computed.
package costing

import "github.com/shopspring/decimal"

// Config mirrors the "lootConfig" block of the snapshot document.
// Cost fields are read only while Active is set.
type Config struct {
	Active           bool            `json:"active"`
	PaintCostPerUnit decimal.Decimal `json:"paintCostPerBox"`
	RentCost         decimal.Decimal `json:"rentCost"`
	ConsumablesCost  decimal.Decimal `json:"foodCost"`
	// RentPaid records that rent already left the cash box; it does not change profit.
	RentPaid bool `json:"rentPaid"`
}

type Patch struct {
	Active           *bool
	PaintCostPerUnit *decimal.Decimal
	RentCost         *decimal.Decimal
	ConsumablesCost  *decimal.Decimal
	RentPaid         *bool
}

// Apply returns c with the non-nil fields of p. Negative costs are clamped to zero.
func (c Config) Apply(p Patch) Config {
	if p.Active != nil {
		c.Active = *p.Active
	}
	if p.PaintCostPerUnit != nil {
		c.PaintCostPerUnit = nonNegative(*p.PaintCostPerUnit)
	}
	if p.RentCost != nil {
		c.RentCost = nonNegative(*p.RentCost)
	}
	if p.ConsumablesCost != nil {
		c.ConsumablesCost = nonNegative(*p.ConsumablesCost)
	}
	if p.RentPaid != nil {
		c.RentPaid = *p.RentPaid
	}
	return c
}

// Enabled reports whether profit computation should subtract costs.
func (c Config) Enabled() bool { return c.Active }

// TotalCost sums the cost fields regardless of Active.
func (c Config) TotalCost() decimal.Decimal {
	return c.PaintCostPerUnit.Add(c.RentCost).Add(c.ConsumablesCost)
}

func nonNegative(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}
