package costing

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestZeroValueIsInactive(t *testing.T) {
	var c Config
	assert.False(t, c.Enabled())
	assert.True(t, c.TotalCost().IsZero())
}

func TestApplyPatch(t *testing.T) {
	on := true
	paint, rent, neg := decimal.NewFromInt(2), decimal.NewFromInt(10), decimal.NewFromInt(-4)

	c := Config{}.Apply(Patch{Active: &on, PaintCostPerUnit: &paint, RentCost: &rent, ConsumablesCost: &neg})

	assert.True(t, c.Enabled())
	assert.True(t, c.ConsumablesCost.IsZero(), "negative cost clamps to zero")
	assert.Equal(t, "12", c.TotalCost().String())

	paid := true
	c2 := c.Apply(Patch{RentPaid: &paid})
	assert.True(t, c2.RentPaid)
	assert.False(t, c.RentPaid, "Apply does not mutate the receiver")
}
