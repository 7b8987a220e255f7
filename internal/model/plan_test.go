package model

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func testPlan() *Plan {
	return &Plan{
		MonthlyPrice:   decimal.NewFromInt(499),
		QuarterlyPrice: decimal.NewFromInt(1350),
		AnnualPrice:    decimal.NewFromInt(4990),
		BiennialPrice:  decimal.NewFromInt(8980),
		TriennialPrice: decimal.NewFromInt(11970),
	}
}

func TestPriceFor(t *testing.T) {
	plan := testPlan()

	tests := []struct {
		cycle string
		want  int64
	}{
		{CycleMonthly, 499},
		{CycleQuarterly, 1350},
		{CycleAnnual, 4990},
		{CycleBiennial, 8980},
		{CycleTriennial, 11970},
	}

	for _, tt := range tests {
		price, ok := plan.PriceFor(tt.cycle)
		assert.True(t, ok, tt.cycle)
		assert.True(t, price.Equal(decimal.NewFromInt(tt.want)), tt.cycle)
	}
}

func TestPriceForUnknownCycle(t *testing.T) {
	plan := testPlan()

	for _, cycle := range []string{"", "weekly", "Monthly", "decennial"} {
		price, ok := plan.PriceFor(cycle)
		assert.False(t, ok, cycle)
		assert.True(t, price.IsZero(), cycle)
	}
}

func TestIsLongTermCycle(t *testing.T) {
	assert.False(t, IsLongTermCycle(CycleMonthly))
	assert.False(t, IsLongTermCycle(CycleQuarterly))
	assert.True(t, IsLongTermCycle(CycleAnnual))
	assert.True(t, IsLongTermCycle(CycleBiennial))
	assert.True(t, IsLongTermCycle(CycleTriennial))
	assert.False(t, IsLongTermCycle("weekly"))
}
