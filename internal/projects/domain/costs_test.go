package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestComputeCostSummary(t *testing.T) {
	t.Run("empty collections yield zero sums", func(t *testing.T) {
		got := ComputeCostSummary(nil, nil, nil)

		assert.True(t, got.TotalProductAmount.IsZero())
		assert.True(t, got.TotalOtherExpenses.IsZero())
		assert.True(t, got.ActualAllIn.IsZero())
		assert.True(t, got.Variance.IsZero())
		assert.True(t, got.ProfitApprox.IsZero())
	})

	t.Run("within budget scenario", func(t *testing.T) {
		budget := dec("10000000")
		products := []ProjectProduct{
			{ProductName: "LED panel 60x60", Total: dec("4500000")},
			{ProductName: "Track light", Total: dec("1500000")},
		}
		expenses := []ProjectExpense{
			{Description: "crane rental", Amount: dec("2000000")},
			{Description: "crew travel", Amount: dec("1500000")},
		}

		got := ComputeCostSummary(&budget, products, expenses)

		assert.True(t, got.TotalProductAmount.Equal(dec("6000000")))
		assert.True(t, got.TotalOtherExpenses.Equal(dec("3500000")))
		assert.True(t, got.ActualAllIn.Equal(dec("9500000")))
		assert.True(t, got.Variance.Equal(dec("500000")), "variance %s", got.Variance)
		assert.True(t, got.ProfitApprox.Equal(dec("2500000")))
	})

	t.Run("fractional currency stays exact", func(t *testing.T) {
		budget := dec("1000.00")
		products := []ProjectProduct{
			{Total: dec("333.33")},
			{Total: dec("333.33")},
		}
		expenses := []ProjectExpense{
			{Amount: dec("0.01")},
			{Amount: dec("0.02")},
		}

		got := ComputeCostSummary(&budget, products, expenses)

		assert.Equal(t, "666.66", got.TotalProductAmount.StringFixed(2))
		assert.Equal(t, "0.03", got.TotalOtherExpenses.StringFixed(2))
		assert.Equal(t, "666.69", got.ActualAllIn.StringFixed(2))
		// exact: 1000.00 - 666.69, no float drift
		assert.True(t, got.Variance.Equal(dec("333.31")))
		assert.True(t, got.ProfitApprox.Equal(dec("666.63")))
	})

	t.Run("nil budget counts as zero", func(t *testing.T) {
		products := []ProjectProduct{{Total: dec("120.50")}}
		got := ComputeCostSummary(nil, products, nil)

		assert.True(t, got.Variance.Equal(dec("-120.50")), "over budget by the full spend")
	})

	t.Run("stored line total is trusted over quantity x price", func(t *testing.T) {
		// manual discount: 10 x 100 sold for 950
		products := []ProjectProduct{{
			Quantity:  dec("10"),
			UnitPrice: dec("100"),
			Total:     dec("950"),
		}}
		got := ComputeCostSummary(nil, products, nil)
		assert.True(t, got.TotalProductAmount.Equal(dec("950")))
	})
}
