package domain

import "github.com/shopspring/decimal"

// CostSummary is the monetary rollup for one project. All values are
// fixed-point decimals; float arithmetic never touches money here.
type CostSummary struct {
	TotalProductAmount decimal.Decimal `json:"totalProductAmount"`
	TotalOtherExpenses decimal.Decimal `json:"totalOtherExpenses"`
	ActualAllIn        decimal.Decimal `json:"actualAllIn"`
	Variance           decimal.Decimal `json:"variance"`
	ProfitApprox       decimal.Decimal `json:"profitApprox"`
}

// TotalProductAmount sums the stored line totals. The stored total is
// trusted as-is (it may carry a manual discount) and is not recomputed
// from quantity x unit price.
func TotalProductAmount(products []ProjectProduct) decimal.Decimal {
	sum := decimal.Zero
	for i := range products {
		sum = sum.Add(products[i].Total)
	}
	return sum
}

// TotalOtherExpenses sums booked expense amounts.
func TotalOtherExpenses(expenses []ProjectExpense) decimal.Decimal {
	sum := decimal.Zero
	for i := range expenses {
		sum = sum.Add(expenses[i].Amount)
	}
	return sum
}

// ComputeCostSummary rolls products and expenses up against the planned
// budget. A nil budget counts as zero, so variance then just mirrors
// the negated all-in spend. Negative variance means over budget.
// ProfitApprox deliberately ignores the budget: it is product revenue
// minus operating expenses, whether or not the client paid plan.
func ComputeCostSummary(budget *decimal.Decimal, products []ProjectProduct, expenses []ProjectExpense) CostSummary {
	productTotal := TotalProductAmount(products)
	expenseTotal := TotalOtherExpenses(expenses)
	allIn := productTotal.Add(expenseTotal)

	b := decimal.Zero
	if budget != nil {
		b = *budget
	}

	return CostSummary{
		TotalProductAmount: productTotal,
		TotalOtherExpenses: expenseTotal,
		ActualAllIn:        allIn,
		Variance:           b.Sub(allIn),
		ProfitApprox:       productTotal.Sub(expenseTotal),
	}
}
