package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// ProjectReport is the derived reporting view consumed by the SPA and
// the external PDF exporter. It is never persisted; every field is
// recomputed from the project and its three collections at read time.
type ProjectReport struct {
	Code               string           `json:"code"`
	Name               string           `json:"name"`
	CustomerName       string           `json:"customerName"`
	Status             string           `json:"status"`
	StartDate          string           `json:"startDate"`
	EndDate            string           `json:"endDate,omitempty"`
	Budget             *decimal.Decimal `json:"budget"`
	TotalProductAmount decimal.Decimal  `json:"totalProductAmount"`
	TotalOtherExpenses decimal.Decimal  `json:"totalOtherExpenses"`
	ActualAllIn        decimal.Decimal  `json:"actualAllIn"`
	Variance           decimal.Decimal  `json:"variance"`
	ProfitApprox       decimal.Decimal  `json:"profitApprox"`
	TaskCompleted      int              `json:"taskCompleted"`
	TaskDelayed        int              `json:"taskDelayed"`
	TaskActive         int              `json:"taskActive"`
	ProgressPercent    int              `json:"progressPercent"`
	Issues             []string         `json:"issues"`
}

const reportDateLayout = "2006-01-02"

// CompileReport assembles the full report from an in-memory snapshot of
// a project and its collections. now fixes "today" for the overdue
// check; callers pass time.Now() outside tests. Dates compare in UTC.
func CompileReport(p Project, tasks []TaskItem, products []ProjectProduct, expenses []ProjectExpense, now time.Time) ProjectReport {
	completed, delayed := 0, 0
	issues := make([]string, 0, 4)

	for i := range tasks {
		switch OverallStatus(tasks[i]) {
		case StatusDone:
			completed++
		case StatusDelayed:
			delayed++
			name := tasks[i].Name
			if name == "" {
				name = "untitled"
			}
			issues = append(issues, fmt.Sprintf("task delayed: %s", name))
		}
	}

	active := len(tasks) - completed - delayed
	if active < 0 {
		active = 0
	}

	if p.EndDate != nil && DateOnly(*p.EndDate).Before(DateOnly(now)) &&
		p.Status != ProjectDone && p.Status != ProjectDelivered {
		issues = append(issues, "project overdue")
	}

	costs := ComputeCostSummary(p.Budget, products, expenses)

	r := ProjectReport{
		Code:               p.Code,
		Name:               p.Name,
		CustomerName:       p.CustomerName,
		Status:             p.Status,
		StartDate:          p.StartDate.UTC().Format(reportDateLayout),
		Budget:             p.Budget,
		TotalProductAmount: costs.TotalProductAmount,
		TotalOtherExpenses: costs.TotalOtherExpenses,
		ActualAllIn:        costs.ActualAllIn,
		Variance:           costs.Variance,
		ProfitApprox:       costs.ProfitApprox,
		TaskCompleted:      completed,
		TaskDelayed:        delayed,
		TaskActive:         active,
		ProgressPercent:    progressPercent(completed, len(tasks)),
		Issues:             issues,
	}
	if p.EndDate != nil {
		r.EndDate = p.EndDate.UTC().Format(reportDateLayout)
	}
	return r
}

// progressPercent rounds half-up: 1 of 3 done is 33, not 34.
func progressPercent(completed, total int) int {
	if total <= 0 {
		return 0
	}
	pct := decimal.NewFromInt(int64(completed) * 100).
		DivRound(decimal.NewFromInt(int64(total)), 0)
	return int(pct.IntPart())
}
