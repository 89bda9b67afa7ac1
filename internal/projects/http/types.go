package http

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/saokim-lighting/skl-backend/internal/projects/domain"
)

// LineWriter and ExpenseWriter are the repository surfaces the HTTP
// layer drives directly (reports go through the service instead).
type LineWriter interface {
	ListByProject(ctx context.Context, projectID int64) ([]domain.ProjectProduct, error)
	Create(ctx context.Context, p domain.ProjectProduct) (*domain.ProjectProduct, error)
	Delete(ctx context.Context, projectID, lineID int64) (bool, error)
}

type ExpenseWriter interface {
	ListByProject(ctx context.Context, projectID int64) ([]domain.ProjectExpense, error)
	Create(ctx context.Context, e domain.ProjectExpense) (*domain.ProjectExpense, error)
	Delete(ctx context.Context, projectID, expenseID int64) (bool, error)
}

const dateLayout = "2006-01-02"

func parseDate(s string) (time.Time, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, want YYYY-MM-DD", s)
	}
	return t, nil
}

type createProjectReq struct {
	Code            string           `json:"code" binding:"required"`
	Name            string           `json:"name" binding:"required"`
	CustomerName    string           `json:"customer_name" binding:"required"`
	CustomerContact string           `json:"customer_contact"`
	Status          string           `json:"status"`
	StartDate       string           `json:"start_date" binding:"required"`
	EndDate         string           `json:"end_date"`
	Budget          *decimal.Decimal `json:"budget"`
	Description     string           `json:"description"`
	ManagerID       *int64           `json:"manager_id"`
}

type updateProjectReq struct {
	Name            string           `json:"name" binding:"required"`
	CustomerName    string           `json:"customer_name" binding:"required"`
	CustomerContact string           `json:"customer_contact"`
	Status          string           `json:"status" binding:"required"`
	StartDate       string           `json:"start_date" binding:"required"`
	EndDate         string           `json:"end_date"`
	Budget          *decimal.Decimal `json:"budget"`
	Description     string           `json:"description"`
	ManagerID       *int64           `json:"manager_id"`
}

type taskReq struct {
	Name            string `json:"name" binding:"required"`
	Assignee        string `json:"assignee"`
	StartDate       string `json:"start_date" binding:"required"`
	DurationDays    int    `json:"duration_days" binding:"required"`
	DependsOnTaskID *int64 `json:"depends_on_task_id"`
}

// setDayReq carries a wire status or null to clear the cell.
type setDayReq struct {
	Status *string `json:"status"`
}

type lineReq struct {
	ProductName string          `json:"product_name" binding:"required"`
	Unit        string          `json:"unit"`
	Quantity    decimal.Decimal `json:"quantity" binding:"required"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Total       decimal.Decimal `json:"total"`
	Note        string          `json:"note"`
}

type expenseReq struct {
	Day         string          `json:"day" binding:"required"`
	Category    string          `json:"category"`
	Vendor      string          `json:"vendor"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	ReceiptURL  string          `json:"receipt_url"`
}

// taskView decorates a task with its derived overall status in both
// dialects so the SPA never re-maps wire values itself.
type taskView struct {
	domain.TaskItem
	OverallStatus        domain.Status `json:"overall_status"`
	OverallStatusDisplay string        `json:"overall_status_display"`
}

func toTaskView(t domain.TaskItem) taskView {
	s := domain.OverallStatus(t)
	return taskView{TaskItem: t, OverallStatus: s, OverallStatusDisplay: s.Display()}
}
