package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Project status values. A project in Done (or Delivered) is frozen at
// the API boundary; reports still read it as-is.
const (
	ProjectDraft     = "Draft"
	ProjectActive    = "Active"
	ProjectDone      = "Done"
	ProjectDelivered = "Delivered"
	ProjectCancelled = "Cancelled"
)

var projectStatuses = map[string]bool{
	ProjectDraft:     true,
	ProjectActive:    true,
	ProjectDone:      true,
	ProjectDelivered: true,
	ProjectCancelled: true,
}

// ValidProjectStatus reports whether s is one of the project lifecycle
// states.
func ValidProjectStatus(s string) bool { return projectStatuses[s] }

// Project is an installation project for a customer. Budget is the
// planned monetary value and may be absent for draft projects.
type Project struct {
	ID              int64            `json:"id"`
	PublicID        string           `json:"public_id"`
	Code            string           `json:"code"`
	Name            string           `json:"name"`
	CustomerName    string           `json:"customer_name"`
	CustomerContact string           `json:"customer_contact,omitempty"`
	Status          string           `json:"status"`
	StartDate       time.Time        `json:"start_date"`
	EndDate         *time.Time       `json:"end_date,omitempty"`
	Budget          *decimal.Decimal `json:"budget,omitempty"`
	Description     string           `json:"description,omitempty"`
	CreatedBy       string           `json:"created_by"`
	ManagerID       *int64           `json:"manager_id,omitempty"`
	CreatedAt       time.Time        `json:"created_at"`
	UpdatedAt       time.Time        `json:"updated_at"`
}

// TaskItem is one unit of work inside a project, tracked day by day.
// DependsOnTaskID is informational only; no scheduling is derived from it.
type TaskItem struct {
	ID              int64     `json:"id"`
	ProjectID       int64     `json:"project_id"`
	Name            string    `json:"name"`
	Assignee        string    `json:"assignee,omitempty"`
	StartDate       time.Time `json:"start_date"`
	DurationDays    int       `json:"duration_days"`
	DependsOnTaskID *int64    `json:"depends_on_task_id,omitempty"`
	Days            []TaskDay `json:"days"`
}

// TaskDay is a (date, status) pair. At most one entry exists per
// (task, date); dates need not be contiguous or cover the duration.
type TaskDay struct {
	Day    time.Time `json:"day"`
	Status Status    `json:"status"`
}

// ProjectProduct is a product line on a project. ProductName is a
// snapshot taken at attach time so later catalog edits do not rewrite
// history. Total is stored independently of Quantity x UnitPrice so a
// manual discount can be entered per line.
type ProjectProduct struct {
	ID          int64           `json:"id"`
	ProjectID   int64           `json:"project_id"`
	ProductName string          `json:"product_name"`
	Unit        string          `json:"unit"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Total       decimal.Decimal `json:"total"`
	Note        string          `json:"note,omitempty"`
}

// ProjectExpense is an out-of-pocket cost booked against a project.
type ProjectExpense struct {
	ID          int64           `json:"id"`
	ProjectID   int64           `json:"project_id"`
	Day         time.Time       `json:"day"`
	Category    string          `json:"category,omitempty"`
	Vendor      string          `json:"vendor,omitempty"`
	Description string          `json:"description,omitempty"`
	Amount      decimal.Decimal `json:"amount"`
	ReceiptURL  string          `json:"receipt_url,omitempty"`
}
