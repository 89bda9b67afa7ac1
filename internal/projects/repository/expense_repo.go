package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/saokim-lighting/skl-backend/internal/projects/domain"
)

// ExpenseRepository persists the out-of-pocket expenses of projects.
type ExpenseRepository struct {
	db *pgxpool.Pool
}

func NewExpenseRepository(db *pgxpool.Pool) *ExpenseRepository {
	return &ExpenseRepository{db: db}
}

// ListByProject returns a project's expenses, oldest first.
func (r *ExpenseRepository) ListByProject(ctx context.Context, projectID int64) ([]domain.ProjectExpense, error) {
	const q = `
select id, project_id, day, coalesce(category, ''), coalesce(vendor, ''),
       coalesce(description, ''), amount, coalesce(receipt_url, '')
from project_expenses
where project_id = $1
order by day, id;
`
	rows, err := r.db.Query(ctx, q, projectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]domain.ProjectExpense, 0, 16)
	for rows.Next() {
		var e domain.ProjectExpense
		if err := rows.Scan(&e.ID, &e.ProjectID, &e.Day, &e.Category, &e.Vendor, &e.Description, &e.Amount, &e.ReceiptURL); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// Create books one expense against a project.
func (r *ExpenseRepository) Create(ctx context.Context, e domain.ProjectExpense) (*domain.ProjectExpense, error) {
	const q = `
insert into project_expenses (project_id, day, category, vendor, description, amount, receipt_url)
values ($1, $2, nullif($3,''), nullif($4,''), nullif($5,''), $6, nullif($7,''))
returning id;
`
	err := r.db.QueryRow(ctx, q, e.ProjectID, domain.DateOnly(e.Day), e.Category, e.Vendor, e.Description, e.Amount, e.ReceiptURL).
		Scan(&e.ID)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// Delete removes one expense.
func (r *ExpenseRepository) Delete(ctx context.Context, projectID, expenseID int64) (bool, error) {
	ct, err := r.db.Exec(ctx, `delete from project_expenses where id = $1 and project_id = $2;`, expenseID, projectID)
	if err != nil {
		return false, err
	}
	return ct.RowsAffected() > 0, nil
}
