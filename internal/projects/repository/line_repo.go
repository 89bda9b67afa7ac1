package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/saokim-lighting/skl-backend/internal/projects/domain"
)

// ProductLineRepository persists the product lines attached to projects.
type ProductLineRepository struct {
	db *pgxpool.Pool
}

func NewProductLineRepository(db *pgxpool.Pool) *ProductLineRepository {
	return &ProductLineRepository{db: db}
}

// ListByProject returns a project's product lines in insertion order.
func (r *ProductLineRepository) ListByProject(ctx context.Context, projectID int64) ([]domain.ProjectProduct, error) {
	const q = `
select id, project_id, product_name, coalesce(unit, ''), quantity, unit_price, total, coalesce(note, '')
from project_products
where project_id = $1
order by id;
`
	rows, err := r.db.Query(ctx, q, projectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]domain.ProjectProduct, 0, 16)
	for rows.Next() {
		var p domain.ProjectProduct
		if err := rows.Scan(&p.ID, &p.ProjectID, &p.ProductName, &p.Unit, &p.Quantity, &p.UnitPrice, &p.Total, &p.Note); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// Create inserts one product line. Total defaults to quantity x unit
// price when the caller leaves it zero; a non-zero total is stored
// verbatim (manual discount).
func (r *ProductLineRepository) Create(ctx context.Context, p domain.ProjectProduct) (*domain.ProjectProduct, error) {
	if p.Total.IsZero() && !p.Quantity.IsZero() {
		p.Total = p.Quantity.Mul(p.UnitPrice)
	}

	const q = `
insert into project_products (project_id, product_name, unit, quantity, unit_price, total, note)
values ($1, $2, nullif($3,''), $4, $5, $6, nullif($7,''))
returning id;
`
	err := r.db.QueryRow(ctx, q, p.ProjectID, p.ProductName, p.Unit, p.Quantity, p.UnitPrice, p.Total, p.Note).
		Scan(&p.ID)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Delete removes one product line.
func (r *ProductLineRepository) Delete(ctx context.Context, projectID, lineID int64) (bool, error) {
	ct, err := r.db.Exec(ctx, `delete from project_products where id = $1 and project_id = $2;`, lineID, projectID)
	if err != nil {
		return false, err
	}
	return ct.RowsAffected() > 0, nil
}
