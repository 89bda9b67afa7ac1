package inventory

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

var ErrMovementNotFound = errors.New("movement not found")

// Movement directions.
const (
	DirIn  = "in"  // goods received into the warehouse
	DirOut = "out" // goods dispatched to a project or order
)

// Movement is one stock dispatch or receipt line.
type Movement struct {
	ID        int64           `json:"id"`
	ProductID int64           `json:"product_id"`
	Direction string          `json:"direction"`
	Quantity  decimal.Decimal `json:"quantity"`
	ProjectID *int64          `json:"project_id,omitempty"`
	OrderID   *int64          `json:"order_id,omitempty"`
	Note      string          `json:"note,omitempty"`
	CreatedBy *string         `json:"created_by,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
}

type ListFilter struct {
	ProductID int64
	ProjectID int64
	Direction string
	Limit     int
}

const movementColumns = `
id, product_id, direction, quantity, project_id, order_id, coalesce(note,''), created_by, created_at
`

// Repo runs on database/sql with the lib/pq driver.
type Repo struct {
	db *sql.DB
}

func NewRepo(db *sql.DB) *Repo {
	return &Repo{db: db}
}

func scanMovement(row interface{ Scan(dest ...any) error }) (*Movement, error) {
	var m Movement
	err := row.Scan(
		&m.ID, &m.ProductID, &m.Direction, &m.Quantity,
		&m.ProjectID, &m.OrderID, &m.Note, &m.CreatedBy, &m.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrMovementNotFound
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *Repo) Create(ctx context.Context, m Movement) (*Movement, error) {
	const q = `
insert into inventory_movements (product_id, direction, quantity, project_id, order_id, note, created_by)
values ($1, $2, $3, $4, $5, nullif($6,''), $7)
returning ` + movementColumns + `;`
	return scanMovement(r.db.QueryRowContext(ctx, q,
		m.ProductID, m.Direction, m.Quantity, m.ProjectID, m.OrderID, m.Note, m.CreatedBy))
}

func (r *Repo) Get(ctx context.Context, id int64) (*Movement, error) {
	const q = `select ` + movementColumns + ` from inventory_movements where id = $1;`
	return scanMovement(r.db.QueryRowContext(ctx, q, id))
}

func (r *Repo) List(ctx context.Context, f ListFilter) ([]Movement, error) {
	q := `select ` + movementColumns + ` from inventory_movements where true`
	args := []any{}
	if f.ProductID > 0 {
		args = append(args, f.ProductID)
		q += fmt.Sprintf(" and product_id = $%d", len(args))
	}
	if f.ProjectID > 0 {
		args = append(args, f.ProjectID)
		q += fmt.Sprintf(" and project_id = $%d", len(args))
	}
	if f.Direction != "" {
		args = append(args, f.Direction)
		q += fmt.Sprintf(" and direction = $%d", len(args))
	}
	if f.Limit <= 0 || f.Limit > 500 {
		f.Limit = 100
	}
	args = append(args, f.Limit)
	q += fmt.Sprintf(" order by created_at desc limit $%d;", len(args))

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Movement, 0, f.Limit)
	for rows.Next() {
		m, err := scanMovement(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *m)
	}
	return out, rows.Err()
}

// StockLevel sums signed movements for a product. Receipts count positive,
// dispatches negative.
func (r *Repo) StockLevel(ctx context.Context, productID int64) (decimal.Decimal, error) {
	const q = `
select coalesce(sum(case when direction = 'in' then quantity else -quantity end), 0)
from inventory_movements
where product_id = $1;
`
	var level decimal.Decimal
	if err := r.db.QueryRowContext(ctx, q, productID).Scan(&level); err != nil {
		return decimal.Zero, err
	}
	return level, nil
}
