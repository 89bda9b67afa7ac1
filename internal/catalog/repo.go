package catalog

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

var ErrProductNotFound = errors.New("product not found")

// Product is a catalog item. Price is the current list price; project
// product lines snapshot name and price at attach time instead of
// referencing this row.
type Product struct {
	ID        int64           `json:"id"`
	SKU       string          `json:"sku"`
	Name      string          `json:"name"`
	Category  string          `json:"category,omitempty"`
	Unit      string          `json:"unit,omitempty"`
	Price     decimal.Decimal `json:"price"`
	ImageURL  string          `json:"image_url,omitempty"`
	Active    bool            `json:"active"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{db: db}
}

const productColumns = `
id, sku, name, coalesce(category,''), coalesce(unit,''), price, coalesce(image_url,''), active, created_at, updated_at`

func scanProduct(row pgx.Row) (*Product, error) {
	var p Product
	err := row.Scan(&p.ID, &p.SKU, &p.Name, &p.Category, &p.Unit, &p.Price, &p.ImageURL, &p.Active, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *Repo) Create(ctx context.Context, p Product) (*Product, error) {
	const q = `
insert into products (sku, name, category, unit, price, image_url, active)
values ($1, $2, nullif($3,''), nullif($4,''), $5, nullif($6,''), $7)
returning ` + productColumns + `;
`
	return scanProduct(r.db.QueryRow(ctx, q, p.SKU, p.Name, p.Category, p.Unit, p.Price, p.ImageURL, p.Active))
}

// List returns products, optionally filtered by category or active
// flag ("true"/"false"; empty means both).
func (r *Repo) List(ctx context.Context, category, active string) ([]Product, error) {
	const q = `
select ` + productColumns + `
from products
where ($1 = '' or category = $1)
  and ($2 = '' or active = ($2 = 'true'))
order by name;
`
	rows, err := r.db.Query(ctx, q, category, active)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Product, 0, 32)
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *p)
	}
	return out, rows.Err()
}

func (r *Repo) Get(ctx context.Context, id int64) (*Product, error) {
	const q = `select ` + productColumns + ` from products where id = $1;`
	p, err := scanProduct(r.db.QueryRow(ctx, q, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrProductNotFound
	}
	return p, err
}

func (r *Repo) Update(ctx context.Context, p Product) (*Product, error) {
	const q = `
update products
set name = $2, category = nullif($3,''), unit = nullif($4,''),
    price = $5, image_url = nullif($6,''), active = $7, updated_at = now()
where id = $1
returning ` + productColumns + `;
`
	updated, err := scanProduct(r.db.QueryRow(ctx, q, p.ID, p.Name, p.Category, p.Unit, p.Price, p.ImageURL, p.Active))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrProductNotFound
	}
	return updated, err
}

func (r *Repo) Delete(ctx context.Context, id int64) (bool, error) {
	ct, err := r.db.Exec(ctx, `delete from products where id = $1;`, id)
	if err != nil {
		return false, err
	}
	return ct.RowsAffected() > 0, nil
}
