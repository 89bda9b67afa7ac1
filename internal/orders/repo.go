package orders

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

var (
	ErrOrderNotFound   = errors.New("order not found")
	ErrInvoiceNotFound = errors.New("invoice not found")
)

// Order lifecycle states. Orders come in from the storefront; the admin
// dashboard only moves them forward, never creates them.
const (
	StatusPending   = "pending"
	StatusConfirmed = "confirmed"
	StatusShipping  = "shipping"
	StatusCompleted = "completed"
	StatusCancelled = "cancelled"
)

var validStatuses = map[string]bool{
	StatusPending:   true,
	StatusConfirmed: true,
	StatusShipping:  true,
	StatusCompleted: true,
	StatusCancelled: true,
}

func ValidStatus(s string) bool { return validStatuses[s] }

type Order struct {
	ID            int64           `json:"id"`
	Code          string          `json:"code"`
	CustomerName  string          `json:"customer_name"`
	CustomerPhone string          `json:"customer_phone,omitempty"`
	Address       string          `json:"address,omitempty"`
	Status        string          `json:"status"`
	Subtotal      decimal.Decimal `json:"subtotal"`
	Discount      decimal.Decimal `json:"discount"`
	Total         decimal.Decimal `json:"total"`
	CouponCode    *string         `json:"coupon_code,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
	Items         []OrderItem     `json:"items,omitempty"`
}

type OrderItem struct {
	ID        int64           `json:"id"`
	OrderID   int64           `json:"-"`
	ProductID *int64          `json:"product_id,omitempty"`
	Name      string          `json:"name"`
	Quantity  decimal.Decimal `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Total     decimal.Decimal `json:"total"`
}

type Invoice struct {
	ID        int64           `json:"id"`
	Number    string          `json:"number"`
	OrderID   int64           `json:"order_id"`
	OrderCode string          `json:"order_code"`
	Amount    decimal.Decimal `json:"amount"`
	IssuedAt  time.Time       `json:"issued_at"`
	Note      string          `json:"note,omitempty"`
}

type ListFilter struct {
	Status string
	Query  string // matches code or customer name
	Limit  int
	Offset int
}

const orderColumns = `
o.id, o.code, o.customer_name, coalesce(o.customer_phone,''), coalesce(o.address,''),
o.status, o.subtotal, o.discount, o.total, o.coupon_code, o.created_at
`

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{db: db}
}

func scanOrder(row pgx.Row) (*Order, error) {
	var o Order
	err := row.Scan(
		&o.ID, &o.Code, &o.CustomerName, &o.CustomerPhone, &o.Address,
		&o.Status, &o.Subtotal, &o.Discount, &o.Total, &o.CouponCode, &o.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *Repo) List(ctx context.Context, f ListFilter) ([]Order, error) {
	q := `select ` + orderColumns + ` from orders o where true`
	args := []any{}
	if f.Status != "" {
		args = append(args, f.Status)
		q += fmt.Sprintf(" and o.status = $%d", len(args))
	}
	if f.Query != "" {
		args = append(args, "%"+f.Query+"%")
		q += fmt.Sprintf(" and (o.code ilike $%d or o.customer_name ilike $%d)", len(args), len(args))
	}
	q += " order by o.created_at desc"
	if f.Limit <= 0 || f.Limit > 200 {
		f.Limit = 50
	}
	args = append(args, f.Limit)
	q += fmt.Sprintf(" limit $%d", len(args))
	if f.Offset > 0 {
		args = append(args, f.Offset)
		q += fmt.Sprintf(" offset $%d", len(args))
	}

	rows, err := r.db.Query(ctx, q+";", args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Order, 0, f.Limit)
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *o)
	}
	return out, rows.Err()
}

// Get loads an order with its line items.
func (r *Repo) Get(ctx context.Context, id int64) (*Order, error) {
	o, err := scanOrder(r.db.QueryRow(ctx,
		`select `+orderColumns+` from orders o where o.id = $1;`, id))
	if err != nil {
		return nil, err
	}

	const itemsQ = `
select id, order_id, product_id, name, quantity, unit_price, total
from order_items
where order_id = $1
order by id;
`
	rows, err := r.db.Query(ctx, itemsQ, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var it OrderItem
		if err := rows.Scan(&it.ID, &it.OrderID, &it.ProductID, &it.Name, &it.Quantity, &it.UnitPrice, &it.Total); err != nil {
			return nil, err
		}
		o.Items = append(o.Items, it)
	}
	return o, rows.Err()
}

func (r *Repo) SetStatus(ctx context.Context, id int64, status string) error {
	ct, err := r.db.Exec(ctx, `update orders set status = $2 where id = $1;`, id, status)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return ErrOrderNotFound
	}
	return nil
}

const invoiceColumns = `
i.id, i.number, i.order_id, o.code, i.amount, i.issued_at, coalesce(i.note,'')
`

func (r *Repo) ListInvoices(ctx context.Context, limit int) ([]Invoice, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	const q = `
select ` + invoiceColumns + `
from invoices i
join orders o on o.id = i.order_id
order by i.issued_at desc
limit $1;
`
	rows, err := r.db.Query(ctx, q, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Invoice, 0, limit)
	for rows.Next() {
		var inv Invoice
		if err := rows.Scan(&inv.ID, &inv.Number, &inv.OrderID, &inv.OrderCode, &inv.Amount, &inv.IssuedAt, &inv.Note); err != nil {
			return nil, err
		}
		out = append(out, inv)
	}
	return out, rows.Err()
}

func (r *Repo) GetInvoice(ctx context.Context, id int64) (*Invoice, error) {
	const q = `
select ` + invoiceColumns + `
from invoices i
join orders o on o.id = i.order_id
where i.id = $1;
`
	var inv Invoice
	err := r.db.QueryRow(ctx, q, id).
		Scan(&inv.ID, &inv.Number, &inv.OrderID, &inv.OrderCode, &inv.Amount, &inv.IssuedAt, &inv.Note)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrInvoiceNotFound
	}
	if err != nil {
		return nil, err
	}
	return &inv, nil
}

// CreateInvoice issues an invoice for a completed order. The number is a
// uuid so invoices stay unique across environments without a sequence.
func (r *Repo) CreateInvoice(ctx context.Context, orderID int64, number string, amount decimal.Decimal, note string) (*Invoice, error) {
	const q = `
insert into invoices (number, order_id, amount, note)
values ($1, $2, $3, nullif($4,''))
returning id, issued_at;
`
	inv := Invoice{Number: number, OrderID: orderID, Amount: amount, Note: note}
	err := r.db.QueryRow(ctx, q, number, orderID, amount, note).Scan(&inv.ID, &inv.IssuedAt)
	if err != nil {
		return nil, err
	}
	return &inv, nil
}
