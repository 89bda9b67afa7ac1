package promotions

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

var (
	ErrCouponNotFound = errors.New("coupon not found")
	ErrCouponExists   = errors.New("coupon code already exists")
)

// Discount kinds stored in coupons.kind.
const (
	KindPercentOff = "percent_off"
	KindAmountOff  = "amount_off"
)

type Coupon struct {
	ID         int64           `json:"id"`
	Code       string          `json:"code"`
	Kind       string          `json:"kind"`
	Value      decimal.Decimal `json:"value"`
	MinOrder   decimal.Decimal `json:"min_order"`
	StartsAt   *time.Time      `json:"starts_at,omitempty"`
	EndsAt     *time.Time      `json:"ends_at,omitempty"`
	UsageLimit *int            `json:"usage_limit,omitempty"`
	UsedCount  int             `json:"used_count"`
	Active     bool            `json:"active"`
	CreatedAt  time.Time       `json:"created_at"`
}

const couponColumns = `
id, code, kind, value, min_order, starts_at, ends_at, usage_limit, used_count, active, created_at
`

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{db: db}
}

func scanCoupon(row pgx.Row) (*Coupon, error) {
	var cp Coupon
	err := row.Scan(
		&cp.ID, &cp.Code, &cp.Kind, &cp.Value, &cp.MinOrder,
		&cp.StartsAt, &cp.EndsAt, &cp.UsageLimit, &cp.UsedCount, &cp.Active, &cp.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrCouponNotFound
	}
	if err != nil {
		return nil, err
	}
	return &cp, nil
}

func (r *Repo) Create(ctx context.Context, cp Coupon) (*Coupon, error) {
	const q = `
insert into coupons (code, kind, value, min_order, starts_at, ends_at, usage_limit, active)
values (upper($1), $2, $3, $4, $5, $6, $7, $8)
returning ` + couponColumns + `;`
	out, err := scanCoupon(r.db.QueryRow(ctx, q,
		cp.Code, cp.Kind, cp.Value, cp.MinOrder, cp.StartsAt, cp.EndsAt, cp.UsageLimit, cp.Active))
	if err != nil && isUniqueViolation(err) {
		return nil, ErrCouponExists
	}
	return out, err
}

func (r *Repo) List(ctx context.Context, activeOnly bool) ([]Coupon, error) {
	q := `select ` + couponColumns + ` from coupons`
	if activeOnly {
		q += ` where active`
	}
	q += ` order by created_at desc;`

	rows, err := r.db.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Coupon, 0, 16)
	for rows.Next() {
		cp, err := scanCoupon(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *cp)
	}
	return out, rows.Err()
}

func (r *Repo) GetByCode(ctx context.Context, code string) (*Coupon, error) {
	const q = `select ` + couponColumns + ` from coupons where code = upper($1);`
	return scanCoupon(r.db.QueryRow(ctx, q, code))
}

func (r *Repo) SetActive(ctx context.Context, id int64, active bool) error {
	ct, err := r.db.Exec(ctx, `update coupons set active = $2 where id = $1;`, id, active)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return ErrCouponNotFound
	}
	return nil
}

// MarkUsed bumps the usage counter after an order applies the coupon.
func (r *Repo) MarkUsed(ctx context.Context, id int64) error {
	ct, err := r.db.Exec(ctx, `update coupons set used_count = used_count + 1 where id = $1;`, id)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return ErrCouponNotFound
	}
	return nil
}
