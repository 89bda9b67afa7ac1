package banners

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrBannerNotFound = errors.New("banner not found")

// Banner is a storefront hero image managed from the admin dashboard.
type Banner struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	ImageURL  string    `json:"image_url"`
	LinkURL   string    `json:"link_url,omitempty"`
	SortOrder int       `json:"sort_order"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
}

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{db: db}
}

func (r *Repo) Create(ctx context.Context, b Banner) (*Banner, error) {
	const q = `
insert into banners (title, image_url, link_url, sort_order, active)
values ($1, $2, nullif($3,''), $4, $5)
returning id, title, image_url, coalesce(link_url,''), sort_order, active, created_at;
`
	var out Banner
	err := r.db.QueryRow(ctx, q, b.Title, b.ImageURL, b.LinkURL, b.SortOrder, b.Active).
		Scan(&out.ID, &out.Title, &out.ImageURL, &out.LinkURL, &out.SortOrder, &out.Active, &out.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *Repo) List(ctx context.Context) ([]Banner, error) {
	const q = `
select id, title, image_url, coalesce(link_url,''), sort_order, active, created_at
from banners
order by sort_order, id;
`
	rows, err := r.db.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Banner, 0, 8)
	for rows.Next() {
		var b Banner
		if err := rows.Scan(&b.ID, &b.Title, &b.ImageURL, &b.LinkURL, &b.SortOrder, &b.Active, &b.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

func (r *Repo) Update(ctx context.Context, b Banner) (*Banner, error) {
	const q = `
update banners
set title = $2, image_url = $3, link_url = nullif($4,''), sort_order = $5, active = $6
where id = $1
returning id, title, image_url, coalesce(link_url,''), sort_order, active, created_at;
`
	var out Banner
	err := r.db.QueryRow(ctx, q, b.ID, b.Title, b.ImageURL, b.LinkURL, b.SortOrder, b.Active).
		Scan(&out.ID, &out.Title, &out.ImageURL, &out.LinkURL, &out.SortOrder, &out.Active, &out.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrBannerNotFound
	}
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *Repo) Delete(ctx context.Context, id int64) (bool, error) {
	ct, err := r.db.Exec(ctx, `delete from banners where id = $1;`, id)
	if err != nil {
		return false, err
	}
	return ct.RowsAffected() > 0, nil
}
