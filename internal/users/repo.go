package users

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Dashboard roles. Staff is the default for a first-seen identity; an
// admin promotes from there.
const (
	RoleAdmin     = "admin"
	RoleManager   = "manager"
	RoleStaff     = "staff"
	RoleWarehouse = "warehouse"
	RolePM        = "pm"
)

var validRoles = map[string]bool{
	RoleAdmin:     true,
	RoleManager:   true,
	RoleStaff:     true,
	RoleWarehouse: true,
	RolePM:        true,
}

// ValidRole reports whether r is one of the five dashboard roles.
func ValidRole(r string) bool { return validRoles[r] }

var ErrUserNotFound = errors.New("user not found")

type User struct {
	ID          string    `json:"id"`
	FirebaseUID string    `json:"-"`
	Email       string    `json:"email,omitempty"`
	DisplayName string    `json:"display_name,omitempty"`
	Role        string    `json:"role"`
	Active      bool      `json:"active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{db: db}
}

type UpsertUser struct {
	FirebaseUID string
	Email       string
	DisplayName string
}

// EnsureUser upserts a user row keyed by Firebase UID and returns it.
// Role is never touched by the upsert; only an explicit SetRole call
// changes it.
func (r *Repo) EnsureUser(ctx context.Context, u UpsertUser) (*User, error) {
	if u.FirebaseUID == "" {
		return nil, fmt.Errorf("firebase_uid required")
	}

	const q = `
insert into users (firebase_uid, email, display_name, role, updated_at)
values ($1, nullif($2,''), nullif($3,''), 'staff', now())
on conflict (firebase_uid) do update
set
  email = coalesce(excluded.email, users.email),
  display_name = coalesce(excluded.display_name, users.display_name),
  updated_at = now()
returning id::text, firebase_uid, coalesce(email,''), coalesce(display_name,''), role, active, created_at, updated_at;
`
	return r.scanOne(r.db.QueryRow(ctx, q, u.FirebaseUID, u.Email, u.DisplayName))
}

// List returns all users, newest first.
func (r *Repo) List(ctx context.Context) ([]User, error) {
	const q = `
select id::text, firebase_uid, coalesce(email,''), coalesce(display_name,''), role, active, created_at, updated_at
from users
order by created_at desc;
`
	rows, err := r.db.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]User, 0, 16)
	for rows.Next() {
		var u User
		if err := rows.Scan(&u.ID, &u.FirebaseUID, &u.Email, &u.DisplayName, &u.Role, &u.Active, &u.CreatedAt, &u.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

// SetRole changes a user's dashboard role.
func (r *Repo) SetRole(ctx context.Context, userID, role string) (*User, error) {
	if !ValidRole(role) {
		return nil, fmt.Errorf("invalid role %q", role)
	}

	const q = `
update users
set role = $2, updated_at = now()
where id = $1::uuid
returning id::text, firebase_uid, coalesce(email,''), coalesce(display_name,''), role, active, created_at, updated_at;
`
	u, err := r.scanOne(r.db.QueryRow(ctx, q, userID, role))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	return u, err
}

// SetActive enables or disables a login.
func (r *Repo) SetActive(ctx context.Context, userID string, active bool) (*User, error) {
	const q = `
update users
set active = $2, updated_at = now()
where id = $1::uuid
returning id::text, firebase_uid, coalesce(email,''), coalesce(display_name,''), role, active, created_at, updated_at;
`
	u, err := r.scanOne(r.db.QueryRow(ctx, q, userID, active))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	return u, err
}

func (r *Repo) scanOne(row pgx.Row) (*User, error) {
	var u User
	err := row.Scan(&u.ID, &u.FirebaseUID, &u.Email, &u.DisplayName, &u.Role, &u.Active, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &u, nil
}
