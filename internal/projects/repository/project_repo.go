package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/saokim-lighting/skl-backend/internal/projects/domain"
)

// ProjectRepository persists projects in Postgres.
type ProjectRepository struct {
	db *pgxpool.Pool
}

func NewProjectRepository(db *pgxpool.Pool) *ProjectRepository {
	return &ProjectRepository{db: db}
}

const projectColumns = `
id, public_id, code, name, customer_name, coalesce(customer_contact, ''),
status, start_date, end_date, budget, coalesce(description, ''),
created_by, manager_id, created_at, updated_at`

func scanProject(row pgx.Row) (*domain.Project, error) {
	var p domain.Project
	var budget decimal.NullDecimal
	err := row.Scan(
		&p.ID, &p.PublicID, &p.Code, &p.Name, &p.CustomerName, &p.CustomerContact,
		&p.Status, &p.StartDate, &p.EndDate, &budget, &p.Description,
		&p.CreatedBy, &p.ManagerID, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if budget.Valid {
		p.Budget = &budget.Decimal
	}
	return &p, nil
}

// Create inserts a project, retrying on public_id collisions.
func (r *ProjectRepository) Create(ctx context.Context, p domain.Project) (*domain.Project, error) {
	if p.Code == "" || p.Name == "" {
		return nil, fmt.Errorf("code and name required")
	}
	if p.Status == "" {
		p.Status = domain.ProjectDraft
	}

	var budget decimal.NullDecimal
	if p.Budget != nil {
		budget = decimal.NullDecimal{Decimal: *p.Budget, Valid: true}
	}

	for i := 0; i < 5; i++ {
		publicID, err := domain.NewPublicID("skl")
		if err != nil {
			return nil, err
		}

		const q = `
insert into projects
  (public_id, code, name, customer_name, customer_contact, status,
   start_date, end_date, budget, description, created_by, manager_id)
values ($1, $2, $3, $4, nullif($5,''), $6, $7, $8, $9, nullif($10,''), $11, $12)
returning ` + projectColumns + `;
`
		created, err := scanProject(r.db.QueryRow(ctx, q,
			publicID, p.Code, p.Name, p.CustomerName, p.CustomerContact, p.Status,
			p.StartDate, p.EndDate, budget, p.Description, p.CreatedBy, p.ManagerID,
		))
		if err == nil {
			return created, nil
		}

		// unique violation on public_id: try another one; any other
		// unique violation (duplicate code) is the caller's problem
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" && pgErr.ConstraintName == "projects_public_id_key" {
			continue
		}
		return nil, err
	}

	return nil, fmt.Errorf("failed to generate unique project id")
}

// GetByPublicID returns one live project.
func (r *ProjectRepository) GetByPublicID(ctx context.Context, publicID string) (*domain.Project, error) {
	const q = `
select ` + projectColumns + `
from projects
where public_id = $1 and deleted_at is null;
`
	p, err := scanProject(r.db.QueryRow(ctx, q, publicID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrProjectNotFound
	}
	return p, err
}

// List returns live projects, newest first, optionally filtered by status.
func (r *ProjectRepository) List(ctx context.Context, status string) ([]domain.Project, error) {
	const q = `
select ` + projectColumns + `
from projects
where deleted_at is null and ($1 = '' or status = $1)
order by created_at desc;
`
	rows, err := r.db.Query(ctx, q, status)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]domain.Project, 0, 16)
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *p)
	}
	return out, rows.Err()
}

// Update rewrites the mutable fields of a project.
func (r *ProjectRepository) Update(ctx context.Context, p domain.Project) (*domain.Project, error) {
	var budget decimal.NullDecimal
	if p.Budget != nil {
		budget = decimal.NullDecimal{Decimal: *p.Budget, Valid: true}
	}

	const q = `
update projects
set name = $2, customer_name = $3, customer_contact = nullif($4,''),
    status = $5, start_date = $6, end_date = $7, budget = $8,
    description = nullif($9,''), manager_id = $10, updated_at = now()
where public_id = $1 and deleted_at is null
returning ` + projectColumns + `;
`
	updated, err := scanProject(r.db.QueryRow(ctx, q,
		p.PublicID, p.Name, p.CustomerName, p.CustomerContact,
		p.Status, p.StartDate, p.EndDate, budget, p.Description, p.ManagerID,
	))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrProjectNotFound
	}
	return updated, err
}

// SoftDelete hides a project from listings.
func (r *ProjectRepository) SoftDelete(ctx context.Context, publicID string) (bool, error) {
	const q = `
update projects
set deleted_at = now(), updated_at = now()
where public_id = $1 and deleted_at is null;
`
	ct, err := r.db.Exec(ctx, q, publicID)
	if err != nil {
		return false, err
	}
	return ct.RowsAffected() > 0, nil
}
