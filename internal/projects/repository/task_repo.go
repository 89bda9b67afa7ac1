package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/saokim-lighting/skl-backend/internal/projects/domain"
)

// TaskRepository persists task items and their per-day status entries.
type TaskRepository struct {
	db *pgxpool.Pool
}

func NewTaskRepository(db *pgxpool.Pool) *TaskRepository {
	return &TaskRepository{db: db}
}

// ListByProject returns all tasks of a project with day entries attached.
func (r *TaskRepository) ListByProject(ctx context.Context, projectID int64) ([]domain.TaskItem, error) {
	const q = `
select id, project_id, name, coalesce(assignee, ''), start_date, duration_days, depends_on_task_id
from project_tasks
where project_id = $1
order by start_date, id;
`
	rows, err := r.db.Query(ctx, q, projectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tasks := make([]domain.TaskItem, 0, 16)
	index := make(map[int64]int)
	for rows.Next() {
		var t domain.TaskItem
		if err := rows.Scan(&t.ID, &t.ProjectID, &t.Name, &t.Assignee, &t.StartDate, &t.DurationDays, &t.DependsOnTaskID); err != nil {
			return nil, err
		}
		t.Days = []domain.TaskDay{}
		index[t.ID] = len(tasks)
		tasks = append(tasks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(tasks) == 0 {
		return tasks, nil
	}

	const dq = `
select td.task_id, td.day, td.status
from task_days td
join project_tasks t on t.id = td.task_id
where t.project_id = $1
order by td.day;
`
	drows, err := r.db.Query(ctx, dq, projectID)
	if err != nil {
		return nil, err
	}
	defer drows.Close()

	for drows.Next() {
		var taskID int64
		var day time.Time
		var status string
		if err := drows.Scan(&taskID, &day, &status); err != nil {
			return nil, err
		}
		if i, ok := index[taskID]; ok {
			tasks[i].Days = append(tasks[i].Days, domain.TaskDay{Day: day, Status: domain.Status(status)})
		}
	}
	return tasks, drows.Err()
}

// Get returns one task with its day entries.
func (r *TaskRepository) Get(ctx context.Context, taskID int64) (*domain.TaskItem, error) {
	const q = `
select id, project_id, name, coalesce(assignee, ''), start_date, duration_days, depends_on_task_id
from project_tasks
where id = $1;
`
	var t domain.TaskItem
	err := r.db.QueryRow(ctx, q, taskID).
		Scan(&t.ID, &t.ProjectID, &t.Name, &t.Assignee, &t.StartDate, &t.DurationDays, &t.DependsOnTaskID)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrTaskNotFound
	}
	if err != nil {
		return nil, err
	}

	const dq = `select day, status from task_days where task_id = $1 order by day;`
	rows, err := r.db.Query(ctx, dq, taskID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	t.Days = []domain.TaskDay{}
	for rows.Next() {
		var d domain.TaskDay
		var status string
		if err := rows.Scan(&d.Day, &status); err != nil {
			return nil, err
		}
		d.Status = domain.Status(status)
		t.Days = append(t.Days, d)
	}
	return &t, rows.Err()
}

// Create inserts a task item.
func (r *TaskRepository) Create(ctx context.Context, t domain.TaskItem) (*domain.TaskItem, error) {
	const q = `
insert into project_tasks (project_id, name, assignee, start_date, duration_days, depends_on_task_id)
values ($1, $2, nullif($3,''), $4, $5, $6)
returning id;
`
	err := r.db.QueryRow(ctx, q, t.ProjectID, t.Name, t.Assignee, t.StartDate, t.DurationDays, t.DependsOnTaskID).
		Scan(&t.ID)
	if err != nil {
		return nil, err
	}
	t.Days = []domain.TaskDay{}
	return &t, nil
}

// Update rewrites a task's fields; day entries are untouched.
func (r *TaskRepository) Update(ctx context.Context, t domain.TaskItem) error {
	const q = `
update project_tasks
set name = $2, assignee = nullif($3,''), start_date = $4, duration_days = $5, depends_on_task_id = $6
where id = $1;
`
	ct, err := r.db.Exec(ctx, q, t.ID, t.Name, t.Assignee, t.StartDate, t.DurationDays, t.DependsOnTaskID)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return domain.ErrTaskNotFound
	}
	return nil
}

// Delete removes a task and, via cascade, its day entries.
func (r *TaskRepository) Delete(ctx context.Context, taskID int64) (bool, error) {
	ct, err := r.db.Exec(ctx, `delete from project_tasks where id = $1;`, taskID)
	if err != nil {
		return false, err
	}
	return ct.RowsAffected() > 0, nil
}

// GetDayStatus reads the recorded status for one (task, date) cell.
// nil means no entry.
func (r *TaskRepository) GetDayStatus(ctx context.Context, taskID int64, day time.Time) (*domain.Status, error) {
	const q = `select status from task_days where task_id = $1 and day = $2;`
	var s string
	err := r.db.QueryRow(ctx, q, taskID, domain.DateOnly(day)).Scan(&s)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	status := domain.Status(s)
	return &status, nil
}

// UpsertDay writes one (task, date, status) cell. A nil status deletes
// the cell. Each call is a single statement; concurrent toggles on the
// same cell resolve last-write-wins.
func (r *TaskRepository) UpsertDay(ctx context.Context, taskID int64, day time.Time, status *domain.Status) error {
	day = domain.DateOnly(day)

	if status == nil {
		_, err := r.db.Exec(ctx, `delete from task_days where task_id = $1 and day = $2;`, taskID, day)
		return err
	}

	const q = `
insert into task_days (task_id, day, status)
values ($1, $2, $3)
on conflict (task_id, day) do update set status = excluded.status, updated_at = now();
`
	_, err := r.db.Exec(ctx, q, taskID, day, string(*status))
	return err
}
