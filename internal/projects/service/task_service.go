package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/saokim-lighting/skl-backend/internal/metrics"
	"github.com/saokim-lighting/skl-backend/internal/projects/domain"
)

// TaskStore is the persistence surface the task service needs.
type TaskStore interface {
	ListByProject(ctx context.Context, projectID int64) ([]domain.TaskItem, error)
	Get(ctx context.Context, taskID int64) (*domain.TaskItem, error)
	Create(ctx context.Context, t domain.TaskItem) (*domain.TaskItem, error)
	Update(ctx context.Context, t domain.TaskItem) error
	Delete(ctx context.Context, taskID int64) (bool, error)
	GetDayStatus(ctx context.Context, taskID int64, day time.Time) (*domain.Status, error)
	UpsertDay(ctx context.Context, taskID int64, day time.Time, status *domain.Status) error
}

// DayToggle is the outcome of one click on a calendar cell.
type DayToggle struct {
	TaskID  int64          `json:"task_id"`
	Day     time.Time      `json:"day"`
	Status  *domain.Status `json:"status"`  // nil when the entry was removed
	Removed bool           `json:"removed"` // true on the Delayed -> cleared step
}

// TaskService owns task CRUD and the day-status click cycle.
type TaskService struct {
	tasks TaskStore
	log   *zap.Logger
}

func NewTaskService(tasks TaskStore, log *zap.Logger) *TaskService {
	return &TaskService{tasks: tasks, log: log}
}

func (s *TaskService) ListByProject(ctx context.Context, projectID int64) ([]domain.TaskItem, error) {
	return s.tasks.ListByProject(ctx, projectID)
}

func (s *TaskService) Create(ctx context.Context, t domain.TaskItem) (*domain.TaskItem, error) {
	if t.DurationDays < 1 {
		return nil, fmt.Errorf("duration_days must be at least 1")
	}
	return s.tasks.Create(ctx, t)
}

func (s *TaskService) Update(ctx context.Context, t domain.TaskItem) error {
	if t.DurationDays < 1 {
		return fmt.Errorf("duration_days must be at least 1")
	}
	return s.tasks.Update(ctx, t)
}

func (s *TaskService) Delete(ctx context.Context, taskID int64) (bool, error) {
	return s.tasks.Delete(ctx, taskID)
}

// ComputeOverallStatus derives a task's headline status from its most
// recently dated entry.
func (s *TaskService) ComputeOverallStatus(ctx context.Context, taskID int64) (domain.Status, error) {
	t, err := s.tasks.Get(ctx, taskID)
	if err != nil {
		return "", err
	}
	return domain.OverallStatus(*t), nil
}

// AdvanceDayStatus moves one (task, date) cell a single step around the
// click cycle and persists the result: an upsert on every step except
// Delayed, which removes the cell. The write is a single statement per
// call; two users racing on the same cell resolve last-write-wins.
func (s *TaskService) AdvanceDayStatus(ctx context.Context, taskID int64, day time.Time) (*DayToggle, error) {
	if _, err := s.tasks.Get(ctx, taskID); err != nil {
		return nil, err
	}
	day = domain.DateOnly(day)

	cur, err := s.tasks.GetDayStatus(ctx, taskID, day)
	if err != nil {
		return nil, fmt.Errorf("read day status: %w", err)
	}

	next := domain.NextStatus(cur)
	if err := s.tasks.UpsertDay(ctx, taskID, day, next); err != nil {
		return nil, fmt.Errorf("write day status: %w", err)
	}
	metrics.CountTaskDayToggle()

	s.log.Debug("task day advanced",
		zap.Int64("task_id", taskID),
		zap.String("day", day.Format("2006-01-02")),
		zap.Bool("removed", next == nil))

	return &DayToggle{TaskID: taskID, Day: day, Status: next, Removed: next == nil}, nil
}

// SetDayStatus writes an explicit status (or clears the cell with nil),
// bypassing the cycle. The SPA uses this for drag-fill edits.
func (s *TaskService) SetDayStatus(ctx context.Context, taskID int64, day time.Time, status *domain.Status) (*DayToggle, error) {
	if status != nil && !status.Valid() {
		return nil, domain.ErrInvalidStatus
	}
	if _, err := s.tasks.Get(ctx, taskID); err != nil {
		return nil, err
	}
	day = domain.DateOnly(day)

	if err := s.tasks.UpsertDay(ctx, taskID, day, status); err != nil {
		return nil, fmt.Errorf("write day status: %w", err)
	}
	return &DayToggle{TaskID: taskID, Day: day, Status: status, Removed: status == nil}, nil
}
