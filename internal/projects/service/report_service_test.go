package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/saokim-lighting/skl-backend/internal/projects/domain"
)

type fakeProjectStore struct {
	project *domain.Project
}

func (s *fakeProjectStore) Create(_ context.Context, p domain.Project) (*domain.Project, error) {
	return &p, nil
}

func (s *fakeProjectStore) GetByPublicID(_ context.Context, publicID string) (*domain.Project, error) {
	if s.project == nil || s.project.PublicID != publicID {
		return nil, domain.ErrProjectNotFound
	}
	cp := *s.project
	return &cp, nil
}

func (s *fakeProjectStore) List(_ context.Context, _ string) ([]domain.Project, error) {
	if s.project == nil {
		return nil, nil
	}
	return []domain.Project{*s.project}, nil
}

func (s *fakeProjectStore) Update(_ context.Context, p domain.Project) (*domain.Project, error) {
	return &p, nil
}

func (s *fakeProjectStore) SoftDelete(_ context.Context, _ string) (bool, error) {
	return true, nil
}

type fakeLineStore struct {
	lines []domain.ProjectProduct
	fail  error
}

func (s *fakeLineStore) ListByProject(_ context.Context, _ int64) ([]domain.ProjectProduct, error) {
	return s.lines, s.fail
}

type fakeExpenseStore struct {
	expenses []domain.ProjectExpense
	fail     error
}

func (s *fakeExpenseStore) ListByProject(_ context.Context, _ int64) ([]domain.ProjectExpense, error) {
	return s.expenses, s.fail
}

type memReportCache struct {
	entries map[string]domain.ProjectReport
	fail    error
}

func newMemReportCache() *memReportCache {
	return &memReportCache{entries: make(map[string]domain.ProjectReport)}
}

func (c *memReportCache) Get(_ context.Context, publicID string) (*domain.ProjectReport, error) {
	if c.fail != nil {
		return nil, c.fail
	}
	if r, ok := c.entries[publicID]; ok {
		return &r, nil
	}
	return nil, nil
}

func (c *memReportCache) Set(_ context.Context, publicID string, r domain.ProjectReport) error {
	if c.fail != nil {
		return c.fail
	}
	c.entries[publicID] = r
	return nil
}

func (c *memReportCache) Invalidate(_ context.Context, publicID string) error {
	delete(c.entries, publicID)
	return nil
}

func fixedNow() time.Time {
	return time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
}

func testProject() *domain.Project {
	budget := decimal.RequireFromString("10000000")
	return &domain.Project{
		ID:           3,
		PublicID:     "skl-11111-2222",
		Code:         "PRJ-003",
		Name:         "Warehouse relight",
		CustomerName: "Delta Logistics",
		Status:       domain.ProjectActive,
		StartDate:    time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		Budget:       &budget,
	}
}

func TestReportService_Compile(t *testing.T) {
	ctx := context.Background()

	products := []domain.ProjectProduct{{Total: decimal.RequireFromString("6000000")}}
	expenses := []domain.ProjectExpense{{Amount: decimal.RequireFromString("3500000")}}

	doneTask := domain.TaskItem{ID: 1, ProjectID: 3, Name: "fit out", StartDate: fixedNow(), DurationDays: 3}
	s := domain.StatusDone
	domain.UpsertDay(&doneTask, fixedNow(), &s)

	t.Run("compiles the full report", func(t *testing.T) {
		svc := NewReportService(
			&fakeProjectStore{project: testProject()},
			newFakeTaskStore(doneTask),
			&fakeLineStore{lines: products},
			&fakeExpenseStore{expenses: expenses},
			nil,
			zap.NewNop(),
		).WithClock(fixedNow)

		r, err := svc.Compile(ctx, "skl-11111-2222")
		require.NoError(t, err)

		assert.Equal(t, "PRJ-003", r.Code)
		assert.Equal(t, 1, r.TaskCompleted)
		assert.Equal(t, 100, r.ProgressPercent)
		assert.True(t, r.ActualAllIn.Equal(decimal.RequireFromString("9500000")))
		assert.True(t, r.Variance.Equal(decimal.RequireFromString("500000")))
	})

	t.Run("unknown project fails with not found", func(t *testing.T) {
		svc := NewReportService(
			&fakeProjectStore{},
			newFakeTaskStore(),
			&fakeLineStore{},
			&fakeExpenseStore{},
			nil,
			zap.NewNop(),
		).WithClock(fixedNow)

		_, err := svc.Compile(ctx, "skl-00000-0000")
		assert.ErrorIs(t, err, domain.ErrProjectNotFound)
	})

	t.Run("one failed fetch fails the whole report", func(t *testing.T) {
		boom := errors.New("expense query timeout")
		svc := NewReportService(
			&fakeProjectStore{project: testProject()},
			newFakeTaskStore(doneTask),
			&fakeLineStore{lines: products},
			&fakeExpenseStore{fail: boom},
			nil,
			zap.NewNop(),
		).WithClock(fixedNow)

		_, err := svc.Compile(ctx, "skl-11111-2222")
		require.Error(t, err)
		assert.ErrorIs(t, err, boom, "no partial report over a silently empty collection")
	})

	t.Run("second compile is served from cache", func(t *testing.T) {
		cache := newMemReportCache()
		lines := &fakeLineStore{lines: products}
		svc := NewReportService(
			&fakeProjectStore{project: testProject()},
			newFakeTaskStore(doneTask),
			lines,
			&fakeExpenseStore{expenses: expenses},
			cache,
			zap.NewNop(),
		).WithClock(fixedNow)

		first, err := svc.Compile(ctx, "skl-11111-2222")
		require.NoError(t, err)

		// poison the underlying store; a cache hit never touches it
		lines.fail = errors.New("db down")

		second, err := svc.Compile(ctx, "skl-11111-2222")
		require.NoError(t, err)
		assert.Equal(t, first.ActualAllIn.String(), second.ActualAllIn.String())

		// after invalidation the failure surfaces again
		svc.InvalidateCache(ctx, "skl-11111-2222")
		_, err = svc.Compile(ctx, "skl-11111-2222")
		assert.Error(t, err)
	})

	t.Run("cache read errors fall through to compilation", func(t *testing.T) {
		cache := newMemReportCache()
		cache.fail = errors.New("redis gone")
		svc := NewReportService(
			&fakeProjectStore{project: testProject()},
			newFakeTaskStore(doneTask),
			&fakeLineStore{lines: products},
			&fakeExpenseStore{expenses: expenses},
			cache,
			zap.NewNop(),
		).WithClock(fixedNow)

		r, err := svc.Compile(ctx, "skl-11111-2222")
		require.NoError(t, err)
		assert.Equal(t, "PRJ-003", r.Code)
	})
}

func TestReportService_CostSummary(t *testing.T) {
	svc := NewReportService(
		&fakeProjectStore{project: testProject()},
		newFakeTaskStore(),
		&fakeLineStore{lines: []domain.ProjectProduct{{Total: decimal.RequireFromString("100.25")}}},
		&fakeExpenseStore{expenses: []domain.ProjectExpense{{Amount: decimal.RequireFromString("0.75")}}},
		nil,
		zap.NewNop(),
	).WithClock(fixedNow)

	cs, err := svc.CostSummary(context.Background(), "skl-11111-2222")
	require.NoError(t, err)
	assert.Equal(t, "101.00", cs.ActualAllIn.StringFixed(2))
	assert.Equal(t, "99.50", cs.ProfitApprox.StringFixed(2))
}

func TestProjectService_RequireMutable(t *testing.T) {
	p := testProject()
	p.Status = domain.ProjectDone
	svc := NewProjectService(&fakeProjectStore{project: p})

	_, err := svc.RequireMutable(context.Background(), "skl-11111-2222")
	assert.ErrorIs(t, err, domain.ErrProjectFrozen)
}
