package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/saokim-lighting/skl-backend/internal/metrics"
	"github.com/saokim-lighting/skl-backend/internal/projects/domain"
)

// ProductLineStore and ExpenseStore feed the cost side of reports.
type ProductLineStore interface {
	ListByProject(ctx context.Context, projectID int64) ([]domain.ProjectProduct, error)
}

type ExpenseStore interface {
	ListByProject(ctx context.Context, projectID int64) ([]domain.ProjectExpense, error)
}

// ReportCacheStore is the optional Redis cache in front of compilation.
type ReportCacheStore interface {
	Get(ctx context.Context, publicID string) (*domain.ProjectReport, error)
	Set(ctx context.Context, publicID string, r domain.ProjectReport) error
	Invalidate(ctx context.Context, publicID string) error
}

// ReportService compiles project reports. The three collection fetches
// are independent and run concurrently; if any of them fails the whole
// report fails, because an aggregate over a silently empty collection
// would misstate the variance.
type ReportService struct {
	projects ProjectStore
	tasks    TaskStore
	lines    ProductLineStore
	expenses ExpenseStore
	cache    ReportCacheStore // may be nil
	now      func() time.Time
	log      *zap.Logger
}

func NewReportService(projects ProjectStore, tasks TaskStore, lines ProductLineStore, expenses ExpenseStore, cache ReportCacheStore, log *zap.Logger) *ReportService {
	return &ReportService{
		projects: projects,
		tasks:    tasks,
		lines:    lines,
		expenses: expenses,
		cache:    cache,
		now:      time.Now,
		log:      log,
	}
}

// WithClock fixes "today" for the overdue check. Tests only.
func (s *ReportService) WithClock(now func() time.Time) *ReportService {
	s.now = now
	return s
}

// CostSummary returns just the monetary rollup for one project.
func (s *ReportService) CostSummary(ctx context.Context, publicID string) (*domain.CostSummary, error) {
	p, err := s.projects.GetByPublicID(ctx, publicID)
	if err != nil {
		return nil, err
	}

	var (
		products []domain.ProjectProduct
		expenses []domain.ProjectExpense
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		products, err = s.lines.ListByProject(gctx, p.ID)
		return
	})
	g.Go(func() (err error) {
		expenses, err = s.expenses.ListByProject(gctx, p.ID)
		return
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("load cost collections: %w", err)
	}

	cs := domain.ComputeCostSummary(p.Budget, products, expenses)
	return &cs, nil
}

// Compile builds the full report for one project, serving from cache
// when possible.
func (s *ReportService) Compile(ctx context.Context, publicID string) (*domain.ProjectReport, error) {
	if s.cache != nil {
		cached, err := s.cache.Get(ctx, publicID)
		if err != nil {
			// cache trouble is not worth failing the report for
			s.log.Warn("report cache read failed", zap.String("project", publicID), zap.Error(err))
		} else if cached != nil {
			metrics.CountReportCache("hit")
			return cached, nil
		}
		metrics.CountReportCache("miss")
	}

	p, err := s.projects.GetByPublicID(ctx, publicID)
	if err != nil {
		return nil, err
	}

	var (
		tasks    []domain.TaskItem
		products []domain.ProjectProduct
		expenses []domain.ProjectExpense
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		tasks, err = s.tasks.ListByProject(gctx, p.ID)
		return
	})
	g.Go(func() (err error) {
		products, err = s.lines.ListByProject(gctx, p.ID)
		return
	})
	g.Go(func() (err error) {
		expenses, err = s.expenses.ListByProject(gctx, p.ID)
		return
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("load report collections: %w", err)
	}

	started := time.Now()
	report := domain.CompileReport(*p, tasks, products, expenses, s.now())
	metrics.ObserveReportCompile(time.Since(started))

	if s.cache != nil {
		if err := s.cache.Set(ctx, publicID, report); err != nil {
			s.log.Warn("report cache write failed", zap.String("project", publicID), zap.Error(err))
		}
	}
	return &report, nil
}

// InvalidateCache drops the cached report after any mutation of the
// project's tasks, product lines or expenses.
func (s *ReportService) InvalidateCache(ctx context.Context, publicID string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx, publicID); err != nil {
		s.log.Warn("report cache invalidate failed", zap.String("project", publicID), zap.Error(err))
	}
}
