package worker

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/saokim-lighting/skl-backend/internal/projects/domain"
	"github.com/saokim-lighting/skl-backend/internal/projects/service"
)

// Scheduler runs the nightly maintenance jobs: flagging projects that
// passed their end date while still active, and re-compiling reports so
// the cache is warm before the morning dashboard traffic.
type Scheduler struct {
	cron     *cron.Cron
	projects *service.ProjectService
	reports  *service.ReportService
	log      *zap.Logger
}

func NewScheduler(projects *service.ProjectService, reports *service.ReportService, log *zap.Logger) *Scheduler {
	return &Scheduler{
		cron:     cron.New(),
		projects: projects,
		reports:  reports,
		log:      log,
	}
}

// Start registers the jobs and launches the cron loop. Schedules are in
// server-local time; the overdue check itself compares dates in UTC.
func (s *Scheduler) Start() error {
	if _, err := s.cron.AddFunc("15 0 * * *", s.scanOverdue); err != nil {
		return err
	}
	if _, err := s.cron.AddFunc("45 0 * * *", s.warmReportCache); err != nil {
		return err
	}
	s.cron.Start()
	s.log.Info("scheduler started")
	return nil
}

func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.log.Info("scheduler stopped")
}

func (s *Scheduler) scanOverdue() {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	active, err := s.projects.List(ctx, domain.ProjectActive)
	if err != nil {
		s.log.Error("overdue scan: list projects", zap.Error(err))
		return
	}

	today := domain.DateOnly(time.Now().UTC())
	overdue := 0
	for _, p := range active {
		if p.EndDate != nil && domain.DateOnly(*p.EndDate).Before(today) {
			overdue++
			s.log.Warn("project past end date",
				zap.String("public_id", p.PublicID),
				zap.String("code", p.Code),
				zap.Time("end_date", *p.EndDate))
		}
	}
	s.log.Info("overdue scan done", zap.Int("active", len(active)), zap.Int("overdue", overdue))
}

func (s *Scheduler) warmReportCache() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	active, err := s.projects.List(ctx, domain.ProjectActive)
	if err != nil {
		s.log.Error("report warm: list projects", zap.Error(err))
		return
	}

	warmed := 0
	for _, p := range active {
		if _, err := s.reports.Compile(ctx, p.PublicID); err != nil {
			s.log.Warn("report warm: compile failed",
				zap.String("public_id", p.PublicID), zap.Error(err))
			continue
		}
		warmed++
	}
	s.log.Info("report warm done", zap.Int("warmed", warmed), zap.Int("total", len(active)))
}
