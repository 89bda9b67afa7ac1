package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/saokim-lighting/skl-backend/config"
	"github.com/saokim-lighting/skl-backend/internal/bootstrap"
	"github.com/saokim-lighting/skl-backend/internal/logger"
	"github.com/saokim-lighting/skl-backend/internal/projects/repository"
	"github.com/saokim-lighting/skl-backend/internal/projects/service"
	"github.com/saokim-lighting/skl-backend/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	zl, err := logger.New(cfg.App.Environment, cfg.App.LogLevel)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer zl.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := bootstrap.OpenDB(ctx, bootstrap.DBOptions{DSN: cfg.Database.DSN()})
	if err != nil {
		zl.Fatal("open db", zap.Error(err))
	}
	defer db.Close()

	cache, err := bootstrap.OpenRedis(ctx, bootstrap.RedisOptions{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		zl.Fatal("open redis", zap.Error(err))
	}
	defer cache.Close()

	projectRepo := repository.NewProjectRepository(db)
	taskRepo := repository.NewTaskRepository(db)
	lineRepo := repository.NewProductLineRepository(db)
	expenseRepo := repository.NewExpenseRepository(db)
	reportCache := repository.NewReportCache(cache)

	projectSvc := service.NewProjectService(projectRepo)
	reportSvc := service.NewReportService(projectRepo, taskRepo, lineRepo, expenseRepo, reportCache, zl)

	sched := worker.NewScheduler(projectSvc, reportSvc, zl)
	if err := sched.Start(); err != nil {
		zl.Fatal("start scheduler", zap.Error(err))
	}

	<-ctx.Done()
	sched.Stop()
}
