package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/saokim-lighting/skl-backend/config"
	"github.com/saokim-lighting/skl-backend/internal/auth"
	"github.com/saokim-lighting/skl-backend/internal/bootstrap"
	"github.com/saokim-lighting/skl-backend/internal/logger"
)

const serviceName = "skl-backend"

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

	bootstrap.SetGinMode(cfg.App.Environment)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := bootstrap.OpenDB(ctx, bootstrap.DBOptions{DSN: cfg.Database.DSN()})
	if err != nil {
		zl.Fatal("open db", zap.Error(err))
	}
	defer db.Close()

	sqlDB, err := bootstrap.OpenSQLDB(ctx, bootstrap.DBOptions{DSN: cfg.Database.DSN()})
	if err != nil {
		zl.Fatal("open sql db", zap.Error(err))
	}
	defer sqlDB.Close()

	cache, err := bootstrap.OpenRedis(ctx, bootstrap.RedisOptions{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		zl.Fatal("open redis", zap.Error(err))
	}
	defer cache.Close()

	authClient, err := auth.InitializeFirebase(cfg.Firebase.CredentialsPath)
	if err != nil {
		// Without credentials the API falls back to header identity,
		// which is only usable in development.
		if cfg.App.Environment == "production" {
			zl.Fatal("init firebase", zap.Error(err))
		}
		zl.Warn("firebase disabled, using header identity", zap.Error(err))
		authClient = nil
	}

	router := bootstrap.BuildRouter(bootstrap.RouterDeps{
		ServiceName:    serviceName,
		Version:        cfg.App.Version,
		DB:             db,
		SQLDB:          sqlDB,
		Cache:          cache,
		AuthClient:     authClient,
		Log:            zl,
		RateLimitRPS:   cfg.Server.RateLimitRPS,
		RateLimitBurst: cfg.Server.RateLimitBurst,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		zl.Info("api listening", zap.String("port", cfg.Server.Port), zap.String("env", cfg.App.Environment))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zl.Fatal("serve", zap.Error(err))
		}
	}()

	<-ctx.Done()
	zl.Info("shutting down")

	shCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shCtx); err != nil {
		zl.Error("shutdown", zap.Error(err))
	}
}
