package integration

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/saokim-lighting/skl-backend/internal/projects/domain"
	"github.com/saokim-lighting/skl-backend/internal/projects/repository"
	"github.com/saokim-lighting/skl-backend/internal/projects/service"
)

// setupTestPool connects to the test database. Skips when TEST_DB_DSN
// (or the TEST_DB_* parts) is not set, so unit runs stay green without
// Postgres.
func setupTestPool(t *testing.T) *pgxpool.Pool {
	dsn := os.Getenv("TEST_DB_DSN")
	if dsn == "" {
		host := os.Getenv("TEST_DB_HOST")
		port := os.Getenv("TEST_DB_PORT")
		user := os.Getenv("TEST_DB_USER")
		password := os.Getenv("TEST_DB_PASSWORD")
		dbname := os.Getenv("TEST_DB_NAME")
		if host == "" || port == "" || user == "" || dbname == "" {
			t.Skip("TEST_DB_DSN or TEST_DB_* environment variables not set, skipping PostgreSQL integration test")
		}
		dsn = fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
			user, password, host, port, dbname)
	}

	pool, err := pgxpool.New(context.Background(), dsn)
	require.NoError(t, err)
	require.NoError(t, pool.Ping(context.Background()))
	t.Cleanup(pool.Close)
	return pool
}

func setupTestRedis(t *testing.T) *redis.Client {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return client
}

func TestProjectLifecycleAndReport(t *testing.T) {
	pool := setupTestPool(t)
	cache := setupTestRedis(t)
	log := zaptest.NewLogger(t)
	ctx := context.Background()

	projectRepo := repository.NewProjectRepository(pool)
	taskRepo := repository.NewTaskRepository(pool)
	lineRepo := repository.NewProductLineRepository(pool)
	expenseRepo := repository.NewExpenseRepository(pool)
	reportCache := repository.NewReportCache(cache)

	projectSvc := service.NewProjectService(projectRepo)
	taskSvc := service.NewTaskService(taskRepo, log)
	reportSvc := service.NewReportService(projectRepo, taskRepo, lineRepo, expenseRepo, reportCache, log)

	start := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	budget := decimal.RequireFromString("10000000")

	created, err := projectSvc.Create(ctx, domain.Project{
		Code:         fmt.Sprintf("PRJ-IT-%d", time.Now().UnixNano()),
		Name:         "Showroom lighting fit-out",
		CustomerName: "Hotel Mặt Trời",
		Status:       domain.ProjectActive,
		StartDate:    start,
		Budget:       &budget,
	})
	require.NoError(t, err)
	require.NotEmpty(t, created.PublicID)

	task, err := taskSvc.Create(ctx, domain.TaskItem{
		ProjectID:    created.ID,
		Name:         "Install ceiling fixtures",
		StartDate:    start,
		DurationDays: 5,
	})
	require.NoError(t, err)

	// Walk one day through the status cycle to Done.
	day := start
	for i := 0; i < 3; i++ {
		_, err = taskSvc.AdvanceDayStatus(ctx, task.ID, day)
		require.NoError(t, err)
	}
	got, err := taskRepo.GetDayStatus(ctx, task.ID, day)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, domain.StatusDone, *got)

	_, err = lineRepo.Create(ctx, domain.ProjectProduct{
		ProjectID:   created.ID,
		ProductName: "LED panel 60x60",
		Quantity:    decimal.NewFromInt(40),
		UnitPrice:   decimal.RequireFromString("150000"),
	})
	require.NoError(t, err)

	_, err = expenseRepo.Create(ctx, domain.ProjectExpense{
		ProjectID: created.ID,
		Day:       start,
		Category:  "transport",
		Amount:    decimal.RequireFromString("500000"),
	})
	require.NoError(t, err)

	report, err := reportSvc.Compile(ctx, created.PublicID)
	require.NoError(t, err)
	assert.Equal(t, created.Code, report.Code)
	assert.True(t, decimal.RequireFromString("6000000").Equal(report.TotalProductAmount))
	assert.True(t, decimal.RequireFromString("500000").Equal(report.TotalOtherExpenses))
	assert.True(t, decimal.RequireFromString("6500000").Equal(report.ActualAllIn))
	assert.Equal(t, 1, report.TaskCompleted)

	// Second compile hits the cache.
	cached, err := reportSvc.Compile(ctx, created.PublicID)
	require.NoError(t, err)
	assert.Equal(t, report.Code, cached.Code)

	ok, err := projectSvc.Delete(ctx, created.PublicID)
	require.NoError(t, err)
	assert.True(t, ok)

	_, err = projectSvc.Get(ctx, created.PublicID)
	assert.ErrorIs(t, err, domain.ErrProjectNotFound)
}
