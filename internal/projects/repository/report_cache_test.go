package repository

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/saokim-lighting/skl-backend/internal/projects/domain"
)

func setupCache(t *testing.T) (*ReportCache, *miniredis.Miniredis) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewReportCache(client), mr
}

func TestReportCache(t *testing.T) {
	ctx := context.Background()

	report := domain.ProjectReport{
		Code:               "PRJ-042",
		Name:               "Cafe facade",
		Status:             domain.ProjectActive,
		TotalProductAmount: decimal.RequireFromString("6000000"),
		ActualAllIn:        decimal.RequireFromString("9500000"),
		Variance:           decimal.RequireFromString("500000"),
		Issues:             []string{"task delayed: mounting"},
	}

	t.Run("miss returns nil without error", func(t *testing.T) {
		cache, _ := setupCache(t)
		got, err := cache.Get(ctx, "skl-00000-0000")
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("set then get round-trips the report", func(t *testing.T) {
		cache, _ := setupCache(t)
		require.NoError(t, cache.Set(ctx, "skl-12345-6789", report))

		got, err := cache.Get(ctx, "skl-12345-6789")
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, "PRJ-042", got.Code)
		assert.True(t, got.Variance.Equal(decimal.RequireFromString("500000")))
		assert.Equal(t, []string{"task delayed: mounting"}, got.Issues)
	})

	t.Run("invalidate removes the entry", func(t *testing.T) {
		cache, _ := setupCache(t)
		require.NoError(t, cache.Set(ctx, "skl-12345-6789", report))
		require.NoError(t, cache.Invalidate(ctx, "skl-12345-6789"))

		got, err := cache.Get(ctx, "skl-12345-6789")
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("entries expire after the TTL", func(t *testing.T) {
		cache, mr := setupCache(t)
		require.NoError(t, cache.Set(ctx, "skl-12345-6789", report))

		mr.FastForward(reportTTL + 1)

		got, err := cache.Get(ctx, "skl-12345-6789")
		require.NoError(t, err)
		assert.Nil(t, got)
	})
}
