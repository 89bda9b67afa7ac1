package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/saokim-lighting/skl-backend/internal/projects/domain"
)

const (
	reportKeyPrefix = "skl:report:" // skl:report:{public_id}
	reportTTL       = 10 * time.Minute
)

// ReportCache keeps compiled project reports in Redis so the dashboard
// and the PDF exporter do not recompute aggregates on every hit. Any
// mutation of a project's tasks, lines or expenses must invalidate it.
type ReportCache struct {
	client *redis.Client
}

func NewReportCache(client *redis.Client) *ReportCache {
	return &ReportCache{client: client}
}

func (c *ReportCache) key(publicID string) string {
	return reportKeyPrefix + publicID
}

// Get returns the cached report, or (nil, nil) on a miss.
func (c *ReportCache) Get(ctx context.Context, publicID string) (*domain.ProjectReport, error) {
	data, err := c.client.Get(ctx, c.key(publicID)).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("report cache get: %w", err)
	}

	var r domain.ProjectReport
	if err := json.Unmarshal([]byte(data), &r); err != nil {
		return nil, fmt.Errorf("report cache decode: %w", err)
	}
	return &r, nil
}

// Set stores a freshly compiled report with the standard TTL.
func (c *ReportCache) Set(ctx context.Context, publicID string, r domain.ProjectReport) error {
	data, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("report cache encode: %w", err)
	}
	if err := c.client.Set(ctx, c.key(publicID), data, reportTTL).Err(); err != nil {
		return fmt.Errorf("report cache set: %w", err)
	}
	return nil
}

// Invalidate drops the cached report after a mutation.
func (c *ReportCache) Invalidate(ctx context.Context, publicID string) error {
	if err := c.client.Del(ctx, c.key(publicID)).Err(); err != nil {
		return fmt.Errorf("report cache invalidate: %w", err)
	}
	return nil
}
