// Package adapters implements adapter interfaces from the application layer.
package adapters

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/budgy/backend/internal/application/adapter"
	"github.com/budgy/backend/internal/domain/entity"
)

const summaryKeyPrefix = "summary"

// redisSummaryCache stores summaries in Redis. Invalidation bumps a per-user
// version counter, so stale entries are never read and expire on their own.
type redisSummaryCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisSummaryCache creates a Redis backed summary cache.
func NewRedisSummaryCache(client *redis.Client, ttl time.Duration) adapter.SummaryCache {
	return &redisSummaryCache{client: client, ttl: ttl}
}

// Get returns the cached summary, or nil on a miss, and the version it read.
func (c *redisSummaryCache) Get(ctx context.Context, userID uuid.UUID, summaryType entity.TransactionType, month time.Time) (*entity.MonthlySummary, adapter.CacheVersion, error) {
	version, err := c.version(ctx, userID)
	if err != nil {
		return nil, 0, err
	}

	raw, err := c.client.Get(ctx, dataKey(userID, version, summaryType, month)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, version, nil
		}
		return nil, 0, err
	}

	var summary entity.MonthlySummary
	if err := json.Unmarshal(raw, &summary); err != nil {
		return nil, version, fmt.Errorf("failed to decode cached summary: %w", err)
	}
	return &summary, version, nil
}

// Set stores a summary under the version the caller read. If the user was
// invalidated in between, the entry lands in a retired version and is never read.
func (c *redisSummaryCache) Set(ctx context.Context, userID uuid.UUID, version adapter.CacheVersion, summary *entity.MonthlySummary) error {
	raw, err := json.Marshal(summary)
	if err != nil {
		return fmt.Errorf("failed to encode summary: %w", err)
	}
	return c.client.Set(ctx, dataKey(userID, version, summary.Type, summary.Month), raw, c.ttl).Err()
}

// InvalidateUser bumps the user's version.
func (c *redisSummaryCache) InvalidateUser(ctx context.Context, userID uuid.UUID) error {
	return c.client.Incr(ctx, versionKey(userID)).Err()
}

// Ping checks the Redis connection.
func (c *redisSummaryCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

func (c *redisSummaryCache) version(ctx context.Context, userID uuid.UUID) (adapter.CacheVersion, error) {
	v, err := c.client.Get(ctx, versionKey(userID)).Int64()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, nil
		}
		return 0, err
	}
	return adapter.CacheVersion(v), nil
}

func versionKey(userID uuid.UUID) string {
	return fmt.Sprintf("%s:%s:ver", summaryKeyPrefix, userID)
}

func dataKey(userID uuid.UUID, version adapter.CacheVersion, summaryType entity.TransactionType, month time.Time) string {
	return fmt.Sprintf("%s:%s:v%d:%s:%s", summaryKeyPrefix, userID, version, summaryType, month.UTC().Format(entity.MonthLayout))
}

// noopSummaryCache is used when Redis is not configured.
type noopSummaryCache struct{}

// NewNoopSummaryCache creates a cache that never stores anything.
func NewNoopSummaryCache() adapter.SummaryCache {
	return noopSummaryCache{}
}

func (noopSummaryCache) Get(context.Context, uuid.UUID, entity.TransactionType, time.Time) (*entity.MonthlySummary, adapter.CacheVersion, error) {
	return nil, 0, nil
}

func (noopSummaryCache) Set(context.Context, uuid.UUID, adapter.CacheVersion, *entity.MonthlySummary) error {
	return nil
}

func (noopSummaryCache) InvalidateUser(context.Context, uuid.UUID) error { return nil }

func (noopSummaryCache) Ping(context.Context) error { return nil }
