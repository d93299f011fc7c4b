// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/budgy/backend/internal/domain/entity"
)

// CacheVersion is the generation of a user's cached summaries. Invalidation
// starts a new generation.
type CacheVersion int64

// SummaryCache stores computed monthly summaries per user.
type SummaryCache interface {
	// Get returns the cached summary, or nil on a miss, together with the
	// generation it looked in.
	Get(ctx context.Context, userID uuid.UUID, summaryType entity.TransactionType, month time.Time) (*entity.MonthlySummary, CacheVersion, error)

	// Set stores a summary under the generation returned by Get. A summary
	// computed before an invalidation is never readable afterwards.
	Set(ctx context.Context, userID uuid.UUID, version CacheVersion, summary *entity.MonthlySummary) error

	// InvalidateUser drops every cached summary of a user.
	InvalidateUser(ctx context.Context, userID uuid.UUID) error

	// Ping reports whether the cache backend is reachable.
	Ping(ctx context.Context) error
}
