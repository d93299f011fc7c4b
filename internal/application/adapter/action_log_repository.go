// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/budgy/backend/internal/domain/entity"
)

// ActionLogFilter defines filter options for listing audit entries.
type ActionLogFilter struct {
	UserID *uuid.UUID
	Action *entity.ActionName
	Since  *time.Time
}

// ActionLogListResult represents a page of audit entries.
type ActionLogListResult struct {
	Logs       []*entity.UserActionLog
	Total      int64
	Page       int
	Limit      int
	TotalPages int
}

// ActionLogRepository defines the interface for audit log persistence operations.
type ActionLogRepository interface {
	// Create appends an audit entry.
	Create(ctx context.Context, log *entity.UserActionLog) error

	// FindActionByName retrieves an entry of the action taxonomy.
	FindActionByName(ctx context.Context, name entity.ActionName) (*entity.UserAction, error)

	// FindByFilter retrieves audit entries newest first.
	FindByFilter(ctx context.Context, filter ActionLogFilter, pagination TransactionPagination) (*ActionLogListResult, error)
}

// ActionRecorder appends audit entries on behalf of use cases.
// Implementations never return an error to the caller.
type ActionRecorder interface {
	Record(ctx context.Context, userID *uuid.UUID, action entity.ActionName, details string)
}
