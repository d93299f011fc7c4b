// Package audit records user actions and serves the audit listings.
package audit

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/budgy/backend/internal/application/adapter"
	"github.com/budgy/backend/internal/domain/entity"
)

const (
	defaultPageLimit = 20
	maxPageLimit     = 100
)

// ListActionLogsInput represents the input for listing audit entries.
// A nil UserID lists every user and is reserved for admins.
type ListActionLogsInput struct {
	UserID *uuid.UUID
	Action *entity.ActionName
	Since  *time.Time
	Page   int
	Limit  int
}

// ListActionLogsUseCase lists audit entries newest first.
type ListActionLogsUseCase struct {
	repo adapter.ActionLogRepository
}

// NewListActionLogsUseCase creates a new ListActionLogsUseCase instance.
func NewListActionLogsUseCase(repo adapter.ActionLogRepository) *ListActionLogsUseCase {
	return &ListActionLogsUseCase{repo: repo}
}

// Execute performs the listing.
func (uc *ListActionLogsUseCase) Execute(ctx context.Context, input ListActionLogsInput) (*adapter.ActionLogListResult, error) {
	page := input.Page
	if page < 1 {
		page = 1
	}
	limit := input.Limit
	if limit < 1 {
		limit = defaultPageLimit
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}

	result, err := uc.repo.FindByFilter(ctx, adapter.ActionLogFilter{
		UserID: input.UserID,
		Action: input.Action,
		Since:  input.Since,
	}, adapter.TransactionPagination{Page: page, Limit: limit})
	if err != nil {
		return nil, fmt.Errorf("failed to list action logs: %w", err)
	}
	return result, nil
}
