// Package audit records user actions and serves the audit listings.
package audit

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/budgy/backend/internal/application/adapter"
	"github.com/budgy/backend/internal/domain/entity"
)

// Recorder appends audit entries and mirrors them to the structured log.
type Recorder struct {
	repo   adapter.ActionLogRepository
	logger *slog.Logger
}

// NewRecorder creates a new Recorder. A nil logger uses slog.Default.
func NewRecorder(repo adapter.ActionLogRepository, logger *slog.Logger) *Recorder {
	if logger == nil {
		logger = slog.Default()
	}
	return &Recorder{repo: repo, logger: logger}
}

// Record appends an entry. Failures are logged and swallowed.
func (r *Recorder) Record(ctx context.Context, userID *uuid.UUID, action entity.ActionName, details string) {
	entry := entity.NewUserActionLog(action, userID, details)

	level := entity.LogLevelInfo
	if ua, err := r.repo.FindActionByName(ctx, action); err == nil && ua != nil {
		level = ua.LogLevel
	}
	entry.LogLevel = level

	attrs := []any{"action", string(action), "details", entry.Details}
	if userID != nil {
		attrs = append(attrs, "user_id", userID.String())
	}
	if level == entity.LogLevelWarning {
		r.logger.WarnContext(ctx, "user action", attrs...)
	} else {
		r.logger.InfoContext(ctx, "user action", attrs...)
	}

	if err := r.repo.Create(ctx, entry); err != nil {
		r.logger.ErrorContext(ctx, "failed to store user action",
			"action", string(action), "error", err)
	}
}
