// Package auth contains authentication-related use cases.
package auth

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/budgy/backend/internal/application/adapter"
	"github.com/budgy/backend/internal/domain/entity"
	domainerror "github.com/budgy/backend/internal/domain/error"
)

// DeleteAccountInput represents the input for account deletion.
type DeleteAccountInput struct {
	UserID       uuid.UUID
	Password     string
	Confirmation string
}

// DeleteAccountOutput represents the output of account deletion.
type DeleteAccountOutput struct {
	Success bool
}

// DeleteAccountUseCase removes a user and everything they own.
type DeleteAccountUseCase struct {
	userRepo        adapter.UserRepository
	passwordService adapter.PasswordService
	storage         adapter.AttachmentStorage
	cache           adapter.SummaryCache
	recorder        adapter.ActionRecorder
}

// NewDeleteAccountUseCase creates a new DeleteAccountUseCase instance.
func NewDeleteAccountUseCase(
	userRepo adapter.UserRepository,
	passwordService adapter.PasswordService,
	storage adapter.AttachmentStorage,
	cache adapter.SummaryCache,
	recorder adapter.ActionRecorder,
) *DeleteAccountUseCase {
	return &DeleteAccountUseCase{
		userRepo:        userRepo,
		passwordService: passwordService,
		storage:         storage,
		cache:           cache,
		recorder:        recorder,
	}
}

// Execute performs the account deletion.
func (uc *DeleteAccountUseCase) Execute(ctx context.Context, input DeleteAccountInput) (*DeleteAccountOutput, error) {
	// Confirmation is optional, clients may validate it in the UI
	if input.Confirmation != "" && input.Confirmation != "DELETE" {
		return nil, domainerror.NewAuthError(
			domainerror.ErrCodeInvalidConfirmation,
			"confirmation must be exactly 'DELETE'",
			nil,
		)
	}

	user, err := uc.userRepo.FindByID(ctx, input.UserID)
	if err != nil {
		return nil, domainerror.NewAuthError(
			domainerror.ErrCodeUserNotFound,
			"user not found",
			err,
		)
	}

	if err := uc.passwordService.VerifyPassword(user.PasswordHash, input.Password); err != nil {
		return nil, domainerror.NewAuthError(
			domainerror.ErrCodeInvalidCredentials,
			"invalid password",
			domainerror.ErrInvalidCredentials,
		)
	}

	// Categories, transactions and refresh tokens go in one database transaction
	if err := uc.userRepo.DeleteCascade(ctx, input.UserID); err != nil {
		return nil, fmt.Errorf("failed to delete user: %w", err)
	}

	if err := uc.storage.DeleteAllForUser(ctx, input.UserID); err != nil {
		slog.ErrorContext(ctx, "failed to remove attachments of deleted user",
			"user_id", input.UserID.String(), "error", err)
	}

	if err := uc.cache.InvalidateUser(ctx, input.UserID); err != nil {
		slog.WarnContext(ctx, "failed to invalidate summary cache", "user_id", input.UserID.String(), "error", err)
	}

	uc.recorder.Record(ctx, nil, entity.ActionAccountDeleted, user.Email)

	return &DeleteAccountOutput{
		Success: true,
	}, nil
}
