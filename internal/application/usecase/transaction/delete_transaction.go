// Package transaction contains transaction-related use cases.
package transaction

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/budgy/backend/internal/application/adapter"
	"github.com/budgy/backend/internal/domain/entity"
)

// DeleteTransactionInput represents the input for transaction deletion.
type DeleteTransactionInput struct {
	TransactionID uuid.UUID
	UserID        uuid.UUID
}

// DeleteTransactionUseCase removes a transaction and its attachment.
type DeleteTransactionUseCase struct {
	transactionRepo adapter.TransactionRepository
	storage         adapter.AttachmentStorage
	cache           adapter.SummaryCache
	recorder        adapter.ActionRecorder
}

// NewDeleteTransactionUseCase creates a new DeleteTransactionUseCase instance.
func NewDeleteTransactionUseCase(
	transactionRepo adapter.TransactionRepository,
	storage adapter.AttachmentStorage,
	cache adapter.SummaryCache,
	recorder adapter.ActionRecorder,
) *DeleteTransactionUseCase {
	return &DeleteTransactionUseCase{
		transactionRepo: transactionRepo,
		storage:         storage,
		cache:           cache,
		recorder:        recorder,
	}
}

// Execute performs the transaction deletion.
func (uc *DeleteTransactionUseCase) Execute(ctx context.Context, input DeleteTransactionInput) error {
	twc, err := findOwned(ctx, uc.transactionRepo, input.UserID, input.TransactionID)
	if err != nil {
		return err
	}
	transaction := twc.Transaction

	if err := uc.transactionRepo.Delete(ctx, transaction.ID); err != nil {
		return fmt.Errorf("failed to delete transaction: %w", err)
	}

	if transaction.HasAttachment() {
		if err := uc.storage.Delete(ctx, transaction.AttachmentKey); err != nil {
			slog.WarnContext(ctx, "failed to remove attachment of deleted transaction",
				"transaction_id", transaction.ID.String(), "error", err)
		}
	}

	invalidateSummaries(ctx, uc.cache, input.UserID)
	uc.recorder.Record(ctx, &input.UserID, entity.ActionTransactionDeleted, transaction.ID.String())

	return nil
}
