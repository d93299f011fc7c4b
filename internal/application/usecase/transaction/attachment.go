// Package transaction contains transaction-related use cases.
package transaction

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/budgy/backend/internal/application/adapter"
	"github.com/budgy/backend/internal/domain/entity"
	domainerror "github.com/budgy/backend/internal/domain/error"
)

// UploadAttachmentInput represents an uploaded file for a transaction.
type UploadAttachmentInput struct {
	UserID        uuid.UUID
	TransactionID uuid.UUID
	FileName      string
	Size          int64
	Content       io.Reader
}

// UploadAttachmentUseCase stores a file and links it to a transaction.
// An existing attachment is replaced.
type UploadAttachmentUseCase struct {
	transactionRepo adapter.TransactionRepository
	storage         adapter.AttachmentStorage
	recorder        adapter.ActionRecorder
	maxBytes        int64
}

// NewUploadAttachmentUseCase creates a new UploadAttachmentUseCase instance.
func NewUploadAttachmentUseCase(
	transactionRepo adapter.TransactionRepository,
	storage adapter.AttachmentStorage,
	recorder adapter.ActionRecorder,
	maxBytes int64,
) *UploadAttachmentUseCase {
	return &UploadAttachmentUseCase{
		transactionRepo: transactionRepo,
		storage:         storage,
		recorder:        recorder,
		maxBytes:        maxBytes,
	}
}

// Execute stores the attachment.
func (uc *UploadAttachmentUseCase) Execute(ctx context.Context, input UploadAttachmentInput) (*TransactionOutput, error) {
	if input.Content == nil || input.FileName == "" {
		return nil, domainerror.NewTransactionError(
			domainerror.ErrCodeMissingAttachment,
			"a file is required",
			nil,
		)
	}
	if uc.maxBytes > 0 && input.Size > uc.maxBytes {
		return nil, domainerror.NewTransactionError(
			domainerror.ErrCodeAttachmentTooLarge,
			fmt.Sprintf("attachment must not exceed %d bytes", uc.maxBytes),
			domainerror.ErrAttachmentTooLarge,
		)
	}

	twc, err := findOwned(ctx, uc.transactionRepo, input.UserID, input.TransactionID)
	if err != nil {
		return nil, err
	}
	transaction := twc.Transaction
	previousKey := transaction.AttachmentKey

	key, err := uc.storage.Save(ctx, input.UserID, transaction.ID, input.FileName, input.Content)
	if err != nil {
		return nil, fmt.Errorf("failed to store attachment: %w", err)
	}

	transaction.SetAttachment(input.FileName, key, time.Now())
	if err := uc.transactionRepo.Update(ctx, transaction); err != nil {
		// The stored row still references previousKey.
		if key != previousKey {
			_ = uc.storage.Delete(ctx, key)
		}
		return nil, fmt.Errorf("failed to update transaction: %w", err)
	}

	if previousKey != "" && previousKey != key {
		if err := uc.storage.Delete(ctx, previousKey); err != nil {
			slog.WarnContext(ctx, "failed to remove replaced attachment", "key", previousKey, "error", err)
		}
	}

	uc.recorder.Record(ctx, &input.UserID, entity.ActionTransactionChanged, "attachment "+input.FileName)

	return toOutput(twc), nil
}

// DownloadAttachmentInput identifies an attachment to read.
type DownloadAttachmentInput struct {
	UserID        uuid.UUID
	TransactionID uuid.UUID
}

// DownloadAttachmentOutput streams an attachment.
// The caller must close Content.
type DownloadAttachmentOutput struct {
	FileName string
	Content  io.ReadCloser
}

// DownloadAttachmentUseCase opens the attachment of a transaction.
type DownloadAttachmentUseCase struct {
	transactionRepo adapter.TransactionRepository
	storage         adapter.AttachmentStorage
}

// NewDownloadAttachmentUseCase creates a new DownloadAttachmentUseCase instance.
func NewDownloadAttachmentUseCase(
	transactionRepo adapter.TransactionRepository,
	storage adapter.AttachmentStorage,
) *DownloadAttachmentUseCase {
	return &DownloadAttachmentUseCase{
		transactionRepo: transactionRepo,
		storage:         storage,
	}
}

// Execute opens the attachment.
func (uc *DownloadAttachmentUseCase) Execute(ctx context.Context, input DownloadAttachmentInput) (*DownloadAttachmentOutput, error) {
	twc, err := findOwned(ctx, uc.transactionRepo, input.UserID, input.TransactionID)
	if err != nil {
		return nil, err
	}
	if !twc.Transaction.HasAttachment() {
		return nil, attachmentNotFound()
	}

	content, err := uc.storage.Open(ctx, twc.Transaction.AttachmentKey)
	if err != nil {
		return nil, domainerror.NewTransactionError(
			domainerror.ErrCodeAttachmentNotFound,
			"attachment not found",
			err,
		)
	}

	return &DownloadAttachmentOutput{
		FileName: twc.Transaction.AttachmentName,
		Content:  content,
	}, nil
}

// RemoveAttachmentInput identifies an attachment to remove.
type RemoveAttachmentInput struct {
	UserID        uuid.UUID
	TransactionID uuid.UUID
}

// RemoveAttachmentUseCase unlinks and deletes an attachment.
type RemoveAttachmentUseCase struct {
	transactionRepo adapter.TransactionRepository
	storage         adapter.AttachmentStorage
	recorder        adapter.ActionRecorder
}

// NewRemoveAttachmentUseCase creates a new RemoveAttachmentUseCase instance.
func NewRemoveAttachmentUseCase(
	transactionRepo adapter.TransactionRepository,
	storage adapter.AttachmentStorage,
	recorder adapter.ActionRecorder,
) *RemoveAttachmentUseCase {
	return &RemoveAttachmentUseCase{
		transactionRepo: transactionRepo,
		storage:         storage,
		recorder:        recorder,
	}
}

// Execute removes the attachment.
func (uc *RemoveAttachmentUseCase) Execute(ctx context.Context, input RemoveAttachmentInput) error {
	twc, err := findOwned(ctx, uc.transactionRepo, input.UserID, input.TransactionID)
	if err != nil {
		return err
	}
	transaction := twc.Transaction
	if !transaction.HasAttachment() {
		return attachmentNotFound()
	}

	key := transaction.AttachmentKey
	transaction.ClearAttachment(time.Now())
	if err := uc.transactionRepo.Update(ctx, transaction); err != nil {
		return fmt.Errorf("failed to update transaction: %w", err)
	}

	if err := uc.storage.Delete(ctx, key); err != nil {
		slog.WarnContext(ctx, "failed to remove attachment file", "key", key, "error", err)
	}

	uc.recorder.Record(ctx, &input.UserID, entity.ActionTransactionChanged, "attachment removed")
	return nil
}

func attachmentNotFound() error {
	return domainerror.NewTransactionError(
		domainerror.ErrCodeAttachmentNotFound,
		"transaction has no attachment",
		domainerror.ErrAttachmentNotFound,
	)
}
