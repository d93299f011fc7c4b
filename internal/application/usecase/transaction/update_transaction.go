// Package transaction contains transaction-related use cases.
package transaction

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/budgy/backend/internal/application/adapter"
	"github.com/budgy/backend/internal/domain/entity"
)

// UpdateTransactionInput represents the input for transaction update.
// Nil fields are left unchanged.
type UpdateTransactionInput struct {
	TransactionID uuid.UUID
	UserID        uuid.UUID
	CategoryID    *uuid.UUID
	Date          *time.Time
	Amount        *decimal.Decimal
	Details       *string
	Lat           *float64
	Lng           *float64
	ClearLocation bool
}

// UpdateTransactionOutput represents the output of transaction update.
type UpdateTransactionOutput struct {
	Transaction *TransactionOutput
}

// UpdateTransactionUseCase handles transaction update logic.
type UpdateTransactionUseCase struct {
	transactionRepo adapter.TransactionRepository
	categoryRepo    adapter.CategoryRepository
	cache           adapter.SummaryCache
	recorder        adapter.ActionRecorder
}

// NewUpdateTransactionUseCase creates a new UpdateTransactionUseCase instance.
func NewUpdateTransactionUseCase(
	transactionRepo adapter.TransactionRepository,
	categoryRepo adapter.CategoryRepository,
	cache adapter.SummaryCache,
	recorder adapter.ActionRecorder,
) *UpdateTransactionUseCase {
	return &UpdateTransactionUseCase{
		transactionRepo: transactionRepo,
		categoryRepo:    categoryRepo,
		cache:           cache,
		recorder:        recorder,
	}
}

// Execute performs the transaction update.
func (uc *UpdateTransactionUseCase) Execute(ctx context.Context, input UpdateTransactionInput) (*UpdateTransactionOutput, error) {
	twc, err := findOwned(ctx, uc.transactionRepo, input.UserID, input.TransactionID)
	if err != nil {
		return nil, err
	}
	transaction := twc.Transaction
	category := twc.Category

	// A deleted category stays on the transaction unless a new one is chosen
	if input.CategoryID != nil && *input.CategoryID != transaction.CategoryID {
		category, err = resolveCategory(ctx, uc.categoryRepo, input.UserID, *input.CategoryID)
		if err != nil {
			return nil, err
		}
		transaction.CategoryID = category.ID
	}

	amount := transaction.Amount
	if input.Amount != nil {
		if err := validateAmount(*input.Amount); err != nil {
			return nil, err
		}
		amount = *input.Amount
	}
	if category != nil {
		amount = category.Type.SignAmount(amount)
	}
	transaction.Amount = amount

	if input.Date != nil {
		if err := validateDate(*input.Date); err != nil {
			return nil, err
		}
		transaction.Date = entity.TruncateToDay(*input.Date)
	}

	if input.Details != nil {
		details := strings.TrimSpace(*input.Details)
		if err := validateDetails(details); err != nil {
			return nil, err
		}
		transaction.Details = details
	}

	if input.ClearLocation {
		transaction.Location = nil
	} else if input.Lat != nil || input.Lng != nil {
		location, err := buildLocation(input.Lat, input.Lng)
		if err != nil {
			return nil, err
		}
		transaction.Location = location
	}

	transaction.ModifiedAt = time.Now().UTC()

	if err := uc.transactionRepo.Update(ctx, transaction); err != nil {
		return nil, fmt.Errorf("failed to update transaction: %w", err)
	}

	invalidateSummaries(ctx, uc.cache, input.UserID)
	uc.recorder.Record(ctx, &input.UserID, entity.ActionTransactionChanged, transaction.ID.String())

	return &UpdateTransactionOutput{
		Transaction: toOutput(&entity.TransactionWithCategory{Transaction: transaction, Category: category}),
	}, nil
}
