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

// CreateTransactionInput represents the input for transaction creation.
// Amount may carry either sign; the category type decides the stored sign.
type CreateTransactionInput struct {
	UserID     uuid.UUID
	CategoryID uuid.UUID
	Date       time.Time
	Amount     decimal.Decimal
	Details    string
	Lat        *float64
	Lng        *float64
}

// CreateTransactionOutput represents the output of transaction creation.
type CreateTransactionOutput struct {
	Transaction *TransactionOutput
}

// CreateTransactionUseCase handles transaction creation logic.
type CreateTransactionUseCase struct {
	transactionRepo adapter.TransactionRepository
	categoryRepo    adapter.CategoryRepository
	cache           adapter.SummaryCache
	recorder        adapter.ActionRecorder
}

// NewCreateTransactionUseCase creates a new CreateTransactionUseCase instance.
func NewCreateTransactionUseCase(
	transactionRepo adapter.TransactionRepository,
	categoryRepo adapter.CategoryRepository,
	cache adapter.SummaryCache,
	recorder adapter.ActionRecorder,
) *CreateTransactionUseCase {
	return &CreateTransactionUseCase{
		transactionRepo: transactionRepo,
		categoryRepo:    categoryRepo,
		cache:           cache,
		recorder:        recorder,
	}
}

// Execute performs the transaction creation.
func (uc *CreateTransactionUseCase) Execute(ctx context.Context, input CreateTransactionInput) (*CreateTransactionOutput, error) {
	if err := validateDate(input.Date); err != nil {
		return nil, err
	}
	if err := validateAmount(input.Amount); err != nil {
		return nil, err
	}

	details := strings.TrimSpace(input.Details)
	if err := validateDetails(details); err != nil {
		return nil, err
	}

	location, err := buildLocation(input.Lat, input.Lng)
	if err != nil {
		return nil, err
	}

	category, err := resolveCategory(ctx, uc.categoryRepo, input.UserID, input.CategoryID)
	if err != nil {
		return nil, err
	}

	transaction := entity.NewTransaction(input.UserID, category, input.Date, input.Amount, details, location)

	if err := uc.transactionRepo.Create(ctx, transaction); err != nil {
		return nil, fmt.Errorf("failed to create transaction: %w", err)
	}

	invalidateSummaries(ctx, uc.cache, input.UserID)
	uc.recorder.Record(ctx, &input.UserID, entity.ActionTransactionAdded,
		fmt.Sprintf("%s %s on %s", category.Name, transaction.Amount.StringFixed(2), transaction.Date.Format(time.DateOnly)))

	return &CreateTransactionOutput{
		Transaction: toOutput(&entity.TransactionWithCategory{Transaction: transaction, Category: category}),
	}, nil
}
