// Package transaction contains transaction-related use cases.
package transaction

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/budgy/backend/internal/application/adapter"
	"github.com/budgy/backend/internal/domain/entity"
	domainerror "github.com/budgy/backend/internal/domain/error"
)

// ListTransactionsInput represents the input for listing transactions.
// Month is an optional YYYY-MM filter.
type ListTransactionsInput struct {
	UserID     uuid.UUID
	Month      string
	CategoryID *uuid.UUID
	Type       *entity.TransactionType
	Page       int
	Limit      int
}

// ListTransactionsOutput represents the output of listing transactions.
type ListTransactionsOutput struct {
	Transactions []*TransactionOutput
	Pagination   PaginationOutput
}

// ListTransactionsUseCase handles listing transactions logic.
type ListTransactionsUseCase struct {
	transactionRepo adapter.TransactionRepository
}

// NewListTransactionsUseCase creates a new ListTransactionsUseCase instance.
func NewListTransactionsUseCase(transactionRepo adapter.TransactionRepository) *ListTransactionsUseCase {
	return &ListTransactionsUseCase{
		transactionRepo: transactionRepo,
	}
}

// Execute performs the transaction listing.
func (uc *ListTransactionsUseCase) Execute(ctx context.Context, input ListTransactionsInput) (*ListTransactionsOutput, error) {
	filter, err := buildFilter(input.UserID, input.Month, input.CategoryID, input.Type)
	if err != nil {
		return nil, err
	}

	result, err := uc.transactionRepo.FindByFilter(ctx, filter, normalizePagination(input.Page, input.Limit))
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}

	output := &ListTransactionsOutput{
		Transactions: make([]*TransactionOutput, len(result.Transactions)),
		Pagination: PaginationOutput{
			Page:       result.Page,
			Limit:      result.Limit,
			Total:      result.Total,
			TotalPages: result.TotalPages,
		},
	}
	for i, twc := range result.Transactions {
		output.Transactions[i] = toOutput(twc)
	}

	return output, nil
}

// buildFilter scopes every query to the actor.
func buildFilter(userID uuid.UUID, month string, categoryID *uuid.UUID, txnType *entity.TransactionType) (adapter.TransactionFilter, error) {
	filter := adapter.TransactionFilter{
		UserID:     userID,
		CategoryID: categoryID,
		Type:       txnType,
	}

	if txnType != nil && !txnType.IsValid() {
		return filter, domainerror.NewTransactionError(
			domainerror.ErrCodeInvalidTransactionType,
			"type must be 'income' or 'expenditure'",
			domainerror.ErrInvalidTransactionType,
		)
	}

	if month != "" {
		start, err := ParseMonth(month)
		if err != nil {
			return filter, err
		}
		start, end := entity.MonthBounds(start)
		filter.StartDate = &start
		filter.EndDate = &end
	}

	return filter, nil
}
