// Package transaction contains transaction-related use cases.
package transaction

import (
	"bytes"
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/budgy/backend/internal/application/adapter"
	domainerror "github.com/budgy/backend/internal/domain/error"
)

// ExportTransactionsInput represents the input for exporting transactions.
type ExportTransactionsInput struct {
	UserID uuid.UUID
	Format adapter.ExportFormat
	Month  string
}

// ExportTransactionsOutput holds the rendered file.
type ExportTransactionsOutput struct {
	FileName    string
	ContentType string
	Content     []byte
}

// ExportTransactionsUseCase renders the actor's transactions to a file.
type ExportTransactionsUseCase struct {
	transactionRepo adapter.TransactionRepository
	exporter        adapter.TransactionExporter
}

// NewExportTransactionsUseCase creates a new ExportTransactionsUseCase instance.
func NewExportTransactionsUseCase(
	transactionRepo adapter.TransactionRepository,
	exporter adapter.TransactionExporter,
) *ExportTransactionsUseCase {
	return &ExportTransactionsUseCase{
		transactionRepo: transactionRepo,
		exporter:        exporter,
	}
}

// Execute performs the export.
func (uc *ExportTransactionsUseCase) Execute(ctx context.Context, input ExportTransactionsInput) (*ExportTransactionsOutput, error) {
	format := input.Format
	if format == "" {
		format = adapter.ExportFormatCSV
	}
	if !format.IsValid() {
		return nil, domainerror.NewTransactionError(
			domainerror.ErrCodeInvalidExportFormat,
			"format must be 'csv' or 'xlsx'",
			domainerror.ErrInvalidExportFormat,
		)
	}

	filter, err := buildFilter(input.UserID, input.Month, nil, nil)
	if err != nil {
		return nil, err
	}

	transactions, err := uc.transactionRepo.FindAllByFilter(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to load transactions: %w", err)
	}

	var buf bytes.Buffer
	if err := uc.exporter.Export(&buf, format, transactions); err != nil {
		return nil, fmt.Errorf("failed to export transactions: %w", err)
	}

	name := "transactions"
	if input.Month != "" {
		name += "-" + input.Month
	}

	return &ExportTransactionsOutput{
		FileName:    name + "." + string(format),
		ContentType: format.ContentType(),
		Content:     buf.Bytes(),
	}, nil
}
