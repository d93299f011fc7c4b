package adapters

import (
	"bytes"
	"encoding/csv"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/budgy/backend/internal/application/adapter"
	"github.com/budgy/backend/internal/domain/entity"
)

func exportFixture() []*entity.TransactionWithCategory {
	userID := uuid.New()
	food := entity.NewDefaultCategory("Food", entity.TransactionTypeExpenditure)
	salary := entity.NewDefaultCategory("Salary", entity.TransactionTypeIncome)
	day := time.Date(2026, 3, 5, 0, 0, 0, 0, time.UTC)

	lunch := entity.NewTransaction(userID, food, day, decimal.RequireFromString("12.5"), "Lunch, with friends", nil)
	pay := entity.NewTransaction(userID, salary, day, decimal.NewFromInt(3000), "", nil)

	return []*entity.TransactionWithCategory{
		{Transaction: lunch, Category: food},
		{Transaction: pay, Category: salary},
	}
}

func TestTransactionExporter_CSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewTransactionExporter().Export(&buf, adapter.ExportFormatCSV, exportFixture()))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)

	assert.Equal(t, exportHeaders, records[0])
	assert.Equal(t, []string{"2026-03-05", "Expenditure", "Food", "12.50", "Lunch, with friends", ""}, records[1])
	assert.Equal(t, "3000.00", records[2][3])
}

func TestTransactionExporter_XLSX(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewTransactionExporter().Export(&buf, adapter.ExportFormatXLSX, exportFixture()))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(exportSheetName)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "Date", rows[0][0])
	assert.Equal(t, "Food", rows[1][2])
	assert.Equal(t, "12.5", rows[1][3])
}

func TestTransactionExporter_UnknownFormat(t *testing.T) {
	var buf bytes.Buffer
	assert.Error(t, NewTransactionExporter().Export(&buf, "pdf", exportFixture()))
}
