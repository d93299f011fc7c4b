// Package adapters implements adapter interfaces from the application layer.
package adapters

import (
	"encoding/csv"
	"fmt"
	"io"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/budgy/backend/internal/application/adapter"
	"github.com/budgy/backend/internal/domain/entity"
)

const exportSheetName = "Transactions"

var exportHeaders = []string{"Date", "Type", "Category", "Amount", "Details", "Attachment"}

// transactionExporter renders transactions as CSV or XLSX.
type transactionExporter struct{}

// NewTransactionExporter creates a new exporter.
func NewTransactionExporter() adapter.TransactionExporter {
	return transactionExporter{}
}

// Export writes the transactions in the requested format.
func (e transactionExporter) Export(w io.Writer, format adapter.ExportFormat, transactions []*entity.TransactionWithCategory) error {
	switch format {
	case adapter.ExportFormatCSV:
		return e.exportCSV(w, transactions)
	case adapter.ExportFormatXLSX:
		return e.exportXLSX(w, transactions)
	default:
		return fmt.Errorf("unsupported export format %q", format)
	}
}

func (transactionExporter) exportCSV(w io.Writer, transactions []*entity.TransactionWithCategory) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(exportHeaders); err != nil {
		return err
	}
	for _, twc := range transactions {
		if err := writer.Write(exportRow(twc)); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

func (transactionExporter) exportXLSX(w io.Writer, transactions []*entity.TransactionWithCategory) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", exportSheetName); err != nil {
		return err
	}

	for i, h := range exportHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(exportSheetName, cell, h); err != nil {
			return err
		}
	}

	for idx, twc := range transactions {
		row := idx + 2
		values := exportRow(twc)
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row)
			var value any = v
			// Amounts are written as numbers so spreadsheets can sum them
			if col == 3 {
				value = twc.DisplayAmount().InexactFloat64()
			}
			if err := f.SetCellValue(exportSheetName, cell, value); err != nil {
				return err
			}
		}
	}

	_ = f.SetColWidth(exportSheetName, "A", "A", 12)
	_ = f.SetColWidth(exportSheetName, "B", "B", 12)
	_ = f.SetColWidth(exportSheetName, "C", "C", 20)
	_ = f.SetColWidth(exportSheetName, "D", "D", 12)
	_ = f.SetColWidth(exportSheetName, "E", "E", 40)
	_ = f.SetColWidth(exportSheetName, "F", "F", 20)

	return f.Write(w)
}

func exportRow(twc *entity.TransactionWithCategory) []string {
	categoryName, typeName := "", ""
	if twc.Category != nil {
		categoryName = twc.Category.Name
		typeName = twc.Category.Type.DisplayName()
	}
	return []string{
		twc.Transaction.Date.Format(time.DateOnly),
		typeName,
		categoryName,
		twc.DisplayAmount().StringFixed(2),
		twc.Transaction.Details,
		twc.Transaction.AttachmentName,
	}
}
