// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"io"

	"github.com/budgy/backend/internal/domain/entity"
)

// ExportFormat is the file format of a transaction export.
type ExportFormat string

const (
	ExportFormatCSV  ExportFormat = "csv"
	ExportFormatXLSX ExportFormat = "xlsx"
)

// IsValid reports whether the format is supported.
func (f ExportFormat) IsValid() bool {
	return f == ExportFormatCSV || f == ExportFormatXLSX
}

// ContentType returns the MIME type of the format.
func (f ExportFormat) ContentType() string {
	if f == ExportFormatXLSX {
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	}
	return "text/csv"
}

// TransactionExporter writes transactions to a file format.
type TransactionExporter interface {
	Export(w io.Writer, format ExportFormat, transactions []*entity.TransactionWithCategory) error
}
