// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// MonthLayout is the wire format of a calendar month.
const MonthLayout = "2006-01"

// CategoryAmount is the aggregate of one category within a month.
type CategoryAmount struct {
	CategoryID       uuid.UUID       `json:"category_id"`
	CategoryName     string          `json:"category_name"`
	Amount           decimal.Decimal `json:"amount"`
	TransactionCount int             `json:"transaction_count"`
}

// MonthlySummary holds per-category totals for one user, type and month.
type MonthlySummary struct {
	Type  TransactionType  `json:"type"`
	Month time.Time        `json:"month"`
	Items []CategoryAmount `json:"items"`
	Total decimal.Decimal  `json:"total"`
}

// MonthBounds returns the half-open interval [start, end) of the month containing t.
func MonthBounds(t time.Time) (start, end time.Time) {
	t = t.UTC()
	start = time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
	end = start.AddDate(0, 1, 0)
	return start, end
}
