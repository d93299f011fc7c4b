// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// GeoLocation is the point where a transaction was recorded.
type GeoLocation struct {
	Lat float64
	Lng float64
}

// IsValid reports whether both coordinates are within range.
func (g GeoLocation) IsValid() bool {
	return g.Lat >= -90 && g.Lat <= 90 && g.Lng >= -180 && g.Lng <= 180
}

// Transaction represents a financial transaction in the Budgy system.
type Transaction struct {
	ID             uuid.UUID
	UserID         uuid.UUID
	CategoryID     uuid.UUID
	Date           time.Time
	Amount         decimal.Decimal // Negative for expenditure, positive for income
	Details        string
	AttachmentName string
	AttachmentKey  string // Storage key of the uploaded file
	Location       *GeoLocation
	CreatedAt      time.Time
	ModifiedAt     time.Time
}

// NewTransaction creates a new Transaction entity.
// The amount is signed according to the category type.
func NewTransaction(
	userID uuid.UUID,
	category *Category,
	date time.Time,
	amount decimal.Decimal,
	details string,
	location *GeoLocation,
) *Transaction {
	now := time.Now().UTC()

	return &Transaction{
		ID:         uuid.New(),
		UserID:     userID,
		CategoryID: category.ID,
		Date:       TruncateToDay(date),
		Amount:     category.Type.SignAmount(amount),
		Details:    details,
		Location:   location,
		CreatedAt:  now,
		ModifiedAt: now,
	}
}

// IsOwnedBy reports whether the transaction belongs to the given user.
func (t *Transaction) IsOwnedBy(userID uuid.UUID) bool {
	return t.UserID == userID
}

// HasAttachment reports whether a file is attached to the transaction.
func (t *Transaction) HasAttachment() bool {
	return t.AttachmentKey != ""
}

// SetAttachment records an uploaded file on the transaction.
func (t *Transaction) SetAttachment(name, key string, at time.Time) {
	t.AttachmentName = name
	t.AttachmentKey = key
	t.ModifiedAt = at.UTC()
}

// ClearAttachment removes the attachment reference.
func (t *Transaction) ClearAttachment(at time.Time) {
	t.AttachmentName = ""
	t.AttachmentKey = ""
	t.ModifiedAt = at.UTC()
}

// TransactionWithCategory represents a transaction with its associated category.
type TransactionWithCategory struct {
	Transaction *Transaction
	Category    *Category
}

// DisplayAmount returns the amount as shown to users.
func (t *TransactionWithCategory) DisplayAmount() decimal.Decimal {
	if t.Category == nil {
		return t.Transaction.Amount
	}
	return t.Category.Type.DisplayAmount(t.Transaction.Amount)
}

// TruncateToDay drops the time-of-day component in UTC.
func TruncateToDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
