// Package entity defines the core business entities for the domain layer.
package entity

import "github.com/shopspring/decimal"

// TransactionType is the kind of money movement a category records.
// The set is fixed: it is seeded at startup and never edited at runtime.
type TransactionType string

const (
	TransactionTypeIncome      TransactionType = "income"
	TransactionTypeExpenditure TransactionType = "expenditure"
)

// TransactionTypes lists every supported transaction type in display order.
var TransactionTypes = []TransactionType{
	TransactionTypeIncome,
	TransactionTypeExpenditure,
}

// IsValid reports whether the type is one of the supported transaction types.
func (t TransactionType) IsValid() bool {
	return t == TransactionTypeIncome || t == TransactionTypeExpenditure
}

// DisplayName returns the human readable name of the type.
func (t TransactionType) DisplayName() string {
	switch t {
	case TransactionTypeIncome:
		return "Income"
	case TransactionTypeExpenditure:
		return "Expenditure"
	default:
		return string(t)
	}
}

// SignAmount applies the sign convention of the type to an amount.
// Expenditure is stored as a non-positive value and income as a
// non-negative one, regardless of the sign the caller supplied.
func (t TransactionType) SignAmount(amount decimal.Decimal) decimal.Decimal {
	abs := amount.Abs()
	if t == TransactionTypeExpenditure {
		return abs.Neg()
	}
	return abs
}

// DisplayAmount converts a stored amount to the value shown to users.
func (t TransactionType) DisplayAmount(amount decimal.Decimal) decimal.Decimal {
	if t == TransactionTypeExpenditure {
		return amount.Abs()
	}
	return amount
}
