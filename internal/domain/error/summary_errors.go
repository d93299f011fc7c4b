// Package error defines domain-specific errors for the Budgy application.
package error

import "errors"

// Summary domain errors.
var (
	// ErrInvalidSummaryType is returned when the summary type is not a known transaction type.
	ErrInvalidSummaryType = errors.New("invalid summary type")

	// ErrInvalidSummaryMonth is returned when the month is not in YYYY-MM format.
	ErrInvalidSummaryMonth = errors.New("invalid summary month")
)

// SummaryErrorCode defines error codes for summary errors.
// Format: SUM-XXYYYY where XX is category and YYYY is specific error.
type SummaryErrorCode string

const (
	ErrCodeInvalidSummaryType  SummaryErrorCode = "SUM-010001"
	ErrCodeInvalidSummaryMonth SummaryErrorCode = "SUM-010002"
)

// SummaryError represents a summary error with code and message.
type SummaryError struct {
	Code    SummaryErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *SummaryError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *SummaryError) Unwrap() error {
	return e.Err
}

// NewSummaryError creates a new SummaryError with the given code and message.
func NewSummaryError(code SummaryErrorCode, message string, err error) *SummaryError {
	return &SummaryError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
