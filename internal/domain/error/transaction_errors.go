// Package error defines domain-specific errors for the Budgy application.
package error

import "errors"

// Transaction domain errors.
var (
	// ErrTransactionNotFound is returned when a transaction is not found in the system.
	ErrTransactionNotFound = errors.New("transaction not found")

	// ErrNotAuthorizedToModifyTransaction is returned when user is not authorized to access a transaction.
	ErrNotAuthorizedToModifyTransaction = errors.New("not authorized to modify transaction")

	// ErrInvalidTransactionType is returned when the transaction type is invalid.
	ErrInvalidTransactionType = errors.New("invalid transaction type")

	// ErrInvalidTransactionDate is returned when the transaction date is invalid.
	ErrInvalidTransactionDate = errors.New("invalid transaction date")

	// ErrInvalidTransactionAmount is returned when the transaction amount is invalid.
	ErrInvalidTransactionAmount = errors.New("invalid transaction amount")

	// ErrCategoryNotFoundForTransaction is returned when the specified category is not found.
	ErrCategoryNotFoundForTransaction = errors.New("category not found")

	// ErrCategoryNotOwnedByUser is returned when the category does not belong to the user.
	ErrCategoryNotOwnedByUser = errors.New("category does not belong to user")

	// ErrCategoryDeleted is returned when a soft-deleted category is assigned to a transaction.
	ErrCategoryDeleted = errors.New("category has been deleted")

	// ErrDetailsTooLong is returned when the transaction details exceed the maximum length.
	ErrDetailsTooLong = errors.New("details too long")

	// ErrInvalidGeoLocation is returned when the coordinates are out of range or incomplete.
	ErrInvalidGeoLocation = errors.New("invalid geo location")

	// ErrAttachmentNotFound is returned when the transaction has no attachment.
	ErrAttachmentNotFound = errors.New("attachment not found")

	// ErrAttachmentTooLarge is returned when an uploaded file exceeds the size limit.
	ErrAttachmentTooLarge = errors.New("attachment too large")

	// ErrInvalidExportFormat is returned when an unsupported export format is requested.
	ErrInvalidExportFormat = errors.New("invalid export format")

	// ErrInvalidMonth is returned when a month filter is not in YYYY-MM format.
	ErrInvalidMonth = errors.New("invalid month")
)

// TransactionErrorCode defines error codes for transaction errors.
// Format: TXN-XXYYYY where XX is category and YYYY is specific error.
type TransactionErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeInvalidTransactionType   TransactionErrorCode = "TXN-010001"
	ErrCodeInvalidTransactionDate   TransactionErrorCode = "TXN-010002"
	ErrCodeInvalidTransactionAmount TransactionErrorCode = "TXN-010003"
	ErrCodeTransactionNotFound      TransactionErrorCode = "TXN-010004"
	ErrCodeNotAuthorizedTransaction TransactionErrorCode = "TXN-010005"
	ErrCodeTxnCategoryNotFound      TransactionErrorCode = "TXN-010006"
	ErrCodeTxnCategoryNotOwned      TransactionErrorCode = "TXN-010007"
	ErrCodeDetailsTooLong           TransactionErrorCode = "TXN-010008"
	ErrCodeMissingTransactionFields TransactionErrorCode = "TXN-010010"
	ErrCodeTxnCategoryDeleted       TransactionErrorCode = "TXN-010011"
	ErrCodeInvalidGeoLocation       TransactionErrorCode = "TXN-010012"
	ErrCodeInvalidMonth             TransactionErrorCode = "TXN-010013"

	// Attachment errors (02XXXX)
	ErrCodeAttachmentNotFound TransactionErrorCode = "TXN-020001"
	ErrCodeAttachmentTooLarge TransactionErrorCode = "TXN-020002"
	ErrCodeMissingAttachment  TransactionErrorCode = "TXN-020003"

	// Export errors (03XXXX)
	ErrCodeInvalidExportFormat TransactionErrorCode = "TXN-030001"
)

// TransactionError represents a transaction error with code and message.
type TransactionError struct {
	Code    TransactionErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *TransactionError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *TransactionError) Unwrap() error {
	return e.Err
}

// NewTransactionError creates a new TransactionError with the given code and message.
func NewTransactionError(code TransactionErrorCode, message string, err error) *TransactionError {
	return &TransactionError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
