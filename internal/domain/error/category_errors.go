// Package error defines domain-specific errors for the Budgy application.
package error

import "errors"

// Category domain errors.
var (
	// ErrCategoryNotFound is returned when a category is not found in the system.
	ErrCategoryNotFound = errors.New("category not found")

	// ErrCategoryNameExists is returned when attempting to create a category with an existing name.
	ErrCategoryNameExists = errors.New("category name already exists")

	// ErrCategoryNameTooLong is returned when the category name exceeds the maximum length.
	ErrCategoryNameTooLong = errors.New("category name too long")

	// ErrNotAuthorizedToModifyCategory is returned when user is not authorized to access a category.
	ErrNotAuthorizedToModifyCategory = errors.New("not authorized to modify category")

	// ErrDefaultCategoryReadOnly is returned when a default category is modified or deleted.
	ErrDefaultCategoryReadOnly = errors.New("default categories cannot be modified")

	// ErrInvalidCategoryType is returned when the category type is invalid.
	ErrInvalidCategoryType = errors.New("invalid category type")
)

// CategoryErrorCode defines error codes for category errors.
// Format: CAT-XXYYYY where XX is category and YYYY is specific error.
type CategoryErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeCategoryNameTooLong     CategoryErrorCode = "CAT-010001"
	ErrCodeCategoryNotFound        CategoryErrorCode = "CAT-010004"
	ErrCodeCategoryNameExists      CategoryErrorCode = "CAT-010005"
	ErrCodeNotAuthorizedCategory   CategoryErrorCode = "CAT-010006"
	ErrCodeInvalidCategoryType     CategoryErrorCode = "CAT-010007"
	ErrCodeMissingCategoryFields   CategoryErrorCode = "CAT-010008"
	ErrCodeDefaultCategoryReadOnly CategoryErrorCode = "CAT-010009"
)

// CategoryError represents a category error with code and message.
type CategoryError struct {
	Code    CategoryErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *CategoryError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *CategoryError) Unwrap() error {
	return e.Err
}

// NewCategoryError creates a new CategoryError with the given code and message.
func NewCategoryError(code CategoryErrorCode, message string, err error) *CategoryError {
	return &CategoryError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
