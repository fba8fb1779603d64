// Package error defines domain-specific errors for the personal finance tracker.
package error

import "errors"

// Transaction domain errors.
var (
	// ErrTransactionNotFound is returned when a transaction does not exist or belongs to another user.
	ErrTransactionNotFound = errors.New("transaction not found")

	// ErrInvalidTransactionType is returned when the transaction type is invalid.
	ErrInvalidTransactionType = errors.New("invalid transaction type")

	// ErrInvalidTransactionDate is returned when the transaction date is invalid.
	ErrInvalidTransactionDate = errors.New("invalid transaction date")

	// ErrInvalidTransactionAmount is returned when the transaction amount is negative or malformed.
	ErrInvalidTransactionAmount = errors.New("invalid transaction amount")

	// ErrCategoryRequired is returned when the category is empty after normalization.
	ErrCategoryRequired = errors.New("category is required")

	// ErrCategoryTooLong is returned when the category exceeds the maximum length.
	ErrCategoryTooLong = errors.New("category too long")

	// ErrDescriptionTooLong is returned when the transaction description exceeds the maximum length.
	ErrDescriptionTooLong = errors.New("description too long")

	// ErrNoFieldsToUpdate is returned when an edit carries no field to change.
	ErrNoFieldsToUpdate = errors.New("no fields to update")

	// ErrInvalidDateRange is returned when a list filter start date is after its end date.
	ErrInvalidDateRange = errors.New("invalid date range")
)

// TransactionErrorCode defines error codes for transaction errors.
// Format: TXN-XXYYYY where XX is category and YYYY is specific error.
type TransactionErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeInvalidTransactionType   TransactionErrorCode = "TXN-010001"
	ErrCodeInvalidTransactionDate   TransactionErrorCode = "TXN-010002"
	ErrCodeInvalidTransactionAmount TransactionErrorCode = "TXN-010003"
	ErrCodeCategoryRequired         TransactionErrorCode = "TXN-010004"
	ErrCodeDescriptionTooLong       TransactionErrorCode = "TXN-010005"
	ErrCodeMissingTransactionFields TransactionErrorCode = "TXN-010006"
	ErrCodeNoFieldsToUpdate         TransactionErrorCode = "TXN-010007"
	ErrCodeInvalidDateRange         TransactionErrorCode = "TXN-010008"
	ErrCodeAmountTooLarge           TransactionErrorCode = "TXN-010009"
	ErrCodeCategoryTooLong          TransactionErrorCode = "TXN-010010"

	// Not found errors (02XXXX)
	ErrCodeTransactionNotFound TransactionErrorCode = "TXN-020001"
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
