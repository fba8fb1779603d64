// Package error defines domain-specific errors for the personal finance tracker.
package error

import "errors"

// Budget domain errors.
var (
	// ErrBudgetNotFound is returned when no budget exists for the user and category.
	ErrBudgetNotFound = errors.New("budget not found")

	// ErrInvalidBudgetLimit is returned when the limit is negative or malformed.
	ErrInvalidBudgetLimit = errors.New("invalid budget limit")

	// ErrBudgetCategoryRequired is returned when the category is empty after normalization.
	ErrBudgetCategoryRequired = errors.New("budget category is required")
)

// BudgetErrorCode defines error codes for budget errors.
// Format: BDG-XXYYYY where XX is category and YYYY is specific error.
type BudgetErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeInvalidBudgetLimit     BudgetErrorCode = "BDG-010001"
	ErrCodeBudgetCategoryRequired BudgetErrorCode = "BDG-010002"
	ErrCodeMissingBudgetFields    BudgetErrorCode = "BDG-010003"
	ErrCodeBudgetLimitTooLarge    BudgetErrorCode = "BDG-010004"

	// Not found errors (02XXXX)
	ErrCodeBudgetNotFound BudgetErrorCode = "BDG-020001"
)

// BudgetError represents a budget error with code and message.
type BudgetError struct {
	Code    BudgetErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *BudgetError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *BudgetError) Unwrap() error {
	return e.Err
}

// NewBudgetError creates a new BudgetError with the given code and message.
func NewBudgetError(code BudgetErrorCode, message string, err error) *BudgetError {
	return &BudgetError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
