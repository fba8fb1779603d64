// Package error defines domain-specific errors for the personal finance tracker.
package error

import "errors"

// Statistics domain errors.
var (
	// ErrInvalidPage is returned when a requested page number is below one.
	ErrInvalidPage = errors.New("invalid page")

	// ErrInvalidPageSize is returned when a requested page size is out of range.
	ErrInvalidPageSize = errors.New("invalid page size")
)

// StatisticsErrorCode defines error codes for statistics errors.
// Format: STA-XXYYYY where XX is category and YYYY is specific error.
type StatisticsErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeInvalidPage     StatisticsErrorCode = "STA-010001"
	ErrCodeInvalidPageSize StatisticsErrorCode = "STA-010002"
)

// StatisticsError represents a statistics error with code and message.
type StatisticsError struct {
	Code    StatisticsErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *StatisticsError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *StatisticsError) Unwrap() error {
	return e.Err
}

// NewStatisticsError creates a new StatisticsError with the given code and message.
func NewStatisticsError(code StatisticsErrorCode, message string, err error) *StatisticsError {
	return &StatisticsError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
