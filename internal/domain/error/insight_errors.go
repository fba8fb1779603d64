// Package error defines domain-specific errors for the personal finance tracker.
package error

import "errors"

// Insight domain errors.
var (
	// ErrInsightNotConfigured is returned when no generative service is configured.
	ErrInsightNotConfigured = errors.New("insight service not configured")

	// ErrInsightUpstream is returned when the generative service fails or times out.
	ErrInsightUpstream = errors.New("insight service unavailable")

	// ErrEmptyInsight is returned when the generative service answers without text.
	ErrEmptyInsight = errors.New("insight service returned no text")

	// ErrSummaryTooLong is returned when the submitted category summary is too long.
	ErrSummaryTooLong = errors.New("summary too long")
)

// InsightErrorCode defines error codes for insight errors.
// Format: INS-XXYYYY where XX is category and YYYY is specific error.
type InsightErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeSummaryTooLong        InsightErrorCode = "INS-010001"
	ErrCodeInvalidInsightRequest InsightErrorCode = "INS-010002"

	// Upstream errors (04XXXX)
	ErrCodeInsightUpstream      InsightErrorCode = "INS-040001"
	ErrCodeInsightNotConfigured InsightErrorCode = "INS-040002"
	ErrCodeEmptyInsight         InsightErrorCode = "INS-040003"
)

// InsightError represents an insight error with code and message.
type InsightError struct {
	Code    InsightErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *InsightError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *InsightError) Unwrap() error {
	return e.Err
}

// NewInsightError creates a new InsightError with the given code and message.
func NewInsightError(code InsightErrorCode, message string, err error) *InsightError {
	return &InsightError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
