// Package dto defines data transfer objects for API requests and responses.
package dto

import (
	"github.com/shopspring/decimal"
)

// DateLayout is the calendar date format accepted and returned by the API.
const DateLayout = "2006-01-02"

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error   string            `json:"error"`
	Code    string            `json:"code,omitempty"`
	Details map[string]string `json:"details,omitempty"`
}

// MessageResponse represents a generic message response.
type MessageResponse struct {
	Message string `json:"message"`
}

// Money renders an amount with exactly two decimals.
func Money(amount decimal.Decimal) string {
	return amount.StringFixed(2)
}

// ChartSliceResponse represents one slice of a category chart.
type ChartSliceResponse struct {
	Label  string `json:"label"`
	Weight string `json:"weight"`
}
