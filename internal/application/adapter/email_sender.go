// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/shopspring/decimal"
)

// SendEmailInput represents the input for sending an email.
type SendEmailInput struct {
	To      string
	Name    string
	Subject string
	HTML    string
	Text    string
}

// SendEmailResult represents the result of sending an email.
type SendEmailResult struct {
	ResendID string
}

// EmailSender defines the interface for sending emails via an external provider.
type EmailSender interface {
	// Send sends an email via the email provider (e.g., Resend).
	Send(ctx context.Context, input SendEmailInput) (*SendEmailResult, error)
}

// BudgetAlert carries the data of a budget-exceeded notification.
type BudgetAlert struct {
	Email    string
	Name     string
	Category string
	Limit    decimal.Decimal
	Spent    decimal.Decimal
}

// BudgetNotifier notifies a user that a budget went over its limit.
type BudgetNotifier interface {
	NotifyBudgetExceeded(ctx context.Context, alert BudgetAlert) error
}
