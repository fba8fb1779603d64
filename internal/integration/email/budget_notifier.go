package email

import (
	"context"
	"fmt"

	"github.com/personal-finance/tracker-api/internal/application/adapter"
	domainerror "github.com/personal-finance/tracker-api/internal/domain/error"
	"github.com/personal-finance/tracker-api/internal/integration/email/templates"
)

const budgetExceededTemplate = "budget_exceeded"

// BudgetAlertNotifier sends budget-exceeded emails.
type BudgetAlertNotifier struct {
	sender   adapter.EmailSender
	renderer *templates.Renderer
}

var _ adapter.BudgetNotifier = (*BudgetAlertNotifier)(nil)

// NewBudgetAlertNotifier creates a notifier that renders and sends alerts through sender.
func NewBudgetAlertNotifier(sender adapter.EmailSender, renderer *templates.Renderer) *BudgetAlertNotifier {
	return &BudgetAlertNotifier{
		sender:   sender,
		renderer: renderer,
	}
}

// NotifyBudgetExceeded renders the alert and sends it to the budget owner.
func (n *BudgetAlertNotifier) NotifyBudgetExceeded(ctx context.Context, alert adapter.BudgetAlert) error {
	data := templates.BudgetExceeded{
		UserName: alert.Name,
		Category: alert.Category,
		Limit:    alert.Limit.StringFixed(2),
		Spent:    alert.Spent.StringFixed(2),
		Over:     alert.Spent.Sub(alert.Limit).StringFixed(2),
	}

	body, err := n.renderer.Render(budgetExceededTemplate, data)
	if err != nil {
		return domainerror.NewEmailError(
			domainerror.ErrCodeTemplateRenderFailed,
			"failed to render budget alert",
			fmt.Errorf("%w: %w", domainerror.ErrTemplateRenderFailed, err),
		)
	}

	if _, err := n.sender.Send(ctx, adapter.SendEmailInput{
		To:      alert.Email,
		Name:    alert.Name,
		Subject: fmt.Sprintf("Budget exceeded: %s", alert.Category),
		HTML:    body.HTML,
		Text:    body.Text,
	}); err != nil {
		return fmt.Errorf("failed to send budget alert: %w", err)
	}
	return nil
}
