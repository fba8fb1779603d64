// Package insight contains the AI budget insight use case.
package insight

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/personal-finance/tracker-api/internal/application/adapter"
	"github.com/personal-finance/tracker-api/internal/domain/entity"
	domainerror "github.com/personal-finance/tracker-api/internal/domain/error"
	"github.com/personal-finance/tracker-api/internal/domain/service"
)

// MaxSummaryLength bounds a caller-provided category summary.
const MaxSummaryLength = 2000

// StatisticsLoader loads the aggregated statistics of a user.
type StatisticsLoader interface {
	Load(ctx context.Context, userID uuid.UUID) (*entity.Statistics, error)
}

// GetInsightInput represents the input for requesting an insight.
// An empty Summary is built from the user's category totals.
type GetInsightInput struct {
	UserID  uuid.UUID
	Summary string
}

// GetInsightOutput represents the insight answer.
type GetInsightOutput struct {
	Insight *entity.Insight
}

// GetInsightUseCase forwards a category summary to the insight generator.
type GetInsightUseCase struct {
	generator adapter.InsightGenerator
	loader    StatisticsLoader
	timeout   time.Duration
}

// NewGetInsightUseCase creates a new GetInsightUseCase instance.
// A non-positive timeout disables the per-call deadline.
func NewGetInsightUseCase(
	generator adapter.InsightGenerator,
	loader StatisticsLoader,
	timeout time.Duration,
) *GetInsightUseCase {
	return &GetInsightUseCase{
		generator: generator,
		loader:    loader,
		timeout:   timeout,
	}
}

// Execute returns the generated insight, or the fallback text when the
// generator is unavailable, fails, times out or answers with nothing.
func (uc *GetInsightUseCase) Execute(ctx context.Context, input GetInsightInput) (*GetInsightOutput, error) {
	summary := strings.TrimSpace(input.Summary)
	if len(summary) > MaxSummaryLength {
		return nil, domainerror.NewInsightError(
			domainerror.ErrCodeSummaryTooLong,
			fmt.Sprintf("summary must not exceed %d characters", MaxSummaryLength),
			domainerror.ErrSummaryTooLong,
		)
	}

	// Build the summary from the ledger when none was given
	if summary == "" {
		stats, err := uc.loader.Load(ctx, input.UserID)
		if err != nil {
			return nil, err
		}
		summary = service.CategorySummary(stats)
	}

	if summary == "" || uc.generator == nil || !uc.generator.IsAvailable() {
		return &GetInsightOutput{Insight: entity.NewFallbackInsight(summary)}, nil
	}

	callCtx := ctx
	if uc.timeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, uc.timeout)
		defer cancel()
	}

	text, err := uc.generator.Generate(callCtx, service.InsightPrompt(summary))
	if err == nil && strings.TrimSpace(text) == "" {
		err = domainerror.NewInsightError(
			domainerror.ErrCodeEmptyInsight,
			"insight service returned no text",
			domainerror.ErrEmptyInsight,
		)
	}
	if err != nil {
		slog.WarnContext(ctx, "Insight generation failed, using fallback",
			"userID", input.UserID,
			"error", err,
		)
		return &GetInsightOutput{Insight: entity.NewFallbackInsight(summary)}, nil
	}

	return &GetInsightOutput{
		Insight: &entity.Insight{
			Text:    text,
			Summary: summary,
		},
	}, nil
}
