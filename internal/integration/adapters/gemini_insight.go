// Package adapters provides implementations for external service integrations.
package adapters

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/personal-finance/tracker-api/internal/application/adapter"
	domainerror "github.com/personal-finance/tracker-api/internal/domain/error"
)

const (
	defaultGeminiModel = "gemini-2.0-flash"
	insightTemperature = 0.4
	insightMaxTokens   = 256
)

// GeminiInsightGenerator implements adapter.InsightGenerator using Google Gemini.
type GeminiInsightGenerator struct {
	apiKey    string
	modelName string
}

var _ adapter.InsightGenerator = (*GeminiInsightGenerator)(nil)

// NewGeminiInsightGenerator creates a new Gemini insight generator.
// An empty API key yields a generator that reports itself unavailable.
func NewGeminiInsightGenerator(apiKey, modelName string) *GeminiInsightGenerator {
	if modelName == "" {
		modelName = defaultGeminiModel
	}
	return &GeminiInsightGenerator{
		apiKey:    apiKey,
		modelName: modelName,
	}
}

// IsAvailable checks if the Gemini service is properly configured.
func (g *GeminiInsightGenerator) IsAvailable() bool {
	return g.apiKey != ""
}

// Generate sends the prompt to Gemini and returns the plain text answer.
func (g *GeminiInsightGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	if !g.IsAvailable() {
		return "", domainerror.NewInsightError(
			domainerror.ErrCodeInsightNotConfigured,
			"gemini service is not configured",
			domainerror.ErrInsightNotConfigured,
		)
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(g.apiKey))
	if err != nil {
		return "", upstreamError("failed to create gemini client", err)
	}
	defer client.Close()

	model := client.GenerativeModel(g.modelName)
	model.SetTemperature(insightTemperature)
	model.SetMaxOutputTokens(insightMaxTokens)

	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", upstreamError("failed to generate content", err)
	}

	return responseText(resp)
}

func upstreamError(message string, err error) error {
	return domainerror.NewInsightError(
		domainerror.ErrCodeInsightUpstream,
		message,
		fmt.Errorf("%w: %w", domainerror.ErrInsightUpstream, err),
	)
}

// responseText joins the text parts of the first candidate.
func responseText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", fmt.Errorf("empty response from gemini")
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			sb.WriteString(string(text))
		}
	}

	text := strings.TrimSpace(sb.String())
	if text == "" {
		return "", fmt.Errorf("no text content in response")
	}
	return text, nil
}
