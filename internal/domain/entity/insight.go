// Package entity defines the core business entities for the domain layer.
package entity

// InsightFallback is returned whenever the insight service cannot produce an answer.
const InsightFallback = "No insight available."

// Insight is a short advisory text derived from a category summary.
type Insight struct {
	Text     string
	Summary  string
	Fallback bool
}

// NewFallbackInsight returns the degraded insight for the given summary.
func NewFallbackInsight(summary string) *Insight {
	return &Insight{
		Text:     InsightFallback,
		Summary:  summary,
		Fallback: true,
	}
}
