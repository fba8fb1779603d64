// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"
)

// InsightGenerator forwards a prompt to a generative-text service.
type InsightGenerator interface {
	// Generate returns the raw text produced for the prompt.
	Generate(ctx context.Context, prompt string) (string, error)

	// IsAvailable checks if the service is properly configured.
	IsAvailable() bool
}
