package events

import (
	"context"

	"github.com/personal-finance/tracker-api/internal/application/adapter"
)

// NoopPublisher drops every event. It is used when events are disabled.
type NoopPublisher struct{}

// Publish discards the event.
func (NoopPublisher) Publish(context.Context, adapter.LedgerEvent) error { return nil }

// Close does nothing.
func (NoopPublisher) Close() error { return nil }
