package services

import (
	"context"

	"github.com/SscSPs/ledger_engine/internal/core/domain"
)

// EventPublisher delivers domain events after the state change that produced them
// has committed. Publishing never fails the caller's operation.
type EventPublisher interface {
	Publish(ctx context.Context, events []domain.DomainEvent)
}

// EventSink is the outbound analytics/notification channel behind the publisher.
type EventSink interface {
	Enqueue(distinctID string, event string, properties map[string]any)
}
