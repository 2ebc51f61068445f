package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/SscSPs/ledger_engine/internal/core/domain"
	portssvc "github.com/SscSPs/ledger_engine/internal/core/ports/services"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var domainEventsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "ledger_domain_events_total",
	Help: "Domain events published after commit",
}, []string{"type"})

// eventPublisher logs, counts and forwards domain events to an optional sink.
type eventPublisher struct {
	BaseService
	sink portssvc.EventSink
}

// NewEventPublisher creates a publisher. A nil sink publishes to logs and metrics only.
func NewEventPublisher(sink portssvc.EventSink) portssvc.EventPublisher {
	return &eventPublisher{sink: sink}
}

var _ portssvc.EventPublisher = (*eventPublisher)(nil)

func (p *eventPublisher) Publish(ctx context.Context, events []domain.DomainEvent) {
	for _, event := range events {
		domainEventsTotal.WithLabelValues(string(event.Type)).Inc()
		p.LogInfo(ctx, "Domain event",
			slog.String("event_type", string(event.Type)),
			slog.String("workplace_id", event.WorkplaceID),
			slog.String("aggregate_id", event.AggregateID))

		if p.sink == nil {
			continue
		}
		props := make(map[string]any, len(event.Attributes)+2)
		for k, v := range event.Attributes {
			props[k] = v
		}
		props["aggregate_id"] = event.AggregateID
		props["occurred_at"] = event.OccurredAt.Format(time.RFC3339)
		p.sink.Enqueue(event.WorkplaceID, string(event.Type), props)
	}
}
