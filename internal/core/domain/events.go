package domain

import "time"

// EventType names an outbound notification.
type EventType string

const (
	EventJournalEntryPosted   EventType = "journal_entry.posted"
	EventJournalEntryReversed EventType = "journal_entry.reversed"
	EventFiscalPeriodClosed   EventType = "fiscal_period.closed"
)

// DomainEvent is produced by a committed state change.
type DomainEvent struct {
	Type        EventType         `json:"type"`
	WorkplaceID string            `json:"workplaceID"`
	AggregateID string            `json:"aggregateID"`
	OccurredAt  time.Time         `json:"occurredAt"`
	Attributes  map[string]string `json:"attributes,omitempty"`
}
