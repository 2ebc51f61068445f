package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// EntryStatus is the lifecycle state of a journal entry.
type EntryStatus string

const (
	Draft    EntryStatus = "DRAFT"
	Posted   EntryStatus = "POSTED"
	Reversed EntryStatus = "REVERSED"
)

func (s EntryStatus) IsValid() bool {
	switch s {
	case Draft, Posted, Reversed:
		return true
	}
	return false
}

// EntryNumberPrefix precedes the zero-padded sequence of every entry number.
const EntryNumberPrefix = "JE-"

// FormatEntryNumber renders a per-workplace sequence value as JE-000123.
func FormatEntryNumber(seq int64) string {
	return fmt.Sprintf("%s%06d", EntryNumberPrefix, seq)
}

// JournalEntry is a set of debit and credit lines describing one financial event.
type JournalEntry struct {
	EntryID        string             `json:"entryID"`
	WorkplaceID    string             `json:"workplaceID"`
	EntryNumber    string             `json:"entryNumber"`
	EntryDate      time.Time          `json:"entryDate"`
	Reference      string             `json:"reference"`
	Description    string             `json:"description"`
	FiscalPeriodID string             `json:"fiscalPeriodID"`
	Status         EntryStatus        `json:"status"`
	TotalDebit     decimal.Decimal    `json:"totalDebit"`
	TotalCredit    decimal.Decimal    `json:"totalCredit"`
	CurrencyCode   string             `json:"currencyCode"`
	Tags           []string           `json:"tags"`
	ReversalOfID   *string            `json:"reversalOfID,omitempty"`
	ReversedByID   *string            `json:"reversedByID,omitempty"`
	PostedAt       *time.Time         `json:"postedAt,omitempty"`
	Lines          []JournalEntryLine `json:"lines,omitempty"`
	AuditFields
}

func (e JournalEntry) IsDraft() bool {
	return e.Status == Draft
}

// JournalEntryFilter narrows entry listings. Zero values mean "no constraint".
type JournalEntryFilter struct {
	Status    *EntryStatus
	From      *time.Time
	To        *time.Time
	Limit     int
	NextToken *string
}

// PostingResult is returned by a successful post. Events must be emitted only
// after the result is returned, never from inside the storage transaction.
type PostingResult struct {
	Entry  JournalEntry
	Events []DomainEvent
}

// ReversalResult carries both sides of a reversal.
type ReversalResult struct {
	Original JournalEntry
	Reversal JournalEntry
	Events   []DomainEvent
}
