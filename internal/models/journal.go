package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// JournalStatus indicates the state of a journal entry.
type JournalStatus string

// JournalEntry represents a row of the journal_entries table.
type JournalEntry struct {
	EntryID        string          `db:"entry_id"`
	WorkplaceID    string          `db:"workplace_id"`
	EntryNumber    string          `db:"entry_number"`
	EntryDate      time.Time       `db:"entry_date"`
	Reference      *string         `db:"reference"`
	Description    *string         `db:"description"`
	FiscalPeriodID *string         `db:"fiscal_period_id"` // NULL until a period covers the date
	Status         JournalStatus   `db:"status"`
	TotalDebit     decimal.Decimal `db:"total_debit"`
	TotalCredit    decimal.Decimal `db:"total_credit"`
	CurrencyCode   string          `db:"currency_code"`
	Tags           []string        `db:"tags"`
	ReversalOfID   *string         `db:"reversal_of_id"`
	ReversedByID   *string         `db:"reversed_by_id"`
	PostedAt       *time.Time      `db:"posted_at"`
	AuditFields
}

// JournalEntryLine represents a row of the journal_entry_lines table.
type JournalEntryLine struct {
	LineID       string          `db:"line_id"`
	EntryID      string          `db:"entry_id"`
	WorkplaceID  string          `db:"workplace_id"`
	AccountID    string          `db:"account_id"`
	LineNo       int             `db:"line_no"`
	Description  *string         `db:"description"`
	DebitAmount  decimal.Decimal `db:"debit_amount"`
	CreditAmount decimal.Decimal `db:"credit_amount"`
	CurrencyCode string          `db:"currency_code"`
	ExchangeRate decimal.Decimal `db:"exchange_rate"`
	AuditFields
}
