package dto

import (
	"time"

	"github.com/SscSPs/ledger_engine/internal/core/domain"
	"github.com/shopspring/decimal"
)

// JournalLineRequest describes one debit or credit line.
type JournalLineRequest struct {
	AccountID    string           `json:"accountID" binding:"required"`
	Description  string           `json:"description"`
	DebitAmount  decimal.Decimal  `json:"debitAmount"`
	CreditAmount decimal.Decimal  `json:"creditAmount"`
	CurrencyCode string           `json:"currencyCode" binding:"omitempty,iso4217"` // Defaults to the entry currency
	ExchangeRate *decimal.Decimal `json:"exchangeRate"`                             // Defaults to 1
}

// CreateJournalEntryRequest creates a draft entry, optionally with its first lines.
type CreateJournalEntryRequest struct {
	EntryDate      time.Time            `json:"entryDate" binding:"required"`
	Reference      string               `json:"reference" binding:"max=255"`
	Description    string               `json:"description"`
	CurrencyCode   string               `json:"currencyCode" binding:"required,iso4217"`
	FiscalPeriodID *string              `json:"fiscalPeriodID"` // Resolved from entryDate when absent
	Tags           []string             `json:"tags"`
	Lines          []JournalLineRequest `json:"lines" binding:"omitempty,dive"`
}

// UpdateJournalEntryRequest edits the header of a draft. Absent fields are kept.
// A new entryDate re-resolves the period unless fiscalPeriodID names one; an
// empty fiscalPeriodID clears the explicit choice.
type UpdateJournalEntryRequest struct {
	EntryDate      *time.Time `json:"entryDate"`
	FiscalPeriodID *string    `json:"fiscalPeriodID"`
	Reference      *string    `json:"reference" binding:"omitempty,max=255"`
	Description    *string    `json:"description"`
}

// ReverseJournalEntryRequest optionally overrides the reversal date.
type ReverseJournalEntryRequest struct {
	ReversalDate *time.Time `json:"reversalDate"`
}

// ListJournalEntriesParams defines query parameters for listing entries.
type ListJournalEntriesParams struct {
	Status    string     `form:"status"`
	From      *time.Time `form:"from" time_format:"2006-01-02"`
	To        *time.Time `form:"to" time_format:"2006-01-02"`
	Limit     int        `form:"limit,default=20" binding:"min=1,max=200"`
	NextToken *string    `form:"nextToken"`
}

// JournalLineResponse defines the data returned for a line.
type JournalLineResponse struct {
	LineID       string          `json:"lineID"`
	LineNo       int             `json:"lineNo"`
	AccountID    string          `json:"accountID"`
	Description  string          `json:"description"`
	DebitAmount  decimal.Decimal `json:"debitAmount"`
	CreditAmount decimal.Decimal `json:"creditAmount"`
	CurrencyCode string          `json:"currencyCode"`
	ExchangeRate decimal.Decimal `json:"exchangeRate"`
}

// JournalEntryResponse defines the data returned for an entry.
type JournalEntryResponse struct {
	EntryID        string                `json:"entryID"`
	EntryNumber    string                `json:"entryNumber"`
	EntryDate      time.Time             `json:"entryDate"`
	Reference      string                `json:"reference"`
	Description    string                `json:"description"`
	FiscalPeriodID string                `json:"fiscalPeriodID"`
	Status         domain.EntryStatus    `json:"status"`
	TotalDebit     decimal.Decimal       `json:"totalDebit"`
	TotalCredit    decimal.Decimal       `json:"totalCredit"`
	CurrencyCode   string                `json:"currencyCode"`
	Tags           []string              `json:"tags"`
	ReversalOfID   *string               `json:"reversalOfID,omitempty"`
	ReversedByID   *string               `json:"reversedByID,omitempty"`
	PostedAt       *time.Time            `json:"postedAt,omitempty"`
	Lines          []JournalLineResponse `json:"lines,omitempty"`
	CreatedAt      time.Time             `json:"createdAt"`
	CreatedBy      string                `json:"createdBy"`
	LastUpdatedAt  time.Time             `json:"lastUpdatedAt"`
	LastUpdatedBy  string                `json:"lastUpdatedBy"`
}

// ListJournalEntriesResponse wraps a page of entries.
type ListJournalEntriesResponse struct {
	Entries   []JournalEntryResponse `json:"entries"`
	NextToken *string                `json:"nextToken,omitempty"`
}

// ReverseJournalEntryResponse returns both sides of a reversal.
type ReverseJournalEntryResponse struct {
	Original JournalEntryResponse `json:"original"`
	Reversal JournalEntryResponse `json:"reversal"`
}

// ToJournalLineResponse converts a domain.JournalEntryLine to its DTO.
func ToJournalLineResponse(l *domain.JournalEntryLine) JournalLineResponse {
	return JournalLineResponse{
		LineID:       l.LineID,
		LineNo:       l.LineNo,
		AccountID:    l.AccountID,
		Description:  l.Description,
		DebitAmount:  l.DebitAmount,
		CreditAmount: l.CreditAmount,
		CurrencyCode: l.CurrencyCode,
		ExchangeRate: l.ExchangeRate,
	}
}

// ToJournalEntryResponse converts a domain.JournalEntry, with any loaded lines, to its DTO.
func ToJournalEntryResponse(e *domain.JournalEntry) JournalEntryResponse {
	tags := e.Tags
	if tags == nil {
		tags = []string{}
	}
	resp := JournalEntryResponse{
		EntryID:        e.EntryID,
		EntryNumber:    e.EntryNumber,
		EntryDate:      e.EntryDate,
		Reference:      e.Reference,
		Description:    e.Description,
		FiscalPeriodID: e.FiscalPeriodID,
		Status:         e.Status,
		TotalDebit:     e.TotalDebit,
		TotalCredit:    e.TotalCredit,
		CurrencyCode:   e.CurrencyCode,
		Tags:           tags,
		ReversalOfID:   e.ReversalOfID,
		ReversedByID:   e.ReversedByID,
		PostedAt:       e.PostedAt,
		CreatedAt:      e.CreatedAt,
		CreatedBy:      e.CreatedBy,
		LastUpdatedAt:  e.LastUpdatedAt,
		LastUpdatedBy:  e.LastUpdatedBy,
	}
	if len(e.Lines) > 0 {
		resp.Lines = make([]JournalLineResponse, len(e.Lines))
		for i := range e.Lines {
			resp.Lines[i] = ToJournalLineResponse(&e.Lines[i])
		}
	}
	return resp
}

// ToJournalEntryResponses converts a slice of entries.
func ToJournalEntryResponses(entries []domain.JournalEntry) []JournalEntryResponse {
	res := make([]JournalEntryResponse, len(entries))
	for i := range entries {
		res[i] = ToJournalEntryResponse(&entries[i])
	}
	return res
}
