package services

import (
	"context"
	"time"

	"github.com/SscSPs/ledger_engine/internal/core/domain"
	"github.com/SscSPs/ledger_engine/internal/dto"
)

// JournalReaderSvc defines read operations for journal entries
type JournalReaderSvc interface {
	GetJournalEntryByID(ctx context.Context, workplaceID, entryID string) (*domain.JournalEntry, error)
	GetJournalEntryByNumber(ctx context.Context, workplaceID, entryNumber string) (*domain.JournalEntry, error)
	ListJournalEntries(ctx context.Context, workplaceID string, params dto.ListJournalEntriesParams) ([]domain.JournalEntry, *string, error)
}

// JournalDraftSvc defines operations on entries still in Draft
type JournalDraftSvc interface {
	CreateJournalEntry(ctx context.Context, workplaceID string, req dto.CreateJournalEntryRequest, userID string) (*domain.JournalEntry, error)
	// UpdateJournalEntry edits a draft header, moving it between periods when the
	// date or period changes.
	UpdateJournalEntry(ctx context.Context, workplaceID, entryID string, req dto.UpdateJournalEntryRequest, userID string) (*domain.JournalEntry, error)
	AddJournalLine(ctx context.Context, workplaceID, entryID string, req dto.JournalLineRequest, userID string) (*domain.JournalEntry, error)
	UpdateJournalLine(ctx context.Context, workplaceID, entryID, lineID string, req dto.JournalLineRequest, userID string) (*domain.JournalEntry, error)
	RemoveJournalLine(ctx context.Context, workplaceID, entryID, lineID string, userID string) (*domain.JournalEntry, error)
}

// JournalPosterSvc defines the state transitions of an entry
type JournalPosterSvc interface {
	// ValidateBalance is pure: it reports whether the entry's lines balance.
	ValidateBalance(entry domain.JournalEntry) error
	PostJournalEntry(ctx context.Context, workplaceID, entryID, userID string) (*domain.PostingResult, error)
	// ReverseJournalEntry posts a mirror entry dated reversalDate. A zero date means today.
	ReverseJournalEntry(ctx context.Context, workplaceID, entryID string, reversalDate time.Time, userID string) (*domain.ReversalResult, error)
}

// JournalSvcFacade combines all journal-related service interfaces
type JournalSvcFacade interface {
	JournalReaderSvc
	JournalDraftSvc
	JournalPosterSvc
}
