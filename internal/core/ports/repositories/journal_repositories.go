package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/ledger_engine/internal/core/domain"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// JournalReader defines read operations for journal entries
type JournalReader interface {
	// FindEntryByID returns the entry header with its lines.
	FindEntryByID(ctx context.Context, workplaceID, entryID string) (*domain.JournalEntry, error)
	FindEntryByNumber(ctx context.Context, workplaceID, entryNumber string) (*domain.JournalEntry, error)
	// ListEntries returns headers only, newest first, and a token for the next page.
	ListEntries(ctx context.Context, workplaceID string, filter domain.JournalEntryFilter) ([]domain.JournalEntry, *string, error)
}

// JournalTransactionSupport defines journal operations that run inside a caller's transaction
type JournalTransactionSupport interface {
	// InsertEntryInTx assigns the next entry number and inserts the header and its lines.
	InsertEntryInTx(ctx context.Context, tx pgx.Tx, entry *domain.JournalEntry) error
	// FindEntryByIDForUpdate locks the entry row and loads its lines.
	FindEntryByIDForUpdate(ctx context.Context, tx pgx.Tx, workplaceID, entryID string) (*domain.JournalEntry, error)
	InsertLineInTx(ctx context.Context, tx pgx.Tx, line domain.JournalEntryLine) error
	UpdateLineInTx(ctx context.Context, tx pgx.Tx, line domain.JournalEntryLine) error
	DeleteLineInTx(ctx context.Context, tx pgx.Tx, workplaceID, entryID, lineID string) error
	UpdateEntryTotalsInTx(ctx context.Context, tx pgx.Tx, workplaceID, entryID string, totalDebit, totalCredit decimal.Decimal, userID string, now time.Time) error
	// UpdateEntryHeaderInTx rewrites date, period, reference and description of a draft.
	// A row that is no longer a draft returns apperrors.ErrConflict.
	UpdateEntryHeaderInTx(ctx context.Context, tx pgx.Tx, entry domain.JournalEntry) error
	// MarkEntryPostedInTx flips a draft to posted, storing totals, period and posted_at.
	MarkEntryPostedInTx(ctx context.Context, tx pgx.Tx, entry domain.JournalEntry) error
	MarkEntryReversedInTx(ctx context.Context, tx pgx.Tx, workplaceID, entryID, reversedByID, userID string, now time.Time) error
	// ListDraftsForPeriodInTx returns drafts assigned to the period or dated within [from, to].
	ListDraftsForPeriodInTx(ctx context.Context, tx pgx.Tx, workplaceID, periodID string, from, to time.Time) ([]domain.JournalEntry, error)
}

// JournalRepositoryFacade combines all journal-related repository interfaces
type JournalRepositoryFacade interface {
	JournalReader
	JournalTransactionSupport
}

// JournalRepositoryWithTx extends JournalRepositoryFacade with transaction capabilities
type JournalRepositoryWithTx interface {
	JournalRepositoryFacade
	TransactionManager
}
