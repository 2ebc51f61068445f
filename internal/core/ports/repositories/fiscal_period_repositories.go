package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/ledger_engine/internal/core/domain"
	"github.com/jackc/pgx/v5"
)

// FiscalPeriodReader defines read operations for fiscal periods
type FiscalPeriodReader interface {
	FindPeriodByID(ctx context.Context, workplaceID, periodID string) (*domain.FiscalPeriod, error)
	// FindPeriodForDate returns the period whose inclusive range contains date.
	FindPeriodForDate(ctx context.Context, workplaceID string, date time.Time) (*domain.FiscalPeriod, error)
	ListPeriods(ctx context.Context, workplaceID string, fiscalYear *int) ([]domain.FiscalPeriod, error)
}

// FiscalPeriodWriter defines write operations for fiscal periods
type FiscalPeriodWriter interface {
	// CreatePeriod inserts the period unless it overlaps a sibling, in which case
	// it returns an apperrors.ErrConflict.
	CreatePeriod(ctx context.Context, period domain.FiscalPeriod) error
}

// FiscalPeriodTransactionSupport defines period operations inside a caller's transaction
type FiscalPeriodTransactionSupport interface {
	// FindPeriodByIDForShare blocks concurrent closes until the caller's tx ends.
	FindPeriodByIDForShare(ctx context.Context, tx pgx.Tx, workplaceID, periodID string) (*domain.FiscalPeriod, error)
	FindPeriodByIDForUpdate(ctx context.Context, tx pgx.Tx, workplaceID, periodID string) (*domain.FiscalPeriod, error)
	FindPeriodForDateInTx(ctx context.Context, tx pgx.Tx, workplaceID string, date time.Time) (*domain.FiscalPeriod, error)
	ClosePeriodInTx(ctx context.Context, tx pgx.Tx, workplaceID, periodID, userID string, now time.Time) error
}

// FiscalPeriodRepositoryFacade combines all fiscal-period repository interfaces
type FiscalPeriodRepositoryFacade interface {
	FiscalPeriodReader
	FiscalPeriodWriter
	FiscalPeriodTransactionSupport
}

// FiscalPeriodRepositoryWithTx extends FiscalPeriodRepositoryFacade with transaction capabilities
type FiscalPeriodRepositoryWithTx interface {
	FiscalPeriodRepositoryFacade
	TransactionManager
}
