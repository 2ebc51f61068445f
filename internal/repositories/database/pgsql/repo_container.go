package pgsql

import (
	portsrepo "github.com/SscSPs/ledger_engine/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

// NewRepositoryProvider creates a provider with all repositories sharing one pool,
// so a pgx.Tx begun by any of them is valid for the others.
func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		AccountRepo:      NewPgxAccountRepository(dbPool),
		JournalRepo:      NewPgxJournalRepository(dbPool),
		FiscalPeriodRepo: NewPgxFiscalPeriodRepository(dbPool),
		ReportingRepo:    NewPgxReportingRepository(dbPool),
	}
}
