package repositories

// RepositoryProvider holds the repositories the ledger services are built from.
// Repositories that expose TransactionManager share one pool, so a tx begun by one
// of them may be passed to the others.
type RepositoryProvider struct {
	AccountRepo      AccountRepositoryWithTx
	JournalRepo      JournalRepositoryWithTx
	FiscalPeriodRepo FiscalPeriodRepositoryWithTx
	ReportingRepo    ReportingRepository
}
