package services

// ServiceContainer is what the HTTP layer is built from: one facade per ledger
// module plus the publisher handlers call once a state change has committed.
type ServiceContainer struct {
	Account      AccountSvcFacade
	Journal      JournalSvcFacade
	FiscalPeriod FiscalPeriodSvcFacade
	Reporting    ReportingService
	Events       EventPublisher
}
