package services

import (
	portsrepo "github.com/SscSPs/ledger_engine/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/ledger_engine/internal/core/ports/services"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(repos portsrepo.RepositoryProvider, sink portssvc.EventSink, options ...ServiceOption) *portssvc.ServiceContainer {
	return &portssvc.ServiceContainer{
		Account:      NewAccountService(repos.AccountRepo, options...),
		Journal:      NewJournalService(repos.JournalRepo, repos.AccountRepo, repos.FiscalPeriodRepo, options...),
		FiscalPeriod: NewFiscalPeriodService(repos.FiscalPeriodRepo, repos.JournalRepo, options...),
		Reporting:    NewReportingService(repos.ReportingRepo, options...),
		Events:       NewEventPublisher(sink),
	}
}
