package services

import (
	"context"
	"time"

	"github.com/SscSPs/ledger_engine/internal/core/domain"
	"github.com/SscSPs/ledger_engine/internal/dto"
)

// FiscalPeriodReaderSvc defines period lookups
type FiscalPeriodReaderSvc interface {
	GetPeriodByID(ctx context.Context, workplaceID, periodID string) (*domain.FiscalPeriod, error)
	GetPeriodForDate(ctx context.Context, workplaceID string, date time.Time) (*domain.FiscalPeriod, error)
	IsOpen(ctx context.Context, workplaceID, periodID string) (bool, error)
	ListPeriods(ctx context.Context, workplaceID string, params dto.ListPeriodsParams) ([]domain.FiscalPeriod, error)
}

// FiscalPeriodWriterSvc defines period lifecycle operations
type FiscalPeriodWriterSvc interface {
	OpenPeriod(ctx context.Context, workplaceID string, req dto.OpenPeriodRequest, userID string) (*domain.FiscalPeriod, error)
	ClosePeriod(ctx context.Context, workplaceID, periodID, userID string) (*domain.CloseResult, error)
}

// FiscalPeriodSvcFacade combines all fiscal-period service interfaces
type FiscalPeriodSvcFacade interface {
	FiscalPeriodReaderSvc
	FiscalPeriodWriterSvc
}
