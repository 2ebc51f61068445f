package services

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/SscSPs/ledger_engine/internal/apperrors"
	"github.com/SscSPs/ledger_engine/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_engine/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/ledger_engine/internal/core/ports/services"
	"github.com/SscSPs/ledger_engine/internal/dto"
	"github.com/google/uuid"
)

// fiscalPeriodService implements the FiscalPeriodSvcFacade interface
type fiscalPeriodService struct {
	BaseService
	periodRepo        portsrepo.FiscalPeriodRepositoryWithTx
	journalRepo       portsrepo.JournalRepositoryWithTx
	strictPeriodClose bool
}

// NewFiscalPeriodService creates a new fiscal period service with the provided options
func NewFiscalPeriodService(periodRepo portsrepo.FiscalPeriodRepositoryWithTx, journalRepo portsrepo.JournalRepositoryWithTx, options ...ServiceOption) portssvc.FiscalPeriodSvcFacade {
	opts := applyOptions(options)
	return &fiscalPeriodService{
		BaseService:       BaseService{clock: opts.clock},
		periodRepo:        periodRepo,
		journalRepo:       journalRepo,
		strictPeriodClose: opts.strictPeriodClose,
	}
}

// Ensure fiscalPeriodService implements the FiscalPeriodSvcFacade interface
var _ portssvc.FiscalPeriodSvcFacade = (*fiscalPeriodService)(nil)

func (s *fiscalPeriodService) OpenPeriod(ctx context.Context, workplaceID string, req dto.OpenPeriodRequest, userID string) (*domain.FiscalPeriod, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: period name is required", apperrors.ErrValidation)
	}
	periodType, err := domain.ParsePeriodType(req.PeriodType)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
	}
	if req.FiscalYear <= 0 {
		return nil, fmt.Errorf("%w: fiscal year must be positive", apperrors.ErrValidation)
	}
	start, end := domain.DateOnly(req.StartDate), domain.DateOnly(req.EndDate)
	if start.After(end) {
		return nil, fmt.Errorf("%w: start date %s is after end date %s",
			apperrors.ErrValidation, start.Format(time.DateOnly), end.Format(time.DateOnly))
	}

	period := domain.FiscalPeriod{
		PeriodID:    uuid.NewString(),
		WorkplaceID: workplaceID,
		Name:        name,
		PeriodType:  periodType,
		FiscalYear:  req.FiscalYear,
		StartDate:   start,
		EndDate:     end,
		Status:      domain.PeriodOpen,
		AuditFields: domain.NewAuditFields(userID, s.Now()),
	}

	if err := s.periodRepo.CreatePeriod(ctx, period); err != nil {
		s.LogError(ctx, err, "Failed to open fiscal period",
			slog.String("workplace_id", workplaceID),
			slog.String("name", name))
		return nil, err
	}

	s.LogInfo(ctx, "Fiscal period opened",
		slog.String("period_id", period.PeriodID),
		slog.String("start_date", start.Format(time.DateOnly)),
		slog.String("end_date", end.Format(time.DateOnly)))
	return &period, nil
}

func (s *fiscalPeriodService) ClosePeriod(ctx context.Context, workplaceID, periodID, userID string) (*domain.CloseResult, error) {
	tx, err := s.periodRepo.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = s.periodRepo.Rollback(ctx, tx) }()

	period, err := s.periodRepo.FindPeriodByIDForUpdate(ctx, tx, workplaceID, periodID)
	if err != nil {
		return nil, err
	}
	if !period.IsOpen() {
		return nil, fmt.Errorf("%w: fiscal period %s is already closed", apperrors.ErrConflict, period.Name)
	}

	drafts, err := s.journalRepo.ListDraftsForPeriodInTx(ctx, tx, workplaceID, periodID, period.StartDate, period.EndDate)
	if err != nil {
		return nil, fmt.Errorf("failed to list outstanding drafts: %w", err)
	}
	if len(drafts) > 0 {
		if s.strictPeriodClose {
			return nil, fmt.Errorf("%w: fiscal period %s still has %d draft entries",
				apperrors.ErrDomain, period.Name, len(drafts))
		}
		s.GetLogger(ctx).Warn("Closing fiscal period with outstanding drafts",
			slog.String("period_id", periodID),
			slog.Int("outstanding_drafts", len(drafts)))
	}

	now := s.Now()
	if err := s.periodRepo.ClosePeriodInTx(ctx, tx, workplaceID, periodID, userID, now); err != nil {
		return nil, err
	}
	if err := s.periodRepo.Commit(ctx, tx); err != nil {
		return nil, fmt.Errorf("failed to commit period close: %w", err)
	}

	period.Status = domain.PeriodClosed
	period.ClosedAt = &now
	period.ClosedBy = &userID
	period.Touch(userID, now)

	s.LogInfo(ctx, "Fiscal period closed", slog.String("period_id", periodID))
	return &domain.CloseResult{
		Period:            *period,
		OutstandingDrafts: drafts,
		Events: []domain.DomainEvent{{
			Type:        domain.EventFiscalPeriodClosed,
			WorkplaceID: workplaceID,
			AggregateID: periodID,
			OccurredAt:  now,
			Attributes: map[string]string{
				"name":               period.Name,
				"fiscal_year":        strconv.Itoa(period.FiscalYear),
				"outstanding_drafts": strconv.Itoa(len(drafts)),
			},
		}},
	}, nil
}

func (s *fiscalPeriodService) GetPeriodByID(ctx context.Context, workplaceID, periodID string) (*domain.FiscalPeriod, error) {
	return s.periodRepo.FindPeriodByID(ctx, workplaceID, periodID)
}

func (s *fiscalPeriodService) GetPeriodForDate(ctx context.Context, workplaceID string, date time.Time) (*domain.FiscalPeriod, error) {
	if date.IsZero() {
		return nil, fmt.Errorf("%w: date is required", apperrors.ErrValidation)
	}
	return s.periodRepo.FindPeriodForDate(ctx, workplaceID, domain.DateOnly(date))
}

func (s *fiscalPeriodService) IsOpen(ctx context.Context, workplaceID, periodID string) (bool, error) {
	period, err := s.periodRepo.FindPeriodByID(ctx, workplaceID, periodID)
	if err != nil {
		return false, err
	}
	return period.IsOpen(), nil
}

func (s *fiscalPeriodService) ListPeriods(ctx context.Context, workplaceID string, params dto.ListPeriodsParams) ([]domain.FiscalPeriod, error) {
	return s.periodRepo.ListPeriods(ctx, workplaceID, params.FiscalYear)
}
