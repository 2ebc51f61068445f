package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/ledger_engine/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_engine/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/ledger_engine/internal/core/ports/services"
	"github.com/shopspring/decimal"
)

// reportingService implements the ReportingService interface
type reportingService struct {
	BaseService
	reportingRepo portsrepo.ReportingRepository
}

// NewReportingService creates a new reporting service with the provided options
func NewReportingService(repo portsrepo.ReportingRepository, options ...ServiceOption) portssvc.ReportingService {
	opts := applyOptions(options)
	return &reportingService{
		BaseService:   BaseService{clock: opts.clock},
		reportingRepo: repo,
	}
}

// Ensure reportingService implements the ReportingService interface
var _ portssvc.ReportingService = (*reportingService)(nil)

// agingBuckets are inclusive day ranges. A nil max is open-ended.
var agingBuckets = []struct {
	label string
	min   int
	max   *int
}{
	{"0-30", 0, intPtr(30)},
	{"31-60", 31, intPtr(60)},
	{"61-90", 61, intPtr(90)},
	{"90+", 91, nil},
}

func intPtr(i int) *int { return &i }

// GetTrialBalance generates a trial balance report as of a specific date
func (s *reportingService) GetTrialBalance(ctx context.Context, workplaceID string, asOf time.Time) (*domain.TrialBalance, error) {
	if asOf.IsZero() {
		asOf = s.Now()
	}

	rows, err := s.reportingRepo.GetTrialBalanceData(ctx, workplaceID, asOf)
	if err != nil {
		s.LogError(ctx, err, "Failed to retrieve trial balance data",
			slog.String("workplace_id", workplaceID),
			slog.String("asOf", asOf.Format(time.RFC3339)))
		return nil, fmt.Errorf("failed to retrieve trial balance data: %w", err)
	}

	report := &domain.TrialBalance{AsOf: asOf, Rows: rows, TotalDebit: decimal.Zero, TotalCredit: decimal.Zero}
	for _, row := range rows {
		report.TotalDebit = report.TotalDebit.Add(row.Debit)
		report.TotalCredit = report.TotalCredit.Add(row.Credit)
	}
	report.Balanced = report.TotalDebit.Equal(report.TotalCredit)
	if !report.Balanced {
		s.GetLogger(ctx).Warn("Trial balance does not balance",
			slog.String("workplace_id", workplaceID),
			slog.String("total_debit", report.TotalDebit.String()),
			slog.String("total_credit", report.TotalCredit.String()))
	}

	s.LogInfo(ctx, "Trial balance report generated successfully",
		slog.String("workplace_id", workplaceID),
		slog.Int("row_count", len(rows)))
	return report, nil
}

// GetUnbalancedEntries lists drafts that would fail balance validation today
func (s *reportingService) GetUnbalancedEntries(ctx context.Context, workplaceID string) ([]domain.EntrySummary, error) {
	entries, err := s.reportingRepo.ListUnbalancedDrafts(ctx, workplaceID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list unbalanced entries", slog.String("workplace_id", workplaceID))
		return nil, fmt.Errorf("failed to list unbalanced entries: %w", err)
	}
	return entries, nil
}

// GetDraftAging buckets drafts by their age in days relative to asOf
func (s *reportingService) GetDraftAging(ctx context.Context, workplaceID string, asOf time.Time) (*domain.DraftAgingReport, error) {
	if asOf.IsZero() {
		asOf = s.Now()
	}
	asOfDay := domain.DateOnly(asOf)

	drafts, err := s.reportingRepo.ListDraftSummaries(ctx, workplaceID, asOfDay)
	if err != nil {
		s.LogError(ctx, err, "Failed to list drafts for aging", slog.String("workplace_id", workplaceID))
		return nil, fmt.Errorf("failed to list drafts for aging: %w", err)
	}

	report := &domain.DraftAgingReport{AsOf: asOfDay, Buckets: make([]domain.AgingBucket, len(agingBuckets))}
	for i, b := range agingBuckets {
		report.Buckets[i] = domain.AgingBucket{
			Label:      b.label,
			MinDays:    b.min,
			MaxDays:    b.max,
			TotalDebit: decimal.Zero,
			Entries:    []domain.EntrySummary{},
		}
	}

	for _, draft := range drafts {
		age := max(int(asOfDay.Sub(domain.DateOnly(draft.EntryDate)).Hours()/24), 0)
		bucket := &report.Buckets[bucketIndex(age)]
		bucket.Count++
		bucket.TotalDebit = bucket.TotalDebit.Add(draft.TotalDebit)
		bucket.Entries = append(bucket.Entries, draft)
	}
	return report, nil
}

func bucketIndex(age int) int {
	for i, b := range agingBuckets {
		if b.max == nil || age <= *b.max {
			return i
		}
	}
	return len(agingBuckets) - 1
}
