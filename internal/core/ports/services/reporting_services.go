package services

import (
	"context"
	"time"

	"github.com/SscSPs/ledger_engine/internal/core/domain"
)

// ReportingService defines the ledger reports
type ReportingService interface {
	GetTrialBalance(ctx context.Context, workplaceID string, asOf time.Time) (*domain.TrialBalance, error)
	GetUnbalancedEntries(ctx context.Context, workplaceID string) ([]domain.EntrySummary, error)
	// GetDraftAging buckets drafts by age relative to asOf. A zero asOf means now.
	GetDraftAging(ctx context.Context, workplaceID string, asOf time.Time) (*domain.DraftAgingReport, error)
}
