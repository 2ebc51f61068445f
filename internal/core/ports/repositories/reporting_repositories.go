package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/ledger_engine/internal/core/domain"
)

// ReportingRepository defines the read models behind the ledger reports
type ReportingRepository interface {
	// GetTrialBalanceData sums posted line activity per account up to asOf.
	GetTrialBalanceData(ctx context.Context, workplaceID string, asOf time.Time) ([]domain.TrialBalanceRow, error)
	// ListUnbalancedDrafts returns drafts whose totals differ or that have fewer than two lines.
	ListUnbalancedDrafts(ctx context.Context, workplaceID string) ([]domain.EntrySummary, error)
	// ListDraftSummaries returns every draft dated on or before asOf.
	ListDraftSummaries(ctx context.Context, workplaceID string, asOf time.Time) ([]domain.EntrySummary, error)
}
