package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/SscSPs/ledger_engine/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_engine/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgxReportingRepository implements portsrepo.ReportingRepository using pgx.
type PgxReportingRepository struct {
	BaseRepository
}

// NewPgxReportingRepository creates a new repository for ledger reports.
func NewPgxReportingRepository(pool *pgxpool.Pool) portsrepo.ReportingRepository {
	return &PgxReportingRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.ReportingRepository = (*PgxReportingRepository)(nil)

// GetTrialBalanceData sums debit and credit activity per account for every
// non-draft entry dated on or before asOf. Reversed entries stay in because
// their reversals carry the offsetting lines.
func (r *PgxReportingRepository) GetTrialBalanceData(ctx context.Context, workplaceID string, asOf time.Time) ([]domain.TrialBalanceRow, error) {
	query := `
		SELECT
			a.account_id,
			a.account_number,
			a.name,
			a.account_type,
			COALESCE(SUM(l.debit_amount), 0) AS total_debit,
			COALESCE(SUM(l.credit_amount), 0) AS total_credit
		FROM journal_entry_lines l
		JOIN journal_entries e ON e.entry_id = l.entry_id
		JOIN accounts a ON a.account_id = l.account_id
		WHERE e.workplace_id = $1
			AND e.status <> $2
			AND e.entry_date <= $3
		GROUP BY a.account_id, a.account_number, a.name, a.account_type
		ORDER BY a.account_number
	`

	rows, err := r.Pool.Query(ctx, query, workplaceID, string(domain.Draft), domain.DateOnly(asOf))
	if err != nil {
		return nil, mapDBError(err, "failed to query trial balance")
	}
	defer rows.Close()

	result := []domain.TrialBalanceRow{}
	for rows.Next() {
		var row domain.TrialBalanceRow
		if err := rows.Scan(&row.AccountID, &row.AccountNumber, &row.AccountName, &row.AccountType, &row.Debit, &row.Credit); err != nil {
			return nil, fmt.Errorf("failed to scan trial balance row: %w", err)
		}
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating trial balance rows: %w", err)
	}
	return result, nil
}

const draftSummaryQuery = `
	SELECT
		e.entry_id,
		e.entry_number,
		e.entry_date,
		COALESCE(e.description, ''),
		e.currency_code,
		e.total_debit,
		e.total_credit,
		COUNT(l.line_id)
	FROM journal_entries e
	LEFT JOIN journal_entry_lines l ON l.entry_id = e.entry_id
	WHERE e.workplace_id = $1 AND e.status = $2 %s
	GROUP BY e.entry_id
	%s
	ORDER BY e.entry_date, e.entry_number
`

// ListUnbalancedDrafts returns drafts that could not be posted as they stand.
func (r *PgxReportingRepository) ListUnbalancedDrafts(ctx context.Context, workplaceID string) ([]domain.EntrySummary, error) {
	query := fmt.Sprintf(draftSummaryQuery, "", "HAVING e.total_debit <> e.total_credit OR COUNT(l.line_id) < 2")
	rows, err := r.Pool.Query(ctx, query, workplaceID, string(domain.Draft))
	if err != nil {
		return nil, mapDBError(err, "failed to query unbalanced drafts")
	}
	return collectSummaries(rows)
}

// ListDraftSummaries returns every draft dated on or before asOf.
func (r *PgxReportingRepository) ListDraftSummaries(ctx context.Context, workplaceID string, asOf time.Time) ([]domain.EntrySummary, error) {
	query := fmt.Sprintf(draftSummaryQuery, "AND e.entry_date <= $3", "")
	rows, err := r.Pool.Query(ctx, query, workplaceID, string(domain.Draft), domain.DateOnly(asOf))
	if err != nil {
		return nil, mapDBError(err, "failed to query draft summaries")
	}
	return collectSummaries(rows)
}

func collectSummaries(rows pgx.Rows) ([]domain.EntrySummary, error) {
	defer rows.Close()
	result := []domain.EntrySummary{}
	for rows.Next() {
		var s domain.EntrySummary
		if err := rows.Scan(&s.EntryID, &s.EntryNumber, &s.EntryDate, &s.Description, &s.CurrencyCode, &s.TotalDebit, &s.TotalCredit, &s.LineCount); err != nil {
			return nil, fmt.Errorf("failed to scan entry summary row: %w", err)
		}
		s.EntryDate = domain.DateOnly(s.EntryDate)
		result = append(result, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating entry summary rows: %w", err)
	}
	return result, nil
}
