package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/SscSPs/ledger_engine/internal/apperrors"
	"github.com/SscSPs/ledger_engine/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_engine/internal/core/ports/repositories"
	"github.com/SscSPs/ledger_engine/internal/models"
	"github.com/SscSPs/ledger_engine/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const periodColumns = `period_id, workplace_id, name, period_type, fiscal_year, start_date, end_date, status,
	closed_at, closed_by, created_at, created_by, last_updated_at, last_updated_by`

// PgxFiscalPeriodRepository implements portsrepo.FiscalPeriodRepositoryWithTx using pgx.
type PgxFiscalPeriodRepository struct {
	BaseRepository
}

// NewPgxFiscalPeriodRepository creates a new repository for fiscal periods.
func NewPgxFiscalPeriodRepository(pool *pgxpool.Pool) portsrepo.FiscalPeriodRepositoryWithTx {
	return &PgxFiscalPeriodRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.FiscalPeriodRepositoryWithTx = (*PgxFiscalPeriodRepository)(nil)

func scanPeriod(row pgx.Row) (domain.FiscalPeriod, error) {
	var m models.FiscalPeriod
	err := row.Scan(
		&m.PeriodID, &m.WorkplaceID, &m.Name, &m.PeriodType, &m.FiscalYear, &m.StartDate, &m.EndDate, &m.Status,
		&m.ClosedAt, &m.ClosedBy, &m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	if err != nil {
		return domain.FiscalPeriod{}, err
	}
	return mapping.ToDomainFiscalPeriod(m), nil
}

func findPeriod(ctx context.Context, q querier, query string, args ...any) (*domain.FiscalPeriod, error) {
	p, err := scanPeriod(q.QueryRow(ctx, query, args...))
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// FindPeriodByID retrieves a fiscal period by ID.
func (r *PgxFiscalPeriodRepository) FindPeriodByID(ctx context.Context, workplaceID, periodID string) (*domain.FiscalPeriod, error) {
	query := `SELECT ` + periodColumns + ` FROM fiscal_periods WHERE workplace_id = $1 AND period_id = $2`
	p, err := findPeriod(ctx, r.Pool, query, workplaceID, periodID)
	if err != nil {
		return nil, mapDBError(err, "fiscal period %s", periodID)
	}
	return p, nil
}

const periodForDateQuery = `SELECT ` + periodColumns + ` FROM fiscal_periods
	WHERE workplace_id = $1 AND start_date <= $2 AND end_date >= $2
	ORDER BY start_date LIMIT 1`

// FindPeriodForDate retrieves the period containing date.
func (r *PgxFiscalPeriodRepository) FindPeriodForDate(ctx context.Context, workplaceID string, date time.Time) (*domain.FiscalPeriod, error) {
	p, err := findPeriod(ctx, r.Pool, periodForDateQuery, workplaceID, domain.DateOnly(date))
	if err != nil {
		return nil, mapDBError(err, "no fiscal period contains %s", date.Format(time.DateOnly))
	}
	return p, nil
}

// ListPeriods retrieves the workplace's periods by start date, optionally for one fiscal year.
func (r *PgxFiscalPeriodRepository) ListPeriods(ctx context.Context, workplaceID string, fiscalYear *int) ([]domain.FiscalPeriod, error) {
	query := `SELECT ` + periodColumns + ` FROM fiscal_periods
		WHERE workplace_id = $1 AND ($2::int IS NULL OR fiscal_year = $2)
		ORDER BY start_date`

	rows, err := r.Pool.Query(ctx, query, workplaceID, fiscalYear)
	if err != nil {
		return nil, mapDBError(err, "failed to list fiscal periods")
	}
	defer rows.Close()

	periods := []domain.FiscalPeriod{}
	for rows.Next() {
		p, err := scanPeriod(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan fiscal period row: %w", err)
		}
		periods = append(periods, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating fiscal period rows: %w", err)
	}
	return periods, nil
}

// CreatePeriod inserts a period after checking it shares no day with another
// period of the workplace. An advisory lock serialises concurrent creates.
func (r *PgxFiscalPeriodRepository) CreatePeriod(ctx context.Context, period domain.FiscalPeriod) (err error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = r.Rollback(ctx, tx)
		}
	}()

	if _, err = tx.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtext($1))`, "fiscal_periods:"+period.WorkplaceID); err != nil {
		return mapDBError(err, "failed to lock fiscal periods")
	}

	var clash string
	err = tx.QueryRow(ctx, `SELECT name FROM fiscal_periods
		WHERE workplace_id = $1 AND start_date <= $3 AND end_date >= $2
		ORDER BY start_date LIMIT 1`,
		period.WorkplaceID, domain.DateOnly(period.StartDate), domain.DateOnly(period.EndDate)).Scan(&clash)
	switch {
	case err == nil:
		return fmt.Errorf("%w: period overlaps existing period %q", apperrors.ErrConflict, clash)
	case !errors.Is(err, pgx.ErrNoRows):
		return mapDBError(err, "failed to check period overlap")
	}

	m := mapping.ToModelFiscalPeriod(period)
	_, err = tx.Exec(ctx, `INSERT INTO fiscal_periods (`+periodColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`,
		m.PeriodID, m.WorkplaceID, m.Name, m.PeriodType, m.FiscalYear, domain.DateOnly(m.StartDate), domain.DateOnly(m.EndDate), m.Status,
		m.ClosedAt, m.ClosedBy, m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return mapDBError(err, "failed to insert fiscal period %s", m.Name)
	}
	return r.Commit(ctx, tx)
}

// FindPeriodByIDForShare reads the period with a shared row lock so it cannot
// be closed until tx ends.
func (r *PgxFiscalPeriodRepository) FindPeriodByIDForShare(ctx context.Context, tx pgx.Tx, workplaceID, periodID string) (*domain.FiscalPeriod, error) {
	query := `SELECT ` + periodColumns + ` FROM fiscal_periods WHERE workplace_id = $1 AND period_id = $2 FOR SHARE`
	p, err := findPeriod(ctx, tx, query, workplaceID, periodID)
	if err != nil {
		return nil, mapDBError(err, "fiscal period %s", periodID)
	}
	return p, nil
}

// FindPeriodByIDForUpdate locks the period exclusively for the rest of tx.
func (r *PgxFiscalPeriodRepository) FindPeriodByIDForUpdate(ctx context.Context, tx pgx.Tx, workplaceID, periodID string) (*domain.FiscalPeriod, error) {
	query := `SELECT ` + periodColumns + ` FROM fiscal_periods WHERE workplace_id = $1 AND period_id = $2 FOR UPDATE`
	p, err := findPeriod(ctx, tx, query, workplaceID, periodID)
	if err != nil {
		return nil, mapDBError(err, "fiscal period %s", periodID)
	}
	return p, nil
}

// FindPeriodForDateInTx retrieves the period containing date inside tx.
func (r *PgxFiscalPeriodRepository) FindPeriodForDateInTx(ctx context.Context, tx pgx.Tx, workplaceID string, date time.Time) (*domain.FiscalPeriod, error) {
	p, err := findPeriod(ctx, tx, periodForDateQuery, workplaceID, domain.DateOnly(date))
	if err != nil {
		return nil, mapDBError(err, "no fiscal period contains %s", date.Format(time.DateOnly))
	}
	return p, nil
}

// ClosePeriodInTx flips an open period to CLOSED.
func (r *PgxFiscalPeriodRepository) ClosePeriodInTx(ctx context.Context, tx pgx.Tx, workplaceID, periodID, userID string, now time.Time) error {
	query := `UPDATE fiscal_periods SET status = $3, closed_at = $4, closed_by = $5, last_updated_at = $4, last_updated_by = $5
		WHERE workplace_id = $1 AND period_id = $2 AND status = $6`

	cmdTag, err := tx.Exec(ctx, query, workplaceID, periodID, string(domain.PeriodClosed), now, userID, string(domain.PeriodOpen))
	if err != nil {
		return mapDBError(err, "failed to close fiscal period %s", periodID)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("%w: fiscal period %s is already closed", apperrors.ErrConflict, periodID)
	}
	return nil
}
