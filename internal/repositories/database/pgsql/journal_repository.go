package pgsql

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/SscSPs/ledger_engine/internal/apperrors"
	"github.com/SscSPs/ledger_engine/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_engine/internal/core/ports/repositories"
	"github.com/SscSPs/ledger_engine/internal/models"
	"github.com/SscSPs/ledger_engine/internal/utils/mapping"
	"github.com/SscSPs/ledger_engine/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

const entryColumns = `entry_id, workplace_id, entry_number, entry_date, reference, description, fiscal_period_id,
	status, total_debit, total_credit, currency_code, tags, reversal_of_id, reversed_by_id, posted_at,
	created_at, created_by, last_updated_at, last_updated_by`

const lineColumns = `line_id, entry_id, workplace_id, account_id, line_no, description, debit_amount, credit_amount,
	currency_code, exchange_rate, created_at, created_by, last_updated_at, last_updated_by`

// PgxJournalRepository implements portsrepo.JournalRepositoryWithTx using pgx.
type PgxJournalRepository struct {
	BaseRepository
}

// NewPgxJournalRepository creates a new repository for journal data.
func NewPgxJournalRepository(pool *pgxpool.Pool) portsrepo.JournalRepositoryWithTx {
	return &PgxJournalRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxJournalRepository implements portsrepo.JournalRepositoryWithTx
var _ portsrepo.JournalRepositoryWithTx = (*PgxJournalRepository)(nil)

func scanEntry(row pgx.Row) (domain.JournalEntry, error) {
	var m models.JournalEntry
	err := row.Scan(
		&m.EntryID, &m.WorkplaceID, &m.EntryNumber, &m.EntryDate, &m.Reference, &m.Description, &m.FiscalPeriodID,
		&m.Status, &m.TotalDebit, &m.TotalCredit, &m.CurrencyCode, &m.Tags, &m.ReversalOfID, &m.ReversedByID, &m.PostedAt,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	if err != nil {
		return domain.JournalEntry{}, err
	}
	entry := mapping.ToDomainJournalEntry(m)
	entry.EntryDate = domain.DateOnly(entry.EntryDate)
	return entry, nil
}

func collectEntries(rows pgx.Rows) ([]domain.JournalEntry, error) {
	defer rows.Close()
	entries := []domain.JournalEntry{}
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan journal entry row: %w", err)
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating journal entry rows: %w", err)
	}
	return entries, nil
}

func (r *PgxJournalRepository) loadLines(ctx context.Context, q querier, workplaceID, entryID string) ([]domain.JournalEntryLine, error) {
	query := `SELECT ` + lineColumns + ` FROM journal_entry_lines
		WHERE workplace_id = $1 AND entry_id = $2
		ORDER BY line_no`

	rows, err := q.Query(ctx, query, workplaceID, entryID)
	if err != nil {
		return nil, mapDBError(err, "failed to query lines of entry %s", entryID)
	}
	defer rows.Close()

	var lines []models.JournalEntryLine
	for rows.Next() {
		var l models.JournalEntryLine
		if err := rows.Scan(
			&l.LineID, &l.EntryID, &l.WorkplaceID, &l.AccountID, &l.LineNo, &l.Description, &l.DebitAmount, &l.CreditAmount,
			&l.CurrencyCode, &l.ExchangeRate, &l.CreatedAt, &l.CreatedBy, &l.LastUpdatedAt, &l.LastUpdatedBy,
		); err != nil {
			return nil, fmt.Errorf("failed to scan journal line row: %w", err)
		}
		lines = append(lines, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating journal line rows: %w", err)
	}
	return mapping.ToDomainJournalEntryLineSlice(lines), nil
}

func (r *PgxJournalRepository) findEntry(ctx context.Context, q querier, workplaceID, column, value, suffix string) (*domain.JournalEntry, error) {
	query := fmt.Sprintf(`SELECT %s FROM journal_entries WHERE workplace_id = $1 AND %s = $2 %s`, entryColumns, column, suffix)

	entry, err := scanEntry(q.QueryRow(ctx, query, workplaceID, value))
	if err != nil {
		return nil, mapDBError(err, "journal entry %s", value)
	}
	entry.Lines, err = r.loadLines(ctx, q, workplaceID, entry.EntryID)
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

// FindEntryByID retrieves an entry with its lines.
func (r *PgxJournalRepository) FindEntryByID(ctx context.Context, workplaceID, entryID string) (*domain.JournalEntry, error) {
	return r.findEntry(ctx, r.Pool, workplaceID, "entry_id", entryID, "")
}

// FindEntryByNumber retrieves an entry by its JE-number.
func (r *PgxJournalRepository) FindEntryByNumber(ctx context.Context, workplaceID, entryNumber string) (*domain.JournalEntry, error) {
	return r.findEntry(ctx, r.Pool, workplaceID, "entry_number", entryNumber, "")
}

// FindEntryByIDForUpdate locks the entry header for the rest of tx.
func (r *PgxJournalRepository) FindEntryByIDForUpdate(ctx context.Context, tx pgx.Tx, workplaceID, entryID string) (*domain.JournalEntry, error) {
	return r.findEntry(ctx, tx, workplaceID, "entry_id", entryID, "FOR UPDATE")
}

// ListEntries retrieves entry headers newest first using keyset pagination.
func (r *PgxJournalRepository) ListEntries(ctx context.Context, workplaceID string, filter domain.JournalEntryFilter) ([]domain.JournalEntry, *string, error) {
	conditions := []string{"workplace_id = $1"}
	args := []any{workplaceID}

	if filter.Status != nil {
		args = append(args, string(*filter.Status))
		conditions = append(conditions, fmt.Sprintf("status = $%d", len(args)))
	}
	if filter.From != nil {
		args = append(args, domain.DateOnly(*filter.From))
		conditions = append(conditions, fmt.Sprintf("entry_date >= $%d", len(args)))
	}
	if filter.To != nil {
		args = append(args, domain.DateOnly(*filter.To))
		conditions = append(conditions, fmt.Sprintf("entry_date <= $%d", len(args)))
	}
	if filter.NextToken != nil && *filter.NextToken != "" {
		cursorDate, cursorNumber, err := pagination.DecodeEntryToken(*filter.NextToken)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
		}
		args = append(args, cursorDate, cursorNumber)
		conditions = append(conditions, fmt.Sprintf("(entry_date, entry_number) < ($%d, $%d)", len(args)-1, len(args)))
	}

	// one extra row tells us whether another page exists
	args = append(args, filter.Limit+1)
	query := fmt.Sprintf(`SELECT %s FROM journal_entries WHERE %s ORDER BY entry_date DESC, entry_number DESC LIMIT $%d`,
		entryColumns, strings.Join(conditions, " AND "), len(args))

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, mapDBError(err, "failed to list journal entries")
	}
	entries, err := collectEntries(rows)
	if err != nil {
		return nil, nil, err
	}

	var nextToken *string
	if len(entries) > filter.Limit {
		entries = entries[:filter.Limit]
		last := entries[len(entries)-1]
		token := pagination.EncodeEntryToken(last.EntryDate, last.EntryNumber)
		nextToken = &token
	}
	return entries, nextToken, nil
}

// nextEntryNumber bumps the workplace's sequence row. The row lock is held until
// tx ends, so numbers are gap-free among committed entries.
func (r *PgxJournalRepository) nextEntryNumber(ctx context.Context, tx pgx.Tx, workplaceID string) (string, error) {
	query := `INSERT INTO journal_entry_sequences (workplace_id, last_value) VALUES ($1, 1)
		ON CONFLICT (workplace_id) DO UPDATE SET last_value = journal_entry_sequences.last_value + 1
		RETURNING last_value`

	var seq int64
	if err := tx.QueryRow(ctx, query, workplaceID).Scan(&seq); err != nil {
		return "", mapDBError(err, "failed to allocate entry number")
	}
	return domain.FormatEntryNumber(seq), nil
}

// InsertEntryInTx numbers the entry and inserts the header and all lines.
func (r *PgxJournalRepository) InsertEntryInTx(ctx context.Context, tx pgx.Tx, entry *domain.JournalEntry) error {
	number, err := r.nextEntryNumber(ctx, tx, entry.WorkplaceID)
	if err != nil {
		return err
	}
	entry.EntryNumber = number

	m := mapping.ToModelJournalEntry(*entry)
	query := `INSERT INTO journal_entries (` + entryColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)`

	_, err = tx.Exec(ctx, query,
		m.EntryID, m.WorkplaceID, m.EntryNumber, m.EntryDate, m.Reference, m.Description, m.FiscalPeriodID,
		m.Status, m.TotalDebit, m.TotalCredit, m.CurrencyCode, m.Tags, m.ReversalOfID, m.ReversedByID, m.PostedAt,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return mapDBError(err, "failed to insert journal entry %s", m.EntryNumber)
	}

	if len(entry.Lines) == 0 {
		return nil
	}
	batch := &pgx.Batch{}
	for _, line := range entry.Lines {
		queueLineInsert(batch, line)
	}
	br := tx.SendBatch(ctx, batch)
	defer br.Close()
	for _, line := range entry.Lines {
		if _, err := br.Exec(); err != nil {
			return mapDBError(err, "failed to insert line %d of entry %s", line.LineNo, m.EntryNumber)
		}
	}
	return br.Close()
}

const insertLineQuery = `INSERT INTO journal_entry_lines (` + lineColumns + `)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`

func lineArgs(line domain.JournalEntryLine) []any {
	l := mapping.ToModelJournalEntryLine(line)
	return []any{
		l.LineID, l.EntryID, l.WorkplaceID, l.AccountID, l.LineNo, l.Description, l.DebitAmount, l.CreditAmount,
		l.CurrencyCode, l.ExchangeRate, l.CreatedAt, l.CreatedBy, l.LastUpdatedAt, l.LastUpdatedBy,
	}
}

func queueLineInsert(batch *pgx.Batch, line domain.JournalEntryLine) {
	batch.Queue(insertLineQuery, lineArgs(line)...)
}

// InsertLineInTx adds a single line to a draft.
func (r *PgxJournalRepository) InsertLineInTx(ctx context.Context, tx pgx.Tx, line domain.JournalEntryLine) error {
	if _, err := tx.Exec(ctx, insertLineQuery, lineArgs(line)...); err != nil {
		return mapDBError(err, "failed to insert line %s", line.LineID)
	}
	return nil
}

// UpdateLineInTx rewrites the editable columns of a line.
func (r *PgxJournalRepository) UpdateLineInTx(ctx context.Context, tx pgx.Tx, line domain.JournalEntryLine) error {
	l := mapping.ToModelJournalEntryLine(line)
	query := `UPDATE journal_entry_lines SET
			account_id = $4, description = $5, debit_amount = $6, credit_amount = $7,
			currency_code = $8, exchange_rate = $9, last_updated_at = $10, last_updated_by = $11
		WHERE workplace_id = $1 AND entry_id = $2 AND line_id = $3`

	cmdTag, err := tx.Exec(ctx, query,
		l.WorkplaceID, l.EntryID, l.LineID,
		l.AccountID, l.Description, l.DebitAmount, l.CreditAmount,
		l.CurrencyCode, l.ExchangeRate, l.LastUpdatedAt, l.LastUpdatedBy,
	)
	if err != nil {
		return mapDBError(err, "failed to update line %s", l.LineID)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("%w: journal line %s", apperrors.ErrNotFound, l.LineID)
	}
	return nil
}

// DeleteLineInTx removes a line from a draft.
func (r *PgxJournalRepository) DeleteLineInTx(ctx context.Context, tx pgx.Tx, workplaceID, entryID, lineID string) error {
	query := `DELETE FROM journal_entry_lines WHERE workplace_id = $1 AND entry_id = $2 AND line_id = $3`

	cmdTag, err := tx.Exec(ctx, query, workplaceID, entryID, lineID)
	if err != nil {
		return mapDBError(err, "failed to delete line %s", lineID)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("%w: journal line %s", apperrors.ErrNotFound, lineID)
	}
	return nil
}

// UpdateEntryTotalsInTx stores recomputed totals on a draft header.
func (r *PgxJournalRepository) UpdateEntryTotalsInTx(ctx context.Context, tx pgx.Tx, workplaceID, entryID string, totalDebit, totalCredit decimal.Decimal, userID string, now time.Time) error {
	query := `UPDATE journal_entries SET total_debit = $3, total_credit = $4, last_updated_at = $5, last_updated_by = $6
		WHERE workplace_id = $1 AND entry_id = $2`

	cmdTag, err := tx.Exec(ctx, query, workplaceID, entryID, totalDebit, totalCredit, now, userID)
	if err != nil {
		return mapDBError(err, "failed to update totals of entry %s", entryID)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("%w: journal entry %s", apperrors.ErrNotFound, entryID)
	}
	return nil
}

// UpdateEntryHeaderInTx rewrites the editable header columns of a draft.
func (r *PgxJournalRepository) UpdateEntryHeaderInTx(ctx context.Context, tx pgx.Tx, entry domain.JournalEntry) error {
	m := mapping.ToModelJournalEntry(entry)
	query := `UPDATE journal_entries SET
			entry_date = $3, fiscal_period_id = $4, reference = $5, description = $6,
			last_updated_at = $7, last_updated_by = $8
		WHERE workplace_id = $1 AND entry_id = $2 AND status = $9`

	cmdTag, err := tx.Exec(ctx, query,
		m.WorkplaceID, m.EntryID,
		m.EntryDate, m.FiscalPeriodID, m.Reference, m.Description,
		m.LastUpdatedAt, m.LastUpdatedBy, string(domain.Draft),
	)
	if err != nil {
		return mapDBError(err, "failed to update journal entry %s", m.EntryID)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("%w: journal entry %s is no longer a draft", apperrors.ErrConflict, m.EntryID)
	}
	return nil
}

// MarkEntryPostedInTx moves a draft to POSTED. A row that is no longer a draft
// means another request posted it first.
func (r *PgxJournalRepository) MarkEntryPostedInTx(ctx context.Context, tx pgx.Tx, entry domain.JournalEntry) error {
	m := mapping.ToModelJournalEntry(entry)
	query := `UPDATE journal_entries SET
			status = $3, total_debit = $4, total_credit = $5, fiscal_period_id = $6, posted_at = $7,
			last_updated_at = $8, last_updated_by = $9
		WHERE workplace_id = $1 AND entry_id = $2 AND status = $10`

	cmdTag, err := tx.Exec(ctx, query,
		m.WorkplaceID, m.EntryID,
		string(domain.Posted), m.TotalDebit, m.TotalCredit, m.FiscalPeriodID, m.PostedAt,
		m.LastUpdatedAt, m.LastUpdatedBy, string(domain.Draft),
	)
	if err != nil {
		return mapDBError(err, "failed to post entry %s", m.EntryID)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("%w: journal entry %s is no longer a draft", apperrors.ErrConflict, m.EntryID)
	}
	return nil
}

// MarkEntryReversedInTx links a posted entry to its reversal.
func (r *PgxJournalRepository) MarkEntryReversedInTx(ctx context.Context, tx pgx.Tx, workplaceID, entryID, reversedByID, userID string, now time.Time) error {
	query := `UPDATE journal_entries SET status = $3, reversed_by_id = $4, last_updated_at = $5, last_updated_by = $6
		WHERE workplace_id = $1 AND entry_id = $2 AND status = $7`

	cmdTag, err := tx.Exec(ctx, query, workplaceID, entryID, string(domain.Reversed), reversedByID, now, userID, string(domain.Posted))
	if err != nil {
		return mapDBError(err, "failed to mark entry %s reversed", entryID)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("%w: journal entry %s is not posted", apperrors.ErrConflict, entryID)
	}
	return nil
}

// ListDraftsForPeriodInTx returns draft headers assigned to the period or dated inside it.
func (r *PgxJournalRepository) ListDraftsForPeriodInTx(ctx context.Context, tx pgx.Tx, workplaceID, periodID string, from, to time.Time) ([]domain.JournalEntry, error) {
	query := `SELECT ` + entryColumns + ` FROM journal_entries
		WHERE workplace_id = $1 AND status = $2
		AND (fiscal_period_id = $3 OR entry_date BETWEEN $4 AND $5)
		ORDER BY entry_date, entry_number`

	rows, err := tx.Query(ctx, query, workplaceID, string(domain.Draft), periodID, domain.DateOnly(from), domain.DateOnly(to))
	if err != nil {
		return nil, mapDBError(err, "failed to list drafts for period %s", periodID)
	}
	return collectEntries(rows)
}
