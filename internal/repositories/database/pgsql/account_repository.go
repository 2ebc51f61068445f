package pgsql

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/SscSPs/ledger_engine/internal/apperrors"
	"github.com/SscSPs/ledger_engine/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_engine/internal/core/ports/repositories"
	"github.com/SscSPs/ledger_engine/internal/models"
	"github.com/SscSPs/ledger_engine/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

const accountColumns = `account_id, workplace_id, account_number, name, description, account_type, sub_type,
	currency_code, parent_account_id, is_active, is_system, allow_manual_entries, tags, balance, deleted_at,
	created_at, created_by, last_updated_at, last_updated_by`

// PgxAccountRepository implements portsrepo.AccountRepositoryWithTx using pgx.
type PgxAccountRepository struct {
	BaseRepository
}

// NewPgxAccountRepository creates a new repository for account data.
func NewPgxAccountRepository(pool *pgxpool.Pool) portsrepo.AccountRepositoryWithTx {
	return &PgxAccountRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxAccountRepository implements portsrepo.AccountRepositoryWithTx
var _ portsrepo.AccountRepositoryWithTx = (*PgxAccountRepository)(nil)

func scanAccount(row pgx.Row) (domain.Account, error) {
	var m models.Account
	err := row.Scan(
		&m.AccountID, &m.WorkplaceID, &m.AccountNumber, &m.Name, &m.Description, &m.AccountType, &m.SubType,
		&m.CurrencyCode, &m.ParentAccountID, &m.IsActive, &m.IsSystem, &m.AllowManualEntries, &m.Tags, &m.Balance, &m.DeletedAt,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	if err != nil {
		return domain.Account{}, err
	}
	return mapping.ToDomainAccount(m), nil
}

func collectAccounts(rows pgx.Rows) ([]domain.Account, error) {
	defer rows.Close()
	accounts := []domain.Account{}
	for rows.Next() {
		acc, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan account row: %w", err)
		}
		accounts = append(accounts, acc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating account rows: %w", err)
	}
	return accounts, nil
}

func accountsByID(accounts []domain.Account) map[string]domain.Account {
	m := make(map[string]domain.Account, len(accounts))
	for _, a := range accounts {
		m[a.AccountID] = a
	}
	return m
}

// FindAccountByID retrieves a live account by its ID.
func (r *PgxAccountRepository) FindAccountByID(ctx context.Context, workplaceID, accountID string) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts
		WHERE workplace_id = $1 AND account_id = $2 AND deleted_at IS NULL`

	acc, err := scanAccount(r.Pool.QueryRow(ctx, query, workplaceID, accountID))
	if err != nil {
		return nil, mapDBError(err, "account %s", accountID)
	}
	return &acc, nil
}

// FindAccountByNumber retrieves a live account by its workplace-unique number.
func (r *PgxAccountRepository) FindAccountByNumber(ctx context.Context, workplaceID, accountNumber string) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts
		WHERE workplace_id = $1 AND account_number = $2 AND deleted_at IS NULL`

	acc, err := scanAccount(r.Pool.QueryRow(ctx, query, workplaceID, accountNumber))
	if err != nil {
		return nil, mapDBError(err, "account number %s", accountNumber)
	}
	return &acc, nil
}

// FindAccountsByIDs retrieves the accounts that exist among accountIDs.
func (r *PgxAccountRepository) FindAccountsByIDs(ctx context.Context, workplaceID string, accountIDs []string) (map[string]domain.Account, error) {
	if len(accountIDs) == 0 {
		return map[string]domain.Account{}, nil
	}
	query := `SELECT ` + accountColumns + ` FROM accounts
		WHERE workplace_id = $1 AND account_id = ANY($2) AND deleted_at IS NULL`

	rows, err := r.Pool.Query(ctx, query, workplaceID, accountIDs)
	if err != nil {
		return nil, mapDBError(err, "failed to query accounts by IDs")
	}
	accounts, err := collectAccounts(rows)
	if err != nil {
		return nil, err
	}
	return accountsByID(accounts), nil
}

// ListAccounts retrieves a page of accounts ordered by account number.
func (r *PgxAccountRepository) ListAccounts(ctx context.Context, workplaceID string, filter domain.AccountFilter) ([]domain.Account, error) {
	conditions := []string{"workplace_id = $1", "deleted_at IS NULL"}
	args := []any{workplaceID}

	if filter.AccountType != nil {
		args = append(args, string(*filter.AccountType))
		conditions = append(conditions, fmt.Sprintf("account_type = $%d", len(args)))
	}
	if filter.IsActive != nil {
		args = append(args, *filter.IsActive)
		conditions = append(conditions, fmt.Sprintf("is_active = $%d", len(args)))
	}
	args = append(args, filter.Limit, filter.Offset)

	query := fmt.Sprintf(`SELECT %s FROM accounts WHERE %s ORDER BY account_number LIMIT $%d OFFSET $%d`,
		accountColumns, strings.Join(conditions, " AND "), len(args)-1, len(args))

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, mapDBError(err, "failed to list accounts")
	}
	return collectAccounts(rows)
}

// ListChildAccounts retrieves the direct children of parentID.
func (r *PgxAccountRepository) ListChildAccounts(ctx context.Context, workplaceID, parentID string) ([]domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts
		WHERE workplace_id = $1 AND parent_account_id = $2 AND deleted_at IS NULL
		ORDER BY account_number`

	rows, err := r.Pool.Query(ctx, query, workplaceID, parentID)
	if err != nil {
		return nil, mapDBError(err, "failed to list children of account %s", parentID)
	}
	return collectAccounts(rows)
}

// ListDescendantAccounts walks the hierarchy below accountID.
func (r *PgxAccountRepository) ListDescendantAccounts(ctx context.Context, workplaceID, accountID string) ([]domain.Account, error) {
	return listDescendants(ctx, r.Pool, workplaceID, accountID)
}

// ListDescendantAccountsInTx walks the hierarchy below accountID inside tx.
func (r *PgxAccountRepository) ListDescendantAccountsInTx(ctx context.Context, tx pgx.Tx, workplaceID, accountID string) ([]domain.Account, error) {
	return listDescendants(ctx, tx, workplaceID, accountID)
}

func listDescendants(ctx context.Context, q querier, workplaceID, accountID string) ([]domain.Account, error) {
	query := `WITH RECURSIVE tree AS (
			SELECT account_id FROM accounts
			WHERE workplace_id = $1 AND parent_account_id = $2 AND deleted_at IS NULL
			UNION
			SELECT a.account_id FROM accounts a
			JOIN tree t ON a.parent_account_id = t.account_id
			WHERE a.workplace_id = $1 AND a.deleted_at IS NULL
		)
		SELECT ` + accountColumns + ` FROM accounts
		WHERE workplace_id = $1 AND account_id IN (SELECT account_id FROM tree)
		ORDER BY account_number`

	rows, err := q.Query(ctx, query, workplaceID, accountID)
	if err != nil {
		return nil, mapDBError(err, "failed to list descendants of account %s", accountID)
	}
	return collectAccounts(rows)
}

// HasPostedActivityInTx reports whether a non-draft entry has a line on the
// account. Callers hold the account row lock, so a posting that touches the
// account either committed before the check or waits for tx to end.
func (r *PgxAccountRepository) HasPostedActivityInTx(ctx context.Context, tx pgx.Tx, workplaceID, accountID string) (bool, error) {
	query := `SELECT EXISTS (
			SELECT 1 FROM journal_entry_lines l
			JOIN journal_entries e ON e.entry_id = l.entry_id
			WHERE l.workplace_id = $1 AND l.account_id = $2 AND e.status <> $3
		)`

	var exists bool
	if err := tx.QueryRow(ctx, query, workplaceID, accountID, string(domain.Draft)).Scan(&exists); err != nil {
		return false, mapDBError(err, "failed to check activity for account %s", accountID)
	}
	return exists, nil
}

// LockAccountHierarchyInTx takes a workplace-wide advisory lock released at the
// end of tx. Concurrent reparents queue on it, so each cycle check sees the
// previous move.
func (r *PgxAccountRepository) LockAccountHierarchyInTx(ctx context.Context, tx pgx.Tx, workplaceID string) error {
	if _, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtext($1))`, "account_hierarchy:"+workplaceID); err != nil {
		return mapDBError(err, "failed to lock account hierarchy")
	}
	return nil
}

// NextAccountNumber returns one past the highest numeric account number inside
// [low, high]. Soft-deleted rows count because their numbers stay reserved.
func (r *PgxAccountRepository) NextAccountNumber(ctx context.Context, workplaceID string, low, high int64) (int64, error) {
	query := `SELECT COALESCE(MAX(n), $2 - 1) + 1 FROM (
			SELECT CASE WHEN account_number ~ '^[0-9]{1,18}$' THEN account_number::bigint END AS n
			FROM accounts WHERE workplace_id = $1
		) nums
		WHERE n BETWEEN $2 AND $3`

	var next int64
	if err := r.Pool.QueryRow(ctx, query, workplaceID, low, high).Scan(&next); err != nil {
		return 0, mapDBError(err, "failed to compute next account number")
	}
	return next, nil
}

// SaveAccount inserts a new account.
func (r *PgxAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	m := mapping.ToModelAccount(account)
	query := `INSERT INTO accounts (` + accountColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)`

	_, err := r.Pool.Exec(ctx, query,
		m.AccountID, m.WorkplaceID, m.AccountNumber, m.Name, m.Description, m.AccountType, m.SubType,
		m.CurrencyCode, m.ParentAccountID, m.IsActive, m.IsSystem, m.AllowManualEntries, m.Tags, m.Balance, m.DeletedAt,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return mapDBError(err, "failed to save account number %s", m.AccountNumber)
	}
	return nil
}

// UpdateAccountInTx rewrites the mutable columns of a live account. The
// balance only moves through ApplyBalanceDeltasInTx.
func (r *PgxAccountRepository) UpdateAccountInTx(ctx context.Context, tx pgx.Tx, account domain.Account) error {
	m := mapping.ToModelAccount(account)
	query := `UPDATE accounts SET
			name = $3, description = $4, account_type = $5, sub_type = $6, parent_account_id = $7,
			is_active = $8, allow_manual_entries = $9, tags = $10,
			last_updated_at = $11, last_updated_by = $12
		WHERE workplace_id = $1 AND account_id = $2 AND deleted_at IS NULL`

	cmdTag, err := tx.Exec(ctx, query,
		m.WorkplaceID, m.AccountID,
		m.Name, m.Description, m.AccountType, m.SubType, m.ParentAccountID,
		m.IsActive, m.AllowManualEntries, m.Tags,
		m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return mapDBError(err, "failed to update account %s", m.AccountID)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("%w: account %s", apperrors.ErrNotFound, m.AccountID)
	}
	return nil
}

// SoftDeleteAccount marks an account deleted and inactive.
func (r *PgxAccountRepository) SoftDeleteAccount(ctx context.Context, workplaceID, accountID, userID string, now time.Time) error {
	query := `UPDATE accounts SET deleted_at = $3, is_active = FALSE, last_updated_at = $3, last_updated_by = $4
		WHERE workplace_id = $1 AND account_id = $2 AND deleted_at IS NULL`

	cmdTag, err := r.Pool.Exec(ctx, query, workplaceID, accountID, now, userID)
	if err != nil {
		return mapDBError(err, "failed to delete account %s", accountID)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("%w: account %s", apperrors.ErrNotFound, accountID)
	}
	return nil
}

// FindAccountsByIDsForUpdate locks the accounts in id order so that concurrent
// postings touching overlapping accounts cannot deadlock.
func (r *PgxAccountRepository) FindAccountsByIDsForUpdate(ctx context.Context, tx pgx.Tx, workplaceID string, accountIDs []string) (map[string]domain.Account, error) {
	if len(accountIDs) == 0 {
		return map[string]domain.Account{}, nil
	}
	query := `SELECT ` + accountColumns + ` FROM accounts
		WHERE workplace_id = $1 AND account_id = ANY($2) AND deleted_at IS NULL
		ORDER BY account_id
		FOR UPDATE`

	rows, err := tx.Query(ctx, query, workplaceID, accountIDs)
	if err != nil {
		return nil, mapDBError(err, "failed to lock accounts")
	}
	accounts, err := collectAccounts(rows)
	if err != nil {
		return nil, err
	}
	return accountsByID(accounts), nil
}

// ApplyBalanceDeltasInTx adds every delta to its account balance in one batch.
func (r *PgxAccountRepository) ApplyBalanceDeltasInTx(ctx context.Context, tx pgx.Tx, workplaceID string, deltas map[string]decimal.Decimal, userID string, now time.Time) error {
	if len(deltas) == 0 {
		return nil
	}
	ids := make([]string, 0, len(deltas))
	for id := range deltas {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	query := `UPDATE accounts SET balance = balance + $3, last_updated_at = $4, last_updated_by = $5
		WHERE workplace_id = $1 AND account_id = $2 AND deleted_at IS NULL`

	batch := &pgx.Batch{}
	for _, id := range ids {
		batch.Queue(query, workplaceID, id, deltas[id], now, userID)
	}

	br := tx.SendBatch(ctx, batch)
	defer br.Close()

	for _, id := range ids {
		cmdTag, err := br.Exec()
		if err != nil {
			return mapDBError(err, "failed to update balance of account %s", id)
		}
		if cmdTag.RowsAffected() == 0 {
			return fmt.Errorf("%w: account %s", apperrors.ErrNotFound, id)
		}
	}
	return br.Close()
}
