package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/ledger_engine/internal/core/domain"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// AccountReader defines read operations for account data. Every method is scoped
// to a single workplace.
type AccountReader interface {
	FindAccountByID(ctx context.Context, workplaceID, accountID string) (*domain.Account, error)
	FindAccountByNumber(ctx context.Context, workplaceID, accountNumber string) (*domain.Account, error)
	// FindAccountsByIDs returns only the accounts that exist; callers check for gaps.
	FindAccountsByIDs(ctx context.Context, workplaceID string, accountIDs []string) (map[string]domain.Account, error)
	ListAccounts(ctx context.Context, workplaceID string, filter domain.AccountFilter) ([]domain.Account, error)
	ListChildAccounts(ctx context.Context, workplaceID, parentID string) ([]domain.Account, error)
	// ListDescendantAccounts walks the hierarchy below accountID, excluding it.
	ListDescendantAccounts(ctx context.Context, workplaceID, accountID string) ([]domain.Account, error)
	// NextAccountNumber returns max(number in [low, high]) + 1, or low when the block is empty.
	NextAccountNumber(ctx context.Context, workplaceID string, low, high int64) (int64, error)
}

// AccountWriter defines write operations for account data
type AccountWriter interface {
	// SaveAccount inserts a new account. A clash on (workplace, number) returns apperrors.ErrDuplicate.
	SaveAccount(ctx context.Context, account domain.Account) error
	SoftDeleteAccount(ctx context.Context, workplaceID, accountID, userID string, now time.Time) error
}

// AccountTransactionSupport defines operations that run inside a caller's transaction
type AccountTransactionSupport interface {
	// FindAccountsByIDsForUpdate locks the rows in id order and returns them.
	FindAccountsByIDsForUpdate(ctx context.Context, tx pgx.Tx, workplaceID string, accountIDs []string) (map[string]domain.Account, error)

	// ApplyBalanceDeltasInTx adds each delta to its account's balance.
	ApplyBalanceDeltasInTx(ctx context.Context, tx pgx.Tx, workplaceID string, deltas map[string]decimal.Decimal, userID string, now time.Time) error

	// LockAccountHierarchyInTx serialises parent changes within the workplace until tx ends.
	LockAccountHierarchyInTx(ctx context.Context, tx pgx.Tx, workplaceID string) error
	ListDescendantAccountsInTx(ctx context.Context, tx pgx.Tx, workplaceID, accountID string) ([]domain.Account, error)
	// HasPostedActivityInTx reports whether any posted or reversed entry has a line on the account.
	HasPostedActivityInTx(ctx context.Context, tx pgx.Tx, workplaceID, accountID string) (bool, error)
	// UpdateAccountInTx rewrites the mutable columns. The balance is never written.
	UpdateAccountInTx(ctx context.Context, tx pgx.Tx, account domain.Account) error
}

// AccountRepositoryFacade combines all account-related repository interfaces
type AccountRepositoryFacade interface {
	AccountReader
	AccountWriter
	AccountTransactionSupport
}

// AccountRepositoryWithTx extends AccountRepositoryFacade with transaction capabilities
type AccountRepositoryWithTx interface {
	AccountRepositoryFacade
	TransactionManager
}
