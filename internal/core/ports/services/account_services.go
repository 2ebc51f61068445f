package services

import (
	"context"

	"github.com/SscSPs/ledger_engine/internal/core/domain"
	"github.com/SscSPs/ledger_engine/internal/dto"
	"github.com/shopspring/decimal"
)

// AccountReaderSvc defines read operations on the chart of accounts
type AccountReaderSvc interface {
	GetAccountByID(ctx context.Context, workplaceID, accountID string) (*domain.Account, error)
	GetAccountByNumber(ctx context.Context, workplaceID, accountNumber string) (*domain.Account, error)
	ListAccounts(ctx context.Context, workplaceID string, params dto.ListAccountsParams) ([]domain.Account, error)
	ListChildren(ctx context.Context, workplaceID, accountID string) ([]domain.Account, error)
	ListDescendants(ctx context.Context, workplaceID, accountID string) ([]domain.Account, error)
	// GetNormalBalanceSide is pure and never configurable.
	GetNormalBalanceSide(accountType domain.AccountType) domain.NormalBalanceSide
}

// AccountWriterSvc defines write operations on the chart of accounts
type AccountWriterSvc interface {
	CreateAccount(ctx context.Context, workplaceID string, req dto.CreateAccountRequest, userID string) (*domain.Account, error)
	AdjustAccount(ctx context.Context, workplaceID, accountID string, req dto.AdjustAccountRequest, userID string) (*domain.Account, error)
	// ApplyDelta atomically adds signedAmount to the account's balance.
	ApplyDelta(ctx context.Context, workplaceID, accountID string, signedAmount decimal.Decimal, userID string) (*domain.Account, error)
	DeleteAccount(ctx context.Context, workplaceID, accountID, userID string) error
}

// AccountSvcFacade combines all account-related service interfaces
type AccountSvcFacade interface {
	AccountReaderSvc
	AccountWriterSvc
}
