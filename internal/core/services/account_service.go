package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/SscSPs/ledger_engine/internal/apperrors"
	"github.com/SscSPs/ledger_engine/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_engine/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/ledger_engine/internal/core/ports/services"
	"github.com/SscSPs/ledger_engine/internal/dto"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// accountService implements the AccountSvcFacade interface
type accountService struct {
	BaseService
	accountRepo       portsrepo.AccountRepositoryWithTx
	maxNumberAttempts int
}

// NewAccountService creates a new account service with the provided options
func NewAccountService(repo portsrepo.AccountRepositoryWithTx, options ...ServiceOption) portssvc.AccountSvcFacade {
	opts := applyOptions(options)
	return &accountService{
		BaseService:       BaseService{clock: opts.clock},
		accountRepo:       repo,
		maxNumberAttempts: opts.maxNumberAttempts,
	}
}

// Ensure accountService implements the AccountSvcFacade interface
var _ portssvc.AccountSvcFacade = (*accountService)(nil)

func (s *accountService) CreateAccount(ctx context.Context, workplaceID string, req dto.CreateAccountRequest, userID string) (*domain.Account, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: account name is required", apperrors.ErrValidation)
	}

	accountType, err := domain.ParseAccountType(req.AccountType)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
	}

	currency := domain.NormalizeCurrency(req.CurrencyCode)
	if !domain.IsSupportedCurrency(currency) {
		return nil, fmt.Errorf("%w: currency %q is not supported", apperrors.ErrValidation, req.CurrencyCode)
	}

	if req.AccountNumber != nil && !domain.IsValidAccountNumber(*req.AccountNumber) {
		return nil, fmt.Errorf("%w: account number %q must be numeric", apperrors.ErrValidation, *req.AccountNumber)
	}

	parentID := ""
	if req.ParentAccountID != nil && *req.ParentAccountID != "" {
		parent, err := s.accountRepo.FindAccountByID(ctx, workplaceID, *req.ParentAccountID)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil, fmt.Errorf("%w: parent account %s", apperrors.ErrNotFound, *req.ParentAccountID)
			}
			return nil, fmt.Errorf("failed to load parent account: %w", err)
		}
		parentID = parent.AccountID
	}

	allowManual := true
	if req.AllowManualEntries != nil {
		allowManual = *req.AllowManualEntries
	}

	account := domain.Account{
		AccountID:          uuid.NewString(),
		WorkplaceID:        workplaceID,
		Name:               name,
		Description:        req.Description,
		AccountType:        accountType,
		SubType:            req.SubType,
		CurrencyCode:       currency,
		ParentAccountID:    parentID,
		IsActive:           true,
		IsSystem:           req.IsSystem,
		AllowManualEntries: allowManual,
		Tags:               req.Tags,
		Balance:            decimal.Zero,
		AuditFields:        domain.NewAuditFields(userID, s.Now()),
	}

	if req.AccountNumber != nil {
		account.AccountNumber = *req.AccountNumber
		err = s.accountRepo.SaveAccount(ctx, account)
	} else {
		err = s.saveWithGeneratedNumber(ctx, &account)
	}
	if err != nil {
		s.LogError(ctx, err, "Failed to save account",
			slog.String("workplace_id", workplaceID),
			slog.String("account_number", account.AccountNumber))
		return nil, err
	}

	s.LogInfo(ctx, "Account created successfully",
		slog.String("account_id", account.AccountID),
		slog.String("account_number", account.AccountNumber),
		slog.String("account_type", string(account.AccountType)))
	return &account, nil
}

// AdjustAccount edits an account under its row lock. A parent change also takes
// the workplace hierarchy lock first, so the type and cycle checks see every
// posting and move that committed before them.
func (s *accountService) AdjustAccount(ctx context.Context, workplaceID, accountID string, req dto.AdjustAccountRequest, userID string) (*domain.Account, error) {
	var newType *domain.AccountType
	if req.AccountType != nil {
		parsed, err := domain.ParseAccountType(*req.AccountType)
		if err != nil {
			return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
		}
		newType = &parsed
	}
	if req.Name != nil && strings.TrimSpace(*req.Name) == "" {
		return nil, fmt.Errorf("%w: account name must not be empty", apperrors.ErrValidation)
	}

	parentID := ""
	if req.ParentAccountID != nil {
		parentID = *req.ParentAccountID
		if parentID == accountID {
			return nil, fmt.Errorf("%w: an account cannot be its own parent", apperrors.ErrDomain)
		}
	}

	tx, err := s.accountRepo.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = s.accountRepo.Rollback(ctx, tx) }()

	lockIDs := []string{accountID}
	if parentID != "" {
		if err := s.accountRepo.LockAccountHierarchyInTx(ctx, tx, workplaceID); err != nil {
			return nil, err
		}
		lockIDs = append(lockIDs, parentID)
	}
	locked, err := s.accountRepo.FindAccountsByIDsForUpdate(ctx, tx, workplaceID, lockIDs)
	if err != nil {
		return nil, err
	}
	current, ok := locked[accountID]
	if !ok {
		return nil, fmt.Errorf("%w: account %s", apperrors.ErrNotFound, accountID)
	}
	account := &current

	if req.Name != nil {
		account.Name = strings.TrimSpace(*req.Name)
	}
	if req.Description != nil {
		account.Description = *req.Description
	}
	if req.SubType != nil {
		account.SubType = *req.SubType
	}
	if req.IsActive != nil {
		account.IsActive = *req.IsActive
	}
	if req.AllowManualEntries != nil {
		account.AllowManualEntries = *req.AllowManualEntries
	}
	if req.Tags != nil {
		account.Tags = *req.Tags
	}

	if newType != nil && *newType != account.AccountType {
		posted, err := s.accountRepo.HasPostedActivityInTx(ctx, tx, workplaceID, accountID)
		if err != nil {
			return nil, fmt.Errorf("failed to check posted activity: %w", err)
		}
		if posted {
			return nil, fmt.Errorf("%w: account type cannot change after lines have posted against it", apperrors.ErrDomain)
		}
		account.AccountType = *newType
	}

	if req.ParentAccountID != nil {
		if err := s.checkReparent(ctx, tx, workplaceID, accountID, parentID, locked); err != nil {
			return nil, err
		}
		account.ParentAccountID = parentID
	}

	account.Touch(userID, s.Now())
	if err := s.accountRepo.UpdateAccountInTx(ctx, tx, *account); err != nil {
		s.LogError(ctx, err, "Failed to update account", slog.String("account_id", accountID))
		return nil, err
	}
	if err := s.accountRepo.Commit(ctx, tx); err != nil {
		return nil, fmt.Errorf("failed to commit account update: %w", err)
	}

	s.LogInfo(ctx, "Account adjusted", slog.String("account_id", accountID))
	return account, nil
}

// checkReparent rejects a missing parent and moving an account under one of its
// descendants. locked holds the rows taken FOR UPDATE, parent included.
func (s *accountService) checkReparent(ctx context.Context, tx pgx.Tx, workplaceID, accountID, parentID string, locked map[string]domain.Account) error {
	if parentID == "" {
		return nil
	}
	if _, ok := locked[parentID]; !ok {
		return fmt.Errorf("%w: parent account %s", apperrors.ErrNotFound, parentID)
	}
	descendants, err := s.accountRepo.ListDescendantAccountsInTx(ctx, tx, workplaceID, accountID)
	if err != nil {
		return fmt.Errorf("failed to load descendants: %w", err)
	}
	if slices.ContainsFunc(descendants, func(a domain.Account) bool { return a.AccountID == parentID }) {
		return fmt.Errorf("%w: parent %s is a descendant of %s", apperrors.ErrDomain, parentID, accountID)
	}
	return nil
}

func (s *accountService) ApplyDelta(ctx context.Context, workplaceID, accountID string, signedAmount decimal.Decimal, userID string) (*domain.Account, error) {
	tx, err := s.accountRepo.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = s.accountRepo.Rollback(ctx, tx) }()

	locked, err := s.accountRepo.FindAccountsByIDsForUpdate(ctx, tx, workplaceID, []string{accountID})
	if err != nil {
		return nil, err
	}
	account, ok := locked[accountID]
	if !ok {
		return nil, fmt.Errorf("%w: account %s", apperrors.ErrNotFound, accountID)
	}
	if !account.IsActive {
		return nil, fmt.Errorf("%w: account %s is inactive", apperrors.ErrDomain, accountID)
	}

	now := s.Now()
	deltas := map[string]decimal.Decimal{accountID: signedAmount}
	if err := s.accountRepo.ApplyBalanceDeltasInTx(ctx, tx, workplaceID, deltas, userID, now); err != nil {
		return nil, err
	}
	if err := s.accountRepo.Commit(ctx, tx); err != nil {
		return nil, fmt.Errorf("failed to commit balance update: %w", err)
	}

	account.Balance = account.Balance.Add(signedAmount)
	account.Touch(userID, now)
	return &account, nil
}

func (s *accountService) DeleteAccount(ctx context.Context, workplaceID, accountID, userID string) error {
	account, err := s.accountRepo.FindAccountByID(ctx, workplaceID, accountID)
	if err != nil {
		return err
	}
	if account.IsSystem {
		return fmt.Errorf("%w: system account %s cannot be deleted", apperrors.ErrDomain, account.AccountNumber)
	}
	if err := s.accountRepo.SoftDeleteAccount(ctx, workplaceID, accountID, userID, s.Now()); err != nil {
		s.LogError(ctx, err, "Failed to delete account", slog.String("account_id", accountID))
		return err
	}
	s.LogInfo(ctx, "Account deleted", slog.String("account_id", accountID))
	return nil
}

func (s *accountService) GetAccountByID(ctx context.Context, workplaceID, accountID string) (*domain.Account, error) {
	return s.accountRepo.FindAccountByID(ctx, workplaceID, accountID)
}

func (s *accountService) GetAccountByNumber(ctx context.Context, workplaceID, accountNumber string) (*domain.Account, error) {
	return s.accountRepo.FindAccountByNumber(ctx, workplaceID, accountNumber)
}

func (s *accountService) ListAccounts(ctx context.Context, workplaceID string, params dto.ListAccountsParams) ([]domain.Account, error) {
	filter := domain.AccountFilter{
		IsActive: params.IsActive,
		Limit:    params.Limit,
		Offset:   params.Offset,
	}
	if filter.Limit <= 0 {
		filter.Limit = 100
	}
	if params.AccountType != "" {
		t, err := domain.ParseAccountType(params.AccountType)
		if err != nil {
			return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
		}
		filter.AccountType = &t
	}
	return s.accountRepo.ListAccounts(ctx, workplaceID, filter)
}

func (s *accountService) ListChildren(ctx context.Context, workplaceID, accountID string) ([]domain.Account, error) {
	if _, err := s.accountRepo.FindAccountByID(ctx, workplaceID, accountID); err != nil {
		return nil, err
	}
	return s.accountRepo.ListChildAccounts(ctx, workplaceID, accountID)
}

func (s *accountService) ListDescendants(ctx context.Context, workplaceID, accountID string) ([]domain.Account, error) {
	if _, err := s.accountRepo.FindAccountByID(ctx, workplaceID, accountID); err != nil {
		return nil, err
	}
	return s.accountRepo.ListDescendantAccounts(ctx, workplaceID, accountID)
}

func (s *accountService) GetNormalBalanceSide(accountType domain.AccountType) domain.NormalBalanceSide {
	return domain.NormalBalanceSideFor(accountType)
}
