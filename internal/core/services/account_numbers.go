package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/SscSPs/ledger_engine/internal/apperrors"
	"github.com/SscSPs/ledger_engine/internal/core/domain"
)

// saveWithGeneratedNumber draws max+1 from the type's block and inserts the account.
// A concurrent insert of the same number surfaces as ErrDuplicate from the unique
// index and triggers a fresh draw, at most maxNumberAttempts times.
func (s *accountService) saveWithGeneratedNumber(ctx context.Context, account *domain.Account) error {
	block, ok := domain.NumberBlockFor(account.AccountType)
	if !ok {
		return fmt.Errorf("%w: no number block for account type %s", apperrors.ErrValidation, account.AccountType)
	}

	for attempt := 1; attempt <= s.maxNumberAttempts; attempt++ {
		next, err := s.accountRepo.NextAccountNumber(ctx, account.WorkplaceID, block.Low, block.High)
		if err != nil {
			return fmt.Errorf("failed to compute next account number: %w", err)
		}
		if next > block.High {
			return fmt.Errorf("%w: account number block %d-%d for %s is exhausted",
				apperrors.ErrDomain, block.Low, block.High, account.AccountType)
		}

		account.AccountNumber = strconv.FormatInt(next, 10)
		err = s.accountRepo.SaveAccount(ctx, *account)
		if err == nil {
			return nil
		}
		if !errors.Is(err, apperrors.ErrDuplicate) {
			return err
		}
		s.LogDebug(ctx, "Generated account number already taken, retrying",
			slog.String("account_number", account.AccountNumber),
			slog.Int("attempt", attempt))
	}

	return fmt.Errorf("%w: could not allocate an account number after %d attempts",
		apperrors.ErrConflict, s.maxNumberAttempts)
}
