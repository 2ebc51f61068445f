package accounting

import (
	"errors"
	"fmt"

	"github.com/SscSPs/ledger_engine/internal/core/domain"
	"github.com/shopspring/decimal"
)

var (
	ErrTooFewLines = errors.New("journal entry must have at least two lines")
	ErrUnbalanced  = errors.New("journal entry debits and credits do not balance")
)

// SignedAmount returns the balance delta a line applies to an account of the given type.
// A line on the account's normal side increases the balance, the other side decreases it.
func SignedAmount(line domain.JournalEntryLine, accountType domain.AccountType) (decimal.Decimal, error) {
	if !accountType.IsValid() {
		return decimal.Zero, fmt.Errorf("unknown account type '%s' encountered for account ID %s", accountType, line.AccountID)
	}
	amount := line.Amount()
	onNormalSide := (line.Side() == domain.Debit) == (domain.NormalBalanceSideFor(accountType) == domain.DebitNormal)
	if !onNormalSide {
		amount = amount.Neg()
	}
	return amount, nil
}

// EntryCurrencyAmount converts a line amount into the entry currency and rounds it
// to that currency's minor units.
func EntryCurrencyAmount(amount decimal.Decimal, rate decimal.Decimal, entryCurrency string) decimal.Decimal {
	if rate.IsZero() {
		rate = decimal.NewFromInt(1)
	}
	return domain.RoundToMinorUnits(amount.Mul(rate), entryCurrency)
}

// Totals sums debit and credit columns in the entry currency.
func Totals(lines []domain.JournalEntryLine, entryCurrency string) (debits, credits decimal.Decimal) {
	debits, credits = decimal.Zero, decimal.Zero
	for _, l := range lines {
		debits = debits.Add(EntryCurrencyAmount(l.DebitAmount, l.ExchangeRate, entryCurrency))
		credits = credits.Add(EntryCurrencyAmount(l.CreditAmount, l.ExchangeRate, entryCurrency))
	}
	return debits, credits
}

// ValidateBalance reports whether an entry's lines balance at the entry currency's
// minor-unit precision. Fewer than two lines never balance.
func ValidateBalance(lines []domain.JournalEntryLine, entryCurrency string) (debits, credits decimal.Decimal, err error) {
	debits, credits = Totals(lines, entryCurrency)
	if len(lines) < 2 {
		return debits, credits, ErrTooFewLines
	}
	if !domain.RoundToMinorUnits(debits, entryCurrency).Equal(domain.RoundToMinorUnits(credits, entryCurrency)) {
		return debits, credits, fmt.Errorf("%w: debits sum is %s and credits sum is %s", ErrUnbalanced, debits.String(), credits.String())
	}
	return debits, credits, nil
}

// BalanceDeltas folds the signed amounts of every line into one delta per account.
func BalanceDeltas(lines []domain.JournalEntryLine, accounts map[string]domain.Account) (map[string]decimal.Decimal, error) {
	deltas := make(map[string]decimal.Decimal, len(accounts))
	for _, line := range lines {
		acc, ok := accounts[line.AccountID]
		if !ok {
			return nil, fmt.Errorf("account %s missing for line %s", line.AccountID, line.LineID)
		}
		signed, err := SignedAmount(line, acc.AccountType)
		if err != nil {
			return nil, err
		}
		deltas[line.AccountID] = deltas[line.AccountID].Add(signed)
	}
	return deltas, nil
}
