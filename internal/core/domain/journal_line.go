package domain

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// Side is the debit or credit column a line posts to.
type Side string

const (
	Debit  Side = "DEBIT"
	Credit Side = "CREDIT"
)

// JournalEntryLine is one debit or credit against a single account.
type JournalEntryLine struct {
	LineID       string          `json:"lineID"`
	EntryID      string          `json:"entryID"`
	WorkplaceID  string          `json:"workplaceID"`
	AccountID    string          `json:"accountID"`
	LineNo       int             `json:"lineNo"`
	Description  string          `json:"description"`
	DebitAmount  decimal.Decimal `json:"debitAmount"`
	CreditAmount decimal.Decimal `json:"creditAmount"`
	CurrencyCode string          `json:"currencyCode"`
	ExchangeRate decimal.Decimal `json:"exchangeRate"`
	AuditFields
}

var (
	ErrLineNegativeAmount = errors.New("line amounts must not be negative")
	ErrLineBothSides      = errors.New("line must not carry both a debit and a credit")
	ErrLineNoAmount       = errors.New("line must carry either a debit or a credit")
	ErrLineExchangeRate   = errors.New("line exchange rate must be positive")
	ErrLinePrecision      = errors.New("line amount exceeds the currency's minor units")
	ErrLineRateScale      = errors.New("line exchange rate does not fit NUMERIC(20,10)")
)

// Exchange rates are stored as NUMERIC(20,10): ten digits either side of the point.
const exchangeRateScale = 10

var maxExchangeRate = decimal.New(1, 20-exchangeRateScale)

// Validate enforces debit XOR credit, non-negative amounts, currency precision and
// an exchange rate the database stores without rounding.
func (l JournalEntryLine) Validate() error {
	if l.DebitAmount.IsNegative() || l.CreditAmount.IsNegative() {
		return ErrLineNegativeAmount
	}
	hasDebit := l.DebitAmount.IsPositive()
	hasCredit := l.CreditAmount.IsPositive()
	if hasDebit && hasCredit {
		return ErrLineBothSides
	}
	if !hasDebit && !hasCredit {
		return ErrLineNoAmount
	}
	if !l.ExchangeRate.IsPositive() {
		return ErrLineExchangeRate
	}
	if !l.ExchangeRate.Equal(l.ExchangeRate.Truncate(exchangeRateScale)) || l.ExchangeRate.GreaterThanOrEqual(maxExchangeRate) {
		return fmt.Errorf("%w: %s", ErrLineRateScale, l.ExchangeRate.String())
	}
	if !FitsMinorUnits(l.Amount(), l.CurrencyCode) {
		return fmt.Errorf("%w: %s allows %d decimals", ErrLinePrecision, l.CurrencyCode, CurrencyMinorUnits(l.CurrencyCode))
	}
	return nil
}

// Side reports which column the line posts to.
func (l JournalEntryLine) Side() Side {
	if l.DebitAmount.IsPositive() {
		return Debit
	}
	return Credit
}

// Amount is the non-zero side of the line in the line's own currency.
func (l JournalEntryLine) Amount() decimal.Decimal {
	if l.DebitAmount.IsPositive() {
		return l.DebitAmount
	}
	return l.CreditAmount
}

// Mirror returns a copy with the debit and credit columns swapped.
func (l JournalEntryLine) Mirror() JournalEntryLine {
	m := l
	m.DebitAmount, m.CreditAmount = l.CreditAmount, l.DebitAmount
	return m
}
