package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// AccountType defines the fundamental accounting type of an account.
type AccountType string

const (
	Asset     AccountType = "ASSET"
	Liability AccountType = "LIABILITY"
	Equity    AccountType = "EQUITY"
	Revenue   AccountType = "REVENUE"
	Expense   AccountType = "EXPENSE"
)

// AccountTypes lists every valid account type in chart-of-accounts order.
var AccountTypes = []AccountType{Asset, Liability, Equity, Revenue, Expense}

// ParseAccountType accepts any casing of a known type.
func ParseAccountType(s string) (AccountType, error) {
	t := AccountType(strings.ToUpper(strings.TrimSpace(s)))
	if !t.IsValid() {
		return "", fmt.Errorf("unknown account type %q", s)
	}
	return t, nil
}

func (t AccountType) IsValid() bool {
	switch t {
	case Asset, Liability, Equity, Revenue, Expense:
		return true
	}
	return false
}

// NormalBalanceSide is the side on which a positive balance sits.
type NormalBalanceSide string

const (
	DebitNormal  NormalBalanceSide = "DEBIT"
	CreditNormal NormalBalanceSide = "CREDIT"
)

// NormalBalanceSideFor maps an account type to its normal side.
// Asset and Expense are debit-normal, everything else is credit-normal.
func NormalBalanceSideFor(t AccountType) NormalBalanceSide {
	switch t {
	case Asset, Expense:
		return DebitNormal
	default:
		return CreditNormal
	}
}

// AccountNumberBlock is the inclusive numeric range auto-generated numbers are drawn from.
type AccountNumberBlock struct {
	Low  int64
	High int64
}

var accountNumberBlocks = map[AccountType]AccountNumberBlock{
	Asset:     {Low: 1000, High: 1999},
	Liability: {Low: 2000, High: 2999},
	Equity:    {Low: 3000, High: 3999},
	Revenue:   {Low: 4000, High: 4999},
	Expense:   {Low: 5000, High: 5999},
}

// NumberBlockFor returns the auto-numbering block of an account type.
func NumberBlockFor(t AccountType) (AccountNumberBlock, bool) {
	b, ok := accountNumberBlocks[t]
	return b, ok
}

// Account represents a node in the chart of accounts.
type Account struct {
	AccountID          string          `json:"accountID"`
	WorkplaceID        string          `json:"workplaceID"`
	AccountNumber      string          `json:"accountNumber"`
	Name               string          `json:"name"`
	Description        string          `json:"description"`
	AccountType        AccountType     `json:"accountType"`
	SubType            string          `json:"subType"`
	CurrencyCode       string          `json:"currencyCode"`
	ParentAccountID    string          `json:"parentAccountID"`
	IsActive           bool            `json:"isActive"`
	IsSystem           bool            `json:"isSystem"`
	AllowManualEntries bool            `json:"allowManualEntries"`
	Tags               []string        `json:"tags"`
	Balance            decimal.Decimal `json:"balance"`
	DeletedAt          *time.Time      `json:"deletedAt,omitempty"`
	AuditFields
}

// NormalBalanceSide of the account's type.
func (a Account) NormalBalanceSide() NormalBalanceSide {
	return NormalBalanceSideFor(a.AccountType)
}

// AccountFilter narrows ListAccounts.
type AccountFilter struct {
	AccountType *AccountType
	IsActive    *bool
	Limit       int
	Offset      int
}

const maxAccountNumberLength = 20

// IsValidAccountNumber reports whether s is a non-empty string of ASCII digits.
func IsValidAccountNumber(s string) bool {
	if s == "" || len(s) > maxAccountNumberLength {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
