package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// AccountType defines the fundamental accounting type of an account.
type AccountType string

// Account represents a row of the accounts table.
type Account struct {
	AccountID          string          `db:"account_id"`
	WorkplaceID        string          `db:"workplace_id"`
	AccountNumber      string          `db:"account_number"`
	Name               string          `db:"name"`
	Description        string          `db:"description"`
	AccountType        AccountType     `db:"account_type"`
	SubType            *string         `db:"sub_type"`
	CurrencyCode       string          `db:"currency_code"`
	ParentAccountID    *string         `db:"parent_account_id"` // NULL for root accounts
	IsActive           bool            `db:"is_active"`
	IsSystem           bool            `db:"is_system"`
	AllowManualEntries bool            `db:"allow_manual_entries"`
	Tags               []string        `db:"tags"`
	Balance            decimal.Decimal `db:"balance"`
	DeletedAt          *time.Time      `db:"deleted_at"`
	AuditFields
}
