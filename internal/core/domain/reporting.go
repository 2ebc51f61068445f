package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TrialBalanceRow represents a single row in a trial balance report
type TrialBalanceRow struct {
	AccountID     string          `json:"accountID"`
	AccountNumber string          `json:"accountNumber"`
	AccountName   string          `json:"accountName"`
	AccountType   AccountType     `json:"accountType"`
	Debit         decimal.Decimal `json:"debit"`
	Credit        decimal.Decimal `json:"credit"`
}

// TrialBalance is the full report with column totals.
type TrialBalance struct {
	AsOf        time.Time         `json:"asOf"`
	Rows        []TrialBalanceRow `json:"rows"`
	TotalDebit  decimal.Decimal   `json:"totalDebit"`
	TotalCredit decimal.Decimal   `json:"totalCredit"`
	Balanced    bool              `json:"balanced"`
}

// EntrySummary is a header-only view of an entry used by reports.
type EntrySummary struct {
	EntryID      string          `json:"entryID"`
	EntryNumber  string          `json:"entryNumber"`
	EntryDate    time.Time       `json:"entryDate"`
	Description  string          `json:"description"`
	CurrencyCode string          `json:"currencyCode"`
	TotalDebit   decimal.Decimal `json:"totalDebit"`
	TotalCredit  decimal.Decimal `json:"totalCredit"`
	LineCount    int             `json:"lineCount"`
}

// Difference is debit minus credit.
func (s EntrySummary) Difference() decimal.Decimal {
	return s.TotalDebit.Sub(s.TotalCredit)
}

// AgingBucket groups draft entries by how many days old they are.
type AgingBucket struct {
	Label      string          `json:"label"`
	MinDays    int             `json:"minDays"`
	MaxDays    *int            `json:"maxDays,omitempty"`
	Count      int             `json:"count"`
	TotalDebit decimal.Decimal `json:"totalDebit"`
	Entries    []EntrySummary  `json:"entries"`
}

// DraftAgingReport buckets outstanding drafts relative to AsOf.
type DraftAgingReport struct {
	AsOf    time.Time     `json:"asOf"`
	Buckets []AgingBucket `json:"buckets"`
}
