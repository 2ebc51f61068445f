package dto

import (
	"time"

	"github.com/SscSPs/ledger_engine/internal/core/domain"
	"github.com/shopspring/decimal"
)

// AsOfParams is the shared query of point-in-time reports.
type AsOfParams struct {
	AsOf *time.Time `form:"asOf" time_format:"2006-01-02"`
}

// TrialBalanceRowResponse represents a row in the trial balance report response
type TrialBalanceRowResponse struct {
	AccountID     string          `json:"accountID"`
	AccountNumber string          `json:"accountNumber"`
	AccountName   string          `json:"accountName"`
	AccountType   string          `json:"accountType"`
	Debit         decimal.Decimal `json:"debit"`
	Credit        decimal.Decimal `json:"credit"`
}

// TrialBalanceResponse represents the trial balance report response
type TrialBalanceResponse struct {
	AsOf     string                    `json:"asOf"`
	Rows     []TrialBalanceRowResponse `json:"rows"`
	Balanced bool                      `json:"balanced"`
	Totals   struct {
		Debit  decimal.Decimal `json:"debit"`
		Credit decimal.Decimal `json:"credit"`
	} `json:"totals"`
}

// EntrySummaryResponse is a header-only line of a report.
type EntrySummaryResponse struct {
	EntryID      string          `json:"entryID"`
	EntryNumber  string          `json:"entryNumber"`
	EntryDate    string          `json:"entryDate"`
	Description  string          `json:"description"`
	CurrencyCode string          `json:"currencyCode"`
	TotalDebit   decimal.Decimal `json:"totalDebit"`
	TotalCredit  decimal.Decimal `json:"totalCredit"`
	Difference   decimal.Decimal `json:"difference"`
	LineCount    int             `json:"lineCount"`
}

// ListEntrySummariesResponse wraps report entry summaries.
type ListEntrySummariesResponse struct {
	Entries []EntrySummaryResponse `json:"entries"`
}

// AgingBucketResponse is one age band of the draft aging report.
type AgingBucketResponse struct {
	Label      string                 `json:"label"`
	Count      int                    `json:"count"`
	TotalDebit decimal.Decimal        `json:"totalDebit"`
	Entries    []EntrySummaryResponse `json:"entries"`
}

// DraftAgingResponse represents the draft aging report response
type DraftAgingResponse struct {
	AsOf    string                `json:"asOf"`
	Buckets []AgingBucketResponse `json:"buckets"`
}

const reportDateLayout = "2006-01-02"

// ToTrialBalanceResponse converts the domain report.
func ToTrialBalanceResponse(tb *domain.TrialBalance) TrialBalanceResponse {
	resp := TrialBalanceResponse{
		AsOf:     tb.AsOf.Format(reportDateLayout),
		Rows:     make([]TrialBalanceRowResponse, len(tb.Rows)),
		Balanced: tb.Balanced,
	}
	for i, r := range tb.Rows {
		resp.Rows[i] = TrialBalanceRowResponse{
			AccountID:     r.AccountID,
			AccountNumber: r.AccountNumber,
			AccountName:   r.AccountName,
			AccountType:   string(r.AccountType),
			Debit:         r.Debit,
			Credit:        r.Credit,
		}
	}
	resp.Totals.Debit = tb.TotalDebit
	resp.Totals.Credit = tb.TotalCredit
	return resp
}

// ToEntrySummaryResponses converts report entry summaries.
func ToEntrySummaryResponses(entries []domain.EntrySummary) []EntrySummaryResponse {
	res := make([]EntrySummaryResponse, len(entries))
	for i, e := range entries {
		res[i] = EntrySummaryResponse{
			EntryID:      e.EntryID,
			EntryNumber:  e.EntryNumber,
			EntryDate:    e.EntryDate.Format(reportDateLayout),
			Description:  e.Description,
			CurrencyCode: e.CurrencyCode,
			TotalDebit:   e.TotalDebit,
			TotalCredit:  e.TotalCredit,
			Difference:   e.Difference(),
			LineCount:    e.LineCount,
		}
	}
	return res
}

// ToDraftAgingResponse converts the domain aging report.
func ToDraftAgingResponse(r *domain.DraftAgingReport) DraftAgingResponse {
	resp := DraftAgingResponse{
		AsOf:    r.AsOf.Format(reportDateLayout),
		Buckets: make([]AgingBucketResponse, len(r.Buckets)),
	}
	for i, b := range r.Buckets {
		resp.Buckets[i] = AgingBucketResponse{
			Label:      b.Label,
			Count:      b.Count,
			TotalDebit: b.TotalDebit,
			Entries:    ToEntrySummaryResponses(b.Entries),
		}
	}
	return resp
}
