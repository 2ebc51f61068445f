package handlers_test

import (
	"net/http"
	"time"

	"github.com/SscSPs/ledger_engine/internal/core/domain"
	"github.com/SscSPs/ledger_engine/internal/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

func (suite *LedgerHandlerTestSuite) TestTrialBalance_ParsesAsOf() {
	asOf := time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC)
	report := &domain.TrialBalance{
		AsOf: asOf,
		Rows: []domain.TrialBalanceRow{
			{AccountID: uuid.NewString(), AccountNumber: "1000", AccountName: "Cash", AccountType: domain.Asset, Debit: decimal.NewFromInt(100), Credit: decimal.Zero},
			{AccountID: uuid.NewString(), AccountNumber: "4000", AccountName: "Sales", AccountType: domain.Revenue, Debit: decimal.Zero, Credit: decimal.NewFromInt(100)},
		},
		TotalDebit:  decimal.NewFromInt(100),
		TotalCredit: decimal.NewFromInt(100),
		Balanced:    true,
	}
	suite.reports.On("GetTrialBalance", mock.Anything, suite.workplaceID,
		mock.MatchedBy(func(d time.Time) bool {
			return d.Year() == 2026 && d.Month() == time.March && d.Day() == 31
		}),
	).Return(report, nil).Once()

	w := suite.serve(http.MethodGet, suite.url("/reports/trial-balance?asOf=2026-03-31"), nil)

	suite.Equal(http.StatusOK, w.Code, w.Body.String())
	var resp dto.TrialBalanceResponse
	suite.decode(w, &resp)
	suite.Equal("2026-03-31", resp.AsOf)
	suite.True(resp.Balanced)
	suite.Len(resp.Rows, 2)
	suite.True(resp.Totals.Debit.Equal(resp.Totals.Credit))
}

func (suite *LedgerHandlerTestSuite) TestTrialBalance_DefaultsAsOf() {
	suite.reports.On("GetTrialBalance", mock.Anything, suite.workplaceID, time.Time{}).
		Return(&domain.TrialBalance{AsOf: time.Now()}, nil).Once()

	w := suite.serve(http.MethodGet, suite.url("/reports/trial-balance"), nil)

	suite.Equal(http.StatusOK, w.Code)
	suite.reports.AssertExpectations(suite.T())
}

func (suite *LedgerHandlerTestSuite) TestTrialBalance_RejectsBadDate() {
	w := suite.serve(http.MethodGet, suite.url("/reports/trial-balance?asOf=31-03-2026"), nil)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.reports.AssertNotCalled(suite.T(), "GetTrialBalance", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *LedgerHandlerTestSuite) TestUnbalancedEntries() {
	suite.reports.On("GetUnbalancedEntries", mock.Anything, suite.workplaceID).Return([]domain.EntrySummary{{
		EntryID:     uuid.NewString(),
		EntryNumber: "JE-000007",
		EntryDate:   time.Date(2026, 1, 3, 0, 0, 0, 0, time.UTC),
		TotalDebit:  decimal.NewFromInt(100),
		TotalCredit: decimal.RequireFromString("99.99"),
		LineCount:   2,
	}}, nil).Once()

	w := suite.serve(http.MethodGet, suite.url("/reports/unbalanced-entries"), nil)

	suite.Equal(http.StatusOK, w.Code, w.Body.String())
	var resp dto.ListEntrySummariesResponse
	suite.decode(w, &resp)
	suite.Require().Len(resp.Entries, 1)
	suite.True(resp.Entries[0].Difference.Equal(decimal.RequireFromString("0.01")))
	suite.Equal("2026-01-03", resp.Entries[0].EntryDate)
}
