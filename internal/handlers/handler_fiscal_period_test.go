package handlers_test

import (
	"fmt"
	"net/http"
	"time"

	"github.com/SscSPs/ledger_engine/internal/apperrors"
	"github.com/SscSPs/ledger_engine/internal/core/domain"
	"github.com/SscSPs/ledger_engine/internal/dto"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

func (suite *LedgerHandlerTestSuite) januaryPeriod() *domain.FiscalPeriod {
	return &domain.FiscalPeriod{
		PeriodID:    uuid.NewString(),
		WorkplaceID: suite.workplaceID,
		Name:        "January 2026",
		PeriodType:  domain.PeriodMonth,
		FiscalYear:  2026,
		StartDate:   time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		EndDate:     time.Date(2026, 1, 31, 0, 0, 0, 0, time.UTC),
		Status:      domain.PeriodOpen,
	}
}

func (suite *LedgerHandlerTestSuite) TestOpenPeriod_Overlap() {
	suite.periods.On("OpenPeriod", mock.Anything, suite.workplaceID, mock.Anything, suite.userID).
		Return(nil, fmt.Errorf("%w: overlaps January 2026", apperrors.ErrConflict)).Once()

	w := suite.serve(http.MethodPost, suite.url("/fiscal-periods"), map[string]any{
		"name":       "Mid January",
		"periodType": "MONTH",
		"fiscalYear": 2026,
		"startDate":  "2026-01-15T00:00:00Z",
		"endDate":    "2026-02-14T00:00:00Z",
	})

	suite.Equal(http.StatusConflict, w.Code)
	suite.periods.AssertExpectations(suite.T())
}

func (suite *LedgerHandlerTestSuite) TestGetPeriodForDate() {
	period := suite.januaryPeriod()
	suite.periods.On("GetPeriodForDate", mock.Anything, suite.workplaceID,
		mock.MatchedBy(func(d time.Time) bool {
			return d.Year() == 2026 && d.Month() == time.January && d.Day() == 20
		}),
	).Return(period, nil).Once()

	w := suite.serve(http.MethodGet, suite.url("/fiscal-periods/for-date?date=2026-01-20"), nil)

	suite.Equal(http.StatusOK, w.Code, w.Body.String())
	var resp dto.FiscalPeriodResponse
	suite.decode(w, &resp)
	suite.Equal(period.PeriodID, resp.PeriodID)
}

func (suite *LedgerHandlerTestSuite) TestGetPeriodForDate_RequiresDate() {
	w := suite.serve(http.MethodGet, suite.url("/fiscal-periods/for-date"), nil)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.periods.AssertNotCalled(suite.T(), "GetPeriodForDate", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *LedgerHandlerTestSuite) TestClosePeriod_WarnsAboutDrafts() {
	period := suite.januaryPeriod()
	period.Status = domain.PeriodClosed
	drafts := []domain.JournalEntry{*suite.draftEntry(), *suite.draftEntry()}
	events := []domain.DomainEvent{{Type: domain.EventFiscalPeriodClosed, WorkplaceID: suite.workplaceID, AggregateID: period.PeriodID}}
	suite.periods.On("ClosePeriod", mock.Anything, suite.workplaceID, period.PeriodID, suite.userID).
		Return(&domain.CloseResult{Period: *period, OutstandingDrafts: drafts, Events: events}, nil).Once()
	suite.events.On("Publish", mock.Anything, events).Once()

	w := suite.serve(http.MethodPost, suite.url("/fiscal-periods/%s/close", period.PeriodID), nil)

	suite.Equal(http.StatusOK, w.Code, w.Body.String())
	var resp dto.ClosePeriodResponse
	suite.decode(w, &resp)
	suite.Equal(domain.PeriodClosed, resp.Period.Status)
	suite.Len(resp.OutstandingDrafts, 2)
	suite.Contains(resp.Warning, "2 draft entries")
	suite.events.AssertExpectations(suite.T())
}

func (suite *LedgerHandlerTestSuite) TestClosePeriod_NoDraftsNoWarning() {
	period := suite.januaryPeriod()
	period.Status = domain.PeriodClosed
	suite.periods.On("ClosePeriod", mock.Anything, suite.workplaceID, period.PeriodID, suite.userID).
		Return(&domain.CloseResult{Period: *period}, nil).Once()
	suite.events.On("Publish", mock.Anything, mock.Anything).Once()

	w := suite.serve(http.MethodPost, suite.url("/fiscal-periods/%s/close", period.PeriodID), nil)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.ClosePeriodResponse
	suite.decode(w, &resp)
	suite.Empty(resp.Warning)
}

func (suite *LedgerHandlerTestSuite) TestClosePeriod_AlreadyClosed() {
	periodID := uuid.NewString()
	suite.periods.On("ClosePeriod", mock.Anything, suite.workplaceID, periodID, suite.userID).
		Return(nil, fmt.Errorf("%w: fiscal period already closed", apperrors.ErrConflict)).Once()

	w := suite.serve(http.MethodPost, suite.url("/fiscal-periods/%s/close", periodID), nil)

	suite.Equal(http.StatusConflict, w.Code)
	suite.events.AssertNotCalled(suite.T(), "Publish", mock.Anything, mock.Anything)
}
