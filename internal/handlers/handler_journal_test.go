package handlers_test

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"time"

	"github.com/SscSPs/ledger_engine/internal/apperrors"
	"github.com/SscSPs/ledger_engine/internal/core/domain"
	"github.com/SscSPs/ledger_engine/internal/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

func (suite *LedgerHandlerTestSuite) draftEntry() *domain.JournalEntry {
	return &domain.JournalEntry{
		EntryID:      uuid.NewString(),
		WorkplaceID:  suite.workplaceID,
		EntryNumber:  domain.FormatEntryNumber(1),
		EntryDate:    time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC),
		Status:       domain.Draft,
		CurrencyCode: "USD",
		TotalDebit:   decimal.NewFromInt(100),
		TotalCredit:  decimal.NewFromInt(100),
	}
}

func (suite *LedgerHandlerTestSuite) TestCreateJournalEntry_Success() {
	entry := suite.draftEntry()
	cashID, salesID := uuid.NewString(), uuid.NewString()
	suite.journals.On("CreateJournalEntry", mock.Anything, suite.workplaceID,
		mock.MatchedBy(func(req dto.CreateJournalEntryRequest) bool {
			return len(req.Lines) == 2 &&
				req.Lines[0].DebitAmount.Equal(decimal.RequireFromString("100.00")) &&
				req.Lines[1].CreditAmount.Equal(decimal.RequireFromString("100.00"))
		}),
		suite.userID,
	).Return(entry, nil).Once()

	w := suite.serve(http.MethodPost, suite.url("/journal-entries"), map[string]any{
		"entryDate":    "2026-01-15T00:00:00Z",
		"currencyCode": "USD",
		"description":  "Cash sale",
		"lines": []map[string]any{
			{"accountID": cashID, "debitAmount": "100.00"},
			{"accountID": salesID, "creditAmount": "100.00"},
		},
	})

	suite.Equal(http.StatusCreated, w.Code, w.Body.String())
	var resp dto.JournalEntryResponse
	suite.decode(w, &resp)
	suite.Equal("JE-000001", resp.EntryNumber)
	suite.Equal(domain.Draft, resp.Status)
	suite.journals.AssertExpectations(suite.T())
}

func (suite *LedgerHandlerTestSuite) TestCreateJournalEntry_LineWithoutAccountIsRejected() {
	w := suite.serve(http.MethodPost, suite.url("/journal-entries"), map[string]any{
		"entryDate":    "2026-01-15T00:00:00Z",
		"currencyCode": "USD",
		"lines":        []map[string]any{{"debitAmount": "10"}},
	})

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.journals.AssertNotCalled(suite.T(), "CreateJournalEntry", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *LedgerHandlerTestSuite) TestPostJournalEntry_PublishesEvents() {
	entry := suite.draftEntry()
	entry.Status = domain.Posted
	events := []domain.DomainEvent{{
		Type:        domain.EventJournalEntryPosted,
		WorkplaceID: suite.workplaceID,
		AggregateID: entry.EntryID,
	}}
	suite.journals.On("PostJournalEntry", mock.Anything, suite.workplaceID, entry.EntryID, suite.userID).
		Return(&domain.PostingResult{Entry: *entry, Events: events}, nil).Once()
	suite.events.On("Publish", mock.Anything, events).Once()

	w := suite.serve(http.MethodPost, suite.url("/journal-entries/%s/post", entry.EntryID), nil)

	suite.Equal(http.StatusOK, w.Code, w.Body.String())
	var resp dto.JournalEntryResponse
	suite.decode(w, &resp)
	suite.Equal(domain.Posted, resp.Status)
	suite.journals.AssertExpectations(suite.T())
	suite.events.AssertExpectations(suite.T())
}

func (suite *LedgerHandlerTestSuite) TestPostJournalEntry_FailuresPublishNothing() {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"unbalanced", fmt.Errorf("%w: debits sum is 100 and credits sum is 99.99", apperrors.ErrValidation), http.StatusBadRequest},
		{"already posted", fmt.Errorf("%w: entry is not a draft", apperrors.ErrConflict), http.StatusConflict},
		{"closed period", fmt.Errorf("%w: fiscal period is closed", apperrors.ErrDomain), http.StatusUnprocessableEntity},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			suite.SetupTest()
			entryID := uuid.NewString()
			suite.journals.On("PostJournalEntry", mock.Anything, suite.workplaceID, entryID, suite.userID).
				Return(nil, tt.err).Once()

			w := suite.serve(http.MethodPost, suite.url("/journal-entries/%s/post", entryID), nil)

			suite.Equal(tt.status, w.Code)
			suite.events.AssertNotCalled(suite.T(), "Publish", mock.Anything, mock.Anything)
		})
	}
}

func (suite *LedgerHandlerTestSuite) TestReverseJournalEntry_DefaultsDateWithoutBody() {
	original := suite.draftEntry()
	original.Status = domain.Reversed
	reversal := suite.draftEntry()
	reversal.Status = domain.Posted
	reversal.ReversalOfID = &original.EntryID
	suite.journals.On("ReverseJournalEntry", mock.Anything, suite.workplaceID, original.EntryID, time.Time{}, suite.userID).
		Return(&domain.ReversalResult{Original: *original, Reversal: *reversal}, nil).Once()
	suite.events.On("Publish", mock.Anything, mock.Anything).Once()

	w := suite.serve(http.MethodPost, suite.url("/journal-entries/%s/reverse", original.EntryID), nil)

	suite.Equal(http.StatusCreated, w.Code, w.Body.String())
	var resp dto.ReverseJournalEntryResponse
	suite.decode(w, &resp)
	suite.Equal(domain.Reversed, resp.Original.Status)
	suite.Require().NotNil(resp.Reversal.ReversalOfID)
	suite.Equal(original.EntryID, *resp.Reversal.ReversalOfID)
	suite.journals.AssertExpectations(suite.T())
}

func (suite *LedgerHandlerTestSuite) TestReverseJournalEntry_UsesRequestedDate() {
	entryID := uuid.NewString()
	want := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	suite.journals.On("ReverseJournalEntry", mock.Anything, suite.workplaceID, entryID,
		mock.MatchedBy(func(d time.Time) bool { return d.Equal(want) }),
		suite.userID,
	).Return(nil, fmt.Errorf("%w: no fiscal period contains 2026-02-01", apperrors.ErrDomain)).Once()

	w := suite.serve(http.MethodPost, suite.url("/journal-entries/%s/reverse", entryID), map[string]any{
		"reversalDate": "2026-02-01T00:00:00Z",
	})

	suite.Equal(http.StatusUnprocessableEntity, w.Code)
	suite.journals.AssertExpectations(suite.T())
	suite.events.AssertNotCalled(suite.T(), "Publish", mock.Anything, mock.Anything)
}

func (suite *LedgerHandlerTestSuite) TestListJournalEntries_PassesCursor() {
	entry := suite.draftEntry()
	next := "opaque-next"
	suite.journals.On("ListJournalEntries", mock.Anything, suite.workplaceID,
		mock.MatchedBy(func(p dto.ListJournalEntriesParams) bool {
			return p.Limit == 20 && p.Status == "DRAFT" && p.NextToken != nil && *p.NextToken == "opaque-prev"
		}),
	).Return([]domain.JournalEntry{*entry}, &next, nil).Once()

	w := suite.serve(http.MethodGet, suite.url("/journal-entries?status=DRAFT&nextToken=opaque-prev"), nil)

	suite.Equal(http.StatusOK, w.Code, w.Body.String())
	var resp dto.ListJournalEntriesResponse
	suite.decode(w, &resp)
	suite.Len(resp.Entries, 1)
	suite.Require().NotNil(resp.NextToken)
	suite.Equal(next, *resp.NextToken)
}

func (suite *LedgerHandlerTestSuite) TestGetJournalEntryByNumber() {
	entry := suite.draftEntry()
	suite.journals.On("GetJournalEntryByNumber", mock.Anything, suite.workplaceID, "JE-000001").Return(entry, nil).Once()

	w := suite.serve(http.MethodGet, suite.url("/journal-entries/by-number/JE-000001"), nil)

	suite.Equal(http.StatusOK, w.Code, w.Body.String())
	suite.journals.AssertExpectations(suite.T())
}

func (suite *LedgerHandlerTestSuite) TestRemoveJournalLine_NotDraft() {
	entryID, lineID := uuid.NewString(), uuid.NewString()
	suite.journals.On("RemoveJournalLine", mock.Anything, suite.workplaceID, entryID, lineID, suite.userID).
		Return(nil, fmt.Errorf("%w: entry is not a draft", apperrors.ErrConflict)).Once()

	w := suite.serve(http.MethodDelete, suite.url("/journal-entries/%s/lines/%s", entryID, lineID), nil)

	suite.Equal(http.StatusConflict, w.Code)
}

// serveChunked sends body with an unknown length, as a chunked upload arrives.
func (suite *LedgerHandlerTestSuite) serveChunked(method, url, body string) *httptest.ResponseRecorder {
	req, err := http.NewRequest(method, url, strings.NewReader(body))
	suite.Require().NoError(err)
	req.ContentLength = -1
	req.TransferEncoding = []string{"chunked"}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+suite.generateTestToken(suite.userID, suite.workplaceID))

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *LedgerHandlerTestSuite) TestReverseJournalEntry_ChunkedBodyKeepsRequestedDate() {
	entryID := uuid.NewString()
	want := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	suite.journals.On("ReverseJournalEntry", mock.Anything, suite.workplaceID, entryID,
		mock.MatchedBy(func(d time.Time) bool { return d.Equal(want) }),
		suite.userID,
	).Return(nil, fmt.Errorf("%w: fiscal period 2026-02 is closed", apperrors.ErrDomain)).Once()

	w := suite.serveChunked(http.MethodPost, suite.url("/journal-entries/%s/reverse", entryID),
		`{"reversalDate":"2026-02-01T00:00:00Z"}`)

	suite.Equal(http.StatusUnprocessableEntity, w.Code, w.Body.String())
	suite.journals.AssertExpectations(suite.T())
}

func (suite *LedgerHandlerTestSuite) TestReverseJournalEntry_EmptyChunkedBodyDefaultsDate() {
	entryID := uuid.NewString()
	suite.journals.On("ReverseJournalEntry", mock.Anything, suite.workplaceID, entryID, time.Time{}, suite.userID).
		Return(nil, fmt.Errorf("%w: entry is a draft", apperrors.ErrConflict)).Once()

	w := suite.serveChunked(http.MethodPost, suite.url("/journal-entries/%s/reverse", entryID), "")

	suite.Equal(http.StatusConflict, w.Code, w.Body.String())
	suite.journals.AssertExpectations(suite.T())
}

func (suite *LedgerHandlerTestSuite) TestReverseJournalEntry_MalformedBody() {
	entryID := uuid.NewString()

	w := suite.serveChunked(http.MethodPost, suite.url("/journal-entries/%s/reverse", entryID), `{"reversalDate":`)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.journals.AssertNotCalled(suite.T(), "ReverseJournalEntry", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *LedgerHandlerTestSuite) TestUpdateJournalEntry_MovesToNewDate() {
	entry := suite.draftEntry()
	entry.EntryDate = time.Date(2026, 2, 3, 0, 0, 0, 0, time.UTC)
	entry.FiscalPeriodID = "period-feb"
	want := time.Date(2026, 2, 3, 0, 0, 0, 0, time.UTC)
	suite.journals.On("UpdateJournalEntry", mock.Anything, suite.workplaceID, entry.EntryID,
		mock.MatchedBy(func(r dto.UpdateJournalEntryRequest) bool {
			return r.EntryDate != nil && r.EntryDate.Equal(want) && r.FiscalPeriodID == nil &&
				r.Reference != nil && *r.Reference == "INV-7"
		}),
		suite.userID,
	).Return(entry, nil).Once()

	w := suite.serve(http.MethodPatch, suite.url("/journal-entries/%s", entry.EntryID), map[string]any{
		"entryDate": "2026-02-03T00:00:00Z",
		"reference": "INV-7",
	})

	suite.Equal(http.StatusOK, w.Code, w.Body.String())
	var resp dto.JournalEntryResponse
	suite.decode(w, &resp)
	suite.Equal("period-feb", resp.FiscalPeriodID)
	suite.journals.AssertExpectations(suite.T())
}

func (suite *LedgerHandlerTestSuite) TestUpdateJournalEntry_Errors() {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"not a draft", fmt.Errorf("%w: entry is POSTED, only drafts can be edited", apperrors.ErrConflict), http.StatusConflict},
		{"unknown period", fmt.Errorf("%w: fiscal period p-9", apperrors.ErrNotFound), http.StatusNotFound},
		{"nothing to change", fmt.Errorf("%w: no header fields to update", apperrors.ErrValidation), http.StatusBadRequest},
	}
	for _, tt := range tests {
		suite.Run(tt.name, func() {
			entryID := uuid.NewString()
			suite.journals.On("UpdateJournalEntry", mock.Anything, suite.workplaceID, entryID, mock.Anything, suite.userID).
				Return(nil, tt.err).Once()

			w := suite.serve(http.MethodPatch, suite.url("/journal-entries/%s", entryID), map[string]any{"description": "x"})

			suite.Equal(tt.status, w.Code)
		})
	}
}

func (suite *LedgerHandlerTestSuite) TestUpdateJournalEntry_ReferenceTooLong() {
	entryID := uuid.NewString()

	w := suite.serve(http.MethodPatch, suite.url("/journal-entries/%s", entryID), map[string]any{
		"reference": strings.Repeat("r", 256),
	})

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.journals.AssertNotCalled(suite.T(), "UpdateJournalEntry", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}
