package handlers_test

import (
	"context"
	"time"

	"github.com/SscSPs/ledger_engine/internal/core/domain"
	portssvc "github.com/SscSPs/ledger_engine/internal/core/ports/services"
	"github.com/SscSPs/ledger_engine/internal/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// --- Mock AccountService ---
type MockAccountService struct {
	mock.Mock
}

func (m *MockAccountService) accountResult(args mock.Arguments) (*domain.Account, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountService) accountsResult(args mock.Arguments) ([]domain.Account, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockAccountService) CreateAccount(ctx context.Context, workplaceID string, req dto.CreateAccountRequest, userID string) (*domain.Account, error) {
	return m.accountResult(m.Called(ctx, workplaceID, req, userID))
}
func (m *MockAccountService) AdjustAccount(ctx context.Context, workplaceID, accountID string, req dto.AdjustAccountRequest, userID string) (*domain.Account, error) {
	return m.accountResult(m.Called(ctx, workplaceID, accountID, req, userID))
}
func (m *MockAccountService) ApplyDelta(ctx context.Context, workplaceID, accountID string, signedAmount decimal.Decimal, userID string) (*domain.Account, error) {
	return m.accountResult(m.Called(ctx, workplaceID, accountID, signedAmount, userID))
}
func (m *MockAccountService) DeleteAccount(ctx context.Context, workplaceID, accountID, userID string) error {
	return m.Called(ctx, workplaceID, accountID, userID).Error(0)
}
func (m *MockAccountService) GetAccountByID(ctx context.Context, workplaceID, accountID string) (*domain.Account, error) {
	return m.accountResult(m.Called(ctx, workplaceID, accountID))
}
func (m *MockAccountService) GetAccountByNumber(ctx context.Context, workplaceID, accountNumber string) (*domain.Account, error) {
	return m.accountResult(m.Called(ctx, workplaceID, accountNumber))
}
func (m *MockAccountService) ListAccounts(ctx context.Context, workplaceID string, params dto.ListAccountsParams) ([]domain.Account, error) {
	return m.accountsResult(m.Called(ctx, workplaceID, params))
}
func (m *MockAccountService) ListChildren(ctx context.Context, workplaceID, accountID string) ([]domain.Account, error) {
	return m.accountsResult(m.Called(ctx, workplaceID, accountID))
}
func (m *MockAccountService) ListDescendants(ctx context.Context, workplaceID, accountID string) ([]domain.Account, error) {
	return m.accountsResult(m.Called(ctx, workplaceID, accountID))
}
func (m *MockAccountService) GetNormalBalanceSide(accountType domain.AccountType) domain.NormalBalanceSide {
	return domain.NormalBalanceSideFor(accountType)
}

// Ensure mock implements the interface
var _ portssvc.AccountSvcFacade = (*MockAccountService)(nil)

// --- Mock JournalService ---
type MockJournalService struct {
	mock.Mock
}

func (m *MockJournalService) entryResult(args mock.Arguments) (*domain.JournalEntry, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockJournalService) GetJournalEntryByID(ctx context.Context, workplaceID, entryID string) (*domain.JournalEntry, error) {
	return m.entryResult(m.Called(ctx, workplaceID, entryID))
}
func (m *MockJournalService) GetJournalEntryByNumber(ctx context.Context, workplaceID, entryNumber string) (*domain.JournalEntry, error) {
	return m.entryResult(m.Called(ctx, workplaceID, entryNumber))
}
func (m *MockJournalService) ListJournalEntries(ctx context.Context, workplaceID string, params dto.ListJournalEntriesParams) ([]domain.JournalEntry, *string, error) {
	args := m.Called(ctx, workplaceID, params)
	var entries []domain.JournalEntry
	if args.Get(0) != nil {
		entries = args.Get(0).([]domain.JournalEntry)
	}
	var next *string
	if args.Get(1) != nil {
		next = args.Get(1).(*string)
	}
	return entries, next, args.Error(2)
}
func (m *MockJournalService) CreateJournalEntry(ctx context.Context, workplaceID string, req dto.CreateJournalEntryRequest, userID string) (*domain.JournalEntry, error) {
	return m.entryResult(m.Called(ctx, workplaceID, req, userID))
}
func (m *MockJournalService) UpdateJournalEntry(ctx context.Context, workplaceID, entryID string, req dto.UpdateJournalEntryRequest, userID string) (*domain.JournalEntry, error) {
	return m.entryResult(m.Called(ctx, workplaceID, entryID, req, userID))
}
func (m *MockJournalService) AddJournalLine(ctx context.Context, workplaceID, entryID string, req dto.JournalLineRequest, userID string) (*domain.JournalEntry, error) {
	return m.entryResult(m.Called(ctx, workplaceID, entryID, req, userID))
}
func (m *MockJournalService) UpdateJournalLine(ctx context.Context, workplaceID, entryID, lineID string, req dto.JournalLineRequest, userID string) (*domain.JournalEntry, error) {
	return m.entryResult(m.Called(ctx, workplaceID, entryID, lineID, req, userID))
}
func (m *MockJournalService) RemoveJournalLine(ctx context.Context, workplaceID, entryID, lineID string, userID string) (*domain.JournalEntry, error) {
	return m.entryResult(m.Called(ctx, workplaceID, entryID, lineID, userID))
}
func (m *MockJournalService) ValidateBalance(entry domain.JournalEntry) error {
	return m.Called(entry).Error(0)
}
func (m *MockJournalService) PostJournalEntry(ctx context.Context, workplaceID, entryID, userID string) (*domain.PostingResult, error) {
	args := m.Called(ctx, workplaceID, entryID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PostingResult), args.Error(1)
}
func (m *MockJournalService) ReverseJournalEntry(ctx context.Context, workplaceID, entryID string, reversalDate time.Time, userID string) (*domain.ReversalResult, error) {
	args := m.Called(ctx, workplaceID, entryID, reversalDate, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ReversalResult), args.Error(1)
}

var _ portssvc.JournalSvcFacade = (*MockJournalService)(nil)

// --- Mock FiscalPeriodService ---
type MockFiscalPeriodService struct {
	mock.Mock
}

func (m *MockFiscalPeriodService) periodResult(args mock.Arguments) (*domain.FiscalPeriod, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FiscalPeriod), args.Error(1)
}

func (m *MockFiscalPeriodService) GetPeriodByID(ctx context.Context, workplaceID, periodID string) (*domain.FiscalPeriod, error) {
	return m.periodResult(m.Called(ctx, workplaceID, periodID))
}
func (m *MockFiscalPeriodService) GetPeriodForDate(ctx context.Context, workplaceID string, date time.Time) (*domain.FiscalPeriod, error) {
	return m.periodResult(m.Called(ctx, workplaceID, date))
}
func (m *MockFiscalPeriodService) IsOpen(ctx context.Context, workplaceID, periodID string) (bool, error) {
	args := m.Called(ctx, workplaceID, periodID)
	return args.Bool(0), args.Error(1)
}
func (m *MockFiscalPeriodService) ListPeriods(ctx context.Context, workplaceID string, params dto.ListPeriodsParams) ([]domain.FiscalPeriod, error) {
	args := m.Called(ctx, workplaceID, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.FiscalPeriod), args.Error(1)
}
func (m *MockFiscalPeriodService) OpenPeriod(ctx context.Context, workplaceID string, req dto.OpenPeriodRequest, userID string) (*domain.FiscalPeriod, error) {
	return m.periodResult(m.Called(ctx, workplaceID, req, userID))
}
func (m *MockFiscalPeriodService) ClosePeriod(ctx context.Context, workplaceID, periodID, userID string) (*domain.CloseResult, error) {
	args := m.Called(ctx, workplaceID, periodID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CloseResult), args.Error(1)
}

var _ portssvc.FiscalPeriodSvcFacade = (*MockFiscalPeriodService)(nil)

// --- Mock ReportingService ---
type MockReportingService struct {
	mock.Mock
}

func (m *MockReportingService) GetTrialBalance(ctx context.Context, workplaceID string, asOf time.Time) (*domain.TrialBalance, error) {
	args := m.Called(ctx, workplaceID, asOf)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TrialBalance), args.Error(1)
}
func (m *MockReportingService) GetUnbalancedEntries(ctx context.Context, workplaceID string) ([]domain.EntrySummary, error) {
	args := m.Called(ctx, workplaceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.EntrySummary), args.Error(1)
}
func (m *MockReportingService) GetDraftAging(ctx context.Context, workplaceID string, asOf time.Time) (*domain.DraftAgingReport, error) {
	args := m.Called(ctx, workplaceID, asOf)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DraftAgingReport), args.Error(1)
}

var _ portssvc.ReportingService = (*MockReportingService)(nil)

// --- Mock EventPublisher ---
type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) Publish(ctx context.Context, events []domain.DomainEvent) {
	m.Called(ctx, events)
}

var _ portssvc.EventPublisher = (*MockEventPublisher)(nil)
