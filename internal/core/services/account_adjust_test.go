package services_test

import (
	"context"
	"time"

	"github.com/SscSPs/ledger_engine/internal/apperrors"
	"github.com/SscSPs/ledger_engine/internal/core/domain"
	portssvc "github.com/SscSPs/ledger_engine/internal/core/ports/services"
	"github.com/SscSPs/ledger_engine/internal/core/services"
	"github.com/SscSPs/ledger_engine/internal/dto"
	"github.com/jackc/pgx/v5"
)

// interleavedLedger runs a hook right before a lock is granted. The hook stands
// in for a transaction that held the lock and committed in the meantime.
type interleavedLedger struct {
	*memLedger
	beforeAccountLock   func()
	beforeHierarchyLock func()
	onActivityCheck     func(accountID string)
}

func (l *interleavedLedger) FindAccountsByIDsForUpdate(ctx context.Context, tx pgx.Tx, workplaceID string, accountIDs []string) (map[string]domain.Account, error) {
	if hook := l.beforeAccountLock; hook != nil {
		l.beforeAccountLock = nil
		hook()
	}
	return l.memLedger.FindAccountsByIDsForUpdate(ctx, tx, workplaceID, accountIDs)
}

func (l *interleavedLedger) LockAccountHierarchyInTx(ctx context.Context, tx pgx.Tx, workplaceID string) error {
	if hook := l.beforeHierarchyLock; hook != nil {
		l.beforeHierarchyLock = nil
		hook()
	}
	return l.memLedger.LockAccountHierarchyInTx(ctx, tx, workplaceID)
}

func (l *interleavedLedger) HasPostedActivityInTx(ctx context.Context, tx pgx.Tx, workplaceID, accountID string) (bool, error) {
	if l.onActivityCheck != nil {
		l.onActivityCheck(accountID)
	}
	return l.memLedger.HasPostedActivityInTx(ctx, tx, workplaceID, accountID)
}

func (suite *JournalServiceTestSuite) accountsOver(ledger *interleavedLedger) portssvc.AccountSvcFacade {
	return services.NewAccountService(ledger, services.WithClock(func() time.Time { return fixedNow }))
}

func (suite *JournalServiceTestSuite) TestAdjustAccount_TypeChangeSeesPostingThatHeldTheRowLock() {
	entry := suite.draft("40", "40")
	ledger := &interleavedLedger{memLedger: suite.ledger}
	ledger.beforeAccountLock = func() {
		suite.ledger.interleave(func() {
			_, err := suite.journal.PostJournalEntry(suite.ctx, testWorkplaceID, entry.EntryID, testUserID)
			suite.Require().NoError(err)
		})
	}

	_, err := suite.accountsOver(ledger).AdjustAccount(suite.ctx, testWorkplaceID, suite.sales.AccountID,
		dto.AdjustAccountRequest{AccountType: strPtr("LIABILITY")}, testUserID)

	suite.ErrorIs(err, apperrors.ErrDomain)
	suite.Equal(domain.Revenue, suite.ledger.committed.accounts[suite.sales.AccountID].AccountType)
	suite.assertBalances("40", "40")
}

func (suite *JournalServiceTestSuite) TestAdjustAccount_ActivityCheckRunsUnderRowLock() {
	ledger := &interleavedLedger{memLedger: suite.ledger}
	checked := false
	ledger.onActivityCheck = func(accountID string) {
		checked = true
		suite.NotNil(suite.ledger.staged, "activity check ran outside a transaction")
		suite.Contains(suite.ledger.locks, "account:"+accountID)
	}
	commits := suite.ledger.commits

	adjusted, err := suite.accountsOver(ledger).AdjustAccount(suite.ctx, testWorkplaceID, suite.sales.AccountID,
		dto.AdjustAccountRequest{AccountType: strPtr("LIABILITY")}, testUserID)

	suite.Require().NoError(err)
	suite.True(checked)
	suite.Equal(domain.Liability, adjusted.AccountType)
	suite.Equal(commits+1, suite.ledger.commits)
}

func (suite *JournalServiceTestSuite) TestAdjustAccount_ConcurrentOppositeReparentRejected() {
	ledger := &interleavedLedger{memLedger: suite.ledger}
	ledger.beforeHierarchyLock = func() {
		suite.ledger.interleave(func() {
			_, err := suite.accounts.AdjustAccount(suite.ctx, testWorkplaceID, suite.sales.AccountID,
				dto.AdjustAccountRequest{ParentAccountID: strPtr(suite.cash.AccountID)}, testUserID)
			suite.Require().NoError(err)
		})
	}

	_, err := suite.accountsOver(ledger).AdjustAccount(suite.ctx, testWorkplaceID, suite.cash.AccountID,
		dto.AdjustAccountRequest{ParentAccountID: strPtr(suite.sales.AccountID)}, testUserID)

	suite.ErrorIs(err, apperrors.ErrDomain)
	suite.Empty(suite.ledger.committed.accounts[suite.cash.AccountID].ParentAccountID)
	suite.Equal(suite.cash.AccountID, suite.ledger.committed.accounts[suite.sales.AccountID].ParentAccountID)
}

func (suite *JournalServiceTestSuite) TestAdjustAccount_ReparentLocksHierarchyBeforeRows() {
	group, err := suite.accounts.CreateAccount(suite.ctx, testWorkplaceID, dto.CreateAccountRequest{
		Name: "Cash and equivalents", AccountType: "ASSET", CurrencyCode: "USD",
	}, testUserID)
	suite.Require().NoError(err)
	suite.ledger.locks = nil

	adjusted, err := suite.accounts.AdjustAccount(suite.ctx, testWorkplaceID, suite.cash.AccountID,
		dto.AdjustAccountRequest{ParentAccountID: strPtr(group.AccountID)}, testUserID)

	suite.Require().NoError(err)
	suite.Equal(group.AccountID, adjusted.ParentAccountID)
	suite.Require().Len(suite.ledger.locks, 3)
	suite.Equal("hierarchy:"+testWorkplaceID, suite.ledger.locks[0])
	suite.ElementsMatch([]string{"account:" + suite.cash.AccountID, "account:" + group.AccountID}, suite.ledger.locks[1:])
}

func (suite *JournalServiceTestSuite) TestAdjustAccount_KeepsStoredBalance() {
	entry := suite.draft("75", "75")
	_, err := suite.journal.PostJournalEntry(suite.ctx, testWorkplaceID, entry.EntryID, testUserID)
	suite.Require().NoError(err)

	adjusted, err := suite.accounts.AdjustAccount(suite.ctx, testWorkplaceID, suite.cash.AccountID,
		dto.AdjustAccountRequest{Name: strPtr("Cash on hand")}, testUserID)

	suite.Require().NoError(err)
	suite.True(adjusted.Balance.Equal(dec("75")))
	suite.Equal("Cash on hand", suite.ledger.committed.accounts[suite.cash.AccountID].Name)
	suite.assertBalances("75", "75")
}

func (suite *JournalServiceTestSuite) TestFakeAccountUpdateWritesOnlyMutableColumns() {
	stale := *suite.cash
	stale.Name = "Petty cash"
	stale.AccountNumber = "9999"
	stale.Balance = dec("-500")

	_, err := suite.ledger.Begin(suite.ctx)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.ledger.UpdateAccountInTx(suite.ctx, nil, stale))
	suite.Require().NoError(suite.ledger.Commit(suite.ctx, nil))

	stored := suite.ledger.committed.accounts[suite.cash.AccountID]
	suite.Equal("Petty cash", stored.Name)
	suite.Equal(suite.cash.AccountNumber, stored.AccountNumber)
	suite.True(stored.Balance.IsZero())
}
