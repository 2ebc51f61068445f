package services_test

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"slices"
	"sort"
	"time"

	"github.com/SscSPs/ledger_engine/internal/apperrors"
	"github.com/SscSPs/ledger_engine/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_engine/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// memLedger is an in-memory stand-in for the three pgsql repositories. Writes made
// inside a tx are staged and only become visible on Commit. locks records every
// row and advisory lock taken, in order, as "account:<id>" or "hierarchy:<workplace>".
type memLedger struct {
	committed ledgerState
	staged    *ledgerState
	commits   int
	rollbacks int
	locks     []string
}

type ledgerState struct {
	accounts map[string]domain.Account
	entries  map[string]domain.JournalEntry
	periods  map[string]domain.FiscalPeriod
	seq      map[string]int64
}

var (
	_ portsrepo.AccountRepositoryWithTx      = (*memLedger)(nil)
	_ portsrepo.JournalRepositoryWithTx      = (*memLedger)(nil)
	_ portsrepo.FiscalPeriodRepositoryWithTx = (*memLedger)(nil)
)

func newMemLedger() *memLedger {
	return &memLedger{committed: ledgerState{
		accounts: map[string]domain.Account{},
		entries:  map[string]domain.JournalEntry{},
		periods:  map[string]domain.FiscalPeriod{},
		seq:      map[string]int64{},
	}}
}

func (s ledgerState) clone() ledgerState {
	c := ledgerState{
		accounts: maps.Clone(s.accounts),
		entries:  make(map[string]domain.JournalEntry, len(s.entries)),
		periods:  maps.Clone(s.periods),
		seq:      maps.Clone(s.seq),
	}
	for id, e := range s.entries {
		e.Lines = slices.Clone(e.Lines)
		c.entries[id] = e
	}
	return c
}

func (m *memLedger) cur() *ledgerState {
	if m.staged != nil {
		return m.staged
	}
	return &m.committed
}

func notFound(kind, id string) error {
	return fmt.Errorf("%w: %s %s", apperrors.ErrNotFound, kind, id)
}

// --- TransactionManager ---

func (m *memLedger) Begin(ctx context.Context) (pgx.Tx, error) {
	if m.staged != nil {
		return nil, errors.New("nested transaction")
	}
	staged := m.committed.clone()
	m.staged = &staged
	return nil, nil
}

func (m *memLedger) Commit(ctx context.Context, tx pgx.Tx) error {
	if m.staged == nil {
		return errors.New("no transaction")
	}
	m.committed = *m.staged
	m.staged = nil
	m.commits++
	return nil
}

func (m *memLedger) Rollback(ctx context.Context, tx pgx.Tx) error {
	if m.staged != nil {
		m.rollbacks++
	}
	m.staged = nil
	return nil
}

// interleave runs fn as another transaction that commits while the open one
// waits on a lock. The open tx has written nothing yet, so its later statements
// read the new committed state, as under READ COMMITTED.
func (m *memLedger) interleave(fn func()) {
	open := m.staged != nil
	m.staged = nil
	fn()
	if open {
		staged := m.committed.clone()
		m.staged = &staged
	}
}

// --- accounts ---

func (m *memLedger) FindAccountByID(ctx context.Context, workplaceID, accountID string) (*domain.Account, error) {
	acc, ok := m.cur().accounts[accountID]
	if !ok || acc.WorkplaceID != workplaceID || acc.DeletedAt != nil {
		return nil, notFound("account", accountID)
	}
	return &acc, nil
}

func (m *memLedger) FindAccountByNumber(ctx context.Context, workplaceID, accountNumber string) (*domain.Account, error) {
	for _, acc := range m.cur().accounts {
		if acc.WorkplaceID == workplaceID && acc.AccountNumber == accountNumber && acc.DeletedAt == nil {
			return &acc, nil
		}
	}
	return nil, notFound("account number", accountNumber)
}

func (m *memLedger) FindAccountsByIDs(ctx context.Context, workplaceID string, accountIDs []string) (map[string]domain.Account, error) {
	found := make(map[string]domain.Account, len(accountIDs))
	for _, id := range accountIDs {
		if acc, err := m.FindAccountByID(ctx, workplaceID, id); err == nil {
			found[id] = *acc
		}
	}
	return found, nil
}

func (m *memLedger) sortedAccounts(workplaceID string, keep func(domain.Account) bool) []domain.Account {
	out := []domain.Account{}
	for _, acc := range m.cur().accounts {
		if acc.WorkplaceID == workplaceID && acc.DeletedAt == nil && keep(acc) {
			out = append(out, acc)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].AccountNumber < out[j].AccountNumber })
	return out
}

func (m *memLedger) ListAccounts(ctx context.Context, workplaceID string, filter domain.AccountFilter) ([]domain.Account, error) {
	return m.sortedAccounts(workplaceID, func(a domain.Account) bool {
		return (filter.AccountType == nil || a.AccountType == *filter.AccountType) &&
			(filter.IsActive == nil || a.IsActive == *filter.IsActive)
	}), nil
}

func (m *memLedger) ListChildAccounts(ctx context.Context, workplaceID, parentID string) ([]domain.Account, error) {
	return m.sortedAccounts(workplaceID, func(a domain.Account) bool { return a.ParentAccountID == parentID }), nil
}

func (m *memLedger) ListDescendantAccounts(ctx context.Context, workplaceID, accountID string) ([]domain.Account, error) {
	var out []domain.Account
	queue := []string{accountID}
	for len(queue) > 0 {
		children, _ := m.ListChildAccounts(ctx, workplaceID, queue[0])
		queue = queue[1:]
		for _, c := range children {
			out = append(out, c)
			queue = append(queue, c.AccountID)
		}
	}
	return out, nil
}

func (m *memLedger) HasPostedActivityInTx(ctx context.Context, tx pgx.Tx, workplaceID, accountID string) (bool, error) {
	for _, e := range m.cur().entries {
		if e.WorkplaceID != workplaceID || e.Status == domain.Draft {
			continue
		}
		for _, l := range e.Lines {
			if l.AccountID == accountID {
				return true, nil
			}
		}
	}
	return false, nil
}

func (m *memLedger) NextAccountNumber(ctx context.Context, workplaceID string, low, high int64) (int64, error) {
	next := low
	for _, acc := range m.cur().accounts {
		var n int64
		if _, err := fmt.Sscan(acc.AccountNumber, &n); err != nil || acc.WorkplaceID != workplaceID {
			continue
		}
		if n >= low && n <= high && n >= next {
			next = n + 1
		}
	}
	return next, nil
}

func (m *memLedger) SaveAccount(ctx context.Context, account domain.Account) error {
	for _, acc := range m.cur().accounts {
		if acc.WorkplaceID == account.WorkplaceID && acc.AccountNumber == account.AccountNumber {
			return apperrors.ErrDuplicate
		}
	}
	m.cur().accounts[account.AccountID] = account
	return nil
}

// UpdateAccountInTx copies the columns the SQL UPDATE writes. Number, currency
// and balance keep their stored values.
func (m *memLedger) UpdateAccountInTx(ctx context.Context, tx pgx.Tx, account domain.Account) error {
	stored, err := m.FindAccountByID(ctx, account.WorkplaceID, account.AccountID)
	if err != nil {
		return err
	}
	stored.Name = account.Name
	stored.Description = account.Description
	stored.AccountType = account.AccountType
	stored.SubType = account.SubType
	stored.ParentAccountID = account.ParentAccountID
	stored.IsActive = account.IsActive
	stored.AllowManualEntries = account.AllowManualEntries
	stored.Tags = account.Tags
	stored.LastUpdatedAt = account.LastUpdatedAt
	stored.LastUpdatedBy = account.LastUpdatedBy
	m.cur().accounts[account.AccountID] = *stored
	return nil
}

func (m *memLedger) SoftDeleteAccount(ctx context.Context, workplaceID, accountID, userID string, now time.Time) error {
	acc, err := m.FindAccountByID(ctx, workplaceID, accountID)
	if err != nil {
		return err
	}
	acc.DeletedAt = &now
	acc.IsActive = false
	acc.Touch(userID, now)
	m.cur().accounts[accountID] = *acc
	return nil
}

func (m *memLedger) FindAccountsByIDsForUpdate(ctx context.Context, tx pgx.Tx, workplaceID string, accountIDs []string) (map[string]domain.Account, error) {
	for _, id := range slices.Sorted(slices.Values(accountIDs)) {
		m.locks = append(m.locks, "account:"+id)
	}
	return m.FindAccountsByIDs(ctx, workplaceID, accountIDs)
}

func (m *memLedger) LockAccountHierarchyInTx(ctx context.Context, tx pgx.Tx, workplaceID string) error {
	m.locks = append(m.locks, "hierarchy:"+workplaceID)
	return nil
}

func (m *memLedger) ListDescendantAccountsInTx(ctx context.Context, tx pgx.Tx, workplaceID, accountID string) ([]domain.Account, error) {
	return m.ListDescendantAccounts(ctx, workplaceID, accountID)
}

func (m *memLedger) ApplyBalanceDeltasInTx(ctx context.Context, tx pgx.Tx, workplaceID string, deltas map[string]decimal.Decimal, userID string, now time.Time) error {
	for id, delta := range deltas {
		acc, err := m.FindAccountByID(ctx, workplaceID, id)
		if err != nil {
			return err
		}
		acc.Balance = acc.Balance.Add(delta)
		acc.Touch(userID, now)
		m.cur().accounts[id] = *acc
	}
	return nil
}

// --- journal entries ---

func (m *memLedger) FindEntryByID(ctx context.Context, workplaceID, entryID string) (*domain.JournalEntry, error) {
	e, ok := m.cur().entries[entryID]
	if !ok || e.WorkplaceID != workplaceID {
		return nil, notFound("journal entry", entryID)
	}
	e.Lines = slices.Clone(e.Lines)
	return &e, nil
}

func (m *memLedger) FindEntryByNumber(ctx context.Context, workplaceID, entryNumber string) (*domain.JournalEntry, error) {
	for id, e := range m.cur().entries {
		if e.WorkplaceID == workplaceID && e.EntryNumber == entryNumber {
			return m.FindEntryByID(ctx, workplaceID, id)
		}
	}
	return nil, notFound("journal entry", entryNumber)
}

func (m *memLedger) ListEntries(ctx context.Context, workplaceID string, filter domain.JournalEntryFilter) ([]domain.JournalEntry, *string, error) {
	out := []domain.JournalEntry{}
	for _, e := range m.cur().entries {
		if e.WorkplaceID != workplaceID || (filter.Status != nil && e.Status != *filter.Status) {
			continue
		}
		e.Lines = nil
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].EntryNumber > out[j].EntryNumber })
	return out, nil, nil
}

func (m *memLedger) InsertEntryInTx(ctx context.Context, tx pgx.Tx, entry *domain.JournalEntry) error {
	st := m.cur()
	st.seq[entry.WorkplaceID]++
	entry.EntryNumber = domain.FormatEntryNumber(st.seq[entry.WorkplaceID])
	stored := *entry
	stored.Lines = slices.Clone(entry.Lines)
	st.entries[entry.EntryID] = stored
	return nil
}

func (m *memLedger) FindEntryByIDForUpdate(ctx context.Context, tx pgx.Tx, workplaceID, entryID string) (*domain.JournalEntry, error) {
	return m.FindEntryByID(ctx, workplaceID, entryID)
}

func (m *memLedger) InsertLineInTx(ctx context.Context, tx pgx.Tx, line domain.JournalEntryLine) error {
	e := m.cur().entries[line.EntryID]
	e.Lines = append(slices.Clone(e.Lines), line)
	m.cur().entries[line.EntryID] = e
	return nil
}

func (m *memLedger) UpdateLineInTx(ctx context.Context, tx pgx.Tx, line domain.JournalEntryLine) error {
	e := m.cur().entries[line.EntryID]
	e.Lines = slices.Clone(e.Lines)
	for i := range e.Lines {
		if e.Lines[i].LineID == line.LineID {
			e.Lines[i] = line
			m.cur().entries[line.EntryID] = e
			return nil
		}
	}
	return notFound("line", line.LineID)
}

func (m *memLedger) DeleteLineInTx(ctx context.Context, tx pgx.Tx, workplaceID, entryID, lineID string) error {
	e := m.cur().entries[entryID]
	e.Lines = slices.DeleteFunc(slices.Clone(e.Lines), func(l domain.JournalEntryLine) bool { return l.LineID == lineID })
	m.cur().entries[entryID] = e
	return nil
}

func (m *memLedger) UpdateEntryTotalsInTx(ctx context.Context, tx pgx.Tx, workplaceID, entryID string, totalDebit, totalCredit decimal.Decimal, userID string, now time.Time) error {
	e := m.cur().entries[entryID]
	e.TotalDebit, e.TotalCredit = totalDebit, totalCredit
	e.Touch(userID, now)
	m.cur().entries[entryID] = e
	return nil
}

func (m *memLedger) UpdateEntryHeaderInTx(ctx context.Context, tx pgx.Tx, entry domain.JournalEntry) error {
	stored, ok := m.cur().entries[entry.EntryID]
	if !ok || stored.WorkplaceID != entry.WorkplaceID || stored.Status != domain.Draft {
		return fmt.Errorf("%w: entry %s is not a draft", apperrors.ErrConflict, entry.EntryID)
	}
	stored.EntryDate = entry.EntryDate
	stored.FiscalPeriodID = entry.FiscalPeriodID
	stored.Reference = entry.Reference
	stored.Description = entry.Description
	stored.LastUpdatedAt = entry.LastUpdatedAt
	stored.LastUpdatedBy = entry.LastUpdatedBy
	m.cur().entries[entry.EntryID] = stored
	return nil
}

func (m *memLedger) MarkEntryPostedInTx(ctx context.Context, tx pgx.Tx, entry domain.JournalEntry) error {
	stored, ok := m.cur().entries[entry.EntryID]
	if !ok || stored.Status != domain.Draft {
		return fmt.Errorf("%w: entry %s is not a draft", apperrors.ErrConflict, entry.EntryID)
	}
	entry.Lines = slices.Clone(entry.Lines)
	m.cur().entries[entry.EntryID] = entry
	return nil
}

func (m *memLedger) MarkEntryReversedInTx(ctx context.Context, tx pgx.Tx, workplaceID, entryID, reversedByID, userID string, now time.Time) error {
	e := m.cur().entries[entryID]
	e.Status = domain.Reversed
	e.ReversedByID = &reversedByID
	e.Touch(userID, now)
	m.cur().entries[entryID] = e
	return nil
}

func (m *memLedger) ListDraftsForPeriodInTx(ctx context.Context, tx pgx.Tx, workplaceID, periodID string, from, to time.Time) ([]domain.JournalEntry, error) {
	out := []domain.JournalEntry{}
	for _, e := range m.cur().entries {
		if e.WorkplaceID != workplaceID || e.Status != domain.Draft {
			continue
		}
		inRange := !e.EntryDate.Before(from) && !e.EntryDate.After(to)
		if e.FiscalPeriodID == periodID || inRange {
			out = append(out, e)
		}
	}
	return out, nil
}

// --- fiscal periods ---

func (m *memLedger) FindPeriodByID(ctx context.Context, workplaceID, periodID string) (*domain.FiscalPeriod, error) {
	p, ok := m.cur().periods[periodID]
	if !ok || p.WorkplaceID != workplaceID {
		return nil, notFound("fiscal period", periodID)
	}
	return &p, nil
}

func (m *memLedger) FindPeriodForDate(ctx context.Context, workplaceID string, date time.Time) (*domain.FiscalPeriod, error) {
	for _, p := range m.cur().periods {
		if p.WorkplaceID == workplaceID && p.Contains(date) {
			return &p, nil
		}
	}
	return nil, notFound("fiscal period for date", date.Format(time.DateOnly))
}

func (m *memLedger) ListPeriods(ctx context.Context, workplaceID string, fiscalYear *int) ([]domain.FiscalPeriod, error) {
	out := []domain.FiscalPeriod{}
	for _, p := range m.cur().periods {
		if p.WorkplaceID == workplaceID && (fiscalYear == nil || p.FiscalYear == *fiscalYear) {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartDate.Before(out[j].StartDate) })
	return out, nil
}

func (m *memLedger) CreatePeriod(ctx context.Context, period domain.FiscalPeriod) error {
	for _, p := range m.cur().periods {
		if p.WorkplaceID == period.WorkplaceID && p.Overlaps(period) {
			return fmt.Errorf("%w: overlaps period %s", apperrors.ErrConflict, p.Name)
		}
	}
	m.cur().periods[period.PeriodID] = period
	return nil
}

func (m *memLedger) FindPeriodByIDForShare(ctx context.Context, tx pgx.Tx, workplaceID, periodID string) (*domain.FiscalPeriod, error) {
	return m.FindPeriodByID(ctx, workplaceID, periodID)
}

func (m *memLedger) FindPeriodByIDForUpdate(ctx context.Context, tx pgx.Tx, workplaceID, periodID string) (*domain.FiscalPeriod, error) {
	return m.FindPeriodByID(ctx, workplaceID, periodID)
}

func (m *memLedger) FindPeriodForDateInTx(ctx context.Context, tx pgx.Tx, workplaceID string, date time.Time) (*domain.FiscalPeriod, error) {
	return m.FindPeriodForDate(ctx, workplaceID, date)
}

func (m *memLedger) ClosePeriodInTx(ctx context.Context, tx pgx.Tx, workplaceID, periodID, userID string, now time.Time) error {
	p, err := m.FindPeriodByID(ctx, workplaceID, periodID)
	if err != nil {
		return err
	}
	p.Status = domain.PeriodClosed
	p.ClosedAt = &now
	p.ClosedBy = &userID
	m.cur().periods[periodID] = *p
	return nil
}

// balance reads the committed balance of an account.
func (m *memLedger) balance(accountID string) decimal.Decimal {
	return m.committed.accounts[accountID].Balance
}
