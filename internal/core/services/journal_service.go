package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/SscSPs/ledger_engine/internal/apperrors"
	"github.com/SscSPs/ledger_engine/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_engine/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/ledger_engine/internal/core/ports/services"
	"github.com/SscSPs/ledger_engine/internal/dto"
	"github.com/SscSPs/ledger_engine/internal/utils/accounting"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// journalService implements the JournalSvcFacade interface. Draft editing lives
// here, posting and reversal in journal_posting.go.
type journalService struct {
	BaseService
	journalRepo portsrepo.JournalRepositoryWithTx
	accountRepo portsrepo.AccountRepositoryWithTx
	periodRepo  portsrepo.FiscalPeriodRepositoryWithTx
}

// NewJournalService creates a new journal service. All three repositories share one pool,
// so a tx begun on the journal repository is valid for the others.
func NewJournalService(
	journalRepo portsrepo.JournalRepositoryWithTx,
	accountRepo portsrepo.AccountRepositoryWithTx,
	periodRepo portsrepo.FiscalPeriodRepositoryWithTx,
	options ...ServiceOption,
) portssvc.JournalSvcFacade {
	opts := applyOptions(options)
	return &journalService{
		BaseService: BaseService{clock: opts.clock},
		journalRepo: journalRepo,
		accountRepo: accountRepo,
		periodRepo:  periodRepo,
	}
}

// Ensure journalService implements the JournalSvcFacade interface
var _ portssvc.JournalSvcFacade = (*journalService)(nil)

func (s *journalService) CreateJournalEntry(ctx context.Context, workplaceID string, req dto.CreateJournalEntryRequest, userID string) (*domain.JournalEntry, error) {
	currency := domain.NormalizeCurrency(req.CurrencyCode)
	if !domain.IsSupportedCurrency(currency) {
		return nil, fmt.Errorf("%w: currency %q is not supported", apperrors.ErrValidation, req.CurrencyCode)
	}
	if req.EntryDate.IsZero() {
		return nil, fmt.Errorf("%w: entry date is required", apperrors.ErrValidation)
	}

	periodID, err := s.resolvePeriod(ctx, workplaceID, req.FiscalPeriodID, req.EntryDate)
	if err != nil {
		return nil, err
	}

	now := s.Now()
	entry := domain.JournalEntry{
		EntryID:        uuid.NewString(),
		WorkplaceID:    workplaceID,
		EntryDate:      domain.DateOnly(req.EntryDate),
		Reference:      req.Reference,
		Description:    req.Description,
		FiscalPeriodID: periodID,
		Status:         domain.Draft,
		CurrencyCode:   currency,
		Tags:           req.Tags,
		AuditFields:    domain.NewAuditFields(userID, now),
	}

	lines := make([]domain.JournalEntryLine, 0, len(req.Lines))
	for i, lr := range req.Lines {
		line, err := s.newLine(entry, lr, userID, now)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", i+1, err)
		}
		line.LineNo = i + 1
		lines = append(lines, line)
	}
	if err := s.checkLineAccounts(ctx, workplaceID, lines); err != nil {
		return nil, err
	}
	entry.Lines = lines
	entry.TotalDebit, entry.TotalCredit = accounting.Totals(lines, currency)

	tx, err := s.journalRepo.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = s.journalRepo.Rollback(ctx, tx) }()

	if err := s.journalRepo.InsertEntryInTx(ctx, tx, &entry); err != nil {
		s.LogError(ctx, err, "Failed to insert journal entry", slog.String("workplace_id", workplaceID))
		return nil, err
	}
	if err := s.journalRepo.Commit(ctx, tx); err != nil {
		return nil, fmt.Errorf("failed to commit journal entry: %w", err)
	}

	s.LogInfo(ctx, "Journal entry created",
		slog.String("entry_id", entry.EntryID),
		slog.String("entry_number", entry.EntryNumber),
		slog.Int("line_count", len(entry.Lines)))
	return &entry, nil
}

// UpdateJournalEntry edits the header of a draft under its row lock. Changing the
// date or period re-resolves the period, which is how a draft left in a closed
// period moves to an open one.
func (s *journalService) UpdateJournalEntry(ctx context.Context, workplaceID, entryID string, req dto.UpdateJournalEntryRequest, userID string) (*domain.JournalEntry, error) {
	if req.EntryDate == nil && req.FiscalPeriodID == nil && req.Reference == nil && req.Description == nil {
		return nil, fmt.Errorf("%w: no header fields to update", apperrors.ErrValidation)
	}
	if req.EntryDate != nil && req.EntryDate.IsZero() {
		return nil, fmt.Errorf("%w: entry date must not be empty", apperrors.ErrValidation)
	}

	tx, err := s.journalRepo.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = s.journalRepo.Rollback(ctx, tx) }()

	entry, err := s.lockDraft(ctx, tx, workplaceID, entryID)
	if err != nil {
		return nil, err
	}

	if req.EntryDate != nil {
		entry.EntryDate = domain.DateOnly(*req.EntryDate)
	}
	if req.EntryDate != nil || req.FiscalPeriodID != nil {
		periodID, err := s.resolvePeriod(ctx, workplaceID, req.FiscalPeriodID, entry.EntryDate)
		if err != nil {
			return nil, err
		}
		entry.FiscalPeriodID = periodID
	}
	if req.Reference != nil {
		entry.Reference = *req.Reference
	}
	if req.Description != nil {
		entry.Description = *req.Description
	}

	entry.Touch(userID, s.Now())
	if err := s.journalRepo.UpdateEntryHeaderInTx(ctx, tx, *entry); err != nil {
		s.LogError(ctx, err, "Failed to update journal entry", slog.String("entry_id", entryID))
		return nil, err
	}
	if err := s.journalRepo.Commit(ctx, tx); err != nil {
		return nil, fmt.Errorf("failed to commit journal entry update: %w", err)
	}

	s.LogInfo(ctx, "Journal entry updated",
		slog.String("entry_id", entryID),
		slog.String("fiscal_period_id", entry.FiscalPeriodID))
	return entry, nil
}

// resolvePeriod returns the explicit period when given, otherwise the period containing
// the entry date. An entry with no matching period stays unassigned.
func (s *journalService) resolvePeriod(ctx context.Context, workplaceID string, periodID *string, entryDate time.Time) (string, error) {
	if periodID != nil && *periodID != "" {
		period, err := s.periodRepo.FindPeriodByID(ctx, workplaceID, *periodID)
		if err != nil {
			return "", err
		}
		return period.PeriodID, nil
	}
	period, err := s.periodRepo.FindPeriodForDate(ctx, workplaceID, entryDate)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			s.LogDebug(ctx, "No fiscal period for entry date, leaving entry unassigned",
				slog.String("entry_date", entryDate.Format(time.DateOnly)))
			return "", nil
		}
		return "", fmt.Errorf("failed to resolve fiscal period: %w", err)
	}
	return period.PeriodID, nil
}

// newLine builds a validated line for entry from a request. Currency defaults to the
// entry currency and the exchange rate to 1.
func (s *journalService) newLine(entry domain.JournalEntry, req dto.JournalLineRequest, userID string, now time.Time) (domain.JournalEntryLine, error) {
	currency := entry.CurrencyCode
	if strings.TrimSpace(req.CurrencyCode) != "" {
		currency = domain.NormalizeCurrency(req.CurrencyCode)
	}
	rate := decimal.NewFromInt(1)
	if req.ExchangeRate != nil {
		rate = *req.ExchangeRate
	}

	line := domain.JournalEntryLine{
		LineID:       uuid.NewString(),
		EntryID:      entry.EntryID,
		WorkplaceID:  entry.WorkplaceID,
		AccountID:    req.AccountID,
		Description:  req.Description,
		DebitAmount:  req.DebitAmount,
		CreditAmount: req.CreditAmount,
		CurrencyCode: currency,
		ExchangeRate: rate,
		AuditFields:  domain.NewAuditFields(userID, now),
	}
	if !domain.IsSupportedCurrency(currency) {
		return line, fmt.Errorf("%w: currency %q is not supported", apperrors.ErrValidation, req.CurrencyCode)
	}
	if err := line.Validate(); err != nil {
		return line, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
	}
	return line, nil
}

// checkLineAccounts verifies every referenced account exists, matches the line
// currency and accepts manual entries.
func (s *journalService) checkLineAccounts(ctx context.Context, workplaceID string, lines []domain.JournalEntryLine) error {
	if len(lines) == 0 {
		return nil
	}
	ids := uniqueAccountIDs(lines)
	accounts, err := s.accountRepo.FindAccountsByIDs(ctx, workplaceID, ids)
	if err != nil {
		return fmt.Errorf("failed to load line accounts: %w", err)
	}
	for _, line := range lines {
		acc, ok := accounts[line.AccountID]
		if !ok {
			return fmt.Errorf("%w: account %s", apperrors.ErrNotFound, line.AccountID)
		}
		if acc.CurrencyCode != line.CurrencyCode {
			return fmt.Errorf("%w: line currency %s does not match account %s currency %s",
				apperrors.ErrValidation, line.CurrencyCode, acc.AccountNumber, acc.CurrencyCode)
		}
		if !acc.AllowManualEntries {
			return fmt.Errorf("%w: account %s does not allow manual entries", apperrors.ErrDomain, acc.AccountNumber)
		}
	}
	return nil
}

// lockDraft loads the entry under its row lock and requires it to still be a draft.
func (s *journalService) lockDraft(ctx context.Context, tx pgx.Tx, workplaceID, entryID string) (*domain.JournalEntry, error) {
	entry, err := s.journalRepo.FindEntryByIDForUpdate(ctx, tx, workplaceID, entryID)
	if err != nil {
		return nil, err
	}
	if !entry.IsDraft() {
		return nil, fmt.Errorf("%w: journal entry %s is %s, only drafts can be edited",
			apperrors.ErrConflict, entry.EntryNumber, entry.Status)
	}
	return entry, nil
}

// editDraft runs fn against the locked draft and persists the refreshed totals in the same tx.
func (s *journalService) editDraft(ctx context.Context, workplaceID, entryID, userID string, fn func(tx pgx.Tx, entry *domain.JournalEntry, now time.Time) error) (*domain.JournalEntry, error) {
	tx, err := s.journalRepo.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = s.journalRepo.Rollback(ctx, tx) }()

	entry, err := s.lockDraft(ctx, tx, workplaceID, entryID)
	if err != nil {
		return nil, err
	}

	now := s.Now()
	if err := fn(tx, entry, now); err != nil {
		return nil, err
	}

	entry.TotalDebit, entry.TotalCredit = accounting.Totals(entry.Lines, entry.CurrencyCode)
	entry.Touch(userID, now)
	if err := s.journalRepo.UpdateEntryTotalsInTx(ctx, tx, workplaceID, entryID, entry.TotalDebit, entry.TotalCredit, userID, now); err != nil {
		return nil, err
	}
	if err := s.journalRepo.Commit(ctx, tx); err != nil {
		return nil, fmt.Errorf("failed to commit line change: %w", err)
	}
	return entry, nil
}

func (s *journalService) AddJournalLine(ctx context.Context, workplaceID, entryID string, req dto.JournalLineRequest, userID string) (*domain.JournalEntry, error) {
	entry, err := s.editDraft(ctx, workplaceID, entryID, userID, func(tx pgx.Tx, entry *domain.JournalEntry, now time.Time) error {
		line, err := s.newLine(*entry, req, userID, now)
		if err != nil {
			return err
		}
		if err := s.checkLineAccounts(ctx, workplaceID, []domain.JournalEntryLine{line}); err != nil {
			return err
		}
		line.LineNo = nextLineNo(entry.Lines)
		if err := s.journalRepo.InsertLineInTx(ctx, tx, line); err != nil {
			return err
		}
		entry.Lines = append(entry.Lines, line)
		return nil
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to add journal line", slog.String("entry_id", entryID))
		return nil, err
	}
	return entry, nil
}

func (s *journalService) UpdateJournalLine(ctx context.Context, workplaceID, entryID, lineID string, req dto.JournalLineRequest, userID string) (*domain.JournalEntry, error) {
	entry, err := s.editDraft(ctx, workplaceID, entryID, userID, func(tx pgx.Tx, entry *domain.JournalEntry, now time.Time) error {
		idx := slices.IndexFunc(entry.Lines, func(l domain.JournalEntryLine) bool { return l.LineID == lineID })
		if idx < 0 {
			return fmt.Errorf("%w: line %s on entry %s", apperrors.ErrNotFound, lineID, entryID)
		}
		existing := entry.Lines[idx]

		line, err := s.newLine(*entry, req, userID, now)
		if err != nil {
			return err
		}
		if err := s.checkLineAccounts(ctx, workplaceID, []domain.JournalEntryLine{line}); err != nil {
			return err
		}
		line.LineID = existing.LineID
		line.LineNo = existing.LineNo
		line.CreatedAt = existing.CreatedAt
		line.CreatedBy = existing.CreatedBy
		if err := s.journalRepo.UpdateLineInTx(ctx, tx, line); err != nil {
			return err
		}
		entry.Lines[idx] = line
		return nil
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to update journal line",
			slog.String("entry_id", entryID),
			slog.String("line_id", lineID))
		return nil, err
	}
	return entry, nil
}

func (s *journalService) RemoveJournalLine(ctx context.Context, workplaceID, entryID, lineID string, userID string) (*domain.JournalEntry, error) {
	entry, err := s.editDraft(ctx, workplaceID, entryID, userID, func(tx pgx.Tx, entry *domain.JournalEntry, _ time.Time) error {
		idx := slices.IndexFunc(entry.Lines, func(l domain.JournalEntryLine) bool { return l.LineID == lineID })
		if idx < 0 {
			return fmt.Errorf("%w: line %s on entry %s", apperrors.ErrNotFound, lineID, entryID)
		}
		if err := s.journalRepo.DeleteLineInTx(ctx, tx, workplaceID, entryID, lineID); err != nil {
			return err
		}
		entry.Lines = slices.Delete(entry.Lines, idx, idx+1)
		return nil
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to remove journal line",
			slog.String("entry_id", entryID),
			slog.String("line_id", lineID))
		return nil, err
	}
	return entry, nil
}

func (s *journalService) GetJournalEntryByID(ctx context.Context, workplaceID, entryID string) (*domain.JournalEntry, error) {
	return s.journalRepo.FindEntryByID(ctx, workplaceID, entryID)
}

func (s *journalService) GetJournalEntryByNumber(ctx context.Context, workplaceID, entryNumber string) (*domain.JournalEntry, error) {
	return s.journalRepo.FindEntryByNumber(ctx, workplaceID, entryNumber)
}

func (s *journalService) ListJournalEntries(ctx context.Context, workplaceID string, params dto.ListJournalEntriesParams) ([]domain.JournalEntry, *string, error) {
	filter := domain.JournalEntryFilter{
		From:      params.From,
		To:        params.To,
		Limit:     params.Limit,
		NextToken: params.NextToken,
	}
	if filter.Limit <= 0 {
		filter.Limit = 20
	}
	if params.Status != "" {
		status := domain.EntryStatus(strings.ToUpper(params.Status))
		if !status.IsValid() {
			return nil, nil, fmt.Errorf("%w: unknown entry status %q", apperrors.ErrValidation, params.Status)
		}
		filter.Status = &status
	}
	if filter.From != nil && filter.To != nil && filter.From.After(*filter.To) {
		return nil, nil, fmt.Errorf("%w: from must not be after to", apperrors.ErrValidation)
	}

	entries, next, err := s.journalRepo.ListEntries(ctx, workplaceID, filter)
	if err != nil {
		s.LogError(ctx, err, "Failed to list journal entries", slog.String("workplace_id", workplaceID))
		return nil, nil, err
	}
	return entries, next, nil
}

func nextLineNo(lines []domain.JournalEntryLine) int {
	maxNo := 0
	for _, l := range lines {
		maxNo = max(maxNo, l.LineNo)
	}
	return maxNo + 1
}

// uniqueAccountIDs returns the sorted distinct account ids of lines. Sorting fixes
// the row lock order.
func uniqueAccountIDs(lines []domain.JournalEntryLine) []string {
	ids := make([]string, 0, len(lines))
	for _, l := range lines {
		ids = append(ids, l.AccountID)
	}
	slices.Sort(ids)
	return slices.Compact(ids)
}
