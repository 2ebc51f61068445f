package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/ledger_engine/internal/apperrors"
	"github.com/SscSPs/ledger_engine/internal/core/domain"
	"github.com/SscSPs/ledger_engine/internal/utils/accounting"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const reversalDescriptionPrefix = "Reversal of "

var postingsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "ledger_journal_postings_total",
	Help: "Journal entry posting attempts by outcome",
}, []string{"operation", "outcome"})

// ValidateBalance reports whether the entry's lines balance in the entry currency.
func (s *journalService) ValidateBalance(entry domain.JournalEntry) error {
	if _, _, err := accounting.ValidateBalance(entry.Lines, entry.CurrencyCode); err != nil {
		return fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
	}
	return nil
}

func (s *journalService) PostJournalEntry(ctx context.Context, workplaceID, entryID, userID string) (*domain.PostingResult, error) {
	result, err := s.post(ctx, workplaceID, entryID, userID)
	postingsTotal.WithLabelValues("post", outcomeLabel(err)).Inc()
	if err != nil {
		s.LogError(ctx, err, "Failed to post journal entry",
			slog.String("workplace_id", workplaceID),
			slog.String("entry_id", entryID))
		return nil, err
	}
	s.LogInfo(ctx, "Journal entry posted",
		slog.String("entry_id", result.Entry.EntryID),
		slog.String("entry_number", result.Entry.EntryNumber),
		slog.String("total", result.Entry.TotalDebit.String()))
	return result, nil
}

func (s *journalService) post(ctx context.Context, workplaceID, entryID, userID string) (*domain.PostingResult, error) {
	tx, err := s.journalRepo.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = s.journalRepo.Rollback(ctx, tx) }()

	entry, err := s.journalRepo.FindEntryByIDForUpdate(ctx, tx, workplaceID, entryID)
	if err != nil {
		return nil, err
	}
	if entry.Status != domain.Draft {
		return nil, fmt.Errorf("%w: journal entry %s is already %s", apperrors.ErrConflict, entry.EntryNumber, entry.Status)
	}

	event, err := s.postInTx(ctx, tx, entry, userID, s.Now())
	if err != nil {
		return nil, err
	}
	if err := s.journalRepo.Commit(ctx, tx); err != nil {
		return nil, fmt.Errorf("failed to commit posting: %w", err)
	}
	return &domain.PostingResult{Entry: *entry, Events: []domain.DomainEvent{event}}, nil
}

// postInTx validates a locked draft and applies it to the ledger inside tx. The entry
// is updated in place. Nothing is visible until the caller commits.
func (s *journalService) postInTx(ctx context.Context, tx pgx.Tx, entry *domain.JournalEntry, userID string, now time.Time) (domain.DomainEvent, error) {
	debits, credits, err := accounting.ValidateBalance(entry.Lines, entry.CurrencyCode)
	if err != nil {
		return domain.DomainEvent{}, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
	}

	if err := s.checkPeriodAcceptsPosting(ctx, tx, *entry); err != nil {
		return domain.DomainEvent{}, err
	}

	ids := uniqueAccountIDs(entry.Lines)
	accounts, err := s.accountRepo.FindAccountsByIDsForUpdate(ctx, tx, entry.WorkplaceID, ids)
	if err != nil {
		return domain.DomainEvent{}, fmt.Errorf("failed to lock accounts: %w", err)
	}
	for _, id := range ids {
		acc, ok := accounts[id]
		if !ok {
			return domain.DomainEvent{}, fmt.Errorf("%w: account %s", apperrors.ErrNotFound, id)
		}
		if !acc.IsActive {
			return domain.DomainEvent{}, fmt.Errorf("%w: account %s is inactive", apperrors.ErrDomain, acc.AccountNumber)
		}
	}

	deltas, err := accounting.BalanceDeltas(entry.Lines, accounts)
	if err != nil {
		return domain.DomainEvent{}, err
	}
	if err := s.accountRepo.ApplyBalanceDeltasInTx(ctx, tx, entry.WorkplaceID, deltas, userID, now); err != nil {
		return domain.DomainEvent{}, fmt.Errorf("failed to apply balance changes: %w", err)
	}

	entry.Status = domain.Posted
	entry.TotalDebit = debits
	entry.TotalCredit = credits
	entry.PostedAt = &now
	entry.Touch(userID, now)
	if err := s.journalRepo.MarkEntryPostedInTx(ctx, tx, *entry); err != nil {
		return domain.DomainEvent{}, err
	}

	return domain.DomainEvent{
		Type:        domain.EventJournalEntryPosted,
		WorkplaceID: entry.WorkplaceID,
		AggregateID: entry.EntryID,
		OccurredAt:  now,
		Attributes: map[string]string{
			"entry_number":     entry.EntryNumber,
			"fiscal_period_id": entry.FiscalPeriodID,
			"currency":         entry.CurrencyCode,
			"total":            debits.String(),
			"line_count":       fmt.Sprint(len(entry.Lines)),
		},
	}, nil
}

// checkPeriodAcceptsPosting takes a share lock on the entry's period so a concurrent
// close waits for this tx, then requires the period to be open and to contain the date.
func (s *journalService) checkPeriodAcceptsPosting(ctx context.Context, tx pgx.Tx, entry domain.JournalEntry) error {
	if entry.FiscalPeriodID == "" {
		return fmt.Errorf("%w: journal entry %s is not assigned to a fiscal period", apperrors.ErrDomain, entry.EntryNumber)
	}
	period, err := s.periodRepo.FindPeriodByIDForShare(ctx, tx, entry.WorkplaceID, entry.FiscalPeriodID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return fmt.Errorf("%w: fiscal period %s does not exist", apperrors.ErrDomain, entry.FiscalPeriodID)
		}
		return fmt.Errorf("failed to lock fiscal period: %w", err)
	}
	if !period.IsOpen() {
		return fmt.Errorf("%w: fiscal period %s is closed", apperrors.ErrDomain, period.Name)
	}
	if !period.Contains(entry.EntryDate) {
		return fmt.Errorf("%w: entry date %s is outside fiscal period %s",
			apperrors.ErrDomain, entry.EntryDate.Format(time.DateOnly), period.Name)
	}
	return nil
}

func (s *journalService) ReverseJournalEntry(ctx context.Context, workplaceID, entryID string, reversalDate time.Time, userID string) (*domain.ReversalResult, error) {
	result, err := s.reverse(ctx, workplaceID, entryID, reversalDate, userID)
	postingsTotal.WithLabelValues("reverse", outcomeLabel(err)).Inc()
	if err != nil {
		s.LogError(ctx, err, "Failed to reverse journal entry",
			slog.String("workplace_id", workplaceID),
			slog.String("entry_id", entryID))
		return nil, err
	}
	s.LogInfo(ctx, "Journal entry reversed",
		slog.String("entry_id", result.Original.EntryID),
		slog.String("reversal_entry_id", result.Reversal.EntryID),
		slog.String("reversal_entry_number", result.Reversal.EntryNumber))
	return result, nil
}

func (s *journalService) reverse(ctx context.Context, workplaceID, entryID string, reversalDate time.Time, userID string) (*domain.ReversalResult, error) {
	now := s.Now()
	if reversalDate.IsZero() {
		reversalDate = now
	}
	reversalDate = domain.DateOnly(reversalDate)

	tx, err := s.journalRepo.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = s.journalRepo.Rollback(ctx, tx) }()

	original, err := s.journalRepo.FindEntryByIDForUpdate(ctx, tx, workplaceID, entryID)
	if err != nil {
		return nil, err
	}
	if original.Status != domain.Posted {
		return nil, fmt.Errorf("%w: only posted entries can be reversed, %s is %s",
			apperrors.ErrConflict, original.EntryNumber, original.Status)
	}

	period, err := s.periodRepo.FindPeriodForDateInTx(ctx, tx, workplaceID, reversalDate)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: no fiscal period contains reversal date %s",
				apperrors.ErrDomain, reversalDate.Format(time.DateOnly))
		}
		return nil, fmt.Errorf("failed to resolve reversal period: %w", err)
	}

	reversal := buildReversal(*original, period.PeriodID, reversalDate, userID, now)
	if err := s.journalRepo.InsertEntryInTx(ctx, tx, &reversal); err != nil {
		return nil, err
	}

	postedEvent, err := s.postInTx(ctx, tx, &reversal, userID, now)
	if err != nil {
		return nil, err
	}

	if err := s.journalRepo.MarkEntryReversedInTx(ctx, tx, workplaceID, original.EntryID, reversal.EntryID, userID, now); err != nil {
		return nil, err
	}
	original.Status = domain.Reversed
	original.ReversedByID = &reversal.EntryID
	original.Touch(userID, now)

	if err := s.journalRepo.Commit(ctx, tx); err != nil {
		return nil, fmt.Errorf("failed to commit reversal: %w", err)
	}

	reversedEvent := domain.DomainEvent{
		Type:        domain.EventJournalEntryReversed,
		WorkplaceID: workplaceID,
		AggregateID: original.EntryID,
		OccurredAt:  now,
		Attributes: map[string]string{
			"entry_number":          original.EntryNumber,
			"reversal_entry_id":     reversal.EntryID,
			"reversal_entry_number": reversal.EntryNumber,
		},
	}
	return &domain.ReversalResult{
		Original: *original,
		Reversal: reversal,
		Events:   []domain.DomainEvent{postedEvent, reversedEvent},
	}, nil
}

// buildReversal mirrors every line of original into a new draft dated on date.
func buildReversal(original domain.JournalEntry, periodID string, date time.Time, userID string, now time.Time) domain.JournalEntry {
	originalID := original.EntryID
	reversal := domain.JournalEntry{
		EntryID:        uuid.NewString(),
		WorkplaceID:    original.WorkplaceID,
		EntryDate:      date,
		Reference:      original.EntryNumber,
		Description:    reversalDescriptionPrefix + original.EntryNumber + ": " + original.Description,
		FiscalPeriodID: periodID,
		Status:         domain.Draft,
		CurrencyCode:   original.CurrencyCode,
		Tags:           original.Tags,
		ReversalOfID:   &originalID,
		AuditFields:    domain.NewAuditFields(userID, now),
	}

	reversal.Lines = make([]domain.JournalEntryLine, len(original.Lines))
	for i, line := range original.Lines {
		mirrored := line.Mirror()
		mirrored.LineID = uuid.NewString()
		mirrored.EntryID = reversal.EntryID
		mirrored.AuditFields = domain.NewAuditFields(userID, now)
		reversal.Lines[i] = mirrored
	}
	reversal.TotalDebit, reversal.TotalCredit = accounting.Totals(reversal.Lines, reversal.CurrencyCode)
	return reversal
}

func outcomeLabel(err error) string {
	switch apperrors.Kind(err) {
	case nil:
		return "success"
	case apperrors.ErrValidation:
		return "validation"
	case apperrors.ErrNotFound:
		return "not_found"
	case apperrors.ErrConflict:
		return "conflict"
	case apperrors.ErrDomain:
		return "domain"
	default:
		return "internal"
	}
}
