package mapping

import (
	"github.com/SscSPs/ledger_engine/internal/core/domain"
	"github.com/SscSPs/ledger_engine/internal/models"
)

// ToModelJournalEntry converts a domain JournalEntry header to a model JournalEntry
func ToModelJournalEntry(d domain.JournalEntry) models.JournalEntry {
	return models.JournalEntry{
		EntryID:        d.EntryID,
		WorkplaceID:    d.WorkplaceID,
		EntryNumber:    d.EntryNumber,
		EntryDate:      d.EntryDate,
		Reference:      nullable(d.Reference),
		Description:    nullable(d.Description),
		FiscalPeriodID: nullable(d.FiscalPeriodID),
		Status:         models.JournalStatus(d.Status),
		TotalDebit:     d.TotalDebit,
		TotalCredit:    d.TotalCredit,
		CurrencyCode:   d.CurrencyCode,
		Tags:           nonNilTags(d.Tags),
		ReversalOfID:   d.ReversalOfID,
		ReversedByID:   d.ReversedByID,
		PostedAt:       d.PostedAt,
		AuditFields:    ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainJournalEntry converts a model JournalEntry to a domain JournalEntry without lines
func ToDomainJournalEntry(m models.JournalEntry) domain.JournalEntry {
	return domain.JournalEntry{
		EntryID:        m.EntryID,
		WorkplaceID:    m.WorkplaceID,
		EntryNumber:    m.EntryNumber,
		EntryDate:      m.EntryDate,
		Reference:      deref(m.Reference),
		Description:    deref(m.Description),
		FiscalPeriodID: deref(m.FiscalPeriodID),
		Status:         domain.EntryStatus(m.Status),
		TotalDebit:     m.TotalDebit,
		TotalCredit:    m.TotalCredit,
		CurrencyCode:   m.CurrencyCode,
		Tags:           nonNilTags(m.Tags),
		ReversalOfID:   m.ReversalOfID,
		ReversedByID:   m.ReversedByID,
		PostedAt:       m.PostedAt,
		AuditFields:    ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelJournalEntryLine converts a domain line to a model line
func ToModelJournalEntryLine(d domain.JournalEntryLine) models.JournalEntryLine {
	return models.JournalEntryLine{
		LineID:       d.LineID,
		EntryID:      d.EntryID,
		WorkplaceID:  d.WorkplaceID,
		AccountID:    d.AccountID,
		LineNo:       d.LineNo,
		Description:  nullable(d.Description),
		DebitAmount:  d.DebitAmount,
		CreditAmount: d.CreditAmount,
		CurrencyCode: d.CurrencyCode,
		ExchangeRate: d.ExchangeRate,
		AuditFields:  ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainJournalEntryLine converts a model line to a domain line
func ToDomainJournalEntryLine(m models.JournalEntryLine) domain.JournalEntryLine {
	return domain.JournalEntryLine{
		LineID:       m.LineID,
		EntryID:      m.EntryID,
		WorkplaceID:  m.WorkplaceID,
		AccountID:    m.AccountID,
		LineNo:       m.LineNo,
		Description:  deref(m.Description),
		DebitAmount:  m.DebitAmount,
		CreditAmount: m.CreditAmount,
		CurrencyCode: m.CurrencyCode,
		ExchangeRate: m.ExchangeRate,
		AuditFields:  ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainJournalEntryLineSlice converts model lines to domain lines
func ToDomainJournalEntryLineSlice(ms []models.JournalEntryLine) []domain.JournalEntryLine {
	ds := make([]domain.JournalEntryLine, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainJournalEntryLine(m)
	}
	return ds
}
