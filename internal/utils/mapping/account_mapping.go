package mapping

import (
	"github.com/SscSPs/ledger_engine/internal/core/domain"
	"github.com/SscSPs/ledger_engine/internal/models"
)

// ToModelAccount converts a domain Account to a model Account
func ToModelAccount(d domain.Account) models.Account {
	return models.Account{
		AccountID:          d.AccountID,
		WorkplaceID:        d.WorkplaceID,
		AccountNumber:      d.AccountNumber,
		Name:               d.Name,
		Description:        d.Description,
		AccountType:        models.AccountType(d.AccountType),
		SubType:            nullable(d.SubType),
		CurrencyCode:       d.CurrencyCode,
		ParentAccountID:    nullable(d.ParentAccountID),
		IsActive:           d.IsActive,
		IsSystem:           d.IsSystem,
		AllowManualEntries: d.AllowManualEntries,
		Tags:               nonNilTags(d.Tags),
		Balance:            d.Balance,
		DeletedAt:          d.DeletedAt,
		AuditFields:        ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainAccount converts a model Account to a domain Account
func ToDomainAccount(m models.Account) domain.Account {
	return domain.Account{
		AccountID:          m.AccountID,
		WorkplaceID:        m.WorkplaceID,
		AccountNumber:      m.AccountNumber,
		Name:               m.Name,
		Description:        m.Description,
		AccountType:        domain.AccountType(m.AccountType),
		SubType:            deref(m.SubType),
		CurrencyCode:       m.CurrencyCode,
		ParentAccountID:    deref(m.ParentAccountID),
		IsActive:           m.IsActive,
		IsSystem:           m.IsSystem,
		AllowManualEntries: m.AllowManualEntries,
		Tags:               nonNilTags(m.Tags),
		Balance:            m.Balance,
		DeletedAt:          m.DeletedAt,
		AuditFields:        ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainAccountSlice converts a slice of model Accounts to a slice of domain Accounts
func ToDomainAccountSlice(ms []models.Account) []domain.Account {
	ds := make([]domain.Account, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainAccount(m)
	}
	return ds
}
