package dto

import (
	"time"

	"github.com/SscSPs/ledger_engine/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateAccountRequest defines the data needed to create a new account.
type CreateAccountRequest struct {
	AccountNumber      *string  `json:"accountNumber" binding:"omitempty,account_number"` // Optional: generated from the type's block when absent
	Name               string   `json:"name" binding:"required,max=255"`
	Description        string   `json:"description"`
	AccountType        string   `json:"accountType" binding:"required"`
	SubType            string   `json:"subType" binding:"max=64"`
	CurrencyCode       string   `json:"currencyCode" binding:"required,iso4217"`
	ParentAccountID    *string  `json:"parentAccountID"`
	IsSystem           bool     `json:"isSystem"`
	AllowManualEntries *bool    `json:"allowManualEntries"` // Defaults to true
	Tags               []string `json:"tags"`
}

// AdjustAccountRequest defines the data allowed for updating an account.
// Use pointers to distinguish between zero-value updates and fields not provided.
type AdjustAccountRequest struct {
	Name               *string   `json:"name" binding:"omitempty,max=255"`
	Description        *string   `json:"description"`
	AccountType        *string   `json:"accountType"`
	SubType            *string   `json:"subType" binding:"omitempty,max=64"`
	ParentAccountID    *string   `json:"parentAccountID"` // Empty string detaches from the parent
	IsActive           *bool     `json:"isActive"`
	AllowManualEntries *bool     `json:"allowManualEntries"`
	Tags               *[]string `json:"tags"`
}

// ListAccountsParams defines query parameters for listing accounts.
type ListAccountsParams struct {
	AccountType string `form:"accountType"`
	IsActive    *bool  `form:"isActive"`
	Limit       int    `form:"limit,default=100" binding:"min=1,max=500"`
	Offset      int    `form:"offset,default=0" binding:"min=0"`
}

// AccountResponse defines the data returned for an account.
type AccountResponse struct {
	AccountID          string                   `json:"accountID"`
	AccountNumber      string                   `json:"accountNumber"`
	Name               string                   `json:"name"`
	Description        string                   `json:"description"`
	AccountType        domain.AccountType       `json:"accountType"`
	NormalBalanceSide  domain.NormalBalanceSide `json:"normalBalanceSide"`
	SubType            string                   `json:"subType"`
	CurrencyCode       string                   `json:"currencyCode"`
	ParentAccountID    string                   `json:"parentAccountID"` // Empty string when the account is a root
	IsActive           bool                     `json:"isActive"`
	IsSystem           bool                     `json:"isSystem"`
	AllowManualEntries bool                     `json:"allowManualEntries"`
	Tags               []string                 `json:"tags"`
	Balance            decimal.Decimal          `json:"balance"`
	CreatedAt          time.Time                `json:"createdAt"`
	CreatedBy          string                   `json:"createdBy"`
	LastUpdatedAt      time.Time                `json:"lastUpdatedAt"`
	LastUpdatedBy      string                   `json:"lastUpdatedBy"`
}

// ToAccountResponse converts a domain.Account to AccountResponse DTO
func ToAccountResponse(acc *domain.Account) AccountResponse {
	tags := acc.Tags
	if tags == nil {
		tags = []string{}
	}
	return AccountResponse{
		AccountID:          acc.AccountID,
		AccountNumber:      acc.AccountNumber,
		Name:               acc.Name,
		Description:        acc.Description,
		AccountType:        acc.AccountType,
		NormalBalanceSide:  acc.NormalBalanceSide(),
		SubType:            acc.SubType,
		CurrencyCode:       acc.CurrencyCode,
		ParentAccountID:    acc.ParentAccountID,
		IsActive:           acc.IsActive,
		IsSystem:           acc.IsSystem,
		AllowManualEntries: acc.AllowManualEntries,
		Tags:               tags,
		Balance:            acc.Balance,
		CreatedAt:          acc.CreatedAt,
		CreatedBy:          acc.CreatedBy,
		LastUpdatedAt:      acc.LastUpdatedAt,
		LastUpdatedBy:      acc.LastUpdatedBy,
	}
}

// ToListAccountResponse converts a slice of domain.Account to a slice of AccountResponse DTOs
func ToListAccountResponse(accounts []domain.Account) []AccountResponse {
	res := make([]AccountResponse, len(accounts))
	for i := range accounts {
		res[i] = ToAccountResponse(&accounts[i])
	}
	return res
}

// ListAccountsResponse wraps a list of accounts.
type ListAccountsResponse struct {
	Accounts []AccountResponse `json:"accounts"`
}
