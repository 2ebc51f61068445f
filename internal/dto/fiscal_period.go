package dto

import (
	"time"

	"github.com/SscSPs/ledger_engine/internal/core/domain"
)

// OpenPeriodRequest defines a new open fiscal period. Dates are inclusive.
type OpenPeriodRequest struct {
	Name       string    `json:"name" binding:"required,max=100"`
	PeriodType string    `json:"periodType" binding:"required"`
	FiscalYear int       `json:"fiscalYear" binding:"required,min=1900,max=9999"`
	StartDate  time.Time `json:"startDate" binding:"required"`
	EndDate    time.Time `json:"endDate" binding:"required"`
}

// ListPeriodsParams defines query parameters for listing periods.
type ListPeriodsParams struct {
	FiscalYear *int `form:"fiscalYear"`
}

// FiscalPeriodResponse defines the data returned for a period.
type FiscalPeriodResponse struct {
	PeriodID   string              `json:"periodID"`
	Name       string              `json:"name"`
	PeriodType domain.PeriodType   `json:"periodType"`
	FiscalYear int                 `json:"fiscalYear"`
	StartDate  time.Time           `json:"startDate"`
	EndDate    time.Time           `json:"endDate"`
	Status     domain.PeriodStatus `json:"status"`
	ClosedAt   *time.Time          `json:"closedAt,omitempty"`
	ClosedBy   *string             `json:"closedBy,omitempty"`
}

// ClosePeriodResponse reports the closed period and any drafts left behind in it.
type ClosePeriodResponse struct {
	Period            FiscalPeriodResponse   `json:"period"`
	OutstandingDrafts []JournalEntryResponse `json:"outstandingDrafts"`
	Warning           string                 `json:"warning,omitempty"`
}

// ToFiscalPeriodResponse converts a domain.FiscalPeriod to its DTO.
func ToFiscalPeriodResponse(p *domain.FiscalPeriod) FiscalPeriodResponse {
	return FiscalPeriodResponse{
		PeriodID:   p.PeriodID,
		Name:       p.Name,
		PeriodType: p.PeriodType,
		FiscalYear: p.FiscalYear,
		StartDate:  p.StartDate,
		EndDate:    p.EndDate,
		Status:     p.Status,
		ClosedAt:   p.ClosedAt,
		ClosedBy:   p.ClosedBy,
	}
}

// ToFiscalPeriodResponses converts a slice of periods.
func ToFiscalPeriodResponses(periods []domain.FiscalPeriod) []FiscalPeriodResponse {
	res := make([]FiscalPeriodResponse, len(periods))
	for i := range periods {
		res[i] = ToFiscalPeriodResponse(&periods[i])
	}
	return res
}

// PeriodForDateParams is the query of the period lookup by date.
type PeriodForDateParams struct {
	Date time.Time `form:"date" time_format:"2006-01-02" binding:"required"`
}

// ListPeriodsResponse wraps a list of periods.
type ListPeriodsResponse struct {
	Periods []FiscalPeriodResponse `json:"periods"`
}
