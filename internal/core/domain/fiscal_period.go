package domain

import (
	"fmt"
	"strings"
	"time"
)

// PeriodStatus is whether a fiscal period still accepts postings.
type PeriodStatus string

const (
	PeriodOpen   PeriodStatus = "OPEN"
	PeriodClosed PeriodStatus = "CLOSED"
)

// PeriodType is the granularity of a fiscal period.
type PeriodType string

const (
	PeriodMonth   PeriodType = "MONTH"
	PeriodQuarter PeriodType = "QUARTER"
	PeriodYear    PeriodType = "YEAR"
)

func ParsePeriodType(s string) (PeriodType, error) {
	t := PeriodType(strings.ToUpper(strings.TrimSpace(s)))
	switch t {
	case PeriodMonth, PeriodQuarter, PeriodYear:
		return t, nil
	}
	return "", fmt.Errorf("unknown period type %q", s)
}

// FiscalPeriod is a bounded, inclusive date range used to lock activity.
type FiscalPeriod struct {
	PeriodID    string       `json:"periodID"`
	WorkplaceID string       `json:"workplaceID"`
	Name        string       `json:"name"`
	PeriodType  PeriodType   `json:"periodType"`
	FiscalYear  int          `json:"fiscalYear"`
	StartDate   time.Time    `json:"startDate"`
	EndDate     time.Time    `json:"endDate"`
	Status      PeriodStatus `json:"status"`
	ClosedAt    *time.Time   `json:"closedAt,omitempty"`
	ClosedBy    *string      `json:"closedBy,omitempty"`
	AuditFields
}

func (p FiscalPeriod) IsOpen() bool {
	return p.Status == PeriodOpen
}

// Contains reports whether the calendar day of t lies within the period.
func (p FiscalPeriod) Contains(t time.Time) bool {
	d := DateOnly(t)
	return !d.Before(DateOnly(p.StartDate)) && !d.After(DateOnly(p.EndDate))
}

// Overlaps reports whether two inclusive ranges share at least one day.
func (p FiscalPeriod) Overlaps(other FiscalPeriod) bool {
	return !DateOnly(p.StartDate).After(DateOnly(other.EndDate)) &&
		!DateOnly(other.StartDate).After(DateOnly(p.EndDate))
}

// DateOnly truncates t to midnight UTC of its calendar day.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// CloseResult is returned when a period is closed. OutstandingDrafts are
// draft entries that can no longer be posted into the period.
type CloseResult struct {
	Period            FiscalPeriod
	OutstandingDrafts []JournalEntry
	Events            []DomainEvent
}
