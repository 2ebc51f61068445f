package models

import "time"

// FiscalPeriod represents a row of the fiscal_periods table.
type FiscalPeriod struct {
	PeriodID    string     `db:"period_id"`
	WorkplaceID string     `db:"workplace_id"`
	Name        string     `db:"name"`
	PeriodType  string     `db:"period_type"`
	FiscalYear  int        `db:"fiscal_year"`
	StartDate   time.Time  `db:"start_date"`
	EndDate     time.Time  `db:"end_date"`
	Status      string     `db:"status"`
	ClosedAt    *time.Time `db:"closed_at"`
	ClosedBy    *string    `db:"closed_by"`
	AuditFields
}
