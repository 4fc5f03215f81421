package models

import "time"

// FiscalPeriod is the fiscal_periods row.
type FiscalPeriod struct {
	FiscalPeriodID string    `db:"fiscal_period_id"`
	TenantID       string    `db:"tenant_id"`
	Name           string    `db:"name"`
	StartDate      time.Time `db:"start_date"`
	EndDate        time.Time `db:"end_date"`
	Status         string    `db:"status"`
}
