package domain

import "time"

// FiscalPeriodStatus gates whether postings are permitted into a period.
type FiscalPeriodStatus string

const (
	PeriodOpen   FiscalPeriodStatus = "open"
	PeriodClosed FiscalPeriodStatus = "closed"
	PeriodLocked FiscalPeriodStatus = "locked"
)

// FiscalPeriod is a bounded accounting interval. The posting engine reads it
// to decide whether posting is permitted; it does not own the period
// lifecycle.
type FiscalPeriod struct {
	FiscalPeriodID string             `json:"fiscalPeriodID"`
	TenantID       string             `json:"tenantID"`
	Name           string             `json:"name"`
	StartDate      time.Time          `json:"startDate"`
	EndDate        time.Time          `json:"endDate"`
	Status         FiscalPeriodStatus `json:"status"`
}
