package dto

import (
	"time"

	"github.com/finledger/bank_recon_app/internal/core/domain"
)

// CreateFiscalPeriodRequest opens a new fiscal period. Status defaults to
// open when omitted.
type CreateFiscalPeriodRequest struct {
	Name      string                    `json:"name" binding:"required"`
	StartDate time.Time                 `json:"startDate" binding:"required"`
	EndDate   time.Time                 `json:"endDate" binding:"required"`
	Status    domain.FiscalPeriodStatus `json:"status" binding:"omitempty,oneof=open closed locked"`
}

// UpdateFiscalPeriodStatusRequest transitions a period between open, closed
// and locked.
type UpdateFiscalPeriodStatusRequest struct {
	Status domain.FiscalPeriodStatus `json:"status" binding:"required,oneof=open closed locked"`
}

// FiscalPeriodResponse defines the data returned for a fiscal period.
type FiscalPeriodResponse struct {
	FiscalPeriodID string                    `json:"fiscalPeriodID"`
	Name           string                    `json:"name"`
	StartDate      time.Time                 `json:"startDate"`
	EndDate        time.Time                 `json:"endDate"`
	Status         domain.FiscalPeriodStatus `json:"status"`
}

// ToFiscalPeriodResponse converts a domain fiscal period to its DTO.
func ToFiscalPeriodResponse(p *domain.FiscalPeriod) FiscalPeriodResponse {
	return FiscalPeriodResponse{
		FiscalPeriodID: p.FiscalPeriodID,
		Name:           p.Name,
		StartDate:      p.StartDate,
		EndDate:        p.EndDate,
		Status:         p.Status,
	}
}
