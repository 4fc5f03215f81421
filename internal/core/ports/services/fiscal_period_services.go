package services

import (
	"context"

	"github.com/finledger/bank_recon_app/internal/core/domain"
	"github.com/finledger/bank_recon_app/internal/dto"
)

// FiscalPeriodSvc administers the fiscal calendar the posting engine checks
// against.
type FiscalPeriodSvc interface {
	// CreateFiscalPeriod opens a new fiscal period.
	CreateFiscalPeriod(ctx context.Context, tenantID string, req dto.CreateFiscalPeriodRequest) (*domain.FiscalPeriod, error)

	// GetFiscalPeriodByID retrieves a fiscal period.
	GetFiscalPeriodByID(ctx context.Context, tenantID, fiscalPeriodID string) (*domain.FiscalPeriod, error)

	// UpdateFiscalPeriodStatus transitions a period between open, closed and
	// locked.
	UpdateFiscalPeriodStatus(ctx context.Context, tenantID, fiscalPeriodID string, status domain.FiscalPeriodStatus) error
}
