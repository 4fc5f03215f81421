package services

import (
	"context"

	"github.com/google/uuid"

	"github.com/finledger/bank_recon_app/internal/apperrors"
	"github.com/finledger/bank_recon_app/internal/core/domain"
	portsrepo "github.com/finledger/bank_recon_app/internal/core/ports/repositories"
	portssvc "github.com/finledger/bank_recon_app/internal/core/ports/services"
	"github.com/finledger/bank_recon_app/internal/dto"
)

// fiscalPeriodService administers the fiscal calendar.
type fiscalPeriodService struct {
	periodRepo portsrepo.FiscalPeriodRepositoryFacade
}

// NewFiscalPeriodService creates a new FiscalPeriodSvc.
func NewFiscalPeriodService(periodRepo portsrepo.FiscalPeriodRepositoryFacade) portssvc.FiscalPeriodSvc {
	return &fiscalPeriodService{periodRepo: periodRepo}
}

// Ensure fiscalPeriodService implements the portssvc.FiscalPeriodSvc interface
var _ portssvc.FiscalPeriodSvc = (*fiscalPeriodService)(nil)

// CreateFiscalPeriod opens a new fiscal period.
func (s *fiscalPeriodService) CreateFiscalPeriod(ctx context.Context, tenantID string, req dto.CreateFiscalPeriodRequest) (*domain.FiscalPeriod, error) {
	if !req.EndDate.After(req.StartDate) {
		return nil, apperrors.NewAppError(400, "fiscal period end date must be after start date", apperrors.ErrValidation)
	}

	status := req.Status
	if status == "" {
		status = domain.PeriodOpen
	}

	period := domain.FiscalPeriod{
		FiscalPeriodID: uuid.NewString(),
		TenantID:       tenantID,
		Name:           req.Name,
		StartDate:      req.StartDate,
		EndDate:        req.EndDate,
		Status:         status,
	}
	if err := s.periodRepo.SaveFiscalPeriod(ctx, period); err != nil {
		return nil, err
	}
	return &period, nil
}

// GetFiscalPeriodByID retrieves a fiscal period.
func (s *fiscalPeriodService) GetFiscalPeriodByID(ctx context.Context, tenantID, fiscalPeriodID string) (*domain.FiscalPeriod, error) {
	return s.periodRepo.FindFiscalPeriodByID(ctx, tenantID, fiscalPeriodID)
}

// UpdateFiscalPeriodStatus transitions a period between open, closed and locked.
func (s *fiscalPeriodService) UpdateFiscalPeriodStatus(ctx context.Context, tenantID, fiscalPeriodID string, status domain.FiscalPeriodStatus) error {
	return s.periodRepo.UpdateFiscalPeriodStatus(ctx, tenantID, fiscalPeriodID, status)
}
