package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/finledger/bank_recon_app/internal/apperrors"
	"github.com/finledger/bank_recon_app/internal/core/domain"
	portsrepo "github.com/finledger/bank_recon_app/internal/core/ports/repositories"
	portssvc "github.com/finledger/bank_recon_app/internal/core/ports/services"
	"github.com/finledger/bank_recon_app/internal/dto"
)

// exchangeRateService records rate observations.
type exchangeRateService struct {
	rateRepo portsrepo.ExchangeRateRepositoryFacade
}

// NewExchangeRateService creates a new ExchangeRateSvc.
func NewExchangeRateService(rateRepo portsrepo.ExchangeRateRepositoryFacade) portssvc.ExchangeRateSvc {
	return &exchangeRateService{rateRepo: rateRepo}
}

// Ensure exchangeRateService implements the portssvc.ExchangeRateSvc interface
var _ portssvc.ExchangeRateSvc = (*exchangeRateService)(nil)

// RecordRate stores one rate observation for a currency pair.
func (s *exchangeRateService) RecordRate(ctx context.Context, req dto.RecordExchangeRateRequest, userID string) (*domain.ExchangeRate, error) {
	if req.FromCurrencyCode == req.ToCurrencyCode {
		return nil, apperrors.NewAppError(400, "rate currencies must differ", apperrors.ErrValidation)
	}
	if !req.Rate.IsPositive() {
		return nil, apperrors.NewAppError(400, "rate must be positive", apperrors.ErrValidation)
	}

	now := time.Now().UTC()
	rate := domain.ExchangeRate{
		ExchangeRateID:   uuid.NewString(),
		FromCurrencyCode: req.FromCurrencyCode,
		ToCurrencyCode:   req.ToCurrencyCode,
		Rate:             req.Rate,
		DateEffective:    req.DateEffective,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}
	if err := s.rateRepo.SaveRate(ctx, rate); err != nil {
		return nil, err
	}
	return &rate, nil
}
