package services

import (
	"context"

	"github.com/finledger/bank_recon_app/internal/core/domain"
	"github.com/finledger/bank_recon_app/internal/dto"
)

// ExchangeRateSvc records the rate observations revaluation converts with.
type ExchangeRateSvc interface {
	// RecordRate stores one rate observation for a currency pair.
	RecordRate(ctx context.Context, req dto.RecordExchangeRateRequest, userID string) (*domain.ExchangeRate, error)
}
