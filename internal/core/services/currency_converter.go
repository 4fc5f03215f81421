package services

import (
	"context"
	"errors"
	"time"

	"github.com/finledger/bank_recon_app/internal/apperrors"
	portsrepo "github.com/finledger/bank_recon_app/internal/core/ports/repositories"
	portssvc "github.com/finledger/bank_recon_app/internal/core/ports/services"
	"github.com/shopspring/decimal"
)

// repoCurrencyConverter resolves conversion rates from stored exchange rate
// observations. When no direct rate exists the inverse pair is consulted.
type repoCurrencyConverter struct {
	rateRepo portsrepo.ExchangeRateRepositoryFacade
}

// NewCurrencyConverter creates a converter backed by the exchange rate
// repository.
func NewCurrencyConverter(rateRepo portsrepo.ExchangeRateRepositoryFacade) portssvc.CurrencyConverter {
	return &repoCurrencyConverter{rateRepo: rateRepo}
}

var _ portssvc.CurrencyConverter = (*repoCurrencyConverter)(nil)

func (c *repoCurrencyConverter) RateAsOf(ctx context.Context, fromCurrency, toCurrency string, asOf time.Time) (decimal.Decimal, error) {
	if fromCurrency == toCurrency {
		return decimal.NewFromInt(1), nil
	}

	rate, err := c.rateRepo.FindRateAsOf(ctx, fromCurrency, toCurrency, asOf)
	if err == nil {
		return rate.Rate, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return decimal.Zero, err
	}

	inverse, err := c.rateRepo.FindRateAsOf(ctx, toCurrency, fromCurrency, asOf)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return decimal.Zero, apperrors.NewNotFoundError("no exchange rate for " + fromCurrency + "/" + toCurrency)
		}
		return decimal.Zero, err
	}
	if inverse.Rate.IsZero() {
		return decimal.Zero, apperrors.NewAppError(500, "zero exchange rate stored for "+toCurrency+"/"+fromCurrency, nil)
	}

	return decimal.NewFromInt(1).Div(inverse.Rate), nil
}
