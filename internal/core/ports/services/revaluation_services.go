package services

import (
	"context"
	"time"

	"github.com/finledger/bank_recon_app/internal/dto"
	"github.com/shopspring/decimal"
)

// CurrencyConverter supplies conversion rates to the revaluation run. The
// production implementation reads stored rate observations; tests substitute
// a fixed table.
type CurrencyConverter interface {
	// RateAsOf returns the conversion rate from one currency to another at a
	// date, or an error when no rate is known.
	RateAsOf(ctx context.Context, fromCurrency, toCurrency string, asOf time.Time) (decimal.Decimal, error)
}

// RevaluationSvc recomputes foreign-currency balances at current rates and
// books the unrealized gain or loss.
type RevaluationSvc interface {
	// RunRevaluation computes per-account deltas as of a date and, when the
	// total is nonzero, creates and posts a revaluation journal entry.
	RunRevaluation(ctx context.Context, tenantID string, req dto.RunRevaluationRequest, userID string) (*dto.RevaluationResponse, error)
}
