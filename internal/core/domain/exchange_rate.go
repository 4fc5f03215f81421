package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ExchangeRate is one observed conversion rate between two currencies,
// effective from DateEffective until a newer observation supersedes it.
type ExchangeRate struct {
	ExchangeRateID   string          `json:"exchangeRateID"`
	FromCurrencyCode string          `json:"fromCurrencyCode"`
	ToCurrencyCode   string          `json:"toCurrencyCode"`
	Rate             decimal.Decimal `json:"rate"`
	DateEffective    time.Time       `json:"dateEffective"`
	AuditFields
}
