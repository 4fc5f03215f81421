package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// RunRevaluationRequest triggers a revaluation of foreign-currency account
// balances as of a date.
type RunRevaluationRequest struct {
	AsOfDate         time.Time `json:"asOfDate" binding:"required"`
	BaseCurrencyCode string    `json:"baseCurrencyCode" binding:"required"`
	// AccountIDs limits the run to specific accounts; empty means all
	// foreign-currency accounts.
	AccountIDs    []string `json:"accountIDs"`
	GainAccountID string   `json:"gainAccountID" binding:"required"`
	LossAccountID string   `json:"lossAccountID" binding:"required"`
}

// RevaluationLineResponse is the computed delta for one account.
type RevaluationLineResponse struct {
	AccountID       string          `json:"accountID"`
	CurrencyCode    string          `json:"currencyCode"`
	ForeignBalance  decimal.Decimal `json:"foreignBalance"`
	BookValue       decimal.Decimal `json:"bookValue"`
	RevaluedValue   decimal.Decimal `json:"revaluedValue"`
	UnrealizedDelta decimal.Decimal `json:"unrealizedDelta"`
	Rate            decimal.Decimal `json:"rate"`
}

// RevaluationResponse is the outcome of one revaluation run.
type RevaluationResponse struct {
	AsOfDate       time.Time                 `json:"asOfDate"`
	Lines          []RevaluationLineResponse `json:"lines"`
	TotalDelta     decimal.Decimal           `json:"totalDelta"`
	JournalEntryID *string                   `json:"journalEntryID,omitempty"`
}
