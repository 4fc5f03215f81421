package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ReconciliationStatus is the lifecycle of a reconciliation session.
// draft -> in_progress (first auto-match) -> completed (terminal).
type ReconciliationStatus string

const (
	ReconciliationDraft      ReconciliationStatus = "draft"
	ReconciliationInProgress ReconciliationStatus = "in_progress"
	ReconciliationCompleted  ReconciliationStatus = "completed"
)

// MatchStatus is the lifecycle of a proposed pairing.
type MatchStatus string

const (
	MatchSuggested MatchStatus = "suggested"
	MatchConfirmed MatchStatus = "confirmed"
	MatchRejected  MatchStatus = "rejected"
)

// AdjustmentType classifies a reconciliation adjustment.
type AdjustmentType string

const (
	AdjustmentFee      AdjustmentType = "fee"
	AdjustmentInterest AdjustmentType = "interest"
	AdjustmentTiming   AdjustmentType = "timing"
	AdjustmentOther    AdjustmentType = "other"
)

// ReconciliationSession is the unit of work for reconciling one bank account
// over one period.
type ReconciliationSession struct {
	SessionID       string               `json:"sessionID"`
	CompanyID       string               `json:"companyID"`
	BankAccountID   string               `json:"bankAccountID"`
	BankAccountName string               `json:"bankAccountName,omitempty"`
	CurrencyCode    string               `json:"currencyCode"`
	PeriodStart     time.Time            `json:"periodStart"`
	PeriodEnd       time.Time            `json:"periodEnd"`
	OpeningBalance  decimal.Decimal      `json:"openingBalance"`
	ClosingBalance  decimal.Decimal      `json:"closingBalance"`
	Status          ReconciliationStatus `json:"status"`
	AutoMatchRatio  float64              `json:"autoMatchRatio"`
	CompletedAt     *time.Time           `json:"completedAt,omitempty"`
	Notes           string               `json:"notes,omitempty"`
	Metadata        map[string]string    `json:"metadata,omitempty"` // may carry a pinned statementID
	AuditFields
}

// ReconciliationMatch is a proposed or confirmed pairing of one bank
// transaction with one ledger entry. Created in bulk by the auto-matcher with
// status suggested; transitioned to confirmed/rejected by explicit action and
// never mutated otherwise.
type ReconciliationMatch struct {
	MatchID             string            `json:"matchID"`
	SessionID           string            `json:"sessionID"`
	BankTransactionID   string            `json:"bankTransactionID"`
	LedgerTransactionID string            `json:"ledgerTransactionID"`
	Amount              decimal.Decimal   `json:"amount"`
	MatchDate           time.Time         `json:"matchDate"`
	Status              MatchStatus       `json:"status"`
	Confidence          float64           `json:"confidence"` // 0-1
	Notes               string            `json:"notes,omitempty"`
	Metadata            map[string]string `json:"metadata,omitempty"` // ruleApplied, amount/date deltas for audit
	AuditFields
}

// ReconciliationAdjustment is a correcting amount needed to make a session
// balance. Positive Amount means an inflow to the bank account.
type ReconciliationAdjustment struct {
	AdjustmentID      string            `json:"adjustmentID"`
	SessionID         string            `json:"sessionID"`
	Description       string            `json:"description"`
	Amount            decimal.Decimal   `json:"amount"`
	AdjustmentType    AdjustmentType    `json:"adjustmentType"`
	LedgerAccountID   string            `json:"ledgerAccountID"`
	LedgerAccountCode string            `json:"ledgerAccountCode,omitempty"`
	PostedJournalID   *string           `json:"postedJournalID,omitempty"`
	ReversalJournalID *string           `json:"reversalJournalID,omitempty"`
	ReversalReason    string            `json:"reversalReason,omitempty"`
	ReversedAt        *time.Time        `json:"reversedAt,omitempty"`
	Metadata          map[string]string `json:"metadata,omitempty"`
	AuditFields
}
