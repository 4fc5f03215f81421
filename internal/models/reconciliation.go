package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// ReconciliationSession is the reconciliation_sessions row.
type ReconciliationSession struct {
	SessionID       string            `db:"session_id"`
	CompanyID       string            `db:"company_id"`
	BankAccountID   string            `db:"bank_account_id"`
	BankAccountName string            `db:"bank_account_name"`
	CurrencyCode    string            `db:"currency_code"`
	PeriodStart     time.Time         `db:"period_start"`
	PeriodEnd       time.Time         `db:"period_end"`
	OpeningBalance  decimal.Decimal   `db:"opening_balance"`
	ClosingBalance  decimal.Decimal   `db:"closing_balance"`
	Status          string            `db:"status"`
	AutoMatchRatio  float64           `db:"auto_match_ratio"`
	CompletedAt     *time.Time        `db:"completed_at"` // Nullable
	Notes           string            `db:"notes"`
	Metadata        map[string]string `db:"metadata"` // jsonb
	AuditFields
}

// ReconciliationMatch is the reconciliation_matches row.
type ReconciliationMatch struct {
	MatchID             string            `db:"match_id"`
	SessionID           string            `db:"session_id"`
	BankTransactionID   string            `db:"bank_transaction_id"`
	LedgerTransactionID string            `db:"ledger_transaction_id"`
	Amount              decimal.Decimal   `db:"amount"`
	MatchDate           time.Time         `db:"match_date"`
	Status              string            `db:"status"`
	Confidence          float64           `db:"confidence"`
	Notes               string            `db:"notes"`
	Metadata            map[string]string `db:"metadata"` // jsonb
	AuditFields
}

// ReconciliationAdjustment is the reconciliation_adjustments row.
type ReconciliationAdjustment struct {
	AdjustmentID      string            `db:"adjustment_id"`
	SessionID         string            `db:"session_id"`
	Description       string            `db:"description"`
	Amount            decimal.Decimal   `db:"amount"`
	AdjustmentType    string            `db:"adjustment_type"`
	LedgerAccountID   string            `db:"ledger_account_id"`
	LedgerAccountCode string            `db:"ledger_account_code"`
	PostedJournalID   *string           `db:"posted_journal_id"`   // Nullable
	ReversalJournalID *string           `db:"reversal_journal_id"` // Nullable
	ReversalReason    string            `db:"reversal_reason"`
	ReversedAt        *time.Time        `db:"reversed_at"` // Nullable
	Metadata          map[string]string `db:"metadata"`    // jsonb
	AuditFields
}
