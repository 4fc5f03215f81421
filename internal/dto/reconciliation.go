package dto

import (
	"time"

	"github.com/finledger/bank_recon_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateSessionRequest defines the data needed to open a reconciliation
// session for one bank account and period.
type CreateSessionRequest struct {
	BankAccountID   string            `json:"bankAccountID" binding:"required"`
	BankAccountName string            `json:"bankAccountName"`
	CurrencyCode    string            `json:"currencyCode" binding:"required"`
	PeriodStart     time.Time         `json:"periodStart" binding:"required"`
	PeriodEnd       time.Time         `json:"periodEnd" binding:"required"`
	OpeningBalance  decimal.Decimal   `json:"openingBalance"`
	ClosingBalance  decimal.Decimal   `json:"closingBalance"`
	Notes           string            `json:"notes"`
	Metadata        map[string]string `json:"metadata"`
}

// UpdateSessionRequest defines the mutable fields of a session.
// Pointers distinguish zero-value updates from fields not provided.
type UpdateSessionRequest struct {
	OpeningBalance *decimal.Decimal `json:"openingBalance"`
	ClosingBalance *decimal.Decimal `json:"closingBalance"`
	Notes          *string          `json:"notes"`
}

// SessionResponse defines the data returned for a reconciliation session.
type SessionResponse struct {
	SessionID       string                      `json:"sessionID"`
	CompanyID       string                      `json:"companyID"`
	BankAccountID   string                      `json:"bankAccountID"`
	BankAccountName string                      `json:"bankAccountName,omitempty"`
	CurrencyCode    string                      `json:"currencyCode"`
	PeriodStart     time.Time                   `json:"periodStart"`
	PeriodEnd       time.Time                   `json:"periodEnd"`
	OpeningBalance  decimal.Decimal             `json:"openingBalance"`
	ClosingBalance  decimal.Decimal             `json:"closingBalance"`
	Status          domain.ReconciliationStatus `json:"status"`
	AutoMatchRatio  float64                     `json:"autoMatchRatio"`
	CompletedAt     *time.Time                  `json:"completedAt,omitempty"`
	Notes           string                      `json:"notes,omitempty"`
	CreatedAt       time.Time                   `json:"createdAt"`
	CreatedBy       string                      `json:"createdBy"`
}

// MatchResponse defines the data returned for one match.
type MatchResponse struct {
	MatchID             string             `json:"matchID"`
	SessionID           string             `json:"sessionID"`
	BankTransactionID   string             `json:"bankTransactionID"`
	LedgerTransactionID string             `json:"ledgerTransactionID"`
	Amount              decimal.Decimal    `json:"amount"`
	MatchDate           time.Time          `json:"matchDate"`
	Status              domain.MatchStatus `json:"status"`
	Confidence          float64            `json:"confidence"`
	Notes               string             `json:"notes,omitempty"`
	Metadata            map[string]string  `json:"metadata,omitempty"`
}

// AutoMatchResponse is the outcome of one auto-match run over a session.
type AutoMatchResponse struct {
	SessionID                 string          `json:"sessionID"`
	Matches                   []MatchResponse `json:"matches"`
	UnmatchedBankTransactions int             `json:"unmatchedBankTransactions"`
	UnmatchedLedgerEntries    int             `json:"unmatchedLedgerEntries"`
	MatchRatio                float64         `json:"matchRatio"`
}

// ConfirmMatchesRequest lists suggested matches to confirm in one action.
type ConfirmMatchesRequest struct {
	MatchIDs []string `json:"matchIDs" binding:"required,min=1"`
}

// CreateManualMatchRequest pairs one bank transaction with one ledger entry
// by explicit user action.
type CreateManualMatchRequest struct {
	BankTransactionID   string          `json:"bankTransactionID" binding:"required"`
	LedgerTransactionID string          `json:"ledgerTransactionID" binding:"required"`
	Amount              decimal.Decimal `json:"amount"`
	Notes               string          `json:"notes"`
}

// CreateAdjustmentRequest records one correcting amount against a session.
type CreateAdjustmentRequest struct {
	Description       string                `json:"description" binding:"required"`
	Amount            decimal.Decimal       `json:"amount" binding:"required"`
	AdjustmentType    domain.AdjustmentType `json:"adjustmentType" binding:"required,oneof=fee interest timing other"`
	LedgerAccountID   string                `json:"ledgerAccountID" binding:"required"`
	LedgerAccountCode string                `json:"ledgerAccountCode"`
	Metadata          map[string]string     `json:"metadata"`
}

// BulkCreateAdjustmentsRequest records several adjustments in one call. The
// batch is pre-validated against the session's unexplained difference unless
// SkipBalanceValidation is set.
type BulkCreateAdjustmentsRequest struct {
	Adjustments           []CreateAdjustmentRequest `json:"adjustments" binding:"required,min=1,dive"`
	SkipBalanceValidation bool                      `json:"skipBalanceValidation"`
}

// ReverseAdjustmentRequest reverses a posted adjustment journal.
type ReverseAdjustmentRequest struct {
	Reason string `json:"reason" binding:"required"`
}

// AdjustmentResponse defines the data returned for one adjustment.
type AdjustmentResponse struct {
	AdjustmentID      string                `json:"adjustmentID"`
	SessionID         string                `json:"sessionID"`
	Description       string                `json:"description"`
	Amount            decimal.Decimal       `json:"amount"`
	AdjustmentType    domain.AdjustmentType `json:"adjustmentType"`
	LedgerAccountID   string                `json:"ledgerAccountID"`
	LedgerAccountCode string                `json:"ledgerAccountCode,omitempty"`
	PostedJournalID   *string               `json:"postedJournalID,omitempty"`
	ReversalJournalID *string               `json:"reversalJournalID,omitempty"`
	ReversalReason    string                `json:"reversalReason,omitempty"`
	ReversedAt        *time.Time            `json:"reversedAt,omitempty"`
	CreatedAt         time.Time             `json:"createdAt"`
	CreatedBy         string                `json:"createdBy"`
}

// BalanceValidationResponse reports whether a statement's movement explains
// its closing balance.
type BalanceValidationResponse struct {
	IsValid         bool            `json:"isValid"`
	ExpectedBalance decimal.Decimal `json:"expectedBalance"`
	ActualBalance   decimal.Decimal `json:"actualBalance"`
	Difference      decimal.Decimal `json:"difference"`
	Message         string          `json:"message"`
}

// AdjustmentBalanceResponse reports whether recorded adjustments close the
// remaining unexplained difference of a session.
type AdjustmentBalanceResponse struct {
	IsBalanced            bool            `json:"isBalanced"`
	UnexplainedDifference decimal.Decimal `json:"unexplainedDifference"`
	AdjustmentTotal       decimal.Decimal `json:"adjustmentTotal"`
	Message               string          `json:"message"`
}

// ListSessionsParams filters a session listing.
type ListSessionsParams struct {
	BankAccountID *string                      `form:"bankAccountID"`
	Status        *domain.ReconciliationStatus `form:"status"`
	Limit         int                          `form:"limit,default=50"`
	Offset        int                          `form:"offset,default=0"`
}

// ToSessionResponse converts a domain session to its DTO.
func ToSessionResponse(s *domain.ReconciliationSession) SessionResponse {
	return SessionResponse{
		SessionID:       s.SessionID,
		CompanyID:       s.CompanyID,
		BankAccountID:   s.BankAccountID,
		BankAccountName: s.BankAccountName,
		CurrencyCode:    s.CurrencyCode,
		PeriodStart:     s.PeriodStart,
		PeriodEnd:       s.PeriodEnd,
		OpeningBalance:  s.OpeningBalance,
		ClosingBalance:  s.ClosingBalance,
		Status:          s.Status,
		AutoMatchRatio:  s.AutoMatchRatio,
		CompletedAt:     s.CompletedAt,
		Notes:           s.Notes,
		CreatedAt:       s.CreatedAt,
		CreatedBy:       s.CreatedBy,
	}
}

// ToMatchResponse converts a domain match to its DTO.
func ToMatchResponse(m *domain.ReconciliationMatch) MatchResponse {
	return MatchResponse{
		MatchID:             m.MatchID,
		SessionID:           m.SessionID,
		BankTransactionID:   m.BankTransactionID,
		LedgerTransactionID: m.LedgerTransactionID,
		Amount:              m.Amount,
		MatchDate:           m.MatchDate,
		Status:              m.Status,
		Confidence:          m.Confidence,
		Notes:               m.Notes,
		Metadata:            m.Metadata,
	}
}

// ToMatchResponses converts a slice of domain matches.
func ToMatchResponses(matches []domain.ReconciliationMatch) []MatchResponse {
	responses := make([]MatchResponse, len(matches))
	for i := range matches {
		responses[i] = ToMatchResponse(&matches[i])
	}
	return responses
}

// ToAdjustmentResponse converts a domain adjustment to its DTO.
func ToAdjustmentResponse(a *domain.ReconciliationAdjustment) AdjustmentResponse {
	return AdjustmentResponse{
		AdjustmentID:      a.AdjustmentID,
		SessionID:         a.SessionID,
		Description:       a.Description,
		Amount:            a.Amount,
		AdjustmentType:    a.AdjustmentType,
		LedgerAccountID:   a.LedgerAccountID,
		LedgerAccountCode: a.LedgerAccountCode,
		PostedJournalID:   a.PostedJournalID,
		ReversalJournalID: a.ReversalJournalID,
		ReversalReason:    a.ReversalReason,
		ReversedAt:        a.ReversedAt,
		CreatedAt:         a.CreatedAt,
		CreatedBy:         a.CreatedBy,
	}
}
