package services

import (
	"context"

	"github.com/finledger/bank_recon_app/internal/core/domain"
	"github.com/finledger/bank_recon_app/internal/dto"
)

// SessionSvc defines lifecycle operations for reconciliation sessions.
type SessionSvc interface {
	// CreateSession opens a new draft session for a bank account and period.
	CreateSession(ctx context.Context, companyID string, req dto.CreateSessionRequest, creatorUserID string) (*domain.ReconciliationSession, error)

	// GetSessionByID retrieves a session.
	GetSessionByID(ctx context.Context, companyID, sessionID string) (*domain.ReconciliationSession, error)

	// ListSessions retrieves sessions matching the filter.
	ListSessions(ctx context.Context, companyID string, params dto.ListSessionsParams) ([]domain.ReconciliationSession, error)

	// UpdateSession changes balances or notes of a non-completed session.
	UpdateSession(ctx context.Context, companyID, sessionID string, req dto.UpdateSessionRequest, userID string) (*domain.ReconciliationSession, error)

	// CompleteSession transitions a session to its terminal state.
	CompleteSession(ctx context.Context, companyID, sessionID, userID string) (*domain.ReconciliationSession, error)
}

// MatchingSvc defines matching operations within a session.
type MatchingSvc interface {
	// PerformAutoMatch runs the matcher over the session's unmatched bank
	// transactions and ledger entries, persists the suggestions, and updates
	// the session's match ratio. Already-matched items on either side are
	// excluded before matching.
	PerformAutoMatch(ctx context.Context, companyID, sessionID, userID string) (*dto.AutoMatchResponse, error)

	// ConfirmMatches transitions suggested matches to confirmed.
	ConfirmMatches(ctx context.Context, companyID, sessionID string, matchIDs []string, userID string) ([]domain.ReconciliationMatch, error)

	// CreateManualMatch pairs a bank transaction with a ledger entry by
	// explicit user action.
	CreateManualMatch(ctx context.Context, companyID, sessionID string, req dto.CreateManualMatchRequest, userID string) (*domain.ReconciliationMatch, error)

	// DeleteMatch removes a match, releasing both sides.
	DeleteMatch(ctx context.Context, companyID, sessionID, matchID string) error

	// ListMatches retrieves the matches of a session.
	ListMatches(ctx context.Context, companyID, sessionID string, status *domain.MatchStatus) ([]domain.ReconciliationMatch, error)
}

// AdjustmentSvc defines adjustment operations within a session.
type AdjustmentSvc interface {
	// RecordAdjustment persists one adjustment against a session.
	RecordAdjustment(ctx context.Context, companyID, sessionID string, req dto.CreateAdjustmentRequest, userID string) (*domain.ReconciliationAdjustment, error)

	// BulkRecordAdjustments persists several adjustments in one call.
	BulkRecordAdjustments(ctx context.Context, companyID, sessionID string, req dto.BulkCreateAdjustmentsRequest, userID string) ([]domain.ReconciliationAdjustment, error)

	// ListAdjustments retrieves the adjustments of a session.
	ListAdjustments(ctx context.Context, companyID, sessionID string) ([]domain.ReconciliationAdjustment, error)

	// PostAdjustmentJournal creates and posts the two-line journal entry for
	// an adjustment and links it back.
	PostAdjustmentJournal(ctx context.Context, companyID, sessionID, adjustmentID, userID string) (*domain.JournalEntry, error)

	// ReverseAdjustmentJournal posts a reversal of an adjustment's journal
	// and records the reason.
	ReverseAdjustmentJournal(ctx context.Context, companyID, sessionID, adjustmentID, reason, userID string) (*domain.JournalEntry, error)
}

// BalanceSvc defines balance validation operations within a session.
type BalanceSvc interface {
	// ValidateSessionBalance checks the session's statement movement against
	// its opening and closing balances.
	ValidateSessionBalance(ctx context.Context, companyID, sessionID string) (*dto.BalanceValidationResponse, error)

	// ValidateAdjustmentBalance checks whether recorded adjustments, plus any
	// proposed but not yet saved ones, close the session's remaining
	// unexplained difference. Pass a nil proposed slice to validate the
	// recorded adjustments alone.
	ValidateAdjustmentBalance(ctx context.Context, companyID, sessionID string, proposed []dto.CreateAdjustmentRequest) (*dto.AdjustmentBalanceResponse, error)
}

// ReconciliationSvcFacade combines all reconciliation service interfaces
// This is a facade for clients that need access to all operations
type ReconciliationSvcFacade interface {
	SessionSvc
	MatchingSvc
	AdjustmentSvc
	BalanceSvc
}
