package repositories

import (
	"context"

	"github.com/finledger/bank_recon_app/internal/core/domain"
	"github.com/finledger/bank_recon_app/internal/dto"
)

// SessionReader defines read operations for reconciliation sessions.
type SessionReader interface {
	// FindSessionByID retrieves a session by its unique identifier.
	FindSessionByID(ctx context.Context, companyID, sessionID string) (*domain.ReconciliationSession, error)

	// ListSessions retrieves sessions for a company, newest first.
	ListSessions(ctx context.Context, companyID string, params dto.ListSessionsParams) ([]domain.ReconciliationSession, error)
}

// SessionWriter defines write operations for reconciliation sessions.
type SessionWriter interface {
	// SaveSession persists a new session.
	SaveSession(ctx context.Context, session domain.ReconciliationSession) error

	// UpdateSession persists changed session fields (balances, status, ratio,
	// notes, completion timestamp).
	UpdateSession(ctx context.Context, session domain.ReconciliationSession) error
}

// MatchReader defines read operations for reconciliation matches.
type MatchReader interface {
	// FindMatchByID retrieves one match.
	FindMatchByID(ctx context.Context, sessionID, matchID string) (*domain.ReconciliationMatch, error)

	// ListMatchesBySession retrieves all matches of a session, optionally
	// filtered by status.
	ListMatchesBySession(ctx context.Context, sessionID string, status *domain.MatchStatus) ([]domain.ReconciliationMatch, error)
}

// MatchWriter defines write operations for reconciliation matches.
type MatchWriter interface {
	// SaveMatches persists a batch of matches produced by one matching run.
	SaveMatches(ctx context.Context, matches []domain.ReconciliationMatch) error

	// UpdateMatchStatus transitions a match to confirmed or rejected.
	UpdateMatchStatus(ctx context.Context, sessionID, matchID string, status domain.MatchStatus, updatedBy string) error

	// DeleteMatch removes a match, releasing both sides for re-matching.
	DeleteMatch(ctx context.Context, sessionID, matchID string) error

	// DeleteSuggestedMatches removes all not-yet-confirmed matches of a
	// session before a fresh auto-match run.
	DeleteSuggestedMatches(ctx context.Context, sessionID string) error
}

// AdjustmentReader defines read operations for reconciliation adjustments.
type AdjustmentReader interface {
	// FindAdjustmentByID retrieves one adjustment.
	FindAdjustmentByID(ctx context.Context, sessionID, adjustmentID string) (*domain.ReconciliationAdjustment, error)

	// ListAdjustmentsBySession retrieves all adjustments of a session in
	// creation order.
	ListAdjustmentsBySession(ctx context.Context, sessionID string) ([]domain.ReconciliationAdjustment, error)
}

// AdjustmentWriter defines write operations for reconciliation adjustments.
type AdjustmentWriter interface {
	// SaveAdjustment persists a new adjustment.
	SaveAdjustment(ctx context.Context, adjustment domain.ReconciliationAdjustment) error

	// SaveAdjustments persists a batch of adjustments.
	SaveAdjustments(ctx context.Context, adjustments []domain.ReconciliationAdjustment) error

	// UpdateAdjustment persists journal links and reversal fields.
	UpdateAdjustment(ctx context.Context, adjustment domain.ReconciliationAdjustment) error
}

// ReconciliationRepositoryFacade combines all reconciliation repository interfaces
// This is a facade for clients that need access to all operations
type ReconciliationRepositoryFacade interface {
	SessionReader
	SessionWriter
	MatchReader
	MatchWriter
	AdjustmentReader
	AdjustmentWriter
}

// ReconciliationRepositoryWithTx extends ReconciliationRepositoryFacade with transaction capabilities
type ReconciliationRepositoryWithTx interface {
	ReconciliationRepositoryFacade
	TransactionManager
}
