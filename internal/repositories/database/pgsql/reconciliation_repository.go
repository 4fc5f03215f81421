package pgsql

import (
	"context"
	"database/sql"
	"errors"
	"strconv"
	"time"

	"github.com/finledger/bank_recon_app/internal/apperrors"
	"github.com/finledger/bank_recon_app/internal/core/domain"
	portsrepo "github.com/finledger/bank_recon_app/internal/core/ports/repositories"
	"github.com/finledger/bank_recon_app/internal/dto"
	"github.com/finledger/bank_recon_app/internal/models"
	"github.com/finledger/bank_recon_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxReconciliationRepository struct {
	BaseRepository
}

// newPgxReconciliationRepository creates a new repository for reconciliation
// sessions, matches and adjustments.
func newPgxReconciliationRepository(pool *pgxpool.Pool) portsrepo.ReconciliationRepositoryWithTx {
	return &PgxReconciliationRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxReconciliationRepository implements portsrepo.ReconciliationRepositoryWithTx
var _ portsrepo.ReconciliationRepositoryWithTx = (*PgxReconciliationRepository)(nil)

const sessionColumns = `session_id, company_id, bank_account_id, bank_account_name, currency_code,
	       period_start, period_end, opening_balance, closing_balance, status,
	       auto_match_ratio, completed_at, notes, metadata,
	       created_at, created_by, last_updated_at, last_updated_by`

// SaveSession persists a new reconciliation session.
func (r *PgxReconciliationRepository) SaveSession(ctx context.Context, session domain.ReconciliationSession) error {
	modelSession := mapping.ToModelReconciliationSession(session)
	query := `
		INSERT INTO reconciliation_sessions (` + sessionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18);
	`
	_, err := r.Pool.Exec(ctx, query,
		modelSession.SessionID,
		modelSession.CompanyID,
		modelSession.BankAccountID,
		modelSession.BankAccountName,
		modelSession.CurrencyCode,
		modelSession.PeriodStart,
		modelSession.PeriodEnd,
		modelSession.OpeningBalance,
		modelSession.ClosingBalance,
		modelSession.Status,
		modelSession.AutoMatchRatio,
		modelSession.CompletedAt,
		modelSession.Notes,
		modelSession.Metadata,
		modelSession.CreatedAt,
		modelSession.CreatedBy,
		modelSession.LastUpdatedAt,
		modelSession.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert reconciliation session "+modelSession.SessionID, err)
	}
	return nil
}

// FindSessionByID retrieves a session by its unique identifier.
func (r *PgxReconciliationRepository) FindSessionByID(ctx context.Context, companyID, sessionID string) (*domain.ReconciliationSession, error) {
	query := `
		SELECT ` + sessionColumns + `
		FROM reconciliation_sessions
		WHERE company_id = $1 AND session_id = $2;
	`
	modelSession, err := scanSession(r.Pool.QueryRow(ctx, query, companyID, sessionID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find reconciliation session by ID "+sessionID, err)
	}

	session := mapping.ToDomainReconciliationSession(*modelSession)
	return &session, nil
}

// ListSessions retrieves sessions for a company, newest first.
func (r *PgxReconciliationRepository) ListSessions(ctx context.Context, companyID string, params dto.ListSessionsParams) ([]domain.ReconciliationSession, error) {
	query := `
		SELECT ` + sessionColumns + `
		FROM reconciliation_sessions
		WHERE company_id = $1`
	args := []any{companyID}

	if params.BankAccountID != nil {
		args = append(args, *params.BankAccountID)
		query += " AND bank_account_id = $" + strconv.Itoa(len(args))
	}
	if params.Status != nil {
		args = append(args, string(*params.Status))
		query += " AND status = $" + strconv.Itoa(len(args))
	}

	limit := params.Limit
	if limit <= 0 {
		limit = 50
	}
	args = append(args, limit)
	query += " ORDER BY period_start DESC, created_at DESC LIMIT $" + strconv.Itoa(len(args))
	args = append(args, params.Offset)
	query += " OFFSET $" + strconv.Itoa(len(args))

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to list reconciliation sessions", err)
	}
	defer rows.Close()

	modelSessions := make([]models.ReconciliationSession, 0)
	for rows.Next() {
		modelSession, err := scanSession(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan reconciliation session row", err)
		}
		modelSessions = append(modelSessions, *modelSession)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating reconciliation session rows", err)
	}

	return mapping.ToDomainReconciliationSessionSlice(modelSessions), nil
}

// UpdateSession persists changed session fields.
func (r *PgxReconciliationRepository) UpdateSession(ctx context.Context, session domain.ReconciliationSession) error {
	modelSession := mapping.ToModelReconciliationSession(session)
	query := `
		UPDATE reconciliation_sessions
		SET bank_account_name = $1, opening_balance = $2, closing_balance = $3,
		    status = $4, auto_match_ratio = $5, completed_at = $6, notes = $7,
		    metadata = $8, last_updated_at = $9, last_updated_by = $10
		WHERE company_id = $11 AND session_id = $12;
	`
	tag, err := r.Pool.Exec(ctx, query,
		modelSession.BankAccountName,
		modelSession.OpeningBalance,
		modelSession.ClosingBalance,
		modelSession.Status,
		modelSession.AutoMatchRatio,
		modelSession.CompletedAt,
		modelSession.Notes,
		modelSession.Metadata,
		modelSession.LastUpdatedAt,
		modelSession.LastUpdatedBy,
		modelSession.CompanyID,
		modelSession.SessionID,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update reconciliation session "+modelSession.SessionID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func scanSession(row pgx.Row) (*models.ReconciliationSession, error) {
	var modelSession models.ReconciliationSession
	var completedAt sql.NullTime
	err := row.Scan(
		&modelSession.SessionID,
		&modelSession.CompanyID,
		&modelSession.BankAccountID,
		&modelSession.BankAccountName,
		&modelSession.CurrencyCode,
		&modelSession.PeriodStart,
		&modelSession.PeriodEnd,
		&modelSession.OpeningBalance,
		&modelSession.ClosingBalance,
		&modelSession.Status,
		&modelSession.AutoMatchRatio,
		&completedAt,
		&modelSession.Notes,
		&modelSession.Metadata,
		&modelSession.CreatedAt,
		&modelSession.CreatedBy,
		&modelSession.LastUpdatedAt,
		&modelSession.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	if completedAt.Valid {
		modelSession.CompletedAt = &completedAt.Time
	}
	return &modelSession, nil
}

const matchColumns = `match_id, session_id, bank_transaction_id, ledger_transaction_id, amount,
	       match_date, status, confidence, notes, metadata,
	       created_at, created_by, last_updated_at, last_updated_by`

// SaveMatches persists a batch of matches produced by one matching run.
func (r *PgxReconciliationRepository) SaveMatches(ctx context.Context, matches []domain.ReconciliationMatch) error {
	if len(matches) == 0 {
		return nil
	}

	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	batch := &pgx.Batch{}
	query := `
		INSERT INTO reconciliation_matches (` + matchColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14);
	`
	for _, match := range matches {
		modelMatch := mapping.ToModelReconciliationMatch(match)
		batch.Queue(query,
			modelMatch.MatchID,
			modelMatch.SessionID,
			modelMatch.BankTransactionID,
			modelMatch.LedgerTransactionID,
			modelMatch.Amount,
			modelMatch.MatchDate,
			modelMatch.Status,
			modelMatch.Confidence,
			modelMatch.Notes,
			modelMatch.Metadata,
			modelMatch.CreatedAt,
			modelMatch.CreatedBy,
			modelMatch.LastUpdatedAt,
			modelMatch.LastUpdatedBy,
		)
	}

	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return apperrors.NewAppError(500, "failed to insert reconciliation matches", err)
	}

	return r.Commit(ctx, tx)
}

// FindMatchByID retrieves one match.
func (r *PgxReconciliationRepository) FindMatchByID(ctx context.Context, sessionID, matchID string) (*domain.ReconciliationMatch, error) {
	query := `
		SELECT ` + matchColumns + `
		FROM reconciliation_matches
		WHERE session_id = $1 AND match_id = $2;
	`
	var modelMatch models.ReconciliationMatch
	err := r.Pool.QueryRow(ctx, query, sessionID, matchID).Scan(
		&modelMatch.MatchID,
		&modelMatch.SessionID,
		&modelMatch.BankTransactionID,
		&modelMatch.LedgerTransactionID,
		&modelMatch.Amount,
		&modelMatch.MatchDate,
		&modelMatch.Status,
		&modelMatch.Confidence,
		&modelMatch.Notes,
		&modelMatch.Metadata,
		&modelMatch.CreatedAt,
		&modelMatch.CreatedBy,
		&modelMatch.LastUpdatedAt,
		&modelMatch.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find reconciliation match by ID "+matchID, err)
	}

	match := mapping.ToDomainReconciliationMatch(modelMatch)
	return &match, nil
}

// ListMatchesBySession retrieves all matches of a session, optionally filtered
// by status.
func (r *PgxReconciliationRepository) ListMatchesBySession(ctx context.Context, sessionID string, status *domain.MatchStatus) ([]domain.ReconciliationMatch, error) {
	query := `
		SELECT ` + matchColumns + `
		FROM reconciliation_matches
		WHERE session_id = $1`
	args := []any{sessionID}

	if status != nil {
		args = append(args, string(*status))
		query += " AND status = $" + strconv.Itoa(len(args))
	}
	query += " ORDER BY created_at, match_id;"

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to list reconciliation matches", err)
	}
	defer rows.Close()

	modelMatches := make([]models.ReconciliationMatch, 0)
	for rows.Next() {
		var modelMatch models.ReconciliationMatch
		if err := rows.Scan(
			&modelMatch.MatchID,
			&modelMatch.SessionID,
			&modelMatch.BankTransactionID,
			&modelMatch.LedgerTransactionID,
			&modelMatch.Amount,
			&modelMatch.MatchDate,
			&modelMatch.Status,
			&modelMatch.Confidence,
			&modelMatch.Notes,
			&modelMatch.Metadata,
			&modelMatch.CreatedAt,
			&modelMatch.CreatedBy,
			&modelMatch.LastUpdatedAt,
			&modelMatch.LastUpdatedBy,
		); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan reconciliation match row", err)
		}
		modelMatches = append(modelMatches, modelMatch)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating reconciliation match rows", err)
	}

	return mapping.ToDomainReconciliationMatchSlice(modelMatches), nil
}

// UpdateMatchStatus transitions a match to confirmed or rejected.
func (r *PgxReconciliationRepository) UpdateMatchStatus(ctx context.Context, sessionID, matchID string, status domain.MatchStatus, updatedBy string) error {
	query := `
		UPDATE reconciliation_matches
		SET status = $1, last_updated_at = $2, last_updated_by = $3
		WHERE session_id = $4 AND match_id = $5;
	`
	tag, err := r.Pool.Exec(ctx, query, string(status), time.Now().UTC(), updatedBy, sessionID, matchID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update status of reconciliation match "+matchID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeleteMatch removes a match, releasing both sides for re-matching.
func (r *PgxReconciliationRepository) DeleteMatch(ctx context.Context, sessionID, matchID string) error {
	query := `DELETE FROM reconciliation_matches WHERE session_id = $1 AND match_id = $2;`
	tag, err := r.Pool.Exec(ctx, query, sessionID, matchID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to delete reconciliation match "+matchID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeleteSuggestedMatches removes all not-yet-confirmed matches of a session.
func (r *PgxReconciliationRepository) DeleteSuggestedMatches(ctx context.Context, sessionID string) error {
	query := `DELETE FROM reconciliation_matches WHERE session_id = $1 AND status = $2;`
	_, err := r.Pool.Exec(ctx, query, sessionID, string(domain.MatchSuggested))
	if err != nil {
		return apperrors.NewAppError(500, "failed to delete suggested matches for session "+sessionID, err)
	}
	return nil
}

const adjustmentColumns = `adjustment_id, session_id, description, amount, adjustment_type,
	       ledger_account_id, ledger_account_code, posted_journal_id,
	       reversal_journal_id, reversal_reason, reversed_at, metadata,
	       created_at, created_by, last_updated_at, last_updated_by`

// SaveAdjustment persists a new adjustment.
func (r *PgxReconciliationRepository) SaveAdjustment(ctx context.Context, adjustment domain.ReconciliationAdjustment) error {
	return r.SaveAdjustments(ctx, []domain.ReconciliationAdjustment{adjustment})
}

// SaveAdjustments persists a batch of adjustments.
func (r *PgxReconciliationRepository) SaveAdjustments(ctx context.Context, adjustments []domain.ReconciliationAdjustment) error {
	if len(adjustments) == 0 {
		return nil
	}

	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	batch := &pgx.Batch{}
	query := `
		INSERT INTO reconciliation_adjustments (` + adjustmentColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16);
	`
	for _, adjustment := range adjustments {
		modelAdjustment := mapping.ToModelReconciliationAdjustment(adjustment)
		batch.Queue(query,
			modelAdjustment.AdjustmentID,
			modelAdjustment.SessionID,
			modelAdjustment.Description,
			modelAdjustment.Amount,
			modelAdjustment.AdjustmentType,
			modelAdjustment.LedgerAccountID,
			modelAdjustment.LedgerAccountCode,
			modelAdjustment.PostedJournalID,
			modelAdjustment.ReversalJournalID,
			modelAdjustment.ReversalReason,
			modelAdjustment.ReversedAt,
			modelAdjustment.Metadata,
			modelAdjustment.CreatedAt,
			modelAdjustment.CreatedBy,
			modelAdjustment.LastUpdatedAt,
			modelAdjustment.LastUpdatedBy,
		)
	}

	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return apperrors.NewAppError(500, "failed to insert reconciliation adjustments", err)
	}

	return r.Commit(ctx, tx)
}

// FindAdjustmentByID retrieves one adjustment.
func (r *PgxReconciliationRepository) FindAdjustmentByID(ctx context.Context, sessionID, adjustmentID string) (*domain.ReconciliationAdjustment, error) {
	query := `
		SELECT ` + adjustmentColumns + `
		FROM reconciliation_adjustments
		WHERE session_id = $1 AND adjustment_id = $2;
	`
	modelAdjustment, err := scanAdjustment(r.Pool.QueryRow(ctx, query, sessionID, adjustmentID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find reconciliation adjustment by ID "+adjustmentID, err)
	}

	adjustment := mapping.ToDomainReconciliationAdjustment(*modelAdjustment)
	return &adjustment, nil
}

// ListAdjustmentsBySession retrieves all adjustments of a session in creation
// order.
func (r *PgxReconciliationRepository) ListAdjustmentsBySession(ctx context.Context, sessionID string) ([]domain.ReconciliationAdjustment, error) {
	query := `
		SELECT ` + adjustmentColumns + `
		FROM reconciliation_adjustments
		WHERE session_id = $1
		ORDER BY created_at, adjustment_id;
	`
	rows, err := r.Pool.Query(ctx, query, sessionID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to list reconciliation adjustments", err)
	}
	defer rows.Close()

	modelAdjustments := make([]models.ReconciliationAdjustment, 0)
	for rows.Next() {
		modelAdjustment, err := scanAdjustment(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan reconciliation adjustment row", err)
		}
		modelAdjustments = append(modelAdjustments, *modelAdjustment)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating reconciliation adjustment rows", err)
	}

	return mapping.ToDomainReconciliationAdjustmentSlice(modelAdjustments), nil
}

// UpdateAdjustment persists journal links and reversal fields.
func (r *PgxReconciliationRepository) UpdateAdjustment(ctx context.Context, adjustment domain.ReconciliationAdjustment) error {
	modelAdjustment := mapping.ToModelReconciliationAdjustment(adjustment)
	query := `
		UPDATE reconciliation_adjustments
		SET description = $1, amount = $2, adjustment_type = $3,
		    ledger_account_id = $4, ledger_account_code = $5, posted_journal_id = $6,
		    reversal_journal_id = $7, reversal_reason = $8, reversed_at = $9,
		    metadata = $10, last_updated_at = $11, last_updated_by = $12
		WHERE session_id = $13 AND adjustment_id = $14;
	`
	tag, err := r.Pool.Exec(ctx, query,
		modelAdjustment.Description,
		modelAdjustment.Amount,
		modelAdjustment.AdjustmentType,
		modelAdjustment.LedgerAccountID,
		modelAdjustment.LedgerAccountCode,
		modelAdjustment.PostedJournalID,
		modelAdjustment.ReversalJournalID,
		modelAdjustment.ReversalReason,
		modelAdjustment.ReversedAt,
		modelAdjustment.Metadata,
		modelAdjustment.LastUpdatedAt,
		modelAdjustment.LastUpdatedBy,
		modelAdjustment.SessionID,
		modelAdjustment.AdjustmentID,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update reconciliation adjustment "+modelAdjustment.AdjustmentID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func scanAdjustment(row pgx.Row) (*models.ReconciliationAdjustment, error) {
	var modelAdjustment models.ReconciliationAdjustment
	var postedJournalID, reversalJournalID sql.NullString
	var reversedAt sql.NullTime
	err := row.Scan(
		&modelAdjustment.AdjustmentID,
		&modelAdjustment.SessionID,
		&modelAdjustment.Description,
		&modelAdjustment.Amount,
		&modelAdjustment.AdjustmentType,
		&modelAdjustment.LedgerAccountID,
		&modelAdjustment.LedgerAccountCode,
		&postedJournalID,
		&reversalJournalID,
		&modelAdjustment.ReversalReason,
		&reversedAt,
		&modelAdjustment.Metadata,
		&modelAdjustment.CreatedAt,
		&modelAdjustment.CreatedBy,
		&modelAdjustment.LastUpdatedAt,
		&modelAdjustment.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	if postedJournalID.Valid {
		modelAdjustment.PostedJournalID = &postedJournalID.String
	}
	if reversalJournalID.Valid {
		modelAdjustment.ReversalJournalID = &reversalJournalID.String
	}
	if reversedAt.Valid {
		modelAdjustment.ReversedAt = &reversedAt.Time
	}
	return &modelAdjustment, nil
}
