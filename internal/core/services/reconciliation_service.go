package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/finledger/bank_recon_app/internal/apperrors"
	"github.com/finledger/bank_recon_app/internal/core/domain"
	portsrepo "github.com/finledger/bank_recon_app/internal/core/ports/repositories"
	portssvc "github.com/finledger/bank_recon_app/internal/core/ports/services"
	"github.com/finledger/bank_recon_app/internal/dto"
	"github.com/finledger/bank_recon_app/internal/middleware"
	"github.com/finledger/bank_recon_app/internal/utils/recon"
	"github.com/shopspring/decimal"
)

var (
	ErrSessionCompleted          = errors.New("reconciliation session is already completed")
	ErrSessionNotBalanced        = errors.New("adjustments do not explain the remaining difference")
	ErrMatchNotSuggested         = errors.New("only suggested matches can be confirmed")
	ErrAdjustmentZeroAmount      = errors.New("adjustment amount must be nonzero")
	ErrAdjustmentAlreadyPosted   = errors.New("adjustment already has a posted journal")
	ErrAdjustmentNotPosted       = errors.New("adjustment has no posted journal to reverse")
	ErrAdjustmentAlreadyReversed = errors.New("adjustment journal is already reversed")
)

// reconciliationService drives the reconciliation workflow: sessions,
// auto-matching, adjustments and their journal entries.
type reconciliationService struct {
	reconRepo     portsrepo.ReconciliationRepositoryWithTx
	statementRepo portsrepo.BankStatementRepositoryFacade
	ledgerReader  portsrepo.LedgerReader
	journalSvc    portssvc.JournalSvcFacade
	matchingCfg   recon.MatchingConfig
}

// NewReconciliationService creates a new ReconciliationService.
func NewReconciliationService(
	reconRepo portsrepo.ReconciliationRepositoryWithTx,
	statementRepo portsrepo.BankStatementRepositoryFacade,
	ledgerReader portsrepo.LedgerReader,
	journalSvc portssvc.JournalSvcFacade,
	matchingCfg recon.MatchingConfig,
) portssvc.ReconciliationSvcFacade {
	return &reconciliationService{
		reconRepo:     reconRepo,
		statementRepo: statementRepo,
		ledgerReader:  ledgerReader,
		journalSvc:    journalSvc,
		matchingCfg:   matchingCfg,
	}
}

// Ensure reconciliationService implements the portssvc.ReconciliationSvcFacade interface
var _ portssvc.ReconciliationSvcFacade = (*reconciliationService)(nil)

// CreateSession opens a new draft session for a bank account and period.
func (s *reconciliationService) CreateSession(ctx context.Context, companyID string, req dto.CreateSessionRequest, creatorUserID string) (*domain.ReconciliationSession, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !req.PeriodEnd.After(req.PeriodStart) {
		return nil, fmt.Errorf("%w: period end must be after period start", apperrors.ErrValidation)
	}

	now := time.Now().UTC()
	session := domain.ReconciliationSession{
		SessionID:       uuid.NewString(),
		CompanyID:       companyID,
		BankAccountID:   req.BankAccountID,
		BankAccountName: req.BankAccountName,
		CurrencyCode:    req.CurrencyCode,
		PeriodStart:     req.PeriodStart,
		PeriodEnd:       req.PeriodEnd,
		OpeningBalance:  req.OpeningBalance,
		ClosingBalance:  req.ClosingBalance,
		Status:          domain.ReconciliationDraft,
		Notes:           req.Notes,
		Metadata:        req.Metadata,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.reconRepo.SaveSession(ctx, session); err != nil {
		logger.Error("Failed to save reconciliation session", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to save session: %w", err)
	}

	logger.Info("Reconciliation session created",
		slog.String("session_id", session.SessionID),
		slog.String("bank_account_id", session.BankAccountID))
	return &session, nil
}

// GetSessionByID retrieves a session.
func (s *reconciliationService) GetSessionByID(ctx context.Context, companyID, sessionID string) (*domain.ReconciliationSession, error) {
	session, err := s.reconRepo.FindSessionByID(ctx, companyID, sessionID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewNotFoundError(fmt.Sprintf("reconciliation session %s not found", sessionID))
		}
		return nil, err
	}
	return session, nil
}

// ListSessions retrieves sessions matching the filter.
func (s *reconciliationService) ListSessions(ctx context.Context, companyID string, params dto.ListSessionsParams) ([]domain.ReconciliationSession, error) {
	return s.reconRepo.ListSessions(ctx, companyID, params)
}

// UpdateSession changes balances or notes of a non-completed session.
func (s *reconciliationService) UpdateSession(ctx context.Context, companyID, sessionID string, req dto.UpdateSessionRequest, userID string) (*domain.ReconciliationSession, error) {
	session, err := s.activeSession(ctx, companyID, sessionID)
	if err != nil {
		return nil, err
	}

	if req.OpeningBalance != nil {
		session.OpeningBalance = *req.OpeningBalance
	}
	if req.ClosingBalance != nil {
		session.ClosingBalance = *req.ClosingBalance
	}
	if req.Notes != nil {
		session.Notes = *req.Notes
	}
	session.LastUpdatedAt = time.Now().UTC()
	session.LastUpdatedBy = userID

	if err := s.reconRepo.UpdateSession(ctx, *session); err != nil {
		return nil, fmt.Errorf("failed to update session: %w", err)
	}
	return session, nil
}

// CompleteSession transitions a session to its terminal state. Completion
// requires the recorded adjustments to explain the remaining difference.
func (s *reconciliationService) CompleteSession(ctx context.Context, companyID, sessionID, userID string) (*domain.ReconciliationSession, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	session, err := s.activeSession(ctx, companyID, sessionID)
	if err != nil {
		return nil, err
	}

	balance, err := s.ValidateAdjustmentBalance(ctx, companyID, sessionID, nil)
	if err != nil {
		return nil, err
	}
	if !balance.IsBalanced {
		return nil, apperrors.NewAppError(http.StatusConflict, balance.Message, fmt.Errorf("%w: %s", apperrors.ErrConflict, ErrSessionNotBalanced))
	}

	// Unconfirmed suggestions do not survive completion.
	if err := s.reconRepo.DeleteSuggestedMatches(ctx, sessionID); err != nil {
		return nil, fmt.Errorf("failed to discard pending suggestions: %w", err)
	}

	now := time.Now().UTC()
	session.Status = domain.ReconciliationCompleted
	session.CompletedAt = &now
	session.LastUpdatedAt = now
	session.LastUpdatedBy = userID

	if err := s.reconRepo.UpdateSession(ctx, *session); err != nil {
		return nil, fmt.Errorf("failed to complete session: %w", err)
	}

	logger.Info("Reconciliation session completed", slog.String("session_id", sessionID))
	return session, nil
}

// PerformAutoMatch runs the matcher over the session's unmatched bank
// transactions and ledger entries and persists the suggestions. Items already
// claimed by an existing match on either side are excluded before matching,
// so a re-run never double-claims.
func (s *reconciliationService) PerformAutoMatch(ctx context.Context, companyID, sessionID, userID string) (*dto.AutoMatchResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	session, err := s.activeSession(ctx, companyID, sessionID)
	if err != nil {
		return nil, err
	}

	// A statement pinned on the session wins over the date-range query.
	var bankTxns []domain.BankTransaction
	if statementID := session.Metadata["statementID"]; statementID != "" {
		statement, err := s.statementRepo.FindStatementByID(ctx, companyID, statementID)
		if err != nil {
			return nil, fmt.Errorf("failed to load pinned statement %s: %w", statementID, err)
		}
		bankTxns = statement.Transactions
	} else {
		var err error
		bankTxns, err = s.statementRepo.ListBankTransactions(ctx, companyID, session.BankAccountID, session.PeriodStart, session.PeriodEnd)
		if err != nil {
			return nil, fmt.Errorf("failed to load bank transactions: %w", err)
		}
	}
	ledgerEntries, err := s.ledgerReader.ListLedgerEntriesByAccount(ctx, companyID, session.BankAccountID, session.PeriodStart, session.PeriodEnd)
	if err != nil {
		return nil, fmt.Errorf("failed to load ledger entries: %w", err)
	}

	existing, err := s.reconRepo.ListMatchesBySession(ctx, sessionID, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to load existing matches: %w", err)
	}

	matchedBank := make(map[string]struct{}, len(existing))
	matchedLedger := make(map[string]struct{}, len(existing))
	for _, m := range existing {
		if m.Status == domain.MatchRejected {
			continue
		}
		matchedBank[m.BankTransactionID] = struct{}{}
		matchedLedger[m.LedgerTransactionID] = struct{}{}
	}

	candidateTxns := make([]domain.BankTransaction, 0, len(bankTxns))
	for _, tx := range bankTxns {
		if _, ok := matchedBank[tx.ID]; !ok {
			candidateTxns = append(candidateTxns, tx)
		}
	}
	candidateEntries := make([]domain.LedgerEntry, 0, len(ledgerEntries))
	for _, entry := range ledgerEntries {
		if _, ok := matchedLedger[entry.LedgerEntryID]; !ok {
			candidateEntries = append(candidateEntries, entry)
		}
	}

	result := recon.AutoMatch(candidateTxns, candidateEntries, s.matchingCfg)

	now := time.Now().UTC()
	matches := make([]domain.ReconciliationMatch, len(result.Matches))
	for i, candidate := range result.Matches {
		matches[i] = domain.ReconciliationMatch{
			MatchID:             uuid.NewString(),
			SessionID:           sessionID,
			BankTransactionID:   candidate.BankTransactionID,
			LedgerTransactionID: candidate.LedgerTransactionID,
			Amount:              recon.SignedBankAmount(candidate.BankTransaction),
			MatchDate:           candidate.BankTransaction.Date,
			Status:              domain.MatchSuggested,
			Confidence:          candidate.Confidence,
			Metadata: map[string]string{
				"ruleApplied":        string(candidate.RuleApplied),
				"amountDifference":   candidate.AmountDifference.String(),
				"dateDifferenceDays": strconv.Itoa(candidate.DateDifferenceInDays),
			},
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				CreatedBy:     userID,
				LastUpdatedAt: now,
				LastUpdatedBy: userID,
			},
		}
	}

	if len(matches) > 0 {
		if err := s.reconRepo.SaveMatches(ctx, matches); err != nil {
			logger.Error("Failed to persist suggested matches", slog.String("error", err.Error()), slog.String("session_id", sessionID))
			return nil, fmt.Errorf("failed to persist matches: %w", err)
		}
	}

	// Session-level ratio counts every claimed bank transaction, not just the
	// ones from this run.
	overallRatio := 0.0
	if len(bankTxns) > 0 {
		overallRatio = float64(len(matchedBank)+len(matches)) / float64(len(bankTxns))
	}

	session.AutoMatchRatio = overallRatio
	if session.Status == domain.ReconciliationDraft {
		session.Status = domain.ReconciliationInProgress
	}
	session.LastUpdatedAt = now
	session.LastUpdatedBy = userID
	if err := s.reconRepo.UpdateSession(ctx, *session); err != nil {
		return nil, fmt.Errorf("failed to update session after matching: %w", err)
	}

	logger.Info("Auto-match completed",
		slog.String("session_id", sessionID),
		slog.Int("new_matches", len(matches)),
		slog.Int("unmatched_bank", len(result.UnmatchedBankTransactions)),
		slog.Float64("match_ratio", result.MatchRatio))

	return &dto.AutoMatchResponse{
		SessionID:                 sessionID,
		Matches:                   dto.ToMatchResponses(matches),
		UnmatchedBankTransactions: len(result.UnmatchedBankTransactions),
		UnmatchedLedgerEntries:    len(result.UnmatchedLedgerEntries),
		MatchRatio:                result.MatchRatio,
	}, nil
}

// ConfirmMatches transitions suggested matches to confirmed.
func (s *reconciliationService) ConfirmMatches(ctx context.Context, companyID, sessionID string, matchIDs []string, userID string) ([]domain.ReconciliationMatch, error) {
	if _, err := s.activeSession(ctx, companyID, sessionID); err != nil {
		return nil, err
	}

	confirmed := make([]domain.ReconciliationMatch, 0, len(matchIDs))
	for _, matchID := range matchIDs {
		match, err := s.reconRepo.FindMatchByID(ctx, sessionID, matchID)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil, apperrors.NewNotFoundError(fmt.Sprintf("match %s not found", matchID))
			}
			return nil, err
		}
		if match.Status != domain.MatchSuggested {
			return nil, fmt.Errorf("%w: %s (match %s is %s)", apperrors.ErrConflict, ErrMatchNotSuggested, matchID, match.Status)
		}
		if err := s.reconRepo.UpdateMatchStatus(ctx, sessionID, matchID, domain.MatchConfirmed, userID); err != nil {
			return nil, fmt.Errorf("failed to confirm match %s: %w", matchID, err)
		}
		match.Status = domain.MatchConfirmed
		confirmed = append(confirmed, *match)
	}
	return confirmed, nil
}

// CreateManualMatch pairs a bank transaction with a ledger entry by explicit
// user action. Manual matches are born confirmed.
func (s *reconciliationService) CreateManualMatch(ctx context.Context, companyID, sessionID string, req dto.CreateManualMatchRequest, userID string) (*domain.ReconciliationMatch, error) {
	if _, err := s.activeSession(ctx, companyID, sessionID); err != nil {
		return nil, err
	}

	existing, err := s.reconRepo.ListMatchesBySession(ctx, sessionID, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to load existing matches: %w", err)
	}
	for _, m := range existing {
		if m.Status == domain.MatchRejected {
			continue
		}
		if m.BankTransactionID == req.BankTransactionID || m.LedgerTransactionID == req.LedgerTransactionID {
			return nil, fmt.Errorf("%w: one side is already matched", apperrors.ErrConflict)
		}
	}

	now := time.Now().UTC()
	match := domain.ReconciliationMatch{
		MatchID:             uuid.NewString(),
		SessionID:           sessionID,
		BankTransactionID:   req.BankTransactionID,
		LedgerTransactionID: req.LedgerTransactionID,
		Amount:              req.Amount,
		MatchDate:           now,
		Status:              domain.MatchConfirmed,
		Confidence:          1,
		Notes:               req.Notes,
		Metadata:            map[string]string{"ruleApplied": string(recon.RuleManual)},
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.reconRepo.SaveMatches(ctx, []domain.ReconciliationMatch{match}); err != nil {
		return nil, fmt.Errorf("failed to save manual match: %w", err)
	}
	return &match, nil
}

// DeleteMatch removes a match, releasing both sides for re-matching.
func (s *reconciliationService) DeleteMatch(ctx context.Context, companyID, sessionID, matchID string) error {
	if _, err := s.activeSession(ctx, companyID, sessionID); err != nil {
		return err
	}
	if err := s.reconRepo.DeleteMatch(ctx, sessionID, matchID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return apperrors.NewNotFoundError(fmt.Sprintf("match %s not found", matchID))
		}
		return err
	}
	return nil
}

// ListMatches retrieves the matches of a session.
func (s *reconciliationService) ListMatches(ctx context.Context, companyID, sessionID string, status *domain.MatchStatus) ([]domain.ReconciliationMatch, error) {
	if _, err := s.GetSessionByID(ctx, companyID, sessionID); err != nil {
		return nil, err
	}
	return s.reconRepo.ListMatchesBySession(ctx, sessionID, status)
}

// RecordAdjustment persists one adjustment against a session.
func (s *reconciliationService) RecordAdjustment(ctx context.Context, companyID, sessionID string, req dto.CreateAdjustmentRequest, userID string) (*domain.ReconciliationAdjustment, error) {
	if _, err := s.activeSession(ctx, companyID, sessionID); err != nil {
		return nil, err
	}

	adjustment, err := buildAdjustment(sessionID, req, userID)
	if err != nil {
		return nil, err
	}
	if err := s.reconRepo.SaveAdjustment(ctx, *adjustment); err != nil {
		return nil, fmt.Errorf("failed to save adjustment: %w", err)
	}
	return adjustment, nil
}

// BulkRecordAdjustments persists several adjustments in one call. Validation
// is all-or-nothing: one bad item rejects the whole batch, and unless the
// request opts out, a batch that would not close the session's unexplained
// difference is rejected before anything is saved.
func (s *reconciliationService) BulkRecordAdjustments(ctx context.Context, companyID, sessionID string, req dto.BulkCreateAdjustmentsRequest, userID string) ([]domain.ReconciliationAdjustment, error) {
	if _, err := s.activeSession(ctx, companyID, sessionID); err != nil {
		return nil, err
	}

	adjustments := make([]domain.ReconciliationAdjustment, 0, len(req.Adjustments))
	for i, adjReq := range req.Adjustments {
		adjustment, err := buildAdjustment(sessionID, adjReq, userID)
		if err != nil {
			return nil, fmt.Errorf("adjustment %d: %w", i, err)
		}
		adjustments = append(adjustments, *adjustment)
	}

	if !req.SkipBalanceValidation {
		validation, err := s.ValidateAdjustmentBalance(ctx, companyID, sessionID, req.Adjustments)
		if err != nil {
			return nil, err
		}
		if !validation.IsBalanced {
			return nil, fmt.Errorf("%w: balance validation failed: %s", apperrors.ErrValidation, validation.Message)
		}
	}

	if err := s.reconRepo.SaveAdjustments(ctx, adjustments); err != nil {
		return nil, fmt.Errorf("failed to save adjustments: %w", err)
	}
	return adjustments, nil
}

// ListAdjustments retrieves the adjustments of a session.
func (s *reconciliationService) ListAdjustments(ctx context.Context, companyID, sessionID string) ([]domain.ReconciliationAdjustment, error) {
	if _, err := s.GetSessionByID(ctx, companyID, sessionID); err != nil {
		return nil, err
	}
	return s.reconRepo.ListAdjustmentsBySession(ctx, sessionID)
}

// PostAdjustmentJournal creates and posts the two-line journal entry for an
// adjustment and links it back. A positive adjustment debits the bank
// account; a negative one credits it.
func (s *reconciliationService) PostAdjustmentJournal(ctx context.Context, companyID, sessionID, adjustmentID, userID string) (*domain.JournalEntry, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	session, err := s.GetSessionByID(ctx, companyID, sessionID)
	if err != nil {
		return nil, err
	}
	adjustment, err := s.getAdjustment(ctx, sessionID, adjustmentID)
	if err != nil {
		return nil, err
	}
	if adjustment.PostedJournalID != nil {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrConflict, ErrAdjustmentAlreadyPosted)
	}

	amount := adjustment.Amount.Abs()
	bankLine := dto.JournalLineRequest{
		AccountID:    session.BankAccountID,
		AccountName:  session.BankAccountName,
		Description:  adjustment.Description,
		CurrencyCode: session.CurrencyCode,
	}
	contraLine := dto.JournalLineRequest{
		AccountID:    adjustment.LedgerAccountID,
		AccountCode:  adjustment.LedgerAccountCode,
		Description:  adjustment.Description,
		CurrencyCode: session.CurrencyCode,
	}
	if adjustment.Amount.IsPositive() {
		bankLine.Debit = amount
		contraLine.Credit = amount
	} else {
		bankLine.Credit = amount
		contraLine.Debit = amount
	}

	req := dto.CreateJournalRequest{
		Reference:       adjustment.AdjustmentID,
		Description:     fmt.Sprintf("Reconciliation adjustment: %s", adjustment.Description),
		Source:          domain.SourceAdjustment,
		TransactionDate: session.PeriodEnd,
		Metadata: map[string]string{
			"sessionID":      sessionID,
			"adjustmentID":   adjustmentID,
			"adjustmentType": string(adjustment.AdjustmentType),
		},
		Lines: []dto.JournalLineRequest{bankLine, contraLine},
	}

	entry, err := s.journalSvc.CreateJournal(ctx, companyID, req, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to create adjustment journal: %w", err)
	}
	if _, err := s.journalSvc.PostJournal(ctx, companyID, entry.JournalEntryID, dto.PostJournalRequest{}, userID); err != nil {
		return nil, fmt.Errorf("failed to post adjustment journal: %w", err)
	}

	adjustment.PostedJournalID = &entry.JournalEntryID
	adjustment.LastUpdatedAt = time.Now().UTC()
	adjustment.LastUpdatedBy = userID
	if err := s.reconRepo.UpdateAdjustment(ctx, *adjustment); err != nil {
		return nil, fmt.Errorf("failed to link adjustment journal: %w", err)
	}

	logger.Info("Adjustment journal posted",
		slog.String("session_id", sessionID),
		slog.String("adjustment_id", adjustmentID),
		slog.String("journal_entry_id", entry.JournalEntryID))

	return s.journalSvc.GetJournalByID(ctx, companyID, entry.JournalEntryID)
}

// ReverseAdjustmentJournal posts a reversal of an adjustment's journal and
// records the reason. The adjustment row keeps both journal links.
func (s *reconciliationService) ReverseAdjustmentJournal(ctx context.Context, companyID, sessionID, adjustmentID, reason, userID string) (*domain.JournalEntry, error) {
	adjustment, err := s.getAdjustment(ctx, sessionID, adjustmentID)
	if err != nil {
		return nil, err
	}
	if adjustment.PostedJournalID == nil {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrConflict, ErrAdjustmentNotPosted)
	}
	if adjustment.ReversalJournalID != nil {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrConflict, ErrAdjustmentAlreadyReversed)
	}

	reversal, err := s.journalSvc.ReverseJournal(ctx, companyID, *adjustment.PostedJournalID, reason, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to reverse adjustment journal: %w", err)
	}

	now := time.Now().UTC()
	adjustment.ReversalJournalID = &reversal.JournalEntryID
	adjustment.ReversalReason = reason
	adjustment.ReversedAt = &now
	adjustment.LastUpdatedAt = now
	adjustment.LastUpdatedBy = userID
	if err := s.reconRepo.UpdateAdjustment(ctx, *adjustment); err != nil {
		return nil, fmt.Errorf("failed to record adjustment reversal: %w", err)
	}

	return reversal, nil
}

// ValidateSessionBalance checks the session's statement movement against its
// opening and closing balances.
func (s *reconciliationService) ValidateSessionBalance(ctx context.Context, companyID, sessionID string) (*dto.BalanceValidationResponse, error) {
	session, err := s.GetSessionByID(ctx, companyID, sessionID)
	if err != nil {
		return nil, err
	}

	bankTxns, err := s.statementRepo.ListBankTransactions(ctx, companyID, session.BankAccountID, session.PeriodStart, session.PeriodEnd)
	if err != nil {
		return nil, fmt.Errorf("failed to load bank transactions: %w", err)
	}

	validation := recon.ValidateBalance(session.OpeningBalance, session.ClosingBalance, bankTxns)
	return &dto.BalanceValidationResponse{
		IsValid:         validation.IsValid,
		ExpectedBalance: validation.ExpectedBalance,
		ActualBalance:   validation.ActualBalance,
		Difference:      validation.Difference,
		Message:         validation.Message,
	}, nil
}

// ValidateAdjustmentBalance checks whether recorded adjustments close the
// difference between the statement movement and the ledger movement. Proposed
// adjustments not yet saved count toward the total, so a batch can be checked
// before it is created. Reversed adjustments no longer count.
func (s *reconciliationService) ValidateAdjustmentBalance(ctx context.Context, companyID, sessionID string, proposed []dto.CreateAdjustmentRequest) (*dto.AdjustmentBalanceResponse, error) {
	session, err := s.GetSessionByID(ctx, companyID, sessionID)
	if err != nil {
		return nil, err
	}

	ledgerEntries, err := s.ledgerReader.ListLedgerEntriesByAccount(ctx, companyID, session.BankAccountID, session.PeriodStart, session.PeriodEnd)
	if err != nil {
		return nil, fmt.Errorf("failed to load ledger entries: %w", err)
	}
	adjustments, err := s.reconRepo.ListAdjustmentsBySession(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to load adjustments: %w", err)
	}

	statementMovement := session.ClosingBalance.Sub(session.OpeningBalance)
	ledgerMovement := decimal.Zero
	for _, entry := range ledgerEntries {
		ledgerMovement = ledgerMovement.Add(recon.SignedLedgerAmount(entry))
	}

	adjustmentTotal := decimal.Zero
	for _, adj := range adjustments {
		if adj.ReversalJournalID != nil {
			continue
		}
		adjustmentTotal = adjustmentTotal.Add(adj.Amount)
	}
	for _, adj := range proposed {
		adjustmentTotal = adjustmentTotal.Add(adj.Amount)
	}

	unexplained := statementMovement.Sub(ledgerMovement)
	remaining := unexplained.Sub(adjustmentTotal).Abs()
	isBalanced := remaining.LessThan(decimal.NewFromFloat(0.01))

	message := "adjustments explain the remaining difference"
	if !isBalanced {
		message = fmt.Sprintf("adjustments total %s but %s remains unexplained",
			adjustmentTotal.StringFixed(2), unexplained.StringFixed(2))
	}

	return &dto.AdjustmentBalanceResponse{
		IsBalanced:            isBalanced,
		UnexplainedDifference: unexplained,
		AdjustmentTotal:       adjustmentTotal,
		Message:               message,
	}, nil
}

// activeSession loads a session and rejects operations on completed ones.
func (s *reconciliationService) activeSession(ctx context.Context, companyID, sessionID string) (*domain.ReconciliationSession, error) {
	session, err := s.GetSessionByID(ctx, companyID, sessionID)
	if err != nil {
		return nil, err
	}
	if session.Status == domain.ReconciliationCompleted {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrConflict, ErrSessionCompleted)
	}
	return session, nil
}

func (s *reconciliationService) getAdjustment(ctx context.Context, sessionID, adjustmentID string) (*domain.ReconciliationAdjustment, error) {
	adjustment, err := s.reconRepo.FindAdjustmentByID(ctx, sessionID, adjustmentID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewNotFoundError(fmt.Sprintf("adjustment %s not found", adjustmentID))
		}
		return nil, err
	}
	return adjustment, nil
}

func buildAdjustment(sessionID string, req dto.CreateAdjustmentRequest, userID string) (*domain.ReconciliationAdjustment, error) {
	if req.Amount.IsZero() {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, ErrAdjustmentZeroAmount)
	}
	if req.Description == "" {
		return nil, fmt.Errorf("%w: adjustment description is required", apperrors.ErrValidation)
	}
	if req.LedgerAccountID == "" {
		return nil, fmt.Errorf("%w: adjustment ledger account is required", apperrors.ErrValidation)
	}

	now := time.Now().UTC()
	return &domain.ReconciliationAdjustment{
		AdjustmentID:      uuid.NewString(),
		SessionID:         sessionID,
		Description:       req.Description,
		Amount:            req.Amount,
		AdjustmentType:    req.AdjustmentType,
		LedgerAccountID:   req.LedgerAccountID,
		LedgerAccountCode: req.LedgerAccountCode,
		Metadata:          req.Metadata,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}, nil
}
