package handlers

import (
	"log/slog"
	"net/http"

	"github.com/finledger/bank_recon_app/internal/core/domain"
	portssvc "github.com/finledger/bank_recon_app/internal/core/ports/services"
	"github.com/finledger/bank_recon_app/internal/dto"
	"github.com/finledger/bank_recon_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// reconciliationHandler handles HTTP requests for reconciliation sessions,
// matches, adjustments and balance checks.
type reconciliationHandler struct {
	reconciliationService portssvc.ReconciliationSvcFacade
}

// newReconciliationHandler creates a new reconciliationHandler.
func newReconciliationHandler(reconciliationService portssvc.ReconciliationSvcFacade) *reconciliationHandler {
	return &reconciliationHandler{
		reconciliationService: reconciliationService,
	}
}

// createSession godoc
// @Summary Open a reconciliation session
// @Description Opens a new draft session for a bank account and period
// @Tags reconciliations
// @Accept  json
// @Produce  json
// @Param   session body dto.CreateSessionRequest true "Session"
// @Success 201 {object} dto.SessionResponse
// @Failure 400 {object} map[string]string "Invalid request format"
// @Router /reconciliations [post]
func (h *reconciliationHandler) createSession(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	createReq := dto.CreateSessionRequest{}
	if err := c.ShouldBindJSON(&createReq); err != nil {
		logger.Error("Failed to bind JSON for createSession", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	companyID, _ := middleware.GetTenantIDFromContext(c)
	userID, _ := middleware.GetUserIDFromContext(c)

	session, err := h.reconciliationService.CreateSession(c.Request.Context(), companyID, createReq, userID)
	if err != nil {
		logger.Warn("Failed to create reconciliation session", slog.String("error", err.Error()))
		c.JSON(statusFromError(err), gin.H{"error": err.Error()})
		return
	}

	logger.Info("Reconciliation session created", slog.String("session_id", session.SessionID))
	c.JSON(http.StatusCreated, dto.ToSessionResponse(session))
}

// getSession godoc
// @Summary Get a reconciliation session
// @Tags reconciliations
// @Produce  json
// @Param   sessionID path string true "Session ID"
// @Success 200 {object} dto.SessionResponse
// @Failure 404 {object} map[string]string "Session not found"
// @Router /reconciliations/{sessionID} [get]
func (h *reconciliationHandler) getSession(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	sessionID := c.Param("sessionID")
	companyID, _ := middleware.GetTenantIDFromContext(c)

	session, err := h.reconciliationService.GetSessionByID(c.Request.Context(), companyID, sessionID)
	if err != nil {
		logger.Warn("Failed to get reconciliation session", slog.String("error", err.Error()), slog.String("session_id", sessionID))
		c.JSON(statusFromError(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, dto.ToSessionResponse(session))
}

// listSessions godoc
// @Summary List reconciliation sessions
// @Tags reconciliations
// @Produce  json
// @Success 200 {array} dto.SessionResponse
// @Router /reconciliations [get]
func (h *reconciliationHandler) listSessions(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	params := dto.ListSessionsParams{}
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters"})
		return
	}

	companyID, _ := middleware.GetTenantIDFromContext(c)

	sessions, err := h.reconciliationService.ListSessions(c.Request.Context(), companyID, params)
	if err != nil {
		logger.Error("Failed to list reconciliation sessions", slog.String("error", err.Error()))
		c.JSON(statusFromError(err), gin.H{"error": "Failed to list sessions"})
		return
	}

	responses := make([]dto.SessionResponse, len(sessions))
	for i := range sessions {
		responses[i] = dto.ToSessionResponse(&sessions[i])
	}
	c.JSON(http.StatusOK, responses)
}

// updateSession godoc
// @Summary Update a reconciliation session
// @Description Changes balances or notes of a non-completed session
// @Tags reconciliations
// @Accept  json
// @Produce  json
// @Param   sessionID path string true "Session ID"
// @Param   session body dto.UpdateSessionRequest true "Fields to update"
// @Success 200 {object} dto.SessionResponse
// @Failure 409 {object} map[string]string "Session is completed"
// @Router /reconciliations/{sessionID} [put]
func (h *reconciliationHandler) updateSession(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	sessionID := c.Param("sessionID")

	updateReq := dto.UpdateSessionRequest{}
	if err := c.ShouldBindJSON(&updateReq); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	companyID, _ := middleware.GetTenantIDFromContext(c)
	userID, _ := middleware.GetUserIDFromContext(c)

	session, err := h.reconciliationService.UpdateSession(c.Request.Context(), companyID, sessionID, updateReq, userID)
	if err != nil {
		logger.Warn("Failed to update reconciliation session", slog.String("error", err.Error()), slog.String("session_id", sessionID))
		c.JSON(statusFromError(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, dto.ToSessionResponse(session))
}

// completeSession godoc
// @Summary Complete a reconciliation session
// @Description Transitions a balanced session to its terminal state
// @Tags reconciliations
// @Produce  json
// @Param   sessionID path string true "Session ID"
// @Success 200 {object} dto.SessionResponse
// @Failure 409 {object} map[string]string "Session does not balance"
// @Router /reconciliations/{sessionID}/complete [post]
func (h *reconciliationHandler) completeSession(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	sessionID := c.Param("sessionID")
	companyID, _ := middleware.GetTenantIDFromContext(c)
	userID, _ := middleware.GetUserIDFromContext(c)

	session, err := h.reconciliationService.CompleteSession(c.Request.Context(), companyID, sessionID, userID)
	if err != nil {
		logger.Warn("Failed to complete reconciliation session", slog.String("error", err.Error()), slog.String("session_id", sessionID))
		c.JSON(statusFromError(err), gin.H{"error": err.Error()})
		return
	}

	logger.Info("Reconciliation session completed", slog.String("session_id", sessionID))
	c.JSON(http.StatusOK, dto.ToSessionResponse(session))
}

// autoMatch godoc
// @Summary Run the auto-matcher over a session
// @Description Matches unreconciled bank transactions against ledger entries and persists suggestions
// @Tags reconciliations
// @Produce  json
// @Param   sessionID path string true "Session ID"
// @Success 200 {object} dto.AutoMatchResponse
// @Failure 409 {object} map[string]string "Session is completed"
// @Router /reconciliations/{sessionID}/automatch [post]
func (h *reconciliationHandler) autoMatch(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	sessionID := c.Param("sessionID")
	companyID, _ := middleware.GetTenantIDFromContext(c)
	userID, _ := middleware.GetUserIDFromContext(c)

	result, err := h.reconciliationService.PerformAutoMatch(c.Request.Context(), companyID, sessionID, userID)
	if err != nil {
		logger.Warn("Auto-match run failed", slog.String("error", err.Error()), slog.String("session_id", sessionID))
		c.JSON(statusFromError(err), gin.H{"error": err.Error()})
		return
	}

	logger.Info("Auto-match run completed",
		slog.String("session_id", sessionID),
		slog.Int("matches", len(result.Matches)),
		slog.Float64("match_ratio", result.MatchRatio),
	)
	c.JSON(http.StatusOK, result)
}

// listMatches godoc
// @Summary List matches of a session
// @Tags reconciliations
// @Produce  json
// @Param   sessionID path string true "Session ID"
// @Param   status query string false "Filter by match status"
// @Success 200 {array} dto.MatchResponse
// @Router /reconciliations/{sessionID}/matches [get]
func (h *reconciliationHandler) listMatches(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	sessionID := c.Param("sessionID")
	companyID, _ := middleware.GetTenantIDFromContext(c)

	var status *domain.MatchStatus
	if raw := c.Query("status"); raw != "" {
		s := domain.MatchStatus(raw)
		status = &s
	}

	matches, err := h.reconciliationService.ListMatches(c.Request.Context(), companyID, sessionID, status)
	if err != nil {
		logger.Warn("Failed to list matches", slog.String("error", err.Error()), slog.String("session_id", sessionID))
		c.JSON(statusFromError(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, dto.ToMatchResponses(matches))
}

// confirmMatches godoc
// @Summary Confirm suggested matches
// @Tags reconciliations
// @Accept  json
// @Produce  json
// @Param   sessionID path string true "Session ID"
// @Param   matches body dto.ConfirmMatchesRequest true "Match IDs to confirm"
// @Success 200 {array} dto.MatchResponse
// @Failure 409 {object} map[string]string "Match is not in suggested state"
// @Router /reconciliations/{sessionID}/matches/confirm [post]
func (h *reconciliationHandler) confirmMatches(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	sessionID := c.Param("sessionID")

	confirmReq := dto.ConfirmMatchesRequest{}
	if err := c.ShouldBindJSON(&confirmReq); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	companyID, _ := middleware.GetTenantIDFromContext(c)
	userID, _ := middleware.GetUserIDFromContext(c)

	matches, err := h.reconciliationService.ConfirmMatches(c.Request.Context(), companyID, sessionID, confirmReq.MatchIDs, userID)
	if err != nil {
		logger.Warn("Failed to confirm matches", slog.String("error", err.Error()), slog.String("session_id", sessionID))
		c.JSON(statusFromError(err), gin.H{"error": err.Error()})
		return
	}

	logger.Info("Matches confirmed", slog.String("session_id", sessionID), slog.Int("count", len(matches)))
	c.JSON(http.StatusOK, dto.ToMatchResponses(matches))
}

// createManualMatch godoc
// @Summary Create a manual match
// @Description Pairs a bank transaction with a ledger entry by explicit user action
// @Tags reconciliations
// @Accept  json
// @Produce  json
// @Param   sessionID path string true "Session ID"
// @Param   match body dto.CreateManualMatchRequest true "Match"
// @Success 201 {object} dto.MatchResponse
// @Failure 409 {object} map[string]string "One side is already matched"
// @Router /reconciliations/{sessionID}/matches [post]
func (h *reconciliationHandler) createManualMatch(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	sessionID := c.Param("sessionID")

	matchReq := dto.CreateManualMatchRequest{}
	if err := c.ShouldBindJSON(&matchReq); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	companyID, _ := middleware.GetTenantIDFromContext(c)
	userID, _ := middleware.GetUserIDFromContext(c)

	match, err := h.reconciliationService.CreateManualMatch(c.Request.Context(), companyID, sessionID, matchReq, userID)
	if err != nil {
		logger.Warn("Failed to create manual match", slog.String("error", err.Error()), slog.String("session_id", sessionID))
		c.JSON(statusFromError(err), gin.H{"error": err.Error()})
		return
	}

	logger.Info("Manual match created", slog.String("session_id", sessionID), slog.String("match_id", match.MatchID))
	c.JSON(http.StatusCreated, dto.ToMatchResponse(match))
}

// deleteMatch godoc
// @Summary Delete a match
// @Description Removes a match, releasing both sides for re-matching
// @Tags reconciliations
// @Param   sessionID path string true "Session ID"
// @Param   matchID path string true "Match ID"
// @Success 204 "Deleted"
// @Failure 404 {object} map[string]string "Match not found"
// @Router /reconciliations/{sessionID}/matches/{matchID} [delete]
func (h *reconciliationHandler) deleteMatch(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	sessionID := c.Param("sessionID")
	matchID := c.Param("matchID")
	companyID, _ := middleware.GetTenantIDFromContext(c)

	if err := h.reconciliationService.DeleteMatch(c.Request.Context(), companyID, sessionID, matchID); err != nil {
		logger.Warn("Failed to delete match", slog.String("error", err.Error()), slog.String("match_id", matchID))
		c.JSON(statusFromError(err), gin.H{"error": err.Error()})
		return
	}

	c.Status(http.StatusNoContent)
}

// recordAdjustment godoc
// @Summary Record a reconciliation adjustment
// @Tags reconciliations
// @Accept  json
// @Produce  json
// @Param   sessionID path string true "Session ID"
// @Param   adjustment body dto.CreateAdjustmentRequest true "Adjustment"
// @Success 201 {object} dto.AdjustmentResponse
// @Router /reconciliations/{sessionID}/adjustments [post]
func (h *reconciliationHandler) recordAdjustment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	sessionID := c.Param("sessionID")

	adjustmentReq := dto.CreateAdjustmentRequest{}
	if err := c.ShouldBindJSON(&adjustmentReq); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	companyID, _ := middleware.GetTenantIDFromContext(c)
	userID, _ := middleware.GetUserIDFromContext(c)

	adjustment, err := h.reconciliationService.RecordAdjustment(c.Request.Context(), companyID, sessionID, adjustmentReq, userID)
	if err != nil {
		logger.Warn("Failed to record adjustment", slog.String("error", err.Error()), slog.String("session_id", sessionID))
		c.JSON(statusFromError(err), gin.H{"error": err.Error()})
		return
	}

	logger.Info("Adjustment recorded", slog.String("session_id", sessionID), slog.String("adjustment_id", adjustment.AdjustmentID))
	c.JSON(http.StatusCreated, dto.ToAdjustmentResponse(adjustment))
}

// bulkRecordAdjustments godoc
// @Summary Record several adjustments in one call
// @Description Persists a batch of adjustments; the batch is all-or-nothing
// @Tags reconciliations
// @Accept  json
// @Produce  json
// @Param   sessionID path string true "Session ID"
// @Param   adjustments body dto.BulkCreateAdjustmentsRequest true "Adjustments"
// @Success 201 {array} dto.AdjustmentResponse
// @Router /reconciliations/{sessionID}/adjustment-batches [post]
func (h *reconciliationHandler) bulkRecordAdjustments(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	sessionID := c.Param("sessionID")

	bulkReq := dto.BulkCreateAdjustmentsRequest{}
	if err := c.ShouldBindJSON(&bulkReq); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	companyID, _ := middleware.GetTenantIDFromContext(c)
	userID, _ := middleware.GetUserIDFromContext(c)

	adjustments, err := h.reconciliationService.BulkRecordAdjustments(c.Request.Context(), companyID, sessionID, bulkReq, userID)
	if err != nil {
		logger.Warn("Failed to record adjustment batch", slog.String("error", err.Error()), slog.String("session_id", sessionID))
		c.JSON(statusFromError(err), gin.H{"error": err.Error()})
		return
	}

	responses := make([]dto.AdjustmentResponse, len(adjustments))
	for i := range adjustments {
		responses[i] = dto.ToAdjustmentResponse(&adjustments[i])
	}
	logger.Info("Adjustment batch recorded", slog.String("session_id", sessionID), slog.Int("count", len(responses)))
	c.JSON(http.StatusCreated, responses)
}

// listAdjustments godoc
// @Summary List adjustments of a session
// @Tags reconciliations
// @Produce  json
// @Param   sessionID path string true "Session ID"
// @Success 200 {array} dto.AdjustmentResponse
// @Router /reconciliations/{sessionID}/adjustments [get]
func (h *reconciliationHandler) listAdjustments(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	sessionID := c.Param("sessionID")
	companyID, _ := middleware.GetTenantIDFromContext(c)

	adjustments, err := h.reconciliationService.ListAdjustments(c.Request.Context(), companyID, sessionID)
	if err != nil {
		logger.Warn("Failed to list adjustments", slog.String("error", err.Error()), slog.String("session_id", sessionID))
		c.JSON(statusFromError(err), gin.H{"error": err.Error()})
		return
	}

	responses := make([]dto.AdjustmentResponse, len(adjustments))
	for i := range adjustments {
		responses[i] = dto.ToAdjustmentResponse(&adjustments[i])
	}
	c.JSON(http.StatusOK, responses)
}

// postAdjustmentJournal godoc
// @Summary Post the journal entry for an adjustment
// @Description Creates and posts the two-line journal entry for an adjustment and links it back
// @Tags reconciliations
// @Produce  json
// @Param   sessionID path string true "Session ID"
// @Param   adjustmentID path string true "Adjustment ID"
// @Success 200 {object} dto.JournalResponse
// @Failure 409 {object} map[string]string "Adjustment already posted"
// @Router /reconciliations/{sessionID}/adjustments/{adjustmentID}/post [post]
func (h *reconciliationHandler) postAdjustmentJournal(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	sessionID := c.Param("sessionID")
	adjustmentID := c.Param("adjustmentID")
	companyID, _ := middleware.GetTenantIDFromContext(c)
	userID, _ := middleware.GetUserIDFromContext(c)

	entry, err := h.reconciliationService.PostAdjustmentJournal(c.Request.Context(), companyID, sessionID, adjustmentID, userID)
	if err != nil {
		logger.Warn("Failed to post adjustment journal", slog.String("error", err.Error()), slog.String("adjustment_id", adjustmentID))
		c.JSON(statusFromError(err), gin.H{"error": err.Error()})
		return
	}

	logger.Info("Adjustment journal posted",
		slog.String("adjustment_id", adjustmentID),
		slog.String("journal_entry_id", entry.JournalEntryID),
	)
	c.JSON(http.StatusOK, dto.ToJournalResponse(entry))
}

// reverseAdjustmentJournal godoc
// @Summary Reverse the journal entry of an adjustment
// @Tags reconciliations
// @Accept  json
// @Produce  json
// @Param   sessionID path string true "Session ID"
// @Param   adjustmentID path string true "Adjustment ID"
// @Param   reversal body dto.ReverseAdjustmentRequest true "Reversal reason"
// @Success 200 {object} dto.JournalResponse
// @Failure 409 {object} map[string]string "Adjustment is not posted or already reversed"
// @Router /reconciliations/{sessionID}/adjustments/{adjustmentID}/reverse [post]
func (h *reconciliationHandler) reverseAdjustmentJournal(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	sessionID := c.Param("sessionID")
	adjustmentID := c.Param("adjustmentID")

	reverseReq := dto.ReverseAdjustmentRequest{}
	if err := c.ShouldBindJSON(&reverseReq); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	companyID, _ := middleware.GetTenantIDFromContext(c)
	userID, _ := middleware.GetUserIDFromContext(c)

	entry, err := h.reconciliationService.ReverseAdjustmentJournal(c.Request.Context(), companyID, sessionID, adjustmentID, reverseReq.Reason, userID)
	if err != nil {
		logger.Warn("Failed to reverse adjustment journal", slog.String("error", err.Error()), slog.String("adjustment_id", adjustmentID))
		c.JSON(statusFromError(err), gin.H{"error": err.Error()})
		return
	}

	logger.Info("Adjustment journal reversed",
		slog.String("adjustment_id", adjustmentID),
		slog.String("reversal_journal_id", entry.JournalEntryID),
	)
	c.JSON(http.StatusOK, dto.ToJournalResponse(entry))
}

// validateBalance godoc
// @Summary Validate the session's statement balance
// @Description Checks the statement movement against opening and closing balances
// @Tags reconciliations
// @Produce  json
// @Param   sessionID path string true "Session ID"
// @Success 200 {object} dto.BalanceValidationResponse
// @Router /reconciliations/{sessionID}/balance [get]
func (h *reconciliationHandler) validateBalance(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	sessionID := c.Param("sessionID")
	companyID, _ := middleware.GetTenantIDFromContext(c)

	result, err := h.reconciliationService.ValidateSessionBalance(c.Request.Context(), companyID, sessionID)
	if err != nil {
		logger.Warn("Failed to validate session balance", slog.String("error", err.Error()), slog.String("session_id", sessionID))
		c.JSON(statusFromError(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, result)
}

// validateAdjustmentBalance godoc
// @Summary Validate the session's adjustment balance
// @Description Checks whether recorded adjustments close the remaining unexplained difference
// @Tags reconciliations
// @Produce  json
// @Param   sessionID path string true "Session ID"
// @Success 200 {object} dto.AdjustmentBalanceResponse
// @Router /reconciliations/{sessionID}/adjustment-balance [get]
func (h *reconciliationHandler) validateAdjustmentBalance(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	sessionID := c.Param("sessionID")
	companyID, _ := middleware.GetTenantIDFromContext(c)

	result, err := h.reconciliationService.ValidateAdjustmentBalance(c.Request.Context(), companyID, sessionID, nil)
	if err != nil {
		logger.Warn("Failed to validate adjustment balance", slog.String("error", err.Error()), slog.String("session_id", sessionID))
		c.JSON(statusFromError(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, result)
}

// registerReconciliationRoutes registers reconciliation specific routes
func registerReconciliationRoutes(group *gin.RouterGroup, services *portssvc.ServiceContainer) {
	h := newReconciliationHandler(services.Reconciliation)

	reconciliations := group.Group("/reconciliations")
	{
		reconciliations.POST("", h.createSession)
		reconciliations.GET("", h.listSessions)
		reconciliations.GET("/:sessionID", h.getSession)
		reconciliations.PUT("/:sessionID", h.updateSession)
		reconciliations.POST("/:sessionID/complete", h.completeSession)
		reconciliations.POST("/:sessionID/automatch", h.autoMatch)

		reconciliations.GET("/:sessionID/matches", h.listMatches)
		reconciliations.POST("/:sessionID/matches", h.createManualMatch)
		reconciliations.POST("/:sessionID/matches/confirm", h.confirmMatches)
		reconciliations.DELETE("/:sessionID/matches/:matchID", h.deleteMatch)

		reconciliations.GET("/:sessionID/adjustments", h.listAdjustments)
		reconciliations.POST("/:sessionID/adjustments", h.recordAdjustment)
		// Batch creation lives on its own path so the per-adjustment action
		// routes below stay free of wildcard conflicts.
		reconciliations.POST("/:sessionID/adjustment-batches", h.bulkRecordAdjustments)
		reconciliations.POST("/:sessionID/adjustments/:adjustmentID/post", h.postAdjustmentJournal)
		reconciliations.POST("/:sessionID/adjustments/:adjustmentID/reverse", h.reverseAdjustmentJournal)

		reconciliations.GET("/:sessionID/balance", h.validateBalance)
		reconciliations.GET("/:sessionID/adjustment-balance", h.validateAdjustmentBalance)
	}
}
