package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/finledger/bank_recon_app/internal/apperrors"
	portssvc "github.com/finledger/bank_recon_app/internal/core/ports/services"
	"github.com/finledger/bank_recon_app/internal/dto"
	"github.com/finledger/bank_recon_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// journalHandler handles HTTP requests related to journal entries and posting.
type journalHandler struct {
	journalService portssvc.JournalSvcFacade
}

// newJournalHandler creates a new journalHandler.
func newJournalHandler(journalService portssvc.JournalSvcFacade) *journalHandler {
	return &journalHandler{
		journalService: journalService,
	}
}

// createJournal godoc
// @Summary Create a draft journal entry
// @Description Creates a new draft journal entry with its lines
// @Tags journals
// @Accept  json
// @Produce  json
// @Param   journal body dto.CreateJournalRequest true "Journal entry"
// @Success 201 {object} dto.JournalResponse
// @Failure 400 {object} map[string]string "Invalid request format"
// @Failure 500 {object} map[string]string "Failed to create journal entry"
// @Router /journals [post]
func (h *journalHandler) createJournal(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	createReq := dto.CreateJournalRequest{}
	if err := c.ShouldBindJSON(&createReq); err != nil {
		logger.Error("Failed to bind JSON for createJournal", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	tenantID, ok := middleware.GetTenantIDFromContext(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Tenant not resolved"})
		return
	}
	userID, _ := middleware.GetUserIDFromContext(c)

	entry, err := h.journalService.CreateJournal(c.Request.Context(), tenantID, createReq, userID)
	if err != nil {
		logger.Warn("Failed to create journal entry", slog.String("error", err.Error()))
		c.JSON(statusFromError(err), gin.H{"error": err.Error()})
		return
	}

	logger.Info("Journal entry created", slog.String("journal_entry_id", entry.JournalEntryID))
	c.JSON(http.StatusCreated, dto.ToJournalResponse(entry))
}

// getJournal godoc
// @Summary Get a journal entry
// @Description Retrieves a journal entry with its lines
// @Tags journals
// @Produce  json
// @Param   journalEntryID path string true "Journal entry ID"
// @Success 200 {object} dto.JournalResponse
// @Failure 404 {object} map[string]string "Journal entry not found"
// @Router /journals/{journalEntryID} [get]
func (h *journalHandler) getJournal(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	journalEntryID := c.Param("journalEntryID")

	tenantID, _ := middleware.GetTenantIDFromContext(c)

	entry, err := h.journalService.GetJournalByID(c.Request.Context(), tenantID, journalEntryID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Journal entry not found"})
			return
		}
		logger.Error("Failed to get journal entry", slog.String("error", err.Error()), slog.String("journal_entry_id", journalEntryID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve journal entry"})
		return
	}

	c.JSON(http.StatusOK, dto.ToJournalResponse(entry))
}

// listJournals godoc
// @Summary List journal entries
// @Description Lists journal entries with optional status, source and date filters
// @Tags journals
// @Produce  json
// @Success 200 {array} dto.JournalResponse
// @Failure 400 {object} map[string]string "Invalid query parameters"
// @Router /journals [get]
func (h *journalHandler) listJournals(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	params := dto.ListJournalsParams{}
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters"})
		return
	}

	tenantID, _ := middleware.GetTenantIDFromContext(c)

	entries, err := h.journalService.ListJournals(c.Request.Context(), tenantID, params)
	if err != nil {
		logger.Error("Failed to list journal entries", slog.String("error", err.Error()))
		c.JSON(statusFromError(err), gin.H{"error": "Failed to list journal entries"})
		return
	}

	responses := make([]dto.JournalResponse, len(entries))
	for i := range entries {
		responses[i] = dto.ToJournalResponse(&entries[i])
	}
	c.JSON(http.StatusOK, responses)
}

// validateJournal godoc
// @Summary Validate a journal entry
// @Description Reports whether a journal entry is balanced and postable
// @Tags journals
// @Produce  json
// @Param   journalEntryID path string true "Journal entry ID"
// @Success 200 {object} dto.JournalValidationResponse
// @Failure 404 {object} map[string]string "Journal entry not found"
// @Router /journals/{journalEntryID}/validation [get]
func (h *journalHandler) validateJournal(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	journalEntryID := c.Param("journalEntryID")

	tenantID, _ := middleware.GetTenantIDFromContext(c)

	entry, err := h.journalService.GetJournalByID(c.Request.Context(), tenantID, journalEntryID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Journal entry not found"})
			return
		}
		logger.Error("Failed to get journal entry for validation", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve journal entry"})
		return
	}

	result := h.journalService.ValidateJournal(c.Request.Context(), *entry)
	c.JSON(http.StatusOK, dto.ToJournalValidationResponse(&result))
}

// postJournal godoc
// @Summary Post a journal entry
// @Description Validates a draft entry and atomically writes its ledger lines
// @Tags journals
// @Accept  json
// @Produce  json
// @Param   journalEntryID path string true "Journal entry ID"
// @Param   posting body dto.PostJournalRequest false "Posting options"
// @Success 200 {object} domain.PostingResult
// @Failure 409 {object} map[string]string "Entry already posted or period closed"
// @Failure 422 {object} map[string]string "Entry failed validation"
// @Router /journals/{journalEntryID}/post [post]
func (h *journalHandler) postJournal(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	journalEntryID := c.Param("journalEntryID")

	postReq := dto.PostJournalRequest{}
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&postReq); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
			return
		}
	}

	tenantID, _ := middleware.GetTenantIDFromContext(c)
	userID, _ := middleware.GetUserIDFromContext(c)

	result, err := h.journalService.PostJournal(c.Request.Context(), tenantID, journalEntryID, postReq, userID)
	if err != nil {
		logger.Warn("Failed to post journal entry", slog.String("error", err.Error()), slog.String("journal_entry_id", journalEntryID))
		c.JSON(statusFromError(err), gin.H{"error": err.Error()})
		return
	}

	logger.Info("Journal entry posted", slog.String("journal_entry_id", journalEntryID))
	c.JSON(http.StatusOK, result)
}

// reverseJournal godoc
// @Summary Reverse a posted journal entry
// @Description Creates and posts a new entry with debits and credits swapped
// @Tags journals
// @Accept  json
// @Produce  json
// @Param   journalEntryID path string true "Journal entry ID"
// @Param   reversal body dto.ReverseJournalRequest true "Reversal reason"
// @Success 201 {object} dto.JournalResponse
// @Failure 409 {object} map[string]string "Entry is not posted"
// @Router /journals/{journalEntryID}/reverse [post]
func (h *journalHandler) reverseJournal(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	journalEntryID := c.Param("journalEntryID")

	reverseReq := dto.ReverseJournalRequest{}
	if err := c.ShouldBindJSON(&reverseReq); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	tenantID, _ := middleware.GetTenantIDFromContext(c)
	userID, _ := middleware.GetUserIDFromContext(c)

	reversal, err := h.journalService.ReverseJournal(c.Request.Context(), tenantID, journalEntryID, reverseReq.Reason, userID)
	if err != nil {
		logger.Warn("Failed to reverse journal entry", slog.String("error", err.Error()), slog.String("journal_entry_id", journalEntryID))
		c.JSON(statusFromError(err), gin.H{"error": err.Error()})
		return
	}

	logger.Info("Journal entry reversed",
		slog.String("journal_entry_id", journalEntryID),
		slog.String("reversal_journal_id", reversal.JournalEntryID),
	)
	c.JSON(http.StatusCreated, dto.ToJournalResponse(reversal))
}

// registerJournalRoutes registers journal specific routes
func registerJournalRoutes(group *gin.RouterGroup, services *portssvc.ServiceContainer) {
	journalHandler := newJournalHandler(services.Journal)

	journals := group.Group("/journals")
	{
		journals.POST("", journalHandler.createJournal)
		journals.GET("", journalHandler.listJournals)
		journals.GET("/:journalEntryID", journalHandler.getJournal)
		journals.GET("/:journalEntryID/validation", journalHandler.validateJournal)
		journals.POST("/:journalEntryID/post", journalHandler.postJournal)
		journals.POST("/:journalEntryID/reverse", journalHandler.reverseJournal)
	}
}
