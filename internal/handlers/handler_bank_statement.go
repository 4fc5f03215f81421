package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/finledger/bank_recon_app/internal/core/ports/services"
	"github.com/finledger/bank_recon_app/internal/dto"
	"github.com/finledger/bank_recon_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// bankStatementHandler handles HTTP requests for statement imports.
type bankStatementHandler struct {
	statementService portssvc.BankStatementSvc
}

func newBankStatementHandler(statementService portssvc.BankStatementSvc) *bankStatementHandler {
	return &bankStatementHandler{
		statementService: statementService,
	}
}

// importStatement godoc
// @Summary Import a bank statement
// @Description Persists a parsed bank statement and its transactions for reconciliation
// @Tags bank-statements
// @Accept  json
// @Produce  json
// @Param   statement body dto.ImportStatementRequest true "Statement to import"
// @Success 201 {object} dto.StatementResponse
// @Failure 400 {object} map[string]string "Invalid request format"
// @Router /bank-statements [post]
func (h *bankStatementHandler) importStatement(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	importReq := dto.ImportStatementRequest{}
	if err := c.ShouldBindJSON(&importReq); err != nil {
		logger.Error("Failed to bind JSON for importStatement", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	tenantID, _ := middleware.GetTenantIDFromContext(c)
	userID, _ := middleware.GetUserIDFromContext(c)

	statement, err := h.statementService.ImportStatement(c.Request.Context(), tenantID, importReq, userID)
	if err != nil {
		logger.Warn("Failed to import bank statement", slog.String("error", err.Error()))
		c.JSON(statusFromError(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, dto.ToStatementResponse(statement))
}

// getStatement godoc
// @Summary Get a bank statement
// @Description Retrieves an imported statement with its transactions
// @Tags bank-statements
// @Produce  json
// @Param   statementID path string true "Statement ID"
// @Success 200 {object} dto.StatementResponse
// @Failure 404 {object} map[string]string "Statement not found"
// @Router /bank-statements/{statementID} [get]
func (h *bankStatementHandler) getStatement(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	statementID := c.Param("statementID")

	tenantID, _ := middleware.GetTenantIDFromContext(c)

	statement, err := h.statementService.GetStatementByID(c.Request.Context(), tenantID, statementID)
	if err != nil {
		logger.Warn("Failed to fetch bank statement", slog.String("statement_id", statementID), slog.String("error", err.Error()))
		c.JSON(statusFromError(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, dto.ToStatementResponse(statement))
}

// registerBankStatementRoutes registers statement import specific routes
func registerBankStatementRoutes(group *gin.RouterGroup, services *portssvc.ServiceContainer) {
	h := newBankStatementHandler(services.BankStatement)

	statements := group.Group("/bank-statements")
	statements.POST("", h.importStatement)
	statements.GET("/:statementID", h.getStatement)
}
