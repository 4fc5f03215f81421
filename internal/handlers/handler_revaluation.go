package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/finledger/bank_recon_app/internal/core/ports/services"
	"github.com/finledger/bank_recon_app/internal/dto"
	"github.com/finledger/bank_recon_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// revaluationHandler handles HTTP requests for currency revaluation runs.
type revaluationHandler struct {
	revaluationService portssvc.RevaluationSvc
}

func newRevaluationHandler(revaluationService portssvc.RevaluationSvc) *revaluationHandler {
	return &revaluationHandler{
		revaluationService: revaluationService,
	}
}

// runRevaluation godoc
// @Summary Run a currency revaluation
// @Description Recomputes foreign-currency balances at current rates and books the unrealized gain or loss
// @Tags revaluations
// @Accept  json
// @Produce  json
// @Param   revaluation body dto.RunRevaluationRequest true "Revaluation parameters"
// @Success 200 {object} dto.RevaluationResponse
// @Failure 400 {object} map[string]string "Invalid request format"
// @Router /revaluations [post]
func (h *revaluationHandler) runRevaluation(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	runReq := dto.RunRevaluationRequest{}
	if err := c.ShouldBindJSON(&runReq); err != nil {
		logger.Error("Failed to bind JSON for runRevaluation", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	tenantID, _ := middleware.GetTenantIDFromContext(c)
	userID, _ := middleware.GetUserIDFromContext(c)

	result, err := h.revaluationService.RunRevaluation(c.Request.Context(), tenantID, runReq, userID)
	if err != nil {
		logger.Warn("Revaluation run failed", slog.String("error", err.Error()))
		c.JSON(statusFromError(err), gin.H{"error": err.Error()})
		return
	}

	logger.Info("Revaluation run completed",
		slog.Int("accounts", len(result.Lines)),
		slog.String("total_delta", result.TotalDelta.String()),
	)
	c.JSON(http.StatusOK, result)
}

// registerRevaluationRoutes registers revaluation specific routes
func registerRevaluationRoutes(group *gin.RouterGroup, services *portssvc.ServiceContainer) {
	h := newRevaluationHandler(services.Revaluation)

	revaluations := group.Group("/revaluations")
	revaluations.POST("", h.runRevaluation)
}
