package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/finledger/bank_recon_app/internal/core/ports/services"
	"github.com/finledger/bank_recon_app/internal/dto"
	"github.com/finledger/bank_recon_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// fiscalPeriodHandler handles HTTP requests for fiscal period administration.
type fiscalPeriodHandler struct {
	periodService portssvc.FiscalPeriodSvc
}

func newFiscalPeriodHandler(periodService portssvc.FiscalPeriodSvc) *fiscalPeriodHandler {
	return &fiscalPeriodHandler{
		periodService: periodService,
	}
}

// createFiscalPeriod godoc
// @Summary Create a fiscal period
// @Description Opens a new fiscal period for posting
// @Tags fiscal-periods
// @Accept  json
// @Produce  json
// @Param   period body dto.CreateFiscalPeriodRequest true "Period to create"
// @Success 201 {object} dto.FiscalPeriodResponse
// @Failure 400 {object} map[string]string "Invalid request format"
// @Router /fiscal-periods [post]
func (h *fiscalPeriodHandler) createFiscalPeriod(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	createReq := dto.CreateFiscalPeriodRequest{}
	if err := c.ShouldBindJSON(&createReq); err != nil {
		logger.Error("Failed to bind JSON for createFiscalPeriod", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	tenantID, _ := middleware.GetTenantIDFromContext(c)

	period, err := h.periodService.CreateFiscalPeriod(c.Request.Context(), tenantID, createReq)
	if err != nil {
		logger.Warn("Failed to create fiscal period", slog.String("error", err.Error()))
		c.JSON(statusFromError(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, dto.ToFiscalPeriodResponse(period))
}

// getFiscalPeriod godoc
// @Summary Get a fiscal period
// @Produce  json
// @Param   fiscalPeriodID path string true "Fiscal period ID"
// @Success 200 {object} dto.FiscalPeriodResponse
// @Failure 404 {object} map[string]string "Period not found"
// @Router /fiscal-periods/{fiscalPeriodID} [get]
func (h *fiscalPeriodHandler) getFiscalPeriod(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	fiscalPeriodID := c.Param("fiscalPeriodID")

	tenantID, _ := middleware.GetTenantIDFromContext(c)

	period, err := h.periodService.GetFiscalPeriodByID(c.Request.Context(), tenantID, fiscalPeriodID)
	if err != nil {
		logger.Warn("Failed to fetch fiscal period", slog.String("fiscal_period_id", fiscalPeriodID), slog.String("error", err.Error()))
		c.JSON(statusFromError(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, dto.ToFiscalPeriodResponse(period))
}

// updateFiscalPeriodStatus godoc
// @Summary Update fiscal period status
// @Description Transitions a period between open, closed and locked
// @Tags fiscal-periods
// @Accept  json
// @Produce  json
// @Param   fiscalPeriodID path string true "Fiscal period ID"
// @Param   status body dto.UpdateFiscalPeriodStatusRequest true "New status"
// @Success 200 {object} map[string]string
// @Failure 404 {object} map[string]string "Period not found"
// @Router /fiscal-periods/{fiscalPeriodID}/status [put]
func (h *fiscalPeriodHandler) updateFiscalPeriodStatus(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	fiscalPeriodID := c.Param("fiscalPeriodID")

	statusReq := dto.UpdateFiscalPeriodStatusRequest{}
	if err := c.ShouldBindJSON(&statusReq); err != nil {
		logger.Error("Failed to bind JSON for updateFiscalPeriodStatus", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	tenantID, _ := middleware.GetTenantIDFromContext(c)

	if err := h.periodService.UpdateFiscalPeriodStatus(c.Request.Context(), tenantID, fiscalPeriodID, statusReq.Status); err != nil {
		logger.Warn("Failed to update fiscal period status", slog.String("fiscal_period_id", fiscalPeriodID), slog.String("error", err.Error()))
		c.JSON(statusFromError(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": string(statusReq.Status)})
}

// registerFiscalPeriodRoutes registers fiscal period specific routes
func registerFiscalPeriodRoutes(group *gin.RouterGroup, services *portssvc.ServiceContainer) {
	h := newFiscalPeriodHandler(services.FiscalPeriod)

	periods := group.Group("/fiscal-periods")
	periods.POST("", h.createFiscalPeriod)
	periods.GET("/:fiscalPeriodID", h.getFiscalPeriod)
	periods.PUT("/:fiscalPeriodID/status", h.updateFiscalPeriodStatus)
}
