package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/finledger/bank_recon_app/internal/core/ports/services"
	"github.com/finledger/bank_recon_app/internal/dto"
	"github.com/finledger/bank_recon_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// exchangeRateHandler handles HTTP requests for rate administration.
type exchangeRateHandler struct {
	rateService portssvc.ExchangeRateSvc
}

func newExchangeRateHandler(rateService portssvc.ExchangeRateSvc) *exchangeRateHandler {
	return &exchangeRateHandler{
		rateService: rateService,
	}
}

// recordRate godoc
// @Summary Record an exchange rate
// @Description Stores one rate observation for a currency pair
// @Tags exchange-rates
// @Accept  json
// @Produce  json
// @Param   rate body dto.RecordExchangeRateRequest true "Rate observation"
// @Success 201 {object} dto.ExchangeRateResponse
// @Failure 400 {object} map[string]string "Invalid request format"
// @Router /exchange-rates [post]
func (h *exchangeRateHandler) recordRate(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	rateReq := dto.RecordExchangeRateRequest{}
	if err := c.ShouldBindJSON(&rateReq); err != nil {
		logger.Error("Failed to bind JSON for recordRate", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	userID, _ := middleware.GetUserIDFromContext(c)

	rate, err := h.rateService.RecordRate(c.Request.Context(), rateReq, userID)
	if err != nil {
		logger.Warn("Failed to record exchange rate", slog.String("error", err.Error()))
		c.JSON(statusFromError(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, dto.ToExchangeRateResponse(rate))
}

// registerExchangeRateRoutes registers exchange rate specific routes
func registerExchangeRateRoutes(group *gin.RouterGroup, services *portssvc.ServiceContainer) {
	h := newExchangeRateHandler(services.ExchangeRate)

	rates := group.Group("/exchange-rates")
	rates.POST("", h.recordRate)
}
