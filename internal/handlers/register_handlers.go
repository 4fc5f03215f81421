package handlers

import (
	portssvc "github.com/finledger/bank_recon_app/internal/core/ports/services"
	"github.com/finledger/bank_recon_app/internal/middleware"
	"github.com/finledger/bank_recon_app/pkg/config"
	"github.com/gin-gonic/gin"
)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) {
	// Add health check route
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	setupAPIV1Routes(r, cfg, services)
}

// setupAPIV1Routes configures the /api/v1 group and delegates to specific entity route registrations
func setupAPIV1Routes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) {
	// Every v1 route operates in the context of one tenant
	v1 := r.Group("/api/v1", middleware.TenantResolutionMiddleware())

	registerJournalRoutes(v1, services)
	registerBankStatementRoutes(v1, services)
	registerFiscalPeriodRoutes(v1, services)
	registerExchangeRateRoutes(v1, services)
	registerReconciliationRoutes(v1, services)
	registerRevaluationRoutes(v1, services)
}
