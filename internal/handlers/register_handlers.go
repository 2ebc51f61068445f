package handlers

import (
	"net/http"

	"github.com/SscSPs/ledger_engine/cmd/docs"
	portssvc "github.com/SscSPs/ledger_engine/internal/core/ports/services"
	"github.com/SscSPs/ledger_engine/internal/middleware"
	"github.com/SscSPs/ledger_engine/internal/platform/config"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) error {
	if err := RegisterValidators(); err != nil {
		return err
	}

	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})
	r.GET("/metrics", middleware.MetricsHandler())

	setupAPIV1Routes(r, cfg, services)
	setupSwaggerRoutes(r, cfg)
	return nil
}

// setupAPIV1Routes configures the /api/v1 group. Every ledger route is scoped to a
// workplace the caller has been granted.
func setupAPIV1Routes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) {
	v1 := r.Group("/api/v1",
		middleware.APIKeyAuth(cfg.ServiceAPIKeyHash),
		middleware.AuthMiddleware(cfg.JWTSecret),
	)
	RegisterWorkplaceRoutes(v1, services)
}

// RegisterWorkplaceRoutes mounts the ledger routes under /workplaces/:workplaceID.
func RegisterWorkplaceRoutes(rg *gin.RouterGroup, services *portssvc.ServiceContainer) {
	ws := rg.Group("/workplaces/:"+workplaceIDParam, middleware.RequireWorkplaceAccess(workplaceIDParam))

	RegisterAccountRoutes(ws, services.Account)
	RegisterJournalRoutes(ws, services.Journal, services.Events)
	RegisterFiscalPeriodRoutes(ws, services.FiscalPeriod, services.Events)
	RegisterReportingRoutes(ws, services.Reporting)
}

// setupSwaggerRoutes configures the swagger documentation routes
func setupSwaggerRoutes(r *gin.Engine, cfg *config.Config) {
	if cfg.IsProduction {
		//no swagger in prod
		return
	}
	docs.SwaggerInfo.BasePath = "/api/v1"
	swagger := r.Group("/swagger")
	swagger.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}
