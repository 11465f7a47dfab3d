package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/SscSPs/bank_ledger_app/cmd/docs"
	portssvc "github.com/SscSPs/bank_ledger_app/internal/core/ports/services"
	"github.com/SscSPs/bank_ledger_app/internal/middleware"
	"github.com/SscSPs/bank_ledger_app/internal/platform/config"
)

// APIBasePath prefixes every authenticated route.
const APIBasePath = "/api/v1/bank"

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces.
// Extra middleware runs after authentication so it can see the caller.
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
	authed ...gin.HandlerFunc,
) {
	registerValidators()

	// Add health check route
	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})

	// Setup API routes with Auth Middleware, passing service interfaces
	setupAPIRoutes(r, cfg, services, authed)

	// Swagger routes (typically public or conditionally available)
	setupSwaggerRoutes(r, cfg)
}

// setupAPIRoutes configures the API group and delegates to specific entity route registrations
func setupAPIRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
	authed []gin.HandlerFunc,
) {
	chain := append([]gin.HandlerFunc{middleware.AuthMiddleware(cfg.JWTSecret, cfg.JWTIssuer)}, authed...)
	api := r.Group(APIBasePath, chain...)

	registerTransactionRoutes(api, services.Movement)
	registerReportingRoutes(api, services.Reporting)
	registerAccountRoutes(api, services.Account)
	registerFavoriteRoutes(api, services.Favorite, services.Movement)
	registerProductRoutes(api, services.Product)
	registerExchangeRateRoutes(api, services.ExchangeRate)
}

// setupSwaggerRoutes configures the swagger documentation routes
func setupSwaggerRoutes(r *gin.Engine, cfg *config.Config) {
	if cfg.IsProduction {
		//no swagger in prod
		return
	}
	docs.SwaggerInfo.BasePath = APIBasePath
	swagger := r.Group("/swagger")
	swagger.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}
