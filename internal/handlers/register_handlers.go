package handlers

import (
	"log/slog"
	"time"

	"github.com/atelierops/shop_ledger_app/cmd/docs"
	"github.com/atelierops/shop_ledger_app/internal/core/domain"
	portssvc "github.com/atelierops/shop_ledger_app/internal/core/ports/services"
	"github.com/atelierops/shop_ledger_app/internal/middleware"
	"github.com/atelierops/shop_ledger_app/internal/platform/config"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) {
	registerCustomValidators()

	r.Use(buildCORS(cfg))

	// Add health check route
	r.GET("/health", func(c *gin.Context) {
		c.String(200, "OK")
	})

	// Setup API v1 routes with auth middleware, passing service interfaces
	setupAPIV1Routes(r, cfg, services)

	// Swagger routes (typically public or conditionally available)
	setupSwaggerRoutes(r, cfg)
}

// setupAPIV1Routes configures the /api/v1 group and delegates to specific entity route registrations
func setupAPIV1Routes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) {
	// Service key auth runs first; requests it authenticates skip the JWT check.
	v1 := r.Group("/api/v1",
		middleware.ServiceKeyAuth(cfg.ServiceAPIKeyHash),
		middleware.AuthMiddleware(cfg.JWTSecret, cfg.JWTIssuer),
	)

	moneyRateLimit := buildMoneyRateLimit(cfg)

	// Delegate route registration to specific handlers, passing required services
	registerAccountRoutes(v1, services.Account, services.Ledger)
	registerTransactionRoutes(v1, services.Transaction)
	registerLiquidationRoutes(v1, services.Liquidation, moneyRateLimit)
	registerExpenseRoutes(v1, services.Expense, services.Adjustment, moneyRateLimit)
	registerReportingRoutes(v1, services.Reporting)
}

// registerCustomValidators installs the paymentmethod binding tag the
// transaction and expense DTOs rely on.
func registerCustomValidators() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		slog.Warn("Gin binding validator engine unavailable, paymentmethod tag not registered")
		return
	}
	err := v.RegisterValidation("paymentmethod", func(fl validator.FieldLevel) bool {
		return domain.PaymentMethod(fl.Field().String()).Valid()
	})
	if err != nil {
		slog.Error("Failed to register paymentmethod validator", slog.String("error", err.Error()))
	}
}

// buildCORS builds the CORS middleware from the configured origins.
func buildCORS(cfg *config.Config) gin.HandlerFunc {
	corsCfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "x-api-key"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}
	if len(cfg.CORSAllowedOrigins) == 1 && cfg.CORSAllowedOrigins[0] == "*" {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = cfg.CORSAllowedOrigins
	}
	return cors.New(corsCfg)
}

// buildMoneyRateLimit builds the per-IP rate limit applied to money-mutating
// endpoints (liquidations, adjustments, reverts, refunds).
func buildMoneyRateLimit(cfg *config.Config) gin.HandlerFunc {
	limiterInstance, err := middleware.NewMemoryRateLimiter(cfg.RateLimit)
	if err != nil {
		slog.Warn("Invalid RATE_LIMIT value, money endpoints will not be rate limited",
			slog.String("rate", cfg.RateLimit), slog.String("error", err.Error()))
		return func(c *gin.Context) { c.Next() }
	}
	return middleware.RateLimit(limiterInstance)
}

// setupSwaggerRoutes configures the swagger documentation routes
func setupSwaggerRoutes(r *gin.Engine, cfg *config.Config) {
	// Swagger setup
	if cfg.IsProduction {
		//no swagger in prod
		return
	}
	docs.SwaggerInfo.BasePath = "/api/v1"
	swagger := r.Group("/swagger")
	swagger.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}
