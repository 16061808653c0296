package handlers

import (
	"log/slog"
	"time"

	"github.com/SscSPs/ipo_ledger/cmd/docs"
	portssvc "github.com/SscSPs/ipo_ledger/internal/core/ports/services"
	"github.com/SscSPs/ipo_ledger/internal/middleware"
	"github.com/SscSPs/ipo_ledger/internal/platform/config"
	"github.com/SscSPs/ipo_ledger/internal/utils"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"
)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces.
// db may be nil, in which case the health check does not ping the database.
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
	tracker *utils.PosthogClientWrapper,
	db Pinger,
) {
	RegisterValidators()

	// cors.New panics on an empty origin list.
	if len(cfg.CORSAllowedOrigins) > 0 {
		r.Use(cors.New(cors.Config{
			AllowOrigins:     cfg.CORSAllowedOrigins,
			AllowMethods:     []string{"GET", "POST", "PUT", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
			ExposeHeaders:    []string{"Content-Length"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}))
	}

	r.GET("/health", getHealth(db))

	setupAPIV1Routes(r, cfg, services, tracker)

	setupSwaggerRoutes(r, cfg)
}

// setupAPIV1Routes configures the /api/v1 group and delegates to specific entity route registrations.
func setupAPIV1Routes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
	tracker *utils.PosthogClientWrapper,
) {
	v1 := r.Group("/api/v1", newRateLimiter(cfg.RateLimit), middleware.AuthMiddleware(cfg.JWTSecret), middleware.PosthogMiddleware(tracker))
	admin := v1.Group("/admin", middleware.RequireRole(utils.RoleAdmin))

	registerCurrencyRoutes(v1, admin, services.Currency, services.CurrencyRate)
	registerAccountRoutes(v1, services.Account, services.Balance, services.Currency)
	registerDepositRoutes(v1, admin, services.Deposit)
	registerIPORoutes(v1, admin, services.IPO, services.Allocation, services.Settlement)
	registerSubscriptionRoutes(v1, admin, services.Subscription)
	registerPortfolioRoutes(v1, services.Settlement)
}

// newRateLimiter builds a per-IP limiter from a formatted rate such as "100-M".
func newRateLimiter(formatted string) gin.HandlerFunc {
	rate, err := limiter.NewRateFromFormatted(formatted)
	if err != nil {
		slog.Warn("Invalid rate limit, falling back to 100-M", slog.String("rate", formatted), slog.String("error", err.Error()))
		rate, _ = limiter.NewRateFromFormatted("100-M")
	}
	return middleware.RateLimit(limiter.New(memory.NewStore(), rate))
}

// setupSwaggerRoutes configures the swagger documentation routes.
func setupSwaggerRoutes(r *gin.Engine, cfg *config.Config) {
	if cfg.IsProduction {
		//no swagger in prod
		return
	}
	docs.SwaggerInfo.BasePath = "/api/v1"
	swagger := r.Group("/swagger")
	swagger.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}
