package routes

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/fishledger/internal/config"
	domainRepo "github.com/sangkips/fishledger/internal/domain/repository"
	"github.com/sangkips/fishledger/internal/presentation/http/handler"
	"github.com/sangkips/fishledger/internal/presentation/http/middleware"
	"github.com/sangkips/fishledger/pkg/clock"
	"github.com/sangkips/fishledger/pkg/utils"
	"go.uber.org/zap"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Sale         *handler.SaleHandler
	Settlement   *handler.SettlementHandler
	Compensation *handler.CompensationHandler
	Audit        *handler.AuditHandler
}

// Deps holds shared dependencies needed by the routes.
type Deps struct {
	JWTManager      *utils.JWTManager
	Cfg             *config.Config
	IdempotencyRepo domainRepo.IdempotencyRepository
	Clock           clock.Clock
	Log             *zap.Logger
}

// Setup creates the Gin router and registers all routes. Background work
// started for the router (rate limiter cleanup) stops when ctx is done.
func Setup(ctx context.Context, h *Handlers, deps *Deps) *gin.Engine {
	router := gin.New()

	// Global middleware
	router.Use(gin.Recovery())
	router.Use(middleware.LoggerMiddleware(deps.Log))
	router.Use(middleware.CORSMiddleware(&deps.Cfg.CORS))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"service": deps.Cfg.App.Name,
		})
	})

	v1 := router.Group("/api/v1")
	{
		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware(deps.JWTManager))

		requests := deps.Cfg.RateLimit.Requests
		window := deps.Cfg.RateLimit.Duration
		if window <= 0 {
			window = 1
		}
		rateLimiter := middleware.NewOwnerRateLimiter(ctx, middleware.RateLimiterConfig{
			RequestsPerSecond: float64(requests) / float64(window),
			BurstSize:         requests,
			CleanupInterval:   5 * time.Minute,
			EntryTTL:          10 * time.Minute,
		})
		protected.Use(rateLimiter.Middleware())
		protected.Use(middleware.Idempotency(middleware.IdempotencyConfig{
			Repo:  deps.IdempotencyRepo,
			Clock: deps.Clock,
			Log:   deps.Log,
		}))

		registerSaleRoutes(protected, h)
		registerLedgerRoutes(protected, h)
	}

	return router
}

func registerSaleRoutes(protected *gin.RouterGroup, h *Handlers) {
	protected.GET("/product-types", h.Sale.ProductTypes)

	sales := protected.Group("/sales")
	{
		sales.GET("", h.Sale.List)
		sales.POST("", h.Sale.Create)
		sales.GET("/:id", h.Sale.Get)
		sales.PUT("/:id", h.Sale.Edit)
		sales.DELETE("/:id", h.Sale.Delete)

		sales.POST("/:id/pay", h.Settlement.Pay)
		sales.POST("/:id/refund", h.Settlement.Refund)
		sales.POST("/:id/settle", h.Settlement.Settle)
		sales.POST("/:id/deliver", h.Settlement.Deliver)
	}
}

func registerLedgerRoutes(protected *gin.RouterGroup, h *Handlers) {
	protected.POST("/compensations", h.Compensation.Compensate)
	protected.GET("/action-logs", h.Audit.List)
}
