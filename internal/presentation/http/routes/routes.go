package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/sangkips/caixa-api/internal/config"
	domainRepo "github.com/sangkips/caixa-api/internal/domain/repository"
	"github.com/sangkips/caixa-api/internal/presentation/http/handler"
	"github.com/sangkips/caixa-api/internal/presentation/http/middleware"
	"github.com/sangkips/caixa-api/pkg/utils"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Auth    *handler.AuthHandler
	Caixa   *handler.CaixaHandler
	Receipt *handler.ReceiptHandler
	Report  *handler.ReportHandler
}

// Deps holds shared dependencies needed by the routes.
type Deps struct {
	JWTManager      *utils.JWTManager
	Cfg             *config.Config
	IdempotencyRepo domainRepo.IdempotencyRepository
	// Done stops background goroutines started by middleware.
	Done <-chan struct{}
}

// Setup creates the Gin router and registers all routes.
func Setup(h *Handlers, deps *Deps) *gin.Engine {
	router := gin.New()

	// Global middleware
	router.Use(gin.Recovery())
	router.Use(middleware.LoggerMiddleware())
	router.Use(middleware.CORSMiddleware(&deps.Cfg.CORS))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": deps.Cfg.App.Name,
		})
	})

	v1 := router.Group("/api/v1")
	{
		registerAuthRoutes(v1, h)

		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware(deps.JWTManager))

		// Per-operator rate limiter
		rateLimiter := middleware.NewOperatorRateLimiter(
			middleware.RateLimiterConfigFrom(deps.Cfg.RateLimit.Requests, deps.Cfg.RateLimit.Duration),
			deps.Done,
		)
		protected.Use(rateLimiter.Middleware())

		registerProtectedRoutes(protected, h, deps)
	}

	return router
}

func registerAuthRoutes(v1 *gin.RouterGroup, h *Handlers) {
	auth := v1.Group("/auth")
	{
		auth.POST("/login", h.Auth.Login)
		auth.POST("/register", h.Auth.Register)
		auth.POST("/refresh", h.Auth.RefreshToken)
	}
}

func registerProtectedRoutes(protected *gin.RouterGroup, h *Handlers, deps *Deps) {
	// Profile
	protected.GET("/profile", h.Auth.GetProfile)
	protected.PUT("/profile/password", h.Auth.ChangePassword)

	registerCaixaRoutes(protected, h, deps)

	// Printer
	protected.GET("/printer/status", h.Receipt.GetStatus)
}

func registerCaixaRoutes(protected *gin.RouterGroup, h *Handlers, deps *Deps) {
	// Record creation replays the stored response when an Idempotency-Key is resent
	idempotent := middleware.Idempotency(middleware.IdempotencyConfig{
		Repo: deps.IdempotencyRepo,
	})

	caixas := protected.Group("/caixas")
	{
		caixas.POST("", h.Caixa.Open)
		caixas.GET("", h.Caixa.List)
		caixas.GET("/current", h.Caixa.Current)
		caixas.GET("/:id", h.Caixa.Get)
		caixas.POST("/:id/close", h.Caixa.Close)

		caixas.POST("/:id/lancamentos", idempotent, h.Caixa.CreateLancamento)
		caixas.GET("/:id/lancamentos", h.Caixa.ListLancamentos)
		caixas.GET("/:id/lancamentos/:lid/recibo", h.Receipt.ReceiptPage)
		caixas.POST("/:id/lancamentos/:lid/recibo/print", h.Receipt.PrintReceipt)

		caixas.POST("/:id/sangrias", idempotent, h.Caixa.CreateSangria)
		caixas.GET("/:id/sangrias", h.Caixa.ListSangrias)

		caixas.GET("/:id/relatorio.pdf", h.Report.PDF)
		caixas.GET("/:id/relatorio.xlsx", h.Report.XLSX)
	}
}
