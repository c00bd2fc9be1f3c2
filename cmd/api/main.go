package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"github.com/sangkips/caixa-api/internal/application/service"
	"github.com/sangkips/caixa-api/internal/config"
	domainRepo "github.com/sangkips/caixa-api/internal/domain/repository"
	"github.com/sangkips/caixa-api/internal/infrastructure/database"
	"github.com/sangkips/caixa-api/internal/infrastructure/repository"
	"github.com/sangkips/caixa-api/internal/presentation/http/handler"
	"github.com/sangkips/caixa-api/internal/presentation/http/routes"
	"github.com/sangkips/caixa-api/pkg/format"
	"github.com/sangkips/caixa-api/pkg/logger"
	"github.com/sangkips/caixa-api/pkg/printer"
	"github.com/sangkips/caixa-api/pkg/utils"
)

const idempotencySweepInterval = time.Hour

func main() {
	// Load configuration
	cfg := config.Load()
	logger.Init(cfg.Log.Level, cfg.Log.Format)

	if err := format.SetLocation(cfg.App.Timezone); err != nil {
		log.Warn().Err(err).Str("timezone", cfg.App.Timezone).Msg("unknown timezone, keeping America/Sao_Paulo")
	}

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.Open(&cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}

	if err := database.AutoMigrate(db); err != nil {
		log.Fatal().Err(err).Msg("failed to run migrations")
	}

	if err := database.SeedAdmin(db, &cfg.Admin); err != nil {
		log.Warn().Err(err).Msg("failed to seed admin operator")
	}

	jwtManager := utils.NewJWTManager(
		cfg.JWT.Secret,
		cfg.JWT.ExpiryHours,
		cfg.JWT.RefreshExpiryHours,
	)

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	caixaRepo := repository.NewCaixaRepository(db)
	lancamentoRepo := repository.NewLancamentoRepository(db)
	sangriaRepo := repository.NewSangriaRepository(db)
	idempotencyRepo := repository.NewIdempotencyRepository(db)

	// Initialize thermal printer
	thermalPrinter, err := printer.New(printer.Options{
		Type:    cfg.Printer.Type,
		USBPath: cfg.Printer.USBPath,
		Address: cfg.Printer.Address,
	})
	if err != nil {
		log.Warn().Err(err).Msg("failed to initialize printer, receipts will not be printed")
		thermalPrinter = printer.NewNullPrinter()
	}
	defer thermalPrinter.Close()

	// Initialize services
	authService := service.NewAuthService(userRepo, jwtManager)
	caixaService := service.NewCaixaService(caixaRepo, lancamentoRepo, sangriaRepo)
	receiptService := service.NewReceiptService(thermalPrinter, lancamentoRepo, cfg.Printer.Width)
	reportService := service.NewReportService(caixaRepo, lancamentoRepo, sangriaRepo, userRepo, service.ReportOptions{
		LogoPath: cfg.Report.LogoPath,
		CacheTTL: cfg.Report.CacheTTL,
	})

	handlers := &routes.Handlers{
		Auth:    handler.NewAuthHandler(authService),
		Caixa:   handler.NewCaixaHandler(caixaService),
		Receipt: handler.NewReceiptHandler(receiptService),
		Report:  handler.NewReportHandler(reportService, authService),
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	router := routes.Setup(handlers, &routes.Deps{
		JWTManager:      jwtManager,
		Cfg:             cfg,
		IdempotencyRepo: idempotencyRepo,
		Done:            ctx.Done(),
	})

	go sweepIdempotencyKeys(ctx, idempotencyRepo)

	port := cfg.App.Port
	if port == "" {
		port = "8080"
	}

	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info().Str("app", cfg.App.Name).Str("env", cfg.App.Env).Str("port", port).Msg("starting server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown failed")
	}
}

// sweepIdempotencyKeys removes expired idempotency keys until ctx is done.
func sweepIdempotencyKeys(ctx context.Context, repo domainRepo.IdempotencyRepository) {
	ticker := time.NewTicker(idempotencySweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := repo.DeleteExpired(ctx); err != nil {
				log.Warn().Err(err).Msg("failed to delete expired idempotency keys")
			}
		}
	}
}
