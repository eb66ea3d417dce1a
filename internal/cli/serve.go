package cli

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/fishledger/internal/application/service"
	"github.com/sangkips/fishledger/internal/infrastructure/repository"
	"github.com/sangkips/fishledger/internal/presentation/http/handler"
	"github.com/sangkips/fishledger/internal/presentation/http/middleware"
	"github.com/sangkips/fishledger/internal/presentation/http/routes"
	"github.com/sangkips/fishledger/pkg/clock"
	"github.com/sangkips/fishledger/pkg/utils"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const (
	shutdownTimeout          = 15 * time.Second
	idempotencySweepInterval = time.Hour
)

// NewServeCommand creates the serve command.
func NewServeCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Long: `Connect to the database, apply migrations and serve the ledger API on APP_PORT.

The server shuts down gracefully on SIGINT or SIGTERM.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(cmd.Context(), rootOpts)
		},
	}
}

func serve(parent context.Context, opts *RootOptions) error {
	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, log, err := loadConfig(opts)
	if err != nil {
		return wrap("load config", err)
	}
	defer func() { _ = log.Sync() }()

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	clk := clock.System{}

	db, err := openDatabase(cfg, clk, log)
	if err != nil {
		return wrap("database", err)
	}
	defer closeDatabase(db, log)

	jwtManager := utils.NewJWTManager(cfg.JWT.Secret, cfg.JWT.ExpiryHours)

	// Initialize repositories
	uow := repository.NewUnitOfWork(db)
	saleRepo := repository.NewSaleRepository(db)
	actionLogRepo := repository.NewActionLogRepository(db)
	idempotencyRepo := repository.NewIdempotencyRepository(db)

	// Initialize services
	saleService := service.NewSaleService(uow, saleRepo, clk, cfg.Ledger.MaxRetries, log.Named("sales"))
	settlementService := service.NewSettlementService(uow, cfg.Ledger.MaxRetries, log.Named("settlement"))
	compensationService := service.NewCompensationService(uow, cfg.Ledger.MaxRetries, log.Named("compensation"))
	auditService := service.NewAuditService(actionLogRepo)

	handlers := &routes.Handlers{
		Sale:         handler.NewSaleHandler(saleService),
		Settlement:   handler.NewSettlementHandler(settlementService),
		Compensation: handler.NewCompensationHandler(compensationService),
		Audit:        handler.NewAuditHandler(auditService),
	}

	router := routes.Setup(ctx, handlers, &routes.Deps{
		JWTManager:      jwtManager,
		Cfg:             cfg,
		IdempotencyRepo: idempotencyRepo,
		Clock:           clk,
		Log:             log.Named("http"),
	})

	go middleware.SweepIdempotencyKeys(ctx, idempotencyRepo, clk, idempotencySweepInterval, log.Named("idempotency"))

	port := cfg.App.Port
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("starting server",
			zap.String("service", cfg.App.Name),
			zap.String("port", port),
			zap.String("env", cfg.App.Env),
			zap.String("db_driver", cfg.Database.Driver),
		)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return wrap("server", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return wrap("shutdown", err)
	}
	return nil
}
