package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sebuszqo/SeasonLedger/internal/auth"
	"github.com/sebuszqo/SeasonLedger/internal/config"
	database "github.com/sebuszqo/SeasonLedger/internal/db"
	"github.com/sebuszqo/SeasonLedger/internal/finance/application"
	"github.com/sebuszqo/SeasonLedger/internal/finance/infrastructure"
	"github.com/sebuszqo/SeasonLedger/internal/finance/interfaces"
	"github.com/sebuszqo/SeasonLedger/internal/log"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

func main() {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	level, _ := log.ParseLevel(cfg.LogLevel)
	logger := log.New(log.Config{
		Level:     level,
		Component: log.ComponentApp,
		Output:    os.Stdout,
		JSON:      cfg.LogFormat == "json",
	})
	log.SetDefault(logger)

	if err := run(cfg, logger); err != nil {
		logger.Error("Server stopped with error", log.FieldError, err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger *log.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Amounts are JSON numbers on the wire.
	decimal.MarshalJSONWithoutQuotes = true

	if err := database.RunMigrations(cfg.DBConnectionString); err != nil {
		return fmt.Errorf("could not run migrations: %w", err)
	}
	logger.Info("Database migrations applied", log.FieldOperation, log.OpMigrate)

	dbService, err := database.NewDBService(ctx, cfg.DBConnectionString)
	if err != nil {
		return fmt.Errorf("could not initialize database: %w", err)
	}
	defer dbService.Close()

	jwtManager, err := auth.NewJWTManager(cfg.JWTSecret)
	if err != nil {
		return err
	}
	credentialRepo := auth.NewCredentialRepository(dbService.DB)
	authService := auth.NewAuthService(credentialRepo, jwtManager, logger)

	result, err := authService.EnsureAdmin(ctx, cfg.DefaultAdminPassword)
	if err != nil {
		return fmt.Errorf("could not bootstrap admin account: %w", err)
	}
	logger.Info("Admin account ready",
		log.FieldOperation, log.OpBootstrap,
		log.FieldUsername, auth.AdminUsername,
		"result", string(result),
	)

	authHandler := auth.NewHandler(authService, respondJSON, respondError)
	loginLimiter := auth.NewLoginRateLimiter(cfg.LoginRateLimit, cfg.LoginRateBurst, respondError)
	evictionScheduler, err := loginLimiter.StartEviction()
	if err != nil {
		return fmt.Errorf("could not start rate limiter scheduler: %w", err)
	}
	defer evictionScheduler.Stop()

	categoryService := application.NewCategoryService(infrastructure.NewCategoryRepository(dbService.DB))
	categoryHandler := interfaces.NewCategoryHandler(categoryService, respondJSON, respondError)

	seasonService := application.NewSeasonService(infrastructure.NewSeasonRepository(dbService.DB))
	seasonHandler := interfaces.NewSeasonHandler(seasonService, respondJSON, respondError)

	transactionService := application.NewPersonalTransactionService(infrastructure.NewPersonalTransactionRepository(dbService.DB))
	transactionHandler := interfaces.NewPersonalTransactionHandler(transactionService, respondJSON, respondError)

	server := NewServer(logger, dbService, authHandler, authService, loginLimiter, categoryHandler, seasonHandler, transactionHandler)
	server.RegisterRoutes()

	httpServer := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           server.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("Server starting", log.FieldOperation, log.OpStartup, "addr", httpServer.Addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("Shutting down server", log.FieldOperation, log.OpShutdown)
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		return httpServer.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
