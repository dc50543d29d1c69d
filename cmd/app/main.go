package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"seller-marketplace/internal/config"
	"seller-marketplace/internal/infra/api"
	pg "seller-marketplace/internal/infra/db/postgres"
	"seller-marketplace/internal/infra/logging"
	"seller-marketplace/internal/infra/metrics"
	red "seller-marketplace/internal/infra/redis"
	"seller-marketplace/internal/infra/session"
	"seller-marketplace/internal/infra/storage"
	"seller-marketplace/internal/usecase"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// ---- CLI flags ----
	cfgPath := flag.String("config", "config.yaml", "path to YAML config file")
	devMode := flag.Bool("dev", false, "enable developer mode (console logging, no redaction)")
	flag.Parse()

	cfg, err := config.LoadConfig(*cfgPath, *devMode)
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger := logging.New(cfg.Log, cfg.Runtime.Dev)
	if cfg.Runtime.Dev {
		logger.Info().Msg("developer mode enabled")
	}

	metrics.MustRegister()

	// ---- Postgres ----
	pool, err := pg.NewPgxPool(ctx, cfg.Database.URL, int32(cfg.Database.MaxConns))
	if err != nil {
		log.Fatalf("postgres: %v", err)
	}
	defer pool.Close()

	// ---- Redis ----
	redisClient, err := red.NewClient(ctx, &cfg.Redis)
	if err != nil {
		log.Fatalf("redis: %v", err)
	}
	defer redisClient.Close()
	rateLimiter := red.NewRateLimiter(redisClient)

	// ---- Repositories ----
	codeRepo := pg.NewSellerCodeRepo(pool)
	profileRepo := pg.NewProfileRepo(pool)
	listingRepo := pg.NewListingRepo(pool)
	reportRepo := pg.NewReportRepo(pool)
	tm := pg.NewTxManager(pool)

	// ---- Adapters ----
	sessions := session.NewIssuer(cfg.Auth.HMACSecret, cfg.Auth.SessionTTL, cfg.Auth.SessionBase)
	blobs := storage.NewSignedURLStore(cfg.Storage)

	// ---- Use cases ----
	binder := usecase.NewIdentityBinder(profileRepo)
	codeUC := usecase.NewSellerCodeUseCase(codeRepo, binder, sessions, tm, logger)
	reportUC := usecase.NewReportUseCase(reportRepo, profileRepo, listingRepo, rateLimiter,
		cfg.RateLimit.ReportLimit, cfg.RateLimit.ReportWindow, logger)
	listingUC := usecase.NewListingUseCase(listingRepo, logger)
	mediaUC := usecase.NewMediaUseCase(listingRepo, blobs, logger)

	// ---- HTTP ----
	srv := api.NewServer(codeUC, reportUC, listingUC, mediaUC, sessions, rateLimiter,
		api.RateLimits{
			ReportLimit:  cfg.RateLimit.ReportLimit,
			ReportWindow: cfg.RateLimit.ReportWindow,
			ClaimLimit:   cfg.RateLimit.ClaimLimit,
			ClaimWindow:  cfg.RateLimit.ClaimWindow,
		},
		cfg.Auth.AdminAPIKey, logger)

	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: srv.Router(cfg.Server.RequestTimeout),
	}
	go func() {
		logger.Info().Str("addr", server.Addr).Msg("http listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error().Err(err).Msg("http server error")
		}
	}()

	// ---- Graceful shutdown ----
	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGINT, syscall.SIGTERM)
	<-sigc
	logger.Info().Msg("shutdown requested")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("http shutdown")
	}
	cancel()
}
