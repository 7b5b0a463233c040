// File: cmd/app/main.go
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"referral-backend/internal/config"
	"referral-backend/internal/domain/ports/adapter"
	"referral-backend/internal/domain/ports/lock"
	"referral-backend/internal/domain/ports/repository"
	pg "referral-backend/internal/infra/db/postgres"
	"referral-backend/internal/infra/locking"
	"referral-backend/internal/infra/logging"
	"referral-backend/internal/infra/metrics"
	"referral-backend/internal/infra/notify"
	red "referral-backend/internal/infra/redis"
	"referral-backend/internal/infra/storage/jsonfile"
	"referral-backend/internal/infra/web"
	"referral-backend/internal/usecase"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found or error loading .env file:", err)
	}

	// ---- CLI flags ----
	cfgPath := flag.String("config", "config.yaml", "path to YAML config file")
	devMode := flag.Bool("dev", false, "enable developer mode")
	flag.Parse()

	cfg, err := config.LoadConfig(*cfgPath, *devMode)
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger := logging.New(cfg.Log, cfg.Runtime.Dev)
	metrics.MustRegister()

	// ---- Record store ----
	var (
		codesRepo repository.ReferralCodeRepository
		leadsRepo repository.LeadRepository
	)
	switch cfg.Storage.Backend {
	case "postgres":
		pool, err := pg.NewPgxPool(ctx, cfg.Storage.DatabaseURL)
		if err != nil {
			log.Fatalf("postgres: %v", err)
		}
		defer pool.Close()
		if err := pg.EnsureSchema(ctx, pool); err != nil {
			log.Fatalf("postgres: %v", err)
		}
		codesRepo = pg.NewReferralCodeRepo(pool)
		leadsRepo = pg.NewLeadRepo(pool)
		logger.Info().Msg("storage backend: postgres")
	default:
		codesRepo = jsonfile.NewReferralCodeRepo(cfg.Storage.CodesFile, logger)
		leadsRepo = jsonfile.NewLeadRepo(cfg.Storage.LeadsFile, logger)
		logger.Info().Str("codes", cfg.Storage.CodesFile).Str("leads", cfg.Storage.LeadsFile).
			Msg("storage backend: file")
	}

	// ---- Collection lock ----
	var locker lock.Locker
	if cfg.Lock.Backend == "redis" {
		redisClient, err := red.NewClient(ctx, &cfg.Lock.Redis)
		if err != nil {
			log.Fatalf("redis: %v", err)
		}
		defer redisClient.Close()
		locker = red.NewLocker(redisClient, cfg.Lock.TTL)
		logger.Info().Msg("collection lock: redis")
	} else {
		locker = locking.NewMemoryLocker()
	}

	// ---- Notifier ----
	var notifier adapter.Notifier
	switch cfg.Notifier.Transport {
	case "smtp":
		notifier = notify.NewSMTP(cfg.Notifier.SMTP, cfg.Notifier.Receiver, logger)
	case "none":
		notifier = notify.NewNoop(logger)
	default:
		mg := cfg.Notifier.Mailgun
		if mg.APIKey == "" || mg.Domain == "" || cfg.Notifier.Receiver == "" {
			logger.Warn().Msg("mailgun configuration incomplete; email notifications will be dropped")
		}
		notifier = notify.NewMailgun(mg, cfg.Notifier.Receiver, logger)
	}

	// ---- Use cases ----
	referralUC := usecase.NewReferralUseCase(codesRepo, locker, notifier, cfg.Notifier.Timeout, logger)
	leadUC := usecase.NewLeadUseCase(leadsRepo, locker, notifier, cfg.Notifier.Timeout, logger)

	// ---- HTTP server ----
	srv := web.NewServer(referralUC, leadUC, cfg.Server.CORSOrigins, logger)
	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: srv.Router(),
	}
	go func() {
		logger.Info().Str("addr", server.Addr).Msg("http server listening")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error().Err(err).Msg("http server error")
		}
	}()

	// ---- Graceful shutdown ----
	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGINT, syscall.SIGTERM)
	<-sigc
	logger.Info().Msg("shutdown requested")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("http server shutdown")
	}
	cancel()
}
