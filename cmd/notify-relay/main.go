package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sitecard/notify-relay/internal/api"
	"github.com/sitecard/notify-relay/internal/authz"
	"github.com/sitecard/notify-relay/internal/config"
	"github.com/sitecard/notify-relay/internal/dispatch"
	"github.com/sitecard/notify-relay/internal/handoff"
	"github.com/sitecard/notify-relay/internal/logger"
	"github.com/sitecard/notify-relay/internal/sender"
	"github.com/sitecard/notify-relay/internal/service"
	"github.com/sitecard/notify-relay/internal/storage"
)

func main() {
	// Load configuration
	cfg, err := config.Load("config")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log := logger.NewFromConfig(logger.LoggingConfig{
		Level:     cfg.Logging.Level,
		Output:    cfg.Logging.Output,
		FilePath:  cfg.Logging.FilePath,
		MaxSizeMB: cfg.Logging.MaxSizeMB,
		MaxFiles:  cfg.Logging.MaxFiles,
	})
	log.Info().Msg("starting notify-relay")

	key, err := cfg.SigningKey()
	if err != nil {
		log.Fatal().Err(err).Msg("invalid signing secret")
	}

	// Select the recipient store backend
	ctx := context.Background()
	var (
		store storage.RecipientStore
		db    *storage.DB
	)
	switch cfg.Storage.Backend {
	case "postgres":
		db, err = storage.NewDB(
			ctx,
			cfg.Database.URL,
			cfg.Database.PoolMin,
			cfg.Database.PoolMax,
			cfg.Database.ConnectTimeout,
		)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to database")
		}
		store = storage.NewPostgresStore(db)
		log.Info().Msg("database connection established")
	case "memory":
		store = storage.NewMemoryStore()
		log.Warn().Msg("using in-memory recipient store; authorizations do not survive restarts")
	default:
		log.Fatal().Str("backend", cfg.Storage.Backend).Msg("unknown storage backend")
	}
	defer store.Close()

	// Handoff protocol components
	codec, err := handoff.NewCodec(key)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize identifier codec")
	}
	tokens := handoff.NewTokens(key, cfg.Auth.TokenTTL)
	links := handoff.NewLinkBuilder(codec, tokens, cfg.Auth.BaseDomain)

	manager := authz.NewManager(store, log)

	// Delivery pipeline
	snd, err := sender.New(cfg.Sender.Kind, cfg.Sender.BotToken, cfg.Sender.Endpoint, sender.NewHTTPClient(cfg.Sender.SendTimeout))
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize sender")
	}
	log.Info().Str("sender", snd.GetName()).Msg("sender initialized")

	queue := dispatch.NewQueue()
	worker := dispatch.NewWorker(queue, snd, dispatch.Config{
		PollInterval:    cfg.Dispatch.PollInterval,
		SendTimeout:     cfg.Sender.SendTimeout,
		ShutdownTimeout: cfg.Dispatch.ShutdownTimeout,
	}, log)
	worker.Start(ctx)

	svc := service.New(codec, links, manager, queue, log)

	// Configure HTTP server. db is nil for the memory backend; readiness
	// then reflects process liveness only.
	var pinger api.Pinger
	if db != nil {
		pinger = db
	}
	router := api.NewRouter(svc, pinger, log)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		log.Info().Str("addr", addr).Msg("RPC server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	// Wait for shutdown signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	log.Info().Str("signal", sig.String()).Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
	}

	// Drain pending deliveries before closing the store.
	worker.Stop()

	log.Info().Msg("stopped")
}
