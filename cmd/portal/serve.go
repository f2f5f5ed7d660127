// Copyright (c) 2026 TinyTales. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/taibuivan/tinytales/internal/analytics"
	"github.com/taibuivan/tinytales/internal/api"
	"github.com/taibuivan/tinytales/internal/content/book"
	"github.com/taibuivan/tinytales/internal/content/category"
	"github.com/taibuivan/tinytales/internal/content/influencer"
	"github.com/taibuivan/tinytales/internal/content/lesson"
	"github.com/taibuivan/tinytales/internal/content/playlist"
	"github.com/taibuivan/tinytales/internal/content/radio"
	"github.com/taibuivan/tinytales/internal/content/voice"
	"github.com/taibuivan/tinytales/internal/curation/featured"
	"github.com/taibuivan/tinytales/internal/platform/audit"
	"github.com/taibuivan/tinytales/internal/platform/backend"
	"github.com/taibuivan/tinytales/internal/platform/constants"
	"github.com/taibuivan/tinytales/internal/platform/migration"
	pgstore "github.com/taibuivan/tinytales/internal/platform/postgres"
	redisstore "github.com/taibuivan/tinytales/internal/platform/redis"
	"github.com/taibuivan/tinytales/internal/platform/sec"
	"github.com/taibuivan/tinytales/internal/session"
)

// startupTimeout bounds connecting to Redis and PostgreSQL so misconfiguration
// fails quickly instead of hanging.
const startupTimeout = 30 * time.Second

func newServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the admin portal HTTP server",
		Long: `Start the admin portal.

# Startup Sequence

 1. Initialize structured logger and load configuration.
 2. Build the backend client and load the backend public key.
 3. Connect to Redis.
 4. Connect to PostgreSQL and run migrations, when the audit trail is enabled.
 5. Wire screen services and handlers.
 6. Start HTTP server with graceful shutdown.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context())
		},
	}
}

func runServe(ctx context.Context) error {
	// ── 1. Logger and configuration ──────────────────────────────────────
	cfg, log, err := bootstrap()
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}

	startupCtx, startupCancel := context.WithTimeout(ctx, startupTimeout)
	defer startupCancel()

	// ── 2. Backend ────────────────────────────────────────────────────────
	client, err := backend.NewClient(cfg.BackendURL, backend.Options{
		Timeout:  cfg.BackendTimeout,
		RPS:      cfg.BackendRPS,
		Burst:    cfg.BackendBurst,
		PageSize: cfg.BackendPageSize,

		ImageMaxWidth: cfg.ImageMaxWidth,
	})
	if err != nil {
		return fmt.Errorf("configure backend client: %w", err)
	}

	verifier, err := sec.NewTokenVerifier(cfg.JWTPubKeyPath, cfg.JWTIssuer)
	if err != nil {
		return fmt.Errorf("load backend public key: %w", err)
	}

	// ── 3. Redis ──────────────────────────────────────────────────────────
	rdb, err := redisstore.NewClient(startupCtx, cfg.RedisURL, log)
	if err != nil {
		return fmt.Errorf("connect to redis: %w", err)
	}
	defer func() {
		log.Info("closing_redis_client")
		if cerr := rdb.Close(); cerr != nil {
			log.Error("redis_close_failed", slog.Any("error", cerr))
		}
	}()

	// ── 4. Audit trail (optional) ─────────────────────────────────────────
	health := api.HealthDependencies{
		CheckBackend: client.Ping,
		CheckCache: func(ctx context.Context) error {
			return redisstore.Ping(ctx, rdb)
		},
	}

	var recorder audit.Recorder = audit.Nop{}
	if cfg.AuditEnabled() {
		pool, err := pgstore.NewPool(startupCtx, cfg.DatabaseURL, log)
		if err != nil {
			return fmt.Errorf("connect to postgres: %w", err)
		}
		defer func() {
			log.Info("closing_postgres_pool")
			pool.Close()
		}()

		if err := migration.RunUp(cfg.DatabaseURL, cfg.MigrationPath, log); err != nil {
			return fmt.Errorf("run migrations: %w", err)
		}

		recorder = audit.NewPostgresRecorder(pool)
		health.CheckDatabase = func(ctx context.Context) error {
			return pgstore.Ping(ctx, pool)
		}
	}

	liveness, readiness := api.NewHealthHandlers(health, log)

	// ── 5. Screen Wiring ──────────────────────────────────────────────────
	uploadLimit := cfg.MaxUploadBytes()

	draftStore := featured.NewRedisDraftStore(rdb, cfg.DraftTTL)

	sessionService := session.NewService(
		session.NewBackendAuthenticator(client),
		verifier,
		session.NewRedisStore(rdb),
		cfg.SessionTTL,
		recorder,
		log,
		draftStore,
	)

	featuredService := featured.NewService(
		featured.NewBackendCatalog(client),
		draftStore,
		recorder,
		featured.Options{Batch: cfg.FeaturedBatchSave},
		log,
	)

	handlers := api.Handlers{
		Liveness:  liveness,
		Readiness: readiness,
		Session: session.NewHandler(sessionService, session.CookieOptions{
			Name:   cfg.SessionCookie,
			Secure: !cfg.IsDevelopment(),
		}),
		Books:       book.NewHandler(book.NewService(book.NewBackendRepository(client), recorder, log), uploadLimit),
		Playlists:   playlist.NewHandler(playlist.NewService(playlist.NewBackendRepository(client), recorder, log), uploadLimit),
		Lessons:     lesson.NewHandler(lesson.NewService(lesson.NewBackendRepository(client), recorder, log), uploadLimit),
		Categories:  category.NewHandler(category.NewService(category.NewBackendRepository(client), recorder, log)),
		Voices:      voice.NewHandler(voice.NewService(voice.NewBackendRepository(client), recorder, log), uploadLimit),
		Influencers: influencer.NewHandler(influencer.NewService(influencer.NewBackendRepository(client), recorder, log)),
		Radio:       radio.NewHandler(radio.NewService(radio.NewBackendRepository(client), recorder, log), uploadLimit),
		Featured:    featured.NewHandler(featuredService),
		Analytics:   analytics.NewHandler(analytics.NewService(analytics.NewBackendSource(client), log)),
		Audit:       audit.NewHandler(recorder),
	}

	// ── 6. HTTP Server ────────────────────────────────────────────────────
	csrfKey, err := cfg.CSRFAuthKey()
	if err != nil {
		return err
	}
	if cfg.CSRFKey == "" {
		log.Warn("csrf_key_generated", slog.String("reason", "CSRF_KEY unset, form tokens reset on restart"))
	}

	serverCtx, serverCancel := context.WithCancel(ctx)
	defer serverCancel()

	server := api.NewServer(serverCtx, cfg, log, sessionService, csrfKey, handlers)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)
	defer signal.Stop(quit)

	serverErr := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	// Block until OS signal or server error.
	select {
	case sig := <-quit:
		log.Info("shutdown_signal_received", slog.String("signal", sig.String()))
	case err := <-serverErr:
		return fmt.Errorf("start server: %w", err)
	}

	log.Info("shutting_down_server", slog.Duration("timeout", constants.ShutdownTimeout))

	if err := server.Shutdown(constants.ShutdownTimeout); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}

	log.Info("server_stopped")
	return nil
}
