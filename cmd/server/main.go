// cmd/server/main.go
package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/aikya/companion/internal/backend"
	"github.com/aikya/companion/internal/config"
	"github.com/aikya/companion/internal/dashboard"
	"github.com/aikya/companion/internal/db"
	"github.com/aikya/companion/internal/email"
	"github.com/aikya/companion/internal/notify"
	"github.com/aikya/companion/internal/ratelimit"
	"github.com/aikya/companion/internal/scheduler"
	"github.com/aikya/companion/internal/search"
	"github.com/aikya/companion/internal/session"
)

const shutdownTimeout = 30 * time.Second

func setupLogger(cfg *config.Config) {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if cfg.Features.EnableDebug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	if cfg.IsDevelopment() {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}
}

func main() {
	configPath := flag.String("config", "config.yaml", "path to the YAML configuration file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal().Err(err).Str("config", *configPath).Msg("Failed to load configuration")
	}

	setupLogger(cfg)

	database, err := db.NewFromConfig(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open database")
	}
	defer database.Close()

	client := backend.NewClient(cfg.Backend.URL, cfg.Backend.Timeout)
	if !client.Configured() {
		log.Warn().Msg("Booking backend URL not configured; dashboard and search are disabled")
	}

	deps := &dependencies{
		config:    cfg,
		database:  database,
		backend:   client,
		dashboard: dashboard.NewController(client),
		sessions: session.NewStore(client, search.Options{
			Debounce:       cfg.Search.Debounce,
			MinQueryLength: cfg.Search.MinQueryLength,
		}),
		sender: notify.NewSender(database.Queries, notify.Options{
			VAPIDPublicKey:  cfg.Push.VAPIDPublicKey,
			VAPIDPrivateKey: cfg.Push.VAPIDPrivateKey,
			Subject:         cfg.Push.Subject,
			TTL:             cfg.Push.TTL,
		}),
		limiter: ratelimit.New(&ratelimit.Config{
			Window:       cfg.RateLimit.Window,
			MaxPerWindow: cfg.RateLimit.SubscribeMax,
			TrustProxy:   cfg.RateLimit.TrustProxy,
		}),
	}
	defer deps.limiter.Close()

	if cfg.Features.EnableDigest && cfg.DigestEmailEnabled() {
		mailer, err := email.NewSESClient(context.Background(),
			cfg.Email.AccessKeyID, cfg.Email.SecretAccessKey, cfg.Email.Region, cfg.Email.Sender)
		if err != nil {
			log.Warn().Err(err).Msg("Digest email disabled")
		} else {
			deps.mailer = mailer
		}
	}

	if err := startScheduler(deps); err != nil {
		log.Fatal().Err(err).Msg("Failed to start scheduler")
	}
	defer func() {
		if err := scheduler.Stop(); err != nil {
			log.Error().Err(err).Msg("Scheduler shutdown failed")
		}
	}()

	server := newServer(deps)

	// Setup graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)

	// Initial dashboard load
	g.Go(func() error {
		deps.dashboard.Refresh(log.Logger.WithContext(ctx))
		return nil
	})

	g.Go(func() error {
		log.Info().Int("port", cfg.App.Port).Msg("Starting server")
		if err := server.ListenAndServe(); err != http.ErrServerClosed {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	// Wait for interrupt signal
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		log.Info().Msg("Shutting down server")
		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown error: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		log.Error().Err(err).Msg("Server terminated with error")
		os.Exit(1)
	}
}

func startScheduler(deps *dependencies) error {
	if err := scheduler.Init(); err != nil {
		return err
	}
	svc, err := scheduler.ServiceInstance()
	if err != nil {
		return err
	}

	cfg := deps.config
	jobs := scheduler.Jobs{
		Dashboard: deps.dashboard,
		Sessions:  deps.sessions,
	}
	if cfg.Features.EnableDigest && (deps.sender.Configured() || deps.mailer != nil) {
		jobs.Digest = deps.sendDigest
	}

	if err := scheduler.RegisterJobs(svc, scheduler.Schedules{
		DashboardRefresh: cfg.Scheduler.DashboardRefresh,
		Digest:           cfg.Scheduler.Digest,
		SessionSweep:     cfg.Scheduler.SessionSweep,
		SessionIdle:      cfg.Scheduler.SessionIdle,
	}, jobs); err != nil {
		return err
	}
	return scheduler.Start()
}
