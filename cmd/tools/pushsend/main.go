// cmd/tools/pushsend/main.go
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/aikya/companion/internal/config"
	"github.com/aikya/companion/internal/db"
	"github.com/aikya/companion/internal/notify"
	"github.com/aikya/companion/internal/worker"
)

func main() {
	var (
		configPath = flag.String("config", "config.yaml", "Path to the YAML configuration file")
		title      = flag.String("title", worker.DefaultTitle, "Notification title")
		body       = flag.String("body", worker.DefaultBody, "Notification body")
	)
	flag.Parse()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	database, err := db.NewFromConfig(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open database")
	}
	defer database.Close()

	sender := notify.NewSender(database.Queries, notify.Options{
		VAPIDPublicKey:  cfg.Push.VAPIDPublicKey,
		VAPIDPrivateKey: cfg.Push.VAPIDPrivateKey,
		Subject:         cfg.Push.Subject,
		TTL:             cfg.Push.TTL,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx = log.Logger.WithContext(ctx)

	result, err := sender.Broadcast(ctx, worker.Payload{Title: *title, Body: *body})
	if err != nil {
		log.Error().Err(err).Msg("Broadcast failed")
		os.Exit(1)
	}
	log.Info().Int("sent", result.Sent).Int("pruned", result.Pruned).Int("failed", result.Failed).Msg("Done")
}
