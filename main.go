package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/iMopo7u7/Valorant-Web-Page-sub000/internal/channels"
	"github.com/iMopo7u7/Valorant-Web-Page-sub000/internal/config"
	"github.com/iMopo7u7/Valorant-Web-Page-sub000/internal/database"
	server "github.com/iMopo7u7/Valorant-Web-Page-sub000/internal/http"
	"github.com/iMopo7u7/Valorant-Web-Page-sub000/internal/league"
	"github.com/iMopo7u7/Valorant-Web-Page-sub000/internal/metrics"
	"github.com/iMopo7u7/Valorant-Web-Page-sub000/internal/notifier"
	"github.com/iMopo7u7/Valorant-Web-Page-sub000/internal/notifier/discord"
	"github.com/iMopo7u7/Valorant-Web-Page-sub000/internal/notifier/slack"
	"github.com/iMopo7u7/Valorant-Web-Page-sub000/internal/processor"
	"github.com/iMopo7u7/Valorant-Web-Page-sub000/internal/pubsub"
)

func main() {
	// Start profiling timer
	startTime := time.Now()
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Invalid configuration", "error", err)
	}
	if cfg.LogFormat == "json" {
		log.SetFormatter(log.JSONFormatter)
	}

	db, dbTeardown, err := database.InitDB(cfg.DBName, cfg.Turso.PrimaryURL, cfg.Turso.AuthToken)
	dbInitDuration := time.Since(startTime)
	log.Info("Database initialization time recorded", "duration_ms", dbInitDuration.Milliseconds())
	if err != nil {
		log.Fatalf("Failed to initialize database: %s", err)
	}
	defer func() {
		log.Info("Closing database connection")
		dbTeardown()
	}()

	leagueStore := league.New(db)
	metricsSvc := metrics.NewService()
	metricsHandler := metrics.NewMetricsHandler()
	metricsStore := metrics.New(db)

	notifiers, err := buildNotifiers(cfg, metricsSvc)
	if err != nil {
		log.Fatalf("Failed to initialize notifiers: %s", err)
	}
	provisioner, err := buildProvisioner(cfg, metricsSvc)
	if err != nil {
		log.Fatalf("Failed to initialize Discord channels: %s", err)
	}

	// Without a GCP project, channel jobs run inline.
	var pubsubClient pubsub.PubSubClient
	if cfg.PubSubEnabled() {
		pubsubClient, err = pubsub.New(context.Background(), cfg.ProjectID)
		if err != nil {
			log.Fatalf("Failed to initialize pubsub: %s", err)
		}
		defer pubsubClient.Close()
	}

	processor := processor.New(leagueStore, notifiers, provisioner, metricsSvc, pubsubClient)

	s := server.NewServer(
		leagueStore,
		metricsSvc,
		metricsStore,
		metricsHandler,
		cfg,
		notifiers,
		processor,
		pubsubClient,
	)

	// --- Record startup time ---
	startupDuration := time.Since(startTime)
	metricsSvc.SetStartupTime(startupDuration.Seconds())
	log.Info("Startup time recorded", "duration_ms", startupDuration.Milliseconds())

	// --- Graceful shutdown setup ---
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Channel to listen for errors coming from the server
	serverErrors := make(chan error, 1)

	go func() {
		log.Info("Server started", "port", cfg.Port, "notifiers", cfg.Notifiers, "pubsub", cfg.PubSubEnabled(), "channels", cfg.ChannelsEnabled())
		serverErrors <- srv.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	// Block until we receive a signal or an error
	select {
	case err := <-serverErrors:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Server error: %v", err)
		}
	case sig := <-shutdown:
		log.Info("Shutdown signal received", "signal", sig)

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			log.Error("Server shutdown failed", "error", err)
		} else {
			log.Info("Server gracefully stopped")
		}
	}

	log.Info("Server process shutting down")
}

// buildNotifiers creates one notifier per configured provider.
func buildNotifiers(cfg config.Config, m metrics.Metrics) (notifier.Multi, error) {
	var out notifier.Multi
	if cfg.Uses(config.NotifierSlack) {
		out = append(out, slack.NewNotifier(cfg.Slack.Token, cfg.Slack.ChannelID, m))
	}
	if cfg.Uses(config.NotifierDiscord) {
		n, err := discord.NewNotifier(cfg.Discord.BotToken, cfg.Discord.AnnounceChannelID, m)
		if err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	if len(out) == 0 {
		log.Warn("No notifier configured, results will not be announced")
	}
	return out, nil
}

func buildProvisioner(cfg config.Config, m metrics.Metrics) (channels.Provisioner, error) {
	if !cfg.ChannelsEnabled() {
		log.Info("Discord channel provisioning disabled")
		return channels.NoopProvisioner{}, nil
	}
	return channels.NewDiscordProvisioner(cfg.Discord.BotToken, cfg.Discord.GuildID, cfg.Discord.CategoryID, m)
}
