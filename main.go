package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/inngest/inngestgo"
	"github.com/jonboulle/clockwork"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/mauv0809/courtside/internal/challenge"
	"github.com/mauv0809/courtside/internal/club"
	"github.com/mauv0809/courtside/internal/config"
	"github.com/mauv0809/courtside/internal/database"
	server "github.com/mauv0809/courtside/internal/http"
	"github.com/mauv0809/courtside/internal/inngest"
	"github.com/mauv0809/courtside/internal/invitation"
	"github.com/mauv0809/courtside/internal/metrics"
	"github.com/mauv0809/courtside/internal/notifier/slack"
	"github.com/mauv0809/courtside/internal/playtomic"
	"github.com/mauv0809/courtside/internal/processor"
	"github.com/mauv0809/courtside/internal/pubsub"
	"github.com/mauv0809/courtside/internal/ranking"
	"github.com/mauv0809/courtside/internal/rating"
)

func main() {
	// Start profiling timer
	startTime := time.Now()
	log.SetFormatter(log.JSONFormatter)
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %s", err)
	}
	if level, err := log.ParseLevel(cfg.LogLevel); err == nil {
		log.SetLevel(level)
	} else {
		log.Warn("Unknown log level, keeping default", "level", cfg.LogLevel)
	}

	db, dbTeardown, err := database.InitDB(cfg.DBName, cfg.Turso.PrimaryURL, cfg.Turso.AuthToken, cfg.MigrationsDir)
	dbInitDuration := time.Since(startTime)
	log.Info("Database initialization time recorded", "duration_ms", dbInitDuration.Milliseconds())
	if err != nil {
		log.Fatalf("Failed to initialize database: %s", err)
	}
	defer func() {
		log.Info("Closing database connection")
		dbTeardown()
	}()

	clock := clockwork.NewRealClock()
	clubStore := club.New(db)
	invitationStore := invitation.NewStore(db, clock, cfg.InvitationTTL)
	challengeStore := challenge.NewStore(db, clock, cfg.ChallengeTTL)
	metricsSvc := metrics.NewService(prometheus.DefaultRegisterer)
	metricsHandler := metrics.NewMetricsHandler(prometheus.DefaultGatherer)
	notifier := slack.NewNotifier(cfg.Slack.Token, cfg.Slack.ChannelID, metricsSvc)

	ps := pubsub.NewNoop()
	if cfg.ProjectID != "" {
		client, psTeardown, err := pubsub.New(context.Background(), cfg.ProjectID)
		if err != nil {
			log.Fatalf("Failed to initialize pubsub: %s", err)
		}
		defer psTeardown()
		ps = client
	} else {
		log.Warn("GCP_PROJECT not set, match events will not be published")
	}

	engine := rating.NewEngine(cfg.Rating.KFactor, cfg.Rating.ProvisionalKFactor)
	processor := processor.New(clubStore, engine, notifier, metricsSvc, ps, clock)
	importer := playtomic.NewImporter(playtomic.NewClient(), clubStore, metricsSvc, cfg.TenantID, clock)
	aggregator := ranking.NewAggregator(ranking.Scoring{
		WinPoints:  cfg.Ranking.WinPoints,
		LossPoints: cfg.Ranking.LossPoints,
	})

	var inngestClient inngest.InngestClient
	if cfg.Inngest.Enabled() {
		options := inngestgo.ClientOpts{
			AppID:      cfg.Inngest.AppID,
			SigningKey: &cfg.Inngest.SigningKey,
			EventKey:   &cfg.Inngest.EventKey,
		}
		inngestProvider, err := inngestgo.NewClient(options)
		if err != nil {
			log.Fatalf("Failed to initialize inngest: %s", err)
		}
		inngestClient, err = inngest.New(inngestProvider, invitationStore, challengeStore)
		if err != nil {
			log.Fatalf("Failed to register inngest functions: %s", err)
		}
	}

	s := server.NewServer(server.Deps{
		Store:          clubStore,
		Invitations:    invitationStore,
		Challenges:     challengeStore,
		Metrics:        metricsSvc,
		MetricsStore:   metrics.New(db),
		MetricsHandler: metricsHandler,
		Cfg:            cfg,
		Notifier:       notifier,
		Processor:      processor,
		Importer:       importer,
		PubSub:         ps,
		Aggregator:     aggregator,
		Clock:          clock,
		InngestClient:  inngestClient,
	})

	// --- Record startup time ---
	startupDuration := time.Since(startTime)
	metricsSvc.SetStartupTime(startupDuration.Seconds())
	log.Info("Startup time recorded", "duration_ms", startupDuration.Milliseconds())

	// --- Graceful shutdown setup ---
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: s,
	}

	// Channel to listen for errors coming from the server
	serverErrors := make(chan error, 1)

	go func() {
		log.Info("Server started", "port", cfg.Port)
		serverErrors <- srv.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	// Block until we receive a signal or an error
	select {
	case err := <-serverErrors:
		if err != nil && err != http.ErrServerClosed {
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
