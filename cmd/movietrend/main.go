package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/movietrend/movietrend/internal/api"
	"github.com/movietrend/movietrend/internal/config"
	"github.com/movietrend/movietrend/internal/logger"
	"github.com/movietrend/movietrend/internal/metadata/tmdb"
	"github.com/movietrend/movietrend/internal/notification/telex"
	"github.com/movietrend/movietrend/internal/scheduler"
	"github.com/movietrend/movietrend/internal/scheduler/tasks"
	"github.com/movietrend/movietrend/internal/trending"
)

func main() {
	configPath := flag.String("config", "", "Path to config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(logger.Config{
		Level:      cfg.Logging.Level,
		Format:     cfg.Logging.Format,
		Path:       cfg.Logging.Path,
		MaxSizeMB:  cfg.Logging.MaxSizeMB,
		MaxBackups: cfg.Logging.MaxBackups,
		MaxAgeDays: cfg.Logging.MaxAgeDays,
		Compress:   cfg.Logging.Compress,
	})
	defer log.Close()

	log.Info().
		Str("logLevel", cfg.Logging.Level).
		Str("tmdbBaseURL", cfg.TMDB.BaseURL).
		Msg("starting MovieTrend")

	catalog := tmdb.NewClient(cfg.TMDB, log.Logger)
	if !catalog.IsConfigured() {
		log.Warn().Msg("no TMDB bearer token configured, ticks without api_key will fail")
	}

	sender := telex.New(cfg.Telex, nil, log.Logger)
	svc := trending.NewService(catalog, sender, log.Logger)

	var sched *scheduler.Scheduler
	if cfg.Schedule.Enabled {
		sched, err = scheduler.New(log.Logger)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to create scheduler")
		}
		if err := tasks.RegisterTickTask(sched, svc, cfg.Schedule); err != nil {
			log.Fatal().Err(err).Msg("failed to register tick task")
		}
		if err := sched.Start(); err != nil {
			log.Fatal().Err(err).Msg("failed to start scheduler")
		}
	}

	server := api.NewServer(cfg, svc, sched, log.Logger)

	addr := cfg.Server.Address()
	go func() {
		if err := server.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan
	log.Info().Msg("received shutdown signal")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if sched != nil {
		if err := sched.Stop(); err != nil {
			log.Error().Err(err).Msg("scheduler shutdown error")
		}
	}
	if err := server.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("server shutdown error")
	}

	log.Info().Msg("server stopped")
}
