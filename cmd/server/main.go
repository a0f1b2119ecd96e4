package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	"golang.org/x/sync/errgroup"

	"github.com/playperu/geoguess/internal/config"
	"github.com/playperu/geoguess/internal/database"
	"github.com/playperu/geoguess/internal/handler/health"
	"github.com/playperu/geoguess/internal/migrations"
	"github.com/playperu/geoguess/internal/questionbank"
	"github.com/playperu/geoguess/internal/server"
	"github.com/playperu/geoguess/internal/session"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, stdout io.Writer) error {
	cfg, err := config.Load(".env")
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logger := slog.New(slog.NewJSONHandler(stdout, &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}))

	// --- SQLite ---
	db, err := database.Open(ctx, cfg.DBPath)
	if err != nil {
		return fmt.Errorf("connecting to sqlite: %w", err)
	}
	defer db.Close()

	version, err := migrations.Run(ctx, db, logger)
	if err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}
	logger.Info("connected to sqlite", "path", cfg.DBPath, "schema_version", version)

	// --- Question bank ---
	bank := questionbank.NewStore(db)
	if _, err := bank.Seed(ctx, logger); err != nil {
		return fmt.Errorf("seeding question bank: %w", err)
	}

	// --- Sessions ---
	broker := server.NewBroker()
	sessions := session.NewManager(bank, session.Config{
		Rules:        cfg.Rules(),
		TickInterval: cfg.TickInterval,
		TTL:          cfg.SessionTTL,
	}, logger,
		session.WithOnChange(server.PublishState(broker)),
		session.WithOnEnd(server.EndSession(broker)),
	)

	// --- HTTP Server ---
	srv := server.New(cfg.HTTPAddr, logger, server.Deps{
		Sessions:  sessions,
		Broker:    broker,
		Questions: bank,
		SPADir:    cfg.SPADir,
	}, func(r chi.Router) {
		r.Mount("/healthz", health.NewHandler(logger,
			map[string]health.Checker{
				"sqlite":    database.Checker{DB: db},
				"questions": bank,
			},
			map[string]health.Gauge{
				"sessions": sessions.Len,
			},
		).Routes())
	})

	// --- Run ---
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("starting http server", "addr", cfg.HTTPAddr)
		return srv.Run(gctx)
	})

	g.Go(func() error {
		return sessions.Run(gctx, cfg.SweepInterval)
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down http server")
		err := srv.Shutdown(context.Background())
		sessions.Close()
		return err
	})

	return g.Wait()
}
