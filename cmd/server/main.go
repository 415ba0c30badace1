// Package main runs the circulation HTTP service.
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

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/readhall/circulation-go/httpapi"
	"github.com/readhall/circulation-go/shell/config"
	"github.com/readhall/circulation-go/storage/postgresengine"
)

const shutdownTimeout = 10 * time.Second

func main() {
	if err := run(); err != nil {
		slog.Error("server exited", "error", err)
		os.Exit(1)
	}
}

func run() error {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	cfg := config.ServerConfigFromEnv()

	store, err := buildStore(cfg.DBAdapter, logger)
	if err != nil {
		return err
	}

	sessions := httpapi.NewSessions(cfg.SessionSecret, cfg.SessionTTL)
	server := httpapi.NewServer(store, sessions, httpapi.WithServerLogging(logger))

	httpServer := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           server.Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	shutdownDone := make(chan struct{})

	go func() {
		defer close(shutdownDone)

		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigChan

		logger.Info("shutting down", "signal", sig.String())

		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if shutdownErr := httpServer.Shutdown(ctx); shutdownErr != nil {
			logger.Error("shutdown failed", "error", shutdownErr)
		}
	}()

	logger.Info("listening", "addr", cfg.ListenAddr, "adapter", cfg.DBAdapter)

	if serveErr := httpServer.ListenAndServe(); !errors.Is(serveErr, http.ErrServerClosed) {
		return serveErr
	}

	<-shutdownDone

	return nil
}

// buildStore selects the database adapter. All three speak to the same
// schema; pgx is the default, the others exist for environments that need
// database/sql or sqlx integration.
func buildStore(adapter string, logger *slog.Logger) (postgresengine.Store, error) {
	switch adapter {
	case config.AdapterPGX:
		pool, err := pgxpool.NewWithConfig(context.Background(), config.PostgresPGXPoolConfig())
		if err != nil {
			return postgresengine.Store{}, fmt.Errorf("connecting with pgxpool: %w", err)
		}

		return postgresengine.NewStoreFromPGXPool(pool, postgresengine.WithLogger(logger))

	case config.AdapterSQLDB:
		return postgresengine.NewStoreFromSQLDB(config.PostgresSQLDBConfig(), postgresengine.WithLogger(logger))

	case config.AdapterSQLX:
		return postgresengine.NewStoreFromSQLX(config.PostgresSQLXConfig(), postgresengine.WithLogger(logger))

	default:
		return postgresengine.Store{}, fmt.Errorf("unknown database adapter: %q", adapter)
	}
}
