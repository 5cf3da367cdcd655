// Command gql2sqld is a thin JSON-in, JSON-out HTTP front end around the
// gql2sql compiler: it parses a GraphQL query, compiles it, runs the
// resulting statements against PostgreSQL, and returns the combined
// result alongside the cache tags extracted from it. It does not
// validate queries against a schema and does not implement any
// connection-pooling policy beyond what database/sql provides.
package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/syssam/gql2sql/internal/sqlexec"
)

func main() {
	configPath := flag.String("config", "gql2sqld.yaml", "path to the config file")
	flag.Parse()

	cfg, err := loadConfig(*configPath)
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	store := newConfigStore(cfg)

	if watcher, err := watchConfig(*configPath, store); err != nil {
		slog.Warn("config hot-reload disabled", "error", err)
	} else {
		defer watcher.Close()
	}

	executor, err := sqlexec.Open(cfg.DatabaseURL)
	if err != nil {
		slog.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer executor.Close()

	stats := sqlexec.NewStatsExecutor(executor,
		sqlexec.WithSlowThreshold(time.Duration(cfg.SlowQueryMillis)*time.Millisecond),
		sqlexec.WithSlowQueryLog(),
	)

	mux := http.NewServeMux()
	mux.Handle("/graphql", NewServer(stats, store))
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	srv := &http.Server{
		Addr:              store.Get().ListenAddr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		slog.Info("gql2sqld listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	slog.Info("shutting down", "stats", stats.QueryStats().Stats().String())

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("graceful shutdown failed", "error", err)
	}
}
