package main

import (
	"context"
	"log/slog"
	"net/url"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/JonMunkholm/stringanalyzer/internal/audit"
	"github.com/JonMunkholm/stringanalyzer/internal/catfact"
	"github.com/JonMunkholm/stringanalyzer/internal/config"
	"github.com/JonMunkholm/stringanalyzer/internal/core"
	"github.com/JonMunkholm/stringanalyzer/internal/logging"
	"github.com/JonMunkholm/stringanalyzer/internal/web"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
)

func main() {
	// Load .env file if it exists (Overload overwrites existing env vars)
	if err := godotenv.Overload(); err != nil {
		slog.Info("no .env file found, using environment variables")
	} else {
		slog.Info("loaded .env file (overwriting existing env vars)")
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	logging.Setup(cfg.Logging.Level, cfg.Logging.Format)
	slog.Info("configuration loaded", "config", cfg.String())

	// Cancelled on SIGINT/SIGTERM; stops the server and background jobs
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	sinks := []audit.Sink{audit.NewLogSink(nil)}
	if cfg.Database.Enabled() {
		pool, err := connectDatabase(ctx, cfg.Database)
		if err != nil {
			slog.Error("failed to connect to audit database", "error", err)
			os.Exit(1)
		}
		defer pool.Close()

		store := audit.NewPostgresSink(pool)
		if err := store.EnsureSchema(ctx); err != nil {
			slog.Error("failed to create audit schema", "error", err)
			os.Exit(1)
		}
		sinks = append(sinks, store)

		go audit.StartRetentionScheduler(ctx, store, audit.RetentionConfig{
			RetentionDays: cfg.Audit.RetentionDays,
			CheckInterval: cfg.Audit.CheckInterval,
		})
	} else {
		slog.Info("no database configured, audit entries go to the log only")
	}

	registry := core.NewRegistry()
	recorder := audit.NewRecorder(cfg.Audit.WriteTimeout, sinks...)
	facts := catfact.NewClient(cfg.Profile.CatFactURL, cfg.Profile.CatFactTimeout, cfg.Profile.CatFactCacheTTL)

	server := web.NewServer(registry, recorder, facts, cfg)

	// Run blocks until shutdown has drained in-flight requests, so the
	// deferred pool.Close cannot race their audit writes.
	slog.Info("server starting", "addr", cfg.Server.Addr())
	if err := server.Run(ctx); err != nil {
		slog.Error("server error", "error", err)
	}
	slog.Info("server stopped", "strings", registry.Len())
}

// connectDatabase opens and verifies the audit connection pool.
func connectDatabase(ctx context.Context, cfg config.DatabaseConfig) (*pgxpool.Pool, error) {
	poolConfig, err := pgxpool.ParseConfig(cfg.URL)
	if err != nil {
		return nil, err
	}

	poolConfig.MaxConns = int32(cfg.MaxConns)
	poolConfig.MinConns = int32(cfg.MinConns)
	poolConfig.MaxConnLifetime = cfg.MaxConnLifetime
	poolConfig.MaxConnIdleTime = cfg.MaxConnIdleTime

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, err
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	if u, err := url.Parse(cfg.URL); err == nil {
		slog.Info("connected to database", "name", strings.TrimPrefix(u.Path, "/"))
	} else {
		slog.Info("connected to database")
	}

	return pool, nil
}
