package audit

// scheduler.go runs periodic retention of the PostgreSQL audit trail.
//
// The scheduler is long-running and context-aware for graceful shutdown.
// It logs failures but never stops the application because of them.

import (
	"context"
	"log/slog"
	"time"
)

// RetentionConfig holds configuration for the retention scheduler.
type RetentionConfig struct {
	RetentionDays int           // Days to keep entries (default: 90)
	CheckInterval time.Duration // How often to run (default: 24h)
}

// Purger deletes audit entries past their retention.
type Purger interface {
	Purge(ctx context.Context, retentionDays int) (int64, error)
}

// StartRetentionScheduler purges old entries immediately, then every
// CheckInterval, until ctx is cancelled.
func StartRetentionScheduler(ctx context.Context, p Purger, cfg RetentionConfig) {
	if cfg.RetentionDays <= 0 {
		cfg.RetentionDays = 90
	}
	if cfg.CheckInterval <= 0 {
		cfg.CheckInterval = 24 * time.Hour
	}

	slog.Info("audit retention scheduler started",
		"retention_days", cfg.RetentionDays,
		"check_interval", cfg.CheckInterval,
	)

	runRetentionJob(ctx, p, cfg)

	ticker := time.NewTicker(cfg.CheckInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			slog.Info("audit retention scheduler stopped")
			return
		case <-ticker.C:
			runRetentionJob(ctx, p, cfg)
		}
	}
}

// runRetentionJob performs one purge cycle.
func runRetentionJob(ctx context.Context, p Purger, cfg RetentionConfig) {
	start := time.Now()

	purged, err := p.Purge(ctx, cfg.RetentionDays)
	if err != nil {
		slog.Error("audit purge failed", "error", err)
		return
	}

	slog.Info("purged audit entries",
		"entries_purged", purged,
		"duration_ms", time.Since(start).Milliseconds(),
	)
}
