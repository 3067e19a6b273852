package usecase

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/trebuchet-org/govrelay/internal/config"
)

const defaultScanInterval = 10 * time.Second

// ScanDaemon runs scan ticks on a fixed interval until its context ends
type ScanDaemon struct {
	config *config.RuntimeConfig
	scan   *ScanProposals
	log    *slog.Logger
}

// NewScanDaemon creates a new ScanDaemon
func NewScanDaemon(cfg *config.RuntimeConfig, scan *ScanProposals, log *slog.Logger) *ScanDaemon {
	return &ScanDaemon{
		config: cfg,
		scan:   scan,
		log:    log.With("component", "daemon"),
	}
}

// Run ticks immediately, then once per interval. A tick that overruns the
// interval delays the next one; ticks are never started concurrently.
func (d *ScanDaemon) Run(ctx context.Context) error {
	interval := d.interval()
	d.log.Info("scan daemon started", "interval", interval, "mode", d.config.ScanMode, "max_proposals", d.config.MaxProposals)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		d.tick(ctx)

		select {
		case <-ctx.Done():
			d.log.Info("scan daemon stopped")
			return nil
		case <-ticker.C:
		}
	}
}

func (d *ScanDaemon) tick(ctx context.Context) {
	result, err := d.scan.Run(ctx, ScanProposalsParams{})
	switch {
	case errors.Is(err, context.Canceled):
		return
	case err != nil:
		d.log.Error("scan tick failed", "error", err)
		return
	}

	if len(result.Processed) > 0 {
		d.log.Info("scan tick executed proposals", "count", len(result.Processed), "bound", result.Bound)
	}
}

func (d *ScanDaemon) interval() time.Duration {
	if d.config.Interval > 0 {
		return d.config.Interval
	}
	return defaultScanInterval
}
