// Package poller runs the notification polling loop: a lightweight
// unread-count poll on every tick and a full feed refresh on a slower
// cadence.
package poller

import (
	"context"
	"log/slog"
	"time"

	"github.com/accredly/console-api/internal/service"
)

const (
	defaultInterval     = 30 * time.Second
	defaultRefreshEvery = 5 * time.Minute
)

// Options holds the dependencies for creating a Poller.
type Options struct {
	Feed *service.NotificationManager
	// Interval between unread-count polls. Defaults to 30s.
	Interval time.Duration
	// RefreshEvery is the full-refresh cadence. Defaults to 5m.
	RefreshEvery time.Duration
	Logger       *slog.Logger
}

// Poller periodically polls the notification feed. Poll failures are
// non-critical and already absorbed by the manager.
type Poller struct {
	feed         *service.NotificationManager
	interval     time.Duration
	refreshEvery time.Duration
	logger       *slog.Logger
}

// New creates a Poller with defaults applied.
func New(opts Options) *Poller {
	interval := opts.Interval
	if interval <= 0 {
		interval = defaultInterval
	}
	refreshEvery := opts.RefreshEvery
	if refreshEvery <= 0 {
		refreshEvery = defaultRefreshEvery
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Poller{
		feed:         opts.Feed,
		interval:     interval,
		refreshEvery: refreshEvery,
		logger:       logger,
	}
}

// Run polls until ctx is canceled and returns ctx.Err().
func (p *Poller) Run(ctx context.Context) error {
	p.logger.InfoContext(ctx, "starting notification poller",
		"interval", p.interval, "refresh_every", p.refreshEvery)

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	lastRefresh := time.Now()
	for {
		select {
		case <-ctx.Done():
			p.logger.InfoContext(ctx, "notification poller stopped")
			return ctx.Err()
		case <-ticker.C:
			p.feed.FetchUnreadCount(ctx)
			if time.Since(lastRefresh) >= p.refreshEvery {
				p.feed.Refresh(ctx)
				lastRefresh = time.Now()
			}
		}
	}
}
