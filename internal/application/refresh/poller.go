package refresh

import (
	"context"
	"time"

	"github.com/jovz/residence-hub/pkg/common/logger"
)

// Poller periodically reloads the snapshot store. Mutating workflows also
// trigger reloads directly; the poller only bounds how stale the snapshot
// can get when changes happen behind the service's back.
type Poller struct {
	store    *Store
	interval time.Duration
	logger   *logger.Logger
}

// NewPoller creates a Poller that reloads store every interval.
func NewPoller(store *Store, interval time.Duration, log *logger.Logger) *Poller {
	return &Poller{store: store, interval: interval, logger: log}
}

// Run performs an initial reload and then reloads on every tick until the
// context is cancelled. Reload failures are logged and the previous snapshot
// stays in place; the poller keeps going.
func (p *Poller) Run(ctx context.Context) {
	if err := p.store.Reload(ctx); err != nil {
		p.logger.Error(ctx, "initial snapshot reload failed", "err", err)
	}

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			p.logger.Info(ctx, "snapshot poller stopping")
			return
		case <-ticker.C:
			if err := p.store.Reload(ctx); err != nil {
				p.logger.Error(ctx, "periodic snapshot reload failed", "err", err)
			}
		}
	}
}
