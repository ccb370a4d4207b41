package jobs

import (
	"context"
	"errors"
	"time"

	"github.com/labstack/gommon/log"
)

type RegistryLoader interface {
	Load(ctx context.Context, query string) error
}

// RegistryRefresher reloads the registry store right away and then on
// every tick, so rows written outside this process still show up.
type RegistryRefresher struct {
	registry RegistryLoader
	interval time.Duration
}

func NewRegistryRefresher(registry RegistryLoader, interval time.Duration) *RegistryRefresher {
	return &RegistryRefresher{registry: registry, interval: interval}
}

func (r *RegistryRefresher) Start(ctx context.Context) {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	log.Infof("Registry refresher cron started, interval: %s", r.interval)
	r.refresh(ctx)

	for {
		select {
		case <-ctx.Done():
			log.Info("Stopping registry refresher...")
			return
		case <-ticker.C:
			r.refresh(ctx)
		}
	}
}

func (r *RegistryRefresher) refresh(ctx context.Context) {
	// The store already logs and keeps the failure, a retry happens next tick.
	err := r.registry.Load(ctx, "")
	if err != nil && !errors.Is(err, context.Canceled) {
		log.Debugf("Refresher: registry load failed: %v", err)
	}
}
