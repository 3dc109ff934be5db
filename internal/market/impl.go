package market

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/rickgao/polymarket-data/internal/api"
	"github.com/rickgao/polymarket-data/internal/contract"
)

// registryImpl implements the Registry interface.
type registryImpl struct {
	cfg      Config
	assets   []contract.Asset
	cadences []contract.Cadence
	gamma    *api.Gamma
	logger   *slog.Logger

	state *registryState
	nudge chan key

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewRegistry creates a registry tracking every asset and cadence combination.
func NewRegistry(
	cfg Config,
	assets []contract.Asset,
	cadences []contract.Cadence,
	gamma *api.Gamma,
	logger *slog.Logger,
) Registry {
	if logger == nil {
		logger = slog.Default()
	}

	return &registryImpl{
		cfg:      cfg,
		assets:   assets,
		cadences: cadences,
		gamma:    gamma,
		logger:   logger,
		state:    newState(),
		nudge:    make(chan key, len(assets)*len(cadences)),
	}
}

// Start resolves the initial entries, then begins background reconciliation.
func (r *registryImpl) Start(ctx context.Context) error {
	r.ctx, r.cancel = context.WithCancel(ctx)

	// Initial sync (blocking).
	syncCtx, cancel := context.WithTimeout(r.ctx, r.cfg.InitialLoadTimeout)
	defer cancel()
	if err := r.initialSync(syncCtx); err != nil {
		r.cancel()
		return err
	}

	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		r.reconcileLoop(r.ctx)
	}()

	r.logger.Info("contract registry started",
		"entries", r.state.size(),
		"reconcile_interval", r.cfg.ReconcileInterval,
	)
	return nil
}

// Stop gracefully shuts down.
func (r *registryImpl) Stop(ctx context.Context) error {
	if r.cancel != nil {
		r.cancel()
	}

	done := make(chan struct{})
	go func() {
		r.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		r.logger.Info("contract registry stopped")
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Active returns a copy of all cached entries.
func (r *registryImpl) Active() []Entry {
	return r.state.active()
}

// Get returns the cached entry for one asset and cadence.
func (r *registryImpl) Get(asset contract.Asset, cadence contract.Cadence) (Entry, bool) {
	return r.state.get(key{asset, cadence})
}

// Nudge requests an immediate refresh of one entry.
func (r *registryImpl) Nudge(asset contract.Asset, cadence contract.Cadence) {
	select {
	case r.nudge <- key{asset, cadence}:
	default:
		// A refresh for some entry is already queued; the reconcile loop
		// catches anything dropped here.
	}
}

// initialSync resolves every tracked asset and cadence. Individual failures
// are logged and retried by the reconcile loop; only a completely empty cache
// is fatal.
func (r *registryImpl) initialSync(ctx context.Context) error {
	start := time.Now()

	for _, asset := range r.assets {
		for _, cadence := range r.cadences {
			if err := r.refresh(ctx, key{asset, cadence}); err != nil {
				r.logger.Error("initial resolve failed",
					"asset", asset.Short(),
					"cadence", cadence.String(),
					"error", err,
				)
			}
		}
	}

	if r.state.size() == 0 {
		return fmt.Errorf("initial sync resolved no contracts")
	}

	r.logger.Info("initial sync complete",
		"entries", r.state.size(),
		"duration", time.Since(start),
	)
	return nil
}

// reconcileLoop refreshes stale entries on a ticker and serves nudges.
func (r *registryImpl) reconcileLoop(ctx context.Context) {
	ticker := time.NewTicker(r.cfg.ReconcileInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case k := <-r.nudge:
			if err := r.refresh(ctx, k); err != nil {
				r.logger.Error("nudged refresh failed",
					"asset", k.asset.Short(),
					"cadence", k.cadence.String(),
					"error", err,
				)
			}
		case <-ticker.C:
			r.reconcile(ctx)
		}
	}
}

// reconcile refreshes every entry whose cached window no longer contains now,
// plus any slot that failed to resolve earlier.
func (r *registryImpl) reconcile(ctx context.Context) {
	now := time.Now()

	for _, asset := range r.assets {
		for _, cadence := range r.cadences {
			k := key{asset, cadence}
			if e, ok := r.state.get(k); ok && e.Window.Contains(now) {
				continue
			}
			if err := r.refresh(ctx, k); err != nil {
				r.logger.Error("reconcile refresh failed",
					"asset", asset.Short(),
					"cadence", cadence.String(),
					"error", err,
				)
			}
		}
	}
}
