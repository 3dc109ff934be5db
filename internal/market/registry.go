package market

import (
	"context"
	"time"

	"github.com/rickgao/polymarket-data/internal/contract"
	"github.com/rickgao/polymarket-data/internal/model"
)

// Entry is one cached active contract: the resolved window plus the Gamma
// market metadata (token IDs) the collector needs to poll it.
type Entry struct {
	Window contract.Window
	Market model.Market

	// ResolvedAt is when this entry was last verified against the catalogue.
	ResolvedAt time.Time
}

// Config holds registry configuration.
type Config struct {
	ReconcileInterval  time.Duration
	InitialLoadTimeout time.Duration
	ScanPageSize       int // Catalogue scan page size for the fallback path
	ScanMaxPages       int // Upper bound on catalogue scan pages
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{
		ReconcileInterval:  time.Minute,
		InitialLoadTimeout: 2 * time.Minute,
		ScanPageSize:       500,
		ScanMaxPages:       4,
	}
}

// Registry manages the active-contract cache.
type Registry interface {
	// Start resolves the initial set of entries (blocking) and begins the
	// background reconcile loop.
	Start(ctx context.Context) error

	// Stop gracefully shuts down.
	Stop(ctx context.Context) error

	// Active returns a copy of all currently cached entries.
	Active() []Entry

	// Get returns the cached entry for one asset and cadence.
	Get(asset contract.Asset, cadence contract.Cadence) (Entry, bool)

	// Nudge requests an immediate refresh of one entry. The collector calls
	// this when a cached window no longer contains the tick instant.
	// Non-blocking; duplicate requests coalesce.
	Nudge(asset contract.Asset, cadence contract.Cadence)
}
