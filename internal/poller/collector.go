package poller

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/rickgao/polymarket-data/internal/api"
	"github.com/rickgao/polymarket-data/internal/contract"
	"github.com/rickgao/polymarket-data/internal/market"
	"github.com/rickgao/polymarket-data/internal/metrics"
	"github.com/rickgao/polymarket-data/internal/model"
	"github.com/rickgao/polymarket-data/internal/router"
)

// SpotSource is an optional live price cache consulted before the REST
// fallback. The websocket feed implements it.
type SpotSource interface {
	LatestPrice(asset contract.Asset) (float64, bool)
}

// Config holds collector configuration.
type Config struct {
	Interval    time.Duration // Collection tick (default: 1s)
	Concurrency int           // Max concurrent fetches per tick
	Timeout     time.Duration // Per-fetch timeout; must fit inside Interval
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{
		Interval:    time.Second,
		Concurrency: 16,
		Timeout:     900 * time.Millisecond,
	}
}

// Collector drives the collection ticks.
type Collector struct {
	cfg      Config
	registry market.Registry
	clob     *api.CLOB
	spot     *api.Spot
	feed     SpotSource // nil when the websocket feed is disabled
	router   *router.Router
	runID    uuid.UUID
	logger   *slog.Logger

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// New creates a collector. feed may be nil.
func New(
	cfg Config,
	registry market.Registry,
	clob *api.CLOB,
	spot *api.Spot,
	feed SpotSource,
	rt *router.Router,
	runID uuid.UUID,
	logger *slog.Logger,
) *Collector {
	if logger == nil {
		logger = slog.Default()
	}
	return &Collector{
		cfg:      cfg,
		registry: registry,
		clob:     clob,
		spot:     spot,
		feed:     feed,
		router:   rt,
		runID:    runID,
		logger:   logger,
	}
}

// Start begins the collection loop.
func (c *Collector) Start(ctx context.Context) error {
	c.ctx, c.cancel = context.WithCancel(ctx)

	c.wg.Add(1)
	go c.run()

	c.logger.Info("collector started",
		"interval", c.cfg.Interval,
		"concurrency", c.cfg.Concurrency,
		"run_id", c.runID,
	)
	return nil
}

// Stop gracefully shuts down the collector.
func (c *Collector) Stop(ctx context.Context) error {
	if c.cancel != nil {
		c.cancel()
	}

	done := make(chan struct{})
	go func() {
		c.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		c.logger.Info("collector stopped")
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (c *Collector) run() {
	defer c.wg.Done()

	ticker := time.NewTicker(c.cfg.Interval)
	defer ticker.Stop()

	// Collect immediately on start.
	c.collectAll(c.ctx, time.Now())

	for {
		select {
		case <-c.ctx.Done():
			return
		case now := <-ticker.C:
			c.collectAll(c.ctx, now)
		}
	}
}

// collectAll runs one tick. Every snapshot in the tick shares the same
// sampled instant.
func (c *Collector) collectAll(ctx context.Context, now time.Time) {
	entries := c.registry.Active()
	if len(entries) == 0 {
		c.logger.Debug("no active contracts to collect")
		return
	}

	// Containment check against the single sampled instant. A rolled-over
	// window is skipped this tick; the registry re-resolves it.
	pollable := entries[:0]
	assets := make(map[contract.Asset]struct{})
	for _, e := range entries {
		if !e.Window.Contains(now) {
			metrics.ContainmentMisses.WithLabelValues(
				e.Window.Asset.Short(), e.Window.Cadence.String()).Inc()
			c.registry.Nudge(e.Window.Asset, e.Window.Cadence)
			c.logger.Warn("cached window rolled over",
				"asset", e.Window.Asset.Short(),
				"cadence", e.Window.Cadence.String(),
				"slug", e.Market.Slug,
			)
			continue
		}
		pollable = append(pollable, e)
		assets[e.Window.Asset] = struct{}{}
	}
	if len(pollable) == 0 {
		return
	}

	prices := c.fetchSpotPrices(ctx, assets)
	receivedAt := now.UnixMicro()

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.cfg.Concurrency)
	for _, e := range pollable {
		e := e
		g.Go(func() error {
			c.collect(gctx, e, receivedAt, prices[e.Window.Asset])
			return nil
		})
	}
	g.Wait()
}

// fetchSpotPrices resolves one spot price per asset, preferring the live
// feed cache over REST.
func (c *Collector) fetchSpotPrices(ctx context.Context, assets map[contract.Asset]struct{}) map[contract.Asset]float64 {
	prices := make(map[contract.Asset]float64, len(assets))
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.cfg.Concurrency)
	for asset := range assets {
		asset := asset
		if c.feed != nil {
			if p, ok := c.feed.LatestPrice(asset); ok {
				mu.Lock()
				prices[asset] = p
				mu.Unlock()
				metrics.SpotPrice.WithLabelValues(asset.Short()).Set(p)
				continue
			}
		}
		g.Go(func() error {
			fetchCtx, cancel := context.WithTimeout(gctx, c.cfg.Timeout)
			defer cancel()

			p, err := c.spot.GetPrice(fetchCtx, asset)
			if err != nil {
				metrics.PollErrors.WithLabelValues("spot").Inc()
				c.logger.Warn("spot price fetch failed",
					"asset", asset.Short(), "error", err)
				return nil
			}
			mu.Lock()
			prices[asset] = p
			mu.Unlock()
			metrics.SpotPrice.WithLabelValues(asset.Short()).Set(p)
			return nil
		})
	}
	g.Wait()

	return prices
}

// collect fetches the CLOB book for one entry and publishes a snapshot.
// A missing spot price is recorded as zero rather than dropping the quote.
func (c *Collector) collect(ctx context.Context, e market.Entry, receivedAt int64, spotPrice float64) {
	fetchCtx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
	defer cancel()

	book, err := c.clob.GetBook(fetchCtx, e.Market.UpTokenID)
	if err != nil {
		metrics.PollErrors.WithLabelValues("clob").Inc()
		c.logger.Warn("book fetch failed",
			"slug", e.Market.Slug,
			"token_id", e.Market.UpTokenID,
			"error", err,
		)
		return
	}

	q := book.ToQuote()
	c.router.Publish(model.Snapshot{
		ReceivedAt:  receivedAt,
		RunID:       c.runID,
		Asset:       e.Window.Asset,
		Cadence:     e.Window.Cadence,
		Slug:        e.Market.Slug,
		WindowStart: e.Window.Start.UnixMicro(),
		BestBid:     q.BestBid,
		BestAsk:     q.BestAsk,
		Mid:         q.Mid,
		SpotPrice:   spotPrice,
	})
	metrics.SnapshotsCollected.WithLabelValues(
		e.Window.Asset.Short(), e.Window.Cadence.String()).Inc()
}
