package feed

import (
	"context"
	"encoding/json"
	"log/slog"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/rickgao/polymarket-data/internal/api"
	"github.com/rickgao/polymarket-data/internal/contract"
)

// Config holds feed configuration.
type Config struct {
	URL              string        // Websocket base URL, e.g. wss://stream.binance.com:9443
	HandshakeTimeout time.Duration // Dial timeout
	ReadTimeout      time.Duration // Max silence before the connection is considered dead
	ReconnectMin     time.Duration // Initial reconnect backoff
	ReconnectMax     time.Duration // Backoff cap
	StaleAfter       time.Duration // Cached prices older than this are not served
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{
		HandshakeTimeout: 10 * time.Second,
		ReadTimeout:      30 * time.Second,
		ReconnectMin:     time.Second,
		ReconnectMax:     time.Minute,
		StaleAfter:       5 * time.Second,
	}
}

// Feed is the live spot price cache.
type Feed struct {
	cfg    Config
	assets []contract.Asset
	logger *slog.Logger

	// Cache keyed by exchange symbol, e.g. BTCUSDT.
	mu        sync.RWMutex
	prices    map[string]float64
	updatedAt map[string]time.Time

	symbols map[string]contract.Asset

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// New creates a feed subscribing to the trade stream of every asset.
func New(cfg Config, assets []contract.Asset, logger *slog.Logger) *Feed {
	if logger == nil {
		logger = slog.Default()
	}

	symbols := make(map[string]contract.Asset, len(assets))
	for _, a := range assets {
		symbols[api.SpotSymbol(a)] = a
	}

	return &Feed{
		cfg:       cfg,
		assets:    assets,
		logger:    logger,
		prices:    make(map[string]float64, len(assets)),
		updatedAt: make(map[string]time.Time, len(assets)),
		symbols:   symbols,
	}
}

// Start begins the connect/read/reconnect loop in the background.
func (f *Feed) Start(ctx context.Context) error {
	f.ctx, f.cancel = context.WithCancel(ctx)

	f.wg.Add(1)
	go f.run()

	f.logger.Info("spot feed started", "url", f.cfg.URL, "assets", len(f.assets))
	return nil
}

// Stop gracefully shuts down the feed.
func (f *Feed) Stop(ctx context.Context) error {
	if f.cancel != nil {
		f.cancel()
	}

	done := make(chan struct{})
	go func() {
		f.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		f.logger.Info("spot feed stopped")
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// LatestPrice returns the cached spot price for an asset. A price older than
// StaleAfter is treated as absent so the collector falls back to REST.
func (f *Feed) LatestPrice(asset contract.Asset) (float64, bool) {
	symbol := api.SpotSymbol(asset)

	f.mu.RLock()
	defer f.mu.RUnlock()

	at, ok := f.updatedAt[symbol]
	if !ok || time.Since(at) > f.cfg.StaleAfter {
		return 0, false
	}
	return f.prices[symbol], true
}

// streamURL builds the combined-stream endpoint for all subscribed assets.
func (f *Feed) streamURL() string {
	streams := make([]string, 0, len(f.assets))
	for _, a := range f.assets {
		streams = append(streams, strings.ToLower(api.SpotSymbol(a))+"@trade")
	}
	return f.cfg.URL + "/stream?streams=" + strings.Join(streams, "/")
}

// run dials and reads until the context is done, backing off exponentially
// between attempts and resetting the backoff after a healthy session.
func (f *Feed) run() {
	defer f.wg.Done()

	backoff := f.cfg.ReconnectMin
	for {
		if f.ctx.Err() != nil {
			return
		}

		sessionStart := time.Now()
		if err := f.session(); err != nil && f.ctx.Err() == nil {
			f.logger.Warn("spot feed disconnected", "error", err, "retry_in", backoff)
		}
		if f.ctx.Err() != nil {
			return
		}

		if time.Since(sessionStart) > f.cfg.ReconnectMax {
			backoff = f.cfg.ReconnectMin
		}

		select {
		case <-f.ctx.Done():
			return
		case <-time.After(backoff):
		}

		backoff *= 2
		if backoff > f.cfg.ReconnectMax {
			backoff = f.cfg.ReconnectMax
		}
	}
}

// session dials once and reads messages until the connection fails.
func (f *Feed) session() error {
	dialer := websocket.Dialer{
		HandshakeTimeout: f.cfg.HandshakeTimeout,
	}

	conn, _, err := dialer.DialContext(f.ctx, f.streamURL(), nil)
	if err != nil {
		return err
	}
	defer conn.Close()

	f.logger.Debug("spot feed connected", "url", f.cfg.URL)

	// Close the connection when the context ends so ReadMessage unblocks.
	closed := make(chan struct{})
	defer close(closed)
	go func() {
		select {
		case <-f.ctx.Done():
			conn.WriteControl(
				websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
				time.Now().Add(time.Second),
			)
			conn.Close()
		case <-closed:
		}
	}()

	conn.SetReadDeadline(time.Now().Add(f.cfg.ReadTimeout))
	conn.SetPingHandler(func(data string) error {
		conn.SetReadDeadline(time.Now().Add(f.cfg.ReadTimeout))
		return conn.WriteControl(
			websocket.PongMessage,
			[]byte(data),
			time.Now().Add(time.Second),
		)
	})

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			return err
		}
		conn.SetReadDeadline(time.Now().Add(f.cfg.ReadTimeout))
		f.handleMessage(data)
	}
}

// streamMessage is one combined-stream frame carrying a trade event.
type streamMessage struct {
	Stream string `json:"stream"`
	Data   struct {
		Event  string `json:"e"`
		Symbol string `json:"s"`
		Price  string `json:"p"`
	} `json:"data"`
}

func (f *Feed) handleMessage(data []byte) {
	var msg streamMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		f.logger.Debug("unparseable feed message", "error", err)
		return
	}
	if msg.Data.Event != "trade" {
		return
	}
	if _, ok := f.symbols[msg.Data.Symbol]; !ok {
		return
	}

	price, err := strconv.ParseFloat(msg.Data.Price, 64)
	if err != nil {
		f.logger.Debug("unparseable trade price", "price", msg.Data.Price)
		return
	}

	f.mu.Lock()
	f.prices[msg.Data.Symbol] = price
	f.updatedAt[msg.Data.Symbol] = time.Now()
	f.mu.Unlock()
}
