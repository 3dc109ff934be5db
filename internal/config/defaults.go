package config

import "time"

// Default values for optional configuration fields.
const (
	DefaultGammaURL           = "https://gamma-api.polymarket.com"
	DefaultCLOBURL            = "https://clob.polymarket.com"
	DefaultSpotURL            = "https://api.binance.com"
	DefaultSpotWSURL          = "wss://stream.binance.com:9443"
	DefaultAPITimeout         = 10 * time.Second
	DefaultMaxRetries         = 3
	DefaultReconcileInterval  = 5 * time.Minute
	DefaultInitialLoadTimeout = 2 * time.Minute
	DefaultCollectInterval    = 1 * time.Second
	DefaultCollectConcurrency = 8
	DefaultCollectTimeout     = 900 * time.Millisecond
	DefaultBatchSize          = 500
	DefaultFlushInterval      = 60 * time.Second
	DefaultBufferSize         = 10000
	DefaultCSVDir             = "data"
	DefaultDBPort             = 5432
	DefaultDBSSLMode          = "prefer"
	DefaultMaxConns           = 10
	DefaultMinConns           = 2
	DefaultMetricsPort        = 9090
	DefaultMetricsPath        = "/metrics"
)

func (c *GathererConfig) applyDefaults() {
	// Sources defaults
	if c.Sources.GammaURL == "" {
		c.Sources.GammaURL = DefaultGammaURL
	}
	if c.Sources.CLOBURL == "" {
		c.Sources.CLOBURL = DefaultCLOBURL
	}
	if c.Sources.SpotURL == "" {
		c.Sources.SpotURL = DefaultSpotURL
	}
	if c.Sources.SpotWSURL == "" {
		c.Sources.SpotWSURL = DefaultSpotWSURL
	}
	if c.Sources.Timeout == 0 {
		c.Sources.Timeout = DefaultAPITimeout
	}
	if c.Sources.MaxRetries == 0 {
		c.Sources.MaxRetries = DefaultMaxRetries
	}

	// Contracts defaults: everything we know how to resolve.
	if len(c.Contracts.Assets) == 0 {
		c.Contracts.Assets = []string{"btc", "eth", "sol", "xrp"}
	}
	if len(c.Contracts.Cadences) == 0 {
		c.Contracts.Cadences = []string{"m15", "h1", "daily"}
	}

	// Registry defaults
	if c.Registry.ReconcileInterval == 0 {
		c.Registry.ReconcileInterval = DefaultReconcileInterval
	}
	if c.Registry.InitialLoadTimeout == 0 {
		c.Registry.InitialLoadTimeout = DefaultInitialLoadTimeout
	}

	// Collector defaults
	if c.Collector.Interval == 0 {
		c.Collector.Interval = DefaultCollectInterval
	}
	if c.Collector.Concurrency == 0 {
		c.Collector.Concurrency = DefaultCollectConcurrency
	}
	if c.Collector.Timeout == 0 {
		c.Collector.Timeout = DefaultCollectTimeout
	}

	// Writers defaults
	if c.Writers.BatchSize == 0 {
		c.Writers.BatchSize = DefaultBatchSize
	}
	if c.Writers.FlushInterval == 0 {
		c.Writers.FlushInterval = DefaultFlushInterval
	}
	if c.Writers.BufferSize == 0 {
		c.Writers.BufferSize = DefaultBufferSize
	}
	if c.Writers.CSVDir == "" {
		c.Writers.CSVDir = DefaultCSVDir
	}
	if c.Writers.Postgres.Enabled {
		applyDBDefaults(&c.Writers.Postgres.Database)
	}

	// Metrics defaults
	if c.Metrics.Port == 0 {
		c.Metrics.Port = DefaultMetricsPort
	}
	if c.Metrics.Path == "" {
		c.Metrics.Path = DefaultMetricsPath
	}
}

func applyDBDefaults(db *DBConfig) {
	if db.Port == 0 {
		db.Port = DefaultDBPort
	}
	if db.SSLMode == "" {
		db.SSLMode = DefaultDBSSLMode
	}
	if db.MaxConns == 0 {
		db.MaxConns = DefaultMaxConns
	}
	if db.MinConns == 0 {
		db.MinConns = DefaultMinConns
	}
}
