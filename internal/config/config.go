package config

import "time"

// GathererConfig is the root configuration for a gatherer instance.
type GathererConfig struct {
	Instance  InstanceConfig  `yaml:"instance"`
	Sources   SourcesConfig   `yaml:"sources"`
	Contracts ContractsConfig `yaml:"contracts"`
	Registry  RegistryConfig  `yaml:"registry"`
	Collector CollectorConfig `yaml:"collector"`
	Writers   WritersConfig   `yaml:"writers"`
	Metrics   MetricsConfig   `yaml:"metrics"`
}

// InstanceConfig identifies this gatherer.
type InstanceConfig struct {
	ID string `yaml:"id"`
}

// SourcesConfig holds the external price source endpoints.
type SourcesConfig struct {
	GammaURL   string        `yaml:"gamma_url"`   // Polymarket Gamma catalogue API
	CLOBURL    string        `yaml:"clob_url"`    // Polymarket CLOB order-book API
	SpotURL    string        `yaml:"spot_url"`    // Spot exchange REST API
	SpotWSURL  string        `yaml:"spot_ws_url"` // Spot exchange trade stream
	SpotStream bool          `yaml:"spot_stream"` // Prefer the stream over REST polling
	Timeout    time.Duration `yaml:"timeout"`
	MaxRetries int           `yaml:"max_retries"`
}

// ContractsConfig selects which up/down series to gather.
type ContractsConfig struct {
	Assets   []string `yaml:"assets"`   // Short tickers ("btc", "eth", ...)
	Cadences []string `yaml:"cadences"` // "m15", "h1", "daily"
}

// RegistryConfig holds catalogue registry settings.
type RegistryConfig struct {
	ReconcileInterval  time.Duration `yaml:"reconcile_interval"`
	InitialLoadTimeout time.Duration `yaml:"initial_load_timeout"`
}

// CollectorConfig holds quote collection settings.
type CollectorConfig struct {
	Interval    time.Duration `yaml:"interval"`    // Collection tick (default: 1s)
	Concurrency int           `yaml:"concurrency"` // Max concurrent fetches per tick
	Timeout     time.Duration `yaml:"timeout"`     // Per-fetch timeout
}

// WritersConfig holds sink settings.
type WritersConfig struct {
	BatchSize     int           `yaml:"batch_size"`
	FlushInterval time.Duration `yaml:"flush_interval"` // CSV/DB flush cadence (default: 60s)
	BufferSize    int           `yaml:"buffer_size"`
	CSVDir        string        `yaml:"csv_dir"`
	Postgres      PostgresSink  `yaml:"postgres"`
}

// PostgresSink enables the optional relational sink.
type PostgresSink struct {
	Enabled  bool     `yaml:"enabled"`
	Database DBConfig `yaml:"database"`
}

// DBConfig holds a single database connection.
type DBConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Name     string `yaml:"name"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	SSLMode  string `yaml:"ssl_mode"`
	MaxConns int    `yaml:"max_conns"`
	MinConns int    `yaml:"min_conns"`
}

// MetricsConfig holds Prometheus metrics settings.
type MetricsConfig struct {
	Port int    `yaml:"port"`
	Path string `yaml:"path"`
}
