package config

import (
	"errors"
	"fmt"

	"github.com/rickgao/polymarket-data/internal/contract"
)

// Validate checks that all required fields are set and values are valid.
func (c *GathererConfig) Validate() error {
	if c.Instance.ID == "" {
		return errors.New("instance.id is required")
	}

	for _, a := range c.Contracts.Assets {
		if _, ok := contract.ParseAsset(a); !ok {
			return fmt.Errorf("contracts.assets: unknown asset %q", a)
		}
	}
	for _, cad := range c.Contracts.Cadences {
		if _, ok := contract.ParseCadence(cad); !ok {
			return fmt.Errorf("contracts.cadences: unknown cadence %q", cad)
		}
	}

	if c.Collector.Concurrency < 1 {
		return errors.New("collector.concurrency must be >= 1")
	}
	if c.Collector.Timeout >= c.Collector.Interval {
		return fmt.Errorf("collector.timeout (%v) must be shorter than collector.interval (%v)",
			c.Collector.Timeout, c.Collector.Interval)
	}

	if c.Writers.BatchSize < 1 {
		return errors.New("writers.batch_size must be >= 1")
	}
	if c.Writers.BufferSize < 1 {
		return errors.New("writers.buffer_size must be >= 1")
	}

	if c.Writers.Postgres.Enabled {
		if err := c.Writers.Postgres.Database.validate("writers.postgres.database"); err != nil {
			return err
		}
	}

	if c.Metrics.Port < 1 || c.Metrics.Port > 65535 {
		return fmt.Errorf("metrics.port must be between 1 and 65535, got %d", c.Metrics.Port)
	}

	return nil
}

// Assets returns the configured assets as typed values. Call after Validate.
func (c *GathererConfig) Assets() []contract.Asset {
	out := make([]contract.Asset, 0, len(c.Contracts.Assets))
	for _, s := range c.Contracts.Assets {
		if a, ok := contract.ParseAsset(s); ok {
			out = append(out, a)
		}
	}
	return out
}

// Cadences returns the configured cadences as typed values. Call after Validate.
func (c *GathererConfig) Cadences() []contract.Cadence {
	out := make([]contract.Cadence, 0, len(c.Contracts.Cadences))
	for _, s := range c.Contracts.Cadences {
		if cad, ok := contract.ParseCadence(s); ok {
			out = append(out, cad)
		}
	}
	return out
}

func (db *DBConfig) validate(prefix string) error {
	if db.Host == "" {
		return fmt.Errorf("%s.host is required", prefix)
	}
	if db.Name == "" {
		return fmt.Errorf("%s.name is required", prefix)
	}
	if db.User == "" {
		return fmt.Errorf("%s.user is required", prefix)
	}
	if db.Password == "" {
		return fmt.Errorf("%s.password is required", prefix)
	}
	if db.MaxConns < 1 {
		return fmt.Errorf("%s.max_conns must be >= 1", prefix)
	}
	if db.MinConns < 0 {
		return fmt.Errorf("%s.min_conns must be >= 0", prefix)
	}
	if db.MinConns > db.MaxConns {
		return fmt.Errorf("%s.min_conns (%d) cannot exceed max_conns (%d)", prefix, db.MinConns, db.MaxConns)
	}
	return nil
}
