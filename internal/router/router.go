package router

import (
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/rickgao/polymarket-data/internal/model"
)

// Router duplicates snapshots into one buffer per registered sink.
type Router struct {
	logger *slog.Logger

	mu    sync.RWMutex
	sinks map[string]*GrowableBuffer[model.Snapshot]

	published atomic.Int64
	dropped   atomic.Int64
}

// New creates an empty router. Sinks register before the collector starts.
func New(logger *slog.Logger) *Router {
	if logger == nil {
		logger = slog.Default()
	}
	return &Router{
		logger: logger,
		sinks:  make(map[string]*GrowableBuffer[model.Snapshot]),
	}
}

// Register adds a named sink and returns the buffer it should consume.
func (r *Router) Register(name string, bufferSize int) *GrowableBuffer[model.Snapshot] {
	r.mu.Lock()
	defer r.mu.Unlock()

	buf := NewGrowableBuffer[model.Snapshot](bufferSize)
	r.sinks[name] = buf
	return buf
}

// Publish copies a snapshot into every sink buffer.
func (r *Router) Publish(s model.Snapshot) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for name, buf := range r.sinks {
		if !buf.Send(s) {
			r.dropped.Add(1)
			r.logger.Warn("snapshot dropped, sink closed", "sink", name, "slug", s.Slug)
		}
	}
	r.published.Add(1)
}

// Close closes every sink buffer; consumers drain remaining items and stop.
func (r *Router) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, buf := range r.sinks {
		buf.Close()
	}
}

// Published returns how many snapshots have been published.
func (r *Router) Published() int64 {
	return r.published.Load()
}

// Stats reports per-sink buffer statistics keyed by sink name.
func (r *Router) Stats() map[string]BufferStats {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make(map[string]BufferStats, len(r.sinks))
	for name, buf := range r.sinks {
		out[name] = buf.Stats()
	}
	return out
}
