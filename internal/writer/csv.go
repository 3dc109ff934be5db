package writer

import (
	"context"
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/rickgao/polymarket-data/internal/model"
	"github.com/rickgao/polymarket-data/internal/router"
)

// CSVWriter consumes snapshots from the router buffer and appends them to
// per-asset, per-day CSV files.
type CSVWriter struct {
	cfg    WriterConfig
	dir    string
	logger *slog.Logger

	// Input from the router
	input *router.GrowableBuffer[model.Snapshot]

	// Batching
	batch       []model.Snapshot
	batchMu     sync.Mutex
	flushTicker *time.Ticker

	// Lifecycle
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	// Metrics
	metrics WriterMetrics
}

// NewCSVWriter creates a CSV sink writing into dir.
func NewCSVWriter(
	cfg WriterConfig,
	dir string,
	input *router.GrowableBuffer[model.Snapshot],
	logger *slog.Logger,
) *CSVWriter {
	if logger == nil {
		logger = slog.Default()
	}
	return &CSVWriter{
		cfg:    cfg,
		dir:    dir,
		logger: logger,
		input:  input,
		batch:  make([]model.Snapshot, 0, cfg.BatchSize),
	}
}

// Start begins consuming snapshots and writing files.
func (w *CSVWriter) Start(ctx context.Context) error {
	if err := os.MkdirAll(w.dir, 0o755); err != nil {
		return fmt.Errorf("create csv dir: %w", err)
	}

	w.ctx, w.cancel = context.WithCancel(ctx)
	w.flushTicker = time.NewTicker(w.cfg.FlushInterval)

	w.wg.Add(1)
	go w.consumeLoop()

	w.wg.Add(1)
	go w.flushLoop()

	w.logger.Info("csv writer started",
		"dir", w.dir,
		"batch_size", w.cfg.BatchSize,
		"flush_interval", w.cfg.FlushInterval,
	)
	return nil
}

// Stop gracefully shuts down the writer, flushing any buffered rows.
func (w *CSVWriter) Stop(ctx context.Context) error {
	w.logger.Info("stopping csv writer")

	if w.cancel != nil {
		w.cancel()
	}
	if w.flushTicker != nil {
		w.flushTicker.Stop()
	}

	done := make(chan struct{})
	go func() {
		w.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		w.logger.Info("csv writer stopped")
	case <-ctx.Done():
		w.logger.Warn("csv writer stop timed out")
	}

	// Drain whatever the consume loop had not picked up yet, then flush.
	for {
		s, ok := w.input.TryReceive()
		if !ok {
			break
		}
		w.batchMu.Lock()
		w.batch = append(w.batch, s)
		w.batchMu.Unlock()
	}
	w.flush()

	return nil
}

// Stats returns current metrics.
func (w *CSVWriter) Stats() WriterMetrics {
	w.batchMu.Lock()
	defer w.batchMu.Unlock()
	return w.metrics
}

func (w *CSVWriter) consumeLoop() {
	defer w.wg.Done()

	for {
		select {
		case <-w.ctx.Done():
			return
		default:
			s, ok := w.input.TryReceive()
			if !ok {
				select {
				case <-w.ctx.Done():
					return
				case <-time.After(10 * time.Millisecond):
					continue
				}
			}

			w.handleSnapshot(s)
		}
	}
}

func (w *CSVWriter) flushLoop() {
	defer w.wg.Done()

	for {
		select {
		case <-w.ctx.Done():
			return
		case <-w.flushTicker.C:
			w.flush()
		}
	}
}

func (w *CSVWriter) handleSnapshot(s model.Snapshot) {
	w.batchMu.Lock()
	w.batch = append(w.batch, s)
	shouldFlush := len(w.batch) >= w.cfg.BatchSize
	w.batchMu.Unlock()

	if shouldFlush {
		w.flush()
	}
}

// flush appends the current batch to the target files, one file per asset per
// UTC day.
func (w *CSVWriter) flush() {
	w.batchMu.Lock()
	if len(w.batch) == 0 {
		w.batchMu.Unlock()
		return
	}
	batch := w.batch
	w.batch = make([]model.Snapshot, 0, w.cfg.BatchSize)
	w.batchMu.Unlock()

	start := time.Now()

	// Group rows by target file, preserving order within each group.
	groups := make(map[string][]model.Snapshot)
	for _, s := range batch {
		groups[w.filePath(s)] = append(groups[w.filePath(s)], s)
	}

	var written int64
	var failed bool
	for path, rows := range groups {
		if err := appendRows(path, rows); err != nil {
			w.logger.Error("csv append failed", "error", err, "file", path, "count", len(rows))
			failed = true
			continue
		}
		written += int64(len(rows))
	}

	w.batchMu.Lock()
	w.metrics.Inserts += written
	w.metrics.Flushes++
	if failed {
		w.metrics.Errors++
	}
	w.batchMu.Unlock()

	w.logger.Debug("flushed snapshots",
		"count", written,
		"files", len(groups),
		"duration", time.Since(start),
	)
}

// filePath returns the target file for a snapshot: <dir>/BTC-2025-06-10.csv.
func (w *CSVWriter) filePath(s model.Snapshot) string {
	day := time.UnixMicro(s.ReceivedAt).UTC().Format("2006-01-02")
	name := fmt.Sprintf("%s-%s.csv", strings.ToUpper(s.Asset.Short()), day)
	return filepath.Join(w.dir, name)
}

// appendRows appends records to path, writing the header when the file is new.
func appendRows(path string, rows []model.Snapshot) error {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return fmt.Errorf("stat %s: %w", path, err)
	}

	cw := csv.NewWriter(f)
	if info.Size() == 0 {
		if err := cw.Write(snapshotHeader); err != nil {
			return fmt.Errorf("write header: %w", err)
		}
	}
	for _, s := range rows {
		if err := cw.Write(snapshotRecord(s)); err != nil {
			return fmt.Errorf("write row: %w", err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flush %s: %w", path, err)
	}

	return f.Sync()
}
