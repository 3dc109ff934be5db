package writer

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/rickgao/polymarket-data/internal/model"
	"github.com/rickgao/polymarket-data/internal/router"
)

// PostgresWriter consumes snapshots from the router buffer and batch-inserts
// them into the snapshots table.
type PostgresWriter struct {
	cfg    WriterConfig
	logger *slog.Logger

	// Input from the router
	input *router.GrowableBuffer[model.Snapshot]

	// Database
	db *pgxpool.Pool

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

// NewPostgresWriter creates a Postgres sink.
func NewPostgresWriter(
	cfg WriterConfig,
	input *router.GrowableBuffer[model.Snapshot],
	db *pgxpool.Pool,
	logger *slog.Logger,
) *PostgresWriter {
	if logger == nil {
		logger = slog.Default()
	}
	return &PostgresWriter{
		cfg:    cfg,
		logger: logger,
		input:  input,
		db:     db,
		batch:  make([]model.Snapshot, 0, cfg.BatchSize),
	}
}

// Start begins consuming snapshots and writing to the database.
func (w *PostgresWriter) Start(ctx context.Context) error {
	w.ctx, w.cancel = context.WithCancel(ctx)
	w.flushTicker = time.NewTicker(w.cfg.FlushInterval)

	w.wg.Add(1)
	go w.consumeLoop()

	w.wg.Add(1)
	go w.flushLoop()

	w.logger.Info("postgres writer started",
		"batch_size", w.cfg.BatchSize,
		"flush_interval", w.cfg.FlushInterval,
	)
	return nil
}

// Stop gracefully shuts down the writer, flushing any buffered rows.
func (w *PostgresWriter) Stop(ctx context.Context) error {
	w.logger.Info("stopping postgres writer")

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
		w.logger.Info("postgres writer stopped")
	case <-ctx.Done():
		w.logger.Warn("postgres writer stop timed out")
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
func (w *PostgresWriter) Stats() WriterMetrics {
	w.batchMu.Lock()
	defer w.batchMu.Unlock()
	return w.metrics
}

func (w *PostgresWriter) consumeLoop() {
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

func (w *PostgresWriter) flushLoop() {
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

func (w *PostgresWriter) handleSnapshot(s model.Snapshot) {
	w.batchMu.Lock()
	w.batch = append(w.batch, s)
	shouldFlush := len(w.batch) >= w.cfg.BatchSize
	w.batchMu.Unlock()

	if shouldFlush {
		w.flush()
	}
}

// flush writes the current batch to the database.
func (w *PostgresWriter) flush() {
	w.batchMu.Lock()
	if len(w.batch) == 0 {
		w.batchMu.Unlock()
		return
	}
	batch := w.batch
	w.batch = make([]model.Snapshot, 0, w.cfg.BatchSize)
	w.batchMu.Unlock()

	start := time.Now()

	conflicts, err := w.batchInsert(batch)
	if err != nil {
		w.logger.Error("batch insert failed", "error", err, "count", len(batch))
		w.batchMu.Lock()
		w.metrics.Errors++
		w.batchMu.Unlock()
		return
	}

	w.batchMu.Lock()
	w.metrics.Inserts += int64(len(batch) - conflicts)
	w.metrics.Conflicts += int64(conflicts)
	w.metrics.Flushes++
	w.batchMu.Unlock()

	w.logger.Debug("flushed snapshots",
		"count", len(batch),
		"conflicts", conflicts,
		"duration", time.Since(start),
	)
}

// batchInsert inserts rows using pgx.Batch with ON CONFLICT DO NOTHING.
func (w *PostgresWriter) batchInsert(rows []model.Snapshot) (conflicts int, err error) {
	batch := &pgx.Batch{}
	for _, s := range rows {
		batch.Queue(`
			INSERT INTO snapshots (received_at, run_id, asset, cadence, slug, window_start, best_bid, best_ask, mid, spot_price)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
			ON CONFLICT (slug, received_at) DO NOTHING
		`, s.ReceivedAt, s.RunID, s.Asset.Short(), s.Cadence.String(), s.Slug, s.WindowStart, s.BestBid, s.BestAsk, s.Mid, s.SpotPrice)
	}

	ctx := w.ctx
	if ctx == nil || ctx.Err() != nil {
		// Final flush after Stop still has to land.
		ctx = context.Background()
	}

	results := w.db.SendBatch(ctx, batch)
	defer results.Close()

	for range rows {
		ct, err := results.Exec()
		if err != nil {
			return 0, err
		}
		if ct.RowsAffected() == 0 {
			conflicts++
		}
	}

	return conflicts, nil
}
