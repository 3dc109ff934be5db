package writer

import (
	"strconv"
	"time"

	"github.com/rickgao/polymarket-data/internal/model"
)

// WriterConfig holds batching configuration shared by all sinks.
type WriterConfig struct {
	BatchSize     int           // Flush when the batch reaches this size
	FlushInterval time.Duration // Flush at least this often
}

// DefaultWriterConfig returns sensible defaults.
func DefaultWriterConfig() WriterConfig {
	return WriterConfig{
		BatchSize:     500,
		FlushInterval: 60 * time.Second,
	}
}

// WriterMetrics counts sink activity.
type WriterMetrics struct {
	Inserts   int64 // Rows persisted
	Conflicts int64 // Rows skipped as duplicates (Postgres only)
	Flushes   int64 // Flush operations
	Errors    int64 // Failed flushes
}

// snapshotHeader is the CSV column order. Postgres columns mirror it.
var snapshotHeader = []string{
	"received_at",
	"run_id",
	"asset",
	"cadence",
	"slug",
	"window_start",
	"best_bid",
	"best_ask",
	"mid",
	"spot_price",
}

// snapshotRecord renders one snapshot as a CSV record in header order.
func snapshotRecord(s model.Snapshot) []string {
	return []string{
		strconv.FormatInt(s.ReceivedAt, 10),
		s.RunID.String(),
		s.Asset.Short(),
		s.Cadence.String(),
		s.Slug,
		strconv.FormatInt(s.WindowStart, 10),
		formatPrice(s.BestBid),
		formatPrice(s.BestAsk),
		formatPrice(s.Mid),
		formatPrice(s.SpotPrice),
	}
}

func formatPrice(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
