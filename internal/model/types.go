package model

import (
	"github.com/google/uuid"

	"github.com/rickgao/polymarket-data/internal/contract"
)

// Market is a catalogue entry from the Gamma API, reduced to the fields the
// gatherer needs.
type Market struct {
	Slug        string // Primary key (e.g., "btc-updown-15m-1749581100")
	ConditionID string // CLOB condition id
	Question    string // Display question
	UpTokenID   string // CLOB token id of the "Up"/"Yes" outcome
	DownTokenID string // CLOB token id of the "Down"/"No" outcome
	Active      bool   // Catalogue active flag
	Closed      bool   // Catalogue closed flag
	EndDateTS   int64  // Market end time (µs since epoch), 0 if absent
	UpdatedAt   int64  // Last catalogue update (µs since epoch)
}

// Quote is one order-book reading for a contract's Up token.
type Quote struct {
	TokenID    string  // CLOB token id the quote is for
	BestBid    float64 // Best bid, dollars
	BestAsk    float64 // Best ask, dollars
	Mid        float64 // Midpoint, dollars
	ExchangeTS int64   // Exchange timestamp if provided (µs since epoch), else 0
}

// Snapshot is one collected row: the quote for the currently active window of
// an asset/cadence pair plus the spot price sampled on the same tick.
type Snapshot struct {
	ReceivedAt  int64     // Collection timestamp (µs since epoch)
	RunID       uuid.UUID // Identifies one gatherer run in persisted output
	Asset       contract.Asset
	Cadence     contract.Cadence
	Slug        string  // Slug of the active window
	WindowStart int64   // Window start (µs since epoch)
	BestBid     float64 // Up-token best bid, dollars
	BestAsk     float64 // Up-token best ask, dollars
	Mid         float64 // Up-token midpoint, dollars
	SpotPrice   float64 // Spot price from the reference exchange, USD
}
