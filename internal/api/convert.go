package api

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/rickgao/polymarket-data/internal/model"
)

// ToModel converts a Gamma catalogue entry to the internal market type.
func (m *GammaMarket) ToModel() (model.Market, error) {
	tokens, err := decodeStringArray(m.ClobTokenIDs)
	if err != nil {
		return model.Market{}, fmt.Errorf("market %s: clobTokenIds: %w", m.Slug, err)
	}
	if len(tokens) != 2 {
		return model.Market{}, fmt.Errorf("market %s: want 2 clob tokens, got %d", m.Slug, len(tokens))
	}

	return model.Market{
		Slug:        m.Slug,
		ConditionID: m.ConditionID,
		Question:    m.Question,
		UpTokenID:   tokens[0],
		DownTokenID: tokens[1],
		Active:      m.Active,
		Closed:      m.Closed,
		EndDateTS:   ParseTimestamp(m.EndDate),
		UpdatedAt:   ParseTimestamp(m.UpdatedAt),
	}, nil
}

// ToQuote reduces an order book to its best levels. CLOB bids arrive sorted
// ascending and asks descending, so the best level of each side is the last
// element; scan anyway rather than trusting the ordering.
func (b *BookResponse) ToQuote() model.Quote {
	q := model.Quote{TokenID: b.AssetID}

	for _, lvl := range b.Bids {
		p, err := strconv.ParseFloat(lvl.Price, 64)
		if err != nil {
			continue
		}
		if p > q.BestBid {
			q.BestBid = p
		}
	}
	for _, lvl := range b.Asks {
		p, err := strconv.ParseFloat(lvl.Price, 64)
		if err != nil || p <= 0 {
			continue
		}
		if q.BestAsk == 0 || p < q.BestAsk {
			q.BestAsk = p
		}
	}
	if q.BestBid > 0 && q.BestAsk > 0 {
		q.Mid = (q.BestBid + q.BestAsk) / 2
	}

	if ms, err := strconv.ParseInt(b.Timestamp, 10, 64); err == nil {
		q.ExchangeTS = ms * 1000
	}

	return q
}

// decodeStringArray unpacks Gamma's double-encoded JSON string arrays.
func decodeStringArray(raw string) ([]string, error) {
	if raw == "" {
		return nil, nil
	}
	var out []string
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ParseTimestamp parses an ISO 8601 timestamp to microseconds since epoch.
// Returns 0 for empty or invalid input.
func ParseTimestamp(iso string) int64 {
	if iso == "" {
		return 0
	}

	t, err := time.Parse(time.RFC3339, iso)
	if err != nil {
		// Try without timezone
		t, err = time.Parse("2006-01-02T15:04:05", iso)
		if err != nil {
			return 0
		}
	}

	return t.UnixMicro()
}

// NowMicro returns the current time in microseconds since epoch.
func NowMicro() int64 {
	return time.Now().UnixMicro()
}
