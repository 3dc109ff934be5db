package api

import (
	"testing"
)

func TestGammaMarket_ToModel(t *testing.T) {
	m := GammaMarket{
		ID:           "501234",
		Slug:         "btc-updown-15m-1749581100",
		Question:     "Bitcoin Up or Down?",
		ConditionID:  "0xabc123",
		ClobTokenIDs: `["111222333", "444555666"]`,
		Outcomes:     `["Up", "Down"]`,
		Active:       true,
		EndDate:      "2025-06-10T19:00:00Z",
		UpdatedAt:    "2025-06-10T18:45:12Z",
	}

	got, err := m.ToModel()
	if err != nil {
		t.Fatalf("ToModel failed: %v", err)
	}

	if got.Slug != m.Slug {
		t.Errorf("Slug = %q, want %q", got.Slug, m.Slug)
	}
	if got.UpTokenID != "111222333" {
		t.Errorf("UpTokenID = %q, want %q", got.UpTokenID, "111222333")
	}
	if got.DownTokenID != "444555666" {
		t.Errorf("DownTokenID = %q, want %q", got.DownTokenID, "444555666")
	}
	if got.EndDateTS != 1749582000000000 {
		t.Errorf("EndDateTS = %d, want %d", got.EndDateTS, int64(1749582000000000))
	}
}

func TestGammaMarket_ToModel_BadTokens(t *testing.T) {
	tests := []struct {
		name   string
		tokens string
	}{
		{"not json", "111222333"},
		{"wrong count", `["only-one"]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := GammaMarket{Slug: "x", ClobTokenIDs: tt.tokens}
			if _, err := m.ToModel(); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestBookResponse_ToQuote(t *testing.T) {
	b := BookResponse{
		AssetID:   "111222333",
		Timestamp: "1749581100000",
		Bids: []BookLevel{
			{Price: "0.40", Size: "100"},
			{Price: "0.52", Size: "25"},
			{Price: "0.51", Size: "60"},
		},
		Asks: []BookLevel{
			{Price: "0.60", Size: "80"},
			{Price: "0.54", Size: "40"},
			{Price: "0.55", Size: "10"},
		},
	}

	q := b.ToQuote()

	if q.TokenID != "111222333" {
		t.Errorf("TokenID = %q", q.TokenID)
	}
	if q.BestBid != 0.52 {
		t.Errorf("BestBid = %v, want 0.52", q.BestBid)
	}
	if q.BestAsk != 0.54 {
		t.Errorf("BestAsk = %v, want 0.54", q.BestAsk)
	}
	if q.Mid != 0.53 {
		t.Errorf("Mid = %v, want 0.53", q.Mid)
	}
	if q.ExchangeTS != 1749581100000000 {
		t.Errorf("ExchangeTS = %d", q.ExchangeTS)
	}
}

func TestBookResponse_ToQuote_EmptySides(t *testing.T) {
	b := BookResponse{AssetID: "x"}
	q := b.ToQuote()

	if q.BestBid != 0 || q.BestAsk != 0 || q.Mid != 0 {
		t.Errorf("empty book produced non-zero quote: %+v", q)
	}
}

func TestParseTimestamp(t *testing.T) {
	tests := []struct {
		in   string
		want int64
	}{
		{"2025-06-10T19:00:00Z", 1749582000000000},
		{"2025-06-10T19:00:00", 1749582000000000},
		{"", 0},
		{"not-a-time", 0},
	}

	for _, tt := range tests {
		if got := ParseTimestamp(tt.in); got != tt.want {
			t.Errorf("ParseTimestamp(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}
