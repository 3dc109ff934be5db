package contract

import (
	"testing"
	"time"

	"github.com/rickgao/polymarket-data/internal/civil"
)

func TestParseAsset(t *testing.T) {
	tests := []struct {
		in   string
		want Asset
		ok   bool
	}{
		{"btc", BTC, true},
		{"bitcoin", BTC, true},
		{"eth", ETH, true},
		{"solana", SOL, true},
		{"ripple", XRP, true},
		{"doge", 0, false},
		{"", 0, false},
	}

	for _, tt := range tests {
		got, ok := ParseAsset(tt.in)
		if ok != tt.ok || (ok && got != tt.want) {
			t.Errorf("ParseAsset(%q) = %v, %v; want %v, %v", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}

func TestEncodeSlug_Forms(t *testing.T) {
	tests := []struct {
		name   string
		window Window
		want   string
	}{
		{
			name:   "m15 epoch form",
			window: Window{BTC, M15, et(2025, time.June, 10, 14, 45)},
			want:   "btc-updown-15m-1749581100",
		},
		{
			name:   "h1 morning text form",
			window: Window{ETH, H1, et(2025, time.June, 10, 9, 0)},
			want:   "ethereum-up-or-down-june-10-9am-et",
		},
		{
			name:   "h1 noon is 12pm",
			window: Window{ETH, H1, et(2025, time.June, 10, 12, 0)},
			want:   "ethereum-up-or-down-june-10-12pm-et",
		},
		{
			name:   "h1 midnight is 12am",
			window: Window{ETH, H1, et(2025, time.June, 10, 0, 0)},
			want:   "ethereum-up-or-down-june-10-12am-et",
		},
		{
			name:   "h1 evening pm",
			window: Window{SOL, H1, et(2025, time.June, 10, 18, 0)},
			want:   "solana-up-or-down-june-10-6pm-et",
		},
		{
			name:   "daily text form",
			window: Window{BTC, Daily, et(2025, time.November, 3, 0, 0)},
			want:   "bitcoin-up-or-down-on-november-3",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.window.Slug(); got != tt.want {
				t.Errorf("Slug() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDecodeSlug(t *testing.T) {
	now := et(2025, time.June, 10, 14, 47)

	tests := []struct {
		name        string
		slug        string
		asset       Asset
		wantGrammar Grammar
		wantCadence Cadence
		wantStart   civil.Time
	}{
		{
			name:        "epoch m15",
			slug:        "btc-updown-15m-1749581100",
			asset:       BTC,
			wantGrammar: GrammarEpoch,
			wantCadence: M15,
			wantStart:   civil.Time{Year: 2025, Month: time.June, Day: 10, Hour: 14, Minute: 45},
		},
		{
			name:        "epoch h1",
			slug:        "eth-updown-1h-1749578400",
			asset:       ETH,
			wantGrammar: GrammarEpoch,
			wantCadence: H1,
			wantStart:   civil.Time{Year: 2025, Month: time.June, Day: 10, Hour: 14},
		},
		{
			name:        "daily text long name",
			slug:        "bitcoin-up-or-down-on-june-11",
			asset:       BTC,
			wantGrammar: GrammarDailyText,
			wantCadence: Daily,
			wantStart:   civil.Time{Year: 2025, Month: time.June, Day: 11},
		},
		{
			name:        "daily text short name",
			slug:        "btc-up-or-down-on-june-11",
			asset:       BTC,
			wantGrammar: GrammarDailyText,
			wantCadence: Daily,
			wantStart:   civil.Time{Year: 2025, Month: time.June, Day: 11},
		},
		{
			name:        "hourly text pm",
			slug:        "bitcoin-up-or-down-june-10-2pm-et",
			asset:       BTC,
			wantGrammar: GrammarHourlyText,
			wantCadence: H1,
			wantStart:   civil.Time{Year: 2025, Month: time.June, Day: 10, Hour: 14},
		},
		{
			name:        "hourly text 12am",
			slug:        "solana-up-or-down-june-11-12am-et",
			asset:       SOL,
			wantGrammar: GrammarHourlyText,
			wantCadence: H1,
			wantStart:   civil.Time{Year: 2025, Month: time.June, Day: 11},
		},
		{
			name:        "hourly text 12pm",
			slug:        "solana-up-or-down-june-11-12pm-et",
			asset:       SOL,
			wantGrammar: GrammarHourlyText,
			wantCadence: H1,
			wantStart:   civil.Time{Year: 2025, Month: time.June, Day: 11, Hour: 12},
		},
		{
			name:        "legacy numeric daily end becomes start minus a day",
			slug:        "btc-updown-1d-2025-06-11",
			asset:       BTC,
			wantGrammar: GrammarLegacyNumeric,
			wantCadence: Daily,
			wantStart:   civil.Time{Year: 2025, Month: time.June, Day: 10},
		},
		{
			name:        "legacy numeric with hour",
			slug:        "btc-updown-1h-2025-06-10-15",
			asset:       BTC,
			wantGrammar: GrammarLegacyNumeric,
			wantCadence: H1,
			wantStart:   civil.Time{Year: 2025, Month: time.June, Day: 10, Hour: 14},
		},
		{
			name:        "legacy numeric with hour and minute",
			slug:        "btc-updown-15m-2025-06-10-15-15",
			asset:       BTC,
			wantGrammar: GrammarLegacyNumeric,
			wantCadence: M15,
			wantStart:   civil.Time{Year: 2025, Month: time.June, Day: 10, Hour: 15},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, g, ok := DecodeSlug(tt.slug, tt.asset, now)
			if !ok {
				t.Fatalf("DecodeSlug(%q) did not match", tt.slug)
			}
			if g != tt.wantGrammar {
				t.Errorf("grammar = %v, want %v", g, tt.wantGrammar)
			}
			if w.Cadence != tt.wantCadence {
				t.Errorf("cadence = %v, want %v", w.Cadence, tt.wantCadence)
			}
			if got := civil.Of(w.Start); got != tt.wantStart {
				t.Errorf("start = %+v, want %+v", got, tt.wantStart)
			}
		})
	}
}

func TestDecodeSlug_NoMatch(t *testing.T) {
	now := et(2025, time.June, 10, 14, 47)

	slugs := []string{
		"",
		"will-trump-win-the-2028-election",
		"eth-updown-15m-1749581100",      // wrong asset for BTC
		"btc-updown-2h-1749581100",       // unknown cadence tag
		"btc-up-or-down-on-smarch-5",     // unknown month
		"btc-up-or-down-on-june",         // missing day
		"bitcoin-up-or-down-june-10-25pm-et", // hour out of range
		"bitcoin-up-or-down-june-10-9xm-et",  // bad meridiem
		"btc-updown-15m-2025-13-10",      // month out of range
		"btc-updown-15m--5",              // negative epoch
	}

	for _, slug := range slugs {
		if _, _, ok := DecodeSlug(slug, BTC, now); ok {
			t.Errorf("DecodeSlug(%q) matched, want no match", slug)
		}
	}
}

// TestDecodeSlug_GrammarPriority feeds a slug whose integer payload could be
// read either as an epoch timestamp or as the leading year of a legacy slug.
// The epoch grammar must win.
func TestDecodeSlug_GrammarPriority(t *testing.T) {
	now := et(2025, time.June, 10, 14, 47)

	w, g, ok := DecodeSlug("btc-updown-1d-2025", BTC, now)
	if !ok {
		t.Fatal("expected a match")
	}
	if g != GrammarEpoch {
		t.Fatalf("grammar = %v, want epoch", g)
	}
	if !w.Start.Equal(time.Unix(2025, 0)) {
		t.Errorf("start = %v, want unix 2025", w.Start)
	}
}

func TestDecodeSlug_YearInference(t *testing.T) {
	tests := []struct {
		name     string
		slug     string
		now      time.Time
		wantDate civil.Time
	}{
		{
			name:     "past month rolls to next year",
			slug:     "bitcoin-up-or-down-on-january-5",
			now:      et(2025, time.December, 31, 10, 0),
			wantDate: civil.Time{Year: 2026, Month: time.January, Day: 5},
		},
		{
			name:     "today stays in current year",
			slug:     "bitcoin-up-or-down-on-december-31",
			now:      et(2025, time.December, 31, 10, 0),
			wantDate: civil.Time{Year: 2025, Month: time.December, Day: 31},
		},
		{
			name:     "earlier day of current month rolls forward",
			slug:     "bitcoin-up-or-down-on-december-30",
			now:      et(2025, time.December, 31, 10, 0),
			wantDate: civil.Time{Year: 2026, Month: time.December, Day: 30},
		},
		{
			name:     "future month stays in current year",
			slug:     "bitcoin-up-or-down-on-june-15",
			now:      et(2025, time.June, 10, 10, 0),
			wantDate: civil.Time{Year: 2025, Month: time.June, Day: 15},
		},
		{
			name:     "hourly slug uses the same rule",
			slug:     "bitcoin-up-or-down-january-5-9am-et",
			now:      et(2025, time.December, 31, 10, 0),
			wantDate: civil.Time{Year: 2026, Month: time.January, Day: 5, Hour: 9},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, _, ok := DecodeSlug(tt.slug, BTC, tt.now)
			if !ok {
				t.Fatalf("DecodeSlug(%q) did not match", tt.slug)
			}
			if got := civil.Of(w.Start); got != tt.wantDate {
				t.Errorf("start = %+v, want %+v", got, tt.wantDate)
			}
		})
	}
}

// TestRoundTrip checks decode(encode(now)) across awkward instants: bucket
// boundaries, DST transition days, month ends, and the year boundary.
func TestRoundTrip(t *testing.T) {
	instants := []time.Time{
		et(2025, time.June, 10, 14, 47),
		et(2025, time.June, 10, 14, 45),
		et(2025, time.June, 10, 0, 0),
		time.Date(2025, 3, 9, 6, 59, 0, 0, time.UTC),  // 01:59 EST, pre spring-forward
		time.Date(2025, 3, 9, 7, 1, 0, 0, time.UTC),   // 03:01 EDT, post spring-forward
		time.Date(2025, 11, 2, 5, 30, 0, 0, time.UTC), // 01:30 EDT on fall-back day
		time.Date(2025, 11, 2, 6, 30, 0, 0, time.UTC), // 01:30 EST on fall-back day
		et(2025, time.November, 30, 13, 0),
		et(2025, time.December, 31, 23, 59),
		et(2026, time.January, 1, 0, 1),
	}

	for _, asset := range Assets() {
		for _, cadence := range Cadences() {
			for _, now := range instants {
				want := ActiveWindow(asset, cadence, now)
				slug := want.Slug()

				got, _, ok := DecodeSlug(slug, asset, now)
				if !ok {
					t.Errorf("%v/%v: DecodeSlug(%q) did not match", asset, cadence, slug)
					continue
				}
				if !got.SameWindow(want) {
					t.Errorf("%v/%v at %v: decoded start %v, want %v",
						asset, cadence, now, got.Start, want.Start)
				}
				if !got.Contains(now) {
					t.Errorf("%v/%v: decoded window %q does not contain %v",
						asset, cadence, slug, now)
				}
			}
		}
	}
}
