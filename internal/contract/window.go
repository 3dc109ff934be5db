package contract

import (
	"time"

	"github.com/rickgao/polymarket-data/internal/civil"
)

// Window describes one contract bucket: the asset, the cadence, and the
// absolute instant the bucket starts. Start is always the beginning of the
// bucket in Eastern wall-clock terms (minute 0/15/30/45 for m15, minute 0 for
// h1, midnight for daily).
type Window struct {
	Asset   Asset
	Cadence Cadence
	Start   time.Time
}

// ActiveWindow computes the window tradable at the given instant. Every
// instant belongs to exactly one window per asset and cadence; this never
// fails.
func ActiveWindow(asset Asset, cadence Cadence, now time.Time) Window {
	ct := civil.Of(now)
	ct.Second = 0
	switch cadence {
	case M15:
		ct.Minute -= ct.Minute % 15
	case H1:
		ct.Minute = 0
	default:
		// The daily contract's date label flips at noon Eastern: from 12:00
		// onward the tradable contract carries tomorrow's date.
		if ct.Hour >= 12 {
			ct = ct.AddDays(1)
		}
		ct.Hour, ct.Minute = 0, 0
	}
	return Window{Asset: asset, Cadence: cadence, Start: ct.Instant()}
}

// ActiveSlug returns the slug of the window tradable at the given instant.
func ActiveSlug(asset Asset, cadence Cadence, now time.Time) string {
	return ActiveWindow(asset, cadence, now).Slug()
}

// Contains reports whether now falls inside the window. Both sides are
// compared as Eastern wall-clock components, matching how the slugs label
// windows.
func (w Window) Contains(now time.Time) bool {
	s := civil.Of(w.Start)
	n := civil.Of(now)
	switch w.Cadence {
	case M15:
		return s.SameDate(n) && s.Hour == n.Hour &&
			n.Minute >= s.Minute && n.Minute < s.Minute+15
	case H1:
		return s.SameDate(n) && s.Hour == n.Hour
	default:
		eff := n.Date()
		if n.Hour >= 12 {
			eff = eff.AddDays(1)
		}
		return s.SameDate(eff)
	}
}

// SameWindow reports whether two windows cover the same bucket. Slugs are
// compared semantically, not lexically: a long-name daily slug and a
// short-name one decode to distinct strings but the same window.
func (w Window) SameWindow(other Window) bool {
	if w.Asset != other.Asset || w.Cadence != other.Cadence {
		return false
	}
	return civil.Of(w.Start) == civil.Of(other.Start)
}
