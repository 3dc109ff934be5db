package contract

import "time"

// Cadence is the recurrence of a contract series.
type Cadence int

const (
	M15 Cadence = iota // 15-minute windows
	H1                 // 1-hour windows
	Daily              // 24-hour windows, labelled with a noon-ET rollover
)

// Cadences returns every supported cadence.
func Cadences() []Cadence {
	return []Cadence{M15, H1, Daily}
}

// Duration returns the nominal window length. Note that for Daily this is the
// nominal 24 hours; the actual wall-clock span differs on DST transition days.
func (c Cadence) Duration() time.Duration {
	switch c {
	case M15:
		return 15 * time.Minute
	case H1:
		return time.Hour
	default:
		return 24 * time.Hour
	}
}

// Tag returns the cadence token used inside epoch and legacy slugs.
func (c Cadence) Tag() string {
	switch c {
	case M15:
		return "15m"
	case H1:
		return "1h"
	default:
		return "1d"
	}
}

// String returns the configuration name of the cadence.
func (c Cadence) String() string {
	switch c {
	case M15:
		return "m15"
	case H1:
		return "h1"
	default:
		return "daily"
	}
}

// ParseCadence resolves a configuration name ("m15", "h1", "daily").
func ParseCadence(s string) (Cadence, bool) {
	for _, c := range Cadences() {
		if s == c.String() {
			return c, true
		}
	}
	return 0, false
}

// ParseCadenceTag resolves a slug token ("15m", "1h", "1d").
func ParseCadenceTag(s string) (Cadence, bool) {
	for _, c := range Cadences() {
		if s == c.Tag() {
			return c, true
		}
	}
	return 0, false
}
