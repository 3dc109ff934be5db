package contract

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/rickgao/polymarket-data/internal/civil"
)

// Grammar identifies which slug form a decode matched.
type Grammar int

const (
	// GrammarEpoch is the current intraday form: <short>-updown-<tag>-<unixSeconds>.
	// The payload is an absolute timestamp, which makes this form DST-proof;
	// it is always tried first.
	GrammarEpoch Grammar = iota

	// GrammarDailyText is <short|long>-up-or-down-on-<month>-<day>, no year.
	GrammarDailyText

	// GrammarHourlyText is <short|long>-up-or-down-<month>-<day>-<hour12><am|pm>-et.
	GrammarHourlyText

	// GrammarLegacyNumeric is the retired <short>-updown-<tag>-YYYY-MM-DD[-HH[-MI]]
	// form. The encoded components name the window END, so decode back-computes
	// the start.
	GrammarLegacyNumeric
)

func (g Grammar) String() string {
	switch g {
	case GrammarEpoch:
		return "epoch"
	case GrammarDailyText:
		return "daily-text"
	case GrammarHourlyText:
		return "hourly-text"
	default:
		return "legacy-numeric"
	}
}

var monthsByName = map[string]time.Month{
	"january":   time.January,
	"february":  time.February,
	"march":     time.March,
	"april":     time.April,
	"may":       time.May,
	"june":      time.June,
	"july":      time.July,
	"august":    time.August,
	"september": time.September,
	"october":   time.October,
	"november":  time.November,
	"december":  time.December,
}

func monthName(m time.Month) string {
	return strings.ToLower(m.String())
}

// DecodeSlug parses a catalogue slug into the window it names, trying each
// grammar in priority order. The "not ours" outcome is the common case when
// scanning a mixed catalogue, so it is reported as ok=false rather than an
// error. now is needed only by the text grammars, which omit the year.
func DecodeSlug(slug string, asset Asset, now time.Time) (Window, Grammar, bool) {
	if w, ok := decodeEpoch(slug, asset); ok {
		return w, GrammarEpoch, true
	}
	if w, ok := decodeDailyText(slug, asset, now); ok {
		return w, GrammarDailyText, true
	}
	if w, ok := decodeHourlyText(slug, asset, now); ok {
		return w, GrammarHourlyText, true
	}
	if w, ok := decodeLegacyNumeric(slug, asset); ok {
		return w, GrammarLegacyNumeric, true
	}
	return Window{}, 0, false
}

// Slug encodes the window in its current-generation form: epoch for m15,
// hourly text for h1, daily text for daily.
func (w Window) Slug() string {
	ct := civil.Of(w.Start)
	switch w.Cadence {
	case M15:
		return fmt.Sprintf("%s-updown-15m-%d", w.Asset.Short(), w.Start.Unix())
	case H1:
		h12, ampm := clock12(ct.Hour)
		return fmt.Sprintf("%s-up-or-down-%s-%d-%d%s-et",
			w.Asset.Long(), monthName(ct.Month), ct.Day, h12, ampm)
	default:
		return fmt.Sprintf("%s-up-or-down-on-%s-%d",
			w.Asset.Long(), monthName(ct.Month), ct.Day)
	}
}

func decodeEpoch(slug string, asset Asset) (Window, bool) {
	rest, ok := strings.CutPrefix(slug, asset.Short()+"-updown-")
	if !ok {
		return Window{}, false
	}
	tag, payload, ok := strings.Cut(rest, "-")
	if !ok {
		return Window{}, false
	}
	cadence, ok := ParseCadenceTag(tag)
	if !ok {
		return Window{}, false
	}
	secs, err := strconv.ParseInt(payload, 10, 64)
	if err != nil || secs <= 0 {
		return Window{}, false
	}
	return Window{Asset: asset, Cadence: cadence, Start: time.Unix(secs, 0).UTC()}, true
}

func decodeDailyText(slug string, asset Asset, now time.Time) (Window, bool) {
	rest, ok := cutAssetPrefix(slug, asset)
	if !ok {
		return Window{}, false
	}
	rest, ok = strings.CutPrefix(rest, "up-or-down-on-")
	if !ok {
		return Window{}, false
	}
	monthTok, dayTok, ok := strings.Cut(rest, "-")
	if !ok {
		return Window{}, false
	}
	month, ok := monthsByName[monthTok]
	if !ok {
		return Window{}, false
	}
	day, ok := parseDay(dayTok)
	if !ok {
		return Window{}, false
	}
	start := civil.Time{Year: inferYear(month, day, now), Month: month, Day: day}
	return Window{Asset: asset, Cadence: Daily, Start: start.Instant()}, true
}

func decodeHourlyText(slug string, asset Asset, now time.Time) (Window, bool) {
	rest, ok := cutAssetPrefix(slug, asset)
	if !ok {
		return Window{}, false
	}
	rest, ok = strings.CutPrefix(rest, "up-or-down-")
	if !ok {
		return Window{}, false
	}
	parts := strings.Split(rest, "-")
	if len(parts) != 4 || parts[3] != "et" {
		return Window{}, false
	}
	month, ok := monthsByName[parts[0]]
	if !ok {
		return Window{}, false
	}
	day, ok := parseDay(parts[1])
	if !ok {
		return Window{}, false
	}
	hour, ok := parseClock12(parts[2])
	if !ok {
		return Window{}, false
	}
	start := civil.Time{Year: inferYear(month, day, now), Month: month, Day: day, Hour: hour}
	return Window{Asset: asset, Cadence: H1, Start: start.Instant()}, true
}

func decodeLegacyNumeric(slug string, asset Asset) (Window, bool) {
	rest, ok := strings.CutPrefix(slug, asset.Short()+"-updown-")
	if !ok {
		return Window{}, false
	}
	tag, rest, ok := strings.Cut(rest, "-")
	if !ok {
		return Window{}, false
	}
	cadence, ok := ParseCadenceTag(tag)
	if !ok {
		return Window{}, false
	}
	parts := strings.Split(rest, "-")
	if len(parts) < 3 || len(parts) > 5 {
		return Window{}, false
	}
	nums := make([]int, len(parts))
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil {
			return Window{}, false
		}
		nums[i] = n
	}
	if nums[0] < 2000 || nums[1] < 1 || nums[1] > 12 || nums[2] < 1 || nums[2] > 31 {
		return Window{}, false
	}
	end := civil.Time{Year: nums[0], Month: time.Month(nums[1]), Day: nums[2]}
	if len(nums) >= 4 {
		if nums[3] > 23 {
			return Window{}, false
		}
		end.Hour = nums[3]
	}
	if len(nums) == 5 {
		if nums[4] > 59 {
			return Window{}, false
		}
		end.Minute = nums[4]
	}
	// Legacy slugs encode the window end; the descriptor start is the end
	// minus one cadence length.
	start := end.Instant().Add(-cadence.Duration())
	return Window{Asset: asset, Cadence: cadence, Start: start}, true
}

// cutAssetPrefix strips "<short>-" or "<long>-"; the text grammars accept both
// spellings of the same asset.
func cutAssetPrefix(slug string, asset Asset) (string, bool) {
	if rest, ok := strings.CutPrefix(slug, asset.Short()+"-"); ok {
		return rest, true
	}
	return strings.CutPrefix(slug, asset.Long()+"-")
}

// inferYear picks the year for a text slug's month/day: a date already behind
// today's Eastern calendar date belongs to next year, anything else to the
// current year.
func inferYear(month time.Month, day int, now time.Time) int {
	today := civil.Of(now)
	if month < today.Month || (month == today.Month && day < today.Day) {
		return today.Year + 1
	}
	return today.Year
}

func parseDay(s string) (int, bool) {
	d, err := strconv.Atoi(s)
	if err != nil || d < 1 || d > 31 {
		return 0, false
	}
	return d, true
}

// clock12 converts a 24-hour value to the 12-hour clock used in hourly slugs.
func clock12(hour int) (int, string) {
	ampm := "am"
	if hour >= 12 {
		ampm = "pm"
	}
	h := hour % 12
	if h == 0 {
		h = 12
	}
	return h, ampm
}

// parseClock12 parses a "<1-12>am|pm" token to a 24-hour value.
func parseClock12(s string) (int, bool) {
	var pm bool
	switch {
	case strings.HasSuffix(s, "am"):
	case strings.HasSuffix(s, "pm"):
		pm = true
	default:
		return 0, false
	}
	h, err := strconv.Atoi(s[:len(s)-2])
	if err != nil || h < 1 || h > 12 {
		return 0, false
	}
	if h == 12 {
		h = 0
	}
	if pm {
		h += 12
	}
	return h, true
}
