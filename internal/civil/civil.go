package civil

import (
	"sync"
	"time"
	// Embed the timezone database so Eastern resolves inside containers
	// that ship without /usr/share/zoneinfo.
	_ "time/tzdata"
)

// ZoneName is the reference market timezone. Contract windows are labelled in
// this zone regardless of where the gatherer runs.
const ZoneName = "America/New_York"

var (
	zoneOnce sync.Once
	zone     *time.Location
)

// Zone returns the reference timezone location.
func Zone() *time.Location {
	zoneOnce.Do(func() {
		loc, err := time.LoadLocation(ZoneName)
		if err != nil {
			// Unreachable with the embedded tzdata import above.
			panic("civil: load " + ZoneName + ": " + err.Error())
		}
		zone = loc
	})
	return zone
}

// Time is a wall-clock tuple in the reference timezone. It carries no offset;
// the offset in force is recomputed from the tuple itself on demand so a value
// can never hold a stale offset across a DST boundary.
type Time struct {
	Year   int
	Month  time.Month
	Day    int
	Hour   int
	Minute int
	Second int
}

// Of converts an absolute instant to its Eastern wall-clock representation.
func Of(t time.Time) Time {
	et := t.In(Zone())
	return Time{
		Year:   et.Year(),
		Month:  et.Month(),
		Day:    et.Day(),
		Hour:   et.Hour(),
		Minute: et.Minute(),
		Second: et.Second(),
	}
}

// Instant converts the wall-clock tuple back to an absolute instant. The UTC
// offset is probed from the tuple's own date via time.Date, so a January tuple
// built in July still resolves with the winter offset.
func (ct Time) Instant() time.Time {
	return time.Date(ct.Year, ct.Month, ct.Day, ct.Hour, ct.Minute, ct.Second, 0, Zone())
}

// Offset returns the UTC offset, in seconds east, in force at this wall-clock
// time.
func (ct Time) Offset() int {
	_, off := ct.Instant().Zone()
	return off
}

// Date returns the calendar date with the time-of-day zeroed.
func (ct Time) Date() Time {
	return Time{Year: ct.Year, Month: ct.Month, Day: ct.Day}
}

// SameDate reports whether two wall-clock times fall on the same calendar day.
func (ct Time) SameDate(other Time) bool {
	return ct.Year == other.Year && ct.Month == other.Month && ct.Day == other.Day
}

// AddDays advances the calendar date by n days with full month and year carry.
// Computing "tomorrow" from the month length alone breaks at month ends, so
// the increment goes through the time package's calendar arithmetic.
func (ct Time) AddDays(n int) Time {
	t := time.Date(ct.Year, ct.Month, ct.Day, 12, 0, 0, 0, time.UTC).AddDate(0, 0, n)
	return Time{
		Year:   t.Year(),
		Month:  t.Month(),
		Day:    t.Day(),
		Hour:   ct.Hour,
		Minute: ct.Minute,
		Second: ct.Second,
	}
}
