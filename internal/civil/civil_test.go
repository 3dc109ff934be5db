package civil

import (
	"testing"
	"time"
)

func TestOf_DerivesOffsetFromDate(t *testing.T) {
	tests := []struct {
		name       string
		instant    time.Time
		want       Time
		wantOffset int
	}{
		{
			name:       "winter EST",
			instant:    time.Date(2025, 1, 15, 17, 0, 0, 0, time.UTC),
			want:       Time{Year: 2025, Month: time.January, Day: 15, Hour: 12},
			wantOffset: -5 * 3600,
		},
		{
			name:       "summer EDT",
			instant:    time.Date(2025, 7, 15, 16, 0, 0, 0, time.UTC),
			want:       Time{Year: 2025, Month: time.July, Day: 15, Hour: 12},
			wantOffset: -4 * 3600,
		},
		{
			name:       "evening after fall-back transition",
			instant:    time.Date(2025, 11, 2, 23, 47, 0, 0, time.UTC),
			want:       Time{Year: 2025, Month: time.November, Day: 2, Hour: 18, Minute: 47},
			wantOffset: -5 * 3600,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Of(tt.instant)
			if got != tt.want {
				t.Errorf("Of() = %+v, want %+v", got, tt.want)
			}
			if off := got.Offset(); off != tt.wantOffset {
				t.Errorf("Offset() = %d, want %d", off, tt.wantOffset)
			}
		})
	}
}

func TestInstant_ProbesTargetDate(t *testing.T) {
	// Build a January wall-clock tuple "from" July: the offset must come from
	// January, not from anything resembling the current date.
	jan := Time{Year: 2025, Month: time.January, Day: 15, Hour: 12}
	got := jan.Instant().UTC()
	want := time.Date(2025, 1, 15, 17, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("Instant() = %v, want %v", got, want)
	}

	jul := Time{Year: 2025, Month: time.July, Day: 15, Hour: 12}
	got = jul.Instant().UTC()
	want = time.Date(2025, 7, 15, 16, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("Instant() = %v, want %v", got, want)
	}
}

func TestOfInstant_RoundTrip(t *testing.T) {
	instants := []time.Time{
		time.Date(2025, 3, 9, 6, 45, 0, 0, time.UTC),  // just before spring forward
		time.Date(2025, 3, 9, 7, 30, 0, 0, time.UTC),  // just after spring forward
		time.Date(2025, 11, 2, 5, 30, 0, 0, time.UTC), // first 01:30 on fall-back day
		time.Date(2025, 12, 31, 23, 59, 0, 0, time.UTC),
		time.Date(2026, 2, 28, 12, 0, 0, 0, time.UTC),
	}

	for _, in := range instants {
		ct := Of(in)
		back := Of(ct.Instant())
		if back != ct {
			t.Errorf("round trip of %v: got %+v, want %+v", in, back, ct)
		}
	}
}

func TestAddDays_CalendarCarry(t *testing.T) {
	tests := []struct {
		name string
		in   Time
		n    int
		want Time
	}{
		{
			name: "plain increment",
			in:   Time{Year: 2025, Month: time.June, Day: 14},
			n:    1,
			want: Time{Year: 2025, Month: time.June, Day: 15},
		},
		{
			name: "month end carries",
			in:   Time{Year: 2025, Month: time.November, Day: 30},
			n:    1,
			want: Time{Year: 2025, Month: time.December, Day: 1},
		},
		{
			name: "year end carries",
			in:   Time{Year: 2025, Month: time.December, Day: 31},
			n:    1,
			want: Time{Year: 2026, Month: time.January, Day: 1},
		},
		{
			name: "february in a leap year",
			in:   Time{Year: 2024, Month: time.February, Day: 28},
			n:    1,
			want: Time{Year: 2024, Month: time.February, Day: 29},
		},
		{
			name: "time of day preserved",
			in:   Time{Year: 2025, Month: time.January, Day: 31, Hour: 12, Minute: 30},
			n:    1,
			want: Time{Year: 2025, Month: time.February, Day: 1, Hour: 12, Minute: 30},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.in.AddDays(tt.n); got != tt.want {
				t.Errorf("AddDays(%d) = %+v, want %+v", tt.n, got, tt.want)
			}
		})
	}
}
