// Package timeslot implements the time model for court bookings: wall-clock
// times as minutes since midnight, calendar dates as YYYY-MM-DD strings, and
// half-open [start, end) ranges.
package timeslot

import (
	"errors"
	"fmt"
	"time"
)

const (
	ClockLayout = "15:04"
	DateLayout  = "2006-01-02"

	MinutesPerDay = 24 * 60
)

var (
	ErrInvalidClock = errors.New("clock time must be in HH:MM format")

	ErrInvalidDate = errors.New("date must be in YYYY-MM-DD format")

	ErrInvalidRange = errors.New("invalid time range")
)

// Range is a half-open [Start, End) interval in minutes since midnight.
type Range struct {
	Start int
	End   int
}

// NewRange builds a range, rejecting inverted or empty intervals and
// endpoints outside a single day.
func NewRange(start, end int) (Range, error) {
	if start < 0 || end > MinutesPerDay {
		return Range{}, fmt.Errorf("%w: endpoints must be within 00:00-24:00", ErrInvalidRange)
	}
	if end <= start {
		return Range{}, fmt.Errorf("%w: end %s must be after start %s", ErrInvalidRange, FormatClock(end), FormatClock(start))
	}
	return Range{Start: start, End: end}, nil
}

// Overlaps reports whether two half-open ranges intersect. Touching
// endpoints ([9:00,10:00) and [10:00,11:00)) do not overlap.
func (r Range) Overlaps(other Range) bool {
	return r.Start < other.End && other.Start < r.End
}

// Contains reports whether other lies fully inside r.
func (r Range) Contains(other Range) bool {
	return r.Start <= other.Start && other.End <= r.End
}

func (r Range) Minutes() int {
	return r.End - r.Start
}

func (r Range) String() string {
	return FormatClock(r.Start) + "-" + FormatClock(r.End)
}

// ParseClock converts an HH:MM string to minutes since midnight.
func ParseClock(s string) (int, error) {
	t, err := time.Parse(ClockLayout, s)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidClock, s)
	}
	return t.Hour()*60 + t.Minute(), nil
}

// FormatClock converts minutes since midnight back to HH:MM. The value
// 1440 formats as 24:00.
func FormatClock(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// ParseDate parses a YYYY-MM-DD calendar day. The result is midnight UTC;
// callers compare whole days only.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return t, nil
}

// ParseRange converts a pair of HH:MM strings to a validated range.
func ParseRange(start, end string) (Range, error) {
	startMin, err := ParseClock(start)
	if err != nil {
		return Range{}, err
	}
	endMin, err := ParseClock(end)
	if err != nil {
		return Range{}, err
	}
	return NewRange(startMin, endMin)
}

// Slots divides the operating window [open, close) into consecutive
// candidate ranges of duration minutes each. The duration must evenly
// divide the window; a trailing partial slot is rejected rather than
// silently dropped.
func Slots(open, close, duration int) ([]Range, error) {
	window, err := NewRange(open, close)
	if err != nil {
		return nil, err
	}
	if duration <= 0 {
		return nil, fmt.Errorf("%w: slot duration must be positive, got %d", ErrInvalidRange, duration)
	}
	if window.Minutes()%duration != 0 {
		return nil, fmt.Errorf("%w: duration %dm does not evenly divide window %s", ErrInvalidRange, duration, window)
	}

	slots := make([]Range, 0, window.Minutes()/duration)
	for start := open; start < close; start += duration {
		slots = append(slots, Range{Start: start, End: start + duration})
	}
	return slots, nil
}
