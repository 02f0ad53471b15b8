package scheduling

import (
	"errors"
	"fmt"
	"regexp"
	"time"
)

const (
	DateLayout  = "2006-01-02"
	ClockLayout = "15:04"
)

var (
	datePattern  = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	clockPattern = regexp.MustCompile(`^\d{2}:\d{2}$`)

	errDateFormat  = errors.New("date must be in YYYY-MM-DD format")
	errDateInvalid = errors.New("date is not a valid calendar date")
	errClockFormat = errors.New("time must be in HH:mm format")
	errClockRange  = errors.New("time must be between 00:00 and 23:59")
)

// ParseDate accepts a zero-padded YYYY-MM-DD string naming a real calendar day.
func ParseDate(s string) (time.Time, error) {
	if !datePattern.MatchString(s) {
		return time.Time{}, errDateFormat
	}
	d, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, errDateInvalid
	}
	return d, nil
}

// ParseClock converts a zero-padded HH:mm string to minutes after midnight.
func ParseClock(s string) (int, error) {
	if !clockPattern.MatchString(s) {
		return 0, errClockFormat
	}
	t, err := time.Parse(ClockLayout, s)
	if err != nil {
		return 0, errClockRange
	}
	return t.Hour()*60 + t.Minute(), nil
}

// FormatClock is the inverse of ParseClock.
func FormatClock(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// Interval is a half-open span [Start, End) in minutes after midnight.
type Interval struct {
	Start int
	End   int
}

// NewInterval parses both bounds. It does not check ordering.
func NewInterval(start, end string) (Interval, error) {
	s, err := ParseClock(start)
	if err != nil {
		return Interval{}, err
	}
	e, err := ParseClock(end)
	if err != nil {
		return Interval{}, err
	}
	return Interval{Start: s, End: e}, nil
}

// Overlaps reports whether the two intervals share at least one minute.
// Intervals that only touch at a boundary do not overlap.
func (i Interval) Overlaps(o Interval) bool {
	return i.Start < o.End && o.Start < i.End
}

// Contains reports whether o lies entirely within i.
func (i Interval) Contains(o Interval) bool {
	return i.Start <= o.Start && o.End <= i.End
}

// Empty is true when the interval has no duration.
func (i Interval) Empty() bool {
	return i.End <= i.Start
}

// Subtract removes every interval in cut from i and returns the pieces left,
// in ascending order. cut does not need to be sorted.
func (i Interval) Subtract(cut []Interval) []Interval {
	remaining := []Interval{i}
	for _, c := range cut {
		var next []Interval
		for _, r := range remaining {
			if !r.Overlaps(c) {
				next = append(next, r)
				continue
			}
			if left := (Interval{Start: r.Start, End: c.Start}); !left.Empty() {
				next = append(next, left)
			}
			if right := (Interval{Start: c.End, End: r.End}); !right.Empty() {
				next = append(next, right)
			}
		}
		remaining = next
	}
	return remaining
}

// StartsAt resolves a stored date and HH:mm start into an instant in loc.
func StartsAt(date, clock string, loc *time.Location) (time.Time, error) {
	return time.ParseInLocation(DateLayout+" "+ClockLayout, date+" "+clock, loc)
}
