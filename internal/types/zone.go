package types

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrMonthFormat = errors.New("the month must be in YYYY-MM format")
	ErrDateFormat  = errors.New("the date must be in YYYY-MM-DD format")
)

// Zone is a fixed offset from UTC. All local calendar math (first day of
// month, anniversaries, month boundaries) goes through a Zone.
type Zone struct {
	offset time.Duration
	loc    *time.Location
}

// NewZone returns a Zone that is the given amount of minutes east of UTC.
func NewZone(minutes int) Zone {
	offset := time.Duration(minutes) * time.Minute

	sign := '+'
	if minutes < 0 {
		sign = '-'
	}
	name := fmt.Sprintf("UTC%c%02d:%02d", sign, abs(minutes)/60, abs(minutes)%60)

	return Zone{
		offset: offset,
		loc:    time.FixedZone(name, int(offset.Seconds())),
	}
}

func abs(i int) int {
	if i < 0 {
		return -i
	}
	return i
}

// Offset returns the offset from UTC.
func (z Zone) Offset() time.Duration {
	return z.offset
}

// Location returns the fixed location of the zone.
func (z Zone) Location() *time.Location {
	if z.loc == nil {
		return time.UTC
	}
	return z.loc
}

// In returns t in the zone's location.
func (z Zone) In(t time.Time) time.Time {
	return t.In(z.Location())
}

// IsFirstDay reports whether t falls on the first day of a month in local time.
func (z Zone) IsFirstDay(t time.Time) bool {
	return z.In(t).Day() == 1
}

// MonthOf returns the local month t falls into.
func (z Zone) MonthOf(t time.Time) Month {
	return MonthOf(z.In(t))
}

// MonthEnd returns the last millisecond of the local month m as a UTC instant.
func (z Zone) MonthEnd(m Month) time.Time {
	year, month, _ := time.Time(m).Date()
	next := time.Date(year, month+1, 1, 0, 0, 0, 0, z.Location())
	return next.Add(-time.Millisecond).UTC()
}

// PreviousMonth returns the local month before the one t falls into
// together with the UTC instant that closes it.
func (z Zone) PreviousMonth(t time.Time) (Month, time.Time) {
	previous := z.MonthOf(t).AddDate(0, -1)
	return previous, z.MonthEnd(previous)
}

// ParseDate parses a "YYYY-MM-DD" local date and returns the local midnight
// that starts it.
func (z Zone) ParseDate(s string) (time.Time, error) {
	t, err := time.ParseInLocation("2006-01-02", s, z.Location())
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: '%s'", ErrDateFormat, s)
	}
	return t, nil
}

// SameDay reports whether a and b fall on the same local calendar day.
func (z Zone) SameDay(a, b time.Time) bool {
	ay, am, ad := z.In(a).Date()
	by, bm, bd := z.In(b).Date()
	return ay == by && am == bm && ad == bd
}
