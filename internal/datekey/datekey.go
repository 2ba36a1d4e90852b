// Package datekey converts between calendar dates and the canonical
// YYYY-MM-DD keys used throughout the store. Keys are always derived
// from the local calendar date, never from a UTC-shifted ISO string,
// so a date picked at 23:30 in Istanbul keys the same day a human
// would read off a wall calendar.
package datekey

import (
	"errors"
	"fmt"
	"time"
)

const Layout = "2006-01-02"

var ErrInvalidKey = errors.New("datekey: invalid date key")

// Key returns the canonical key for the local calendar date of t.
func Key(t time.Time) string {
	return fmt.Sprintf("%04d-%02d-%02d", t.Year(), int(t.Month()), t.Day())
}

// Today returns the key for the current local date.
func Today() string {
	return Key(time.Now())
}

// Parse converts a key back to a local midnight time.
func Parse(key string) (time.Time, error) {
	t, err := time.ParseInLocation(Layout, key, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}
	return t, nil
}

// Valid reports whether key is a well-formed YYYY-MM-DD date.
func Valid(key string) bool {
	_, err := Parse(key)
	return err == nil
}

// AddDays returns the key n calendar days after key. Invalid keys are
// returned unchanged.
func AddDays(key string, n int) string {
	t, err := Parse(key)
	if err != nil {
		return key
	}
	return Key(t.AddDate(0, 0, n))
}

// DaysInMonth enumerates every date of the given month, day 1 through
// the last day inclusive. month is 1-based (time.Month).
func DaysInMonth(year int, month time.Month) []time.Time {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.Local)
	days := make([]time.Time, 0, 31)
	for d := first; d.Month() == month; d = d.AddDate(0, 0, 1) {
		days = append(days, d)
	}
	return days
}

// CalendarWeeks lays the month out as Monday-first rows of seven.
// Slots outside the month are zero times.
func CalendarWeeks(year int, month time.Month) [][7]time.Time {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.Local)
	offset := mondayIndex(first.Weekday())

	var weeks [][7]time.Time
	var week [7]time.Time
	slot := offset
	for d := first; d.Month() == month; d = d.AddDate(0, 0, 1) {
		week[slot] = d
		slot++
		if slot == 7 {
			weeks = append(weeks, week)
			week = [7]time.Time{}
			slot = 0
		}
	}
	if slot > 0 {
		weeks = append(weeks, week)
	}
	return weeks
}

// KeysInRange returns every date key from start to end inclusive.
// Returns nil when either bound is invalid or start sorts after end.
func KeysInRange(start, end string) []string {
	from, err := Parse(start)
	if err != nil {
		return nil
	}
	to, err := Parse(end)
	if err != nil || to.Before(from) {
		return nil
	}
	var keys []string
	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		keys = append(keys, Key(d))
	}
	return keys
}

// mondayIndex maps a weekday to its Monday-first column (Mon=0, Sun=6).
func mondayIndex(w time.Weekday) int {
	if w == time.Sunday {
		return 6
	}
	return int(w) - 1
}

// MondayOnOrBefore returns the most recent Monday at or before t.
func MondayOnOrBefore(t time.Time) time.Time {
	return t.AddDate(0, 0, -mondayIndex(t.Weekday()))
}
