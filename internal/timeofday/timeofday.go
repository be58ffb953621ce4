// Package timeofday handles the zero-padded "HH:MM" strings used for
// medicine schedules and reminder matching. Formatting and parsing are kept
// strict so that a stored time and a wall-clock time compare byte-for-byte.
package timeofday

import (
	"fmt"
	"time"
)

// Clock formats t as a zero-padded "HH:MM" string at minute granularity.
func Clock(t time.Time) string {
	return fmt.Sprintf("%02d:%02d", t.Hour(), t.Minute())
}

// HourPrefix formats the hour of t as "HH:". A medicine time matched against
// this prefix is due anywhere within the hour.
func HourPrefix(t time.Time) string {
	return fmt.Sprintf("%02d:", t.Hour())
}

// Parse parses a strict zero-padded 24-hour "HH:MM" string.
// "8:00" is rejected; schedules must be stored zero-padded.
func Parse(s string) (hour, minute int, err error) {
	if len(s) != 5 || s[2] != ':' {
		return 0, 0, fmt.Errorf("invalid time of day %q: want HH:MM", s)
	}
	for _, i := range []int{0, 1, 3, 4} {
		if s[i] < '0' || s[i] > '9' {
			return 0, 0, fmt.Errorf("invalid time of day %q: want HH:MM", s)
		}
	}
	hour = int(s[0]-'0')*10 + int(s[1]-'0')
	minute = int(s[3]-'0')*10 + int(s[4]-'0')
	if hour > 23 || minute > 59 {
		return 0, 0, fmt.Errorf("time of day %q out of range", s)
	}
	return hour, minute, nil
}

// Valid reports whether s is a well-formed zero-padded "HH:MM" string.
func Valid(s string) bool {
	_, _, err := Parse(s)
	return err == nil
}

// Midnight returns the start of the calendar day containing t, in t's location.
func Midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// DayKey returns a calendar-day marker used to scope dedup keys.
func DayKey(t time.Time) string {
	return t.Format("2006-01-02")
}
