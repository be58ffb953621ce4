package timeofday

import (
	"testing"
	"time"
)

func TestParse(t *testing.T) {
	t.Parallel()

	valid := map[string][2]int{
		"00:00": {0, 0},
		"08:00": {8, 0},
		"08:47": {8, 47},
		"23:59": {23, 59},
	}
	for input, want := range valid {
		h, m, err := Parse(input)
		if err != nil {
			t.Fatalf("Parse(%q) returned error: %v", input, err)
		}
		if h != want[0] || m != want[1] {
			t.Fatalf("Parse(%q) = %d:%d, want %d:%d", input, h, m, want[0], want[1])
		}
	}

	invalid := []string{"", "8:00", "08:0", "24:00", "12:60", "ab:cd", "08-00", "08:000"}
	for _, input := range invalid {
		if _, _, err := Parse(input); err == nil {
			t.Fatalf("Parse(%q) succeeded, want error", input)
		}
		if Valid(input) {
			t.Fatalf("Valid(%q) = true, want false", input)
		}
	}
}

func TestClockZeroPadding(t *testing.T) {
	t.Parallel()

	at := time.Date(2025, 3, 10, 8, 5, 42, 0, time.UTC)
	if got := Clock(at); got != "08:05" {
		t.Fatalf("Clock = %q, want %q", got, "08:05")
	}
	if got := HourPrefix(at); got != "08:" {
		t.Fatalf("HourPrefix = %q, want %q", got, "08:")
	}
}

// A stored schedule string must compare equal to the formatted wall clock of
// the same moment, and unpadded variants must not.
func TestScheduleRoundTrip(t *testing.T) {
	t.Parallel()

	at := time.Date(2025, 3, 10, 8, 0, 3, 0, time.UTC)
	if Clock(at) != "08:00" {
		t.Fatalf("wall clock %v formats as %q, want 08:00", at, Clock(at))
	}
	if Clock(at) == "8:00" {
		t.Fatalf("unpadded schedule string must not match the formatted clock")
	}
}

func TestMidnightAndDayKey(t *testing.T) {
	t.Parallel()

	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Fatalf("load location: %v", err)
	}

	at := time.Date(2025, 3, 10, 20, 15, 0, 0, loc)
	mid := Midnight(at)
	if mid.Hour() != 0 || mid.Minute() != 0 || mid.Day() != 10 || mid.Location() != loc {
		t.Fatalf("Midnight(%v) = %v", at, mid)
	}
	if got := DayKey(at); got != "2025-03-10" {
		t.Fatalf("DayKey = %q, want %q", got, "2025-03-10")
	}
	if DayKey(at) == DayKey(at.Add(24*time.Hour)) {
		t.Fatalf("consecutive days must have distinct day keys")
	}
}
