package models

import (
	"fmt"
	"strconv"
	"strings"
)

// MinutesPerDay is the length of a calendar day in minutes.
const MinutesPerDay = 24 * 60

// Clock is a wall-clock time of day expressed in minutes since midnight.
// 24:00 is allowed as an end-of-day bound.
type Clock int

// ParseClock parses an "HH:MM" (or "H:MM") string.
func ParseClock(s string) (Clock, error) {
	s = strings.TrimSpace(s)
	hh, mm, ok := strings.Cut(s, ":")
	if !ok {
		return 0, fmt.Errorf("clock %q: expected HH:MM", s)
	}
	h, err := strconv.Atoi(hh)
	if err != nil {
		return 0, fmt.Errorf("clock %q: bad hour: %w", s, err)
	}
	m, err := strconv.Atoi(mm)
	if err != nil || len(mm) != 2 {
		return 0, fmt.Errorf("clock %q: bad minute", s)
	}
	if h < 0 || h > 24 || m < 0 || m > 59 || (h == 24 && m != 0) {
		return 0, fmt.Errorf("clock %q: out of range", s)
	}
	return Clock(h*60 + m), nil
}

// String formats the clock as HH:MM.
func (c Clock) String() string {
	return fmt.Sprintf("%02d:%02d", int(c)/60, int(c)%60)
}

// Window is a half-open time range [Start, End) within one day.
type Window struct {
	Start Clock
	End   Clock
}

// ParseWindow parses an "HH:MM-HH:MM" range. The start must precede the end.
func ParseWindow(s string) (Window, error) {
	a, b, ok := strings.Cut(strings.TrimSpace(s), "-")
	if !ok {
		return Window{}, fmt.Errorf("window %q: expected HH:MM-HH:MM", s)
	}
	start, err := ParseClock(a)
	if err != nil {
		return Window{}, err
	}
	end, err := ParseClock(b)
	if err != nil {
		return Window{}, err
	}
	if start >= end {
		return Window{}, fmt.Errorf("window %q: start must be before end", s)
	}
	return Window{Start: start, End: end}, nil
}

// Minutes returns the window length.
func (w Window) Minutes() int {
	if w.End <= w.Start {
		return 0
	}
	return int(w.End - w.Start)
}

// Empty reports whether the window holds no time.
func (w Window) Empty() bool { return w.Minutes() == 0 }

// Contains reports whether [start, end) lies entirely inside the window.
func (w Window) Contains(start, end Clock) bool {
	return start >= w.Start && end <= w.End
}

// Overlap returns the number of minutes [start, end) shares with the window.
func (w Window) Overlap(start, end Clock) int {
	lo := max(start, w.Start)
	hi := min(end, w.End)
	if hi <= lo {
		return 0
	}
	return int(hi - lo)
}

func (w Window) String() string {
	return w.Start.String() + "-" + w.End.String()
}
