package models

import (
	"fmt"
	"strings"
	"time"
)

// DaysPerWeek is the number of days in an ISO week.
const DaysPerWeek = 7

// Weekday indexes a day of the ISO week, Monday = 0 through Sunday = 6.
type Weekday int

const (
	Monday Weekday = iota
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
	Sunday
)

var weekdayNames = [DaysPerWeek]string{
	"monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday",
}

// ParseWeekday accepts full ("monday") or three-letter ("mon") names in any case.
func ParseWeekday(s string) (Weekday, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for i, full := range weekdayNames {
		if name == full || (len(name) == 3 && strings.HasPrefix(full, name)) {
			return Weekday(i), nil
		}
	}
	return 0, fmt.Errorf("unknown weekday %q", s)
}

// WeekdayOf converts a time.Weekday to the ISO index.
func WeekdayOf(d time.Weekday) Weekday {
	return Weekday((int(d) + 6) % DaysPerWeek)
}

func (d Weekday) String() string {
	if d < 0 || int(d) >= DaysPerWeek {
		return fmt.Sprintf("weekday(%d)", int(d))
	}
	return weekdayNames[d]
}

// ISOWeekStart returns the Monday (UTC, midnight) of the given ISO week.
func ISOWeekStart(year, week int) time.Time {
	jan4 := time.Date(year, time.January, 4, 0, 0, 0, 0, time.UTC)
	monday := jan4.AddDate(0, 0, -int(WeekdayOf(jan4.Weekday())))
	return monday.AddDate(0, 0, 7*(week-1))
}
