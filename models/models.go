package models

import "time"

// DateLayout is the wire format of calendar dates.
const DateLayout = "2006-01-02"

// ExceptionKind classifies a dated availability override.
type ExceptionKind string

const (
	ExceptionUnavailable ExceptionKind = "unavailable"
	ExceptionReduced     ExceptionKind = "reduced"
	ExceptionTraining    ExceptionKind = "training"
	ExceptionSick        ExceptionKind = "sick"
	ExceptionVacation    ExceptionKind = "vacation"
)

// ParseExceptionKind maps the wire value onto a known kind.
func ParseExceptionKind(s string) (ExceptionKind, bool) {
	switch k := ExceptionKind(s); k {
	case ExceptionUnavailable, ExceptionReduced, ExceptionTraining, ExceptionSick, ExceptionVacation:
		return k, true
	}
	return "", false
}

// RemovesDay reports whether the kind takes the whole day away.
// Only reduced leaves partial availability.
func (k ExceptionKind) RemovesDay() bool { return k != ExceptionReduced }

// Exception is a normalized exception that falls inside the target week.
type Exception struct {
	Date   time.Time
	Day    Weekday
	Reason string
	Kind   ExceptionKind
}

// Employee is the normalized, read-only view of one roster entry.
// Index is the position in the input roster and is used for stable ordering.
type Employee struct {
	Index            int
	ID               string
	Name             string
	Email            string
	WeeklyMinutes    int
	RestDay          Weekday
	HasRestDay       bool
	PreferredWindows []Window
	Exceptions       []Exception
	AllowSplit       bool
}

// ExceptionOn returns the exception affecting day d, if any. When several
// exceptions share a date, one that removes the day wins over reduced.
func (e *Employee) ExceptionOn(d Weekday) (Exception, bool) {
	var (
		found Exception
		ok    bool
	)
	for _, ex := range e.Exceptions {
		if ex.Day != d {
			continue
		}
		if !ok || (ex.Kind.RemovesDay() && !found.Kind.RemovesDay()) {
			found, ok = ex, true
		}
	}
	return found, ok
}

// Company holds the team's operating rules after defaults are applied.
type Company struct {
	OpenDays        [DaysPerWeek]bool
	Hours           Window
	MinStaff        int
	MaxDailyMinutes int
	MinDailyMinutes int
	LunchMinutes    int
	MandatoryLunch  bool
}

// IsOpen reports whether the team operates on day d.
func (c Company) IsOpen(d Weekday) bool { return c.OpenDays[d] }

// Problem is the validated, default-filled input of one generation run.
type Problem struct {
	TeamID    string
	Week      int
	Year      int
	WeekStart time.Time
	Dates     [DaysPerWeek]time.Time
	Employees []Employee
	Company   Company
	Policy    PreferencePolicy
}

// DateOf returns the calendar date of day d in wire format.
func (p *Problem) DateOf(d Weekday) string { return p.Dates[d].Format(DateLayout) }
