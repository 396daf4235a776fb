// Package availability derives, per employee and day, the single window in
// which the employee may work and how many minutes that day may carry.
package availability

import "shift-scheduler/models"

// Reason explains why a day is (or is not) workable.
type Reason string

const (
	ReasonOpen    Reason = "open"
	ReasonClosed  Reason = "closed"
	ReasonRestDay Reason = "rest_day"
)

// ExceptionReason returns the reason recorded for an exception kind.
func ExceptionReason(k models.ExceptionKind) Reason { return Reason(k) }

// Day is the availability of one employee on one day. An empty window means
// the employee cannot work that day.
type Day struct {
	Window     models.Window
	CapMinutes int
	Reason     Reason
}

// Workable reports whether any time may be assigned.
func (d Day) Workable() bool { return !d.Window.Empty() && d.CapMinutes > 0 }

// Week is the availability of one employee, Monday first.
type Week [models.DaysPerWeek]Day

// WorkableDays lists the days with availability, in week order.
func (w *Week) WorkableDays() []models.Weekday {
	days := make([]models.Weekday, 0, models.DaysPerWeek)
	for d := range w {
		if w[d].Workable() {
			days = append(days, models.Weekday(d))
		}
	}
	return days
}

// Calculate returns one Week per employee, index-aligned with p.Employees.
// granularity rounds the reduced-day cap down; values below 1 are treated as 1.
//
// Precedence: a closed day is never workable; an exception overrides the
// rest day only to remove or reduce time, never to reopen it; otherwise the
// full opening window with the company's daily maximum applies.
func Calculate(p *models.Problem, granularity int) []Week {
	granularity = max(granularity, 1)
	out := make([]Week, len(p.Employees))
	for i := range p.Employees {
		emp := &p.Employees[i]
		for d := 0; d < models.DaysPerWeek; d++ {
			out[i][d] = dayFor(p.Company, emp, models.Weekday(d), granularity)
		}
	}
	return out
}

func dayFor(c models.Company, emp *models.Employee, d models.Weekday, granularity int) Day {
	if !c.IsOpen(d) {
		return Day{Reason: ReasonClosed}
	}
	limit := min(c.MaxDailyMinutes, c.Hours.Minutes())

	if ex, ok := emp.ExceptionOn(d); ok {
		if ex.Kind.RemovesDay() {
			return Day{Reason: ExceptionReason(ex.Kind)}
		}
		if emp.HasRestDay && emp.RestDay == d {
			return Day{Reason: ReasonRestDay}
		}
		reduced := (limit / 2) / granularity * granularity
		return Day{Window: c.Hours, CapMinutes: reduced, Reason: ExceptionReason(ex.Kind)}
	}

	if emp.HasRestDay && emp.RestDay == d {
		return Day{Reason: ReasonRestDay}
	}
	return Day{Window: c.Hours, CapMinutes: limit, Reason: ReasonOpen}
}
