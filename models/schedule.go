package models

// TimeSlot is one contiguous piece of a working day. Break slots are unpaid
// and count neither toward staffing nor toward hour totals.
type TimeSlot struct {
	Start Clock
	End   Clock
	Break bool
}

// Duration returns the slot length in minutes.
func (s TimeSlot) Duration() int { return int(s.End - s.Start) }

// DaySchedule is the ordered slot list of one employee on one day.
type DaySchedule []TimeSlot

// ActiveMinutes sums the non-break slot durations.
func (d DaySchedule) ActiveMinutes() int {
	total := 0
	for _, s := range d {
		if !s.Break {
			total += s.Duration()
		}
	}
	return total
}

// ActiveSlots returns the non-break slots in order.
func (d DaySchedule) ActiveSlots() []TimeSlot {
	out := make([]TimeSlot, 0, len(d))
	for _, s := range d {
		if !s.Break {
			out = append(out, s)
		}
	}
	return out
}

// Worked reports whether the day carries any active time.
func (d DaySchedule) Worked() bool { return d.ActiveMinutes() > 0 }

// Span returns the first active start and the last active end.
func (d DaySchedule) Span() (Clock, Clock, bool) {
	active := d.ActiveSlots()
	if len(active) == 0 {
		return 0, 0, false
	}
	return active[0].Start, active[len(active)-1].End, true
}

// Runs merges touching active slots and returns the continuous stretches of
// work. A break between two active slots ends a run.
func (d DaySchedule) Runs() []Window {
	var runs []Window
	for _, s := range d.ActiveSlots() {
		if n := len(runs); n > 0 && runs[n-1].End == s.Start {
			runs[n-1].End = s.End
			continue
		}
		runs = append(runs, Window{Start: s.Start, End: s.End})
	}
	return runs
}

// Splits counts the gaps between continuous runs of work.
func (d DaySchedule) Splits() int {
	if n := len(d.Runs()); n > 1 {
		return n - 1
	}
	return 0
}

// Clone returns an independent copy.
func (d DaySchedule) Clone() DaySchedule {
	if d == nil {
		return nil
	}
	out := make(DaySchedule, len(d))
	copy(out, d)
	return out
}

// EmployeeWeek holds the seven days of one employee, Monday first.
type EmployeeWeek [DaysPerWeek]DaySchedule

// ActiveMinutes sums active time over the week.
func (w *EmployeeWeek) ActiveMinutes() int {
	total := 0
	for _, d := range w {
		total += d.ActiveMinutes()
	}
	return total
}

// WeeklySchedule is the arena of employee weeks, index-aligned with
// Problem.Employees.
type WeeklySchedule struct {
	Employees []EmployeeWeek
}

// NewWeeklySchedule allocates an empty week for n employees.
func NewWeeklySchedule(n int) WeeklySchedule {
	return WeeklySchedule{Employees: make([]EmployeeWeek, n)}
}

// Clone deep-copies the schedule so later stages never alias earlier ones.
func (w WeeklySchedule) Clone() WeeklySchedule {
	out := NewWeeklySchedule(len(w.Employees))
	for i := range w.Employees {
		for d := range w.Employees[i] {
			out.Employees[i][d] = w.Employees[i][d].Clone()
		}
	}
	return out
}
