package scheduler

import (
	"fmt"
	"sort"

	"shift-scheduler/errors"
	"shift-scheduler/models"
)

// Validate re-checks a week against every hard constraint of the problem and
// returns the violations, sorted. It never modifies the week.
func (e *Engine) Validate(p *models.Problem, week models.WeeklySchedule) []models.Violation {
	return validate(p, week, e.cfg)
}

func validate(p *models.Problem, week models.WeeklySchedule, cfg Config) []models.Violation {
	c := p.Company
	out := make([]models.Violation, 0)

	for i := range p.Employees {
		emp := &p.Employees[i]
		var ew models.EmployeeWeek
		if i < len(week.Employees) {
			ew = week.Employees[i]
		}
		total := 0
		for d := 0; d < models.DaysPerWeek; d++ {
			day := models.Weekday(d)
			out = append(out, checkDay(p, cfg, emp, day, ew[d])...)
			total += ew[d].ActiveMinutes()
		}
		if emp.WeeklyMinutes > 0 && total == 0 {
			out = append(out, models.Violation{
				Kind:       models.ViolationUnassignable,
				EmployeeID: emp.ID,
				Required:   emp.WeeklyMinutes,
				Actual:     0,
				Message:    "employee has contracted hours but no scheduled time",
				Day:        models.NoDay,
			})
		}
	}

	for d := 0; d < models.DaysPerWeek; d++ {
		day := models.Weekday(d)
		if !c.IsOpen(day) || c.MinStaff == 0 {
			continue
		}
		staff := newStaffing(c.Hours, c.MinStaff)
		for i := range week.Employees {
			for _, s := range week.Employees[i][d].ActiveSlots() {
				if s.End > s.Start {
					staff.add(s.Start, s.End)
				}
			}
		}
		deficits, _ := staff.deficits(day, p.DateOf(day))
		out = append(out, deficits...)
	}

	sortViolations(out)
	return out
}

// checkDay applies the per-employee, per-day constraints.
func checkDay(p *models.Problem, cfg Config, emp *models.Employee, day models.Weekday, ds models.DaySchedule) []models.Violation {
	if len(ds) == 0 {
		return nil
	}
	c := p.Company
	d := int(day)
	base := models.Violation{EmployeeID: emp.ID, Weekday: day.String(), Date: p.DateOf(day), Day: d}
	with := func(kind models.ViolationKind, required, actual int, msg string) models.Violation {
		v := base
		v.Kind, v.Required, v.Actual, v.Message = kind, required, actual, msg
		return v
	}

	var out []models.Violation
	active := ds.ActiveMinutes()

	for k, s := range ds {
		if s.End <= s.Start {
			v := with(models.ViolationOverlap, 0, s.Duration(), fmt.Sprintf("slot %s-%s is empty or reversed", s.Start, s.End))
			v.Start, v.End = s.Start.String(), s.End.String()
			out = append(out, v)
			continue
		}
		if k > 0 && s.Start < ds[k-1].End {
			v := with(models.ViolationOverlap, 0, int(ds[k-1].End-s.Start),
				fmt.Sprintf("slot %s-%s overlaps %s-%s", s.Start, s.End, ds[k-1].Start, ds[k-1].End))
			v.Start, v.End = s.Start.String(), s.End.String()
			out = append(out, v)
		}
		if !c.IsOpen(day) || !c.Hours.Contains(s.Start, s.End) {
			v := with(models.ViolationOutsideOpeningHours, c.Hours.Minutes(), s.Duration(),
				fmt.Sprintf("slot %s-%s is outside opening hours", s.Start, s.End))
			v.Start, v.End = s.Start.String(), s.End.String()
			out = append(out, v)
		}
	}

	if emp.HasRestDay && emp.RestDay == day && active > 0 {
		out = append(out, with(models.ViolationRestDay, 0, active, "employee works on the rest day"))
	}

	if ex, ok := emp.ExceptionOn(day); ok {
		limit := 0
		if !ex.Kind.RemovesDay() {
			limit = min(c.MaxDailyMinutes, c.Hours.Minutes()) / 2 / cfg.GranularityMinutes * cfg.GranularityMinutes
		}
		if active > limit {
			out = append(out, with(models.ViolationException, limit, active,
				fmt.Sprintf("%s exception allows %d minutes", ex.Kind, limit)))
		}
	}

	if active > c.MaxDailyMinutes {
		out = append(out, with(models.ViolationMaxHoursPerDay, c.MaxDailyMinutes, active, "daily maximum exceeded"))
	}
	if active > 0 && active < c.MinDailyMinutes {
		out = append(out, with(models.ViolationMinHoursPerDay, c.MinDailyMinutes, active, "daily minimum not reached"))
	}

	if c.MandatoryLunch {
		for _, run := range ds.Runs() {
			if run.Minutes() > cfg.LunchThresholdMinutes {
				v := with(models.ViolationMissingLunchBreak, cfg.LunchThresholdMinutes, run.Minutes(),
					fmt.Sprintf("continuous work %s without a lunch break", run))
				v.Start, v.End = run.Start.String(), run.End.String()
				out = append(out, v)
			}
		}
	}

	if !emp.AllowSplit && ds.Splits() > 0 {
		out = append(out, with(models.ViolationSplitShiftDisallowed, 0, ds.Splits(),
			"shift is split but the employee does not accept split shifts"))
	}

	return out
}

// Reconcile compares what the validator found with what the assignment pass
// knowingly left behind. Anything unexplained is an engine bug and yields an
// *errors.InternalFaultError.
func Reconcile(flagged, found []models.Violation) error {
	known := make(map[models.ViolationKey]bool, len(flagged))
	for _, v := range flagged {
		known[v.Key()] = true
	}
	var details []string
	for _, v := range found {
		if known[v.Key()] {
			continue
		}
		details = append(details, describe(v))
	}
	if len(details) > 0 {
		return &errors.InternalFaultError{Details: details}
	}
	return nil
}

func describe(v models.Violation) string {
	s := string(v.Kind)
	if v.EmployeeID != "" {
		s += " employee=" + v.EmployeeID
	}
	if v.Weekday != "" {
		s += " day=" + v.Weekday
	}
	return s + ": " + v.Message
}

var kindOrder = map[models.ViolationKind]int{
	models.ViolationUnassignable:         0,
	models.ViolationOverlap:              1,
	models.ViolationOutsideOpeningHours:  2,
	models.ViolationRestDay:              3,
	models.ViolationException:            4,
	models.ViolationMaxHoursPerDay:       5,
	models.ViolationMinHoursPerDay:       6,
	models.ViolationMissingLunchBreak:    7,
	models.ViolationSplitShiftDisallowed: 8,
	models.ViolationStaffingDeficit:      9,
}

func sortViolations(vs []models.Violation) {
	sort.SliceStable(vs, func(i, j int) bool {
		a, b := vs[i], vs[j]
		if a.Day != b.Day {
			return a.Day < b.Day
		}
		if a.Kind != b.Kind {
			return kindOrder[a.Kind] < kindOrder[b.Kind]
		}
		if a.EmployeeID != b.EmployeeID {
			return a.EmployeeID < b.EmployeeID
		}
		return a.Start < b.Start
	})
}
