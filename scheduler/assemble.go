package scheduler

import (
	"fmt"
	"math"
	"time"

	"shift-scheduler/models"
)

// assemble converts the chosen week into the output contract. It makes no
// decisions of its own.
func assemble(p *models.Problem, week models.WeeklySchedule, violations []models.Violation, cfg Config, elapsed time.Duration) *models.GenerationResult {
	res := &models.GenerationResult{
		Success:    true,
		Feasible:   len(violations) == 0,
		TeamID:     p.TeamID,
		WeekNumber: p.Week,
		Year:       p.Year,
		WeekDates:  make(map[string]string, models.DaysPerWeek),
		Schedule:   make(map[string]map[string][]models.SlotOutput, len(p.Employees)),
		Violations: violations,
		Warnings:   make([]models.Warning, 0),
		Week:       week.Clone(),
	}
	if res.Violations == nil {
		res.Violations = make([]models.Violation, 0)
	}
	for d := 0; d < models.DaysPerWeek; d++ {
		res.WeekDates[models.Weekday(d).String()] = p.DateOf(models.Weekday(d))
	}

	totalMinutes := 0
	for i := range p.Employees {
		emp := &p.Employees[i]
		ew := &week.Employees[i]
		days := make(map[string][]models.SlotOutput, models.DaysPerWeek)
		for d := range ew {
			slots := make([]models.SlotOutput, 0, len(ew[d]))
			for _, s := range ew[d] {
				slots = append(slots, models.SlotOutput{
					Start:        s.Start.String(),
					End:          s.End.String(),
					Duration:     s.Duration(),
					IsLunchBreak: s.Break,
				})
			}
			days[models.Weekday(d).String()] = slots
		}
		res.Schedule[emp.ID] = days

		worked := ew.ActiveMinutes()
		totalMinutes += worked
		if diff := worked - emp.WeeklyMinutes; abs(diff) > cfg.WeeklyToleranceMinutes {
			res.Warnings = append(res.Warnings, models.Warning{
				Kind:       models.WarningWeeklyHoursMismatch,
				EmployeeID: emp.ID,
				Required:   emp.WeeklyMinutes,
				Actual:     worked,
				Message: fmt.Sprintf("scheduled %.2fh against %.2fh contracted",
					float64(worked)/60, float64(emp.WeeklyMinutes)/60),
			})
		}
	}

	res.Stats.TotalEmployees = len(p.Employees)
	res.Stats.TotalHours = round(float64(totalMinutes)/60, 2)
	if n := len(p.Employees); n > 0 {
		res.Stats.AverageHoursPerEmployee = round(float64(totalMinutes)/60/float64(n), 2)
	}
	res.ExecutionTimeMs = round(float64(elapsed)/float64(time.Millisecond), 3)
	return res
}

func round(v float64, places int) float64 {
	scale := math.Pow(10, float64(places))
	return math.Round(v*scale) / scale
}
