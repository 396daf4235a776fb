package formatter_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"shift-scheduler/formatter"
	"shift-scheduler/models"
)

func emptyWeek() map[string][]models.SlotOutput {
	days := make(map[string][]models.SlotOutput, models.DaysPerWeek)
	for d := 0; d < models.DaysPerWeek; d++ {
		days[models.Weekday(d).String()] = []models.SlotOutput{}
	}
	return days
}

func weekDates() map[string]string {
	return map[string]string{
		"monday": "2024-03-04", "tuesday": "2024-03-05", "wednesday": "2024-03-06",
		"thursday": "2024-03-07", "friday": "2024-03-08", "saturday": "2024-03-09", "sunday": "2024-03-10",
	}
}

func sampleResult() *models.GenerationResult {
	split := emptyWeek()
	split["monday"] = []models.SlotOutput{
		{Start: "09:00", End: "12:30", Duration: 210},
		{Start: "12:30", End: "13:30", Duration: 60, IsLunchBreak: true},
		{Start: "13:30", End: "17:00", Duration: 210},
	}
	full := emptyWeek()
	full["monday"] = []models.SlotOutput{{Start: "09:00", End: "17:00", Duration: 480}}
	full["tuesday"] = []models.SlotOutput{{Start: "09:00", End: "17:00", Duration: 480}}

	return &models.GenerationResult{
		Success:    true,
		Feasible:   false,
		TeamID:     "t1",
		WeekNumber: 10,
		Year:       2024,
		WeekDates:  weekDates(),
		Schedule: map[string]map[string][]models.SlotOutput{
			"bob":   split,
			"alice": full,
		},
		Stats: models.Stats{TotalEmployees: 2, TotalHours: 23, AverageHoursPerEmployee: 11.5},
		Violations: []models.Violation{
			{Kind: models.ViolationSplitShiftDisallowed, EmployeeID: "bob", Weekday: "monday", Date: "2024-03-04", Message: "split"},
			{Kind: models.ViolationStaffingDeficit, Weekday: "wednesday", Date: "2024-03-06", Start: "09:00", End: "17:00", Required: 1, Message: "0 of 1 required employees present 09:00-17:00"},
		},
		Warnings: []models.Warning{
			{Kind: models.WarningWeeklyHoursMismatch, EmployeeID: "bob", Required: 2400, Actual: 420, Message: "scheduled 7.00h against 40.00h contracted"},
		},
		ExecutionTimeMs: 1.25,
	}
}

func TestFormatText(t *testing.T) {
	tests := map[string]struct {
		result      *models.GenerationResult
		contains    []string
		notContains []string
	}{
		"EmptyRoster": {
			result: &models.GenerationResult{TeamID: "t0", WeekNumber: 1, Year: 2025, Feasible: true},
			contains: []string{
				"team=t0 week=1/2025 feasible=true",
				"employees=0 total=0.00h average=0.00h elapsed=0.000ms",
			},
			notContains: []string{"Team violations:"},
		},
		"WithViolations": {
			result: sampleResult(),
			contains: []string{
				"team=t1 week=10/2024 feasible=false",
				"alice : total=16.00h ; [monday: 09:00-17:00, tuesday: 09:00-17:00, wednesday: off,",
				"bob : total=7.00h ; [monday: 09:00-12:30 (lunch 12:30-13:30) 13:30-17:00, tuesday: off,",
				"  ⚠️  split_shift_disallowed [monday]: split",
				"  note: weekly_hours_mismatch: scheduled 7.00h against 40.00h contracted",
				"Team violations:\n  ⚠️  staffing_deficit [wednesday 09:00-17:00]: 0 of 1 required employees present 09:00-17:00",
				"employees=2 total=23.00h average=11.50h elapsed=1.250ms",
			},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			output := formatter.FormatText(tt.result)
			for _, s := range tt.contains {
				assert.Contains(t, output, s)
			}
			for _, s := range tt.notContains {
				assert.NotContains(t, output, s)
			}
		})
	}
}

func TestFormatText_EmployeesSorted(t *testing.T) {
	output := formatter.FormatText(sampleResult())
	assert.Less(t, strings.Index(output, "alice :"), strings.Index(output, "bob :"))
}

func TestFormatJSON(t *testing.T) {
	output := formatter.FormatJSON(sampleResult())
	for _, s := range []string{
		`"success": true`,
		`"feasible": false`,
		`"teamId": "t1"`,
		`"weekNumber": 10`,
		`"monday": "2024-03-04"`,
		`"isLunchBreak": true`,
		`"kind": "staffing_deficit"`,
		`"totalHours": 23`,
		`"executionTimeMs": 1.25`,
	} {
		assert.Contains(t, output, s)
	}
	assert.NotContains(t, output, `"Diagnostics"`)
	assert.NotContains(t, output, `"Week"`)
}

func TestFormatCSV(t *testing.T) {
	output := formatter.FormatCSV(sampleResult())
	lines := strings.Split(strings.TrimSpace(output), "\n")

	assert.Equal(t, "Employee,Weekday,Date,Start,End,Minutes,Lunch Break,Violations", lines[0])
	// alice: 2 slot rows and 5 days off; bob: 3 slot rows and 6 days off.
	assert.Len(t, lines, 1+7+9)

	for _, s := range []string{
		"alice,monday,2024-03-04,09:00,17:00,480,No,",
		"alice,sunday,2024-03-10,,,0,No,",
		"bob,monday,2024-03-04,09:00,12:30,210,No,split_shift_disallowed",
		"bob,monday,2024-03-04,12:30,13:30,60,Yes,split_shift_disallowed",
		"bob,tuesday,2024-03-05,,,0,No,",
	} {
		assert.Contains(t, output, s)
	}
}
