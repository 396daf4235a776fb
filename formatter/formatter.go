package formatter

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"shift-scheduler/models"
)

// ScheduleData holds prepared schedule data used by all formatters
type ScheduleData struct {
	Employees []EmployeeData
	// Unattributed holds violations that concern the whole team, such as
	// staffing deficits.
	Unattributed []models.Violation
}

// EmployeeData groups one employee's week
type EmployeeData struct {
	ID         string
	TotalHours float64
	Days       [models.DaysPerWeek]DayData
	Violations []models.Violation
	Warnings   []models.Warning
}

// DayData is one employee's slots on one day
type DayData struct {
	Weekday    string
	Date       string
	Slots      []models.SlotOutput
	Violations []models.ViolationKind
}

// prepareScheduleData extracts and organizes result data for formatting
func prepareScheduleData(res *models.GenerationResult) *ScheduleData {
	byEmployee := make(map[string][]models.Violation)
	var unattributed []models.Violation
	for _, v := range res.Violations {
		if v.EmployeeID == "" {
			unattributed = append(unattributed, v)
			continue
		}
		byEmployee[v.EmployeeID] = append(byEmployee[v.EmployeeID], v)
	}
	warnings := make(map[string][]models.Warning)
	for _, w := range res.Warnings {
		warnings[w.EmployeeID] = append(warnings[w.EmployeeID], w)
	}

	ids := getSortedEmployees(res.Schedule)
	employees := make([]EmployeeData, 0, len(ids))
	for _, id := range ids {
		ed := EmployeeData{ID: id, Violations: byEmployee[id], Warnings: warnings[id]}
		minutes := 0
		for d := 0; d < models.DaysPerWeek; d++ {
			name := models.Weekday(d).String()
			day := DayData{Weekday: name, Date: res.WeekDates[name], Slots: res.Schedule[id][name]}
			for _, s := range day.Slots {
				if !s.IsLunchBreak {
					minutes += s.Duration
				}
			}
			for _, v := range ed.Violations {
				if v.Weekday == name {
					day.Violations = append(day.Violations, v.Kind)
				}
			}
			ed.Days[d] = day
		}
		ed.TotalHours = float64(minutes) / 60
		employees = append(employees, ed)
	}

	return &ScheduleData{
		Employees:    employees,
		Unattributed: unattributed,
	}
}

// FormatText returns the text representation of the result
func FormatText(res *models.GenerationResult) string {
	data := prepareScheduleData(res)
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("team=%s week=%d/%d feasible=%t\n", res.TeamID, res.WeekNumber, res.Year, res.Feasible))
	for _, ed := range data.Employees {
		sb.WriteString(formatTextLine(ed))
		sb.WriteString("\n")

		for _, v := range ed.Violations {
			sb.WriteString(fmt.Sprintf("  ⚠️  %s\n", formatViolation(v)))
		}
		for _, w := range ed.Warnings {
			sb.WriteString(fmt.Sprintf("  note: %s: %s\n", w.Kind, w.Message))
		}
	}

	if len(data.Unattributed) > 0 {
		sb.WriteString("Team violations:\n")
		for _, v := range data.Unattributed {
			sb.WriteString(fmt.Sprintf("  ⚠️  %s\n", formatViolation(v)))
		}
	}

	sb.WriteString(fmt.Sprintf("employees=%d total=%.2fh average=%.2fh elapsed=%.3fms\n",
		res.Stats.TotalEmployees, res.Stats.TotalHours, res.Stats.AverageHoursPerEmployee, res.ExecutionTimeMs))
	return sb.String()
}

// FormatJSON returns the JSON representation of the result
func FormatJSON(res *models.GenerationResult) string {
	jsonBytes, _ := json.MarshalIndent(res, "", "  ")
	return string(jsonBytes)
}

// FormatCSV returns the CSV representation of the result, one row per slot
// and one row per day off.
func FormatCSV(res *models.GenerationResult) string {
	data := prepareScheduleData(res)
	var sb strings.Builder
	writer := csv.NewWriter(&sb)

	// Write header
	writer.Write([]string{
		"Employee", "Weekday", "Date", "Start", "End", "Minutes", "Lunch Break", "Violations",
	})

	for _, ed := range data.Employees {
		for _, day := range ed.Days {
			writeDayToCSV(writer, ed.ID, day)
		}
	}

	writer.Flush()
	return sb.String()
}

// writeDayToCSV writes a single employee day to CSV
func writeDayToCSV(writer *csv.Writer, id string, day DayData) {
	kinds := make([]string, len(day.Violations))
	for i, k := range day.Violations {
		kinds[i] = string(k)
	}
	violations := strings.Join(kinds, "; ")

	if len(day.Slots) == 0 {
		// Day off
		writer.Write([]string{id, day.Weekday, day.Date, "", "", "0", "No", violations})
		return
	}

	for _, s := range day.Slots {
		lunch := "No"
		if s.IsLunchBreak {
			lunch = "Yes"
		}
		writer.Write([]string{
			id, day.Weekday, day.Date, s.Start, s.End,
			fmt.Sprintf("%d", s.Duration), lunch, violations,
		})
	}
}

// formatTextLine formats a single employee line for text output
func formatTextLine(ed EmployeeData) string {
	parts := make([]string, 0, models.DaysPerWeek)
	for _, day := range ed.Days {
		if len(day.Slots) == 0 {
			parts = append(parts, fmt.Sprintf("%s: off", day.Weekday))
			continue
		}
		var slots []string
		for _, s := range day.Slots {
			if s.IsLunchBreak {
				slots = append(slots, fmt.Sprintf("(lunch %s-%s)", s.Start, s.End))
				continue
			}
			slots = append(slots, fmt.Sprintf("%s-%s", s.Start, s.End))
		}
		parts = append(parts, fmt.Sprintf("%s: %s", day.Weekday, strings.Join(slots, " ")))
	}
	return fmt.Sprintf("%s : total=%.2fh ; [%s]", ed.ID, ed.TotalHours, strings.Join(parts, ", "))
}

func formatViolation(v models.Violation) string {
	where := v.Weekday
	if v.Start != "" {
		where = fmt.Sprintf("%s %s-%s", v.Weekday, v.Start, v.End)
	}
	if where == "" {
		return fmt.Sprintf("%s: %s", v.Kind, v.Message)
	}
	return fmt.Sprintf("%s [%s]: %s", v.Kind, where, v.Message)
}

// getSortedEmployees returns sorted employee ids
func getSortedEmployees(schedule map[string]map[string][]models.SlotOutput) []string {
	ids := make([]string, 0, len(schedule))
	for id := range schedule {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
