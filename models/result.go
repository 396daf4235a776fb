package models

// ViolationKind names a hard constraint.
type ViolationKind string

const (
	ViolationOverlap              ViolationKind = "overlap"
	ViolationOutsideOpeningHours  ViolationKind = "outside_opening_hours"
	ViolationRestDay              ViolationKind = "rest_day"
	ViolationException            ViolationKind = "exception"
	ViolationMaxHoursPerDay       ViolationKind = "max_hours_per_day"
	ViolationMinHoursPerDay       ViolationKind = "min_hours_per_day"
	ViolationMissingLunchBreak    ViolationKind = "missing_lunch_break"
	ViolationSplitShiftDisallowed ViolationKind = "split_shift_disallowed"
	ViolationStaffingDeficit      ViolationKind = "staffing_deficit"
	ViolationUnassignable         ViolationKind = "unassignable_employee"
)

// NoDay marks a violation that is not tied to a single weekday.
const NoDay = -1

// Violation records one breach of a hard constraint.
// Required and Actual carry minutes for hour bounds and head counts for
// staffing; their meaning per kind is given in Message.
type Violation struct {
	Kind       ViolationKind `json:"kind"`
	EmployeeID string        `json:"employeeId,omitempty"`
	Weekday    string        `json:"weekday,omitempty"`
	Date       string        `json:"date,omitempty"`
	Start      string        `json:"start,omitempty"`
	End        string        `json:"end,omitempty"`
	Required   int           `json:"required"`
	Actual     int           `json:"actual"`
	Message    string        `json:"message"`

	Day int `json:"-"`
}

// ViolationKey identifies a violation by what it is about, not its details.
type ViolationKey struct {
	Kind       ViolationKind
	EmployeeID string
	Day        int
}

// Key returns the identity of v.
func (v Violation) Key() ViolationKey {
	return ViolationKey{Kind: v.Kind, EmployeeID: v.EmployeeID, Day: v.Day}
}

// WarningKind names a soft notice.
type WarningKind string

const WarningWeeklyHoursMismatch WarningKind = "weekly_hours_mismatch"

// Warning is a notice that does not affect feasibility.
type Warning struct {
	Kind       WarningKind `json:"kind"`
	EmployeeID string      `json:"employeeId,omitempty"`
	Required   int         `json:"required"`
	Actual     int         `json:"actual"`
	Message    string      `json:"message"`
}

// SlotOutput is the wire form of a TimeSlot.
type SlotOutput struct {
	Start        string `json:"start"`
	End          string `json:"end"`
	Duration     int    `json:"duration"`
	IsLunchBreak bool   `json:"isLunchBreak"`
}

// Stats aggregates a generated week.
type Stats struct {
	TotalEmployees          int     `json:"totalEmployees"`
	TotalHours              float64 `json:"totalHours"`
	AverageHoursPerEmployee float64 `json:"averageHoursPerEmployee"`
}

// Diagnostics describes how the optimizer reached its choice.
type Diagnostics struct {
	CandidatesEvaluated int
	Variant             string
	Score               float64
	BudgetExhausted     bool
	DeficitMinutes      int
}

// GenerationResult is the output contract of one generation run.
// Schedule maps employee id to weekday name to slots.
type GenerationResult struct {
	Success         bool                               `json:"success"`
	Feasible        bool                               `json:"feasible"`
	TeamID          string                             `json:"teamId"`
	WeekNumber      int                                `json:"weekNumber"`
	Year            int                                `json:"year"`
	WeekDates       map[string]string                  `json:"weekDates"`
	Schedule        map[string]map[string][]SlotOutput `json:"schedule"`
	Stats           Stats                              `json:"stats"`
	Violations      []Violation                        `json:"violations"`
	Warnings        []Warning                          `json:"warnings"`
	ExecutionTimeMs float64                            `json:"executionTimeMs"`

	Week        WeeklySchedule `json:"-"`
	Diagnostics Diagnostics    `json:"-"`
}
