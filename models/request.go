package models

// Request is the raw input contract handed to the engine by the UI/API layer.
// Optional fields are pointers so the normalizer can tell "unset" from zero.
type Request struct {
	TeamID             string             `json:"teamId" yaml:"teamId" validate:"required"`
	WeekNumber         int                `json:"weekNumber" yaml:"weekNumber" validate:"min=1,max=52"`
	Year               int                `json:"year" yaml:"year" validate:"min=2000,max=2100"`
	Employees          []EmployeeInput    `json:"employees" yaml:"employees" validate:"required,min=1,dive"`
	CompanyConstraints CompanyConstraints `json:"companyConstraints" yaml:"companyConstraints"`
	Preferences        PreferenceInput    `json:"preferences" yaml:"preferences"`
}

// EmployeeInput holds one employee's individual constraints.
type EmployeeInput struct {
	ID               string           `json:"id" yaml:"id" validate:"required"`
	Name             string           `json:"name" yaml:"name" validate:"required"`
	Email            string           `json:"email" yaml:"email" validate:"omitempty,email"`
	RestDay          *string          `json:"restDay,omitempty" yaml:"restDay,omitempty"`
	WeeklyHours      *float64         `json:"weeklyHours,omitempty" yaml:"weeklyHours,omitempty"`
	PreferredHours   []string         `json:"preferredHours,omitempty" yaml:"preferredHours,omitempty"`
	Exceptions       []ExceptionInput `json:"exceptions,omitempty" yaml:"exceptions,omitempty" validate:"dive"`
	AllowSplitShifts *bool            `json:"allowSplitShifts,omitempty" yaml:"allowSplitShifts,omitempty"`
}

// ExceptionInput is a dated availability override.
type ExceptionInput struct {
	Date   string `json:"date" yaml:"date" validate:"required"`
	Reason string `json:"reason" yaml:"reason"`
	Type   string `json:"type" yaml:"type" validate:"required,oneof=unavailable reduced training sick vacation"`
}

// CompanyConstraints are the operating rules of the team.
type CompanyConstraints struct {
	OpeningDays            []string `json:"openingDays,omitempty" yaml:"openingDays,omitempty"`
	OpeningHours           []string `json:"openingHours,omitempty" yaml:"openingHours,omitempty"`
	MinStaffSimultaneously *int     `json:"minStaffSimultaneously,omitempty" yaml:"minStaffSimultaneously,omitempty"`
	DailyOpeningTime       *string  `json:"dailyOpeningTime,omitempty" yaml:"dailyOpeningTime,omitempty"`
	DailyClosingTime       *string  `json:"dailyClosingTime,omitempty" yaml:"dailyClosingTime,omitempty"`
	MaxHoursPerDay         *float64 `json:"maxHoursPerDay,omitempty" yaml:"maxHoursPerDay,omitempty"`
	MinHoursPerDay         *float64 `json:"minHoursPerDay,omitempty" yaml:"minHoursPerDay,omitempty"`
	LunchBreakDuration     *int     `json:"lunchBreakDuration,omitempty" yaml:"lunchBreakDuration,omitempty"`
	MandatoryLunchBreak    *bool    `json:"mandatoryLunchBreak,omitempty" yaml:"mandatoryLunchBreak,omitempty"`
}

// PreferenceInput carries the soft-preference toggles as sent by the wizard.
type PreferenceInput struct {
	FavorSplit                    *bool `json:"favorSplit,omitempty" yaml:"favorSplit,omitempty"`
	FavorUniformity               *bool `json:"favorUniformity,omitempty" yaml:"favorUniformity,omitempty"`
	BalanceWorkload               *bool `json:"balanceWorkload,omitempty" yaml:"balanceWorkload,omitempty"`
	PrioritizeEmployeePreferences *bool `json:"prioritizeEmployeePreferences,omitempty" yaml:"prioritizeEmployeePreferences,omitempty"`
}
