package normalizer_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "shift-scheduler/errors"
	"shift-scheduler/models"
	"shift-scheduler/normalizer"
)

func ptr[T any](v T) *T { return &v }

func validRequest() models.Request {
	return models.Request{
		TeamID:     "t1",
		WeekNumber: 10,
		Year:       2024,
		Employees: []models.EmployeeInput{
			{ID: "e1", Name: "Alice"},
		},
	}
}

func TestNormalize_Defaults(t *testing.T) {
	p, err := normalizer.Normalize(validRequest())
	require.NoError(t, err)

	assert.Equal(t, "t1", p.TeamID)
	assert.Equal(t, time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC), p.WeekStart)
	assert.Equal(t, "2024-03-10", p.DateOf(models.Sunday))

	c := p.Company
	assert.Equal(t, [models.DaysPerWeek]bool{true, true, true, true, true, false, false}, c.OpenDays)
	assert.Equal(t, models.Window{Start: 9 * 60, End: 17 * 60}, c.Hours)
	assert.Equal(t, 1, c.MinStaff)
	assert.Equal(t, 480, c.MaxDailyMinutes)
	assert.Equal(t, 0, c.MinDailyMinutes)
	assert.Equal(t, 60, c.LunchMinutes)
	assert.False(t, c.MandatoryLunch)

	require.Len(t, p.Employees, 1)
	e := p.Employees[0]
	assert.Equal(t, 35*60, e.WeeklyMinutes)
	assert.False(t, e.HasRestDay)
	assert.False(t, e.AllowSplit)

	assert.False(t, p.Policy.Enabled(models.TermSplit))
	assert.True(t, p.Policy.Enabled(models.TermUniformity))
	assert.True(t, p.Policy.Enabled(models.TermBalance))
	assert.False(t, p.Policy.Enabled(models.TermEmployeePreference))
}

func TestNormalize_Overrides(t *testing.T) {
	req := validRequest()
	req.CompanyConstraints = models.CompanyConstraints{
		OpeningDays:            []string{"Saturday", "sun"},
		OpeningHours:           []string{"08:30", "20:00"},
		DailyClosingTime:       ptr("19:00"),
		MinStaffSimultaneously: ptr(0),
		MaxHoursPerDay:         ptr(9.5),
		MinHoursPerDay:         ptr(4.0),
		LunchBreakDuration:     ptr(45),
		MandatoryLunchBreak:    ptr(true),
	}
	req.Employees[0] = models.EmployeeInput{
		ID:               "e1",
		Name:             "Alice",
		WeeklyHours:      ptr(37.5),
		RestDay:          ptr("SUNDAY"),
		PreferredHours:   []string{"08:30-12:00"},
		AllowSplitShifts: ptr(true),
		Exceptions: []models.ExceptionInput{
			{Date: "2024-03-09", Type: "training", Reason: "course"},
			{Date: "2024-03-11", Type: "sick"},
		},
	}
	req.Preferences = models.PreferenceInput{FavorSplit: ptr(true), FavorUniformity: ptr(false)}

	p, err := normalizer.Normalize(req)
	require.NoError(t, err)

	c := p.Company
	assert.Equal(t, [models.DaysPerWeek]bool{false, false, false, false, false, true, true}, c.OpenDays)
	assert.Equal(t, models.Window{Start: 8*60 + 30, End: 19 * 60}, c.Hours)
	assert.Equal(t, 0, c.MinStaff)
	assert.Equal(t, 570, c.MaxDailyMinutes)
	assert.Equal(t, 240, c.MinDailyMinutes)
	assert.Equal(t, 45, c.LunchMinutes)
	assert.True(t, c.MandatoryLunch)

	e := p.Employees[0]
	assert.Equal(t, 2250, e.WeeklyMinutes)
	assert.True(t, e.HasRestDay)
	assert.Equal(t, models.Sunday, e.RestDay)
	assert.Equal(t, []models.Window{{Start: 8*60 + 30, End: 12 * 60}}, e.PreferredWindows)
	assert.True(t, e.AllowSplit)

	// The sick day falls in the following week and is dropped.
	require.Len(t, e.Exceptions, 1)
	assert.Equal(t, models.Saturday, e.Exceptions[0].Day)
	assert.Equal(t, models.ExceptionTraining, e.Exceptions[0].Kind)

	assert.True(t, p.Policy.Enabled(models.TermSplit))
	assert.False(t, p.Policy.Enabled(models.TermUniformity))
}

func TestNormalize_Errors(t *testing.T) {
	tests := map[string]struct {
		mutate    func(*models.Request)
		wantErr   error
		wantField string
	}{
		"MissingTeam": {
			mutate:    func(r *models.Request) { r.TeamID = "" },
			wantErr:   apperrors.ErrRequired,
			wantField: "teamId",
		},
		"WeekZero": {
			mutate:    func(r *models.Request) { r.WeekNumber = 0 },
			wantErr:   apperrors.ErrWeekOutOfRange,
			wantField: "weekNumber",
		},
		"YearTooEarly": {
			mutate:    func(r *models.Request) { r.Year = 1999 },
			wantErr:   apperrors.ErrYearOutOfRange,
			wantField: "year",
		},
		"NoEmployees": {
			mutate:    func(r *models.Request) { r.Employees = []models.EmployeeInput{} },
			wantErr:   apperrors.ErrEmptyRoster,
			wantField: "employees",
		},
		"MissingEmployeeName": {
			mutate:    func(r *models.Request) { r.Employees[0].Name = "" },
			wantErr:   apperrors.ErrRequired,
			wantField: "employees[0].name",
		},
		"BadEmail": {
			mutate:    func(r *models.Request) { r.Employees[0].Email = "not-an-email" },
			wantErr:   apperrors.ErrInvalidEmail,
			wantField: "employees[0].email",
		},
		"DuplicateEmployee": {
			mutate: func(r *models.Request) {
				r.Employees = append(r.Employees, models.EmployeeInput{ID: "e1", Name: "Again"})
			},
			wantErr:   apperrors.ErrDuplicateEmployee,
			wantField: "employees[1].id",
		},
		"NegativeWeeklyHours": {
			mutate:    func(r *models.Request) { r.Employees[0].WeeklyHours = ptr(-2.0) },
			wantErr:   apperrors.ErrInvalidHours,
			wantField: "employees[0].weeklyHours",
		},
		"BadRestDay": {
			mutate:    func(r *models.Request) { r.Employees[0].RestDay = ptr("someday") },
			wantErr:   apperrors.ErrInvalidWeekday,
			wantField: "employees[0].restDay",
		},
		"BadPreferredHours": {
			mutate:    func(r *models.Request) { r.Employees[0].PreferredHours = []string{"10:00-09:00"} },
			wantErr:   apperrors.ErrInvalidWindow,
			wantField: "employees[0].preferredHours[0]",
		},
		"BadExceptionDate": {
			mutate: func(r *models.Request) {
				r.Employees[0].Exceptions = []models.ExceptionInput{{Date: "06/03/2024", Type: "sick"}}
			},
			wantErr:   apperrors.ErrInvalidDate,
			wantField: "employees[0].exceptions[0].date",
		},
		"BadExceptionType": {
			mutate: func(r *models.Request) {
				r.Employees[0].Exceptions = []models.ExceptionInput{{Date: "2024-03-06", Type: "holiday"}}
			},
			wantErr:   apperrors.ErrInvalidExceptionType,
			wantField: "employees[0].exceptions[0].type",
		},
		"BadOpeningDay": {
			mutate:    func(r *models.Request) { r.CompanyConstraints.OpeningDays = []string{"mon", "funday"} },
			wantErr:   apperrors.ErrInvalidWeekday,
			wantField: "companyConstraints.openingDays[1]",
		},
		"BadClosingTime": {
			mutate:    func(r *models.Request) { r.CompanyConstraints.DailyClosingTime = ptr("25:00") },
			wantErr:   apperrors.ErrInvalidTime,
			wantField: "companyConstraints.dailyClosingTime",
		},
		"ClosingBeforeOpening": {
			mutate:    func(r *models.Request) { r.CompanyConstraints.DailyOpeningTime = ptr("18:00") },
			wantErr:   apperrors.ErrInvalidWindow,
			wantField: "companyConstraints.openingHours",
		},
		"TooManyOpeningHours": {
			mutate:    func(r *models.Request) { r.CompanyConstraints.OpeningHours = []string{"08:00", "12:00", "18:00"} },
			wantErr:   apperrors.ErrInvalidWindow,
			wantField: "companyConstraints.openingHours",
		},
		"NegativeStaff": {
			mutate:    func(r *models.Request) { r.CompanyConstraints.MinStaffSimultaneously = ptr(-1) },
			wantErr:   apperrors.ErrInvalidStaffing,
			wantField: "companyConstraints.minStaffSimultaneously",
		},
		"MaxHoursTooHigh": {
			mutate:    func(r *models.Request) { r.CompanyConstraints.MaxHoursPerDay = ptr(25.0) },
			wantErr:   apperrors.ErrInvalidHours,
			wantField: "companyConstraints.maxHoursPerDay",
		},
		"MinAboveMax": {
			mutate: func(r *models.Request) {
				r.CompanyConstraints.MaxHoursPerDay = ptr(6.0)
				r.CompanyConstraints.MinHoursPerDay = ptr(7.0)
			},
			wantErr:   apperrors.ErrInvalidHours,
			wantField: "companyConstraints.minHoursPerDay",
		},
		"LunchTooLong": {
			mutate:    func(r *models.Request) { r.CompanyConstraints.LunchBreakDuration = ptr(300) },
			wantErr:   apperrors.ErrInvalidBreak,
			wantField: "companyConstraints.lunchBreakDuration",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			req := validRequest()
			tt.mutate(&req)

			p, err := normalizer.Normalize(req)
			assert.Nil(t, p)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.wantErr), "expected %v, got %v", tt.wantErr, err)

			var inputErr *apperrors.InputValidationError
			require.True(t, errors.As(err, &inputErr))
			assert.Equal(t, tt.wantField, inputErr.Field)
		})
	}
}

func TestNormalize_WeekBoundaries(t *testing.T) {
	tests := map[string]struct {
		year, week int
		monday     string
	}{
		"FirstWeekStartsInPreviousYear": {year: 2025, week: 1, monday: "2024-12-30"},
		"FirstWeekStartsOnJanuaryFirst": {year: 2024, week: 1, monday: "2024-01-01"},
		"LastWeek":                      {year: 2024, week: 52, monday: "2024-12-23"},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			req := validRequest()
			req.Year, req.WeekNumber = tt.year, tt.week
			p, err := normalizer.Normalize(req)
			require.NoError(t, err)
			assert.Equal(t, tt.monday, p.DateOf(models.Monday))
		})
	}
}
