// Package normalizer validates a raw generation request and fills the
// defaults the rest of the pipeline relies on.
package normalizer

import (
	stderrors "errors"
	"fmt"
	"math"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"shift-scheduler/errors"
	"shift-scheduler/models"
)

// Defaults applied to unset request fields.
const (
	DefaultOpening        models.Clock = 9 * 60
	DefaultClosing        models.Clock = 17 * 60
	DefaultMinStaff                    = 1
	DefaultMaxHoursPerDay              = 8.0
	DefaultMinHoursPerDay              = 0.0
	DefaultLunchMinutes                = 60
	DefaultWeeklyHours                 = 35.0

	maxWeeklyHours  = 168.0
	maxLunchMinutes = 240
)

// DefaultOpeningDays is Monday through Friday.
var DefaultOpeningDays = []models.Weekday{
	models.Monday, models.Tuesday, models.Wednesday, models.Thursday, models.Friday,
}

// Normalizer turns a models.Request into a models.Problem.
// It is safe for concurrent use.
type Normalizer struct {
	validate *validator.Validate
}

// New returns a Normalizer. A nil validate gets a fresh validator that reports
// JSON field names.
func New(validate *validator.Validate) *Normalizer {
	if validate == nil {
		validate = validator.New()
	}
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return &Normalizer{validate: validate}
}

var defaultNormalizer = New(nil)

// Normalize validates req with the default normalizer.
func Normalize(req models.Request) (*models.Problem, error) {
	return defaultNormalizer.Normalize(req)
}

// Normalize validates req and returns the default-filled problem. Every
// failure is an *errors.InputValidationError; nothing is coerced.
func (n *Normalizer) Normalize(req models.Request) (*models.Problem, error) {
	if err := n.validate.Struct(req); err != nil {
		return nil, translate(err)
	}

	p := &models.Problem{
		TeamID:    req.TeamID,
		Week:      req.WeekNumber,
		Year:      req.Year,
		WeekStart: models.ISOWeekStart(req.Year, req.WeekNumber),
	}
	for d := range p.Dates {
		p.Dates[d] = p.WeekStart.AddDate(0, 0, d)
	}

	company, err := normalizeCompany(req.CompanyConstraints)
	if err != nil {
		return nil, err
	}
	p.Company = company

	seen := make(map[string]int, len(req.Employees))
	p.Employees = make([]models.Employee, 0, len(req.Employees))
	for i, in := range req.Employees {
		if prev, dup := seen[in.ID]; dup {
			return nil, invalid(fmt.Sprintf("employees[%d].id", i), in.ID,
				fmt.Errorf("%w: also at employees[%d]", errors.ErrDuplicateEmployee, prev))
		}
		seen[in.ID] = i

		emp, err := normalizeEmployee(i, in, p.WeekStart)
		if err != nil {
			return nil, err
		}
		p.Employees = append(p.Employees, emp)
	}

	p.Policy = normalizePolicy(req.Preferences)
	return p, nil
}

func normalizeCompany(in models.CompanyConstraints) (models.Company, error) {
	c := models.Company{
		Hours:           models.Window{Start: DefaultOpening, End: DefaultClosing},
		MinStaff:        DefaultMinStaff,
		MaxDailyMinutes: hoursToMinutes(DefaultMaxHoursPerDay),
		MinDailyMinutes: hoursToMinutes(DefaultMinHoursPerDay),
		LunchMinutes:    DefaultLunchMinutes,
	}

	if len(in.OpeningDays) == 0 {
		for _, d := range DefaultOpeningDays {
			c.OpenDays[d] = true
		}
	}
	for i, name := range in.OpeningDays {
		d, err := models.ParseWeekday(name)
		if err != nil {
			return c, invalid(fmt.Sprintf("companyConstraints.openingDays[%d]", i), name,
				fmt.Errorf("%w: %v", errors.ErrInvalidWeekday, err))
		}
		c.OpenDays[d] = true
	}

	switch len(in.OpeningHours) {
	case 0:
	case 1:
		w, err := models.ParseWindow(in.OpeningHours[0])
		if err != nil {
			return c, invalid("companyConstraints.openingHours[0]", in.OpeningHours[0],
				fmt.Errorf("%w: %v", errors.ErrInvalidWindow, err))
		}
		c.Hours = w
	case 2:
		for i, s := range in.OpeningHours {
			clk, err := models.ParseClock(s)
			if err != nil {
				return c, invalid(fmt.Sprintf("companyConstraints.openingHours[%d]", i), s,
					fmt.Errorf("%w: %v", errors.ErrInvalidTime, err))
			}
			if i == 0 {
				c.Hours.Start = clk
			} else {
				c.Hours.End = clk
			}
		}
	default:
		return c, invalid("companyConstraints.openingHours", in.OpeningHours,
			fmt.Errorf("%w: expected one range or an opening and a closing time", errors.ErrInvalidWindow))
	}

	if in.DailyOpeningTime != nil {
		clk, err := models.ParseClock(*in.DailyOpeningTime)
		if err != nil {
			return c, invalid("companyConstraints.dailyOpeningTime", *in.DailyOpeningTime,
				fmt.Errorf("%w: %v", errors.ErrInvalidTime, err))
		}
		c.Hours.Start = clk
	}
	if in.DailyClosingTime != nil {
		clk, err := models.ParseClock(*in.DailyClosingTime)
		if err != nil {
			return c, invalid("companyConstraints.dailyClosingTime", *in.DailyClosingTime,
				fmt.Errorf("%w: %v", errors.ErrInvalidTime, err))
		}
		c.Hours.End = clk
	}
	if c.Hours.Start >= c.Hours.End {
		return c, invalid("companyConstraints.openingHours", c.Hours.String(),
			fmt.Errorf("%w: opening must be before closing", errors.ErrInvalidWindow))
	}

	if in.MinStaffSimultaneously != nil {
		if *in.MinStaffSimultaneously < 0 {
			return c, invalid("companyConstraints.minStaffSimultaneously", *in.MinStaffSimultaneously, errors.ErrInvalidStaffing)
		}
		c.MinStaff = *in.MinStaffSimultaneously
	}

	if in.MaxHoursPerDay != nil {
		if *in.MaxHoursPerDay <= 0 || *in.MaxHoursPerDay > 24 {
			return c, invalid("companyConstraints.maxHoursPerDay", *in.MaxHoursPerDay, errors.ErrInvalidHours)
		}
		c.MaxDailyMinutes = hoursToMinutes(*in.MaxHoursPerDay)
	}
	if in.MinHoursPerDay != nil {
		if *in.MinHoursPerDay < 0 || *in.MinHoursPerDay > 24 {
			return c, invalid("companyConstraints.minHoursPerDay", *in.MinHoursPerDay, errors.ErrInvalidHours)
		}
		c.MinDailyMinutes = hoursToMinutes(*in.MinHoursPerDay)
	}
	if c.MinDailyMinutes > c.MaxDailyMinutes {
		return c, invalid("companyConstraints.minHoursPerDay", float64(c.MinDailyMinutes)/60,
			fmt.Errorf("%w: exceeds maxHoursPerDay", errors.ErrInvalidHours))
	}

	if in.LunchBreakDuration != nil {
		if *in.LunchBreakDuration < 0 || *in.LunchBreakDuration > maxLunchMinutes {
			return c, invalid("companyConstraints.lunchBreakDuration", *in.LunchBreakDuration, errors.ErrInvalidBreak)
		}
		c.LunchMinutes = *in.LunchBreakDuration
	}
	if in.MandatoryLunchBreak != nil {
		c.MandatoryLunch = *in.MandatoryLunchBreak
	}

	return c, nil
}

func normalizeEmployee(i int, in models.EmployeeInput, weekStart time.Time) (models.Employee, error) {
	field := func(name string) string { return fmt.Sprintf("employees[%d].%s", i, name) }

	emp := models.Employee{
		Index:         i,
		ID:            in.ID,
		Name:          in.Name,
		Email:         in.Email,
		WeeklyMinutes: hoursToMinutes(DefaultWeeklyHours),
	}

	if in.WeeklyHours != nil {
		h := *in.WeeklyHours
		if h <= 0 || h > maxWeeklyHours || math.IsNaN(h) {
			return emp, invalid(field("weeklyHours"), h, errors.ErrInvalidHours)
		}
		emp.WeeklyMinutes = hoursToMinutes(h)
	}

	if in.RestDay != nil && strings.TrimSpace(*in.RestDay) != "" {
		d, err := models.ParseWeekday(*in.RestDay)
		if err != nil {
			return emp, invalid(field("restDay"), *in.RestDay, fmt.Errorf("%w: %v", errors.ErrInvalidWeekday, err))
		}
		emp.RestDay, emp.HasRestDay = d, true
	}

	for j, s := range in.PreferredHours {
		w, err := models.ParseWindow(s)
		if err != nil {
			return emp, invalid(field(fmt.Sprintf("preferredHours[%d]", j)), s,
				fmt.Errorf("%w: %v", errors.ErrInvalidWindow, err))
		}
		emp.PreferredWindows = append(emp.PreferredWindows, w)
	}

	weekEnd := weekStart.AddDate(0, 0, models.DaysPerWeek)
	for j, ex := range in.Exceptions {
		date, err := time.Parse(models.DateLayout, strings.TrimSpace(ex.Date))
		if err != nil {
			return emp, invalid(field(fmt.Sprintf("exceptions[%d].date", j)), ex.Date,
				fmt.Errorf("%w: %v", errors.ErrInvalidDate, err))
		}
		kind, ok := models.ParseExceptionKind(ex.Type)
		if !ok {
			return emp, invalid(field(fmt.Sprintf("exceptions[%d].type", j)), ex.Type, errors.ErrInvalidExceptionType)
		}
		if date.Before(weekStart) || !date.Before(weekEnd) {
			continue
		}
		emp.Exceptions = append(emp.Exceptions, models.Exception{
			Date:   date,
			Day:    models.Weekday(int(date.Sub(weekStart).Hours()) / 24),
			Reason: ex.Reason,
			Kind:   kind,
		})
	}

	if in.AllowSplitShifts != nil {
		emp.AllowSplit = *in.AllowSplitShifts
	}
	return emp, nil
}

func normalizePolicy(in models.PreferenceInput) models.PreferencePolicy {
	var p models.PreferencePolicy
	p = p.With(models.TermSplit, weight(in.FavorSplit, false))
	p = p.With(models.TermUniformity, weight(in.FavorUniformity, true))
	p = p.With(models.TermBalance, weight(in.BalanceWorkload, true))
	p = p.With(models.TermEmployeePreference, weight(in.PrioritizeEmployeePreferences, false))
	return p
}

func weight(flag *bool, def bool) float64 {
	on := def
	if flag != nil {
		on = *flag
	}
	if on {
		return 1
	}
	return 0
}

func hoursToMinutes(h float64) int {
	return int(math.Round(h * 60))
}

func invalid(field string, value any, err error) *errors.InputValidationError {
	return &errors.InputValidationError{Field: field, Value: value, Err: err}
}

// translate maps the first struct-tag failure onto an InputValidationError.
func translate(err error) error {
	var verrs validator.ValidationErrors
	if !stderrors.As(err, &verrs) || len(verrs) == 0 {
		return invalid("request", nil, err)
	}
	fe := verrs[0]
	field := fe.Namespace()
	if _, rest, ok := strings.Cut(field, "."); ok {
		field = rest
	}

	var sentinel error
	switch {
	case fe.Field() == "weekNumber":
		sentinel = errors.ErrWeekOutOfRange
	case fe.Field() == "year":
		sentinel = errors.ErrYearOutOfRange
	case fe.Field() == "employees":
		sentinel = errors.ErrEmptyRoster
	case fe.Tag() == "email":
		sentinel = errors.ErrInvalidEmail
	case fe.Tag() == "oneof":
		sentinel = errors.ErrInvalidExceptionType
	case fe.Tag() == "required":
		sentinel = errors.ErrRequired
	default:
		sentinel = fmt.Errorf("failed %q check", fe.Tag())
	}

	var value any
	if fe.Tag() != "required" {
		value = fe.Value()
	}
	return invalid(field, value, sentinel)
}
