package errors

import (
	"fmt"
	"strings"
)

// ParseError wraps a specific error with context about where it occurred.
type ParseError struct {
	Line   int
	Record []string
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error at line %d: %v (record: %v)", e.Line, e.Err, e.Record)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// InputValidationError reports a malformed or out-of-range request field.
// Field is the JSON path of the offending value, e.g. "employees[2].weeklyHours".
type InputValidationError struct {
	Field string
	Value any
	Err   error
}

func (e *InputValidationError) Error() string {
	if e.Value == nil {
		return fmt.Sprintf("invalid input %s: %v", e.Field, e.Err)
	}
	return fmt.Sprintf("invalid input %s=%v: %v", e.Field, e.Value, e.Err)
}

func (e *InputValidationError) Unwrap() error {
	return e.Err
}

// InternalFaultError signals an invariant breach the engine cannot explain.
// It indicates a bug, not a constraint conflict.
type InternalFaultError struct {
	Details []string
}

func (e *InternalFaultError) Error() string {
	return fmt.Sprintf("%v: %s", ErrInternalFault, strings.Join(e.Details, "; "))
}

func (e *InternalFaultError) Unwrap() error {
	return ErrInternalFault
}

// Roster CSV errors
var (
	ErrInvalidFieldCount  = fmt.Errorf("invalid field count")
	ErrInvalidWeeklyHours = fmt.Errorf("invalid weekly hours")
	ErrInvalidSplitFlag   = fmt.Errorf("invalid split shift flag")
	ErrEmptyRecord        = fmt.Errorf("empty record")
	ErrUnsupportedFormat  = fmt.Errorf("unsupported format")
)

// Input validation errors
var (
	ErrRequired             = fmt.Errorf("value is required")
	ErrWeekOutOfRange       = fmt.Errorf("week number out of range")
	ErrYearOutOfRange       = fmt.Errorf("year out of range")
	ErrEmptyRoster          = fmt.Errorf("employee list is empty")
	ErrDuplicateEmployee    = fmt.Errorf("duplicate employee id")
	ErrInvalidHours         = fmt.Errorf("hours out of range")
	ErrInvalidTime          = fmt.Errorf("invalid time of day")
	ErrInvalidWindow        = fmt.Errorf("invalid time window")
	ErrInvalidWeekday       = fmt.Errorf("invalid weekday")
	ErrInvalidDate          = fmt.Errorf("invalid date")
	ErrInvalidExceptionType = fmt.Errorf("invalid exception type")
	ErrInvalidStaffing      = fmt.Errorf("invalid minimum staffing")
	ErrInvalidBreak         = fmt.Errorf("invalid lunch break duration")
	ErrInvalidEmail         = fmt.Errorf("invalid email")
	ErrInternalFault        = fmt.Errorf("internal computation fault")
	ErrInvalidEngineConfig  = fmt.Errorf("invalid engine configuration")
)
