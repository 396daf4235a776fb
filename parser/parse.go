package parser

import (
	"encoding/csv"
	stderrors "errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"shift-scheduler/errors"
	"shift-scheduler/metrics"
	"shift-scheduler/models"
)

// rosterFields is the column count of a roster record:
// id, name, email, weeklyHours, restDay, allowSplitShifts, preferredHours.
const rosterFields = 7

// ParseRoster reads roster CSV data from the reader and returns the employees
// it describes. Lines starting with '#' are headers/comments.
// weeklyHours, restDay, allowSplitShifts and preferredHours may be empty, in
// which case the request defaults apply. preferredHours holds zero or more
// "HH:MM-HH:MM" windows separated by ';'.
// Window and weekday contents are checked later by the normalizer; this
// function only rejects records it cannot map onto fields.
func ParseRoster(r io.Reader) ([]models.EmployeeInput, error) {
	start := time.Now()
	defer func() { metrics.ParserDurationSeconds.Observe(time.Since(start).Seconds()) }()

	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	var data []models.EmployeeInput
	lineNum := 0

	for {
		record, err := reader.Read()
		lineNum++
		if err == io.EOF {
			break
		}
		if err != nil {
			metrics.ParserErrorsTotal.WithLabelValues("csv").Inc()
			return nil, fmt.Errorf("error reading CSV at line %d: %w", lineNum, err)
		}

		// Handle headers/comments
		if len(record) > 0 && strings.HasPrefix(strings.TrimSpace(record[0]), "#") {
			continue
		}

		emp, err := parseRecord(record)
		if err != nil {
			metrics.ParserErrorsTotal.WithLabelValues(errorType(err)).Inc()
			return nil, &errors.ParseError{
				Line:   lineNum,
				Record: record,
				Err:    err,
			}
		}

		data = append(data, emp)
		metrics.ParserRecordsTotal.Inc()
	}

	return data, nil
}

func parseRecord(record []string) (models.EmployeeInput, error) {
	if len(record) != rosterFields {
		return models.EmployeeInput{}, errors.ErrInvalidFieldCount
	}
	for i := range record {
		record[i] = strings.TrimSpace(record[i])
	}
	if record[0] == "" && record[1] == "" {
		return models.EmployeeInput{}, errors.ErrEmptyRecord
	}

	emp := models.EmployeeInput{
		ID:    record[0],
		Name:  record[1],
		Email: record[2],
	}

	if record[3] != "" {
		hours, err := strconv.ParseFloat(record[3], 64)
		if err != nil {
			return emp, fmt.Errorf("%w: %v", errors.ErrInvalidWeeklyHours, err)
		}
		emp.WeeklyHours = &hours
	}

	if record[4] != "" {
		restDay := record[4]
		emp.RestDay = &restDay
	}

	if record[5] != "" {
		allow, err := strconv.ParseBool(record[5])
		if err != nil {
			return emp, fmt.Errorf("%w: %v", errors.ErrInvalidSplitFlag, err)
		}
		emp.AllowSplitShifts = &allow
	}

	if record[6] != "" {
		for _, w := range strings.Split(record[6], ";") {
			if w = strings.TrimSpace(w); w != "" {
				emp.PreferredHours = append(emp.PreferredHours, w)
			}
		}
	}

	return emp, nil
}

func errorType(err error) string {
	switch {
	case stderrors.Is(err, errors.ErrInvalidFieldCount):
		return "field_count"
	case stderrors.Is(err, errors.ErrInvalidWeeklyHours):
		return "weekly_hours"
	case stderrors.Is(err, errors.ErrInvalidSplitFlag):
		return "split_flag"
	case stderrors.Is(err, errors.ErrEmptyRecord):
		return "empty_record"
	default:
		return "other"
	}
}
