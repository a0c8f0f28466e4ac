package timeseries

import (
	"fmt"
	"time"
)

// DataIntegrityError reports a malformed input series. The whole run is
// rejected; no repair is attempted.
type DataIntegrityError struct {
	Date   time.Time
	Field  string
	Reason string
}

func (e *DataIntegrityError) Error() string {
	if e.Date.IsZero() {
		return fmt.Sprintf("data integrity: %s: %s", e.Field, e.Reason)
	}
	return fmt.Sprintf("data integrity: %s at %s: %s",
		e.Field, e.Date.Format("2006-01-02"), e.Reason)
}

// Validate checks that a series is usable for estimation:
//   - dates strictly increase by exactly one calendar day
//   - counts are non-negative
//   - resident cases never exceed total cases
//
// Pure check; returns the first violation as a *DataIntegrityError.
func Validate(s Series) error {
	if len(s) == 0 {
		return &DataIntegrityError{Field: "series", Reason: "empty input series"}
	}
	for i, r := range s {
		if r.Date.IsZero() {
			return &DataIntegrityError{Field: "report_date", Reason: fmt.Sprintf("missing date at row %d", i)}
		}
		if r.NewCases < 0 {
			return &DataIntegrityError{Date: r.Date, Field: "new_cases",
				Reason: fmt.Sprintf("negative count %d", r.NewCases)}
		}
		if r.NewCasesResident < 0 {
			return &DataIntegrityError{Date: r.Date, Field: "new_cases_resident",
				Reason: fmt.Sprintf("negative count %d", r.NewCasesResident)}
		}
		if r.NewCasesResident > r.NewCases {
			return &DataIntegrityError{Date: r.Date, Field: "new_cases_resident",
				Reason: fmt.Sprintf("resident cases %d exceed total cases %d", r.NewCasesResident, r.NewCases)}
		}
		if i == 0 {
			continue
		}
		prev := s[i-1].Date
		want := Day(prev).AddDate(0, 0, 1)
		got := Day(r.Date)
		switch {
		case got.Equal(Day(prev)):
			return &DataIntegrityError{Date: r.Date, Field: "report_date", Reason: "duplicate date"}
		case got.Before(Day(prev)):
			return &DataIntegrityError{Date: r.Date, Field: "report_date",
				Reason: fmt.Sprintf("dates not ascending (previous %s)", prev.Format("2006-01-02"))}
		case !got.Equal(want):
			return &DataIntegrityError{Date: r.Date, Field: "report_date",
				Reason: fmt.Sprintf("gap after %s", prev.Format("2006-01-02"))}
		}
	}
	return nil
}
