// Package loader turns the clinical monitoring exports into a case
// series. It checks for the agreed columns and fixes the export order,
// but leaves integrity checking to the validator.
package loader

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/ResearchLuxembourg/restimator/src/timeseries"
)

// xlsxDateLayouts are the date renderings seen in the clinical workbook
// exports, tried in order.
var xlsxDateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	"01-02-06",
	"1/2/06 15:04",
	"02/01/2006",
}

// FromXLSX reads the clinical monitoring workbook. The sheet must carry
// report_date, new_cases and new_cases_resident columns; rows may be
// newest first (the usual export order) and are reversed to ascending.
// Report dates are shifted forward one day: a row dated D aggregates
// the cases sampled on D and published the next morning.
func FromXLSX(path string) (timeseries.Series, error) {
	wb, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer wb.Close()

	sheet := wb.GetSheetName(0)
	rows, err := wb.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheet, err)
	}
	if len(rows) < 2 {
		return nil, &timeseries.DataIntegrityError{Field: "sheet", Reason: "workbook has no data rows"}
	}

	cols := make(map[string]int, len(rows[0]))
	for i, name := range rows[0] {
		cols[strings.TrimSpace(name)] = i
	}
	for _, want := range []string{"report_date", "new_cases", "new_cases_resident"} {
		if _, ok := cols[want]; !ok {
			return nil, &timeseries.DataIntegrityError{Field: want, Reason: "expected column not found"}
		}
	}

	var series timeseries.Series
	for n, row := range rows[1:] {
		get := func(col string) string {
			i := cols[col]
			if i >= len(row) {
				return ""
			}
			return strings.TrimSpace(row[i])
		}
		if get("report_date") == "" {
			continue // trailing blank rows in the export
		}
		date, err := parseXLSXDate(get("report_date"))
		if err != nil {
			return nil, &timeseries.DataIntegrityError{
				Field: "report_date", Reason: fmt.Sprintf("row %d: %v", n+2, err)}
		}
		total, err := parseCount(get("new_cases"))
		if err != nil {
			return nil, &timeseries.DataIntegrityError{
				Date: date, Field: "new_cases", Reason: fmt.Sprintf("row %d: %v", n+2, err)}
		}
		resident, err := parseCount(get("new_cases_resident"))
		if err != nil {
			return nil, &timeseries.DataIntegrityError{
				Date: date, Field: "new_cases_resident", Reason: fmt.Sprintf("row %d: %v", n+2, err)}
		}
		series = append(series, timeseries.CaseRecord{
			Date:             timeseries.Day(date).AddDate(0, 0, 1),
			NewCases:         total,
			NewCasesResident: resident,
		})
	}
	if len(series) == 0 {
		return nil, &timeseries.DataIntegrityError{Field: "sheet", Reason: "workbook has no data rows"}
	}
	return ascending(series), nil
}

func parseXLSXDate(s string) (time.Time, error) {
	for _, layout := range xlsxDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	// Excel serial date number, days since 1899-12-30.
	if serial, err := strconv.ParseFloat(s, 64); err == nil {
		t, err := excelize.ExcelDateToTime(serial, false)
		if err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unparseable date %q", s)
}

func parseCount(s string) (int, error) {
	if s == "" {
		return 0, fmt.Errorf("missing value")
	}
	// Counts sometimes render as "123.0" through the numeric format.
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("not a number: %q", s)
	}
	if f != float64(int(f)) {
		return 0, fmt.Errorf("not an integer: %q", s)
	}
	return int(f), nil
}
