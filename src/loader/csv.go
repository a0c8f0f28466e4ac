package loader

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/ResearchLuxembourg/restimator/src/timeseries"
)

// FromCSV reads a plain series file with header
// date,new_cases,new_cases_resident and ISO dates, oldest first or
// newest first (descending input is reversed).
func FromCSV(path string) (timeseries.Series, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open input: %w", err)
	}
	defer f.Close()
	return ReadCSV(f)
}

// ReadCSV parses the series from an open reader.
func ReadCSV(r io.Reader) (timeseries.Series, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	cols, err := columnIndex(header)
	if err != nil {
		return nil, err
	}

	var series timeseries.Series
	for line := 2; ; line++ {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row %d: %w", line, err)
		}
		rec, err := parseRow(row, cols, line)
		if err != nil {
			return nil, err
		}
		series = append(series, rec)
	}
	return ascending(series), nil
}

func columnIndex(header []string) (map[string]int, error) {
	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[name] = i
	}
	for _, want := range []string{"date", "new_cases", "new_cases_resident"} {
		if _, ok := cols[want]; !ok {
			return nil, &timeseries.DataIntegrityError{Field: want, Reason: "expected column not found"}
		}
	}
	return cols, nil
}

func parseRow(row []string, cols map[string]int, line int) (timeseries.CaseRecord, error) {
	date, err := time.Parse("2006-01-02", row[cols["date"]])
	if err != nil {
		return timeseries.CaseRecord{}, &timeseries.DataIntegrityError{
			Field: "date", Reason: fmt.Sprintf("row %d: unparseable date %q", line, row[cols["date"]])}
	}
	total, err := strconv.Atoi(row[cols["new_cases"]])
	if err != nil {
		return timeseries.CaseRecord{}, &timeseries.DataIntegrityError{
			Date: date, Field: "new_cases", Reason: fmt.Sprintf("row %d: not a number: %q", line, row[cols["new_cases"]])}
	}
	resident, err := strconv.Atoi(row[cols["new_cases_resident"]])
	if err != nil {
		return timeseries.CaseRecord{}, &timeseries.DataIntegrityError{
			Date: date, Field: "new_cases_resident", Reason: fmt.Sprintf("row %d: not a number: %q", line, row[cols["new_cases_resident"]])}
	}
	return timeseries.CaseRecord{Date: timeseries.Day(date), NewCases: total, NewCasesResident: resident}, nil
}

// ascending reverses a newest-first series in place. The validator
// still runs afterwards; this only fixes the agreed export order.
func ascending(s timeseries.Series) timeseries.Series {
	if len(s) > 1 && s[0].Date.After(s[len(s)-1].Date) {
		for i, j := 0, len(s)-1; i < j; i, j = i+1, j-1 {
			s[i], s[j] = s[j], s[i]
		}
	}
	return s
}
