package timeseries

import (
	"fmt"
	"time"
)

// CaseRecord is one day of reported cases. Counts are the raw daily
// increments from the clinical report, not cumulative totals.
type CaseRecord struct {
	Date             time.Time
	NewCases         int
	NewCasesResident int
}

// Series is an ordered run of daily records, oldest first.
type Series []CaseRecord

// Column selects which count a downstream stage reads from a record.
type Column int

const (
	ColumnTotal Column = iota
	ColumnResident
)

func (c Column) String() string {
	switch c {
	case ColumnTotal:
		return "new_cases"
	case ColumnResident:
		return "new_cases_resident"
	}
	return fmt.Sprintf("Column(%d)", int(c))
}

// Count returns the selected column's value.
func (r CaseRecord) Count(c Column) int {
	if c == ColumnResident {
		return r.NewCasesResident
	}
	return r.NewCases
}

// Day truncates a timestamp to its calendar day in UTC. All dates in a
// series are normalized through this so day arithmetic is exact.
func Day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
