// Package report serializes the estimate series for downstream
// consumers: a CSV for the ministry dashboard and a time-series plot.
package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/ResearchLuxembourg/restimator/src/interval"
)

// WriteCSV renders one row per day:
// date,r_map,r_low,r_high,p_gt1,provisional.
func WriteCSV(w io.Writer, estimates []interval.DailyEstimate) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"date", "r_map", "r_low", "r_high", "p_gt1", "provisional"}); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, e := range estimates {
		row := []string{
			e.Date.Format("2006-01-02"),
			strconv.FormatFloat(e.RMap, 'f', 2, 64),
			strconv.FormatFloat(e.RLow, 'f', 2, 64),
			strconv.FormatFloat(e.RHigh, 'f', 2, 64),
			strconv.FormatFloat(e.PGt1, 'f', 4, 64),
			strconv.FormatBool(e.Provisional),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write row %s: %w", row[0], err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteCSVFile writes the series to path, creating or truncating it.
func WriteCSVFile(path string, estimates []interval.DailyEstimate) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := WriteCSV(f, estimates); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
