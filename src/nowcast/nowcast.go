// Package nowcast corrects the reporting tail of a run: the most recent
// days are right-censored (counts still accumulate after the report
// date), so their estimates are either published as provisional or the
// raw counts are inflated before inference. A run applies exactly one
// policy; corrected and uncorrected values never share an output field.
package nowcast

import (
	"fmt"
	"math"

	"github.com/ResearchLuxembourg/restimator/src/interval"
	"github.com/ResearchLuxembourg/restimator/src/timeseries"
)

// Policy selects how the tail is handled for a whole run.
type Policy string

const (
	// PolicyFlag publishes the last N estimates unmodified but marked
	// provisional.
	PolicyFlag Policy = "flag"
	// PolicyInflate scales the last N raw counts by per-lag factors
	// before smoothing and inference.
	PolicyInflate Policy = "inflate"
)

// ParsePolicy validates a configured policy name.
func ParsePolicy(s string) (Policy, error) {
	switch Policy(s) {
	case PolicyFlag, PolicyInflate:
		return Policy(s), nil
	}
	return "", fmt.Errorf("unknown nowcast policy %q (want %q or %q)", s, PolicyFlag, PolicyInflate)
}

// FlagTail marks the last n estimates provisional, in place, and
// returns the slice. n larger than the series flags everything.
func FlagTail(est []interval.DailyEstimate, n int) []interval.DailyEstimate {
	if n > len(est) {
		n = len(est)
	}
	for i := len(est) - n; i < len(est); i++ {
		est[i].Provisional = true
	}
	return est
}

// InflateTail returns a copy of the series with the last len(factors)
// days' counts scaled by the corresponding factor, oldest lag first.
// Factors come from historical reporting-lag distributions and must all
// be >= 1 (a report never shrinks as late results arrive).
func InflateTail(s timeseries.Series, factors []float64) (timeseries.Series, error) {
	for i, f := range factors {
		if f < 1 || math.IsNaN(f) || math.IsInf(f, 0) {
			return nil, fmt.Errorf("nowcast factor %d is %g, must be >= 1", i, f)
		}
	}
	out := make(timeseries.Series, len(s))
	copy(out, s)
	n := len(factors)
	if n > len(out) {
		factors = factors[n-len(out):]
		n = len(out)
	}
	for i, f := range factors {
		r := &out[len(out)-n+i]
		r.NewCases = int(math.Round(float64(r.NewCases) * f))
		r.NewCasesResident = int(math.Round(float64(r.NewCasesResident) * f))
	}
	return out, nil
}
