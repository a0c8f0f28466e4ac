// Package interval reduces daily posterior distributions to the summary
// numbers the report consumes: a MAP point estimate, a 50% highest
// density interval, and the probability that R exceeds 1.
package interval

import (
	"fmt"
	"sort"
	"time"

	"github.com/ResearchLuxembourg/restimator/src/posterior"
)

// DailyEstimate is one published row of the R_t series.
type DailyEstimate struct {
	Date        time.Time
	RMap        float64 // posterior mode
	RLow, RHigh float64 // 50% HDI bounds, RLow <= RMap <= RHigh
	PGt1        float64 // posterior mass above R = 1
	Provisional bool    // true when the day sits inside the reporting lag window
}

// HDIMass is the probability mass the credible interval must cover.
const HDIMass = 0.5

// Extract reduces one day's posterior. Pure; the posterior must be
// aligned with the grid it was computed over.
func Extract(g *posterior.Grid, dp posterior.DailyPosterior) (DailyEstimate, error) {
	if g == nil || g.Len() == 0 {
		return DailyEstimate{}, &posterior.EmptyGridError{}
	}
	if len(dp.Probs) != g.Len() {
		return DailyEstimate{}, fmt.Errorf("posterior at %s has %d points, grid has %d",
			dp.Date.Format("2006-01-02"), len(dp.Probs), g.Len())
	}

	// MAP: highest mass, ties broken toward the smaller R by the strict
	// comparison scanning upward.
	best := 0
	for i, p := range dp.Probs {
		if p > dp.Probs[best] {
			best = i
		}
	}

	lo, hi := hdi(dp.Probs)

	var pGt1 float64
	for i, p := range dp.Probs {
		if g.At(i) > 1.0 {
			pGt1 += p
		}
	}

	return DailyEstimate{
		Date:  dp.Date,
		RMap:  g.At(best),
		RLow:  g.At(lo),
		RHigh: g.At(hi),
		PGt1:  pGt1,
	}, nil
}

// hdi returns the index bounds of the highest density interval: grid
// points taken in descending mass order until HDIMass is covered, then
// the min and max index among them. Density-based, so the interval can
// sit asymmetrically around the mode.
func hdi(probs []float64) (lo, hi int) {
	idx := make([]int, len(probs))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool {
		return probs[idx[a]] > probs[idx[b]]
	})

	lo, hi = idx[0], idx[0]
	var cum float64
	for _, i := range idx {
		cum += probs[i]
		if i < lo {
			lo = i
		}
		if i > hi {
			hi = i
		}
		if cum >= HDIMass {
			break
		}
	}
	return lo, hi
}
