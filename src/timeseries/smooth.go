package timeseries

import (
	"math"
	"time"
)

// Point is one day of the smoothed series.
type Point struct {
	Date  time.Time
	Count int
}

// Smooth applies a trailing rolling mean over window days to flatten
// day-of-week reporting artifacts, rounding each value to the nearest
// integer so the Poisson likelihood downstream sees whole counts.
//
// Edge policy: the first window-1 days average over the history that
// exists (a shrinking window), so the output has the same length as the
// input. This mirrors the upstream report preparation and is applied
// identically for every run.
func Smooth(s Series, window int, col Column) []Point {
	if window < 1 {
		window = 1
	}
	out := make([]Point, len(s))
	var sum int
	for i, r := range s {
		sum += r.Count(col)
		if i >= window {
			sum -= s[i-window].Count(col)
		}
		n := window
		if i+1 < window {
			n = i + 1
		}
		out[i] = Point{
			Date:  Day(r.Date),
			Count: int(math.Round(float64(sum) / float64(n))),
		}
	}
	return out
}
