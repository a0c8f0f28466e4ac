package posterior

import (
	"fmt"
	"math"
)

// EmptyGridError means the configured R grid has no points. It is a
// configuration fault, raised once at startup before any day is
// processed.
type EmptyGridError struct {
	Min, Max, Step float64
}

func (e *EmptyGridError) Error() string {
	return fmt.Sprintf("empty R grid: min=%g max=%g step=%g", e.Min, e.Max, e.Step)
}

// Grid is the fixed, strictly increasing set of candidate R values the
// posterior is defined over. Built once per run and shared read-only.
type Grid struct {
	rs []float64
}

// NewGrid builds the grid [min, min+step, ..., <=max]. The epsilon in
// the length computation keeps a representable (max-min)/step like
// 998.9999999999997 from dropping the endpoint.
func NewGrid(min, max, step float64) (*Grid, error) {
	if step <= 0 || max < min || min < 0 {
		return nil, &EmptyGridError{Min: min, Max: max, Step: step}
	}
	n := int(math.Floor((max-min)/step+1e-6)) + 1
	rs := make([]float64, n)
	for i := range rs {
		rs[i] = min + float64(i)*step
	}
	return &Grid{rs: rs}, nil
}

// Len returns the number of grid points.
func (g *Grid) Len() int { return len(g.rs) }

// At returns the R value at index i.
func (g *Grid) At(i int) float64 { return g.rs[i] }

// Values returns the backing slice. Callers must not mutate it.
func (g *Grid) Values() []float64 { return g.rs }
