package posterior

import (
	"fmt"
	"math"
	"time"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/ResearchLuxembourg/restimator/src/timeseries"
)

// DailyPosterior is one day's discrete belief over the R grid.
// Probs is index-aligned with the grid and sums to 1.
type DailyPosterior struct {
	Date  time.Time
	Probs []float64
}

// DegeneratePosteriorError means the Bayes update collapsed on a given
// day: every grid point's likelihood underflowed or the normalizer went
// non-finite. It signals a data anomaly (an implausible count jump) and
// aborts the run; it is never papered over with a uniform fallback.
type DegeneratePosteriorError struct {
	Date time.Time
	Sum  float64
}

func (e *DegeneratePosteriorError) Error() string {
	return fmt.Sprintf("degenerate posterior at %s: normalizer %g",
		e.Date.Format("2006-01-02"), e.Sum)
}

// Params are the model constants for one run. Immutable; threaded
// explicitly so concurrent runs with different settings cannot interfere.
type Params struct {
	Grid           *Grid
	SerialInterval float64 // mean generation time in days
	Sigma          float64 // process-smoothing kernel width in R units
}

// ProcessMatrix builds the day-to-day prior propagation kernel.
// Column j is a Normal(r_j, sigma) density sampled at every grid point
// and normalized to sum to 1, so prior_t = M * posterior_{t-1}.
// Normalizing each column clips the mass that would diffuse past the
// grid edges and redistributes it on the grid.
func ProcessMatrix(g *Grid, sigma float64) *mat.Dense {
	n := g.Len()
	m := mat.NewDense(n, n, nil)
	for j := 0; j < n; j++ {
		kernel := distuv.Normal{Mu: g.At(j), Sigma: sigma}
		var sum float64
		for i := 0; i < n; i++ {
			p := kernel.Prob(g.At(i))
			m.Set(i, j, p)
			sum += p
		}
		for i := 0; i < n; i++ {
			m.Set(i, j, m.At(i, j)/sum)
		}
	}
	return m
}

// likelihood fills dst with the Poisson probability of observing k cases
// today given kPrev cases yesterday, per candidate R:
//
//	lambda_i = kPrev * exp((r_i - 1) / serialInterval)
//	L_i      = Poisson(lambda_i).P(k)
//
// Grid points are independent here; only the caller's normalization
// couples them.
func likelihood(dst []float64, g *Grid, kPrev, k int, serialInterval float64) {
	gamma := 1.0 / serialInterval
	for i := range dst {
		lam := float64(kPrev) * math.Exp(gamma*(g.At(i)-1.0))
		dst[i] = distuv.Poisson{Lambda: lam}.Prob(float64(k))
	}
}

// Fold runs the sequential Bayes update over a smoothed series and
// returns one posterior per day from the second point onward (the first
// point only seeds the chain; it has no previous count to form a
// likelihood from).
//
// Per day t:
//
//	prior_t     = M * posterior_{t-1}          (uniform on the first day)
//	posterior_t = normalize(L_t .* prior_t)
//
// A day with kPrev = 0 cannot update: its posterior is the prior
// unchanged. The chain is inherently sequential and deterministic.
func Fold(points []timeseries.Point, p Params) ([]DailyPosterior, error) {
	if p.Grid == nil || p.Grid.Len() == 0 {
		return nil, &EmptyGridError{}
	}
	if len(points) < 2 {
		return nil, nil
	}

	n := p.Grid.Len()
	process := ProcessMatrix(p.Grid, p.Sigma)

	// Uniform initial prior: no information before the first update.
	prev := make([]float64, n)
	for i := range prev {
		prev[i] = 1.0 / float64(n)
	}

	out := make([]DailyPosterior, 0, len(points)-1)
	lik := make([]float64, n)
	prior := make([]float64, n)

	for t := 1; t < len(points); t++ {
		if t == 1 {
			copy(prior, prev)
		} else {
			pv := mat.NewVecDense(n, prior)
			pv.MulVec(process, mat.NewVecDense(n, prev))
		}

		cur := make([]float64, n)
		kPrev := points[t-1].Count
		if kPrev == 0 {
			// No history to update from: carry the prior forward.
			copy(cur, prior)
		} else {
			likelihood(lik, p.Grid, kPrev, points[t].Count, p.SerialInterval)
			floats.MulTo(cur, lik, prior)
			sum := floats.Sum(cur)
			if sum == 0 || math.IsNaN(sum) || math.IsInf(sum, 0) {
				return nil, &DegeneratePosteriorError{Date: points[t].Date, Sum: sum}
			}
			floats.Scale(1.0/sum, cur)
		}

		out = append(out, DailyPosterior{Date: points[t].Date, Probs: cur})
		prev = cur
	}
	return out, nil
}
