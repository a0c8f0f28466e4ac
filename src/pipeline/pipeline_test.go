package pipeline

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ResearchLuxembourg/restimator/src/config"
	"github.com/ResearchLuxembourg/restimator/src/timeseries"
)

func series(start string, counts ...int) timeseries.Series {
	d, err := time.Parse("2006-01-02", start)
	if err != nil {
		panic(err)
	}
	s := make(timeseries.Series, len(counts))
	for i, c := range counts {
		s[i] = timeseries.CaseRecord{Date: d.AddDate(0, 0, i), NewCases: c, NewCasesResident: c}
	}
	return s
}

func doublingSeries(days int, base, doublingTime float64) timeseries.Series {
	counts := make([]int, days)
	for i := range counts {
		counts[i] = int(math.Round(base * math.Pow(2, float64(i)/doublingTime)))
	}
	return series("2021-03-01", counts...)
}

func TestRunFlatSeriesEstimatesNearOne(t *testing.T) {
	counts := make([]int, 20)
	for i := range counts {
		counts[i] = 50
	}
	est, err := Run(series("2021-03-01", counts...), timeseries.ColumnTotal, config.Default())
	require.NoError(t, err)
	require.Len(t, est, 19)

	for i, e := range est {
		assert.LessOrEqual(t, e.RLow, e.RMap, "day %d", i)
		assert.LessOrEqual(t, e.RMap, e.RHigh, "day %d", i)
		assert.GreaterOrEqual(t, e.PGt1, 0.0)
		assert.LessOrEqual(t, e.PGt1, 1.0)
		if i >= 3 {
			assert.InDelta(t, 1.0, e.RMap, 0.05, "day %d", i)
			assert.Less(t, e.RLow, 1.0, "day %d: HDI should straddle 1", i)
			assert.Greater(t, e.RHigh, 1.0, "day %d: HDI should straddle 1", i)
		}
	}
}

func TestRunDoublingSeriesDetectsGrowth(t *testing.T) {
	// Doubling every 5 days with SI=4: sustained growth well above 1.
	est, err := Run(doublingSeries(14, 100, 5), timeseries.ColumnTotal, config.Default())
	require.NoError(t, err)
	require.Len(t, est, 13)

	for _, e := range est[len(est)-4:] {
		assert.Greater(t, e.RMap, 1.15, "date %s", e.Date)
		assert.Greater(t, e.PGt1, 0.9, "date %s", e.Date)
	}
	last := est[len(est)-1]
	assert.InDelta(t, 1.0+4.0*math.Log(math.Pow(2, 0.2)), last.RMap, 0.4)
}

func TestRunChronologicalOrderPreserved(t *testing.T) {
	est, err := Run(series("2021-03-01", 10, 12, 15, 14, 18, 21, 19, 25), timeseries.ColumnTotal, config.Default())
	require.NoError(t, err)
	for i := 1; i < len(est); i++ {
		assert.True(t, est[i].Date.After(est[i-1].Date))
	}
}

func TestRunRejectsGapBeforeEstimating(t *testing.T) {
	s := series("2021-03-01", 10, 12, 15)
	s = append(s, timeseries.CaseRecord{Date: s[2].Date.AddDate(0, 0, 2), NewCases: 18})
	_, err := Run(s, timeseries.ColumnTotal, config.Default())
	var ie *timeseries.DataIntegrityError
	require.ErrorAs(t, err, &ie)
}

func TestRunBitIdentical(t *testing.T) {
	s := doublingSeries(14, 100, 5)
	a, err := Run(s, timeseries.ColumnTotal, config.Default())
	require.NoError(t, err)
	b, err := Run(s, timeseries.ColumnTotal, config.Default())
	require.NoError(t, err)
	require.Equal(t, a, b)
}

func TestRunFlagPolicyMarksTail(t *testing.T) {
	cfg := config.Default()
	cfg.Nowcast.Window = 4
	est, err := Run(series("2021-03-01", 30, 33, 31, 35, 38, 36, 40, 42, 45, 44), timeseries.ColumnTotal, cfg)
	require.NoError(t, err)
	require.Len(t, est, 9)
	for i, e := range est {
		assert.Equal(t, i >= 5, e.Provisional, "day %d", i)
	}
}

func TestRunInflatePolicyCorrectsCountsNotFlags(t *testing.T) {
	cfg := config.Default()
	cfg.Nowcast.Policy = "inflate"
	cfg.Nowcast.Window = 2
	cfg.Nowcast.Factors = []float64{1.2, 1.5}
	require.NoError(t, cfg.Validate())

	counts := make([]int, 15)
	for i := range counts {
		counts[i] = 80
	}
	est, err := Run(series("2021-03-01", counts...), timeseries.ColumnTotal, cfg)
	require.NoError(t, err)

	for _, e := range est {
		assert.False(t, e.Provisional)
	}
	// The inflated tail reads as growth relative to the flat run.
	flat, err := Run(series("2021-03-01", counts...), timeseries.ColumnTotal, config.Default())
	require.NoError(t, err)
	last := len(est) - 1
	assert.Greater(t, est[last].RMap, flat[last].RMap)
}

func TestRunResidentColumn(t *testing.T) {
	s := series("2021-03-01", 100, 110, 120, 130, 140, 150, 160, 170)
	for i := range s {
		s[i].NewCasesResident = s[i].NewCases / 2
	}
	total, err := Run(s, timeseries.ColumnTotal, config.Default())
	require.NoError(t, err)
	resident, err := Run(s, timeseries.ColumnResident, config.Default())
	require.NoError(t, err)
	require.Len(t, resident, len(total))
	// Same growth rate in both columns, so estimates land close.
	lastT, lastR := total[len(total)-1], resident[len(resident)-1]
	assert.InDelta(t, lastT.RMap, lastR.RMap, 0.15)
}

func TestRunInvalidGridConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Grid.Step = -1
	_, err := Run(series("2021-03-01", 10, 12), timeseries.ColumnTotal, cfg)
	require.Error(t, err)
}
