package timeseries

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeSeries(start string, counts ...int) Series {
	s := make(Series, len(counts))
	d := day(start)
	for i, c := range counts {
		s[i] = CaseRecord{Date: d.AddDate(0, 0, i), NewCases: c, NewCasesResident: c}
	}
	return s
}

func TestSmoothConstantSeriesIsIdentity(t *testing.T) {
	s := makeSeries("2021-03-01", 50, 50, 50, 50, 50, 50, 50, 50, 50, 50)
	out := Smooth(s, 7, ColumnTotal)
	require.Len(t, out, len(s))
	for i, p := range out {
		assert.Equal(t, 50, p.Count, "day %d", i)
		assert.Equal(t, Day(s[i].Date), p.Date)
	}
}

func TestSmoothShrinkingHeadWindow(t *testing.T) {
	// Head days average over the history that exists.
	s := makeSeries("2021-03-01", 10, 20, 30, 40)
	out := Smooth(s, 3, ColumnTotal)
	require.Len(t, out, 4)
	assert.Equal(t, 10, out[0].Count) // 10/1
	assert.Equal(t, 15, out[1].Count) // (10+20)/2
	assert.Equal(t, 20, out[2].Count) // (10+20+30)/3
	assert.Equal(t, 30, out[3].Count) // (20+30+40)/3
}

func TestSmoothRoundsToNearestInteger(t *testing.T) {
	s := makeSeries("2021-03-01", 1, 2)
	out := Smooth(s, 2, ColumnTotal)
	assert.Equal(t, 2, out[1].Count) // 1.5 rounds up
}

func TestSmoothSelectsColumn(t *testing.T) {
	s := Series{
		{Date: day("2021-03-01"), NewCases: 100, NewCasesResident: 40},
		{Date: day("2021-03-02"), NewCases: 100, NewCasesResident: 60},
	}
	total := Smooth(s, 2, ColumnTotal)
	resident := Smooth(s, 2, ColumnResident)
	assert.Equal(t, 100, total[1].Count)
	assert.Equal(t, 50, resident[1].Count)
}

func TestSmoothWindowOneIsRawSeries(t *testing.T) {
	s := makeSeries("2021-03-01", 3, 9, 4)
	out := Smooth(s, 1, ColumnTotal)
	for i := range s {
		assert.Equal(t, s[i].NewCases, out[i].Count)
	}
}
