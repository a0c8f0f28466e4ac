package loader

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ResearchLuxembourg/restimator/src/timeseries"
)

func TestReadCSVAscending(t *testing.T) {
	in := `date,new_cases,new_cases_resident
2021-03-01,120,100
2021-03-02,135,110
2021-03-03,128,104
`
	s, err := ReadCSV(strings.NewReader(in))
	require.NoError(t, err)
	require.Len(t, s, 3)
	assert.Equal(t, time.Date(2021, 3, 1, 0, 0, 0, 0, time.UTC), s[0].Date)
	assert.Equal(t, 120, s[0].NewCases)
	assert.Equal(t, 100, s[0].NewCasesResident)
	assert.Equal(t, 128, s[2].NewCases)
}

func TestReadCSVReversesDescendingExport(t *testing.T) {
	in := `date,new_cases,new_cases_resident
2021-03-03,128,104
2021-03-02,135,110
2021-03-01,120,100
`
	s, err := ReadCSV(strings.NewReader(in))
	require.NoError(t, err)
	require.Len(t, s, 3)
	assert.Equal(t, time.Date(2021, 3, 1, 0, 0, 0, 0, time.UTC), s[0].Date)
	assert.Equal(t, time.Date(2021, 3, 3, 0, 0, 0, 0, time.UTC), s[2].Date)
	require.NoError(t, timeseries.Validate(s))
}

func TestReadCSVColumnOrderIrrelevant(t *testing.T) {
	in := `new_cases_resident,date,new_cases
100,2021-03-01,120
`
	s, err := ReadCSV(strings.NewReader(in))
	require.NoError(t, err)
	assert.Equal(t, 120, s[0].NewCases)
	assert.Equal(t, 100, s[0].NewCasesResident)
}

func TestReadCSVMissingColumn(t *testing.T) {
	in := `date,new_cases
2021-03-01,120
`
	_, err := ReadCSV(strings.NewReader(in))
	var ie *timeseries.DataIntegrityError
	require.ErrorAs(t, err, &ie)
	assert.Equal(t, "new_cases_resident", ie.Field)
}

func TestReadCSVBadCount(t *testing.T) {
	in := `date,new_cases,new_cases_resident
2021-03-01,many,100
`
	_, err := ReadCSV(strings.NewReader(in))
	var ie *timeseries.DataIntegrityError
	require.ErrorAs(t, err, &ie)
	assert.Equal(t, "new_cases", ie.Field)
}

func TestReadCSVBadDate(t *testing.T) {
	in := `date,new_cases,new_cases_resident
03/01/2021,120,100
`
	_, err := ReadCSV(strings.NewReader(in))
	var ie *timeseries.DataIntegrityError
	require.ErrorAs(t, err, &ie)
	assert.Equal(t, "date", ie.Field)
}
