package selector

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/labormap/internal/metric"
)

func sampleObs() []metric.Observation {
	var obs []metric.Observation
	for year := 2010; year <= 2026; year++ {
		obs = append(obs,
			metric.Observation{State: "Texas", Year: year, Group: "White"},
			metric.Observation{State: "Texas", Year: year, Group: "Black"},
			metric.Observation{State: "Ohio", Year: year},
		)
	}
	return obs
}

func TestByYear(t *testing.T) {
	got := ByYear(sampleObs(), 2020)
	require.Len(t, got, 3)
	for _, o := range got {
		assert.Equal(t, 2020, o.Year)
	}
}

func TestByYear_OutOfRangeIsEmpty(t *testing.T) {
	obs := sampleObs()
	for _, year := range []int{-1, 0, 2010, 2013, 2025, 2026, 9999} {
		got := ByYear(obs, year)
		assert.NotNil(t, got)
		assert.Empty(t, got, "year %d", year)
	}
}

func TestByYear_Bounds(t *testing.T) {
	obs := sampleObs()
	assert.Len(t, ByYear(obs, MinYear), 3)
	assert.Len(t, ByYear(obs, MaxYear), 3)
}

func TestByState(t *testing.T) {
	got := ByState(sampleObs(), "Texas")
	assert.Len(t, got, 2*17)
	for _, o := range got {
		assert.Equal(t, "Texas", o.State)
	}
}

func TestByState_NoMatch(t *testing.T) {
	obs := sampleObs()
	assert.Empty(t, ByState(obs, "texas"), "matching is case-sensitive")
	assert.Empty(t, ByState(obs, "Atlantis"))
	assert.Empty(t, ByState(obs, ""))
	assert.Empty(t, ByState(nil, "Texas"))
}

func TestYearInRange(t *testing.T) {
	assert.True(t, YearInRange(2014))
	assert.True(t, YearInRange(2024))
	assert.False(t, YearInRange(2013))
	assert.False(t, YearInRange(2025))
}
