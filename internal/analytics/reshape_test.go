package analytics

import (
	"math/rand"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleReadings() []Reading {
	return []Reading{
		{DID: "25_226", TMS: 1700003600, Tem1: 19.5, Hum1: 61.0},
		{DID: "25_225", TMS: 1700007200, Tem1: 21.3, Hum1: 55.2},
		{DID: "25_225", TMS: 1700000000, Tem1: 20.1, Hum1: 54.0},
		{DID: "25_999", TMS: 1700000400, Tem1: 99.0, Hum1: 99.0},
		{DID: "25_225", TMS: 1700003600, Tem1: 20.8, Hum1: 54.6},
	}
}

func TestReshapeFiltersAndSortsByEpoch(t *testing.T) {
	series := Reshape(sampleReadings(), "25_225")

	require.Equal(t, 3, series.Len())
	assert.Equal(t, []float64{20.1, 20.8, 21.3}, series.Temperatures)
	assert.Equal(t, []float64{54.0, 54.6, 55.2}, series.Humidity)
	assert.Len(t, series.Labels, len(series.Temperatures))
}

func TestReshapeLabelOrderNonDecreasing(t *testing.T) {
	readings := make([]Reading, 0, 200)
	for i := 0; i < 200; i++ {
		readings = append(readings, Reading{
			DID:  "25_225",
			TMS:  1700000000 + rand.Int63n(1000000),
			Tem1: float64(i),
		})
	}

	series := Reshape(readings, "25_225")

	require.Equal(t, 200, series.Len())
	assert.True(t, sort.StringsAreSorted(series.Labels),
		"labels derive from sorted epochs within one span and must be non-decreasing")
}

func TestReshapeIsIdempotent(t *testing.T) {
	readings := sampleReadings()

	first := Reshape(readings, "25_225")
	second := Reshape(readings, "25_225")

	assert.Equal(t, first, second)
}

func TestReshapeDuplicateTimestampsPassThrough(t *testing.T) {
	readings := []Reading{
		{DID: "25_225", TMS: 1700000000, Tem1: 1.0},
		{DID: "25_225", TMS: 1700000000, Tem1: 2.0},
	}

	series := Reshape(readings, "25_225")

	require.Equal(t, 2, series.Len())
	// Stable sort keeps the original relative order of equal keys.
	assert.Equal(t, []float64{1.0, 2.0}, series.Temperatures)
}

func TestReshapeUnknownDeviceYieldsEmptySeries(t *testing.T) {
	series := Reshape(sampleReadings(), "26_000")

	assert.Equal(t, 0, series.Len())
	assert.Empty(t, series.Temperatures)
	assert.Empty(t, series.Humidity)
}

func TestReshapeEmptyInput(t *testing.T) {
	series := Reshape(nil, "25_225")

	assert.Equal(t, 0, series.Len())
}
