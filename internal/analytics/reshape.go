package analytics

import (
	"sort"
	"time"
)

// labelLayout renders epoch seconds at hour-and-date granularity, matching
// the axis labels of the original dashboard ("MM-dd HH:mm").
const labelLayout = "01-02 15:04"

// Series holds one device's chart-ready data: a shared label sequence and
// two parallel value sequences. Rebuilt on every request, never cached
// across range changes.
type Series struct {
	Labels       []string  `json:"labels"`
	Temperatures []float64 `json:"temperatures"`
	Humidity     []float64 `json:"humidity"`
}

// Len returns the number of points in the series.
func (s Series) Len() int {
	return len(s.Labels)
}

// Reshape filters the reading set to one device, orders it ascending by
// epoch seconds and emits the parallel temperature and humidity series.
// The sort is stable, so duplicate timestamps keep their relative order and
// pass through unfiltered. An empty result is a valid series, not an error.
func Reshape(readings []Reading, deviceID string) Series {
	var device []Reading
	for _, r := range readings {
		if r.DID == deviceID {
			device = append(device, r)
		}
	}

	sort.SliceStable(device, func(i, j int) bool {
		return device[i].TMS < device[j].TMS
	})

	series := Series{
		Labels:       make([]string, 0, len(device)),
		Temperatures: make([]float64, 0, len(device)),
		Humidity:     make([]float64, 0, len(device)),
	}
	for _, r := range device {
		series.Labels = append(series.Labels, time.Unix(r.TMS, 0).UTC().Format(labelLayout))
		series.Temperatures = append(series.Temperatures, r.Tem1)
		series.Humidity = append(series.Humidity, r.Hum1)
	}
	return series
}
