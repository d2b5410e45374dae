package analytics

import "fmt"

// Metric selects which value sequence of a Series is charted.
type Metric string

const (
	MetricTemperature Metric = "temperature"
	MetricHumidity    Metric = "humidity"
)

func (m Metric) seriesName() string {
	if m == MetricTemperature {
		return "Temperature"
	}
	return "Humidity"
}

func (m Metric) unit() string {
	if m == MetricTemperature {
		return "°C"
	}
	return "%"
}

func (m Metric) color() string {
	if m == MetricTemperature {
		return "#ff7300"
	}
	return "#4169E1"
}

// labelInterval spaces out category axis labels so at most ~12 remain
// visible regardless of how many points the range produced.
func labelInterval(pointCount int) int {
	interval := pointCount / 12
	if interval < 1 {
		interval = 1
	}
	return interval
}

// ChartOption builds the declarative ECharts option for one device and
// metric. It is a pure function of its inputs: equal (deviceID, metric,
// series) always yield an identical option object.
func ChartOption(deviceID string, metric Metric, series Series) map[string]interface{} {
	values := series.Temperatures
	if metric == MetricHumidity {
		values = series.Humidity
	}

	name := metric.seriesName()
	unit := metric.unit()

	return map[string]interface{}{
		"title": map[string]interface{}{
			"text": fmt.Sprintf("%s - Device %s", name, deviceID),
			"left": "center",
			"top":  20,
		},
		"tooltip": map[string]interface{}{
			"trigger":   "axis",
			"formatter": fmt.Sprintf("Time: {b}<br/>%s: {c}%s", name, unit),
		},
		"xAxis": map[string]interface{}{
			"type": "category",
			"data": series.Labels,
			"axisLabel": map[string]interface{}{
				"rotate":   45,
				"interval": labelInterval(series.Len()),
				"align":    "right",
			},
		},
		"yAxis": map[string]interface{}{
			"type": "value",
			"name": fmt.Sprintf("%s (%s)", name, unit),
			"axisLabel": map[string]interface{}{
				"formatter": "{value}" + unit,
			},
		},
		"dataZoom": []map[string]interface{}{
			{
				"type":       "slider",
				"show":       true,
				"xAxisIndex": []int{0},
				"start":      0,
				"end":        100,
				"bottom":     10,
			},
			{
				"type":       "inside",
				"xAxisIndex": []int{0},
				"start":      0,
				"end":        100,
			},
		},
		"series": []map[string]interface{}{
			{
				"name":       name,
				"type":       "line",
				"data":       values,
				"smooth":     true,
				"symbol":     "circle",
				"symbolSize": 6,
				"color":      metric.color(),
				"areaStyle": map[string]interface{}{
					"opacity": 0.2,
				},
				"markPoint": map[string]interface{}{
					"data": []map[string]interface{}{
						{"type": "max", "name": "Max"},
						{"type": "min", "name": "Min"},
					},
				},
			},
		},
		"grid": map[string]interface{}{
			"top":    80,
			"bottom": 120,
			"right":  40,
			"left":   60,
		},
	}
}
