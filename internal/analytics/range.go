// Package analytics turns raw Arbolitics sensor readings into per-device,
// per-metric chart-ready series and ECharts option objects.
package analytics

import "fmt"

// Range is a caller-selected window determining how many historical samples
// to fetch. The limits assume hourly resolution.
type Range string

const (
	RangeDaily   Range = "daily"
	RangeWeekly  Range = "weekly"
	RangeMonthly Range = "monthly"
)

// ParseRange validates a range string, defaulting empty input to daily.
func ParseRange(s string) (Range, error) {
	switch Range(s) {
	case RangeDaily, RangeWeekly, RangeMonthly:
		return Range(s), nil
	case "":
		return RangeDaily, nil
	default:
		return "", fmt.Errorf("unknown time range %q", s)
	}
}

// Limit returns the number of samples the range covers.
func (r Range) Limit() int {
	switch r {
	case RangeWeekly:
		return 24 * 7
	case RangeMonthly:
		return 24 * 7 * 4
	default:
		return 24
	}
}
