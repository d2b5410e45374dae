package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-retry"
	"golang.org/x/sync/singleflight"

	"github.com/asadlib11/arbolitics-dashboard/internal/shared/logger"
	"github.com/asadlib11/arbolitics-dashboard/internal/shared/metrics"
)

const retryBackoff = 500 * time.Millisecond

// Fetcher retrieves a window of readings from the upstream API.
type Fetcher interface {
	FetchDataset(ctx context.Context, token string, locationID, limit int) ([]Reading, error)
}

// DeviceCharts is one device's pair of chart options for a snapshot.
type DeviceCharts struct {
	DeviceID    string                 `json:"deviceId"`
	Temperature map[string]interface{} `json:"temperature"`
	Humidity    map[string]interface{} `json:"humidity"`
}

// Snapshot is the full analytics payload for one range selection.
type Snapshot struct {
	Range   Range          `json:"range"`
	Devices []DeviceCharts `json:"devices"`
}

// Service drives the fetch-and-reshape pipeline. Fetches are deduplicated
// by range key: concurrent requests for the same range share one upstream
// call, and a superseded range's in-flight result is never applied to
// another range's request.
type Service struct {
	fetcher    Fetcher
	locationID int
	deviceIDs  []string
	logger     logger.Interface

	group singleflight.Group
}

func NewService(fetcher Fetcher, locationID int, deviceIDs []string, log logger.Interface) *Service {
	return &Service{
		fetcher:    fetcher,
		locationID: locationID,
		deviceIDs:  deviceIDs,
		logger:     log,
	}
}

// FetchReadings fetches the reading window for a range with exactly one
// automatic retry. A second failure is terminal and surfaces to the caller.
func (s *Service) FetchReadings(ctx context.Context, token string, rng Range) ([]Reading, error) {
	result, err, _ := s.group.Do(string(rng), func() (interface{}, error) {
		var readings []Reading
		attempt := 0
		backoff := retry.WithMaxRetries(1, retry.NewConstant(retryBackoff))
		err := retry.Do(ctx, backoff, func(ctx context.Context) error {
			attempt++
			fetched, err := s.fetcher.FetchDataset(ctx, token, s.locationID, rng.Limit())
			if err != nil {
				if attempt == 1 {
					metrics.AnalyticsFetchRetries.Inc()
					s.logger.Warnw("analytics fetch failed, retrying once",
						"range", rng,
						"error", err,
					)
				}
				return retry.RetryableError(err)
			}
			readings = fetched
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("failed to fetch %s readings: %w", rng, err)
		}
		return readings, nil
	})
	if err != nil {
		return nil, err
	}
	return result.([]Reading), nil
}

// Snapshot fetches the selected range and reshapes it into per-device
// temperature and humidity chart options. Devices outside the configured
// set never chart; configured devices missing from the feed chart empty.
func (s *Service) Snapshot(ctx context.Context, token string, rng Range) (*Snapshot, error) {
	readings, err := s.FetchReadings(ctx, token, rng)
	if err != nil {
		return nil, err
	}

	snapshot := &Snapshot{
		Range:   rng,
		Devices: make([]DeviceCharts, 0, len(s.deviceIDs)),
	}
	for _, deviceID := range s.deviceIDs {
		series := Reshape(readings, deviceID)
		snapshot.Devices = append(snapshot.Devices, DeviceCharts{
			DeviceID:    deviceID,
			Temperature: ChartOption(deviceID, MetricTemperature, series),
			Humidity:    ChartOption(deviceID, MetricHumidity, series),
		})
	}
	return snapshot, nil
}
