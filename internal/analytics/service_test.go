package analytics

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/asadlib11/arbolitics-dashboard/internal/shared/logger"
)

func discardLogger() logger.Interface {
	return logger.NewLoggerWithSlog(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

type fetchCall struct {
	token      string
	locationID int
	limit      int
}

type mockFetcher struct {
	mu       sync.Mutex
	calls    []fetchCall
	readings []Reading
	// errs are consumed one per call; a nil entry means success.
	errs []error
}

func (m *mockFetcher) FetchDataset(ctx context.Context, token string, locationID, limit int) ([]Reading, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.calls = append(m.calls, fetchCall{token: token, locationID: locationID, limit: limit})
	if len(m.errs) > 0 {
		err := m.errs[0]
		m.errs = m.errs[1:]
		if err != nil {
			return nil, err
		}
	}
	return m.readings, nil
}

func (m *mockFetcher) callCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.calls)
}

func newTestService(fetcher *mockFetcher) *Service {
	return NewService(fetcher, 10, []string{"25_225", "25_226"}, discardLogger())
}

func TestFetchReadingsPassesRangeLimit(t *testing.T) {
	fetcher := &mockFetcher{readings: sampleReadings()}
	svc := newTestService(fetcher)

	_, err := svc.FetchReadings(context.Background(), "tok", RangeWeekly)
	require.NoError(t, err)

	require.Len(t, fetcher.calls, 1)
	assert.Equal(t, 168, fetcher.calls[0].limit)
	assert.Equal(t, 10, fetcher.calls[0].locationID)
	assert.Equal(t, "tok", fetcher.calls[0].token)

	_, err = svc.FetchReadings(context.Background(), "tok", RangeMonthly)
	require.NoError(t, err)
	assert.Equal(t, 672, fetcher.calls[1].limit)
}

func TestFetchReadingsRetriesExactlyOnce(t *testing.T) {
	fetcher := &mockFetcher{
		readings: sampleReadings(),
		errs:     []error{errors.New("upstream hiccup"), nil},
	}
	svc := newTestService(fetcher)

	readings, err := svc.FetchReadings(context.Background(), "tok", RangeDaily)
	require.NoError(t, err)
	assert.Len(t, readings, len(sampleReadings()))
	assert.Equal(t, 2, fetcher.callCount())
}

func TestFetchReadingsSecondFailureIsTerminal(t *testing.T) {
	fetcher := &mockFetcher{
		errs: []error{errors.New("down"), errors.New("still down"), nil},
	}
	svc := newTestService(fetcher)

	_, err := svc.FetchReadings(context.Background(), "tok", RangeDaily)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "daily")
	// One attempt plus one retry, never a third.
	assert.Equal(t, 2, fetcher.callCount())
}

func TestSnapshotChartsConfiguredDevicesOnly(t *testing.T) {
	fetcher := &mockFetcher{readings: sampleReadings()}
	svc := newTestService(fetcher)

	snapshot, err := svc.Snapshot(context.Background(), "tok", RangeDaily)
	require.NoError(t, err)

	assert.Equal(t, RangeDaily, snapshot.Range)
	require.Len(t, snapshot.Devices, 2)
	assert.Equal(t, "25_225", snapshot.Devices[0].DeviceID)
	assert.Equal(t, "25_226", snapshot.Devices[1].DeviceID)

	// The unlisted device 25_999 must not leak into any series.
	for _, device := range snapshot.Devices {
		xAxis := device.Temperature["xAxis"].(map[string]interface{})
		labels := xAxis["data"].([]string)
		lines := device.Temperature["series"].([]map[string]interface{})
		values := lines[0]["data"].([]float64)
		assert.Len(t, values, len(labels))
		assert.NotContains(t, values, 99.0)
	}
}

func TestSnapshotDeviceMissingFromFeedChartsEmpty(t *testing.T) {
	fetcher := &mockFetcher{readings: []Reading{
		{DID: "25_225", TMS: 1700000000, Tem1: 20.0, Hum1: 50.0},
	}}
	svc := newTestService(fetcher)

	snapshot, err := svc.Snapshot(context.Background(), "tok", RangeDaily)
	require.NoError(t, err)
	require.Len(t, snapshot.Devices, 2)

	lines := snapshot.Devices[1].Humidity["series"].([]map[string]interface{})
	assert.Empty(t, lines[0]["data"])
}

func TestSnapshotTerminalErrorSurfaces(t *testing.T) {
	fetcher := &mockFetcher{
		errs: []error{errors.New("down"), errors.New("down")},
	}
	svc := newTestService(fetcher)

	_, err := svc.Snapshot(context.Background(), "tok", RangeDaily)
	assert.Error(t, err)
}
