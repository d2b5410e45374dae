// Package upstream implements the HTTP client for the Arbolitics API, the
// only remote collaborator of this service.
package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/asadlib11/arbolitics-dashboard/internal/analytics"
	"github.com/asadlib11/arbolitics-dashboard/internal/shared/logger"
	"github.com/asadlib11/arbolitics-dashboard/internal/shared/metrics"
)

const (
	loginPath   = "/auth/login"
	datasetPath = "/data/getArboliticsDataset"

	defaultTimeout = 10 * time.Second
	// Maximum response body size (4MB covers the largest monthly window
	// with headroom)
	maxResponseSize = 4 << 20
)

// LoginResult carries the upstream response verbatim so the proxy can
// mirror status and body without reinterpreting them.
type LoginResult struct {
	StatusCode int
	Body       []byte
}

// datasetEnvelope is the upstream data endpoint's outer object. Data stays
// raw so the proxy route can forward the inner array verbatim.
type datasetEnvelope struct {
	Data json.RawMessage `json:"data"`
}

// datasetRequest is the JSON body the upstream expects on the dataset
// endpoint (it reads a body on GET, matching the original integration).
type datasetRequest struct {
	LocationID int `json:"location_id"`
	Limit      int `json:"limit"`
}

type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     logger.Interface
}

func NewClient(baseURL string, timeout time.Duration, log logger.Interface) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: log,
	}
}

// Login forwards an opaque JSON body to the upstream auth endpoint and
// returns its status and body unmodified. A non-nil error means transport
// failure; upstream rejections come back as their status code.
func (c *Client) Login(ctx context.Context, body []byte) (*LoginResult, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+loginPath, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build login request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		metrics.ObserveUpstreamRequest("login", "transport_error", time.Since(start))
		return nil, fmt.Errorf("upstream login request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		metrics.ObserveUpstreamRequest("login", "read_error", time.Since(start))
		return nil, fmt.Errorf("failed to read upstream login response: %w", err)
	}

	metrics.ObserveUpstreamRequest("login", fmt.Sprintf("%d", resp.StatusCode), time.Since(start))
	c.logger.Debugw("upstream login completed", "status", resp.StatusCode, "latency", time.Since(start))

	return &LoginResult{
		StatusCode: resp.StatusCode,
		Body:       respBody,
	}, nil
}

// FetchDatasetRaw requests limit samples for a location and returns the
// inner data array of the upstream envelope byte-for-byte, so fields this
// service does not model survive the proxy. An absent or null data key
// yields an empty array. Any transport error or non-2xx status is an
// error; the caller decides how to surface it.
func (c *Client) FetchDatasetRaw(ctx context.Context, token string, locationID, limit int) (json.RawMessage, error) {
	reqBody, err := json.Marshal(datasetRequest{LocationID: locationID, Limit: limit})
	if err != nil {
		return nil, fmt.Errorf("failed to encode dataset request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+datasetPath, bytes.NewReader(reqBody))
	if err != nil {
		return nil, fmt.Errorf("failed to build dataset request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		metrics.ObserveUpstreamRequest("dataset", "transport_error", time.Since(start))
		return nil, fmt.Errorf("upstream dataset request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		metrics.ObserveUpstreamRequest("dataset", "read_error", time.Since(start))
		return nil, fmt.Errorf("failed to read upstream dataset response: %w", err)
	}

	metrics.ObserveUpstreamRequest("dataset", fmt.Sprintf("%d", resp.StatusCode), time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.logger.Warnw("upstream dataset request rejected",
			"status", resp.StatusCode,
			"location_id", locationID,
			"limit", limit,
		)
		return nil, fmt.Errorf("upstream dataset request returned status %d", resp.StatusCode)
	}

	var envelope datasetEnvelope
	if err := json.Unmarshal(respBody, &envelope); err != nil {
		return nil, fmt.Errorf("failed to decode dataset envelope: %w", err)
	}

	data := envelope.Data
	if len(data) == 0 || string(data) == "null" {
		data = json.RawMessage("[]")
	}

	c.logger.Debugw("upstream dataset fetched",
		"bytes", len(data),
		"location_id", locationID,
		"limit", limit,
		"latency", time.Since(start),
	)
	return data, nil
}

// FetchDataset decodes the dataset window into typed readings for the
// analytics pipeline.
func (c *Client) FetchDataset(ctx context.Context, token string, locationID, limit int) ([]analytics.Reading, error) {
	data, err := c.FetchDatasetRaw(ctx, token, locationID, limit)
	if err != nil {
		return nil, err
	}

	var readings []analytics.Reading
	if err := json.Unmarshal(data, &readings); err != nil {
		return nil, fmt.Errorf("failed to decode dataset entries: %w", err)
	}
	return readings, nil
}
