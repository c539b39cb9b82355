// Package weather implements domain.ClimateProvider against the AgriSense
// station gateway, with an in-memory cache in front of it.
package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/orchardwatch/leaf-risk-service/internal/domain"
	"github.com/orchardwatch/leaf-risk-service/internal/observability"
)

// Client implements domain.ClimateProvider using the AgriSense gateway API.
type Client struct {
	token      string
	httpClient *http.Client
	baseURL    string
	metrics    *observability.Metrics
	logger     *slog.Logger
}

// NewClient creates a gateway client. baseURL has no trailing slash.
func NewClient(token, baseURL string, timeout time.Duration, metrics *observability.Metrics, logger *slog.Logger) *Client {
	return &Client{
		token: token,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		baseURL: baseURL,
		metrics: metrics,
		logger:  logger,
	}
}

// FetchReading requests the latest station reading nearest the coordinate.
// The gateway reports readings with the legacy field names, so the body
// decodes straight into a RawReading bag.
func (c *Client) FetchReading(ctx context.Context, lat, lon float64) (domain.RawReading, error) {
	params := url.Values{
		"lat":    {fmt.Sprintf("%.6f", lat)},
		"lon":    {fmt.Sprintf("%.6f", lon)},
		"apikey": {c.token},
	}
	fullURL := c.baseURL + "/readings?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return domain.RawReading{}, fmt.Errorf("create request: %w", err)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	c.metrics.WeatherAPIDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		c.metrics.WeatherRequests.WithLabelValues("error").Inc()
		return domain.RawReading{}, fmt.Errorf("weather gateway request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.metrics.WeatherRequests.WithLabelValues("error").Inc()
		body, _ := io.ReadAll(resp.Body)
		return domain.RawReading{}, fmt.Errorf("weather gateway error: status %d: %s", resp.StatusCode, body)
	}

	var gatewayResp response
	if err := json.NewDecoder(resp.Body).Decode(&gatewayResp); err != nil {
		c.metrics.WeatherRequests.WithLabelValues("error").Inc()
		return domain.RawReading{}, fmt.Errorf("decode response: %w", err)
	}

	c.metrics.WeatherRequests.WithLabelValues("success").Inc()
	c.logger.Debug("weather reading fetched",
		"station", gatewayResp.Station,
		"distance_km", gatewayResp.DistanceKm,
	)
	return gatewayResp.Reading, nil
}

// AgriSense gateway response types.

type response struct {
	Station    string            `json:"station"`
	DistanceKm float64           `json:"distance_km"`
	Reading    domain.RawReading `json:"reading"`
}
