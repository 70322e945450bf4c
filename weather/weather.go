// Package weather fetches the current conditions used by overlay regions.
package weather

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"

	"github.com/ByLCY/inkline/binding"
)

// Environment variables read by FromEnv.
const (
	EnvAPIKey = "OPENWEATHER_API_KEY"
	EnvCityID = "OPENWEATHER_CITY_ID"
)

// DefaultBaseURL is the OpenWeatherMap API root.
const DefaultBaseURL = "https://api.openweathermap.org"

// ErrMissingCredentials is returned when the API key or city id is empty.
var ErrMissingCredentials = errors.New("weather: missing api key or city id")

// StatusError reports a non-2xx API response.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("weather: unexpected status %d: %s", e.Code, e.Body)
}

// Client fetches current weather for one location.
type Client struct {
	BaseURL string
	APIKey  string
	CityID  string
	HTTP    *http.Client
}

// FromEnv builds a client from OPENWEATHER_API_KEY and OPENWEATHER_CITY_ID.
func FromEnv() *Client {
	return &Client{
		BaseURL: DefaultBaseURL,
		APIKey:  os.Getenv(EnvAPIKey),
		CityID:  os.Getenv(EnvCityID),
	}
}

// Fetch 请求当前天气并返回解码后的 JSON，供 binding 插值使用。
func (c *Client) Fetch(ctx context.Context) (map[string]any, error) {
	if c.APIKey == "" || c.CityID == "" {
		return nil, ErrMissingCredentials
	}
	base := c.BaseURL
	if base == "" {
		base = DefaultBaseURL
	}
	q := url.Values{}
	q.Set("id", c.CityID)
	q.Set("appid", c.APIKey)
	q.Set("units", "metric")
	endpoint := strings.TrimRight(base, "/") + "/data/2.5/weather?" + q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("weather: build request: %w", err)
	}
	hc := c.HTTP
	if hc == nil {
		hc = http.DefaultClient
	}
	resp, err := hc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("weather: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, &StatusError{Code: resp.StatusCode, Body: strings.TrimSpace(string(body))}
	}
	var data map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return nil, fmt.Errorf("weather: decode response: %w", err)
	}
	return data, nil
}

// Temperature extracts main.temp (°C with metric units).
func Temperature(data map[string]any) (float64, bool) {
	v, ok := binding.Resolve(data, "main.temp")
	if !ok {
		return 0, false
	}
	f, ok := v.(float64)
	return f, ok
}
