// Package explorer is the client side of the country explorer: it talks to the
// public country, weather and news APIs and to the auth service, and keeps the
// session and favourite countries on local disk.
package explorer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
)

var ErrNotFound = errors.New("not found")

// APIError is a non-2xx answer from an external service.
type APIError struct {
	Service string
	Status  int
	Body    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s: unexpected status %d: %s", e.Service, e.Status, e.Body)
}

type Options struct {
	CountriesURL  string
	WeatherURL    string
	WeatherAPIKey string
	NewsURL       string
	NewsAPIKey    string
	AuthURL       string
	StateDir      string
	HTTPClient    *http.Client
	Logger        zerolog.Logger
}

func DefaultOptions() Options {
	return Options{
		CountriesURL: "https://restcountries.com/v3.1",
		WeatherURL:   "https://api.openweathermap.org/data/2.5",
		NewsURL:      "https://newsapi.org/v2",
		AuthURL:      "http://localhost:3001",
		HTTPClient:   &http.Client{Timeout: 15 * time.Second},
		Logger:       zerolog.Nop(),
	}
}

type httpClient struct {
	service string
	base    string
	http    *http.Client
	logger  zerolog.Logger
}

func newHTTPClient(service, base string, hc *http.Client, logger zerolog.Logger) httpClient {
	if hc == nil {
		hc = http.DefaultClient
	}
	return httpClient{service: service, base: base, http: hc, logger: logger.With().Str("service", service).Logger()}
}

// getJSON fetches base+path with query and decodes the body into dst.
// 404 maps to ErrNotFound.
func (c httpClient) getJSON(ctx context.Context, path string, query url.Values, dst interface{}) error {
	u := c.base + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Error().Err(err).Str("path", path).Msg("Request failed")
		return fmt.Errorf("%s: %w", c.service, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return ErrNotFound
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		c.logger.Error().Int("status", resp.StatusCode).Str("path", path).Msg("Unexpected response")
		return &APIError{Service: c.service, Status: resp.StatusCode, Body: string(body)}
	}

	if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
		return fmt.Errorf("%s: decode response: %w", c.service, err)
	}
	return nil
}
