package explorer

import (
	"context"
	"errors"
	"net/url"
	"strconv"
	"strings"
)

var ErrMissingAPIKey = errors.New("api key missing")

type Condition struct {
	Main        string `json:"main"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

type Weather struct {
	Name string `json:"name"`
	Main struct {
		Temp      float64 `json:"temp"`
		FeelsLike float64 `json:"feels_like"`
		Humidity  int     `json:"humidity"`
		Pressure  int     `json:"pressure"`
	} `json:"main"`
	Wind struct {
		Speed float64 `json:"speed"`
	} `json:"wind"`
	Weather []Condition `json:"weather"`
}

type Forecast struct {
	List []struct {
		Dt   int64 `json:"dt"`
		Main struct {
			Temp float64 `json:"temp"`
		} `json:"main"`
		Weather []Condition `json:"weather"`
		DtTxt   string      `json:"dt_txt"`
	} `json:"list"`
}

type WeatherClient struct {
	c      httpClient
	apiKey string
}

func NewWeatherClient(opts Options) *WeatherClient {
	return &WeatherClient{
		c:      newHTTPClient("weather", strings.TrimRight(opts.WeatherURL, "/"), opts.HTTPClient, opts.Logger),
		apiKey: opts.WeatherAPIKey,
	}
}

func (wc *WeatherClient) Current(ctx context.Context, lat, lon float64) (*Weather, error) {
	q, err := wc.query(lat, lon)
	if err != nil {
		return nil, err
	}
	var out Weather
	if err := wc.c.getJSON(ctx, "/weather", q, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (wc *WeatherClient) Forecast(ctx context.Context, lat, lon float64) (*Forecast, error) {
	q, err := wc.query(lat, lon)
	if err != nil {
		return nil, err
	}
	var out Forecast
	if err := wc.c.getJSON(ctx, "/forecast", q, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (wc *WeatherClient) query(lat, lon float64) (url.Values, error) {
	if wc.apiKey == "" {
		return nil, ErrMissingAPIKey
	}
	return url.Values{
		"lat":   {strconv.FormatFloat(lat, 'f', -1, 64)},
		"lon":   {strconv.FormatFloat(lon, 'f', -1, 64)},
		"units": {"metric"},
		"appid": {wc.apiKey},
	}, nil
}
