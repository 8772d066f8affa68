package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/i474232898/weather-forecast-gateway/internal/weather"
	"github.com/sony/gobreaker"
)

const weatherAPIBaseURL = "https://api.weatherapi.com/v1"

// WeatherAPIProvider is the primary provider, backed by WeatherAPI.com.
type WeatherAPIProvider struct {
	name    string
	apiKey  string
	baseURL string
	httpCfg HTTPClientConfig
	circuit *gobreaker.CircuitBreaker
}

func NewWeatherAPIProvider(client *http.Client, apiKey string, opts ...Option) *WeatherAPIProvider {
	o := applyOptions(weatherAPIBaseURL, opts)
	return &WeatherAPIProvider{
		name:    string(weather.SourceWeatherAPI),
		apiKey:  apiKey,
		baseURL: o.baseURL,
		httpCfg: HTTPClientConfig{
			Client:  client,
			Backoff: *o.backoff,
		},
		circuit: newBreaker("weatherapi"),
	}
}

func (p *WeatherAPIProvider) Name() string {
	return p.name
}

func (p *WeatherAPIProvider) Configured() bool {
	return p.apiKey != ""
}

// FetchForecast requests days of forecast without air quality or alerts.
func (p *WeatherAPIProvider) FetchForecast(ctx context.Context, location string, days int) (*weather.PrimaryResponse, error) {
	if !p.Configured() {
		return nil, fmt.Errorf("weatherapi: %w", errMissingAPIKey)
	}

	buildRequest := func(ctx context.Context) (*http.Request, error) {
		values := url.Values{}
		values.Set("key", p.apiKey)
		values.Set("q", location)
		values.Set("days", strconv.Itoa(days))
		values.Set("aqi", "no")
		values.Set("alerts", "no")
		return getRequest(ctx, p.baseURL+"/forecast.json", values)
	}

	resp, err := doRequestWithResilience(ctx, p.httpCfg, p.circuit, buildRequest)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var payload weather.PrimaryResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("weatherapi: decode forecast: %w", err)
	}
	return &payload, nil
}
