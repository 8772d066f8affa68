package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/sony/gobreaker"
	"golang.org/x/sync/errgroup"

	"github.com/i474232898/weather-forecast-gateway/internal/common"
	"github.com/i474232898/weather-forecast-gateway/internal/weather"
)

const (
	openWeatherBaseURL = "https://api.openweathermap.org/data/2.5"

	// DefaultZipCountry is appended to numeric locations in zip queries.
	DefaultZipCountry = "IN"
)

// OpenWeatherProvider is the secondary provider, backed by OpenWeatherMap.
type OpenWeatherProvider struct {
	name       string
	apiKey     string
	baseURL    string
	zipCountry string
	httpCfg    HTTPClientConfig
	circuit    *gobreaker.CircuitBreaker
}

func NewOpenWeatherProvider(client *http.Client, apiKey, zipCountry string, opts ...Option) *OpenWeatherProvider {
	o := applyOptions(openWeatherBaseURL, opts)
	if zipCountry == "" {
		zipCountry = DefaultZipCountry
	}
	return &OpenWeatherProvider{
		name:       string(weather.SourceOpenWeather),
		apiKey:     apiKey,
		baseURL:    o.baseURL,
		zipCountry: zipCountry,
		httpCfg: HTTPClientConfig{
			Client:  client,
			Backoff: *o.backoff,
		},
		circuit: newBreaker("openweather"),
	}
}

func (p *OpenWeatherProvider) Name() string {
	return p.name
}

func (p *OpenWeatherProvider) Configured() bool {
	return p.apiKey != ""
}

// FetchForecast fetches current conditions and the 5 day / 3 hour forecast in
// parallel. Either call failing fails the whole fetch and cancels the other.
func (p *OpenWeatherProvider) FetchForecast(ctx context.Context, location string) (*weather.SecondaryResponse, error) {
	if !p.Configured() {
		return nil, fmt.Errorf("openweather: %w", errMissingAPIKey)
	}

	values := p.locationValues(location)
	var out weather.SecondaryResponse

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := p.getJSON(gCtx, "/weather", values, &out.Current); err != nil {
			return fmt.Errorf("openweather current: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		if err := p.getJSON(gCtx, "/forecast", values, &out.Forecast); err != nil {
			return fmt.Errorf("openweather forecast: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &out, nil
}

// locationValues chooses a zip query for all-digit locations and a name query
// otherwise.
func (p *OpenWeatherProvider) locationValues(location string) url.Values {
	values := url.Values{}
	values.Set("appid", p.apiKey)
	values.Set("units", "metric")
	if common.IsDigits(location) {
		values.Set("zip", location+","+p.zipCountry)
	} else {
		values.Set("q", location)
	}
	return values
}

func (p *OpenWeatherProvider) getJSON(ctx context.Context, path string, values url.Values, dst any) error {
	buildRequest := func(ctx context.Context) (*http.Request, error) {
		return getRequest(ctx, p.baseURL+path, values)
	}

	resp, err := doRequestWithResilience(ctx, p.httpCfg, p.circuit, buildRequest)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
		return fmt.Errorf("decode: %w", err)
	}
	return nil
}
