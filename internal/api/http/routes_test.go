package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/i474232898/weather-forecast-gateway/internal/weather"
)

type stubForecaster struct {
	snapshot weather.WeatherSnapshot
	err      error
	queries  []weather.Query
}

func (s *stubForecaster) Forecast(_ context.Context, q weather.Query) (weather.WeatherSnapshot, error) {
	s.queries = append(s.queries, q)
	return s.snapshot, s.err
}

func newTestApp(f Forecaster) *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler})
	RegisterRoutes(app, f)
	return app
}

func doGet(t *testing.T, app *fiber.App, target string) (int, map[string]any) {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, target, nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var body map[string]any
	require.NoError(t, json.Unmarshal(raw, &body), string(raw))
	return resp.StatusCode, body
}

func TestForecastRequiresLocation(t *testing.T) {
	f := &stubForecaster{}
	app := newTestApp(f)

	code, body := doGet(t, app, "/api/v1/weather/forecast")
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "Zipcode or search query is required", body["error"])
	assert.Empty(t, f.queries)
}

func TestForecastRejectsOversizedZipcode(t *testing.T) {
	app := newTestApp(&stubForecaster{})

	code, body := doGet(t, app, "/api/v1/weather/forecast?zipcode=12345678901234567890")
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "invalid zipcode parameter", body["error"])
}

func TestForecastSuccess(t *testing.T) {
	f := &stubForecaster{snapshot: weather.WeatherSnapshot{
		Source:   weather.SourceWeatherAPI,
		Timezone: weather.ZoneID("Asia/Kolkata"),
		Location: weather.Location{Name: "Pune", Country: "India"},
		Daily:    []weather.DailyForecast{{Dt: 1717200000}},
	}}
	app := newTestApp(f)

	code, body := doGet(t, app, "/api/v1/weather/forecast?zipcode=411001")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "weatherapi", body["source"])
	assert.Equal(t, "Asia/Kolkata", body["timezone"])
	assert.Len(t, body["daily"], 1)

	require.Len(t, f.queries, 1)
	assert.Equal(t, "411001", f.queries[0].Location())
}

func TestForecastQueryTakesPrecedence(t *testing.T) {
	f := &stubForecaster{}
	app := newTestApp(f)

	code, _ := doGet(t, app, "/api/v1/weather/forecast?zipcode=411001&query=London")
	assert.Equal(t, http.StatusOK, code)
	require.Len(t, f.queries, 1)
	assert.Equal(t, "London", f.queries[0].Location())
}

func TestForecastLegacyPath(t *testing.T) {
	f := &stubForecaster{}
	app := newTestApp(f)

	code, _ := doGet(t, app, "/api/weather/forecast?query=Paris")
	assert.Equal(t, http.StatusOK, code)
	require.Len(t, f.queries, 1)
	assert.Equal(t, "Paris", f.queries[0].Text)
}

func TestForecastServiceErrors(t *testing.T) {
	cases := []struct {
		err     error
		code    int
		message string
		noData  bool
	}{
		{weather.ErrInvalidRequest, http.StatusBadRequest, "Zipcode or search query is required", false},
		{weather.ErrNoWeatherData, http.StatusNotFound, weather.NoDataMessage, true},
		{fmt.Errorf("resolve: %w", weather.ErrNotConfigured), http.StatusInternalServerError, "Weather API keys not configured", false},
		{errors.New("socket closed"), http.StatusInternalServerError, "Failed to fetch weather data", false},
	}

	for _, tc := range cases {
		t.Run(tc.err.Error(), func(t *testing.T) {
			app := newTestApp(&stubForecaster{err: tc.err})

			code, body := doGet(t, app, "/api/v1/weather/forecast?query=Atlantis")
			assert.Equal(t, tc.code, code)
			assert.Equal(t, tc.message, body["error"])
			if tc.noData {
				assert.Equal(t, true, body["noData"])
			} else {
				assert.NotContains(t, body, "noData")
			}
		})
	}
}

func TestErrorHandlerFiberError(t *testing.T) {
	app := newTestApp(&stubForecaster{})

	code, body := doGet(t, app, "/api/v1/unknown")
	assert.Equal(t, http.StatusNotFound, code)
	assert.Contains(t, body["error"], "Cannot GET")
}
