package weather

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"
)

// primaryFixture builds a WeatherAPI payload with days of 24 hourly entries,
// starting at midnight UTC of start's date.
func primaryFixture(days int, start time.Time) *PrimaryResponse {
	r := &PrimaryResponse{}
	r.Location.Name = "Pune"
	r.Location.Region = "Maharashtra"
	r.Location.Country = "India"
	r.Location.TzID = "Asia/Kolkata"

	r.Current.TempC = 28.5
	r.Current.FeelsLikeC = 30.1
	r.Current.Humidity = 62
	r.Current.PressureMb = 1008
	r.Current.UV = 7
	r.Current.WindKph = 18
	r.Current.WindDegree = 250
	r.Current.WindDir = "WSW"
	r.Current.Condition = PrimaryCondition{
		Text: "Partly cloudy",
		Icon: "//cdn.weatherapi.com/weather/64x64/day/116.png",
	}

	midnight := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, time.UTC)
	for d := 0; d < days; d++ {
		dayStart := midnight.AddDate(0, 0, d)
		fd := PrimaryForecastDay{
			Date:      dayStart.Format(time.DateOnly),
			DateEpoch: dayStart.Unix(),
		}
		fd.Day.MinTempC = 20 + float64(d)
		fd.Day.MaxTempC = 30 + float64(d)
		fd.Day.MaxWindKph = 27
		fd.Day.AvgHumidity = 55.4
		fd.Day.DailyChanceOfRain = 40
		fd.Day.UV = 8
		fd.Day.Condition = PrimaryCondition{Text: "Sunny", Icon: "//cdn.weatherapi.com/weather/64x64/day/113.png"}
		fd.Astro.Sunrise = fmt.Sprintf("06:0%d AM", d)
		fd.Astro.Sunset = "06:45 PM"
		for h := 0; h < 24; h++ {
			fd.Hour = append(fd.Hour, PrimaryHour{
				TimeEpoch:    dayStart.Add(time.Duration(h) * time.Hour).Unix(),
				TempC:        22 + float64(h%6),
				Condition:    PrimaryCondition{Text: "Clear", Icon: "//cdn.weatherapi.com/weather/64x64/night/113.png"},
				WindKph:      7.2,
				WindDegree:   90,
				Humidity:     70,
				ChanceOfRain: 25,
				UV:           1,
			})
		}
		r.Forecast.ForecastDay = append(r.Forecast.ForecastDay, fd)
	}
	return r
}

// secondaryFixture builds an OpenWeatherMap payload with 8 three-hour items per
// UTC day for days days, starting at midnight UTC of start's date.
func secondaryFixture(days int, start time.Time) *SecondaryResponse {
	r := &SecondaryResponse{}
	midnight := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, time.UTC)

	r.Current.Name = "London"
	r.Current.Sys.Country = "GB"
	r.Current.Timezone = 3600
	// 05:15 and 19:42 UTC, i.e. 6:15 AM and 8:42 PM local.
	r.Current.Sys.Sunrise = midnight.Add(5*time.Hour + 15*time.Minute).Unix()
	r.Current.Sys.Sunset = midnight.Add(19*time.Hour + 42*time.Minute).Unix()
	r.Current.Main = SecondaryMain{Temp: 17.2, FeelsLike: 16.9, Pressure: 1015, Humidity: 72}
	r.Current.Wind = &SecondaryWind{Speed: 4.1, Deg: 200}
	r.Current.Weather = []SecondaryCondition{{Main: "Clouds", Description: "broken clouds", Icon: "04d"}}

	for d := 0; d < days; d++ {
		for slot := 0; slot < 8; slot++ {
			ts := midnight.AddDate(0, 0, d).Add(time.Duration(slot*3) * time.Hour)
			r.Forecast.List = append(r.Forecast.List, SecondaryForecastItem{
				Dt:      ts.Unix(),
				Main:    SecondaryMain{Temp: 10 + float64(d) + float64(slot), Humidity: 60 + slot*2},
				Weather: []SecondaryCondition{{Main: fmt.Sprintf("Day%d", d+1), Description: "slot", Icon: "10d"}},
				Wind:    &SecondaryWind{Speed: 2 + float64(slot)/2, Deg: 180},
				Pop:     float64(slot) / 10,
			})
		}
	}
	return r
}

type fakePrimary struct {
	configured bool
	resp       *PrimaryResponse
	err        error

	mu    sync.Mutex
	calls int
}

func (f *fakePrimary) Name() string     { return string(SourceWeatherAPI) }
func (f *fakePrimary) Configured() bool { return f.configured }

func (f *fakePrimary) FetchForecast(_ context.Context, _ string, _ int) (*PrimaryResponse, error) {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	return f.resp, nil
}

type fakeSecondary struct {
	configured bool
	resp       *SecondaryResponse
	err        error

	mu        sync.Mutex
	calls     int
	locations []string
}

func (f *fakeSecondary) Name() string     { return string(SourceOpenWeather) }
func (f *fakeSecondary) Configured() bool { return f.configured }

func (f *fakeSecondary) FetchForecast(_ context.Context, location string) (*SecondaryResponse, error) {
	f.mu.Lock()
	f.calls++
	f.locations = append(f.locations, location)
	f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	return f.resp, nil
}

var errBoom = errors.New("boom")

type mapCache struct {
	m map[string]WeatherSnapshot
}

func (c *mapCache) Get(key string) (WeatherSnapshot, bool) {
	s, ok := c.m[key]
	return s, ok
}

func (c *mapCache) Save(key string, s WeatherSnapshot) {
	if c.m == nil {
		c.m = make(map[string]WeatherSnapshot)
	}
	c.m[key] = s
}
