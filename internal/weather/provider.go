package weather

import (
	"context"
	"time"
)

// ProviderResponse is a raw payload from one of the two providers.
// The set of implementations is closed: *PrimaryResponse and *SecondaryResponse.
type ProviderResponse interface {
	providerSource() Source
}

// PrimaryProvider returns pre-localized forecasts (WeatherAPI.com).
type PrimaryProvider interface {
	Name() string
	Configured() bool
	FetchForecast(ctx context.Context, location string, days int) (*PrimaryResponse, error)
}

// SecondaryProvider returns UTC epochs plus an offset (OpenWeatherMap).
type SecondaryProvider interface {
	Name() string
	Configured() bool
	FetchForecast(ctx context.Context, location string) (*SecondaryResponse, error)
}

// Cache is satisfied by the in-memory snapshot store.
type Cache interface {
	Get(key string) (WeatherSnapshot, bool)
	Save(key string, snapshot WeatherSnapshot)
}

// Clock lets tests pin "now" for the hourly filter.
type Clock func() time.Time

// PrimaryResponse mirrors the WeatherAPI.com forecast.json payload.
type PrimaryResponse struct {
	Location struct {
		Name           string  `json:"name"`
		Region         string  `json:"region"`
		Country        string  `json:"country"`
		Lat            float64 `json:"lat"`
		Lon            float64 `json:"lon"`
		TzID           string  `json:"tz_id"`
		LocaltimeEpoch int64   `json:"localtime_epoch"`
		Localtime      string  `json:"localtime"`
	} `json:"location"`
	Current struct {
		LastUpdatedEpoch int64            `json:"last_updated_epoch"`
		TempC            float64          `json:"temp_c"`
		FeelsLikeC       float64          `json:"feelslike_c"`
		Humidity         int              `json:"humidity"`
		PressureMb       float64          `json:"pressure_mb"`
		UV               float64          `json:"uv"`
		WindKph          float64          `json:"wind_kph"`
		WindDegree       int              `json:"wind_degree"`
		WindDir          string           `json:"wind_dir"`
		Condition        PrimaryCondition `json:"condition"`
	} `json:"current"`
	Forecast struct {
		ForecastDay []PrimaryForecastDay `json:"forecastday"`
	} `json:"forecast"`
}

func (*PrimaryResponse) providerSource() Source { return SourceWeatherAPI }

// PrimaryCondition is WeatherAPI's condition object.
type PrimaryCondition struct {
	Text string `json:"text"`
	Icon string `json:"icon"`
	Code int    `json:"code"`
}

// PrimaryForecastDay is a single entry of forecast.forecastday.
type PrimaryForecastDay struct {
	Date      string `json:"date"`
	DateEpoch int64  `json:"date_epoch"`
	Day       struct {
		MaxTempC          float64          `json:"maxtemp_c"`
		MinTempC          float64          `json:"mintemp_c"`
		MaxWindKph        float64          `json:"maxwind_kph"`
		AvgHumidity       float64          `json:"avghumidity"`
		DailyChanceOfRain float64          `json:"daily_chance_of_rain"`
		Condition         PrimaryCondition `json:"condition"`
		UV                float64          `json:"uv"`
	} `json:"day"`
	Astro struct {
		Sunrise string `json:"sunrise"`
		Sunset  string `json:"sunset"`
	} `json:"astro"`
	Hour []PrimaryHour `json:"hour"`
}

// PrimaryHour is one hour of a WeatherAPI forecast day.
type PrimaryHour struct {
	TimeEpoch    int64            `json:"time_epoch"`
	Time         string           `json:"time"`
	TempC        float64          `json:"temp_c"`
	Condition    PrimaryCondition `json:"condition"`
	WindKph      float64          `json:"wind_kph"`
	WindDegree   int              `json:"wind_degree"`
	Humidity     int              `json:"humidity"`
	ChanceOfRain float64          `json:"chance_of_rain"`
	UV           float64          `json:"uv"`
}

// SecondaryResponse bundles the two OpenWeatherMap payloads fetched together.
type SecondaryResponse struct {
	Current  SecondaryCurrent  `json:"current"`
	Forecast SecondaryForecast `json:"forecast"`
}

func (*SecondaryResponse) providerSource() Source { return SourceOpenWeather }

// SecondaryCondition is an entry of OpenWeatherMap's weather array.
type SecondaryCondition struct {
	ID          int    `json:"id"`
	Main        string `json:"main"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

// SecondaryMain is OpenWeatherMap's "main" block.
type SecondaryMain struct {
	Temp      float64 `json:"temp"`
	FeelsLike float64 `json:"feels_like"`
	TempMin   float64 `json:"temp_min"`
	TempMax   float64 `json:"temp_max"`
	Pressure  float64 `json:"pressure"`
	Humidity  int     `json:"humidity"`
}

// SecondaryWind is OpenWeatherMap's "wind" block; speed is m/s with units=metric.
type SecondaryWind struct {
	Speed float64 `json:"speed"`
	Deg   int     `json:"deg"`
}

// SecondaryCurrent mirrors /data/2.5/weather.
type SecondaryCurrent struct {
	Weather []SecondaryCondition `json:"weather"`
	Main    SecondaryMain        `json:"main"`
	Wind    *SecondaryWind       `json:"wind"`
	Dt      int64                `json:"dt"`
	Sys     struct {
		Country string `json:"country"`
		Sunrise int64  `json:"sunrise"`
		Sunset  int64  `json:"sunset"`
	} `json:"sys"`
	Timezone int    `json:"timezone"`
	Name     string `json:"name"`
}

// SecondaryForecastItem is one 3-hour entry of /data/2.5/forecast.
type SecondaryForecastItem struct {
	Dt      int64                `json:"dt"`
	Main    SecondaryMain        `json:"main"`
	Weather []SecondaryCondition `json:"weather"`
	Wind    *SecondaryWind       `json:"wind"`
	Pop     float64              `json:"pop"`
	DtTxt   string               `json:"dt_txt"`
}

// SecondaryForecast mirrors /data/2.5/forecast.
type SecondaryForecast struct {
	List []SecondaryForecastItem `json:"list"`
	City struct {
		Name     string `json:"name"`
		Country  string `json:"country"`
		Timezone int    `json:"timezone"`
		Sunrise  int64  `json:"sunrise"`
		Sunset   int64  `json:"sunset"`
	} `json:"city"`
}
