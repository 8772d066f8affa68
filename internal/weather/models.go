package weather

import (
	"encoding/json"
	"strings"
)

// Source identifies which provider backs a snapshot or a forecast day.
type Source string

const (
	SourceWeatherAPI  Source = "weatherapi"
	SourceOpenWeather Source = "openweathermap"
	SourceEstimated   Source = "estimated"
)

// Timezone is either an IANA zone id (WeatherAPI) or a UTC offset in seconds
// (OpenWeatherMap). It marshals to a JSON string or number accordingly.
type Timezone struct {
	ID            string
	OffsetSeconds *int
}

// ZoneID builds a Timezone from an IANA identifier.
func ZoneID(id string) Timezone {
	return Timezone{ID: id}
}

// ZoneOffset builds a Timezone from a UTC offset in seconds.
func ZoneOffset(seconds int) Timezone {
	return Timezone{OffsetSeconds: &seconds}
}

func (tz Timezone) IsZero() bool {
	return tz.ID == "" && tz.OffsetSeconds == nil
}

func (tz Timezone) MarshalJSON() ([]byte, error) {
	if tz.OffsetSeconds != nil {
		return json.Marshal(*tz.OffsetSeconds)
	}
	if tz.ID == "" {
		return []byte("null"), nil
	}
	return json.Marshal(tz.ID)
}

func (tz *Timezone) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	switch {
	case s == "null":
		*tz = Timezone{}
		return nil
	case strings.HasPrefix(s, `"`):
		var id string
		if err := json.Unmarshal(data, &id); err != nil {
			return err
		}
		*tz = ZoneID(id)
		return nil
	default:
		var off int
		if err := json.Unmarshal(data, &off); err != nil {
			return err
		}
		*tz = ZoneOffset(off)
		return nil
	}
}

// Condition is a provider-neutral weather description with an absolute icon URL.
type Condition struct {
	Main        string `json:"main"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

// CurrentConditions describes the weather right now.
// WindSpeed is always m/s.
type CurrentConditions struct {
	Temp        float64     `json:"temp"`
	FeelsLike   float64     `json:"feels_like"`
	Humidity    int         `json:"humidity"`
	Pressure    float64     `json:"pressure"`
	UVI         float64     `json:"uvi"`
	WindSpeed   float64     `json:"wind_speed"`
	WindDeg     int         `json:"wind_deg"`
	WindDir     string      `json:"wind_dir"`
	Weather     []Condition `json:"weather"`
	SunriseTime string      `json:"sunrise_time"`
	SunsetTime  string      `json:"sunset_time"`
}

// HourlyPoint is a single point of the hourly (or 3-hourly) series.
type HourlyPoint struct {
	Dt        int64       `json:"dt"`
	Temp      float64     `json:"temp"`
	Weather   []Condition `json:"weather"`
	Pop       float64     `json:"pop"`
	Humidity  int         `json:"humidity"`
	WindSpeed float64     `json:"wind_speed"`
	WindDeg   int         `json:"wind_deg"`
	UV        float64     `json:"uv"`
}

// TempRange holds the daily extremes in °C.
type TempRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// DailyForecast is one day of the daily series.
type DailyForecast struct {
	Dt               int64         `json:"dt"`
	Temp             TempRange     `json:"temp"`
	Weather          []Condition   `json:"weather"`
	Pop              float64       `json:"pop"`
	Humidity         int           `json:"humidity"`
	WindSpeed        float64       `json:"wind_speed"`
	SunriseTime      string        `json:"sunrise_time"`
	SunsetTime       string        `json:"sunset_time"`
	SunriseEstimated bool          `json:"sunrise_estimated"`
	SunsetEstimated  bool          `json:"sunset_estimated"`
	UV               float64       `json:"uv"`
	Source           Source        `json:"source"`
	Hourly           []HourlyPoint `json:"hourly,omitempty"`
}

// Location describes the place a snapshot was resolved to.
type Location struct {
	Name     string   `json:"name"`
	Country  string   `json:"country"`
	Region   string   `json:"region,omitempty"`
	Timezone Timezone `json:"timezone,omitzero"`
}

// WeatherSnapshot is the normalized output of the aggregation pipeline.
// It is built per request and never persisted.
type WeatherSnapshot struct {
	Source   Source            `json:"source"`
	Timezone Timezone          `json:"timezone"`
	Current  CurrentConditions `json:"current"`
	Hourly   []HourlyPoint     `json:"hourly"`
	Daily    []DailyForecast   `json:"daily"`
	Location Location          `json:"location"`
}

// Query is the caller's location descriptor: a free-text place or a postal code.
type Query struct {
	Zipcode string
	Text    string
}

// Location returns the string sent to providers. Free text wins over a zipcode.
func (q Query) Location() string {
	if t := strings.TrimSpace(q.Text); t != "" {
		return t
	}
	return strings.TrimSpace(q.Zipcode)
}

// Key returns a canonical key for caching this query.
func (q Query) Key() string {
	return strings.ToLower(q.Location())
}
