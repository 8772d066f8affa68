package weather

import (
	"fmt"
	"math"
	"strings"
	"time"
)

const (
	owmIconURL = "https://openweathermap.org/img/wn/%s@2x.png"

	// secondaryHourlyWindow bounds the 3-hour series surfaced as "hourly".
	secondaryHourlyWindow = 48 * time.Hour
)

// Normalize converts a provider payload into a WeatherSnapshot. now drives the
// hourly filters and is read in its own location.
func Normalize(resp ProviderResponse, now time.Time) (WeatherSnapshot, error) {
	switch r := resp.(type) {
	case *PrimaryResponse:
		return normalizePrimary(r, now)
	case *SecondaryResponse:
		return normalizeSecondary(r, now)
	default:
		return WeatherSnapshot{}, fmt.Errorf("unsupported provider response %T", resp)
	}
}

func normalizePrimary(r *PrimaryResponse, now time.Time) (WeatherSnapshot, error) {
	days := r.Forecast.ForecastDay
	if len(days) == 0 {
		return WeatherSnapshot{}, fmt.Errorf("%s: empty forecast", SourceWeatherAPI)
	}

	cur := r.Current
	windDir := cur.WindDir
	if windDir == "" {
		windDir = CompassDirection(float64(cur.WindDegree))
	}

	snap := WeatherSnapshot{
		Source:   SourceWeatherAPI,
		Timezone: ZoneID(r.Location.TzID),
		Current: CurrentConditions{
			Temp:        cur.TempC,
			FeelsLike:   cur.FeelsLikeC,
			Humidity:    cur.Humidity,
			Pressure:    cur.PressureMb,
			UVI:         cur.UV,
			WindSpeed:   KphToMs(cur.WindKph),
			WindDeg:     cur.WindDegree,
			WindDir:     windDir,
			Weather:     []Condition{primaryCondition(cur.Condition)},
			SunriseTime: days[0].Astro.Sunrise,
			SunsetTime:  days[0].Astro.Sunset,
		},
		Location: Location{
			Name:     r.Location.Name,
			Country:  r.Location.Country,
			Region:   r.Location.Region,
			Timezone: ZoneID(r.Location.TzID),
		},
	}

	today := now.Format(time.DateOnly)
	hourNow := now.Hour()
	for _, day := range days {
		for _, h := range day.Hour {
			t := time.Unix(h.TimeEpoch, 0).In(now.Location())
			// The current hour counts even though its timestamp is in the past.
			if t.Before(now) && (t.Format(time.DateOnly) != today || t.Hour() < hourNow) {
				continue
			}
			snap.Hourly = append(snap.Hourly, HourlyPoint{
				Dt:        h.TimeEpoch,
				Temp:      h.TempC,
				Weather:   []Condition{primaryCondition(h.Condition)},
				Pop:       h.ChanceOfRain / 100,
				Humidity:  h.Humidity,
				WindSpeed: KphToMs(h.WindKph),
				WindDeg:   h.WindDegree,
				UV:        h.UV,
			})
		}

		snap.Daily = append(snap.Daily, DailyForecast{
			Dt:          day.DateEpoch,
			Temp:        TempRange{Min: day.Day.MinTempC, Max: day.Day.MaxTempC},
			Weather:     []Condition{primaryCondition(day.Day.Condition)},
			Pop:         day.Day.DailyChanceOfRain / 100,
			Humidity:    int(math.Round(day.Day.AvgHumidity)),
			WindSpeed:   KphToMs(day.Day.MaxWindKph),
			SunriseTime: day.Astro.Sunrise,
			SunsetTime:  day.Astro.Sunset,
			UV:          day.Day.UV,
			Source:      SourceWeatherAPI,
		})
	}

	return snap, nil
}

func normalizeSecondary(r *SecondaryResponse, now time.Time) (WeatherSnapshot, error) {
	if len(r.Forecast.List) == 0 {
		return WeatherSnapshot{}, fmt.Errorf("%s: empty forecast", SourceOpenWeather)
	}

	cur := r.Current
	offset := cur.Timezone
	sunrise := FormatLocalTime(cur.Sys.Sunrise, offset)
	sunset := FormatLocalTime(cur.Sys.Sunset, offset)

	var weather []Condition
	if len(cur.Weather) > 0 {
		weather = []Condition{secondaryCondition(cur.Weather[0])}
	}

	snap := WeatherSnapshot{
		Source:   SourceOpenWeather,
		Timezone: ZoneOffset(offset),
		Current: CurrentConditions{
			Temp:        cur.Main.Temp,
			FeelsLike:   cur.Main.FeelsLike,
			Humidity:    cur.Main.Humidity,
			Pressure:    cur.Main.Pressure,
			WindSpeed:   windSpeed(cur.Wind),
			WindDeg:     windDeg(cur.Wind),
			WindDir:     CompassDirection(float64(windDeg(cur.Wind))),
			Weather:     weather,
			SunriseTime: sunrise,
			SunsetTime:  sunset,
		},
		Location: Location{
			Name:    cur.Name,
			Country: cur.Sys.Country,
		},
	}

	cutoff := now.Add(secondaryHourlyWindow)
	for _, item := range r.Forecast.List {
		if !time.Unix(item.Dt, 0).Before(cutoff) {
			continue
		}
		snap.Hourly = append(snap.Hourly, secondaryHourly(item))
	}

	snap.Daily = AggregateDaily(r.Forecast.List)
	anchor := SunTimes{Sunrise: sunrise, Sunset: sunset}
	for i := range snap.Daily {
		if i == 0 {
			snap.Daily[i].SunriseTime = sunrise
			snap.Daily[i].SunsetTime = sunset
			continue
		}
		est := ForecastDrift.EstimateSun(anchor, i)
		snap.Daily[i].SunriseTime = est.Sunrise
		snap.Daily[i].SunsetTime = est.Sunset
		snap.Daily[i].SunriseEstimated = true
		snap.Daily[i].SunsetEstimated = true
	}

	return snap, nil
}

func primaryCondition(c PrimaryCondition) Condition {
	return Condition{
		Main:        c.Text,
		Description: c.Text,
		Icon:        primaryIconURL(c.Icon),
	}
}

// primaryIconURL swaps in the 128px variant and makes scheme-relative CDN
// paths absolute.
func primaryIconURL(icon string) string {
	icon = strings.Replace(icon, "64x64", "128x128", 1)
	if strings.HasPrefix(icon, "//") {
		icon = "https:" + icon
	}
	return icon
}

func secondaryCondition(c SecondaryCondition) Condition {
	return Condition{
		Main:        c.Main,
		Description: c.Description,
		Icon:        fmt.Sprintf(owmIconURL, c.Icon),
	}
}

func secondaryHourly(item SecondaryForecastItem) HourlyPoint {
	var weather []Condition
	if len(item.Weather) > 0 {
		weather = []Condition{secondaryCondition(item.Weather[0])}
	}
	return HourlyPoint{
		Dt:        item.Dt,
		Temp:      item.Main.Temp,
		Weather:   weather,
		Pop:       item.Pop,
		Humidity:  item.Main.Humidity,
		WindSpeed: windSpeed(item.Wind),
		WindDeg:   windDeg(item.Wind),
	}
}
