package weather

// fallbackSunset is used when the anchor day carries no sunset string.
const fallbackSunset = "6:30 PM"

// SunTimes is a pair of 12-hour local clock strings.
type SunTimes struct {
	Sunrise string
	Sunset  string
}

// SunEstimator guesses sunrise and sunset daysAhead days after a known anchor
// day. daysAhead starts at 1.
type SunEstimator interface {
	EstimateSun(anchor SunTimes, daysAhead int) SunTimes
}

// DriftEstimator shifts the anchor by a fixed number of minutes per day ahead.
// Offsets past the end of a table reuse its last entry.
type DriftEstimator struct {
	SunriseDrift []int
	SunsetDrift  []int
}

var (
	// GapFillDrift extends a WeatherAPI forecast: the sunrise holds and the
	// sunset moves one minute per day.
	GapFillDrift = DriftEstimator{
		SunriseDrift: []int{0, 0},
		SunsetDrift:  []int{1, 2},
	}

	// ForecastDrift fills days 2-5 of an OpenWeatherMap-only forecast from
	// today's sunrise and sunset.
	ForecastDrift = DriftEstimator{
		SunriseDrift: []int{0, 0, 1, 2},
		SunsetDrift:  []int{0, 1, 2, 3},
	}
)

func (d DriftEstimator) EstimateSun(anchor SunTimes, daysAhead int) SunTimes {
	sunset := anchor.Sunset
	if sunset == "" {
		sunset = fallbackSunset
	}
	return SunTimes{
		Sunrise: shift(anchor.Sunrise, drift(d.SunriseDrift, daysAhead)),
		Sunset:  shift(sunset, drift(d.SunsetDrift, daysAhead)),
	}
}

// shift leaves the string untouched when there is nothing to add.
func shift(clock string, minutes int) string {
	if minutes == 0 {
		return clock
	}
	return AddMinutes(clock, minutes)
}

func drift(table []int, daysAhead int) int {
	if len(table) == 0 || daysAhead < 1 {
		return 0
	}
	if daysAhead > len(table) {
		return table[len(table)-1]
	}
	return table[daysAhead-1]
}

// Synthesize extends a three-day primary daily series to five days. Each added
// day takes its weather from the secondary day at the same index (or the
// secondary's last day) and its sunrise and sunset from est, anchored on the
// primary's third day. Added days are tagged estimated and carry no UV index.
// Any other primary length is returned unchanged.
func Synthesize(primary, secondary []DailyForecast, est SunEstimator) []DailyForecast {
	if len(primary) != primaryForecastDays || len(secondary) == 0 {
		return primary
	}

	last := primary[len(primary)-1]
	anchor := SunTimes{Sunrise: last.SunriseTime, Sunset: last.SunsetTime}

	out := make([]DailyForecast, len(primary), maxForecastDays)
	copy(out, primary)
	for i := len(primary); i < maxForecastDays; i++ {
		src := secondary[len(secondary)-1]
		if i < len(secondary) {
			src = secondary[i]
		}

		sun := est.EstimateSun(anchor, i-len(primary)+1)
		day := src
		day.SunriseTime = sun.Sunrise
		day.SunsetTime = sun.Sunset
		day.SunriseEstimated = true
		day.SunsetEstimated = true
		day.Source = SourceEstimated
		day.UV = 0
		out = append(out, day)
	}
	return out
}
