package weather

import "time"

// maxForecastDays is the length of the daily series the gateway serves.
const maxForecastDays = 5

// dailyBucket accumulates the 3-hour samples that fall on one calendar date.
type dailyBucket struct {
	dt        int64
	temps     []float64
	condition SecondaryCondition
	pop       float64
	humidity  int
	windSpeed float64
	hourly    []HourlyPoint
}

func (b *dailyBucket) add(item SecondaryForecastItem) {
	b.temps = append(b.temps, item.Main.Temp)
	if item.Pop > b.pop {
		b.pop = item.Pop
	}
	// Pairwise smoothing, not a mean: later samples weigh more. Clients rely on
	// the exact numbers so this must not be turned into a running average.
	b.humidity = int(roundHalfUp(float64(b.humidity+item.Main.Humidity) / 2))
	if ws := windSpeed(item.Wind); ws > b.windSpeed {
		b.windSpeed = ws
	}
	b.hourly = append(b.hourly, secondaryHourly(item))
}

func (b *dailyBucket) forecast() DailyForecast {
	minT, maxT := b.temps[0], b.temps[0]
	for _, t := range b.temps[1:] {
		if t < minT {
			minT = t
		}
		if t > maxT {
			maxT = t
		}
	}
	return DailyForecast{
		Dt:        b.dt,
		Temp:      TempRange{Min: minT, Max: maxT},
		Weather:   []Condition{secondaryCondition(b.condition)},
		Pop:       b.pop,
		Humidity:  b.humidity,
		WindSpeed: b.windSpeed,
		Source:    SourceOpenWeather,
		Hourly:    b.hourly,
	}
}

// AggregateDaily groups 3-hour forecast items by their UTC calendar date, in
// first-seen order, and returns at most five days. Sunrise and sunset are left
// for the caller to fill in.
func AggregateDaily(items []SecondaryForecastItem) []DailyForecast {
	var (
		order   []string
		buckets = make(map[string]*dailyBucket)
	)

	for _, item := range items {
		key := time.Unix(item.Dt, 0).UTC().Format(time.DateOnly)

		b, ok := buckets[key]
		if !ok {
			var cond SecondaryCondition
			if len(item.Weather) > 0 {
				cond = item.Weather[0]
			}
			b = &dailyBucket{
				dt:        item.Dt,
				condition: cond,
				pop:       item.Pop,
				humidity:  item.Main.Humidity,
				windSpeed: windSpeed(item.Wind),
			}
			buckets[key] = b
			order = append(order, key)
		}
		b.add(item)
	}

	if len(order) > maxForecastDays {
		order = order[:maxForecastDays]
	}

	daily := make([]DailyForecast, 0, len(order))
	for _, key := range order {
		daily = append(daily, buckets[key].forecast())
	}
	return daily
}

func windSpeed(w *SecondaryWind) float64 {
	if w == nil {
		return 0
	}
	return w.Speed
}

func windDeg(w *SecondaryWind) int {
	if w == nil {
		return 0
	}
	return w.Deg
}
