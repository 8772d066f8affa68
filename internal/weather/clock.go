package weather

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
)

const (
	minutesPerDay = 24 * 60

	// defaultClockMinutes is returned for unparseable clock strings (6:00 AM).
	defaultClockMinutes = 6 * 60
)

var clockPattern = regexp.MustCompile(`(?i)(\d+):(\d+)\s*(AM|PM)`)

var compassPoints = [16]string{
	"N", "NNE", "NE", "ENE", "E", "ESE", "SE", "SSE",
	"S", "SSW", "SW", "WSW", "W", "WNW", "NW", "NNW",
}

// ParseClock converts a 12-hour clock string such as "6:15 AM" into minutes
// since midnight. Strings that do not look like a clock yield 360.
func ParseClock(s string) int {
	m := clockPattern.FindStringSubmatch(s)
	if m == nil {
		return defaultClockMinutes
	}
	hours, err := strconv.Atoi(m[1])
	if err != nil {
		return defaultClockMinutes
	}
	minutes, err := strconv.Atoi(m[2])
	if err != nil {
		return defaultClockMinutes
	}

	switch strings.ToUpper(m[3]) {
	case "PM":
		if hours != 12 {
			hours += 12
		}
	case "AM":
		if hours == 12 {
			hours = 0
		}
	}
	return hours*60 + minutes
}

// FormatClock renders minutes since midnight as a 12-hour clock string,
// wrapping across midnight in both directions.
func FormatClock(total int) string {
	total = ((total % minutesPerDay) + minutesPerDay) % minutesPerDay
	hours := total / 60
	minutes := total % 60

	display := hours % 12
	if display == 0 {
		display = 12
	}
	period := "AM"
	if hours >= 12 {
		period = "PM"
	}
	return fmt.Sprintf("%d:%02d %s", display, minutes, period)
}

// AddMinutes shifts a 12-hour clock string by delta minutes.
func AddMinutes(s string, delta int) string {
	return FormatClock(ParseClock(s) + delta)
}

// LocalClock returns the "HH:MM" wall clock of a UTC epoch at the given UTC
// offset. The offset is folded into the instant, which is then read in UTC,
// so no timezone database is consulted.
func LocalClock(utcEpoch int64, offsetSeconds int) string {
	return time.Unix(utcEpoch+int64(offsetSeconds), 0).UTC().Format("15:04")
}

// To12Hour converts a 24-hour "HH:MM" string to "h:MM AM".
func To12Hour(hhmm string) string {
	h, m, ok := strings.Cut(hhmm, ":")
	if !ok {
		return FormatClock(defaultClockMinutes)
	}
	hour, err := strconv.Atoi(h)
	if err != nil {
		return FormatClock(defaultClockMinutes)
	}
	minute, err := strconv.Atoi(m)
	if err != nil {
		return FormatClock(defaultClockMinutes)
	}
	return FormatClock(hour*60 + minute)
}

// FormatLocalTime renders a UTC epoch as a 12-hour local clock string.
func FormatLocalTime(utcEpoch int64, offsetSeconds int) string {
	return To12Hour(LocalClock(utcEpoch, offsetSeconds))
}

// CompassDirection maps degrees to one of 16 compass points.
func CompassDirection(degrees float64) string {
	idx := int(roundHalfUp(degrees/22.5)) % len(compassPoints)
	if idx < 0 {
		idx += len(compassPoints)
	}
	return compassPoints[idx]
}

// KphToMs converts km/h to m/s.
func KphToMs(kph float64) float64 {
	return kph / 3.6
}

// roundHalfUp rounds .5 towards positive infinity.
func roundHalfUp(v float64) float64 {
	return math.Floor(v + 0.5)
}
