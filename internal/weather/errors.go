package weather

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidRequest is returned when neither a zipcode nor a query is given.
	ErrInvalidRequest = errors.New("zipcode or search query is required")

	// ErrNoWeatherData is returned when every configured provider came back empty.
	ErrNoWeatherData = errors.New("weather data not found for this area or ZIP code")

	// ErrNotConfigured is returned when no provider has credentials.
	ErrNotConfigured = errors.New("weather API keys not configured")

	// ErrProviderUnavailable marks a soft, single-provider failure.
	ErrProviderUnavailable = errors.New("weather provider unavailable")
)

// NoDataMessage is the user-facing text for ErrNoWeatherData.
const NoDataMessage = "Weather data not found for this area or ZIP code. Please enter a nearby city or valid postal code."

// ProviderError wraps a failed call to a named provider.
type ProviderError struct {
	Provider string
	Err      error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("%s: %v", e.Provider, e.Err)
}

func (e *ProviderError) Unwrap() []error {
	return []error{ErrProviderUnavailable, e.Err}
}
