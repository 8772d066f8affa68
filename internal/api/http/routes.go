package httpapi

import (
	"context"
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/i474232898/weather-forecast-gateway/internal/weather"
)

var validate = validator.New()

// Forecaster is the part of weather.Service the handlers need.
type Forecaster interface {
	Forecast(ctx context.Context, q weather.Query) (weather.WeatherSnapshot, error)
}

// apiError is rendered by ErrorHandler as {"error": msg, "noData": true?}.
type apiError struct {
	code    int
	message string
	noData  bool
}

func (e *apiError) Error() string { return e.message }

// ErrorHandler is the centralized fiber error handler.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	body := fiber.Map{"error": err.Error()}

	var ae *apiError
	var fe *fiber.Error
	switch {
	case errors.As(err, &ae):
		code = ae.code
		if ae.noData {
			body["noData"] = true
		}
	case errors.As(err, &fe):
		code = fe.Code
	}
	return c.Status(code).JSON(body)
}

// RegisterRoutes wires the HTTP handlers into the Fiber app.
func RegisterRoutes(app *fiber.App, service Forecaster) {
	handler := forecastHandler(service)

	v1 := app.Group("/api/v1")
	v1.Get("/weather/forecast", handler)

	// Path used by the legacy web front-end.
	app.Get("/api/weather/forecast", handler)
}

func forecastHandler(service Forecaster) fiber.Handler {
	return func(c *fiber.Ctx) error {
		q, err := parseForecastQuery(c)
		if err != nil {
			return &apiError{code: fiber.StatusBadRequest, message: validationMessage(err)}
		}

		snapshot, err := service.Forecast(c.UserContext(), q.toQuery())
		if err != nil {
			return mapServiceError(err)
		}
		return c.JSON(snapshot)
	}
}

func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		for _, fe := range verrs {
			if fe.Tag() != "required_without" {
				return "invalid " + strings.ToLower(fe.Field()) + " parameter"
			}
		}
	}
	return "Zipcode or search query is required"
}

func mapServiceError(err error) error {
	switch {
	case errors.Is(err, weather.ErrInvalidRequest):
		return &apiError{code: fiber.StatusBadRequest, message: "Zipcode or search query is required"}
	case errors.Is(err, weather.ErrNoWeatherData):
		return &apiError{code: fiber.StatusNotFound, message: weather.NoDataMessage, noData: true}
	case errors.Is(err, weather.ErrNotConfigured):
		return &apiError{code: fiber.StatusInternalServerError, message: "Weather API keys not configured"}
	default:
		return &apiError{code: fiber.StatusInternalServerError, message: "Failed to fetch weather data"}
	}
}

// forecastQuery holds query parameters for the forecast endpoint.
type forecastQuery struct {
	Zipcode string `validate:"required_without=Query,max=16"`
	Query   string `validate:"required_without=Zipcode,max=200"`
}

func (f forecastQuery) toQuery() weather.Query {
	return weather.Query{
		Zipcode: f.Zipcode,
		Text:    f.Query,
	}
}

func parseForecastQuery(c *fiber.Ctx) (forecastQuery, error) {
	var q forecastQuery

	q.Zipcode = c.Query("zipcode")
	q.Query = c.Query("query")

	if err := validate.Struct(q); err != nil {
		return q, err
	}

	return q, nil
}
