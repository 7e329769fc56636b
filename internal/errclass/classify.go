// Package errclass turns upstream failures into user-facing messages and HTTP
// statuses.
package errclass

import (
	"context"
	"errors"
	"net/http"

	"github.com/i474232898/city-weather/internal/openmeteo"
	"github.com/i474232898/city-weather/internal/weather"
)

const (
	MsgConnectivity = "Could not reach the weather service. Check your internet connection."
	MsgNotFound     = "The requested data was not found."
	MsgRateLimited  = "Too many requests. Please wait a moment and try again."
	MsgUnavailable  = "The weather service is temporarily unavailable. Please try again later."
	MsgGeneric      = "Failed to load weather data. Please try again."
)

// Class is the outcome of classifying an error.
type Class struct {
	Status  int
	Message string
}

// ForStatus classifies an upstream transport status. 0 means no response.
func ForStatus(code int) Class {
	switch {
	case code == 0:
		return Class{http.StatusServiceUnavailable, MsgConnectivity}
	case code == http.StatusNotFound:
		return Class{http.StatusNotFound, MsgNotFound}
	case code == http.StatusTooManyRequests:
		return Class{http.StatusTooManyRequests, MsgRateLimited}
	case code >= 500:
		return Class{http.StatusServiceUnavailable, MsgUnavailable}
	default:
		return Class{http.StatusBadGateway, MsgGeneric}
	}
}

// Classify maps any error from the weather layer onto a Class.
func Classify(err error) Class {
	if code, ok := openmeteo.StatusCodeOf(err); ok {
		return ForStatus(code)
	}
	switch {
	case errors.Is(err, weather.ErrCityNotFound):
		return Class{http.StatusNotFound, MsgNotFound}
	case errors.Is(err, openmeteo.ErrCircuitOpen):
		return Class{http.StatusServiceUnavailable, MsgUnavailable}
	case errors.Is(err, context.DeadlineExceeded):
		return Class{http.StatusGatewayTimeout, MsgUnavailable}
	case errors.Is(err, openmeteo.ErrMalformed):
		return Class{http.StatusBadGateway, MsgGeneric}
	}
	return Class{http.StatusInternalServerError, MsgGeneric}
}
