package weather

import (
	"errors"

	"github.com/i474232898/city-weather/internal/openmeteo"
)

// ErrCityNotFound is returned by ResolveCity whenever geocoding yields no usable
// match, whether the result list is empty, missing, or the response is absent.
var ErrCityNotFound = errors.New("city not found")

// Kind groups errors by how callers should react to them.
type Kind int

const (
	KindNone Kind = iota
	KindNotFound
	KindNetwork
	KindMalformed
	KindUnknown
)

func (k Kind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindNotFound:
		return "not_found"
	case KindNetwork:
		return "network"
	case KindMalformed:
		return "malformed"
	default:
		return "unknown"
	}
}

// KindOf classifies err.
func KindOf(err error) Kind {
	switch {
	case err == nil:
		return KindNone
	case errors.Is(err, ErrCityNotFound):
		return KindNotFound
	case errors.Is(err, openmeteo.ErrMalformed):
		return KindMalformed
	case errors.Is(err, openmeteo.ErrCircuitOpen):
		return KindNetwork
	}
	if _, ok := openmeteo.StatusCodeOf(err); ok {
		return KindNetwork
	}
	return KindUnknown
}
