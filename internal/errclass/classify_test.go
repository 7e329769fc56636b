package errclass

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/i474232898/city-weather/internal/openmeteo"
	"github.com/i474232898/city-weather/internal/weather"
)

func TestForStatus(t *testing.T) {
	tests := []struct {
		code int
		want Class
	}{
		{0, Class{http.StatusServiceUnavailable, MsgConnectivity}},
		{404, Class{http.StatusNotFound, MsgNotFound}},
		{429, Class{http.StatusTooManyRequests, MsgRateLimited}},
		{500, Class{http.StatusServiceUnavailable, MsgUnavailable}},
		{503, Class{http.StatusServiceUnavailable, MsgUnavailable}},
		{400, Class{http.StatusBadGateway, MsgGeneric}},
		{418, Class{http.StatusBadGateway, MsgGeneric}},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ForStatus(tt.code), "status %d", tt.code)
	}
}

func TestClassify(t *testing.T) {
	wrapped := fmt.Errorf("current weather: %w", &openmeteo.StatusError{StatusCode: 429, Err: openmeteo.ErrRateLimited})
	assert.Equal(t, MsgRateLimited, Classify(wrapped).Message)

	assert.Equal(t, http.StatusNotFound, Classify(weather.ErrCityNotFound).Status)
	assert.Equal(t, MsgUnavailable, Classify(openmeteo.ErrCircuitOpen).Message)
	assert.Equal(t, http.StatusGatewayTimeout, Classify(context.DeadlineExceeded).Status)
	assert.Equal(t, http.StatusBadGateway, Classify(openmeteo.ErrMalformed).Status)
	assert.Equal(t, Class{http.StatusInternalServerError, MsgGeneric}, Classify(errors.New("boom")))
}
