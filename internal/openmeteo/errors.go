package openmeteo

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrRateLimited      = errors.New("rate limited")
	ErrServerError      = errors.New("server error")
	ErrUnexpectedStatus = errors.New("unexpected status code")
	ErrCircuitOpen      = errors.New("circuit breaker open")
	ErrMalformed        = errors.New("malformed upstream payload")

	errNoHTTPClient  = errors.New("http client not configured")
	errInvalidConfig = errors.New("invalid client configuration")
)

// StatusError reports a failed upstream call. StatusCode is 0 when no response
// was received at all.
type StatusError struct {
	StatusCode int
	URL        string
	Err        error
}

func (e *StatusError) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("request to %s failed: %v", e.URL, e.Err)
	}
	return fmt.Sprintf("request to %s returned status %d: %v", e.URL, e.StatusCode, e.Err)
}

func (e *StatusError) Unwrap() error { return e.Err }

func statusError(url string, code int) *StatusError {
	var cause error
	switch {
	case code == http.StatusTooManyRequests:
		cause = ErrRateLimited
	case code >= 500:
		cause = ErrServerError
	default:
		cause = ErrUnexpectedStatus
	}
	return &StatusError{StatusCode: code, URL: url, Err: cause}
}

// StatusCodeOf extracts the upstream status carried by err. ok is false when err
// did not come from an upstream call.
func StatusCodeOf(err error) (code int, ok bool) {
	var se *StatusError
	if errors.As(err, &se) {
		return se.StatusCode, true
	}
	return 0, false
}

func retryable(err error) bool {
	code, ok := StatusCodeOf(err)
	if !ok {
		return false
	}
	return code == 0 || code == http.StatusTooManyRequests || code >= 500
}
