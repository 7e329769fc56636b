package metrics

import (
	"errors"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/valyala/fasthttp/fasthttpadaptor"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "cityweather",
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "Total HTTP requests processed",
	}, []string{"method", "path", "status"})

	httpRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "cityweather",
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "HTTP request latency in seconds",
		Buckets:   []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
	}, []string{"method", "path"})

	// UpstreamRequests counts calls to the Open-Meteo APIs by endpoint and outcome.
	UpstreamRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "cityweather",
		Subsystem: "upstream",
		Name:      "requests_total",
		Help:      "Total upstream API attempts",
	}, []string{"endpoint", "outcome"})

	UpstreamDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "cityweather",
		Subsystem: "upstream",
		Name:      "request_duration_seconds",
		Help:      "Upstream API attempt latency in seconds",
		Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10},
	}, []string{"endpoint"})

	SelectionChanges = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "cityweather",
		Subsystem: "selection",
		Name:      "changes_total",
		Help:      "Total writes to the selected city",
	})

	SelectionDiscarded = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "cityweather",
		Subsystem: "selection",
		Name:      "discarded_total",
		Help:      "Resolved cities dropped because a newer request was issued",
	})

	RefreshRuns = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "cityweather",
		Subsystem: "refresh",
		Name:      "runs_total",
		Help:      "Conditions refreshes by result",
	}, []string{"result"})
)

// Middleware records request metrics.
func Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()

		err := c.Next()

		path := c.Route().Path
		if path == "" {
			path = c.Path()
		}
		method := c.Method()
		status := strconv.Itoa(statusOf(c, err))

		httpRequestsTotal.WithLabelValues(method, path, status).Inc()
		httpRequestDuration.WithLabelValues(method, path).Observe(time.Since(start).Seconds())

		return err
	}
}

// statusOf reports the status the response will carry. A returned error has
// not been rendered by the app's ErrorHandler yet.
func statusOf(c *fiber.Ctx, err error) int {
	if err == nil {
		return c.Response().StatusCode()
	}
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return fe.Code
	}
	return fiber.StatusInternalServerError
}

// Handler serves the Prometheus registry under Fiber.
func Handler() fiber.Handler {
	handler := fasthttpadaptor.NewFastHTTPHandler(promhttp.Handler())
	return func(c *fiber.Ctx) error {
		handler(c.Context())
		return nil
	}
}
