// Package metrics wires the fetch engine into Prometheus: request latency
// through a resty response middleware, retry/rate-limit counters through
// the client hooks, and an HTTP server exposing /metrics for watch mode.
package metrics

import (
	"fmt"
	"net/url"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"resty.dev/v3"

	"redlytics/pkg/snoo"
)

var (
	apiLatency = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "redlytics_request_latency_seconds",
			Help:    "Histogram of sentiment API request latency in seconds",
			Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 2, 5, 10},
		},
		[]string{"method", "path", "status_code"},
	)

	retriesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "redlytics_request_retries_total",
		Help: "The total number of charged request retries",
	}, []string{"kind"})

	rateLimitWaits = promauto.NewCounter(prometheus.CounterOpts{
		Name: "redlytics_rate_limit_waits_total",
		Help: "The total number of 429 waits taken outside the retry budget",
	})
)

// Middleware observes every response's latency.
func Middleware(_ *resty.Client, response *resty.Response) error {
	reqURL, err := url.Parse(response.Request.URL)
	if err != nil {
		return err
	}

	apiLatency.WithLabelValues(
		response.Request.Method,
		reqURL.Path,
		fmt.Sprintf("%d", response.StatusCode()),
	).Observe(response.Duration().Seconds())

	return nil
}

// Hooks counts retry behavior inside the client's policy loop.
func Hooks() snoo.Hooks {
	return snoo.Hooks{
		OnRetry: func(kind snoo.ErrorKind) {
			retriesTotal.WithLabelValues(string(kind)).Inc()
		},
		OnRateLimitWait: func(time.Duration) {
			rateLimitWaits.Inc()
		},
	}
}
