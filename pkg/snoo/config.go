package snoo

import (
	"time"

	"resty.dev/v3"

	"redlytics/pkg/retry"
)

type Config struct {
	// Policy governs timeouts and retries for every call. The zero value
	// falls back to DefaultPolicy.
	Policy retry.Policy

	TransportSettings *resty.TransportSettings

	RequestMiddlewares  []resty.RequestMiddleware
	ResponseMiddlewares []resty.ResponseMiddleware

	Hooks Hooks
}

// Hooks observe retry behavior without the client depending on any metrics
// backend.
type Hooks struct {
	OnRetry         func(kind ErrorKind)
	OnRateLimitWait func(wait time.Duration)
}

var DefaultPolicy = retry.Policy{
	Timeout:  10 * time.Second,
	Attempts: 3,
	Backoff:  retry.Exponential(time.Second),
}

var DefaultConfig = &Config{
	Policy: DefaultPolicy,
	TransportSettings: &resty.TransportSettings{
		DialerTimeout:         5 * time.Second,
		DialerKeepAlive:       30 * time.Second,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   5 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,
	},
}
