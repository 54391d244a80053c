package snoo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"time"
)

type ErrorKind string

const (
	// KindNetwork means no usable response was received.
	KindNetwork ErrorKind = "network"
	// KindHTTP is any non-2xx response that is not auth or rate limiting.
	KindHTTP ErrorKind = "http"
	// KindTimeout is a per-attempt deadline hit. Never retried.
	KindTimeout ErrorKind = "timeout"
	// KindParse is a response body that is not valid JSON.
	KindParse ErrorKind = "parse"
	// KindAuth is a 401: the token is missing, expired or revoked.
	KindAuth ErrorKind = "auth"
	// KindRateLimit is a 429. Handled internally with a free retry after the
	// server's hint; it only escapes when the context dies first.
	KindRateLimit ErrorKind = "rate_limit"
)

// APIError is the single failure value every client call surfaces. No other
// error type crosses the package boundary.
type APIError struct {
	Kind    ErrorKind
	Status  int
	Message string

	// RetryAfter is the server's 429 wait hint.
	RetryAfter time.Duration

	cause error
}

func (e *APIError) Error() string {
	switch {
	case e.Status != 0 && e.Message != "":
		return fmt.Sprintf("snoo: %s (status %d): %s", e.Kind, e.Status, e.Message)
	case e.Status != 0:
		return fmt.Sprintf("snoo: %s (status %d)", e.Kind, e.Status)
	case e.Message != "":
		return fmt.Sprintf("snoo: %s: %s", e.Kind, e.Message)
	default:
		return fmt.Sprintf("snoo: %s", e.Kind)
	}
}

func (e *APIError) Unwrap() error {
	return e.cause
}

// IsAuth reports whether err is a credentials failure.
func IsAuth(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Kind == KindAuth
}

// classifyTransport buckets an error returned before any HTTP status was
// available: cancellation, network failure or a body that failed to decode.
func classifyTransport(err error) *APIError {
	if errors.Is(err, context.DeadlineExceeded) {
		return &APIError{Kind: KindTimeout, Message: "request timed out", cause: err}
	}

	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &syntaxErr) || errors.As(err, &typeErr) {
		return &APIError{Kind: KindParse, Message: err.Error(), cause: err}
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return &APIError{Kind: KindTimeout, Message: "request timed out", cause: err}
	}

	return &APIError{Kind: KindNetwork, Message: err.Error(), cause: err}
}
