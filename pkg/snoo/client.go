// Package snoo is the typed client for the Reddit sentiment dashboard API.
// It owns request execution end to end: query parameters, bearer-token
// attachment, per-attempt timeouts, retry with backoff, rate-limit waits,
// and normalizing every failure into a single APIError value.
package snoo

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"sync"
	"time"

	"resty.dev/v3"

	"redlytics/pkg/retry"
)

const defaultRetryAfter = 5 * time.Second

type Client struct {
	client  *resty.Client
	baseURL string
	policy  retry.Policy
	hooks   Hooks

	mu          sync.RWMutex
	token       string
	onAuthError func()
}

func New(baseURL string, config *Config) *Client {
	if config == nil {
		config = DefaultConfig
	}

	client := resty.NewWithTransportSettings(config.TransportSettings)
	for _, m := range config.RequestMiddlewares {
		client.AddRequestMiddleware(m)
	}
	for _, m := range config.ResponseMiddlewares {
		client.AddResponseMiddleware(m)
	}

	policy := config.Policy
	if policy.Timeout == 0 && policy.Attempts == 0 && policy.Backoff == nil {
		policy = DefaultPolicy
	}

	return &Client{
		client:  client,
		baseURL: baseURL,
		policy:  policy,
		hooks:   config.Hooks,
	}
}

func (c *Client) Close() error {
	return c.client.Close()
}

// SetToken installs or clears the bearer token used for subsequent requests.
// An empty token means anonymous access, which every listing endpoint allows.
func (c *Client) SetToken(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.token = token
}

func (c *Client) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

// OnAuthError registers a hook fired whenever the server rejects the token.
// The session bridge uses it to demote itself to anonymous.
func (c *Client) OnAuthError(f func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onAuthError = f
}

func (c *Client) call(ctx context.Context, method, path string, params url.Values, body, out any) error {
	return c.policy.Do(ctx, func(ctx context.Context) error {
		return c.send(ctx, method, path, params, body, out)
	}, c.classify)
}

// send performs a single attempt and maps the outcome onto the error
// taxonomy. It never retries by itself.
func (c *Client) send(ctx context.Context, method, path string, params url.Values, body, out any) error {
	req := c.client.R().WithContext(ctx)

	if params != nil {
		req.SetQueryParamsFromValues(params)
	}
	if body != nil {
		req.SetBody(body)
	}
	if out != nil {
		req.SetResult(out)
	}
	if token := c.Token(); token != "" {
		req.SetAuthToken(token)
	}

	// Error bodies are JSON {message}, but any non-2xx is a failure no
	// matter what the body looks like.
	errBody := &errorMessage{}
	req.SetError(errBody)

	res, err := req.Execute(method, c.baseURL+path)
	if err != nil {
		return classifyTransport(err)
	}
	if res.IsSuccess() {
		return nil
	}

	status := res.StatusCode()
	switch status {
	case http.StatusTooManyRequests:
		return &APIError{
			Kind:       KindRateLimit,
			Status:     status,
			Message:    errBody.Message,
			RetryAfter: retryAfter(res.Header().Get("Retry-After")),
		}
	case http.StatusUnauthorized:
		c.mu.RLock()
		hook := c.onAuthError
		c.mu.RUnlock()
		if hook != nil {
			hook()
		}
		return &APIError{Kind: KindAuth, Status: status, Message: errBody.Message}
	default:
		return &APIError{Kind: KindHTTP, Status: status, Message: errBody.Message}
	}
}

func (c *Client) classify(err error) retry.Verdict {
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		return retry.Verdict{}
	}

	switch apiErr.Kind {
	case KindRateLimit:
		if c.hooks.OnRateLimitWait != nil {
			c.hooks.OnRateLimitWait(apiErr.RetryAfter)
		}
		return retry.Verdict{Retry: true, Free: true, Wait: apiErr.RetryAfter}
	case KindHTTP, KindNetwork:
		if c.hooks.OnRetry != nil {
			c.hooks.OnRetry(apiErr.Kind)
		}
		return retry.Verdict{Retry: true}
	default:
		// Timeouts fail fast, parse errors won't improve, auth needs the user.
		return retry.Verdict{}
	}
}

type errorMessage struct {
	Message string `json:"message"`
}

func retryAfter(header string) time.Duration {
	if header == "" {
		return defaultRetryAfter
	}
	seconds, err := strconv.Atoi(header)
	if err != nil || seconds < 0 {
		return defaultRetryAfter
	}
	return time.Duration(seconds) * time.Second
}
