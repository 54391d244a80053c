package snoo_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"redlytics/pkg/retry"
	"redlytics/pkg/snoo"
)

func fastConfig() *snoo.Config {
	return &snoo.Config{
		Policy: retry.Policy{
			Timeout:  time.Second,
			Attempts: 2,
			Backoff:  func(int) time.Duration { return time.Millisecond },
		},
	}
}

func newClient(t *testing.T, handler http.Handler, config *snoo.Config) *snoo.Client {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	if config == nil {
		config = fastConfig()
	}

	client := snoo.New(server.URL, config)
	t.Cleanup(func() { _ = client.Close() })

	return client
}

func requireKind(t *testing.T, err error, kind snoo.ErrorKind) *snoo.APIError {
	t.Helper()

	var apiErr *snoo.APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, kind, apiErr.Kind)
	return apiErr
}

func TestClient_Posts(t *testing.T) {
	t.Parallel()

	t.Run("decodes the post array and forwards params", func(t *testing.T) {
		t.Parallel()

		client := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, "/posts", r.URL.Path)
			require.Equal(t, "10", r.URL.Query().Get("min_score"))

			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`[{"id":"abc","title":"hello","score":42,"sentiment_compound":0.3}]`))
		}), nil)

		posts, err := client.Posts(t.Context(), url.Values{"min_score": []string{"10"}})

		require.NoError(t, err)
		require.Len(t, posts, 1)
		require.Equal(t, "abc", posts[0].ID)
		require.Equal(t, 42, posts[0].Score)
		require.InDelta(t, 0.3, posts[0].SentimentCompound, 0.0001)
	})

	t.Run("attaches the bearer token once set", func(t *testing.T) {
		t.Parallel()

		var header atomic.Value
		client := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header.Store(r.Header.Get("Authorization"))
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`[]`))
		}), nil)

		_, err := client.Posts(t.Context(), nil)
		require.NoError(t, err)
		require.Equal(t, "", header.Load())

		client.SetToken("sekret")
		_, err = client.Posts(t.Context(), nil)
		require.NoError(t, err)
		require.Equal(t, "Bearer sekret", header.Load())
	})

	t.Run("invalid json is a parse error and not retried", func(t *testing.T) {
		t.Parallel()

		var calls atomic.Int32
		client := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			calls.Add(1)
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{not json`))
		}), nil)

		_, err := client.Posts(t.Context(), nil)

		requireKind(t, err, snoo.KindParse)
		require.EqualValues(t, 1, calls.Load())
	})
}

func TestClient_Retry(t *testing.T) {
	t.Parallel()

	t.Run("server errors are retried up to the budget", func(t *testing.T) {
		t.Parallel()

		var calls atomic.Int32
		retried := make([]snoo.ErrorKind, 0, 2)

		config := fastConfig()
		config.Hooks = snoo.Hooks{OnRetry: func(kind snoo.ErrorKind) {
			retried = append(retried, kind)
		}}

		client := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			calls.Add(1)
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusInternalServerError)
			_, _ = w.Write([]byte(`{"message":"boom"}`))
		}), config)

		_, err := client.Posts(t.Context(), nil)

		apiErr := requireKind(t, err, snoo.KindHTTP)
		require.Equal(t, http.StatusInternalServerError, apiErr.Status)
		require.Equal(t, "boom", apiErr.Message)
		require.EqualValues(t, 3, calls.Load(), "first try plus two retries")
		require.Equal(t, []snoo.ErrorKind{snoo.KindHTTP, snoo.KindHTTP, snoo.KindHTTP}, retried)
	})

	t.Run("a retry can succeed", func(t *testing.T) {
		t.Parallel()

		var calls atomic.Int32
		client := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			if calls.Add(1) == 1 {
				w.WriteHeader(http.StatusBadGateway)
				return
			}
			_, _ = w.Write([]byte(`[]`))
		}), nil)

		posts, err := client.Posts(t.Context(), nil)

		require.NoError(t, err)
		require.Empty(t, posts)
		require.EqualValues(t, 2, calls.Load())
	})

	t.Run("timeouts fail fast", func(t *testing.T) {
		t.Parallel()

		var calls atomic.Int32
		config := fastConfig()
		config.Policy.Timeout = 50 * time.Millisecond

		client := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			calls.Add(1)
			<-r.Context().Done()
		}), config)

		_, err := client.Posts(t.Context(), nil)

		requireKind(t, err, snoo.KindTimeout)
		require.EqualValues(t, 1, calls.Load())
	})
}

func TestClient_RateLimit(t *testing.T) {
	t.Parallel()

	t.Run("waits the server hint without spending the budget", func(t *testing.T) {
		t.Parallel()

		var calls atomic.Int32
		var waits []time.Duration

		config := fastConfig()
		config.Policy.Attempts = 0 // rate-limit retries are free
		config.Hooks = snoo.Hooks{OnRateLimitWait: func(wait time.Duration) {
			waits = append(waits, wait)
		}}

		client := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			if calls.Add(1) <= 2 {
				w.Header().Set("Retry-After", "0")
				w.WriteHeader(http.StatusTooManyRequests)
				_, _ = w.Write([]byte(`{"message":"slow down"}`))
				return
			}
			_, _ = w.Write([]byte(`[]`))
		}), config)

		_, err := client.Posts(t.Context(), nil)

		require.NoError(t, err)
		require.EqualValues(t, 3, calls.Load())
		require.Equal(t, []time.Duration{0, 0}, waits)
	})

	t.Run("malformed hint falls back to the default", func(t *testing.T) {
		t.Parallel()

		var wait atomic.Value
		config := fastConfig()
		config.Hooks = snoo.Hooks{OnRateLimitWait: func(d time.Duration) {
			wait.Store(d)
		}}

		var calls atomic.Int32
		client := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			if calls.Add(1) == 1 {
				w.Header().Set("Retry-After", "soonish")
				w.WriteHeader(http.StatusTooManyRequests)
				return
			}
			_, _ = w.Write([]byte(`[]`))
		}), config)

		ctx, cancel := context.WithTimeout(t.Context(), 100*time.Millisecond)
		defer cancel()

		_, err := client.Posts(ctx, nil)
		require.Error(t, err, "the default wait outlives the context")
		require.Equal(t, 5*time.Second, wait.Load())
	})
}

func TestClient_Auth(t *testing.T) {
	t.Parallel()

	t.Run("401 fires the auth hook and is not retried", func(t *testing.T) {
		t.Parallel()

		var calls, hookCalls atomic.Int32
		client := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			calls.Add(1)
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"message":"token expired"}`))
		}), nil)

		client.OnAuthError(func() { hookCalls.Add(1) })

		_, err := client.Profile(t.Context())

		require.True(t, snoo.IsAuth(err))
		require.EqualValues(t, 1, calls.Load())
		require.EqualValues(t, 1, hookCalls.Load())
	})

	t.Run("login returns the issued session", func(t *testing.T) {
		t.Parallel()

		client := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, http.MethodPost, r.Method)
			require.Equal(t, "/auth/login", r.URL.Path)

			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"token":"jwt-here","user":{"id":7,"username":"alice"}}`))
		}), nil)

		session, err := client.Login(t.Context(), "alice", "pw")

		require.NoError(t, err)
		require.Equal(t, "jwt-here", session.Token)
		require.Equal(t, "alice", session.User.Username)
	})

	t.Run("saved filters round-trip the wrapped shapes", func(t *testing.T) {
		t.Parallel()

		client := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			switch r.Method {
			case http.MethodGet:
				_, _ = w.Write([]byte(`{"filters":[{"id":1,"name":"hot golang","filter_config":{"filters":{"subreddit":"golang"}}}]}`))
			case http.MethodPost:
				_, _ = w.Write([]byte(`{"filter":{"id":2,"name":"fresh"}}`))
			}
		}), nil)

		filters, err := client.SavedFilters(t.Context())
		require.NoError(t, err)
		require.Len(t, filters, 1)
		require.Equal(t, "hot golang", filters[0].Name)
		require.Equal(t, "golang", filters[0].FilterConfig.Filters["subreddit"])

		saved, err := client.SaveFilter(t.Context(), "fresh", snoo.FilterConfig{})
		require.NoError(t, err)
		require.EqualValues(t, 2, saved.ID)
	})
}
