// Package session wraps the auth endpoints behind a small state machine:
// Anonymous -> Validating (persisted token being revalidated) ->
// Authenticated, falling back to Anonymous whenever the server rejects the
// token. The bridge is the only writer of the session token; everything
// else reads it through the client.
package session

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"redlytics/internal/core"
	"redlytics/pkg/snoo"
)

type Phase string

const (
	Anonymous     Phase = "anonymous"
	Validating    Phase = "validating"
	Authenticated Phase = "authenticated"
)

var ErrNotAuthenticated = errors.New("not authenticated, log in first")

type Bridge struct {
	Logger *slog.Logger
	Client *snoo.Client
	Store  core.PreferenceStore

	mu    sync.Mutex
	phase Phase
	user  *snoo.User
}

// Init restores a persisted token and revalidates it against the profile
// endpoint. A rejected token is discarded; the bridge comes up Anonymous
// and the dashboard stays fully usable.
func (b *Bridge) Init(ctx context.Context) error {
	b.Logger = b.Logger.With("component", "session.Bridge")
	b.phase = Anonymous

	b.Client.OnAuthError(b.demote)

	stored, err := b.Store.Load()
	if err != nil {
		return err
	}
	if stored.Token == "" {
		return nil
	}

	b.phase = Validating
	b.Client.SetToken(stored.Token)

	user, err := b.Client.Profile(ctx)
	if err != nil {
		b.Logger.Warn("stored token rejected, discarding", "error", err)
		b.Client.SetToken("")
		b.phase = Anonymous
		return b.Store.Clear()
	}

	b.phase = Authenticated
	b.user = &user
	b.Logger.Info("session restored", "user", user.Username)
	return nil
}

func (b *Bridge) Login(ctx context.Context, username, password string) error {
	sess, err := b.Client.Login(ctx, username, password)
	if err != nil {
		// Failure leaves the session exactly as it was.
		return err
	}
	return b.establish(sess)
}

func (b *Bridge) Register(ctx context.Context, username, email, password string) error {
	sess, err := b.Client.Register(ctx, username, email, password)
	if err != nil {
		return err
	}
	return b.establish(sess)
}

func (b *Bridge) establish(sess snoo.Session) error {
	b.mu.Lock()
	b.phase = Authenticated
	b.user = &sess.User
	b.mu.Unlock()

	b.Client.SetToken(sess.Token)

	return b.Store.Save(core.StoredState{
		Token:       sess.Token,
		Preferences: sess.User.Preferences,
	})
}

// Logout clears the session locally. No network round trip is involved.
func (b *Bridge) Logout() error {
	b.mu.Lock()
	b.phase = Anonymous
	b.user = nil
	b.mu.Unlock()

	b.Client.SetToken("")
	return b.Store.Clear()
}

// demote handles a 401 on any authenticated request.
func (b *Bridge) demote() {
	b.mu.Lock()
	wasAuthenticated := b.phase == Authenticated
	b.phase = Anonymous
	b.user = nil
	b.mu.Unlock()

	b.Client.SetToken("")
	if err := b.Store.Clear(); err != nil {
		b.Logger.Warn("failed to clear stored session", "error", err)
	}
	if wasAuthenticated {
		b.Logger.Warn("session expired, please log in again")
	}
}

// UpdatePreferences commits the preference map server-side first; local
// state changes only after the server confirmed.
func (b *Bridge) UpdatePreferences(ctx context.Context, prefs map[string]any) error {
	if b.Phase() != Authenticated {
		return ErrNotAuthenticated
	}

	if err := b.Client.UpdatePreferences(ctx, prefs); err != nil {
		return err
	}

	b.mu.Lock()
	if b.user != nil {
		b.user.Preferences = prefs
	}
	token := b.Client.Token()
	b.mu.Unlock()

	return b.Store.Save(core.StoredState{Token: token, Preferences: prefs})
}

func (b *Bridge) SavedFilters(ctx context.Context) ([]snoo.SavedFilter, error) {
	if b.Phase() != Authenticated {
		return nil, ErrNotAuthenticated
	}
	return b.Client.SavedFilters(ctx)
}

func (b *Bridge) SaveFilter(ctx context.Context, name string, config snoo.FilterConfig) (snoo.SavedFilter, error) {
	if b.Phase() != Authenticated {
		return snoo.SavedFilter{}, ErrNotAuthenticated
	}
	return b.Client.SaveFilter(ctx, name, config)
}

func (b *Bridge) DeleteFilter(ctx context.Context, id int64) error {
	if b.Phase() != Authenticated {
		return ErrNotAuthenticated
	}
	return b.Client.DeleteFilter(ctx, id)
}

func (b *Bridge) Phase() Phase {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.phase
}

func (b *Bridge) User() *snoo.User {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.user == nil {
		return nil
	}
	u := *b.user
	return &u
}

// Preferences is the last confirmed preference map, empty when anonymous.
func (b *Bridge) Preferences() map[string]any {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.user == nil {
		return map[string]any{}
	}
	return b.user.Preferences
}

// TokenExpiry decodes the expiry claim of the current token without
// verifying it; display only. Opaque tokens yield a zero time.
func (b *Bridge) TokenExpiry() time.Time {
	token := b.Client.Token()
	if token == "" {
		return time.Time{}
	}

	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return time.Time{}
	}

	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}
	}
	return exp.Time
}
