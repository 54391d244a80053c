package snoo

import (
	"context"
	"net/http"
	"strconv"
)

const (
	endpointLogin       = "/auth/login"
	endpointRegister    = "/auth/register"
	endpointProfile     = "/auth/profile"
	endpointPreferences = "/auth/preferences"
	endpointFilters     = "/auth/filters"
)

// Session is the issued token plus the user it belongs to, as returned by
// login and register.
type Session struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

func (c *Client) Login(ctx context.Context, username, password string) (Session, error) {
	body := map[string]string{"username": username, "password": password}

	var session Session
	if err := c.call(ctx, http.MethodPost, endpointLogin, nil, body, &session); err != nil {
		return Session{}, err
	}
	return session, nil
}

func (c *Client) Register(ctx context.Context, username, email, password string) (Session, error) {
	body := map[string]string{"username": username, "email": email, "password": password}

	var session Session
	if err := c.call(ctx, http.MethodPost, endpointRegister, nil, body, &session); err != nil {
		return Session{}, err
	}
	return session, nil
}

// Profile revalidates the stored token and returns the user bound to it.
func (c *Client) Profile(ctx context.Context) (User, error) {
	var res struct {
		User User `json:"user"`
	}
	if err := c.call(ctx, http.MethodGet, endpointProfile, nil, nil, &res); err != nil {
		return User{}, err
	}
	return res.User, nil
}

func (c *Client) UpdatePreferences(ctx context.Context, prefs map[string]any) error {
	return c.call(ctx, http.MethodPut, endpointPreferences, nil, prefs, nil)
}

func (c *Client) SavedFilters(ctx context.Context) ([]SavedFilter, error) {
	var res struct {
		Filters []SavedFilter `json:"filters"`
	}
	if err := c.call(ctx, http.MethodGet, endpointFilters, nil, nil, &res); err != nil {
		return nil, err
	}
	return res.Filters, nil
}

func (c *Client) SaveFilter(ctx context.Context, name string, config FilterConfig) (SavedFilter, error) {
	body := map[string]any{"name": name, "filter_config": config}

	var res struct {
		Filter SavedFilter `json:"filter"`
	}
	if err := c.call(ctx, http.MethodPost, endpointFilters, nil, body, &res); err != nil {
		return SavedFilter{}, err
	}
	return res.Filter, nil
}

func (c *Client) DeleteFilter(ctx context.Context, id int64) error {
	return c.call(ctx, http.MethodDelete, endpointFilters+"/"+strconv.FormatInt(id, 10), nil, nil, nil)
}
