package octoprint

import (
	"context"
	"fmt"
	"net/http"
)

// LoginState is the user the client is logged in as.
type LoginState struct {
	Name    string `json:"name"`
	Session string `json:"session"`
	Active  bool   `json:"active"`
	Admin   bool   `json:"admin"`
}

// IsUser reports whether the login resolved to an active user
func (l LoginState) IsUser() bool {
	return l.Name != "" && l.Active
}

// Auth returns the credentials the push socket expects in its auth message
func (l LoginState) Auth() string {
	return l.Name + ":" + l.Session
}

// Login performs a passive login with the client's API key and returns the resulting user.
func (c *Client) Login(ctx context.Context) (LoginState, error) {
	var state LoginState
	err := c.call(ctx, http.MethodPost, "api/login", struct {
		Passive bool `json:"passive"`
	}{Passive: true}, &state)
	if err != nil {
		return LoginState{}, fmt.Errorf("login: %w", err)
	}
	return state, nil
}
