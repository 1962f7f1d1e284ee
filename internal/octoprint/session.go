package octoprint

import (
	"context"
	"sync"
)

// Session caches the login state and the plugin settings of a Client. It serves them to the view models
// and authenticates the push socket.
type Session struct {
	client   *Client
	login    LoginState
	settings PluginSettings
	lock     sync.RWMutex
}

// NewSession returns a Session for client. Until Refresh succeeds, it holds no login and the default plugin settings.
func NewSession(client *Client) *Session {
	return &Session{client: client, settings: DefaultPluginSettings}
}

// Refresh logs in and loads the plugin settings
func (s *Session) Refresh(ctx context.Context) error {
	if _, err := s.Login(ctx); err != nil {
		return err
	}
	settings, err := s.client.GetPluginSettings(ctx)
	if err != nil {
		return err
	}
	s.lock.Lock()
	s.settings = settings
	s.lock.Unlock()
	return nil
}

// Login logs in again and caches the result
func (s *Session) Login(ctx context.Context) (LoginState, error) {
	login, err := s.client.Login(ctx)
	if err != nil {
		return LoginState{}, err
	}
	s.lock.Lock()
	s.login = login
	s.lock.Unlock()
	return login, nil
}

// LoginState returns the last login
func (s *Session) LoginState() LoginState {
	s.lock.RLock()
	defer s.lock.RUnlock()
	return s.login
}

// Settings returns the last loaded plugin settings
func (s *Session) Settings() PluginSettings {
	s.lock.RLock()
	defer s.lock.RUnlock()
	return s.settings
}
