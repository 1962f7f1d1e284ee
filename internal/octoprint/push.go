package octoprint

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"sync/atomic"
	"time"

	"github.com/clambin/octoprint-poppy/pkg/pubsub"
	"github.com/gorilla/websocket"
)

// Message is a plugin message received on the push socket
type Message struct {
	Plugin string
	Data   map[string]any
}

// Authenticator returns the login the push socket authenticates as.
type Authenticator interface {
	Login(ctx context.Context) (LoginState, error)
}

// PushClient connects to OctoPrint's push socket and publishes every plugin message it receives.
// When the connection drops, it reconnects after a delay.
type PushClient struct {
	*pubsub.Publisher[Message]
	url           string
	authenticator Authenticator
	dialer        *websocket.Dialer
	reconnect     time.Duration
	connected     atomic.Bool
	logger        *slog.Logger
}

const messageBacklog = 16

var errReauthRequired = errors.New("server requires reauthentication")

// NewPushClient returns a PushClient for the OctoPrint server at baseURL.
func NewPushClient(baseURL *url.URL, authenticator Authenticator, reconnect time.Duration, logger *slog.Logger) *PushClient {
	return &PushClient{
		Publisher:     pubsub.New[Message](messageBacklog, logger.With("component", "publisher")),
		url:           pushURL(baseURL),
		authenticator: authenticator,
		dialer:        websocket.DefaultDialer,
		reconnect:     reconnect,
		logger:        logger,
	}
}

func pushURL(baseURL *url.URL) string {
	u := *baseURL
	switch u.Scheme {
	case "https":
		u.Scheme = "wss"
	default:
		u.Scheme = "ws"
	}
	return u.JoinPath("sockjs", "websocket").String()
}

// Connected reports whether the push socket is currently connected
func (p *PushClient) Connected() bool {
	return p.connected.Load()
}

func (p *PushClient) Run(ctx context.Context) error {
	p.logger.Debug("started", "url", p.url)
	defer p.logger.Debug("stopped")

	for {
		err := p.session(ctx)
		if ctx.Err() != nil {
			return nil
		}
		p.logger.Warn("push socket disconnected", "err", err)

		select {
		case <-ctx.Done():
			return nil
		case <-time.After(p.reconnect):
		}
	}
}

func (p *PushClient) session(ctx context.Context) error {
	login, err := p.authenticator.Login(ctx)
	if err != nil {
		return err
	}

	conn, resp, err := p.dialer.DialContext(ctx, p.url, http.Header{})
	if err != nil {
		return fmt.Errorf("dial: %w", err)
	}
	if resp != nil && resp.Body != nil {
		_ = resp.Body.Close()
	}

	p.connected.Store(true)
	defer p.connected.Store(false)

	stop := context.AfterFunc(ctx, func() { _ = conn.Close() })
	defer func() {
		stop()
		_ = conn.Close()
	}()

	if err = conn.WriteJSON(map[string]string{"auth": login.Auth()}); err != nil {
		return fmt.Errorf("auth: %w", err)
	}
	p.logger.Debug("connected", "user", login.Name)

	for {
		_, body, err := conn.ReadMessage()
		if err != nil {
			return fmt.Errorf("read: %w", err)
		}
		if err = p.handle(ctx, body); err != nil {
			return err
		}
	}
}

func (p *PushClient) handle(ctx context.Context, body []byte) error {
	var frame map[string]json.RawMessage
	if err := json.Unmarshal(body, &frame); err != nil {
		p.logger.Debug("ignoring invalid frame", "err", err)
		return nil
	}

	if _, ok := frame["reauthRequired"]; ok {
		return errReauthRequired
	}

	payload, ok := frame["plugin"]
	if !ok {
		return nil
	}
	var msg struct {
		Plugin string         `json:"plugin"`
		Data   map[string]any `json:"data"`
	}
	if err := json.Unmarshal(payload, &msg); err != nil {
		p.logger.Debug("ignoring invalid plugin message", "err", err)
		return nil
	}
	return p.PublishContext(ctx, Message{Plugin: msg.Plugin, Data: msg.Data})
}
