// Package octoprint talks to an OctoPrint server: its REST API and its push socket.
package octoprint

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/clambin/go-common/http/metrics"
	"github.com/clambin/go-common/http/roundtripper"
)

// ToggleLightModePath is the endpoint of the poppy plugin that advances the chamber light to its next mode.
const ToggleLightModePath = "plugin/poppy/chamberLight/toggleMode"

// Client calls the OctoPrint REST API. Paths are resolved against the base URL.
type Client struct {
	baseURL    *url.URL
	apiKey     string
	httpClient *http.Client
	logger     *slog.Logger
}

// Option configures a Client
type Option func(*Client)

// WithHTTPClient sets the http.Client used to call OctoPrint.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithTimeout sets the timeout of each API call
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = timeout
	}
}

// WithRequestMetrics records the duration and result of each API call in m.
func WithRequestMetrics(m metrics.RequestMetrics) Option {
	return func(c *Client) {
		c.httpClient.Transport = roundtripper.New(
			roundtripper.WithRequestMetrics(m),
			roundtripper.WithRoundTripper(c.httpClient.Transport),
		)
	}
}

// WithLogger sets the logger
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// New returns a Client for the OctoPrint server at baseURL, authenticating with apiKey.
func New(baseURL string, apiKey string, options ...Option) (*Client, error) {
	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("invalid url: unsupported scheme %q", u.Scheme)
	}

	c := Client{
		baseURL:    u,
		apiKey:     apiKey,
		httpClient: &http.Client{Transport: http.DefaultTransport},
		logger:     slog.New(slog.DiscardHandler),
	}
	for _, option := range options {
		option(&c)
	}
	return &c, nil
}

// BaseURL returns the base URL of the OctoPrint server
func (c *Client) BaseURL() *url.URL {
	u := *c.baseURL
	return &u
}

// Post issues a POST for path without a body and returns immediately. The response is discarded.
// Failures are only logged.
func (c *Client) Post(path string) {
	go func() {
		if err := c.call(context.Background(), http.MethodPost, path, nil, nil); err != nil {
			c.logger.Debug("post failed", "path", path, "err", err)
		}
	}()
}

// ToggleChamberLightMode advances the chamber light to its next mode and waits for the server to confirm.
func (c *Client) ToggleChamberLightMode(ctx context.Context) error {
	return c.call(ctx, http.MethodPost, ToggleLightModePath, nil, nil)
}

// HTTPError is returned when OctoPrint responds with a non-2xx status code
type HTTPError struct {
	StatusCode int
	Status     string
}

func (e *HTTPError) Error() string {
	return e.Status
}

func (c *Client) call(ctx context.Context, method string, path string, request any, response any) error {
	target, err := c.baseURL.Parse(strings.TrimPrefix(path, "/"))
	if err != nil {
		return fmt.Errorf("invalid path: %w", err)
	}

	var body io.Reader
	if request != nil {
		var buf bytes.Buffer
		if err = json.NewEncoder(&buf).Encode(request); err != nil {
			return fmt.Errorf("encode: %w", err)
		}
		body = &buf
	}

	req, err := http.NewRequestWithContext(ctx, method, target.String(), body)
	if err != nil {
		return fmt.Errorf("request: %w", err)
	}
	if request != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.apiKey != "" {
		req.Header.Set("X-Api-Key", c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &HTTPError{StatusCode: resp.StatusCode, Status: resp.Status}
	}
	if response == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err = json.NewDecoder(resp.Body).Decode(response); err != nil {
		return fmt.Errorf("decode: %w", err)
	}
	return nil
}
