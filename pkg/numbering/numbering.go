// Package numbering fetches the next sequential contract number from the
// external counter service.
package numbering

import (
	"context"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/goliatone/go-contractgen/pkg/remote"
)

// DefaultEndpoint is the production counter function.
const DefaultEndpoint = "https://functions.poehali.dev/44c90102-922d-422d-a7ab-ea007b0a1d1a"

const op = "numbering: fetch"

// Client reads next_number from the counter endpoint.
type Client struct {
	endpoint  string
	transport *remote.Transport
	logger    *zap.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithEndpoint overrides DefaultEndpoint.
func WithEndpoint(url string) Option {
	return func(c *Client) {
		if strings.TrimSpace(url) != "" {
			c.endpoint = url
		}
	}
}

// WithTransport sets the HTTP transport.
func WithTransport(t *remote.Transport) Option {
	return func(c *Client) {
		if t != nil {
			c.transport = t
		}
	}
}

// WithLogger sets the logger used for fail-soft refreshes.
func WithLogger(logger *zap.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// New builds a Client.
func New(opts ...Option) *Client {
	c := &Client{
		endpoint: DefaultEndpoint,
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	if c.transport == nil {
		c.transport = remote.NewTransport(remote.WithLogger(c.logger))
	}
	return c
}

type response struct {
	NextNumber remote.FlexString `json:"next_number"`
}

// Fetch returns the next contract number as display text.
func (c *Client) Fetch(ctx context.Context) (string, error) {
	var out response
	err := c.transport.Do(ctx, remote.Request{
		Op:     op,
		Method: http.MethodGet,
		URL:    c.endpoint,
	}, &out)
	if err != nil {
		return "", err
	}
	number := out.NextNumber.String()
	if number == "" {
		return "", &remote.NetworkError{Op: op, URL: c.endpoint, Message: "response has no next_number"}
	}
	return number, nil
}

// Result is the outcome of a fail-soft refresh. On failure Number holds the
// value the caller passed in and Err says why it was kept.
type Result struct {
	Number  string
	Updated bool
	Err     error
}

// Refresh fetches a new number, keeping current when the call fails.
func (c *Client) Refresh(ctx context.Context, current string) Result {
	number, err := c.Fetch(ctx)
	if err != nil {
		c.logger.Warn("contract number refresh failed",
			zap.String("current", current),
			zap.Error(err),
		)
		return Result{Number: current, Err: err}
	}
	return Result{Number: number, Updated: number != current}
}
