// Package remote holds the HTTP plumbing shared by the numbering and
// rendering clients and the error taxonomy they report with.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
)

// DefaultTimeout bounds a call when the caller does not configure one.
const DefaultTimeout = 30 * time.Second

const maxBodyBytes = 8 << 20

// Transport issues JSON requests with a per-call timeout.
type Transport struct {
	client  *http.Client
	timeout time.Duration
	logger  *zap.Logger
}

// Option configures a Transport.
type Option func(*Transport)

// WithHTTPClient overrides the http.Client.
func WithHTTPClient(client *http.Client) Option {
	return func(t *Transport) {
		if client != nil {
			t.client = client
		}
	}
}

// WithTimeout sets the per-call timeout. Zero disables it.
func WithTimeout(timeout time.Duration) Option {
	return func(t *Transport) {
		if timeout >= 0 {
			t.timeout = timeout
		}
	}
}

// WithLogger sets the logger used for request tracing.
func WithLogger(logger *zap.Logger) Option {
	return func(t *Transport) {
		if logger != nil {
			t.logger = logger
		}
	}
}

// NewTransport builds a Transport with the defaults applied.
func NewTransport(opts ...Option) *Transport {
	t := &Transport{
		client:  http.DefaultClient,
		timeout: DefaultTimeout,
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(t)
		}
	}
	return t
}

// Request describes one call.
type Request struct {
	Op          string
	Method      string
	URL         string
	ContentType string
	Body        io.Reader
}

// JSON sends v as the JSON body of a request.
func JSON(op, method, url string, v any) (Request, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return Request{}, err
	}
	return Request{
		Op:          op,
		Method:      method,
		URL:         url,
		ContentType: "application/json",
		Body:        bytes.NewReader(data),
	}, nil
}

// Do performs req and decodes a 2xx JSON body into out. Every failure is
// reported as a *NetworkError.
func (t *Transport) Do(ctx context.Context, req Request, out any) error {
	if req.URL == "" {
		return &NetworkError{Op: req.Op, Err: errors.New("url is required")}
	}
	if ctx == nil {
		ctx = context.Background()
	}

	reqCtx := ctx
	var cancel context.CancelFunc
	if t.timeout > 0 {
		reqCtx, cancel = context.WithTimeout(ctx, t.timeout)
		defer cancel()
	}

	method := req.Method
	if method == "" {
		method = http.MethodGet
	}

	httpReq, err := http.NewRequestWithContext(reqCtx, method, req.URL, req.Body)
	if err != nil {
		return &NetworkError{Op: req.Op, URL: req.URL, Err: err}
	}
	httpReq.Header.Set("Accept", "application/json")
	if req.ContentType != "" {
		httpReq.Header.Set("Content-Type", req.ContentType)
	}

	started := time.Now()
	resp, err := t.client.Do(httpReq)
	if err != nil {
		t.logger.Debug("remote call failed",
			zap.String("op", req.Op),
			zap.String("url", req.URL),
			zap.Error(err),
		)
		return &NetworkError{Op: req.Op, URL: req.URL, Err: err}
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return &NetworkError{Op: req.Op, URL: req.URL, Status: resp.StatusCode, Err: err}
	}

	t.logger.Debug("remote call",
		zap.String("op", req.Op),
		zap.String("method", method),
		zap.String("url", req.URL),
		zap.Int("status", resp.StatusCode),
		zap.Duration("elapsed", time.Since(started)),
	)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &NetworkError{
			Op:      req.Op,
			URL:     req.URL,
			Status:  resp.StatusCode,
			Message: errorMessage(data),
		}
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return &NetworkError{Op: req.Op, URL: req.URL, Status: resp.StatusCode, Err: err}
	}
	return nil
}

// errorMessage pulls "error" (or "message") from a JSON error body.
func errorMessage(data []byte) string {
	var body struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(data, &body); err != nil {
		return ""
	}
	if msg := strings.TrimSpace(body.Error); msg != "" {
		return msg
	}
	return strings.TrimSpace(body.Message)
}
