// Package rendering talks to the document-generation and template-upload
// endpoints.
package rendering

import (
	"context"
	"io"
	"net/http"
	"path"
	"strings"

	"go.uber.org/zap"

	"github.com/goliatone/go-contractgen/pkg/payload"
	"github.com/goliatone/go-contractgen/pkg/remote"
)

const (
	// DefaultRenderEndpoint fills the DOCX template from a payload.
	DefaultRenderEndpoint = "https://functions.poehali.dev/74c4ea92-6ade-4ffd-941c-c83f543fbfe5"
	// DefaultUploadEndpoint replaces the stored DOCX template.
	DefaultUploadEndpoint = "https://functions.poehali.dev/cbc1d24a-1165-4535-ba22-270c4cf061f5"

	// DocxMIME is the content type of uploaded templates.
	DocxMIME = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	// TemplateFileName is the conventional template name.
	TemplateFileName = "template.docx"

	defaultGenerateMessage = "Ошибка генерации"
	defaultUploadMessage   = "Ошибка загрузки"

	opGenerate = "rendering: generate"
	opUpload   = "rendering: upload template"
)

// Client calls the renderer and upload endpoints.
type Client struct {
	renderURL string
	uploadURL string
	transport *remote.Transport
	logger    *zap.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithRenderEndpoint overrides DefaultRenderEndpoint.
func WithRenderEndpoint(url string) Option {
	return func(c *Client) {
		if strings.TrimSpace(url) != "" {
			c.renderURL = url
		}
	}
}

// WithUploadEndpoint overrides DefaultUploadEndpoint.
func WithUploadEndpoint(url string) Option {
	return func(c *Client) {
		if strings.TrimSpace(url) != "" {
			c.uploadURL = url
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

// WithLogger sets the logger.
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
		renderURL: DefaultRenderEndpoint,
		uploadURL: DefaultUploadEndpoint,
		logger:    zap.NewNop(),
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

// Response is the renderer's reply.
type Response struct {
	Success        bool              `json:"success"`
	ContractNumber remote.FlexString `json:"contract_number,omitempty"`
	Message        string            `json:"message,omitempty"`
	Error          string            `json:"error,omitempty"`
}

// Generate submits p and returns the renderer's reply. A reply that does not
// report success is a *remote.ServiceError.
func (c *Client) Generate(ctx context.Context, p payload.Payload) (Response, error) {
	req, err := remote.JSON(opGenerate, http.MethodPost, c.renderURL, p)
	if err != nil {
		return Response{}, &remote.NetworkError{Op: opGenerate, URL: c.renderURL, Err: err}
	}

	var out Response
	if err := c.transport.Do(ctx, req, &out); err != nil {
		return Response{}, err
	}
	if !out.Success || strings.TrimSpace(out.Error) != "" {
		return out, &remote.ServiceError{Op: opGenerate, Message: firstNonEmpty(out.Error, out.Message, defaultGenerateMessage)}
	}

	c.logger.Info("contract generated",
		zap.String("contract_number", out.ContractNumber.String()),
	)
	return out, nil
}

// UploadResponse is the upload endpoint's reply.
type UploadResponse struct {
	Success  bool   `json:"success"`
	Message  string `json:"message,omitempty"`
	Error    string `json:"error,omitempty"`
	FileSize int64  `json:"file_size,omitempty"`
}

// UploadTemplate replaces the stored DOCX template with body.
func (c *Client) UploadTemplate(ctx context.Context, name string, body io.Reader) (UploadResponse, error) {
	if body == nil {
		return UploadResponse{}, ErrEmptyTemplate
	}

	var out UploadResponse
	err := c.transport.Do(ctx, remote.Request{
		Op:          opUpload,
		Method:      http.MethodPost,
		URL:         c.uploadURL,
		ContentType: DocxMIME,
		Body:        body,
	}, &out)
	if err != nil {
		return UploadResponse{}, err
	}
	if !out.Success || strings.TrimSpace(out.Error) != "" {
		return out, &remote.ServiceError{Op: opUpload, Message: firstNonEmpty(out.Error, out.Message, defaultUploadMessage)}
	}

	c.logger.Info("template uploaded",
		zap.String("name", name),
		zap.Int64("file_size", out.FileSize),
	)
	return out, nil
}

// IsTemplateFile reports whether a file looks like an acceptable template:
// named template.docx or typed as DOCX.
func IsTemplateFile(name, mime string) bool {
	if path.Base(strings.TrimSpace(name)) == TemplateFileName {
		return true
	}
	return strings.EqualFold(strings.TrimSpace(mime), DocxMIME)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if s := strings.TrimSpace(v); s != "" {
			return s
		}
	}
	return ""
}
