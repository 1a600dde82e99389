// Package server exposes one contract form over a small JSON API.
package server

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/goliatone/go-contractgen/pkg/contract"
	"github.com/goliatone/go-contractgen/pkg/registry"
	"github.com/goliatone/go-contractgen/pkg/remote"
	"github.com/goliatone/go-contractgen/pkg/rendering"
	"github.com/goliatone/go-contractgen/pkg/sanitize"
	"github.com/goliatone/go-contractgen/pkg/submission"
	"github.com/goliatone/go-contractgen/pkg/validation"
)

const (
	defaultMaxJSONBytes  = 64 << 10
	defaultMaxCoverBytes = 10 << 20
	defaultMaxDocxBytes  = 20 << 20
)

// Form is the controller surface the API drives. *submission.Controller
// satisfies it.
type Form interface {
	Variant() contract.Variant
	State() contract.FormState
	UpdateValues(values map[string]string) (contract.FormState, error)
	SetCover(res contract.Resource) contract.FormState
	Validate() validation.Violations
	Submit(ctx context.Context) (submission.Outcome, error)
	Phase() submission.Phase
	InProgress() bool
}

// TemplateUploader replaces the stored DOCX template. *rendering.Client
// satisfies it.
type TemplateUploader interface {
	UploadTemplate(ctx context.Context, name string, body io.Reader) (rendering.UploadResponse, error)
}

// Option configures a Server.
type Option func(*Server)

// WithUploader enables POST /api/templates.
func WithUploader(u TemplateUploader) Option {
	return func(s *Server) {
		s.uploader = u
	}
}

// WithCounter mounts h at GET /next-number.
func WithCounter(h http.Handler) Option {
	return func(s *Server) {
		s.counter = h
	}
}

// WithRegistry overrides the embedded registry.
func WithRegistry(reg *registry.Registry) Option {
	return func(s *Server) {
		if reg != nil {
			s.reg = reg
		}
	}
}

// WithLogger sets the logger.
func WithLogger(logger *zap.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithClock overrides time.Now for the date window hint.
func WithClock(now func() time.Time) Option {
	return func(s *Server) {
		if now != nil {
			s.now = now
		}
	}
}

// WithMaxCoverBytes bounds cover uploads.
func WithMaxCoverBytes(n int64) Option {
	return func(s *Server) {
		if n > 0 {
			s.maxCover = n
		}
	}
}

// Server routes API requests to a Form.
type Server struct {
	form     Form
	uploader TemplateUploader
	counter  http.Handler
	reg      *registry.Registry
	logger   *zap.Logger
	now      func() time.Time
	maxCover int64
}

// New builds a Server over form.
func New(form Form, options ...Option) *Server {
	s := &Server{
		form:     form,
		reg:      registry.Default(),
		logger:   zap.NewNop(),
		now:      time.Now,
		maxCover: defaultMaxCoverBytes,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(s)
	}
	return s
}

// Handler returns the routed API.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(withRequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)

	r.Route("/api", func(api chi.Router) {
		api.Get("/registry", s.handleRegistry)
		api.Get("/form", s.handleGetForm)
		api.Patch("/form", s.handlePatchForm)
		api.Put("/form/cover", s.handlePutCover)
		api.Delete("/form/cover", s.handleDeleteCover)
		api.Post("/form/submit", s.handleSubmit)
		api.Post("/templates", s.handleUploadTemplate)
	})
	if s.counter != nil {
		r.Handle("/next-number", s.counter)
	}
	return r
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		started := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.logger.Debug("http request",
			zap.String("request_id", requestID(r)),
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.Status()),
			zap.Duration("elapsed", time.Since(started)),
		)
	})
}

func (s *Server) handleRegistry(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.buildRegistryView())
}

func (s *Server) handleGetForm(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.buildFormView())
}

func (s *Server) handlePatchForm(w http.ResponseWriter, r *http.Request) {
	var values map[string]string
	if !readJSON(w, r, defaultMaxJSONBytes, &values) {
		return
	}
	if _, err := s.form.UpdateValues(sanitize.Values(values)); err != nil {
		writeError(w, r, http.StatusBadRequest, CodeInvalidField, err.Error(), nil)
		return
	}
	writeJSON(w, http.StatusOK, s.buildFormView())
}

func (s *Server) handlePutCover(w http.ResponseWriter, r *http.Request) {
	name := strings.TrimSpace(sanitize.Text(r.Header.Get("X-Filename")))
	if name == "" {
		writeError(w, r, http.StatusBadRequest, CodeBadRequest, "X-Filename header is required", nil)
		return
	}
	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, s.maxCover))
	if err != nil {
		if isTooLarge(err) {
			writeError(w, r, http.StatusRequestEntityTooLarge, CodePayloadTooLarge, "cover image too large", nil)
			return
		}
		writeError(w, r, http.StatusBadRequest, CodeBadRequest, "could not read body", nil)
		return
	}
	if len(data) == 0 {
		writeError(w, r, http.StatusBadRequest, CodeBadRequest, "cover image is empty", nil)
		return
	}
	s.form.SetCover(contract.BytesResource(name, data))
	writeJSON(w, http.StatusOK, s.buildFormView())
}

func (s *Server) handleDeleteCover(w http.ResponseWriter, _ *http.Request) {
	s.form.SetCover(nil)
	writeJSON(w, http.StatusOK, s.buildFormView())
}

func (s *Server) handleSubmit(w http.ResponseWriter, r *http.Request) {
	outcome, err := s.form.Submit(r.Context())
	var invalid *validation.Error
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, outcome)
	case errors.As(err, &invalid):
		writeError(w, r, http.StatusUnprocessableEntity, CodeValidationFailed,
			validation.Headline(invalid.Violations), validation.MapWith(s.reg, invalid.Violations))
	case errors.Is(err, submission.ErrInProgress):
		writeError(w, r, http.StatusConflict, CodeInProgress, "Договор уже отправляется", nil)
	case errors.Is(err, submission.ErrNoRenderer):
		writeError(w, r, http.StatusServiceUnavailable, CodeNotConfigured, err.Error(), nil)
	default:
		s.logger.Warn("submit failed", zap.String("request_id", requestID(r)), zap.Error(err))
		writeError(w, r, http.StatusBadGateway, CodeUpstreamFailed, outcome.Message, map[string]any{
			"title": outcome.Title,
		})
	}
}

func (s *Server) handleUploadTemplate(w http.ResponseWriter, r *http.Request) {
	if s.uploader == nil {
		writeError(w, r, http.StatusServiceUnavailable, CodeNotConfigured, "template upload is not configured", nil)
		return
	}
	name := strings.TrimSpace(r.Header.Get("X-Filename"))
	if !rendering.IsTemplateFile(name, r.Header.Get("Content-Type")) {
		writeError(w, r, http.StatusBadRequest, CodeBadRequest, "Загрузите файл template.docx", nil)
		return
	}

	resp, err := s.uploader.UploadTemplate(r.Context(), name, http.MaxBytesReader(w, r.Body, defaultMaxDocxBytes))
	if err != nil {
		if isTooLarge(err) {
			writeError(w, r, http.StatusRequestEntityTooLarge, CodePayloadTooLarge, "template too large", nil)
			return
		}
		s.logger.Warn("template upload failed", zap.String("request_id", requestID(r)), zap.Error(err))
		writeError(w, r, http.StatusBadGateway, CodeUpstreamFailed, remote.Message(err, "Ошибка загрузки"), nil)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

var _ Form = (*submission.Controller)(nil)
