package contractgen

import (
	"context"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/goliatone/go-contractgen/pkg/contract"
	"github.com/goliatone/go-contractgen/pkg/numbering"
	"github.com/goliatone/go-contractgen/pkg/openapi"
	"github.com/goliatone/go-contractgen/pkg/remote"
	"github.com/goliatone/go-contractgen/pkg/rendering"
	"github.com/goliatone/go-contractgen/pkg/submission"
)

// Outcome aliases submission.Outcome for callers of the top-level package.
type Outcome = submission.Outcome

// Option configures the clients assembled by New.
type Option func(*settings)

type settings struct {
	renderURL string
	uploadURL string
	numberURL string
	timeout   time.Duration
	client    *http.Client
	variant   contract.Variant
	logger    *zap.Logger
	now       func() time.Time
	validate  bool
	extra     []submission.Option
}

// WithEndpoints overrides the render, upload and next-number URLs. Empty
// values keep the defaults.
func WithEndpoints(render, upload, nextNumber string) Option {
	return func(s *settings) {
		if render != "" {
			s.renderURL = render
		}
		if upload != "" {
			s.uploadURL = upload
		}
		if nextNumber != "" {
			s.numberURL = nextNumber
		}
	}
}

// WithTimeout bounds every remote call.
func WithTimeout(d time.Duration) Option {
	return func(s *settings) {
		if d >= 0 {
			s.timeout = d
		}
	}
}

// WithHTTPClient swaps the client shared by all remote calls.
func WithHTTPClient(client *http.Client) Option {
	return func(s *settings) {
		if client != nil {
			s.client = client
		}
	}
}

func WithVariant(v contract.Variant) Option {
	return func(s *settings) {
		if v != "" {
			s.variant = v
		}
	}
}

func WithLogger(logger *zap.Logger) Option {
	return func(s *settings) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithClock sets the time source used for the contract date window.
func WithClock(now func() time.Time) Option {
	return func(s *settings) {
		if now != nil {
			s.now = now
		}
	}
}

// WithoutContractCheck skips validating payloads against the embedded
// renderer contract before sending them.
func WithoutContractCheck() Option {
	return func(s *settings) {
		s.validate = false
	}
}

// WithControllerOptions forwards extra options to submission.New.
func WithControllerOptions(opts ...submission.Option) Option {
	return func(s *settings) {
		s.extra = append(s.extra, opts...)
	}
}

// Stack bundles the clients and the controller wired together.
type Stack struct {
	Transport  *remote.Transport
	Numbers    *numbering.Client
	Renderer   *rendering.Client
	Controller *submission.Controller
}

// New assembles the remote clients and a submission controller over them.
func New(options ...Option) (*Stack, error) {
	s := settings{
		renderURL: rendering.DefaultRenderEndpoint,
		uploadURL: rendering.DefaultUploadEndpoint,
		numberURL: numbering.DefaultEndpoint,
		timeout:   remote.DefaultTimeout,
		variant:   contract.VariantFull,
		logger:    zap.NewNop(),
		now:       time.Now,
		validate:  true,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&s)
	}

	transportOpts := []remote.Option{remote.WithTimeout(s.timeout), remote.WithLogger(s.logger)}
	if s.client != nil {
		transportOpts = append(transportOpts, remote.WithHTTPClient(s.client))
	}
	transport := remote.NewTransport(transportOpts...)

	numbers := numbering.New(
		numbering.WithEndpoint(s.numberURL),
		numbering.WithTransport(transport),
		numbering.WithLogger(s.logger),
	)
	renderer := rendering.New(
		rendering.WithRenderEndpoint(s.renderURL),
		rendering.WithUploadEndpoint(s.uploadURL),
		rendering.WithTransport(transport),
		rendering.WithLogger(s.logger),
	)

	ctrlOpts := []submission.Option{
		submission.WithVariant(s.variant),
		submission.WithRenderer(renderer),
		submission.WithNumbering(numbers),
		submission.WithLogger(s.logger),
		submission.WithClock(s.now),
	}
	if s.validate {
		doc, err := openapi.Default()
		if err != nil {
			return nil, err
		}
		ctrlOpts = append(ctrlOpts, submission.WithContract(doc))
	}
	ctrlOpts = append(ctrlOpts, s.extra...)

	return &Stack{
		Transport:  transport,
		Numbers:    numbers,
		Renderer:   renderer,
		Controller: submission.New(ctrlOpts...),
	}, nil
}

// Generate submits a filled form once and returns the outcome. It is the
// simplest entry point for callers that already hold a FormState.
func Generate(ctx context.Context, form contract.FormState, options ...Option) (Outcome, error) {
	options = append(options, WithControllerOptions(submission.WithInitialState(form)))
	stack, err := New(options...)
	if err != nil {
		return Outcome{}, err
	}
	return stack.Controller.Submit(ctx)
}

// RendererContract returns the embedded OpenAPI description of the renderer
// services.
func RendererContract() []byte {
	return openapi.Document()
}
