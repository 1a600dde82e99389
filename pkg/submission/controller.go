// Package submission owns the form state and drives one submission attempt
// through validation, encoding, rendering and the number refresh.
package submission

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/goliatone/go-contractgen/pkg/contract"
	"github.com/goliatone/go-contractgen/pkg/cover"
	"github.com/goliatone/go-contractgen/pkg/derive"
	"github.com/goliatone/go-contractgen/pkg/numbering"
	"github.com/goliatone/go-contractgen/pkg/openapi"
	"github.com/goliatone/go-contractgen/pkg/payload"
	"github.com/goliatone/go-contractgen/pkg/remote"
	"github.com/goliatone/go-contractgen/pkg/rendering"
	"github.com/goliatone/go-contractgen/pkg/validation"
)

const (
	titleSucceeded = "Договор сгенерирован!"
	titleFailed    = "Ошибка генерации"
	retryHint      = "Попробуйте еще раз"
)

// Renderer generates a contract from a payload. *rendering.Client satisfies it.
type Renderer interface {
	Generate(ctx context.Context, p payload.Payload) (rendering.Response, error)
}

// NumberSource supplies contract numbers. *numbering.Client satisfies it.
type NumberSource interface {
	Refresh(ctx context.Context, current string) numbering.Result
}

// Encoder turns the cover resource into transport text.
type Encoder func(ctx context.Context, res contract.Resource) (string, error)

// Option customises a Controller.
type Option func(*Controller)

// WithRenderer sets the document renderer.
func WithRenderer(r Renderer) Option {
	return func(c *Controller) {
		c.renderer = r
	}
}

// WithNumbering sets the contract number source.
func WithNumbering(n NumberSource) Option {
	return func(c *Controller) {
		c.numbers = n
	}
}

// WithLogger sets the logger.
func WithLogger(logger *zap.Logger) Option {
	return func(c *Controller) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithClock overrides time.Now for the date window.
func WithClock(now func() time.Time) Option {
	return func(c *Controller) {
		if now != nil {
			c.now = now
		}
	}
}

// WithContract checks every payload against the renderer contract before it
// is sent.
func WithContract(doc *openapi.Contract) Option {
	return func(c *Controller) {
		c.contract = doc
	}
}

// WithObserver registers a phase observer. Observers run synchronously and
// must not call back into the controller.
func WithObserver(observer Observer) Option {
	return func(c *Controller) {
		if observer != nil {
			c.observers = append(c.observers, observer)
		}
	}
}

// WithEncoder replaces cover.Encode.
func WithEncoder(encode Encoder) Option {
	return func(c *Controller) {
		if encode != nil {
			c.encode = encode
		}
	}
}

// WithVariant selects the required-field set. Defaults to the full variant.
func WithVariant(v contract.Variant) Option {
	return func(c *Controller) {
		if v != "" {
			c.variant = v
		}
	}
}

// WithInitialState seeds the form. The short name is recomputed from the
// full name; a supplied value is ignored.
func WithInitialState(form contract.FormState) Option {
	return func(c *Controller) {
		seeded := form.Clone()
		seeded.ShortName = derive.ShortName(seeded.FullNameGenitive)
		c.form = seeded
	}
}

// Controller owns one form and serialises submission attempts. Edits are
// accepted while an attempt runs; the attempt works on a snapshot.
type Controller struct {
	mu   sync.Mutex
	form contract.FormState

	variant   contract.Variant
	renderer  Renderer
	numbers   NumberSource
	encode    Encoder
	contract  *openapi.Contract
	logger    *zap.Logger
	now       func() time.Time
	observers []Observer

	inFlight atomic.Bool
	phase    atomic.Int32
}

// New constructs a Controller with the full variant, cover.Encode and a no-op
// logger unless overridden.
func New(options ...Option) *Controller {
	c := &Controller{
		variant: contract.VariantFull,
		encode:  cover.Encode,
		logger:  zap.NewNop(),
		now:     time.Now,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(c)
	}
	return c
}

// Outcome describes a finished attempt for display.
type Outcome struct {
	Phase          Phase                 `json:"phase"`
	Title          string                `json:"title,omitempty"`
	Message        string                `json:"message,omitempty"`
	ContractNumber string                `json:"contract_number,omitempty"`
	Violations     validation.Violations `json:"violations,omitempty"`
	Refresh        numbering.Result      `json:"-"`
}

// Variant returns the configured variant.
func (c *Controller) Variant() contract.Variant {
	return c.variant
}

// Phase reports the current phase.
func (c *Controller) Phase() Phase {
	return Phase(c.phase.Load())
}

// InProgress reports whether an attempt is running.
func (c *Controller) InProgress() bool {
	return c.inFlight.Load()
}

// State returns a copy of the form.
func (c *Controller) State() contract.FormState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.form.Clone()
}

// Update applies one field edit through the derivation rules.
func (c *Controller) Update(field contract.Field, value string) (contract.FormState, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	next, err := derive.Apply(c.form, field, value)
	if err != nil {
		return c.form.Clone(), err
	}
	c.form = next
	return next.Clone(), nil
}

// UpdateValues applies several edits atomically: either all land or none.
func (c *Controller) UpdateValues(values map[string]string) (contract.FormState, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	next, err := derive.ApplyValues(c.form, values)
	if err != nil {
		return c.form.Clone(), err
	}
	c.form = next
	return next.Clone(), nil
}

// SetCover sets or, with nil, clears the cover image.
func (c *Controller) SetCover(res contract.Resource) contract.FormState {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.form = derive.SetCover(c.form, res)
	return c.form.Clone()
}

// Validate previews the violations Submit would report now.
func (c *Controller) Validate() validation.Violations {
	return validation.ValidateAt(c.State(), c.variant, c.now())
}

// LoadNumber fetches the initial contract number. Failures keep the current
// value and are reported in the result.
func (c *Controller) LoadNumber(ctx context.Context) numbering.Result {
	return c.refreshNumber(ctx)
}

func (c *Controller) refreshNumber(ctx context.Context) numbering.Result {
	current := c.State().ContractNumber
	if c.numbers == nil {
		return numbering.Result{Number: current}
	}

	res := c.numbers.Refresh(ctx, current)
	if res.Err == nil && strings.TrimSpace(res.Number) != "" {
		c.mu.Lock()
		c.form = derive.SetContractNumber(c.form, res.Number)
		c.mu.Unlock()
	}
	return res
}

// Submit runs one attempt. A blocked attempt returns a *validation.Error and
// touches nothing remote. Failures leave the contract number unchanged.
func (c *Controller) Submit(ctx context.Context) (Outcome, error) {
	if !c.inFlight.CompareAndSwap(false, true) {
		return Outcome{Phase: c.Phase()}, ErrInProgress
	}
	defer c.inFlight.Store(false)
	defer c.transition(PhaseIdle)

	if ctx == nil {
		ctx = context.Background()
	}

	c.transition(PhaseValidating)
	snapshot := c.State()

	violations := validation.ValidateAt(snapshot, c.variant, c.now())
	if len(violations) > 0 {
		c.transition(PhaseBlocked)
		c.logger.Debug("submission blocked",
			zap.Stringers("violations", []validation.Violation(violations)),
		)
		return Outcome{
			Phase:      PhaseBlocked,
			Title:      validation.Headline(violations),
			Violations: violations,
		}, violations.Err()
	}

	if c.renderer == nil {
		return c.fail(ErrNoRenderer)
	}

	c.transition(PhaseEncoding)
	var encoded string
	if c.variant.Includes(contract.FieldCoverImage) {
		var err error
		encoded, err = c.encode(ctx, snapshot.CoverImage)
		if err != nil {
			return c.fail(fmt.Errorf("submission: encode cover: %w", err))
		}
	}

	body, err := payload.Build(snapshot, encoded, payload.WithVariant(c.variant))
	if err != nil {
		return c.fail(fmt.Errorf("submission: build payload: %w", err))
	}
	if c.contract != nil {
		if err := c.contract.ValidatePayload(body); err != nil {
			return c.fail(err)
		}
	}

	c.transition(PhaseSubmitting)
	resp, err := c.renderer.Generate(ctx, body)
	if err != nil {
		return c.fail(err)
	}

	c.transition(PhaseSucceeded)
	number := firstNonEmpty(resp.ContractNumber.String(), snapshot.ContractNumber)
	c.logger.Info("contract submitted",
		zap.String("contract_number", number),
		zap.String("variant", c.variant.String()),
		zap.Bool("cover", snapshot.CoverImage != nil),
	)

	refresh := c.refreshNumber(ctx)
	return Outcome{
		Phase:          PhaseSucceeded,
		Title:          titleSucceeded,
		Message:        firstNonEmpty(resp.Message, successMessage(number)),
		ContractNumber: number,
		Refresh:        refresh,
	}, nil
}

func (c *Controller) fail(err error) (Outcome, error) {
	c.transition(PhaseFailed)
	c.logger.Warn("submission failed", zap.Error(err))
	return Outcome{
		Phase:   PhaseFailed,
		Title:   titleFailed,
		Message: failureMessage(err),
	}, err
}

func (c *Controller) transition(to Phase) {
	from := Phase(c.phase.Swap(int32(to)))
	if from == to {
		return
	}
	for _, observer := range c.observers {
		observer(from, to)
	}
}

func failureMessage(err error) string {
	var readErr *cover.ReadError
	if errors.As(err, &readErr) {
		return fmt.Sprintf("Не удалось прочитать файл %s", readErr.Name)
	}
	if errors.Is(err, openapi.ErrPayloadRejected) {
		return "Данные не соответствуют формату сервиса"
	}
	if errors.Is(err, remote.ErrNetwork) || errors.Is(err, remote.ErrService) {
		return remote.Message(err, retryHint)
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return retryHint
	}
	return remote.Message(err, retryHint)
}

func successMessage(number string) string {
	if number == "" {
		return "Договор сгенерирован"
	}
	return fmt.Sprintf("Договор №%s сгенерирован", number)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if s := strings.TrimSpace(v); s != "" {
			return s
		}
	}
	return ""
}
