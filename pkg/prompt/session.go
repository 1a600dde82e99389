// Package prompt runs the contract form as an interactive terminal session.
package prompt

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/goliatone/go-contractgen/pkg/contract"
	"github.com/goliatone/go-contractgen/pkg/derive"
	"github.com/goliatone/go-contractgen/pkg/numbering"
	"github.com/goliatone/go-contractgen/pkg/registry"
	"github.com/goliatone/go-contractgen/pkg/remote"
	"github.com/goliatone/go-contractgen/pkg/sanitize"
	"github.com/goliatone/go-contractgen/pkg/submission"
	"github.com/goliatone/go-contractgen/pkg/summary"
	"github.com/goliatone/go-contractgen/pkg/validation"
)

const defaultMaxRounds = 3

// Form is the controller surface a session drives. *submission.Controller
// satisfies it.
type Form interface {
	Variant() contract.Variant
	State() contract.FormState
	Update(field contract.Field, value string) (contract.FormState, error)
	SetCover(res contract.Resource) contract.FormState
	LoadNumber(ctx context.Context) numbering.Result
	Submit(ctx context.Context) (submission.Outcome, error)
}

// Option configures a Session.
type Option func(*Session)

// WithPromptDriver overrides the survey driver.
func WithPromptDriver(driver PromptDriver) Option {
	return func(s *Session) {
		if driver != nil {
			s.driver = driver
		}
	}
}

// WithRegistry overrides the embedded registry.
func WithRegistry(reg *registry.Registry) Option {
	return func(s *Session) {
		if reg != nil {
			s.reg = reg
		}
	}
}

// WithClock overrides time.Now for the date hint.
func WithClock(now func() time.Time) Option {
	return func(s *Session) {
		if now != nil {
			s.now = now
		}
	}
}

// WithMaxRounds bounds how many times a blocked submission is corrected.
func WithMaxRounds(n int) Option {
	return func(s *Session) {
		if n > 0 {
			s.maxRounds = n
		}
	}
}

// WithLogger sets the logger.
func WithLogger(logger *zap.Logger) Option {
	return func(s *Session) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// Session walks the variant's fields, shows a summary, and submits.
type Session struct {
	form      Form
	driver    PromptDriver
	reg       *registry.Registry
	now       func() time.Time
	maxRounds int
	logger    *zap.Logger
}

// NewSession builds a Session over form.
func NewSession(form Form, options ...Option) *Session {
	s := &Session{
		form:      form,
		reg:       registry.Default(),
		now:       time.Now,
		maxRounds: defaultMaxRounds,
		logger:    zap.NewNop(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(s)
	}
	if s.driver == nil {
		s.driver = NewSurveyDriver(nil)
	}
	return s
}

// Run collects every field, then confirms and submits. A blocked attempt
// re-asks only the offending fields.
func (s *Session) Run(ctx context.Context) (submission.Outcome, error) {
	if ctx == nil {
		return submission.Outcome{}, errors.New("prompt: context is required")
	}

	res := s.form.LoadNumber(ctx)
	if err := s.reportNumber(ctx, res); err != nil {
		return submission.Outcome{}, err
	}

	pending := s.fields()
	var lastErr error
	for round := 0; round < s.maxRounds; round++ {
		for _, field := range pending {
			if err := s.ask(ctx, field); err != nil {
				return submission.Outcome{}, err
			}
		}

		text, err := summary.Render(s.reg, s.form.State(), s.form.Variant())
		if err != nil {
			return submission.Outcome{}, err
		}
		if err := s.driver.Info(ctx, text); err != nil {
			return submission.Outcome{}, err
		}

		ok, err := s.driver.Confirm(ctx, ConfirmConfig{Message: "Сгенерировать договор?", Default: true})
		if err != nil {
			return submission.Outcome{}, err
		}
		if !ok {
			return submission.Outcome{}, ErrDeclined
		}

		outcome, err := s.form.Submit(ctx)
		var invalid *validation.Error
		if errors.As(err, &invalid) {
			lastErr = err
			if err := s.reportViolations(ctx, invalid.Violations); err != nil {
				return outcome, err
			}
			pending = s.retryFields(invalid.Violations)
			continue
		}
		if err != nil {
			if infoErr := s.driver.Info(ctx, outcomeText(outcome)); infoErr != nil {
				return outcome, infoErr
			}
			return outcome, err
		}

		if err := s.driver.Info(ctx, outcomeText(outcome)); err != nil {
			return outcome, err
		}
		if outcome.Refresh.Err != nil {
			_ = s.driver.Info(ctx, "Номер следующего договора не обновлён: "+remote.Message(outcome.Refresh.Err, "сервис недоступен"))
		} else if outcome.Refresh.Number != "" {
			_ = s.driver.Info(ctx, "Следующий номер договора: "+outcome.Refresh.Number)
		}
		return outcome, nil
	}

	return submission.Outcome{Phase: submission.PhaseBlocked}, fmt.Errorf("%w: %w", ErrRoundsExhausted, lastErr)
}

// fields lists what the user types directly, in registry order.
func (s *Session) fields() []contract.Field {
	variant := s.form.Variant()
	var out []contract.Field
	for _, spec := range s.reg.Fields() {
		switch spec.Name {
		case contract.FieldContractNumber, contract.FieldShortName, contract.FieldCustomCitizenship:
			continue
		}
		if variant.Includes(spec.Name) {
			out = append(out, spec.Name)
		}
	}
	return out
}

func (s *Session) retryFields(vs validation.Violations) []contract.Field {
	wanted := make(map[contract.Field]struct{})
	for _, field := range vs.Fields() {
		switch field {
		case contract.FieldCustomCitizenship:
			field = contract.FieldCitizenship
		case contract.FieldShortName:
			field = contract.FieldFullNameGenitive
		}
		wanted[field] = struct{}{}
	}
	var out []contract.Field
	for _, field := range s.fields() {
		if _, ok := wanted[field]; ok {
			out = append(out, field)
		}
	}
	return out
}

func (s *Session) ask(ctx context.Context, field contract.Field) error {
	spec, _ := s.reg.Field(field)
	switch field {
	case contract.FieldContractDate:
		return s.askDate(ctx, spec)
	case contract.FieldCitizenship:
		return s.askCitizenship(ctx, spec)
	case contract.FieldFullNameGenitive:
		return s.askFullName(ctx, spec)
	case contract.FieldPaymentPercentage:
		return s.askPercentage(ctx, spec)
	case contract.FieldCoverImage:
		return s.askCover(ctx, spec)
	default:
		value, err := s.driver.Input(ctx, InputConfig{
			Message: spec.Label,
			Default: s.form.State().Value(field),
			Help:    helpText(spec),
		})
		if err != nil {
			return err
		}
		return s.update(ctx, field, sanitize.Field(field, value))
	}
}

func (s *Session) askDate(ctx context.Context, spec registry.FieldSpec) error {
	help := helpText(spec)
	if days := s.form.Variant().DateWindowDays(); days > 0 {
		from, to := derive.DateWindow(s.now(), days)
		help = fmt.Sprintf("Допустимо с %s по %s", from, to)
	}
	value, err := s.driver.Input(ctx, InputConfig{
		Message: spec.Label,
		Default: s.form.State().ContractDate,
		Help:    help,
		Validator: func(v string) error {
			_, err := derive.ParseDate(v)
			return err
		},
	})
	if err != nil {
		return err
	}
	if err := s.update(ctx, contract.FieldContractDate, strings.TrimSpace(value)); err != nil {
		return err
	}
	if localized, err := derive.FormatDateLocalized(value); err == nil && localized != "" {
		return s.driver.Info(ctx, "Будет использовано: "+localized)
	}
	return nil
}

func (s *Session) askCitizenship(ctx context.Context, spec registry.FieldSpec) error {
	options := s.reg.CitizenshipOptions()
	current := s.form.State().Citizenship
	idx, err := s.driver.Select(ctx, SelectConfig{
		Message:      spec.Label,
		Options:      options,
		DefaultIndex: indexOf(options, derive.CitizenshipLabel(s.reg, current)),
		Help:         helpText(spec),
		PageSize:     len(options),
	})
	if err != nil {
		return err
	}
	if idx < 0 || idx >= len(options) {
		return s.driver.Info(ctx, validation.Message(s.reg, validation.Violation{Kind: validation.KindMissingCitizenship}))
	}
	if err := s.update(ctx, contract.FieldCitizenship, options[idx]); err != nil {
		return err
	}

	if options[idx] == s.reg.OtherCitizenship() {
		customSpec, _ := s.reg.Field(contract.FieldCustomCitizenship)
		text := ""
		if other, ok := s.form.State().Citizenship.(contract.Other); ok {
			text = other.Text
		}
		value, err := s.driver.Input(ctx, InputConfig{
			Message: customSpec.Label,
			Default: text,
			Help:    helpText(customSpec),
		})
		if err != nil {
			return err
		}
		if err := s.update(ctx, contract.FieldCustomCitizenship, sanitize.Text(value)); err != nil {
			return err
		}
	}

	if resolved := contract.ResolveCitizenship(s.form.State().Citizenship); resolved != "" {
		return s.driver.Info(ctx, "Будет использовано: "+resolved)
	}
	return nil
}

func (s *Session) askFullName(ctx context.Context, spec registry.FieldSpec) error {
	value, err := s.driver.Input(ctx, InputConfig{
		Message: spec.Label,
		Default: s.form.State().FullNameGenitive,
		Help:    helpText(spec),
	})
	if err != nil {
		return err
	}
	if err := s.update(ctx, contract.FieldFullNameGenitive, sanitize.Text(value)); err != nil {
		return err
	}
	if short := s.form.State().ShortName; short != "" {
		return s.driver.Info(ctx, "✓ ФИО для подписи: "+short)
	}
	return s.driver.Info(ctx, "⚠ Введите ровно 3 слова")
}

func (s *Session) askPercentage(ctx context.Context, spec registry.FieldSpec) error {
	percentages := s.reg.Percentages()
	options := make([]string, len(percentages))
	current := -1
	for i, p := range percentages {
		options[i] = p.Label
		if p.Value == s.form.State().PaymentPercentage {
			current = i
		}
	}
	idx, err := s.driver.Select(ctx, SelectConfig{
		Message:      spec.Label,
		Options:      options,
		DefaultIndex: current,
		Help:         helpText(spec),
	})
	if err != nil {
		return err
	}
	if idx < 0 || idx >= len(percentages) {
		return nil
	}
	return s.update(ctx, contract.FieldPaymentPercentage, percentages[idx].Value)
}

func (s *Session) askCover(ctx context.Context, spec registry.FieldSpec) error {
	currentPath := ""
	if res := s.form.State().CoverImage; res != nil {
		currentPath = res.Name()
	}
	value, err := s.driver.Input(ctx, InputConfig{
		Message: spec.Label,
		Default: currentPath,
		Help:    helpText(spec),
	})
	if err != nil {
		return err
	}

	path := strings.TrimSpace(value)
	if path == "" {
		s.form.SetCover(nil)
		return nil
	}
	if current := s.form.State().CoverImage; current != nil && path == current.Name() {
		return nil
	}
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		s.form.SetCover(nil)
		return s.driver.Info(ctx, "Файл не найден: "+path)
	}
	s.form.SetCover(contract.FileResource(path))
	return nil
}

func (s *Session) update(ctx context.Context, field contract.Field, value string) error {
	if _, err := s.form.Update(field, value); err != nil {
		s.logger.Debug("field update rejected", zap.String("field", field.String()), zap.Error(err))
		return s.driver.Info(ctx, fmt.Sprintf("%s: %v", s.reg.Label(field), err))
	}
	return nil
}

func (s *Session) reportNumber(ctx context.Context, res numbering.Result) error {
	if res.Err != nil {
		return s.driver.Info(ctx, "Номер договора недоступен: "+remote.Message(res.Err, "сервис недоступен"))
	}
	if res.Number == "" {
		return nil
	}
	return s.driver.Info(ctx, "Номер договора: "+res.Number)
}

func (s *Session) reportViolations(ctx context.Context, vs validation.Violations) error {
	mapping := validation.MapWith(s.reg, vs)
	lines := append([]string(nil), mapping.Form...)
	for _, field := range vs.Fields() {
		for _, msg := range mapping.Fields[string(field)] {
			lines = append(lines, "  • "+msg)
		}
	}
	return s.driver.Info(ctx, strings.Join(lines, "\n"))
}

func outcomeText(o submission.Outcome) string {
	switch {
	case o.Title != "" && o.Message != "":
		return o.Title + "\n" + o.Message
	case o.Title != "":
		return o.Title
	default:
		return o.Message
	}
}

func helpText(spec registry.FieldSpec) string {
	if spec.Help != "" {
		return spec.Help
	}
	return spec.Placeholder
}
