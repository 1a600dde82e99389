package validation

import (
	"fmt"
	"strings"

	"github.com/goliatone/go-contractgen/pkg/contract"
)

// Kind classifies a violated constraint.
type Kind string

const (
	KindMissingField             Kind = "missing_field"
	KindMissingCitizenship       Kind = "missing_citizenship"
	KindMissingCustomCitizenship Kind = "missing_custom_citizenship"
	KindInvalidNameFormat        Kind = "invalid_name_format"
	KindInvalidDate              Kind = "invalid_date"
	KindDateOutOfRange           Kind = "date_out_of_range"
	KindInvalidPaymentPercentage Kind = "invalid_payment_percentage"
)

// Violation is one violated constraint. Field names the offending field.
type Violation struct {
	Kind  Kind           `json:"kind"`
	Field contract.Field `json:"field"`
}

// MissingField builds the violation for an empty required field.
func MissingField(field contract.Field) Violation {
	return Violation{Kind: KindMissingField, Field: field}
}

func (v Violation) String() string {
	if v.Kind == KindMissingField {
		return fmt.Sprintf("%s(%s)", v.Kind, v.Field)
	}
	return string(v.Kind)
}

// Violations is the ordered result of a validation pass. An empty list means
// the form can be submitted.
type Violations []Violation

// Has reports whether any violation is of kind k.
func (vs Violations) Has(k Kind) bool {
	for _, v := range vs {
		if v.Kind == k {
			return true
		}
	}
	return false
}

// Fields returns the offending fields in order, without duplicates.
func (vs Violations) Fields() []contract.Field {
	var out []contract.Field
	seen := make(map[contract.Field]struct{}, len(vs))
	for _, v := range vs {
		if _, ok := seen[v.Field]; ok {
			continue
		}
		seen[v.Field] = struct{}{}
		out = append(out, v.Field)
	}
	return out
}

// Err returns a *Error for a non-empty list, nil otherwise.
func (vs Violations) Err() error {
	if len(vs) == 0 {
		return nil
	}
	return &Error{Violations: append(Violations(nil), vs...)}
}

// Error is the submission-blocking validation failure.
type Error struct {
	Violations Violations
}

func (e *Error) Error() string {
	parts := make([]string, 0, len(e.Violations))
	for _, v := range e.Violations {
		parts = append(parts, v.String())
	}
	return "validation: " + strings.Join(parts, ", ")
}

// Is lets errors.Is match any validation failure against ErrInvalid.
func (e *Error) Is(target error) bool {
	return target == ErrInvalid
}
