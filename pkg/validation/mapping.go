package validation

import (
	"fmt"
	"strings"

	"github.com/goliatone/go-contractgen/pkg/registry"
)

// Mapping splits violations into per-field messages keyed by field name and
// form-level messages for surfaces that show a single banner.
type Mapping struct {
	Fields map[string][]string `json:"fields,omitempty"`
	Form   []string            `json:"form,omitempty"`
}

// Message renders the user-facing text of a single violation.
func Message(reg *registry.Registry, v Violation) string {
	switch v.Kind {
	case KindMissingField:
		return fmt.Sprintf("Заполните поле «%s»", reg.Label(v.Field))
	case KindMissingCitizenship:
		return "Выберите гражданство"
	case KindMissingCustomCitizenship:
		return "Укажите гражданство"
	case KindInvalidNameFormat:
		return "Введите ровно 3 слова"
	case KindInvalidDate:
		return "Укажите дату в формате ГГГГ-ММ-ДД"
	case KindDateOutOfRange:
		return "Дата вне допустимого диапазона"
	case KindInvalidPaymentPercentage:
		return "Выберите процент из списка"
	default:
		return string(v.Kind)
	}
}

// Headline is the single message shown when a submission is blocked.
func Headline(vs Violations) string {
	if len(vs) == 0 {
		return ""
	}
	if vs.Has(KindMissingField) || vs.Has(KindMissingCitizenship) || vs.Has(KindMissingCustomCitizenship) {
		return "Заполните все поля"
	}
	return Message(registry.Default(), vs[0])
}

// Map groups violations by field. The headline is the first form-level
// message.
func Map(vs Violations) Mapping {
	return MapWith(registry.Default(), vs)
}

// MapWith is Map against an explicit registry.
func MapWith(reg *registry.Registry, vs Violations) Mapping {
	mapping := Mapping{
		Fields: make(map[string][]string),
	}
	if len(vs) == 0 {
		mapping.Fields = nil
		return mapping
	}

	for _, v := range vs {
		msg := Message(reg, v)
		if v.Field == "" {
			mapping.Form = append(mapping.Form, msg)
			continue
		}
		key := string(v.Field)
		mapping.Fields[key] = normalizeMessages(append(mapping.Fields[key], msg))
	}

	mapping.Form = normalizeMessages(append([]string{Headline(vs)}, mapping.Form...))
	if len(mapping.Fields) == 0 {
		mapping.Fields = nil
	}
	return mapping
}

func normalizeMessages(messages []string) []string {
	if len(messages) == 0 {
		return nil
	}

	out := make([]string, 0, len(messages))
	seen := make(map[string]struct{}, len(messages))

	for _, message := range messages {
		trimmed := strings.TrimSpace(message)
		if trimmed == "" {
			continue
		}
		if _, exists := seen[trimmed]; exists {
			continue
		}
		seen[trimmed] = struct{}{}
		out = append(out, trimmed)
	}

	if len(out) == 0 {
		return nil
	}
	return out
}
