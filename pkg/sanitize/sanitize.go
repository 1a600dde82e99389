// Package sanitize strips markup from free-text input before it reaches the
// form. Identifier fields such as passport and bank details keep their text.
package sanitize

import (
	"html"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"

	"github.com/goliatone/go-contractgen/pkg/contract"
)

var (
	textPolicyOnce sync.Once
	textPolicy     *bluemonday.Policy
)

// Text removes every tag from raw and returns the plain, trimmed text.
// Entities the policy escapes are restored so "&" and quotes survive.
func Text(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}
	cleaned := textSanitizer().Sanitize(trimmed)
	return strings.TrimSpace(html.UnescapeString(cleaned))
}

// verbatimFields carry identifiers where angle brackets can be meaningful
// ("IBAN <RU79...>"); they are trimmed but never stripped.
var verbatimFields = map[contract.Field]bool{
	contract.FieldContractDate:      true,
	contract.FieldPassport:          true,
	contract.FieldINNSwift:          true,
	contract.FieldBankDetails:       true,
	contract.FieldEmail:             true,
	contract.FieldPaymentPercentage: true,
}

// Field cleans raw for field: names, citizenship and the song credits go
// through Text, identifier fields are only trimmed.
func Field(field contract.Field, raw string) string {
	if verbatimFields[field] {
		return strings.TrimSpace(raw)
	}
	return Text(raw)
}

// Values applies Field to every value of in, keyed by field name, and returns
// a new map. Unknown keys are treated as free text.
func Values(in map[string]string) map[string]string {
	if in == nil {
		return nil
	}
	out := make(map[string]string, len(in))
	for key, value := range in {
		out[key] = Field(contract.Field(strings.TrimSpace(key)), value)
	}
	return out
}

func textSanitizer() *bluemonday.Policy {
	textPolicyOnce.Do(func() {
		textPolicy = bluemonday.StrictPolicy()
	})
	return textPolicy
}
