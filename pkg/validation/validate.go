// Package validation checks a complete FormState against the rules of a form
// variant. Validation is pure and total: it never mutates the form and always
// returns every violation it finds.
package validation

import (
	"strings"
	"time"

	"github.com/goliatone/go-contractgen/pkg/contract"
	"github.com/goliatone/go-contractgen/pkg/derive"
	"github.com/goliatone/go-contractgen/pkg/registry"
)

// Validate checks presence, citizenship, name format, date format and payment
// percentage rules. The date window is not checked; use ValidateAt for that.
func Validate(form contract.FormState, variant contract.Variant) Violations {
	return validate(registry.Default(), form, variant, nil)
}

// ValidateAt is Validate plus the variant's date window relative to today.
func ValidateAt(form contract.FormState, variant contract.Variant, today time.Time) Violations {
	return validate(registry.Default(), form, variant, &today)
}

func validate(reg *registry.Registry, form contract.FormState, variant contract.Variant, today *time.Time) Violations {
	var out Violations

	for _, field := range variant.Required() {
		if field == contract.FieldCitizenship {
			continue
		}
		if strings.TrimSpace(form.Value(field)) == "" {
			out = append(out, MissingField(field))
		}
	}

	switch c := form.Citizenship.(type) {
	case nil:
		out = append(out, Violation{Kind: KindMissingCitizenship, Field: contract.FieldCitizenship})
	case contract.Other:
		// the sentinel typed as free text is not a citizenship
		if text := strings.TrimSpace(c.Text); text == "" || strings.EqualFold(text, reg.OtherCitizenship()) {
			out = append(out, Violation{Kind: KindMissingCustomCitizenship, Field: contract.FieldCustomCitizenship})
		}
	}

	if derive.NameTokens(form.FullNameGenitive) != 3 {
		out = append(out, Violation{Kind: KindInvalidNameFormat, Field: contract.FieldFullNameGenitive})
	}

	if strings.TrimSpace(form.ContractDate) != "" {
		date, err := derive.ParseDate(form.ContractDate)
		switch {
		case err != nil:
			out = append(out, Violation{Kind: KindInvalidDate, Field: contract.FieldContractDate})
		case today != nil && variant.DateWindowDays() > 0:
			if !inWindow(date, *today, variant.DateWindowDays()) {
				out = append(out, Violation{Kind: KindDateOutOfRange, Field: contract.FieldContractDate})
			}
		}
	}

	if variant.Includes(contract.FieldPaymentPercentage) {
		if value := strings.TrimSpace(form.PaymentPercentage); value != "" {
			if _, ok := reg.Percentage(value); !ok {
				out = append(out, Violation{Kind: KindInvalidPaymentPercentage, Field: contract.FieldPaymentPercentage})
			}
		}
	}

	return out
}

func inWindow(date, today time.Time, days int) bool {
	from, to := derive.DateWindow(today, days)
	iso := derive.FormatISO(date)
	return iso >= from && iso <= to
}
