package derive

import (
	"fmt"
	"strings"

	"github.com/goliatone/go-contractgen/pkg/contract"
	"github.com/goliatone/go-contractgen/pkg/registry"
)

// Apply returns a copy of form with field set to value. Editing the full name
// recomputes the short name in the same update.
//
// Citizenship accepts a listed country label, the other-citizenship label
// (which starts an empty free-text citizenship) or "" to clear it.
func Apply(form contract.FormState, field contract.Field, value string) (contract.FormState, error) {
	return ApplyWith(registry.Default(), form, field, value)
}

// ApplyWith is Apply against an explicit registry.
func ApplyWith(reg *registry.Registry, form contract.FormState, field contract.Field, value string) (contract.FormState, error) {
	next := form.Clone()

	switch field {
	case contract.FieldShortName, contract.FieldContractNumber:
		return form, fmt.Errorf("%w: %s", ErrFieldReadOnly, field)
	case contract.FieldCoverImage:
		return form, ErrUseSetCover
	case contract.FieldCitizenship:
		citizenship, err := parseCitizenship(reg, value)
		if err != nil {
			return form, err
		}
		if contract.IsOther(citizenship) && contract.IsOther(next.Citizenship) {
			// re-selecting the free-text option keeps what was typed
			return next, nil
		}
		next.Citizenship = citizenship
		return next, nil
	case contract.FieldCustomCitizenship:
		if !contract.IsOther(next.Citizenship) {
			return form, ErrCustomCitizenshipUnavailable
		}
		next.Citizenship = contract.Other{Text: value}
		return next, nil
	}

	if !next.SetText(field, value) {
		return form, fmt.Errorf("%w: %q", ErrUnknownField, field)
	}
	if field == contract.FieldFullNameGenitive {
		next.ShortName = ShortName(value)
	}
	return next, nil
}

// ApplyValues applies several raw field values in registry order, so a
// citizenship choice lands before its free-text companion.
func ApplyValues(form contract.FormState, values map[string]string) (contract.FormState, error) {
	reg := registry.Default()
	pending := make(map[contract.Field]string, len(values))
	for raw, value := range values {
		field, ok := contract.ParseField(strings.TrimSpace(raw))
		if !ok {
			return form, fmt.Errorf("%w: %q", ErrUnknownField, raw)
		}
		pending[field] = value
	}

	next := form
	for _, spec := range reg.Fields() {
		value, ok := pending[spec.Name]
		if !ok {
			continue
		}
		var err error
		next, err = ApplyWith(reg, next, spec.Name, value)
		if err != nil {
			return form, err
		}
	}
	return next, nil
}

// SetCover returns a copy of form with the cover image replaced. A nil
// resource clears it.
func SetCover(form contract.FormState, res contract.Resource) contract.FormState {
	next := form.Clone()
	next.CoverImage = res
	return next
}

// SetContractNumber returns a copy of form carrying a number issued by the
// numbering service.
func SetContractNumber(form contract.FormState, number string) contract.FormState {
	next := form.Clone()
	next.ContractNumber = number
	return next
}

// CitizenshipLabel returns the picker label for the current citizenship:
// the country label, the other-citizenship label, or "".
func CitizenshipLabel(reg *registry.Registry, c contract.Citizenship) string {
	switch typed := c.(type) {
	case contract.Listed:
		return typed.Country.Label
	case contract.Other:
		return reg.OtherCitizenship()
	default:
		return ""
	}
}

func parseCitizenship(reg *registry.Registry, label string) (contract.Citizenship, error) {
	trimmed := strings.TrimSpace(label)
	switch {
	case trimmed == "":
		return nil, nil
	case trimmed == reg.OtherCitizenship():
		return contract.Other{}, nil
	}
	country, ok := reg.Country(trimmed)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCountry, label)
	}
	return contract.Listed{Country: country}, nil
}
