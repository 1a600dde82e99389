// Package registry holds the static form definition: field specs, the
// country list with grammatical-case variants and the payment percentages.
// The data ships embedded as registry.yaml; Load accepts the same document in
// JSON or YAML for callers that override it.
package registry

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-contractgen/pkg/contract"
)

//go:embed registry.yaml
var embedded []byte

// FieldKind tells input surfaces how to collect a field.
type FieldKind string

const (
	KindText     FieldKind = "text"
	KindDate     FieldKind = "date"
	KindSelect   FieldKind = "select"
	KindFile     FieldKind = "file"
	KindDerived  FieldKind = "derived"
	KindReadonly FieldKind = "readonly"
)

// FieldSpec describes one form field.
type FieldSpec struct {
	Name        contract.Field `json:"name" yaml:"name"`
	Kind        FieldKind      `json:"kind" yaml:"kind"`
	Label       string         `json:"label" yaml:"label"`
	Help        string         `json:"help,omitempty" yaml:"help"`
	Placeholder string         `json:"placeholder,omitempty" yaml:"placeholder"`
}

// Percentage is one payment-percentage choice.
type Percentage struct {
	Value string `json:"value" yaml:"value"`
	Label string `json:"label" yaml:"label"`
}

// Registry is an immutable, validated form definition.
type Registry struct {
	other       string
	fields      []FieldSpec
	countries   []contract.Country
	percentages []Percentage

	fieldIndex   map[contract.Field]int
	countryIndex map[string]int
	percentIndex map[string]int
}

type documentFile struct {
	OtherCitizenship string             `json:"otherCitizenship" yaml:"otherCitizenship"`
	Fields           []FieldSpec        `json:"fields" yaml:"fields"`
	Countries        []contract.Country `json:"countries" yaml:"countries"`
	Percentages      []Percentage       `json:"percentages" yaml:"percentages"`
}

var (
	defaultOnce     sync.Once
	defaultRegistry *Registry
	defaultErr      error
)

// Default returns the embedded registry. It panics if the embedded document is
// invalid, which only a broken build can cause.
func Default() *Registry {
	defaultOnce.Do(func() {
		defaultRegistry, defaultErr = Load(embedded)
	})
	if defaultErr != nil {
		panic(defaultErr)
	}
	return defaultRegistry
}

// Load parses and validates a registry document.
func Load(data []byte) (*Registry, error) {
	doc, err := parseDocument(data)
	if err != nil {
		return nil, err
	}
	return normalise(doc)
}

func parseDocument(data []byte) (documentFile, error) {
	var doc documentFile
	if len(strings.TrimSpace(string(data))) == 0 {
		return documentFile{}, ErrEmptyDocument
	}

	if err := json.Unmarshal(data, &doc); err == nil {
		return doc, nil
	}

	if err := yaml.Unmarshal(data, &doc); err == nil {
		return doc, nil
	}

	return documentFile{}, fmt.Errorf("registry: parse document: invalid JSON or YAML")
}

func normalise(doc documentFile) (*Registry, error) {
	reg := &Registry{
		other:        strings.TrimSpace(doc.OtherCitizenship),
		fieldIndex:   make(map[contract.Field]int, len(doc.Fields)),
		countryIndex: make(map[string]int, len(doc.Countries)),
		percentIndex: make(map[string]int, len(doc.Percentages)),
	}
	if reg.other == "" {
		return nil, fmt.Errorf("registry: otherCitizenship label is required")
	}

	for _, spec := range doc.Fields {
		name := contract.Field(strings.TrimSpace(string(spec.Name)))
		if _, known := contract.ParseField(string(name)); !known {
			return nil, fmt.Errorf("registry: unknown field %q", spec.Name)
		}
		if _, exists := reg.fieldIndex[name]; exists {
			return nil, fmt.Errorf("%w: field %q", ErrDuplicate, name)
		}
		spec.Name = name
		if spec.Kind == "" {
			spec.Kind = KindText
		}
		reg.fieldIndex[name] = len(reg.fields)
		reg.fields = append(reg.fields, spec)
	}

	for _, country := range doc.Countries {
		label := strings.TrimSpace(country.Label)
		if label == "" {
			return nil, fmt.Errorf("registry: country without label")
		}
		if label == reg.other {
			return nil, fmt.Errorf("registry: country %q collides with the other-citizenship label", label)
		}
		if _, exists := reg.countryIndex[label]; exists {
			return nil, fmt.Errorf("%w: country %q", ErrDuplicate, label)
		}
		country.Label = label
		country.Genitive = strings.TrimSpace(country.Genitive)
		reg.countryIndex[label] = len(reg.countries)
		reg.countries = append(reg.countries, country)
	}

	for _, pct := range doc.Percentages {
		value := strings.TrimSpace(pct.Value)
		if value == "" {
			return nil, fmt.Errorf("registry: percentage without value")
		}
		if _, exists := reg.percentIndex[value]; exists {
			return nil, fmt.Errorf("%w: percentage %q", ErrDuplicate, value)
		}
		pct.Value = value
		reg.percentIndex[value] = len(reg.percentages)
		reg.percentages = append(reg.percentages, pct)
	}

	return reg, nil
}

// OtherCitizenship is the picker label that switches citizenship to free text.
func (r *Registry) OtherCitizenship() string {
	return r.other
}

// Fields returns the field specs in display order.
func (r *Registry) Fields() []FieldSpec {
	return append([]FieldSpec(nil), r.fields...)
}

// Field looks up a field spec.
func (r *Registry) Field(name contract.Field) (FieldSpec, bool) {
	idx, ok := r.fieldIndex[name]
	if !ok {
		return FieldSpec{}, false
	}
	return r.fields[idx], true
}

// Label returns the field label, falling back to the field name.
func (r *Registry) Label(name contract.Field) string {
	if spec, ok := r.Field(name); ok && spec.Label != "" {
		return spec.Label
	}
	return string(name)
}

// Countries returns the listed countries in display order.
func (r *Registry) Countries() []contract.Country {
	return append([]contract.Country(nil), r.countries...)
}

// Country finds a listed country by its label.
func (r *Registry) Country(label string) (contract.Country, bool) {
	idx, ok := r.countryIndex[strings.TrimSpace(label)]
	if !ok {
		return contract.Country{}, false
	}
	return r.countries[idx], true
}

// CitizenshipOptions returns the picker labels: every country followed by the
// other-citizenship label.
func (r *Registry) CitizenshipOptions() []string {
	out := make([]string, 0, len(r.countries)+1)
	for _, country := range r.countries {
		out = append(out, country.Label)
	}
	return append(out, r.other)
}

// Percentages returns the payment percentages in display order.
func (r *Registry) Percentages() []Percentage {
	return append([]Percentage(nil), r.percentages...)
}

// Percentage finds a payment percentage by value.
func (r *Registry) Percentage(value string) (Percentage, bool) {
	idx, ok := r.percentIndex[strings.TrimSpace(value)]
	if !ok {
		return Percentage{}, false
	}
	return r.percentages[idx], true
}
