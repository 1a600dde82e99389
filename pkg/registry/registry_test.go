package registry_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-contractgen/pkg/contract"
	"github.com/goliatone/go-contractgen/pkg/registry"
)

func TestDefault_Countries(t *testing.T) {
	reg := registry.Default()

	countries := reg.Countries()
	if got := len(countries); got != 10 {
		t.Fatalf("expected 10 countries, got %d", got)
	}
	if countries[0].Label != "Российская Федерация" || countries[0].Genitive != "Российской Федерации" {
		t.Fatalf("unexpected first country: %#v", countries[0])
	}

	country, ok := reg.Country("Туркменистан")
	if !ok {
		t.Fatalf("Туркменистан not found")
	}
	if country.Genitive != "Туркменистана" {
		t.Fatalf("genitive mismatch: %s", country.Genitive)
	}

	options := reg.CitizenshipOptions()
	if options[len(options)-1] != "Другое" {
		t.Fatalf("expected other label last, got %q", options[len(options)-1])
	}
	if reg.OtherCitizenship() != "Другое" {
		t.Fatalf("other label mismatch: %q", reg.OtherCitizenship())
	}
}

func TestDefault_Percentages(t *testing.T) {
	reg := registry.Default()

	var values []string
	for _, pct := range reg.Percentages() {
		values = append(values, pct.Value)
	}
	if diff := cmp.Diff([]string{"50", "60", "70", "80"}, values); diff != "" {
		t.Fatalf("percentages mismatch (-want +got):\n%s", diff)
	}

	pct, ok := reg.Percentage("70")
	if !ok || pct.Label != "70% (Семьдесят процентов)" {
		t.Fatalf("unexpected percentage: %#v %v", pct, ok)
	}
	if _, ok := reg.Percentage("90"); ok {
		t.Fatalf("90 should not be a valid percentage")
	}
}

func TestDefault_FieldsCoverModel(t *testing.T) {
	reg := registry.Default()
	for _, field := range contract.AllFields {
		if _, ok := reg.Field(field); !ok {
			t.Fatalf("field %s missing from registry", field)
		}
	}

	spec, _ := reg.Field(contract.FieldShortName)
	if spec.Kind != registry.KindDerived {
		t.Fatalf("short_name kind = %s, want derived", spec.Kind)
	}
	if got := reg.Label(contract.FieldPassport); got != "Паспортные данные" {
		t.Fatalf("label mismatch: %s", got)
	}
}

func TestLoad_JSON(t *testing.T) {
	doc := []byte(`{
		"otherCitizenship": "Другое",
		"fields": [{"name": "email", "label": "Email"}],
		"countries": [{"label": "Республика Армения", "genitive": "Республики Армения"}],
		"percentages": [{"value": "50", "label": "50%"}]
	}`)

	reg, err := registry.Load(doc)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	spec, ok := reg.Field(contract.FieldEmail)
	if !ok {
		t.Fatalf("email field missing")
	}
	if spec.Kind != registry.KindText {
		t.Fatalf("default kind not applied: %s", spec.Kind)
	}
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name    string
		doc     string
		wantDup bool
	}{
		{name: "empty", doc: "   "},
		{name: "missing other label", doc: "fields: []"},
		{name: "unknown field", doc: "otherCitizenship: X\nfields:\n  - name: favourite_colour\n"},
		{name: "duplicate field", doc: "otherCitizenship: X\nfields:\n  - name: email\n  - name: email\n", wantDup: true},
		{name: "duplicate country", doc: "otherCitizenship: X\ncountries:\n  - label: A\n  - label: A\n", wantDup: true},
		{name: "country equals other", doc: "otherCitizenship: X\ncountries:\n  - label: X\n"},
		{name: "duplicate percentage", doc: "otherCitizenship: X\npercentages:\n  - value: \"50\"\n  - value: \"50\"\n", wantDup: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := registry.Load([]byte(tt.doc))
			if err == nil {
				t.Fatalf("expected error")
			}
			if tt.wantDup && !errors.Is(err, registry.ErrDuplicate) {
				t.Fatalf("expected ErrDuplicate, got %v", err)
			}
		})
	}
}
