package server

import (
	"github.com/goliatone/go-contractgen/pkg/contract"
	"github.com/goliatone/go-contractgen/pkg/derive"
	"github.com/goliatone/go-contractgen/pkg/registry"
	"github.com/goliatone/go-contractgen/pkg/submission"
	"github.com/goliatone/go-contractgen/pkg/validation"
)

type coverView struct {
	Name string `json:"name"`
	Size int64  `json:"size"`
}

type hintsView struct {
	ShortName     string `json:"short_name,omitempty"`
	NameHint      string `json:"name_hint,omitempty"`
	DateLocalized string `json:"date_localized,omitempty"`
	Citizenship   string `json:"citizenship,omitempty"`
	DateMin       string `json:"date_min,omitempty"`
	DateMax       string `json:"date_max,omitempty"`
}

type formView struct {
	Variant    contract.Variant   `json:"variant"`
	Values     map[string]string  `json:"values"`
	Cover      *coverView         `json:"cover,omitempty"`
	Hints      hintsView          `json:"hints"`
	Valid      bool               `json:"valid"`
	Violations validation.Mapping `json:"violations"`
	Phase      submission.Phase   `json:"phase"`
	InProgress bool               `json:"in_progress"`
}

type registryView struct {
	Variant          contract.Variant      `json:"variant"`
	Required         []contract.Field      `json:"required"`
	Fields           []registry.FieldSpec  `json:"fields"`
	Countries        []contract.Country    `json:"countries"`
	OtherCitizenship string                `json:"other_citizenship"`
	Percentages      []registry.Percentage `json:"percentages"`
}

func (s *Server) buildFormView() formView {
	state := s.form.State()
	variant := s.form.Variant()

	values := make(map[string]string)
	for _, spec := range s.reg.Fields() {
		if spec.Name == contract.FieldCoverImage || !variant.Includes(spec.Name) {
			continue
		}
		values[string(spec.Name)] = state.Value(spec.Name)
	}
	values[string(contract.FieldCitizenship)] = derive.CitizenshipLabel(s.reg, state.Citizenship)

	view := formView{
		Variant: variant,
		Values:  values,
		Hints: hintsView{
			ShortName:   state.ShortName,
			Citizenship: contract.ResolveCitizenship(state.Citizenship),
		},
		Phase:      s.form.Phase(),
		InProgress: s.form.InProgress(),
	}
	if state.FullNameGenitive != "" {
		if state.ShortName == "" {
			view.Hints.NameHint = "⚠ Введите ровно 3 слова"
		} else {
			view.Hints.NameHint = "✓ ФИО для подписи: " + state.ShortName
		}
	}
	if localized, err := derive.FormatDateLocalized(state.ContractDate); err == nil {
		view.Hints.DateLocalized = localized
	}
	if days := variant.DateWindowDays(); days > 0 {
		view.Hints.DateMin, view.Hints.DateMax = derive.DateWindow(s.now(), days)
	}
	if state.CoverImage != nil {
		view.Cover = &coverView{Name: state.CoverImage.Name(), Size: state.CoverImage.Size()}
	}

	violations := s.form.Validate()
	view.Valid = len(violations) == 0
	view.Violations = validation.MapWith(s.reg, violations)
	return view
}

func (s *Server) buildRegistryView() registryView {
	variant := s.form.Variant()
	return registryView{
		Variant:          variant,
		Required:         variant.Required(),
		Fields:           s.reg.Fields(),
		Countries:        s.reg.Countries(),
		OtherCitizenship: s.reg.OtherCitizenship(),
		Percentages:      s.reg.Percentages(),
	}
}
