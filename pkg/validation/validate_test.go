package validation_test

import (
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-contractgen/pkg/contract"
	"github.com/goliatone/go-contractgen/pkg/testsupport"
	"github.com/goliatone/go-contractgen/pkg/validation"
)

func TestValidate_FilledMinimalFormPasses(t *testing.T) {
	form := testsupport.FilledForm(contract.VariantMinimal)
	if got := validation.Validate(form, contract.VariantMinimal); len(got) != 0 {
		t.Fatalf("expected no violations, got %v", got)
	}
	if err := validation.Validate(form, contract.VariantMinimal).Err(); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
}

func TestValidate_FilledVariantsPass(t *testing.T) {
	today := testsupport.Today
	for _, variant := range []contract.Variant{contract.VariantMinimal, contract.VariantBanking, contract.VariantFull} {
		form := testsupport.FilledForm(variant)
		if got := validation.ValidateAt(form, variant, today); len(got) != 0 {
			t.Fatalf("%s: expected no violations, got %v", variant, got)
		}
	}
}

func TestValidate_EmptyForm(t *testing.T) {
	got := validation.Validate(contract.FormState{}, contract.VariantMinimal)

	want := validation.Violations{
		validation.MissingField(contract.FieldContractDate),
		validation.MissingField(contract.FieldFullNameGenitive),
		validation.MissingField(contract.FieldShortName),
		validation.MissingField(contract.FieldNickname),
		validation.MissingField(contract.FieldPassport),
		validation.MissingField(contract.FieldEmail),
		{Kind: validation.KindMissingCitizenship, Field: contract.FieldCitizenship},
		{Kind: validation.KindInvalidNameFormat, Field: contract.FieldFullNameGenitive},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("violations mismatch (-want +got):\n%s", diff)
	}
}

func TestValidate_VariantRequiredSets(t *testing.T) {
	form := testsupport.FilledForm(contract.VariantMinimal)

	banking := validation.Validate(form, contract.VariantBanking)
	if diff := cmp.Diff([]contract.Field{contract.FieldINNSwift, contract.FieldBankDetails}, banking.Fields()); diff != "" {
		t.Fatalf("banking fields mismatch (-want +got):\n%s", diff)
	}

	full := validation.Validate(form, contract.VariantFull)
	wantFull := []contract.Field{
		contract.FieldINNSwift,
		contract.FieldBankDetails,
		contract.FieldPaymentPercentage,
		contract.FieldSongName,
		contract.FieldPerformer,
		contract.FieldLyricsAuthor,
		contract.FieldMusicAuthor,
		contract.FieldPhonogramCreator,
	}
	if diff := cmp.Diff(wantFull, full.Fields()); diff != "" {
		t.Fatalf("full fields mismatch (-want +got):\n%s", diff)
	}
}

func TestValidate_WhitespaceIsMissing(t *testing.T) {
	form := testsupport.FilledForm(contract.VariantMinimal)
	form.Passport = "   "
	got := validation.Validate(form, contract.VariantMinimal)
	if diff := cmp.Diff(validation.Violations{validation.MissingField(contract.FieldPassport)}, got); diff != "" {
		t.Fatalf("violations mismatch (-want +got):\n%s", diff)
	}
}

func TestValidate_OtherWithoutTextAlwaysFlags(t *testing.T) {
	forms := []contract.FormState{
		{},
		testsupport.FilledForm(contract.VariantMinimal),
		testsupport.FilledForm(contract.VariantFull),
	}
	for i, form := range forms {
		form.Citizenship = contract.Other{Text: "  "}
		for _, variant := range []contract.Variant{contract.VariantMinimal, contract.VariantBanking, contract.VariantFull} {
			if got := validation.Validate(form, variant); !got.Has(validation.KindMissingCustomCitizenship) {
				t.Fatalf("form %d %s: expected MissingCustomCitizenship, got %v", i, variant, got)
			}
		}
	}
}

func TestValidate_SentinelAsCustomText(t *testing.T) {
	form := testsupport.FilledForm(contract.VariantMinimal)
	for _, text := range []string{"Другое", "  Другое ", "другое"} {
		form.Citizenship = contract.Other{Text: text}
		got := validation.Validate(form, contract.VariantMinimal)
		want := validation.Violations{{Kind: validation.KindMissingCustomCitizenship, Field: contract.FieldCustomCitizenship}}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Fatalf("text %q: violations mismatch (-want +got):\n%s", text, diff)
		}
	}
}

func TestValidate_TwoWordName(t *testing.T) {
	form := testsupport.FilledForm(contract.VariantMinimal)
	form.FullNameGenitive = "Иванов Иван"
	form.ShortName = ""

	got := validation.Validate(form, contract.VariantMinimal)
	if !got.Has(validation.KindInvalidNameFormat) {
		t.Fatalf("expected InvalidNameFormat, got %v", got)
	}
}

func TestValidate_DoesNotMutate(t *testing.T) {
	form := testsupport.FilledForm(contract.VariantFull)
	before := form
	_ = validation.ValidateAt(form, contract.VariantFull, testsupport.Today)
	if diff := cmp.Diff(before, form, testsupport.FormCmpOptions()...); diff != "" {
		t.Fatalf("form mutated (-before +after):\n%s", diff)
	}
}

func TestValidateAt_DateWindow(t *testing.T) {
	today := time.Date(2025, time.October, 20, 9, 0, 0, 0, time.UTC)
	tests := []struct {
		date string
		want bool
	}{
		{date: "2025-10-20", want: false},
		{date: "2025-11-03", want: false},
		{date: "2025-11-04", want: true},
		{date: "2025-10-19", want: true},
	}
	for _, tt := range tests {
		form := testsupport.FilledForm(contract.VariantFull)
		form.ContractDate = tt.date
		got := validation.ValidateAt(form, contract.VariantFull, today)
		if got.Has(validation.KindDateOutOfRange) != tt.want {
			t.Errorf("%s: out of range = %v, want %v (%v)", tt.date, !tt.want, tt.want, got)
		}
	}

	form := testsupport.FilledForm(contract.VariantMinimal)
	form.ContractDate = "2001-01-01"
	if got := validation.ValidateAt(form, contract.VariantMinimal, today); len(got) != 0 {
		t.Fatalf("minimal variant has no window, got %v", got)
	}
}

func TestValidate_InvalidDateAndPercentage(t *testing.T) {
	form := testsupport.FilledForm(contract.VariantFull)
	form.ContractDate = "20.10.2025"
	form.PaymentPercentage = "95"

	got := validation.Validate(form, contract.VariantFull)
	want := validation.Violations{
		{Kind: validation.KindInvalidDate, Field: contract.FieldContractDate},
		{Kind: validation.KindInvalidPaymentPercentage, Field: contract.FieldPaymentPercentage},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("violations mismatch (-want +got):\n%s", diff)
	}
}

func TestError(t *testing.T) {
	err := validation.Validate(contract.FormState{}, contract.VariantMinimal).Err()
	if !errors.Is(err, validation.ErrInvalid) {
		t.Fatalf("expected ErrInvalid, got %v", err)
	}
	var verr *validation.Error
	if !errors.As(err, &verr) || len(verr.Violations) == 0 {
		t.Fatalf("expected *validation.Error with violations, got %#v", err)
	}
}

func TestMap(t *testing.T) {
	vs := validation.Violations{
		validation.MissingField(contract.FieldPassport),
		{Kind: validation.KindInvalidNameFormat, Field: contract.FieldFullNameGenitive},
	}

	got := validation.Map(vs)
	want := validation.Mapping{
		Fields: map[string][]string{
			"passport":           {"Заполните поле «Паспортные данные»"},
			"full_name_genitive": {"Введите ровно 3 слова"},
		},
		Form: []string{"Заполните все поля"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("mapping mismatch (-want +got):\n%s", diff)
	}

	if diff := cmp.Diff(validation.Mapping{}, validation.Map(nil)); diff != "" {
		t.Fatalf("empty mapping mismatch (-want +got):\n%s", diff)
	}

	name := validation.Map(validation.Violations{{Kind: validation.KindInvalidNameFormat, Field: contract.FieldFullNameGenitive}})
	if diff := cmp.Diff([]string{"Введите ровно 3 слова"}, name.Form); diff != "" {
		t.Fatalf("headline mismatch (-want +got):\n%s", diff)
	}
}
