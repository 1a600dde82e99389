package summary_test

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-contractgen/pkg/contract"
	"github.com/goliatone/go-contractgen/pkg/summary"
	"github.com/goliatone/go-contractgen/pkg/testsupport"
)

func TestRender_Minimal(t *testing.T) {
	form := testsupport.FilledForm(contract.VariantMinimal)

	got, err := summary.Render(nil, form, contract.VariantMinimal)
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	want := strings.Join([]string{
		"Договор № 41",
		"",
		"Договор",
		"  Дата заключения договора: 25 октября 2025 г.",
		"",
		"Лицензиар",
		"  Гражданство: Российской Федерации",
		"  ФИО полностью: Иванов Иван Иванович",
		"  ФИО кратко (для подписи): Иванов И.И.",
		"  Творческий псевдоним: EDDI$",
		"  Паспортные данные: РФ: 4509 123456",
		"  Адрес электронной почты: mr-frank-eduard@web.de",
	}, "\n") + "\n"
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("summary mismatch (-want +got):\n%s", diff)
	}
}

func TestRender_FullWithCoverGolden(t *testing.T) {
	form := testsupport.FilledForm(contract.VariantFull)
	form.BankDetails = `ООО "Ромашка" & партнёры`
	form.CoverImage = contract.BytesResource("cover.jpg", make([]byte, 2048))

	got, err := summary.Render(nil, form, contract.VariantFull)
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	golden := filepath.Join("testdata", "full_with_cover.golden")
	if testsupport.WriteMaybeGolden(t, golden, []byte(got)) {
		return
	}
	want := string(testsupport.MustReadGolden(t, golden))
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("summary mismatch (-want +got):\n%s", diff)
	}
}

func TestBuild_EmptyValuesAndSections(t *testing.T) {
	view := summary.Build(nil, contract.FormState{}, contract.VariantBanking)

	if view.Title != "Договор" {
		t.Fatalf("title = %q", view.Title)
	}
	var titles []string
	for _, s := range view.Sections {
		titles = append(titles, s.Title)
	}
	if diff := cmp.Diff([]string{"Договор", "Лицензиар", "Банковские реквизиты"}, titles); diff != "" {
		t.Fatalf("sections mismatch (-want +got):\n%s", diff)
	}

	got, err := summary.Render(nil, contract.FormState{}, contract.VariantMinimal)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(got, "  Гражданство: не указано") {
		t.Fatalf("empty values must render a placeholder:\n%s", got)
	}
}

func TestBuild_OtherCitizenship(t *testing.T) {
	form := testsupport.FilledForm(contract.VariantMinimal)
	form.Citizenship = contract.Other{Text: "Эстонии"}

	view := summary.Build(nil, form, contract.VariantMinimal)
	if got := view.Sections[1].Lines[0].Value; got != "Эстонии" {
		t.Fatalf("citizenship = %q", got)
	}
}
