// Package testsupport provides fixtures shared by the package tests: filled
// forms per variant, a fixed clock, comparison options and golden helpers.
package testsupport

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-contractgen/pkg/contract"
)

// Today is the fixed "now" used by tests that exercise the date window.
var Today = time.Date(2025, time.October, 20, 12, 0, 0, 0, time.UTC)

// Clock returns Today.
func Clock() time.Time {
	return Today
}

// FilledForm returns a form that passes validation for the variant at Today.
// Fields outside the variant stay empty.
func FilledForm(variant contract.Variant) contract.FormState {
	form := contract.FormState{
		ContractNumber:   "41",
		ContractDate:     "2025-10-25",
		Citizenship:      contract.Listed{Country: contract.Country{Label: "Российская Федерация", Genitive: "Российской Федерации"}},
		FullNameGenitive: "Иванов Иван Иванович",
		ShortName:        "Иванов И.И.",
		Nickname:         "EDDI$",
		Passport:         "РФ: 4509 123456",
		Email:            "mr-frank-eduard@web.de",
	}
	if variant == contract.VariantBanking || variant == contract.VariantFull {
		form.INNSwift = "772987898798"
		form.BankDetails = "Банк: Sberbank, IBAN: RU79847239847239847239847, БИК: 1234567890"
	}
	if variant == contract.VariantFull {
		form.SongName = "Северный ветер"
		form.Performer = "EDDI$"
		form.LyricsAuthor = "Иванов Иван Иванович"
		form.MusicAuthor = "Петров Пётр Петрович"
		form.PhonogramCreator = "Сидоров Сидор Сидорович"
		form.PaymentPercentage = "70"
	}
	return form
}

// FormCmpOptions compares resources by name and size so FormState values can
// be diffed with cmp.
func FormCmpOptions() []cmp.Option {
	return []cmp.Option{
		cmp.Comparer(func(a, b contract.Resource) bool {
			if a == nil || b == nil {
				return a == nil && b == nil
			}
			return a.Name() == b.Name() && a.Size() == b.Size()
		}),
	}
}

// WriteTempFile writes data under t.TempDir and returns the path.
func WriteTempFile(t *testing.T, name string, data []byte) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write temp file: %v", err)
	}
	return path
}

// MustReadGolden reads a golden file and returns its raw bytes.
func MustReadGolden(t *testing.T, path string) []byte {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read golden: %v", err)
	}
	return data
}

// WriteMaybeGolden updates a golden file when UPDATE_GOLDENS is set. Returns
// true if the golden was written (test should exit early).
func WriteMaybeGolden(t *testing.T, path string, data []byte) bool {
	t.Helper()
	if os.Getenv("UPDATE_GOLDENS") == "" {
		return false
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir golden dir: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write golden: %v", err)
	}
	return true
}

// Context returns a background context for tests.
func Context() context.Context {
	return context.Background()
}
