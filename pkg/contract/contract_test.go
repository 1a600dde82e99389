package contract_test

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-contractgen/pkg/contract"
)

func TestParseVariant(t *testing.T) {
	cases := map[string]contract.Variant{
		"":         contract.VariantFull,
		"full":     contract.VariantFull,
		" Banking": contract.VariantBanking,
		"MINIMAL":  contract.VariantMinimal,
	}
	for raw, want := range cases {
		got, err := contract.ParseVariant(raw)
		if err != nil {
			t.Fatalf("ParseVariant(%q): %v", raw, err)
		}
		if got != want {
			t.Fatalf("ParseVariant(%q) = %s, want %s", raw, got, want)
		}
	}
	if _, err := contract.ParseVariant("premium"); err == nil {
		t.Fatalf("expected error for unknown variant")
	}
}

func TestVariant_Required(t *testing.T) {
	minimal := []contract.Field{
		contract.FieldContractDate,
		contract.FieldCitizenship,
		contract.FieldFullNameGenitive,
		contract.FieldShortName,
		contract.FieldNickname,
		contract.FieldPassport,
		contract.FieldEmail,
	}
	if diff := cmp.Diff(minimal, contract.VariantMinimal.Required()); diff != "" {
		t.Fatalf("minimal mismatch (-want +got):\n%s", diff)
	}
	banking := append(append([]contract.Field(nil), minimal...), contract.FieldINNSwift, contract.FieldBankDetails)
	if diff := cmp.Diff(banking, contract.VariantBanking.Required()); diff != "" {
		t.Fatalf("banking mismatch (-want +got):\n%s", diff)
	}
	if got := len(contract.VariantFull.Required()); got != 15 {
		t.Fatalf("full requires %d fields, want 15", got)
	}

	// callers get a fresh slice
	req := contract.VariantMinimal.Required()
	req[0] = "mutated"
	if contract.VariantMinimal.Required()[0] != contract.FieldContractDate {
		t.Fatalf("Required leaked its backing array")
	}
}

func TestVariant_Includes(t *testing.T) {
	cases := []struct {
		variant contract.Variant
		field   contract.Field
		want    bool
	}{
		{contract.VariantMinimal, contract.FieldContractNumber, true},
		{contract.VariantMinimal, contract.FieldCustomCitizenship, true},
		{contract.VariantMinimal, contract.FieldINNSwift, false},
		{contract.VariantMinimal, contract.FieldCoverImage, false},
		{contract.VariantBanking, contract.FieldBankDetails, true},
		{contract.VariantBanking, contract.FieldSongName, false},
		{contract.VariantFull, contract.FieldCoverImage, true},
		{contract.VariantFull, contract.FieldPaymentPercentage, true},
	}
	for _, tc := range cases {
		if got := tc.variant.Includes(tc.field); got != tc.want {
			t.Errorf("%s.Includes(%s) = %v, want %v", tc.variant, tc.field, got, tc.want)
		}
	}
	if contract.VariantFull.DateWindowDays() != 14 || contract.VariantBanking.DateWindowDays() != 0 {
		t.Fatalf("unexpected date windows")
	}
}

func TestParseField(t *testing.T) {
	for _, field := range contract.AllFields {
		got, ok := contract.ParseField(field.String())
		if !ok || got != field {
			t.Fatalf("ParseField(%q) = %q, %v", field, got, ok)
		}
	}
	if _, ok := contract.ParseField("favourite_colour"); ok {
		t.Fatalf("expected unknown field")
	}
}

func TestResolveCitizenship(t *testing.T) {
	cases := []struct {
		name string
		in   contract.Citizenship
		want string
	}{
		{name: "unset", in: nil, want: ""},
		{name: "listed genitive", in: contract.Listed{Country: contract.Country{Label: "Казахстан", Genitive: "Республики Казахстан"}}, want: "Республики Казахстан"},
		{name: "listed label fallback", in: contract.Listed{Country: contract.Country{Label: "Грузия"}}, want: "Грузия"},
		{name: "other", in: contract.Other{Text: "  Эстонии "}, want: "Эстонии"},
		{name: "other empty", in: contract.Other{}, want: ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := contract.ResolveCitizenship(tc.in); got != tc.want {
				t.Fatalf("ResolveCitizenship() = %q, want %q", got, tc.want)
			}
		})
	}
	if !contract.IsOther(contract.Other{}) || contract.IsOther(contract.Listed{}) || contract.IsOther(nil) {
		t.Fatalf("IsOther mismatch")
	}
}

func TestFormState_ValueAndSetText(t *testing.T) {
	var form contract.FormState
	if !form.SetText(contract.FieldSongName, "Северный ветер") {
		t.Fatalf("song_name should be a text field")
	}
	for _, field := range []contract.Field{contract.FieldCitizenship, contract.FieldShortName, contract.FieldCoverImage, contract.FieldCustomCitizenship} {
		if form.SetText(field, "x") {
			t.Fatalf("%s must not be settable as plain text", field)
		}
	}
	form.Citizenship = contract.Other{Text: "Эстонии"}
	form.CoverImage = contract.BytesResource("cover.png", []byte{1, 2})

	got := map[contract.Field]string{}
	for _, field := range []contract.Field{contract.FieldSongName, contract.FieldCitizenship, contract.FieldCustomCitizenship, contract.FieldCoverImage} {
		got[field] = form.Value(field)
	}
	want := map[contract.Field]string{
		contract.FieldSongName:          "Северный ветер",
		contract.FieldCitizenship:       "Эстонии",
		contract.FieldCustomCitizenship: "Эстонии",
		contract.FieldCoverImage:        "cover.png",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("values mismatch (-want +got):\n%s", diff)
	}
}

func TestResources(t *testing.T) {
	data := []byte("cover-bytes")
	mem := contract.BytesResource("cover.jpg", data)
	data[0] = 'X'
	rc, err := mem.Open()
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	got, _ := io.ReadAll(rc)
	_ = rc.Close()
	if string(got) != "cover-bytes" || mem.Size() != 11 {
		t.Fatalf("bytes resource = %q (%d)", got, mem.Size())
	}

	path := filepath.Join(t.TempDir(), "art.png")
	if err := os.WriteFile(path, []byte("png"), 0o644); err != nil {
		t.Fatal(err)
	}
	file := contract.FileResource(path)
	if file.Name() != "art.png" || file.Size() != 3 {
		t.Fatalf("file resource = %s (%d)", file.Name(), file.Size())
	}

	missing := contract.FileResource(filepath.Join(t.TempDir(), "gone.png"))
	if missing.Size() != -1 {
		t.Fatalf("missing size = %d", missing.Size())
	}
	if _, err := missing.Open(); err == nil {
		t.Fatalf("expected open error for missing file")
	}
}
