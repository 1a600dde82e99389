package sanitize_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-contractgen/pkg/contract"
	"github.com/goliatone/go-contractgen/pkg/sanitize"
)

func TestText(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{in: "", want: ""},
		{in: "   ", want: ""},
		{in: "  Иванов Иван Иванович ", want: "Иванов Иван Иванович"},
		{in: "<b>EDDI$</b>", want: "EDDI$"},
		{in: `<script>alert("x")</script>Эстонии`, want: "Эстонии"},
		{in: "Sberbank & Co", want: "Sberbank & Co"},
		{in: `ООО "Ромашка"`, want: `ООО "Ромашка"`},
		{in: "mr-frank-eduard@web.de", want: "mr-frank-eduard@web.de"},
	}
	for _, tc := range cases {
		if got := sanitize.Text(tc.in); got != tc.want {
			t.Errorf("Text(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestValues(t *testing.T) {
	got := sanitize.Values(map[string]string{
		"nickname":           " <i>EDDI$</i> ",
		"passport":           "РФ: 4509 123456",
		"bank_details":       " IBAN <RU79847239847239847239847> ",
		"custom_citizenship": "<b>Эстонии</b>",
	})
	want := map[string]string{
		"nickname":           "EDDI$",
		"passport":           "РФ: 4509 123456",
		"bank_details":       "IBAN <RU79847239847239847239847>",
		"custom_citizenship": "Эстонии",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("values mismatch (-want +got):\n%s", diff)
	}
	if sanitize.Values(nil) != nil {
		t.Fatalf("nil map must stay nil")
	}
}

func TestField(t *testing.T) {
	cases := []struct {
		field contract.Field
		in    string
		want  string
	}{
		{field: contract.FieldPassport, in: " <4509> 123456 ", want: "<4509> 123456"},
		{field: contract.FieldBankDetails, in: "IBAN <RU79>, БИК <1234>", want: "IBAN <RU79>, БИК <1234>"},
		{field: contract.FieldFullNameGenitive, in: "<b>Иванов</b> Иван Иванович", want: "Иванов Иван Иванович"},
		{field: contract.FieldSongName, in: "<script>x</script>Северный ветер", want: "Северный ветер"},
	}
	for _, tc := range cases {
		if got := sanitize.Field(tc.field, tc.in); got != tc.want {
			t.Errorf("Field(%s, %q) = %q, want %q", tc.field, tc.in, got, tc.want)
		}
	}
}
