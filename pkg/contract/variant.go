package contract

import (
	"fmt"
	"strings"
)

// Variant selects the required-field set of a form.
type Variant string

const (
	// VariantMinimal requires the seven licensor fields.
	VariantMinimal Variant = "minimal"
	// VariantBanking adds INN/SWIFT and bank details.
	VariantBanking Variant = "banking"
	// VariantFull adds the song, authorship and payment fields and bounds the
	// contract date to a two-week window.
	VariantFull Variant = "full"
)

var minimalRequired = []Field{
	FieldContractDate,
	FieldCitizenship,
	FieldFullNameGenitive,
	FieldShortName,
	FieldNickname,
	FieldPassport,
	FieldEmail,
}

var bankingRequired = []Field{
	FieldINNSwift,
	FieldBankDetails,
}

var fullRequired = []Field{
	FieldPaymentPercentage,
	FieldSongName,
	FieldPerformer,
	FieldLyricsAuthor,
	FieldMusicAuthor,
	FieldPhonogramCreator,
}

// ParseVariant maps a variant name; the empty string selects VariantFull.
func ParseVariant(raw string) (Variant, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", string(VariantFull):
		return VariantFull, nil
	case string(VariantBanking):
		return VariantBanking, nil
	case string(VariantMinimal):
		return VariantMinimal, nil
	default:
		return "", fmt.Errorf("contract: unknown variant %q", raw)
	}
}

// Required returns the variant's required fields in display order.
func (v Variant) Required() []Field {
	out := append([]Field(nil), minimalRequired...)
	if v == VariantBanking || v == VariantFull {
		out = append(out, bankingRequired...)
	}
	if v == VariantFull {
		out = append(out, fullRequired...)
	}
	return out
}

// Includes reports whether field belongs to the variant, either because it is
// required or because it is an optional field the variant shows.
func (v Variant) Includes(field Field) bool {
	switch field {
	case FieldContractNumber, FieldCustomCitizenship:
		return true
	case FieldCoverImage:
		return v == VariantFull
	}
	for _, required := range v.Required() {
		if required == field {
			return true
		}
	}
	return false
}

// DateWindowDays is the number of days after today a contract date may fall
// on. Zero disables the window.
func (v Variant) DateWindowDays() int {
	if v == VariantFull {
		return 14
	}
	return 0
}

func (v Variant) String() string {
	return string(v)
}
