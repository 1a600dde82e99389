package contract

// Field names the internal (semantic) form fields. External payload keys are
// owned by package payload.
type Field string

const (
	FieldContractNumber    Field = "contract_number"
	FieldContractDate      Field = "contract_date"
	FieldCitizenship       Field = "citizenship"
	FieldCustomCitizenship Field = "custom_citizenship"
	FieldFullNameGenitive  Field = "full_name_genitive"
	FieldShortName         Field = "short_name"
	FieldNickname          Field = "nickname"
	FieldPassport          Field = "passport"
	FieldINNSwift          Field = "inn_swift"
	FieldBankDetails       Field = "bank_details"
	FieldEmail             Field = "email"
	FieldCoverImage        Field = "cover_image"
	FieldSongName          Field = "song_name"
	FieldPerformer         Field = "performer"
	FieldLyricsAuthor      Field = "lyrics_author"
	FieldMusicAuthor       Field = "music_author"
	FieldPhonogramCreator  Field = "phonogram_creator"
	FieldPaymentPercentage Field = "payment_percentage"
)

// AllFields lists every field in display order.
var AllFields = []Field{
	FieldContractNumber,
	FieldContractDate,
	FieldCitizenship,
	FieldCustomCitizenship,
	FieldFullNameGenitive,
	FieldShortName,
	FieldNickname,
	FieldPassport,
	FieldINNSwift,
	FieldBankDetails,
	FieldEmail,
	FieldPaymentPercentage,
	FieldSongName,
	FieldPerformer,
	FieldLyricsAuthor,
	FieldMusicAuthor,
	FieldPhonogramCreator,
	FieldCoverImage,
}

// ParseField resolves a raw field name.
func ParseField(name string) (Field, bool) {
	for _, field := range AllFields {
		if string(field) == name {
			return field, true
		}
	}
	return "", false
}

func (f Field) String() string {
	return string(f)
}
