package contract

// FormState is the complete form record. The zero value is an empty form.
type FormState struct {
	ContractNumber    string      `json:"contract_number"`
	ContractDate      string      `json:"contract_date"`
	Citizenship       Citizenship `json:"-"`
	FullNameGenitive  string      `json:"full_name_genitive"`
	ShortName         string      `json:"short_name"`
	Nickname          string      `json:"nickname"`
	Passport          string      `json:"passport"`
	INNSwift          string      `json:"inn_swift"`
	BankDetails       string      `json:"bank_details"`
	Email             string      `json:"email"`
	CoverImage        Resource    `json:"-"`
	SongName          string      `json:"song_name"`
	Performer         string      `json:"performer"`
	LyricsAuthor      string      `json:"lyrics_author"`
	MusicAuthor       string      `json:"music_author"`
	PhonogramCreator  string      `json:"phonogram_creator"`
	PaymentPercentage string      `json:"payment_percentage"`
}

// Clone returns a copy safe to hand out. Resources are immutable, so sharing
// the reference is enough.
func (f FormState) Clone() FormState {
	return f
}

// Value reads a field as display text. Citizenship reads as its resolved
// value, custom_citizenship as the free text of an Other citizenship, and
// cover_image as the attachment name.
func (f FormState) Value(field Field) string {
	switch field {
	case FieldContractNumber:
		return f.ContractNumber
	case FieldContractDate:
		return f.ContractDate
	case FieldCitizenship:
		return ResolveCitizenship(f.Citizenship)
	case FieldCustomCitizenship:
		if other, ok := f.Citizenship.(Other); ok {
			return other.Text
		}
		return ""
	case FieldFullNameGenitive:
		return f.FullNameGenitive
	case FieldShortName:
		return f.ShortName
	case FieldNickname:
		return f.Nickname
	case FieldPassport:
		return f.Passport
	case FieldINNSwift:
		return f.INNSwift
	case FieldBankDetails:
		return f.BankDetails
	case FieldEmail:
		return f.Email
	case FieldCoverImage:
		if f.CoverImage == nil {
			return ""
		}
		return f.CoverImage.Name()
	case FieldSongName:
		return f.SongName
	case FieldPerformer:
		return f.Performer
	case FieldLyricsAuthor:
		return f.LyricsAuthor
	case FieldMusicAuthor:
		return f.MusicAuthor
	case FieldPhonogramCreator:
		return f.PhonogramCreator
	case FieldPaymentPercentage:
		return f.PaymentPercentage
	default:
		return ""
	}
}

// SetText assigns a plain text field and reports whether field is one.
// Citizenship, custom citizenship, short name and the cover image are not
// plain text fields; package derive owns their update rules.
func (f *FormState) SetText(field Field, value string) bool {
	switch field {
	case FieldContractNumber:
		f.ContractNumber = value
	case FieldContractDate:
		f.ContractDate = value
	case FieldFullNameGenitive:
		f.FullNameGenitive = value
	case FieldNickname:
		f.Nickname = value
	case FieldPassport:
		f.Passport = value
	case FieldINNSwift:
		f.INNSwift = value
	case FieldBankDetails:
		f.BankDetails = value
	case FieldEmail:
		f.Email = value
	case FieldSongName:
		f.SongName = value
	case FieldPerformer:
		f.Performer = value
	case FieldLyricsAuthor:
		f.LyricsAuthor = value
	case FieldMusicAuthor:
		f.MusicAuthor = value
	case FieldPhonogramCreator:
		f.PhonogramCreator = value
	case FieldPaymentPercentage:
		f.PaymentPercentage = value
	default:
		return false
	}
	return true
}
