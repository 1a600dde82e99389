// Package payload projects a FormState onto the flat key/value body the
// document renderer expects.
package payload

import (
	"fmt"
	"sort"

	"github.com/goliatone/go-contractgen/pkg/contract"
	"github.com/goliatone/go-contractgen/pkg/derive"
)

// External keys of the renderer contract.
const (
	KeyContractDate     = "дата_заключения_договора"
	KeyCitizenship      = "graj"
	KeyFullName         = "ФИО_ИП_полностью_кого"
	KeyShortName        = "ФИО_ИП_кратко"
	KeyNickname         = "NIK"
	KeyPassport         = "PAS"
	KeyEmail            = "mail"
	KeyINNSwift         = "ИНН_SWIFT"
	KeyBankDetails      = "РЕКВИЗИТЫ_БАНК"
	KeySongName         = "НАЗВАНИЕ_ПЕСНИ"
	KeyPerformer        = "ИСПОЛНИТЕЛЬ"
	KeyLyricsAuthor     = "АВТОР_ТЕКСТА"
	KeyMusicAuthor      = "АВТОР_МУЗЫКИ"
	KeyPhonogramCreator = "ИЗГОТОВИТЕЛЬ_ФОНОГРАММЫ"
	KeyPaymentPercent   = "ПРОЦЕНТ_ВЫПЛАТ"
	KeyCoverImage       = "cover_image"
	KeyCoverImageName   = "cover_image_name"
)

// Payload is the serialisable renderer request body.
type Payload map[string]string

// Keys returns the payload keys sorted.
func (p Payload) Keys() []string {
	keys := make([]string, 0, len(p))
	for key := range p {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// Option configures Build.
type Option func(*options)

type options struct {
	variant contract.Variant
}

// WithVariant limits the optional key groups to those the variant collects.
// Without it every key is emitted.
func WithVariant(v contract.Variant) Option {
	return func(o *options) {
		o.variant = v
	}
}

// Build projects form onto the renderer keys. The date is localized, the
// citizenship resolved and the short name copied as already derived. Image
// keys are always present and empty when there is no image.
func Build(form contract.FormState, encodedImage string, opts ...Option) (Payload, error) {
	cfg := options{}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	date, err := derive.FormatDateLocalized(form.ContractDate)
	if err != nil {
		return nil, fmt.Errorf("payload: %w", err)
	}

	out := Payload{
		KeyContractDate: date,
		KeyCitizenship:  contract.ResolveCitizenship(form.Citizenship),
		KeyFullName:     form.FullNameGenitive,
		KeyShortName:    form.ShortName,
		KeyNickname:     form.Nickname,
		KeyPassport:     form.Passport,
		KeyEmail:        form.Email,
	}

	if cfg.variant == "" || cfg.variant.Includes(contract.FieldINNSwift) {
		out[KeyINNSwift] = form.INNSwift
		out[KeyBankDetails] = form.BankDetails
	}

	if cfg.variant == "" || cfg.variant.Includes(contract.FieldSongName) {
		out[KeySongName] = form.SongName
		out[KeyPerformer] = form.Performer
		out[KeyLyricsAuthor] = form.LyricsAuthor
		out[KeyMusicAuthor] = form.MusicAuthor
		out[KeyPhonogramCreator] = form.PhonogramCreator
		out[KeyPaymentPercent] = form.PaymentPercentage
	}

	out[KeyCoverImage] = ""
	out[KeyCoverImageName] = ""
	if form.CoverImage != nil && (cfg.variant == "" || cfg.variant.Includes(contract.FieldCoverImage)) {
		out[KeyCoverImage] = encodedImage
		out[KeyCoverImageName] = form.CoverImage.Name()
	}

	return out, nil
}
