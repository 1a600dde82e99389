package derive

import "errors"

var (
	// ErrInvalidDate is returned for dates that are not YYYY-MM-DD.
	ErrInvalidDate = errors.New("derive: invalid date")
	// ErrFieldReadOnly is returned when a derived or server-assigned field is
	// edited directly.
	ErrFieldReadOnly = errors.New("derive: field is read-only")
	// ErrUseSetCover is returned when the cover image is set through Apply.
	ErrUseSetCover = errors.New("derive: cover image is set with SetCover")
	// ErrCustomCitizenshipUnavailable is returned when free-text citizenship is
	// edited while a listed (or no) citizenship is selected.
	ErrCustomCitizenshipUnavailable = errors.New("derive: custom citizenship requires the other-citizenship option")
	// ErrUnknownCountry is returned for citizenship labels missing from the
	// registry.
	ErrUnknownCountry = errors.New("derive: unknown country")
	// ErrUnknownField is returned for field names outside the form model.
	ErrUnknownField = errors.New("derive: unknown field")
)
