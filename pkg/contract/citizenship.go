package contract

import "strings"

// Country is a listed state with the grammatical forms the contract needs.
// Label is the nominative form shown in pickers; Genitive is what the
// template expects ("гражданин Российской Федерации").
type Country struct {
	Label    string `json:"label" yaml:"label"`
	Genitive string `json:"genitive" yaml:"genitive"`
}

// Citizenship is either Listed or Other. A nil Citizenship means the user has
// not chosen yet.
type Citizenship interface {
	citizenship()
}

// Listed is a citizenship picked from the registry.
type Listed struct {
	Country Country
}

// Other is a citizenship typed by the user, already in the genitive case.
type Other struct {
	Text string
}

func (Listed) citizenship() {}
func (Other) citizenship()  {}

// ResolveCitizenship returns the effective citizenship value used downstream.
// Unset citizenship and an Other without text both resolve to "".
func ResolveCitizenship(c Citizenship) string {
	switch typed := c.(type) {
	case Listed:
		if genitive := strings.TrimSpace(typed.Country.Genitive); genitive != "" {
			return genitive
		}
		return strings.TrimSpace(typed.Country.Label)
	case Other:
		return strings.TrimSpace(typed.Text)
	default:
		return ""
	}
}

// IsOther reports whether c is the free-text variant.
func IsOther(c Citizenship) bool {
	_, ok := c.(Other)
	return ok
}
