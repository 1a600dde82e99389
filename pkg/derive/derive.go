// Package derive computes dependent form values and applies field updates.
// Every function is pure: updates return a new FormState.
package derive

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"
)

const isoLayout = "2006-01-02"

var monthsGenitive = [12]string{
	"января", "февраля", "марта", "апреля", "мая", "июня",
	"июля", "августа", "сентября", "октября", "ноября", "декабря",
}

// NameTokens counts the whitespace-separated words of a name.
func NameTokens(fullName string) int {
	return len(strings.Fields(fullName))
}

// ShortName abbreviates a three-word full name to "Surname N.P.". Any other
// word count yields "" so callers can prompt for exactly three words.
func ShortName(fullNameGenitive string) string {
	tokens := strings.Fields(fullNameGenitive)
	if len(tokens) != 3 {
		return ""
	}
	return fmt.Sprintf("%s %s.%s.", tokens[0], firstLetter(tokens[1]), firstLetter(tokens[2]))
}

func firstLetter(token string) string {
	r, _ := utf8.DecodeRuneInString(token)
	return string(r)
}

// ParseDate parses an ISO calendar date.
func ParseDate(iso string) (time.Time, error) {
	date, err := time.Parse(isoLayout, strings.TrimSpace(iso))
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, iso)
	}
	return date, nil
}

// FormatDateLocalized renders an ISO date as "5 марта 2024 г.". Empty input
// renders as "".
func FormatDateLocalized(iso string) (string, error) {
	if strings.TrimSpace(iso) == "" {
		return "", nil
	}
	date, err := ParseDate(iso)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%d %s %d г.", date.Day(), monthsGenitive[date.Month()-1], date.Year()), nil
}

// DateWindow returns the ISO bounds [today, today+days].
func DateWindow(today time.Time, days int) (string, string) {
	start := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC)
	return start.Format(isoLayout), start.AddDate(0, 0, days).Format(isoLayout)
}

// FormatISO renders t as an ISO calendar date.
func FormatISO(t time.Time) string {
	return t.Format(isoLayout)
}
