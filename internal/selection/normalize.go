package selection

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// NormalizeTerm trims, strips diacritics and lower-cases a search term,
// so "  São Paulo " becomes "sao paulo".
func NormalizeTerm(term string) string {
	term = strings.TrimSpace(term)
	if term == "" {
		return ""
	}
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	stripped, _, err := transform.String(t, term)
	if err != nil {
		stripped = term
	}
	return strings.ToLower(stripped)
}
