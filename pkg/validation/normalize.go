package validation

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// UpperNoTone uppercases Greek or Latin text with tonos/diacritics
// removed, collapsing runs of whitespace. Names are stored this way so
// that "Παπαδόπουλος" and "ΠΑΠΑΔΟΠΟΥΛΟΣ" index identically.
func UpperNoTone(text string) string {
	if text == "" {
		return text
	}
	collapsed := strings.Join(strings.Fields(text), " ")
	upper := strings.ToUpper(collapsed)

	decomposed := norm.NFD.String(upper)
	var b strings.Builder
	b.Grow(len(decomposed))
	for _, r := range decomposed {
		if unicode.Is(unicode.Mn, r) {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
