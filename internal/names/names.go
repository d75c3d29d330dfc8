// Package names canonicalizes fighter names so differently-spelled
// references to the same person merge into one identity key.
//
// The doubled-name repair is a heuristic for a known scraping artifact
// ("Alice SmithAlice Smith"), not a guaranteed identity resolver.
package names

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// asciiFold decomposes accented letters and drops the combining marks,
// e.g. "Galvão" -> "Galvao".
var asciiFold = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

var titleCaser = cases.Title(language.Und)

// clean trims the raw name, removes pipe separator artifacts, collapses
// whitespace runs, and repairs doubled names. It runs before any
// transliteration or case folding so the doubled-half comparison sees the
// text as scraped.
func clean(raw string) string {
	s := strings.Trim(raw, "| \t")
	s = strings.ReplaceAll(s, "|", "")
	s = strings.Join(strings.Fields(s), " ")
	if n := len(s); n > 0 && n%2 == 0 {
		// Even length with identical halves: "Mica GalvaoMica Galvao".
		if s[:n/2] == s[n/2:] {
			s = s[:n/2]
		}
	}
	return s
}

// Key returns the canonical identity key for a raw fighter name: cleaned,
// transliterated to ASCII, and lowercased. Two spellings with the same Key
// are the same fighter for rating purposes.
func Key(raw string) string {
	s := clean(raw)
	if folded, _, err := transform.String(asciiFold, s); err == nil {
		s = folded
	}
	return strings.ToLower(s)
}

// Display returns the human-readable form of a raw name: cleaned and
// title-cased, diacritics preserved.
func Display(raw string) string {
	return titleCaser.String(clean(raw))
}
