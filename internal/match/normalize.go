// Package match normalizes company names for cross-dataset lookup.
package match

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var entitySuffixes = regexp.MustCompile(
	`(?i)\s*,?\s*(LLC|L\.?L\.?C\.?|INC\.?|INCORPORATED|CORP\.?|CORPORATION|` +
		`CO\.?|COMPANY|LTD\.?|LIMITED|PLC|AG|SA|S\.?A\.?|GMBH|HOLDINGS?|GROUP)\s*\.?\s*$`)

var multiSpace = regexp.MustCompile(`\s{2,}`)

// stripDiacritics decomposes accented runes and removes combining marks, so
// "Obrascón" and "Obrascon" normalize to the same key.
var stripDiacritics = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Normalize folds a company name to a lookup key: diacritics removed, entity
// suffixes stripped, whitespace collapsed, uppercased.
func Normalize(name string) string {
	n, _, err := transform.String(stripDiacritics, name)
	if err != nil {
		n = name
	}
	n = strings.ToUpper(strings.TrimSpace(n))
	n = entitySuffixes.ReplaceAllString(n, "")
	n = multiSpace.ReplaceAllString(n, " ")
	return strings.TrimSpace(n)
}

// Same reports whether two company names normalize to the same key.
func Same(a, b string) bool {
	return Normalize(a) == Normalize(b) && Normalize(a) != ""
}
