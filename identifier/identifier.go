/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

// Package identifier turns arbitrary record text into constant-style identifiers.
package identifier

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Separator joins the words of a constantized identifier.
const Separator = '_'

// Constantize upper-cases s, strips diacritics and collapses every run of
// characters that are neither letters nor digits into a single Separator.
// Leading and trailing separators are dropped, so "  Completed, Late!" becomes
// "COMPLETED_LATE". A string without letters or digits yields "".
func Constantize(s string) string {
	// transform chains keep state between calls; build one per call.
	fold := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(fold, s)
	if err != nil {
		folded = s
	}

	var b strings.Builder
	b.Grow(len(folded))
	gap := false
	for _, r := range folded {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			gap = true
			continue
		}
		if gap && b.Len() > 0 {
			b.WriteRune(Separator)
		}
		gap = false
		b.WriteRune(unicode.ToUpper(r))
	}
	return b.String()
}

// Truncate returns the first limit runes of s. A non-positive limit returns s unchanged.
func Truncate(s string, limit int) string {
	if limit <= 0 {
		return s
	}
	n := 0
	for i := range s {
		if n == limit {
			return s[:i]
		}
		n++
	}
	return s
}
