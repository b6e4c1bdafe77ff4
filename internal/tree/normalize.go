// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package tree converts parsed BibTeX entries into Forester .tree reference
// documents. Field normalization is best-effort by design: bibliographic
// metadata is noisy, so every function here is total and degrades to a
// documented default instead of returning an error.
package tree

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pdiddy/bib2tree/internal/bibtex"
)

// Clean collapses whitespace runs (including line breaks) into single
// spaces, trims the ends, and strips enclosing brace layers. Clean is
// idempotent.
func Clean(s string) string {
	return stripBraces(strings.Join(strings.Fields(s), " "))
}

// stripBraces removes layers of enclosing {...} until the value no longer
// starts with '{' and ends with '}', or a single character remains.
func stripBraces(s string) string {
	s = strings.TrimSpace(s)
	for len(s) > 1 && s[0] == '{' && s[len(s)-1] == '}' {
		s = strings.TrimSpace(s[1 : len(s)-1])
	}
	return s
}

// monthNames maps three-letter English month prefixes to month numbers.
var monthNames = map[string]int{
	"jan": 1, "feb": 2, "mar": 3, "apr": 4, "may": 5, "jun": 6,
	"jul": 7, "aug": 8, "sep": 9, "oct": 10, "nov": 11, "dec": 12,
}

// ParseMonth interprets a raw month field as a number in [1,12] or an
// English month name, matched on its first three letters ("September" and
// "Sept" both resolve via "sep"). Unrecognized input yields 1.
func ParseMonth(raw string) int {
	m := strings.ToLower(strings.TrimSpace(raw))
	if m == "" {
		return 1
	}
	if n, err := strconv.Atoi(m); err == nil && n >= 1 && n <= 12 {
		return n
	}
	key := m
	if len(key) > 3 {
		key = key[:3]
	}
	if n, ok := monthNames[key]; ok {
		return n
	}
	return 1
}

// FormatDate renders the entry date as YYYY-MM-DD. The month defaults to 1
// when absent or unrecognized; the day defaults to 1 when absent or
// non-numeric and is clamped to [1,31] with no days-per-month awareness.
// ok is false when the entry has no year.
func FormatDate(e bibtex.Entry) (date string, ok bool) {
	rawYear, _ := e.Get("year")
	year := Clean(rawYear)
	if year == "" {
		return "", false
	}
	// Numeric years are zero-padded to four digits; anything else passes
	// through verbatim rather than failing.
	if n, err := strconv.Atoi(year); err == nil {
		year = fmt.Sprintf("%04d", n)
	}

	rawMonth, _ := e.Get("month")
	month := ParseMonth(Clean(rawMonth))

	day := 1
	if rawDay, _ := e.Get("day"); Clean(rawDay) != "" {
		if n, err := strconv.Atoi(Clean(rawDay)); err == nil {
			day = n
		}
	}
	if day < 1 {
		day = 1
	}
	if day > 31 {
		day = 31
	}

	return fmt.Sprintf("%s-%02d-%02d", year, month, day), true
}

// FormatAuthors splits a raw author field on the literal " and " separator
// and rejoins the names with ", ". ok is false when no names survive.
func FormatAuthors(raw string) (authors string, ok bool) {
	names := SplitAuthors(raw)
	if len(names) == 0 {
		return "", false
	}
	return strings.Join(names, ", "), true
}

// SplitAuthors returns the individual author names of a raw author field,
// in source order, with empty fragments dropped.
func SplitAuthors(raw string) []string {
	cleaned := Clean(raw)
	if cleaned == "" {
		return nil
	}
	var names []string
	for _, part := range strings.Split(cleaned, " and ") {
		if part = strings.TrimSpace(part); part != "" {
			names = append(names, part)
		}
	}
	return names
}

// Slugify derives a filesystem-safe identifier: lowercase, braces stripped,
// every run of characters outside [a-z0-9] collapsed to a single hyphen,
// hyphens trimmed from the ends. Input with no alphanumeric content yields
// the literal "reference".
func Slugify(name string) string {
	name = stripBraces(strings.ToLower(strings.TrimSpace(name)))
	var b strings.Builder
	pending := false
	for _, ch := range name {
		if (ch >= 'a' && ch <= 'z') || (ch >= '0' && ch <= '9') {
			if pending && b.Len() > 0 {
				b.WriteByte('-')
			}
			pending = false
			b.WriteRune(ch)
		} else {
			pending = true
		}
	}
	if b.Len() == 0 {
		return "reference"
	}
	return b.String()
}
