// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package tree

import (
	"fmt"
	"strings"

	"github.com/pdiddy/bib2tree/internal/bibtex"
)

// Taxon is the fixed classification line every reference tree carries.
const Taxon = "Reference"

// coreFields are rendered by dedicated commands and excluded from metadata
// projection. The match is exact: the source schema uses lowercase names
// for these fields, and differently-cased variants are deliberately kept.
var coreFields = map[string]bool{
	"title": true, "author": true, "year": true, "month": true, "day": true,
}

// urlFields are renamed to "external" in the output, compared
// case-insensitively.
var urlFields = map[string]bool{
	"url": true, "howpublished": true, "external": true,
}

// Meta is one projected metadata line of an output document.
type Meta struct {
	Key   string
	Value string
}

// MetaPairs projects the non-core fields of an entry onto metadata lines,
// in source field order. Empty values are dropped, URL-bearing fields are
// renamed to "external" with any \url{...} wrapper removed, and literal
// '%' characters are escaped. Distinct fields that alias to the same key
// each keep their own line; no deduplication happens here.
func MetaPairs(e bibtex.Entry) []Meta {
	var pairs []Meta
	for _, f := range e.Fields {
		if coreFields[f.Name] {
			continue
		}
		value := Clean(f.Value)
		if value == "" {
			continue
		}
		key := f.Name
		if urlFields[strings.ToLower(f.Name)] {
			key = "external"
			value = stripURLCommand(value)
		}
		pairs = append(pairs, Meta{Key: key, Value: escapeMetaValue(value)})
	}
	return pairs
}

// stripURLCommand removes a literal \url{...} wrapper around a value.
func stripURLCommand(value string) string {
	trimmed := strings.TrimSpace(value)
	if strings.HasPrefix(trimmed, `\url{`) && strings.HasSuffix(trimmed, "}") {
		return strings.TrimSpace(trimmed[len(`\url{`) : len(trimmed)-1])
	}
	return trimmed
}

// escapeMetaValue protects the Forester comment character.
func escapeMetaValue(value string) string {
	return strings.ReplaceAll(value, "%", `\%`)
}

// BuildDocument renders the .tree body for one entry: title, taxon, then
// author, date, and metadata lines when the source data yields them, ending
// with a single trailing newline.
func BuildDocument(e bibtex.Entry) string {
	rawTitle, _ := e.Get("title")
	title := Clean(rawTitle)
	if title == "" {
		title = "Untitled"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "\\title{%s}\n", title)
	fmt.Fprintf(&b, "\\taxon{%s}\n", Taxon)

	rawAuthor, _ := e.Get("author")
	if authors, ok := FormatAuthors(rawAuthor); ok {
		fmt.Fprintf(&b, "\\author/literal{%s}\n", authors)
	}

	if date, ok := FormatDate(e); ok {
		fmt.Fprintf(&b, "\\date{%s}\n", date)
	}

	for _, m := range MetaPairs(e) {
		fmt.Fprintf(&b, "\\meta{%s}{%s}\n", m.Key, m.Value)
	}

	return b.String()
}
