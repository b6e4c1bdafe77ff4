// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package tree

import (
	"io"
	"strconv"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/bib2tree/internal/bibtex"
)

// CSLItem represents a bibliographic entry in CSL (Citation Style Language)
// format. The field names and structure follow the CSL-JSON/CSL-YAML schema
// so that output is consumable by Pandoc and reference managers.
type CSLItem struct {
	ID     string    `yaml:"id"`
	Type   string    `yaml:"type"`
	Title  string    `yaml:"title,omitempty"`
	Author []CSLName `yaml:"author,omitempty"`
	Issued *CSLDate  `yaml:"issued,omitempty"`
	DOI    string    `yaml:"DOI,omitempty"`
	URL    string    `yaml:"URL,omitempty"`
}

// CSLName represents a person's name in CSL format.
type CSLName struct {
	Family  string `yaml:"family,omitempty"`
	Given   string `yaml:"given,omitempty"`
	Literal string `yaml:"literal,omitempty"`
}

// CSLDate represents a date in CSL format using date-parts.
type CSLDate struct {
	DateParts [][]int `yaml:"date-parts"`
}

// cslTypes maps common BibTeX entry types to CSL item types. Unknown types
// fall back to "article".
var cslTypes = map[string]string{
	"article":       "article-journal",
	"book":          "book",
	"inbook":        "chapter",
	"incollection":  "chapter",
	"inproceedings": "paper-conference",
	"conference":    "paper-conference",
	"phdthesis":     "thesis",
	"mastersthesis": "thesis",
	"techreport":    "report",
	"misc":          "document",
	"unpublished":   "manuscript",
}

// ExportCSL writes parsed entries as a CSL-YAML list to w.
func ExportCSL(entries []bibtex.Entry, w io.Writer) error {
	items := make([]CSLItem, len(entries))
	for i, e := range entries {
		items[i] = toCSLItem(e)
	}
	enc := yaml.NewEncoder(w)
	defer enc.Close()
	return enc.Encode(items)
}

// toCSLItem converts one BibTeX entry to a CSLItem.
func toCSLItem(e bibtex.Entry) CSLItem {
	item := CSLItem{
		ID:   CiteKey(e),
		Type: "article",
	}
	if t, ok := cslTypes[e.Type]; ok {
		item.Type = t
	}

	rawTitle, _ := e.Get("title")
	item.Title = Clean(rawTitle)

	rawAuthor, _ := e.Get("author")
	for _, name := range SplitAuthors(rawAuthor) {
		item.Author = append(item.Author, parseAuthorName(name))
	}

	rawYear, _ := e.Get("year")
	if year, err := strconv.Atoi(Clean(rawYear)); err == nil {
		rawMonth, _ := e.Get("month")
		parts := []int{year, ParseMonth(Clean(rawMonth))}
		rawDay, _ := e.Get("day")
		if day, err := strconv.Atoi(Clean(rawDay)); err == nil {
			parts = append(parts, day)
		}
		item.Issued = &CSLDate{DateParts: [][]int{parts}}
	}

	if doi, ok := e.Get("doi"); ok {
		item.DOI = Clean(doi)
	}
	if u, ok := e.Get("url"); ok {
		item.URL = stripURLCommand(Clean(u))
	}

	return item
}

// parseAuthorName splits a name into CSL family/given parts. "Family,
// Given" input splits on the comma; otherwise the last space-separated
// token is the family name. Single-token names use the literal field.
func parseAuthorName(name string) CSLName {
	name = strings.TrimSpace(name)
	if name == "" {
		return CSLName{}
	}
	if idx := strings.Index(name, ","); idx >= 0 {
		return CSLName{
			Family: strings.TrimSpace(name[:idx]),
			Given:  strings.TrimSpace(name[idx+1:]),
		}
	}
	idx := strings.LastIndex(name, " ")
	if idx < 0 {
		return CSLName{Literal: name}
	}
	return CSLName{
		Given:  name[:idx],
		Family: name[idx+1:],
	}
}
