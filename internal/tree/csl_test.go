// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package tree

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/bib2tree/internal/bibtex"
)

func TestExportCSL(t *testing.T) {
	entries := []bibtex.Entry{
		{
			Type: "article",
			Key:  "doe2021",
			Fields: []bibtex.Field{
				{Name: "title", Value: "{A Study of Things}"},
				{Name: "author", Value: "Jane Doe and Smith, John"},
				{Name: "year", Value: "2021"},
				{Name: "month", Value: "sep"},
				{Name: "day", Value: "14"},
				{Name: "doi", Value: "10.1000/xyz123"},
				{Name: "url", Value: `\url{https://example.org/p}`},
			},
		},
		{
			Type: "inproceedings",
			Key:  "conf-paper",
			Fields: []bibtex.Field{
				{Name: "title", Value: "Conference Paper"},
				{Name: "author", Value: "Plato"},
			},
		},
	}

	var buf bytes.Buffer
	require.NoError(t, ExportCSL(entries, &buf))

	var items []CSLItem
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &items))
	require.Len(t, items, 2)

	first := items[0]
	assert.Equal(t, "doe2021", first.ID)
	assert.Equal(t, "article-journal", first.Type)
	assert.Equal(t, "A Study of Things", first.Title)
	require.Len(t, first.Author, 2)
	assert.Equal(t, CSLName{Given: "Jane", Family: "Doe"}, first.Author[0])
	assert.Equal(t, CSLName{Family: "Smith", Given: "John"}, first.Author[1])
	require.NotNil(t, first.Issued)
	assert.Equal(t, [][]int{{2021, 9, 14}}, first.Issued.DateParts)
	assert.Equal(t, "10.1000/xyz123", first.DOI)
	assert.Equal(t, "https://example.org/p", first.URL)

	second := items[1]
	assert.Equal(t, "paper-conference", second.Type)
	assert.Equal(t, []CSLName{{Literal: "Plato"}}, second.Author)
	assert.Nil(t, second.Issued)
}

func TestToCSLItemUnknownType(t *testing.T) {
	item := toCSLItem(bibtex.Entry{Type: "patent", Key: "p1"})
	assert.Equal(t, "article", item.Type)
}

func TestParseAuthorName(t *testing.T) {
	tests := []struct {
		in   string
		want CSLName
	}{
		{"Jane Doe", CSLName{Given: "Jane", Family: "Doe"}},
		{"Doe, Jane", CSLName{Family: "Doe", Given: "Jane"}},
		{"Jean-Luc de Vries", CSLName{Given: "Jean-Luc de", Family: "Vries"}},
		{"Plato", CSLName{Literal: "Plato"}},
		{"", CSLName{}},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, parseAuthorName(tt.in), "parseAuthorName(%q)", tt.in)
	}
}
