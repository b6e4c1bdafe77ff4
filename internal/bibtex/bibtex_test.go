// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package bibtex

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want []Entry
	}{
		{
			name: "braced quoted and bare values",
			src: `@article{knuth1984,
				title = {Literate Programming},
				author = "Donald E. Knuth",
				year = 1984,
			}`,
			want: []Entry{{
				Type: "article",
				Key:  "knuth1984",
				Fields: []Field{
					{Name: "title", Value: "Literate Programming"},
					{Name: "author", Value: "Donald E. Knuth"},
					{Name: "year", Value: "1984"},
				},
			}},
		},
		{
			name: "field order and name case are preserved",
			src:  `@misc{k, Zeta = {1}, alpha = {2}, URL = {https://example.org}}`,
			want: []Entry{{
				Type: "misc",
				Key:  "k",
				Fields: []Field{
					{Name: "Zeta", Value: "1"},
					{Name: "alpha", Value: "2"},
					{Name: "URL", Value: "https://example.org"},
				},
			}},
		},
		{
			name: "nested braces stay in the value",
			src:  `@book{b, title = {The {TeX}book}}`,
			want: []Entry{{
				Type:   "book",
				Key:    "b",
				Fields: []Field{{Name: "title", Value: "The {TeX}book"}},
			}},
		},
		{
			name: "multiple entries in source order",
			src: `@article{first, year = {2001}}
				  @article{second, year = {2002}}`,
			want: []Entry{
				{Type: "article", Key: "first", Fields: []Field{{Name: "year", Value: "2001"}}},
				{Type: "article", Key: "second", Fields: []Field{{Name: "year", Value: "2002"}}},
			},
		},
		{
			name: "comment string and preamble blocks are skipped",
			src: `@comment{ignore me, entirely = {yes}}
				  @string{acm = "ACM"}
				  @preamble{"\newcommand{\x}{y}"}
				  @misc{kept, note = {still here}}`,
			want: []Entry{{
				Type:   "misc",
				Key:    "kept",
				Fields: []Field{{Name: "note", Value: "still here"}},
			}},
		},
		{
			name: "parenthesized entry body",
			src:  `@article(paren, year = {1999})`,
			want: []Entry{{
				Type:   "article",
				Key:    "paren",
				Fields: []Field{{Name: "year", Value: "1999"}},
			}},
		},
		{
			name: "entry without citation key",
			src:  `@misc{, title = {Anonymous}}`,
			want: []Entry{{
				Type:   "misc",
				Key:    "",
				Fields: []Field{{Name: "title", Value: "Anonymous"}},
			}},
		},
		{
			name: "duplicate field names both survive",
			src:  `@misc{d, url = {a}, url = {b}}`,
			want: []Entry{{
				Type:   "misc",
				Key:    "d",
				Fields: []Field{{Name: "url", Value: "a"}, {Name: "url", Value: "b"}},
			}},
		},
		{
			name: "stray text between entries is ignored",
			src:  "Some prose.\n@misc{m, note = {n}}\ntrailing prose",
			want: []Entry{{
				Type:   "misc",
				Key:    "m",
				Fields: []Field{{Name: "note", Value: "n"}},
			}},
		},
		{
			name: "empty source",
			src:  "",
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.src)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"unterminated entry", `@article{open, title = {x}`},
		{"unterminated braced value", `@article{a, title = {never closed`},
		{"unterminated quoted value", `@article{a, title = "never closed}`},
		{"missing equals", `@article{a, title {x}}`},
		{"unterminated comment block", `@comment{never closed`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.src)
			assert.Error(t, err)
		})
	}
}

func TestEntryGet(t *testing.T) {
	e := Entry{Fields: []Field{
		{Name: "title", Value: "T"},
		{Name: "URL", Value: "u"},
	}}

	v, ok := e.Get("title")
	assert.True(t, ok)
	assert.Equal(t, "T", v)

	// Lookup is exact-match on case.
	_, ok = e.Get("url")
	assert.False(t, ok)

	_, ok = e.Get("missing")
	assert.False(t, ok)
}

func TestParseFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "refs.bib")
	require.NoError(t, os.WriteFile(path, []byte(`@article{a, year = {2020}}`), 0o644))

	entries, err := ParseFile(path)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "a", entries[0].Key)

	_, err = ParseFile(filepath.Join(dir, "missing.bib"))
	assert.Error(t, err)
}
