// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package bibtex reads BibTeX entries into ordered field lists.
//
// The reader is deliberately small: it understands @type{key, name = value}
// entries with braced, quoted, and bare values, and skips @comment,
// @string, and @preamble blocks. Full BibTeX grammar (string concatenation,
// macro expansion, cross-references) is out of scope. Fields keep their
// source order and the original case of their names; downstream metadata
// rendering depends on both.
package bibtex

import (
	"fmt"
	"os"
	"strings"
)

// Field is one name/value pair from an entry, in source order.
type Field struct {
	Name  string
	Value string
}

// Entry is one parsed BibTeX entry. The citation key and entry type are
// carried out of band; Fields holds only the real fields of the entry.
type Entry struct {
	// Type is the lowercased entry type, e.g. "article".
	Type string

	// Key is the citation key from @type{key, ...}; may be empty.
	Key string

	// Fields lists the entry fields in the order they appear in the source.
	Fields []Field
}

// Get returns the value of the first field whose name matches exactly.
func (e Entry) Get(name string) (string, bool) {
	for _, f := range e.Fields {
		if f.Name == name {
			return f.Value, true
		}
	}
	return "", false
}

// ParseFile reads and parses a .bib file.
func ParseFile(path string) ([]Entry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	entries, err := Parse(string(data))
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return entries, nil
}

// Parse extracts all entries from BibTeX source text. Text between entries
// is ignored, as are @comment, @string, and @preamble blocks.
func Parse(src string) ([]Entry, error) {
	p := &parser{src: src}
	var entries []Entry
	for p.seekAt() {
		p.pos++
		typ := strings.ToLower(p.ident())
		if typ == "" {
			continue
		}
		p.skipSpace()
		switch typ {
		case "comment", "string", "preamble":
			if err := p.skipGroup(); err != nil {
				return nil, err
			}
			continue
		}
		e, err := p.entry(typ)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, nil
}

type parser struct {
	src string
	pos int
}

// seekAt advances to the next '@' and reports whether one was found.
func (p *parser) seekAt() bool {
	for p.pos < len(p.src) {
		if p.src[p.pos] == '@' {
			return true
		}
		p.pos++
	}
	return false
}

// ident consumes a run of ASCII letters.
func (p *parser) ident() string {
	start := p.pos
	for p.pos < len(p.src) && isLetter(p.src[p.pos]) {
		p.pos++
	}
	return p.src[start:p.pos]
}

func (p *parser) skipSpace() {
	for p.pos < len(p.src) && isSpace(p.src[p.pos]) {
		p.pos++
	}
}

// skipGroup consumes a balanced {...} or (...) block.
func (p *parser) skipGroup() error {
	if p.pos >= len(p.src) {
		return fmt.Errorf("bibtex: unexpected end of input at offset %d", p.pos)
	}
	open := p.src[p.pos]
	if open != '{' && open != '(' {
		return fmt.Errorf("bibtex: expected block at offset %d", p.pos)
	}
	close := byte('}')
	if open == '(' {
		close = ')'
	}
	depth := 0
	for ; p.pos < len(p.src); p.pos++ {
		switch p.src[p.pos] {
		case open:
			depth++
		case close:
			depth--
			if depth == 0 {
				p.pos++
				return nil
			}
		}
	}
	return fmt.Errorf("bibtex: unterminated block at offset %d", p.pos)
}

// entry parses the body of @typ{key, name = value, ...}.
func (p *parser) entry(typ string) (Entry, error) {
	if p.pos >= len(p.src) || (p.src[p.pos] != '{' && p.src[p.pos] != '(') {
		return Entry{}, fmt.Errorf("bibtex: expected '{' after @%s at offset %d", typ, p.pos)
	}
	close := byte('}')
	if p.src[p.pos] == '(' {
		close = ')'
	}
	p.pos++

	e := Entry{Type: typ}
	p.skipSpace()

	// The citation key runs to the first comma or the closing delimiter.
	start := p.pos
	for p.pos < len(p.src) && p.src[p.pos] != ',' && p.src[p.pos] != close {
		p.pos++
	}
	e.Key = strings.TrimSpace(p.src[start:p.pos])

	for {
		p.skipSpace()
		if p.pos >= len(p.src) {
			return Entry{}, fmt.Errorf("bibtex: unterminated entry %q", e.Key)
		}
		switch p.src[p.pos] {
		case ',':
			p.pos++
			continue
		case close:
			p.pos++
			return e, nil
		}

		name := p.fieldName(close)
		p.skipSpace()
		if p.pos >= len(p.src) || p.src[p.pos] != '=' {
			return Entry{}, fmt.Errorf("bibtex: malformed field %q in entry %q", name, e.Key)
		}
		p.pos++
		p.skipSpace()
		value, err := p.value(close)
		if err != nil {
			return Entry{}, fmt.Errorf("bibtex: entry %q: %w", e.Key, err)
		}
		e.Fields = append(e.Fields, Field{Name: name, Value: value})
	}
}

// fieldName consumes characters up to '=', a separator, or whitespace.
func (p *parser) fieldName(close byte) string {
	start := p.pos
	for p.pos < len(p.src) {
		c := p.src[p.pos]
		if c == '=' || c == ',' || c == close || isSpace(c) {
			break
		}
		p.pos++
	}
	return p.src[start:p.pos]
}

// value consumes a braced, quoted, or bare field value.
func (p *parser) value(close byte) (string, error) {
	if p.pos >= len(p.src) {
		return "", fmt.Errorf("missing value at offset %d", p.pos)
	}
	switch p.src[p.pos] {
	case '{':
		return p.bracedValue()
	case '"':
		return p.quotedValue()
	}
	// Bare value: runs to the next comma or the closing delimiter.
	start := p.pos
	for p.pos < len(p.src) && p.src[p.pos] != ',' && p.src[p.pos] != close {
		p.pos++
	}
	if p.pos >= len(p.src) {
		return "", fmt.Errorf("unterminated value at offset %d", start)
	}
	return strings.TrimSpace(p.src[start:p.pos]), nil
}

// bracedValue consumes {...} with balanced nesting and returns the inner text.
func (p *parser) bracedValue() (string, error) {
	start := p.pos + 1
	depth := 0
	for ; p.pos < len(p.src); p.pos++ {
		switch p.src[p.pos] {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				inner := p.src[start:p.pos]
				p.pos++
				return inner, nil
			}
		}
	}
	return "", fmt.Errorf("unterminated braced value at offset %d", start)
}

// quotedValue consumes "..." and returns the inner text.
func (p *parser) quotedValue() (string, error) {
	start := p.pos + 1
	for p.pos = start; p.pos < len(p.src); p.pos++ {
		if p.src[p.pos] == '"' {
			inner := p.src[start:p.pos]
			p.pos++
			return inner, nil
		}
	}
	return "", fmt.Errorf("unterminated quoted value at offset %d", start)
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}
