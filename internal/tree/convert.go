// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package tree

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/pdiddy/bib2tree/internal/bibtex"
	"github.com/pdiddy/bib2tree/pkg/types"
)

// TreeExt is the file extension of Forester documents.
const TreeExt = ".tree"

// ErrNoEntries reports a source that parsed to zero entries.
var ErrNoEntries = errors.New("no bibtex entries found")

// ConflictError reports a target file that already exists while overwrite
// is disabled. Files created earlier in the same run remain on disk.
type ConflictError struct {
	Path string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("refusing to overwrite existing file %s (use --overwrite to replace)", e.Path)
}

// ConvertFile parses a .bib file and converts every entry, in source order,
// into a .tree document under outputDir. One status line per created file
// is written to w. It fails with ErrNoEntries when the source has no
// entries and with a ConflictError on the first pre-existing target; in the
// conflict case the references created before the failure are returned
// alongside the error, without rollback.
func ConvertFile(source, outputDir string, overwrite bool, w io.Writer) ([]types.Reference, error) {
	entries, err := bibtex.ParseFile(source)
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, fmt.Errorf("%w in %s", ErrNoEntries, source)
	}
	return Convert(entries, outputDir, overwrite, w)
}

// Convert writes one .tree document per entry and returns a summary per
// created file, in entry order.
func Convert(entries []bibtex.Entry, outputDir string, overwrite bool, w io.Writer) ([]types.Reference, error) {
	var created []types.Reference
	for _, e := range entries {
		citekey := CiteKey(e)
		target := filepath.Join(outputDir, Slugify(citekey)+TreeExt)

		if !overwrite {
			if _, err := os.Stat(target); err == nil {
				return created, &ConflictError{Path: target}
			}
		}
		if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
			return created, fmt.Errorf("creating output directory: %w", err)
		}
		if err := os.WriteFile(target, []byte(BuildDocument(e)), 0o644); err != nil {
			return created, fmt.Errorf("writing %s: %w", target, err)
		}

		created = append(created, Summarize(e, target))
		fmt.Fprintf(w, "Created %s\n", target)
	}
	return created, nil
}

// CiteKey returns the entry's citation key, falling back to a slug of the
// title (or the literal "reference") when the source gives none.
func CiteKey(e bibtex.Entry) string {
	if e.Key != "" {
		return e.Key
	}
	title, ok := e.Get("title")
	if !ok || title == "" {
		title = "reference"
	}
	return Slugify(title)
}

// Summarize builds the catalog record for a converted entry.
func Summarize(e bibtex.Entry, path string) types.Reference {
	ref := types.Reference{
		CiteKey: CiteKey(e),
		Title:   "Untitled",
		Path:    path,
	}
	rawTitle, _ := e.Get("title")
	if title := Clean(rawTitle); title != "" {
		ref.Title = title
	}
	rawAuthor, _ := e.Get("author")
	ref.Authors = SplitAuthors(rawAuthor)
	if date, ok := FormatDate(e); ok {
		ref.Date = date
	}
	return ref
}
