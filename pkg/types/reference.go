// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types holds shared domain types and per-command configuration.
package types

// Reference summarizes one converted bibliographic record. It is the unit
// stored in the catalog and reported after a conversion run.
type Reference struct {
	// CiteKey is the citation key the output filename was derived from.
	CiteKey string `json:"citekey" yaml:"citekey"`

	// Title is the cleaned entry title ("Untitled" when the source had none).
	Title string `json:"title" yaml:"title"`

	// Authors lists the entry authors in source order.
	Authors []string `json:"authors,omitempty" yaml:"authors,omitempty"`

	// Date is the normalized YYYY-MM-DD date, empty when the entry has no year.
	Date string `json:"date,omitempty" yaml:"date,omitempty"`

	// Path is the .tree file created for the record.
	Path string `json:"path" yaml:"path"`
}
