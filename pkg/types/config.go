// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

const (
	// DefaultOutputDir is where reference trees are created when no
	// directory is configured.
	DefaultOutputDir = "trees/references"

	// DefaultTreeDir is the directory scanned by the sequential allocator.
	DefaultTreeDir = "trees"
)

// ConvertConfig holds settings for the convert command.
type ConvertConfig struct {
	// OutputDir is the directory where .tree files are written.
	OutputDir string `json:"output_dir" yaml:"output_dir"`

	// Overwrite allows replacing existing .tree files.
	Overwrite bool `json:"overwrite" yaml:"overwrite"`

	// CatalogPath is the optional SQLite catalog database. Empty disables
	// catalog recording.
	CatalogPath string `json:"catalog_path,omitempty" yaml:"catalog_path,omitempty"`
}

// AllocatorConfig holds settings for the new command.
type AllocatorConfig struct {
	// TreeDir is the directory holding sequentially numbered .tree files.
	TreeDir string `json:"tree_dir" yaml:"tree_dir"`
}
