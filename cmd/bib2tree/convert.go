// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/bib2tree/internal/catalog"
	"github.com/pdiddy/bib2tree/internal/tree"
	"github.com/pdiddy/bib2tree/pkg/types"
)

var convertCmd = &cobra.Command{
	Use:   "convert [source.bib]",
	Short: "Convert BibTeX entries into .tree reference files",
	Long: `Convert parses a BibTeX file and writes one Forester .tree document per
entry into the output directory. Filenames are slugs derived from each
entry's citation key (or its title when no key is given). Existing files
are never replaced unless --overwrite is set; the first collision aborts
the run, leaving files created earlier in the same run on disk.`,
	Args: cobra.ExactArgs(1),
	RunE: runConvert,
}

func runConvert(cmd *cobra.Command, args []string) error {
	source := args[0]
	info, err := os.Stat(source)
	if err != nil || info.IsDir() {
		return fmt.Errorf("bibtex file %s does not exist", source)
	}

	cfg := convertConfig(cmd)
	created, convErr := tree.ConvertFile(source, cfg.OutputDir, cfg.Overwrite, cmd.OutOrStdout())

	// Files written before a mid-batch failure stay on disk, so they are
	// cataloged either way.
	if cfg.CatalogPath != "" && len(created) > 0 {
		if err := recordReferences(cmd.Context(), cfg.CatalogPath, created); err != nil {
			return err
		}
	}

	return convErr
}

func recordReferences(ctx context.Context, path string, refs []types.Reference) error {
	store, err := catalog.Open(path)
	if err != nil {
		return err
	}
	defer store.Close()

	for _, ref := range refs {
		if err := store.Record(ctx, ref); err != nil {
			return err
		}
	}
	return nil
}

// convertConfig resolves convert settings from flags, falling back to
// viper-managed config values when a flag is left at its default.
func convertConfig(cmd *cobra.Command) types.ConvertConfig {
	cfg := types.ConvertConfig{
		OutputDir:   viper.GetString("convert.output_dir"),
		CatalogPath: viper.GetString("catalog.path"),
	}
	if cmd.Flags().Changed("output-dir") {
		cfg.OutputDir, _ = cmd.Flags().GetString("output-dir")
	}
	if cmd.Flags().Changed("catalog") {
		cfg.CatalogPath, _ = cmd.Flags().GetString("catalog")
	}
	cfg.Overwrite, _ = cmd.Flags().GetBool("overwrite")
	return cfg
}

func init() {
	convertCmd.Flags().String("output-dir", types.DefaultOutputDir, "directory where reference tree files are created")
	convertCmd.Flags().Bool("overwrite", false, "overwrite existing reference tree files")
	convertCmd.Flags().String("catalog", "", "SQLite catalog database to record converted references (empty = disabled)")

	rootCmd.AddCommand(convertCmd)
}
