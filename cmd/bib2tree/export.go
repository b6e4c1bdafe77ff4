// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/bib2tree/internal/bibtex"
	"github.com/pdiddy/bib2tree/internal/tree"
)

var exportCmd = &cobra.Command{
	Use:   "export [source.bib]",
	Short: "Export BibTeX entries as CSL-YAML",
	Long: `Export parses a BibTeX file and writes its entries as a CSL-YAML list,
consumable by Pandoc and reference managers. Output goes to stdout unless
--out is given.`,
	Args: cobra.ExactArgs(1),
	RunE: runExport,
}

func runExport(cmd *cobra.Command, args []string) error {
	source := args[0]
	info, err := os.Stat(source)
	if err != nil || info.IsDir() {
		return fmt.Errorf("bibtex file %s does not exist", source)
	}

	entries, err := bibtex.ParseFile(source)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		return fmt.Errorf("%w in %s", tree.ErrNoEntries, source)
	}

	var w io.Writer = cmd.OutOrStdout()
	if outPath, _ := cmd.Flags().GetString("out"); outPath != "" {
		f, err := os.Create(outPath)
		if err != nil {
			return fmt.Errorf("creating %s: %w", outPath, err)
		}
		defer f.Close()
		w = f
	}

	return tree.ExportCSL(entries, w)
}

func init() {
	exportCmd.Flags().String("out", "", "write CSL-YAML to a file instead of stdout")

	rootCmd.AddCommand(exportCmd)
}
