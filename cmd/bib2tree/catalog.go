// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/bib2tree/internal/catalog"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Inspect the catalog of converted references",
}

var catalogListCmd = &cobra.Command{
	Use:   "list",
	Short: "List cataloged references in citekey order",
	RunE:  runCatalogList,
}

func runCatalogList(cmd *cobra.Command, args []string) error {
	path, _ := cmd.Flags().GetString("catalog")
	if path == "" {
		path = viper.GetString("catalog.path")
	}
	if path == "" {
		return fmt.Errorf("no catalog configured: pass --catalog or set catalog.path")
	}

	store, err := catalog.Open(path)
	if err != nil {
		return err
	}
	defer store.Close()

	refs, err := store.List(cmd.Context())
	if err != nil {
		return err
	}
	if len(refs) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "Catalog is empty.")
		return nil
	}

	for _, ref := range refs {
		line := ref.CiteKey + "  " + ref.Title
		if len(ref.Authors) > 0 {
			line += "  (" + strings.Join(ref.Authors, ", ") + ")"
		}
		if ref.Date != "" {
			line += "  " + ref.Date
		}
		fmt.Fprintln(cmd.OutOrStdout(), line)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "\n%d references\n", len(refs))
	return nil
}

func init() {
	catalogListCmd.Flags().String("catalog", "", "SQLite catalog database (default: catalog.path from config)")

	catalogCmd.AddCommand(catalogListCmd)
	rootCmd.AddCommand(catalogCmd)
}
