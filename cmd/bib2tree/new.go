// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/bib2tree/internal/tree"
	"github.com/pdiddy/bib2tree/pkg/types"
)

var newCmd = &cobra.Command{
	Use:   "new [tree-dir]",
	Short: "Create the next sequentially numbered .tree file",
	Long: `New scans a tree directory for 4-character base-36 filenames, picks the
next unused one, and creates it seeded with today's \date stamp and the
base-macros import.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runNew,
}

func runNew(cmd *cobra.Command, args []string) error {
	cfg := types.AllocatorConfig{TreeDir: viper.GetString("new.tree_dir")}
	if len(args) > 0 {
		cfg.TreeDir = args[0]
	}

	path, err := tree.AllocateTree(cfg.TreeDir, time.Now())
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Created %s\n", path)
	return nil
}

func init() {
	rootCmd.AddCommand(newCmd)
}
