// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the bib2tree CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/bib2tree/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the bib2tree CLI.
var rootCmd = &cobra.Command{
	Use:   "bib2tree",
	Short: "Convert BibTeX libraries into Forester reference trees",
	Long: `bib2tree turns BibTeX entries into Forester .tree reference documents,
one file per entry, with normalized titles, author lists, dates, and
metadata. It also allocates sequentially numbered note trees and keeps an
optional SQLite catalog of converted references.`,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./bib2tree.yaml or ~/.config/bib2tree/config.yaml)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("bib2tree")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "bib2tree"))
		}
	}

	viper.SetEnvPrefix("BIB2TREE")
	viper.AutomaticEnv()

	viper.SetDefault("convert.output_dir", types.DefaultOutputDir)
	viper.SetDefault("new.tree_dir", types.DefaultTreeDir)
	viper.SetDefault("catalog.path", "")

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
