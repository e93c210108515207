// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the loregraph CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the loregraph CLI.
var rootCmd = &cobra.Command{
	Use:   "loregraph",
	Short: "Build and query a Middle-earth knowledge graph",
	Long: `loregraph builds an RDF-style knowledge graph from Tolkien Gateway wiki
pages and enriches it with forward-chaining inference.

Each pipeline stage is a subcommand: fetch downloads pages, parse extracts
infobox templates, build mints triples, validate checks shapes, reason runs
the inference rules to a fixpoint, store indexes the graph in SQLite, export
serializes it, and serve exposes it over HTTP.`,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./loregraph.yaml or ~/.config/loregraph/config.yaml)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("loregraph")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "loregraph"))
		}
	}

	viper.SetEnvPrefix("LOREGRAPH")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
