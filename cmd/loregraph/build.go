// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/loregraph/loregraph/internal/build"
	"github.com/loregraph/loregraph/internal/export"
	"github.com/loregraph/loregraph/pkg/types"
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Turn parsed records into the initial triple graph",
	Long: `Build reads parsed record files from data/parsed/, mints one entity per
infobox with typed properties and provenance, and writes the initial graph
as N-Triples to data/graph/base.nt.`,
	RunE: runBuild,
}

func init() {
	buildCmd.Flags().String("data-dir", "data", "base data directory (contains parsed/, graph/)")
	buildCmd.Flags().String("glob", "", "doublestar glob selecting record files (default **/*.yaml)")
	buildCmd.Flags().Int("max-links", 0, "wikilinks per page that become mention triples (default 10)")
	buildCmd.Flags().String("out", "", "output N-Triples file (default <data-dir>/graph/base.nt)")

	rootCmd.AddCommand(buildCmd)
}

func runBuild(cmd *cobra.Command, args []string) error {
	cfg := types.DefaultConfig().Build
	if v, _ := cmd.Flags().GetString("data-dir"); v != "" {
		cfg.DataDir = v
	}
	if v, _ := cmd.Flags().GetString("glob"); v != "" {
		cfg.RecordGlob = v
	}
	if v, _ := cmd.Flags().GetInt("max-links"); v != 0 {
		cfg.MaxLinks = v
	}
	out, _ := cmd.Flags().GetString("out")
	if out == "" {
		out = filepath.Join(cfg.DataDir, "graph", "base.nt")
	}

	records, err := build.LoadRecords(cfg.DataDir, cfg.RecordGlob)
	if err != nil {
		return err
	}
	if len(records) == 0 {
		return fmt.Errorf("no parsed records found; run 'loregraph parse' first")
	}

	g, _ := build.Build(records, cfg, os.Stdout)
	if err := export.SaveNTriples(out, g); err != nil {
		return err
	}
	fmt.Printf("Wrote %s\n", out)
	return nil
}
