// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/loregraph/loregraph/internal/wikitext"
)

var parseCmd = &cobra.Command{
	Use:   "parse",
	Short: "Extract infobox templates and links from fetched pages",
	Long: `Parse reads every fetched page from data/raw/, extracts its structured
templates and wikilinks, and writes one record file per page to
data/parsed/. Pages without any structured template are skipped.`,
	RunE: runParse,
}

func init() {
	parseCmd.Flags().String("data-dir", "data", "base data directory (contains raw/, parsed/)")

	rootCmd.AddCommand(parseCmd)
}

func runParse(cmd *cobra.Command, args []string) error {
	dataDir, _ := cmd.Flags().GetString("data-dir")

	summary, err := wikitext.ParseDir(dataDir, os.Stdout)
	if err != nil {
		return err
	}
	if summary.Pages == 0 {
		return fmt.Errorf("no pages parsed; run 'loregraph fetch' first")
	}
	return nil
}
