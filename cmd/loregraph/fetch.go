// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/loregraph/loregraph/internal/fetch"
	"github.com/loregraph/loregraph/pkg/types"
)

var fetchCmd = &cobra.Command{
	Use:   "fetch [titles...]",
	Short: "Download wiki pages as wikitext with metadata sidecars",
	Long: `Fetch downloads pages from the Tolkien Gateway MediaWiki API into
data/raw/, one .wikitext file plus a .meta.yaml sidecar per page. Without
arguments the built-in entity list is fetched. Pages already on disk and
redirect stubs are skipped.`,
	RunE: runFetch,
}

func init() {
	fetchCmd.Flags().String("data-dir", "", "base data directory (default data)")
	fetchCmd.Flags().String("endpoint", "", "MediaWiki API endpoint")
	fetchCmd.Flags().Duration("timeout", 0, "HTTP request timeout (default 30s)")
	fetchCmd.Flags().Float64("rps", 0, "request rate limit per second (default 2)")
	fetchCmd.Flags().Int("workers", 0, "concurrent downloads (default 4)")
	fetchCmd.Flags().Int("min-length", 0, "minimum wikitext length; shorter pages are skipped (default 100)")

	rootCmd.AddCommand(fetchCmd)
}

func runFetch(cmd *cobra.Command, args []string) error {
	cfg := types.DefaultConfig().Fetch
	if v, _ := cmd.Flags().GetString("data-dir"); v != "" {
		cfg.DataDir = v
	}
	if v, _ := cmd.Flags().GetString("endpoint"); v != "" {
		cfg.APIEndpoint = v
	}
	if v, _ := cmd.Flags().GetDuration("timeout"); v != 0 {
		cfg.Timeout = v
	}
	if v, _ := cmd.Flags().GetFloat64("rps"); v != 0 {
		cfg.RequestsPerSecond = v
	}
	if v, _ := cmd.Flags().GetInt("workers"); v != 0 {
		cfg.Workers = v
	}
	if v, _ := cmd.Flags().GetInt("min-length"); v != 0 {
		cfg.MinPageLength = v
	}

	titles := args
	if len(titles) == 0 {
		titles = cfg.Pages
	}
	if len(titles) == 0 {
		titles = fetch.DefaultPages
	}

	client := fetch.NewClient(cfg)
	result, err := client.FetchBatch(context.Background(), titles, cfg, os.Stdout)
	if err != nil {
		return err
	}
	if result.HasFailures() {
		return fmt.Errorf("%d page(s) failed to fetch", result.Failed)
	}
	return nil
}
