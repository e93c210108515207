// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/loregraph/loregraph/internal/export"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Serialize a graph as Turtle or N-Triples",
	Long: `Export reads an N-Triples graph and writes it in the requested format.
Output goes to --out, or stdout when no file is given. Serialization is
deterministic: the same graph always produces the same bytes.`,
	RunE: runExport,
}

func init() {
	exportCmd.Flags().String("data-dir", "data", "base data directory")
	exportCmd.Flags().String("graph", "", "input N-Triples file (default <data-dir>/graph/reasoned.nt)")
	exportCmd.Flags().String("format", "turtle", "output format: turtle or ntriples")
	exportCmd.Flags().String("out", "", "output file (default: stdout)")

	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	dataDir, _ := cmd.Flags().GetString("data-dir")
	graphFile, _ := cmd.Flags().GetString("graph")
	if graphFile == "" {
		graphFile = filepath.Join(dataDir, "graph", "reasoned.nt")
	}

	g, err := export.LoadNTriples(graphFile)
	if err != nil {
		return err
	}

	out := os.Stdout
	if path, _ := cmd.Flags().GetString("out"); path != "" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return fmt.Errorf("creating directory for %s: %w", path, err)
		}
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("creating %s: %w", path, err)
		}
		defer f.Close()
		out = f
	}

	format, _ := cmd.Flags().GetString("format")
	switch format {
	case "turtle", "ttl":
		return export.WriteTurtle(out, g)
	case "ntriples", "nt":
		return export.WriteNTriples(out, g)
	default:
		return fmt.Errorf("unsupported format %q: use turtle or ntriples", format)
	}
}
