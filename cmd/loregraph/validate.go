// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/loregraph/loregraph/internal/export"
	"github.com/loregraph/loregraph/internal/validate"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check the graph against per-class shapes",
	Long: `Validate loads a graph and checks it against per-class shapes: required
and recommended properties, datatypes, and cardinality caps. A JSON report
is written; missing required properties fail the run, warnings pass.`,
	RunE: runValidate,
}

func init() {
	validateCmd.Flags().String("data-dir", "data", "base data directory")
	validateCmd.Flags().String("graph", "", "graph N-Triples file (default <data-dir>/graph/base.nt)")
	validateCmd.Flags().String("shapes", "", "YAML shapes file (default: built-in shapes)")
	validateCmd.Flags().String("report", "", "JSON report file (default <data-dir>/validation_report.json)")

	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	dataDir, _ := cmd.Flags().GetString("data-dir")
	graphFile, _ := cmd.Flags().GetString("graph")
	if graphFile == "" {
		graphFile = filepath.Join(dataDir, "graph", "base.nt")
	}
	reportFile, _ := cmd.Flags().GetString("report")
	if reportFile == "" {
		reportFile = filepath.Join(dataDir, "validation_report.json")
	}

	g, err := export.LoadNTriples(graphFile)
	if err != nil {
		return err
	}

	shapes := validate.DefaultShapes()
	if shapesFile, _ := cmd.Flags().GetString("shapes"); shapesFile != "" {
		if shapes, err = validate.LoadShapes(shapesFile); err != nil {
			return err
		}
	}

	report := validate.Run(g, shapes)
	if err := report.WriteJSON(reportFile); err != nil {
		return err
	}
	report.WriteSummary(os.Stdout)
	fmt.Printf("Report written to %s\n", reportFile)

	if !report.Conforms {
		return fmt.Errorf("%d shape violation(s)", report.Violations)
	}
	return nil
}
