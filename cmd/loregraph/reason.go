// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/loregraph/loregraph/internal/export"
	"github.com/loregraph/loregraph/internal/ontology"
	"github.com/loregraph/loregraph/internal/reason"
	"github.com/loregraph/loregraph/internal/store"
	"github.com/loregraph/loregraph/pkg/types"
)

var reasonCmd = &cobra.Command{
	Use:   "reason",
	Short: "Run the inference rules to a fixpoint",
	Long: `Reason loads the base graph and applies the rule catalogue — class and
property subsumption, symmetric and inverse closure, sibling inference,
group memberships, place connections, and race groups — until a pass adds
nothing or the iteration cap is reached. The enriched graph is written to
data/graph/reasoned.nt.`,
	RunE: runReason,
}

func init() {
	reasonCmd.Flags().String("data-dir", "data", "base data directory")
	reasonCmd.Flags().String("graph", "", "input N-Triples file (default <data-dir>/graph/base.nt)")
	reasonCmd.Flags().String("out", "", "output N-Triples file (default <data-dir>/graph/reasoned.nt)")
	reasonCmd.Flags().String("schema", "", "YAML schema file (default: built-in Middle-earth schema)")
	reasonCmd.Flags().Int("max-iterations", 0, "iteration cap (default 10)")
	reasonCmd.Flags().Int("workers", 0, "concurrent rule evaluation within a pass (default 1)")
	reasonCmd.Flags().String("db", "", "record the run in this SQLite database")

	rootCmd.AddCommand(reasonCmd)
}

func runReason(cmd *cobra.Command, args []string) error {
	dataDir, _ := cmd.Flags().GetString("data-dir")
	graphFile, _ := cmd.Flags().GetString("graph")
	if graphFile == "" {
		graphFile = filepath.Join(dataDir, "graph", "base.nt")
	}
	out, _ := cmd.Flags().GetString("out")
	if out == "" {
		out = filepath.Join(dataDir, "graph", "reasoned.nt")
	}

	g, err := export.LoadNTriples(graphFile)
	if err != nil {
		return err
	}

	registry := ontology.DefaultRegistry()
	if schemaFile, _ := cmd.Flags().GetString("schema"); schemaFile != "" {
		if registry, err = ontology.LoadFile(schemaFile); err != nil {
			return err
		}
	}

	cfg := reason.DefaultConfig()
	if v, _ := cmd.Flags().GetInt("max-iterations"); v != 0 {
		cfg.MaxIterations = v
	}
	if v, _ := cmd.Flags().GetInt("workers"); v != 0 {
		cfg.Workers = v
	}

	before := g.Len()
	result, err := reason.NewDriver(cfg).Run(g, registry)
	if err != nil {
		return err
	}

	fmt.Printf("Run %s %s after %d pass(es): %d -> %d statements (+%d)\n",
		result.RunID, result.State, result.Iterations, before, g.Len(), result.Added)
	result.Stats.WriteSummary(os.Stdout)
	if result.Capped() {
		fmt.Println("warning: iteration cap reached before convergence")
	}

	if err := export.SaveNTriples(out, g); err != nil {
		return err
	}
	fmt.Printf("Wrote %s\n", out)

	if dbPath, _ := cmd.Flags().GetString("db"); dbPath != "" {
		if err := recordRun(dbPath, result, g.Len()); err != nil {
			return err
		}
	}
	return nil
}

func recordRun(dbPath string, result *reason.Result, total int) error {
	st, err := store.Open(types.StoreConfig{DBPath: dbPath})
	if err != nil {
		return err
	}
	defer st.Close()

	_, err = st.RecordRun(context.Background(), store.RunRecord{
		ID:         result.RunID,
		State:      result.State.String(),
		Iterations: result.Iterations,
		Added:      result.Added,
		Total:      total,
	})
	return err
}
