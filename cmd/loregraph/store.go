// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/loregraph/loregraph/internal/export"
	"github.com/loregraph/loregraph/internal/ontology"
	"github.com/loregraph/loregraph/internal/store"
	"github.com/loregraph/loregraph/pkg/types"
)

var storeCmd = &cobra.Command{
	Use:   "store",
	Short: "Index a graph in SQLite for querying and serving",
	Long: `Store ingests an N-Triples graph into a SQLite database with full-text
label search. Subcommands query the indexed graph.`,
	RunE: runStoreIngest,
}

var storeQueryCmd = &cobra.Command{
	Use:   "query",
	Short: "Pattern-match triples in the indexed graph",
	RunE:  runStoreQuery,
}

var storeSearchCmd = &cobra.Command{
	Use:   "search [text]",
	Short: "Full-text search over entity labels",
	RunE:  runStoreSearch,
}

var storeStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Print dataset statistics",
	RunE:  runStoreStats,
}

func init() {
	storeCmd.PersistentFlags().String("db", "data/index/loregraph.db", "SQLite database file")
	storeCmd.PersistentFlags().Int("max-results", 20, "maximum number of query results")

	storeCmd.Flags().String("data-dir", "data", "base data directory")
	storeCmd.Flags().String("graph", "", "input N-Triples file (default <data-dir>/graph/reasoned.nt)")

	storeQueryCmd.Flags().String("s", "", "subject (CURIE or IRI)")
	storeQueryCmd.Flags().String("p", "", "predicate (CURIE or IRI)")
	storeQueryCmd.Flags().String("o", "", "object value")
	storeQueryCmd.Flags().Int("limit", 0, "maximum results (0 = use default)")

	storeSearchCmd.Flags().Int("limit", 0, "maximum results (0 = use default)")

	storeCmd.AddCommand(storeQueryCmd)
	storeCmd.AddCommand(storeSearchCmd)
	storeCmd.AddCommand(storeStatsCmd)

	rootCmd.AddCommand(storeCmd)
}

func openFromFlags(cmd *cobra.Command) (*store.Store, error) {
	dbPath, _ := cmd.Flags().GetString("db")
	maxResults, _ := cmd.Flags().GetInt("max-results")
	return store.Open(types.StoreConfig{DBPath: dbPath, MaxResults: maxResults})
}

func runStoreIngest(cmd *cobra.Command, args []string) error {
	dataDir, _ := cmd.Flags().GetString("data-dir")
	graphFile, _ := cmd.Flags().GetString("graph")
	if graphFile == "" {
		graphFile = filepath.Join(dataDir, "graph", "reasoned.nt")
	}

	g, err := export.LoadNTriples(graphFile)
	if err != nil {
		return err
	}

	st, err := openFromFlags(cmd)
	if err != nil {
		return err
	}
	defer st.Close()

	summary, err := st.Ingest(context.Background(), g)
	if err != nil {
		return err
	}
	fmt.Printf("Ingested %d triple(s), %d duplicate(s)\n", summary.Inserted, summary.Duplicates)
	return nil
}

func runStoreQuery(cmd *cobra.Command, args []string) error {
	st, err := openFromFlags(cmd)
	if err != nil {
		return err
	}
	defer st.Close()

	s, _ := cmd.Flags().GetString("s")
	p, _ := cmd.Flags().GetString("p")
	o, _ := cmd.Flags().GetString("o")
	limit, _ := cmd.Flags().GetInt("limit")
	if s == "" && p == "" && o == "" {
		return fmt.Errorf("provide at least one of --s, --p, --o")
	}

	sts, err := st.Match(context.Background(), expand(s), expand(p), expand(o), limit)
	if err != nil {
		return err
	}
	for _, triple := range sts {
		fmt.Println(triple)
	}
	fmt.Printf("\n%d result(s)\n", len(sts))
	return nil
}

func runStoreSearch(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("provide search text")
	}
	st, err := openFromFlags(cmd)
	if err != nil {
		return err
	}
	defer st.Close()

	limit, _ := cmd.Flags().GetInt("limit")
	hits, err := st.SearchLabels(context.Background(), args[0], limit)
	if err != nil {
		return err
	}
	for _, hit := range hits {
		fmt.Printf("%-40s %s\n", hit.Label, hit.Entity)
	}
	fmt.Printf("\n%d result(s)\n", len(hits))
	return nil
}

func runStoreStats(cmd *cobra.Command, args []string) error {
	st, err := openFromFlags(cmd)
	if err != nil {
		return err
	}
	defer st.Close()

	stats, err := st.Stats(context.Background())
	if err != nil {
		return err
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(stats)
}

// expand resolves CURIEs in query flags against the known prefixes.
func expand(curie string) string {
	if curie == "" {
		return ""
	}
	return ontology.Expand(curie)
}
