// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/loregraph/loregraph/internal/graph"
	"github.com/loregraph/loregraph/internal/ontology"
	"github.com/loregraph/loregraph/pkg/types"
)

func openStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(types.StoreConfig{
		DBPath:     filepath.Join(t.TempDir(), "index", "loregraph.db"),
		MaxResults: 20,
	})
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func testGraph() *graph.Graph {
	g := graph.New()
	frodo := ontology.Res("Frodo_Baggins")
	sam := ontology.Res("Samwise_Gamgee")
	shire := ontology.Res("The_Shire")
	g.InsertIfAbsent(graph.Statement{Subject: frodo, Predicate: ontology.Type, Object: graph.IRI(ontology.Person)})
	g.InsertIfAbsent(graph.Statement{Subject: frodo, Predicate: ontology.Label, Object: graph.LangText("Frodo Baggins", "en")})
	g.InsertIfAbsent(graph.Statement{Subject: sam, Predicate: ontology.Type, Object: graph.IRI(ontology.Person)})
	g.InsertIfAbsent(graph.Statement{Subject: sam, Predicate: ontology.Label, Object: graph.LangText("Samwise Gamgee", "en")})
	g.InsertIfAbsent(graph.Statement{Subject: shire, Predicate: ontology.Type, Object: graph.IRI(ontology.Place)})
	g.InsertIfAbsent(graph.Statement{Subject: shire, Predicate: ontology.Label, Object: graph.LangText("The Shire", "en")})
	g.InsertIfAbsent(graph.Statement{Subject: frodo, Predicate: ontology.BirthPlace, Object: graph.IRI(shire)})
	return g
}

func TestIngest(t *testing.T) {
	s := openStore(t)
	ctx := context.Background()

	summary, err := s.Ingest(ctx, testGraph())
	require.NoError(t, err)
	assert.Equal(t, 7, summary.Inserted)
	assert.Zero(t, summary.Duplicates)

	// A second ingest of the same graph is all duplicates.
	again, err := s.Ingest(ctx, testGraph())
	require.NoError(t, err)
	assert.Zero(t, again.Inserted)
	assert.Equal(t, 7, again.Duplicates)
}

func TestMatch(t *testing.T) {
	s := openStore(t)
	ctx := context.Background()
	_, err := s.Ingest(ctx, testGraph())
	require.NoError(t, err)

	frodo := string(ontology.Res("Frodo_Baggins"))

	bySubject, err := s.Match(ctx, frodo, "", "", 0)
	require.NoError(t, err)
	assert.Len(t, bySubject, 3)
	// Insertion order is preserved: type, label, birthplace.
	assert.Equal(t, ontology.Type, bySubject[0].Predicate)

	byPredicate, err := s.Match(ctx, "", string(ontology.Type), "", 0)
	require.NoError(t, err)
	assert.Len(t, byPredicate, 3)

	byObject, err := s.Match(ctx, "", "", string(ontology.Person), 0)
	require.NoError(t, err)
	assert.Len(t, byObject, 2)

	limited, err := s.Match(ctx, "", "", "", 2)
	require.NoError(t, err)
	assert.Len(t, limited, 2)
}

func TestDescribe(t *testing.T) {
	s := openStore(t)
	ctx := context.Background()
	_, err := s.Ingest(ctx, testGraph())
	require.NoError(t, err)

	sts, err := s.Describe(ctx, string(ontology.Res("The_Shire")))
	require.NoError(t, err)
	require.Len(t, sts, 2)
	assert.Equal(t, graph.IRI(ontology.Place), sts[0].Object)
	assert.Equal(t, graph.LangText("The Shire", "en"), sts[1].Object)
}

func TestSearchLabels(t *testing.T) {
	s := openStore(t)
	ctx := context.Background()
	_, err := s.Ingest(ctx, testGraph())
	require.NoError(t, err)

	hits, err := s.SearchLabels(ctx, "baggins", 0)
	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.Equal(t, string(ontology.Res("Frodo_Baggins")), hits[0].Entity)
	assert.Equal(t, "Frodo Baggins", hits[0].Label)

	none, err := s.SearchLabels(ctx, "mordor", 0)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestEntities(t *testing.T) {
	s := openStore(t)
	ctx := context.Background()
	_, err := s.Ingest(ctx, testGraph())
	require.NoError(t, err)

	people, err := s.Entities(ctx, string(ontology.Person), 0)
	require.NoError(t, err)
	assert.Equal(t, []string{
		string(ontology.Res("Frodo_Baggins")),
		string(ontology.Res("Samwise_Gamgee")),
	}, people)
}

func TestStats(t *testing.T) {
	s := openStore(t)
	ctx := context.Background()
	_, err := s.Ingest(ctx, testGraph())
	require.NoError(t, err)

	stats, err := s.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 7, stats.Triples)
	assert.Equal(t, 3, stats.Entities)
	assert.Equal(t, 2, stats.EntitiesByType[string(ontology.Person)])
	assert.Equal(t, 1, stats.EntitiesByType[string(ontology.Place)])
}

func TestRecordRun(t *testing.T) {
	s := openStore(t)
	ctx := context.Background()

	run, err := s.RecordRun(ctx, RunRecord{State: "converged", Iterations: 4, Added: 120, Total: 900})
	require.NoError(t, err)
	assert.NotEmpty(t, run.ID)
	assert.False(t, run.StartedAt.IsZero())

	runs, err := s.Runs(ctx, 0)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, run.ID, runs[0].ID)
	assert.Equal(t, "converged", runs[0].State)
	assert.Equal(t, 4, runs[0].Iterations)
}
