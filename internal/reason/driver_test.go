// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package reason

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/loregraph/loregraph/internal/graph"
	"github.com/loregraph/loregraph/internal/ontology"
)

func allStatements(g *graph.Graph) []graph.Statement {
	var out []graph.Statement
	for st := range g.Statements() {
		out = append(out, st)
	}
	return out
}

// familyGraph exercises every derivation rule: typed subjects, a spouse
// pair, a wielded weapon, shared parentage, places, and a race.
func familyGraph(t *testing.T) *graph.Graph {
	t.Helper()
	g := graph.New()
	stmts := []graph.Statement{
		{Subject: galadriel, Predicate: ontology.Type, Object: graph.IRI(ontology.Noldor)},
		{Subject: frodo, Predicate: ontology.Type, Object: graph.IRI(ontology.Person)},
		{Subject: merry, Predicate: ontology.Type, Object: graph.IRI(ontology.Person)},
		{Subject: aragorn, Predicate: ontology.Spouse, Object: graph.IRI(arwen)},
		{Subject: aragorn, Predicate: ontology.Wields, Object: graph.IRI(anduril)},
		{Subject: frodo, Predicate: ontology.Parentage, Object: graph.IRI(drogo)},
		{Subject: merry, Predicate: ontology.Parentage, Object: graph.IRI(drogo)},
		{Subject: frodo, Predicate: ontology.BirthPlace, Object: graph.IRI(hobbiton)},
		{Subject: frodo, Predicate: ontology.BelongsToRace, Object: graph.IRI(ontology.Hobbits)},
	}
	for _, st := range stmts {
		require.True(t, g.InsertIfAbsent(st))
	}
	return g
}

func TestRun_Converges(t *testing.T) {
	g := familyGraph(t)
	d := NewDriver(DefaultConfig())

	assert.Equal(t, StateIdle, d.State())
	res, err := d.Run(g, ontology.DefaultRegistry())
	require.NoError(t, err)

	assert.Equal(t, StateConverged, res.State)
	assert.Equal(t, StateConverged, d.State())
	assert.False(t, res.Capped())
	assert.NotEmpty(t, res.RunID)
	assert.Greater(t, res.Added, 0)
	// The converging pass itself counts: at least two passes ran.
	assert.GreaterOrEqual(t, res.Iterations, 2)
}

func TestRun_Monotonic(t *testing.T) {
	g := familyGraph(t)
	before := allStatements(g)

	_, err := NewDriver(DefaultConfig()).Run(g, ontology.DefaultRegistry())
	require.NoError(t, err)

	for _, st := range before {
		assert.True(t, g.Contains(st), "input statement lost: %v", st)
	}
	assert.GreaterOrEqual(t, g.Len(), len(before))
}

func TestRun_Idempotent(t *testing.T) {
	g := familyGraph(t)
	schema := ontology.DefaultRegistry()

	first, err := NewDriver(DefaultConfig()).Run(g, schema)
	require.NoError(t, err)
	require.Greater(t, first.Added, 0)

	second, err := NewDriver(DefaultConfig()).Run(g, schema)
	require.NoError(t, err)
	assert.Zero(t, second.Added, "second run on a fixpoint must add nothing")
	assert.Equal(t, StateConverged, second.State)
	assert.Equal(t, 1, second.Iterations)
}

func TestRun_Deterministic(t *testing.T) {
	schema := ontology.DefaultRegistry()

	g1 := familyGraph(t)
	_, err := NewDriver(DefaultConfig()).Run(g1, schema)
	require.NoError(t, err)

	g2 := familyGraph(t)
	_, err = NewDriver(DefaultConfig()).Run(g2, schema)
	require.NoError(t, err)

	assert.Equal(t, allStatements(g1), allStatements(g2), "identical inputs must enrich identically")
}

func TestRun_ParallelMatchesSequential(t *testing.T) {
	schema := ontology.DefaultRegistry()

	seq := familyGraph(t)
	_, err := NewDriver(DefaultConfig()).Run(seq, schema)
	require.NoError(t, err)

	cfg := DefaultConfig()
	cfg.Workers = 4
	par := familyGraph(t)
	_, err = NewDriver(cfg).Run(par, schema)
	require.NoError(t, err)

	assert.Equal(t, allStatements(seq), allStatements(par))
}

func TestRun_SymmetricAndInverseClosure(t *testing.T) {
	g := familyGraph(t)
	_, err := NewDriver(DefaultConfig()).Run(g, ontology.DefaultRegistry())
	require.NoError(t, err)

	assert.True(t, g.Contains(graph.Statement{Subject: arwen, Predicate: ontology.Spouse, Object: graph.IRI(aragorn)}))
	assert.True(t, g.Contains(graph.Statement{Subject: anduril, Predicate: ontology.WieldedBy, Object: graph.IRI(aragorn)}))
}

func TestRun_SiblingsWithoutSelfPairs(t *testing.T) {
	g := familyGraph(t)
	_, err := NewDriver(DefaultConfig()).Run(g, ontology.DefaultRegistry())
	require.NoError(t, err)

	assert.True(t, g.Contains(graph.Statement{Subject: frodo, Predicate: ontology.Siblings, Object: graph.IRI(merry)}))
	assert.True(t, g.Contains(graph.Statement{Subject: merry, Predicate: ontology.Siblings, Object: graph.IRI(frodo)}))
	for st := range g.Match("", ontology.Siblings, graph.Term{}) {
		obj, ok := st.Object.Resource()
		require.True(t, ok)
		assert.NotEqual(t, st.Subject, obj, "self-sibling produced")
	}
}

func TestRun_SubsumptionTransitivity(t *testing.T) {
	g := familyGraph(t)
	_, err := NewDriver(DefaultConfig()).Run(g, ontology.DefaultRegistry())
	require.NoError(t, err)

	assert.True(t, g.Contains(graph.Statement{Subject: galadriel, Predicate: ontology.Type, Object: graph.IRI(ontology.Elves)}))
	assert.True(t, g.Contains(graph.Statement{Subject: galadriel, Predicate: ontology.Type, Object: graph.IRI(ontology.FreePeoples)}))
}

func TestRun_DerivedFactsFeedLaterPasses(t *testing.T) {
	// The race-group membership derived in pass one must pick up the
	// memberOf inverse (hasMember) in a later pass.
	g := familyGraph(t)
	_, err := NewDriver(DefaultConfig()).Run(g, ontology.DefaultRegistry())
	require.NoError(t, err)

	assert.True(t, g.Contains(graph.Statement{
		Subject:   ontology.HobbitKind,
		Predicate: ontology.HasMember,
		Object:    graph.IRI(frodo),
	}))
}

func TestRun_SchemaErrorLeavesGraphUntouched(t *testing.T) {
	bad := ontology.NewRegistry()
	bad.AddSubClass(ontology.Res("A"), ontology.Res("B"))
	bad.AddSubClass(ontology.Res("B"), ontology.Res("A"))

	g := familyGraph(t)
	before := g.Len()

	_, err := NewDriver(DefaultConfig()).Run(g, bad)
	require.Error(t, err)

	var schemaErr *ontology.SchemaError
	require.ErrorAs(t, err, &schemaErr)
	assert.Equal(t, before, g.Len(), "graph mutated despite schema error")
}

// growRule never converges: each pass mints one statement about a fresh
// subject derived from the snapshot size.
type growRule struct{}

func (growRule) Name() string { return "grow" }

func (growRule) Apply(snap *graph.Snapshot, _ *ontology.Registry) ([]graph.Statement, int) {
	st := graph.Statement{
		Subject:   ontology.Res(fmt.Sprintf("Gen_%d", snap.Len())),
		Predicate: ontology.Type,
		Object:    graph.IRI(ontology.Thing),
	}
	return []graph.Statement{st}, 0
}

func TestRun_CapsOnNonConvergingCatalogue(t *testing.T) {
	d := &Driver{
		rules: []Rule{growRule{}},
		cfg:   Config{MaxIterations: 3},
		state: StateIdle,
	}
	g := graph.New()

	res, err := d.Run(g, ontology.NewRegistry())
	require.NoError(t, err, "a capped run is not an error")

	assert.Equal(t, StateCapped, res.State)
	assert.True(t, res.Capped())
	assert.Equal(t, 3, res.Iterations)
	assert.Equal(t, 3, res.Added)
	assert.Equal(t, []int{1, 1, 1}, res.Stats.Accepted("grow"))
}

func TestRun_StatsDensePerRule(t *testing.T) {
	g := familyGraph(t)
	res, err := NewDriver(DefaultConfig()).Run(g, ontology.DefaultRegistry())
	require.NoError(t, err)

	stats := res.Stats
	assert.Len(t, stats.Rules(), 8)
	for _, rule := range stats.Rules() {
		assert.Len(t, stats.Accepted(rule), res.Iterations, "counts for %s not dense", rule)
	}
	assert.Equal(t, res.Added, stats.TotalAccepted())
	assert.Equal(t, res.Iterations, stats.Iterations())
}

func TestRun_SkippedInputsCounted(t *testing.T) {
	g := familyGraph(t)
	require.True(t, g.InsertIfAbsent(graph.Statement{
		Subject:   frodo,
		Predicate: ontology.Spouse,
		Object:    graph.Text("never married"),
	}))

	res, err := NewDriver(DefaultConfig()).Run(g, ontology.DefaultRegistry())
	require.NoError(t, err)
	assert.Greater(t, res.Stats.Skipped("symmetric-closure"), 0)
}

func TestStats_WriteSummary(t *testing.T) {
	g := familyGraph(t)
	res, err := NewDriver(DefaultConfig()).Run(g, ontology.DefaultRegistry())
	require.NoError(t, err)

	var buf strings.Builder
	res.Stats.WriteSummary(&buf)
	out := buf.String()
	assert.Contains(t, out, "class-subsumption")
	assert.Contains(t, out, "sibling-inference")
	assert.Contains(t, out, "total")
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "idle", StateIdle.String())
	assert.Equal(t, "running", StateRunning.String())
	assert.Equal(t, "converged", StateConverged.String())
	assert.Equal(t, "capped", StateCapped.String())
}
