// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package validate

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/loregraph/loregraph/internal/graph"
	"github.com/loregraph/loregraph/internal/ontology"
)

func personGraph(t *testing.T) *graph.Graph {
	t.Helper()
	g := graph.New()
	frodo := ontology.Res("Frodo_Baggins")
	g.InsertIfAbsent(graph.Statement{Subject: frodo, Predicate: ontology.Type, Object: graph.IRI(ontology.Person)})
	g.InsertIfAbsent(graph.Statement{Subject: frodo, Predicate: ontology.Label, Object: graph.LangText("Frodo Baggins", "en")})
	g.InsertIfAbsent(graph.Statement{Subject: frodo, Predicate: ontology.BirthDate, Object: graph.TypedLiteral("2968-09-22", ontology.XSDDate)})
	g.InsertIfAbsent(graph.Statement{Subject: frodo, Predicate: ontology.BelongsToRace, Object: graph.IRI(ontology.Res("Hobbits"))})
	return g
}

func TestRun_Conforms(t *testing.T) {
	g := personGraph(t)
	report := Run(g, DefaultShapes())

	assert.True(t, report.Conforms)
	assert.Zero(t, report.Violations)
	assert.Equal(t, 1, report.Checked)
	// Spouse is recommended but absent, so there is at least one warning.
	assert.Greater(t, report.Warnings, 0)
}

func TestRun_MissingRequiredIsViolation(t *testing.T) {
	g := graph.New()
	nameless := ontology.Res("Nameless")
	g.InsertIfAbsent(graph.Statement{Subject: nameless, Predicate: ontology.Type, Object: graph.IRI(ontology.Person)})

	report := Run(g, DefaultShapes())

	assert.False(t, report.Conforms)
	require.NotEmpty(t, report.Findings)
	found := false
	for _, f := range report.Findings {
		if f.Severity == SeverityViolation && f.Property == "rdfs:label" && f.Entity == string(nameless) {
			found = true
		}
	}
	assert.True(t, found, "missing rdfs:label violation not reported: %+v", report.Findings)
}

func TestRun_DatatypeMismatchWarns(t *testing.T) {
	g := personGraph(t)
	bilbo := ontology.Res("Bilbo_Baggins")
	g.InsertIfAbsent(graph.Statement{Subject: bilbo, Predicate: ontology.Type, Object: graph.IRI(ontology.Person)})
	g.InsertIfAbsent(graph.Statement{Subject: bilbo, Predicate: ontology.Label, Object: graph.LangText("Bilbo Baggins", "en")})
	g.InsertIfAbsent(graph.Statement{Subject: bilbo, Predicate: ontology.BirthDate, Object: graph.LangText("22 September T.A. 2890", "en")})

	report := Run(g, DefaultShapes())

	assert.True(t, report.Conforms, "datatype mismatch must stay a warning")
	found := false
	for _, f := range report.Findings {
		if f.Severity == SeverityWarning && f.Entity == string(bilbo) && strings.Contains(f.Message, "datatype") {
			found = true
		}
	}
	assert.True(t, found, "datatype warning not reported: %+v", report.Findings)
}

func TestRun_MaxCountWarns(t *testing.T) {
	g := personGraph(t)
	frodo := ontology.Res("Frodo_Baggins")
	for _, spouse := range []string{"A", "B", "C", "D"} {
		g.InsertIfAbsent(graph.Statement{Subject: frodo, Predicate: ontology.Spouse, Object: graph.IRI(ontology.Res(spouse))})
	}

	report := Run(g, DefaultShapes())

	assert.True(t, report.Conforms)
	found := false
	for _, f := range report.Findings {
		if f.Property == "schema:spouse" && strings.Contains(f.Message, "max count") {
			found = true
		}
	}
	assert.True(t, found, "max count warning not reported: %+v", report.Findings)
}

func TestRun_Deterministic(t *testing.T) {
	g := graph.New()
	for _, name := range []string{"C_Person", "A_Person", "B_Person"} {
		g.InsertIfAbsent(graph.Statement{Subject: ontology.Res(name), Predicate: ontology.Type, Object: graph.IRI(ontology.Person)})
	}

	a := Run(g, DefaultShapes())
	b := Run(g, DefaultShapes())
	require.Equal(t, len(a.Findings), len(b.Findings))
	for i := range a.Findings {
		assert.Equal(t, a.Findings[i], b.Findings[i])
	}
	// Entities surface in type-triple insertion order.
	assert.Equal(t, string(ontology.Res("C_Person")), a.Findings[0].Entity)
}

func TestLoadShapes(t *testing.T) {
	content := `prefixes:
  ex: "http://example.org/"
shapes:
  - target_class: ex:Widget
    required:
      - property: rdfs:label
    recommended:
      - property: ex:color
        max_count: 2
`
	path := filepath.Join(t.TempDir(), "shapes.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	shapes, err := LoadShapes(path)
	require.NoError(t, err)
	require.Len(t, shapes, 1)

	assert.Equal(t, "http://example.org/Widget", shapes[0].TargetClass)
	require.Len(t, shapes[0].Required, 1)
	assert.Equal(t, ontology.NSRDFS+"label", shapes[0].Required[0].Property)
	require.Len(t, shapes[0].Recommended, 1)
	assert.Equal(t, "http://example.org/color", shapes[0].Recommended[0].Property)
	assert.Equal(t, 2, shapes[0].Recommended[0].MaxCount)
}

func TestLoadShapes_MissingTargetClass(t *testing.T) {
	path := filepath.Join(t.TempDir(), "shapes.yaml")
	require.NoError(t, os.WriteFile(path, []byte("shapes:\n  - required:\n      - property: rdfs:label\n"), 0o644))

	_, err := LoadShapes(path)
	assert.Error(t, err)
}

func TestReport_WriteJSONAndSummary(t *testing.T) {
	g := graph.New()
	g.InsertIfAbsent(graph.Statement{Subject: ontology.Res("Nameless"), Predicate: ontology.Type, Object: graph.IRI(ontology.Person)})
	report := Run(g, DefaultShapes())

	path := filepath.Join(t.TempDir(), "reports", "validation.json")
	require.NoError(t, report.WriteJSON(path))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"conforms": false`)

	var out strings.Builder
	report.WriteSummary(&out)
	assert.Contains(t, out.String(), "Validation FAIL")
	assert.Contains(t, out.String(), "missing required property rdfs:label")
}
