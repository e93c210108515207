// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package build

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/loregraph/loregraph/internal/graph"
	"github.com/loregraph/loregraph/internal/ontology"
	"github.com/loregraph/loregraph/pkg/types"
)

func TestClassForTemplate(t *testing.T) {
	tests := []struct {
		name string
		want graph.Resource
	}{
		{"character infobox", ontology.Person},
		{"infobox character", ontology.Person},
		{"location infobox", ontology.Place},
		{"book", ontology.Book},
		{"weapon infobox", ontology.Product},
		{"language infobox", ontology.Language},
		{"infobox", ontology.Thing},
	}
	for _, tc := range tests {
		if got := ClassForTemplate(tc.name); got != tc.want {
			t.Errorf("ClassForTemplate(%q) = %s, want %s", tc.name, got, tc.want)
		}
	}
}

func TestEntityIRI(t *testing.T) {
	tests := []struct {
		title string
		want  graph.Resource
	}{
		{"Gandalf", ontology.Res("Gandalf")},
		{"Frodo Baggins", ontology.Res("Frodo_Baggins")},
		{"Barad-dûr", ontology.Res("Barad-dûr")},
		{"The Lord of the Rings (novel)", ontology.Res("The_Lord_of_the_Rings_novel")},
		{"  padded  title  ", ontology.Res("padded_title")},
	}
	for _, tc := range tests {
		if got := EntityIRI(tc.title); got != tc.want {
			t.Errorf("EntityIRI(%q) = %s, want %s", tc.title, got, tc.want)
		}
	}
}

func TestIsDescriptive(t *testing.T) {
	descriptive := []string{
		"Never married", "unknown", "None", "At least one daughter",
		"Possibly Círdan", "several",
	}
	for _, v := range descriptive {
		if !IsDescriptive(v) {
			t.Errorf("IsDescriptive(%q) = false, want true", v)
		}
	}
	referential := []string{"Arwen", "Drogo Baggins", "Sting"}
	for _, v := range referential {
		if IsDescriptive(v) {
			t.Errorf("IsDescriptive(%q) = true, want false", v)
		}
	}
}

func TestLiteralTerm(t *testing.T) {
	tests := []struct {
		in   string
		want graph.Term
	}{
		{"304", graph.TypedLiteral("304", ontology.XSDInteger)},
		{"2941-09-22", graph.TypedLiteral("2941-09-22", ontology.XSDDate)},
		{"22 September T.A. 2968", graph.LangText("22 September T.A. 2968", "en")},
		{"Grey", graph.LangText("Grey", "en")},
	}
	for _, tc := range tests {
		if got := literalTerm(tc.in); got != tc.want {
			t.Errorf("literalTerm(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func frodoRecord() types.Record {
	return types.Record{
		Title:  "Frodo Baggins",
		PageID: 7,
		Infoboxes: []types.Template{{
			Name: "character infobox",
			Params: map[string]string{
				"name":      "Frodo Baggins",
				"race":      "[[Hobbits]]",
				"spouse":    "Never married",
				"weapon":    "[[Sting]]",
				"birth":     "2968-09-22",
				"height":    "Unusually tall for a hobbit",
				"homebrewn": "Old Winyards",
			},
		}},
		Wikilinks: []types.Wikilink{
			{Target: "Gandalf", Display: "Gandalf"},
			{Target: "Samwise Gamgee", Display: "Sam"},
			{Target: "the Shire", Display: "the Shire"},
		},
	}
}

func TestBuild(t *testing.T) {
	var out strings.Builder
	g, stats := Build([]types.Record{frodoRecord()}, types.BuildConfig{MaxLinks: 2}, &out)

	frodo := ontology.Res("Frodo_Baggins")
	wantPresent := []graph.Statement{
		{Subject: frodo, Predicate: ontology.Type, Object: graph.IRI(ontology.Person)},
		{Subject: frodo, Predicate: ontology.Label, Object: graph.LangText("Frodo Baggins", "en")},
		{Subject: frodo, Predicate: ontology.BelongsToRace, Object: graph.IRI(ontology.Res("Hobbits"))},
		{Subject: frodo, Predicate: ontology.Wields, Object: graph.IRI(ontology.Res("Sting"))},
		// Descriptive value lands on the note property, not tgo:spouse.
		{Subject: frodo, Predicate: ontology.SpouseNote, Object: graph.LangText("Never married", "en")},
		{Subject: frodo, Predicate: ontology.BirthDate, Object: graph.TypedLiteral("2968-09-22", ontology.XSDDate)},
		// Unknown parameter falls back to a minted tgo: property.
		{Subject: frodo, Predicate: graph.Property(ontology.NSOntology + "homebrewn"), Object: graph.LangText("Old Winyards", "en")},
		{Subject: frodo, Predicate: ontology.Mentions, Object: graph.IRI(ontology.Res("Gandalf"))},
		{Subject: frodo, Predicate: ontology.Mentions, Object: graph.IRI(ontology.Res("Samwise_Gamgee"))},
	}
	for _, st := range wantPresent {
		if !g.Contains(st) {
			t.Errorf("missing statement %s", st)
		}
	}

	if g.Contains(graph.Statement{Subject: frodo, Predicate: ontology.Spouse, Object: graph.LangText("Never married", "en")}) {
		t.Error("descriptive spouse value stored as schema:spouse")
	}
	// MaxLinks caps mentions at 2; the Shire link is dropped.
	if g.Contains(graph.Statement{Subject: frodo, Predicate: ontology.Mentions, Object: graph.IRI(ontology.Res("the_Shire"))}) {
		t.Error("mentions not capped at MaxLinks")
	}

	if stats.Pages != 1 || stats.Entities != 1 || stats.Mentions != 2 {
		t.Errorf("stats = %+v", stats)
	}
	if stats.Triples != g.Len() {
		t.Errorf("stats.Triples = %d, graph has %d", stats.Triples, g.Len())
	}
}

func TestBuild_SourceTriple(t *testing.T) {
	var out strings.Builder
	g, _ := Build([]types.Record{frodoRecord()}, types.BuildConfig{}, &out)

	want := graph.Statement{
		Subject:   ontology.Res("Frodo_Baggins"),
		Predicate: ontology.Source,
		Object:    graph.Term{Kind: graph.TermIRI, Value: "https://tolkiengateway.net/wiki/Frodo_Baggins"},
	}
	if !g.Contains(want) {
		t.Errorf("missing provenance triple %s", want)
	}
}

func TestBuild_NoInfoboxSkipped(t *testing.T) {
	records := []types.Record{
		{Title: "Prose only", Wikilinks: []types.Wikilink{{Target: "Gandalf"}}},
	}
	var out strings.Builder
	g, stats := Build(records, types.BuildConfig{}, &out)

	if g.Len() != 0 {
		t.Errorf("graph has %d triples, want 0", g.Len())
	}
	if stats.NoInfobox != 1 {
		t.Errorf("NoInfobox = %d, want 1", stats.NoInfobox)
	}
}

func TestBuild_Deterministic(t *testing.T) {
	records := []types.Record{frodoRecord()}
	var a, b strings.Builder
	g1, _ := Build(records, types.BuildConfig{}, &a)
	g2, _ := Build(records, types.BuildConfig{}, &b)

	if g1.Len() != g2.Len() {
		t.Fatalf("lengths differ: %d vs %d", g1.Len(), g2.Len())
	}
	var s1, s2 []graph.Statement
	for st := range g1.Statements() {
		s1 = append(s1, st)
	}
	for st := range g2.Statements() {
		s2 = append(s2, st)
	}
	for i := range s1 {
		if s1[i] != s2[i] {
			t.Fatalf("statement %d differs: %s vs %s", i, s1[i], s2[i])
		}
	}
}

func TestLoadRecords(t *testing.T) {
	dataDir := t.TempDir()
	parsed := filepath.Join(dataDir, "parsed")
	if err := os.MkdirAll(parsed, 0o755); err != nil {
		t.Fatal(err)
	}

	record := "title: Frodo Baggins\npage_id: 7\n"
	if err := os.WriteFile(filepath.Join(parsed, "Frodo_Baggins.yaml"), []byte(record), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(parsed, "notes.txt"), []byte("not a record"), 0o644); err != nil {
		t.Fatal(err)
	}

	records, err := LoadRecords(dataDir, "")
	if err != nil {
		t.Fatalf("LoadRecords: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("loaded %d records, want 1", len(records))
	}
	if records[0].Title != "Frodo Baggins" || records[0].PageID != 7 {
		t.Errorf("record = %+v", records[0])
	}

	// An explicit glob narrows the selection.
	none, err := LoadRecords(dataDir, "Gandalf*.yaml")
	if err != nil {
		t.Fatalf("LoadRecords with glob: %v", err)
	}
	if len(none) != 0 {
		t.Errorf("glob matched %d records, want 0", len(none))
	}
}
