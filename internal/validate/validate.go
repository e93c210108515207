// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package validate checks a triple graph against per-class shapes:
// required and recommended properties, literal datatypes, and cardinality
// caps. Missing required properties are violations; everything else
// surfaces as warnings.
package validate

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/loregraph/loregraph/internal/graph"
	"github.com/loregraph/loregraph/internal/ontology"
)

// Severity grades a finding.
type Severity string

const (
	SeverityViolation Severity = "violation"
	SeverityWarning   Severity = "warning"
)

// PropertyShape constrains one property of a target class.
type PropertyShape struct {
	// Property is the constrained property, as a CURIE or full IRI.
	Property string `yaml:"property" json:"property"`

	// Datatype, when set, requires literal values to carry this datatype.
	Datatype string `yaml:"datatype,omitempty" json:"datatype,omitempty"`

	// MaxCount, when positive, caps how many values an entity may have.
	MaxCount int `yaml:"max_count,omitempty" json:"max_count,omitempty"`
}

// Shape is the constraint set for one target class.
type Shape struct {
	// TargetClass selects the entities the shape applies to, as a CURIE
	// or full IRI. Subclasses of the target are included.
	TargetClass string `yaml:"target_class" json:"target_class"`

	// Required properties; a missing one is a violation.
	Required []PropertyShape `yaml:"required,omitempty" json:"required,omitempty"`

	// Recommended properties; a missing one is a warning.
	Recommended []PropertyShape `yaml:"recommended,omitempty" json:"recommended,omitempty"`
}

type shapesFile struct {
	Prefixes map[string]string `yaml:"prefixes"`
	Shapes   []Shape           `yaml:"shapes"`
}

// Finding is one constraint failure.
type Finding struct {
	Severity Severity `json:"severity"`
	Entity   string   `json:"entity"`
	Property string   `json:"property"`
	Message  string   `json:"message"`
}

// Report is the outcome of a validation run. Conforms is true exactly
// when there are no violations; warnings alone still conform.
type Report struct {
	Conforms   bool      `json:"conforms"`
	Violations int       `json:"violations"`
	Warnings   int       `json:"warnings"`
	Checked    int       `json:"entities_checked"`
	Findings   []Finding `json:"findings,omitempty"`
	CheckedAt  time.Time `json:"checked_at"`
}

// DefaultShapes returns the built-in shapes for the core entity classes.
func DefaultShapes() []Shape {
	return []Shape{
		{
			TargetClass: "schema:Person",
			Required: []PropertyShape{
				{Property: "rdfs:label"},
			},
			Recommended: []PropertyShape{
				{Property: "schema:birthDate", Datatype: "xsd:date"},
				{Property: "tgo:belongsToRace"},
				{Property: "schema:spouse", MaxCount: 3},
			},
		},
		{
			TargetClass: "schema:Place",
			Required: []PropertyShape{
				{Property: "rdfs:label"},
			},
			Recommended: []PropertyShape{
				{Property: "schema:containedInPlace"},
			},
		},
		{
			TargetClass: "schema:Book",
			Required: []PropertyShape{
				{Property: "rdfs:label"},
				{Property: "schema:author"},
			},
			Recommended: []PropertyShape{
				{Property: "schema:datePublished"},
				{Property: "schema:isbn", MaxCount: 2},
			},
		},
	}
}

// LoadShapes reads shapes from a YAML file. File-local prefixes merge
// over the built-in ones.
func LoadShapes(path string) ([]Shape, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading shapes file: %w", err)
	}
	var file shapesFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parsing shapes file: %w", err)
	}

	for i, shape := range file.Shapes {
		if shape.TargetClass == "" {
			return nil, fmt.Errorf("shapes file %s: shape %d has no target_class", path, i)
		}
	}
	if len(file.Prefixes) > 0 {
		merged := make(map[string]string, len(ontology.Prefixes)+len(file.Prefixes))
		for k, v := range ontology.Prefixes {
			merged[k] = v
		}
		for k, v := range file.Prefixes {
			merged[k] = v
		}
		for si := range file.Shapes {
			expandShape(&file.Shapes[si], merged)
		}
	}
	return file.Shapes, nil
}

func expandShape(s *Shape, prefixes map[string]string) {
	expand := func(curie string) string {
		for i := 0; i < len(curie); i++ {
			if curie[i] == ':' {
				if base, ok := prefixes[curie[:i]]; ok {
					return base + curie[i+1:]
				}
				return curie
			}
		}
		return curie
	}
	s.TargetClass = expand(s.TargetClass)
	for i := range s.Required {
		s.Required[i].Property = expand(s.Required[i].Property)
		s.Required[i].Datatype = expand(s.Required[i].Datatype)
	}
	for i := range s.Recommended {
		s.Recommended[i].Property = expand(s.Recommended[i].Property)
		s.Recommended[i].Datatype = expand(s.Recommended[i].Datatype)
	}
}

// Run checks the graph against the shapes. Entities are visited in the
// insertion order of their type triples, so findings are deterministic
// for a given graph.
func Run(g *graph.Graph, shapes []Shape) Report {
	report := Report{Conforms: true, CheckedAt: time.Now().UTC()}

	for _, shape := range shapes {
		class := graph.Resource(ontology.Expand(shape.TargetClass))
		seen := make(map[graph.Resource]bool)
		for st := range g.Match("", ontology.Type, graph.IRI(class)) {
			if seen[st.Subject] {
				continue
			}
			seen[st.Subject] = true
			report.Checked++
			checkEntity(g, st.Subject, shape, &report)
		}
	}

	report.Conforms = report.Violations == 0
	return report
}

func checkEntity(g *graph.Graph, entity graph.Resource, shape Shape, report *Report) {
	for _, ps := range shape.Required {
		checkProperty(g, entity, ps, SeverityViolation, report)
	}
	for _, ps := range shape.Recommended {
		checkProperty(g, entity, ps, SeverityWarning, report)
	}
}

func checkProperty(g *graph.Graph, entity graph.Resource, ps PropertyShape, missing Severity, report *Report) {
	prop := graph.Property(ontology.Expand(ps.Property))
	wantDatatype := ontology.Expand(ps.Datatype)

	count := 0
	for st := range g.Match(entity, prop, graph.Term{}) {
		count++
		if ps.Datatype != "" && st.Object.Kind == graph.TermLiteral && st.Object.Datatype != wantDatatype {
			add(report, Finding{
				Severity: SeverityWarning,
				Entity:   string(entity),
				Property: ps.Property,
				Message:  fmt.Sprintf("value %s has datatype %q, want %s", st.Object, st.Object.Datatype, ps.Datatype),
			})
		}
	}

	if count == 0 {
		verb := "recommended"
		if missing == SeverityViolation {
			verb = "required"
		}
		add(report, Finding{
			Severity: missing,
			Entity:   string(entity),
			Property: ps.Property,
			Message:  fmt.Sprintf("missing %s property %s", verb, ps.Property),
		})
		return
	}
	if ps.MaxCount > 0 && count > ps.MaxCount {
		add(report, Finding{
			Severity: SeverityWarning,
			Entity:   string(entity),
			Property: ps.Property,
			Message:  fmt.Sprintf("%d values exceed max count %d", count, ps.MaxCount),
		})
	}
}

func add(report *Report, f Finding) {
	report.Findings = append(report.Findings, f)
	switch f.Severity {
	case SeverityViolation:
		report.Violations++
	default:
		report.Warnings++
	}
}

// WriteJSON writes the report to path as indented JSON, creating parent
// directories.
func (r Report) WriteJSON(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating directory for %s: %w", path, err)
	}
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling report: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("writing report: %w", err)
	}
	return nil
}

// WriteSummary prints a human-readable validation summary.
func (r Report) WriteSummary(w io.Writer) {
	status := "PASS"
	if !r.Conforms {
		status = "FAIL"
	}
	fmt.Fprintf(w, "Validation %s: %d entities checked, %d violations, %d warnings\n",
		status, r.Checked, r.Violations, r.Warnings)
	for _, f := range r.Findings {
		fmt.Fprintf(w, "  [%s] %s %s: %s\n", f.Severity, f.Entity, f.Property, f.Message)
	}
}
