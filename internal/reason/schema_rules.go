// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package reason

import (
	"github.com/loregraph/loregraph/internal/graph"
	"github.com/loregraph/loregraph/internal/ontology"
)

// classSubsumption lifts every typed subject into the transitive
// superclasses of its type.
type classSubsumption struct{}

func (classSubsumption) Name() string { return "class-subsumption" }

func (classSubsumption) Apply(snap *graph.Snapshot, schema *ontology.Registry) ([]graph.Statement, int) {
	var out []graph.Statement
	skipped := 0
	for st := range snap.Match("", ontology.Type, graph.Term{}) {
		class, ok := st.Object.Resource()
		if !ok {
			skipped++
			continue
		}
		for _, super := range schema.SuperClasses(class) {
			out = append(out, graph.Statement{
				Subject:   st.Subject,
				Predicate: ontology.Type,
				Object:    graph.IRI(super),
			})
		}
	}
	return out, skipped
}

// propertySubsumption restates every statement under the transitive
// super-properties of its predicate. Objects carry over unchanged, so
// literal-valued statements are fine here.
type propertySubsumption struct{}

func (propertySubsumption) Name() string { return "property-subsumption" }

func (propertySubsumption) Apply(snap *graph.Snapshot, schema *ontology.Registry) ([]graph.Statement, int) {
	var out []graph.Statement
	for st := range snap.Statements() {
		for _, super := range schema.SuperProperties(st.Predicate) {
			out = append(out, graph.Statement{
				Subject:   st.Subject,
				Predicate: super,
				Object:    st.Object,
			})
		}
	}
	return out, 0
}

// symmetricClosure mirrors statements whose predicate is declared
// symmetric.
type symmetricClosure struct{}

func (symmetricClosure) Name() string { return "symmetric-closure" }

func (symmetricClosure) Apply(snap *graph.Snapshot, schema *ontology.Registry) ([]graph.Statement, int) {
	var out []graph.Statement
	skipped := 0
	for _, p := range schema.SymmetricProperties() {
		for st := range snap.Match("", p, graph.Term{}) {
			obj, ok := st.Object.Resource()
			if !ok {
				skipped++
				continue
			}
			out = append(out, graph.Statement{
				Subject:   obj,
				Predicate: p,
				Object:    graph.IRI(st.Subject),
			})
		}
	}
	return out, skipped
}

// inverseClosure mirrors statements through declared inverse pairs.
type inverseClosure struct{}

func (inverseClosure) Name() string { return "inverse-closure" }

func (inverseClosure) Apply(snap *graph.Snapshot, schema *ontology.Registry) ([]graph.Statement, int) {
	var out []graph.Statement
	skipped := 0
	for _, p := range schema.InverseProperties() {
		q, _ := schema.InverseOf(p)
		for st := range snap.Match("", p, graph.Term{}) {
			obj, ok := st.Object.Resource()
			if !ok {
				skipped++
				continue
			}
			out = append(out, graph.Statement{
				Subject:   obj,
				Predicate: q,
				Object:    graph.IRI(st.Subject),
			})
		}
	}
	return out, skipped
}
