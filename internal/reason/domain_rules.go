// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package reason

import (
	"github.com/loregraph/loregraph/internal/graph"
	"github.com/loregraph/loregraph/internal/ontology"
)

// siblingInference pairs subjects that share a parentage object. Both
// directions of each pair are produced; a subject is never paired with
// itself. Parentage statements whose object is a literal are skipped.
type siblingInference struct{}

func (siblingInference) Name() string { return "sibling-inference" }

func (siblingInference) Apply(snap *graph.Snapshot, _ *ontology.Registry) ([]graph.Statement, int) {
	skipped := 0
	var parents []graph.Resource
	children := make(map[graph.Resource][]graph.Resource)
	for st := range snap.Match("", ontology.Parentage, graph.Term{}) {
		parent, ok := st.Object.Resource()
		if !ok {
			skipped++
			continue
		}
		if _, seen := children[parent]; !seen {
			parents = append(parents, parent)
		}
		children[parent] = append(children[parent], st.Subject)
	}

	var out []graph.Statement
	for _, parent := range parents {
		kids := children[parent]
		for i, a := range kids {
			for _, b := range kids[i+1:] {
				if a == b {
					continue
				}
				out = append(out,
					graph.Statement{Subject: a, Predicate: ontology.Siblings, Object: graph.IRI(b)},
					graph.Statement{Subject: b, Predicate: ontology.Siblings, Object: graph.IRI(a)},
				)
			}
		}
	}
	return out, skipped
}

// groupSeed tags configured members with membership in a configured
// group. It is a seeding rule, not a derivation rule: the member lists
// come from configuration, and re-running adds nothing once the
// memberships are present.
type groupSeed struct {
	memberships []Membership
}

func (groupSeed) Name() string { return "group-membership" }

func (r groupSeed) Apply(snap *graph.Snapshot, _ *ontology.Registry) ([]graph.Statement, int) {
	var out []graph.Statement
	for _, m := range r.memberships {
		if m.Group == "" {
			continue
		}
		for _, member := range m.Members {
			if m.RequireType != "" && !snap.Contains(graph.Statement{
				Subject:   member,
				Predicate: ontology.Type,
				Object:    graph.IRI(m.RequireType),
			}) {
				continue
			}
			out = append(out, graph.Statement{
				Subject:   member,
				Predicate: ontology.MemberOf,
				Object:    graph.IRI(m.Group),
			})
		}
		if m.GroupType != "" {
			out = append(out, graph.Statement{
				Subject:   m.Group,
				Predicate: ontology.Type,
				Object:    graph.IRI(m.GroupType),
			})
		}
		if m.GroupLabel != "" {
			out = append(out, graph.Statement{
				Subject:   m.Group,
				Predicate: ontology.Label,
				Object:    graph.LangText(m.GroupLabel, "en"),
			})
		}
	}
	return out, 0
}

// placeConnection links a subject to the places it was born or died in.
type placeConnection struct{}

func (placeConnection) Name() string { return "place-connection" }

func (placeConnection) Apply(snap *graph.Snapshot, _ *ontology.Registry) ([]graph.Statement, int) {
	var out []graph.Statement
	skipped := 0
	for _, p := range []graph.Property{ontology.BirthPlace, ontology.DeathPlace} {
		for st := range snap.Match("", p, graph.Term{}) {
			place, ok := st.Object.Resource()
			if !ok {
				skipped++
				continue
			}
			out = append(out, graph.Statement{
				Subject:   st.Subject,
				Predicate: ontology.HasConnectionTo,
				Object:    graph.IRI(place),
			})
		}
	}
	return out, skipped
}

// raceGroup maps race membership to membership in a configured broader
// group. The group's label is seeded once if the graph has none.
type raceGroup struct {
	groups map[graph.Resource]RaceGroup
}

func (raceGroup) Name() string { return "race-group" }

func (r raceGroup) Apply(snap *graph.Snapshot, _ *ontology.Registry) ([]graph.Statement, int) {
	var out []graph.Statement
	skipped := 0
	labeled := make(map[graph.Resource]bool)
	for st := range snap.Match("", ontology.BelongsToRace, graph.Term{}) {
		race, ok := st.Object.Resource()
		if !ok {
			skipped++
			continue
		}
		rg, ok := r.groups[race]
		if !ok {
			continue
		}
		out = append(out, graph.Statement{
			Subject:   st.Subject,
			Predicate: ontology.MemberOf,
			Object:    graph.IRI(rg.Group),
		})
		if rg.Label != "" && !labeled[rg.Group] && !hasAnyLabel(snap, rg.Group) {
			labeled[rg.Group] = true
			out = append(out, graph.Statement{
				Subject:   rg.Group,
				Predicate: ontology.Label,
				Object:    graph.LangText(rg.Label, "en"),
			})
		}
	}
	return out, skipped
}

func hasAnyLabel(snap *graph.Snapshot, r graph.Resource) bool {
	for range snap.Match(r, ontology.Label, graph.Term{}) {
		return true
	}
	return false
}
