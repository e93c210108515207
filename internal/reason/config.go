// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package reason

import (
	"github.com/loregraph/loregraph/internal/graph"
	"github.com/loregraph/loregraph/internal/ontology"
)

// DefaultMaxIterations bounds a run when the caller does not choose a
// cap. Real graphs converge in three to five passes; the cap exists so a
// pathological schema cannot loop forever.
const DefaultMaxIterations = 10

// Membership seeds group membership from a fixed member list. When
// RequireType is set, only members typed accordingly in the graph are
// seeded. The group's own type and label statements are seeded alongside
// the memberships.
type Membership struct {
	Group       graph.Resource
	GroupType   graph.Resource
	GroupLabel  string
	RequireType graph.Resource
	Members     []graph.Resource
}

// RaceGroup names the broader group a race maps to.
type RaceGroup struct {
	Group graph.Resource
	Label string
}

// Config carries the static inputs of a reasoning run beyond the graph
// and schema.
type Config struct {
	// MaxIterations caps the number of passes. Zero means
	// DefaultMaxIterations.
	MaxIterations int

	// Memberships drive the group seeding rule.
	Memberships []Membership

	// RaceGroups drives the race→group rule, keyed by race resource.
	RaceGroups map[graph.Resource]RaceGroup

	// Workers sets how many rules evaluate concurrently within a pass.
	// Zero or one evaluates sequentially. Results are identical either
	// way; candidates are applied in catalogue order.
	Workers int
}

// DefaultConfig returns the built-in run configuration: the Fellowship
// membership list and the race→group mapping.
func DefaultConfig() Config {
	return Config{
		MaxIterations: DefaultMaxIterations,
		Memberships: []Membership{
			{
				Group:       ontology.FellowshipOfRing,
				GroupType:   ontology.Organization,
				GroupLabel:  "Fellowship of the Ring",
				RequireType: ontology.Person,
				Members: []graph.Resource{
					ontology.Res("Frodo_Baggins"),
					ontology.Res("Samwise_Gamgee"),
					ontology.Res("Gandalf"),
					ontology.Res("Aragorn_II"),
					ontology.Res("Legolas"),
					ontology.Res("Gimli"),
					ontology.Res("Boromir"),
					ontology.Res("Meriadoc_Brandybuck"),
					ontology.Res("Peregrin_Took"),
				},
			},
		},
		RaceGroups: map[graph.Resource]RaceGroup{
			ontology.Hobbits:    {Group: ontology.HobbitKind, Label: "Hobbit-kind"},
			ontology.Dwarves:    {Group: ontology.DwarfKind, Label: "Dwarf-kind"},
			ontology.Gondorians: {Group: ontology.Numenoreans, Label: "Númenórean descendants"},
			ontology.Rohirrim:   {Group: ontology.Northmen, Label: "Northmen"},
			ontology.Maiar:      {Group: ontology.Ainur, Label: "Ainur"},
			ontology.Orcs:       {Group: ontology.ServantsMordor, Label: "Servants of Mordor"},
		},
		Workers: 1,
	}
}

func (c Config) maxIterations() int {
	if c.MaxIterations <= 0 {
		return DefaultMaxIterations
	}
	return c.MaxIterations
}
