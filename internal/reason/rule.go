// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package reason applies a fixed catalogue of inference rules to a
// triple graph until no rule yields a new statement. Every rule reads a
// pre-pass snapshot and returns candidates; the driver merges candidates
// after all rules of a pass have run, so rule ordering never changes the
// final graph.
package reason

import (
	"github.com/loregraph/loregraph/internal/graph"
	"github.com/loregraph/loregraph/internal/ontology"
)

// Rule derives candidate statements from a graph snapshot. Apply must be
// pure with respect to the snapshot and deterministic in the order of
// its candidates. Malformed statements (a literal where a resource is
// required) are skipped and counted, never fatal.
type Rule interface {
	Name() string
	Apply(snap *graph.Snapshot, schema *ontology.Registry) (candidates []graph.Statement, skipped int)
}

// Catalogue returns the rules of a run, in application order. Ordering
// matters only for statistics attribution; the driver iterates to a
// fixpoint regardless.
func Catalogue(cfg Config) []Rule {
	return []Rule{
		classSubsumption{},
		propertySubsumption{},
		symmetricClosure{},
		inverseClosure{},
		siblingInference{},
		groupSeed{memberships: cfg.Memberships},
		placeConnection{},
		raceGroup{groups: cfg.RaceGroups},
	}
}
