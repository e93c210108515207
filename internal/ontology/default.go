// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package ontology

// DefaultRegistry returns the built-in Middle-earth schema, already
// validated. Callers that need a different schema load one from a file
// instead.
func DefaultRegistry() *Registry {
	r := NewRegistry()

	// Elven kindreds.
	r.AddSubClass(Noldor, Elves)
	r.AddSubClass(Sindar, Elves)
	r.AddSubClass(SilvanElves, Elves)
	r.AddSubClass(HalfElven, Elves)

	// The Free Peoples.
	r.AddSubClass(Elves, FreePeoples)
	r.AddSubClass(Hobbits, FreePeoples)
	r.AddSubClass(Dwarves, FreePeoples)
	r.AddSubClass(Men, FreePeoples)

	// Mannish cultures.
	r.AddSubClass(Gondorians, Men)
	r.AddSubClass(Rohirrim, Men)

	// Divine orders.
	r.AddSubClass(Maiar, Ainur)
	r.AddSubClass(Wizards, Maiar)

	// Creatures of the Enemy.
	r.AddSubClass(Orcs, EvilCreature)
	r.AddSubClass(Spiders, EvilCreature)

	// Family property chain.
	r.AddSubProperty(Parentage, Parent)
	r.AddSubProperty(Children, RelatedTo)
	r.AddSubProperty(Spouse, RelatedTo)
	r.AddSubProperty(Siblings, RelatedTo)

	// Location property chain.
	r.AddSubProperty(Location, SchemaLocation)
	r.AddSubProperty(BirthPlace, Location)
	r.AddSubProperty(DeathPlace, Location)

	// notableFor is a narrower participatedIn, so its statements pick up
	// the participation inverse through subsumption.
	r.AddSubProperty(NotableFor, ParticipatedIn)

	r.SetSymmetric(Spouse)
	r.SetSymmetric(Siblings)

	r.SetInverse(HasMember, MemberOf)
	r.SetInverse(RaceIncludes, BelongsToRace)
	r.SetInverse(HouseIncludes, BelongsToHouse)
	r.SetInverse(WieldedBy, Wields)
	r.SetInverse(HasParticipant, ParticipatedIn)
	r.SetInverse(RiddenBy, Rides)
	r.SetInverse(SpokenBy, Speaks)
	r.SetInverse(Children, Parentage)

	if err := r.Validate(); err != nil {
		panic(err) // the built-in schema is fixed; this cannot fail
	}
	return r
}
