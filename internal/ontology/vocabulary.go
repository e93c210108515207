// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package ontology declares the vocabulary of the Middle-earth knowledge
// graph and the schema registry the reasoner consults: class and property
// hierarchies plus property characteristics (symmetric, inverse pairs).
package ontology

import "github.com/loregraph/loregraph/internal/graph"

// Namespace bases. Entities live under NSResource; domain terms under
// NSOntology; generic terms come from schema.org and the RDF vocabularies.
const (
	NSResource = "http://tolkiengateway.net/kg/resource/"
	NSOntology = "http://tolkiengateway.net/kg/ontology/"
	NSSchema   = "http://schema.org/"
	NSRDF      = "http://www.w3.org/1999/02/22-rdf-syntax-ns#"
	NSRDFS     = "http://www.w3.org/2000/01/rdf-schema#"
	NSXSD      = "http://www.w3.org/2001/XMLSchema#"
	NSDCTerms  = "http://purl.org/dc/terms/"
)

// Res returns the resource IRI for a local entity name.
func Res(name string) graph.Resource {
	return graph.Resource(NSResource + name)
}

// Core RDF terms, plus the provenance and linkage terms the build stage
// attaches to every minted entity.
const (
	Type     = graph.Property(NSRDF + "type")
	Label    = graph.Property(NSRDFS + "label")
	Source   = graph.Property(NSDCTerms + "source")
	Mentions = graph.Property(NSSchema + "mentions")
)

// Entity classes.
const (
	Person       = graph.Resource(NSSchema + "Person")
	Place        = graph.Resource(NSSchema + "Place")
	Event        = graph.Resource(NSSchema + "Event")
	Organization = graph.Resource(NSSchema + "Organization")
	Book         = graph.Resource(NSSchema + "Book")
	Language     = graph.Resource(NSSchema + "Language")
	Product      = graph.Resource(NSSchema + "Product")
	Thing        = graph.Resource(NSSchema + "Thing")

	Artifact = graph.Resource(NSOntology + "Artifact")
	Race     = graph.Resource(NSOntology + "Race")
	House    = graph.Resource(NSOntology + "House")
	Creature = graph.Resource(NSOntology + "Creature")
)

// Race and people classes. Races double as entities, so they live in the
// resource namespace.
const (
	Noldor       = graph.Resource(NSResource + "Noldor")
	Sindar       = graph.Resource(NSResource + "Sindar")
	SilvanElves  = graph.Resource(NSResource + "Silvan_Elves")
	HalfElven    = graph.Resource(NSResource + "Half_elven")
	Elves        = graph.Resource(NSResource + "Elves")
	Hobbits      = graph.Resource(NSResource + "Hobbits")
	Dwarves      = graph.Resource(NSResource + "Dwarves")
	Men          = graph.Resource(NSResource + "Men")
	FreePeoples  = graph.Resource(NSResource + "Free_Peoples")
	Gondorians   = graph.Resource(NSResource + "Gondorians")
	Rohirrim     = graph.Resource(NSResource + "Rohirrim")
	Ainur        = graph.Resource(NSResource + "Ainur")
	Maiar        = graph.Resource(NSResource + "Maiar")
	Wizards      = graph.Resource(NSResource + "Wizards")
	Orcs         = graph.Resource(NSResource + "Orcs")
	Spiders      = graph.Resource(NSResource + "Spiders")
	EvilCreature = graph.Resource(NSResource + "Evil_Creatures")

	// Broader groups reached through the race→group mapping.
	HobbitKind       = graph.Resource(NSResource + "Hobbit-kind")
	DwarfKind        = graph.Resource(NSResource + "Dwarf-kind")
	Numenoreans      = graph.Resource(NSResource + "Númenóreans")
	Northmen         = graph.Resource(NSResource + "Northmen")
	ServantsMordor   = graph.Resource(NSResource + "Servants_of_Mordor")
	FellowshipOfRing = graph.Resource(NSResource + "Fellowship_of_the_Ring")
)

// Family and person properties.
const (
	Name        = graph.Property(NSSchema + "name")
	BirthDate   = graph.Property(NSSchema + "birthDate")
	DeathDate   = graph.Property(NSSchema + "deathDate")
	Nationality = graph.Property(NSSchema + "nationality")
	JobTitle    = graph.Property(NSSchema + "jobTitle")
	Gender      = graph.Property(NSSchema + "gender")
	Height      = graph.Property(NSSchema + "height")
	Parent      = graph.Property(NSSchema + "parent")
	Children    = graph.Property(NSSchema + "children")
	Spouse      = graph.Property(NSSchema + "spouse")
	RelatedTo   = graph.Property(NSSchema + "relatedTo")

	Parentage = graph.Property(NSOntology + "parentage")
	Siblings  = graph.Property(NSOntology + "siblings")
)

// Location properties. BirthPlace and DeathPlace feed the connection
// rule; the location chain rolls up to schema:location.
const (
	SchemaLocation   = graph.Property(NSSchema + "location")
	ContainedInPlace = graph.Property(NSSchema + "containedInPlace")
	AdditionalType   = graph.Property(NSSchema + "additionalType")

	Location        = graph.Property(NSOntology + "location")
	BirthPlace      = graph.Property(NSOntology + "birthPlace")
	DeathPlace      = graph.Property(NSOntology + "deathPlace")
	HasConnectionTo = graph.Property(NSOntology + "hasConnectionTo")
	Realm           = graph.Property(NSOntology + "realm")
	Inhabitants     = graph.Property(NSOntology + "inhabitants")
	FoundingDate    = graph.Property(NSOntology + "foundingDate")
	DestructionDate = graph.Property(NSOntology + "destructionDate")
	HasCapital      = graph.Property(NSOntology + "hasCapital")
)

// Membership and association properties, declared as inverse pairs in the
// default registry.
const (
	MemberOf       = graph.Property(NSOntology + "memberOf")
	HasMember      = graph.Property(NSOntology + "hasMember")
	BelongsToRace  = graph.Property(NSOntology + "belongsToRace")
	RaceIncludes   = graph.Property(NSOntology + "raceIncludes")
	BelongsToHouse = graph.Property(NSOntology + "belongsToHouse")
	HouseIncludes  = graph.Property(NSOntology + "houseIncludes")
	Wields         = graph.Property(NSOntology + "wields")
	WieldedBy      = graph.Property(NSOntology + "wieldedBy")
	ParticipatedIn = graph.Property(NSOntology + "participatedIn")
	HasParticipant = graph.Property(NSOntology + "hasParticipant")
	NotableFor     = graph.Property(NSOntology + "notableFor")
	Rides          = graph.Property(NSOntology + "rides")
	RiddenBy       = graph.Property(NSOntology + "riddenBy")
	Speaks         = graph.Property(NSOntology + "speaks")
	SpokenBy       = graph.Property(NSOntology + "spokenBy")
	Affiliation    = graph.Property(NSOntology + "affiliation")
)

// Book properties.
const (
	Author        = graph.Property(NSSchema + "author")
	DatePublished = graph.Property(NSSchema + "datePublished")
	Publisher     = graph.Property(NSSchema + "publisher")
	ISBN          = graph.Property(NSSchema + "isbn")
	InLanguage    = graph.Property(NSSchema + "inLanguage")
	NumberOfPages = graph.Property(NSSchema + "numberOfPages")
)

// Note properties hold descriptive prose that could not be resolved to an
// entity reference during graph building.
const (
	SpouseNote      = graph.Property(NSOntology + "maritalStatusNote")
	ChildrenNote    = graph.Property(NSOntology + "childrenNote")
	ParentageNote   = graph.Property(NSOntology + "parentageNote")
	SiblingsNote    = graph.Property(NSOntology + "siblingsNote")
	HouseNote       = graph.Property(NSOntology + "houseNote")
	AffiliationNote = graph.Property(NSOntology + "affiliationNote")
)

// Literal datatypes.
const (
	XSDDate    = NSXSD + "date"
	XSDInteger = NSXSD + "integer"
	XSDGYear   = NSXSD + "gYear"
)

// Prefixes maps the short prefixes used in ontology and shape files (and
// in Turtle output) to their namespace bases.
var Prefixes = map[string]string{
	"tg":      NSResource,
	"tgo":     NSOntology,
	"schema":  NSSchema,
	"rdf":     NSRDF,
	"rdfs":    NSRDFS,
	"xsd":     NSXSD,
	"dcterms": NSDCTerms,
}

// Expand resolves a CURIE such as "tgo:parentage" against Prefixes. Full
// IRIs and unprefixed names pass through unchanged.
func Expand(curie string) string {
	return expandWith(Prefixes, curie)
}
