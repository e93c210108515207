// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package build maps parsed infobox records to triples: template names
// pick the entity class, infobox parameters become properties, wikilink
// values become entity references and everything else becomes literals.
package build

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"go.yaml.in/yaml/v3"

	"github.com/loregraph/loregraph/internal/graph"
	"github.com/loregraph/loregraph/internal/ontology"
	"github.com/loregraph/loregraph/internal/wikitext"
	"github.com/loregraph/loregraph/pkg/types"
)

const parsedDir = "parsed"

// classKeywords maps template-name keywords to entity classes, checked
// in order so "character infobox" and "infobox character" both match.
var classKeywords = []struct {
	keyword string
	class   graph.Resource
}{
	{"character", ontology.Person},
	{"person", ontology.Person},
	{"location", ontology.Place},
	{"book", ontology.Book},
	{"event", ontology.Event},
	{"language", ontology.Language},
	{"weapon", ontology.Product},
	{"organization", ontology.Organization},
	{"item", ontology.Thing},
}

// ClassForTemplate picks the entity class for a template name.
func ClassForTemplate(name string) graph.Resource {
	for _, ck := range classKeywords {
		if strings.Contains(name, ck.keyword) {
			return ck.class
		}
	}
	return ontology.Thing
}

// Per-kind infobox parameter → property tables.
var characterProps = map[string]graph.Property{
	"name":          ontology.Name,
	"birth":         ontology.BirthDate,
	"death":         ontology.DeathDate,
	"birthlocation": ontology.BirthPlace,
	"deathlocation": ontology.DeathPlace,
	"culture":       ontology.Nationality,
	"race":          ontology.BelongsToRace,
	"people":        ontology.BelongsToRace,
	"realm":         ontology.Realm,
	"weapon":        ontology.Wields,
	"weapons":       ontology.Wields,
	"title":         ontology.JobTitle,
	"gender":        ontology.Gender,
	"house":         ontology.BelongsToHouse,
	"parentage":     ontology.Parentage,
	"spouse":        ontology.Spouse,
	"children":      ontology.Children,
	"siblings":      ontology.Siblings,
	"height":        ontology.Height,
	"steed":         ontology.Rides,
	"language":      ontology.Speaks,
	"affiliation":   ontology.Affiliation,
}

var locationProps = map[string]graph.Property{
	"name":        ontology.Name,
	"type":        ontology.AdditionalType,
	"location":    ontology.ContainedInPlace,
	"inhabitants": ontology.Inhabitants,
	"founded":     ontology.FoundingDate,
	"destroyed":   ontology.DestructionDate,
	"capital":     ontology.HasCapital,
}

var bookProps = map[string]graph.Property{
	"name":      ontology.Name,
	"author":    ontology.Author,
	"published": ontology.DatePublished,
	"publisher": ontology.Publisher,
	"isbn":      ontology.ISBN,
	"language":  ontology.InLanguage,
	"pages":     ontology.NumberOfPages,
}

func propsForClass(class graph.Resource) map[string]graph.Property {
	switch class {
	case ontology.Person:
		return characterProps
	case ontology.Place:
		return locationProps
	case ontology.Book:
		return bookProps
	default:
		return nil
	}
}

// noteProps maps relationship parameters to the note properties that
// hold their descriptive, non-referential values. Those stay literals
// and are never mirrored by the reasoner.
var noteProps = map[string]graph.Property{
	"spouse":      ontology.SpouseNote,
	"children":    ontology.ChildrenNote,
	"parentage":   ontology.ParentageNote,
	"siblings":    ontology.SiblingsNote,
	"house":       ontology.HouseNote,
	"affiliation": ontology.AffiliationNote,
}

// descriptiveValues are notes, not entity references: "Never married"
// must not become a spouse relationship.
var descriptiveValues = map[string]bool{
	"never married": true, "unmarried": true, "never": true,
	"none": true, "unknown": true, "n/a": true, "-": true,
	"no children": true, "no spouse": true, "childless": true,
	"none known": true, "not applicable": true,
	"at least one": true, "several": true, "many": true, "some": true,
	"disputed": true, "unclear": true, "possibly": true,
}

var descriptivePrefixes = []string{"at least", "possibly", "unknown", "none"}

// IsDescriptive reports whether a cleaned value is a descriptive note
// rather than an entity reference.
func IsDescriptive(value string) bool {
	v := strings.ToLower(strings.TrimSpace(value))
	if descriptiveValues[v] {
		return true
	}
	for _, prefix := range descriptivePrefixes {
		if strings.HasPrefix(v, prefix) {
			return true
		}
	}
	return false
}

var (
	unsafeIRIChars = regexp.MustCompile(`[^\w\s-]`)
	spaceRun       = regexp.MustCompile(`\s+`)
	safeParamChars = regexp.MustCompile(`\W`)
	integerValue   = regexp.MustCompile(`^\d+$`)
	isoDateValue   = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
)

// EntityIRI mints the resource IRI for a page title:
// "Gandalf the Grey" becomes tg:Gandalf_the_Grey.
func EntityIRI(title string) graph.Resource {
	clean := unsafeIRIChars.ReplaceAllString(title, "")
	clean = spaceRun.ReplaceAllString(strings.TrimSpace(clean), "_")
	return ontology.Res(clean)
}

// literalTerm types a cleaned literal value: all-digit values become
// integers, ISO dates become xsd:date, everything else is tagged text.
func literalTerm(value string) graph.Term {
	switch {
	case integerValue.MatchString(value):
		return graph.TypedLiteral(value, ontology.XSDInteger)
	case isoDateValue.MatchString(value):
		return graph.TypedLiteral(value, ontology.XSDDate)
	default:
		return graph.LangText(value, "en")
	}
}

// Stats holds counts from a build run.
type Stats struct {
	Pages     int
	Entities  int
	Mentions  int
	Triples   int
	NoInfobox int
}

// LoadRecords reads parsed record files selected by glob (doublestar
// patterns) under dataDir/parsed, in lexical path order.
func LoadRecords(dataDir, glob string) ([]types.Record, error) {
	if glob == "" {
		glob = "**/*.yaml"
	}
	root := filepath.Join(dataDir, parsedDir)
	matches, err := doublestar.Glob(os.DirFS(root), glob)
	if err != nil {
		return nil, fmt.Errorf("globbing records: %w", err)
	}

	var records []types.Record
	for _, match := range matches {
		data, err := fs.ReadFile(os.DirFS(root), match)
		if err != nil {
			return nil, fmt.Errorf("reading record %s: %w", match, err)
		}
		var record types.Record
		if err := yaml.Unmarshal(data, &record); err != nil {
			return nil, fmt.Errorf("parsing record %s: %w", match, err)
		}
		records = append(records, record)
	}
	return records, nil
}

// Build turns records into the initial triple graph. Each infobox mints
// an entity with a type, a label, and one triple per parameter; a capped
// number of wikilinks become schema:mentions triples.
func Build(records []types.Record, cfg types.BuildConfig, w io.Writer) (*graph.Graph, Stats) {
	maxLinks := cfg.MaxLinks
	if maxLinks <= 0 {
		maxLinks = 10
	}

	g := graph.New()
	var stats Stats
	for _, record := range records {
		stats.Pages++
		if len(record.Infoboxes) == 0 {
			stats.NoInfobox++
			continue
		}

		entity := EntityIRI(record.Title)
		for _, infobox := range record.Infoboxes {
			buildEntity(g, entity, record, infobox)
			stats.Entities++
		}

		links := record.Wikilinks
		if len(links) > maxLinks {
			links = links[:maxLinks]
		}
		for _, link := range links {
			if g.InsertIfAbsent(graph.Statement{
				Subject:   entity,
				Predicate: ontology.Mentions,
				Object:    graph.IRI(EntityIRI(link.Target)),
			}) {
				stats.Mentions++
			}
		}
	}

	stats.Triples = g.Len()
	fmt.Fprintf(w, "Built %d triples from %d pages (%d entities, %d mentions, %d pages without infoboxes)\n",
		stats.Triples, stats.Pages, stats.Entities, stats.Mentions, stats.NoInfobox)
	return g, stats
}

func buildEntity(g *graph.Graph, entity graph.Resource, record types.Record, infobox types.Template) {
	class := ClassForTemplate(infobox.Name)
	g.InsertIfAbsent(graph.Statement{Subject: entity, Predicate: ontology.Type, Object: graph.IRI(class)})
	g.InsertIfAbsent(graph.Statement{Subject: entity, Predicate: ontology.Label, Object: graph.LangText(record.Title, "en")})
	g.InsertIfAbsent(graph.Statement{
		Subject:   entity,
		Predicate: ontology.Source,
		Object: graph.Term{
			Kind:  graph.TermIRI,
			Value: "https://tolkiengateway.net/wiki/" + strings.ReplaceAll(record.Title, " ", "_"),
		},
	})

	// Parameters are visited in sorted order so rebuilt graphs serialize
	// identically.
	params := make([]string, 0, len(infobox.Params))
	for param := range infobox.Params {
		params = append(params, param)
	}
	sort.Strings(params)

	props := propsForClass(class)
	for _, param := range params {
		raw := infobox.Params[param]
		param = strings.ToLower(strings.TrimSpace(param))
		prop, ok := props[param]
		if !ok {
			safe := safeParamChars.ReplaceAllString(param, "_")
			prop = graph.Property(ontology.NSOntology + safe)
		}

		if target, ok := wikitext.LinkTarget(raw); ok {
			g.InsertIfAbsent(graph.Statement{
				Subject:   entity,
				Predicate: prop,
				Object:    graph.IRI(EntityIRI(target)),
			})
			continue
		}

		clean := wikitext.CleanValue(raw)
		if clean == "" {
			continue
		}
		if IsDescriptive(clean) {
			note, ok := noteProps[param]
			if !ok {
				note = graph.Property(ontology.NSOntology + safeParamChars.ReplaceAllString(param, "_") + "Note")
			}
			g.InsertIfAbsent(graph.Statement{Subject: entity, Predicate: note, Object: graph.LangText(clean, "en")})
			continue
		}
		g.InsertIfAbsent(graph.Statement{Subject: entity, Predicate: prop, Object: literalTerm(clean)})
	}
}
