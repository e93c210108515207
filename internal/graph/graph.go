// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package graph provides an in-memory triple store with per-position
// indexes, insert-if-absent deduplication, and snapshot reads. Statements
// are only ever added, never removed; insertion order is preserved so that
// serialized output is reproducible.
package graph

import (
	"fmt"
	"iter"
)

// Resource identifies an entity or ontology term by IRI. Comparison is
// plain string equality.
type Resource string

// Property identifies a predicate by IRI.
type Property string

// TermKind discriminates the object position of a statement.
type TermKind uint8

const (
	// TermAny is the zero kind. As a Match argument it acts as a
	// wildcard; it is never stored in a statement.
	TermAny TermKind = iota
	// TermIRI marks an object that names a resource.
	TermIRI
	// TermLiteral marks a scalar value (text, date, number).
	TermLiteral
)

// Term is the object position of a statement: either a resource reference
// or a literal with an optional datatype or language tag. Terms are
// comparable; structural equality is term identity.
type Term struct {
	Kind     TermKind
	Value    string // IRI for TermIRI, lexical form for TermLiteral
	Datatype string // literal datatype IRI, empty for plain or tagged text
	Lang     string // literal language tag, empty unless tagged text
}

// IRI returns a term referencing r.
func IRI(r Resource) Term {
	return Term{Kind: TermIRI, Value: string(r)}
}

// Text returns a plain text literal.
func Text(s string) Term {
	return Term{Kind: TermLiteral, Value: s}
}

// LangText returns a language-tagged text literal.
func LangText(s, lang string) Term {
	return Term{Kind: TermLiteral, Value: s, Lang: lang}
}

// TypedLiteral returns a literal with an explicit datatype IRI.
func TypedLiteral(value, datatype string) Term {
	return Term{Kind: TermLiteral, Value: value, Datatype: datatype}
}

// Resource reports the referenced resource when the term is an IRI.
func (t Term) Resource() (Resource, bool) {
	if t.Kind != TermIRI {
		return "", false
	}
	return Resource(t.Value), true
}

// IsZero reports whether the term is the wildcard zero value.
func (t Term) IsZero() bool {
	return t.Kind == TermAny && t.Value == "" && t.Datatype == "" && t.Lang == ""
}

func (t Term) String() string {
	switch t.Kind {
	case TermIRI:
		return "<" + t.Value + ">"
	case TermLiteral:
		switch {
		case t.Lang != "":
			return fmt.Sprintf("%q@%s", t.Value, t.Lang)
		case t.Datatype != "":
			return fmt.Sprintf("%q^^<%s>", t.Value, t.Datatype)
		default:
			return fmt.Sprintf("%q", t.Value)
		}
	default:
		return "?"
	}
}

// Statement is one (subject, predicate, object) fact. Statements are
// immutable values; two statements are the same fact exactly when all
// three positions are equal.
type Statement struct {
	Subject   Resource
	Predicate Property
	Object    Term
}

func (s Statement) String() string {
	return fmt.Sprintf("<%s> <%s> %s", s.Subject, s.Predicate, s.Object)
}

type subjPredKey struct {
	s Resource
	p Property
}

type predObjKey struct {
	p Property
	o Term
}

// Graph owns a deduplicated, append-only set of statements. The zero
// value is not usable; call New. Graph is not safe for concurrent
// mutation; concurrent reads are safe as long as no insert runs.
type Graph struct {
	statements []Statement
	seen       map[Statement]int

	bySubject  map[Resource][]int
	byPred     map[Property][]int
	byObject   map[Term][]int
	bySubjPred map[subjPredKey][]int
	byPredObj  map[predObjKey][]int
}

// New returns an empty graph.
func New() *Graph {
	return &Graph{
		seen:       make(map[Statement]int),
		bySubject:  make(map[Resource][]int),
		byPred:     make(map[Property][]int),
		byObject:   make(map[Term][]int),
		bySubjPred: make(map[subjPredKey][]int),
		byPredObj:  make(map[predObjKey][]int),
	}
}

// InsertIfAbsent adds st unless an equal statement is already present and
// reports whether it was newly added. All indexes are updated together
// with the insertion, so a reader never sees a partially indexed
// statement.
func (g *Graph) InsertIfAbsent(st Statement) bool {
	if _, ok := g.seen[st]; ok {
		return false
	}
	ord := len(g.statements)
	g.statements = append(g.statements, st)
	g.seen[st] = ord
	g.bySubject[st.Subject] = append(g.bySubject[st.Subject], ord)
	g.byPred[st.Predicate] = append(g.byPred[st.Predicate], ord)
	g.byObject[st.Object] = append(g.byObject[st.Object], ord)
	g.bySubjPred[subjPredKey{st.Subject, st.Predicate}] = append(g.bySubjPred[subjPredKey{st.Subject, st.Predicate}], ord)
	g.byPredObj[predObjKey{st.Predicate, st.Object}] = append(g.byPredObj[predObjKey{st.Predicate, st.Object}], ord)
	return true
}

// Contains reports whether an equal statement is present.
func (g *Graph) Contains(st Statement) bool {
	_, ok := g.seen[st]
	return ok
}

// Len returns the number of statements.
func (g *Graph) Len() int {
	return len(g.statements)
}

// Statements iterates all statements in insertion order.
func (g *Graph) Statements() iter.Seq[Statement] {
	return g.match(Statement{}, len(g.statements))
}

// Match iterates statements matching the fixed positions, in insertion
// order. Zero values (empty Resource or Property, zero Term) act as
// wildcards. The sequence is restartable; statements inserted after the
// call are not visited by it.
func (g *Graph) Match(s Resource, p Property, o Term) iter.Seq[Statement] {
	return g.match(Statement{Subject: s, Predicate: p, Object: o}, len(g.statements))
}

// Snapshot returns a read-only view pinned to the current statement
// count. Later insertions are invisible through the snapshot.
func (g *Graph) Snapshot() *Snapshot {
	return &Snapshot{g: g, n: len(g.statements)}
}

// match picks the narrowest index for the fixed positions of pat and
// yields ordinals below limit in ascending order. Index slices are
// append-ordered, so ascending order is position order in the slice.
func (g *Graph) match(pat Statement, limit int) iter.Seq[Statement] {
	wildS := pat.Subject == ""
	wildP := pat.Predicate == ""
	wildO := pat.Object.IsZero()

	// Fully fixed: a containment probe.
	if !wildS && !wildP && !wildO {
		return func(yield func(Statement) bool) {
			if ord, ok := g.seen[pat]; ok && ord < limit {
				yield(pat)
			}
		}
	}

	var ords []int
	var filter func(Statement) bool
	switch {
	case !wildS && !wildP:
		ords = g.bySubjPred[subjPredKey{pat.Subject, pat.Predicate}]
	case !wildP && !wildO:
		ords = g.byPredObj[predObjKey{pat.Predicate, pat.Object}]
	case !wildS && !wildO:
		ords = g.bySubject[pat.Subject]
		filter = func(st Statement) bool { return st.Object == pat.Object }
	case !wildS:
		ords = g.bySubject[pat.Subject]
	case !wildP:
		ords = g.byPred[pat.Predicate]
	case !wildO:
		ords = g.byObject[pat.Object]
	default:
		return func(yield func(Statement) bool) {
			for _, st := range g.statements[:limit] {
				if !yield(st) {
					return
				}
			}
		}
	}

	return func(yield func(Statement) bool) {
		for _, ord := range ords {
			if ord >= limit {
				return
			}
			st := g.statements[ord]
			if filter != nil && !filter(st) {
				continue
			}
			if !yield(st) {
				return
			}
		}
	}
}

// Snapshot is an immutable view of a graph at a fixed statement count.
// Inference rules read snapshots so that facts produced within a pass
// become visible only in the next pass.
type Snapshot struct {
	g *Graph
	n int
}

// Len returns the number of statements visible through the snapshot.
func (s *Snapshot) Len() int {
	return s.n
}

// Contains reports whether st is visible through the snapshot.
func (s *Snapshot) Contains(st Statement) bool {
	ord, ok := s.g.seen[st]
	return ok && ord < s.n
}

// Match is Graph.Match restricted to the snapshot's statements.
func (s *Snapshot) Match(sub Resource, p Property, o Term) iter.Seq[Statement] {
	return s.g.match(Statement{Subject: sub, Predicate: p, Object: o}, s.n)
}

// Statements iterates the snapshot's statements in insertion order.
func (s *Snapshot) Statements() iter.Seq[Statement] {
	return s.g.match(Statement{}, s.n)
}
