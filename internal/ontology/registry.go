// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package ontology

import (
	"fmt"
	"sort"
	"strings"

	"github.com/loregraph/loregraph/internal/graph"
)

// SchemaError reports an invalid schema declaration: a cyclic class or
// property hierarchy, conflicting inverse declarations, or a property
// that is both symmetric and paired with an inverse. A run aborts on a
// SchemaError before touching the graph.
type SchemaError struct {
	Reason string
	Chain  []string // offending terms, in declaration-walk order
}

func (e *SchemaError) Error() string {
	if len(e.Chain) == 0 {
		return "schema: " + e.Reason
	}
	return fmt.Sprintf("schema: %s: %s", e.Reason, strings.Join(e.Chain, " -> "))
}

// Registry holds the declared class hierarchy, property hierarchy, and
// property characteristics. Declarations accumulate through the Add and
// Set methods; Validate must succeed before the closure lookups are used.
// A validated registry is immutable for the duration of a reasoning run.
type Registry struct {
	subClass map[graph.Resource][]graph.Resource
	subProp  map[graph.Property][]graph.Property

	symmetric    map[graph.Property]bool
	inverseDecls [][2]graph.Property

	inverse       map[graph.Property]graph.Property
	symmetricList []graph.Property
	inverseList   []graph.Property
	classClosure  map[graph.Resource][]graph.Resource
	propClosure   map[graph.Property][]graph.Property
	validated     bool
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		subClass:  make(map[graph.Resource][]graph.Resource),
		subProp:   make(map[graph.Property][]graph.Property),
		symmetric: make(map[graph.Property]bool),
	}
}

// AddSubClass declares sub as a direct subclass of super.
func (r *Registry) AddSubClass(sub, super graph.Resource) {
	r.invalidate()
	r.subClass[sub] = appendMissing(r.subClass[sub], super)
}

// AddSubProperty declares sub as a direct subproperty of super.
func (r *Registry) AddSubProperty(sub, super graph.Property) {
	r.invalidate()
	r.subProp[sub] = appendMissing(r.subProp[sub], super)
}

// SetSymmetric marks p as a symmetric property.
func (r *Registry) SetSymmetric(p graph.Property) {
	r.invalidate()
	r.symmetric[p] = true
}

// SetInverse declares p and q as an inverse pair. Both directions are
// registered. Conflicts with earlier declarations surface in Validate.
func (r *Registry) SetInverse(p, q graph.Property) {
	r.invalidate()
	r.inverseDecls = append(r.inverseDecls, [2]graph.Property{p, q})
}

func (r *Registry) invalidate() {
	r.validated = false
	r.inverse = nil
	r.symmetricList = nil
	r.inverseList = nil
	r.classClosure = nil
	r.propClosure = nil
}

// Validate checks every declaration and precomputes the transitive
// closures. It is idempotent; the first failure is returned as a
// *SchemaError and nothing is served from a registry that has not
// validated.
func (r *Registry) Validate() error {
	if r.validated {
		return nil
	}

	inverse := make(map[graph.Property]graph.Property)
	for _, pair := range r.inverseDecls {
		p, q := pair[0], pair[1]
		if prev, ok := inverse[p]; ok && prev != q {
			return &SchemaError{
				Reason: "conflicting inverse declarations",
				Chain:  []string{string(p), string(prev), string(q)},
			}
		}
		if prev, ok := inverse[q]; ok && prev != p {
			return &SchemaError{
				Reason: "conflicting inverse declarations",
				Chain:  []string{string(q), string(prev), string(p)},
			}
		}
		inverse[p] = q
		inverse[q] = p
	}
	for p := range r.symmetric {
		if q, ok := inverse[p]; ok {
			return &SchemaError{
				Reason: "property is both symmetric and declared inverse",
				Chain:  []string{string(p), string(q)},
			}
		}
	}

	if chain := findCycle(r.subClass); chain != nil {
		return &SchemaError{Reason: "class hierarchy cycle", Chain: chain}
	}
	if chain := findCycle(r.subProp); chain != nil {
		return &SchemaError{Reason: "property hierarchy cycle", Chain: chain}
	}

	classClosure := make(map[graph.Resource][]graph.Resource, len(r.subClass))
	for c := range r.subClass {
		classClosure[c] = closeOver(c, r.subClass)
	}
	propClosure := make(map[graph.Property][]graph.Property, len(r.subProp))
	for p := range r.subProp {
		propClosure[p] = closeOver(p, r.subProp)
	}

	symmetricList := make([]graph.Property, 0, len(r.symmetric))
	for p := range r.symmetric {
		symmetricList = append(symmetricList, p)
	}
	sort.Slice(symmetricList, func(i, j int) bool { return symmetricList[i] < symmetricList[j] })
	inverseList := make([]graph.Property, 0, len(inverse))
	for p := range inverse {
		inverseList = append(inverseList, p)
	}
	sort.Slice(inverseList, func(i, j int) bool { return inverseList[i] < inverseList[j] })

	r.inverse = inverse
	r.symmetricList = symmetricList
	r.inverseList = inverseList
	r.classClosure = classClosure
	r.propClosure = propClosure
	r.validated = true
	return nil
}

// SuperClasses returns every class transitively above c, sorted, never
// including c itself. The registry must have validated.
func (r *Registry) SuperClasses(c graph.Resource) []graph.Resource {
	return r.classClosure[c]
}

// SuperProperties returns every property transitively above p, sorted.
func (r *Registry) SuperProperties(p graph.Property) []graph.Property {
	return r.propClosure[p]
}

// IsSymmetric reports whether p is declared symmetric.
func (r *Registry) IsSymmetric(p graph.Property) bool {
	return r.symmetric[p]
}

// InverseOf returns the declared inverse of p, if any.
func (r *Registry) InverseOf(p graph.Property) (graph.Property, bool) {
	q, ok := r.inverse[p]
	return q, ok
}

// SymmetricProperties returns the declared symmetric properties, sorted.
func (r *Registry) SymmetricProperties() []graph.Property {
	return r.symmetricList
}

// InverseProperties returns every property with a declared inverse,
// sorted. Both members of each pair appear.
func (r *Registry) InverseProperties() []graph.Property {
	return r.inverseList
}

// closeOver walks the direct-super relation from start and returns the
// reachable terms, sorted for deterministic rule output. Cycles have been
// excluded by Validate, so the walk terminates.
func closeOver[T ~string](start T, direct map[T][]T) []T {
	seen := make(map[T]bool)
	var out []T
	frontier := append([]T(nil), direct[start]...)
	for len(frontier) > 0 {
		t := frontier[0]
		frontier = frontier[1:]
		if t == start || seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
		frontier = append(frontier, direct[t]...)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// findCycle runs a colored depth-first search over the relation and
// returns the terms of the first cycle found, or nil. Roots are visited
// in sorted order so the reported chain is stable.
func findCycle[T ~string](direct map[T][]T) []string {
	const (
		white = 0
		grey  = 1
		black = 2
	)
	color := make(map[T]int)
	var stack []T
	var cycle []string

	var visit func(t T) bool
	visit = func(t T) bool {
		color[t] = grey
		stack = append(stack, t)
		for _, s := range direct[t] {
			switch color[s] {
			case grey:
				// Back edge: slice the stack from the first occurrence.
				for i, v := range stack {
					if v == s {
						for _, c := range stack[i:] {
							cycle = append(cycle, string(c))
						}
						cycle = append(cycle, string(s))
						return true
					}
				}
			case white:
				if visit(s) {
					return true
				}
			}
		}
		stack = stack[:len(stack)-1]
		color[t] = black
		return false
	}

	roots := make([]T, 0, len(direct))
	for t := range direct {
		roots = append(roots, t)
	}
	sort.Slice(roots, func(i, j int) bool { return roots[i] < roots[j] })
	for _, t := range roots {
		if color[t] == white && visit(t) {
			return cycle
		}
	}
	return nil
}

func appendMissing[T comparable](list []T, v T) []T {
	for _, existing := range list {
		if existing == v {
			return list
		}
	}
	return append(list, v)
}
