// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package export serializes triple graphs as N-Triples and Turtle, and
// reads N-Triples back for stage handoff. Output is deterministic for a
// given graph: statements serialize in insertion order.
package export

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/loregraph/loregraph/internal/graph"
	"github.com/loregraph/loregraph/internal/ontology"
)

// WriteNTriples writes one escaped triple per line, in insertion order.
func WriteNTriples(w io.Writer, g *graph.Graph) error {
	bw := bufio.NewWriter(w)
	for st := range g.Statements() {
		if _, err := fmt.Fprintf(bw, "<%s> <%s> %s .\n", st.Subject, st.Predicate, formatTerm(st.Object)); err != nil {
			return err
		}
	}
	return bw.Flush()
}

func formatTerm(t graph.Term) string {
	if t.Kind == graph.TermIRI {
		return "<" + t.Value + ">"
	}
	lit := `"` + escapeLiteral(t.Value) + `"`
	switch {
	case t.Lang != "":
		return lit + "@" + t.Lang
	case t.Datatype != "":
		return lit + "^^<" + t.Datatype + ">"
	default:
		return lit
	}
}

func escapeLiteral(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch r {
		case '\\':
			b.WriteString(`\\`)
		case '"':
			b.WriteString(`\"`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

func unescapeLiteral(s string) string {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] != '\\' || i+1 >= len(s) {
			b.WriteByte(s[i])
			continue
		}
		i++
		switch s[i] {
		case '\\':
			b.WriteByte('\\')
		case '"':
			b.WriteByte('"')
		case 'n':
			b.WriteByte('\n')
		case 'r':
			b.WriteByte('\r')
		case 't':
			b.WriteByte('\t')
		default:
			b.WriteByte('\\')
			b.WriteByte(s[i])
		}
	}
	return b.String()
}

// WriteTurtle writes the graph as Turtle: a sorted prefix header, then
// one block per subject in first-seen order, with predicate-object lists
// separated by semicolons.
func WriteTurtle(w io.Writer, g *graph.Graph) error {
	bw := bufio.NewWriter(w)

	prefixes := make([]string, 0, len(ontology.Prefixes))
	for p := range ontology.Prefixes {
		prefixes = append(prefixes, p)
	}
	sort.Strings(prefixes)
	for _, p := range prefixes {
		if _, err := fmt.Fprintf(bw, "@prefix %s: <%s> .\n", p, ontology.Prefixes[p]); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintln(bw); err != nil {
		return err
	}

	var subjects []graph.Resource
	seen := make(map[graph.Resource]bool)
	for st := range g.Statements() {
		if !seen[st.Subject] {
			seen[st.Subject] = true
			subjects = append(subjects, st.Subject)
		}
	}

	for _, subject := range subjects {
		if err := writeSubjectBlock(bw, g, subject); err != nil {
			return err
		}
	}
	return bw.Flush()
}

func writeSubjectBlock(w io.Writer, g *graph.Graph, subject graph.Resource) error {
	var lines []string
	for st := range g.Match(subject, "", graph.Term{}) {
		lines = append(lines, fmt.Sprintf("    %s %s", curie(st.Predicate), turtleTerm(st.Object)))
	}
	if len(lines) == 0 {
		return nil
	}
	if _, err := fmt.Fprintf(w, "%s\n%s .\n\n", curie(subject), strings.Join(lines, " ;\n")); err != nil {
		return err
	}
	return nil
}

// curie compacts an IRI against the known prefixes; unknown namespaces
// stay as full <...> IRIs. rdf:type compacts to "a" per Turtle custom.
func curie[T ~string](iri T) string {
	if graph.Property(iri) == ontology.Type {
		return "a"
	}
	s := string(iri)
	for prefix, ns := range ontology.Prefixes {
		if strings.HasPrefix(s, ns) {
			local := s[len(ns):]
			if local != "" && !strings.ContainsAny(local, "/#:") {
				return prefix + ":" + local
			}
		}
	}
	return "<" + s + ">"
}

func turtleTerm(t graph.Term) string {
	if t.Kind == graph.TermIRI {
		return curie(t.Value)
	}
	lit := `"` + escapeLiteral(t.Value) + `"`
	switch {
	case t.Lang != "":
		return lit + "@" + t.Lang
	case t.Datatype != "":
		return lit + "^^" + curie(t.Datatype)
	default:
		return lit
	}
}

// ReadNTriples parses N-Triples from r into a fresh graph, preserving
// line order as insertion order. Blank lines and # comments are skipped.
func ReadNTriples(r io.Reader) (*graph.Graph, error) {
	g := graph.New()
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		st, err := parseLine(line)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}
		g.InsertIfAbsent(st)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading triples: %w", err)
	}
	return g, nil
}

func parseLine(line string) (graph.Statement, error) {
	rest := line

	subject, rest, err := parseIRI(rest)
	if err != nil {
		return graph.Statement{}, fmt.Errorf("subject: %w", err)
	}
	predicate, rest, err := parseIRI(strings.TrimLeft(rest, " \t"))
	if err != nil {
		return graph.Statement{}, fmt.Errorf("predicate: %w", err)
	}
	object, rest, err := parseTerm(strings.TrimLeft(rest, " \t"))
	if err != nil {
		return graph.Statement{}, fmt.Errorf("object: %w", err)
	}
	if strings.TrimSpace(rest) != "." {
		return graph.Statement{}, fmt.Errorf("missing terminating dot in %q", line)
	}

	return graph.Statement{
		Subject:   graph.Resource(subject),
		Predicate: graph.Property(predicate),
		Object:    object,
	}, nil
}

func parseIRI(s string) (string, string, error) {
	if !strings.HasPrefix(s, "<") {
		return "", "", fmt.Errorf("expected IRI at %q", s)
	}
	end := strings.IndexByte(s, '>')
	if end < 0 {
		return "", "", fmt.Errorf("unterminated IRI at %q", s)
	}
	return s[1:end], s[end+1:], nil
}

func parseTerm(s string) (graph.Term, string, error) {
	if strings.HasPrefix(s, "<") {
		iri, rest, err := parseIRI(s)
		if err != nil {
			return graph.Term{}, "", err
		}
		return graph.Term{Kind: graph.TermIRI, Value: iri}, rest, nil
	}
	if !strings.HasPrefix(s, `"`) {
		return graph.Term{}, "", fmt.Errorf("expected IRI or literal at %q", s)
	}

	// Find the closing quote, skipping escaped characters.
	end := -1
	for i := 1; i < len(s); i++ {
		if s[i] == '\\' {
			i++
			continue
		}
		if s[i] == '"' {
			end = i
			break
		}
	}
	if end < 0 {
		return graph.Term{}, "", fmt.Errorf("unterminated literal at %q", s)
	}

	term := graph.Term{Kind: graph.TermLiteral, Value: unescapeLiteral(s[1:end])}
	rest := s[end+1:]
	switch {
	case strings.HasPrefix(rest, "@"):
		sp := strings.IndexAny(rest, " \t")
		if sp < 0 {
			sp = len(rest)
		}
		term.Lang = rest[1:sp]
		rest = rest[sp:]
	case strings.HasPrefix(rest, "^^"):
		dt, r, err := parseIRI(rest[2:])
		if err != nil {
			return graph.Term{}, "", fmt.Errorf("datatype: %w", err)
		}
		term.Datatype = dt
		rest = r
	}
	return term, rest, nil
}

// SaveNTriples writes the graph to path, creating parent directories.
func SaveNTriples(path string, g *graph.Graph) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating directory for %s: %w", path, err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if err := WriteNTriples(f, g); err != nil {
		f.Close()
		return fmt.Errorf("writing %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", path, err)
	}
	return nil
}

// LoadNTriples reads a graph previously written with SaveNTriples.
func LoadNTriples(path string) (*graph.Graph, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()
	g, err := ReadNTriples(f)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return g, nil
}
