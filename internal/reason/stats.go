// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package reason

import (
	"fmt"
	"io"
)

// Stats records, for every rule, how many candidates were accepted into
// the graph in each pass, plus how many malformed inputs each rule
// skipped. Counts are dense: every rule has an entry for every pass the
// driver ran, zero or not.
type Stats struct {
	order    []string
	accepted map[string][]int
	skipped  map[string]int
}

func newStats(ruleNames []string) *Stats {
	s := &Stats{
		order:    append([]string(nil), ruleNames...),
		accepted: make(map[string][]int, len(ruleNames)),
		skipped:  make(map[string]int, len(ruleNames)),
	}
	for _, name := range ruleNames {
		s.accepted[name] = nil
	}
	return s
}

func (s *Stats) record(rule string, accepted, skipped int) {
	s.accepted[rule] = append(s.accepted[rule], accepted)
	s.skipped[rule] += skipped
}

// Rules returns the rule names in catalogue order.
func (s *Stats) Rules() []string {
	return s.order
}

// Accepted returns the per-pass accepted counts for a rule.
func (s *Stats) Accepted(rule string) []int {
	return s.accepted[rule]
}

// Skipped returns how many malformed inputs a rule skipped across all
// passes.
func (s *Stats) Skipped(rule string) int {
	return s.skipped[rule]
}

// Iterations returns how many passes ran.
func (s *Stats) Iterations() int {
	if len(s.order) == 0 {
		return 0
	}
	return len(s.accepted[s.order[0]])
}

// TotalAccepted returns the number of statements added across all rules
// and passes.
func (s *Stats) TotalAccepted() int {
	total := 0
	for _, counts := range s.accepted {
		for _, n := range counts {
			total += n
		}
	}
	return total
}

// TotalSkipped returns the number of malformed inputs skipped across all
// rules.
func (s *Stats) TotalSkipped() int {
	total := 0
	for _, n := range s.skipped {
		total += n
	}
	return total
}

// WriteSummary prints a per-rule breakdown.
func (s *Stats) WriteSummary(w io.Writer) {
	fmt.Fprintf(w, "%-22s %8s %8s\n", "rule", "added", "skipped")
	for _, name := range s.order {
		added := 0
		for _, n := range s.accepted[name] {
			added += n
		}
		fmt.Fprintf(w, "%-22s %8d %8d\n", name, added, s.skipped[name])
	}
	fmt.Fprintf(w, "%-22s %8d %8d\n", "total", s.TotalAccepted(), s.TotalSkipped())
}
