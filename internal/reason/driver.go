// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package reason

import (
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/loregraph/loregraph/internal/graph"
	"github.com/loregraph/loregraph/internal/ontology"
)

// State tracks where a driver is in its lifecycle.
type State int

const (
	// StateIdle means no run has started.
	StateIdle State = iota
	// StateRunning means a pass is in flight.
	StateRunning
	// StateConverged means a full pass added zero statements.
	StateConverged
	// StateCapped means the iteration cap was hit before convergence.
	// The graph is usable but possibly incomplete.
	StateCapped
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRunning:
		return "running"
	case StateConverged:
		return "converged"
	case StateCapped:
		return "capped"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Result reports the outcome of one run.
type Result struct {
	// RunID tags the run for log correlation.
	RunID string
	// State is StateConverged or StateCapped.
	State State
	// Iterations is the number of passes that ran.
	Iterations int
	// Added is the number of statements the run inserted.
	Added int
	// Stats breaks Added down per rule per pass.
	Stats *Stats
}

// Capped reports whether the run hit the iteration cap before reaching a
// fixpoint.
func (r *Result) Capped() bool {
	return r.State == StateCapped
}

// Driver owns one rule catalogue and runs it to a fixpoint over a graph.
// A driver is single-use per Run call but may run repeatedly; it holds
// no graph state between runs.
type Driver struct {
	rules []Rule
	cfg   Config
	state State
}

// NewDriver builds a driver over the catalogue derived from cfg.
func NewDriver(cfg Config) *Driver {
	return &Driver{rules: Catalogue(cfg), cfg: cfg, state: StateIdle}
}

// State returns the driver's current lifecycle state.
func (d *Driver) State() State {
	return d.state
}

// Run applies the catalogue to g until a pass adds nothing or the
// iteration cap is reached. The schema is validated first; on a schema
// error the graph has not been touched. The returned result carries the
// final state and statistics; a capped run is not an error.
func (d *Driver) Run(g *graph.Graph, schema *ontology.Registry) (*Result, error) {
	if err := schema.Validate(); err != nil {
		return nil, err
	}

	names := make([]string, len(d.rules))
	for i, r := range d.rules {
		names[i] = r.Name()
	}
	stats := newStats(names)
	result := &Result{RunID: uuid.NewString(), Stats: stats}

	d.state = StateRunning
	maxIter := d.cfg.maxIterations()
	for iter := 0; iter < maxIter; iter++ {
		snap := g.Snapshot()
		candidates, skipped := d.evaluate(snap, schema)

		passAdded := 0
		for i, rule := range d.rules {
			accepted := 0
			for _, st := range candidates[i] {
				if g.InsertIfAbsent(st) {
					accepted++
				}
			}
			stats.record(rule.Name(), accepted, skipped[i])
			passAdded += accepted
		}

		result.Iterations = iter + 1
		result.Added += passAdded
		if passAdded == 0 {
			d.state = StateConverged
			result.State = StateConverged
			return result, nil
		}
	}

	d.state = StateCapped
	result.State = StateCapped
	return result, nil
}

// evaluate runs every rule against the snapshot and returns one
// candidate buffer per rule, in catalogue order. With more than one
// worker the rules run concurrently; each writes only its own buffer, so
// the result is identical to a sequential pass.
func (d *Driver) evaluate(snap *graph.Snapshot, schema *ontology.Registry) ([][]graph.Statement, []int) {
	candidates := make([][]graph.Statement, len(d.rules))
	skipped := make([]int, len(d.rules))

	if d.cfg.Workers <= 1 {
		for i, rule := range d.rules {
			candidates[i], skipped[i] = rule.Apply(snap, schema)
		}
		return candidates, skipped
	}

	var eg errgroup.Group
	eg.SetLimit(d.cfg.Workers)
	for i, rule := range d.rules {
		eg.Go(func() error {
			candidates[i], skipped[i] = rule.Apply(snap, schema)
			return nil
		})
	}
	eg.Wait() // rules return no errors
	return candidates, skipped
}
