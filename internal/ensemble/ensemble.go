// Package ensemble runs Monte-Carlo ensembles of independently seeded
// network simulations and aggregates their outcomes.
package ensemble

import (
	"fmt"
	"sort"

	"github.com/san-kum/boolsim/internal/boolnet"
	"github.com/san-kum/boolsim/internal/update"
)

type Params struct {
	Target     string
	Discipline string
	Steps      int
	Runs       int
	Seed       int64
	Workers    int

	// Fixed pins nodes for whole runs; Set only seeds initial values.
	Fixed map[string]bool
	Set   map[string]bool

	// Convergence stops the ensemble early once the cumulative ON% series
	// moves less than Epsilon over Window consecutive runs. Zero disables.
	Epsilon float64
	Window  int

	// Progress, if set, is called after each completed run with the number
	// of runs recorded so far and the running ON percentage of the target.
	Progress func(done int, onPercent float64)
}

// RunOutcome is the final state of one completed run.
type RunOutcome struct {
	Index    int
	TargetOn bool
	Final    map[string]bool
}

type NodeStat struct {
	Name    string
	State   bool
	Percent float64
}

// Result aggregates an ensemble. Runs holds the contiguous prefix of
// completed runs; a cancelled or converged ensemble reports fewer runs than
// requested and remains valid.
type Result struct {
	Params    Params
	Runs      []RunOutcome
	OnCount   int
	OnPercent float64

	// Cumulative[i] is the ON percentage of the target over runs 0..i, the
	// Monte-Carlo convergence diagnostic.
	Cumulative []float64

	Nodes []NodeStat

	EvalFailures int
	MissingRefs  int
	Converged    bool
}

// Validate checks the caller contract against the network: the target and
// every fixed/set name must exist and the discipline must be registered.
// These are configuration mistakes and fail fast, unlike parse and
// evaluation problems which degrade gracefully.
func (p *Params) Validate(net boolnet.Network) error {
	if p.Target == "" {
		return fmt.Errorf("ensemble: target node is required")
	}
	if !net.Has(p.Target) {
		return &boolnet.ConfigError{Name: p.Target, Wrapped: boolnet.ErrUnknownNode}
	}
	for _, name := range sortedKeys(p.Fixed) {
		if !net.Has(name) {
			return &boolnet.ConfigError{Name: name, Wrapped: boolnet.ErrUnknownNode}
		}
	}
	for _, name := range sortedKeys(p.Set) {
		if !net.Has(name) {
			return &boolnet.ConfigError{Name: name, Wrapped: boolnet.ErrUnknownNode}
		}
	}
	if _, err := update.New(p.Discipline); err != nil {
		return err
	}
	if p.Steps <= 0 {
		return fmt.Errorf("ensemble: steps must be positive, got %d", p.Steps)
	}
	if p.Runs <= 0 {
		return fmt.Errorf("ensemble: runs must be positive, got %d", p.Runs)
	}
	return nil
}

func sortedKeys(m map[string]bool) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
