// Package engine exposes the network simulation to an orchestrating caller:
// push environmental readings into input nodes, advance a number of steps,
// read back fate-decision states. The engine knows nothing about what the
// caller does between calls.
package engine

import (
	"fmt"
	"math/rand"

	"github.com/san-kum/boolsim/internal/boolnet"
	"github.com/san-kum/boolsim/internal/rules"
	"github.com/san-kum/boolsim/internal/state"
	"github.com/san-kum/boolsim/internal/update"
)

type Engine struct {
	store   *state.Store
	updater update.Updater
	ev      *rules.Evaluator
	rng     *rand.Rand
}

func New(net boolnet.Network, discipline string, seed int64) (*Engine, error) {
	up, err := update.New(discipline)
	if err != nil {
		return nil, err
	}
	e := &Engine{
		store:   state.NewStore(net),
		updater: up,
		ev:      rules.NewEvaluator(),
		rng:     rand.New(rand.NewSource(seed)),
	}
	e.store.InitializeRandom(nil, e.rng)
	return e, nil
}

// SetInputStates pins every named node to the given reading. Unknown names
// are a caller-contract violation.
func (e *Engine) SetInputStates(inputs map[string]bool) error {
	for name := range inputs {
		if !e.store.Network().Has(name) {
			return &boolnet.ConfigError{Name: name, Wrapped: boolnet.ErrUnknownNode}
		}
	}
	for name, v := range inputs {
		if err := e.store.Fix(name, v); err != nil {
			return err
		}
	}
	return nil
}

// Step advances n macro-steps.
func (e *Engine) Step(n int) {
	for i := 0; i < n; i++ {
		e.updater.Step(e.store, e.ev, e.rng)
	}
}

// States returns a copy of every node's current state.
func (e *Engine) States() map[string]bool {
	return e.store.Snapshot()
}

// State returns one node's current state.
func (e *Engine) State(name string) (bool, error) {
	if !e.store.Network().Has(name) {
		return false, fmt.Errorf("%w: %s", boolnet.ErrUnknownNode, name)
	}
	return e.store.Get(name), nil
}

// EvalStats reports the soft-failure counters accumulated so far.
func (e *Engine) EvalStats() (failures, missingRefs int) {
	return e.ev.Failures, e.ev.MissingRefs
}
