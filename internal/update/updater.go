// Package update implements the network update disciplines. Each discipline
// is a pure transform of the state store: one Step advances one macro-step,
// i.e. every node is considered exactly once. All disciplines re-assert the
// fixed overlay on every step.
package update

import (
	"fmt"
	"math/rand"

	"github.com/san-kum/boolsim/internal/boolnet"
	"github.com/san-kum/boolsim/internal/rules"
	"github.com/san-kum/boolsim/internal/state"
)

type Updater interface {
	Name() string
	Step(st *state.Store, ev *rules.Evaluator, rng *rand.Rand)
}

var updaters = map[string]func() Updater{
	"async":    func() Updater { return &Async{} },
	"sync":     func() Updater { return &Sync{} },
	"seidel":   func() Updater { return &Seidel{} },
	"lockstep": func() Updater { return &Lockstep{} },
}

// New returns a fresh updater for the named discipline. Updaters carry
// per-run state (the async visit queue), so every run gets its own.
func New(name string) (Updater, error) {
	fn, ok := updaters[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", boolnet.ErrUnknownDiscipline, name)
	}
	return fn(), nil
}

// Disciplines lists the registered discipline names.
func Disciplines() []string {
	return []string{"async", "sync", "seidel", "lockstep"}
}
