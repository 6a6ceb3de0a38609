package update

import (
	"math/rand"

	"github.com/san-kum/boolsim/internal/rules"
	"github.com/san-kum/boolsim/internal/state"
)

// Async visits one node at a time in a random order, each visit reading the
// live state as mutated by earlier visits. Exactly-once visitation per
// macro-step is guaranteed by a shuffled queue of names consumed as nodes are
// visited and refilled with a fresh permutation when empty.
type Async struct {
	queue []string
}

func (a *Async) Name() string { return "async" }

func (a *Async) Step(st *state.Store, ev *rules.Evaluator, rng *rand.Rand) {
	n := len(st.Names())
	for i := 0; i < n; i++ {
		if len(a.queue) == 0 {
			a.refill(st, rng)
		}
		name := a.queue[0]
		a.queue = a.queue[1:]
		a.visit(name, st, ev)
	}
}

func (a *Async) refill(st *state.Store, rng *rand.Rand) {
	a.queue = append(a.queue[:0], st.Names()...)
	rng.Shuffle(len(a.queue), func(i, j int) {
		a.queue[i], a.queue[j] = a.queue[j], a.queue[i]
	})
}

func (a *Async) visit(name string, st *state.Store, ev *rules.Evaluator) {
	if st.IsFixed(name) {
		// Re-assert the pin; the rule, if any, is ignored.
		st.Set(name, st.Get(name))
		return
	}
	node := st.Network()[name]
	if node.Rule == "" {
		return
	}
	st.Set(name, ev.Evaluate(node.Rule, st.Current()))
}
