package update

import (
	"math/rand"

	"github.com/san-kum/boolsim/internal/rules"
	"github.com/san-kum/boolsim/internal/state"
)

// Seidel visits all nodes in a fresh random order each step, with every rule
// reading the state as already mutated by earlier visits within the same
// step. Fixed nodes re-assert their pin into the running state seen by later
// nodes.
type Seidel struct {
	order []string
}

func (s *Seidel) Name() string { return "seidel" }

func (s *Seidel) Step(st *state.Store, ev *rules.Evaluator, rng *rand.Rand) {
	s.order = append(s.order[:0], st.Names()...)
	rng.Shuffle(len(s.order), func(i, j int) {
		s.order[i], s.order[j] = s.order[j], s.order[i]
	})

	for _, name := range s.order {
		if st.IsFixed(name) {
			st.Set(name, st.Get(name))
			continue
		}
		node := st.Network()[name]
		if node.Rule == "" {
			continue
		}
		st.Set(name, ev.Evaluate(node.Rule, st.Current()))
	}
}
