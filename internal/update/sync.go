package update

import (
	"math/rand"

	"github.com/san-kum/boolsim/internal/rules"
	"github.com/san-kum/boolsim/internal/state"
)

// Sync computes every node's next value from the step-start state and commits
// them simultaneously. Reads go to the live map, writes go to the staging
// buffer, so visiting order cannot influence the outcome.
type Sync struct{}

func (s *Sync) Name() string { return "sync" }

func (s *Sync) Step(st *state.Store, ev *rules.Evaluator, rng *rand.Rand) {
	for _, name := range st.Names() {
		if st.IsFixed(name) {
			st.StageNext(name, st.Get(name))
			continue
		}
		node := st.Network()[name]
		if node.Rule == "" {
			st.StageNext(name, st.Get(name))
			continue
		}
		st.StageNext(name, ev.Evaluate(node.Rule, st.Current()))
	}
	st.CommitNext()
}
