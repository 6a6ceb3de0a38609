package update

import (
	"math/rand"

	"github.com/san-kum/boolsim/internal/rules"
	"github.com/san-kum/boolsim/internal/state"
)

// Lockstep is the canonical synchronous discipline: one explicit frozen
// snapshot per step, every rule evaluated against that copy with zero
// incremental visibility, then a simultaneous commit. Same contract as Sync,
// offered as the least-ambiguous reference implementation.
type Lockstep struct{}

func (l *Lockstep) Name() string { return "lockstep" }

func (l *Lockstep) Step(st *state.Store, ev *rules.Evaluator, rng *rand.Rand) {
	frozen := st.Snapshot()
	for _, name := range st.Names() {
		if st.IsFixed(name) {
			st.StageNext(name, frozen[name])
			continue
		}
		node := st.Network()[name]
		if node.Rule == "" {
			st.StageNext(name, frozen[name])
			continue
		}
		st.StageNext(name, ev.Evaluate(node.Rule, frozen))
	}
	st.CommitNext()
}
