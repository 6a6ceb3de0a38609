package ensemble

import (
	"context"
	"math/rand"

	"github.com/san-kum/boolsim/internal/boolnet"
	"github.com/san-kum/boolsim/internal/rules"
	"github.com/san-kum/boolsim/internal/state"
	"github.com/san-kum/boolsim/internal/update"
)

// runOne executes a single independent run: fresh store, pins applied,
// random initialization from seed+index, then Steps macro-steps. Nothing is
// shared with other runs, which is what makes the ensemble embarrassingly
// parallel.
func runOne(ctx context.Context, net boolnet.Network, p Params, index int) (RunOutcome, int, int, error) {
	rng := rand.New(rand.NewSource(p.Seed + int64(index)))

	st := state.NewStore(net)
	for _, name := range sortedKeys(p.Fixed) {
		if err := st.Fix(name, p.Fixed[name]); err != nil {
			return RunOutcome{}, 0, 0, err
		}
	}
	st.InitializeRandom(p.Set, rng)

	up, err := update.New(p.Discipline)
	if err != nil {
		return RunOutcome{}, 0, 0, err
	}
	ev := rules.NewEvaluator()

	for step := 0; step < p.Steps; step++ {
		select {
		case <-ctx.Done():
			return RunOutcome{}, 0, 0, ctx.Err()
		default:
		}
		up.Step(st, ev, rng)
	}

	out := RunOutcome{
		Index:    index,
		TargetOn: st.Get(p.Target),
		Final:    st.Snapshot(),
	}
	return out, ev.Failures, ev.MissingRefs, nil
}
