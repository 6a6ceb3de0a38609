package ensemble

import (
	"context"
	"runtime"
	"sync"

	"github.com/san-kum/boolsim/internal/boolnet"
)

// Run executes the full ensemble. Independent runs are dispatched across a
// bounded worker pool; outcomes commit into a slice indexed by run so the
// recorded sequence is bit-identical for a given seed regardless of worker
// count. Aggregation happens once over the contiguous completed prefix, so a
// cancelled or early-converged ensemble still reports every finished run.
func Run(ctx context.Context, net boolnet.Network, p Params) (*Result, error) {
	if err := p.Validate(net); err != nil {
		return nil, err
	}

	workers := p.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > p.Runs {
		workers = p.Runs
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	outcomes := make([]*RunOutcome, p.Runs)
	failures := make([]int, p.Runs)
	missing := make([]int, p.Runs)

	var mu sync.Mutex
	tracker := newConvergenceTracker(p)
	reported := 0

	sem := make(chan struct{}, workers)
	var wg sync.WaitGroup
	for i := 0; i < p.Runs; i++ {
		select {
		case <-ctx.Done():
		case sem <- struct{}{}:
			wg.Add(1)
			go func(idx int) {
				defer wg.Done()
				defer func() { <-sem }()

				out, fails, miss, err := runOne(ctx, net, p, idx)
				if err != nil {
					return
				}

				mu.Lock()
				outcomes[idx] = &out
				failures[idx] = fails
				missing[idx] = miss
				done, pct, converged := tracker.observe(outcomes)
				// Called under the lock so progress arrives in prefix order,
				// and only when the contiguous prefix actually grew.
				if p.Progress != nil && done > reported {
					reported = done
					p.Progress(done, pct)
				}
				mu.Unlock()

				if converged {
					cancel()
				}
			}(i)
		}
		if ctx.Err() != nil {
			break
		}
	}
	wg.Wait()

	res := aggregate(net, p, outcomes, failures, missing)
	res.Converged = tracker.converged
	if len(res.Runs) == 0 {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
	}
	return res, nil
}

// convergenceTracker watches the contiguous completed prefix and reports
// when the cumulative ON% of the target has stabilized.
type convergenceTracker struct {
	p         Params
	prefix    int
	onCount   int
	series    []float64
	converged bool
}

func newConvergenceTracker(p Params) *convergenceTracker {
	return &convergenceTracker{p: p}
}

func (t *convergenceTracker) observe(outcomes []*RunOutcome) (done int, pct float64, converged bool) {
	for t.prefix < len(outcomes) && outcomes[t.prefix] != nil {
		if outcomes[t.prefix].TargetOn {
			t.onCount++
		}
		t.prefix++
		t.series = append(t.series, 100*float64(t.onCount)/float64(t.prefix))
	}
	if t.prefix == 0 {
		return 0, 0, false
	}
	pct = t.series[t.prefix-1]

	if !t.converged && t.p.Epsilon > 0 && t.p.Window > 1 && t.prefix >= t.p.Window {
		lo, hi := t.series[t.prefix-t.p.Window], t.series[t.prefix-t.p.Window]
		for _, v := range t.series[t.prefix-t.p.Window : t.prefix] {
			if v < lo {
				lo = v
			}
			if v > hi {
				hi = v
			}
		}
		if hi-lo < t.p.Epsilon {
			t.converged = true
		}
	}
	return t.prefix, pct, t.converged
}
