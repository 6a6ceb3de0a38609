package ensemble

import "github.com/san-kum/boolsim/internal/boolnet"

// aggregate reduces the contiguous completed prefix of outcomes into the
// ensemble report: target ON count and percentage, the cumulative ON% series,
// and each node's most frequent final state.
func aggregate(net boolnet.Network, p Params, outcomes []*RunOutcome, failures, missing []int) *Result {
	res := &Result{Params: p}

	for i := 0; i < len(outcomes) && outcomes[i] != nil; i++ {
		res.Runs = append(res.Runs, *outcomes[i])
		res.EvalFailures += failures[i]
		res.MissingRefs += missing[i]
		if outcomes[i].TargetOn {
			res.OnCount++
		}
		res.Cumulative = append(res.Cumulative, 100*float64(res.OnCount)/float64(i+1))
	}

	n := len(res.Runs)
	if n == 0 {
		return res
	}
	res.OnPercent = 100 * float64(res.OnCount) / float64(n)

	for _, name := range net.Names() {
		on := 0
		for _, run := range res.Runs {
			if run.Final[name] {
				on++
			}
		}
		stat := NodeStat{Name: name, State: on*2 >= n, Percent: 100 * float64(on) / float64(n)}
		if !stat.State {
			stat.Percent = 100 - stat.Percent
		}
		res.Nodes = append(res.Nodes, stat)
	}
	return res
}
