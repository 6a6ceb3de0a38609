// Package report renders ensemble results for the terminal: tabwriter tables
// plus an asciigraph chart of the Monte-Carlo convergence series.
package report

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/boolsim/internal/boolnet"
	"github.com/san-kum/boolsim/internal/ensemble"
	"github.com/san-kum/boolsim/internal/format"
)

// Write renders the full ensemble report.
func Write(w io.Writer, res *ensemble.Result) error {
	fmt.Fprintf(w, "target: %s\n", res.Params.Target)
	fmt.Fprintf(w, "discipline: %s  steps: %d  seed: %d\n", res.Params.Discipline, res.Params.Steps, res.Params.Seed)
	fmt.Fprintf(w, "runs: %d", len(res.Runs))
	if res.Converged {
		fmt.Fprintf(w, " (converged early, %d requested)", res.Params.Runs)
	}
	fmt.Fprintln(w)
	fmt.Fprintf(w, "%s ON: %d/%d (%.1f%%)\n", res.Params.Target, res.OnCount, len(res.Runs), res.OnPercent)
	if res.EvalFailures > 0 || res.MissingRefs > 0 {
		fmt.Fprintf(w, "soft failures: %d rule errors, %d missing references\n", res.EvalFailures, res.MissingRefs)
	}
	fmt.Fprintln(w)

	if err := WriteNodeTable(w, res); err != nil {
		return err
	}
	fmt.Fprintln(w)
	PlotSeries(w, res.Cumulative, fmt.Sprintf("cumulative %s ON%% per run", res.Params.Target))
	return nil
}

// WriteNodeTable renders each node's most frequent final state.
func WriteNodeTable(w io.Writer, res *ensemble.Result) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "NODE\tMOST COMMON\tPERCENT")
	for _, stat := range res.Nodes {
		state := "OFF"
		if stat.State {
			state = "ON"
		}
		fmt.Fprintf(tw, "%s\t%s\t%.1f%%\n", stat.Name, state, stat.Percent)
	}
	return tw.Flush()
}

// PlotSeries draws the convergence diagnostic. Series shorter than two
// samples cannot be charted and render as plain text.
func PlotSeries(w io.Writer, series []float64, caption string) {
	if len(series) < 2 {
		for _, v := range series {
			fmt.Fprintf(w, "%.1f%%\n", v)
		}
		return
	}
	graph := asciigraph.Plot(series,
		asciigraph.Height(10),
		asciigraph.Width(70),
		asciigraph.Caption(caption),
	)
	fmt.Fprintln(w, graph)
}

// WriteNetwork renders a parsed network with its rules and parse warnings.
func WriteNetwork(w io.Writer, net boolnet.Network, warns []format.Warning) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "NODE\tINPUT\tRULE")
	for _, name := range net.Names() {
		node := net[name]
		input := ""
		if node.IsInput {
			input = "yes"
		}
		rule := node.Rule
		if rule == "" {
			rule = "-"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\n", name, input, rule)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	if len(warns) > 0 {
		fmt.Fprintf(w, "\n%d warning(s):\n", len(warns))
		for _, warn := range warns {
			fmt.Fprintf(w, "  %s\n", warn)
		}
	}
	return nil
}
