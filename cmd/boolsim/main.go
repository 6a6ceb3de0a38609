package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"sort"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/san-kum/boolsim/internal/boolnet"
	"github.com/san-kum/boolsim/internal/config"
	"github.com/san-kum/boolsim/internal/ensemble"
	"github.com/san-kum/boolsim/internal/format"
	"github.com/san-kum/boolsim/internal/report"
	"github.com/san-kum/boolsim/internal/storage"
	"github.com/san-kum/boolsim/internal/tui"
	"github.com/san-kum/boolsim/internal/update"
	"github.com/spf13/cobra"
)

var (
	dataDir    string
	netFormat  string
	target     string
	discipline string
	steps      int
	runs       int
	seed       int64
	workers    int
	fixPairs   []string
	setPairs   []string
	epsilon    float64
	window     int
	configFile string
	preset     string
	noSave     bool
	pins       []string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "boolsim",
		Short: "boolean gene-regulatory-network simulation lab",
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".boolsim", "data directory")

	runCmd := &cobra.Command{
		Use:   "run [network-file]",
		Short: "run a monte-carlo ensemble",
		Args:  cobra.ExactArgs(1),
		RunE:  runEnsemble,
	}
	addRunFlags(runCmd)
	runCmd.Flags().BoolVar(&noSave, "no-save", false, "skip saving the experiment")

	parseCmd := &cobra.Command{
		Use:   "parse [network-file]",
		Short: "parse a network definition and dump the node table",
		Args:  cobra.ExactArgs(1),
		RunE:  parseNetwork,
	}
	parseCmd.Flags().StringVar(&netFormat, "format", "", "network format (bnd, graphml)")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored experiments",
		RunE:  listExperiments,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [experiment-id]",
		Short: "plot the convergence series of a stored experiment",
		Args:  cobra.ExactArgs(1),
		RunE:  plotExperiment,
	}

	exportCmd := &cobra.Command{
		Use:   "export [experiment-id]",
		Short: "export experiment metadata as json",
		Args:  cobra.ExactArgs(1),
		RunE:  exportExperiment,
	}

	sweepCmd := &cobra.Command{
		Use:   "sweep [network-file]",
		Short: "rank target ON% over all pin combinations of the given nodes",
		Args:  cobra.ExactArgs(1),
		RunE:  sweepPins,
	}
	addRunFlags(sweepCmd)
	sweepCmd.Flags().StringSliceVar(&pins, "pins", nil, "nodes to sweep over (all true/false combinations)")

	liveCmd := &cobra.Command{
		Use:   "live [network-file]",
		Short: "run an ensemble with a live terminal view",
		Args:  cobra.ExactArgs(1),
		RunE:  runLive,
	}
	addRunFlags(liveCmd)

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list run-parameter presets",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, name := range config.ListPresets() {
				p := config.GetPreset(name)
				fmt.Printf("%s: discipline=%s steps=%d runs=%d\n", name, p.Discipline, p.Steps, p.Runs)
			}
			return nil
		},
	}

	disciplinesCmd := &cobra.Command{
		Use:   "disciplines",
		Short: "list update disciplines",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, name := range update.Disciplines() {
				fmt.Println(name)
			}
			return nil
		},
	}

	rootCmd.AddCommand(runCmd, parseCmd, listCmd, plotCmd, exportCmd, sweepCmd, liveCmd, presetsCmd, disciplinesCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addRunFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&netFormat, "format", "", "network format (bnd, graphml)")
	cmd.Flags().StringVar(&target, "target", "", "target node")
	cmd.Flags().StringVar(&discipline, "discipline", config.DefaultDiscipline, "update discipline")
	cmd.Flags().IntVar(&steps, "steps", config.DefaultSteps, "macro-steps per run")
	cmd.Flags().IntVar(&runs, "runs", config.DefaultRuns, "ensemble size")
	cmd.Flags().Int64Var(&seed, "seed", time.Now().UnixNano(), "random seed")
	cmd.Flags().IntVar(&workers, "workers", 0, "parallel workers (0 = all cpus)")
	cmd.Flags().StringSliceVar(&fixPairs, "fix", nil, "pin node for whole runs, e.g. Oxygen=true")
	cmd.Flags().StringSliceVar(&setPairs, "set", nil, "seed node initial value, e.g. p53=false")
	cmd.Flags().Float64Var(&epsilon, "epsilon", 0, "convergence epsilon (0 disables early stop)")
	cmd.Flags().IntVar(&window, "window", 0, "convergence window in runs")
	cmd.Flags().StringVar(&configFile, "config", "", "experiment config file (yaml)")
	cmd.Flags().StringVar(&preset, "preset", "", "run-parameter preset")
}

// buildParams merges preset, config file and flags, flags winning, the same
// precedence dance the run command has always had.
func buildParams(cmd *cobra.Command) (ensemble.Params, error) {
	if preset != "" {
		p := config.GetPreset(preset)
		if p == nil {
			return ensemble.Params{}, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
		discipline = p.Discipline
		steps = p.Steps
		runs = p.Runs
		epsilon = p.Converge.Epsilon
		window = p.Converge.Window
	}

	if configFile != "" {
		cfg, err := config.Load(configFile)
		if err != nil {
			return ensemble.Params{}, fmt.Errorf("failed to load config: %w", err)
		}
		if !cmd.Flags().Changed("target") && cfg.Target != "" {
			target = cfg.Target
		}
		if !cmd.Flags().Changed("discipline") && cfg.Discipline != "" {
			discipline = cfg.Discipline
		}
		if !cmd.Flags().Changed("steps") && cfg.Steps != 0 {
			steps = cfg.Steps
		}
		if !cmd.Flags().Changed("runs") && cfg.Runs != 0 {
			runs = cfg.Runs
		}
		if !cmd.Flags().Changed("seed") && cfg.Seed != 0 {
			seed = cfg.Seed
		}
		if !cmd.Flags().Changed("workers") && cfg.Workers != 0 {
			workers = cfg.Workers
		}
		if !cmd.Flags().Changed("epsilon") && cfg.Converge.Epsilon != 0 {
			epsilon = cfg.Converge.Epsilon
		}
		if !cmd.Flags().Changed("window") && cfg.Converge.Window != 0 {
			window = cfg.Converge.Window
		}
		if !cmd.Flags().Changed("format") && cfg.Format != "" {
			netFormat = cfg.Format
		}
		if len(fixPairs) == 0 && len(cfg.Fixed) > 0 {
			for name, v := range cfg.Fixed {
				fixPairs = append(fixPairs, fmt.Sprintf("%s=%t", name, v))
			}
		}
		if len(setPairs) == 0 && len(cfg.Set) > 0 {
			for name, v := range cfg.Set {
				setPairs = append(setPairs, fmt.Sprintf("%s=%t", name, v))
			}
		}
	}

	fixed, err := parseBoolPairs(fixPairs)
	if err != nil {
		return ensemble.Params{}, err
	}
	set, err := parseBoolPairs(setPairs)
	if err != nil {
		return ensemble.Params{}, err
	}

	return ensemble.Params{
		Target:     target,
		Discipline: discipline,
		Steps:      steps,
		Runs:       runs,
		Seed:       seed,
		Workers:    workers,
		Fixed:      fixed,
		Set:        set,
		Epsilon:    epsilon,
		Window:     window,
	}, nil
}

func parseBoolPairs(pairs []string) (map[string]bool, error) {
	if len(pairs) == 0 {
		return nil, nil
	}
	m := make(map[string]bool, len(pairs))
	for _, pair := range pairs {
		name, value, ok := strings.Cut(pair, "=")
		if !ok {
			return nil, fmt.Errorf("invalid pair %q, want NODE=true|false", pair)
		}
		switch strings.ToLower(strings.TrimSpace(value)) {
		case "true", "1", "on":
			m[strings.TrimSpace(name)] = true
		case "false", "0", "off":
			m[strings.TrimSpace(name)] = false
		default:
			return nil, fmt.Errorf("invalid value in %q, want NODE=true|false", pair)
		}
	}
	return m, nil
}

func loadNetwork(path string) (boolnet.Network, []format.Warning, error) {
	net, warns, err := format.ParseFile(path, netFormat)
	if err != nil {
		return nil, nil, err
	}
	if len(warns) > 0 {
		fmt.Fprintf(os.Stderr, "%d parse warning(s); see `boolsim parse %s`\n", len(warns), path)
	}
	return net, warns, nil
}

func runEnsemble(cmd *cobra.Command, args []string) error {
	net, _, err := loadNetwork(args[0])
	if err != nil {
		return err
	}

	p, err := buildParams(cmd)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	fmt.Printf("running %d-run ensemble (%s, %d steps)...\n", p.Runs, p.Discipline, p.Steps)
	start := time.Now()

	res, err := ensemble.Run(ctx, net, p)
	if err != nil {
		return err
	}
	fmt.Printf("completed in %v\n\n", time.Since(start))

	if err := report.Write(os.Stdout, res); err != nil {
		return err
	}

	if noSave {
		return nil
	}
	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}
	id, err := st.Save(args[0], res)
	if err != nil {
		return err
	}
	fmt.Printf("\nexperiment id: %s\n", id)
	return nil
}

func parseNetwork(cmd *cobra.Command, args []string) error {
	net, warns, err := format.ParseFile(args[0], netFormat)
	if err != nil {
		return err
	}
	fmt.Printf("%d node(s)\n\n", len(net))
	return report.WriteNetwork(os.Stdout, net, warns)
}

func listExperiments(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	metas, err := st.List()
	if err != nil {
		return err
	}
	if len(metas) == 0 {
		fmt.Println("no experiments found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTARGET\tDISCIPLINE\tSTEPS\tRUNS\tON%\tTIME")
	for _, meta := range metas {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\t%.1f\t%s\n",
			meta.ID,
			meta.Target,
			meta.Discipline,
			meta.Steps,
			meta.Runs,
			meta.OnPercent,
			meta.Timestamp.Format("2006-01-02 15:04:05"),
		)
	}
	return w.Flush()
}

func plotExperiment(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	series, err := st.LoadSeries(args[0])
	if err != nil {
		return err
	}

	fmt.Printf("experiment: %s\n", meta.ID)
	fmt.Printf("network: %s  target: %s  runs: %d\n\n", meta.Network, meta.Target, meta.Runs)
	report.PlotSeries(os.Stdout, series, fmt.Sprintf("cumulative %s ON%% per run", meta.Target))
	return nil
}

func exportExperiment(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(meta)
}

func sweepPins(cmd *cobra.Command, args []string) error {
	if len(pins) == 0 {
		return fmt.Errorf("at least one --pins node is required")
	}

	net, _, err := loadNetwork(args[0])
	if err != nil {
		return err
	}
	for _, name := range pins {
		if !net.Has(name) {
			return &boolnet.ConfigError{Name: name, Wrapped: boolnet.ErrUnknownNode}
		}
	}

	base, err := buildParams(cmd)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	type row struct {
		combo string
		pct   float64
		runs  int
	}
	results := make([]row, 0, 1<<len(pins))

	for mask := 0; mask < 1<<len(pins); mask++ {
		p := base
		p.Fixed = make(map[string]bool, len(pins)+len(base.Fixed))
		for name, v := range base.Fixed {
			p.Fixed[name] = v
		}
		parts := make([]string, len(pins))
		for i, name := range pins {
			v := mask&(1<<i) != 0
			p.Fixed[name] = v
			parts[i] = fmt.Sprintf("%s=%t", name, v)
		}

		res, err := ensemble.Run(ctx, net, p)
		if err != nil {
			return err
		}
		results = append(results, row{combo: strings.Join(parts, " "), pct: res.OnPercent, runs: len(res.Runs)})
	}

	sort.Slice(results, func(i, j int) bool { return results[i].pct > results[j].pct })

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "PINS\t%s ON%%\tRUNS\n", base.Target)
	for _, r := range results {
		fmt.Fprintf(w, "%s\t%.1f\t%d\n", r.combo, r.pct, r.runs)
	}
	return w.Flush()
}

func runLive(cmd *cobra.Command, args []string) error {
	net, _, err := loadNetwork(args[0])
	if err != nil {
		return err
	}
	p, err := buildParams(cmd)
	if err != nil {
		return err
	}
	if err := p.Validate(net); err != nil {
		return err
	}

	res, err := tui.Run(context.Background(), net, p)
	if err != nil {
		return err
	}
	if res == nil {
		return nil
	}

	fmt.Println()
	return report.Write(os.Stdout, res)
}
