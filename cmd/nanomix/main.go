package main

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"
	"text/tabwriter"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/san-kum/nanomix/internal/config"
	"github.com/san-kum/nanomix/internal/logging"
	"github.com/san-kum/nanomix/internal/mixing"
	"github.com/san-kum/nanomix/internal/storage"
	"github.com/san-kum/nanomix/internal/sweep"
	"github.com/san-kum/nanomix/internal/viz"
)

var (
	dataDir    string
	verbose    bool
	configFile string
	preset     string
	levelsFlag string
	orderFlag  string
	policy     string
	workers    int
	save       bool
	// plot size
	plotHeight int
	plotWidth  int
	// explorer start level
	startLevel float64
)

// main wires the cobra command tree and exits 1 when a command fails.
func main() {
	rootCmd := &cobra.Command{
		Use:           "nanomix",
		Short:         "thermal conductivity of hybrid nanofluids",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.Setup(os.Stderr, verbose)
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".nanomix", "data directory")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "sweep loading levels through the species chain",
		Args:  cobra.NoArgs,
		RunE:  runSweep,
	}
	addSweepFlags(runCmd)
	runCmd.Flags().BoolVar(&save, "save", true, "store the run under --data")

	convertCmd := &cobra.Command{
		Use:   "convert",
		Short: "volume % to weight % for every species",
		Args:  cobra.NoArgs,
		RunE:  convertFractions,
	}
	convertCmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	convertCmd.Flags().StringVar(&levelsFlag, "levels", "", "comma separated volume percents")

	mixCmd := &cobra.Command{
		Use:   "mix [k_dispersed] [k_continuous] [fraction]",
		Short: "single maxwell step (fraction as decimal)",
		Args:  cobra.ExactArgs(3),
		RunE:  mixOnce,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot conductivity ratio curves",
		Args:  cobra.MaximumNArgs(1),
		RunE:  plotRun,
	}
	addSweepFlags(plotCmd)
	plotCmd.Flags().IntVar(&plotHeight, "height", 15, "plot height")
	plotCmd.Flags().IntVar(&plotWidth, "width", 70, "plot width")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored runs",
		Args:  cobra.NoArgs,
		RunE:  listRuns,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export a stored run as JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export a stored run as CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			names := config.ListPresets()
			sort.Strings(names)
			for _, name := range names {
				cfg := config.GetPreset(name)
				fmt.Printf("  %-14s %s  levels=%d\n", name, strings.Join(cfg.SpeciesOrder, "-"), len(cfg.Levels))
			}
			return nil
		},
	}

	exploreCmd := &cobra.Command{
		Use:   "explore",
		Short: "interactive explorer",
		Args:  cobra.NoArgs,
		RunE:  explore,
	}
	addSweepFlags(exploreCmd)
	exploreCmd.Flags().Float64Var(&startLevel, "level", 0.5, "initial solid volume %")

	rootCmd.AddCommand(runCmd, convertCmd, mixCmd, plotCmd, listCmd, exportJSONCmd, exportCSVCmd, presetsCmd, exploreCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func addSweepFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	cmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
	cmd.Flags().StringVar(&levelsFlag, "levels", "", "comma separated volume percents")
	cmd.Flags().StringVar(&orderFlag, "order", "", "comma separated species order")
	cmd.Flags().StringVar(&policy, "policy", "", "on level error: abort or skip")
	cmd.Flags().IntVar(&workers, "workers", 0, "parallel levels")
}

// loadConfig applies preset, then the config file on top of it, then flags.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		cfg = config.GetPreset(preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
	}

	if configFile != "" {
		fileCfg, err := config.LoadOver(configFile, cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = fileCfg
	}

	if cmd.Flags().Changed("levels") {
		levels, err := parseFloats(levelsFlag)
		if err != nil {
			return nil, err
		}
		cfg.Levels = levels
	}
	if cmd.Flags().Changed("order") {
		cfg.SpeciesOrder = splitList(orderFlag)
	}
	if cmd.Flags().Changed("policy") {
		cfg.OnError = policy
	}
	if cmd.Flags().Changed("workers") {
		cfg.Workers = workers
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func parseFloats(s string) ([]float64, error) {
	parts := splitList(s)
	out := make([]float64, len(parts))
	for i, p := range parts {
		v, err := strconv.ParseFloat(p, 64)
		if err != nil {
			return nil, fmt.Errorf("bad level %q: %w", p, err)
		}
		out[i] = v
	}
	return out, nil
}

func sweepConfig(ctx context.Context, cfg *config.Config) (*sweep.Result, error) {
	base, species, err := cfg.Resolve()
	if err != nil {
		return nil, err
	}
	pol, err := sweep.ParsePolicy(cfg.OnError)
	if err != nil {
		return nil, err
	}
	return sweep.NewRunner(pol, cfg.Workers, logging.L()).Run(ctx, cfg.Levels, base, species)
}

func runSweep(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	result, err := sweepConfig(cmd.Context(), cfg)
	if err != nil {
		return err
	}

	fmt.Print(viz.SweepTable(result))
	fmt.Printf("\ncompleted in %v\n", result.Elapsed)

	if !save {
		return nil
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}
	runID, err := st.Save(preset, cfg.OnError, cfg.Workers, result)
	if err != nil {
		return err
	}
	logging.L().Info("run saved", "id", runID, "dir", dataDir)
	fmt.Printf("run id: %s\n", runID)
	return nil
}

func convertFractions(cmd *cobra.Command, args []string) error {
	cfg := config.DefaultConfig()
	if configFile != "" {
		var err error
		if cfg, err = config.Load(configFile); err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
	}
	if cmd.Flags().Changed("levels") {
		levels, err := parseFloats(levelsFlag)
		if err != nil {
			return err
		}
		cfg.Levels = levels
	}

	rhoBase, ok := cfg.DensityTable[cfg.BaseFluidName]
	if !ok {
		return fmt.Errorf("no density for base fluid %q", cfg.BaseFluidName)
	}

	var species []mixing.Species
	for _, name := range cfg.Particles() {
		rho, ok := cfg.DensityTable[name]
		if !ok {
			continue
		}
		species = append(species, mixing.Species{Name: name, Density: rho})
	}

	rows, err := sweep.ConversionTable(cfg.Levels, species, rhoBase)
	if err != nil {
		return err
	}
	fmt.Print(viz.ConversionTable(rows, species, cfg.BaseFluidName))
	return nil
}

func mixOnce(cmd *cobra.Command, args []string) error {
	vals, err := parseFloats(strings.Join(args, ","))
	if err != nil {
		return err
	}

	k, err := mixing.MixTwoPhase(vals[0], vals[1], vals[2])
	if err != nil {
		return err
	}
	fmt.Printf("k_mixture: %.6f W/mK\n", k)
	fmt.Printf("ratio:     %.6f\n", k/vals[1])
	return nil
}

func plotRun(cmd *cobra.Command, args []string) error {
	var (
		curves [][]float64
		labels []string
		levels []float64
		title  string
	)

	if len(args) == 1 {
		st := storage.New(dataDir)
		meta, err := st.Load(args[0])
		if err != nil {
			return err
		}
		stored, err := st.LoadCurves(args[0])
		if err != nil {
			return err
		}
		for i := range meta.Species {
			curves = append(curves, stored.Stage(i))
		}
		labels, levels = meta.Labels, stored.Levels
		title = "run: " + meta.ID
	} else {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		result, err := sweepConfig(cmd.Context(), cfg)
		if err != nil {
			return err
		}
		curves, labels, levels = result.Curves(), result.Labels(), result.Levels()
		title = "species: " + strings.Join(cfg.SpeciesOrder, "-")
	}

	if len(levels) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Println(viz.TitleStyle.Render(title))
	fmt.Println()
	fmt.Println(viz.PlotCurves(curves, labels, levels, plotHeight, plotWidth))
	return nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTIME\tBASE\tSPECIES\tLEVELS\tSKIPPED\tPOLICY")

	for _, run := range runs {
		names := make([]string, len(run.Species))
		for i, s := range run.Species {
			names[i] = s.Name
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\t%d\t%s\n",
			run.ID,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.BaseFluid,
			strings.Join(names, "-"),
			len(run.Levels),
			len(run.Skipped),
			run.Policy,
		)
	}

	return w.Flush()
}

func loadStored(runID string) (*storage.RunMetadata, *storage.Curves, error) {
	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return nil, nil, err
	}
	curves, err := st.LoadCurves(runID)
	if err != nil {
		return nil, nil, err
	}
	return meta, curves, nil
}

func exportJSON(cmd *cobra.Command, args []string) error {
	meta, curves, err := loadStored(args[0])
	if err != nil {
		return err
	}
	return storage.ExportJSON(os.Stdout, meta, curves)
}

func exportCSV(cmd *cobra.Command, args []string) error {
	meta, curves, err := loadStored(args[0])
	if err != nil {
		return err
	}

	w := csv.NewWriter(os.Stdout)
	if err := storage.WriteStoredCSV(w, meta, curves); err != nil {
		return err
	}
	w.Flush()
	return w.Error()
}

func explore(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	base, species, err := cfg.Resolve()
	if err != nil {
		return err
	}

	p := tea.NewProgram(viz.NewExplorer(base, species, startLevel))
	if _, err := p.Run(); err != nil {
		return err
	}
	return nil
}
