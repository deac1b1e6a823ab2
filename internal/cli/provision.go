package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"provision/internal/config"
	"provision/internal/engine"
	"provision/internal/installer"
	"provision/internal/logx"
	"provision/internal/paths"
	"provision/internal/platform"
	"provision/internal/registry"
	"provision/internal/tui"
)

var (
	dryRun      bool
	onlyTools   []string
	skipTools   []string
	timeoutFlag time.Duration
	noProgress  bool
)

func runProvision(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	pp, err := paths.Resolve()
	if err != nil {
		return setupError(err)
	}
	if err := pp.EnsureDirs(); err != nil {
		return setupError(err)
	}

	logger, closer, _ := logx.New(pp.LogsDir, "provision")
	if closer != nil {
		defer closer.Close()
	}
	logf := func(format string, v ...any) {
		if logger != nil {
			logger.Printf(format, v...)
		}
	}
	logf("provision started")

	cfg, cfgPath, err := loadConfig(cmd, pp)
	if err != nil {
		return err
	}
	logf("config loaded: %s", cfgPath)

	plat, err := platform.Detect()
	if err != nil {
		return setupError(err)
	}
	logf("platform: %s", plat)

	specs, order, err := buildPlan(cfg)
	if err != nil {
		return setupError(err)
	}

	timeout := timeoutFlag
	if timeout == 0 {
		// Already validated alongside the rest of the config.
		timeout, _ = cfg.TimeoutDuration()
	}

	binDir := pp.BinDir
	if cfg.InstallDir != "" {
		binDir = cfg.InstallDir
	}
	downloadsDir := pp.DownloadsDir
	if cfg.DownloadsDir != "" {
		downloadsDir = cfg.DownloadsDir
	}

	env := installer.Env{
		Platform:     plat,
		Runner:       installer.CmdRunner{},
		BinDir:       binDir,
		DownloadsDir: downloadsDir,
	}
	opts := engine.Options{
		DryRun:   dryRun,
		Timeout:  timeout,
		LookPath: lookPath,
	}
	if logger != nil {
		env.Logger = logger
		opts.Logger = logger
	}

	out := cmd.OutOrStdout()
	mode := tui.DetectMode(out, noProgress, outputJSON)

	var report engine.Report
	switch mode {
	case tui.ModeTUI:
		model := tui.NewProgressModel("provision", tui.RunColumns)
		for _, spec := range order {
			model.AddRow(spec.Name, []string{spec.Name, spec.Strategy.Kind(), "pending", "-"})
		}
		var runErr error
		tuiErr := tui.RunWithWork(out, model, func(send func(tea.Msg)) {
			opts.Reporter = tui.NewEngineReporter(send)
			report, runErr = engine.Run(ctx, env, specs, opts)
			if runErr != nil {
				send(tui.ErrorMsg{Err: runErr})
			}
		})
		if runErr != nil {
			return setupError(runErr)
		}
		if tuiErr != nil {
			return tuiErr
		}
	case tui.ModePlain:
		status := tui.NewStatusWriter(cmd.ErrOrStderr())
		opts.Reporter = &statusReporter{status: status, total: len(order)}
		report, err = engine.Run(ctx, env, specs, opts)
		status.Stop()
		if err != nil {
			return setupError(err)
		}
	default:
		report, err = engine.Run(ctx, env, specs, opts)
		if err != nil {
			return setupError(err)
		}
	}

	if mode == tui.ModeJSON {
		if err := writeReportJSON(cmd, report); err != nil {
			return err
		}
	} else {
		if mode == tui.ModePlain {
			writeReportTable(cmd, report)
		}
		printRunSummary(out, report)
		if !report.Success() {
			writeFailures(cmd, report)
		}
	}

	if !report.Success() {
		s := report.Summarize()
		return fmt.Errorf("%d of %d tools failed", s.Failed, len(report.Results))
	}
	return nil
}

// statusLine is the surface statusReporter needs; tui.StatusWriter satisfies it.
type statusLine interface {
	Update(msg string)
}

// statusReporter drives the stderr status line while the engine runs without
// the full-screen table.
type statusReporter struct {
	status statusLine
	total  int
	done   int
}

func (r *statusReporter) Start(spec registry.ToolSpec) {
	r.status.Update(fmt.Sprintf("%s via %s (%d/%d)", spec.Name, spec.Strategy.Kind(), r.done+1, r.total))
}

func (r *statusReporter) Complete(engine.Result) {
	r.done++
}

// loadConfig resolves the config path, loads it, and surfaces validation
// findings. Warnings go to stderr; errors abort the run.
func loadConfig(cmd *cobra.Command, pp paths.EnginePaths) (config.Config, string, error) {
	cfgPath := configPath
	if cfgPath == "" {
		cfgPath = pp.ConfigFile
	}

	cfg, err := config.Load(cfgPath)
	if err != nil {
		return config.Config{}, "", setupError(err)
	}

	findings := cfg.Validate()
	for _, f := range findings {
		fmt.Fprintf(cmd.ErrOrStderr(), "%s: %s\n", f.Level, f.Message)
	}
	if config.HasErrors(findings) {
		return config.Config{}, "", setupError(fmt.Errorf("invalid config %s", cfgPath))
	}
	return cfg, cfgPath, nil
}

// buildPlan merges config overrides into the built-in registry, applies the
// only/skip selection, and resolves dependency order.
func buildPlan(cfg config.Config) ([]registry.ToolSpec, []registry.ToolSpec, error) {
	specs, err := cfg.Apply(registry.Defaults())
	if err != nil {
		return nil, nil, err
	}

	skip := append(append([]string(nil), cfg.Skip...), skipTools...)
	specs, err = registry.Select(specs, onlyTools, skip)
	if err != nil {
		return nil, nil, err
	}

	order, err := registry.ResolveOrder(specs)
	if err != nil {
		return nil, nil, err
	}
	return specs, order, nil
}

func writeReportJSON(cmd *cobra.Command, report engine.Report) error {
	payload := struct {
		engine.Report
		Summary engine.Summary `json:"summary"`
		Success bool           `json:"success"`
	}{
		Report:  report,
		Summary: report.Summarize(),
		Success: report.Success(),
	}

	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return fmt.Errorf("encode report json: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return nil
}

func writeReportTable(cmd *cobra.Command, report engine.Report) {
	fmt.Fprintf(cmd.OutOrStdout(), "Platform: %s\n", report.Platform)

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 2, 2, ' ', 0)
	fmt.Fprintln(w, "TOOL\tSTRATEGY\tSTATUS\tVERSION\tDETAIL")
	for _, res := range report.Results {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			res.Tool,
			res.Strategy,
			res.Outcome,
			tui.NonEmptyOrDash(res.Version),
			tui.NonEmptyOrDash(res.Detail),
		)
	}
	w.Flush()
}

func printRunSummary(w io.Writer, report engine.Report) {
	s := report.Summarize()
	if report.DryRun {
		fmt.Fprintf(w, "Present: %d, Planned: %d, Skipped: %d\n", s.Present, s.Planned, s.Skipped)
		return
	}
	fmt.Fprintf(w, "Present: %d, Installed: %d, Failed: %d, Skipped: %d\n",
		s.Present, s.Installed, s.Failed, s.Skipped)
}

func writeFailures(cmd *cobra.Command, report engine.Report) {
	out := cmd.OutOrStdout()
	fmt.Fprintln(out)
	fmt.Fprintln(out, "Failures:")
	for _, res := range report.Results {
		if res.Outcome != engine.OutcomeFailed {
			continue
		}
		fmt.Fprintf(out, "  %s (%s): %s\n", res.Tool, res.Strategy, res.Detail)
	}
}
