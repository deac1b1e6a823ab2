package engine

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"time"

	"provision/internal/installer"
	"provision/internal/registry"
)

// Logger is the minimal logging surface the engine needs.
type Logger interface {
	Printf(format string, v ...any)
}

// Reporter receives progress callbacks as tools start and finish.
type Reporter interface {
	Start(spec registry.ToolSpec)
	Complete(res Result)
}

// Options configures a provisioning run.
type Options struct {
	// DryRun reports planned actions without executing installs.
	DryRun bool
	// Timeout bounds each individual install; zero means none.
	Timeout time.Duration
	// LookPath overrides PATH probing; exec.LookPath when nil.
	LookPath func(string) (string, error)
	// VersionProbe overrides version probing; installer.ProbeVersion when nil.
	VersionProbe func(ctx context.Context, path string, args []string) (string, error)
	Logger       Logger
	Reporter     Reporter
}

func (o Options) logf(format string, v ...any) {
	if o.Logger == nil {
		return
	}
	o.Logger.Printf(format, v...)
}

// Run resolves the spec set into dependency order and provisions each tool
// in turn. Installers run strictly sequentially: system package managers do
// not tolerate concurrent invocations against the same package database.
//
// Per-tool failures are recorded and the loop continues; only resolution
// errors (cycles, unknown dependencies) are returned, and they occur before
// any side effect.
func Run(ctx context.Context, env installer.Env, specs []registry.ToolSpec, opts Options) (Report, error) {
	order, err := registry.ResolveOrder(specs)
	if err != nil {
		return Report{}, err
	}

	lookPath := opts.LookPath
	if lookPath == nil {
		lookPath = exec.LookPath
	}
	probe := opts.VersionProbe
	if probe == nil {
		probe = installer.ProbeVersion
	}

	report := Report{Platform: env.Platform, DryRun: opts.DryRun}
	states := make(map[string]Outcome, len(order))

	for _, spec := range order {
		if opts.Reporter != nil {
			opts.Reporter.Start(spec)
		}

		res := runOne(ctx, env, spec, states, opts, lookPath, probe)
		states[spec.Name] = res.Outcome
		report.Results = append(report.Results, res)
		opts.logf("%s: %s %s", res.Tool, res.Outcome, res.Detail)

		if opts.Reporter != nil {
			opts.Reporter.Complete(res)
		}
	}
	return report, nil
}

func runOne(
	ctx context.Context,
	env installer.Env,
	spec registry.ToolSpec,
	states map[string]Outcome,
	opts Options,
	lookPath func(string) (string, error),
	probe func(context.Context, string, []string) (string, error),
) Result {
	start := time.Now()
	res := Result{Tool: spec.Name, Strategy: spec.Strategy.Kind()}

	// A tool whose dependency did not finish installed or present is never
	// attempted.
	for _, dep := range spec.DependsOn {
		switch states[dep] {
		case OutcomeFailed:
			res.Outcome = OutcomeSkipped
			res.Detail = fmt.Sprintf("dependency %s failed", dep)
			return res
		case OutcomeSkipped:
			res.Outcome = OutcomeSkipped
			res.Detail = fmt.Sprintf("dependency %s skipped", dep)
			return res
		}
	}

	// Idempotence gate: the PATH probe always runs before any side effect,
	// and nothing caches installed-ness between runs.
	if path, err := lookPath(spec.CommandName()); err == nil {
		res.Outcome = OutcomePresent
		if spec.MinVersion != "" {
			version, verr := probe(ctx, path, spec.VersionArgs)
			if verr == nil {
				res.Version = version
				if !installer.MeetsMinimum(version, spec.MinVersion) {
					res.Detail = fmt.Sprintf("version %s below minimum %s", version, spec.MinVersion)
				}
			}
		}
		res.Duration = time.Since(start)
		return res
	}

	if opts.DryRun {
		res.Outcome = OutcomePlanned
		res.Detail = fmt.Sprintf("would install via %s", spec.Strategy.Kind())
		return res
	}

	installCtx := ctx
	if opts.Timeout > 0 {
		var cancel context.CancelFunc
		installCtx, cancel = context.WithTimeout(ctx, opts.Timeout)
		defer cancel()
	}

	if err := spec.Strategy.Install(installCtx, spec.Name, env); err != nil {
		res.Outcome = OutcomeFailed
		if errors.Is(err, context.DeadlineExceeded) || installer.Kind(err) == installer.ErrKindTimeout {
			res.Detail = fmt.Sprintf("timeout after %s", opts.Timeout)
		} else {
			res.Detail = err.Error()
		}
		res.Duration = time.Since(start)
		return res
	}

	res.Outcome = OutcomeInstalled
	res.Duration = time.Since(start)
	return res
}
