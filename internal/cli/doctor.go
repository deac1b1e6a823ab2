package cli

import (
	"encoding/json"
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"provision/internal/config"
	"provision/internal/paths"
	"provision/internal/platform"
	"provision/internal/registry"
)

// detectPlatform is swapped out in tests.
var detectPlatform = platform.Detect

func newDoctorCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Check whether this machine can be provisioned",
		RunE:  runDoctor,
	}
}

type healthCheck struct {
	Name    string `json:"name"`
	Status  string `json:"status"` // "ok", "warning", "error"
	Summary string `json:"summary"`
}

func runDoctor(cmd *cobra.Command, _ []string) error {
	pp, err := paths.Resolve()
	if err != nil {
		return setupError(err)
	}

	var checks []healthCheck
	checks = append(checks, checkPlatform())
	checks = append(checks, checkPaths(pp))

	cfgPath := configPath
	if cfgPath == "" {
		cfgPath = pp.ConfigFile
	}
	cfg, cfgErr := config.Load(cfgPath)
	checks = append(checks, checkConfig(cfgPath, cfg, cfgErr))

	if cfgErr == nil {
		checks = append(checks, checkTools(cfg))
	}

	return writeDoctorResult(cmd, checks)
}

func checkPlatform() healthCheck {
	plat, err := detectPlatform()
	if err != nil {
		return healthCheck{Name: "Platform", Status: "error", Summary: err.Error()}
	}
	return healthCheck{Name: "Platform", Status: "ok", Summary: plat.String()}
}

func checkPaths(pp paths.EnginePaths) healthCheck {
	exists, err := paths.DirExists(pp.BinDir)
	if err != nil {
		return healthCheck{Name: "Paths", Status: "error", Summary: err.Error()}
	}
	if !exists {
		return healthCheck{
			Name:    "Paths",
			Status:  "warning",
			Summary: fmt.Sprintf("%s does not exist yet (created on first run)", pp.BinDir),
		}
	}
	if !paths.DirWritable(pp.BinDir) {
		return healthCheck{
			Name:    "Paths",
			Status:  "error",
			Summary: fmt.Sprintf("%s is not writable", pp.BinDir),
		}
	}
	return healthCheck{Name: "Paths", Status: "ok", Summary: pp.BinDir}
}

func checkConfig(path string, cfg config.Config, cfgErr error) healthCheck {
	if cfgErr != nil {
		return healthCheck{Name: "Config", Status: "error", Summary: cfgErr.Error()}
	}

	exists, err := paths.FileExists(path)
	if err != nil {
		return healthCheck{Name: "Config", Status: "error", Summary: err.Error()}
	}
	if !exists {
		return healthCheck{
			Name:    "Config",
			Status:  "ok",
			Summary: fmt.Sprintf("%s not found (using built-in defaults)", path),
		}
	}

	findings := cfg.Validate()
	var warnings, errors int
	for _, f := range findings {
		switch f.Level {
		case "warning":
			warnings++
		case "error":
			errors++
		}
	}

	summary := fmt.Sprintf("%s (%d tool overrides)", path, len(cfg.Tools))
	if errors > 0 {
		return healthCheck{Name: "Config", Status: "error", Summary: fmt.Sprintf("%s; %d errors", summary, errors)}
	}
	if warnings > 0 {
		return healthCheck{Name: "Config", Status: "warning", Summary: fmt.Sprintf("%s; %d warnings", summary, warnings)}
	}
	return healthCheck{Name: "Config", Status: "ok", Summary: summary}
}

func checkTools(cfg config.Config) healthCheck {
	specs, err := cfg.Apply(registry.Defaults())
	if err != nil {
		return healthCheck{Name: "Tools", Status: "error", Summary: err.Error()}
	}

	var present int
	for _, spec := range specs {
		if _, err := lookPath(spec.CommandName()); err == nil {
			present++
		}
	}

	summary := fmt.Sprintf("%d of %d tools present", present, len(specs))
	if present == len(specs) {
		return healthCheck{Name: "Tools", Status: "ok", Summary: summary}
	}
	return healthCheck{Name: "Tools", Status: "warning", Summary: summary}
}

func writeDoctorResult(cmd *cobra.Command, checks []healthCheck) error {
	if outputJSON {
		data, err := json.MarshalIndent(checks, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return nil
	}

	bold := lipgloss.NewStyle().Bold(true).Inline(true)
	green := lipgloss.NewStyle().Foreground(lipgloss.Color("2")).Inline(true)
	yellow := lipgloss.NewStyle().Foreground(lipgloss.Color("3")).Inline(true)
	red := lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Inline(true)

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, bold.Render("MACHINE HEALTH:"))

	for _, c := range checks {
		var statusStr string
		switch c.Status {
		case "ok":
			statusStr = green.Render("OK")
		case "warning":
			statusStr = yellow.Render("WARN")
		case "error":
			statusStr = red.Render("ERROR")
		}
		fmt.Fprintf(out, "  %-12s %s    %s\n", c.Name+":", statusStr, c.Summary)
	}

	return nil
}
