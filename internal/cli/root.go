package cli

import (
	"errors"
	"fmt"
	"os"
	"os/exec"

	"github.com/spf13/cobra"
)

var (
	configPath string
	outputJSON bool
)

// lookPath is swapped out in tests.
var lookPath = exec.LookPath

// Execute runs the root cobra command and exits with the appropriate code:
// 0 on success, 1 when any tool failed, 2 on platform or configuration
// problems.
func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(exitCode(err))
	}
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "provision",
		Short: "Idempotent workstation tool provisioning",
		Long: "provision installs a curated set of command line tools on the current\n" +
			"machine. Tools already on PATH are left alone, so re-running is always safe.",
		RunE:          runProvision,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to config file (default ~/.provision.yaml)")
	cmd.PersistentFlags().BoolVar(&outputJSON, "json", false, "Output machine-readable JSON")

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Report planned actions without installing anything")
	cmd.Flags().StringSliceVar(&onlyTools, "only", nil, "Provision only the named tools plus their dependencies")
	cmd.Flags().StringSliceVar(&skipTools, "skip", nil, "Skip the named tools")
	cmd.Flags().DurationVar(&timeoutFlag, "timeout", 0, "Per-tool install timeout (overrides the config value)")
	cmd.Flags().BoolVar(&noProgress, "no-progress", false, "Disable interactive progress output")

	cmd.AddCommand(newListCmd())
	cmd.AddCommand(newDoctorCmd())

	return cmd
}

// exitError carries an explicit process exit code through cobra.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string { return e.err.Error() }
func (e *exitError) Unwrap() error { return e.err }

// setupError marks err as a platform/configuration failure (exit code 2).
func setupError(err error) error {
	return &exitError{code: 2, err: err}
}

func exitCode(err error) int {
	if err == nil {
		return 0
	}
	var xe *exitError
	if errors.As(err, &xe) {
		return xe.code
	}
	return 1
}
