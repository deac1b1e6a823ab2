package cli

import (
	"encoding/json"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"provision/internal/paths"
	"provision/internal/registry"
)

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List managed tools in install order",
		RunE:  runList,
	}
}

type listEntry struct {
	Name       string   `json:"name"`
	Strategy   string   `json:"strategy"`
	Command    string   `json:"command"`
	MinVersion string   `json:"min_version,omitempty"`
	DependsOn  []string `json:"depends_on,omitempty"`
	Present    bool     `json:"present"`
	Path       string   `json:"path,omitempty"`
}

func runList(cmd *cobra.Command, _ []string) error {
	pp, err := paths.Resolve()
	if err != nil {
		return setupError(err)
	}

	cfg, _, err := loadConfig(cmd, pp)
	if err != nil {
		return err
	}

	specs, err := cfg.Apply(registry.Defaults())
	if err != nil {
		return setupError(err)
	}
	order, err := registry.ResolveOrder(specs)
	if err != nil {
		return setupError(err)
	}

	entries := make([]listEntry, 0, len(order))
	for _, spec := range order {
		entry := listEntry{
			Name:       spec.Name,
			Strategy:   spec.Strategy.Kind(),
			Command:    spec.CommandName(),
			MinVersion: spec.MinVersion,
			DependsOn:  spec.DependsOn,
		}
		if path, err := lookPath(spec.CommandName()); err == nil {
			entry.Present = true
			entry.Path = path
		}
		entries = append(entries, entry)
	}

	if outputJSON {
		data, err := json.MarshalIndent(entries, "", "  ")
		if err != nil {
			return fmt.Errorf("encode json: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 2, 2, ' ', 0)
	fmt.Fprintln(w, "TOOL\tSTRATEGY\tCOMMAND\tPRESENT\tDEPENDS ON")
	for _, entry := range entries {
		present := "no"
		if entry.Present {
			present = "yes"
		}
		deps := strings.Join(entry.DependsOn, ", ")
		if deps == "" {
			deps = "-"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", entry.Name, entry.Strategy, entry.Command, present, deps)
	}
	w.Flush()
	return nil
}
