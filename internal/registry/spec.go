package registry

import "provision/internal/installer"

// ToolSpec declares one managed tool: how to tell it is installed, how to
// install it, and which tools must be provisioned first. Specs are static;
// the engine never mutates them.
type ToolSpec struct {
	// Name identifies the tool in reports, flags, and dependency edges.
	Name string
	// Command is the executable probed on PATH to decide installed-ness;
	// Name when empty (e.g. neovim installs the nvim binary).
	Command string
	// MinVersion, when set, flags installed copies older than this.
	MinVersion string
	// VersionArgs invoke the version switch; ["--version"] when empty.
	VersionArgs []string
	// Strategy performs the installation.
	Strategy installer.Strategy
	// DependsOn lists tools that must be provisioned before this one.
	DependsOn []string
}

// CommandName returns the PATH-probe executable for the spec.
func (s ToolSpec) CommandName() string {
	if s.Command != "" {
		return s.Command
	}
	return s.Name
}
