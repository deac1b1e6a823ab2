package config

import (
	"fmt"

	"provision/internal/installer"
	"provision/internal/platform"
)

// Finding is a single validation result at "warning" or "error" level.
type Finding struct {
	Level   string `json:"level"`
	Message string `json:"message"`
}

var knownManagers = map[string]bool{
	string(platform.ManagerApt):    true,
	string(platform.ManagerDnf):    true,
	string(platform.ManagerPacman): true,
	string(platform.ManagerBrew):   true,
}

// Validate checks the configuration for structural problems. Errors make the
// config unusable; warnings are reported but tolerated.
func (c Config) Validate() []Finding {
	var findings []Finding
	errorf := func(format string, v ...any) {
		findings = append(findings, Finding{Level: "error", Message: fmt.Sprintf(format, v...)})
	}
	warnf := func(format string, v ...any) {
		findings = append(findings, Finding{Level: "warning", Message: fmt.Sprintf(format, v...)})
	}

	if _, err := c.TimeoutDuration(); err != nil {
		errorf("%v", err)
	}

	for i, tool := range c.Tools {
		name := tool.Name
		if name == "" {
			errorf("tools[%d]: name is required", i)
			name = fmt.Sprintf("tools[%d]", i)
		}

		strategies := 0
		if tool.Package != nil {
			strategies++
			for manager := range tool.Package.Names {
				if !knownManagers[manager] {
					warnf("%s: unknown package manager %q in names", name, manager)
				}
			}
		}
		if tool.Release != nil {
			strategies++
			if tool.Release.URL == "" {
				errorf("%s: release strategy requires url", name)
			}
			if tool.Release.Version == "" && tool.Release.Repo == "" {
				errorf("%s: release strategy requires version or repo for latest lookup", name)
			}
			if tool.Release.Archive != "" && !installer.ValidArchiveFormat(installer.ArchiveFormat(tool.Release.Archive)) {
				errorf("%s: unsupported archive format %q", name, tool.Release.Archive)
			}
		}
		if tool.Script != nil {
			strategies++
			if tool.Script.URL == "" {
				errorf("%s: script strategy requires url", name)
			}
		}
		if strategies != 1 {
			errorf("%s: exactly one of package, release, script must be set", name)
		}
	}

	return findings
}

// HasErrors reports whether any finding is at error level.
func HasErrors(findings []Finding) bool {
	for _, f := range findings {
		if f.Level == "error" {
			return true
		}
	}
	return false
}
