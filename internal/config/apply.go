package config

import (
	"fmt"

	"provision/internal/installer"
	"provision/internal/platform"
	"provision/internal/registry"
)

// Apply merges configured tools into the built-in spec set. A configured
// tool with a known name replaces the built-in definition; new names are
// appended, keeping declaration order for deterministic tie-breaking.
func (c Config) Apply(specs []registry.ToolSpec) ([]registry.ToolSpec, error) {
	merged := make([]registry.ToolSpec, len(specs))
	copy(merged, specs)

	index := make(map[string]int, len(merged))
	for i, spec := range merged {
		index[spec.Name] = i
	}

	for _, tool := range c.Tools {
		spec, err := tool.toSpec()
		if err != nil {
			return nil, err
		}
		if i, ok := index[spec.Name]; ok {
			merged[i] = spec
		} else {
			index[spec.Name] = len(merged)
			merged = append(merged, spec)
		}
	}
	return merged, nil
}

func (t ToolConfig) toSpec() (registry.ToolSpec, error) {
	if t.Name == "" {
		return registry.ToolSpec{}, fmt.Errorf("configured tool is missing a name")
	}

	spec := registry.ToolSpec{
		Name:        t.Name,
		Command:     t.Command,
		MinVersion:  t.MinVersion,
		VersionArgs: t.VersionArgs,
		DependsOn:   t.DependsOn,
	}

	switch {
	case t.Package != nil:
		names := make(map[platform.PackageManager]string, len(t.Package.Names))
		for manager, pkg := range t.Package.Names {
			names[platform.PackageManager(manager)] = pkg
		}
		spec.Strategy = installer.PackageInstall{
			Package: t.Package.Name,
			Names:   names,
		}
	case t.Release != nil:
		archive := installer.ArchiveFormat(t.Release.Archive)
		if t.Release.Archive == "" {
			archive = installer.ArchiveNone
		}
		if !installer.ValidArchiveFormat(archive) {
			return registry.ToolSpec{}, fmt.Errorf("tool %s: unsupported archive format %q", t.Name, t.Release.Archive)
		}
		spec.Strategy = installer.ReleaseInstall{
			Repo:        t.Release.Repo,
			Version:     t.Release.Version,
			URLTemplate: t.Release.URL,
			Archive:     archive,
			Binary:      t.Release.Binary,
			Checksums:   t.Release.Checksums,
		}
	case t.Script != nil:
		spec.Strategy = installer.ScriptInstall{
			URL:   t.Script.URL,
			Args:  t.Script.Args,
			Shell: t.Script.Shell,
		}
	default:
		return registry.ToolSpec{}, fmt.Errorf("tool %s: no install strategy configured", t.Name)
	}

	return spec, nil
}
