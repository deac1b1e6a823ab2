package registry

import (
	"fmt"
	"sort"
)

// Select restricts a spec set to the requested subset. Tools named in only
// pull in their transitive dependencies so the resolved order stays valid;
// tools named in skip are removed outright. Unknown names are an error.
func Select(specs []ToolSpec, only, skip []string) ([]ToolSpec, error) {
	byName := make(map[string]ToolSpec, len(specs))
	for _, spec := range specs {
		byName[spec.Name] = spec
	}

	if err := checkKnown(byName, only); err != nil {
		return nil, err
	}
	if err := checkKnown(byName, skip); err != nil {
		return nil, err
	}

	keep := make(map[string]bool, len(specs))
	if len(only) == 0 {
		for _, spec := range specs {
			keep[spec.Name] = true
		}
	} else {
		var visit func(name string)
		visit = func(name string) {
			if keep[name] {
				return
			}
			keep[name] = true
			for _, dep := range byName[name].DependsOn {
				visit(dep)
			}
		}
		for _, name := range only {
			visit(name)
		}
	}

	skipped := make(map[string]bool, len(skip))
	for _, name := range skip {
		delete(keep, name)
		skipped[name] = true
	}

	filtered := make([]ToolSpec, 0, len(keep))
	for _, spec := range specs {
		if !keep[spec.Name] {
			continue
		}
		// Prune edges to explicitly skipped tools so resolution still
		// succeeds; opting a dependency out is the user's call.
		if len(spec.DependsOn) > 0 {
			deps := make([]string, 0, len(spec.DependsOn))
			for _, dep := range spec.DependsOn {
				if !skipped[dep] {
					deps = append(deps, dep)
				}
			}
			spec.DependsOn = deps
		}
		filtered = append(filtered, spec)
	}
	return filtered, nil
}

func checkKnown(byName map[string]ToolSpec, names []string) error {
	var unknown []string
	for _, name := range names {
		if _, ok := byName[name]; !ok {
			unknown = append(unknown, name)
		}
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		return fmt.Errorf("unknown tools: %v", unknown)
	}
	return nil
}
