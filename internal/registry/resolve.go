package registry

import (
	"fmt"
	"sort"
	"strings"
)

// CyclicDependencyError reports a dependency cycle in a spec set. Cycles are
// a configuration bug and abort the run before anything is attempted.
type CyclicDependencyError struct {
	Tools []string
}

func (e *CyclicDependencyError) Error() string {
	return fmt.Sprintf("dependency cycle involving: %s", strings.Join(e.Tools, ", "))
}

// ResolveOrder performs a topological sort over DependsOn edges. Ties among
// tools with no dependency relationship are broken by declaration order, so
// the result is deterministic. Edges to unknown tools are rejected.
func ResolveOrder(specs []ToolSpec) ([]ToolSpec, error) {
	index := make(map[string]int, len(specs))
	for i, spec := range specs {
		if _, dup := index[spec.Name]; dup {
			return nil, fmt.Errorf("duplicate tool %q", spec.Name)
		}
		index[spec.Name] = i
	}

	indegree := make([]int, len(specs))
	for _, spec := range specs {
		for _, dep := range spec.DependsOn {
			if _, ok := index[dep]; !ok {
				return nil, fmt.Errorf("tool %q depends on unknown tool %q", spec.Name, dep)
			}
			indegree[index[spec.Name]]++
		}
	}

	// Kahn's algorithm, scanning in declaration order each round to keep
	// the ordering stable.
	resolved := make([]ToolSpec, 0, len(specs))
	done := make([]bool, len(specs))
	for len(resolved) < len(specs) {
		progressed := false
		for i, spec := range specs {
			if done[i] || indegree[i] > 0 {
				continue
			}
			resolved = append(resolved, spec)
			done[i] = true
			progressed = true
			for j, other := range specs {
				if done[j] {
					continue
				}
				for _, dep := range other.DependsOn {
					if dep == spec.Name {
						indegree[j]--
					}
				}
			}
		}
		if !progressed {
			var cycle []string
			for i, spec := range specs {
				if !done[i] {
					cycle = append(cycle, spec.Name)
				}
			}
			sort.Strings(cycle)
			return nil, &CyclicDependencyError{Tools: cycle}
		}
	}
	return resolved, nil
}
