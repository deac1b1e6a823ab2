package engine

import (
	"time"

	"provision/internal/platform"
)

// Outcome is the terminal state of one tool in a run.
type Outcome string

const (
	// OutcomePresent means the tool was already installed; nothing ran.
	OutcomePresent Outcome = "present"
	// OutcomeInstalled means the strategy ran and succeeded.
	OutcomeInstalled Outcome = "installed"
	// OutcomeFailed means the strategy ran and failed.
	OutcomeFailed Outcome = "failed"
	// OutcomeSkipped means a dependency failed or was skipped first.
	OutcomeSkipped Outcome = "skipped"
	// OutcomePlanned is reported instead of an install during a dry run.
	OutcomePlanned Outcome = "planned"
)

// Result records the outcome for a single tool. Results are created once and
// appended to the report; they are never mutated afterwards.
type Result struct {
	Tool     string        `json:"tool"`
	Strategy string        `json:"strategy"`
	Outcome  Outcome       `json:"outcome"`
	Version  string        `json:"version,omitempty"`
	Detail   string        `json:"detail,omitempty"`
	Duration time.Duration `json:"duration_ns,omitempty"`
}

// Report is the complete, ordered record of one orchestrator invocation.
type Report struct {
	Platform platform.Platform `json:"platform"`
	DryRun   bool              `json:"dry_run,omitempty"`
	Results  []Result          `json:"results"`
}

// Success reports whether the run completed without any failed tool.
func (r Report) Success() bool {
	for _, res := range r.Results {
		if res.Outcome == OutcomeFailed {
			return false
		}
	}
	return true
}

// Summary tallies outcomes for the end-of-run report line.
type Summary struct {
	Present   int `json:"present"`
	Installed int `json:"installed"`
	Failed    int `json:"failed"`
	Skipped   int `json:"skipped"`
	Planned   int `json:"planned,omitempty"`
}

// Summarize counts results by outcome.
func (r Report) Summarize() Summary {
	var s Summary
	for _, res := range r.Results {
		switch res.Outcome {
		case OutcomePresent:
			s.Present++
		case OutcomeInstalled:
			s.Installed++
		case OutcomeFailed:
			s.Failed++
		case OutcomeSkipped:
			s.Skipped++
		case OutcomePlanned:
			s.Planned++
		}
	}
	return s
}
