package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"provision/internal/engine"
	"provision/internal/registry"
)

// Table column layout shared by the TUI and the plain renderer.
var RunColumns = []Column{
	{Header: "TOOL", Width: 12},
	{Header: "STRATEGY", Width: 8},
	{Header: "STATUS", Width: 10},
	{Header: "DETAIL", Width: 44},
}

// EngineReporter adapts engine progress callbacks to bubbletea row updates.
// Rows are keyed by tool name.
type EngineReporter struct {
	send func(tea.Msg)
}

// NewEngineReporter constructs a reporter that forwards updates via send.
func NewEngineReporter(send func(tea.Msg)) *EngineReporter {
	return &EngineReporter{send: send}
}

// Start implements engine.Reporter.
func (r *EngineReporter) Start(spec registry.ToolSpec) {
	r.send(RowUpdateMsg{
		Key:    spec.Name,
		Fields: map[string]string{"STATUS": "checking"},
	})
}

// Complete implements engine.Reporter.
func (r *EngineReporter) Complete(res engine.Result) {
	r.send(RowUpdateMsg{
		Key: res.Tool,
		Fields: map[string]string{
			"STATUS": string(res.Outcome),
			"DETAIL": NonEmptyOrDash(res.Detail),
		},
	})
}
