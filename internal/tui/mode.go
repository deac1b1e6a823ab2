package tui

import (
	"io"
	"os"
	"runtime"
	"strings"
)

// OutputMode describes how run results are presented to the user.
type OutputMode int

const (
	// ModeTUI renders a live bubbletea table that updates as tools finish.
	ModeTUI OutputMode = iota
	// ModePlain prints a static results table once the run completes.
	ModePlain
	// ModeJSON emits the run report as machine-readable JSON.
	ModeJSON
)

// DetectMode picks the output mode for the given writer. Explicit flags win;
// otherwise the live table is used only when writing to a real terminal, so
// piping output or running from a provisioning script degrades to plain text.
func DetectMode(out io.Writer, noProgress, jsonOutput bool) OutputMode {
	if jsonOutput {
		return ModeJSON
	}
	if noProgress {
		return ModePlain
	}
	file, ok := out.(*os.File)
	if !ok {
		return ModePlain
	}
	info, err := file.Stat()
	if err != nil {
		return ModePlain
	}
	if info.Mode()&os.ModeCharDevice == 0 {
		return ModePlain
	}
	if runtime.GOOS != "windows" {
		term := os.Getenv("TERM")
		if term == "" || strings.EqualFold(term, "dumb") {
			return ModePlain
		}
	}
	return ModeTUI
}
