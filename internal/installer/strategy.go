package installer

import (
	"context"
	"net/http"
	"time"

	"provision/internal/platform"
)

// Logger is the minimal logging surface strategies need.
type Logger interface {
	Printf(format string, v ...any)
}

// Env bundles the host context a strategy installs into. The engine builds
// one Env per run and shares it across all tools.
type Env struct {
	Platform     platform.Platform
	Runner       Runner
	Client       *http.Client
	BinDir       string
	DownloadsDir string
	Logger       Logger
}

func (e Env) logf(format string, v ...any) {
	if e.Logger == nil {
		return
	}
	e.Logger.Printf(format, v...)
}

func (e Env) httpClient() *http.Client {
	if e.Client != nil {
		return e.Client
	}
	return &http.Client{Timeout: 5 * time.Minute}
}

// Strategy installs a single tool. Implementations must be safe to invoke
// repeatedly: the engine never calls Install for a tool that is already on
// PATH, and interrupted installs must not leave partial binaries at their
// final location.
type Strategy interface {
	// Kind names the strategy variant for display ("package", "release", "script").
	Kind() string

	// Install performs the installation side effects.
	Install(ctx context.Context, tool string, env Env) error
}
