package installer

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ScriptInstall downloads a vendor-provided install script and executes it.
type ScriptInstall struct {
	// URL points at the vendor script.
	URL string
	// Args are passed to the script after its path.
	Args []string
	// Shell is the interpreter; "sh" when empty.
	Shell string
}

func (s ScriptInstall) Kind() string { return "script" }

func (s ScriptInstall) Install(ctx context.Context, tool string, env Env) error {
	name, err := archiveFileName(s.URL)
	if err != nil {
		return installError(tool, ErrKindNetwork, err)
	}
	scriptPath := filepath.Join(env.DownloadsDir, tool+"-"+name)

	env.logf("%s: downloading vendor script %s", tool, s.URL)
	if err := download(ctx, env.httpClient(), s.URL, scriptPath); err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return installError(tool, ErrKindTimeout, ctx.Err())
		}
		return installError(tool, ErrKindNetwork, err)
	}
	defer func() { _ = os.Remove(scriptPath) }()

	shell := s.Shell
	if shell == "" {
		shell = "sh"
	}

	args := append([]string{scriptPath}, s.Args...)
	env.logf("%s: running %s %s", tool, shell, strings.Join(args, " "))
	result, err := env.Runner.Run(ctx, shell, args, RunOptions{})
	if err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return installError(tool, ErrKindTimeout, ctx.Err())
		}
		detail := strings.TrimSpace(string(result.Stderr))
		if detail != "" {
			err = fmt.Errorf("%w: %s", err, lastLine(detail))
		}
		return installError(tool, ErrKindExit, err)
	}
	return nil
}
