package installer

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"provision/internal/platform"
)

// PackageInstall installs a tool through the platform's package manager.
type PackageInstall struct {
	// Package is the default package name; the tool name when empty.
	Package string
	// Names overrides the package name for specific managers (e.g. fd is
	// packaged as fd-find on apt).
	Names map[platform.PackageManager]string
}

func (s PackageInstall) Kind() string { return "package" }

func (s PackageInstall) packageName(pm platform.PackageManager, tool string) string {
	if name, ok := s.Names[pm]; ok {
		return name
	}
	if s.Package != "" {
		return s.Package
	}
	return tool
}

// managerCommand builds the install invocation for a package manager.
// System managers on Linux require root, so they run through sudo; brew
// refuses to run as root and is invoked directly.
func managerCommand(pm platform.PackageManager, pkg string) (string, []string, error) {
	switch pm {
	case platform.ManagerApt:
		return "sudo", []string{"apt-get", "install", "-y", pkg}, nil
	case platform.ManagerDnf:
		return "sudo", []string{"dnf", "install", "-y", pkg}, nil
	case platform.ManagerPacman:
		return "sudo", []string{"pacman", "-S", "--noconfirm", "--needed", pkg}, nil
	case platform.ManagerBrew:
		return "brew", []string{"install", pkg}, nil
	default:
		return "", nil, fmt.Errorf("no install command for package manager %q", pm)
	}
}

func (s PackageInstall) Install(ctx context.Context, tool string, env Env) error {
	pkg := s.packageName(env.Platform.PackageManager, tool)
	command, args, err := managerCommand(env.Platform.PackageManager, pkg)
	if err != nil {
		return installError(tool, ErrKindExit, err)
	}

	env.logf("%s: installing package %s via %s", tool, pkg, env.Platform.PackageManager)
	result, err := env.Runner.Run(ctx, command, args, RunOptions{})
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

func lastLine(text string) string {
	if idx := strings.LastIndexByte(strings.TrimRight(text, "\n"), '\n'); idx >= 0 {
		return text[idx+1:]
	}
	return text
}
