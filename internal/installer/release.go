package installer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

// ReleaseInstall downloads a prebuilt binary from a release archive and
// places it into the engine's bin directory.
type ReleaseInstall struct {
	// Repo is the GitHub owner/name used to resolve the latest version when
	// Version is empty.
	Repo string
	// Version pins an exact release; empty means latest.
	Version string
	// URLTemplate builds the artifact URL. Recognized placeholders:
	// {version}, {os}, {arch}, {OS} (capitalized), {ARCH} (release-asset
	// spelling, amd64 -> x86_64).
	URLTemplate string
	// Archive describes the artifact layout.
	Archive ArchiveFormat
	// Binary is the executable name inside the archive; the tool name when
	// empty.
	Binary string
	// Checksums holds optional sha256 sums keyed by "os-arch".
	Checksums map[string]string
}

func (s ReleaseInstall) Kind() string { return "release" }

func (s ReleaseInstall) Install(ctx context.Context, tool string, env Env) error {
	client := env.httpClient()

	version := s.Version
	if version == "" {
		resolved, err := latestRelease(ctx, client, s.Repo)
		if err != nil {
			return installError(tool, ErrKindNetwork, err)
		}
		version = resolved
		env.logf("%s: resolved latest release %s", tool, version)
	}

	artifactURL := expandURL(s.URLTemplate, version)
	name, err := archiveFileName(artifactURL)
	if err != nil {
		return installError(tool, ErrKindNetwork, err)
	}
	archivePath := filepath.Join(env.DownloadsDir, name)

	env.logf("%s: downloading %s", tool, artifactURL)
	if err := download(ctx, client, artifactURL, archivePath); err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return installError(tool, ErrKindTimeout, ctx.Err())
		}
		if errors.Is(err, os.ErrPermission) {
			return installError(tool, ErrKindPermission, err)
		}
		return installError(tool, ErrKindNetwork, err)
	}

	if expected, ok := s.Checksums[PlatformKey()]; ok && expected != "" {
		match, err := verifyChecksum(archivePath, expected)
		if err != nil {
			return installError(tool, ErrKindChecksum, err)
		}
		if !match {
			_ = os.Remove(archivePath)
			return installError(tool, ErrKindChecksum, fmt.Errorf("checksum mismatch for %s", artifactURL))
		}
	}

	binary := s.Binary
	if binary == "" {
		binary = tool
	}

	source := archivePath
	if s.Archive != ArchiveNone {
		extractDir, err := os.MkdirTemp(env.DownloadsDir, tool+"-extract-")
		if err != nil {
			return installError(tool, ErrKindPermission, fmt.Errorf("create extract dir: %w", err))
		}
		defer func() { _ = os.RemoveAll(extractDir) }()

		if err := extractArchive(s.Archive, archivePath, extractDir); err != nil {
			return installError(tool, ErrKindChecksum, err)
		}
		source, err = findExecutable(extractDir, binary)
		if err != nil {
			return installError(tool, ErrKindChecksum, err)
		}
		if source == "" {
			return installError(tool, ErrKindChecksum, fmt.Errorf("binary %s not found in archive", binary))
		}
	}

	dest := filepath.Join(env.BinDir, binary)
	if err := commitBinary(source, dest); err != nil {
		return installError(tool, ErrKindPermission, err)
	}
	env.logf("%s: installed %s", tool, dest)
	return nil
}

// commitBinary stages the binary next to its destination and renames it into
// place, so an interrupted install never leaves a partial file at dest.
func commitBinary(source, dest string) error {
	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return fmt.Errorf("prepare install dir: %w", err)
	}

	in, err := os.Open(source)
	if err != nil {
		return fmt.Errorf("open source binary: %w", err)
	}
	defer in.Close()

	tmp, err := os.CreateTemp(filepath.Dir(dest), filepath.Base(dest)+"-*.tmp")
	if err != nil {
		return fmt.Errorf("create staging file: %w", err)
	}
	tmpPath := tmp.Name()
	defer func() { _ = os.Remove(tmpPath) }()

	if _, err := io.Copy(tmp, in); err != nil {
		tmp.Close()
		return fmt.Errorf("stage binary: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close staging file: %w", err)
	}
	if err := os.Chmod(tmpPath, 0o755); err != nil {
		return fmt.Errorf("chmod staging file: %w", err)
	}
	if err := os.Rename(tmpPath, dest); err != nil {
		return fmt.Errorf("commit binary: %w", err)
	}
	return nil
}

// PlatformKey returns the "os-arch" key used for checksum lookups.
func PlatformKey() string {
	return runtime.GOOS + "-" + runtime.GOARCH
}

// archAliases maps Go arch names to the spelling common in release assets.
var archAliases = map[string]string{
	"amd64": "x86_64",
	"386":   "i386",
	"arm64": "arm64",
}

func expandURL(template, version string) string {
	arch := runtime.GOARCH
	alias, ok := archAliases[arch]
	if !ok {
		alias = arch
	}
	replacer := strings.NewReplacer(
		"{version}", version,
		"{os}", runtime.GOOS,
		"{OS}", strings.ToUpper(runtime.GOOS[:1])+runtime.GOOS[1:],
		"{arch}", arch,
		"{ARCH}", alias,
	)
	return replacer.Replace(template)
}
