package paths

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
)

// EnginePaths captures the canonical locations used during a provisioning run.
type EnginePaths struct {
	DataDir      string
	BinDir       string
	DownloadsDir string
	LogsDir      string
	ConfigFile   string
}

// Resolve determines the standard paths, honoring environment overrides.
// PROVISION_DATA_DIR relocates the data root (downloads, logs) and
// PROVISION_BIN_DIR relocates the binary install directory.
func Resolve() (EnginePaths, error) {
	data, err := dataRoot()
	if err != nil {
		return EnginePaths{}, err
	}

	bin, err := binDir()
	if err != nil {
		return EnginePaths{}, err
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return EnginePaths{}, fmt.Errorf("detect user home: %w", err)
	}

	return EnginePaths{
		DataDir:      data,
		BinDir:       bin,
		DownloadsDir: filepath.Join(data, "downloads"),
		LogsDir:      filepath.Join(data, "logs"),
		ConfigFile:   filepath.Join(home, ".provision.yaml"),
	}, nil
}

// dataRoot determines the per-user data directory for downloads and logs.
func dataRoot() (string, error) {
	if override, ok := os.LookupEnv("PROVISION_DATA_DIR"); ok && override != "" {
		abs, err := filepath.Abs(override)
		if err != nil {
			return "", fmt.Errorf("resolve PROVISION_DATA_DIR: %w", err)
		}
		return abs, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("detect user home: %w", err)
	}

	switch runtime.GOOS {
	case "darwin":
		return filepath.Join(home, "Library", "Application Support", "provision"), nil
	default:
		return filepath.Join(home, ".local", "share", "provision"), nil
	}
}

// binDir determines where release binaries are installed. The default is
// ~/.local/bin, which the shell startup files already place on PATH.
func binDir() (string, error) {
	if override, ok := os.LookupEnv("PROVISION_BIN_DIR"); ok && override != "" {
		abs, err := filepath.Abs(override)
		if err != nil {
			return "", fmt.Errorf("resolve PROVISION_BIN_DIR: %w", err)
		}
		return abs, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("detect user home: %w", err)
	}
	return filepath.Join(home, ".local", "bin"), nil
}

// EnsureDirs creates the bin/downloads/logs hierarchy.
func (p EnginePaths) EnsureDirs() error {
	dirs := []string{p.DataDir, p.BinDir, p.DownloadsDir, p.LogsDir}
	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %s: %w", dir, err)
		}
	}
	return nil
}

// FileExists reports whether a path exists and is a regular file.
func FileExists(path string) (bool, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	return info.Mode().IsRegular(), nil
}

// DirExists reports whether a path exists and is a directory.
func DirExists(path string) (bool, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	return info.IsDir(), nil
}

// DirWritable reports whether the process can create files inside dir.
func DirWritable(dir string) bool {
	probe, err := os.CreateTemp(dir, ".provision-probe-*")
	if err != nil {
		return false
	}
	name := probe.Name()
	probe.Close()
	_ = os.Remove(name)
	return true
}
