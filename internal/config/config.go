package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config captures user overrides for a provisioning run. Everything is
// optional; an absent config file means the built-in defaults.
type Config struct {
	Version      int          `yaml:"version"`
	InstallDir   string       `yaml:"install_dir"`
	DownloadsDir string       `yaml:"downloads_dir"`
	Skip         []string     `yaml:"skip"`
	Timeout      string       `yaml:"timeout"`
	Tools        []ToolConfig `yaml:"tools"`
}

// ToolConfig declares or overrides a tool in the registry. Exactly one of
// the strategy sections must be set.
type ToolConfig struct {
	Name        string            `yaml:"name"`
	Command     string            `yaml:"command"`
	MinVersion  string            `yaml:"min_version"`
	VersionArgs []string          `yaml:"version_args"`
	DependsOn   []string          `yaml:"depends_on"`
	Package     *PackageStrategy  `yaml:"package"`
	Release     *ReleaseStrategy  `yaml:"release"`
	Script      *ScriptStrategy   `yaml:"script"`
}

// PackageStrategy configures a package-manager install.
type PackageStrategy struct {
	Name string `yaml:"name"`
	// Names overrides the package name per manager (apt, dnf, pacman, brew).
	Names map[string]string `yaml:"names"`
}

// ReleaseStrategy configures a release-archive download.
type ReleaseStrategy struct {
	Repo      string            `yaml:"repo"`
	Version   string            `yaml:"version"`
	URL       string            `yaml:"url"`
	Archive   string            `yaml:"archive"`
	Binary    string            `yaml:"binary"`
	Checksums map[string]string `yaml:"checksums"`
}

// ScriptStrategy configures a vendor install script.
type ScriptStrategy struct {
	URL   string   `yaml:"url"`
	Args  []string `yaml:"args"`
	Shell string   `yaml:"shell"`
}

// Default returns the baseline configuration.
func Default() Config {
	return Config{Version: 1}
}

// Load reads the YAML configuration from disk if it exists, otherwise
// returns the default configuration.
func Load(path string) (Config, error) {
	contents, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(contents, &cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	if cfg.Version == 0 {
		cfg.Version = 1
	}
	return cfg, nil
}

// TimeoutDuration parses the per-tool timeout; zero when unset.
func (c Config) TimeoutDuration() (time.Duration, error) {
	if c.Timeout == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(c.Timeout)
	if err != nil {
		return 0, fmt.Errorf("parse timeout: %w", err)
	}
	if d < 0 {
		return 0, fmt.Errorf("timeout must not be negative: %s", c.Timeout)
	}
	return d, nil
}
