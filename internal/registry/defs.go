package registry

import (
	"provision/internal/installer"
	"provision/internal/platform"
)

// Defaults returns the built-in tool set in declaration order. Declaration
// order is meaningful: it breaks ties between tools with no dependency
// relationship so runs stay deterministic.
func Defaults() []ToolSpec {
	return []ToolSpec{
		{
			Name:     "git",
			Strategy: installer.PackageInstall{},
		},
		{
			Name:     "fish",
			Strategy: installer.PackageInstall{},
		},
		{
			Name:    "neovim",
			Command: "nvim",
			Strategy: installer.PackageInstall{
				Package: "neovim",
			},
			MinVersion: "0.9",
		},
		{
			Name:    "ripgrep",
			Command: "rg",
			Strategy: installer.PackageInstall{
				Package: "ripgrep",
			},
		},
		{
			Name: "fd",
			Strategy: installer.PackageInstall{
				Names: map[platform.PackageManager]string{
					platform.ManagerApt: "fd-find",
				},
			},
		},
		{
			Name:     "fzf",
			Strategy: installer.PackageInstall{},
		},
		{
			Name:     "bat",
			Strategy: installer.PackageInstall{},
		},
		{
			Name:      "gh",
			Strategy:  installer.PackageInstall{},
			DependsOn: []string{"git"},
		},
		{
			Name: "lazygit",
			Strategy: installer.ReleaseInstall{
				Repo:        "jesseduffield/lazygit",
				URLTemplate: "https://github.com/jesseduffield/lazygit/releases/download/v{version}/lazygit_{version}_{OS}_{ARCH}.tar.gz",
				Archive:     installer.ArchiveTarGz,
			},
			DependsOn: []string{"git"},
		},
		{
			Name: "starship",
			Strategy: installer.ScriptInstall{
				URL:  "https://starship.rs/install.sh",
				Args: []string{"--yes"},
			},
			DependsOn: []string{"fish"},
		},
	}
}
