package platform

import (
	"os/exec"
	"runtime"
)

// linuxManagers lists the package managers probed on Linux, in preference
// order. The first one found on PATH wins.
var linuxManagers = []PackageManager{ManagerApt, ManagerDnf, ManagerPacman}

// managerExecutables maps each package manager to the executable probed on
// PATH. apt installs go through apt-get for scriptable behaviour.
var managerExecutables = map[PackageManager]string{
	ManagerApt:    "apt-get",
	ManagerDnf:    "dnf",
	ManagerPacman: "pacman",
	ManagerBrew:   "brew",
}

// Executable returns the binary name invoked for the given package manager.
func Executable(pm PackageManager) string {
	return managerExecutables[pm]
}

// Detect identifies the host OS family and its package manager. It is a pure
// probe of the environment; no side effects.
func Detect() (Platform, error) {
	return detect(runtime.GOOS, exec.LookPath)
}

func detect(goos string, lookPath func(string) (string, error)) (Platform, error) {
	switch goos {
	case "linux":
		for _, pm := range linuxManagers {
			if _, err := lookPath(managerExecutables[pm]); err == nil {
				return Platform{OS: OSLinux, PackageManager: pm}, nil
			}
		}
		return Platform{}, &UnsupportedPlatformError{
			OS:     goos,
			Reason: "none of apt, dnf, pacman found on PATH",
		}
	case "darwin":
		if _, err := lookPath(managerExecutables[ManagerBrew]); err == nil {
			return Platform{OS: OSDarwin, PackageManager: ManagerBrew}, nil
		}
		return Platform{}, &UnsupportedPlatformError{
			OS:     goos,
			Reason: "Homebrew not found on PATH",
		}
	default:
		return Platform{}, &UnsupportedPlatformError{
			OS:     goos,
			Reason: "only linux and darwin are supported",
		}
	}
}
