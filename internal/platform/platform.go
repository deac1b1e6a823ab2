package platform

import "fmt"

// OS identifies a supported operating system family.
type OS string

const (
	OSLinux  OS = "linux"
	OSDarwin OS = "darwin"
)

// PackageManager identifies the system package manager used for
// package-based installs.
type PackageManager string

const (
	ManagerApt    PackageManager = "apt"
	ManagerDnf    PackageManager = "dnf"
	ManagerPacman PackageManager = "pacman"
	ManagerBrew   PackageManager = "brew"
)

// Platform captures the detected host environment. It is immutable once
// detected; a given host always resolves to the same value.
type Platform struct {
	OS             OS             `json:"os"`
	PackageManager PackageManager `json:"package_manager"`
}

func (p Platform) String() string {
	return fmt.Sprintf("%s/%s", p.OS, p.PackageManager)
}

// UnsupportedPlatformError reports a host the engine cannot provision.
type UnsupportedPlatformError struct {
	OS     string
	Reason string
}

func (e *UnsupportedPlatformError) Error() string {
	return fmt.Sprintf("unsupported platform %s: %s", e.OS, e.Reason)
}
