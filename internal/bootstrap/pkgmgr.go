package bootstrap

// PackageManager identifies a supported OS package manager.
type PackageManager string

const (
	Homebrew   PackageManager = "brew"
	Apt        PackageManager = "apt-get"
	Dnf        PackageManager = "dnf"
	Pacman     PackageManager = "pacman"
	Chocolatey PackageManager = "choco"
	Winget     PackageManager = "winget"
)

// managerProbe lists the package managers probed per GOOS, in preference
// order.
var managerProbe = map[string][]PackageManager{
	"darwin":  {Homebrew},
	"linux":   {Apt, Dnf, Pacman, Homebrew},
	"windows": {Chocolatey, Winget},
}

// DetectManager probes PATH for a usable package manager on the given
// OS. Returns false when none is available or the OS is unsupported.
func DetectManager(goos string, lookPath func(string) (string, error)) (PackageManager, bool) {
	for _, mgr := range managerProbe[goos] {
		if _, err := lookPath(string(mgr)); err == nil {
			return mgr, true
		}
	}
	return "", false
}

// KiCadInstallCommand returns the command line that installs KiCad with
// the given package manager. The linux system managers need root, so
// those commands are prefixed with sudo.
func (m PackageManager) KiCadInstallCommand() []string {
	switch m {
	case Homebrew:
		return []string{"brew", "install", "--cask", "kicad"}
	case Apt:
		return []string{"sudo", "apt-get", "install", "-y", "kicad"}
	case Dnf:
		return []string{"sudo", "dnf", "install", "-y", "kicad"}
	case Pacman:
		return []string{"sudo", "pacman", "-S", "--noconfirm", "kicad"}
	case Chocolatey:
		return []string{"choco", "install", "kicad", "-y"}
	case Winget:
		return []string{"winget", "install", "--id", "KiCad.KiCad"}
	default:
		return nil
	}
}
