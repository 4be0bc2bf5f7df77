// Package doctor provides dependency checking and fixing for serverconfig.
// Every external tool the menu operations invoke has a check here, so an
// operator can see what's missing before starting a task.
package doctor

// CheckStatus represents the status of a dependency check.
type CheckStatus int

const (
	// StatusOK indicates the dependency is installed and working.
	StatusOK CheckStatus = iota
	// StatusMissing indicates the dependency is not installed.
	StatusMissing
	// StatusError indicates an error occurred during the check.
	StatusError
	// StatusWarning indicates the dependency has issues but may work.
	StatusWarning
)

// String returns the string representation of the status.
func (s CheckStatus) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusMissing:
		return "missing"
	case StatusError:
		return "error"
	case StatusWarning:
		return "warning"
	default:
		return "unknown"
	}
}

// Check represents a single dependency check result.
type Check struct {
	ID          string      // Unique identifier, e.g., "apt-get", "ufw"
	Name        string      // Display name
	Description string      // What this tool does
	Status      CheckStatus // Current status
	Message     string      // Status message (version info, error, etc.)
	FixCommand  *FixCommand // How to fix if missing (nil if not fixable)
}

// FixCommand describes how to fix a missing dependency.
type FixCommand struct {
	Description string // Human-readable description of what the fix does
	Command     string // Shell command to run
	Sudo        bool   // Whether the command requires sudo
}

// CheckGroup represents a group of related dependency checks.
type CheckGroup struct {
	ID          string  // Unique identifier, e.g., "packages", "ssh"
	Name        string  // Display name
	Description string  // What this group is for
	Checks      []Check // Individual checks in this group
}

// GroupID constants for check groups.
const (
	GroupPackages = "packages"
	GroupFirewall = "firewall"
	GroupSSH      = "ssh"
	GroupSystem   = "system"
)

// CheckID constants for individual checks.
const (
	IDAptGet     = "apt-get"
	IDUfw        = "ufw"
	IDSSHD       = "sshd"
	IDSSHKeygen  = "ssh-keygen"
	IDHostnametl = "hostnamectl"
	IDAdduser    = "adduser"
	IDSystemctl  = "systemctl"
	IDFallocate  = "fallocate"
	IDSed        = "sed"
)
