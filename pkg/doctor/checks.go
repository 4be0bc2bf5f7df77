package doctor

import (
	"regexp"
	"strings"

	"github.com/nigeyuk/serverConfig/pkg/execx"
)

// checkTool checks if a tool is installed and gets its version.
func checkTool(exec execx.Executor, id, name, desc string, versionArgs []string, versionRegex *regexp.Regexp) Check {
	check := Check{
		ID:          id,
		Name:        name,
		Description: desc,
		FixCommand:  GetFixCommand(id),
	}

	path, err := exec.LookPath(id)
	if err != nil {
		check.Status = StatusMissing
		check.Message = "not installed"
		return check
	}

	if len(versionArgs) == 0 {
		check.Status = StatusOK
		check.Message = "installed"
		return check
	}

	output, err := exec.Run(path, versionArgs...)
	if err != nil {
		// Tool exists but version check failed, still usable
		check.Status = StatusOK
		check.Message = "installed (version unknown)"
		return check
	}

	version := extractVersion(output, versionRegex)
	if version != "" {
		check.Status = StatusOK
		check.Message = version
	} else {
		check.Status = StatusOK
		check.Message = "installed"
	}

	return check
}

// extractVersion extracts a version string from command output.
func extractVersion(output string, regex *regexp.Regexp) string {
	if regex == nil {
		regex = regexp.MustCompile(`v?(\d+\.\d+(?:\.\d+)?(?:-[a-zA-Z0-9]+)?)`)
	}
	matches := regex.FindStringSubmatch(output)
	if len(matches) >= 2 {
		return matches[1]
	}
	return ""
}

// CheckAptGet checks if the apt package manager is installed.
func CheckAptGet(exec execx.Executor) Check {
	return checkTool(
		exec,
		IDAptGet,
		"apt-get",
		"Debian/Ubuntu package manager",
		[]string{"--version"},
		regexp.MustCompile(`apt (\d+\.\d+(?:\.\d+)?)`),
	)
}

// CheckUfw checks if ufw is installed.
func CheckUfw(exec execx.Executor) Check {
	return checkTool(
		exec,
		IDUfw,
		"ufw",
		"Uncomplicated Firewall",
		[]string{"--version"},
		regexp.MustCompile(`ufw (\d+\.\d+(?:\.\d+)?)`),
	)
}

// CheckSSHD checks if the SSH daemon is installed and running.
func CheckSSHD(exec execx.Executor) Check {
	check := Check{
		ID:          IDSSHD,
		Name:        "sshd",
		Description: "OpenSSH server daemon",
		FixCommand:  GetFixCommand(IDSSHD),
	}

	if _, err := exec.LookPath("sshd"); err != nil {
		check.Status = StatusMissing
		check.Message = "not installed"
		return check
	}

	output, err := exec.Run("systemctl", "is-active", "ssh")
	if err != nil {
		output, err = exec.Run("systemctl", "is-active", "sshd")
	}
	if err != nil || !strings.Contains(strings.TrimSpace(output), "active") {
		check.Status = StatusWarning
		check.Message = "installed but service not running"
		return check
	}

	check.Status = StatusOK
	check.Message = "running"
	return check
}

// CheckSSHKeygen checks if ssh-keygen is installed.
func CheckSSHKeygen(exec execx.Executor) Check {
	return checkTool(
		exec,
		IDSSHKeygen,
		"ssh-keygen",
		"SSH key generation tool",
		nil, // ssh-keygen has no version flag worth parsing
		nil,
	)
}

// CheckHostnamectl checks if hostnamectl is installed.
func CheckHostnamectl(exec execx.Executor) Check {
	return checkTool(
		exec,
		IDHostnametl,
		"hostnamectl",
		"systemd hostname control",
		nil,
		nil,
	)
}

// CheckAdduser checks if adduser is installed.
func CheckAdduser(exec execx.Executor) Check {
	return checkTool(
		exec,
		IDAdduser,
		"adduser",
		"user account creation tool",
		nil,
		nil,
	)
}

// CheckSystemctl checks if systemctl is installed.
func CheckSystemctl(exec execx.Executor) Check {
	return checkTool(
		exec,
		IDSystemctl,
		"systemctl",
		"systemd service control",
		[]string{"--version"},
		regexp.MustCompile(`systemd (\d+)`),
	)
}

// CheckFallocate checks if fallocate is installed.
func CheckFallocate(exec execx.Executor) Check {
	return checkTool(
		exec,
		IDFallocate,
		"fallocate",
		"swap file allocation tool",
		nil,
		nil,
	)
}

// CheckSed checks if sed is installed.
func CheckSed(exec execx.Executor) Check {
	return checkTool(
		exec,
		IDSed,
		"sed",
		"stream editor for config rewrites",
		[]string{"--version"},
		regexp.MustCompile(`sed \(GNU sed\) (\d+\.\d+)`),
	)
}
