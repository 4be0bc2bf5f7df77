package doctor

// fixCommands defines fix commands for each tool. This tool provisions
// Debian/Ubuntu servers, so fixes are apt-based.
var fixCommands = map[string]*FixCommand{
	IDUfw: {
		Description: "Install ufw via apt",
		Command:     "sudo apt-get install -y ufw",
		Sudo:        true,
	},
	IDSSHD: {
		Description: "Install the OpenSSH server via apt",
		Command:     "sudo apt-get install -y openssh-server",
		Sudo:        true,
	},
	IDSSHKeygen: {
		Description: "Install the OpenSSH client tools via apt",
		Command:     "sudo apt-get install -y openssh-client",
		Sudo:        true,
	},
	IDAdduser: {
		Description: "Install adduser via apt",
		Command:     "sudo apt-get install -y adduser",
		Sudo:        true,
	},
	IDFallocate: {
		Description: "Install util-linux via apt",
		Command:     "sudo apt-get install -y util-linux",
		Sudo:        true,
	},
}

// GetFixCommand returns the fix command for a tool, or nil when there is no
// sensible automated fix (apt-get itself, systemd tools).
func GetFixCommand(checkID string) *FixCommand {
	return fixCommands[checkID]
}
