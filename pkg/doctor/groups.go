package doctor

// groupDefinitions defines the check groups with their metadata.
var groupDefinitions = map[string]struct {
	Name        string
	Description string
	CheckIDs    []string
}{
	GroupPackages: {
		Name:        "Packages",
		Description: "Required for system update and package installation",
		CheckIDs:    []string{IDAptGet},
	},
	GroupFirewall: {
		Name:        "Firewall",
		Description: "Required for firewall setup",
		CheckIDs:    []string{IDUfw},
	},
	GroupSSH: {
		Name:        "SSH",
		Description: "Required for SSH hardening and user key provisioning",
		CheckIDs:    []string{IDSSHD, IDSSHKeygen},
	},
	GroupSystem: {
		Name:        "System",
		Description: "Required for hostname, user, and swap setup",
		CheckIDs:    []string{IDHostnametl, IDAdduser, IDSystemctl, IDFallocate, IDSed},
	},
}

// groupOrder keeps doctor output stable across runs.
var groupOrder = []string{GroupPackages, GroupFirewall, GroupSSH, GroupSystem}

// GetGroups returns all check groups, unchecked.
func GetGroups() []CheckGroup {
	groups := make([]CheckGroup, 0, len(groupOrder))
	for _, groupID := range groupOrder {
		def := groupDefinitions[groupID]
		groups = append(groups, CheckGroup{
			ID:          groupID,
			Name:        def.Name,
			Description: def.Description,
		})
	}
	return groups
}

// GetGroupDefinition returns the definition for a specific group.
func GetGroupDefinition(groupID string) (struct {
	Name        string
	Description string
	CheckIDs    []string
}, bool) {
	def, ok := groupDefinitions[groupID]
	return def, ok
}

// GetAllGroupIDs returns all group IDs in display order.
func GetAllGroupIDs() []string {
	return groupOrder
}
