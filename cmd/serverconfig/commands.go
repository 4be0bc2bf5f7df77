package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

// newMenuCmd creates the menu subcommand (main command)
func newMenuCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "menu",
		Short: "Run the interactive setup menu",
		Long: `Launch the interactive menu covering all setup operations: system update,
hostname, users, firewall, swap, SSH, and package installation.

Errors in individual operations are reported and return to the menu.`,
		RunE: runMenu,
	}
}

// newInstallCmd creates the install subcommand
func newInstallCmd() *cobra.Command {
	var categoryName string
	var index int
	var yes bool

	cmd := &cobra.Command{
		Use:   "install",
		Short: "Install packages from a catalog category",
		Long: `Install a category of packages from the catalog.

Without flags the category is picked interactively. The catalog is re-read
on every invocation.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runInstall(cmd, categoryName, index, yes)
		},
	}

	cmd.Flags().StringVar(&categoryName, "category", "", "Category name to install")
	cmd.Flags().IntVar(&index, "index", 0, "1-based category index to install")
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation prompt")

	return cmd
}

// newCatalogCmd creates the catalog subcommand
func newCatalogCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "catalog",
		Short: "List catalog categories and their packages",
		RunE:  runCatalog,
	}
}

// newUpdateCmd creates the update subcommand
func newUpdateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "update",
		Short: "Update and upgrade system packages",
		RunE:  runUpdate,
	}
}

// newHostnameCmd creates the hostname subcommand
func newHostnameCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "hostname <name>",
		Short: "Change the system hostname",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHostname(cmd, args[0])
		},
	}
}

// newAdduserCmd creates the adduser subcommand
func newAdduserCmd() *cobra.Command {
	var sshKey string
	var generateKey, sudo bool

	cmd := &cobra.Command{
		Use:   "adduser <username>",
		Short: "Create a user with SSH key provisioning",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAdduser(cmd, args[0], sshKey, generateKey, sudo)
		},
	}

	cmd.Flags().StringVar(&sshKey, "ssh-key", "", "Public key to install into authorized_keys")
	cmd.Flags().BoolVar(&generateKey, "generate-key", false, "Generate an ed25519 keypair for the user")
	cmd.Flags().BoolVar(&sudo, "sudo", true, "Add the user to the sudo group")

	return cmd
}

// newFirewallCmd creates the firewall subcommand
func newFirewallCmd() *cobra.Command {
	var allow []string

	cmd := &cobra.Command{
		Use:   "firewall",
		Short: "Set up ufw with a deny-by-default policy",
		Long: `Apply a deny-incoming / allow-outgoing ufw policy. The configured SSH port
is always allowed so the current session isn't cut off.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runFirewall(cmd, allow)
		},
	}

	cmd.Flags().StringArrayVar(&allow, "allow", nil, "Additional ufw allow rules, e.g. 80/tcp (repeatable)")

	return cmd
}

// newSwapCmd creates the swap subcommand
func newSwapCmd() *cobra.Command {
	var sizeGB int

	cmd := &cobra.Command{
		Use:   "swap",
		Short: "Create and activate a swap file",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runSwap(cmd, sizeGB)
		},
	}

	cmd.Flags().IntVar(&sizeGB, "size", 0, "Swap size in GB (defaults to the configured size)")

	return cmd
}

// newSSHCmd creates the ssh subcommand
func newSSHCmd() *cobra.Command {
	var install, disableRoot, disablePassword bool
	var port int

	cmd := &cobra.Command{
		Use:   "ssh",
		Short: "Install and harden the SSH daemon",
		Long: `Install openssh-server (optional), change the listening port, and disable
root login and password authentication. The edited configuration is checked
with 'sshd -t' before the daemon restarts.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runSSH(cmd, install, port, disableRoot, disablePassword)
		},
	}

	cmd.Flags().BoolVar(&install, "install", false, "Install openssh-server first")
	cmd.Flags().IntVar(&port, "port", 0, "SSH port (defaults to the configured port)")
	cmd.Flags().BoolVar(&disableRoot, "disable-root", true, "Disable root login")
	cmd.Flags().BoolVar(&disablePassword, "disable-password-auth", true, "Disable password authentication")

	return cmd
}

// newDoctorCmd creates the doctor subcommand
func newDoctorCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Check that required system tools are installed",
		RunE:  runDoctor,
	}
}

// newVersionCmd creates the version subcommand
func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the serverconfig version",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "serverconfig version %s\n", version)
		},
	}
}

// newConfigCmd creates the config subcommand
func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage serverconfig configuration",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "init",
		Short: "Write the default config file",
		RunE:  runConfigInit,
	})

	return cmd
}
