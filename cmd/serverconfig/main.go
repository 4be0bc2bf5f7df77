// Package main provides the serverconfig CLI, an interactive menu for common
// Linux server setup: system update, hostname, users with SSH keys, firewall,
// swap, SSH hardening, and category-based package installation.
package main

import (
	"os"
	"sync"

	"github.com/spf13/cobra"

	"github.com/nigeyuk/serverConfig/pkg/config"
	"github.com/nigeyuk/serverConfig/pkg/logging"
)

// version is set via -ldflags during build
var version = "dev"

// global flags
var (
	flagConfig  string
	flagCatalog string
	flagVerbose bool
)

func main() {
	rootCmd := newRootCmd()

	// Cobra handles error printing
	rootCmd.SilenceUsage = true

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// newRootCmd creates the root command for serverconfig
func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "serverconfig",
		Short: "Linux Server Setup Tool",
		Long: `serverconfig is an interactive CLI for first-boot Linux server setup.

It supports:
  - System package update and upgrade
  - Hostname change
  - User creation with SSH key provisioning
  - Firewall (ufw) setup
  - Swap file setup
  - SSH install and hardening
  - Category-based package installation from a plain-text catalog`,
		Version: version,
	}

	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Config file path (default ~/.config/serverconfig/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&flagCatalog, "catalog", "", "Package catalog path (overrides config)")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Enable debug logging")

	rootCmd.AddCommand(
		newMenuCmd(),
		newInstallCmd(),
		newCatalogCmd(),
		newUpdateCmd(),
		newHostnameCmd(),
		newAdduserCmd(),
		newFirewallCmd(),
		newSwapCmd(),
		newSSHCmd(),
		newDoctorCmd(),
		newConfigCmd(),
		newVersionCmd(),
	)

	return rootCmd
}

// logOnce keeps the whole run on a single log file and run id, however many
// operations the menu loop dispatches.
var logOnce sync.Once

// loadConfig loads configuration and wires the log sink. Flag overrides are
// applied after loading.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return nil, err
	}

	if flagCatalog != "" {
		cfg.CatalogPath = flagCatalog
	}

	logOnce.Do(func() {
		logging.Setup(cfg.LogDir, flagVerbose)
	})

	return cfg, nil
}
