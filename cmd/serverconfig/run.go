package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/nigeyuk/serverConfig/pkg/catalog"
	"github.com/nigeyuk/serverConfig/pkg/config"
	"github.com/nigeyuk/serverConfig/pkg/doctor"
	"github.com/nigeyuk/serverConfig/pkg/execx"
	"github.com/nigeyuk/serverConfig/pkg/installer"
	"github.com/nigeyuk/serverConfig/pkg/setup"
	"github.com/nigeyuk/serverConfig/pkg/tui"
)

// newExecutor builds the command executor, swapped for a fake in tests.
var newExecutor = func() execx.Executor {
	return execx.NewReal()
}

// newRunner builds a setup runner that prints progress to the terminal.
func newRunner() *setup.Runner {
	r := setup.NewRunner(newExecutor())
	r.SetProgress(printProgress)
	return r
}

// printProgress renders a setup progress event as a status line.
func printProgress(e setup.ProgressEvent) {
	switch e.Stage {
	case setup.StageError:
		fmt.Println(tui.StatusLine(tui.SymbolFail, e.Message))
	case setup.StageComplete:
		fmt.Println(tui.StatusLine(tui.SymbolOK, e.Message))
	default:
		if e.Command != "" {
			fmt.Printf("%s %s\n", tui.InfoStyle.Render("→"), e.Message)
		}
	}
}

// runInstall resolves a category and installs its packages.
func runInstall(cmd *cobra.Command, categoryName string, index int, yes bool) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	return installFlow(cmd, cfg, categoryName, index, yes)
}

// loadCatalog reads the configured catalog. When no catalog file has been
// installed at the default path, the built-in catalog is used; an explicitly
// given path must exist.
func loadCatalog(cfg *config.Config) (*catalog.Catalog, string, error) {
	if flagCatalog == "" {
		if _, err := os.Stat(cfg.CatalogPath); err != nil {
			cat, perr := catalog.Default()
			return cat, "built-in catalog", perr
		}
	}
	cat, err := catalog.Load(cfg.CatalogPath)
	return cat, cfg.CatalogPath, err
}

// installFlow is the category-select / confirm / install sequence shared by
// the install command and the menu. The catalog is re-read on every call.
func installFlow(cmd *cobra.Command, cfg *config.Config, categoryName string, index int, yes bool) error {
	cat, _, err := loadCatalog(cfg)
	if err != nil {
		return err
	}

	names := cat.Names()

	// Resolve the category: name flag, index flag, or a pick (the huh menu
	// on a terminal, a numbered plain prompt otherwise)
	switch {
	case categoryName != "":
		// validated below through PackagesFor's first-match semantics
	case index == 0:
		if tui.IsInteractive() {
			index, err = tui.SelectCategory(names)
		} else {
			index, err = tui.PromptIndex(cmd.InOrStdin(), cmd.OutOrStdout(), names)
		}
		if err != nil {
			return err
		}
		fallthrough
	default:
		selected, err := cat.Select(index)
		if err != nil {
			return err
		}
		categoryName = selected.Name
	}

	packages := cat.PackagesFor(categoryName)
	if len(packages) == 0 {
		fmt.Printf("Category %q has no packages to install.\n", categoryName)
		return nil
	}

	confirmed := yes
	if !confirmed {
		if tui.IsInteractive() {
			confirmed, err = tui.ConfirmInstall(categoryName, packages)
			if err != nil {
				return err
			}
		} else {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Packages in %s: %s\n", categoryName, strings.Join(packages, " "))
			confirmed = tui.ConfirmPlain(cmd.InOrStdin(), out,
				fmt.Sprintf("Install %d package(s)?", len(packages)))
		}
	}

	inst := installer.New(cfg.AptCommand, newExecutor())
	result, err := inst.Install(cmd.Context(), packages, confirmed)
	if err != nil {
		return err
	}

	switch result.Status {
	case installer.StatusCancelled:
		fmt.Println("Installation cancelled.")
	case installer.StatusSuccess:
		fmt.Println(tui.StatusLine(tui.SymbolOK,
			fmt.Sprintf("Installed %d package(s) from %s", len(packages), categoryName)))
	}

	return nil
}

// runCatalog lists all categories and their packages.
func runCatalog(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	cat, source, err := loadCatalog(cfg)
	if err != nil {
		return err
	}

	categories := cat.Categories()
	if len(categories) == 0 {
		fmt.Printf("No categories found in %s.\n", source)
		return nil
	}

	fmt.Printf("Found %d categories in %s:\n\n", len(categories), source)
	for i, c := range categories {
		fmt.Printf("%d. %s (%d packages)\n", i+1, c.Name, len(c.Packages))
		if len(c.Packages) > 0 {
			fmt.Printf("   %s\n", strings.Join(c.Packages, " "))
		}
	}

	return nil
}

// runUpdate refreshes and upgrades system packages.
func runUpdate(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	return newRunner().SystemUpdate(cmd.Context(), cfg.AptCommand)
}

// runHostname changes the system hostname.
func runHostname(cmd *cobra.Command, name string) error {
	if _, err := loadConfig(); err != nil {
		return err
	}
	return newRunner().Hostname(cmd.Context(), name)
}

// runAdduser provisions a user with SSH access.
func runAdduser(cmd *cobra.Command, username, sshKey string, generateKey, sudo bool) error {
	if _, err := loadConfig(); err != nil {
		return err
	}

	// --ssh-key accepts a key literal or a path to a .pub file
	if sshKey != "" && !strings.HasPrefix(sshKey, "ssh-") {
		data, err := os.ReadFile(sshKey)
		if err != nil {
			return fmt.Errorf("couldn't read SSH key file %s: %w", sshKey, err)
		}
		sshKey = strings.TrimSpace(string(data))
	}

	return newRunner().CreateUser(cmd.Context(), setup.UserOptions{
		Username:     username,
		SSHPublicKey: sshKey,
		GenerateKey:  generateKey,
		Sudo:         sudo,
	})
}

// runFirewall applies the ufw policy.
func runFirewall(cmd *cobra.Command, allow []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	return newRunner().Firewall(cmd.Context(), setup.FirewallOptions{
		SSHPort:    cfg.SSHPort,
		ExtraRules: allow,
	})
}

// runSwap creates the swap file.
func runSwap(cmd *cobra.Command, sizeGB int) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if sizeGB == 0 {
		sizeGB = cfg.SwapSizeGB
	}
	return newRunner().Swap(cmd.Context(), setup.SwapOptions{
		SizeGB:     sizeGB,
		Swappiness: cfg.Swappiness,
	})
}

// runSSH hardens the SSH daemon.
func runSSH(cmd *cobra.Command, install bool, port int, disableRoot, disablePassword bool) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if port == 0 {
		port = cfg.SSHPort
	}
	return newRunner().HardenSSH(cmd.Context(), setup.SSHOptions{
		Install:             install,
		Port:                port,
		DisableRootLogin:    disableRoot,
		DisablePasswordAuth: disablePassword,
		AptCommand:          cfg.AptCommand,
	})
}

// runDoctor checks the external tools every operation depends on.
func runDoctor(_ *cobra.Command, _ []string) error {
	if _, err := loadConfig(); err != nil {
		return err
	}

	checker := doctor.NewCheckerWithExecutor(newExecutor())

	var groups []doctor.CheckGroup
	err := tui.RunWithSpinner("Checking system tools", func() error {
		groups = checker.CheckAllAsync()
		return nil
	})
	if err != nil {
		return err
	}

	for _, group := range groups {
		fmt.Printf("\n%s — %s\n", tui.TitleStyle.Render(group.Name), group.Description)
		for _, check := range group.Checks {
			symbol := tui.SymbolOK
			switch check.Status {
			case doctor.StatusMissing:
				symbol = tui.SymbolFail
			case doctor.StatusWarning:
				symbol = tui.SymbolWarning
			case doctor.StatusError:
				symbol = tui.SymbolFail
			}
			fmt.Println("  " + tui.StatusLine(symbol, fmt.Sprintf("%s: %s", check.Name, check.Message)))
			if check.Status == doctor.StatusMissing && check.FixCommand != nil {
				fmt.Printf("      fix: %s\n", check.FixCommand.Command)
			}
		}
	}

	summary := checker.GetSummary(groups)
	fmt.Printf("\n%d checks: %d ok, %d missing, %d warnings\n",
		summary.Total, summary.OK, summary.Missing, summary.Warnings)

	if checker.HasIssues(groups) {
		return fmt.Errorf("%d tool(s) need attention", summary.Missing+summary.Errors)
	}
	return nil
}

// runConfigInit writes the default config file.
func runConfigInit(_ *cobra.Command, _ []string) error {
	path := flagConfig
	if path == "" {
		var err error
		path, err = config.Path()
		if err != nil {
			return err
		}
	}

	if err := config.WriteDefault(path); err != nil {
		return err
	}

	fmt.Printf("Wrote %s\n", path)
	return nil
}
