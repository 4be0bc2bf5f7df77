package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nigeyuk/serverConfig/pkg/config"
	"github.com/nigeyuk/serverConfig/pkg/logging"
	"github.com/nigeyuk/serverConfig/pkg/setup"
	"github.com/nigeyuk/serverConfig/pkg/tui"
)

// confirmInput asks a yes/no question, via a dialog on a terminal and a
// plain prompt otherwise.
func confirmInput(cmd *cobra.Command, question string) (bool, error) {
	if tui.IsInteractive() {
		return tui.Confirm(question)
	}
	return tui.ConfirmPlain(cmd.InOrStdin(), cmd.OutOrStdout(), question), nil
}

// stringInput asks for a validated string value.
func stringInput(cmd *cobra.Command, title, placeholder string, validate func(string) error) (string, error) {
	if tui.IsInteractive() {
		return tui.PromptString(title, placeholder, validate)
	}
	return tui.PromptStringPlain(cmd.InOrStdin(), cmd.OutOrStdout(), title, validate)
}

// intInput asks for an integer in [min, max].
func intInput(cmd *cobra.Command, title string, min, max, defaultValue int) (int, error) {
	if tui.IsInteractive() {
		return tui.PromptInt(title, min, max, defaultValue)
	}
	return tui.PromptIntPlain(cmd.InOrStdin(), cmd.OutOrStdout(), title, min, max, defaultValue)
}

// runMenu drives the interactive menu loop. A failed operation is reported
// and the menu is shown again; only Quit (or a broken terminal) exits.
func runMenu(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	log := logging.GetLogger("menu")

	for {
		action, err := tui.RunMainMenu()
		if err != nil {
			// Ctrl+C or a closed terminal, nothing to recover
			return err
		}

		if action == tui.ActionQuit {
			return nil
		}

		if err := dispatch(cmd, cfg, action); err != nil {
			log.Error().Err(err).Str("action", string(action)).Msg("operation failed")
			fmt.Println(tui.StatusLine(tui.SymbolFail, err.Error()))
		}
		fmt.Println()
	}
}

// dispatch runs one menu action, prompting for its inputs.
func dispatch(cmd *cobra.Command, cfg *config.Config, action tui.Action) error {
	switch action {
	case tui.ActionUpdate:
		return runUpdate(cmd, nil)

	case tui.ActionHostname:
		name, err := stringInput(cmd, "New hostname", "server01", setup.ValidateHostname)
		if err != nil {
			return err
		}
		return runHostname(cmd, name)

	case tui.ActionUser:
		username, err := stringInput(cmd, "Username", "deploy", setup.ValidateUsername)
		if err != nil {
			return err
		}
		generate, err := confirmInput(cmd, "Generate an ed25519 keypair for the user?")
		if err != nil {
			return err
		}
		sshKey := ""
		if !generate {
			sshKey, err = stringInput(cmd, "Public key (or path to .pub file)", "ssh-ed25519 ...", nil)
			if err != nil {
				return err
			}
		}
		sudo, err := confirmInput(cmd, "Add the user to the sudo group?")
		if err != nil {
			return err
		}
		return runAdduser(cmd, username, sshKey, generate, sudo)

	case tui.ActionFirewall:
		return runFirewall(cmd, nil)

	case tui.ActionSwap:
		size, err := intInput(cmd, "Swap size in GB", 1, 64, cfg.SwapSizeGB)
		if err != nil {
			return err
		}
		return runSwap(cmd, size)

	case tui.ActionSSH:
		install, err := confirmInput(cmd, "Install openssh-server first?")
		if err != nil {
			return err
		}
		port, err := intInput(cmd, "SSH port", 1, 65535, cfg.SSHPort)
		if err != nil {
			return err
		}
		disableRoot, err := confirmInput(cmd, "Disable root login?")
		if err != nil {
			return err
		}
		disablePassword, err := confirmInput(cmd, "Disable password authentication?")
		if err != nil {
			return err
		}
		return runSSH(cmd, install, port, disableRoot, disablePassword)

	case tui.ActionInstall:
		return installFlow(cmd, cfg, "", 0, false)

	case tui.ActionDoctor:
		return runDoctor(cmd, nil)

	default:
		return fmt.Errorf("unknown menu action %q", action)
	}
}
