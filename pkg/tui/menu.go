package tui

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/nigeyuk/serverConfig/pkg/errors"
)

// readLine reads up to the next newline one byte at a time, so consecutive
// prompts can share a reader without losing buffered input between them.
func readLine(r io.Reader) (string, error) {
	var sb strings.Builder
	buf := make([]byte, 1)
	for {
		n, err := r.Read(buf)
		if n > 0 {
			if buf[0] == '\n' {
				return sb.String(), nil
			}
			sb.WriteByte(buf[0])
		}
		if err != nil {
			if sb.Len() > 0 {
				return sb.String(), nil
			}
			return "", err
		}
	}
}

// Action is a main menu entry.
type Action string

const (
	ActionUpdate   Action = "update"
	ActionHostname Action = "hostname"
	ActionUser     Action = "user"
	ActionFirewall Action = "firewall"
	ActionSwap     Action = "swap"
	ActionSSH      Action = "ssh"
	ActionInstall  Action = "install"
	ActionDoctor   Action = "doctor"
	ActionQuit     Action = "quit"
)

// RunMainMenu shows the main menu and returns the chosen action.
func RunMainMenu() (Action, error) {
	var action Action

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[Action]().
				Title("Server Setup").
				Description("What would you like to do?").
				Options(
					huh.NewOption("Update system packages", ActionUpdate),
					huh.NewOption("Change hostname", ActionHostname),
					huh.NewOption("Create user with SSH keys", ActionUser),
					huh.NewOption("Set up firewall", ActionFirewall),
					huh.NewOption("Set up swap file", ActionSwap),
					huh.NewOption("Install / harden SSH", ActionSSH),
					huh.NewOption("Install packages by category", ActionInstall),
					huh.NewOption("Check system tools", ActionDoctor),
					huh.NewOption("Quit", ActionQuit),
				).
				Value(&action),
		),
	).WithTheme(Theme())

	if err := form.Run(); err != nil {
		return ActionQuit, fmt.Errorf("menu cancelled: %w", err)
	}

	return action, nil
}

// SelectCategory shows a numbered category list and returns the 1-based
// selection.
func SelectCategory(names []string) (int, error) {
	if len(names) == 0 {
		return 0, errors.New(errors.ErrSelection,
			"the catalog has no categories",
			"add at least one category to the catalog file")
	}

	options := make([]huh.Option[int], len(names))
	for i, name := range names {
		options[i] = huh.NewOption(fmt.Sprintf("%d. %s", i+1, name), i+1)
	}

	var index int
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[int]().
				Title("Package Categories").
				Description("Choose a category to install").
				Options(options...).
				Value(&index),
		),
	).WithTheme(Theme())

	if err := form.Run(); err != nil {
		return 0, fmt.Errorf("selection cancelled: %w", err)
	}

	return index, nil
}

// PromptIndex reads a 1-based selection from r, for use without a TTY.
// The prompt lists entries exactly as the interactive menu numbers them.
func PromptIndex(r io.Reader, w io.Writer, names []string) (int, error) {
	if len(names) == 0 {
		return 0, errors.New(errors.ErrSelection,
			"the catalog has no categories", "")
	}

	for i, name := range names {
		fmt.Fprintf(w, "  %d) %s\n", i+1, name)
	}
	fmt.Fprintf(w, "Select a category [1-%d]: ", len(names))

	line, err := readLine(r)
	if err != nil {
		return 0, errors.Wrap(err, errors.ErrSelection, "couldn't read selection")
	}

	index, err := strconv.Atoi(strings.TrimSpace(line))
	if err != nil {
		return 0, errors.New(errors.ErrSelection,
			"selection must be a number",
			fmt.Sprintf("enter a number between 1 and %d", len(names)))
	}

	return index, nil
}

// ConfirmPlain reads a yes/no answer from r, for use without a TTY.
// "y" and "yes" (any case) confirm; anything else cancels.
func ConfirmPlain(r io.Reader, w io.Writer, question string) bool {
	fmt.Fprintf(w, "%s [y/N]: ", question)

	line, err := readLine(r)
	if err != nil {
		return false
	}

	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	default:
		return false
	}
}

// PromptStringPlain reads a single string value from r, for use without a
// TTY. A nil validate accepts anything non-empty.
func PromptStringPlain(r io.Reader, w io.Writer, title string, validate func(string) error) (string, error) {
	if validate == nil {
		validate = func(s string) error {
			if s == "" {
				return fmt.Errorf("a value is required")
			}
			return nil
		}
	}

	fmt.Fprintf(w, "%s: ", title)
	line, err := readLine(r)
	if err != nil {
		return "", fmt.Errorf("couldn't read input: %w", err)
	}

	value := strings.TrimSpace(line)
	if err := validate(value); err != nil {
		return "", err
	}
	return value, nil
}

// PromptIntPlain reads an integer in [min, max] from r, for use without a
// TTY. Empty input selects the default.
func PromptIntPlain(r io.Reader, w io.Writer, title string, min, max, defaultValue int) (int, error) {
	fmt.Fprintf(w, "%s [%d]: ", title, defaultValue)
	line, err := readLine(r)
	if err != nil {
		return 0, fmt.Errorf("couldn't read input: %w", err)
	}

	line = strings.TrimSpace(line)
	if line == "" {
		return defaultValue, nil
	}

	n, err := strconv.Atoi(line)
	if err != nil {
		return 0, fmt.Errorf("enter a number")
	}
	if n < min || n > max {
		return 0, fmt.Errorf("enter a number between %d and %d", min, max)
	}
	return n, nil
}
