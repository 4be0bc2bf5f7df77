package tui

import (
	"os"

	"github.com/mattn/go-isatty"
)

// IsInteractive reports whether the process is attached to a terminal. The
// huh forms and the bubbletea dialogs need one; without it callers should
// use the Plain prompt variants.
func IsInteractive() bool {
	return isatty.IsTerminal(os.Stdin.Fd()) && isatty.IsTerminal(os.Stdout.Fd())
}
