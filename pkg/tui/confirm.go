package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// ConfirmInstall shows the resolved package list and asks for confirmation
// before anything is installed.
func ConfirmInstall(category string, packages []string) (bool, error) {
	fmt.Println("\n" + strings.Repeat("─", 60))
	fmt.Printf("Packages in %s:\n", category)
	for _, pkg := range packages {
		fmt.Printf("  - %s\n", pkg)
	}
	fmt.Println(strings.Repeat("─", 60))

	var confirmed bool
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(fmt.Sprintf("Install %d package(s)?", len(packages))).
				Description("This will run the package manager with the list above").
				Affirmative("Yes, install").
				Negative("No, cancel").
				Value(&confirmed),
		),
	).WithTheme(Theme())

	if err := form.Run(); err != nil {
		return false, fmt.Errorf("confirmation cancelled: %w", err)
	}

	return confirmed, nil
}

// confirmModel is a minimal yes/no dialog used for quick menu confirmations.
type confirmModel struct {
	question  string
	confirmed bool
	done      bool
}

// Init implements tea.Model.
func (m confirmModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m confirmModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "y", "Y":
			m.confirmed = true
			m.done = true
			return m, tea.Quit
		case "n", "N", "esc", "q", "ctrl+c":
			m.confirmed = false
			m.done = true
			return m, tea.Quit
		}
	}
	return m, nil
}

// View implements tea.Model.
func (m confirmModel) View() string {
	hintStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("244"))

	return fmt.Sprintf("\n%s\n%s ",
		TitleStyle.Render(m.question),
		hintStyle.Render("[y/N]"),
	)
}

// Confirm displays a y/N dialog and returns the operator's choice.
func Confirm(question string) (bool, error) {
	m := confirmModel{question: question}
	p := tea.NewProgram(m)
	result, err := p.Run()
	if err != nil {
		return false, fmt.Errorf("confirm dialog failed: %w", err)
	}
	return result.(confirmModel).confirmed, nil
}
