package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// spinnerFrames are the animation frames shared by all spinners.
var spinnerFrames = spinner.Spinner{
	Frames: []string{"◐", "◓", "◑", "◒"},
	FPS:    time.Second / 10,
}

// doneMsg signals the wrapped work has finished.
type doneMsg struct{}

// spinnerModel animates while a background function runs.
type spinnerModel struct {
	spinner  spinner.Model
	label    string
	workDone <-chan struct{}
	done     bool
}

func newSpinnerModel(label string, workDone <-chan struct{}) spinnerModel {
	sp := spinner.New()
	sp.Spinner = spinnerFrames
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("39"))

	return spinnerModel{
		spinner:  sp,
		label:    label,
		workDone: workDone,
	}
}

// Init implements tea.Model.
func (m spinnerModel) Init() tea.Cmd {
	return tea.Batch(
		m.spinner.Tick,
		func() tea.Msg {
			<-m.workDone
			return doneMsg{}
		},
	)
}

// Update implements tea.Model.
func (m spinnerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case doneMsg:
		m.done = true
		return m, tea.Quit
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
	}
	return m, nil
}

// View implements tea.Model.
func (m spinnerModel) View() string {
	if m.done {
		return ""
	}
	return m.spinner.View() + " " + m.label + "...\n"
}

// RunWithSpinner animates a spinner while work runs, returning work's error.
// The work function runs exactly once. Completion is signalled by closing a
// channel so the model's watcher goroutine and this function can both observe
// it; the work's error lives in a variable only read after the close.
func RunWithSpinner(label string, work func() error) error {
	var workErr error
	workDone := make(chan struct{})
	go func() {
		workErr = work()
		close(workDone)
	}()

	p := tea.NewProgram(newSpinnerModel(label, workDone))

	// The spinner is cosmetic; whatever happens to it (bad terminal,
	// ctrl+c before completion), the work is still awaited.
	_, _ = p.Run()
	<-workDone
	return workErr
}
