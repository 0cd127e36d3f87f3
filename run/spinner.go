package run

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// ExecuteWithSpinner runs the command with both streams captured and a
// progress spinner on stderr while the child runs. Useful for tools whose
// output only matters on failure.
func (c *Command) ExecuteWithSpinner(ctx context.Context, message string) (*Result, error) {
	c.CaptureStdout()
	c.CaptureStderr()

	done := make(chan struct{})
	var result *Result
	var execErr error

	go func() {
		defer close(done)
		result, execErr = c.Execute(ctx)
	}()

	m := newSpinnerModel(message)
	p := tea.NewProgram(m, tea.WithOutput(os.Stderr))

	go func() {
		if _, err := p.Run(); err != nil {
			// Spinner failures must never fail the command.
			_ = err
		}
	}()

	<-done

	failed := execErr != nil || (result != nil && result.ExitCode != 0)
	p.Send(spinnerDoneMsg{failed: failed})

	// Give the spinner a beat to render its final state.
	time.Sleep(50 * time.Millisecond)
	p.Quit()

	return result, execErr
}

type spinnerModel struct {
	spinner spinner.Model
	message string
	done    bool
	failed  bool
}

type spinnerDoneMsg struct {
	failed bool
}

func newSpinnerModel(message string) *spinnerModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))
	return &spinnerModel{
		spinner: s,
		message: message,
	}
}

func (m *spinnerModel) Init() tea.Cmd {
	return m.spinner.Tick
}

func (m *spinnerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case spinnerDoneMsg:
		m.done = true
		m.failed = msg.failed
		return m, tea.Quit
	case spinner.TickMsg:
		if !m.done {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
	}
	return m, nil
}

func (m *spinnerModel) View() string {
	if m.done {
		if m.failed {
			return fmt.Sprintf("❌ %s\n", m.message)
		}
		return fmt.Sprintf("✅ %s\n", m.message)
	}
	return fmt.Sprintf("%s %s...", m.spinner.View(), m.message)
}
