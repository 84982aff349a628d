package controller

import (
	"fmt"
	"io"

	tea "github.com/charmbracelet/bubbletea"
	m "github.com/mouse-blink/locov/internal/model"
)

// TUI implements UI using Bubble Tea for interactive display: a navigable
// list of analyzed binaries with the selected binary's histogram below.
type TUI struct {
	out io.Writer
}

// NewTUI creates a new TUI writing to out.
func NewTUI(out io.Writer) *TUI {
	return &TUI{out: out}
}

// DisplayReports runs the interactive browser. A run with nothing to
// browse falls back to plain output rather than opening an empty screen.
func (t *TUI) DisplayReports(reports []m.FileReport) error {
	if len(reports) == 0 {
		return NewSimpleUI(t.out).DisplayReports(reports)
	}

	model := newReportModel(reports)

	program := tea.NewProgram(model, tea.WithOutput(t.out), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("interactive display failed: %w", err)
	}

	return nil
}
