// Package controller renders coverage reports, either as plain text or as
// an interactive terminal browser.
package controller

import (
	"io"
	"os"

	m "github.com/mouse-blink/locov/internal/model"
)

// UI displays the coverage reports of one run.
// Implementations can use different output methods (plain text, TUI).
type UI interface {
	DisplayReports(reports []m.FileReport) error
}

// NewUI selects the UI implementation. Interactive mode requires a
// terminal; everything else gets the plain renderer, whose output is
// stable enough to diff or post-process.
func NewUI(out io.Writer, interactive bool) UI {
	if interactive && IsTTY(out) {
		return NewTUI(out)
	}

	return NewSimpleUI(out)
}

// IsTTY checks if the given writer is a terminal (TTY).
// Returns false if the output is redirected to a file or pipe.
func IsTTY(w io.Writer) bool {
	file, ok := w.(*os.File)
	if !ok {
		return false
	}

	fileInfo, err := file.Stat()
	if err != nil {
		return false
	}

	return (fileInfo.Mode() & os.ModeCharDevice) != 0
}
