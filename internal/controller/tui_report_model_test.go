package controller

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	m "github.com/mouse-blink/locov/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testReports() []m.FileReport {
	var empty m.Histogram

	return []m.FileReport{
		{Path: "bin/first", Histogram: mixedHistogram()},
		{Path: "bin/second", Histogram: empty},
	}
}

func TestReportModel_ListsAllBinaries(t *testing.T) {
	model := newReportModel(testReports())

	require.Len(t, model.fileList.Items(), 2)

	first, ok := model.fileList.Items()[0].(reportItem)
	require.True(t, ok)
	assert.Equal(t, "bin/first", first.path)
	assert.Equal(t, uint64(4), first.processed)
	assert.Equal(t, 75, first.average)
}

func TestReportModel_QuitKeys(t *testing.T) {
	model := newReportModel(testReports())

	for _, key := range []string{"q", "esc", "ctrl+c"} {
		t.Run(key, func(t *testing.T) {
			var msg tea.Msg
			switch key {
			case "esc":
				msg = tea.KeyMsg{Type: tea.KeyEsc}
			case "ctrl+c":
				msg = tea.KeyMsg{Type: tea.KeyCtrlC}
			default:
				msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
			}

			_, cmd := model.Update(msg)
			require.NotNil(t, cmd)
			assert.IsType(t, tea.QuitMsg{}, cmd())
		})
	}
}

func TestReportModel_DetailView(t *testing.T) {
	model := newReportModel(testReports())

	detail := model.detailView()
	assert.Contains(t, detail, "4 variables, average coverage ~ 75%")

	// Move the selection to the binary with no scored variables.
	model.fileList.Select(1)
	assert.Contains(t, model.detailView(), "No coverage recorded.")
}

func TestReportModel_ViewHasTitleAndHelp(t *testing.T) {
	model := newReportModel(testReports())

	view := model.View()
	assert.Contains(t, view, "Debug Location Statistics")
	assert.Contains(t, view, "q quit")
}

func TestReportModel_WindowResize(t *testing.T) {
	model := newReportModel(testReports())

	updated, _ := model.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	resized, ok := updated.(reportModel)
	require.True(t, ok)
	assert.Equal(t, 120, resized.width)
	assert.Equal(t, 40, resized.height)
}
