package controller

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	m "github.com/mouse-blink/locov/internal/model"
)

const barWidth = 30

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("15")).
			Bold(true)

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("0")).
			Background(lipgloss.Color("6")).
			Bold(true)

	pathStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("14"))

	statStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("11")).
			Bold(true)

	barStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))

	labelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("7"))

	helpStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

// reportItem is one analyzed binary in the browser list.
type reportItem struct {
	path      string
	processed uint64
	average   int
}

func (r reportItem) FilterValue() string {
	return r.path
}

// Simple delegate for report list items.
type reportDelegate struct{}

func (d reportDelegate) Height() int  { return 1 }
func (d reportDelegate) Spacing() int { return 0 }
func (d reportDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd {
	return nil
}

func (d reportDelegate) Render(w io.Writer, lm list.Model, index int, item list.Item) {
	report, ok := item.(reportItem)
	if !ok {
		return
	}

	stats := fmt.Sprintf("%4d%%  %6d vars", report.average, report.processed)

	var line string
	if index == lm.Index() {
		line = selectedStyle.Render(fmt.Sprintf("%s  %s", stats, report.path))
	} else {
		line = fmt.Sprintf("%s  %s", statStyle.Render(stats), pathStyle.Render(report.path))
	}

	_, _ = fmt.Fprint(w, line)
}

// reportModel browses per-binary coverage histograms.
type reportModel struct {
	width    int
	height   int
	fileList list.Model
	reports  []m.FileReport
}

func newReportModel(reports []m.FileReport) reportModel {
	items := make([]list.Item, 0, len(reports))
	for _, report := range reports {
		items = append(items, reportItem{
			path:      string(report.Path),
			processed: report.Histogram.Processed,
			average:   report.Histogram.Average(),
		})
	}

	fileList := list.New(items, reportDelegate{}, 80, len(items))
	fileList.SetShowPagination(false)
	fileList.SetShowFilter(true)
	fileList.SetShowHelp(false)
	fileList.SetShowTitle(false)
	fileList.SetShowStatusBar(false)
	fileList.FilterInput.Placeholder = "Filter by path…"

	return reportModel{
		fileList: fileList,
		reports:  reports,
	}
}

func (rm reportModel) Init() tea.Cmd {
	return nil
}

func (rm reportModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		rm.width = msg.Width
		rm.height = msg.Height
		rm.fileList.SetWidth(rm.width)
		rm.fileList.SetHeight(rm.listHeight())

	case tea.KeyMsg:
		if rm.fileList.FilterState() != list.Filtering {
			switch msg.String() {
			case "q", "esc", "ctrl+c":
				return rm, tea.Quit
			}
		}
	}

	var cmd tea.Cmd
	rm.fileList, cmd = rm.fileList.Update(msg)

	return rm, cmd
}

func (rm reportModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Debug Location Statistics"))
	b.WriteString("\n\n")
	b.WriteString(rm.fileList.View())
	b.WriteString("\n")
	b.WriteString(rm.detailView())
	b.WriteString("\n")
	b.WriteString(helpStyle.Render("↑/↓ navigate · / filter · q quit"))

	return b.String()
}

// listHeight leaves room for the title, the detail histogram and the help
// line.
func (rm reportModel) listHeight() int {
	height := rm.height - m.NumBuckets - 6
	if height < 1 {
		height = 1
	}
	if height > len(rm.reports) {
		height = len(rm.reports)
	}

	return height
}

// detailView renders the selected binary's histogram as labeled bars.
func (rm reportModel) detailView() string {
	selected, ok := rm.fileList.SelectedItem().(reportItem)
	if !ok {
		return ""
	}

	var h m.Histogram
	for _, report := range rm.reports {
		if string(report.Path) == selected.path {
			h = report.Histogram
			break
		}
	}
	if h.Processed == 0 {
		return labelStyle.Render("No coverage recorded.")
	}

	var peak uint64
	for _, count := range h.Buckets {
		if count > peak {
			peak = count
		}
	}

	var b strings.Builder

	labels := bucketLabels()
	for i, label := range labels {
		count := h.Buckets[i]

		width := 0
		if peak > 0 {
			width = int(count * barWidth / peak)
		}
		if count > 0 && width == 0 {
			width = 1
		}

		b.WriteString(labelStyle.Render(fmt.Sprintf("%7s%% ", label)))
		b.WriteString(barStyle.Render(strings.Repeat("█", width)))
		b.WriteString(fmt.Sprintf(" %d\n", count))
	}

	b.WriteString(labelStyle.Render(
		fmt.Sprintf("%d variables, average coverage ~ %d%%", h.Processed, h.Average())))

	return b.String()
}
