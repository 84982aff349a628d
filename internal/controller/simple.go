package controller

import (
	"fmt"
	"io"
	"math"

	m "github.com/mouse-blink/locov/internal/model"
	"github.com/olekukonko/tablewriter"
)

// SimpleUI renders the fixed-width text report. A single binary gets the
// bare histogram; multiple binaries additionally get per-file headings and
// a closing summary table.
type SimpleUI struct {
	out io.Writer
}

// NewSimpleUI creates a new SimpleUI writing to out.
func NewSimpleUI(out io.Writer) *SimpleUI {
	return &SimpleUI{out: out}
}

// DisplayReports writes every report in input order.
func (s *SimpleUI) DisplayReports(reports []m.FileReport) error {
	for i, report := range reports {
		if len(reports) > 1 {
			if i > 0 {
				fmt.Fprintln(s.out)
			}

			fmt.Fprintf(s.out, "%s:\n", report.Path)
		}

		writeHistogram(s.out, &report.Histogram)
	}

	if len(reports) > 1 {
		fmt.Fprintln(s.out)
		writeSummaryTable(s.out, reports)
	}

	return nil
}

const reportBanner = "================================================="

// bucketLabels returns the report row labels in bucket order. The interior
// labels skip the decade boundaries (11..19, 21..29, ...) even though the
// buckets they describe start at 10, 20, ...; the off-by-one is part of
// the established report format.
func bucketLabels() [m.NumBuckets]string {
	labels := [m.NumBuckets]string{0: "0", 1: "1..9", m.NumBuckets - 1: "100"}
	for i := 2; i < m.NumBuckets-1; i++ {
		labels[i] = fmt.Sprintf("%d..%d", (i-1)*10+1, i*10-1)
	}

	return labels
}

// writeHistogram renders one histogram in the fixed-width layout.
func writeHistogram(w io.Writer, h *m.Histogram) {
	if h.Processed == 0 {
		fmt.Fprintln(w, "No coverage recorded.")
		return
	}

	fmt.Fprintln(w, reportBanner)
	fmt.Fprintln(w, "           Debug Location Statistics")
	fmt.Fprintln(w, reportBanner)
	fmt.Fprintln(w, "    cov%        samples        percentage")
	fmt.Fprintln(w, "-------------------------------------------------")

	labels := bucketLabels()
	for i, label := range labels {
		count := h.Buckets[i]
		percentage := int(float64(count) / float64(h.Processed) * 100)
		fmt.Fprintf(w, "    %-10s%8d        %8d%%\n", label, count, percentage)
	}

	fmt.Fprintln(w, reportBanner)
	fmt.Fprintf(w, "-the number of debug variables processed: %d\n", h.Processed)
	fmt.Fprintf(w, "-the average coverage per var: ~ %d%%\n", h.Average())
	fmt.Fprintln(w, reportBanner)
}

// writeSummaryTable renders the cross-binary roundup.
func writeSummaryTable(w io.Writer, reports []m.FileReport) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Binary", "Variables", "Avg Coverage"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetColumnAlignment([]int{
		tablewriter.ALIGN_LEFT,
		tablewriter.ALIGN_CENTER,
		tablewriter.ALIGN_CENTER,
	})

	var (
		totalProcessed uint64
		totalSum       float64
	)

	for _, report := range reports {
		h := report.Histogram
		totalProcessed += h.Processed
		totalSum += h.Sum

		table.Append([]string{
			string(report.Path),
			fmt.Sprintf("%d", h.Processed),
			fmt.Sprintf("%d%%", h.Average()),
		})
	}

	overall := 0
	if totalProcessed > 0 {
		overall = int(math.Round(totalSum / float64(totalProcessed)))
	}

	table.SetFooter([]string{
		fmt.Sprintf("Total Binaries %d", len(reports)),
		fmt.Sprintf("%d", totalProcessed),
		fmt.Sprintf("%d%%", overall),
	})

	table.Render()
}
