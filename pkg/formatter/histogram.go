package formatter

import (
	"fmt"
	"io"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/younsl/fleetreport/internal/models"
	"github.com/younsl/fleetreport/pkg/utils"
)

// maxBarWidth is the width of the bar drawn for the busiest day
const maxBarWidth = 40

// PrintHistogram renders the daily instance counts with a bar per day
func PrintHistogram(w io.Writer, histogram []models.DataPoint) {
	if len(histogram) == 0 {
		fmt.Fprintln(w, "No instances to chart.")
		return
	}

	peak := 0
	for _, p := range histogram {
		peak = max(peak, p.Value)
	}

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"DAY", "INSTANCES", ""})

	for _, p := range histogram {
		t.AppendRow(table.Row{
			utils.FormatDate(p.Timestamp),
			humanize.Comma(int64(p.Value)),
			bar(p.Value, peak),
		})
	}

	t.Render()
}

func bar(value, peak int) string {
	if peak == 0 {
		return ""
	}
	width := value * maxBarWidth / peak
	if width == 0 && value > 0 {
		width = 1
	}
	return strings.Repeat("█", width)
}
