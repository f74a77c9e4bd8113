package formatter

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/younsl/fleetreport/internal/models"
	"github.com/younsl/fleetreport/pkg/report"
	"github.com/younsl/fleetreport/pkg/utils"
)

// PrintInstancesTable prints the instances of a report in kubectl style.
// Rows keep the order they were reported in.
func PrintInstancesTable(w io.Writer, instances []models.InstanceHistory, resolver report.Resolver) {
	if len(instances) == 0 {
		fmt.Fprintln(w, "No instances match the current filter.")
		return
	}

	tw := tabwriter.NewWriter(w, 0, 8, 2, ' ', 0)

	fmt.Fprintln(tw, "NAME\tZONE\tIMAGE\tTENANCY\tOS\tLICENSE\tSTATE\tFIRST SEEN\tDAYS")

	for _, inst := range instances {
		os, license := resolver.Resolve(inst.Image)
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t%d\n",
			inst.Instance.Name,
			valueOrDash(inst.Instance.Zone),
			valueOrDash(inst.Image.Name),
			inst.Tenancy,
			os,
			license,
			inst.State,
			utils.FormatDate(inst.ObservedAt),
			activeDays(inst),
		)
	}

	fmt.Fprintf(tw, "Total:\t\t\t\t\t\t\t\t%d instances\n", len(instances))

	tw.Flush()
}

// activeDays counts the calendar days the instance existed on
func activeDays(inst models.InstanceHistory) int {
	days := 0
	for d := utils.StartOfDay(inst.From); d.Before(inst.To); d = d.Add(utils.Day) {
		days++
	}
	return days
}

func valueOrDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
