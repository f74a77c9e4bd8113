package formatter

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/younsl/fleetreport/internal/models"
	"github.com/younsl/fleetreport/pkg/report"
	"github.com/younsl/fleetreport/pkg/utils"
)

// PrintSummary prints the tenancy/OS/license breakdown of a report
func PrintSummary(w io.Writer, s report.Summary) {
	if s.Total == 0 {
		return
	}

	fmt.Fprintln(w, "\n## Instance Summary")

	tw := tabwriter.NewWriter(w, 0, 8, 2, ' ', 0)
	fmt.Fprintln(tw, "CATEGORY\tVALUE\tINSTANCE COUNT")

	for _, t := range []models.Tenancy{models.TenancyFleet, models.TenancySoleTenant} {
		fmt.Fprintf(tw, "Tenancy\t%s\t%d\n", t, s.ByTenancy[t])
	}
	for _, os := range []models.OperatingSystemType{
		models.OperatingSystemWindows, models.OperatingSystemLinux, models.OperatingSystemUnknown,
	} {
		fmt.Fprintf(tw, "OS\t%s\t%d\n", os, s.ByOS[os])
	}
	for _, l := range []models.LicenseType{models.LicenseSpla, models.LicenseByol, models.LicenseUnknown} {
		fmt.Fprintf(tw, "License\t%s\t%d\n", l, s.ByLicense[l])
	}
	tw.Flush()

	if s.PeakCount > 0 {
		fmt.Fprintf(w, "\nPeak: %s instances on %s\n", humanize.Comma(int64(s.PeakCount)), utils.FormatDate(s.PeakDay))
	}
}

// PrintWindow prints the analysis window and scan duration
func PrintWindow(w io.Writer, start, end time.Time, scanDuration time.Duration) {
	fmt.Fprintf(w, "Window: %s to %s (ends %s, scanned in %.2f seconds)\n",
		utils.FormatDate(start),
		utils.FormatDate(end.Add(-time.Nanosecond)),
		utils.FormatTimeAgo(end),
		scanDuration.Seconds())
}
