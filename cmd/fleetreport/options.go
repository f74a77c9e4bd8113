package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/younsl/fleetreport/internal/models"
	"github.com/younsl/fleetreport/pkg/report"
	"github.com/younsl/fleetreport/pkg/utils"
)

const dateLayout = "2006-01-02"

// options holds the parsed command line flags
type options struct {
	regions         []string
	days            int
	end             string
	annotationsFile string

	excludeFleet      bool
	excludeSoleTenant bool
	operatingSystems  []string
	licenses          []string

	selectStart string
	selectEnd   string

	showVersion bool
}

// window returns the analysis window. The end defaults to the start of the
// day after now so that today is included.
func (o *options) window(now time.Time) (time.Time, time.Time, error) {
	if o.days <= 0 {
		return time.Time{}, time.Time{}, fmt.Errorf("--days must be positive, got %d", o.days)
	}

	end := utils.NextDay(now)
	if o.end != "" {
		t, err := time.Parse(dateLayout, o.end)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("invalid --end %q: %w", o.end, err)
		}
		end = t.Add(utils.Day)
	}

	return end.AddDate(0, 0, -o.days), end, nil
}

// filter converts the toggle flags into a report filter
func (o *options) filter() (report.Filter, error) {
	f := report.DefaultFilter()
	f.IncludeFleetInstances = !o.excludeFleet
	f.IncludeSoleTenantInstances = !o.excludeSoleTenant

	if len(o.operatingSystems) > 0 {
		f.IncludeWindowsInstances = false
		f.IncludeLinuxInstances = false
		f.IncludeUnknownOsInstances = false
		for _, os := range o.operatingSystems {
			switch models.OperatingSystemType(strings.ToLower(os)) {
			case models.OperatingSystemWindows:
				f.IncludeWindowsInstances = true
			case models.OperatingSystemLinux:
				f.IncludeLinuxInstances = true
			case models.OperatingSystemUnknown:
				f.IncludeUnknownOsInstances = true
			default:
				return report.Filter{}, fmt.Errorf("unknown operating system %q (valid: windows, linux, unknown)", os)
			}
		}
	}

	if len(o.licenses) > 0 {
		f.IncludeSplaInstances = false
		f.IncludeByolInstances = false
		f.IncludeUnknownLicensedInstances = false
		for _, l := range o.licenses {
			switch models.LicenseType(strings.ToLower(l)) {
			case models.LicenseSpla:
				f.IncludeSplaInstances = true
			case models.LicenseByol:
				f.IncludeByolInstances = true
			case models.LicenseUnknown:
				f.IncludeUnknownLicensedInstances = true
			default:
				return report.Filter{}, fmt.Errorf("unknown license %q (valid: spla, byol, unknown)", l)
			}
		}
	}

	return f, nil
}

// selection returns the date selection, or nil when neither bound is given.
// A missing bound defaults to the corresponding window edge.
func (o *options) selection(windowStart, windowEnd time.Time) (*models.DateSelection, error) {
	if o.selectStart == "" && o.selectEnd == "" {
		return nil, nil
	}

	start := windowStart
	end := windowEnd.Add(-time.Nanosecond)

	if o.selectStart != "" {
		t, err := time.Parse(dateLayout, o.selectStart)
		if err != nil {
			return nil, fmt.Errorf("invalid --select-start %q: %w", o.selectStart, err)
		}
		start = t
	}
	if o.selectEnd != "" {
		t, err := time.Parse(dateLayout, o.selectEnd)
		if err != nil {
			return nil, fmt.Errorf("invalid --select-end %q: %w", o.selectEnd, err)
		}
		// the selection is inclusive of the whole end day
		end = t.Add(utils.Day - time.Nanosecond)
	}

	sel, err := report.NewDateSelection(start, end)
	if err != nil {
		return nil, err
	}
	return &sel, nil
}
