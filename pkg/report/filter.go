package report

import (
	"fmt"
	"time"

	"github.com/younsl/fleetreport/internal/models"
	"github.com/younsl/fleetreport/pkg/history"
	"github.com/younsl/fleetreport/pkg/utils"
)

// Resolver maps an image to its OS/license classification
type Resolver interface {
	Resolve(image models.ImageLocator) (models.OperatingSystemType, models.LicenseType)
}

// Filter holds the tenancy, OS and license toggles of a report
type Filter struct {
	IncludeFleetInstances      bool
	IncludeSoleTenantInstances bool

	IncludeWindowsInstances   bool
	IncludeLinuxInstances     bool
	IncludeUnknownOsInstances bool

	IncludeSplaInstances            bool
	IncludeByolInstances            bool
	IncludeUnknownLicensedInstances bool
}

// DefaultFilter returns a filter with every toggle enabled
func DefaultFilter() Filter {
	return Filter{
		IncludeFleetInstances:           true,
		IncludeSoleTenantInstances:      true,
		IncludeWindowsInstances:         true,
		IncludeLinuxInstances:           true,
		IncludeUnknownOsInstances:       true,
		IncludeSplaInstances:            true,
		IncludeByolInstances:            true,
		IncludeUnknownLicensedInstances: true,
	}
}

func (f Filter) includesTenancy(t models.Tenancy) bool {
	switch t {
	case models.TenancyFleet:
		return f.IncludeFleetInstances
	case models.TenancySoleTenant:
		return f.IncludeSoleTenantInstances
	default:
		return false
	}
}

func (f Filter) includesOS(os models.OperatingSystemType) bool {
	switch os {
	case models.OperatingSystemWindows:
		return f.IncludeWindowsInstances
	case models.OperatingSystemLinux:
		return f.IncludeLinuxInstances
	default:
		return f.IncludeUnknownOsInstances
	}
}

func (f Filter) includesLicense(license models.LicenseType) bool {
	switch license {
	case models.LicenseSpla:
		return f.IncludeSplaInstances
	case models.LicenseByol:
		return f.IncludeByolInstances
	default:
		return f.IncludeUnknownLicensedInstances
	}
}

// Matches reports whether an instance passes all three toggle groups
func (f Filter) Matches(inst models.InstanceHistory, resolver Resolver) bool {
	if !f.includesTenancy(inst.Tenancy) {
		return false
	}
	os, license := resolver.Resolve(inst.Image)
	return f.includesOS(os) && f.includesLicense(license)
}

// NewDateSelection creates an inclusive selection, rejecting end < start
func NewDateSelection(start, end time.Time) (models.DateSelection, error) {
	sel := models.DateSelection{Start: start, End: end}
	if err := validateSelection(sel); err != nil {
		return models.DateSelection{}, err
	}
	return sel, nil
}

func validateSelection(sel models.DateSelection) error {
	if sel.End.Before(sel.Start) {
		return fmt.Errorf("%w: [%s, %s]", ErrInvalidSelection,
			sel.Start.Format(time.RFC3339), sel.End.Format(time.RFC3339))
	}
	return nil
}

// SelectInstances returns the instances that pass the filter and, if
// selection is non-nil, were first observed within it. Input order is kept.
func SelectInstances(
	instances []models.InstanceHistory,
	resolver Resolver,
	filter Filter,
	selection *models.DateSelection,
) []models.InstanceHistory {
	var out []models.InstanceHistory
	for _, inst := range instances {
		if !filter.Matches(inst, resolver) {
			continue
		}
		if selection != nil && !selection.Contains(inst.ObservedAt) {
			continue
		}
		out = append(out, inst)
	}
	return out
}

// BuildHistogram counts, for each day of the window, the filtered instances
// whose existence interval overlaps that day. Days with no instances are
// omitted, so a filter that excludes everything yields an empty histogram.
func BuildHistogram(set *history.InstanceSetHistory, resolver Resolver, filter Filter) []models.DataPoint {
	days := set.Days()
	if len(days) == 0 {
		return nil
	}
	first := days[0]
	counts := make([]int, len(days))

	for _, inst := range set.Instances() {
		if !filter.Matches(inst, resolver) {
			continue
		}
		for d := utils.StartOfDay(inst.From); d.Before(inst.To); d = d.Add(utils.Day) {
			idx := int(d.Sub(first) / utils.Day)
			if idx < 0 || idx >= len(counts) {
				continue
			}
			counts[idx]++
		}
	}

	var points []models.DataPoint
	for i, c := range counts {
		if c > 0 {
			points = append(points, models.DataPoint{Timestamp: days[i], Value: c})
		}
	}
	return points
}
