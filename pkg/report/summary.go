package report

import (
	"time"

	"github.com/younsl/fleetreport/internal/models"
)

// Summary breaks down a set of instances by tenancy, OS and license
type Summary struct {
	Total     int
	ByTenancy map[models.Tenancy]int
	ByOS      map[models.OperatingSystemType]int
	ByLicense map[models.LicenseType]int

	// PeakDay is the first day with the highest histogram count
	PeakDay   time.Time
	PeakCount int
}

// Summarize aggregates instances and the histogram they were reported with
func Summarize(instances []models.InstanceHistory, resolver Resolver, histogram []models.DataPoint) Summary {
	s := Summary{
		Total:     len(instances),
		ByTenancy: make(map[models.Tenancy]int),
		ByOS:      make(map[models.OperatingSystemType]int),
		ByLicense: make(map[models.LicenseType]int),
	}

	for _, inst := range instances {
		s.ByTenancy[inst.Tenancy]++
		os, license := resolver.Resolve(inst.Image)
		s.ByOS[os]++
		s.ByLicense[license]++
	}

	for _, p := range histogram {
		if p.Value > s.PeakCount {
			s.PeakCount = p.Value
			s.PeakDay = p.Timestamp
		}
	}

	return s
}

// Summary summarizes the view's current results
func (v *View) Summary() Summary {
	return Summarize(v.instances, v.archive.Annotations(), v.histogram)
}
