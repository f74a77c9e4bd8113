package report_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/younsl/fleetreport/internal/models"
)

func TestView_Summary(t *testing.T) {
	view := newView(t, fleet{fleetCount: 3, soleTenantCount: 1})
	view.Archive().AddLicenseAnnotation(image(1), models.OperatingSystemWindows, models.LicenseSpla)
	view.Archive().AddLicenseAnnotation(image(2), models.OperatingSystemLinux, models.LicenseUnknown)
	view.Repopulate()

	s := view.Summary()
	assert.Equal(t, 4, s.Total)
	assert.Equal(t, 3, s.ByTenancy[models.TenancyFleet])
	assert.Equal(t, 1, s.ByTenancy[models.TenancySoleTenant])
	assert.Equal(t, 1, s.ByOS[models.OperatingSystemWindows])
	assert.Equal(t, 1, s.ByOS[models.OperatingSystemLinux])
	assert.Equal(t, 2, s.ByOS[models.OperatingSystemUnknown])
	assert.Equal(t, 1, s.ByLicense[models.LicenseSpla])
	assert.Equal(t, 3, s.ByLicense[models.LicenseUnknown])

	// fleet instances on days 0,1,2 and the sole-tenant one on day 0
	assert.Equal(t, baseline, s.PeakDay)
	assert.Equal(t, 2, s.PeakCount)
}

func TestView_SummaryOfEmptyView(t *testing.T) {
	view := newView(t, fleet{fleetCount: 1})
	view.Repopulate()
	view.SetIncludeFleetInstances(false)

	s := view.Summary()
	assert.Equal(t, 0, s.Total)
	assert.Equal(t, 0, s.PeakCount)
	assert.True(t, s.PeakDay.IsZero())
}
