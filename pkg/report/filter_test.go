package report_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/younsl/fleetreport/internal/models"
	"github.com/younsl/fleetreport/pkg/annotation"
	"github.com/younsl/fleetreport/pkg/history"
	"github.com/younsl/fleetreport/pkg/report"
)

var baseline = time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)

func TestFilter_Matches(t *testing.T) {
	table := annotation.NewTable()
	table.AddLicenseAnnotation(image(1), models.OperatingSystemWindows, models.LicenseByol)

	inst := models.InstanceHistory{InstanceID: 1, Image: image(1), Tenancy: models.TenancySoleTenant}

	tests := []struct {
		name     string
		mutate   func(f *report.Filter)
		expected bool
	}{
		{"all enabled", func(f *report.Filter) {}, true},
		{"tenancy disabled", func(f *report.Filter) { f.IncludeSoleTenantInstances = false }, false},
		{"other tenancy disabled", func(f *report.Filter) { f.IncludeFleetInstances = false }, true},
		{"os disabled", func(f *report.Filter) { f.IncludeWindowsInstances = false }, false},
		{"license disabled", func(f *report.Filter) { f.IncludeByolInstances = false }, false},
		{"unrelated license disabled", func(f *report.Filter) { f.IncludeSplaInstances = false }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := report.DefaultFilter()
			tt.mutate(&f)
			assert.Equal(t, tt.expected, f.Matches(inst, table))
		})
	}
}

func TestFilter_UnannotatedImagesAreUnknown(t *testing.T) {
	table := annotation.NewTable()
	inst := models.InstanceHistory{InstanceID: 1, Image: image(9), Tenancy: models.TenancyFleet}

	f := report.DefaultFilter()
	f.IncludeUnknownOsInstances = false
	assert.False(t, f.Matches(inst, table))

	f = report.DefaultFilter()
	f.IncludeUnknownLicensedInstances = false
	assert.False(t, f.Matches(inst, table))
}

func TestSelectInstances_SelectionUsesObservedAt(t *testing.T) {
	table := annotation.NewTable()
	instances := []models.InstanceHistory{
		{InstanceID: 1, ObservedAt: baseline, From: baseline, To: baseline.AddDate(0, 0, 5)},
		{InstanceID: 2, ObservedAt: baseline.AddDate(0, 0, 3), From: baseline.AddDate(0, 0, 3), To: baseline.AddDate(0, 0, 5)},
	}

	// Instance 1 exists on day 3 but was first observed on day 0.
	sel := models.DateSelection{Start: baseline.AddDate(0, 0, 3), End: baseline.AddDate(0, 0, 4)}
	got := report.SelectInstances(instances, table, report.DefaultFilter(), &sel)
	require.Len(t, got, 1)
	assert.Equal(t, uint64(2), got[0].InstanceID)

	got = report.SelectInstances(instances, table, report.DefaultFilter(), nil)
	assert.Len(t, got, 2)
}

func TestBuildHistogram_ExplicitIntervals(t *testing.T) {
	b, err := history.NewBuilder(baseline, baseline.AddDate(0, 0, 7))
	require.NoError(t, err)

	obs := func(id uint64, day int, tenancy models.Tenancy) models.InstanceObservation {
		return models.InstanceObservation{
			InstanceID: id,
			Image:      image(int(id)),
			ObservedAt: baseline.AddDate(0, 0, day),
			Tenancy:    tenancy,
		}
	}

	// days 1..3
	require.NoError(t, b.AddInstance(obs(1, 1, models.TenancyFleet), baseline.AddDate(0, 0, 4)))
	// day 2 from noon until the end of day 5
	o := obs(2, 2, models.TenancySoleTenant)
	o.ObservedAt = o.ObservedAt.Add(12 * time.Hour)
	require.NoError(t, b.AddInstance(o, baseline.AddDate(0, 0, 6)))

	set, err := b.Build()
	require.NoError(t, err)
	table := annotation.NewTable()

	histogram := report.BuildHistogram(set, table, report.DefaultFilter())
	expected := []models.DataPoint{
		{Timestamp: baseline.AddDate(0, 0, 1), Value: 1},
		{Timestamp: baseline.AddDate(0, 0, 2), Value: 2},
		{Timestamp: baseline.AddDate(0, 0, 3), Value: 2},
		{Timestamp: baseline.AddDate(0, 0, 4), Value: 1},
		{Timestamp: baseline.AddDate(0, 0, 5), Value: 1},
	}
	assert.Equal(t, expected, histogram)

	f := report.DefaultFilter()
	f.IncludeFleetInstances = false
	histogram = report.BuildHistogram(set, table, f)
	require.Len(t, histogram, 4)
	assert.Equal(t, baseline.AddDate(0, 0, 2), histogram[0].Timestamp)

	f.IncludeSoleTenantInstances = false
	assert.Empty(t, report.BuildHistogram(set, table, f))
}

func TestBuildHistogram_SkipsEmptyDays(t *testing.T) {
	b, err := history.NewBuilder(baseline, baseline.AddDate(0, 0, 7))
	require.NoError(t, err)
	for i, day := range []int{0, 4} {
		require.NoError(t, b.AddExistingInstance(uint64(i+1), models.InstanceLocator{}, image(i+1),
			models.InstanceStateRunning, baseline.AddDate(0, 0, day), models.TenancyFleet))
	}
	set, err := b.Build()
	require.NoError(t, err)

	histogram := report.BuildHistogram(set, annotation.NewTable(), report.DefaultFilter())
	require.Len(t, histogram, 2)
	assert.Equal(t, baseline, histogram[0].Timestamp)
	assert.Equal(t, baseline.AddDate(0, 0, 4), histogram[1].Timestamp)
}
