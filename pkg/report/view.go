package report

import (
	"github.com/younsl/fleetreport/internal/models"
)

// View derives the filtered instance list and the daily histogram from an
// archive. A new view is unpopulated; Repopulate must be called once to
// compute the derived data, and again whenever the archive's annotations were
// edited. Once populated, every toggle or selection change recomputes the
// affected results before returning.
//
// A View is not safe for concurrent use.
type View struct {
	archive   *Archive
	filter    Filter
	selection *models.DateSelection

	populated bool
	instances []models.InstanceHistory
	histogram []models.DataPoint
}

// NewView creates an unpopulated view with all toggles enabled and no selection
func NewView(archive *Archive) *View {
	return &View{
		archive: archive,
		filter:  DefaultFilter(),
	}
}

// Archive returns the archive the view reads from
func (v *View) Archive() *Archive {
	return v.archive
}

// Repopulate resolves annotations and toggles into fresh results
func (v *View) Repopulate() {
	v.populated = true
	v.recomputeInstances()
	v.recomputeHistogram()
}

// IsPopulated reports whether Repopulate has been called
func (v *View) IsPopulated() bool {
	return v.populated
}

// Instances returns the instances matching the toggles and the selection.
// It is empty until the view is populated.
func (v *View) Instances() []models.InstanceHistory {
	return v.instances
}

// Histogram returns per-day counts of instances matching the toggles. The
// date selection never affects it.
func (v *View) Histogram() []models.DataPoint {
	return v.histogram
}

// Filter returns the current toggle state
func (v *View) Filter() Filter {
	return v.filter
}

// SetFilter replaces all toggles at once
func (v *View) SetFilter(f Filter) {
	v.filter = f
	v.onFilterChanged()
}

// SetIncludeFleetInstances toggles instances on shared hosts
func (v *View) SetIncludeFleetInstances(include bool) {
	v.filter.IncludeFleetInstances = include
	v.onFilterChanged()
}

// SetIncludeSoleTenantInstances toggles instances on dedicated hosts
func (v *View) SetIncludeSoleTenantInstances(include bool) {
	v.filter.IncludeSoleTenantInstances = include
	v.onFilterChanged()
}

func (v *View) SetIncludeWindowsInstances(include bool) {
	v.filter.IncludeWindowsInstances = include
	v.onFilterChanged()
}

func (v *View) SetIncludeLinuxInstances(include bool) {
	v.filter.IncludeLinuxInstances = include
	v.onFilterChanged()
}

func (v *View) SetIncludeUnknownOsInstances(include bool) {
	v.filter.IncludeUnknownOsInstances = include
	v.onFilterChanged()
}

func (v *View) SetIncludeSplaInstances(include bool) {
	v.filter.IncludeSplaInstances = include
	v.onFilterChanged()
}

func (v *View) SetIncludeByolInstances(include bool) {
	v.filter.IncludeByolInstances = include
	v.onFilterChanged()
}

func (v *View) SetIncludeUnknownLicensedInstances(include bool) {
	v.filter.IncludeUnknownLicensedInstances = include
	v.onFilterChanged()
}

// Selection returns the current date selection, if one is set
func (v *View) Selection() (models.DateSelection, bool) {
	if v.selection == nil {
		return models.DateSelection{}, false
	}
	return *v.selection, true
}

// SetSelection restricts Instances to those first observed within sel
func (v *View) SetSelection(sel models.DateSelection) error {
	if err := validateSelection(sel); err != nil {
		return err
	}
	v.selection = &sel
	v.onSelectionChanged()
	return nil
}

// ClearSelection removes any date restriction
func (v *View) ClearSelection() {
	v.selection = nil
	v.onSelectionChanged()
}

func (v *View) onFilterChanged() {
	if !v.populated {
		return
	}
	v.recomputeInstances()
	v.recomputeHistogram()
}

func (v *View) onSelectionChanged() {
	if !v.populated {
		return
	}
	v.recomputeInstances()
}

func (v *View) recomputeInstances() {
	v.instances = SelectInstances(
		v.archive.History().Instances(),
		v.archive.Annotations(),
		v.filter,
		v.selection)
}

func (v *View) recomputeHistogram() {
	v.histogram = BuildHistogram(
		v.archive.History(),
		v.archive.Annotations(),
		v.filter)
}
