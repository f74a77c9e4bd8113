package report

import (
	"github.com/younsl/fleetreport/internal/models"
	"github.com/younsl/fleetreport/pkg/annotation"
	"github.com/younsl/fleetreport/pkg/history"
)

// Archive pairs an immutable instance history with an editable annotation
// table. The two are kept separate so that classifications can be added or
// corrected after the history has been built.
type Archive struct {
	history     *history.InstanceSetHistory
	annotations *annotation.Table
}

// NewArchive creates an archive with an empty annotation table
func NewArchive(set *history.InstanceSetHistory) *Archive {
	return NewArchiveWithAnnotations(set, annotation.NewTable())
}

// NewArchiveWithAnnotations creates an archive around an existing table
func NewArchiveWithAnnotations(set *history.InstanceSetHistory, table *annotation.Table) *Archive {
	if set == nil {
		panic("report: nil instance history")
	}
	if table == nil {
		table = annotation.NewTable()
	}
	return &Archive{
		history:     set,
		annotations: table,
	}
}

// History returns the archived instance history
func (a *Archive) History() *history.InstanceSetHistory {
	return a.history
}

// Annotations returns the archive's annotation table
func (a *Archive) Annotations() *annotation.Table {
	return a.annotations
}

// AddLicenseAnnotation classifies an image. Views built on this archive pick
// up the change on their next Repopulate.
func (a *Archive) AddLicenseAnnotation(image models.ImageLocator, os models.OperatingSystemType, license models.LicenseType) {
	a.annotations.AddLicenseAnnotation(image, os, license)
}
