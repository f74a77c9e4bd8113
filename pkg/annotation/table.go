package annotation

import (
	"github.com/younsl/fleetreport/internal/models"
)

// Table maps images to their OS/license classification. It can be edited at
// any time; readers resolve against its current contents.
type Table struct {
	entries map[models.ImageLocator]models.LicenseAnnotation
	order   []models.ImageLocator
}

// NewTable creates an empty annotation table
func NewTable() *Table {
	return &Table{
		entries: make(map[models.ImageLocator]models.LicenseAnnotation),
	}
}

// AddLicenseAnnotation inserts or overwrites the classification of an image
func (t *Table) AddLicenseAnnotation(image models.ImageLocator, os models.OperatingSystemType, license models.LicenseType) {
	if _, exists := t.entries[image]; !exists {
		t.order = append(t.order, image)
	}
	t.entries[image] = models.LicenseAnnotation{
		Image:           image,
		OperatingSystem: os,
		License:         license,
	}
}

// Lookup returns the annotation for an image, if any
func (t *Table) Lookup(image models.ImageLocator) (models.LicenseAnnotation, bool) {
	a, ok := t.entries[image]
	return a, ok
}

// Resolve returns the classification of an image, or (Unknown, Unknown)
func (t *Table) Resolve(image models.ImageLocator) (models.OperatingSystemType, models.LicenseType) {
	if a, ok := t.entries[image]; ok {
		return a.OperatingSystem, a.License
	}
	return models.OperatingSystemUnknown, models.LicenseUnknown
}

// Len returns the number of annotated images
func (t *Table) Len() int {
	return len(t.entries)
}

// Annotations lists all annotations in first-insertion order
func (t *Table) Annotations() []models.LicenseAnnotation {
	out := make([]models.LicenseAnnotation, 0, len(t.order))
	for _, image := range t.order {
		out = append(out, t.entries[image])
	}
	return out
}
