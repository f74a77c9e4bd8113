package annotation

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/younsl/fleetreport/internal/models"
	"gopkg.in/yaml.v3"
)

// File is the on-disk classification source
//
//	annotations:
//	  - image: my-project/windows-2019-byol
//	    os: windows
//	    license: byol
type File struct {
	Annotations []Entry `yaml:"annotations" validate:"dive"`
}

// Entry classifies a single image
type Entry struct {
	Image   string `yaml:"image" validate:"required,contains=/"`
	OS      string `yaml:"os" validate:"omitempty,oneof=windows linux unknown"`
	License string `yaml:"license" validate:"omitempty,oneof=spla byol unknown"`
}

var validate = validator.New()

// LoadFile reads and validates a classification file
func LoadFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read annotation file %s: %w", path, err)
	}

	f, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("annotation file %s: %w", path, err)
	}
	return f, nil
}

// Parse decodes and validates classification YAML
func Parse(data []byte) (*File, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse YAML: %w", err)
	}

	if err := validate.Struct(&f); err != nil {
		return nil, fmt.Errorf("validate: %w", err)
	}

	return &f, nil
}

// Apply writes every entry into the table, later entries winning
func (f *File) Apply(t *Table) error {
	for i, e := range f.Annotations {
		image, err := models.ParseImageLocator(e.Image)
		if err != nil {
			return fmt.Errorf("entry %d: %w", i, err)
		}

		osType := models.OperatingSystemUnknown
		if e.OS != "" {
			osType = models.OperatingSystemType(e.OS)
		}
		license := models.LicenseUnknown
		if e.License != "" {
			license = models.LicenseType(e.License)
		}

		t.AddLicenseAnnotation(image, osType, license)
	}
	return nil
}
