package models

import (
	"fmt"
	"strings"
)

// Tenancy is the placement classification of an instance
type Tenancy int

const (
	// TenancyFleet means the instance runs on a shared host
	TenancyFleet Tenancy = iota
	// TenancySoleTenant means the instance runs on a dedicated host or node
	TenancySoleTenant
)

func (t Tenancy) String() string {
	switch t {
	case TenancyFleet:
		return "Fleet"
	case TenancySoleTenant:
		return "SoleTenant"
	default:
		return "Unknown"
	}
}

// InstanceState is the last known lifecycle state of an instance
type InstanceState string

const (
	InstanceStateRunning    InstanceState = "running"
	InstanceStateStopped    InstanceState = "stopped"
	InstanceStateTerminated InstanceState = "terminated"
	InstanceStateUnknown    InstanceState = "unknown"
)

// OperatingSystemType classifies the OS installed on an image
type OperatingSystemType string

const (
	OperatingSystemUnknown OperatingSystemType = "unknown"
	OperatingSystemWindows OperatingSystemType = "windows"
	OperatingSystemLinux   OperatingSystemType = "linux"
)

// LicenseType classifies how an image's OS license is provided
type LicenseType string

const (
	LicenseUnknown LicenseType = "unknown"
	// LicenseSpla means license-included (provider-supplied) licensing
	LicenseSpla LicenseType = "spla"
	// LicenseByol means bring-your-own-license
	LicenseByol LicenseType = "byol"
)

// InstanceLocator identifies an instance by project, zone and name
type InstanceLocator struct {
	Project string
	Zone    string
	Name    string
}

func (l InstanceLocator) String() string {
	return fmt.Sprintf("%s/%s/%s", l.Project, l.Zone, l.Name)
}

// ImageLocator identifies the source image of an instance
type ImageLocator struct {
	Project string
	Name    string
}

func (l ImageLocator) String() string {
	return fmt.Sprintf("%s/%s", l.Project, l.Name)
}

// ParseImageLocator parses a "project/name" string
func ParseImageLocator(s string) (ImageLocator, error) {
	project, name, ok := strings.Cut(s, "/")
	if !ok || project == "" || name == "" {
		return ImageLocator{}, fmt.Errorf("invalid image locator %q, expected project/name", s)
	}
	return ImageLocator{Project: project, Name: name}, nil
}

// LicenseAnnotation is the OS/license classification of an image
type LicenseAnnotation struct {
	Image           ImageLocator
	OperatingSystem OperatingSystemType
	License         LicenseType
}
