package utils

import "sort"

// supportedRegions lists the commercial regions the report can scan
var supportedRegions = map[string]bool{
	"us-east-1":      true,
	"us-east-2":      true,
	"us-west-1":      true,
	"us-west-2":      true,
	"af-south-1":     true,
	"ap-east-1":      true,
	"ap-south-1":     true,
	"ap-northeast-1": true,
	"ap-northeast-2": true,
	"ap-northeast-3": true,
	"ap-southeast-1": true,
	"ap-southeast-2": true,
	"ca-central-1":   true,
	"eu-central-1":   true,
	"eu-west-1":      true,
	"eu-west-2":      true,
	"eu-west-3":      true,
	"eu-north-1":     true,
	"eu-south-1":     true,
	"me-south-1":     true,
	"sa-east-1":      true,
}

// IsValidRegion checks if a region is valid
func IsValidRegion(region string) bool {
	return supportedRegions[region]
}

// SupportedRegions returns the known regions in sorted order
func SupportedRegions() []string {
	regions := make([]string, 0, len(supportedRegions))
	for r := range supportedRegions {
		regions = append(regions, r)
	}
	sort.Strings(regions)
	return regions
}

// GetDefaultRegion returns the default AWS region
func GetDefaultRegion() string {
	return "us-east-1"
}

// ValidateRegions splits regions into supported and rejected ones, preserving order
func ValidateRegions(regions []string) (valid, invalid []string) {
	for _, r := range regions {
		if IsValidRegion(r) {
			valid = append(valid, r)
		} else {
			invalid = append(invalid, r)
		}
	}
	return valid, invalid
}
