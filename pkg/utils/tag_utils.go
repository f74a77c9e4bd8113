package utils

import (
	"github.com/aws/aws-sdk-go-v2/service/ec2/types"
)

// SafeDeref safely dereferences a string pointer and returns empty string if nil
func SafeDeref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// GetTagValue returns the value of a tag with the given key
func GetTagValue(tags []types.Tag, key string) string {
	for _, tag := range tags {
		if tag.Key != nil && *tag.Key == key {
			return SafeDeref(tag.Value)
		}
	}
	return ""
}

// GetName returns the value of the Name tag, falling back to the resource ID
func GetName(tags []types.Tag, fallback string) string {
	if name := GetTagValue(tags, "Name"); name != "" {
		return name
	}
	return fallback
}
