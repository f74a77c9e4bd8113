package utils

import (
	"strings"
	"time"

	"github.com/dustin/go-humanize"
)

// Day is the width of one histogram bucket
const Day = 24 * time.Hour

// ParseStateTransitionTime extracts a time from EC2 state transition reason
// Example format: "User initiated (2023-04-01 12:34:56 GMT)"
func ParseStateTransitionTime(reason string) *time.Time {
	if len(reason) == 0 {
		return nil
	}

	_, rest, ok := strings.Cut(reason, "(")
	if !ok {
		return nil
	}

	dateStr := strings.TrimSpace(strings.TrimSuffix(rest, ")"))

	t, err := time.Parse("2006-01-02 15:04:05 MST", dateStr)
	if err != nil {
		return nil
	}

	return &t
}

// StartOfDay truncates t to midnight UTC
func StartOfDay(t time.Time) time.Time {
	return t.UTC().Truncate(Day)
}

// NextDay returns midnight UTC of the day following t
func NextDay(t time.Time) time.Time {
	return StartOfDay(t).Add(Day)
}

// MinTime returns the earlier of a and b
func MinTime(a, b time.Time) time.Time {
	if a.Before(b) {
		return a
	}
	return b
}

// MaxTime returns the later of a and b
func MaxTime(a, b time.Time) time.Time {
	if a.After(b) {
		return a
	}
	return b
}

// FormatTimeAgo renders t relative to now, e.g. "3 days ago"
func FormatTimeAgo(t time.Time) string {
	return humanize.Time(t)
}

// FormatDate formats t as a calendar day
func FormatDate(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}
