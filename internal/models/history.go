package models

import "time"

// InstanceObservation is a single instance sighting delivered by the ingestion layer
type InstanceObservation struct {
	InstanceID uint64
	Instance   InstanceLocator
	Image      ImageLocator
	State      InstanceState
	ObservedAt time.Time
	Tenancy    Tenancy
}

// InstanceHistory is the reconstructed existence of one instance within a window.
// The interval is half-open: [From, To).
type InstanceHistory struct {
	InstanceID uint64
	Instance   InstanceLocator
	Image      ImageLocator
	State      InstanceState
	Tenancy    Tenancy
	ObservedAt time.Time
	From       time.Time
	To         time.Time
}

// Overlaps reports whether the existence interval intersects [start, end)
func (h InstanceHistory) Overlaps(start, end time.Time) bool {
	return h.From.Before(end) && start.Before(h.To)
}

// DateSelection is an inclusive date range used to narrow the instance list
type DateSelection struct {
	Start time.Time
	End   time.Time
}

// Contains reports whether t lies in [Start, End]
func (s DateSelection) Contains(t time.Time) bool {
	return !t.Before(s.Start) && !t.After(s.End)
}

// DataPoint is one histogram entry
type DataPoint struct {
	Timestamp time.Time
	Value     int
}
