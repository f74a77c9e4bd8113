package history

import (
	"time"

	"github.com/younsl/fleetreport/internal/models"
	"github.com/younsl/fleetreport/pkg/utils"
)

// InstanceSetHistory is the immutable result of a Builder
type InstanceSetHistory struct {
	windowStart time.Time
	windowEnd   time.Time
	instances   []models.InstanceHistory
	index       map[uint64]int
}

// Window returns the analysis window [start, end)
func (s *InstanceSetHistory) Window() (start, end time.Time) {
	return s.windowStart, s.windowEnd
}

// Len returns the number of instances in the snapshot
func (s *InstanceSetHistory) Len() int {
	return len(s.instances)
}

// Instances returns a copy of all instances in insertion order
func (s *InstanceSetHistory) Instances() []models.InstanceHistory {
	out := make([]models.InstanceHistory, len(s.instances))
	copy(out, s.instances)
	return out
}

// Instance looks up an instance by ID
func (s *InstanceSetHistory) Instance(id uint64) (models.InstanceHistory, bool) {
	i, ok := s.index[id]
	if !ok {
		return models.InstanceHistory{}, false
	}
	return s.instances[i], true
}

// Days returns the start of every calendar day (UTC) that intersects the window
func (s *InstanceSetHistory) Days() []time.Time {
	var days []time.Time
	for d := utils.StartOfDay(s.windowStart); d.Before(s.windowEnd); d = d.Add(utils.Day) {
		days = append(days, d)
	}
	return days
}
