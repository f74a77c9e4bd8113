package history

import (
	"fmt"
	"time"

	"github.com/younsl/fleetreport/internal/models"
	"github.com/younsl/fleetreport/pkg/utils"
)

// Builder collects instance observations for a fixed window and freezes them
// into an InstanceSetHistory. A Builder is single-use and not safe for
// concurrent use.
type Builder struct {
	windowStart time.Time
	windowEnd   time.Time
	instances   []models.InstanceHistory
	seen        map[uint64]struct{}
	built       bool
}

// NewBuilder creates a builder for the window [start, end)
func NewBuilder(start, end time.Time) (*Builder, error) {
	if !start.Before(end) {
		return nil, fmt.Errorf("%w: [%s, %s)", ErrInvalidWindow,
			start.Format(time.RFC3339), end.Format(time.RFC3339))
	}

	return &Builder{
		windowStart: start.UTC(),
		windowEnd:   end.UTC(),
		seen:        make(map[uint64]struct{}),
	}, nil
}

// AddExistingInstance registers an instance known to be present at observedAt
// with no further lifecycle events inside the window. The instance is counted
// for the calendar day it was observed on.
func (b *Builder) AddExistingInstance(
	id uint64,
	instance models.InstanceLocator,
	image models.ImageLocator,
	state models.InstanceState,
	observedAt time.Time,
	tenancy models.Tenancy,
) error {
	obs := models.InstanceObservation{
		InstanceID: id,
		Instance:   instance,
		Image:      image,
		State:      state,
		ObservedAt: observedAt,
		Tenancy:    tenancy,
	}
	return b.AddObservation(obs)
}

// AddObservation is AddExistingInstance taking an observation record
func (b *Builder) AddObservation(obs models.InstanceObservation) error {
	to := utils.MinTime(utils.NextDay(obs.ObservedAt), b.windowEnd)
	return b.add(obs, to)
}

// AddInstance registers an instance whose existence interval is known
// explicitly: [obs.ObservedAt, until).
func (b *Builder) AddInstance(obs models.InstanceObservation, until time.Time) error {
	if b.built {
		return fmt.Errorf("%w: cannot add instance %d", ErrAlreadyBuilt, obs.InstanceID)
	}
	until = until.UTC()
	if !obs.ObservedAt.Before(until) || until.After(b.windowEnd) {
		return fmt.Errorf("%w: instance %d interval [%s, %s)", ErrOutOfWindow, obs.InstanceID,
			obs.ObservedAt.Format(time.RFC3339), until.Format(time.RFC3339))
	}
	return b.add(obs, until)
}

func (b *Builder) add(obs models.InstanceObservation, to time.Time) error {
	if b.built {
		return fmt.Errorf("%w: cannot add instance %d", ErrAlreadyBuilt, obs.InstanceID)
	}
	if _, exists := b.seen[obs.InstanceID]; exists {
		return fmt.Errorf("%w: %d", ErrDuplicateInstance, obs.InstanceID)
	}

	observedAt := obs.ObservedAt.UTC()
	if observedAt.Before(b.windowStart) || !observedAt.Before(b.windowEnd) {
		return fmt.Errorf("%w: instance %d observed at %s", ErrOutOfWindow, obs.InstanceID,
			observedAt.Format(time.RFC3339))
	}

	state := obs.State
	if state == "" {
		state = models.InstanceStateUnknown
	}

	b.seen[obs.InstanceID] = struct{}{}
	b.instances = append(b.instances, models.InstanceHistory{
		InstanceID: obs.InstanceID,
		Instance:   obs.Instance,
		Image:      obs.Image,
		State:      state,
		Tenancy:    obs.Tenancy,
		ObservedAt: observedAt,
		From:       observedAt,
		To:         to,
	})
	return nil
}

// Build freezes the registered instances. It may be called only once.
func (b *Builder) Build() (*InstanceSetHistory, error) {
	if b.built {
		return nil, fmt.Errorf("%w: Build called twice", ErrAlreadyBuilt)
	}
	b.built = true

	set := &InstanceSetHistory{
		windowStart: b.windowStart,
		windowEnd:   b.windowEnd,
		instances:   b.instances,
		index:       make(map[uint64]int, len(b.instances)),
	}
	for i, inst := range b.instances {
		set.index[inst.InstanceID] = i
	}

	b.instances = nil
	return set, nil
}
