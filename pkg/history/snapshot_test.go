package history_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/younsl/fleetreport/internal/models"
	"github.com/younsl/fleetreport/pkg/history"
)

func TestInstanceSetHistory_PreservesInsertionOrder(t *testing.T) {
	b, err := history.NewBuilder(baseline, baseline.AddDate(0, 0, 7))
	require.NoError(t, err)

	for _, id := range []uint64{7, 3, 5} {
		require.NoError(t, b.AddObservation(observation(id, baseline, models.TenancyFleet)))
	}

	set, err := b.Build()
	require.NoError(t, err)

	instances := set.Instances()
	require.Len(t, instances, 3)
	assert.Equal(t, uint64(7), instances[0].InstanceID)
	assert.Equal(t, uint64(3), instances[1].InstanceID)
	assert.Equal(t, uint64(5), instances[2].InstanceID)
}

func TestInstanceSetHistory_InstancesReturnsCopy(t *testing.T) {
	b, err := history.NewBuilder(baseline, baseline.AddDate(0, 0, 7))
	require.NoError(t, err)
	require.NoError(t, b.AddObservation(observation(1, baseline, models.TenancyFleet)))

	set, err := b.Build()
	require.NoError(t, err)

	instances := set.Instances()
	instances[0].Tenancy = models.TenancySoleTenant

	inst, ok := set.Instance(1)
	require.True(t, ok)
	assert.Equal(t, models.TenancyFleet, inst.Tenancy)
}

func TestInstanceSetHistory_UnknownInstance(t *testing.T) {
	b, err := history.NewBuilder(baseline, baseline.AddDate(0, 0, 7))
	require.NoError(t, err)

	set, err := b.Build()
	require.NoError(t, err)

	_, ok := set.Instance(42)
	assert.False(t, ok)
	assert.Equal(t, 0, set.Len())
}

func TestInstanceSetHistory_Days(t *testing.T) {
	t.Run("whole days", func(t *testing.T) {
		b, err := history.NewBuilder(baseline, baseline.AddDate(0, 0, 7))
		require.NoError(t, err)
		set, err := b.Build()
		require.NoError(t, err)

		days := set.Days()
		require.Len(t, days, 7)
		assert.Equal(t, baseline, days[0])
		assert.Equal(t, baseline.AddDate(0, 0, 6), days[6])

		start, end := set.Window()
		assert.Equal(t, baseline, start)
		assert.Equal(t, baseline.AddDate(0, 0, 7), end)
	})

	t.Run("partial days", func(t *testing.T) {
		b, err := history.NewBuilder(baseline.Add(6*time.Hour), baseline.AddDate(0, 0, 1).Add(time.Hour))
		require.NoError(t, err)
		set, err := b.Build()
		require.NoError(t, err)

		days := set.Days()
		require.Len(t, days, 2)
		assert.Equal(t, baseline, days[0])
		assert.Equal(t, baseline.AddDate(0, 0, 1), days[1])
	})
}
