package reference

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/transitops/backend/internal/domain/reference"
	"github.com/transitops/backend/internal/domain/shared"
	"github.com/transitops/backend/internal/infrastructure/cache"
)

type countingSource struct {
	loads map[string]int
	data  map[string]interface{}
}

func newCountingSource() *countingSource {
	return &countingSource{
		loads: make(map[string]int),
		data: map[string]interface{}{
			reference.KeyVehicles: []reference.Vehicle{
				{ID: 1, Car: "2105", Active: true},
				{ID: 2, Car: "4412", Active: true},
			},
			reference.KeyROMotives: []reference.Motive{
				{ID: 1, Label: "Traffic", OccurrenceTypes: []int{1, 2}},
				{ID: 2, Label: "Mechanical", OccurrenceTypes: []int{4}},
			},
			reference.KeyCameraOccurrences: []reference.OccurrenceItem{
				{ID: 40, Label: "Assault", RequiresCutVideo: true},
				{ID: 41, Label: "Complaint", RequiresCutVideo: false},
			},
			reference.KeyROUsers: []reference.AssignableUser{
				{ID: 1, Username: "jsantos", Name: "J. Santos", Departments: []int{15}},
				{ID: 2, Username: "mlima", Name: "M. Lima", Departments: []int{23}},
				{ID: 3, Username: "rprado", Name: "R. Prado", Departments: []int{14, 16}},
			},
		},
	}
}

func (s *countingSource) Load(_ context.Context, key string) (interface{}, error) {
	s.loads[key]++
	v, ok := s.data[key]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return v, nil
}

func TestService_List(t *testing.T) {
	ctx := context.Background()

	t.Run("loads each key once", func(t *testing.T) {
		source := newCountingSource()
		svc := NewService(source, cache.NewInMemoryReferenceCache(), nil)

		for i := 0; i < 5; i++ {
			payload, err := svc.List(ctx, reference.KeyVehicles)
			require.NoError(t, err)

			var vehicles []reference.Vehicle
			require.NoError(t, json.Unmarshal(payload, &vehicles))
			assert.Len(t, vehicles, 2)
		}
		assert.Equal(t, 1, source.loads[reference.KeyVehicles])
	})

	t.Run("unknown key is refused", func(t *testing.T) {
		source := newCountingSource()
		svc := NewService(source, cache.NewInMemoryReferenceCache(), nil)

		_, err := svc.List(ctx, "droptables")
		var derr *shared.DomainError
		require.ErrorAs(t, err, &derr)
		assert.Equal(t, "NOT_FOUND", derr.Code)
		assert.Zero(t, source.loads["droptables"])
	})

	t.Run("invalidation forces a reload", func(t *testing.T) {
		source := newCountingSource()
		svc := NewService(source, cache.NewInMemoryReferenceCache(), nil)

		_, err := svc.List(ctx, reference.KeyVehicles)
		require.NoError(t, err)
		require.NoError(t, svc.Invalidate(ctx, reference.KeyVehicles))
		_, err = svc.List(ctx, reference.KeyVehicles)
		require.NoError(t, err)

		assert.Equal(t, 2, source.loads[reference.KeyVehicles])
	})

	t.Run("invalidate all drops every key", func(t *testing.T) {
		source := newCountingSource()
		svc := NewService(source, cache.NewInMemoryReferenceCache(), nil)

		_, err := svc.List(ctx, reference.KeyVehicles)
		require.NoError(t, err)
		_, err = svc.List(ctx, reference.KeyROMotives)
		require.NoError(t, err)

		require.NoError(t, svc.InvalidateAll(ctx))

		_, err = svc.List(ctx, reference.KeyVehicles)
		require.NoError(t, err)
		_, err = svc.List(ctx, reference.KeyROMotives)
		require.NoError(t, err)

		assert.Equal(t, 2, source.loads[reference.KeyVehicles])
		assert.Equal(t, 2, source.loads[reference.KeyROMotives])
	})
}

func TestService_MotivesForType(t *testing.T) {
	source := newCountingSource()
	svc := NewService(source, cache.NewInMemoryReferenceCache(), nil)
	ctx := context.Background()

	motives, err := svc.MotivesForType(ctx, 4)
	require.NoError(t, err)
	require.Len(t, motives, 1)
	assert.Equal(t, "Mechanical", motives[0].Label)
}

func TestService_ReportAssignees(t *testing.T) {
	source := newCountingSource()
	svc := NewService(source, cache.NewInMemoryReferenceCache(), nil)

	users, err := svc.ReportAssignees(context.Background())
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, "jsantos", users[0].Username)
	assert.Equal(t, "rprado", users[1].Username)
}

func TestService_RequiresCutVideo(t *testing.T) {
	source := newCountingSource()
	svc := NewService(source, cache.NewInMemoryReferenceCache(), nil)
	ctx := context.Background()

	cut, err := svc.RequiresCutVideo(ctx, 40)
	require.NoError(t, err)
	assert.True(t, cut)

	cut, err = svc.RequiresCutVideo(ctx, 41)
	require.NoError(t, err)
	assert.False(t, cut)

	_, err = svc.RequiresCutVideo(ctx, 999)
	var derr *shared.DomainError
	require.ErrorAs(t, err, &derr)
	assert.Equal(t, "NOT_FOUND", derr.Code)
}
