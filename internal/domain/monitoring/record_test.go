package monitoring

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/transitops/backend/internal/domain/shared"
)

func createTestRecord(t *testing.T, occurrenceCode int) *Record {
	now := time.Now()
	r, err := NewRecord("3310", "7021-21", 2, occurrenceCode, now.Add(-2*time.Hour), now, "driver reported obstruction", "220011")
	require.NoError(t, err)
	return r
}

func TestStatus_CanTransitionTo(t *testing.T) {
	tests := []struct {
		from     Status
		to       Status
		canTrans bool
	}{
		{StatusAwaitingMonitoring, StatusAwaitingInspector, true},
		{StatusAwaitingMonitoring, StatusCompleted, true},
		{StatusAwaitingInspector, StatusCompleted, true},
		{StatusAwaitingInspector, StatusAwaitingMonitoring, true},
		{StatusCompleted, StatusAwaitingInspector, false},
		{StatusCompleted, StatusAwaitingMonitoring, false},
	}

	for _, tt := range tests {
		t.Run(tt.from.String()+"->"+tt.to.String(), func(t *testing.T) {
			assert.Equal(t, tt.canTrans, tt.from.CanTransitionTo(tt.to))
		})
	}
}

func TestRecord_Approve(t *testing.T) {
	t.Run("advances to inspector stage", func(t *testing.T) {
		r := createTestRecord(t, 12)
		require.NoError(t, r.Approve())
		assert.Equal(t, StatusAwaitingInspector, r.Status)
	})

	t.Run("no-occurrence completes directly", func(t *testing.T) {
		r := createTestRecord(t, NoOccurrenceCode)
		require.NoError(t, r.Approve())
		assert.Equal(t, StatusCompleted, r.Status)
	})

	t.Run("inspector stage requires treatment fields", func(t *testing.T) {
		r := createTestRecord(t, 12)
		require.NoError(t, r.Approve())

		err := r.Approve()
		require.Error(t, err)

		var verrs shared.ValidationErrors
		require.ErrorAs(t, err, &verrs)
		assert.Len(t, verrs, 3)
		assert.True(t, verrs.Has("treatment"))
		assert.True(t, verrs.Has("date_inspector"))
		assert.True(t, verrs.Has("inspector_registration"))
		assert.Equal(t, StatusAwaitingInspector, r.Status)
	})

	t.Run("short treatment is rejected", func(t *testing.T) {
		r := createTestRecord(t, 12)
		require.NoError(t, r.Approve())

		r.Treatment = "short"
		r.DateInspector = time.Now()
		r.InspectorRegistration = "334455"

		err := r.Approve()
		var verrs shared.ValidationErrors
		require.ErrorAs(t, err, &verrs)
		assert.True(t, verrs.Has("treatment"))
	})

	t.Run("completes from inspector stage", func(t *testing.T) {
		r := createTestRecord(t, 12)
		require.NoError(t, r.Approve())

		r.Treatment = "inspector confirmed and instructed the driver"
		r.DateInspector = time.Now()
		r.InspectorRegistration = "334455"
		require.NoError(t, r.Approve())
		assert.Equal(t, StatusCompleted, r.Status)
	})

	t.Run("completed records cannot be approved again", func(t *testing.T) {
		r := createTestRecord(t, NoOccurrenceCode)
		require.NoError(t, r.Approve())

		err := r.Approve()
		var derr *shared.DomainError
		require.ErrorAs(t, err, &derr)
		assert.Equal(t, "INVALID_TRANSITION", derr.Code)
	})
}

func TestRecord_Reprove(t *testing.T) {
	t.Run("steps back exactly one stage", func(t *testing.T) {
		r := createTestRecord(t, 12)
		require.NoError(t, r.Approve())
		require.NoError(t, r.Reprove())
		assert.Equal(t, StatusAwaitingMonitoring, r.Status)
	})

	t.Run("initial stage cannot be reproved", func(t *testing.T) {
		r := createTestRecord(t, 12)
		err := r.Reprove()
		var derr *shared.DomainError
		require.ErrorAs(t, err, &derr)
		assert.Equal(t, "INVALID_TRANSITION", derr.Code)
	})
}

func TestRecord_Validate_DateInterval(t *testing.T) {
	now := time.Now()
	_, err := NewRecord("3310", "7021-21", 2, 12, now, now.Add(-time.Hour), "comment", "220011")
	require.Error(t, err)

	var verrs shared.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.True(t, verrs.Has("date_occurrence"))
}

func TestRecord_CanDelete(t *testing.T) {
	r := createTestRecord(t, 12)
	assert.True(t, r.CanDelete())

	require.NoError(t, r.Approve())
	assert.False(t, r.CanDelete())
}
