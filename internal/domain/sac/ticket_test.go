package sac

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/transitops/backend/internal/domain/shared"
)

func createTestTicket(t *testing.T) *Ticket {
	tk, err := NewTicket("2026083100042", "maria souza", "(11) 98877-6655", "12.345.678-9", 2, 1, 4, 23)
	require.NoError(t, err)
	return tk
}

func TestStatus_CanTransitionTo(t *testing.T) {
	tests := []struct {
		from     Status
		to       Status
		canTrans bool
	}{
		{StatusNew, StatusInAttention, true},
		{StatusNew, StatusResolved, false},
		{StatusInAttention, StatusResolved, true},
		{StatusInAttention, StatusNew, false},
		{StatusResolved, StatusInAttention, false},
	}

	for _, tt := range tests {
		t.Run(tt.from.String()+"->"+tt.to.String(), func(t *testing.T) {
			assert.Equal(t, tt.canTrans, tt.from.CanTransitionTo(tt.to))
		})
	}
}

func TestNewTicket(t *testing.T) {
	t.Run("normalizes requester data", func(t *testing.T) {
		tk := createTestTicket(t)
		assert.Equal(t, "MARIA SOUZA", tk.RequesterName)
		assert.Equal(t, "11988776655", tk.Phone)
		assert.Equal(t, "123456789", tk.RG)
		assert.Equal(t, PriorityMedium, tk.Priority)
		assert.Equal(t, StatusNew, tk.Status)
	})

	t.Run("reports every failing field", func(t *testing.T) {
		_, err := NewTicket("", "", "", "", 0, 0, 0, 0)
		require.Error(t, err)

		var verrs shared.ValidationErrors
		require.ErrorAs(t, err, &verrs)
		assert.Len(t, verrs, 7)
		assert.True(t, verrs.Has("protocol"))
		assert.True(t, verrs.Has("sac_department"))
	})
}

func TestTicket_ValidateUpdate(t *testing.T) {
	tk := createTestTicket(t)

	err := tk.ValidateUpdate()
	require.Error(t, err)

	var verrs shared.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.True(t, verrs.Has("sac_group"))
	assert.True(t, verrs.Has("proceeding"))
	assert.True(t, verrs.Has("car"))
	assert.True(t, verrs.Has("line_bus"))

	tk.Group = 2
	tk.Proceeding = "forwarded to operations"
	tk.Car = "2105"
	tk.BusLine = "8000-10"
	assert.NoError(t, tk.ValidateUpdate())
}

func TestTicket_Assign(t *testing.T) {
	t.Run("moves to in attention", func(t *testing.T) {
		tk := createTestTicket(t)
		require.NoError(t, tk.Assign(42, "CARLOS LIMA"))
		assert.Equal(t, StatusInAttention, tk.Status)
		assert.Equal(t, 42, tk.AssigneeID)
	})

	t.Run("requires a target user", func(t *testing.T) {
		tk := createTestTicket(t)
		err := tk.Assign(0, "")

		var verrs shared.ValidationErrors
		require.ErrorAs(t, err, &verrs)
		assert.True(t, verrs.Has("sac_user"))
		assert.Equal(t, StatusNew, tk.Status)
	})

	t.Run("cannot assign twice", func(t *testing.T) {
		tk := createTestTicket(t)
		require.NoError(t, tk.Assign(42, "CARLOS LIMA"))

		err := tk.Assign(43, "ANA DIAS")
		var derr *shared.DomainError
		require.ErrorAs(t, err, &derr)
		assert.Equal(t, "INVALID_TRANSITION", derr.Code)
	})
}

func TestTicket_EndCall(t *testing.T) {
	assigned := func(t *testing.T) *Ticket {
		tk := createTestTicket(t)
		require.NoError(t, tk.Assign(42, "CARLOS LIMA"))
		return tk
	}

	t.Run("only the assignee can end", func(t *testing.T) {
		tk := assigned(t)
		tk.AddTreatment(23, "SAC", 42, "CARLOS LIMA", "caller contacted, issue settled")

		err := tk.EndCall(99)
		var derr *shared.DomainError
		require.ErrorAs(t, err, &derr)
		assert.Equal(t, "FORBIDDEN", derr.Code)
	})

	t.Run("requires at least one treatment", func(t *testing.T) {
		tk := assigned(t)
		err := tk.EndCall(42)

		var verrs shared.ValidationErrors
		require.ErrorAs(t, err, &verrs)
		assert.True(t, verrs.Has("treatments"))
	})

	t.Run("blank treatments block resolution", func(t *testing.T) {
		tk := assigned(t)
		tk.AddTreatment(23, "SAC", 42, "CARLOS LIMA", "   ")

		err := tk.EndCall(42)
		var verrs shared.ValidationErrors
		require.ErrorAs(t, err, &verrs)
		assert.True(t, verrs.Has("treatments"))
	})

	t.Run("resolves with valid treatments", func(t *testing.T) {
		tk := assigned(t)
		tk.AddTreatment(23, "SAC", 42, "CARLOS LIMA", "caller contacted, issue settled")
		require.NoError(t, tk.EndCall(42))
		assert.Equal(t, StatusResolved, tk.Status)
	})

	t.Run("resolved tickets stay resolved", func(t *testing.T) {
		tk := assigned(t)
		tk.AddTreatment(23, "SAC", 42, "CARLOS LIMA", "caller contacted, issue settled")
		require.NoError(t, tk.EndCall(42))

		err := tk.EndCall(42)
		var derr *shared.DomainError
		require.ErrorAs(t, err, &derr)
		assert.Equal(t, "INVALID_TRANSITION", derr.Code)
	})
}

func TestTicket_CanDelete(t *testing.T) {
	tk := createTestTicket(t)
	assert.True(t, tk.CanDelete())

	require.NoError(t, tk.Assign(42, "CARLOS LIMA"))
	assert.False(t, tk.CanDelete())
}
