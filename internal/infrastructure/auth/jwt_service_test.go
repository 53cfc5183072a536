package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/transitops/backend/internal/domain/identity"
)

func testActor() identity.Actor {
	return identity.Actor{
		ID:           42,
		Registration: "120455",
		Name:         "Carlos Lima",
		Departments:  []int{identity.DepartmentGPS, identity.DepartmentMaintenance},
		AccessLevels: []identity.AccessLevel{
			{Department: identity.DepartmentGPS, Level: 1},
		},
		MainDepartment: "GPS",
	}
}

func TestJWTService_RoundTrip(t *testing.T) {
	svc := NewJWTService("test-secret-key-for-unit-tests-only", "opsportal", time.Hour)

	token, err := svc.GenerateAccessToken(testActor())
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.ValidateAccessToken(token)
	require.NoError(t, err)

	actor := claims.Actor()
	assert.Equal(t, 42, actor.ID)
	assert.Equal(t, "120455", actor.Registration)
	assert.True(t, actor.CanActOnDepartment(identity.DepartmentGPS))
	assert.True(t, actor.HasElevatedAccess(identity.DepartmentGPS))
	assert.False(t, actor.HasElevatedAccess(identity.DepartmentMaintenance))
}

func TestJWTService_ValidateAccessToken(t *testing.T) {
	svc := NewJWTService("test-secret-key-for-unit-tests-only", "opsportal", time.Hour)

	t.Run("rejects garbage", func(t *testing.T) {
		_, err := svc.ValidateAccessToken("not-a-token")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("rejects wrong secret", func(t *testing.T) {
		other := NewJWTService("another-secret-entirely-for-testing", "opsportal", time.Hour)
		token, err := other.GenerateAccessToken(testActor())
		require.NoError(t, err)

		_, err = svc.ValidateAccessToken(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("rejects wrong issuer", func(t *testing.T) {
		other := NewJWTService("test-secret-key-for-unit-tests-only", "someone-else", time.Hour)
		token, err := other.GenerateAccessToken(testActor())
		require.NoError(t, err)

		_, err = svc.ValidateAccessToken(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("rejects expired token", func(t *testing.T) {
		expired := NewJWTService("test-secret-key-for-unit-tests-only", "opsportal", -time.Minute)
		token, err := expired.GenerateAccessToken(testActor())
		require.NoError(t, err)

		_, err = svc.ValidateAccessToken(token)
		assert.ErrorIs(t, err, ErrTokenExpired)
	})
}
