package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/transitops/backend/internal/domain/identity"
	"github.com/transitops/backend/internal/infrastructure/auth"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func testEngine(jwtService *auth.JWTService) (*gin.Engine, *identity.Actor) {
	var seen identity.Actor
	engine := gin.New()
	engine.Use(JWTAuthMiddleware(jwtService))
	engine.GET("/api/v1/maintenance", func(c *gin.Context) {
		actor, ok := GetActor(c)
		if !ok {
			c.Status(http.StatusInternalServerError)
			return
		}
		seen = actor
		c.Status(http.StatusOK)
	})
	engine.GET("/health", func(c *gin.Context) { c.Status(http.StatusOK) })
	return engine, &seen
}

func TestJWTAuthMiddleware(t *testing.T) {
	jwtService := auth.NewJWTService("test-secret-at-least-32-characters", "transitops", time.Hour)

	t.Run("missing token is refused", func(t *testing.T) {
		engine, _ := testEngine(jwtService)
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/maintenance", nil))
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("garbage token is refused", func(t *testing.T) {
		engine, _ := testEngine(jwtService)
		req := httptest.NewRequest(http.MethodGet, "/api/v1/maintenance", nil)
		req.Header.Set(AuthHeaderKey, BearerPrefix+"not.a.token")
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("valid token yields the actor", func(t *testing.T) {
		actor := identity.Actor{
			ID:           7,
			Registration: "120455",
			Name:         "Ana Dias",
			Departments:  []int{identity.DepartmentMaintenance},
			AccessLevels: []identity.AccessLevel{{Department: identity.DepartmentMaintenance, Level: 1}},
		}
		token, err := jwtService.GenerateAccessToken(actor)
		require.NoError(t, err)

		engine, seen := testEngine(jwtService)
		req := httptest.NewRequest(http.MethodGet, "/api/v1/maintenance", nil)
		req.Header.Set(AuthHeaderKey, BearerPrefix+token)
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, actor.ID, seen.ID)
		assert.Equal(t, actor.Departments, seen.Departments)
		assert.Equal(t, actor.AccessLevels, seen.AccessLevels)
	})

	t.Run("health path skips authentication", func(t *testing.T) {
		engine, _ := testEngine(jwtService)
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
		assert.Equal(t, http.StatusOK, w.Code)
	})
}
