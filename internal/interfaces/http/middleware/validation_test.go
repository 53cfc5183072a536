package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/transitops/backend/internal/interfaces/http/dto"
)

func TestFormatValidationErrors(t *testing.T) {
	SetupValidator()

	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, "/?page=-1&order_dir=sideways", nil)

	var req dto.ListRequest
	err := c.ShouldBindQuery(&req)
	require.Error(t, err)

	resp := FormatValidationErrors(err, "req-123")
	require.NotNil(t, resp.Error)
	assert.Equal(t, dto.ErrCodeValidation, resp.Error.Code)
	assert.Equal(t, "req-123", resp.Error.RequestID)
	require.Len(t, resp.Error.Details, 2)

	fields := map[string]string{}
	for _, d := range resp.Error.Details {
		fields[d.Field] = d.Rule
	}
	assert.Equal(t, "min", fields["page"])
	assert.Equal(t, "oneof", fields["order_dir"])
}
