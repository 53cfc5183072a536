package dto

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeErrorCode(t *testing.T) {
	tests := []struct {
		domain string
		wire   string
	}{
		{"NOT_FOUND", ErrCodeNotFound},
		{"FORBIDDEN", ErrCodeForbidden},
		{"INVALID_TRANSITION", ErrCodeInvalidTransition},
		{"STALE_EDIT", ErrCodeStaleEdit},
		{"INVALID_INPUT", ErrCodeValidation},
		{"BACKEND_ERROR", ErrCodeBackend},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.wire, NormalizeErrorCode(tt.domain), tt.domain)
	}

	assert.Equal(t, ErrCodeForbidden, NormalizeErrorCode(ErrCodeForbidden))
	assert.Equal(t, "SOMETHING_ELSE", NormalizeErrorCode("SOMETHING_ELSE"))
}

func TestGetHTTPStatus(t *testing.T) {
	assert.Equal(t, http.StatusForbidden, GetHTTPStatus(ErrCodeForbidden))
	assert.Equal(t, http.StatusUnprocessableEntity, GetHTTPStatus(ErrCodeInvalidTransition))
	assert.Equal(t, http.StatusConflict, GetHTTPStatus(ErrCodeStaleEdit))
	assert.Equal(t, http.StatusBadRequest, GetHTTPStatus(ErrCodeValidation))
	assert.Equal(t, http.StatusNotFound, GetHTTPStatus(ErrCodeNotFound))
	assert.Equal(t, http.StatusInternalServerError, GetHTTPStatus(ErrCodeBackend))
	assert.Equal(t, http.StatusInternalServerError, GetHTTPStatus("ERR_NOBODY_KNOWS"))
}
