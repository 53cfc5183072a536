package dto

import "net/http"

// Error code constants, format ERR_<CATEGORY>
const (
	// ErrCodeUnknown is used when the error type is unknown
	ErrCodeUnknown = "ERR_UNKNOWN"
	// ErrCodeInternal is used for internal server errors
	ErrCodeInternal = "ERR_INTERNAL"
	// ErrCodeBackend is used when a backing store operation fails
	ErrCodeBackend = "ERR_BACKEND"
)

// Validation and input error codes
const (
	// ErrCodeValidation is used when domain validation rejects the payload
	ErrCodeValidation = "ERR_VALIDATION"
	// ErrCodeBadRequest is used for malformed requests
	ErrCodeBadRequest = "ERR_BAD_REQUEST"
	// ErrCodeInvalidJSON is used when JSON parsing fails
	ErrCodeInvalidJSON = "ERR_INVALID_JSON"
)

// Authentication error codes
const (
	// ErrCodeUnauthorized is used when authentication is required but missing/invalid
	ErrCodeUnauthorized = "ERR_UNAUTHORIZED"
	// ErrCodeForbidden is used when the actor lacks department membership or access level
	ErrCodeForbidden = "ERR_FORBIDDEN"
	// ErrCodeTokenExpired is used when the auth token has expired
	ErrCodeTokenExpired = "ERR_TOKEN_EXPIRED"
	// ErrCodeTokenInvalid is used when the auth token is invalid
	ErrCodeTokenInvalid = "ERR_TOKEN_INVALID"
)

// Workflow error codes
const (
	// ErrCodeNotFound is used when a record is not found
	ErrCodeNotFound = "ERR_NOT_FOUND"
	// ErrCodeInvalidTransition is used when a stage transition is not allowed
	ErrCodeInvalidTransition = "ERR_INVALID_TRANSITION"
	// ErrCodeStaleEdit is used when the record changed since the client loaded it
	ErrCodeStaleEdit = "ERR_STALE_EDIT"
)

// ErrorCodeHTTPStatus maps error codes to HTTP status codes
var ErrorCodeHTTPStatus = map[string]int{
	ErrCodeUnknown:  http.StatusInternalServerError,
	ErrCodeInternal: http.StatusInternalServerError,
	ErrCodeBackend:  http.StatusInternalServerError,

	ErrCodeValidation:  http.StatusBadRequest,
	ErrCodeBadRequest:  http.StatusBadRequest,
	ErrCodeInvalidJSON: http.StatusBadRequest,

	ErrCodeUnauthorized: http.StatusUnauthorized,
	ErrCodeForbidden:    http.StatusForbidden,
	ErrCodeTokenExpired: http.StatusUnauthorized,
	ErrCodeTokenInvalid: http.StatusUnauthorized,

	ErrCodeNotFound:          http.StatusNotFound,
	ErrCodeInvalidTransition: http.StatusUnprocessableEntity,
	ErrCodeStaleEdit:         http.StatusConflict,
}

// GetHTTPStatus returns the HTTP status code for an error code.
// Returns 500 Internal Server Error if the error code is not found.
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// DomainErrorCodeMapping maps domain error codes to wire codes.
var DomainErrorCodeMapping = map[string]string{
	"NOT_FOUND":          ErrCodeNotFound,
	"FORBIDDEN":          ErrCodeForbidden,
	"INVALID_TRANSITION": ErrCodeInvalidTransition,
	"STALE_EDIT":         ErrCodeStaleEdit,
	"INVALID_INPUT":      ErrCodeValidation,
	"BACKEND_ERROR":      ErrCodeBackend,
}

// NormalizeErrorCode converts a domain error code to the wire format.
// If the code is already in the wire format or unknown, returns it as-is.
func NormalizeErrorCode(code string) string {
	if wireCode, ok := DomainErrorCodeMapping[code]; ok {
		return wireCode
	}
	return code
}
