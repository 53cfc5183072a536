package shared

// DomainError represents a domain-level error
type DomainError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error implements the error interface
func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// ErrNotFound signals a missing record. Repositories return it so
// services and handlers can map it to a 404 without string matching.
var ErrNotFound = NewDomainError("NOT_FOUND", "Resource not found")
