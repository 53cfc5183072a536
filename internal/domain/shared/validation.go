package shared

import (
	"fmt"
	"strings"
)

// FieldError describes a single failing field in a validation pass.
type FieldError struct {
	Field   string `json:"field"`
	Rule    string `json:"rule"`
	Message string `json:"message"`
}

// ValidationErrors is the full set of field errors from one validation pass.
// Rulesets always run to completion so every failing field is reported.
type ValidationErrors []FieldError

// Error implements the error interface
func (v ValidationErrors) Error() string {
	if len(v) == 0 {
		return "validation failed"
	}
	parts := make([]string, 0, len(v))
	for _, fe := range v {
		parts = append(parts, fmt.Sprintf("%s: %s", fe.Field, fe.Message))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Fields returns the names of all failing fields
func (v ValidationErrors) Fields() []string {
	fields := make([]string, 0, len(v))
	for _, fe := range v {
		fields = append(fields, fe.Field)
	}
	return fields
}

// Has reports whether the given field has an error
func (v ValidationErrors) Has(field string) bool {
	for _, fe := range v {
		if fe.Field == field {
			return true
		}
	}
	return false
}

// Collector accumulates field errors across a ruleset without failing fast.
type Collector struct {
	errs ValidationErrors
}

// Require records an error when ok is false.
func (c *Collector) Require(ok bool, field, rule, message string) {
	if !ok {
		c.errs = append(c.errs, FieldError{Field: field, Rule: rule, Message: message})
	}
}

// RequireNotBlank records a required-field error when value is blank.
func (c *Collector) RequireNotBlank(value, field string) {
	c.Require(strings.TrimSpace(value) != "", field, "required", field+" is required")
}

// RequireMinLen records a min-length error when the trimmed value is shorter than min.
func (c *Collector) RequireMinLen(value, field string, min int) {
	trimmed := strings.TrimSpace(value)
	c.Require(len(trimmed) >= min, field, "min",
		fmt.Sprintf("%s must be at least %d characters", field, min))
}

// Err returns the accumulated errors, or nil when everything passed.
func (c *Collector) Err() error {
	if len(c.errs) == 0 {
		return nil
	}
	return c.errs
}

// Errors returns the raw accumulated slice.
func (c *Collector) Errors() ValidationErrors {
	return c.errs
}
