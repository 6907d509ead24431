package service

import (
	"fmt"
	"sort"
	"strings"
)

// ValidationError reports schema-level input failures with field detail.
// It always maps to a 400 response and is never logged as a server fault.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for f := range e.Fields {
		names = append(names, f)
	}
	sort.Strings(names)
	parts := make([]string, 0, len(names))
	for _, f := range names {
		parts = append(parts, fmt.Sprintf("%s: %s", f, e.Fields[f]))
	}
	return "invalid input: " + strings.Join(parts, "; ")
}

// validator accumulates field errors; only the first error per field is kept.
type validator struct {
	fields map[string]string
}

func newValidator() *validator {
	return &validator{fields: make(map[string]string)}
}

func (v *validator) check(ok bool, field, msg string) {
	if ok {
		return
	}
	if _, seen := v.fields[field]; !seen {
		v.fields[field] = msg
	}
}

func (v *validator) require(field, value string) {
	v.check(strings.TrimSpace(value) != "", field, field+" is required")
}

func (v *validator) oneOf(field, value string, allowed []string) {
	for _, a := range allowed {
		if value == a {
			return
		}
	}
	v.check(false, field, fmt.Sprintf("%s must be one of %s", field, strings.Join(allowed, ", ")))
}

func (v *validator) email(field, value string) {
	v.require(field, value)
	if value == "" {
		return
	}
	v.check(isValidEmail(value), field, field+" is not a valid email address")
}

func (v *validator) result() error {
	if len(v.fields) == 0 {
		return nil
	}
	return &ValidationError{Fields: v.fields}
}

// isValidEmail does a basic structural check (no external deps).
func isValidEmail(email string) bool {
	parts := strings.Split(email, "@")
	if len(parts) != 2 {
		return false
	}
	return len(parts[0]) > 0 && strings.Contains(parts[1], ".")
}
