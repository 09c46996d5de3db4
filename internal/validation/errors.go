package validation

import (
	"fmt"
	"strings"
)

// Error taxonomy for business validation. Each validator returns exactly one
// of these on the first violated rule; callers abort before any backend call
// is made.

type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("field %q is missing", e.Field)
}

type InvalidSizeError struct {
	Field string
	Value string
	Min   int
	Max   int
}

func (e *InvalidSizeError) Error() string {
	return fmt.Sprintf("field %q has value %q with invalid size, allowed range is [%d, %d]",
		e.Field, e.Value, e.Min, e.Max)
}

type InvalidEnumError struct {
	Field   string
	Value   string
	Allowed []string
}

func (e *InvalidEnumError) Error() string {
	return fmt.Sprintf("field %q has value %q, allowed values are [%s]",
		e.Field, e.Value, strings.Join(e.Allowed, ", "))
}

type MalformedDateError struct {
	Field string
	Value string
}

func (e *MalformedDateError) Error() string {
	return fmt.Sprintf("field %q has value %q which is not an ISO calendar date", e.Field, e.Value)
}

// CrossFieldError reports a violated dependency between two fields.
type CrossFieldError struct {
	Field      string
	OtherField string
	Reason     string
}

func (e *CrossFieldError) Error() string {
	return fmt.Sprintf("field %q: %s (depends on field %q)", e.Field, e.Reason, e.OtherField)
}
