package validation

import (
	"strings"
	"time"
)

// Field-level validators. Inbound events carry every value as a string and a
// blank string counts as absent, so every rule except RequirePresent is a
// no-op on a blank value: presence is always checked separately.

const dateLayout = "2006-01-02"

const (
	idMinSize     = 1
	idMaxSize     = 50
	urlMinSize    = 10
	urlMaxSize    = 200
	statusMaxSize = 20
	labelMaxSize  = 100
)

func isBlank(value string) bool {
	return strings.TrimSpace(value) == ""
}

// RequirePresent fails when value is blank after trimming.
func RequirePresent(value, field string) error {
	if isBlank(value) {
		return &MissingFieldError{Field: field}
	}
	return nil
}

// RequireSize fails when the trimmed length of value is outside [min, max].
func RequireSize(value string, min, max int, field string) error {
	if isBlank(value) {
		return nil
	}
	trimmed := strings.TrimSpace(value)
	if size := len([]rune(trimmed)); size < min || size > max {
		return &InvalidSizeError{Field: field, Value: trimmed, Min: min, Max: max}
	}
	return nil
}

// RequireIDSize applies the shared bound for business identifiers.
func RequireIDSize(value, field string) error {
	return RequireSize(value, idMinSize, idMaxSize, field)
}

// RequireURLSize applies the shared bound for URLs.
func RequireURLSize(value, field string) error {
	return RequireSize(value, urlMinSize, urlMaxSize, field)
}

// RequireEnumMember fails when value matches no member of allowed.
// Comparison is case-sensitive.
func RequireEnumMember(value string, allowed []string, field string) error {
	if isBlank(value) {
		return nil
	}
	for _, member := range allowed {
		if value == member {
			return nil
		}
	}
	return &InvalidEnumError{Field: field, Value: value, Allowed: allowed}
}

// RequireParsableDate fails when value is not an ISO calendar date.
func RequireParsableDate(value, field string) error {
	if isBlank(value) {
		return nil
	}
	if _, err := time.Parse(dateLayout, strings.TrimSpace(value)); err != nil {
		return &MalformedDateError{Field: field, Value: value}
	}
	return nil
}

// RequireAbsentIfOtherAbsent fails when value is present while other is
// absent.
func RequireAbsentIfOtherAbsent(value, field, other, otherField string) error {
	if !isBlank(value) && isBlank(other) {
		return &CrossFieldError{
			Field:      field,
			OtherField: otherField,
			Reason:     "must not be provided when " + otherField + " is not provided",
		}
	}
	return nil
}

// RequireAbsentIfOtherEquals fails when value is present while other equals
// otherValue.
func RequireAbsentIfOtherEquals(value, field, other, otherField, otherValue string) error {
	if !isBlank(value) && other == otherValue {
		return &CrossFieldError{
			Field:      field,
			OtherField: otherField,
			Reason:     "must not be provided when " + otherField + " is " + otherValue,
		}
	}
	return nil
}

// RequirePresentIfOtherPresent fails when value is absent while other is
// present.
func RequirePresentIfOtherPresent(value, field, other, otherField string) error {
	if isBlank(value) && !isBlank(other) {
		return &CrossFieldError{
			Field:      field,
			OtherField: otherField,
			Reason:     "must be provided when " + otherField + " is provided",
		}
	}
	return nil
}

// RequirePresentIfOtherEquals fails when value is absent while other equals
// otherValue.
func RequirePresentIfOtherEquals(value, field, other, otherField, otherValue string) error {
	if isBlank(value) && other == otherValue {
		return &CrossFieldError{
			Field:      field,
			OtherField: otherField,
			Reason:     "must be provided when " + otherField + " is " + otherValue,
		}
	}
	return nil
}

// firstError returns the first non-nil error of an ordered rule sequence.
func firstError(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}
