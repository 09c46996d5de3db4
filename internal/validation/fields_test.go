package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequirePresent(t *testing.T) {
	require.NoError(t, RequirePresent("x", "f"))

	for _, value := range []string{"", "   ", "\t\n"} {
		err := RequirePresent(value, "f")
		var missing *MissingFieldError
		require.ErrorAs(t, err, &missing)
		assert.Equal(t, "f", missing.Field)
	}
}

func TestRequireSize(t *testing.T) {
	tests := []struct {
		name  string
		value string
		min   int
		max   int
		ok    bool
	}{
		{"blank is a no-op", "", 1, 3, true},
		{"at lower bound", "a", 1, 3, true},
		{"at upper bound", "abc", 1, 3, true},
		{"above upper bound", "abcd", 1, 3, false},
		{"surrounding whitespace not counted", "  ab  ", 1, 2, true},
		{"too short after trim", "  a  ", 2, 5, false},
		{"max id length", strings.Repeat("x", 50), 1, 50, true},
		{"id one char too long", strings.Repeat("x", 51), 1, 50, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := RequireSize(tt.value, tt.min, tt.max, "f")
			if tt.ok {
				assert.NoError(t, err)
			} else {
				var sizeErr *InvalidSizeError
				require.ErrorAs(t, err, &sizeErr)
				assert.Equal(t, tt.min, sizeErr.Min)
				assert.Equal(t, tt.max, sizeErr.Max)
			}
		})
	}
}

func TestRequireEnumMember(t *testing.T) {
	allowed := []string{"DEPOSEE", "EN_TRAITEMENT"}

	assert.NoError(t, RequireEnumMember("DEPOSEE", allowed, "f"))
	assert.NoError(t, RequireEnumMember("", allowed, "f"), "blank is a no-op")

	err := RequireEnumMember("deposee", allowed, "f")
	var enumErr *InvalidEnumError
	require.ErrorAs(t, err, &enumErr, "comparison is case-sensitive")
	assert.Equal(t, allowed, enumErr.Allowed)
}

func TestRequireParsableDate(t *testing.T) {
	assert.NoError(t, RequireParsableDate("2024-01-10", "f"))
	assert.NoError(t, RequireParsableDate("", "f"))

	for _, value := range []string{"10.01.2024", "2024-13-01", "2024-01-10T10:00:00Z", "demain"} {
		err := RequireParsableDate(value, "f")
		var dateErr *MalformedDateError
		require.ErrorAs(t, err, &dateErr, "value %q", value)
	}
}

func TestConditionalPresenceRules(t *testing.T) {
	var cross *CrossFieldError

	assert.NoError(t, RequireAbsentIfOtherAbsent("", "a", "", "b"))
	assert.NoError(t, RequireAbsentIfOtherAbsent("x", "a", "y", "b"))
	require.ErrorAs(t, RequireAbsentIfOtherAbsent("x", "a", "", "b"), &cross)

	assert.NoError(t, RequireAbsentIfOtherEquals("x", "a", "OTHER", "b", "MATCH"))
	require.ErrorAs(t, RequireAbsentIfOtherEquals("x", "a", "MATCH", "b", "MATCH"), &cross)

	assert.NoError(t, RequirePresentIfOtherPresent("x", "a", "y", "b"))
	assert.NoError(t, RequirePresentIfOtherPresent("", "a", "", "b"))
	require.ErrorAs(t, RequirePresentIfOtherPresent("", "a", "y", "b"), &cross)
	assert.Equal(t, "a", cross.Field)
	assert.Equal(t, "b", cross.OtherField)

	assert.NoError(t, RequirePresentIfOtherEquals("", "a", "OTHER", "b", "MATCH"))
	require.ErrorAs(t, RequirePresentIfOtherEquals("", "a", "MATCH", "b", "MATCH"), &cross)
}

func TestRequireActionBlock(t *testing.T) {
	assert.NoError(t, RequireActionBlock("", "", "", ""), "no action at all is fine")
	assert.NoError(t, RequireActionBlock("Payer", "https://example.ch/payer", "PAIEMENT", "2024-02-01"))

	err := RequireActionBlock("Payer", "", "", "")
	var cross *CrossFieldError
	require.ErrorAs(t, err, &cross)
	assert.Equal(t, "urlAction", cross.Field)
	assert.Equal(t, "libelleAction", cross.OtherField)

	err = RequireActionBlock("", "", "PAIEMENT", "2024-02-01")
	require.ErrorAs(t, err, &cross)
	assert.Equal(t, "libelleAction", cross.Field)
	assert.Equal(t, "typeAction", cross.OtherField)
}
