package validation_test

import (
	"strings"
	"testing"
	"time"

	"agu/internal/core/domain/validation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsCUIValid(t *testing.T) {
	testCases := []struct {
		name  string
		cui   string
		valid bool
	}{
		{name: "valid", cui: "PT1234567890123456AB", valid: true},
		{name: "valid other prefix", cui: "ES0000000000000000ZZ", valid: true},
		{name: "empty", cui: "", valid: false},
		{name: "lower case letters", cui: "pt1234567890123456ab", valid: false},
		{name: "mixed case suffix", cui: "PT1234567890123456Ab", valid: false},
		{name: "too short", cui: "PT123456789012345AB", valid: false},
		{name: "too long", cui: "PT12345678901234567AB", valid: false},
		{name: "letter in digits", cui: "PT12345678901234X6AB", valid: false},
		{name: "digit in prefix", cui: "P11234567890123456AB", valid: false},
		{name: "trailing space", cui: "PT1234567890123456AB ", valid: false},
		{name: "non ascii digits", cui: "PT１234567890123456AB", valid: false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.valid, validation.IsCUIValid(tc.cui))
		})
	}
}

func TestIsCUIValid_AllLetterDigitCombinations(t *testing.T) {
	digits := strings.Repeat("7", 16)
	for c := 'A'; c <= 'Z'; c++ {
		letters := string([]rune{c, c})
		assert.True(t, validation.IsCUIValid(letters+digits+letters))
		assert.False(t, validation.IsCUIValid(strings.ToLower(letters)+digits+letters))
	}
}

func TestIsEICValid(t *testing.T) {
	assert.True(t, validation.IsEICValid("23X-EIC-0000001A"))
	assert.True(t, validation.IsEICValid("1234567890ABCDEF"))
	assert.False(t, validation.IsEICValid(""))
	assert.False(t, validation.IsEICValid("1234567890abcdef"))
	assert.False(t, validation.IsEICValid("1234567890ABCDE"))
}

func TestIsPhoneValid(t *testing.T) {
	assert.True(t, validation.IsPhoneValid("912345678"))
	assert.True(t, validation.IsPhoneValid("000000000"))
	assert.False(t, validation.IsPhoneValid(""))
	assert.False(t, validation.IsPhoneValid("91234567"))
	assert.False(t, validation.IsPhoneValid("9123456789"))
	assert.False(t, validation.IsPhoneValid("91234567a"))
	assert.False(t, validation.IsPhoneValid("+35191234"))
	assert.False(t, validation.IsPhoneValid("٩١٢٣٤٥٦٧٨"))
}

func TestIsContactTypeValid(t *testing.T) {
	for _, s := range []string{"EMERGENCY", "emergency", "Logistic", "LOGISTIC"} {
		assert.True(t, validation.IsContactTypeValid(s), s)
	}
	for _, s := range []string{"", "URGENT", "emergency ", "LOGISTICS"} {
		assert.False(t, validation.IsContactTypeValid(s), s)
	}
}

func TestIsNameValid(t *testing.T) {
	assert.True(t, validation.IsNameValid("Galp Gás Natural"))
	assert.False(t, validation.IsNameValid(""))
	assert.False(t, validation.IsNameValid("   "))
	assert.True(t, validation.IsNameValid(strings.Repeat("é", validation.MaxNameLength)))
	assert.False(t, validation.IsNameValid(strings.Repeat("a", validation.MaxNameLength+1)))
}

func TestIsPercentageValid(t *testing.T) {
	for n := -5; n <= 105; n++ {
		assert.Equal(t, n >= 0 && n <= 100, validation.IsPercentageValid(n), n)
	}
}

func TestAreCoordinatesValid(t *testing.T) {
	testCases := []struct {
		name     string
		lat, lon float64
		valid    bool
	}{
		{name: "origin", lat: 0, lon: 0, valid: true},
		{name: "lisbon", lat: 38.7223, lon: -9.1393, valid: true},
		{name: "bounds", lat: -90, lon: 180, valid: true},
		{name: "other bounds", lat: 90, lon: -180, valid: true},
		{name: "latitude too high", lat: 90.0001, lon: 0, valid: false},
		{name: "latitude too low", lat: -91, lon: 0, valid: false},
		{name: "longitude too high", lat: 0, lon: 180.5, valid: false},
		{name: "longitude too low", lat: 0, lon: -181, valid: false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.valid, validation.AreCoordinatesValid(tc.lat, tc.lon))
		})
	}
}

func TestAreLevelsValid_MatchesDefinition(t *testing.T) {
	values := []int{-1, 0, 1, 10, 50, 90, 99, 100, 101}
	for _, minLevel := range values {
		for _, maxLevel := range values {
			for _, critical := range values {
				expected := minLevel >= 0 && minLevel <= 100 &&
					maxLevel >= 0 && maxLevel <= 100 &&
					minLevel <= critical && critical <= maxLevel
				assert.Equal(t, expected, validation.AreLevelsValid(minLevel, maxLevel, critical),
					"min=%d max=%d critical=%d", minLevel, maxLevel, critical)
			}
		}
	}
}

func TestAreLevelsValid_Examples(t *testing.T) {
	assert.True(t, validation.AreLevelsValid(10, 90, 50))
	assert.True(t, validation.AreLevelsValid(10, 90, 10))
	assert.True(t, validation.AreLevelsValid(10, 90, 90))
	assert.False(t, validation.AreLevelsValid(10, 90, 95))
	assert.False(t, validation.AreLevelsValid(10, 90, 5))
	assert.False(t, validation.AreLevelsValid(60, 40, 50))
}

func TestParseFrequency(t *testing.T) {
	testCases := []struct {
		input    string
		expected time.Duration
	}{
		{input: "PT1H", expected: time.Hour},
		{input: "PT15M", expected: 15 * time.Minute},
		{input: "PT30S", expected: 30 * time.Second},
		{input: "P1D", expected: 24 * time.Hour},
		{input: "P1DT12H", expected: 36 * time.Hour},
	}

	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			d, err := validation.ParseFrequency(tc.input)
			require.NoError(t, err)
			assert.Equal(t, tc.expected, d)
		})
	}
}

func TestParseFrequency_Rejects(t *testing.T) {
	for _, input := range []string{"", "1H", "hourly", "PT", "PT0S", "PTXH", "P1DT", "P1WT"} {
		t.Run(input, func(t *testing.T) {
			d, err := validation.ParseFrequency(input)
			require.Error(t, err)
			assert.Zero(t, d)

			var parseErr *validation.FrequencyParseError
			require.ErrorAs(t, err, &parseErr)
			assert.Equal(t, input, parseErr.Input)
		})
	}
}

func TestParseFrequency_EmptyTimePart(t *testing.T) {
	// Act
	d, err := validation.ParseFrequency("P1DT")

	// Assert
	require.ErrorIs(t, err, validation.ErrFrequencyEmptyTimePart)
	assert.Zero(t, d)
}
