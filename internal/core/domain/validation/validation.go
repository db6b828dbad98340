// Package validation holds the pure predicates that decide which AGU, tank,
// contact and provider data is admissible. None of them panic on bad input.
package validation

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/sosodev/duration"
)

const (
	// PhoneLength is the number of digits of a national phone number.
	PhoneLength = 9
	// EICLength is the length of an Energy Identification Code.
	EICLength = 16
	// MaxNameLength bounds names of AGUs, contacts and companies.
	MaxNameLength = 255

	MinLatitude  = -90.0
	MaxLatitude  = 90.0
	MinLongitude = -180.0
	MaxLongitude = 180.0

	MinPercentage = 0
	MaxPercentage = 100
)

// Contact types accepted by IsContactTypeValid.
const (
	ContactTypeEmergency = "EMERGENCY"
	ContactTypeLogistic  = "LOGISTIC"
)

var (
	cuiPattern = regexp.MustCompile(`^[A-Z]{2}\d{16}[A-Z]{2}$`)
	eicPattern = regexp.MustCompile(`^[A-Z0-9-]{16}$`)

	// ErrFrequencyNotPositive is the cause used when a duration parses but is zero or negative.
	ErrFrequencyNotPositive = errors.New("frequency must be positive")
	// ErrFrequencyEmptyTimePart is the cause used for a "T" designator without any time component.
	ErrFrequencyEmptyTimePart = errors.New("time designator without time components")
)

// IsCUIValid reports whether s is a 20 character CUI: two upper-case letters,
// sixteen digits and two upper-case letters.
func IsCUIValid(s string) bool {
	return cuiPattern.MatchString(s)
}

// IsEICValid reports whether s is a 16 character upper-case alphanumeric EIC.
func IsEICValid(s string) bool {
	return eicPattern.MatchString(s)
}

// IsPhoneValid reports whether s consists of exactly nine ASCII digits.
func IsPhoneValid(s string) bool {
	if len(s) != PhoneLength {
		return false
	}
	for i := range len(s) {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// IsContactTypeValid matches s case-insensitively against EMERGENCY and LOGISTIC.
func IsContactTypeValid(s string) bool {
	return strings.EqualFold(s, ContactTypeEmergency) || strings.EqualFold(s, ContactTypeLogistic)
}

// IsNameValid reports whether s is non-blank and at most MaxNameLength runes.
func IsNameValid(s string) bool {
	return strings.TrimSpace(s) != "" && utf8.RuneCountInString(s) <= MaxNameLength
}

// IsPercentageValid reports whether 0 <= n <= 100.
func IsPercentageValid(n int) bool {
	return n >= MinPercentage && n <= MaxPercentage
}

// AreCoordinatesValid reports whether lat is in [-90, 90] and lon in [-180, 180].
func AreCoordinatesValid(lat, lon float64) bool {
	return lat >= MinLatitude && lat <= MaxLatitude && lon >= MinLongitude && lon <= MaxLongitude
}

// AreLevelsValid reports whether min, max and critical are percentages with
// min <= critical <= max. Critical may equal either bound.
func AreLevelsValid(minLevel, maxLevel, critical int) bool {
	return IsPercentageValid(minLevel) &&
		IsPercentageValid(maxLevel) &&
		minLevel <= critical &&
		critical <= maxLevel
}

// FrequencyParseError is returned by ParseFrequency for malformed or non-positive durations.
type FrequencyParseError struct {
	Input string
	Cause error
}

func (e *FrequencyParseError) Error() string {
	return fmt.Sprintf("invalid ISO-8601 frequency %q: %v", e.Input, e.Cause)
}

func (e *FrequencyParseError) Unwrap() error {
	return e.Cause
}

// ParseFrequency parses an ISO-8601 duration such as "PT1H" or "P1D" into a
// time.Duration. Zero and negative durations are rejected because they cannot
// drive a fetch schedule.
func ParseFrequency(s string) (time.Duration, error) {
	if strings.HasSuffix(s, "T") {
		return 0, &FrequencyParseError{Input: s, Cause: ErrFrequencyEmptyTimePart}
	}

	d, err := duration.Parse(s)
	if err != nil {
		return 0, &FrequencyParseError{Input: s, Cause: err}
	}

	value := d.ToTimeDuration()
	if d.Negative || value <= 0 {
		return 0, &FrequencyParseError{Input: s, Cause: ErrFrequencyNotPositive}
	}

	return value, nil
}
