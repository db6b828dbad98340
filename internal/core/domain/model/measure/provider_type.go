package measure

import (
	"fmt"
	"strings"
	"time"

	"agu/internal/core/domain/model/kernel"
	"agu/internal/pkg/errs"
)

// ProviderType tags a provider, and every reading or measure it owns, as
// either gas level data or temperature forecast data.
type ProviderType int

const (
	// Unknown is the zero value and is never valid.
	Unknown ProviderType = iota
	// Gas providers report one instantaneous level per tank.
	Gas
	// Temperature providers report daily min/max forecasts.
	Temperature
)

// Number of integer values a reading of each type carries.
const (
	gasValueCount         = 1
	temperatureValueCount = 2
)

// String returns the stored representation of the type.
func (t ProviderType) String() string {
	switch t {
	case Gas:
		return "GAS"
	case Temperature:
		return "TEMPERATURE"
	case Unknown:
		return "UNKNOWN"
	default:
		return "UNKNOWN"
	}
}

// ParseProviderType is the inverse of String, case-insensitive.
func ParseProviderType(s string) (ProviderType, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "GAS":
		return Gas, nil
	case "TEMPERATURE":
		return Temperature, nil
	default:
		return Unknown, errs.NewValueIsInvalidErrorWithCause("provider type", fmt.Errorf("%q is not GAS or TEMPERATURE", s))
	}
}

// Validate rejects Unknown and out of range values.
func (t ProviderType) Validate() error {
	if t != Gas && t != Temperature {
		return errs.NewValueIsInvalidErrorWithCause("provider type", fmt.Errorf("%d is not a valid provider type", t))
	}
	return nil
}

// ValueCount returns how many integers BuildReading expects for this type.
func (t ProviderType) ValueCount() int {
	switch t {
	case Gas:
		return gasValueCount
	case Temperature:
		return temperatureValueCount
	case Unknown:
		return 0
	default:
		return 0
	}
}

// BuildReading creates one reading of this type. Gas takes exactly one value
// (level); Temperature takes exactly two (min, max).
func (t ProviderType) BuildReading(timestamp, predictionFor time.Time, values ...int) (Reading, error) {
	if err := t.checkValueCount(values); err != nil {
		return nil, err
	}

	switch t {
	case Gas:
		return NewGasReading(timestamp, predictionFor, values[0]), nil
	case Temperature:
		return NewTemperatureReading(timestamp, predictionFor, values[0], values[1]), nil
	case Unknown:
		return nil, t.Validate()
	default:
		return nil, t.Validate()
	}
}

// BuildMeasure creates one measure of this type. tankNumber is only meaningful for Gas.
func (t ProviderType) BuildMeasure(timestamp, predictionFor time.Time, tankNumber int, values ...int) (Measure, error) {
	if err := t.checkValueCount(values); err != nil {
		return nil, err
	}

	switch t {
	case Gas:
		return NewGasMeasure(timestamp, predictionFor, tankNumber, values[0]), nil
	case Temperature:
		return NewTemperatureMeasure(timestamp, predictionFor, values[0], values[1]), nil
	case Unknown:
		return nil, t.Validate()
	default:
		return nil, t.Validate()
	}
}

// NewProvider builds a provider holding readings of this type.
// A reading of another type is a programming error and panics with ErrVariantMismatch.
func (t ProviderType) NewProvider(id kernel.UUID, readings []Reading) *Provider {
	mustBeValid(t)
	p := &Provider{id: id, providerType: t}
	p.AppendReadings(readings...)
	return p
}

// NewMeasureProvider builds a provider holding measures of this type.
// A measure of another type panics with ErrVariantMismatch.
func (t ProviderType) NewMeasureProvider(id kernel.UUID, measures []Measure) *Provider {
	mustBeValid(t)
	p := &Provider{id: id, providerType: t}
	p.AppendMeasures(measures...)
	return p
}

func (t ProviderType) checkValueCount(values []int) error {
	if err := t.Validate(); err != nil {
		return err
	}
	if len(values) != t.ValueCount() {
		return &InvalidValueCountError{ProviderType: t, Expected: t.ValueCount(), Actual: len(values)}
	}
	return nil
}

func mustBeValid(t ProviderType) {
	if err := t.Validate(); err != nil {
		panic(err)
	}
}
