package measure

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidValueCount is wrapped by InvalidValueCountError.
	ErrInvalidValueCount = errors.New("invalid value count")
	// ErrVariantMismatch reports a reading or measure whose type differs from the expected one.
	ErrVariantMismatch = errors.New("measurement variant mismatch")
	// ErrNoReadings is returned by LatestReading and LatestMeasure on an empty provider.
	ErrNoReadings = errors.New("provider has no readings")
)

// InvalidValueCountError is returned when BuildReading or BuildMeasure receive
// a number of values that does not match the provider type.
type InvalidValueCountError struct {
	ProviderType ProviderType
	Expected     int
	Actual       int
}

func (e *InvalidValueCountError) Error() string {
	return fmt.Sprintf("%s: %s expects %d value(s), got %d", ErrInvalidValueCount, e.ProviderType, e.Expected, e.Actual)
}

func (e *InvalidValueCountError) Unwrap() error {
	return ErrInvalidValueCount
}

// VariantMismatchError reports the element at Index having type Actual instead of Expected.
type VariantMismatchError struct {
	Expected ProviderType
	Actual   ProviderType
	Index    int
}

func (e *VariantMismatchError) Error() string {
	return fmt.Sprintf("%s: element %d is %s, expected %s", ErrVariantMismatch, e.Index, e.Actual, e.Expected)
}

func (e *VariantMismatchError) Unwrap() error {
	return ErrVariantMismatch
}
