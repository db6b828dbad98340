package kernel

import (
	"errors"
	"fmt"
	"strings"

	"agu/internal/core/domain/validation"
	"agu/internal/pkg/errs"
	"agu/internal/pkg/guard"
)

// ErrLocationIsNotConstructed is returned when attempting to use an improperly initialized Location.
var ErrLocationIsNotConstructed = errs.NewValueIsRequiredError(
	"location must be created via NewLocation constructor")

// Location is the named geographic position of an AGU.
// It is an immutable value object; latitude is within [-90, 90] and longitude within [-180, 180].
//
// Example:
//
//	loc, err := kernel.NewLocation("Braga", 41.5454, -8.4265)
//	if err != nil {
//	    // Handle validation error
//	}
//	fmt.Println(loc) // Braga(41.5454,-8.4265)
type Location struct { //nolint:recvcheck //using for validation
	name      string
	latitude  float64
	longitude float64
	guard     guard.ConstructorGuard
}

// NewLocation creates a Location. The name is required and the coordinates must be in range.
func NewLocation(name string, latitude, longitude float64) (Location, error) {
	loc := Location{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		loc.setName(name),
		loc.setLatitude(latitude),
		loc.setLongitude(longitude),
	); err != nil {
		return Location{}, err
	}

	return loc, nil
}

// Validate checks if the Location was properly constructed using NewLocation.
func (l Location) Validate() error {
	return l.guard.Validate(ErrLocationIsNotConstructed)
}

// Name returns the place name.
func (l Location) Name() string {
	return l.name
}

// Latitude returns the latitude in decimal degrees.
func (l Location) Latitude() float64 {
	return l.latitude
}

// Longitude returns the longitude in decimal degrees.
func (l Location) Longitude() float64 {
	return l.longitude
}

// String implements fmt.Stringer.
func (l Location) String() string {
	return fmt.Sprintf("%s(%g,%g)", l.name, l.latitude, l.longitude)
}

// IsEqual compares two constructed locations.
func (l Location) IsEqual(other Location) (bool, error) {
	if err := errors.Join(l.Validate(), other.Validate()); err != nil {
		return false, err
	}

	return l == other, nil
}

func (l *Location) setName(name string) error {
	if strings.TrimSpace(name) == "" {
		return errs.NewValueIsRequiredError("location name")
	}

	l.name = name
	return nil
}

func (l *Location) setLatitude(latitude float64) error {
	if latitude < validation.MinLatitude || latitude > validation.MaxLatitude {
		return errs.NewValueIsOutOfRangeError("latitude", latitude, validation.MinLatitude, validation.MaxLatitude)
	}

	l.latitude = latitude
	return nil
}

func (l *Location) setLongitude(longitude float64) error {
	if longitude < validation.MinLongitude || longitude > validation.MaxLongitude {
		return errs.NewValueIsOutOfRangeError(
			"longitude", longitude, validation.MinLongitude, validation.MaxLongitude)
	}

	l.longitude = longitude
	return nil
}
