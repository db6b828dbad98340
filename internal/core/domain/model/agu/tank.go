package agu

import (
	"errors"

	"agu/internal/core/domain/model/kernel"
	"agu/internal/core/domain/validation"
	"agu/internal/pkg/errs"
	"agu/internal/pkg/guard"
)

// ErrTankIsNotConstructed is returned when a zero value Tank is used.
var ErrTankIsNotConstructed = errors.New("Tank must be created via NewTank constructor")

// Tank is one physical reservoir of an AGU.
//
// Business rules:
//   - number is positive and unique inside the owning AGU
//   - levels follow the GasLevels invariant
//   - loadVolume is a percentage of the capacity
//   - capacity is positive, correctionFactor is not negative
type Tank struct {
	number           int
	levels           kernel.GasLevels
	loadVolume       int
	capacity         int
	correctionFactor float64
	guard            guard.ConstructorGuard
}

// NewTank builds a Tank, aggregating every failed rule into one error.
func NewTank(number int, levels kernel.GasLevels, loadVolume, capacity int, correctionFactor float64) (*Tank, error) {
	t := &Tank{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		t.setNumber(number),
		t.setLevels(levels),
		t.setLoadVolume(loadVolume),
		t.setCapacity(capacity),
		t.setCorrectionFactor(correctionFactor),
	); err != nil {
		return nil, err
	}

	return t, nil
}

// Validate checks that the tank was built through NewTank.
func (t *Tank) Validate() error {
	if t == nil {
		return ErrTankIsNotConstructed
	}
	return t.guard.Validate(ErrTankIsNotConstructed)
}

// Number returns the tank number inside its AGU.
func (t *Tank) Number() int {
	return t.number
}

// Levels returns the tank gas levels.
func (t *Tank) Levels() kernel.GasLevels {
	return t.levels
}

// LoadVolume returns the percentage filled by one delivery.
func (t *Tank) LoadVolume() int {
	return t.loadVolume
}

// Capacity returns the tank capacity in cubic metres.
func (t *Tank) Capacity() int {
	return t.capacity
}

// CorrectionFactor returns the factor applied to raw sensor levels.
func (t *Tank) CorrectionFactor() float64 {
	return t.correctionFactor
}

// Update replaces the mutable attributes. The tank is left untouched when any
// of the new values is invalid.
func (t *Tank) Update(levels kernel.GasLevels, loadVolume, capacity int, correctionFactor float64) error {
	next := *t
	if err := errors.Join(
		next.setLevels(levels),
		next.setLoadVolume(loadVolume),
		next.setCapacity(capacity),
		next.setCorrectionFactor(correctionFactor),
	); err != nil {
		return err
	}

	*t = next
	return nil
}

func (t *Tank) setNumber(number int) error {
	if number <= 0 {
		return errs.NewValueIsOutOfRangeError("tank number", number, 1, "unbounded")
	}
	t.number = number
	return nil
}

func (t *Tank) setLevels(levels kernel.GasLevels) error {
	if err := levels.Validate(); err != nil {
		return err
	}
	t.levels = levels
	return nil
}

func (t *Tank) setLoadVolume(loadVolume int) error {
	if !validation.IsPercentageValid(loadVolume) {
		return errs.NewValueIsOutOfRangeError(
			"load volume", loadVolume, validation.MinPercentage, validation.MaxPercentage)
	}
	t.loadVolume = loadVolume
	return nil
}

func (t *Tank) setCapacity(capacity int) error {
	if capacity <= 0 {
		return errs.NewValueIsOutOfRangeError("capacity", capacity, 1, "unbounded")
	}
	t.capacity = capacity
	return nil
}

func (t *Tank) setCorrectionFactor(correctionFactor float64) error {
	if correctionFactor < 0 {
		return errs.NewValueIsOutOfRangeError("correction factor", correctionFactor, 0, "unbounded")
	}
	t.correctionFactor = correctionFactor
	return nil
}
