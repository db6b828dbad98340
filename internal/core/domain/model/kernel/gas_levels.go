package kernel

import (
	"fmt"

	"agu/internal/core/domain/validation"
	"agu/internal/pkg/errs"
	"agu/internal/pkg/guard"
)

// ErrGasLevelsAreNotConstructed is returned when using a zero value GasLevels.
var ErrGasLevelsAreNotConstructed = errs.NewValueIsRequiredError(
	"gas levels must be created via NewGasLevels constructor")

// GasLevels is the min/max/critical percentage triple shared by AGUs and tanks.
//
// Invariant: 0 <= min <= critical <= max <= 100.
type GasLevels struct { //nolint:recvcheck //using for validation
	minLevel int
	maxLevel int
	critical int
	guard    guard.ConstructorGuard
}

// NewGasLevels validates and builds a GasLevels value.
func NewGasLevels(minLevel, maxLevel, critical int) (GasLevels, error) {
	if !validation.AreLevelsValid(minLevel, maxLevel, critical) {
		return GasLevels{}, errs.NewValueIsInvalidErrorWithCause(
			"gas levels",
			fmt.Errorf("expected 0 <= min(%d) <= critical(%d) <= max(%d) <= 100", minLevel, critical, maxLevel),
		)
	}

	return GasLevels{
		minLevel: minLevel,
		maxLevel: maxLevel,
		critical: critical,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// Validate checks that the value was built through NewGasLevels.
func (g GasLevels) Validate() error {
	return g.guard.Validate(ErrGasLevelsAreNotConstructed)
}

// Min returns the minimum level.
func (g GasLevels) Min() int {
	return g.minLevel
}

// Max returns the maximum level.
func (g GasLevels) Max() int {
	return g.maxLevel
}

// Critical returns the level under which an alert is raised.
func (g GasLevels) Critical() int {
	return g.critical
}

// IsCritical reports whether level is at or below the critical threshold.
func (g GasLevels) IsCritical(level int) bool {
	return level <= g.critical
}

func (g GasLevels) String() string {
	return fmt.Sprintf("GasLevels(min=%d,max=%d,critical=%d)", g.minLevel, g.maxLevel, g.critical)
}
