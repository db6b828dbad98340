// Package guard provides the constructor guard used by value objects, entities
// and service inputs to reject zero-value instances.
package guard

import "errors"

// ErrDefaultConstructorGuard is returned by ConstructorGuard.Validate when the
// object was not constructed and no specific error was supplied.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard marks a struct as built through its constructor.
// Embedding it lets Validate distinguish a constructed value from a zero value.
//
// Example usage:
//
//	var ErrTankIsNotConstructed = errors.New("Tank must be created via NewTank")
//
//	type Tank struct {
//	    number int
//	    guard  guard.ConstructorGuard
//	}
//
//	func NewTank(number int) (Tank, error) {
//	    if number <= 0 {
//	        return Tank{}, errors.New("number must be positive")
//	    }
//	    return Tank{number: number, guard: guard.NewConstructorGuard()}, nil
//	}
//
//	func (t Tank) Validate() error {
//	    return t.guard.Validate(ErrTankIsNotConstructed)
//	}
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard returns a guard that reports the owner as constructed.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate returns validationError (or ErrDefaultConstructorGuard when it is nil)
// if the guard is a zero value, nil otherwise.
func (g ConstructorGuard) Validate(validationError error) error {
	if validationError == nil {
		validationError = ErrDefaultConstructorGuard
	}
	if !g.isConstructed {
		return validationError
	}
	return nil
}
