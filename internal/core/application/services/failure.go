package services

import (
	"errors"
	"fmt"

	"agu/internal/core/domain/model/kernel"
	"agu/internal/pkg/errs"
)

// Category groups error kinds by how a caller should react to them.
type Category int

const (
	CategoryInvalid Category = iota + 1
	CategoryNotFound
	CategoryConflict
	CategoryUnavailable
)

func (c Category) String() string {
	switch c {
	case CategoryInvalid:
		return "invalid"
	case CategoryNotFound:
		return "not found"
	case CategoryConflict:
		return "conflict"
	case CategoryUnavailable:
		return "unavailable"
	default:
		return fmt.Sprintf("Category(%d)", int(c))
	}
}

// Failure is implemented by every operation error kind.
type Failure interface {
	fmt.Stringer
	Category() Category
}

// kind describes one constant of an error enumeration.
type kind struct {
	name     string
	category Category
}

func lookup(kinds []kind, i int) kind {
	if i <= 0 || i > len(kinds) {
		return kind{name: fmt.Sprintf("Unknown(%d)", i), category: CategoryInvalid}
	}
	return kinds[i-1]
}

func isNotFound(err error) bool {
	return errors.Is(err, errs.ErrObjectNotFound)
}

// parseCUI treats a malformed identifier like an unknown one.
func parseCUI(s string) (kernel.CUI, bool) {
	cui, err := kernel.NewCUI(s)
	return cui, err == nil
}
