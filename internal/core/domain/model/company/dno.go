package company

import (
	"errors"
	"strings"

	"agu/internal/core/domain/model/kernel"
	"agu/internal/core/domain/validation"
	"agu/internal/pkg/errs"
	"agu/internal/pkg/guard"
)

// ErrDNOIsNotConstructed is returned when a zero value DNO is used.
var ErrDNOIsNotConstructed = errors.New("DNO must be created via NewDNO constructor")

// DNO is a distribution network operator. Region is optional.
type DNO struct {
	id     kernel.UUID
	name   string
	region string
	guard  guard.ConstructorGuard
}

// NewDNO builds a DNO. An empty region means the DNO is not tied to one.
func NewDNO(id kernel.UUID, name, region string) (*DNO, error) {
	d := &DNO{
		region: strings.TrimSpace(region),
		guard:  guard.NewConstructorGuard(),
	}

	if err := errors.Join(d.setID(id), d.setName(name)); err != nil {
		return nil, err
	}

	return d, nil
}

func (d *DNO) Validate() error {
	if d == nil {
		return ErrDNOIsNotConstructed
	}
	return d.guard.Validate(ErrDNOIsNotConstructed)
}

func (d *DNO) ID() kernel.UUID {
	return d.id
}

func (d *DNO) Name() string {
	return d.name
}

// Region returns the region served and whether one is set.
func (d *DNO) Region() (string, bool) {
	return d.region, d.region != ""
}

func (d *DNO) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	d.id = id
	return nil
}

func (d *DNO) setName(name string) error {
	if !validation.IsNameValid(name) {
		return errs.NewValueIsInvalidError("dno name")
	}
	d.name = strings.TrimSpace(name)
	return nil
}
