package company

import (
	"errors"
	"strings"

	"agu/internal/core/domain/model/kernel"
	"agu/internal/core/domain/validation"
	"agu/internal/pkg/errs"
	"agu/internal/pkg/guard"
)

// ErrTransportCompanyIsNotConstructed is returned when a zero value TransportCompany is used.
var ErrTransportCompanyIsNotConstructed = errors.New(
	"TransportCompany must be created via NewTransportCompany constructor")

// TransportCompany delivers gas to the AGUs it is associated with.
type TransportCompany struct {
	id    kernel.UUID
	name  string
	guard guard.ConstructorGuard
}

// NewTransportCompany builds a TransportCompany with a trimmed, non-blank name.
func NewTransportCompany(id kernel.UUID, name string) (*TransportCompany, error) {
	c := &TransportCompany{
		guard: guard.NewConstructorGuard(),
	}

	if err := id.Validate(); err != nil {
		return nil, err
	}
	if !validation.IsNameValid(name) {
		return nil, errs.NewValueIsInvalidError("transport company name")
	}

	c.id = id
	c.name = strings.TrimSpace(name)
	return c, nil
}

func (c *TransportCompany) Validate() error {
	if c == nil {
		return ErrTransportCompanyIsNotConstructed
	}
	return c.guard.Validate(ErrTransportCompanyIsNotConstructed)
}

func (c *TransportCompany) ID() kernel.UUID {
	return c.id
}

func (c *TransportCompany) Name() string {
	return c.name
}

// IsEqual compares companies by id.
func (c *TransportCompany) IsEqual(other *TransportCompany) bool {
	if other == nil {
		return false
	}
	return c.id.IsEqual(other.id)
}
