package agu

import (
	"errors"

	"agu/internal/core/domain/model/kernel"
	"agu/internal/core/domain/validation"
	"agu/internal/pkg/errs"
	"agu/internal/pkg/guard"
)

// ErrContactIsNotConstructed is returned when a zero value Contact is used.
var ErrContactIsNotConstructed = errors.New("Contact must be created via NewContact constructor")

// Contact is a person reachable for an AGU, either for emergencies or for
// delivery logistics.
type Contact struct {
	id          kernel.UUID
	name        string
	phone       string
	contactType ContactType
	guard       guard.ConstructorGuard
}

// NewContact validates name, phone and type and builds a Contact.
//
// Example:
//
//	c, err := agu.NewContact(kernel.NewUUID(), "Ana Silva", "912345678", agu.ContactTypeEmergency)
func NewContact(id kernel.UUID, name, phone string, contactType ContactType) (*Contact, error) {
	c := &Contact{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		c.setID(id),
		c.setName(name),
		c.setPhone(phone),
		c.setType(contactType),
	); err != nil {
		return nil, err
	}

	return c, nil
}

// Validate checks that the contact was built through NewContact.
func (c *Contact) Validate() error {
	if c == nil {
		return ErrContactIsNotConstructed
	}
	return c.guard.Validate(ErrContactIsNotConstructed)
}

// ID returns the contact identifier.
func (c *Contact) ID() kernel.UUID {
	return c.id
}

// Name returns the contact name.
func (c *Contact) Name() string {
	return c.name
}

// Phone returns the nine digit phone number.
func (c *Contact) Phone() string {
	return c.phone
}

// Type returns the contact role.
func (c *Contact) Type() ContactType {
	return c.contactType
}

// Conflicts reports whether both contacts share the same phone and type.
func (c *Contact) Conflicts(other *Contact) bool {
	if other == nil {
		return false
	}
	return c.phone == other.phone && c.contactType == other.contactType
}

func (c *Contact) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.id = id
	return nil
}

func (c *Contact) setName(name string) error {
	if !validation.IsNameValid(name) {
		return errs.NewValueIsInvalidError("contact name")
	}
	c.name = name
	return nil
}

func (c *Contact) setPhone(phone string) error {
	if !validation.IsPhoneValid(phone) {
		return errs.NewValueIsInvalidError("phone")
	}
	c.phone = phone
	return nil
}

func (c *Contact) setType(contactType ContactType) error {
	if err := contactType.Validate(); err != nil {
		return err
	}
	c.contactType = contactType
	return nil
}
