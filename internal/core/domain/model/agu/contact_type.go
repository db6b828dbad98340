package agu

import (
	"strings"

	"agu/internal/core/domain/validation"
	"agu/internal/pkg/errs"
)

// ContactType is the closed set of roles a contact can have for an AGU.
type ContactType int

const (
	ContactTypeUnknown ContactType = iota
	ContactTypeEmergency
	ContactTypeLogistic
)

// ParseContactType accepts EMERGENCY or LOGISTIC in any letter case.
func ParseContactType(s string) (ContactType, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case validation.ContactTypeEmergency:
		return ContactTypeEmergency, nil
	case validation.ContactTypeLogistic:
		return ContactTypeLogistic, nil
	default:
		return ContactTypeUnknown, errs.NewValueIsInvalidError("contact type")
	}
}

func (t ContactType) String() string {
	switch t {
	case ContactTypeEmergency:
		return validation.ContactTypeEmergency
	case ContactTypeLogistic:
		return validation.ContactTypeLogistic
	default:
		return "UNKNOWN"
	}
}

// Validate rejects ContactTypeUnknown and values outside the enumeration.
func (t ContactType) Validate() error {
	if t != ContactTypeEmergency && t != ContactTypeLogistic {
		return errs.NewValueIsInvalidError("contact type")
	}
	return nil
}
