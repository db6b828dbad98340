package kernel

import (
	"fmt"

	"agu/internal/core/domain/validation"
	"agu/internal/pkg/errs"
)

// CUI is the canonical identifier of an AGU: two letters, sixteen digits, two letters.
// The zero value is invalid.
type CUI struct {
	value string
}

// NewCUI parses s into a CUI.
func NewCUI(s string) (CUI, error) {
	if !validation.IsCUIValid(s) {
		return CUI{}, errs.NewValueIsInvalidErrorWithCause("cui", fmt.Errorf("%q does not match AA0000000000000000AA", s))
	}
	return CUI{value: s}, nil
}

// MustCUI is NewCUI for literals known to be valid. It panics otherwise.
func MustCUI(s string) CUI {
	cui, err := NewCUI(s)
	if err != nil {
		panic(err)
	}
	return cui
}

// Validate rejects the zero value.
func (c CUI) Validate() error {
	if c.value == "" {
		return errs.NewValueIsRequiredError("cui")
	}
	return nil
}

func (c CUI) String() string {
	return c.value
}
