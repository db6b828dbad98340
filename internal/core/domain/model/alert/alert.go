// Package alert models notices raised for an AGU, for example a projected
// level under the critical threshold. An alert can only move from unresolved
// to resolved.
package alert

import (
	"errors"
	"strings"
	"time"

	"agu/internal/core/domain/model/kernel"
	"agu/internal/pkg/errs"
	"agu/internal/pkg/guard"
)

// MaxTitleLength bounds the alert title.
const MaxTitleLength = 120

// ErrAlertIsNotConstructed is returned when a zero value Alert is used.
var ErrAlertIsNotConstructed = errors.New("Alert must be created via NewAlert constructor")

// Alert is a notice about one AGU.
type Alert struct {
	id         kernel.UUID
	aguCui     kernel.CUI
	timestamp  time.Time
	title      string
	message    string
	isResolved bool
	guard      guard.ConstructorGuard
}

// NewAlert creates an unresolved alert stamped with timestamp.
func NewAlert(id kernel.UUID, aguCui kernel.CUI, timestamp time.Time, title, message string) (*Alert, error) {
	a := &Alert{
		message: message,
		guard:   guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		a.setID(id),
		a.setAGU(aguCui),
		a.setTimestamp(timestamp),
		a.setTitle(title),
	); err != nil {
		return nil, err
	}

	return a, nil
}

// RestoreAlert rebuilds an alert from storage.
func RestoreAlert(
	id kernel.UUID,
	aguCui kernel.CUI,
	timestamp time.Time,
	title, message string,
	isResolved bool,
) (*Alert, error) {
	a, err := NewAlert(id, aguCui, timestamp, title, message)
	if err != nil {
		return nil, err
	}
	a.isResolved = isResolved
	return a, nil
}

func (a *Alert) Validate() error {
	if a == nil {
		return ErrAlertIsNotConstructed
	}
	return a.guard.Validate(ErrAlertIsNotConstructed)
}

func (a *Alert) ID() kernel.UUID {
	return a.id
}

func (a *Alert) AGUCui() kernel.CUI {
	return a.aguCui
}

func (a *Alert) Timestamp() time.Time {
	return a.timestamp
}

func (a *Alert) Title() string {
	return a.title
}

func (a *Alert) Message() string {
	return a.message
}

func (a *Alert) IsResolved() bool {
	return a.isResolved
}

// Resolve marks the alert as resolved. It reports whether the state changed,
// so resolving twice is a no-op.
func (a *Alert) Resolve() bool {
	if a.isResolved {
		return false
	}
	a.isResolved = true
	return true
}

func (a *Alert) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	a.id = id
	return nil
}

func (a *Alert) setAGU(cui kernel.CUI) error {
	if err := cui.Validate(); err != nil {
		return err
	}
	a.aguCui = cui
	return nil
}

func (a *Alert) setTimestamp(ts time.Time) error {
	if ts.IsZero() {
		return errs.NewValueIsRequiredError("timestamp")
	}
	a.timestamp = ts.UTC()
	return nil
}

func (a *Alert) setTitle(title string) error {
	title = strings.TrimSpace(title)
	if title == "" || len([]rune(title)) > MaxTitleLength {
		return errs.NewValueIsInvalidError("title")
	}
	a.title = title
	return nil
}
