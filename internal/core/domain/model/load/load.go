package load

import (
	"errors"
	"fmt"
	"time"

	"agu/internal/core/domain/model/kernel"
	"agu/internal/pkg/errs"
	"agu/internal/pkg/guard"
)

var (
	// ErrLoadIsNotConstructed is returned when a zero value load is used.
	ErrLoadIsNotConstructed = errors.New("load must be created via NewScheduledLoad constructor")
	// ErrLoadAlreadyDelivered is returned when delivering a load twice.
	ErrLoadAlreadyDelivered = errors.New("load already delivered")
)

// Slot is the uniqueness key of a load.
type Slot struct {
	AGUCui    kernel.CUI
	Date      time.Time
	TimeOfDay TimeOfDay
}

func (s Slot) String() string {
	return fmt.Sprintf("%s@%s/%s", s.AGUCui, s.Date.Format(time.DateOnly), s.TimeOfDay)
}

// Day truncates t to midnight UTC of its calendar day.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ScheduledLoad is a delivery planned for a slot, either produced by the
// prediction job or entered manually.
type ScheduledLoad struct {
	id          kernel.UUID
	aguCui      kernel.CUI
	date        time.Time
	timeOfDay   TimeOfDay
	amount      int
	isManual    bool
	isConfirmed bool
	delivery    *Delivery
	guard       guard.ConstructorGuard
}

// Delivery records which transport company unloaded the load and when.
type Delivery struct {
	TransportCompanyID kernel.UUID
	UnloadTimestamp    time.Time
}

// NewScheduledLoad builds an unconfirmed load. The date is truncated to the day.
func NewScheduledLoad(
	id kernel.UUID,
	aguCui kernel.CUI,
	date time.Time,
	timeOfDay TimeOfDay,
	amount int,
	isManual bool,
) (*ScheduledLoad, error) {
	l := &ScheduledLoad{
		date:     Day(date),
		isManual: isManual,
		guard:    guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		l.setID(id),
		l.setAGU(aguCui),
		l.setTimeOfDay(timeOfDay),
		l.setAmount(amount),
	); err != nil {
		return nil, err
	}

	return l, nil
}

// RestoreScheduledLoad rebuilds a load from storage, delivered or not.
func RestoreScheduledLoad(
	id kernel.UUID,
	aguCui kernel.CUI,
	date time.Time,
	timeOfDay TimeOfDay,
	amount int,
	isManual, isConfirmed bool,
	delivery *Delivery,
) (*ScheduledLoad, error) {
	l, err := NewScheduledLoad(id, aguCui, date, timeOfDay, amount, isManual)
	if err != nil {
		return nil, err
	}

	l.isConfirmed = isConfirmed
	if delivery != nil {
		if err := l.Deliver(delivery.TransportCompanyID, delivery.UnloadTimestamp); err != nil {
			return nil, err
		}
	}
	return l, nil
}

func (l *ScheduledLoad) Validate() error {
	if l == nil {
		return ErrLoadIsNotConstructed
	}
	return l.guard.Validate(ErrLoadIsNotConstructed)
}

func (l *ScheduledLoad) ID() kernel.UUID {
	return l.id
}

func (l *ScheduledLoad) AGUCui() kernel.CUI {
	return l.aguCui
}

// Date returns the delivery day at midnight UTC.
func (l *ScheduledLoad) Date() time.Time {
	return l.date
}

func (l *ScheduledLoad) TimeOfDay() TimeOfDay {
	return l.timeOfDay
}

// Amount returns the planned volume in cubic metres.
func (l *ScheduledLoad) Amount() int {
	return l.amount
}

func (l *ScheduledLoad) IsManual() bool {
	return l.isManual
}

func (l *ScheduledLoad) IsConfirmed() bool {
	return l.isConfirmed
}

// Slot returns the uniqueness key of the load.
func (l *ScheduledLoad) Slot() Slot {
	return Slot{AGUCui: l.aguCui, Date: l.date, TimeOfDay: l.timeOfDay}
}

// Confirm marks the load as confirmed with the transport company.
func (l *ScheduledLoad) Confirm() {
	l.isConfirmed = true
}

// MoveTo reschedules the load to another day, keeping the time of day.
func (l *ScheduledLoad) MoveTo(date time.Time) {
	l.date = Day(date)
}

// Delivered returns the delivery record and whether the load was delivered.
func (l *ScheduledLoad) Delivered() (Delivery, bool) {
	if l.delivery == nil {
		return Delivery{}, false
	}
	return *l.delivery, true
}

// Deliver records the unload. A load can only be delivered once.
func (l *ScheduledLoad) Deliver(transportCompanyID kernel.UUID, unloadTimestamp time.Time) error {
	if l.delivery != nil {
		return ErrLoadAlreadyDelivered
	}
	if err := transportCompanyID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("transport company", err)
	}
	if unloadTimestamp.IsZero() {
		return errs.NewValueIsRequiredError("unload timestamp")
	}

	l.delivery = &Delivery{TransportCompanyID: transportCompanyID, UnloadTimestamp: unloadTimestamp.UTC()}
	return nil
}

func (l *ScheduledLoad) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	l.id = id
	return nil
}

func (l *ScheduledLoad) setAGU(cui kernel.CUI) error {
	if err := cui.Validate(); err != nil {
		return err
	}
	l.aguCui = cui
	return nil
}

func (l *ScheduledLoad) setTimeOfDay(timeOfDay TimeOfDay) error {
	if err := timeOfDay.Validate(); err != nil {
		return err
	}
	l.timeOfDay = timeOfDay
	return nil
}

func (l *ScheduledLoad) setAmount(amount int) error {
	if amount <= 0 {
		return errs.NewValueIsOutOfRangeError("amount", amount, 1, "unbounded")
	}
	l.amount = amount
	return nil
}
