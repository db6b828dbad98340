package agu

import (
	"errors"
	"slices"

	"agu/internal/core/domain/model/kernel"
	"agu/internal/core/domain/validation"
	"agu/internal/pkg/errs"
	"agu/internal/pkg/guard"
)

// Domain errors for AGU operations.
var (
	// ErrAGUIsNotConstructed is returned when a zero value AGU is used.
	ErrAGUIsNotConstructed = errors.New("AGU must be created via NewAGU constructor")
	// ErrTankNotFound is returned when a tank number does not belong to the AGU.
	ErrTankNotFound = errors.New("tank not found")
	// ErrContactNotFound is returned when a contact id does not belong to the AGU.
	ErrContactNotFound = errors.New("contact not found")
)

// AGU is the aggregate root for one Autonomous Gas Unit. It owns its tanks and
// contacts; everything else (DNO, providers, transport companies) is referenced.
//
// Business rules:
//   - cui and eic are well formed
//   - name is not blank
//   - levels satisfy 0 <= min <= critical <= max <= 100
//   - loadVolume is a percentage
//   - tank numbers are unique
//   - (phone, type) is unique among contacts
//
// Example usage:
//
//	levels, _ := kernel.NewGasLevels(20, 85, 30)
//	loc, _ := kernel.NewLocation("Braga", 41.55, -8.42)
//	a, err := agu.NewAGU(cui, "PT01-AGU-0000012", "Braga Norte", levels, 40, 1.0, loc, dnoID)
//	if err != nil {
//	    // Handle construction error
//	}
type AGU struct {
	cui              kernel.CUI
	eic              string
	name             string
	levels           kernel.GasLevels
	loadVolume       int
	correctionFactor float64
	location         kernel.Location
	dnoID            kernel.UUID
	isFavourite      bool
	isActive         bool
	notes            string
	image            []byte
	tanks            []*Tank
	contacts         []*Contact
	guard            guard.ConstructorGuard
}

// NewAGU creates an active, non-favourite AGU without tanks or contacts.
func NewAGU(
	cui kernel.CUI,
	eic string,
	name string,
	levels kernel.GasLevels,
	loadVolume int,
	correctionFactor float64,
	location kernel.Location,
	dnoID kernel.UUID,
) (*AGU, error) {
	a := &AGU{
		isActive: true,
		guard:    guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		a.setCUI(cui),
		a.setEIC(eic),
		a.setName(name),
		a.setLevels(levels),
		a.setLoadVolume(loadVolume),
		a.setCorrectionFactor(correctionFactor),
		a.setLocation(location),
		a.setDNO(dnoID),
	); err != nil {
		return nil, err
	}

	return a, nil
}

// RestoreAGU rebuilds an AGU from storage, including its flags, notes, image,
// tanks and contacts. The ownership invariants are checked again.
func RestoreAGU(
	cui kernel.CUI,
	eic string,
	name string,
	levels kernel.GasLevels,
	loadVolume int,
	correctionFactor float64,
	location kernel.Location,
	dnoID kernel.UUID,
	isFavourite, isActive bool,
	notes string,
	image []byte,
	tanks []*Tank,
	contacts []*Contact,
) (*AGU, error) {
	a, err := NewAGU(cui, eic, name, levels, loadVolume, correctionFactor, location, dnoID)
	if err != nil {
		return nil, err
	}

	a.isFavourite = isFavourite
	a.isActive = isActive
	a.notes = notes
	a.image = slices.Clone(image)

	for _, t := range tanks {
		if err := a.AddTank(t); err != nil {
			return nil, err
		}
	}
	for _, c := range contacts {
		if err := a.AddContact(c); err != nil {
			return nil, err
		}
	}

	return a, nil
}

// Validate checks that the AGU was built through NewAGU or RestoreAGU.
func (a *AGU) Validate() error {
	if a == nil {
		return ErrAGUIsNotConstructed
	}
	return a.guard.Validate(ErrAGUIsNotConstructed)
}

// CUI returns the AGU identifier.
func (a *AGU) CUI() kernel.CUI {
	return a.cui
}

// EIC returns the Energy Identification Code.
func (a *AGU) EIC() string {
	return a.eic
}

func (a *AGU) Name() string {
	return a.name
}

func (a *AGU) Levels() kernel.GasLevels {
	return a.levels
}

func (a *AGU) LoadVolume() int {
	return a.loadVolume
}

func (a *AGU) CorrectionFactor() float64 {
	return a.correctionFactor
}

func (a *AGU) Location() kernel.Location {
	return a.location
}

// DNOID returns the id of the distribution network operator serving the AGU.
func (a *AGU) DNOID() kernel.UUID {
	return a.dnoID
}

func (a *AGU) IsFavourite() bool {
	return a.isFavourite
}

func (a *AGU) IsActive() bool {
	return a.isActive
}

func (a *AGU) Notes() string {
	return a.notes
}

// Image returns a copy of the optional picture bytes, nil when absent.
func (a *AGU) Image() []byte {
	return slices.Clone(a.image)
}

// Tanks returns the tanks ordered by insertion.
func (a *AGU) Tanks() []*Tank {
	return slices.Clone(a.tanks)
}

// Contacts returns the contacts ordered by insertion.
func (a *AGU) Contacts() []*Contact {
	return slices.Clone(a.contacts)
}

// SetFavourite marks or unmarks the AGU as favourite.
func (a *AGU) SetFavourite(isFavourite bool) {
	a.isFavourite = isFavourite
}

// SetActive toggles whether the AGU takes part in ingestion and predictions.
func (a *AGU) SetActive(isActive bool) {
	a.isActive = isActive
}

// SetNotes replaces the free text notes.
func (a *AGU) SetNotes(notes string) {
	a.notes = notes
}

// SetImage replaces the picture. A nil slice removes it.
func (a *AGU) SetImage(image []byte) {
	a.image = slices.Clone(image)
}

// UpdateLevels replaces the gas levels of the AGU.
func (a *AGU) UpdateLevels(levels kernel.GasLevels) error {
	return a.setLevels(levels)
}

// Tank looks a tank up by number.
func (a *AGU) Tank(number int) (*Tank, error) {
	for _, t := range a.tanks {
		if t.Number() == number {
			return t, nil
		}
	}
	return nil, ErrTankNotFound
}

// AddTank attaches a tank. Numbers must be unique inside the AGU.
func (a *AGU) AddTank(tank *Tank) error {
	if err := tank.Validate(); err != nil {
		return err
	}
	if _, err := a.Tank(tank.Number()); err == nil {
		return errs.NewValueIsDuplicatedError("tank number", tank.Number())
	}

	a.tanks = append(a.tanks, tank)
	return nil
}

// RemoveTank detaches the tank with the given number.
func (a *AGU) RemoveTank(number int) error {
	idx := slices.IndexFunc(a.tanks, func(t *Tank) bool { return t.Number() == number })
	if idx < 0 {
		return ErrTankNotFound
	}
	a.tanks = slices.Delete(a.tanks, idx, idx+1)
	return nil
}

// AddContact attaches a contact. The (phone, type) pair must be unique inside the AGU.
func (a *AGU) AddContact(contact *Contact) error {
	if err := contact.Validate(); err != nil {
		return err
	}
	for _, c := range a.contacts {
		if c.Conflicts(contact) {
			return errs.NewValueIsDuplicatedError("contact", contact.Phone()+"/"+contact.Type().String())
		}
	}

	a.contacts = append(a.contacts, contact)
	return nil
}

// RemoveContact detaches the contact with the given id.
func (a *AGU) RemoveContact(id kernel.UUID) error {
	idx := slices.IndexFunc(a.contacts, func(c *Contact) bool { return c.ID().IsEqual(id) })
	if idx < 0 {
		return ErrContactNotFound
	}
	a.contacts = slices.Delete(a.contacts, idx, idx+1)
	return nil
}

func (a *AGU) setCUI(cui kernel.CUI) error {
	if err := cui.Validate(); err != nil {
		return err
	}
	a.cui = cui
	return nil
}

func (a *AGU) setEIC(eic string) error {
	if !validation.IsEICValid(eic) {
		return errs.NewValueIsInvalidError("eic")
	}
	a.eic = eic
	return nil
}

func (a *AGU) setName(name string) error {
	if !validation.IsNameValid(name) {
		return errs.NewValueIsInvalidError("name")
	}
	a.name = name
	return nil
}

func (a *AGU) setLevels(levels kernel.GasLevels) error {
	if err := levels.Validate(); err != nil {
		return err
	}
	a.levels = levels
	return nil
}

func (a *AGU) setLoadVolume(loadVolume int) error {
	if !validation.IsPercentageValid(loadVolume) {
		return errs.NewValueIsOutOfRangeError(
			"load volume", loadVolume, validation.MinPercentage, validation.MaxPercentage)
	}
	a.loadVolume = loadVolume
	return nil
}

func (a *AGU) setCorrectionFactor(correctionFactor float64) error {
	if correctionFactor < 0 {
		return errs.NewValueIsOutOfRangeError("correction factor", correctionFactor, 0, "unbounded")
	}
	a.correctionFactor = correctionFactor
	return nil
}

func (a *AGU) setLocation(location kernel.Location) error {
	if err := location.Validate(); err != nil {
		return err
	}
	a.location = location
	return nil
}

func (a *AGU) setDNO(dnoID kernel.UUID) error {
	if err := dnoID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("dno", err)
	}
	a.dnoID = dnoID
	return nil
}
