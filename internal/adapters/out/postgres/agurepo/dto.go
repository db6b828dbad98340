// Package agurepo persists the AGU aggregate. Tanks and contacts are stored
// by their own repositories and loaded here as associations.
package agurepo

import (
	"agu/internal/adapters/out/postgres/contactrepo"
	"agu/internal/adapters/out/postgres/tankrepo"
	"agu/internal/core/domain/model/agu"
	"agu/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// AGUDTO is the row of the agus table.
type AGUDTO struct {
	CUI              string                   `gorm:"column:cui;type:varchar(20);primaryKey"`
	EIC              string                   `gorm:"column:eic;type:varchar(16);not null"`
	Name             string                   `gorm:"type:varchar(255);not null"`
	MinLevel         int                      `gorm:"type:smallint;not null"`
	MaxLevel         int                      `gorm:"type:smallint;not null"`
	CriticalLevel    int                      `gorm:"type:smallint;not null"`
	LoadVolume       int                      `gorm:"type:smallint;not null"`
	CorrectionFactor float64                  `gorm:"type:double precision;not null"`
	Location         LocationDTO              `gorm:"embedded;embeddedPrefix:location_"`
	DNOID            uuid.UUID                `gorm:"column:dno_id;type:uuid;not null;index"`
	IsFavourite      bool                     `gorm:"not null;default:false"`
	IsActive         bool                     `gorm:"not null;default:true;index"`
	Notes            string                   `gorm:"type:text"`
	Image            []byte                   `gorm:"type:bytea"`
	Tanks            []tankrepo.TankDTO       `gorm:"foreignKey:AGUCui;references:CUI;constraint:OnDelete:CASCADE"`
	Contacts         []contactrepo.ContactDTO `gorm:"foreignKey:AGUCui;references:CUI;constraint:OnDelete:CASCADE"`
}

func (AGUDTO) TableName() string {
	return "agus"
}

// LocationDTO is embedded in the agus table.
type LocationDTO struct {
	Name      string  `gorm:"type:varchar(255);not null"`
	Latitude  float64 `gorm:"type:double precision;not null"`
	Longitude float64 `gorm:"type:double precision;not null"`
}

// fromDomain maps the scalar attributes. Tanks and contacts are left empty.
func fromDomain(a *agu.AGU) AGUDTO {
	return AGUDTO{
		CUI:              a.CUI().String(),
		EIC:              a.EIC(),
		Name:             a.Name(),
		MinLevel:         a.Levels().Min(),
		MaxLevel:         a.Levels().Max(),
		CriticalLevel:    a.Levels().Critical(),
		LoadVolume:       a.LoadVolume(),
		CorrectionFactor: a.CorrectionFactor(),
		Location: LocationDTO{
			Name:      a.Location().Name(),
			Latitude:  a.Location().Latitude(),
			Longitude: a.Location().Longitude(),
		},
		DNOID:       a.DNOID().Bytes(),
		IsFavourite: a.IsFavourite(),
		IsActive:    a.IsActive(),
		Notes:       a.Notes(),
		Image:       a.Image(),
	}
}

func toDomain(dto AGUDTO) (*agu.AGU, error) {
	cui, err := kernel.NewCUI(dto.CUI)
	if err != nil {
		return nil, err
	}
	levels, err := kernel.NewGasLevels(dto.MinLevel, dto.MaxLevel, dto.CriticalLevel)
	if err != nil {
		return nil, err
	}
	location, err := kernel.NewLocation(dto.Location.Name, dto.Location.Latitude, dto.Location.Longitude)
	if err != nil {
		return nil, err
	}
	dnoID, err := kernel.UUIDFromBytes(dto.DNOID[:])
	if err != nil {
		return nil, err
	}

	tanks := make([]*agu.Tank, 0, len(dto.Tanks))
	for _, t := range dto.Tanks {
		tank, tankErr := tankrepo.ToDomain(t)
		if tankErr != nil {
			return nil, tankErr
		}
		tanks = append(tanks, tank)
	}

	contacts := make([]*agu.Contact, 0, len(dto.Contacts))
	for _, c := range dto.Contacts {
		contact, contactErr := contactrepo.ToDomain(c)
		if contactErr != nil {
			return nil, contactErr
		}
		contacts = append(contacts, contact)
	}

	return agu.RestoreAGU(cui, dto.EIC, dto.Name, levels, dto.LoadVolume, dto.CorrectionFactor, location,
		dnoID, dto.IsFavourite, dto.IsActive, dto.Notes, dto.Image, tanks, contacts)
}
