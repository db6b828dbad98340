// Package contactrepo persists the contacts of an AGU.
package contactrepo

import (
	"agu/internal/core/domain/model/agu"
	"agu/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// ContactDTO is the row of the contacts table. The type is stored by name.
type ContactDTO struct {
	ID     uuid.UUID `gorm:"type:uuid;primaryKey"`
	AGUCui string    `gorm:"column:agu_cui;type:varchar(20);not null;index"`
	Name   string    `gorm:"type:varchar(255);not null"`
	Phone  string    `gorm:"type:varchar(9);not null"`
	Type   string    `gorm:"type:varchar(16);not null"`
}

func (ContactDTO) TableName() string {
	return "contacts"
}

// FromDomain maps a contact of the AGU identified by cui to its row.
func FromDomain(cui kernel.CUI, contact *agu.Contact) ContactDTO {
	return ContactDTO{
		ID:     contact.ID().Bytes(),
		AGUCui: cui.String(),
		Name:   contact.Name(),
		Phone:  contact.Phone(),
		Type:   contact.Type().String(),
	}
}

func ToDomain(dto ContactDTO) (*agu.Contact, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	contactType, err := agu.ParseContactType(dto.Type)
	if err != nil {
		return nil, err
	}
	return agu.NewContact(id, dto.Name, dto.Phone, contactType)
}
