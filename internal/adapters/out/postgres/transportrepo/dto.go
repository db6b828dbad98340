// Package transportrepo persists transport companies and their association with AGUs.
package transportrepo

import (
	"agu/internal/core/domain/model/company"
	"agu/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// TransportCompanyDTO is the row of the transport_companies table.
type TransportCompanyDTO struct {
	ID   uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name string    `gorm:"type:varchar(255);not null"`
}

func (TransportCompanyDTO) TableName() string {
	return "transport_companies"
}

// AssociationDTO links an AGU to a transport company that serves it.
type AssociationDTO struct {
	AGUCui             string    `gorm:"column:agu_cui;type:varchar(20);primaryKey"`
	TransportCompanyID uuid.UUID `gorm:"type:uuid;primaryKey;index"`
}

func (AssociationDTO) TableName() string {
	return "agu_transport_companies"
}

func fromDomain(c *company.TransportCompany) TransportCompanyDTO {
	return TransportCompanyDTO{ID: c.ID().Bytes(), Name: c.Name()}
}

func toDomain(dto TransportCompanyDTO) (*company.TransportCompany, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	return company.NewTransportCompany(id, dto.Name)
}

func toDomainSlice(dtos []TransportCompanyDTO) ([]*company.TransportCompany, error) {
	companies := make([]*company.TransportCompany, 0, len(dtos))
	for _, dto := range dtos {
		c, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		companies = append(companies, c)
	}
	return companies, nil
}
