// Package dnorepo persists distribution network operators.
package dnorepo

import (
	"agu/internal/core/domain/model/company"
	"agu/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// DNODTO is the row of the dnos table.
type DNODTO struct {
	ID     uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name   string    `gorm:"type:varchar(255);not null;uniqueIndex"`
	Region *string   `gorm:"type:varchar(255)"`
}

func (DNODTO) TableName() string {
	return "dnos"
}

func fromDomain(dno *company.DNO) DNODTO {
	dto := DNODTO{ID: dno.ID().Bytes(), Name: dno.Name()}
	if region, ok := dno.Region(); ok {
		dto.Region = &region
	}
	return dto
}

func toDomain(dto DNODTO) (*company.DNO, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	var region string
	if dto.Region != nil {
		region = *dto.Region
	}
	return company.NewDNO(id, dto.Name, region)
}
