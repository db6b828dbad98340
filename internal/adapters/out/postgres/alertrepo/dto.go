// Package alertrepo persists alerts.
package alertrepo

import (
	"time"

	"agu/internal/core/domain/model/alert"
	"agu/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// AlertDTO is the row of the alerts table.
type AlertDTO struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	AGUCui     string    `gorm:"column:agu_cui;type:varchar(20);not null;index"`
	Timestamp  time.Time `gorm:"type:timestamptz;not null"`
	Title      string    `gorm:"type:varchar(120);not null"`
	Message    string    `gorm:"type:text"`
	IsResolved bool      `gorm:"not null;index"`
}

func (AlertDTO) TableName() string {
	return "alerts"
}

func fromDomain(a *alert.Alert) AlertDTO {
	return AlertDTO{
		ID:         a.ID().Bytes(),
		AGUCui:     a.AGUCui().String(),
		Timestamp:  a.Timestamp().UTC(),
		Title:      a.Title(),
		Message:    a.Message(),
		IsResolved: a.IsResolved(),
	}
}

func toDomain(dto AlertDTO) (*alert.Alert, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	cui, err := kernel.NewCUI(dto.AGUCui)
	if err != nil {
		return nil, err
	}
	return alert.RestoreAlert(id, cui, dto.Timestamp.UTC(), dto.Title, dto.Message, dto.IsResolved)
}
