// Package loadrepo persists scheduled loads and their delivery.
package loadrepo

import (
	"time"

	"agu/internal/core/domain/model/kernel"
	"agu/internal/core/domain/model/load"

	"github.com/google/uuid"
)

// ScheduledLoadDTO is the row of the scheduled_loads table. A load is
// delivered when TransportCompanyID and UnloadTimestamp are set.
type ScheduledLoadDTO struct {
	ID                 uuid.UUID  `gorm:"type:uuid;primaryKey"`
	AGUCui             string     `gorm:"column:agu_cui;type:varchar(20);not null;uniqueIndex:idx_loads_slot,priority:1"`
	Date               time.Time  `gorm:"type:date;not null;index;uniqueIndex:idx_loads_slot,priority:2"`
	TimeOfDay          string     `gorm:"type:varchar(16);not null;uniqueIndex:idx_loads_slot,priority:3"`
	Amount             int        `gorm:"type:int;not null"`
	IsManual           bool       `gorm:"not null"`
	IsConfirmed        bool       `gorm:"not null"`
	TransportCompanyID *uuid.UUID `gorm:"type:uuid"`
	UnloadTimestamp    *time.Time `gorm:"type:timestamptz"`
}

func (ScheduledLoadDTO) TableName() string {
	return "scheduled_loads"
}

// timeOfDayOrder sorts MORNING, AFTERNOON, NIGHT in that order.
const timeOfDayOrder = "CASE time_of_day WHEN 'MORNING' THEN 1 WHEN 'AFTERNOON' THEN 2 ELSE 3 END"

func fromDomain(l *load.ScheduledLoad) ScheduledLoadDTO {
	dto := ScheduledLoadDTO{
		ID:          l.ID().Bytes(),
		AGUCui:      l.AGUCui().String(),
		Date:        l.Date(),
		TimeOfDay:   l.TimeOfDay().String(),
		Amount:      l.Amount(),
		IsManual:    l.IsManual(),
		IsConfirmed: l.IsConfirmed(),
	}
	if d, ok := l.Delivered(); ok {
		companyID := d.TransportCompanyID.Bytes()
		unload := d.UnloadTimestamp.UTC()
		dto.TransportCompanyID = &companyID
		dto.UnloadTimestamp = &unload
	}
	return dto
}

func toDomain(dto ScheduledLoadDTO) (*load.ScheduledLoad, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	cui, err := kernel.NewCUI(dto.AGUCui)
	if err != nil {
		return nil, err
	}
	timeOfDay, err := load.ParseTimeOfDay(dto.TimeOfDay)
	if err != nil {
		return nil, err
	}

	var delivery *load.Delivery
	if dto.TransportCompanyID != nil && dto.UnloadTimestamp != nil {
		companyID, idErr := kernel.UUIDFromBytes(dto.TransportCompanyID[:])
		if idErr != nil {
			return nil, idErr
		}
		delivery = &load.Delivery{TransportCompanyID: companyID, UnloadTimestamp: dto.UnloadTimestamp.UTC()}
	}

	return load.RestoreScheduledLoad(id, cui, dto.Date, timeOfDay, dto.Amount, dto.IsManual, dto.IsConfirmed, delivery)
}

func toDomainSlice(dtos []ScheduledLoadDTO) ([]*load.ScheduledLoad, error) {
	loads := make([]*load.ScheduledLoad, 0, len(dtos))
	for _, dto := range dtos {
		l, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		loads = append(loads, l)
	}
	return loads, nil
}
