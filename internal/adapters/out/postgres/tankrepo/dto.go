// Package tankrepo persists the tanks of an AGU.
package tankrepo

import (
	"agu/internal/core/domain/model/agu"
	"agu/internal/core/domain/model/kernel"
)

// TankDTO is the row of the tanks table, keyed by AGU and tank number.
type TankDTO struct {
	AGUCui           string  `gorm:"column:agu_cui;type:varchar(20);primaryKey"`
	Number           int     `gorm:"type:int;primaryKey;autoIncrement:false"`
	MinLevel         int     `gorm:"type:smallint;not null"`
	MaxLevel         int     `gorm:"type:smallint;not null"`
	CriticalLevel    int     `gorm:"type:smallint;not null"`
	LoadVolume       int     `gorm:"type:smallint;not null"`
	Capacity         int     `gorm:"type:int;not null"`
	CorrectionFactor float64 `gorm:"type:double precision;not null"`
}

func (TankDTO) TableName() string {
	return "tanks"
}

// FromDomain maps a tank of the AGU identified by cui to its row.
func FromDomain(cui kernel.CUI, tank *agu.Tank) TankDTO {
	return TankDTO{
		AGUCui:           cui.String(),
		Number:           tank.Number(),
		MinLevel:         tank.Levels().Min(),
		MaxLevel:         tank.Levels().Max(),
		CriticalLevel:    tank.Levels().Critical(),
		LoadVolume:       tank.LoadVolume(),
		Capacity:         tank.Capacity(),
		CorrectionFactor: tank.CorrectionFactor(),
	}
}

func ToDomain(dto TankDTO) (*agu.Tank, error) {
	levels, err := kernel.NewGasLevels(dto.MinLevel, dto.MaxLevel, dto.CriticalLevel)
	if err != nil {
		return nil, err
	}
	return agu.NewTank(dto.Number, levels, dto.LoadVolume, dto.Capacity, dto.CorrectionFactor)
}
