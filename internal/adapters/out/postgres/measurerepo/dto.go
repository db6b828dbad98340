// Package measurerepo persists gas and temperature measures in separate
// tables. Each row carries the provider type it was produced by and
// references its provider, so deleting a provider deletes its measures.
package measurerepo

import (
	"time"

	"agu/internal/adapters/out/postgres/providerrepo"
	"agu/internal/core/domain/model/measure"

	"github.com/google/uuid"
)

// GasMeasureDTO is the row of the gas_measures table.
type GasMeasureDTO struct {
	ID            int64     `gorm:"primaryKey;autoIncrement"`
	ProviderID    uuid.UUID `gorm:"type:uuid;not null;index"`
	AGUCui        string    `gorm:"column:agu_cui;type:varchar(20);not null;index:idx_gas_agu_ts,priority:1"`
	ProviderType  string    `gorm:"type:varchar(16);not null;default:GAS"`
	TankNumber    int       `gorm:"type:int;not null"`
	Timestamp     time.Time `gorm:"type:timestamptz;not null;index:idx_gas_agu_ts,priority:2"`
	PredictionFor time.Time `gorm:"type:timestamptz;not null"`
	Level         int       `gorm:"type:smallint;not null"`

	Provider *providerrepo.ProviderDTO `gorm:"foreignKey:ProviderID;references:ID;constraint:OnDelete:CASCADE"`
}

func (GasMeasureDTO) TableName() string {
	return "gas_measures"
}

// TemperatureMeasureDTO is the row of the temperature_measures table.
type TemperatureMeasureDTO struct {
	ID             int64     `gorm:"primaryKey;autoIncrement"`
	ProviderID     uuid.UUID `gorm:"type:uuid;not null;index"`
	AGUCui         string    `gorm:"column:agu_cui;type:varchar(20);not null;index:idx_temperature_agu_day,priority:1"`
	ProviderType   string    `gorm:"type:varchar(16);not null;default:TEMPERATURE"`
	Timestamp      time.Time `gorm:"type:timestamptz;not null"`
	PredictionFor  time.Time `gorm:"type:timestamptz;not null;index:idx_temperature_agu_day,priority:2"`
	MinTemperature int       `gorm:"type:smallint;not null"`
	MaxTemperature int       `gorm:"type:smallint;not null"`

	Provider *providerrepo.ProviderDTO `gorm:"foreignKey:ProviderID;references:ID;constraint:OnDelete:CASCADE"`
}

func (TemperatureMeasureDTO) TableName() string {
	return "temperature_measures"
}

func gasFromDomain(providerID uuid.UUID, cui string, m measure.GasMeasure) GasMeasureDTO {
	return GasMeasureDTO{
		ProviderID:    providerID,
		AGUCui:        cui,
		ProviderType:  m.ProviderType().String(),
		TankNumber:    m.TankNumber(),
		Timestamp:     m.Timestamp().UTC(),
		PredictionFor: m.PredictionFor().UTC(),
		Level:         m.Level(),
	}
}

func gasToDomain(dto GasMeasureDTO) measure.GasMeasure {
	return measure.NewGasMeasure(dto.Timestamp.UTC(), dto.PredictionFor.UTC(), dto.TankNumber, dto.Level)
}

func temperatureFromDomain(providerID uuid.UUID, cui string, m measure.TemperatureMeasure) TemperatureMeasureDTO {
	return TemperatureMeasureDTO{
		ProviderID:     providerID,
		AGUCui:         cui,
		ProviderType:   m.ProviderType().String(),
		Timestamp:      m.Timestamp().UTC(),
		PredictionFor:  m.PredictionFor().UTC(),
		MinTemperature: m.Min(),
		MaxTemperature: m.Max(),
	}
}

func temperatureToDomain(dto TemperatureMeasureDTO) measure.TemperatureMeasure {
	return measure.NewTemperatureMeasure(dto.Timestamp.UTC(), dto.PredictionFor.UTC(), dto.MinTemperature, dto.MaxTemperature)
}
