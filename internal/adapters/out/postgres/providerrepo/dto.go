// Package providerrepo persists measurement providers.
package providerrepo

import (
	"time"

	"agu/internal/core/domain/model/kernel"
	"agu/internal/core/domain/model/measure"

	"github.com/google/uuid"
)

// ProviderDTO is the row of the providers table. The frequency is stored in seconds.
type ProviderDTO struct {
	ID               uuid.UUID  `gorm:"type:uuid;primaryKey"`
	AGUCui           string     `gorm:"column:agu_cui;type:varchar(20);not null;index"`
	Type             string     `gorm:"type:varchar(16);not null"`
	URL              string     `gorm:"column:url;type:text;not null"`
	FrequencySeconds int64      `gorm:"type:bigint;not null"`
	LastFetch        *time.Time `gorm:"type:timestamptz"`
}

func (ProviderDTO) TableName() string {
	return "providers"
}

func fromDomain(p *measure.Provider) ProviderDTO {
	dto := ProviderDTO{
		ID:               p.ID().Bytes(),
		AGUCui:           p.AGUCui().String(),
		Type:             p.Type().String(),
		URL:              p.URL(),
		FrequencySeconds: int64(p.Frequency() / time.Second),
	}
	if last := p.LastFetch(); !last.IsZero() {
		dto.LastFetch = &last
	}
	return dto
}

func toDomain(dto ProviderDTO) (*measure.Provider, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	providerType, err := measure.ParseProviderType(dto.Type)
	if err != nil {
		return nil, err
	}
	cui, err := kernel.NewCUI(dto.AGUCui)
	if err != nil {
		return nil, err
	}

	var lastFetch time.Time
	if dto.LastFetch != nil {
		lastFetch = dto.LastFetch.UTC()
	}
	return measure.RestoreProvider(id, providerType, cui, dto.URL,
		time.Duration(dto.FrequencySeconds)*time.Second, lastFetch)
}

func toDomainSlice(dtos []ProviderDTO) ([]*measure.Provider, error) {
	providers := make([]*measure.Provider, 0, len(dtos))
	for _, dto := range dtos {
		p, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		providers = append(providers, p)
	}
	return providers, nil
}
