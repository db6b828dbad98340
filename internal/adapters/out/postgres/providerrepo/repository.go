package providerrepo

import (
	"context"
	"errors"
	"time"

	"agu/internal/core/domain/model/kernel"
	"agu/internal/core/domain/model/measure"
	"agu/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormProviderRepository implements ports.ProviderRepository using GORM.
type GormProviderRepository struct {
	db *gorm.DB
}

func NewGormProviderRepository(db *gorm.DB) *GormProviderRepository {
	return &GormProviderRepository{db: db}
}

func (r *GormProviderRepository) Add(ctx context.Context, p *measure.Provider) error {
	dto := fromDomain(p)
	return r.db.WithContext(ctx).Create(&dto).Error
}

func (r *GormProviderRepository) Get(ctx context.Context, id kernel.UUID) (*measure.Provider, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto ProviderDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("provider", id.String())
		}
		return nil, err
	}
	return toDomain(dto)
}

func (r *GormProviderRepository) GetByAGU(ctx context.Context, cui kernel.CUI) ([]*measure.Provider, error) {
	var dtos []ProviderDTO
	if err := r.db.WithContext(ctx).Where("agu_cui = ?", cui.String()).Order("type, url").Find(&dtos).Error; err != nil {
		return nil, err
	}
	return toDomainSlice(dtos)
}

func (r *GormProviderRepository) GetAll(ctx context.Context) ([]*measure.Provider, error) {
	var dtos []ProviderDTO
	if err := r.db.WithContext(ctx).Order("agu_cui, type, url").Find(&dtos).Error; err != nil {
		return nil, err
	}
	return toDomainSlice(dtos)
}

func (r *GormProviderRepository) UpdateLastFetch(ctx context.Context, id kernel.UUID, lastFetch time.Time) (bool, error) {
	result := r.db.WithContext(ctx).Model(&ProviderDTO{}).
		Where("id = ?", id.Bytes()).
		Update("last_fetch", lastFetch.UTC())
	return result.RowsAffected > 0, result.Error
}
