package dnorepo

import (
	"context"
	"errors"
	"strings"

	"agu/internal/core/domain/model/company"
	"agu/internal/core/domain/model/kernel"
	"agu/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormDNORepository implements ports.DNORepository using GORM.
type GormDNORepository struct {
	db *gorm.DB
}

func NewGormDNORepository(db *gorm.DB) *GormDNORepository {
	return &GormDNORepository{db: db}
}

func (r *GormDNORepository) Add(ctx context.Context, dno *company.DNO) error {
	if err := dno.Validate(); err != nil {
		return err
	}

	dto := fromDomain(dno)
	return r.db.WithContext(ctx).Create(&dto).Error
}

func (r *GormDNORepository) Get(ctx context.Context, id kernel.UUID) (*company.DNO, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto DNODTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("dno", id.String())
		}
		return nil, err
	}
	return toDomain(dto)
}

// GetByName matches the name case-insensitively.
func (r *GormDNORepository) GetByName(ctx context.Context, name string) (*company.DNO, error) {
	var dto DNODTO
	if err := r.db.WithContext(ctx).First(&dto, "lower(name) = ?", strings.ToLower(name)).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("dno", name)
		}
		return nil, err
	}
	return toDomain(dto)
}

func (r *GormDNORepository) GetAll(ctx context.Context) ([]*company.DNO, error) {
	var dtos []DNODTO
	if err := r.db.WithContext(ctx).Order("name").Find(&dtos).Error; err != nil {
		return nil, err
	}

	dnos := make([]*company.DNO, 0, len(dtos))
	for _, dto := range dtos {
		dno, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		dnos = append(dnos, dno)
	}
	return dnos, nil
}

func (r *GormDNORepository) ExistsByName(ctx context.Context, name string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&DNODTO{}).
		Where("lower(name) = ?", strings.ToLower(strings.TrimSpace(name))).
		Count(&count).Error
	return count > 0, err
}

func (r *GormDNORepository) Delete(ctx context.Context, id kernel.UUID) (bool, error) {
	if err := id.Validate(); err != nil {
		return false, err
	}

	result := r.db.WithContext(ctx).Delete(&DNODTO{}, "id = ?", id.Bytes())
	return result.RowsAffected > 0, result.Error
}
