package tankrepo

import (
	"context"

	"agu/internal/core/domain/model/agu"
	"agu/internal/core/domain/model/kernel"

	"gorm.io/gorm"
)

// GormTankRepository implements ports.TankRepository using GORM.
type GormTankRepository struct {
	db *gorm.DB
}

func NewGormTankRepository(db *gorm.DB) *GormTankRepository {
	return &GormTankRepository{db: db}
}

func (r *GormTankRepository) Add(ctx context.Context, cui kernel.CUI, tank *agu.Tank) error {
	if err := tank.Validate(); err != nil {
		return err
	}

	dto := FromDomain(cui, tank)
	return r.db.WithContext(ctx).Create(&dto).Error
}

// Update reports false when the AGU has no tank with that number.
func (r *GormTankRepository) Update(ctx context.Context, cui kernel.CUI, tank *agu.Tank) (bool, error) {
	if err := tank.Validate(); err != nil {
		return false, err
	}

	dto := FromDomain(cui, tank)
	result := r.db.WithContext(ctx).Model(&TankDTO{}).
		Where("agu_cui = ? AND number = ?", dto.AGUCui, dto.Number).
		Updates(map[string]any{
			"min_level":         dto.MinLevel,
			"max_level":         dto.MaxLevel,
			"critical_level":    dto.CriticalLevel,
			"load_volume":       dto.LoadVolume,
			"capacity":          dto.Capacity,
			"correction_factor": dto.CorrectionFactor,
		})
	return result.RowsAffected > 0, result.Error
}

func (r *GormTankRepository) Delete(ctx context.Context, cui kernel.CUI, number int) (bool, error) {
	result := r.db.WithContext(ctx).Delete(&TankDTO{}, "agu_cui = ? AND number = ?", cui.String(), number)
	return result.RowsAffected > 0, result.Error
}

func (r *GormTankRepository) GetByAGU(ctx context.Context, cui kernel.CUI) ([]*agu.Tank, error) {
	var dtos []TankDTO
	if err := r.db.WithContext(ctx).Where("agu_cui = ?", cui.String()).Order("number").Find(&dtos).Error; err != nil {
		return nil, err
	}

	tanks := make([]*agu.Tank, 0, len(dtos))
	for _, dto := range dtos {
		tank, err := ToDomain(dto)
		if err != nil {
			return nil, err
		}
		tanks = append(tanks, tank)
	}
	return tanks, nil
}
