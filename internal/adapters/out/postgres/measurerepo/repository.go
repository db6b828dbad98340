package measurerepo

import (
	"context"
	"errors"
	"time"

	"agu/internal/core/domain/model/kernel"
	"agu/internal/core/domain/model/measure"
	"agu/internal/pkg/errs"

	"gorm.io/gorm"
)

const batchSize = 500

// providerCUI resolves the AGU a provider belongs to.
func providerCUI(ctx context.Context, db *gorm.DB, providerID kernel.UUID) (string, error) {
	var cui string
	err := db.WithContext(ctx).Table("providers").Select("agu_cui").
		Where("id = ?", providerID.Bytes()).Take(&cui).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", errs.NewObjectNotFoundError("provider", providerID.String())
	}
	return cui, err
}

// GormGasRepository implements ports.GasRepository using GORM.
type GormGasRepository struct {
	db *gorm.DB
}

func NewGormGasRepository(db *gorm.DB) *GormGasRepository {
	return &GormGasRepository{db: db}
}

func (r *GormGasRepository) Add(ctx context.Context, providerID kernel.UUID, measures []measure.GasMeasure) error {
	if len(measures) == 0 {
		return nil
	}
	cui, err := providerCUI(ctx, r.db, providerID)
	if err != nil {
		return err
	}

	dtos := make([]GasMeasureDTO, 0, len(measures))
	for _, m := range measures {
		dtos = append(dtos, gasFromDomain(providerID.Bytes(), cui, m))
	}
	return r.db.WithContext(ctx).CreateInBatches(&dtos, batchSize).Error
}

func (r *GormGasRepository) GetByAGU(ctx context.Context, cui kernel.CUI, since time.Time) ([]measure.GasMeasure, error) {
	var dtos []GasMeasureDTO
	if err := r.db.WithContext(ctx).
		Where("agu_cui = ? AND timestamp >= ?", cui.String(), since.UTC()).
		Order("timestamp, tank_number").
		Find(&dtos).Error; err != nil {
		return nil, err
	}

	measures := make([]measure.GasMeasure, 0, len(dtos))
	for _, dto := range dtos {
		measures = append(measures, gasToDomain(dto))
	}
	return measures, nil
}

func (r *GormGasRepository) GetLatest(ctx context.Context, cui kernel.CUI) ([]measure.GasMeasure, error) {
	var dtos []GasMeasureDTO
	if err := r.db.WithContext(ctx).Raw(`
		SELECT DISTINCT ON (tank_number) *
		FROM gas_measures
		WHERE agu_cui = ?
		ORDER BY tank_number, timestamp DESC, id DESC
	`, cui.String()).Scan(&dtos).Error; err != nil {
		return nil, err
	}

	measures := make([]measure.GasMeasure, 0, len(dtos))
	for _, dto := range dtos {
		measures = append(measures, gasToDomain(dto))
	}
	return measures, nil
}

// GormTemperatureRepository implements ports.TemperatureRepository using GORM.
type GormTemperatureRepository struct {
	db *gorm.DB
}

func NewGormTemperatureRepository(db *gorm.DB) *GormTemperatureRepository {
	return &GormTemperatureRepository{db: db}
}

func (r *GormTemperatureRepository) Add(
	ctx context.Context,
	providerID kernel.UUID,
	measures []measure.TemperatureMeasure,
) error {
	if len(measures) == 0 {
		return nil
	}
	cui, err := providerCUI(ctx, r.db, providerID)
	if err != nil {
		return err
	}

	dtos := make([]TemperatureMeasureDTO, 0, len(measures))
	for _, m := range measures {
		dtos = append(dtos, temperatureFromDomain(providerID.Bytes(), cui, m))
	}
	return r.db.WithContext(ctx).CreateInBatches(&dtos, batchSize).Error
}

func (r *GormTemperatureRepository) GetByAGU(
	ctx context.Context,
	cui kernel.CUI,
	since time.Time,
) ([]measure.TemperatureMeasure, error) {
	var dtos []TemperatureMeasureDTO
	if err := r.db.WithContext(ctx).
		Where("agu_cui = ? AND prediction_for >= ?", cui.String(), since.UTC()).
		Order("prediction_for, timestamp").
		Find(&dtos).Error; err != nil {
		return nil, err
	}

	measures := make([]measure.TemperatureMeasure, 0, len(dtos))
	for _, dto := range dtos {
		measures = append(measures, temperatureToDomain(dto))
	}
	return measures, nil
}
