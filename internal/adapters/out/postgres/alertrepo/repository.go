package alertrepo

import (
	"context"
	"errors"

	"agu/internal/core/domain/model/alert"
	"agu/internal/core/domain/model/kernel"
	"agu/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormAlertRepository implements ports.AlertRepository using GORM.
type GormAlertRepository struct {
	db *gorm.DB
}

func NewGormAlertRepository(db *gorm.DB) *GormAlertRepository {
	return &GormAlertRepository{db: db}
}

func (r *GormAlertRepository) Add(ctx context.Context, a *alert.Alert) error {
	if err := a.Validate(); err != nil {
		return err
	}

	dto := fromDomain(a)
	return r.db.WithContext(ctx).Create(&dto).Error
}

func (r *GormAlertRepository) Get(ctx context.Context, id kernel.UUID) (*alert.Alert, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto AlertDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("alert", id.String())
		}
		return nil, err
	}
	return toDomain(dto)
}

func (r *GormAlertRepository) GetUnresolved(ctx context.Context) ([]*alert.Alert, error) {
	var dtos []AlertDTO
	if err := r.db.WithContext(ctx).Where("is_resolved = ?", false).Order("timestamp DESC").Find(&dtos).Error; err != nil {
		return nil, err
	}

	alerts := make([]*alert.Alert, 0, len(dtos))
	for _, dto := range dtos {
		a, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		alerts = append(alerts, a)
	}
	return alerts, nil
}

// Update stores the resolution state, the only mutable attribute of an alert.
func (r *GormAlertRepository) Update(ctx context.Context, a *alert.Alert) error {
	if err := a.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).Model(&AlertDTO{}).Where("id = ?", a.ID().Bytes()).
		Update("is_resolved", a.IsResolved())
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("alert", a.ID().String())
	}
	return nil
}
