package loadrepo

import (
	"context"
	"errors"
	"time"

	"agu/internal/core/domain/model/kernel"
	"agu/internal/core/domain/model/load"
	"agu/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormLoadRepository implements ports.LoadRepository using GORM.
type GormLoadRepository struct {
	db *gorm.DB
}

func NewGormLoadRepository(db *gorm.DB) *GormLoadRepository {
	return &GormLoadRepository{db: db}
}

func (r *GormLoadRepository) Add(ctx context.Context, l *load.ScheduledLoad) error {
	if err := l.Validate(); err != nil {
		return err
	}

	dto := fromDomain(l)
	return r.db.WithContext(ctx).Create(&dto).Error
}

func (r *GormLoadRepository) Get(ctx context.Context, id kernel.UUID) (*load.ScheduledLoad, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto ScheduledLoadDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("load", id.String())
		}
		return nil, err
	}
	return toDomain(dto)
}

func (r *GormLoadRepository) ExistsForSlot(ctx context.Context, slot load.Slot) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&ScheduledLoadDTO{}).
		Where("agu_cui = ? AND date = ? AND time_of_day = ?",
			slot.AGUCui.String(), load.Day(slot.Date), slot.TimeOfDay.String()).
		Count(&count).Error
	return count > 0, err
}

func (r *GormLoadRepository) GetByDate(ctx context.Context, date time.Time) ([]*load.ScheduledLoad, error) {
	return r.GetBetween(ctx, date, date)
}

func (r *GormLoadRepository) GetBetween(ctx context.Context, from, to time.Time) ([]*load.ScheduledLoad, error) {
	var dtos []ScheduledLoadDTO
	if err := r.db.WithContext(ctx).
		Where("date BETWEEN ? AND ?", load.Day(from), load.Day(to)).
		Order("date").Order(timeOfDayOrder).Order("agu_cui").
		Find(&dtos).Error; err != nil {
		return nil, err
	}
	return toDomainSlice(dtos)
}

func (r *GormLoadRepository) Update(ctx context.Context, l *load.ScheduledLoad) (bool, error) {
	if err := l.Validate(); err != nil {
		return false, err
	}

	dto := fromDomain(l)
	result := r.db.WithContext(ctx).Model(&ScheduledLoadDTO{}).Where("id = ?", dto.ID).Updates(map[string]any{
		"date":                 dto.Date,
		"time_of_day":          dto.TimeOfDay,
		"amount":               dto.Amount,
		"is_confirmed":         dto.IsConfirmed,
		"transport_company_id": dto.TransportCompanyID,
		"unload_timestamp":     dto.UnloadTimestamp,
	})
	return result.RowsAffected > 0, result.Error
}

func (r *GormLoadRepository) Delete(ctx context.Context, id kernel.UUID) (bool, error) {
	if err := id.Validate(); err != nil {
		return false, err
	}

	result := r.db.WithContext(ctx).Delete(&ScheduledLoadDTO{}, "id = ?", id.Bytes())
	return result.RowsAffected > 0, result.Error
}
