package agurepo

import (
	"context"
	"errors"

	"agu/internal/adapters/out/postgres/alertrepo"
	"agu/internal/adapters/out/postgres/contactrepo"
	"agu/internal/adapters/out/postgres/loadrepo"
	"agu/internal/adapters/out/postgres/measurerepo"
	"agu/internal/adapters/out/postgres/providerrepo"
	"agu/internal/adapters/out/postgres/tankrepo"
	"agu/internal/adapters/out/postgres/transportrepo"
	"agu/internal/core/domain/model/agu"
	"agu/internal/core/domain/model/kernel"
	"agu/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormAGURepository implements ports.AGURepository using GORM.
type GormAGURepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

type aggregateTracker interface {
	TrackAggregate(key string, aggregate any)
}

func NewGormAGURepository(db *gorm.DB, tracker aggregateTracker) *GormAGURepository {
	return &GormAGURepository{db: db, tracker: tracker}
}

func (r *GormAGURepository) Add(ctx context.Context, a *agu.AGU) error {
	if err := a.Validate(); err != nil {
		return err
	}

	dto := fromDomain(a)
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(dto.CUI, a)
	return nil
}

func (r *GormAGURepository) Update(ctx context.Context, a *agu.AGU) error {
	if err := a.Validate(); err != nil {
		return err
	}

	dto := fromDomain(a)
	result := r.db.WithContext(ctx).Model(&AGUDTO{}).Where("cui = ?", dto.CUI).Updates(map[string]any{
		"is_favourite":   dto.IsFavourite,
		"is_active":      dto.IsActive,
		"notes":          dto.Notes,
		"image":          dto.Image,
		"min_level":      dto.MinLevel,
		"max_level":      dto.MaxLevel,
		"critical_level": dto.CriticalLevel,
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("agu", dto.CUI)
	}

	r.tracker.TrackAggregate(dto.CUI, a)
	return nil
}

func (r *GormAGURepository) Get(ctx context.Context, cui kernel.CUI) (*agu.AGU, error) {
	if err := cui.Validate(); err != nil {
		return nil, err
	}

	var dto AGUDTO
	err := r.db.WithContext(ctx).
		Preload("Tanks", func(db *gorm.DB) *gorm.DB { return db.Order("number") }).
		Preload("Contacts", func(db *gorm.DB) *gorm.DB { return db.Order("name") }).
		First(&dto, "cui = ?", cui.String()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("agu", cui.String())
		}
		return nil, err
	}
	return toDomain(dto)
}

func (r *GormAGURepository) Exists(ctx context.Context, cui kernel.CUI) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&AGUDTO{}).Where("cui = ?", cui.String()).Count(&count).Error
	return count > 0, err
}

func (r *GormAGURepository) GetAllActive(ctx context.Context) ([]*agu.AGU, error) {
	var dtos []AGUDTO
	if err := r.db.WithContext(ctx).Where("is_active = ?", true).Order("cui").Find(&dtos).Error; err != nil {
		return nil, err
	}

	agus := make([]*agu.AGU, 0, len(dtos))
	for _, dto := range dtos {
		a, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		agus = append(agus, a)
	}
	return agus, nil
}

func (r *GormAGURepository) ExistsByDNO(ctx context.Context, dnoID kernel.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&AGUDTO{}).Where("dno_id = ?", dnoID.Bytes()).Count(&count).Error
	return count > 0, err
}

// Delete removes the AGU and every row that references it. It relies on the
// caller's transaction for atomicity.
//
// Providers go first: an ingestion cycle holds its provider row locked from
// UpdateLastFetch until commit, so deleting providers waits for any running
// cycle and the later statements see the measures it committed.
func (r *GormAGURepository) Delete(ctx context.Context, cui kernel.CUI) (bool, error) {
	db := r.db.WithContext(ctx)
	key := cui.String()

	owned := []any{
		&providerrepo.ProviderDTO{},
		&measurerepo.GasMeasureDTO{},
		&measurerepo.TemperatureMeasureDTO{},
		&tankrepo.TankDTO{},
		&contactrepo.ContactDTO{},
		&transportrepo.AssociationDTO{},
		&loadrepo.ScheduledLoadDTO{},
		&alertrepo.AlertDTO{},
	}
	for _, model := range owned {
		if err := db.Delete(model, "agu_cui = ?", key).Error; err != nil {
			return false, err
		}
	}

	result := db.Delete(&AGUDTO{}, "cui = ?", key)
	return result.RowsAffected > 0, result.Error
}
