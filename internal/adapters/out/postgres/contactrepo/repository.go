package contactrepo

import (
	"context"

	"agu/internal/core/domain/model/agu"
	"agu/internal/core/domain/model/kernel"

	"gorm.io/gorm"
)

// GormContactRepository implements ports.ContactRepository using GORM.
type GormContactRepository struct {
	db *gorm.DB
}

func NewGormContactRepository(db *gorm.DB) *GormContactRepository {
	return &GormContactRepository{db: db}
}

func (r *GormContactRepository) Add(ctx context.Context, cui kernel.CUI, contact *agu.Contact) error {
	if err := contact.Validate(); err != nil {
		return err
	}

	dto := FromDomain(cui, contact)
	return r.db.WithContext(ctx).Create(&dto).Error
}

func (r *GormContactRepository) Delete(ctx context.Context, cui kernel.CUI, id kernel.UUID) (bool, error) {
	if err := id.Validate(); err != nil {
		return false, err
	}

	result := r.db.WithContext(ctx).Delete(&ContactDTO{}, "agu_cui = ? AND id = ?", cui.String(), id.Bytes())
	return result.RowsAffected > 0, result.Error
}

func (r *GormContactRepository) GetByAGU(ctx context.Context, cui kernel.CUI) ([]*agu.Contact, error) {
	var dtos []ContactDTO
	if err := r.db.WithContext(ctx).Where("agu_cui = ?", cui.String()).Order("name").Find(&dtos).Error; err != nil {
		return nil, err
	}

	contacts := make([]*agu.Contact, 0, len(dtos))
	for _, dto := range dtos {
		contact, err := ToDomain(dto)
		if err != nil {
			return nil, err
		}
		contacts = append(contacts, contact)
	}
	return contacts, nil
}

func (r *GormContactRepository) Exists(
	ctx context.Context,
	cui kernel.CUI,
	phone string,
	contactType agu.ContactType,
) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&ContactDTO{}).
		Where("agu_cui = ? AND phone = ? AND type = ?", cui.String(), phone, contactType.String()).
		Count(&count).Error
	return count > 0, err
}
