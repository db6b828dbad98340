package transportrepo

import (
	"context"
	"errors"
	"strings"

	"agu/internal/core/domain/model/company"
	"agu/internal/core/domain/model/kernel"
	"agu/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormTransportCompanyRepository implements ports.TransportCompanyRepository using GORM.
type GormTransportCompanyRepository struct {
	db *gorm.DB
}

func NewGormTransportCompanyRepository(db *gorm.DB) *GormTransportCompanyRepository {
	return &GormTransportCompanyRepository{db: db}
}

func (r *GormTransportCompanyRepository) Add(ctx context.Context, c *company.TransportCompany) error {
	if err := c.Validate(); err != nil {
		return err
	}

	dto := fromDomain(c)
	return r.db.WithContext(ctx).Create(&dto).Error
}

func (r *GormTransportCompanyRepository) Get(ctx context.Context, id kernel.UUID) (*company.TransportCompany, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto TransportCompanyDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("transport company", id.String())
		}
		return nil, err
	}
	return toDomain(dto)
}

func (r *GormTransportCompanyRepository) GetAll(ctx context.Context) ([]*company.TransportCompany, error) {
	var dtos []TransportCompanyDTO
	if err := r.db.WithContext(ctx).Order("name").Find(&dtos).Error; err != nil {
		return nil, err
	}
	return toDomainSlice(dtos)
}

func (r *GormTransportCompanyRepository) ExistsByName(ctx context.Context, name string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&TransportCompanyDTO{}).
		Where("lower(name) = ?", strings.ToLower(strings.TrimSpace(name))).
		Count(&count).Error
	return count > 0, err
}

// Delete removes the company together with its AGU associations.
func (r *GormTransportCompanyRepository) Delete(ctx context.Context, id kernel.UUID) (bool, error) {
	if err := id.Validate(); err != nil {
		return false, err
	}

	db := r.db.WithContext(ctx)
	if err := db.Delete(&AssociationDTO{}, "transport_company_id = ?", id.Bytes()).Error; err != nil {
		return false, err
	}
	result := db.Delete(&TransportCompanyDTO{}, "id = ?", id.Bytes())
	return result.RowsAffected > 0, result.Error
}

func (r *GormTransportCompanyRepository) GetByAGU(ctx context.Context, cui kernel.CUI) ([]*company.TransportCompany, error) {
	var dtos []TransportCompanyDTO
	if err := r.db.WithContext(ctx).
		Table("transport_companies").
		Select("transport_companies.*").
		Joins("JOIN agu_transport_companies a ON a.transport_company_id = transport_companies.id").
		Where("a.agu_cui = ?", cui.String()).
		Order("transport_companies.name").
		Find(&dtos).Error; err != nil {
		return nil, err
	}
	return toDomainSlice(dtos)
}

func (r *GormTransportCompanyRepository) AddToAGU(ctx context.Context, cui kernel.CUI, companyID kernel.UUID) error {
	dto := AssociationDTO{AGUCui: cui.String(), TransportCompanyID: companyID.Bytes()}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&dto).Error
}

func (r *GormTransportCompanyRepository) RemoveFromAGU(
	ctx context.Context,
	cui kernel.CUI,
	companyID kernel.UUID,
) (bool, error) {
	result := r.db.WithContext(ctx).Delete(&AssociationDTO{},
		"agu_cui = ? AND transport_company_id = ?", cui.String(), companyID.Bytes())
	return result.RowsAffected > 0, result.Error
}
