// Package ports defines the contracts between the AGU domain and the
// infrastructure: repositories bound to a unit of work and the outbound
// ports used by ingestion and prediction.
//
// Lookups by identifier return *errs.ObjectNotFoundError when nothing
// matches. Existence checks return booleans. Deletes and conditional updates
// report whether a row was affected instead of failing on unknown ids.
package ports

import (
	"context"

	"agu/internal/core/domain/model/company"
	"agu/internal/core/domain/model/kernel"
)

// DNORepository persists distribution network operators.
type DNORepository interface {
	Add(ctx context.Context, dno *company.DNO) error
	Get(ctx context.Context, id kernel.UUID) (*company.DNO, error)
	GetByName(ctx context.Context, name string) (*company.DNO, error)
	GetAll(ctx context.Context) ([]*company.DNO, error)

	// ExistsByName compares names case-insensitively.
	ExistsByName(ctx context.Context, name string) (bool, error)

	Delete(ctx context.Context, id kernel.UUID) (bool, error)
}

// TransportCompanyRepository persists transport companies and their AGU associations.
type TransportCompanyRepository interface {
	Add(ctx context.Context, company *company.TransportCompany) error
	Get(ctx context.Context, id kernel.UUID) (*company.TransportCompany, error)
	GetAll(ctx context.Context) ([]*company.TransportCompany, error)
	ExistsByName(ctx context.Context, name string) (bool, error)
	Delete(ctx context.Context, id kernel.UUID) (bool, error)

	// GetByAGU returns the companies associated with the AGU, ordered by name.
	GetByAGU(ctx context.Context, cui kernel.CUI) ([]*company.TransportCompany, error)

	// AddToAGU is idempotent: associating twice leaves one association.
	AddToAGU(ctx context.Context, cui kernel.CUI, companyID kernel.UUID) error
	RemoveFromAGU(ctx context.Context, cui kernel.CUI, companyID kernel.UUID) (bool, error)
}
