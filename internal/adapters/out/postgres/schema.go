package postgres

import (
	"agu/internal/adapters/out/postgres/agurepo"
	"agu/internal/adapters/out/postgres/alertrepo"
	"agu/internal/adapters/out/postgres/contactrepo"
	"agu/internal/adapters/out/postgres/dnorepo"
	"agu/internal/adapters/out/postgres/loadrepo"
	"agu/internal/adapters/out/postgres/measurerepo"
	"agu/internal/adapters/out/postgres/providerrepo"
	"agu/internal/adapters/out/postgres/tankrepo"
	"agu/internal/adapters/out/postgres/transportrepo"

	"gorm.io/gorm"
)

// Models lists every persisted row type, parents first.
func Models() []any {
	return []any{
		&dnorepo.DNODTO{},
		&transportrepo.TransportCompanyDTO{},
		&agurepo.AGUDTO{},
		&tankrepo.TankDTO{},
		&contactrepo.ContactDTO{},
		&transportrepo.AssociationDTO{},
		&providerrepo.ProviderDTO{},
		&measurerepo.GasMeasureDTO{},
		&measurerepo.TemperatureMeasureDTO{},
		&loadrepo.ScheduledLoadDTO{},
		&alertrepo.AlertDTO{},
	}
}

// Migrate creates or updates the schema.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(Models()...)
}
