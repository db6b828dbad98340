// Package postgres provides the GORM implementation of the unit of work.
//
// A GormUnitOfWork hands out repositories bound to its transaction once Begin
// was called, and to the plain connection otherwise:
//
//	uow := factory.Create()
//	if err := uow.Begin(ctx); err != nil {
//	    return err
//	}
//	defer uow.Rollback(ctx)
//
//	if err := uow.AGURepository().Add(ctx, a); err != nil {
//	    return err
//	}
//	if err := uow.TankRepository().Add(ctx, a.CUI(), tank); err != nil {
//	    return err
//	}
//
//	return uow.Commit(ctx)
//
// Each unit of work owns at most one transaction; concurrent operations must
// use separate instances. The keys of the aggregates written through it are
// logged at debug level once the transaction commits.
package postgres

import (
	"context"
	"log/slog"

	"agu/internal/adapters/out/postgres/agurepo"
	"agu/internal/adapters/out/postgres/alertrepo"
	"agu/internal/adapters/out/postgres/contactrepo"
	"agu/internal/adapters/out/postgres/dnorepo"
	"agu/internal/adapters/out/postgres/loadrepo"
	"agu/internal/adapters/out/postgres/measurerepo"
	"agu/internal/adapters/out/postgres/providerrepo"
	"agu/internal/adapters/out/postgres/tankrepo"
	"agu/internal/adapters/out/postgres/transportrepo"
	"agu/internal/core/ports"

	"gorm.io/gorm"
)

// trackedAggregate is an aggregate written during the unit of work.
type trackedAggregate struct {
	Key       string
	Aggregate any
}

// GormUnitOfWorkFactory creates UnitOfWork instances sharing one connection pool.
type GormUnitOfWorkFactory struct {
	db     *gorm.DB
	logger *slog.Logger
}

func NewGormUnitOfWorkFactory(db *gorm.DB, logger *slog.Logger) *GormUnitOfWorkFactory {
	return &GormUnitOfWorkFactory{db: db, logger: logger.With("component", "unit_of_work")}
}

// Create returns a fresh unit of work with no active transaction.
func (f *GormUnitOfWorkFactory) Create() ports.UnitOfWork {
	return &GormUnitOfWork{
		db:                f.db,
		logger:            f.logger,
		trackedAggregates: make([]trackedAggregate, 0),
	}
}

// GormUnitOfWork coordinates one database transaction across repositories and
// records the aggregates written through them.
type GormUnitOfWork struct {
	db                *gorm.DB
	tx                *gorm.DB
	logger            *slog.Logger
	trackedAggregates []trackedAggregate
}

// Begin starts a transaction. Calling it again while one is active is a no-op.
func (uow *GormUnitOfWork) Begin(ctx context.Context) error {
	if uow.tx != nil {
		return nil
	}

	uow.tx = uow.db.WithContext(ctx).Begin()
	if uow.tx.Error != nil {
		err := uow.tx.Error
		uow.tx = nil
		return err
	}

	return nil
}

// Commit returns gorm.ErrInvalidTransaction when no transaction is active.
func (uow *GormUnitOfWork) Commit(ctx context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Commit().Error
	uow.tx = nil
	if err == nil && len(uow.trackedAggregates) > 0 {
		uow.logger.DebugContext(ctx, "aggregates committed", "keys", uow.trackedKeys())
	}
	uow.trackedAggregates = uow.trackedAggregates[:0]
	return err
}

// Rollback returns gorm.ErrInvalidTransaction when no transaction is active,
// which is the case after a successful Commit.
func (uow *GormUnitOfWork) Rollback(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Rollback().Error
	uow.tx = nil
	uow.trackedAggregates = uow.trackedAggregates[:0]
	return err
}

func (uow *GormUnitOfWork) conn() *gorm.DB {
	if uow.tx != nil {
		return uow.tx
	}
	return uow.db
}

func (uow *GormUnitOfWork) DNORepository() ports.DNORepository {
	return dnorepo.NewGormDNORepository(uow.conn())
}

func (uow *GormUnitOfWork) TransportCompanyRepository() ports.TransportCompanyRepository {
	return transportrepo.NewGormTransportCompanyRepository(uow.conn())
}

// AGURepository tracks every AGU it adds or updates.
func (uow *GormUnitOfWork) AGURepository() ports.AGURepository {
	return agurepo.NewGormAGURepository(uow.conn(), uow)
}

func (uow *GormUnitOfWork) TankRepository() ports.TankRepository {
	return tankrepo.NewGormTankRepository(uow.conn())
}

func (uow *GormUnitOfWork) ContactRepository() ports.ContactRepository {
	return contactrepo.NewGormContactRepository(uow.conn())
}

func (uow *GormUnitOfWork) ProviderRepository() ports.ProviderRepository {
	return providerrepo.NewGormProviderRepository(uow.conn())
}

func (uow *GormUnitOfWork) GasRepository() ports.GasRepository {
	return measurerepo.NewGormGasRepository(uow.conn())
}

func (uow *GormUnitOfWork) TemperatureRepository() ports.TemperatureRepository {
	return measurerepo.NewGormTemperatureRepository(uow.conn())
}

func (uow *GormUnitOfWork) LoadRepository() ports.LoadRepository {
	return loadrepo.NewGormLoadRepository(uow.conn())
}

func (uow *GormUnitOfWork) AlertRepository() ports.AlertRepository {
	return alertrepo.NewGormAlertRepository(uow.conn())
}

// TrackAggregate registers an aggregate written within this unit of work.
// Repositories call it after a successful write.
func (uow *GormUnitOfWork) TrackAggregate(key string, aggregate any) {
	uow.trackedAggregates = append(uow.trackedAggregates, trackedAggregate{
		Key:       key,
		Aggregate: aggregate,
	})
}

func (uow *GormUnitOfWork) trackedKeys() []string {
	keys := make([]string, 0, len(uow.trackedAggregates))
	for _, t := range uow.trackedAggregates {
		keys = append(keys, t.Key)
	}
	return keys
}
