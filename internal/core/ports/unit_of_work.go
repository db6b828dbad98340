package ports

import (
	"context"
)

// UnitOfWorkFactory creates new UnitOfWork instances for each service call or ingestion cycle.
// This ensures proper isolation between concurrent operations.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork represents a business transaction boundary.
// Every repository it hands out is bound to the transaction started by Begin.
// Client code must explicitly manage the transaction lifecycle, usually through tx.Run.
type UnitOfWork interface {
	// Begin starts a new database transaction.
	Begin(ctx context.Context) error

	// Commit commits the current transaction.
	// Returns error if no active transaction or commit fails.
	Commit(ctx context.Context) error

	// Rollback rolls back the current transaction.
	// Returns error if no active transaction; callers defer it and ignore that case.
	Rollback(ctx context.Context) error

	DNORepository() DNORepository
	AGURepository() AGURepository
	TankRepository() TankRepository
	ContactRepository() ContactRepository
	ProviderRepository() ProviderRepository
	GasRepository() GasRepository
	TemperatureRepository() TemperatureRepository
	LoadRepository() LoadRepository
	AlertRepository() AlertRepository
	TransportCompanyRepository() TransportCompanyRepository
}
