// Package tx runs service logic inside one unit of work.
//
// A block receives the open unit of work and returns either a typed result
// or a Go error. Run commits only when the block returns a Right and no
// error; a Left, an error or a panic leave the transaction rolled back.
//
// Example:
//
//	res, err := tx.Run(ctx, m, func(ctx context.Context, uow ports.UnitOfWork) (either.Either[CreateDNOError, *company.DNO], error) {
//	    exists, err := uow.DNORepository().ExistsByName(ctx, name)
//	    if err != nil {
//	        return either.Either[CreateDNOError, *company.DNO]{}, err
//	    }
//	    if exists {
//	        return either.Left[CreateDNOError, *company.DNO](DNOAlreadyExists), nil
//	    }
//	    ...
//	})
package tx

import (
	"context"
	"errors"
	"fmt"

	"agu/internal/core/ports"
	"agu/internal/pkg/either"
)

// ErrFactoryIsRequired is returned by NewManager when no factory is given.
var ErrFactoryIsRequired = errors.New("unit of work factory is required")

// Manager opens one unit of work per Run or Execute call.
type Manager struct {
	factory ports.UnitOfWorkFactory
}

// NewManager wraps the factory.
func NewManager(factory ports.UnitOfWorkFactory) (*Manager, error) {
	if factory == nil {
		return nil, ErrFactoryIsRequired
	}
	return &Manager{factory: factory}, nil
}

// Run executes block in a new transaction and commits only on a Right result.
// A Left is returned as is, with the transaction rolled back.
func Run[L, R any](
	ctx context.Context,
	m *Manager,
	block func(ctx context.Context, uow ports.UnitOfWork) (either.Either[L, R], error),
) (either.Either[L, R], error) {
	return run(ctx, m, block, either.Either[L, R].IsRight)
}

// Execute executes block in a new transaction and commits when it returns no error.
func Execute[T any](ctx context.Context, m *Manager, block func(ctx context.Context, uow ports.UnitOfWork) (T, error)) (T, error) {
	return run(ctx, m, block, func(T) bool { return true })
}

func run[T any](
	ctx context.Context,
	m *Manager,
	block func(ctx context.Context, uow ports.UnitOfWork) (T, error),
	shouldCommit func(T) bool,
) (T, error) {
	var zero T

	uow := m.factory.Create()
	if err := uow.Begin(ctx); err != nil {
		return zero, fmt.Errorf("begin transaction: %w", err)
	}

	// Runs after Commit too; the unit of work then has nothing to roll back.
	// A panic in block propagates after the rollback.
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	result, err := block(ctx, uow)
	if err != nil {
		return zero, err
	}

	if !shouldCommit(result) {
		return result, nil
	}

	if err := uow.Commit(ctx); err != nil {
		return zero, fmt.Errorf("commit transaction: %w", err)
	}

	return result, nil
}
