package services

import (
	"context"
	"fmt"
	"log/slog"

	"agu/internal/core/application/tx"
	"agu/internal/core/domain/model/agu"
	"agu/internal/core/domain/model/kernel"
	"agu/internal/core/domain/validation"
	"agu/internal/core/ports"
	"agu/internal/pkg/either"
)

// TankCreationError enumerates AddTank failures.
type TankCreationError int

const (
	TankCreationAGUNotFound TankCreationError = iota + 1
	TankCreationInvalidNumber
	TankCreationInvalidLevels
	TankCreationInvalidLoadVolume
	TankCreationInvalidCapacity
	TankCreationAlreadyExists
)

var tankCreationKinds = []kind{
	{"AGUNotFound", CategoryNotFound},
	{"InvalidNumber", CategoryInvalid},
	{"InvalidLevels", CategoryInvalid},
	{"InvalidLoadVolume", CategoryInvalid},
	{"InvalidCapacity", CategoryInvalid},
	{"TankAlreadyExists", CategoryConflict},
}

func (e TankCreationError) String() string     { return lookup(tankCreationKinds, int(e)).name }
func (e TankCreationError) Category() Category { return lookup(tankCreationKinds, int(e)).category }

// TankUpdateError enumerates UpdateTank failures.
type TankUpdateError int

const (
	TankUpdateAGUNotFound TankUpdateError = iota + 1
	TankUpdateNotFound
	TankUpdateInvalidLevels
	TankUpdateInvalidLoadVolume
	TankUpdateInvalidCapacity
)

var tankUpdateKinds = []kind{
	{"AGUNotFound", CategoryNotFound},
	{"TankNotFound", CategoryNotFound},
	{"InvalidLevels", CategoryInvalid},
	{"InvalidLoadVolume", CategoryInvalid},
	{"InvalidCapacity", CategoryInvalid},
}

func (e TankUpdateError) String() string     { return lookup(tankUpdateKinds, int(e)).name }
func (e TankUpdateError) Category() Category { return lookup(tankUpdateKinds, int(e)).category }

// TankDeletionError enumerates DeleteTank failures.
type TankDeletionError int

const (
	TankDeletionAGUNotFound TankDeletionError = iota + 1
	TankDeletionNotFound
)

var tankDeletionKinds = []kind{
	{"AGUNotFound", CategoryNotFound},
	{"TankNotFound", CategoryNotFound},
}

func (e TankDeletionError) String() string     { return lookup(tankDeletionKinds, int(e)).name }
func (e TankDeletionError) Category() Category { return lookup(tankDeletionKinds, int(e)).category }

type (
	TankCreationResult = either.Either[TankCreationError, *agu.Tank]
	TankUpdateResult   = either.Either[TankUpdateError, *agu.Tank]
	TankDeletionResult = either.Either[TankDeletionError, struct{}]
	TanksResult        = either.Either[AGULookupError, []*agu.Tank]
)

// TankService manages the tanks of an AGU.
type TankService struct {
	tx     *tx.Manager
	logger *slog.Logger
}

func NewTankService(m *tx.Manager, logger *slog.Logger) *TankService {
	return &TankService{tx: m, logger: logger.With("component", "TankService")}
}

// AddTank attaches a new tank to the AGU. The tank is validated before the AGU
// is looked up. Numbers are unique per AGU.
func (s *TankService) AddTank(ctx context.Context, rawCUI string, c TankCreation) (TankCreationResult, error) {
	left := either.Left[TankCreationError, *agu.Tank]

	if c.Number <= 0 {
		return left(TankCreationInvalidNumber), nil
	}
	levels, err := kernel.NewGasLevels(c.MinLevel, c.MaxLevel, c.CriticalLevel)
	if err != nil {
		return left(TankCreationInvalidLevels), nil
	}
	if !validation.IsPercentageValid(c.LoadVolume) {
		return left(TankCreationInvalidLoadVolume), nil
	}
	if c.Capacity <= 0 || c.CorrectionFactor < 0 {
		return left(TankCreationInvalidCapacity), nil
	}
	tank, err := agu.NewTank(c.Number, levels, c.LoadVolume, c.Capacity, c.CorrectionFactor)
	if err != nil {
		return left(TankCreationInvalidCapacity), nil
	}

	cui, ok := parseCUI(rawCUI)
	if !ok {
		return left(TankCreationAGUNotFound), nil
	}

	return tx.Run(ctx, s.tx, func(ctx context.Context, uow ports.UnitOfWork) (TankCreationResult, error) {
		a, err := uow.AGURepository().Get(ctx, cui)
		if isNotFound(err) {
			return left(TankCreationAGUNotFound), nil
		}
		if err != nil {
			return TankCreationResult{}, fmt.Errorf("get agu: %w", err)
		}

		if err := a.AddTank(tank); err != nil {
			return left(TankCreationAlreadyExists), nil
		}
		if err := uow.TankRepository().Add(ctx, cui, tank); err != nil {
			return TankCreationResult{}, fmt.Errorf("add tank: %w", err)
		}
		return either.Right[TankCreationError](tank), nil
	})
}

// UpdateTank replaces the levels, load volume, capacity and correction factor of a tank.
// The new values are validated before the AGU is looked up.
func (s *TankService) UpdateTank(ctx context.Context, rawCUI string, number int, u TankUpdate) (TankUpdateResult, error) {
	left := either.Left[TankUpdateError, *agu.Tank]

	levels, err := kernel.NewGasLevels(u.MinLevel, u.MaxLevel, u.CriticalLevel)
	if err != nil {
		return left(TankUpdateInvalidLevels), nil
	}
	if !validation.IsPercentageValid(u.LoadVolume) {
		return left(TankUpdateInvalidLoadVolume), nil
	}
	if u.Capacity <= 0 || u.CorrectionFactor < 0 {
		return left(TankUpdateInvalidCapacity), nil
	}

	cui, ok := parseCUI(rawCUI)
	if !ok {
		return left(TankUpdateAGUNotFound), nil
	}

	return tx.Run(ctx, s.tx, func(ctx context.Context, uow ports.UnitOfWork) (TankUpdateResult, error) {
		a, err := uow.AGURepository().Get(ctx, cui)
		if isNotFound(err) {
			return left(TankUpdateAGUNotFound), nil
		}
		if err != nil {
			return TankUpdateResult{}, fmt.Errorf("get agu: %w", err)
		}

		tank, err := a.Tank(number)
		if err != nil {
			return left(TankUpdateNotFound), nil
		}
		if err := tank.Update(levels, u.LoadVolume, u.Capacity, u.CorrectionFactor); err != nil {
			return left(TankUpdateInvalidCapacity), nil
		}

		updated, err := uow.TankRepository().Update(ctx, cui, tank)
		if err != nil {
			return TankUpdateResult{}, fmt.Errorf("update tank: %w", err)
		}
		if !updated {
			return left(TankUpdateNotFound), nil
		}
		return either.Right[TankUpdateError](tank), nil
	})
}

func (s *TankService) DeleteTank(ctx context.Context, rawCUI string, number int) (TankDeletionResult, error) {
	left := either.Left[TankDeletionError, struct{}]

	cui, ok := parseCUI(rawCUI)
	if !ok {
		return left(TankDeletionAGUNotFound), nil
	}

	return tx.Run(ctx, s.tx, func(ctx context.Context, uow ports.UnitOfWork) (TankDeletionResult, error) {
		exists, err := uow.AGURepository().Exists(ctx, cui)
		if err != nil {
			return TankDeletionResult{}, fmt.Errorf("check agu: %w", err)
		}
		if !exists {
			return left(TankDeletionAGUNotFound), nil
		}

		deleted, err := uow.TankRepository().Delete(ctx, cui, number)
		if err != nil {
			return TankDeletionResult{}, fmt.Errorf("delete tank: %w", err)
		}
		if !deleted {
			return left(TankDeletionNotFound), nil
		}
		return either.Right[TankDeletionError](struct{}{}), nil
	})
}

func (s *TankService) GetTanks(ctx context.Context, rawCUI string) (TanksResult, error) {
	left := either.Left[AGULookupError, []*agu.Tank]

	cui, ok := parseCUI(rawCUI)
	if !ok {
		return left(AGULookupNotFound), nil
	}

	return tx.Run(ctx, s.tx, func(ctx context.Context, uow ports.UnitOfWork) (TanksResult, error) {
		exists, err := uow.AGURepository().Exists(ctx, cui)
		if err != nil {
			return TanksResult{}, fmt.Errorf("check agu: %w", err)
		}
		if !exists {
			return left(AGULookupNotFound), nil
		}

		tanks, err := uow.TankRepository().GetByAGU(ctx, cui)
		if err != nil {
			return TanksResult{}, fmt.Errorf("get tanks: %w", err)
		}
		return either.Right[AGULookupError](tanks), nil
	})
}
