package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"agu/internal/core/application/tx"
	"agu/internal/core/domain/model/kernel"
	"agu/internal/core/domain/model/load"
	"agu/internal/core/ports"
	"agu/internal/pkg/either"
)

// LoadSchedulingError enumerates ScheduleLoad failures.
type LoadSchedulingError int

const (
	LoadSchedulingAGUNotFound LoadSchedulingError = iota + 1
	LoadSchedulingInvalidAmount
	LoadSchedulingInvalidTimeOfDay
	LoadSchedulingAlreadyScheduled
)

var loadSchedulingKinds = []kind{
	{"AGUNotFound", CategoryNotFound},
	{"InvalidAmount", CategoryInvalid},
	{"InvalidTimeOfDay", CategoryInvalid},
	{"LoadAlreadyScheduled", CategoryConflict},
}

func (e LoadSchedulingError) String() string     { return lookup(loadSchedulingKinds, int(e)).name }
func (e LoadSchedulingError) Category() Category { return lookup(loadSchedulingKinds, int(e)).category }

// LoadLookupError enumerates GetLoadByID failures.
type LoadLookupError int

const (
	LoadLookupNotFound LoadLookupError = iota + 1
)

var loadLookupKinds = []kind{
	{"LoadNotFound", CategoryNotFound},
}

func (e LoadLookupError) String() string     { return lookup(loadLookupKinds, int(e)).name }
func (e LoadLookupError) Category() Category { return lookup(loadLookupKinds, int(e)).category }

// DeliveryError enumerates RegisterDelivery failures.
type DeliveryError int

const (
	DeliveryLoadNotFound DeliveryError = iota + 1
	DeliveryTransportCompanyNotFound
	DeliveryLoadAlreadyDelivered
)

var deliveryKinds = []kind{
	{"LoadNotFound", CategoryNotFound},
	{"TransportCompanyNotFound", CategoryNotFound},
	{"LoadAlreadyDelivered", CategoryConflict},
}

func (e DeliveryError) String() string     { return lookup(deliveryKinds, int(e)).name }
func (e DeliveryError) Category() Category { return lookup(deliveryKinds, int(e)).category }

type (
	LoadSchedulingResult = either.Either[LoadSchedulingError, *load.ScheduledLoad]
	LoadLookupResult     = either.Either[LoadLookupError, *load.ScheduledLoad]
	DeliveryResult       = either.Either[DeliveryError, *load.ScheduledLoad]
)

// LoadService schedules and tracks gas deliveries.
type LoadService struct {
	tx     *tx.Manager
	clock  Clock
	logger *slog.Logger
}

func NewLoadService(m *tx.Manager, clock Clock, logger *slog.Logger) *LoadService {
	if clock == nil {
		clock = SystemClock
	}
	return &LoadService{tx: m, clock: clock, logger: logger.With("component", "LoadService")}
}

// ScheduleLoad books the (AGU, date, time of day) slot. Amount and time of day
// are checked before the AGU is looked up. A second load for the same slot is
// rejected.
func (s *LoadService) ScheduleLoad(ctx context.Context, c LoadCreation) (LoadSchedulingResult, error) {
	left := either.Left[LoadSchedulingError, *load.ScheduledLoad]

	if c.Amount <= 0 {
		return left(LoadSchedulingInvalidAmount), nil
	}
	timeOfDay, err := load.ParseTimeOfDay(c.TimeOfDay)
	if err != nil {
		return left(LoadSchedulingInvalidTimeOfDay), nil
	}
	cui, ok := parseCUI(c.CUI)
	if !ok {
		return left(LoadSchedulingAGUNotFound), nil
	}
	l, err := load.NewScheduledLoad(kernel.NewUUID(), cui, c.Date, timeOfDay, c.Amount, c.IsManual)
	if err != nil {
		return left(LoadSchedulingInvalidAmount), nil
	}

	return tx.Run(ctx, s.tx, func(ctx context.Context, uow ports.UnitOfWork) (LoadSchedulingResult, error) {
		exists, err := uow.AGURepository().Exists(ctx, cui)
		if err != nil {
			return LoadSchedulingResult{}, fmt.Errorf("check agu: %w", err)
		}
		if !exists {
			return left(LoadSchedulingAGUNotFound), nil
		}

		repo := uow.LoadRepository()
		taken, err := repo.ExistsForSlot(ctx, l.Slot())
		if err != nil {
			return LoadSchedulingResult{}, fmt.Errorf("check load slot: %w", err)
		}
		if taken {
			return left(LoadSchedulingAlreadyScheduled), nil
		}
		if err := repo.Add(ctx, l); err != nil {
			return LoadSchedulingResult{}, fmt.Errorf("add load: %w", err)
		}

		s.logger.InfoContext(ctx, "load scheduled", "slot", l.Slot().String(), "amount", l.Amount())
		return either.Right[LoadSchedulingError](l), nil
	})
}

func (s *LoadService) GetLoadByID(ctx context.Context, id kernel.UUID) (LoadLookupResult, error) {
	if id.Validate() != nil {
		return either.Left[LoadLookupError, *load.ScheduledLoad](LoadLookupNotFound), nil
	}
	return tx.Run(ctx, s.tx, func(ctx context.Context, uow ports.UnitOfWork) (LoadLookupResult, error) {
		l, err := uow.LoadRepository().Get(ctx, id)
		if isNotFound(err) {
			return either.Left[LoadLookupError, *load.ScheduledLoad](LoadLookupNotFound), nil
		}
		if err != nil {
			return LoadLookupResult{}, fmt.Errorf("get load: %w", err)
		}
		return either.Right[LoadLookupError](l), nil
	})
}

// GetDailyLoads returns the loads of the calendar day of date.
func (s *LoadService) GetDailyLoads(ctx context.Context, date time.Time) ([]*load.ScheduledLoad, error) {
	return tx.Execute(ctx, s.tx, func(ctx context.Context, uow ports.UnitOfWork) ([]*load.ScheduledLoad, error) {
		return uow.LoadRepository().GetByDate(ctx, load.Day(date))
	})
}

// GetLoadsBetween returns loads between both days inclusive. Reversed bounds yield nothing.
func (s *LoadService) GetLoadsBetween(ctx context.Context, from, to time.Time) ([]*load.ScheduledLoad, error) {
	from, to = load.Day(from), load.Day(to)
	if to.Before(from) {
		return []*load.ScheduledLoad{}, nil
	}
	return tx.Execute(ctx, s.tx, func(ctx context.Context, uow ports.UnitOfWork) ([]*load.ScheduledLoad, error) {
		return uow.LoadRepository().GetBetween(ctx, from, to)
	})
}

// ConfirmLoad reports false for an unknown id.
func (s *LoadService) ConfirmLoad(ctx context.Context, id kernel.UUID) (bool, error) {
	return s.mutate(ctx, id, func(context.Context, ports.LoadRepository, *load.ScheduledLoad) (bool, error) {
		return true, nil
	}, (*load.ScheduledLoad).Confirm)
}

// ChangeLoadDay moves the load to another day keeping its time of day. It
// reports false for an unknown id and when the target slot is already taken.
func (s *LoadService) ChangeLoadDay(ctx context.Context, id kernel.UUID, date time.Time) (bool, error) {
	return s.mutate(ctx, id, func(ctx context.Context, repo ports.LoadRepository, l *load.ScheduledLoad) (bool, error) {
		target := l.Slot()
		target.Date = load.Day(date)
		if target.Date.Equal(l.Date()) {
			return true, nil
		}
		taken, err := repo.ExistsForSlot(ctx, target)
		return !taken, err
	}, func(l *load.ScheduledLoad) { l.MoveTo(date) })
}

// RemoveLoad reports false for an unknown id.
func (s *LoadService) RemoveLoad(ctx context.Context, id kernel.UUID) (bool, error) {
	if id.Validate() != nil {
		return false, nil
	}
	return tx.Execute(ctx, s.tx, func(ctx context.Context, uow ports.UnitOfWork) (bool, error) {
		return uow.LoadRepository().Delete(ctx, id)
	})
}

func (s *LoadService) mutate(
	ctx context.Context,
	id kernel.UUID,
	allowed func(context.Context, ports.LoadRepository, *load.ScheduledLoad) (bool, error),
	apply func(*load.ScheduledLoad),
) (bool, error) {
	if id.Validate() != nil {
		return false, nil
	}
	return tx.Execute(ctx, s.tx, func(ctx context.Context, uow ports.UnitOfWork) (bool, error) {
		repo := uow.LoadRepository()

		l, err := repo.Get(ctx, id)
		if isNotFound(err) {
			return false, nil
		}
		if err != nil {
			return false, fmt.Errorf("get load: %w", err)
		}

		ok, err := allowed(ctx, repo, l)
		if err != nil || !ok {
			return false, err
		}

		apply(l)
		return repo.Update(ctx, l)
	})
}

// RegisterDelivery records that the transport company unloaded the load. A
// zero unload timestamp means now.
func (s *LoadService) RegisterDelivery(
	ctx context.Context,
	id kernel.UUID,
	companyID kernel.UUID,
	unloadTimestamp time.Time,
) (DeliveryResult, error) {
	left := either.Left[DeliveryError, *load.ScheduledLoad]

	if id.Validate() != nil {
		return left(DeliveryLoadNotFound), nil
	}
	if companyID.Validate() != nil {
		return left(DeliveryTransportCompanyNotFound), nil
	}

	return tx.Run(ctx, s.tx, func(ctx context.Context, uow ports.UnitOfWork) (DeliveryResult, error) {
		repo := uow.LoadRepository()

		l, err := repo.Get(ctx, id)
		if isNotFound(err) {
			return left(DeliveryLoadNotFound), nil
		}
		if err != nil {
			return DeliveryResult{}, fmt.Errorf("get load: %w", err)
		}

		if _, err := uow.TransportCompanyRepository().Get(ctx, companyID); err != nil {
			if isNotFound(err) {
				return left(DeliveryTransportCompanyNotFound), nil
			}
			return DeliveryResult{}, fmt.Errorf("get transport company: %w", err)
		}

		if _, delivered := l.Delivered(); delivered {
			return left(DeliveryLoadAlreadyDelivered), nil
		}
		if unloadTimestamp.IsZero() {
			unloadTimestamp = s.clock()
		}
		if err := l.Deliver(companyID, unloadTimestamp); err != nil {
			return DeliveryResult{}, fmt.Errorf("deliver load: %w", err)
		}
		if _, err := repo.Update(ctx, l); err != nil {
			return DeliveryResult{}, fmt.Errorf("update load: %w", err)
		}
		return either.Right[DeliveryError](l), nil
	})
}
