package services

import (
	"context"
	"fmt"
	"log/slog"

	"agu/internal/core/application/tx"
	"agu/internal/core/domain/model/alert"
	"agu/internal/core/domain/model/kernel"
	"agu/internal/core/ports"
	"agu/internal/pkg/either"
)

// AlertCreationError enumerates CreateAlert failures.
type AlertCreationError int

const (
	AlertCreationAGUNotFound AlertCreationError = iota + 1
	AlertCreationInvalidTitle
)

var alertCreationKinds = []kind{
	{"AGUNotFound", CategoryNotFound},
	{"InvalidTitle", CategoryInvalid},
}

func (e AlertCreationError) String() string     { return lookup(alertCreationKinds, int(e)).name }
func (e AlertCreationError) Category() Category { return lookup(alertCreationKinds, int(e)).category }

// AlertLookupError enumerates GetAlertByID and UpdateAlertStatus failures.
type AlertLookupError int

const (
	AlertLookupNotFound AlertLookupError = iota + 1
)

var alertLookupKinds = []kind{
	{"AlertNotFound", CategoryNotFound},
}

func (e AlertLookupError) String() string     { return lookup(alertLookupKinds, int(e)).name }
func (e AlertLookupError) Category() Category { return lookup(alertLookupKinds, int(e)).category }

type (
	AlertCreationResult = either.Either[AlertCreationError, *alert.Alert]
	AlertLookupResult   = either.Either[AlertLookupError, *alert.Alert]
	AlertStatusResult   = either.Either[AlertLookupError, []*alert.Alert]
)

// AlertService raises and resolves alerts.
type AlertService struct {
	tx     *tx.Manager
	clock  Clock
	logger *slog.Logger
}

func NewAlertService(m *tx.Manager, clock Clock, logger *slog.Logger) *AlertService {
	if clock == nil {
		clock = SystemClock
	}
	return &AlertService{tx: m, clock: clock, logger: logger.With("component", "AlertService")}
}

// CreateAlert stores an unresolved alert stamped with the server clock.
func (s *AlertService) CreateAlert(ctx context.Context, rawCUI, title, message string) (AlertCreationResult, error) {
	left := either.Left[AlertCreationError, *alert.Alert]

	cui, ok := parseCUI(rawCUI)
	if !ok {
		return left(AlertCreationAGUNotFound), nil
	}

	return tx.Run(ctx, s.tx, func(ctx context.Context, uow ports.UnitOfWork) (AlertCreationResult, error) {
		exists, err := uow.AGURepository().Exists(ctx, cui)
		if err != nil {
			return AlertCreationResult{}, fmt.Errorf("check agu: %w", err)
		}
		if !exists {
			return left(AlertCreationAGUNotFound), nil
		}

		a, err := alert.NewAlert(kernel.NewUUID(), cui, s.clock(), title, message)
		if err != nil {
			return left(AlertCreationInvalidTitle), nil
		}
		if err := uow.AlertRepository().Add(ctx, a); err != nil {
			return AlertCreationResult{}, fmt.Errorf("add alert: %w", err)
		}

		s.logger.InfoContext(ctx, "alert raised", "cui", cui.String(), "id", a.ID().String(), "title", a.Title())
		return either.Right[AlertCreationError](a), nil
	})
}

// GetAlerts returns the unresolved alerts, newest first.
func (s *AlertService) GetAlerts(ctx context.Context) ([]*alert.Alert, error) {
	return tx.Execute(ctx, s.tx, func(ctx context.Context, uow ports.UnitOfWork) ([]*alert.Alert, error) {
		return uow.AlertRepository().GetUnresolved(ctx)
	})
}

func (s *AlertService) GetAlertByID(ctx context.Context, id kernel.UUID) (AlertLookupResult, error) {
	return tx.Run(ctx, s.tx, func(ctx context.Context, uow ports.UnitOfWork) (AlertLookupResult, error) {
		a, err := uow.AlertRepository().Get(ctx, id)
		if isNotFound(err) {
			return either.Left[AlertLookupError, *alert.Alert](AlertLookupNotFound), nil
		}
		if err != nil {
			return AlertLookupResult{}, fmt.Errorf("get alert: %w", err)
		}
		return either.Right[AlertLookupError](a), nil
	})
}

// UpdateAlertStatus resolves the alert and returns the refreshed list of
// unresolved alerts. Resolving an already resolved alert changes nothing.
func (s *AlertService) UpdateAlertStatus(ctx context.Context, id kernel.UUID) (AlertStatusResult, error) {
	return tx.Run(ctx, s.tx, func(ctx context.Context, uow ports.UnitOfWork) (AlertStatusResult, error) {
		repo := uow.AlertRepository()

		a, err := repo.Get(ctx, id)
		if isNotFound(err) {
			return either.Left[AlertLookupError, []*alert.Alert](AlertLookupNotFound), nil
		}
		if err != nil {
			return AlertStatusResult{}, fmt.Errorf("get alert: %w", err)
		}

		if a.Resolve() {
			if err := repo.Update(ctx, a); err != nil {
				return AlertStatusResult{}, fmt.Errorf("update alert: %w", err)
			}
		}

		unresolved, err := repo.GetUnresolved(ctx)
		if err != nil {
			return AlertStatusResult{}, fmt.Errorf("get unresolved alerts: %w", err)
		}
		return either.Right[AlertLookupError](unresolved), nil
	})
}
