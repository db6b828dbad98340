package ports

import (
	"context"
	"time"

	"agu/internal/core/domain/model/alert"
	"agu/internal/core/domain/model/kernel"
	"agu/internal/core/domain/model/load"
)

// LoadRepository persists scheduled and delivered loads.
type LoadRepository interface {
	Add(ctx context.Context, l *load.ScheduledLoad) error
	Get(ctx context.Context, id kernel.UUID) (*load.ScheduledLoad, error)

	// ExistsForSlot reports whether the AGU already has a load for the date and time of day.
	ExistsForSlot(ctx context.Context, slot load.Slot) (bool, error)

	GetByDate(ctx context.Context, date time.Time) ([]*load.ScheduledLoad, error)

	// GetBetween returns loads whose date lies in [from, to], ordered by date and time of day.
	GetBetween(ctx context.Context, from, to time.Time) ([]*load.ScheduledLoad, error)

	Update(ctx context.Context, l *load.ScheduledLoad) (bool, error)
	Delete(ctx context.Context, id kernel.UUID) (bool, error)
}

// AlertRepository persists alerts.
type AlertRepository interface {
	Add(ctx context.Context, a *alert.Alert) error
	Get(ctx context.Context, id kernel.UUID) (*alert.Alert, error)

	// GetUnresolved returns unresolved alerts, newest first.
	GetUnresolved(ctx context.Context) ([]*alert.Alert, error)

	Update(ctx context.Context, a *alert.Alert) error
}
