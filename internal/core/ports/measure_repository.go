package ports

import (
	"context"
	"time"

	"agu/internal/core/domain/model/kernel"
	"agu/internal/core/domain/model/measure"
)

// ProviderRepository persists provider registrations. Readings are not
// stored through it; see GasRepository and TemperatureRepository.
type ProviderRepository interface {
	Add(ctx context.Context, provider *measure.Provider) error
	Get(ctx context.Context, id kernel.UUID) (*measure.Provider, error)
	GetByAGU(ctx context.Context, cui kernel.CUI) ([]*measure.Provider, error)
	GetAll(ctx context.Context) ([]*measure.Provider, error)

	// UpdateLastFetch reports false when the provider no longer exists.
	UpdateLastFetch(ctx context.Context, id kernel.UUID, lastFetch time.Time) (bool, error)
}

// GasRepository stores gas level measures per tank.
type GasRepository interface {
	Add(ctx context.Context, providerID kernel.UUID, measures []measure.GasMeasure) error

	// GetByAGU returns measures with a timestamp at or after since, oldest first.
	GetByAGU(ctx context.Context, cui kernel.CUI, since time.Time) ([]measure.GasMeasure, error)

	// GetLatest returns the newest measure of every tank, ordered by tank number.
	GetLatest(ctx context.Context, cui kernel.CUI) ([]measure.GasMeasure, error)
}

// TemperatureRepository stores temperature observations and forecasts.
type TemperatureRepository interface {
	Add(ctx context.Context, providerID kernel.UUID, measures []measure.TemperatureMeasure) error

	// GetByAGU returns measures with predictionFor at or after since, oldest first.
	GetByAGU(ctx context.Context, cui kernel.CUI, since time.Time) ([]measure.TemperatureMeasure, error)
}
