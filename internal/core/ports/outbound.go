package ports

import (
	"context"
	"time"

	"agu/internal/core/domain/model/kernel"
	"agu/internal/core/domain/model/measure"
	domainservices "agu/internal/core/domain/services"
)

// Fetcher downloads a provider payload.
type Fetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

// ParseResult is the outcome of decoding one payload. Skipped counts the
// items that were malformed and ignored.
type ParseResult struct {
	Measures []measure.Measure
	Skipped  int
}

// MeasureParser decodes a payload of one provider type into measures.
// fetchedAt becomes the timestamp of every measure.
type MeasureParser interface {
	Type() measure.ProviderType
	Parse(payload []byte, fetchedAt time.Time) (ParseResult, error)
}

// ProviderScheduler arranges periodic fetches for registered providers.
type ProviderScheduler interface {
	Register(ctx context.Context, provider *measure.Provider) error
	Unregister(providerID kernel.UUID)
}

// FetchLock guarantees at most one in-flight fetch per provider, possibly
// across several replicas.
type FetchLock interface {
	// Acquire reports false without error when another holder owns the lock.
	Acquire(ctx context.Context, providerID kernel.UUID, ttl time.Duration) (bool, error)
	Release(ctx context.Context, providerID kernel.UUID) error
}

// DailyTemperature is the forecast or observed range of one day.
type DailyTemperature struct {
	Date time.Time
	Min  int
	Max  int
}

// DailyConsumption is the gas used in one day, in percentage points of the AGU level.
type DailyConsumption = domainservices.DailyConsumption

// ConsumptionModel holds the coefficients returned by training.
type ConsumptionModel struct {
	Coefficients []float64
	Intercept    float64
}

// ConsumptionRequest asks for one consumption value per temperature day.
type ConsumptionRequest struct {
	Temperatures         []DailyTemperature
	PreviousConsumptions []DailyConsumption
	Model                ConsumptionModel
}

// TrainingRequest pairs past temperatures with the consumption observed on the same days.
type TrainingRequest struct {
	Temperatures []DailyTemperature
	Consumptions []DailyConsumption
}

// Predictor is the consumption prediction service.
type Predictor interface {
	Train(ctx context.Context, req TrainingRequest) (ConsumptionModel, error)
	Predict(ctx context.Context, req ConsumptionRequest) ([]DailyConsumption, error)
}
