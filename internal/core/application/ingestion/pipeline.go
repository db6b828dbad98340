// Package ingestion runs one fetch cycle of a provider: fetch the payload,
// parse it into measures and store them together with the new lastFetch.
package ingestion

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"agu/internal/core/application/tx"
	"agu/internal/core/domain/model/kernel"
	"agu/internal/core/domain/model/measure"
	"agu/internal/core/ports"
	"agu/internal/pkg/errs"
)

// ErrNoParser is returned when no parser is registered for the provider type.
var ErrNoParser = errors.New("no parser for provider type")

// CycleStatus tells how a fetch cycle ended when it did not fail.
type CycleStatus int

const (
	// CycleStored means the measures and lastFetch were committed.
	CycleStored CycleStatus = iota + 1
	// CycleProviderRemoved means the provider disappeared; nothing was written.
	CycleProviderRemoved
	// CycleCancelled means the context ended before the write; nothing was written.
	CycleCancelled
)

func (s CycleStatus) String() string {
	switch s {
	case CycleStored:
		return "stored"
	case CycleProviderRemoved:
		return "provider removed"
	case CycleCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// CycleResult summarizes one fetch cycle.
type CycleResult struct {
	ProviderID kernel.UUID
	Status     CycleStatus
	FetchedAt  time.Time
	Stored     int
	Skipped    int
}

// Pipeline fetches and stores measures of one provider at a time. It is safe
// for concurrent use; each cycle opens its own unit of work.
type Pipeline struct {
	tx      *tx.Manager
	fetcher ports.Fetcher
	parsers map[measure.ProviderType]ports.MeasureParser
	clock   func() time.Time
	logger  *slog.Logger
}

func NewPipeline(
	m *tx.Manager,
	fetcher ports.Fetcher,
	clock func() time.Time,
	logger *slog.Logger,
	parsers ...ports.MeasureParser,
) *Pipeline {
	if clock == nil {
		clock = func() time.Time { return time.Now().UTC() }
	}
	byType := make(map[measure.ProviderType]ports.MeasureParser, len(parsers))
	for _, p := range parsers {
		byType[p.Type()] = p
	}
	return &Pipeline{
		tx:      m,
		fetcher: fetcher,
		parsers: byType,
		clock:   clock,
		logger:  logger.With("component", "IngestionPipeline"),
	}
}

// RunCycle fetches the provider payload and stores the parsed measures. The
// write is all-or-nothing; fetch and parse errors leave storage untouched and
// are returned so the caller can retry on its next tick.
func (p *Pipeline) RunCycle(ctx context.Context, providerID kernel.UUID) (CycleResult, error) {
	result := CycleResult{ProviderID: providerID}

	provider, err := tx.Execute(ctx, p.tx, func(ctx context.Context, uow ports.UnitOfWork) (*measure.Provider, error) {
		return uow.ProviderRepository().Get(ctx, providerID)
	})
	if errors.Is(err, errs.ErrObjectNotFound) {
		result.Status = CycleProviderRemoved
		return result, nil
	}
	if err != nil {
		return result, fmt.Errorf("get provider: %w", err)
	}

	parser, ok := p.parsers[provider.Type()]
	if !ok {
		return result, fmt.Errorf("%w: %s", ErrNoParser, provider.Type())
	}

	result.FetchedAt = p.clock()
	payload, err := p.fetcher.Fetch(ctx, provider.URL())
	if err != nil {
		if ctx.Err() != nil {
			result.Status = CycleCancelled
			return result, nil
		}
		return result, fmt.Errorf("fetch %s: %w", provider.URL(), err)
	}

	parsed, err := parser.Parse(payload, result.FetchedAt)
	if err != nil {
		return result, fmt.Errorf("parse payload: %w", err)
	}
	result.Skipped = parsed.Skipped
	if parsed.Skipped > 0 {
		p.logger.WarnContext(ctx, "skipped malformed items",
			"provider_id", providerID.String(), "skipped", parsed.Skipped)
	}

	if ctx.Err() != nil {
		result.Status = CycleCancelled
		return result, nil
	}

	status, err := tx.Execute(ctx, p.tx, func(ctx context.Context, uow ports.UnitOfWork) (CycleStatus, error) {
		// Updating lastFetch first locks the provider row, so a concurrent
		// delete either waits for this cycle or wins and leaves nothing to update.
		updated, err := uow.ProviderRepository().UpdateLastFetch(ctx, providerID, result.FetchedAt)
		if err != nil {
			return 0, fmt.Errorf("update last fetch: %w", err)
		}
		if !updated {
			return CycleProviderRemoved, nil
		}
		if err := store(ctx, uow, provider, parsed.Measures); err != nil {
			return 0, err
		}
		return CycleStored, nil
	})
	if err != nil {
		if ctx.Err() != nil {
			result.Status = CycleCancelled
			return result, nil
		}
		return result, err
	}

	result.Status = status
	if status == CycleStored {
		result.Stored = len(parsed.Measures)
	}
	return result, nil
}

func store(ctx context.Context, uow ports.UnitOfWork, provider *measure.Provider, measures []measure.Measure) error {
	switch provider.Type() {
	case measure.Gas:
		gas, err := measure.AsGasMeasures(measures)
		if err != nil {
			return err
		}
		if err := uow.GasRepository().Add(ctx, provider.ID(), gas); err != nil {
			return fmt.Errorf("add gas measures: %w", err)
		}
	case measure.Temperature:
		temperatures, err := measure.AsTemperatureMeasures(measures)
		if err != nil {
			return err
		}
		if err := uow.TemperatureRepository().Add(ctx, provider.ID(), temperatures); err != nil {
			return fmt.Errorf("add temperature measures: %w", err)
		}
	case measure.Unknown:
		return provider.Type().Validate()
	default:
		return provider.Type().Validate()
	}
	return nil
}

// Providers lists every registered provider, for schedulers that start from storage.
func (p *Pipeline) Providers(ctx context.Context) ([]*measure.Provider, error) {
	return tx.Execute(ctx, p.tx, func(ctx context.Context, uow ports.UnitOfWork) ([]*measure.Provider, error) {
		return uow.ProviderRepository().GetAll(ctx)
	})
}
