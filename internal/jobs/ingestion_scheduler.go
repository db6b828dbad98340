package jobs

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"agu/internal/core/application/ingestion"
	"agu/internal/core/domain/model/kernel"
	"agu/internal/core/domain/model/measure"
	"agu/internal/core/ports"

	"github.com/robfig/cron/v3"
)

const (
	// DefaultCycleTimeout bounds one fetch cycle, database writes included.
	DefaultCycleTimeout = 30 * time.Second
	releaseTimeout      = 5 * time.Second
)

// ErrInvalidFrequency is returned by Register for a provider without a positive frequency.
var ErrInvalidFrequency = errors.New("provider frequency must be positive")

// CyclePipeline is the part of ingestion.Pipeline the scheduler drives.
type CyclePipeline interface {
	RunCycle(ctx context.Context, providerID kernel.UUID) (ingestion.CycleResult, error)
	Providers(ctx context.Context) ([]*measure.Provider, error)
}

type scheduledProvider struct {
	entryID cron.EntryID
	cancel  context.CancelFunc
}

// IngestionScheduler runs one cron entry per provider on the provider's own
// frequency. A provider never has two cycles in flight: cron skips a tick
// while the previous one runs and the fetch lock covers other replicas.
type IngestionScheduler struct {
	pipeline     CyclePipeline
	lock         ports.FetchLock
	cron         *cron.Cron
	cycleTimeout time.Duration
	logger       *slog.Logger

	baseCtx    context.Context
	cancelBase context.CancelFunc

	mu        sync.Mutex
	providers map[string]scheduledProvider
}

var _ ports.ProviderScheduler = (*IngestionScheduler)(nil)

// NewIngestionScheduler creates a stopped scheduler. A nil lock means an
// in-process LocalFetchLock; a non-positive cycleTimeout means DefaultCycleTimeout.
func NewIngestionScheduler(
	pipeline CyclePipeline,
	lock ports.FetchLock,
	cycleTimeout time.Duration,
	logger *slog.Logger,
) *IngestionScheduler {
	if lock == nil {
		lock = NewLocalFetchLock()
	}
	if cycleTimeout <= 0 {
		cycleTimeout = DefaultCycleTimeout
	}
	logger = logger.With("component", "ingestion_scheduler")
	baseCtx, cancel := context.WithCancel(context.Background())

	return &IngestionScheduler{
		pipeline:     pipeline,
		lock:         lock,
		cron:         cron.New(cron.WithLogger(cronLogger{logger: logger})),
		cycleTimeout: cycleTimeout,
		logger:       logger,
		baseCtx:      baseCtx,
		cancelBase:   cancel,
		providers:    make(map[string]scheduledProvider),
	}
}

// Register schedules the provider every Frequency. Registering a provider
// again replaces its schedule.
func (s *IngestionScheduler) Register(ctx context.Context, provider *measure.Provider) error {
	if provider.Frequency() <= 0 {
		return fmt.Errorf("%w: %s", ErrInvalidFrequency, provider.ID())
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	providerID := provider.ID()
	key := providerID.String()
	providerCtx, cancel := context.WithCancel(s.baseCtx)

	job := cron.NewChain(cron.SkipIfStillRunning(cronLogger{logger: s.logger})).
		Then(cron.FuncJob(func() { s.runCycle(providerCtx, providerID) }))

	s.mu.Lock()
	defer s.mu.Unlock()

	if previous, ok := s.providers[key]; ok {
		s.cron.Remove(previous.entryID)
		previous.cancel()
	}
	entryID := s.cron.Schedule(cron.Every(provider.Frequency()), job)
	s.providers[key] = scheduledProvider{entryID: entryID, cancel: cancel}

	s.logger.InfoContext(ctx, "provider scheduled",
		"provider_id", key, "type", provider.Type().String(), "frequency", provider.Frequency().String())
	return nil
}

// Unregister removes the provider schedule and cancels its in-flight cycle,
// which then ends without writing.
func (s *IngestionScheduler) Unregister(providerID kernel.UUID) {
	key := providerID.String()

	s.mu.Lock()
	scheduled, ok := s.providers[key]
	delete(s.providers, key)
	s.mu.Unlock()

	if !ok {
		return
	}
	s.cron.Remove(scheduled.entryID)
	scheduled.cancel()
	s.logger.Info("provider unscheduled", "provider_id", key)
}

// IsRegistered reports whether the provider has a schedule.
func (s *IngestionScheduler) IsRegistered(providerID kernel.UUID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.providers[providerID.String()]
	return ok
}

// Start schedules every stored provider and starts the cron loop.
func (s *IngestionScheduler) Start(ctx context.Context) error {
	providers, err := s.pipeline.Providers(ctx)
	if err != nil {
		return fmt.Errorf("list providers: %w", err)
	}

	for _, p := range providers {
		if err := s.Register(ctx, p); err != nil {
			s.logger.WarnContext(ctx, "provider not scheduled", "provider_id", p.ID().String(), "error", err)
		}
	}

	s.cron.Start()
	s.logger.InfoContext(ctx, "Ingestion scheduler started", "providers", len(providers))
	return nil
}

// Stop cancels in-flight cycles and waits for them to return, at most until ctx ends.
func (s *IngestionScheduler) Stop(ctx context.Context) {
	s.cancelBase()
	done := s.cron.Stop()

	select {
	case <-done.Done():
	case <-ctx.Done():
		s.logger.Warn("Ingestion scheduler stop timed out")
	}
	s.logger.Info("Ingestion scheduler stopped")
}

func (s *IngestionScheduler) runCycle(providerCtx context.Context, providerID kernel.UUID) {
	if providerCtx.Err() != nil {
		return
	}

	ctx, cancel := context.WithTimeout(providerCtx, s.cycleTimeout)
	defer cancel()
	key := providerID.String()

	acquired, err := s.lock.Acquire(ctx, providerID, s.cycleTimeout+releaseTimeout)
	if err != nil {
		s.logger.ErrorContext(ctx, "fetch lock failed", "provider_id", key, "error", err)
		return
	}
	if !acquired {
		s.logger.DebugContext(ctx, "fetch already in flight", "provider_id", key)
		return
	}
	defer func() {
		releaseCtx, cancel := context.WithTimeout(context.Background(), releaseTimeout)
		defer cancel()
		if err := s.lock.Release(releaseCtx, providerID); err != nil {
			s.logger.Warn("fetch lock release failed", "provider_id", key, "error", err)
		}
	}()

	result, err := s.pipeline.RunCycle(ctx, providerID)
	if err != nil {
		s.logger.ErrorContext(ctx, "fetch cycle failed", "provider_id", key, "error", err)
		return
	}

	switch result.Status {
	case ingestion.CycleStored:
		s.logger.DebugContext(ctx, "fetch cycle stored",
			"provider_id", key, "stored", result.Stored, "skipped", result.Skipped)
	case ingestion.CycleProviderRemoved:
		s.Unregister(providerID)
	case ingestion.CycleCancelled:
		s.logger.InfoContext(context.Background(), "fetch cycle cancelled", "provider_id", key)
	}
}
