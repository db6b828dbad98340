package jobs_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"agu/internal/core/application/ingestion"
	"agu/internal/core/domain/model/kernel"
	"agu/internal/core/domain/model/measure"
	"agu/internal/jobs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newProvider(t *testing.T, frequency time.Duration) *measure.Provider {
	t.Helper()
	p, err := measure.NewProvider(kernel.NewUUID(), measure.Gas,
		kernel.MustCUI("PT1601000000123456AB"), "https://telemetry.example.com/agu/1", frequency)
	require.NoError(t, err)
	return p
}

type fakePipeline struct {
	mu        sync.Mutex
	providers []*measure.Provider
	listErr   error
	runs      atomic.Int32
	run       func(ctx context.Context, id kernel.UUID) (ingestion.CycleResult, error)
}

func (f *fakePipeline) RunCycle(ctx context.Context, id kernel.UUID) (ingestion.CycleResult, error) {
	f.runs.Add(1)
	f.mu.Lock()
	run := f.run
	f.mu.Unlock()
	if run == nil {
		return ingestion.CycleResult{ProviderID: id, Status: ingestion.CycleStored}, nil
	}
	return run(ctx, id)
}

func (f *fakePipeline) Providers(context.Context) ([]*measure.Provider, error) {
	return f.providers, f.listErr
}

type busyLock struct{}

func (busyLock) Acquire(context.Context, kernel.UUID, time.Duration) (bool, error) { return false, nil }
func (busyLock) Release(context.Context, kernel.UUID) error                        { return nil }

func stop(t *testing.T, s *jobs.IngestionScheduler) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	s.Stop(ctx)
}

func TestIngestionScheduler_StartSchedulesStoredProviders(t *testing.T) {
	// Arrange
	p := newProvider(t, time.Second)
	pipeline := &fakePipeline{providers: []*measure.Provider{p}}
	scheduler := jobs.NewIngestionScheduler(pipeline, nil, time.Second, discardLogger())

	// Act
	require.NoError(t, scheduler.Start(t.Context()))
	defer stop(t, scheduler)

	// Assert
	assert.True(t, scheduler.IsRegistered(p.ID()))
	assert.Eventually(t, func() bool { return pipeline.runs.Load() >= 1 }, 3*time.Second, 50*time.Millisecond)
}

func TestIngestionScheduler_StartFailsWhenProvidersCannotBeListed(t *testing.T) {
	scheduler := jobs.NewIngestionScheduler(&fakePipeline{listErr: errors.New("db down")}, nil, time.Second, discardLogger())

	err := scheduler.Start(t.Context())

	require.ErrorContains(t, err, "db down")
}

func TestIngestionScheduler_UnregisterCancelsInFlightCycle(t *testing.T) {
	// Arrange
	p := newProvider(t, time.Second)
	started := make(chan struct{})
	var once sync.Once
	cancelled := make(chan struct{})
	pipeline := &fakePipeline{run: func(ctx context.Context, id kernel.UUID) (ingestion.CycleResult, error) {
		once.Do(func() { close(started) })
		<-ctx.Done()
		select {
		case <-cancelled:
		default:
			close(cancelled)
		}
		return ingestion.CycleResult{ProviderID: id, Status: ingestion.CycleCancelled}, nil
	}}
	scheduler := jobs.NewIngestionScheduler(pipeline, nil, time.Minute, discardLogger())
	require.NoError(t, scheduler.Start(t.Context()))
	defer stop(t, scheduler)
	require.NoError(t, scheduler.Register(t.Context(), p))

	select {
	case <-started:
	case <-time.After(3 * time.Second):
		t.Fatal("cycle did not start")
	}

	// Act
	scheduler.Unregister(p.ID())

	// Assert
	select {
	case <-cancelled:
	case <-time.After(2 * time.Second):
		t.Fatal("in-flight cycle was not cancelled")
	}
	assert.False(t, scheduler.IsRegistered(p.ID()))
	assert.Equal(t, int32(1), pipeline.runs.Load())
}

func TestIngestionScheduler_BusyLockSkipsCycle(t *testing.T) {
	// Arrange
	p := newProvider(t, time.Second)
	pipeline := &fakePipeline{}
	scheduler := jobs.NewIngestionScheduler(pipeline, busyLock{}, time.Second, discardLogger())
	require.NoError(t, scheduler.Register(t.Context(), p))

	// Act
	require.NoError(t, scheduler.Start(t.Context()))
	time.Sleep(1500 * time.Millisecond)
	stop(t, scheduler)

	// Assert
	assert.Zero(t, pipeline.runs.Load())
}

func TestIngestionScheduler_RemovedProviderIsUnscheduled(t *testing.T) {
	// Arrange
	p := newProvider(t, time.Second)
	pipeline := &fakePipeline{run: func(_ context.Context, id kernel.UUID) (ingestion.CycleResult, error) {
		return ingestion.CycleResult{ProviderID: id, Status: ingestion.CycleProviderRemoved}, nil
	}}
	scheduler := jobs.NewIngestionScheduler(pipeline, nil, time.Second, discardLogger())
	require.NoError(t, scheduler.Register(t.Context(), p))

	// Act
	require.NoError(t, scheduler.Start(t.Context()))
	defer stop(t, scheduler)

	// Assert
	assert.Eventually(t, func() bool { return !scheduler.IsRegistered(p.ID()) }, 3*time.Second, 50*time.Millisecond)
}
